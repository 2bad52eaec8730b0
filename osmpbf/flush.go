package osmpbf

import "github.com/AMDmi3/osmium/osmpbf/internal/pbfproto"

// checkFlush implements spec.md §4.4's flush trigger: an entity-count
// ceiling checked before every ingest, and a byte-budget ceiling derived
// from the PBF format's own blob-size limit.
func (e *Encoder) checkFlush() error {
	b := e.block
	if b.entityCount >= e.cfg.MaxBlockEntities {
		return e.flushBlock()
	}
	if b.estimatedSize > maxUncompressedBlobSize*fillThresholdPercent/100 {
		return e.flushBlock()
	}
	return nil
}

// flushBlock implements spec.md §4.5: finalize the string table, remap
// every interim string reference to its final id (delta-tracking
// DenseInfo.user_sid along the way), serialize the block, and hand it to
// the frame writer. A no-op on an empty block, since Flush/Close may call
// it when nothing has been ingested.
func (e *Encoder) flushBlock() error {
	b := e.block
	if b.entityCount == 0 {
		return nil
	}

	pb := &pbfproto.PrimitiveBlock{
		Granularity:     e.cfg.LocationGranularity,
		DateGranularity: e.cfg.DateGranularity,
		Stringtable:     &pbfproto.StringTable{},
	}
	b.strings.finalizeTable(pb.Stringtable)

	e.remapStringIDs()

	pb.Primitivegroup = b.groups

	data := pb.Marshal()
	if err := e.writeBlob(data, "OSMData"); err != nil {
		return err
	}

	e.logger.Printf("osmpbf: flushed block with %d entities, %d strings, %d raw bytes", b.entityCount, b.strings.len(), len(data))

	b.reset()
	return nil
}

// remapStringIDs rewrites every interim string id left in the block's
// entities to its final, frequency-sorted id. It must run after
// finalizeTable and before serialization.
func (e *Encoder) remapStringIDs() {
	b := e.block

	remapCommon := func(keys, vals []uint32, info *pbfproto.Info) {
		for i, k := range keys {
			keys[i] = uint32(b.strings.mapID(int32(k)))
		}
		for i, v := range vals {
			vals[i] = uint32(b.strings.mapID(int32(v)))
		}
		if info != nil {
			info.UserSid = uint32(b.strings.mapID(int32(info.UserSid)))
		}
	}

	if b.nodes != nil {
		for _, n := range b.nodes.Nodes {
			remapCommon(n.Keys, n.Vals, n.Info)
		}
	}

	if b.dense != nil {
		for i, sid := range b.dense.KeysVals {
			if sid > 0 {
				b.dense.KeysVals[i] = b.strings.mapID(sid)
			}
		}
		if b.dense.DenseInfo != nil {
			di := b.dense.DenseInfo
			for i, interimID := range di.UserSid {
				finalID := uint32(b.strings.mapID(interimID))
				di.UserSid[i] = b.userSidDelta.update(finalID)
			}
		}
	}

	if b.ways != nil {
		for _, w := range b.ways.Ways {
			remapCommon(w.Keys, w.Vals, w.Info)
		}
	}

	if b.relations != nil {
		for _, r := range b.relations.Relations {
			remapCommon(r.Keys, r.Vals, r.Info)
			for i, sid := range r.RolesSid {
				r.RolesSid[i] = b.strings.mapID(sid)
			}
		}
	}
}
