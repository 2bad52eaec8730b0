package osmpbf

import (
	"fmt"
	"math"
	"time"

	"github.com/AMDmi3/osmium/osmpbf/internal/pbfproto"
	"github.com/paulmach/osm"
)

// encodeCoord implements spec.md §4.3's coordinate scaling:
// round(degrees * 10^9 / granularity), half away from zero, rejecting NaN,
// infinities and anything that would overflow int64 once scaled.
func encodeCoord(degrees float64, granularity int32) (int64, error) {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCoordinate, degrees)
	}
	scaled := degrees * lonLatResolution / float64(granularity)
	if scaled > math.MaxInt64 || scaled < math.MinInt64 {
		return 0, fmt.Errorf("%w: %v out of range", ErrInvalidCoordinate, degrees)
	}
	return int64(math.Round(scaled)), nil
}

// encodeTimestamp implements spec.md §4.3's timestamp scaling:
// round(epoch_seconds * 1000 / date_granularity).
func encodeTimestamp(t time.Time, dateGranularity int32) int64 {
	return int64(math.Round(float64(t.Unix()*1000) / float64(dateGranularity)))
}

// recordTags interns every tag key/value into the block's interim string
// table, returning parallel key/value id slices in Tags' original order.
func (e *Encoder) recordTags(tags osm.Tags) ([]uint32, []uint32) {
	if len(tags) == 0 {
		return nil, nil
	}
	keys := make([]uint32, len(tags))
	vals := make([]uint32, len(tags))
	for i, t := range tags {
		keys[i] = uint32(e.block.strings.record(t.Key))
		vals[i] = uint32(e.block.strings.record(t.Value))
	}
	return keys, vals
}

// buildInfo assembles a sparse Info record. Called only when
// Config.ShouldAddMetadata is set.
func (e *Encoder) buildInfo(version int, ts time.Time, changeset int64, uid int32, user string, visible bool) *pbfproto.Info {
	info := &pbfproto.Info{
		Version:   int32(version),
		Timestamp: encodeTimestamp(ts, e.cfg.DateGranularity),
		Changeset: changeset,
		Uid:       uid,
		UserSid:   uint32(e.block.strings.record(user)),
	}
	if e.cfg.AddVisible {
		v := visible
		info.Visible = &v
	}
	return info
}

// ingestNode dispatches a node to the sparse or dense encoder depending on
// Config.UseDenseFormat, after the shared check_flush step.
func (e *Encoder) ingestNode(n *osm.Node) error {
	if err := e.checkFlush(); err != nil {
		return err
	}
	var err error
	if e.cfg.UseDenseFormat {
		err = e.encodeDenseNode(n)
	} else {
		err = e.encodeSparseNode(n)
	}
	if err != nil {
		return err
	}
	e.block.entityCount++
	return nil
}

func (e *Encoder) encodeSparseNode(n *osm.Node) error {
	lat, err := encodeCoord(n.Lat, e.cfg.LocationGranularity)
	if err != nil {
		return err
	}
	lon, err := encodeCoord(n.Lon, e.cfg.LocationGranularity)
	if err != nil {
		return err
	}
	pn := &pbfproto.Node{Id: int64(n.ID), Lat: lat, Lon: lon}
	pn.Keys, pn.Vals = e.recordTags(n.Tags)
	if e.cfg.ShouldAddMetadata {
		pn.Info = e.buildInfo(n.Version, n.Timestamp, int64(n.ChangesetID), int32(n.UserID), n.User, n.Visible)
	}
	group := e.block.sparseNodesGroup()
	group.Nodes = append(group.Nodes, pn)
	return nil
}

func (e *Encoder) encodeDenseNode(n *osm.Node) error {
	lat, err := encodeCoord(n.Lat, e.cfg.LocationGranularity)
	if err != nil {
		return err
	}
	lon, err := encodeCoord(n.Lon, e.cfg.LocationGranularity)
	if err != nil {
		return err
	}

	dense := e.block.denseNodes()
	b := e.block
	dense.Id = append(dense.Id, b.idDelta.update(int64(n.ID)))
	dense.Lat = append(dense.Lat, b.latDelta.update(lat))
	dense.Lon = append(dense.Lon, b.lonDelta.update(lon))

	for _, t := range n.Tags {
		dense.KeysVals = append(dense.KeysVals, b.strings.record(t.Key), b.strings.record(t.Value))
	}
	dense.KeysVals = append(dense.KeysVals, 0)

	if e.cfg.ShouldAddMetadata {
		if dense.DenseInfo == nil {
			dense.DenseInfo = &pbfproto.DenseInfo{}
		}
		di := dense.DenseInfo
		di.Version = append(di.Version, int32(n.Version))
		di.Timestamp = append(di.Timestamp, b.tsDelta.update(encodeTimestamp(n.Timestamp, e.cfg.DateGranularity)))
		di.Changeset = append(di.Changeset, b.csDelta.update(int64(n.ChangesetID)))
		di.Uid = append(di.Uid, int32(b.uidDelta.update(int64(n.UserID))))
		// Raw interim string id, not yet delta-encoded: the user_sid column
		// is remapped to final string ids and delta-tracked together at
		// flush time (spec.md §4.5), since the remap permutation isn't
		// known until the block's string table is finalized.
		di.UserSid = append(di.UserSid, b.strings.record(n.User))
		if e.cfg.AddVisible {
			di.Visible = append(di.Visible, n.Visible)
		}
	}
	return nil
}

func (e *Encoder) ingestWay(w *osm.Way) error {
	if err := e.checkFlush(); err != nil {
		return err
	}

	pw := &pbfproto.Way{Id: int64(w.ID)}
	pw.Keys, pw.Vals = e.recordTags(w.Tags)

	var refDelta deltaTracker
	if len(w.Nodes) > 0 {
		pw.Refs = make([]int64, len(w.Nodes))
		for i, ref := range w.Nodes {
			pw.Refs[i] = refDelta.update(int64(ref.ID))
		}
	}

	if e.cfg.ShouldAddMetadata {
		pw.Info = e.buildInfo(w.Version, w.Timestamp, int64(w.ChangesetID), int32(w.UserID), w.User, w.Visible)
	}

	group := e.block.waysGroup()
	group.Ways = append(group.Ways, pw)
	e.block.entityCount++
	e.block.estimatedSize += len(pw.Marshal())
	return nil
}

func (e *Encoder) ingestRelation(r *osm.Relation) error {
	if err := e.checkFlush(); err != nil {
		return err
	}

	pr := &pbfproto.Relation{Id: int64(r.ID)}
	pr.Keys, pr.Vals = e.recordTags(r.Tags)

	n := len(r.Members)
	if n > 0 {
		pr.RolesSid = make([]int32, n)
		pr.Memids = make([]int64, n)
		pr.Types = make([]pbfproto.MemberType, n)
		var memDelta deltaTracker
		for i, m := range r.Members {
			pr.RolesSid[i] = e.block.strings.record(m.Role)
			pr.Memids[i] = memDelta.update(m.Ref)
			switch m.Type {
			case osm.TypeNode:
				pr.Types[i] = pbfproto.MemberNode
			case osm.TypeWay:
				pr.Types[i] = pbfproto.MemberWay
			case osm.TypeRelation:
				pr.Types[i] = pbfproto.MemberRelation
			default:
				return fmt.Errorf("%w: %q", ErrInvalidMemberType, m.Type)
			}
		}
	}

	if e.cfg.ShouldAddMetadata {
		pr.Info = e.buildInfo(r.Version, r.Timestamp, int64(r.ChangesetID), int32(r.UserID), r.User, r.Visible)
	}

	group := e.block.relationsGroup()
	group.Relations = append(group.Relations, pr)
	e.block.entityCount++
	e.block.estimatedSize += len(pr.Marshal())
	return nil
}
