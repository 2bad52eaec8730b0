package osmpbf

import "github.com/AMDmi3/osmium/osmpbf/internal/pbfproto"

// primitiveBlock is spec.md §3's transient, one-in-flight-at-a-time
// accumulation area: up to three optional per-kind groups, the interim
// string table backing all of them, the seven delta trackers the
// dense-node encoder shares across entities, and the two flush-trigger
// counters.
//
// Group allocation follows spec.md §4.4: the first node/way/relation of a
// block allocates its group (sparse nodes and dense nodes share the same
// "first node" slot — exactly one of the two is used per block, gated by
// Config.UseDenseFormat) and groups keep their creation order in `groups`,
// which becomes primitive-block wire order at flush time.
type primitiveBlock struct {
	strings *interimStringTable

	nodes      *pbfproto.PrimitiveGroup // sparse nodes, created lazily
	dense      *pbfproto.DenseNodes     // dense-node payload, created lazily
	denseGroup *pbfproto.PrimitiveGroup // wraps `dense`; tracked so it keeps its wire slot
	ways       *pbfproto.PrimitiveGroup
	relations  *pbfproto.PrimitiveGroup
	groups     []*pbfproto.PrimitiveGroup

	entityCount   int
	estimatedSize int

	idDelta, latDelta, lonDelta deltaTracker
	tsDelta, csDelta, uidDelta  deltaTracker
	userSidDelta                uint32DeltaTracker
}

func newPrimitiveBlock() *primitiveBlock {
	return &primitiveBlock{strings: newInterimStringTable()}
}

// reset clears every piece of per-block state: the string table, all
// delta trackers, both counters, and the group pointers. Called only from
// the block flusher, never mid-block.
func (b *primitiveBlock) reset() {
	b.strings.clear()
	b.nodes = nil
	b.dense = nil
	b.denseGroup = nil
	b.ways = nil
	b.relations = nil
	b.groups = nil
	b.entityCount = 0
	b.estimatedSize = 0
	b.idDelta.clear()
	b.latDelta.clear()
	b.lonDelta.clear()
	b.tsDelta.clear()
	b.csDelta.clear()
	b.uidDelta.clear()
	b.userSidDelta.clear()
}

func (b *primitiveBlock) sparseNodesGroup() *pbfproto.PrimitiveGroup {
	if b.nodes == nil {
		b.nodes = &pbfproto.PrimitiveGroup{}
		b.groups = append(b.groups, b.nodes)
	}
	return b.nodes
}

func (b *primitiveBlock) denseNodes() *pbfproto.DenseNodes {
	if b.dense == nil {
		b.dense = &pbfproto.DenseNodes{}
		b.denseGroup = &pbfproto.PrimitiveGroup{Dense: b.dense}
		b.groups = append(b.groups, b.denseGroup)
	}
	return b.dense
}

func (b *primitiveBlock) waysGroup() *pbfproto.PrimitiveGroup {
	if b.ways == nil {
		b.ways = &pbfproto.PrimitiveGroup{}
		b.groups = append(b.groups, b.ways)
	}
	return b.ways
}

func (b *primitiveBlock) relationsGroup() *pbfproto.PrimitiveGroup {
	if b.relations == nil {
		b.relations = &pbfproto.PrimitiveGroup{}
		b.groups = append(b.groups, b.relations)
	}
	return b.relations
}
