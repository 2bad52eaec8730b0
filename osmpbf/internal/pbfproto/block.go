package pbfproto

// PrimitiveGroup is osmformat.proto's PrimitiveGroup: a homogeneous batch
// of entities of a single kind. Exactly one of Nodes/Dense/Ways/Relations
// is populated per group.
type PrimitiveGroup struct {
	Nodes     []*Node
	Dense     *DenseNodes
	Ways      []*Way
	Relations []*Relation
}

func (g *PrimitiveGroup) Marshal() []byte {
	var dst []byte
	for _, n := range g.Nodes {
		dst = appendBytesField(dst, 1, n.Marshal())
	}
	if g.Dense != nil {
		dst = appendBytesField(dst, 2, g.Dense.Marshal())
	}
	for _, w := range g.Ways {
		dst = appendBytesField(dst, 3, w.Marshal())
	}
	for _, r := range g.Relations {
		dst = appendBytesField(dst, 4, r.Marshal())
	}
	return dst
}

// PrimitiveBlock is osmformat.proto's PrimitiveBlock: a string table plus
// one or more primitive groups, with shared coordinate/date granularity.
type PrimitiveBlock struct {
	Stringtable     *StringTable
	Primitivegroup  []*PrimitiveGroup
	Granularity     int32
	DateGranularity int32
}

func (b *PrimitiveBlock) Marshal() []byte {
	var dst []byte
	if b.Stringtable != nil {
		dst = appendBytesField(dst, 1, b.Stringtable.Marshal())
	}
	for _, g := range b.Primitivegroup {
		dst = appendBytesField(dst, 2, g.Marshal())
	}
	dst = appendInt32Field(dst, 17, b.Granularity)
	dst = appendInt32Field(dst, 18, b.DateGranularity)
	// lat_offset/lon_offset (fields 19, 20) are always 0 in this writer and
	// therefore omitted: 0 is their wire default.
	return dst
}
