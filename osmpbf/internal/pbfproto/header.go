package pbfproto

// HeaderBBox is osmformat.proto's HeaderBBox: a bounding box expressed in
// 10^-9 degree fixed-point, independent of any PrimitiveBlock granularity.
type HeaderBBox struct {
	Left, Right, Top, Bottom int64
}

func (b *HeaderBBox) Marshal() []byte {
	var dst []byte
	dst = appendSint64Field(dst, 1, b.Left)
	dst = appendSint64Field(dst, 2, b.Right)
	dst = appendSint64Field(dst, 3, b.Top)
	dst = appendSint64Field(dst, 4, b.Bottom)
	return dst
}

// HeaderBlock is osmformat.proto's HeaderBlock: the file-level metadata
// block that must precede every PrimitiveBlock.
type HeaderBlock struct {
	Bbox             *HeaderBBox
	RequiredFeatures []string
	OptionalFeatures []string
	WritingProgram   string
}

func (h *HeaderBlock) Marshal() []byte {
	var dst []byte
	if h.Bbox != nil {
		dst = appendBytesField(dst, 1, h.Bbox.Marshal())
	}
	for _, f := range h.RequiredFeatures {
		dst = appendStringField(dst, 4, f)
	}
	for _, f := range h.OptionalFeatures {
		dst = appendStringField(dst, 5, f)
	}
	if h.WritingProgram != "" {
		dst = appendStringField(dst, 16, h.WritingProgram)
	}
	return dst
}
