package pbfproto

// StringTable is osmformat.proto's StringTable: every string referenced by
// a PrimitiveBlock, addressed by position (index 0 is always the empty
// string).
type StringTable struct {
	S [][]byte
}

func (t *StringTable) Marshal() []byte {
	var dst []byte
	for _, s := range t.S {
		dst = appendBytesField(dst, 1, s)
	}
	return dst
}
