package pbfproto

// Way is osmformat.proto's Way message.
type Way struct {
	Id   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Refs []int64 // delta-encoded node references
}

func (w *Way) Marshal() []byte {
	var dst []byte
	dst = appendInt64Field(dst, 1, w.Id)
	dst = appendPackedUint32(dst, 2, w.Keys)
	dst = appendPackedUint32(dst, 3, w.Vals)
	if w.Info != nil {
		dst = appendBytesField(dst, 4, w.Info.Marshal())
	}
	dst = appendPackedSint64(dst, 8, w.Refs)
	return dst
}
