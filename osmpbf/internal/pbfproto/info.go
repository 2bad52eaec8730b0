package pbfproto

// Info is osmformat.proto's Info: per-object metadata attached to a sparse
// Node, Way, or Relation.
type Info struct {
	Version   int32
	Timestamp int64
	Changeset int64
	Uid       int32
	UserSid   uint32
	Visible   *bool
}

func (i *Info) Marshal() []byte {
	var dst []byte
	dst = appendInt32Field(dst, 1, i.Version)
	dst = appendInt64Field(dst, 2, i.Timestamp)
	dst = appendInt64Field(dst, 3, i.Changeset)
	dst = appendInt32Field(dst, 4, i.Uid)
	dst = appendVarintField(dst, 5, uint64(i.UserSid))
	if i.Visible != nil {
		dst = appendBoolField(dst, 6, *i.Visible)
	}
	return dst
}

// DenseInfo is osmformat.proto's DenseInfo: the columnar, delta-encoded
// counterpart of Info used inside a DenseNodes group.
type DenseInfo struct {
	Version   []int32 // plain varint, not delta-encoded
	Timestamp []int64 // delta-encoded, zigzag
	Changeset []int64 // delta-encoded, zigzag
	Uid       []int32 // delta-encoded, zigzag
	UserSid   []int32 // delta-encoded (post string-id remap), zigzag
	Visible   []bool  // present only when add_visible is set
}

func (d *DenseInfo) Marshal() []byte {
	var dst []byte
	dst = appendPackedInt32(dst, 1, d.Version)
	dst = appendPackedSint64(dst, 2, d.Timestamp)
	dst = appendPackedSint64(dst, 3, d.Changeset)
	dst = appendPackedSint32(dst, 4, d.Uid)
	dst = appendPackedSint32(dst, 5, d.UserSid)
	dst = appendPackedBool(dst, 6, d.Visible)
	return dst
}
