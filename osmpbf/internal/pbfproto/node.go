package pbfproto

// Node is osmformat.proto's Node: the sparse (one-message-per-node)
// encoding, used when dense format is disabled.
type Node struct {
	Id   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Lat  int64
	Lon  int64
}

func (n *Node) Marshal() []byte {
	var dst []byte
	dst = appendSint64Field(dst, 1, n.Id)
	dst = appendPackedUint32(dst, 2, n.Keys)
	dst = appendPackedUint32(dst, 3, n.Vals)
	if n.Info != nil {
		dst = appendBytesField(dst, 4, n.Info.Marshal())
	}
	dst = appendSint64Field(dst, 8, n.Lat)
	dst = appendSint64Field(dst, 9, n.Lon)
	return dst
}

// DenseNodes is osmformat.proto's DenseNodes: the columnar, delta-encoded
// layout used for nodes when dense format is enabled.
type DenseNodes struct {
	Id        []int64 // delta-encoded
	DenseInfo *DenseInfo
	Lat       []int64 // delta-encoded
	Lon       []int64 // delta-encoded
	KeysVals  []int32 // flat key/value interleaving, 0-terminated per node
}

func (d *DenseNodes) Marshal() []byte {
	var dst []byte
	dst = appendPackedSint64(dst, 1, d.Id)
	if d.DenseInfo != nil {
		dst = appendBytesField(dst, 5, d.DenseInfo.Marshal())
	}
	dst = appendPackedSint64(dst, 8, d.Lat)
	dst = appendPackedSint64(dst, 9, d.Lon)
	dst = appendPackedInt32(dst, 10, d.KeysVals)
	return dst
}
