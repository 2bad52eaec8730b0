package pbfproto

// MemberType mirrors osmformat.proto's Relation.MemberType enum.
type MemberType int32

const (
	MemberNode     MemberType = 0
	MemberWay      MemberType = 1
	MemberRelation MemberType = 2
)

// Relation is osmformat.proto's Relation message.
type Relation struct {
	Id       int64
	Keys     []uint32
	Vals     []uint32
	Info     *Info
	RolesSid []int32
	Memids   []int64 // delta-encoded
	Types    []MemberType
}

func (r *Relation) Marshal() []byte {
	var dst []byte
	dst = appendInt64Field(dst, 1, r.Id)
	dst = appendPackedUint32(dst, 2, r.Keys)
	dst = appendPackedUint32(dst, 3, r.Vals)
	if r.Info != nil {
		dst = appendBytesField(dst, 4, r.Info.Marshal())
	}
	dst = appendPackedInt32(dst, 8, r.RolesSid)
	dst = appendPackedSint64(dst, 9, r.Memids)
	if len(r.Types) > 0 {
		types := make([]int32, len(r.Types))
		for i, t := range r.Types {
			types[i] = int32(t)
		}
		dst = appendPackedInt32(dst, 10, types)
	}
	return dst
}
