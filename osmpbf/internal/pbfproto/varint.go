// Package pbfproto implements the wire-level messages of the OSM PBF
// container format (fileformat.proto and osmformat.proto) by hand,
// appending directly onto a byte slice with protowire's tag/varint/bytes
// primitives. The field numbers and wire types below mirror the published
// OSM-PBF schema; there is no protoc-generated runtime behind these types.
package pbfproto

import "google.golang.org/protobuf/encoding/protowire"

func appendVarintField(dst []byte, num protowire.Number, v uint64) []byte {
	dst = protowire.AppendTag(dst, num, protowire.VarintType)
	return protowire.AppendVarint(dst, v)
}

func appendInt32Field(dst []byte, num protowire.Number, v int32) []byte {
	return appendVarintField(dst, num, uint64(uint32(v)))
}

func appendInt64Field(dst []byte, num protowire.Number, v int64) []byte {
	return appendVarintField(dst, num, uint64(v))
}

func appendSint64Field(dst []byte, num protowire.Number, v int64) []byte {
	return appendVarintField(dst, num, protowire.EncodeZigZag(v))
}

func appendBoolField(dst []byte, num protowire.Number, v bool) []byte {
	x := uint64(0)
	if v {
		x = 1
	}
	return appendVarintField(dst, num, x)
}

func appendBytesField(dst []byte, num protowire.Number, v []byte) []byte {
	dst = protowire.AppendTag(dst, num, protowire.BytesType)
	return protowire.AppendBytes(dst, v)
}

func appendStringField(dst []byte, num protowire.Number, v string) []byte {
	return appendBytesField(dst, num, []byte(v))
}

// appendPackedVarint packs a repeated plain (non-zigzag) varint field. An
// empty slice contributes nothing to the wire, matching proto2's treatment
// of absent repeated fields.
func appendPackedVarint(dst []byte, num protowire.Number, vals []uint64) []byte {
	if len(vals) == 0 {
		return dst
	}
	var body []byte
	for _, v := range vals {
		body = protowire.AppendVarint(body, v)
	}
	return appendBytesField(dst, num, body)
}

func appendPackedInt32(dst []byte, num protowire.Number, vals []int32) []byte {
	if len(vals) == 0 {
		return dst
	}
	u := make([]uint64, len(vals))
	for i, v := range vals {
		u[i] = uint64(uint32(v))
	}
	return appendPackedVarint(dst, num, u)
}

func appendPackedUint32(dst []byte, num protowire.Number, vals []uint32) []byte {
	if len(vals) == 0 {
		return dst
	}
	u := make([]uint64, len(vals))
	for i, v := range vals {
		u[i] = uint64(v)
	}
	return appendPackedVarint(dst, num, u)
}

func appendPackedSint64(dst []byte, num protowire.Number, vals []int64) []byte {
	if len(vals) == 0 {
		return dst
	}
	u := make([]uint64, len(vals))
	for i, v := range vals {
		u[i] = protowire.EncodeZigZag(v)
	}
	return appendPackedVarint(dst, num, u)
}

func appendPackedSint32(dst []byte, num protowire.Number, vals []int32) []byte {
	if len(vals) == 0 {
		return dst
	}
	u := make([]uint64, len(vals))
	for i, v := range vals {
		u[i] = protowire.EncodeZigZag(int64(v))
	}
	return appendPackedVarint(dst, num, u)
}

func appendPackedBool(dst []byte, num protowire.Number, vals []bool) []byte {
	if len(vals) == 0 {
		return dst
	}
	u := make([]uint64, len(vals))
	for i, v := range vals {
		if v {
			u[i] = 1
		}
	}
	return appendPackedVarint(dst, num, u)
}
