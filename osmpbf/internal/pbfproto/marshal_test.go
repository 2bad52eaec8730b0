package pbfproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

// field is one decoded (number, wiretype, raw-bytes) triple. Decoding by
// hand here mirrors how the encoders were built: no generated Go types
// exist for this schema, so tests walk the wire format with the same
// protowire primitives the encoders use.
type field struct {
	num protowire.Number
	typ protowire.Type
	raw []byte
}

func decodeFields(t *testing.T, b []byte) []field {
	t.Helper()
	var fields []field
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		require.Greater(t, n, 0, "malformed tag")
		b = b[n:]
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			require.Greater(t, n, 0)
			fields = append(fields, field{num, typ, protowire.AppendVarint(nil, v)})
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			require.Greater(t, n, 0)
			fields = append(fields, field{num, typ, append([]byte{}, v...)})
			b = b[n:]
		default:
			t.Fatalf("unexpected wire type %v", typ)
		}
	}
	return fields
}

func findField(fields []field, num protowire.Number) (field, bool) {
	for _, f := range fields {
		if f.num == num {
			return f, true
		}
	}
	return field{}, false
}

func varint(f field) uint64 {
	v, _ := protowire.ConsumeVarint(f.raw)
	return v
}

func packedVarints(t *testing.T, f field) []uint64 {
	t.Helper()
	var out []uint64
	b := f.raw
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		require.Greater(t, n, 0)
		out = append(out, v)
		b = b[n:]
	}
	return out
}

func TestNodeMarshal(t *testing.T) {
	visible := true
	n := &Node{
		Id:   42,
		Keys: []uint32{1, 2},
		Vals: []uint32{3, 4},
		Info: &Info{Version: 1, Timestamp: 100, Changeset: 7, Uid: 9, UserSid: 5, Visible: &visible},
		Lat:  500000000,
		Lon:  -200000000,
	}

	fields := decodeFields(t, n.Marshal())

	f, ok := findField(fields, 1)
	require.True(t, ok)
	assert.Equal(t, uint64(84), varint(f)) // zigzag(42) == 84

	f, ok = findField(fields, 8)
	require.True(t, ok)
	decoded := protowire.DecodeZigZag(varint(f))
	assert.Equal(t, int64(500000000), decoded)

	f, ok = findField(fields, 4)
	require.True(t, ok)
	infoFields := decodeFields(t, f.raw)
	vf, ok := findField(infoFields, 5)
	require.True(t, ok)
	assert.Equal(t, uint64(5), varint(vf))
}

func TestDenseNodesDeltaFieldsRoundTrip(t *testing.T) {
	d := &DenseNodes{
		Id:  []int64{10, -3, 7}, // deltas, already computed by the caller
		Lat: []int64{1, 1, 1},
		Lon: []int64{-1, 2, -2},
	}

	fields := decodeFields(t, d.Marshal())
	f, ok := findField(fields, 1)
	require.True(t, ok)
	raw := packedVarints(t, f)
	require.Len(t, raw, 3)
	assert.Equal(t, int64(10), protowire.DecodeZigZag(raw[0]))
	assert.Equal(t, int64(-3), protowire.DecodeZigZag(raw[1]))
	assert.Equal(t, int64(7), protowire.DecodeZigZag(raw[2]))
}

func TestWayUsesPlainVarintID(t *testing.T) {
	w := &Way{Id: 123, Refs: []int64{5, -2}}
	fields := decodeFields(t, w.Marshal())

	f, ok := findField(fields, 1)
	require.True(t, ok)
	// Way.id is a plain int64, not sint64: no zigzag.
	assert.Equal(t, uint64(123), varint(f))
}

func TestRelationOmitsEmptyTypes(t *testing.T) {
	r := &Relation{Id: 1}
	fields := decodeFields(t, r.Marshal())
	_, ok := findField(fields, 10)
	assert.False(t, ok, "an empty Types slice must not emit field 10 at all")
}

func TestRelationTypesRoundTrip(t *testing.T) {
	r := &Relation{Id: 1, Types: []MemberType{MemberNode, MemberWay, MemberRelation}}
	fields := decodeFields(t, r.Marshal())
	f, ok := findField(fields, 10)
	require.True(t, ok)
	vals := packedVarints(t, f)
	require.Len(t, vals, 3)
	assert.Equal(t, []uint64{0, 1, 2}, vals)
}

func TestPrimitiveBlockAlwaysEmitsGranularity(t *testing.T) {
	pb := &PrimitiveBlock{Granularity: 100, DateGranularity: 1000}
	fields := decodeFields(t, pb.Marshal())

	f, ok := findField(fields, 17)
	require.True(t, ok)
	assert.Equal(t, uint64(100), varint(f))

	f, ok = findField(fields, 18)
	require.True(t, ok)
	assert.Equal(t, uint64(1000), varint(f))
}

func TestStringTableEmptyFirstEntry(t *testing.T) {
	st := &StringTable{S: [][]byte{[]byte(""), []byte("a"), []byte("b")}}
	fields := decodeFields(t, st.Marshal())
	require.Len(t, fields, 3)
	assert.Equal(t, []byte(""), fields[0].raw)
	assert.Equal(t, []byte("a"), fields[1].raw)
}

func TestBlobOmitsUnusedPayloadField(t *testing.T) {
	b := &Blob{RawSize: 10, ZlibData: []byte{1, 2, 3}}
	fields := decodeFields(t, b.Marshal())
	_, hasRaw := findField(fields, 1)
	assert.False(t, hasRaw)
	_, hasZlib := findField(fields, 3)
	assert.True(t, hasZlib)
}

func TestHeaderBlockRequiredFeaturesOrder(t *testing.T) {
	h := &HeaderBlock{RequiredFeatures: []string{"OsmSchema-V0.6", "DenseNodes"}}
	fields := decodeFields(t, h.Marshal())
	var got []string
	for _, f := range fields {
		if f.num == 4 {
			got = append(got, string(f.raw))
		}
	}
	assert.Equal(t, []string{"OsmSchema-V0.6", "DenseNodes"}, got)
}
