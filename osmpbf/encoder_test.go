package osmpbf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"testing"
	"time"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

// decodedFrame is one blob-header + blob pair read back off the wire.
type decodedFrame struct {
	blobType string
	payload  []byte // decompressed, if the blob carried zlib_data
}

func readFrames(t *testing.T, data []byte) []decodedFrame {
	t.Helper()
	var frames []decodedFrame
	r := bytes.NewReader(data)
	for r.Len() > 0 {
		var lenPrefix [4]byte
		_, err := io.ReadFull(r, lenPrefix[:])
		require.NoError(t, err)
		headerLen := binary.BigEndian.Uint32(lenPrefix[:])

		headerBytes := make([]byte, headerLen)
		_, err = io.ReadFull(r, headerBytes)
		require.NoError(t, err)

		var blobType string
		var datasize int32
		b := headerBytes
		for len(b) > 0 {
			num, typ, n := protowire.ConsumeTag(b)
			require.Greater(t, n, 0)
			b = b[n:]
			switch {
			case num == 1 && typ == protowire.BytesType:
				v, n := protowire.ConsumeBytes(b)
				require.Greater(t, n, 0)
				blobType = string(v)
				b = b[n:]
			case num == 3 && typ == protowire.VarintType:
				v, n := protowire.ConsumeVarint(b)
				require.Greater(t, n, 0)
				datasize = int32(v)
				b = b[n:]
			default:
				t.Fatalf("unexpected blob header field %d", num)
			}
		}

		blobBytes := make([]byte, datasize)
		_, err = io.ReadFull(r, blobBytes)
		require.NoError(t, err)

		var zlibData []byte
		var rawData []byte
		bb := blobBytes
		for len(bb) > 0 {
			num, typ, n := protowire.ConsumeTag(bb)
			require.Greater(t, n, 0)
			bb = bb[n:]
			switch typ {
			case protowire.VarintType:
				_, n := protowire.ConsumeVarint(bb)
				require.Greater(t, n, 0)
				bb = bb[n:]
			case protowire.BytesType:
				v, n := protowire.ConsumeBytes(bb)
				require.Greater(t, n, 0)
				switch num {
				case 1:
					rawData = v
				case 3:
					zlibData = v
				}
				bb = bb[n:]
			default:
				t.Fatalf("unexpected blob field wire type %v", typ)
			}
		}

		payload := rawData
		if len(zlibData) > 0 {
			zr, err := zlib.NewReader(bytes.NewReader(zlibData))
			require.NoError(t, err)
			payload, err = io.ReadAll(zr)
			require.NoError(t, err)
		}

		frames = append(frames, decodedFrame{blobType: blobType, payload: payload})
	}
	return frames
}

func TestEncoderEmptyFileWritesOnlyHeader(t *testing.T) {
	e, buf := newTestEncoder(t)
	require.NoError(t, e.Start(Meta{}))
	require.NoError(t, e.Close())

	frames := readFrames(t, buf.Bytes())
	require.Len(t, frames, 1)
	assert.Equal(t, "OSMHeader", frames[0].blobType)
}

func TestEncoderHeaderCarriesBoundsAndProgram(t *testing.T) {
	e, buf := newTestEncoder(t, WithWritingProgram("fallback"))
	require.NoError(t, e.Start(Meta{
		Bounds:         &Bounds{MinLat: 51.5, MinLon: -0.2, MaxLat: 51.6, MaxLon: -0.1},
		WritingProgram: "osmpbf-test",
	}))
	require.NoError(t, e.Close())

	frames := readFrames(t, buf.Bytes())
	require.Len(t, frames, 1)

	fields := decodeTopLevel(t, frames[0].payload)
	bboxField, ok := findTop(fields, 1)
	require.True(t, ok)
	bboxFields := decodeTopLevel(t, bboxField.raw)
	left, ok := findTop(bboxFields, 1)
	require.True(t, ok)
	leftVal := protowire.DecodeZigZag(varintOf(t, left.raw))
	assert.Equal(t, int64(-200000000), leftVal)

	program, ok := findTop(fields, 16)
	require.True(t, ok)
	assert.Equal(t, "osmpbf-test", string(program.raw))
}

func TestEncoderFlushesAtMaxBlockEntities(t *testing.T) {
	e, buf := newTestEncoder(t, WithMaxBlockEntities(3), WithMetadata(false))
	require.NoError(t, e.Start(Meta{}))

	for i := 0; i < 7; i++ {
		require.NoError(t, e.WriteNode(&osm.Node{ID: osm.NodeID(i + 1), Lat: 1, Lon: 1, Timestamp: time.Unix(0, 0)}))
	}
	require.NoError(t, e.Close())

	frames := readFrames(t, buf.Bytes())
	// header + ceil(7/3) = 3 data blocks
	require.Len(t, frames, 4)
	for _, f := range frames[1:] {
		assert.Equal(t, "OSMData", f.blobType)
	}
}

func TestEncoderDenseNodeIDResetsAtBlockBoundary(t *testing.T) {
	e, buf := newTestEncoder(t, WithMaxBlockEntities(1), WithMetadata(false), WithCompression(false))
	require.NoError(t, e.Start(Meta{}))
	require.NoError(t, e.WriteNode(&osm.Node{ID: 1000, Lat: 1, Lon: 1, Timestamp: time.Unix(0, 0)}))
	require.NoError(t, e.WriteNode(&osm.Node{ID: 2000, Lat: 1, Lon: 1, Timestamp: time.Unix(0, 0)}))
	require.NoError(t, e.Close())

	frames := readFrames(t, buf.Bytes())
	require.Len(t, frames, 3) // header + 2 single-node blocks

	// Each block's dense.Id[0] must equal the node's own id, not a delta
	// against the previous block's last node — the tracker resets on flush.
	for i, want := range []int64{1000, 2000} {
		group := decodeTopLevel(t, frames[1+i].payload)
		groupField, ok := findTop(group, 2)
		require.True(t, ok)
		groupFields := decodeTopLevel(t, groupField.raw)
		denseField, ok := findTop(groupFields, 2)
		require.True(t, ok)
		denseFields := decodeTopLevel(t, denseField.raw)
		idField, ok := findTop(denseFields, 1)
		require.True(t, ok)
		v, n := protowire.ConsumeVarint(idField.raw)
		require.Greater(t, n, 0)
		assert.Equal(t, want, protowire.DecodeZigZag(v))
	}
}

func TestEncoderWriteObjectDispatches(t *testing.T) {
	e, _ := newTestEncoder(t)
	require.NoError(t, e.Start(Meta{}))
	require.NoError(t, e.WriteObject(&osm.Node{ID: 1, Lat: 1, Lon: 1, Timestamp: time.Unix(0, 0)}))
	require.NoError(t, e.WriteObject(&osm.Way{ID: 1}))
	require.NoError(t, e.WriteObject(&osm.Relation{ID: 1}))
	err := e.WriteObject("not an osm object")
	assert.Error(t, err)
}

// --- minimal top-level field decoder shared by the tests above ---

type topField struct {
	num protowire.Number
	raw []byte
}

func decodeTopLevel(t *testing.T, b []byte) []topField {
	t.Helper()
	var fields []topField
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		require.Greater(t, n, 0)
		b = b[n:]
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			require.Greater(t, n, 0)
			fields = append(fields, topField{num, protowire.AppendVarint(nil, v)})
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			require.Greater(t, n, 0)
			fields = append(fields, topField{num, append([]byte(nil), v...)})
			b = b[n:]
		default:
			t.Fatalf("unexpected wire type %v", typ)
		}
	}
	return fields
}

func findTop(fields []topField, num protowire.Number) (topField, bool) {
	for _, f := range fields {
		if f.num == num {
			return f, true
		}
	}
	return topField{}, false
}

func varintOf(t *testing.T, raw []byte) uint64 {
	t.Helper()
	v, n := protowire.ConsumeVarint(raw)
	require.Greater(t, n, 0)
	return v
}
