package osmpbf

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/AMDmi3/osmium/osmpbf/internal/pbfproto"
)

// frameWriter implements spec.md §4.6's blob framing: a 4-byte big-endian
// length prefix, the BlobHeader bytes, then the Blob bytes, written as
// three consecutive Write calls against the underlying descriptor.
type frameWriter struct {
	w io.Writer
}

func (f *frameWriter) write(headerBytes, blobBytes []byte) error {
	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(headerBytes)))
	if _, err := f.w.Write(lenPrefix[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailed, err)
	}
	if _, err := f.w.Write(headerBytes); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailed, err)
	}
	if _, err := f.w.Write(blobBytes); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailed, err)
	}
	return nil
}

// writeBlob wraps data (an already-serialized HeaderBlock or
// PrimitiveBlock) in a Blob, optionally zlib-compressing it per
// Config.UseCompression, then frames it out through the frame writer. The
// zlib writer and its backing buffer are session-owned and reused across
// every call, as in §9's scratch-buffer note.
func (e *Encoder) writeBlob(data []byte, blobType string) error {
	blob := &pbfproto.Blob{RawSize: int32(len(data))}

	if e.cfg.UseCompression {
		e.compressBuf.Reset()
		if e.zlibWriter == nil {
			zw, err := zlib.NewWriterLevel(&e.compressBuf, zlib.DefaultCompression)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrCompressionFailed, err)
			}
			e.zlibWriter = zw
		} else {
			e.zlibWriter.Reset(&e.compressBuf)
		}
		if _, err := e.zlibWriter.Write(data); err != nil {
			return fmt.Errorf("%w: %v", ErrCompressionFailed, err)
		}
		if err := e.zlibWriter.Close(); err != nil {
			return fmt.Errorf("%w: %v", ErrCompressionFailed, err)
		}
		blob.ZlibData = append([]byte(nil), e.compressBuf.Bytes()...)
	} else {
		blob.Raw = data
	}

	blobBytes := blob.Marshal()
	header := &pbfproto.BlobHeader{Type: blobType, Datasize: int32(len(blobBytes))}
	return e.frame.write(header.Marshal(), blobBytes)
}
