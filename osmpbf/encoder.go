// Package osmpbf implements the block accumulation and encoding engine of
// an .osm.pbf/.osh.pbf writer: it turns a stream of paulmach/osm entities
// into correctly delta-encoded, string-interned, zlib-framed PBF blocks.
//
// An Encoder is a single-threaded, non-reentrant session bound to one
// OsmFile for its whole lifetime: Start once, then any mix of WriteNode,
// WriteWay, WriteRelation and WriteObject calls in the order the format
// requires (nodes, then ways, then relations, for a well-formed non-history
// file, though the encoder itself does not enforce ordering), then Close.
package osmpbf

import (
	"bytes"
	"fmt"
	"math"

	"github.com/klauspost/compress/zlib"
	"github.com/paulmach/osm"

	"github.com/AMDmi3/osmium/osmpbf/internal/pbfproto"
)

// Encoder is the session driver described in spec.md §5: exactly one
// primitiveBlock in flight, no internal goroutines, no locking. Concurrent
// calls from multiple goroutines are not supported.
type Encoder struct {
	cfg    Config
	file   OsmFile
	logger Logger

	block *primitiveBlock
	frame *frameWriter

	compressBuf bytes.Buffer
	zlibWriter  *zlib.Writer

	started bool
}

// NewEncoder constructs an Encoder writing through file, configured by
// opts on top of the defaults (dense format, compression and metadata
// enabled; add_visible defaulted from file's variant, matching
// original_source's FileType::History() check).
func NewEncoder(file OsmFile, opts ...EncoderOption) *Encoder {
	cfg := defaultConfig(file.Variant() == VariantHistory)
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Encoder{
		cfg:    cfg,
		file:   file,
		logger: defaultLogger{},
		block:  newPrimitiveBlock(),
		frame:  &frameWriter{w: file.Writer()},
	}
}

// SetLogger overrides the diagnostic logger; the default writes through
// the standard library's log package.
func (e *Encoder) SetLogger(l Logger) {
	if l != nil {
		e.logger = l
	}
}

// Start writes the file's header block. It must be called exactly once,
// before any Write call. meta.Bounds, when set, takes precedence over a
// bounding box supplied at construction via WithBoundingBox; meta's bounds
// describe this specific file, the option a fallback default for callers
// that build many files with the same encoder configuration.
func (e *Encoder) Start(meta Meta) error {
	hdr := &pbfproto.HeaderBlock{
		RequiredFeatures: e.requiredFeatures(),
		OptionalFeatures: e.cfg.OptionalFeatures,
		WritingProgram:   e.cfg.WritingProgram,
	}
	if meta.WritingProgram != "" {
		hdr.WritingProgram = meta.WritingProgram
	}

	bounds := meta.Bounds
	if bounds == nil && e.cfg.Bbox != nil {
		bounds = &Bounds{
			MinLat: e.cfg.Bbox.minLat,
			MinLon: e.cfg.Bbox.minLon,
			MaxLat: e.cfg.Bbox.maxLat,
			MaxLon: e.cfg.Bbox.maxLon,
		}
	}
	if bounds != nil {
		hdr.Bbox = &pbfproto.HeaderBBox{
			Left:   int64(math.Round(bounds.MinLon * lonLatResolution)),
			Right:  int64(math.Round(bounds.MaxLon * lonLatResolution)),
			Top:    int64(math.Round(bounds.MaxLat * lonLatResolution)),
			Bottom: int64(math.Round(bounds.MinLat * lonLatResolution)),
		}
	}

	e.started = true
	return e.writeBlob(hdr.Marshal(), "OSMHeader")
}

// requiredFeatures computes the header block's required_features per
// spec.md §4.7: the schema tag is always present, DenseNodes is added when
// dense encoding is enabled, and HistoricalInformation is added for
// history-variant files (mirroring original_source's file-type check).
func (e *Encoder) requiredFeatures() []string {
	features := []string{"OsmSchema-V0.6"}
	if e.cfg.UseDenseFormat {
		features = append(features, "DenseNodes")
	}
	if e.file.Variant() == VariantHistory {
		features = append(features, "HistoricalInformation")
	}
	return features
}

// WriteNode ingests a single node.
func (e *Encoder) WriteNode(n *osm.Node) error {
	return e.ingestNode(n)
}

// WriteWay ingests a single way.
func (e *Encoder) WriteWay(w *osm.Way) error {
	return e.ingestWay(w)
}

// WriteRelation ingests a single relation.
func (e *Encoder) WriteRelation(r *osm.Relation) error {
	return e.ingestRelation(r)
}

// WriteObject dispatches by dynamic type, for callers iterating over a
// mixed stream (e.g. an osm.Scanner).
func (e *Encoder) WriteObject(obj interface{}) error {
	switch o := obj.(type) {
	case *osm.Node:
		return e.WriteNode(o)
	case *osm.Way:
		return e.WriteWay(o)
	case *osm.Relation:
		return e.WriteRelation(o)
	default:
		return fmt.Errorf("osmpbf: unsupported object type %T", obj)
	}
}

// Flush forces the in-flight block out immediately, even if neither
// threshold in checkFlush has been crossed. Rarely needed: Close calls it
// automatically for the final, possibly partial, block.
func (e *Encoder) Flush() error {
	return e.flushBlock()
}

// Close flushes any residual block and closes the underlying OsmFile. The
// Encoder must not be used afterward.
func (e *Encoder) Close() error {
	if err := e.flushBlock(); err != nil {
		return err
	}
	if err := e.file.Writer().Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailed, err)
	}
	return nil
}
