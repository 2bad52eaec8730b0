package osmpbf

import "io"

// FileVariant distinguishes a plain .osm.pbf (current-state) file from a
// .osh.pbf history file that carries multiple versions of the same
// object. It governs whether the header block requires
// "HistoricalInformation" and whether entities default to carrying a
// visible flag.
type FileVariant int

const (
	// VariantNormal is a file holding a single, current version of each
	// object.
	VariantNormal FileVariant = iota
	// VariantHistory is a file that may hold multiple versions of the
	// same object (deleted/superseded versions included).
	VariantHistory
)

// OsmFile is the §6 collaborator the session driver writes through: an
// underlying descriptor, a file-variant tag, and a close operation. The
// reader-side equivalent and the output-format registry that picks an
// OsmFile implementation by extension are both out of scope here; File
// is a minimal concrete implementation callers can construct directly
// around any io.WriteCloser.
type OsmFile interface {
	Writer() io.WriteCloser
	Variant() FileVariant
}

// File is the straightforward OsmFile: it wraps a caller-supplied
// io.WriteCloser (an open *os.File, a network connection, an in-memory
// buffer in tests) with a variant tag.
type File struct {
	w       io.WriteCloser
	variant FileVariant
}

// NewFile wraps w as an OsmFile of the given variant.
func NewFile(w io.WriteCloser, variant FileVariant) *File {
	return &File{w: w, variant: variant}
}

func (f *File) Writer() io.WriteCloser { return f.w }
func (f *File) Variant() FileVariant   { return f.variant }

// Bounds is the file-level bounding box recorded in the header block.
type Bounds struct {
	MinLat, MinLon, MaxLat, MaxLon float64
}

// Meta is the §6 collaborator carrying file-level metadata supplied to
// Encoder.Start: the bounding box (optional) and the writing-program
// name. WritingProgram here takes precedence over WithWritingProgram if
// both are set.
type Meta struct {
	Bounds         *Bounds
	WritingProgram string
}
