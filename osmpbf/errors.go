package osmpbf

import "errors"

// The error taxonomy from spec.md §7. Callers match against these with
// errors.Is; the wrapping fmt.Errorf calls at the call sites attach the
// underlying cause.
var (
	// ErrIoFailed wraps an underlying write or close failure on the
	// output descriptor.
	ErrIoFailed = errors.New("osmpbf: io failed")

	// ErrCompressionFailed wraps a zlib init/write/close failure.
	ErrCompressionFailed = errors.New("osmpbf: compression failed")

	// ErrInvalidMemberType is returned when a relation member's kind tag
	// is outside {node, way, relation}.
	ErrInvalidMemberType = errors.New("osmpbf: invalid relation member type")

	// ErrInvalidCoordinate is returned when a coordinate is NaN or
	// exceeds the representable range after scaling.
	ErrInvalidCoordinate = errors.New("osmpbf: invalid coordinate")
)
