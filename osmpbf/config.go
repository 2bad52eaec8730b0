package osmpbf

// Size limits from the PBF format itself (fileformat.proto's comments):
// a blob's uncompressed payload should stay under 16 MiB and must never
// exceed 32 MiB. maxUncompressedBlobSize is the hard ceiling; a block is
// flushed once its estimated size exceeds fillThresholdPercent of it
// (about 30.4 MiB). The estimate counts ways and relations only.
const (
	maxUncompressedBlobSize = 32 * 1024 * 1024
	fillThresholdPercent    = 95
	lonLatResolution        = 1e9
)

// Config holds the immutable-after-construction settings of an Encoder.
// It is assembled from defaults plus any EncoderOptions passed to
// NewEncoder.
type Config struct {
	UseDenseFormat      bool
	UseCompression      bool
	ShouldAddMetadata   bool
	AddVisible          bool
	LocationGranularity int32
	DateGranularity     int32
	WritingProgram      string
	MaxBlockEntities    int
	OptionalFeatures    []string
	Bbox                *boundingBox
}

type boundingBox struct {
	minLat, minLon, maxLat, maxLon float64
}

func defaultConfig(addVisible bool) Config {
	return Config{
		UseDenseFormat:      true,
		UseCompression:      true,
		ShouldAddMetadata:   true,
		AddVisible:          addVisible,
		LocationGranularity: 100,
		DateGranularity:     1000,
		WritingProgram:      "github.com/AMDmi3/osmium/osmpbf",
		MaxBlockEntities:    8000,
	}
}

// EncoderOption configures an Encoder at construction time.
type EncoderOption func(*Config)

// WithDenseFormat toggles the columnar DenseNodes node encoding. Enabled by
// default.
func WithDenseFormat(enable bool) EncoderOption {
	return func(c *Config) { c.UseDenseFormat = enable }
}

// WithCompression toggles zlib compression of block payloads. Enabled by
// default.
func WithCompression(enable bool) EncoderOption {
	return func(c *Config) { c.UseCompression = enable }
}

// WithMetadata toggles whether version/timestamp/changeset/uid/user
// metadata is attached to each entity. Enabled by default.
func WithMetadata(enable bool) EncoderOption {
	return func(c *Config) { c.ShouldAddMetadata = enable }
}

// WithVisibleFlag overrides the derived default for whether a `visible`
// flag is attached to entities. By default this follows the OsmFile
// variant passed to NewEncoder (set only for history files).
func WithVisibleFlag(enable bool) EncoderOption {
	return func(c *Config) { c.AddVisible = enable }
}

// WithLocationGranularity sets the coordinate scaling factor in
// nanodegrees. Default 100 (~1cm at the equator).
func WithLocationGranularity(granularity int32) EncoderOption {
	return func(c *Config) { c.LocationGranularity = granularity }
}

// WithDateGranularity sets the timestamp scaling factor in milliseconds.
// Default 1000.
func WithDateGranularity(granularity int32) EncoderOption {
	return func(c *Config) { c.DateGranularity = granularity }
}

// WithWritingProgram sets the writingprogram field of the header block.
func WithWritingProgram(program string) EncoderOption {
	return func(c *Config) { c.WritingProgram = program }
}

// WithMaxBlockEntities overrides the entity-count flush threshold. Default
// 8000, matching Osmosis and Osmium.
func WithMaxBlockEntities(max int) EncoderOption {
	return func(c *Config) { c.MaxBlockEntities = max }
}

// WithOptionalFeatures appends to the header block's optional_features
// list (required_features is computed from Config and the OsmFile
// variant, and is not caller-overridable).
func WithOptionalFeatures(features ...string) EncoderOption {
	return func(c *Config) { c.OptionalFeatures = append(c.OptionalFeatures, features...) }
}

// WithBoundingBox sets the header block's bbox, in degrees. The bbox is
// always stored at fixed 10^-9 degree resolution, independent of
// LocationGranularity.
func WithBoundingBox(minLat, minLon, maxLat, maxLon float64) EncoderOption {
	return func(c *Config) {
		c.Bbox = &boundingBox{minLat: minLat, minLon: minLon, maxLat: maxLat, maxLon: maxLon}
	}
}
