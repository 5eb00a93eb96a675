package options

const (
	// DefaultDataDir is the base directory recordstore uses when no other
	// directory is specified during initialization.
	DefaultDataDir = "/var/lib/recordstore"

	// DefaultLogFileName is the default name of the append-only log file.
	DefaultLogFileName = "users.jsonl"

	// DefaultIndexFileName is the default name of the index snapshot sidecar.
	DefaultIndexFileName = "users.idx"

	// DefaultPageSize is the number of entries returned by a single Page call.
	DefaultPageSize = 20

	// MinPageSize is the smallest page size WithPageSize will accept.
	MinPageSize = 1

	// MaxPageSize is the largest page size WithPageSize will accept.
	MaxPageSize = 1000

	// DefaultSeedCount is the number of synthetic records generated on a
	// fresh boot when seeding isn't explicitly configured.
	DefaultSeedCount = 0
)

// defaultOptions holds the default configuration settings for a
// recordstore instance.
var defaultOptions = Options{
	DataDir:       DefaultDataDir,
	LogFileName:   DefaultLogFileName,
	IndexFileName: DefaultIndexFileName,
	PageSize:      DefaultPageSize,
	SeedCount:     DefaultSeedCount,
}

// NewDefaultOptions returns a copy of the default configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
