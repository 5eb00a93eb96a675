// Package options provides data structures and functions for configuring
// recordstore. It defines the parameters that control where the log and
// snapshot files live, how large a page is, and how many synthetic records
// a fresh store seeds itself with on first boot.
package options

import "strings"

// Options defines the configuration parameters for a recordstore instance.
type Options struct {
	// Specifies the base path where the log and snapshot files live.
	//
	// Default: "/var/lib/recordstore"
	DataDir string `json:"dataDir" yaml:"dataDir"`

	// Filename of the append-only log within DataDir.
	//
	// Default: "users.jsonl"
	LogFileName string `json:"logFileName" yaml:"logFileName"`

	// Filename of the index snapshot sidecar within DataDir.
	//
	// Default: "users.idx"
	IndexFileName string `json:"indexFileName" yaml:"indexFileName"`

	// Number of entries returned by a single Page call.
	//
	// Default: 20
	PageSize int `json:"pageSize" yaml:"pageSize"`

	// Number of synthetic records generated on a fresh boot with no
	// existing log file. Zero disables seeding.
	//
	// Default: 0
	SeedCount int `json:"seedCount" yaml:"seedCount"`
}

// OptionFunc is a function type that modifies recordstore's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions applies a predefined set of default configuration
// values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		defaults := NewDefaultOptions()
		o.DataDir = defaults.DataDir
		o.LogFileName = defaults.LogFileName
		o.IndexFileName = defaults.IndexFileName
		o.PageSize = defaults.PageSize
		o.SeedCount = defaults.SeedCount
	}
}

// WithOptions replaces the entire configuration with src, typically a copy
// decoded from a config file via LoadYAML. Apply it before any other
// OptionFunc so narrower overrides (explicit flags) still win.
func WithOptions(src Options) OptionFunc {
	return func(o *Options) {
		*o = src
	}
}

// WithDataDir sets the primary data directory for recordstore.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithLogFileName sets the filename of the append-only log.
func WithLogFileName(name string) OptionFunc {
	return func(o *Options) {
		name = strings.TrimSpace(name)
		if name != "" {
			o.LogFileName = name
		}
	}
}

// WithIndexFileName sets the filename of the index snapshot sidecar.
func WithIndexFileName(name string) OptionFunc {
	return func(o *Options) {
		name = strings.TrimSpace(name)
		if name != "" {
			o.IndexFileName = name
		}
	}
}

// WithPageSize overrides the number of entries returned by Page.
func WithPageSize(size int) OptionFunc {
	return func(o *Options) {
		if size >= MinPageSize && size <= MaxPageSize {
			o.PageSize = size
		}
	}
}

// WithSeedCount sets how many synthetic records a fresh store seeds itself
// with on first boot.
func WithSeedCount(count int) OptionFunc {
	return func(o *Options) {
		if count >= 0 {
			o.SeedCount = count
		}
	}
}
