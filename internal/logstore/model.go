package logstore

import (
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// lengthPrefixBytes is the width of the big-endian frame length prefix.
// A frame on disk is [4-byte length L][L bytes payload], where payload
// includes its own terminating newline.
const lengthPrefixBytes = 4

// LogStore owns the single append-only data file backing a recordstore
// instance. It is the leaf component of the engine: it knows nothing about
// keys, JSON, or the index, only about writing and reading framed byte
// slices at fixed offsets.
//
// The active file descriptor is held open for the lifetime of the store so
// appends don't pay an open/close round trip; reads open a fresh descriptor
// per call and close it before returning, matching the single-writer,
// many-readers discipline the engine imposes above this layer.
type LogStore struct {
	path   string             // Path to the log file on disk.
	active *os.File           // File handle used for appends; opened once at construction.
	size   atomic.Int64       // Current end-of-file offset, used as the next append anchor.
	mu     sync.Mutex         // Serializes appends; reads don't need it since they use their own fd.
	closed atomic.Bool        // Whether Close has already run.
	log    *zap.SugaredLogger // Structured logger for operational visibility.
}

// Config encapsulates the parameters required to initialize a LogStore.
type Config struct {
	Path   string
	Logger *zap.SugaredLogger
}
