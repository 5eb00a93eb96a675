// Package engine composes internal/logstore and internal/avlindex into the
// four user-facing record operations: get, page, insert, delete. It owns
// the startup protocol (seed / rehydrate / rebuild), the index snapshot
// lifecycle, and the single-writer concurrency discipline that keeps the
// log and the index consistent.
package engine

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/arjunvarma/recordstore/internal/avlindex"
	"github.com/arjunvarma/recordstore/internal/logstore"
	"github.com/arjunvarma/recordstore/pkg/options"
)

// Engine is the top-level coordinator for a recordstore instance. Reads
// (Get, Page) take the shared lock for the index lookup; mutations (Insert,
// Delete) take the exclusive lock for the full span of log append, index
// update, and snapshot replace, so no reader ever observes an index entry
// that points at an unappended frame. Seeding runs inside New, before the
// engine is returned to any caller, and takes no lock.
type Engine struct {
	mu      sync.RWMutex
	options *options.Options
	log     *zap.SugaredLogger
	closed  atomic.Bool

	store *logstore.LogStore
	index *avlindex.Index

	logPath      string
	snapshotPath string
}

// Config holds the parameters needed to initialize a new Engine.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// Record is a single stored document: its minted key and its raw JSON body.
type Record struct {
	Key     string          `json:"key"`
	Payload json.RawMessage `json:"payload"`
}

// InsertRequest carries the caller-supplied fields for a new record. Name
// and Email are the two fields the reference deployment uses; any other
// fields a caller wants stored must be added to Fields.
type InsertRequest struct {
	Name   string
	Email  string
	Fields map[string]any
}

// GetResult is the outcome of a successful Get.
type GetResult struct {
	Record    Record
	ElapsedMs float64
}

// PageResult is the outcome of a Page call.
type PageResult struct {
	Records   []Record
	Page      int
	ElapsedMs float64
}

// InsertResult is the outcome of a successful Insert.
type InsertResult struct {
	Record    Record
	ElapsedMs float64
}

// DeleteResult is the outcome of a successful Delete.
type DeleteResult struct {
	ElapsedMs float64
}

// Stats summarizes the engine's current state, primarily for operational
// visibility into unbounded log growth (compaction is out of scope; this
// is the one place growth is surfaced).
type Stats struct {
	IndexSize int
	LogSize   int64
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond)
}
