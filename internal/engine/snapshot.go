package engine

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/natefinch/atomic"

	"github.com/arjunvarma/recordstore/internal/avlindex"
	recordserrors "github.com/arjunvarma/recordstore/pkg/errors"
)

// snapshotEntry is the on-disk shape of one (key, offset) pair. Field names
// match the persisted state layout: key and its anchor offset in the log.
type snapshotEntry struct {
	Key    string `json:"key"`
	Offset int64  `json:"offset"`
}

// persistSnapshot writes the index's full in-order enumeration to
// e.snapshotPath as a
// single atomic replacement, so a reader never observes a half-written
// snapshot.
func (e *Engine) persistSnapshot() error {
	entries := e.index.InOrder()

	out := make([]snapshotEntry, len(entries))
	for i, entry := range entries {
		out[i] = snapshotEntry{Key: entry.Key, Offset: entry.Offset}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return recordserrors.NewStorageError(err, recordserrors.ErrorCodeIO, "failed to marshal snapshot").
			WithPath(e.snapshotPath)
	}

	if err := atomic.WriteFile(e.snapshotPath, bytes.NewReader(data)); err != nil {
		return recordserrors.NewStorageError(err, recordserrors.ErrorCodeIO, "failed to persist snapshot").
			WithPath(e.snapshotPath)
	}

	return nil
}

// loadSnapshot reads and parses the snapshot sidecar, returning its entries
// in the order they were written (already sorted ascending by the index
// that produced them). A malformed or unreadable snapshot is reported as a
// CorruptSnapshot error so the caller can fall back to rebuild.
func loadSnapshot(path string) ([]avlindex.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, recordserrors.NewStorageError(err, recordserrors.ErrorCodeCorruptSnapshot, "failed to read snapshot").
			WithPath(path)
	}

	var raw []snapshotEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, recordserrors.NewStorageError(err, recordserrors.ErrorCodeCorruptSnapshot, "failed to parse snapshot").
			WithPath(path)
	}

	entries := make([]avlindex.Entry, len(raw))
	for i, r := range raw {
		entries[i] = avlindex.Entry{Key: r.Key, Offset: r.Offset}
	}
	return entries, nil
}
