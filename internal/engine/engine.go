package engine

import (
	stdErrors "errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/arjunvarma/recordstore/internal/avlindex"
	"github.com/arjunvarma/recordstore/internal/logstore"
	"github.com/arjunvarma/recordstore/pkg/errors"
	"github.com/arjunvarma/recordstore/pkg/filesys"
)

// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
var ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")

// New initializes a new Engine, running the startup protocol described by
// the component design: create-and-optionally-seed on a fresh data
// directory, rehydrate from snapshot on a warm boot with a trusted
// snapshot, or rebuild from the log when the snapshot is absent or corrupt.
func New(config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, fmt.Errorf("invalid engine configuration")
	}

	opts := config.Options
	if err := filesys.CreateDir(opts.DataDir, 0755, true); err != nil {
		return nil, errors.ClassifyDirectoryCreationError(err, opts.DataDir)
	}

	logPath := filepath.Join(opts.DataDir, opts.LogFileName)
	snapshotPath := filepath.Join(opts.DataDir, opts.IndexFileName)

	logExisted, err := filesys.Exists(logPath)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to check log file").WithPath(logPath)
	}

	store, err := logstore.New(&logstore.Config{Path: logPath, Logger: config.Logger})
	if err != nil {
		return nil, err
	}

	e := &Engine{
		options:      opts,
		log:          config.Logger,
		store:        store,
		index:        avlindex.New(),
		logPath:      logPath,
		snapshotPath: snapshotPath,
	}

	if !logExisted {
		config.Logger.Infow("No existing log found, starting fresh", "path", logPath)
		if opts.SeedCount > 0 {
			if err := e.seed(opts.SeedCount); err != nil {
				_ = store.Close()
				return nil, err
			}
		}
		if err := e.persistSnapshot(); err != nil {
			_ = store.Close()
			return nil, err
		}
		return e, nil
	}

	snapshotExisted, err := filesys.Exists(snapshotPath)
	if err != nil {
		_ = store.Close()
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to check snapshot file").WithPath(snapshotPath)
	}

	if snapshotExisted {
		entries, loadErr := loadSnapshot(snapshotPath)
		if loadErr == nil {
			config.Logger.Infow("Rehydrating index from snapshot", "entries", len(entries))
			e.index.BulkLoad(entries)
			return e, nil
		}
		pairs := append([]any{"path", snapshotPath}, errors.LogPairs(loadErr)...)
		config.Logger.Warnw("Snapshot unreadable, falling back to rebuild", pairs...)
	}

	config.Logger.Infow("Rebuilding index from log", "path", logPath)
	entries, err := rebuildFromLog(store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	e.index.BulkLoad(entries)

	if err := e.persistSnapshot(); err != nil {
		_ = store.Close()
		return nil, err
	}

	return e, nil
}

// seed appends n synthetic records with caller-minted unique keys, updating
// the index as each is appended. It is a startup-only convenience, never
// invoked once the engine is serving operations.
func (e *Engine) seed(n int) error {
	for i := 0; i < n; i++ {
		key := uuid.NewString()
		payload, err := buildPayload(key, map[string]any{
			"name":  fmt.Sprintf("Seed User %d", i),
			"email": fmt.Sprintf("seed-%d@example.com", i),
		})
		if err != nil {
			return err
		}

		anchor, err := e.store.Append(payload)
		if err != nil {
			return err
		}
		e.index.Insert(key, anchor)
	}

	e.log.Infow("Seeded synthetic records", "count", n)
	return nil
}

// Close shuts down the engine, releasing the log file handle. Operations
// attempted after Close fail with ErrEngineClosed.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}
	return e.store.Close()
}

// Stats reports the engine's current index size and log file size, the one
// place unbounded log growth (no compaction pass exists) is surfaced.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return Stats{
		IndexSize: e.index.Size(),
		LogSize:   e.store.Size(),
	}
}
