package engine_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunvarma/recordstore/internal/engine"
	"github.com/arjunvarma/recordstore/pkg/logger"
	"github.com/arjunvarma/recordstore/pkg/options"
)

func newTestEngine(t *testing.T, seed int) (*engine.Engine, *options.Options) {
	t.Helper()

	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	opts.SeedCount = seed

	e, err := engine.New(&engine.Config{Options: &opts, Logger: logger.Noop()})
	require.NoError(t, err)

	t.Cleanup(func() { _ = e.Close() })
	return e, &opts
}

type snapshotEntry struct {
	Key    string `json:"key"`
	Offset int64  `json:"offset"`
}

func readSnapshot(t *testing.T, opts *options.Options) []snapshotEntry {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(opts.DataDir, opts.IndexFileName))
	require.NoError(t, err)

	var entries []snapshotEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	return entries
}

func TestEndToEndScenarios(t *testing.T) {
	// Scenario 1: fresh start with seeding persists a consistent snapshot
	// and a non-empty log.
	e, opts := newTestEngine(t, 3)

	stats := e.Stats()
	assert.Equal(t, 3, stats.IndexSize)
	assert.Greater(t, stats.LogSize, int64(0))

	entries := readSnapshot(t, opts)
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Key, entries[i].Key, "snapshot must be sorted ascending")
	}

	seededKey := entries[1].Key

	// Scenario 2: get() returns the seeded payload.
	getResult, err := e.Get(seededKey)
	require.NoError(t, err)
	assert.Contains(t, string(getResult.Record.Payload), seededKey)
	assert.GreaterOrEqual(t, getResult.ElapsedMs, 0.0)

	// Scenario 3: page(1) returns all three seeded records in ascending order.
	pageResult, err := e.Page(1)
	require.NoError(t, err)
	require.Len(t, pageResult.Records, 3)
	for i, rec := range pageResult.Records {
		assert.Equal(t, entries[i].Key, rec.Key)
	}

	// Scenario 4: insert appends one frame and the new key becomes visible
	// at its ascending-key position among the seeded keys. Keys are random
	// UUIDs, so that position is not necessarily the last one.
	sizeBefore := e.Stats().LogSize
	insertResult, err := e.Insert(engine.InsertRequest{Name: "x", Email: "y"})
	require.NoError(t, err)
	assert.Greater(t, e.Stats().LogSize, sizeBefore)
	assert.Equal(t, 4, e.Stats().IndexSize)

	newPage, err := e.Page(1)
	require.NoError(t, err)
	require.Len(t, newPage.Records, 4)
	wantKeys := []string{insertResult.Record.Key}
	for _, entry := range entries {
		wantKeys = append(wantKeys, entry.Key)
	}
	sort.Strings(wantKeys)
	gotKeys := make([]string, 0, len(newPage.Records))
	for _, rec := range newPage.Records {
		gotKeys = append(gotKeys, rec.Key)
	}
	assert.Equal(t, wantKeys, gotKeys)

	// Scenario 5: delete removes the key from lookups but not from the log.
	logSizeBeforeDelete := e.Stats().LogSize
	_, err = e.Delete(seededKey)
	require.NoError(t, err)

	_, err = e.Get(seededKey)
	assert.Error(t, err, "deleted key must no longer be reachable")
	assert.Equal(t, logSizeBeforeDelete, e.Stats().LogSize, "delete must not touch the log")
	assert.Equal(t, 3, e.Stats().IndexSize)

	afterDelete := readSnapshot(t, opts)
	assert.Len(t, afterDelete, 3)

	// Scenario 6a: restarting with the snapshot intact reproduces identical
	// behavior.
	require.NoError(t, e.Close())

	restarted, err := engine.New(&engine.Config{Options: opts, Logger: logger.Noop()})
	require.NoError(t, err)
	assert.Equal(t, 3, restarted.Stats().IndexSize)

	_, err = restarted.Get(seededKey)
	assert.Error(t, err)
	require.NoError(t, restarted.Close())

	// Scenario 6b: deleting the snapshot and restarting rebuilds the index
	// from every key still present in the log.
	require.NoError(t, os.Remove(filepath.Join(opts.DataDir, opts.IndexFileName)))

	rebuilt, err := engine.New(&engine.Config{Options: opts, Logger: logger.Noop()})
	require.NoError(t, err)
	defer rebuilt.Close()

	// Rebuild replays every frame still in the log, including the deleted
	// key's stale frame, so the rebuilt index recovers all four ever-written
	// keys -- the accepted tradeoff of not compacting deleted frames out of
	// the log.
	assert.Equal(t, 4, rebuilt.Stats().IndexSize)

	_, err = rebuilt.Get(insertResult.Record.Key)
	assert.NoError(t, err, "rebuild must recover the inserted key from the log")
}

func TestEngine_PageBoundaries(t *testing.T) {
	e, _ := newTestEngine(t, 0)

	for i := 0; i < 5; i++ {
		_, err := e.Insert(engine.InsertRequest{Name: "n", Email: "e"})
		require.NoError(t, err)
	}

	// page(0) behaves as page(1).
	zero, err := e.Page(0)
	require.NoError(t, err)
	one, err := e.Page(1)
	require.NoError(t, err)
	assert.Equal(t, one.Records, zero.Records)

	// a page past the end is empty, not an error.
	far, err := e.Page(1000)
	require.NoError(t, err)
	assert.Empty(t, far.Records)
}

func TestEngine_InsertThenGetRoundTrips(t *testing.T) {
	e, _ := newTestEngine(t, 0)

	result, err := e.Insert(engine.InsertRequest{Name: "ada", Email: "ada@example.com"})
	require.NoError(t, err)

	got, err := e.Get(result.Record.Key)
	require.NoError(t, err)
	assert.JSONEq(t, string(result.Record.Payload), string(got.Record.Payload))
}

func TestEngine_DoubleDeleteIsIdempotent(t *testing.T) {
	e, _ := newTestEngine(t, 0)

	result, err := e.Insert(engine.InsertRequest{Name: "a", Email: "b"})
	require.NoError(t, err)

	_, err = e.Delete(result.Record.Key)
	require.NoError(t, err)

	_, err = e.Delete(result.Record.Key)
	assert.Error(t, err, "second delete of the same key must report not found")
}

func TestEngine_OperationsFailAfterClose(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	require.NoError(t, e.Close())

	_, err := e.Get("anything")
	assert.ErrorIs(t, err, engine.ErrEngineClosed)

	_, err = e.Insert(engine.InsertRequest{Name: "a"})
	assert.ErrorIs(t, err, engine.ErrEngineClosed)

	assert.ErrorIs(t, e.Close(), engine.ErrEngineClosed)
}
