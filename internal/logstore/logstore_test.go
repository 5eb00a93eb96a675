package logstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunvarma/recordstore/internal/logstore"
	"github.com/arjunvarma/recordstore/pkg/logger"
)

func newTestStore(t *testing.T) *logstore.LogStore {
	t.Helper()

	dir := t.TempDir()
	ls, err := logstore.New(&logstore.Config{
		Path:   filepath.Join(dir, "records.jsonl"),
		Logger: logger.Noop(),
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = ls.Close() })
	return ls
}

func TestLogStore_AppendThenReadFrame(t *testing.T) {
	t.Parallel()

	ls := newTestStore(t)

	anchor, err := ls.Append([]byte(`{"id":"a"}` + "\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), anchor, "first frame's anchor is the start of the file")

	payload, err := ls.ReadFrame(anchor)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"a"}`+"\n", string(payload))
}

func TestLogStore_SuccessiveAppendsAdvanceSize(t *testing.T) {
	t.Parallel()

	ls := newTestStore(t)

	first, err := ls.Append([]byte("aaa\n"))
	require.NoError(t, err)

	second, err := ls.Append([]byte("bb\n"))
	require.NoError(t, err)

	assert.Greater(t, second, first)
	assert.Equal(t, ls.Size(), second+int64(len("bb\n"))+4)
}

func TestLogStore_ReadFrameRejectsOutOfRangeAnchor(t *testing.T) {
	t.Parallel()

	ls := newTestStore(t)
	_, err := ls.Append([]byte("only\n"))
	require.NoError(t, err)

	_, err = ls.ReadFrame(999)
	assert.Error(t, err)
}

func TestLogStore_ScanStopsAtTruncatedTailFrame(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "records.jsonl")

	ls, err := logstore.New(&logstore.Config{Path: path, Logger: logger.Noop()})
	require.NoError(t, err)

	_, err = ls.Append([]byte(`{"id":"one"}` + "\n"))
	require.NoError(t, err)
	_, err = ls.Append([]byte(`{"id":"two"}` + "\n"))
	require.NoError(t, err)
	require.NoError(t, ls.Close())

	// Simulate a write interrupted mid-frame: a length prefix claiming more
	// bytes than are actually present.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.Write([]byte{0, 0, 0, 50, 'x', 'y'})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	ls2, err := logstore.New(&logstore.Config{Path: path, Logger: logger.Noop()})
	require.NoError(t, err)
	defer ls2.Close()

	var seen []string
	err = ls2.Scan(func(anchor int64, payload []byte) error {
		seen = append(seen, string(payload))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{`{"id":"one"}` + "\n", `{"id":"two"}` + "\n"}, seen)
}

func TestLogStore_OperationsFailAfterClose(t *testing.T) {
	t.Parallel()

	ls := newTestStore(t)
	require.NoError(t, ls.Close())

	_, err := ls.Append([]byte("x"))
	assert.ErrorIs(t, err, logstore.ErrLogClosed)

	_, err = ls.ReadFrame(0)
	assert.ErrorIs(t, err, logstore.ErrLogClosed)

	assert.ErrorIs(t, ls.Close(), logstore.ErrLogClosed)
}
