package avlindex_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunvarma/recordstore/internal/avlindex"
)

func TestIndex_InsertAndLookup(t *testing.T) {
	t.Parallel()

	idx := avlindex.New()

	added := idx.Insert("b", 10)
	assert.True(t, added, "first insert of a key should report added")

	added = idx.Insert("b", 20)
	assert.False(t, added, "re-inserting an existing key should not report added")

	offset, ok := idx.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, int64(20), offset, "lookup should reflect the replaced offset")

	_, ok = idx.Lookup("missing")
	assert.False(t, ok)
}

func TestIndex_DeleteReportsRemoval(t *testing.T) {
	t.Parallel()

	idx := avlindex.New()
	idx.Insert("a", 1)

	removed := idx.Delete("a")
	assert.True(t, removed)

	removed = idx.Delete("a")
	assert.False(t, removed, "deleting an absent key should report no removal")

	assert.Equal(t, 0, idx.Size())
}

func TestIndex_AtIsPositionalInAscendingKeyOrder(t *testing.T) {
	t.Parallel()

	idx := avlindex.New()
	keys := []string{"delta", "alpha", "charlie", "bravo", "echo"}
	for i, k := range keys {
		idx.Insert(k, int64(i))
	}

	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	for i, want := range sorted {
		entry, err := idx.At(i)
		require.NoError(t, err)
		assert.Equal(t, want, entry.Key)
	}

	_, err := idx.At(len(sorted))
	assert.ErrorIs(t, err, avlindex.ErrOutOfRange)
}

func TestIndex_RangeMatchesRepeatedAt(t *testing.T) {
	t.Parallel()

	idx := avlindex.New()
	for i := 0; i < 50; i++ {
		idx.Insert(randomishKey(i), int64(i))
	}

	for start := 0; start < 55; start += 7 {
		got := idx.Range(start, 5)

		var want []avlindex.Entry
		for i := start; i < start+5; i++ {
			e, err := idx.At(i)
			if err != nil {
				break
			}
			want = append(want, e)
		}
		assert.Equal(t, want, got)
	}
}

func TestIndex_RangeEmptyWhenOffsetBeyondSize(t *testing.T) {
	t.Parallel()

	idx := avlindex.New()
	idx.Insert("only", 0)

	assert.Empty(t, idx.Range(5, 10))
}

func TestIndex_InOrderIsSortedAndComplete(t *testing.T) {
	t.Parallel()

	idx := avlindex.New()
	n := 200
	perm := rand.New(rand.NewSource(1)).Perm(n)
	for _, i := range perm {
		idx.Insert(randomishKey(i), int64(i))
	}

	entries := idx.InOrder()
	require.Len(t, entries, n)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Key, entries[i].Key, "in-order sequence must be ascending")
	}
}

func TestIndex_BulkLoadReplacesContents(t *testing.T) {
	t.Parallel()

	idx := avlindex.New()
	idx.Insert("stale", 99)

	entries := []avlindex.Entry{
		{Key: "a", Offset: 1},
		{Key: "b", Offset: 2},
		{Key: "c", Offset: 3},
	}
	idx.BulkLoad(entries)

	assert.Equal(t, 3, idx.Size())
	_, ok := idx.Lookup("stale")
	assert.False(t, ok, "bulk load must discard prior contents")

	assert.Equal(t, entries, idx.InOrder())
}

func TestIndex_DeleteInterleavedWithInsertKeepsSizeAndOrder(t *testing.T) {
	t.Parallel()

	idx := avlindex.New()
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("index state at failure:\n%s", idx.Dump())
		}
	})

	r := rand.New(rand.NewSource(7))
	live := map[string]bool{}

	for i := 0; i < 500; i++ {
		k := randomishKey(r.Intn(100))
		if r.Intn(2) == 0 {
			idx.Insert(k, int64(i))
			live[k] = true
		} else {
			idx.Delete(k)
			delete(live, k)
		}
	}

	assert.Equal(t, len(live), idx.Size())

	entries := idx.InOrder()
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Key, entries[i].Key)
	}
}

func randomishKey(i int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	if i == 0 {
		return string(alphabet[0])
	}
	var b []byte
	for i > 0 {
		b = append([]byte{alphabet[i%len(alphabet)]}, b...)
		i /= len(alphabet)
	}
	return string(b)
}
