package avlindex

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// ErrOutOfRange is returned by At when the requested position is beyond the
// number of entries currently held by the index.
var ErrOutOfRange = fmt.Errorf("position out of range")

func height(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func size(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func balanceFactor(n *node) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func touch(n *node) {
	n.height = 1 + max(height(n.left), height(n.right))
	n.size = 1 + size(n.left) + size(n.right)
}

// rightRotate rotates root's left child up. root.left must be non-nil.
func rightRotate(root *node) *node {
	son := root.left
	gson := son.right

	son.right = root
	root.left = gson

	touch(root)
	touch(son)
	return son
}

// leftRotate rotates root's right child up. root.right must be non-nil.
func leftRotate(root *node) *node {
	son := root.right
	gson := son.left

	son.left = root
	root.right = gson

	touch(root)
	touch(son)
	return son
}

// rebalance applies at most one of the four rotation patterns at root,
// chosen from the current balance factor, and returns the (possibly new)
// subtree root. Used identically after insertion and deletion.
func rebalance(root *node) *node {
	touch(root)
	bf := balanceFactor(root)

	if bf > 1 {
		if balanceFactor(root.left) < 0 {
			root.left = leftRotate(root.left) // LR
		}
		return rightRotate(root) // LL (or completed LR)
	}
	if bf < -1 {
		if balanceFactor(root.right) > 0 {
			root.right = rightRotate(root.right) // RL
		}
		return leftRotate(root) // RR (or completed RL)
	}
	return root
}

// Insert adds key with offset if absent, or overwrites the stored offset if
// key is already present. It reports whether the key was newly added.
func (idx *Index) Insert(key string, offset int64) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	added := false
	idx.root, added = insert(idx.root, key, offset)
	return added
}

func insert(n *node, key string, offset int64) (*node, bool) {
	if n == nil {
		return &node{key: key, offset: offset, height: 1, size: 1}, true
	}

	var added bool
	switch {
	case key < n.key:
		n.left, added = insert(n.left, key, offset)
	case key > n.key:
		n.right, added = insert(n.right, key, offset)
	default:
		n.offset = offset
		return n, false
	}

	return rebalance(n), added
}

// Lookup returns the offset stored for key, if present.
func (idx *Index) Lookup(key string) (int64, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	n := idx.root
	for n != nil {
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return n.offset, true
		}
	}
	return 0, false
}

// Delete removes key if present, reporting whether a removal occurred.
func (idx *Index) Delete(key string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	removed := false
	idx.root, removed = delete_(idx.root, key)
	return removed
}

func delete_(n *node, key string) (*node, bool) {
	if n == nil {
		return nil, false
	}

	var removed bool
	switch {
	case key < n.key:
		n.left, removed = delete_(n.left, key)
	case key > n.key:
		n.right, removed = delete_(n.right, key)
	default:
		removed = true
		switch {
		case n.left == nil:
			return n.right, true
		case n.right == nil:
			return n.left, true
		default:
			successor := leftmost(n.right)
			// Copy both fields atomically before recursing.
			n.key, n.offset = successor.key, successor.offset
			n.right, _ = delete_(n.right, successor.key)
		}
	}

	if !removed {
		return n, false
	}
	return rebalance(n), true
}

func leftmost(n *node) *node {
	for n.left != nil {
		n = n.left
	}
	return n
}

// At returns the i-th (0-indexed) entry in ascending key order.
func (idx *Index) At(i int) (Entry, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if i < 0 || i >= size(idx.root) {
		return Entry{}, ErrOutOfRange
	}

	n := idx.root
	for {
		l := size(n.left)
		switch {
		case i < l:
			n = n.left
		case i == l:
			return Entry{Key: n.key, Offset: n.offset}, nil
		default:
			i -= l + 1
			n = n.right
		}
	}
}

// Range returns up to limit consecutive entries starting at positional
// index offset, ascending by key. It returns fewer than limit if the tail
// of the index is reached, and an empty slice if offset is out of range.
func (idx *Index) Range(offset, limit int) []Entry {
	if limit <= 0 {
		return nil
	}

	idx.mu.RLock()
	total := size(idx.root)
	idx.mu.RUnlock()

	if offset < 0 || offset >= total {
		return nil
	}

	n := total - offset
	if limit < n {
		n = limit
	}

	out := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		e, err := idx.At(offset + i)
		if err != nil {
			break
		}
		out = append(out, e)
	}
	return out
}

// InOrder returns every entry in ascending key order. The index's contract
// describes this as a finite, non-restartable lazy sequence; a slice is the
// idiomatic Go rendering of that since there is no mid-sequence resume
// requirement to justify a stateful cursor.
func (idx *Index) InOrder() []Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]Entry, 0, size(idx.root))
	var walk func(*node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, Entry{Key: n.key, Offset: n.offset})
		walk(n.right)
	}
	walk(idx.root)
	return out
}

// BulkLoad replaces the index's contents with entries, which the caller
// guarantees is already sorted ascending by key with no duplicates. It
// builds a perfectly balanced tree in O(n) rather than performing n
// individual inserts.
func (idx *Index) BulkLoad(entries []Entry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.root = buildBalanced(entries)
}

func buildBalanced(entries []Entry) *node {
	if len(entries) == 0 {
		return nil
	}
	mid := len(entries) / 2
	n := &node{key: entries[mid].Key, offset: entries[mid].Offset}
	n.left = buildBalanced(entries[:mid])
	n.right = buildBalanced(entries[mid+1:])
	touch(n)
	return n
}

// Size returns the number of distinct keys currently held by the index.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return size(idx.root)
}

// Dump renders the tree's structure for debugging and tests.
func (idx *Index) Dump() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return spew.Sdump(idx.root)
}
