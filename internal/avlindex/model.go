// Package avlindex implements the in-memory order-statistic index that sits
// above internal/logstore: a self-balancing binary search tree keyed on
// record key, with every node additionally carrying the size of its own
// subtree so that "give me the i-th record in ascending key order" runs in
// O(log N) next to the usual point lookup/insert/delete.
//
// The rotation shapes (LL/RR/LR/RL keyed off balance factor) follow the
// height-balanced AVL used by the wider example pack's log-reduction tree;
// what this package adds on top is the subtree_size bookkeeping and the
// positional At/Range operations the spec-derived contract requires.
package avlindex

import "sync"

// node is one entry in the tree: a key mapped to the anchor offset of its
// most recent value in the log. left/right/height/size are structural
// bookkeeping maintained by Insert/Delete/rotations.
type node struct {
	key    string
	offset int64

	left   *node
	right  *node
	height int
	size   int // count of nodes in the subtree rooted here, including itself.
}

// Entry is a (key, offset) pair returned by positional and sequential reads.
type Entry struct {
	Key    string
	Offset int64
}

// Index is the order-statistic AVL tree. The zero value is not usable; use
// New. All exported methods are safe for concurrent use.
type Index struct {
	mu   sync.RWMutex
	root *node
}

// New returns an empty Index.
func New() *Index {
	return &Index{}
}
