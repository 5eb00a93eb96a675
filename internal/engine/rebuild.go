package engine

import (
	"regexp"
	"sort"

	"github.com/arjunvarma/recordstore/internal/avlindex"
	"github.com/arjunvarma/recordstore/internal/logstore"
)

// idPattern extracts the key from a record's JSON body by lightweight
// textual scan, per the spec's "duck-typed record payload" design note: the
// engine never otherwise parses the payload.
var idPattern = regexp.MustCompile(`"id":"([^"]*)"`)

// rebuildFromLog reconstructs the index by scanning the log from the start.
// It indexes every key at its frame anchor offset — the same offset append
// uses — rather than the byte offset of the JSON line, which is what keeps
// a post-rebuild get() reading the correct frame.
func rebuildFromLog(s scanner) ([]avlindex.Entry, error) {
	byKey := make(map[string]int64)
	var order []string

	err := s.Scan(func(anchor int64, payload []byte) error {
		match := idPattern.FindSubmatch(payload)
		if match == nil {
			return nil
		}

		key := string(match[1])
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = anchor
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]avlindex.Entry, 0, len(order))
	for _, key := range order {
		entries = append(entries, avlindex.Entry{Key: key, Offset: byKey[key]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// scanner is the subset of *logstore.LogStore rebuild depends on, kept
// narrow so the rebuild path is independently testable against a fake.
type scanner interface {
	Scan(visit logstore.FrameVisitor) error
}
