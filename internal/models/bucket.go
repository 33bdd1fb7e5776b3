package models

import (
	"golang.org/x/text/cases"

	"github.com/thenoetrevino/cadence/internal/types"
)

// BucketSet is the fixed, ordered set of bucket labels valid for one board.
// The order is the display order of the columns.
type BucketSet struct {
	labels []types.Bucket
	index  map[types.Bucket]int
}

// NewBucketSet builds a set from labels, dropping duplicates and empty labels.
func NewBucketSet(labels ...types.Bucket) BucketSet {
	set := BucketSet{index: make(map[types.Bucket]int, len(labels))}
	for _, l := range labels {
		if l == "" {
			continue
		}
		if _, dup := set.index[l]; dup {
			continue
		}
		set.index[l] = len(set.labels)
		set.labels = append(set.labels, l)
	}
	return set
}

// Labels returns the labels in display order.
func (s BucketSet) Labels() []types.Bucket {
	out := make([]types.Bucket, len(s.labels))
	copy(out, s.labels)
	return out
}

// Len returns the number of buckets.
func (s BucketSet) Len() int {
	return len(s.labels)
}

// Contains reports whether b is one of the set's labels (exact match).
func (s BucketSet) Contains(b types.Bucket) bool {
	_, ok := s.index[b]
	return ok
}

// IndexOf returns the display index of b, or -1.
func (s BucketSet) IndexOf(b types.Bucket) int {
	if i, ok := s.index[b]; ok {
		return i
	}
	return -1
}

// Lookup resolves user input to a label using Unicode case folding,
// so "In_Progress" and "in_progress" both match.
func (s BucketSet) Lookup(name string) (types.Bucket, bool) {
	fold := cases.Fold()
	want := fold.String(name)
	for _, l := range s.labels {
		if fold.String(string(l)) == want {
			return l, true
		}
	}
	return "", false
}

// FocusBuckets are the five columns of the focus-item board.
func FocusBuckets() BucketSet {
	return NewBucketSet("backlog", "this_week", "in_progress", "review", "done")
}

// PlaybookBuckets is the single flat list of the Standard Playbook.
func PlaybookBuckets() BucketSet {
	return NewBucketSet(types.BucketAll)
}
