package query

import "github.com/aretw0/pilha/pkg/core"

// NoLimit asks Select for the whole stack.
const NoLimit = -1

// Range describes a window over the most-recent-first view of a stack.
type Range struct {
	// Start is the first display position shown. Ignored when FromEnd is set.
	Start int
	// Limit is the maximum number of entries. Negative means no limit.
	Limit int
	// FromEnd anchors the window at the oldest item instead of the top.
	FromEnd bool
}

// Entry is an item paired with its display position (0 is the top).
type Entry struct {
	Position int
	Item     core.Item
}

// Reverse returns the most-recent-first view of items, which are stored
// oldest first. The input slice is not modified.
func Reverse(items []core.Item) []Entry {
	n := len(items)
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{Position: i, Item: items[n-1-i]}
	}
	return entries
}

// Select cuts the window described by r out of the most-recent-first view.
//
// With FromEnd the window skips the top max(len-limit, 0) entries, so it holds
// the oldest items, each keeping its true position.
func Select(items []core.Item, r Range) []Entry {
	view := Reverse(items)

	limit := r.Limit
	if limit < 0 {
		limit = len(view)
	}

	start := r.Start
	if r.FromEnd {
		start = max(len(view)-limit, 0)
	}
	start = min(max(start, 0), len(view))

	end := len(view)
	if limit < end-start {
		end = start + limit
	}
	return view[start:end]
}
