// Package core holds the stack domain: items, their history and the
// repository port the query engine reads from.
package core

import "time"

// Well-known history statuses.
const (
	StatusCreated   = "created"
	StatusCompleted = "completed"
	StatusDeleted   = "deleted"
	StatusRestored  = "restored"
)

// HistoryEntry records one lifecycle event of an Item.
type HistoryEntry struct {
	Status string    `json:"status" yaml:"status"`
	At     time.Time `json:"at" yaml:"at"`
}

// Item is a single pushed note.
// Contents is never empty; History is append-only and ordered by occurrence.
type Item struct {
	Contents string         `json:"contents" yaml:"contents"`
	History  []HistoryEntry `json:"history,omitempty" yaml:"history,omitempty"`
}

// NewItem creates an Item stamped as created at the given time.
func NewItem(contents string, at time.Time) Item {
	return Item{
		Contents: contents,
		History:  []HistoryEntry{{Status: StatusCreated, At: at}},
	}
}

// Created returns the timestamp of the first "created" history entry.
func (i Item) Created() (time.Time, bool) {
	for _, h := range i.History {
		if h.Status == StatusCreated {
			return h.At, true
		}
	}
	return time.Time{}, false
}

// Stack is the persisted shape of a named stack.
// Items are kept in push order: the last element is the top.
type Stack struct {
	Items []Item `json:"items" yaml:"items"`
}

// EventType represents the type of change observed on a stack.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a stored stack.
type Event struct {
	Type      EventType
	Stack     string
	Timestamp time.Time
}

func (e Event) String() string {
	return string(e.Type) + " " + e.Stack
}
