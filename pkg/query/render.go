package query

import (
	"strconv"

	"github.com/aretw0/pilha/pkg/output"
)

const (
	// TopLabel names position 0.
	TopLabel = "Now"
	// UnknownLabel stands in for a missing creation time.
	UnknownLabel = "unknown"
)

// Rows renders entries as (position, contents, created) rows.
func Rows(entries []Entry, f output.Format) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			PositionLabel(e.Position, f),
			e.Item.Contents,
			CreatedLabel(e, f),
		})
	}
	return rows
}

// PositionLabel renders a display position. Human output pads numbers so
// they line up with "Now"; other formats print the plain number.
func PositionLabel(position int, f output.Format) string {
	if !f.IsHuman() {
		return strconv.Itoa(position)
	}
	switch {
	case position == 0:
		return TopLabel
	case position < 10:
		return "  " + strconv.Itoa(position)
	case position < 100:
		return " " + strconv.Itoa(position)
	default:
		return strconv.Itoa(position)
	}
}

// CreatedLabel formats the item's creation time, or "unknown".
func CreatedLabel(e Entry, f output.Format) string {
	at, ok := e.Item.Created()
	if !ok {
		return UnknownLabel
	}
	return f.FormatTime(at)
}
