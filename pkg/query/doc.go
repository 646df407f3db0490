// Package query implements the read side of a stack: peeking at the top,
// listing windows of items, counting and testing emptiness.
//
// Every listing view goes through the same two steps. Select reverses the
// stored sequence into a most-recent-first view and cuts a window out of it;
// Rows turns that window into display rows. Effects are thin values that load
// a snapshot, pick a Range and hand back a table for the output layer.
package query
