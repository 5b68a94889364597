// Package remap translates resource ids between a source and a
// destination collection during one import.
package remap

import "errors"

// ErrNotMapped is returned by Resolve for ids with no recorded
// mapping. Callers decide the fallback; Resolve never invents one.
var ErrNotMapped = errors.New("id has no recorded mapping")

// Table records source to destination id assignments for a single
// reference namespace. A fresh table is built per import; tables are
// never reused across imports or namespaces.
type Table struct {
	mapping map[int32]int32
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		mapping: make(map[int32]int32),
	}
}

// Record stores the destination id assigned to a source id. Recording
// the same source id again replaces the earlier assignment.
func (t *Table) Record(src, dst int32) {
	t.mapping[src] = dst
}

// Resolve returns the destination id recorded for a source id, or
// ErrNotMapped when none was recorded.
func (t *Table) Resolve(src int32) (int32, error) {
	dst, ok := t.mapping[src]
	if !ok {
		return 0, ErrNotMapped
	}
	return dst, nil
}

// Len returns the number of recorded mappings.
func (t *Table) Len() int {
	return len(t.mapping)
}
