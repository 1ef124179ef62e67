package core

import (
	"cmp"
	"slices"
)

// OrderForDisplay returns a copy of shifts, most recently created first.
// Ordering is by id, not by date: a back-dated shift still shows on top.
func OrderForDisplay(shifts []Shift) []Shift {
	out := slices.Clone(shifts)
	slices.SortStableFunc(out, func(a, b Shift) int {
		return cmp.Compare(b.ID, a.ID)
	})
	return out
}

// FindShift returns the index of the shift with the given id, or -1.
func FindShift(shifts []Shift, id int64) int {
	return slices.IndexFunc(shifts, func(s Shift) bool { return s.ID == id })
}

// NextID returns a creation id derived from nowMillis that is larger than
// every id already present.
func NextID(shifts []Shift, nowMillis int64) int64 {
	id := nowMillis
	for _, s := range shifts {
		if s.ID >= id {
			id = s.ID + 1
		}
	}
	return id
}
