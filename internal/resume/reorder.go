package resume

import (
	"fmt"
	"sort"
)

// Reorder moves the section at position from to position to and reassigns
// OrderIndex as 0..N-1 in the final order. The result is a permutation of the
// input; the input slice is not modified.
func Reorder(sections []Section, from, to int) ([]Section, error) {
	n := len(sections)
	if from < 0 || from >= n {
		return nil, fmt.Errorf("source index %d out of range [0,%d)", from, n)
	}
	if to < 0 || to >= n {
		return nil, fmt.Errorf("destination index %d out of range [0,%d)", to, n)
	}

	out := make([]Section, n)
	copy(out, sections)

	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]Section{moved}, out[to:]...)...)

	for i := range out {
		out[i].OrderIndex = i
	}
	return out, nil
}

// Normalize sorts sections by OrderIndex ascending and rewrites the indexes to
// be contiguous from zero. Rows that went gapped or duplicated (e.g. after a
// crash mid-reorder under the old per-row scheme) come back consistent.
func Normalize(sections []Section) []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	for i := range out {
		out[i].OrderIndex = i
	}
	return out
}
