package resume

import (
	"testing"
)

func sampleSections(n int) []Section {
	out := make([]Section, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Section{
			ID:         uint(i + 1),
			Type:       SectionCustom,
			Title:      string(rune('A' + i)),
			OrderIndex: i,
		})
	}
	return out
}

func assertContiguous(t *testing.T, sections []Section) {
	t.Helper()
	seen := make(map[int]bool, len(sections))
	for i, s := range sections {
		if s.OrderIndex != i {
			t.Fatalf("section %d has order index %d", i, s.OrderIndex)
		}
		if seen[s.OrderIndex] {
			t.Fatalf("duplicate order index %d", s.OrderIndex)
		}
		seen[s.OrderIndex] = true
	}
}

func assertPermutation(t *testing.T, before, after []Section) {
	t.Helper()
	if len(before) != len(after) {
		t.Fatalf("length changed: %d -> %d", len(before), len(after))
	}
	ids := make(map[uint]int)
	for _, s := range before {
		ids[s.ID]++
	}
	for _, s := range after {
		ids[s.ID]--
	}
	for id, n := range ids {
		if n != 0 {
			t.Fatalf("section %d appears a different number of times", id)
		}
	}
}

func TestReorderMoveForward(t *testing.T) {
	in := sampleSections(5)
	out, err := Reorder(in, 1, 3)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	assertPermutation(t, in, out)
	assertContiguous(t, out)

	wantIDs := []uint{1, 3, 4, 2, 5}
	for i, s := range out {
		if s.ID != wantIDs[i] {
			t.Fatalf("position %d holds section %d, want %d", i, s.ID, wantIDs[i])
		}
	}
}

func TestReorderMoveBackward(t *testing.T) {
	in := sampleSections(4)
	out, err := Reorder(in, 3, 0)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	assertContiguous(t, out)
	wantIDs := []uint{4, 1, 2, 3}
	for i, s := range out {
		if s.ID != wantIDs[i] {
			t.Fatalf("position %d holds section %d, want %d", i, s.ID, wantIDs[i])
		}
	}
}

func TestReorderNoop(t *testing.T) {
	in := sampleSections(3)
	out, err := Reorder(in, 2, 2)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	for i, s := range out {
		if s.ID != in[i].ID {
			t.Fatal("order changed on same-index move")
		}
	}
	assertContiguous(t, out)
}

func TestReorderAllPairs(t *testing.T) {
	const n = 6
	for from := 0; from < n; from++ {
		for to := 0; to < n; to++ {
			in := sampleSections(n)
			out, err := Reorder(in, from, to)
			if err != nil {
				t.Fatalf("reorder(%d,%d): %v", from, to, err)
			}
			assertPermutation(t, in, out)
			assertContiguous(t, out)
		}
	}
}

func TestReorderDoesNotMutateInput(t *testing.T) {
	in := sampleSections(4)
	if _, err := Reorder(in, 0, 3); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	for i, s := range in {
		if s.OrderIndex != i {
			t.Fatal("input slice was mutated")
		}
	}
}

func TestReorderOutOfRange(t *testing.T) {
	in := sampleSections(3)
	cases := [][2]int{{-1, 0}, {3, 0}, {0, -1}, {0, 3}}
	for _, c := range cases {
		if _, err := Reorder(in, c[0], c[1]); err == nil {
			t.Fatalf("reorder(%d,%d) should fail", c[0], c[1])
		}
	}
}

func TestNormalizeRepairsGapsAndDuplicates(t *testing.T) {
	in := []Section{
		{ID: 1, OrderIndex: 4},
		{ID: 2, OrderIndex: 4},
		{ID: 3, OrderIndex: 0},
		{ID: 4, OrderIndex: 9},
	}
	out := Normalize(in)
	assertContiguous(t, out)
	if out[0].ID != 3 {
		t.Fatalf("lowest index should come first, got section %d", out[0].ID)
	}
	// Stable sort keeps 1 before 2 for the duplicated index.
	if out[1].ID != 1 || out[2].ID != 2 {
		t.Fatalf("duplicate indexes should keep relative order, got %d,%d", out[1].ID, out[2].ID)
	}
	if out[3].ID != 4 {
		t.Fatalf("highest index should come last, got section %d", out[3].ID)
	}
}
