package waitlist

import (
	"testing"

	"golang.org/x/exp/slices"
)

func drain[T any](w Waitlist[T]) []T {
	out := []T{}
	for !w.IsEmpty() {
		out = append(out, w.Remove())
	}
	return out
}

func TestWaitlistOrder(t *testing.T) {
	tests := []struct {
		strategy SearchStrategy
		expected []int
	}{
		{BFS, []int{1, 2, 3, 4}},
		{DFS, []int{4, 3, 2, 1}},
	}
	for _, test := range tests {
		w := Create[int](test.strategy)
		w.Add(1)
		w.AddAll([]int{2, 3, 4})
		if w.Size() != 4 {
			t.Errorf("%v: Expected size 4. Got: %v", test.strategy, w.Size())
		}
		got := drain(w)
		if !slices.Equal(got, test.expected) {
			t.Errorf("%v: Unexpected removal order. Expected: %v Got: %v", test.strategy, test.expected, got)
		}
	}
}

func TestRandomWaitlistIsReproducible(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	w1 := Create[int](Random(42))
	w1.AddAll(items)
	w2 := Create[int](Random(42))
	w2.AddAll(items)

	run1 := drain(w1)
	run2 := drain(w2)
	if !slices.Equal(run1, run2) {
		t.Errorf("Expected the same seed to give the same order. Got: %v and %v", run1, run2)
	}

	slices.Sort(run1)
	if !slices.Equal(run1, items) {
		t.Errorf("Expected every item to be removed exactly once. Got: %v", run1)
	}
}

func TestWaitlistClear(t *testing.T) {
	for _, s := range []SearchStrategy{BFS, DFS, Random(1)} {
		w := Create[string](s)
		w.AddAll([]string{"a", "b"})
		w.Clear()
		if !w.IsEmpty() {
			t.Errorf("%v: Expected waitlist to be empty after Clear. Got size: %v", s, w.Size())
		}
	}
}

func TestRemoveFromEmptyWaitlistPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected a panic when removing from an empty waitlist")
		}
	}()
	NewFifo[int]().Remove()
}
