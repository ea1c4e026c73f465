package waitlist

import "log"

// A frontier of items waiting to be processed.
//
// The order in which items are removed is determined by the implementation.
type Waitlist[T any] interface {
	Add(item T)
	AddAll(items []T)
	// Remove the next item. Must not be called on an empty waitlist.
	Remove() T
	IsEmpty() bool
	Size() int
	Clear()
}

type kind int

const (
	fifo kind = iota
	lifo
	random
)

// Determines the exploration order by selecting the waitlist used as frontier.
type SearchStrategy struct {
	kind kind
	seed int64
}

var (
	// Breadth first search. Items are removed in the order they were added.
	BFS = SearchStrategy{kind: fifo}
	// Depth first search. The most recently added item is removed first.
	DFS = SearchStrategy{kind: lifo}
)

// Randomly picks the next item from the waitlist.
//
// The seed makes the exploration order reproducible.
func Random(seed int64) SearchStrategy {
	return SearchStrategy{kind: random, seed: seed}
}

func (s SearchStrategy) String() string {
	switch s.kind {
	case fifo:
		return "BFS"
	case lifo:
		return "DFS"
	case random:
		return "Random"
	default:
		return "Unknown"
	}
}

// Create an empty waitlist for the search strategy
func Create[T any](s SearchStrategy) Waitlist[T] {
	switch s.kind {
	case fifo:
		return NewFifo[T]()
	case lifo:
		return NewLifo[T]()
	case random:
		return NewRandom[T](s.seed)
	}
	log.Panicf("Waitlist: unknown search strategy %v", s.kind)
	return nil
}
