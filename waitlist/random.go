package waitlist

import (
	"log"
	"math/rand"
)

// A waitlist that randomly picks the next item.
//
// It is useful for sampling a large state space, where the exploration order of the
// systematic strategies would keep the search in one region for a long time.
type Rand[T any] struct {
	items []T
	rand  *rand.Rand
}

func NewRandom[T any](seed int64) *Rand[T] {
	return &Rand[T]{
		items: make([]T, 0),
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (r *Rand[T]) Add(item T) {
	r.items = append(r.items, item)
}

func (r *Rand[T]) AddAll(items []T) {
	r.items = append(r.items, items...)
}

func (r *Rand[T]) Remove() T {
	if len(r.items) == 0 {
		log.Panicf("Waitlist: remove from empty waitlist")
	}
	index := r.rand.Intn(len(r.items))
	item := r.items[index]

	// Move the last item into the hole. The order does not matter since items are drawn randomly
	r.items[index] = r.items[len(r.items)-1]
	r.items = r.items[:len(r.items)-1]
	return item
}

func (r *Rand[T]) IsEmpty() bool {
	return len(r.items) == 0
}

func (r *Rand[T]) Size() int {
	return len(r.items)
}

func (r *Rand[T]) Clear() {
	r.items = make([]T, 0)
}
