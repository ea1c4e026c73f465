package partition

import "golang.org/x/exp/maps"

// Groups items into classes by a projection key.
//
// Used to find the candidates that may cover a node without searching the whole graph.
// Within a class the items are kept in insertion order.
type Partition[T any, K comparable] struct {
	projection func(T) K
	classes    map[K][]T
	size       int
}

// Create an empty partition using the projection to compute the key of an item
func Of[T any, K comparable](projection func(T) K) *Partition[T, K] {
	return &Partition[T, K]{
		projection: projection,
		classes:    make(map[K][]T),
	}
}

func (p *Partition[T, K]) Add(item T) {
	key := p.projection(item)
	p.classes[key] = append(p.classes[key], item)
	p.size++
}

// Returns the items with the same key as the provided item, in insertion order
func (p *Partition[T, K]) Get(item T) []T {
	class := p.classes[p.projection(item)]
	out := make([]T, len(class))
	copy(out, class)
	return out
}

// Returns the items with the same key as the provided item, the most recently added first
func (p *Partition[T, K]) GetRecentFirst(item T) []T {
	class := p.classes[p.projection(item)]
	out := make([]T, len(class))
	for i, v := range class {
		out[len(class)-1-i] = v
	}
	return out
}

func (p *Partition[T, K]) Keys() []K {
	return maps.Keys(p.classes)
}

// Returns the total number of items
func (p *Partition[T, K]) Size() int {
	return p.size
}
