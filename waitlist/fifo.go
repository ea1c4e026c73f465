package waitlist

import "log"

// A first in, first out waitlist
type Fifo[T any] struct {
	items []T
}

func NewFifo[T any]() *Fifo[T] {
	return &Fifo[T]{items: make([]T, 0)}
}

func (f *Fifo[T]) Add(item T) {
	f.items = append(f.items, item)
}

func (f *Fifo[T]) AddAll(items []T) {
	f.items = append(f.items, items...)
}

func (f *Fifo[T]) Remove() T {
	if len(f.items) == 0 {
		log.Panicf("Waitlist: remove from empty waitlist")
	}
	item := f.items[0]
	// Clear the reference so that the item can be garbage collected
	var zero T
	f.items[0] = zero
	f.items = f.items[1:]
	return item
}

func (f *Fifo[T]) IsEmpty() bool {
	return len(f.items) == 0
}

func (f *Fifo[T]) Size() int {
	return len(f.items)
}

func (f *Fifo[T]) Clear() {
	f.items = make([]T, 0)
}

// A last in, first out waitlist
type Lifo[T any] struct {
	items []T
}

func NewLifo[T any]() *Lifo[T] {
	return &Lifo[T]{items: make([]T, 0)}
}

func (l *Lifo[T]) Add(item T) {
	l.items = append(l.items, item)
}

// Items are pushed in order, so the last item of the slice is removed first
func (l *Lifo[T]) AddAll(items []T) {
	l.items = append(l.items, items...)
}

func (l *Lifo[T]) Remove() T {
	if len(l.items) == 0 {
		log.Panicf("Waitlist: remove from empty waitlist")
	}
	item := l.items[len(l.items)-1]
	l.items = l.items[:len(l.items)-1]
	return item
}

func (l *Lifo[T]) IsEmpty() bool {
	return len(l.items) == 0
}

func (l *Lifo[T]) Size() int {
	return len(l.items)
}

func (l *Lifo[T]) Clear() {
	l.items = make([]T, 0)
}
