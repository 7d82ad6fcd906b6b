package store

import (
	"slices"
	"sync"
)

// Entity is anything the server identifies by id.
type Entity interface {
	EntityID() string
}

// ------------- pure transitions -------------
// None of these mutate their input; callers swap in the returned slice.

// Append returns items with v added at the end.
func Append[T Entity](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, v)
}

// Put returns items with v replacing the entry that has its id, or with
// v appended when there is none. A reload that already picked up v keeps
// it listed once.
func Put[T Entity](items []T, v T) []T {
	if i := IndexOf(items, v.EntityID()); i >= 0 {
		out := slices.Clone(items)
		out[i] = v
		return out
	}
	return Append(items, v)
}

// Update returns items with the entry matching id replaced by fn(entry).
// ok is false (and items returned as-is) when no entry matches.
func Update[T Entity](items []T, id string, fn func(T) T) (out []T, ok bool) {
	i := IndexOf(items, id)
	if i < 0 {
		return items, false
	}
	out = slices.Clone(items)
	out[i] = fn(out[i])
	return out, true
}

// Remove returns items without the entry matching id.
func Remove[T Entity](items []T, id string) (out []T, ok bool) {
	i := IndexOf(items, id)
	if i < 0 {
		return items, false
	}
	out = make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), true
}

func IndexOf[T Entity](items []T, id string) int {
	return slices.IndexFunc(items, func(v T) bool { return v.EntityID() == id })
}

// ------------- container -------------

// List is the in-memory mirror of one server collection, in server order.
// Safe for concurrent use.
type List[T Entity] struct {
	mu    sync.RWMutex
	items []T
}

func NewList[T Entity](items []T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

// Items returns a copy safe to hand to renderers.
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.items)
}

func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func (l *List[T]) Get(id string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := IndexOf(l.items, id); i >= 0 {
		return l.items[i], true
	}
	var zero T
	return zero, false
}

func (l *List[T]) Has(id string) bool {
	_, ok := l.Get(id)
	return ok
}

// Set replaces the whole list, e.g. after a re-fetch.
func (l *List[T]) Set(items []T) {
	l.mu.Lock()
	l.items = slices.Clone(items)
	l.mu.Unlock()
}

// Apply swaps in fn(current) atomically.
func (l *List[T]) Apply(fn func([]T) []T) {
	l.mu.Lock()
	l.items = fn(l.items)
	l.mu.Unlock()
}
