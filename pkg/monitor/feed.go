package monitor

// Feed is a bounded collection holding the most recent entries, newest first.
// It is not safe for concurrent use; Engine guards its feeds.
type Feed[T any] struct {
	items []T
	max   int
}

// NewFeed creates a feed that retains at most max entries
func NewFeed[T any](max int) *Feed[T] {
	if max < 0 {
		max = 0
	}
	return &Feed[T]{
		items: make([]T, 0, max),
		max:   max,
	}
}

// Push inserts item as the newest entry, evicting the oldest past the cap
func (f *Feed[T]) Push(item T) {
	next := make([]T, 0, min(len(f.items)+1, f.max))
	next = append(next, item)
	next = append(next, f.items...)
	f.items = truncate(next, f.max)
}

// Replace swaps in a new snapshot, given newest first
func (f *Feed[T]) Replace(items []T) {
	next := make([]T, len(items))
	copy(next, items)
	f.items = truncate(next, f.max)
}

// Items returns a copy of the entries, newest first
func (f *Feed[T]) Items() []T {
	out := make([]T, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Feed[T]) Len() int { return len(f.items) }

func (f *Feed[T]) Cap() int { return f.max }

// Full reports whether the next Push will evict an entry
func (f *Feed[T]) Full() bool { return len(f.items) >= f.max }

func truncate[T any](items []T, max int) []T {
	if len(items) > max {
		return items[:max]
	}
	return items
}
