// Package statelist provides an ordered sequence paired with at most one
// selected index. It is a pure container: structural mutations never
// renumber the selection, so callers owning a list re-derive the selected
// index themselves whenever a mutation shifts item positions.
package statelist

// List is an ordered sequence of T plus an optional selection. The selected
// index, when present, is always < Len(); it is absent only while the list
// is empty or before the first selection.
type List[T any] struct {
	items    []T
	selected int
}

func New[T any](items ...T) *List[T] {
	return &List[T]{items: items, selected: -1}
}

func (l *List[T]) Len() int {
	return len(l.items)
}

// Items returns the backing slice. Callers may mutate elements in place but
// must grow or shrink the sequence only through the list's own methods.
func (l *List[T]) Items() []T {
	return l.items
}

func (l *List[T]) Selected() (int, bool) {
	if l.selected < 0 || l.selected >= len(l.items) {
		return 0, false
	}
	return l.selected, true
}

func (l *List[T]) SelectedItem() (T, bool) {
	var zero T
	idx, ok := l.Selected()
	if !ok {
		return zero, false
	}
	return l.items[idx], true
}

// Select sets the selection directly. Out-of-bounds indexes are ignored;
// validation is the caller's responsibility.
func (l *List[T]) Select(i int) {
	if i < 0 || i >= len(l.items) {
		return
	}
	l.selected = i
}

// Next moves the selection down by one, wrapping to index 0 past the end.
// With no prior selection it selects index 0. No-op on an empty list.
func (l *List[T]) Next() {
	if len(l.items) == 0 {
		return
	}
	if l.selected < 0 || l.selected >= len(l.items)-1 {
		l.selected = 0
		return
	}
	l.selected++
}

// Previous moves the selection up by one, wrapping to the last index at the
// top. With no prior selection it selects index 0. No-op on an empty list.
func (l *List[T]) Previous() {
	if len(l.items) == 0 {
		return
	}
	if l.selected < 0 {
		l.selected = 0
		return
	}
	if l.selected == 0 {
		l.selected = len(l.items) - 1
		return
	}
	l.selected--
}

func (l *List[T]) PushBack(v T) {
	l.items = append(l.items, v)
}

func (l *List[T]) InsertFront(v T) {
	l.items = append([]T{v}, l.items...)
}

func (l *List[T]) Swap(i, j int) {
	if i < 0 || j < 0 || i >= len(l.items) || j >= len(l.items) {
		return
	}
	l.items[i], l.items[j] = l.items[j], l.items[i]
}
