package form

import "strings"

// List is an ordered list of names edited one item at a time.
// Duplicates are allowed; blank names are never inserted.
type List struct {
	items []string
}

// NewList returns a list holding a copy of items.
func NewList(items []string) *List {
	l := &List{items: make([]string, 0, len(items))}
	l.items = append(l.items, items...)
	return l
}

// Insert appends the trimmed name. It reports false and leaves the list
// unchanged when the trimmed name is empty.
func (l *List) Insert(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	l.items = append(l.items, name)
	return true
}

// Remove deletes the item at index i, shifting later items down.
// Out of range indices are ignored.
func (l *List) Remove(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Items returns a copy of the current items.
func (l *List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.items)
}
