package dedupe

// MapBackend is an in-memory set of comparable elements
type MapBackend[T comparable] struct {
	storage map[T]struct{}
	order   []T
}

func NewMapBackend[T comparable]() *MapBackend[T] {
	return &MapBackend[T]{storage: map[T]struct{}{}}
}

// Upsert adds elem and reports whether it was not present yet
func (m *MapBackend[T]) Upsert(elem T) bool {
	if _, ok := m.storage[elem]; ok {
		return false
	}
	m.storage[elem] = struct{}{}
	m.order = append(m.order, elem)
	return true
}

// Len returns the number of distinct elements
func (m *MapBackend[T]) Len() int {
	return len(m.order)
}

// IterCallback calls callback for every element in first insertion order
func (m *MapBackend[T]) IterCallback(callback func(elem T)) {
	for _, k := range m.order {
		callback(k)
	}
}

// Items returns the distinct elements in first insertion order
func (m *MapBackend[T]) Items() []T {
	out := make([]T, len(m.order))
	copy(out, m.order)
	return out
}

func (m *MapBackend[T]) Cleanup() {
	m.storage = nil
	m.order = nil
}
