package orderedmap

// OrderedMap remembers the order in which keys were first set.
type OrderedMap[K comparable, V any] struct {
	underlying map[K]V
	order      []K
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		underlying: make(map[K]V),
		order:      make([]K, 0),
	}
}

// Set stores value under key. Setting an existing key replaces its value
// and keeps its original position.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if _, exists := m.underlying[key]; !exists {
		m.order = append(m.order, key)
	}
	m.underlying[key] = value
}

func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	value, ok := m.underlying[key]
	return value, ok
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, len(m.order))
	copy(keys, m.order)
	return keys
}

// Filter returns the keys, in insertion order, whose value satisfies keep.
func (m *OrderedMap[K, V]) Filter(keep func(K, V) bool) []K {
	keys := make([]K, 0, len(m.order))
	for _, k := range m.order {
		if keep(k, m.underlying[k]) {
			keys = append(keys, k)
		}
	}
	return keys
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.order)
}
