package util

import "github.com/huandu/skiplist"

// StringMap is an ordered map from a non-empty string to a value it owns.
// Insert never overwrites: the first value stored under a key wins.
type StringMap[V any] struct {
	list *skiplist.SkipList
}

func NewStringMap[V any]() *StringMap[V] {
	return &StringMap[V]{list: skiplist.New(skiplist.String)}
}

// Insert stores value under key and reports true. It reports false, and the
// caller keeps ownership of value, when key is empty or already present.
func (m *StringMap[V]) Insert(key string, value V) bool {
	if m == nil || key == "" {
		return false
	}
	if m.list.Get(key) != nil {
		return false
	}
	m.list.Set(key, value)
	return true
}

// Find returns the value stored under key.
func (m *StringMap[V]) Find(key string) (V, bool) {
	var zero V
	if m == nil || key == "" {
		return zero, false
	}
	elem := m.list.Get(key)
	if elem == nil {
		return zero, false
	}
	return elem.Value.(V), true
}

func (m *StringMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return m.list.Len()
}

// Iterate visits entries in ascending key order.
func (m *StringMap[V]) Iterate(visit func(key string, value V)) {
	if m == nil || visit == nil {
		return
	}
	for node := m.list.Front(); node != nil; node = node.Next() {
		visit(node.Key().(string), node.Value.(V))
	}
}

// Delete drops every entry, handing each value to release first when it is
// not nil.
func (m *StringMap[V]) Delete(release func(V)) {
	if m == nil {
		return
	}
	if release != nil {
		m.Iterate(func(_ string, value V) { release(value) })
	}
	m.list.Init()
}
