package util

import "github.com/huandu/skiplist"

// CountingMap maps a non-negative integer key (a docID) to a non-negative count.
// Entries live in a skiplist so iteration is always key-ascending, which keeps
// the persisted index stable between runs.
type CountingMap struct {
	list *skiplist.SkipList
}

// NewCountingMap 创建空的计数表
func NewCountingMap() *CountingMap {
	return &CountingMap{list: skiplist.New(skiplist.Int)}
}

// Add increments the count for key, creating it at 1 when absent, and returns
// the new count. A negative key is rejected with 0.
func (m *CountingMap) Add(key int) int {
	if m == nil || key < 0 {
		return 0
	}
	count := 1
	if elem := m.list.Get(key); elem != nil {
		count = elem.Value.(int) + 1
	}
	m.list.Set(key, count)
	return count
}

// Set creates or overwrites the count for key.
func (m *CountingMap) Set(key, count int) bool {
	if m == nil || key < 0 || count < 0 {
		return false
	}
	m.list.Set(key, count)
	return true
}

// Get returns the count for key, or 0 when the key is absent.
func (m *CountingMap) Get(key int) int {
	if m == nil || key < 0 {
		return 0
	}
	if elem := m.list.Get(key); elem != nil {
		return elem.Value.(int)
	}
	return 0
}

// Has reports whether key holds an entry, including one with a zero count.
func (m *CountingMap) Has(key int) bool {
	if m == nil || key < 0 {
		return false
	}
	return m.list.Get(key) != nil
}

func (m *CountingMap) Len() int {
	if m == nil {
		return 0
	}
	return m.list.Len()
}

// Iterate calls visit for every entry in ascending key order.
func (m *CountingMap) Iterate(visit func(key, count int)) {
	if m == nil || visit == nil {
		return
	}
	for node := m.list.Front(); node != nil; node = node.Next() {
		visit(node.Key().(int), node.Value.(int))
	}
}

// Copy returns an independent map with the same entries.
func (m *CountingMap) Copy() *CountingMap {
	dup := NewCountingMap()
	m.Iterate(func(key, count int) {
		dup.list.Set(key, count)
	})
	return dup
}

// Delete releases every entry. The map stays usable and empty afterwards.
func (m *CountingMap) Delete() {
	if m == nil {
		return
	}
	m.list.Init()
}
