package util

// 固定桶数的哈希表：通过 farmhash % 桶数把 key 路由到某个桶，每个桶是一个有序的 StringMap。
// 桶在第一次写入时才创建。遍历顺序 = 桶下标顺序 + 桶内 key 顺序，这就是索引文件的规范顺序。

import farmhash "github.com/leemcloughlin/gofarmhash"

// HashTable routes string keys to a fixed number of ordered buckets.
type HashTable[V any] struct {
	buckets []*StringMap[V]
	seed    uint32
}

// NewHashTable returns a table with the given bucket count, or nil when the
// count is not positive.
func NewHashTable[V any](buckets int) *HashTable[V] {
	if buckets <= 0 {
		return nil
	}
	return &HashTable[V]{
		buckets: make([]*StringMap[V], buckets),
		seed:    0,
	}
}

// getBucketIndex 调用farmhash获取桶号
func (t *HashTable[V]) getBucketIndex(key string) int {
	return int(farmhash.Hash32WithSeed([]byte(key), t.seed) % uint32(len(t.buckets)))
}

// Insert stores value under key. Like StringMap it refuses duplicates and empty keys.
func (t *HashTable[V]) Insert(key string, value V) bool {
	if t == nil || key == "" {
		return false
	}
	index := t.getBucketIndex(key)
	if t.buckets[index] == nil {
		t.buckets[index] = NewStringMap[V]()
	}
	return t.buckets[index].Insert(key, value)
}

func (t *HashTable[V]) Find(key string) (V, bool) {
	var zero V
	if t == nil || key == "" {
		return zero, false
	}
	bucket := t.buckets[t.getBucketIndex(key)]
	if bucket == nil {
		return zero, false
	}
	return bucket.Find(key)
}

// Buckets returns the fixed bucket count.
func (t *HashTable[V]) Buckets() int {
	if t == nil {
		return 0
	}
	return len(t.buckets)
}

// Len counts entries across all buckets.
func (t *HashTable[V]) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, bucket := range t.buckets {
		n += bucket.Len()
	}
	return n
}

// Iterate visits buckets in index order and each bucket in key order.
func (t *HashTable[V]) Iterate(visit func(key string, value V)) {
	if t == nil || visit == nil {
		return
	}
	for _, bucket := range t.buckets {
		bucket.Iterate(visit)
	}
}

// Delete empties every bucket, passing each value to release.
func (t *HashTable[V]) Delete(release func(V)) {
	if t == nil {
		return
	}
	for i, bucket := range t.buckets {
		bucket.Delete(release)
		t.buckets[i] = nil
	}
}
