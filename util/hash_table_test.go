package util

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringMap_InsertNeverOverwrites(t *testing.T) {
	m := NewStringMap[int]()
	require.True(t, m.Insert("cat", 1))
	assert.False(t, m.Insert("cat", 2))
	v, ok := m.Find("cat")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	assert.False(t, m.Insert("", 3))
	_, ok = m.Find("dog")
	assert.False(t, ok)
}

func TestStringMap_IterateAndDelete(t *testing.T) {
	m := NewStringMap[string]()
	for _, k := range []string{"pear", "apple", "fig"} {
		m.Insert(k, k+"!")
	}
	var keys []string
	m.Iterate(func(key, value string) {
		keys = append(keys, key)
		assert.Equal(t, key+"!", value)
	})
	assert.Equal(t, []string{"apple", "fig", "pear"}, keys)

	released := 0
	m.Delete(func(string) { released++ })
	assert.Equal(t, 3, released)
	assert.Equal(t, 0, m.Len())
}

func TestHashTable_New(t *testing.T) {
	assert.Nil(t, NewHashTable[int](0))
	assert.Nil(t, NewHashTable[int](-3))
	table := NewHashTable[int](7)
	require.NotNil(t, table)
	assert.Equal(t, 7, table.Buckets())
}

func TestHashTable_InsertFind(t *testing.T) {
	table := NewHashTable[int](13)
	for i := 0; i < 500; i++ {
		require.True(t, table.Insert("key"+strconv.Itoa(i), i))
	}
	for i := 0; i < 500; i++ {
		v, ok := table.Find("key" + strconv.Itoa(i))
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	assert.False(t, table.Insert("key7", 700))
	v, _ := table.Find("key7")
	assert.Equal(t, 7, v)
	assert.Equal(t, 500, table.Len())

	var nilTable *HashTable[int]
	assert.False(t, nilTable.Insert("a", 1))
	_, ok := nilTable.Find("a")
	assert.False(t, ok)
}

func TestHashTable_StableBucketRouting(t *testing.T) {
	a := NewHashTable[int](31)
	b := NewHashTable[int](31)
	for _, k := range []string{"alpha", "beta", "gamma", "delta"} {
		assert.Equal(t, a.getBucketIndex(k), b.getBucketIndex(k))
		assert.Equal(t, a.getBucketIndex(k), a.getBucketIndex(k))
	}
}

func TestHashTable_IterateCanonicalOrder(t *testing.T) {
	insert := func(order []string) []string {
		table := NewHashTable[int](5)
		for i, k := range order {
			table.Insert(k, i)
		}
		var keys []string
		table.Iterate(func(key string, _ int) { keys = append(keys, key) })
		return keys
	}
	words := []string{"dog", "cat", "bird", "fish", "horse", "mouse", "owl"}
	reversed := make([]string, len(words))
	for i, w := range words {
		reversed[len(words)-1-i] = w
	}
	first := insert(words)
	assert.Len(t, first, len(words))
	assert.Equal(t, first, insert(reversed))
}

func BenchmarkHashTable_Insert(b *testing.B) {
	keys := make([]string, 10000)
	for i := range keys {
		keys[i] = fmt.Sprintf("word%d", i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table := NewHashTable[int](200)
		for j, k := range keys {
			table.Insert(k, j)
		}
	}
}
