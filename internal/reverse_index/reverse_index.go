package reverse_index

import "TSE/util"

// 统一接口，方便倒排索引的数据结构重构

type IReverseIndexer interface {
	IncrementCount(word string, docID int) int
	InsertCount(word string, docID int, count int) bool
	Get(word string) *util.CountingMap
	Save(path string) error
}

var _ IReverseIndexer = (*InvertedIndex)(nil)
