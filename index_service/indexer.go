package index_service

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"TSE/internal/pagedir"
	"TSE/internal/reverse_index"
	"TSE/internal/webpage"
	"TSE/types"
)

// 外观模式：把正排（页面目录）和倒排两个子系统封装在一起

var ErrNoPages = errors.New("page directory holds no pages")

// Indexer builds an inverted index from the pages of a PageStore.
type Indexer struct {
	Buckets       int // bucket count of a freshly built index
	MinWordLength int // shorter words are not indexed
}

func NewIndexer(buckets, minWordLength int) *Indexer {
	return &Indexer{Buckets: buckets, MinWordLength: minWordLength}
}

// Build loads docID 1, 2, ... from store until the first missing page and
// indexes each one.
func (indexer *Indexer) Build(store pagedir.PageStore) (*reverse_index.InvertedIndex, error) {
	idx := reverse_index.NewInvertedIndex(indexer.Buckets)
	if idx == nil {
		return nil, fmt.Errorf("invalid bucket count %d", indexer.Buckets)
	}
	docID := 1
	for ; ; docID++ {
		page, err := store.Load(docID)
		if errors.Is(err, pagedir.ErrPageNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		n := indexer.IndexPage(idx, page, docID)
		slog.Debug("page indexed",
			slog.Int("docID", docID),
			slog.String("url", page.URL),
			slog.Int("words", n))
	}
	if docID == 1 {
		return nil, ErrNoPages
	}
	slog.Info("index built",
		slog.Int("pages", docID-1),
		slog.Int("words", idx.Len()))
	return idx, nil
}

// IndexPage adds the words of one page and returns how many occurrences were
// counted. Words shorter than MinWordLength are dropped before normalization;
// normalized words outside a-z are dropped after it.
func (indexer *Indexer) IndexPage(idx *reverse_index.InvertedIndex, page *types.Page, docID int) int {
	n := 0
	pos := 0
	for {
		word, next, ok := webpage.NextWord(page.HTML, pos)
		if !ok {
			return n
		}
		pos = next
		if utf8.RuneCountInString(word) < indexer.MinWordLength {
			continue
		}
		normalized := webpage.Normalize(word)
		if !webpage.IsIndexable(normalized) {
			continue
		}
		if idx.IncrementCount(normalized, docID) > 0 {
			n++
		}
	}
}
