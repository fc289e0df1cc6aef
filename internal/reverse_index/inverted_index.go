package reverse_index

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"TSE/util"
)

var (
	ErrNilIndex       = errors.New("nil index")
	ErrMalformedIndex = errors.New("malformed index file")
)

// maxLineBytes bounds one persisted line; a word with many postings can be long.
const maxLineBytes = 64 << 20

// InvertedIndex 倒排索引：word -> (docID -> 出现次数)
// 整体上是一个固定桶数的哈希表，value 是每个词独占的 CountingMap
type InvertedIndex struct {
	table *util.HashTable[*util.CountingMap]
}

// NewInvertedIndex returns an empty index with the given bucket count, or nil
// when buckets is not positive.
func NewInvertedIndex(buckets int) *InvertedIndex {
	table := util.NewHashTable[*util.CountingMap](buckets)
	if table == nil {
		return nil
	}
	return &InvertedIndex{table: table}
}

// find 找到 word 对应的计数表，不存在则创建
func (idx *InvertedIndex) find(word string) *util.CountingMap {
	if counter, exists := idx.table.Find(word); exists {
		return counter
	}
	counter := util.NewCountingMap()
	if !idx.table.Insert(word, counter) {
		return nil
	}
	return counter
}

// IncrementCount adds one occurrence of word in docID and returns the new
// count, or 0 when the index or word is unusable.
func (idx *InvertedIndex) IncrementCount(word string, docID int) int {
	// 参数不合法时不能先建出空的计数表，否则 Save 会写出无法读回的行
	if idx == nil || word == "" || docID < 0 {
		return 0
	}
	counter := idx.find(word)
	if counter == nil {
		return 0
	}
	return counter.Add(docID)
}

// InsertCount sets the exact count of word in docID. It is only meant for
// rebuilding an index from a saved file.
func (idx *InvertedIndex) InsertCount(word string, docID int, count int) bool {
	if idx == nil || word == "" || docID < 0 || count < 0 {
		return false
	}
	counter := idx.find(word)
	if counter == nil {
		return false
	}
	return counter.Set(docID, count)
}

// Get returns the postings of word, or nil if the word was never seen.
// The index keeps ownership; callers must not modify the returned map.
func (idx *InvertedIndex) Get(word string) *util.CountingMap {
	if idx == nil {
		return nil
	}
	counter, _ := idx.table.Find(word)
	return counter
}

// Len returns the number of distinct words.
func (idx *InvertedIndex) Len() int {
	if idx == nil {
		return 0
	}
	return idx.table.Len()
}

// Iterate visits words in canonical order: bucket order, then word order
// within a bucket.
func (idx *InvertedIndex) Iterate(visit func(word string, postings *util.CountingMap)) {
	if idx == nil {
		return
	}
	idx.table.Iterate(visit)
}

// Save writes the index to path, one line per word:
//
//	word docID count [docID count ...]
func (idx *InvertedIndex) Save(path string) error {
	if idx == nil {
		return ErrNilIndex
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating index file %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := idx.Encode(w); err != nil {
		f.Close()
		return fmt.Errorf("writing index file %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing index file %s: %w", path, err)
	}
	return f.Close()
}

// Encode streams the persisted form of the index to w.
func (idx *InvertedIndex) Encode(w io.Writer) error {
	if idx == nil {
		return ErrNilIndex
	}
	var err error
	var line []byte
	idx.table.Iterate(func(word string, postings *util.CountingMap) {
		if err != nil {
			return
		}
		line = append(line[:0], word...)
		postings.Iterate(func(docID, count int) {
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(docID), 10)
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(count), 10)
		})
		line = append(line, '\n')
		_, err = w.Write(line)
	})
	return err
}

// Delete releases every posting map. The index must not be used afterwards.
func (idx *InvertedIndex) Delete() {
	if idx == nil {
		return
	}
	idx.table.Delete((*util.CountingMap).Delete)
}

// Reconstruct rebuilds an index from a file written by Save. The bucket count
// is the file's line count. Any malformed line aborts the whole load.
func Reconstruct(path string) (*InvertedIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index file %s: %w", path, err)
	}
	defer f.Close()

	lines, err := countLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading index file %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("reading index file %s: %w", path, err)
	}

	idx, err := Read(f, max(lines, 1))
	if err != nil {
		return nil, fmt.Errorf("index file %s: %w", path, err)
	}
	slog.Debug("index reconstructed",
		slog.String("path", path),
		slog.Int("words", idx.Len()),
	)
	return idx, nil
}

// Read parses the persisted format from r into a new index of the given
// bucket count.
func Read(r io.Reader, buckets int) (*InvertedIndex, error) {
	idx := NewInvertedIndex(buckets)
	if idx == nil {
		return nil, fmt.Errorf("invalid bucket count %d", buckets)
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if err := idx.insertLine(fields); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return idx, nil
}

// insertLine 解析一行：word docID count docID count ...
func (idx *InvertedIndex) insertLine(fields []string) error {
	word := fields[0]
	if !isWord(word) {
		return fmt.Errorf("%w: bad word %q", ErrMalformedIndex, word)
	}
	pairs := fields[1:]
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return fmt.Errorf("%w: word %q has %d numbers, want a non-empty list of pairs", ErrMalformedIndex, word, len(pairs))
	}
	if idx.Get(word) != nil {
		return fmt.Errorf("%w: duplicate word %q", ErrMalformedIndex, word)
	}
	for i := 0; i < len(pairs); i += 2 {
		docID, err := strconv.Atoi(pairs[i])
		if err != nil || docID < 1 {
			return fmt.Errorf("%w: word %q bad docID %q", ErrMalformedIndex, word, pairs[i])
		}
		count, err := strconv.Atoi(pairs[i+1])
		if err != nil || count < 0 {
			return fmt.Errorf("%w: word %q bad count %q", ErrMalformedIndex, word, pairs[i+1])
		}
		if idx.Get(word).Has(docID) {
			return fmt.Errorf("%w: word %q repeats docID %d", ErrMalformedIndex, word, docID)
		}
		if !idx.InsertCount(word, docID, count) {
			return fmt.Errorf("%w: word %q docID %d rejected", ErrMalformedIndex, word, docID)
		}
	}
	return nil
}

func isWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return s != ""
}

func countLines(r io.Reader) (int, error) {
	buf := make([]byte, 32*1024)
	n := 0
	sawData := false
	last := byte('\n')
	for {
		c, err := r.Read(buf)
		for _, b := range buf[:c] {
			if b == '\n' {
				n++
			}
		}
		if c > 0 {
			sawData = true
			last = buf[c-1]
		}
		if err == io.EOF {
			if sawData && last != '\n' {
				n++
			}
			return n, nil
		}
		if err != nil {
			return 0, err
		}
	}
}
