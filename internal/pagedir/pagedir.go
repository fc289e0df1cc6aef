// Package pagedir reads and writes the crawler's page directory: a ".crawler"
// marker file plus one file per document, named by its docID, holding the URL
// on the first line, the crawl depth on the second and the HTML after that.
package pagedir

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"TSE/types"
)

const markerFile = ".crawler"

var ErrPageNotFound = errors.New("page not found")

// PageStore is what the indexer and querier need from stored pages.
type PageStore interface {
	Load(docID int) (*types.Page, error)
	URL(docID int) (string, error)
	Validate() bool
}

// DirStore is a PageStore over a crawler directory.
type DirStore struct {
	dir string
}

var _ PageStore = (*DirStore)(nil)

func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

func (s *DirStore) Dir() string {
	return s.dir
}

// Init marks the directory as a crawler directory.
func (s *DirStore) Init() error {
	f, err := os.Create(filepath.Join(s.dir, markerFile))
	if err != nil {
		return fmt.Errorf("initializing page directory %s: %w", s.dir, err)
	}
	return f.Close()
}

// Validate reports whether the directory carries the crawler marker.
func (s *DirStore) Validate() bool {
	return ValidateReadFile(filepath.Join(s.dir, markerFile))
}

func (s *DirStore) pagePath(docID int) string {
	return filepath.Join(s.dir, strconv.Itoa(docID))
}

// Save writes page under docID.
func (s *DirStore) Save(page *types.Page, docID int) error {
	f, err := os.Create(s.pagePath(docID))
	if err != nil {
		return fmt.Errorf("saving page %d: %w", docID, err)
	}
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\n%d\n%s", page.URL, page.Depth, page.HTML)
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("saving page %d: %w", docID, err)
	}
	return f.Close()
}

// Load reads the page stored under docID. A missing file is ErrPageNotFound.
func (s *DirStore) Load(docID int) (*types.Page, error) {
	f, err := s.open(docID)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	url, err := readLine(r)
	if err != nil {
		return nil, fmt.Errorf("page %d: reading url: %w", docID, err)
	}
	depthLine, err := readLine(r)
	if err != nil {
		return nil, fmt.Errorf("page %d: reading depth: %w", docID, err)
	}
	depth, err := strconv.Atoi(strings.TrimSpace(depthLine))
	if err != nil {
		return nil, fmt.Errorf("page %d: bad depth %q: %w", docID, depthLine, err)
	}
	html, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("page %d: reading html: %w", docID, err)
	}
	return &types.Page{URL: url, Depth: depth, HTML: string(html)}, nil
}

// URL reads only the first line of the page stored under docID.
func (s *DirStore) URL(docID int) (string, error) {
	f, err := s.open(docID)
	if err != nil {
		return "", err
	}
	defer f.Close()
	url, err := readLine(bufio.NewReader(f))
	if err != nil {
		return "", fmt.Errorf("page %d: reading url: %w", docID, err)
	}
	return url, nil
}

func (s *DirStore) open(docID int) (*os.File, error) {
	if docID < 1 {
		return nil, fmt.Errorf("%w: docID %d", ErrPageNotFound, docID)
	}
	f, err := os.Open(s.pagePath(docID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: docID %d", ErrPageNotFound, docID)
	}
	if err != nil {
		return nil, fmt.Errorf("opening page %d: %w", docID, err)
	}
	return f, nil
}

// readLine returns one line without its terminator. EOF after some text is
// not an error.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ValidateReadFile reports whether path can be opened for reading.
func ValidateReadFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// ValidateWriteFile reports whether path can be created or truncated for
// writing. Like the index writer it leaves an empty file behind.
func ValidateWriteFile(path string) bool {
	f, err := os.Create(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
