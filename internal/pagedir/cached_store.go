package pagedir

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"TSE/internal/kvdb"
	"TSE/types"
)

var (
	sourceKey  = []byte("meta/source") // 缓存对应的页面目录
	pagePrefix = []byte("page/")
)

const warmBatchSize = 256

// CachedStore 正排缓存：先查KV数据库，查不到再读目录并回写
type CachedStore struct {
	inner PageStore
	db    kvdb.IKeyValueDB
}

var _ PageStore = (*CachedStore)(nil)

// NewCachedStore puts db in front of inner. source names where inner's pages
// come from; a cache filled from any other source is emptied first. The store
// owns db and closes it in Close.
func NewCachedStore(inner PageStore, db kvdb.IKeyValueDB, source string) (*CachedStore, error) {
	s := &CachedStore{inner: inner, db: db}
	if err := s.bind(source); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenCachedStore opens a kv database of the named type ("badger" or "bolt")
// at path and wraps dir with it.
func OpenCachedStore(dir *DirStore, dbName string, path string) (*CachedStore, error) {
	dbtype, err := kvdb.ParseType(dbName)
	if err != nil {
		return nil, err
	}
	source, err := filepath.Abs(dir.Dir())
	if err != nil {
		return nil, err
	}
	db, err := kvdb.GetKvDb(dbtype, path)
	if err != nil {
		return nil, err
	}
	s, err := NewCachedStore(dir, db, source)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bind page cache %s: %w", path, err)
	}
	return s, nil
}

func (s *CachedStore) bind(source string) error {
	recorded, err := s.db.Get(sourceKey)
	switch {
	case err == nil && string(recorded) == source:
		return nil
	case err == nil:
		slog.Warn("page cache was filled from another directory, dropping it",
			slog.String("cached", string(recorded)),
			slog.String("dir", source))
	case !errors.Is(err, kvdb.ErrKeyNotFound):
		return err
	}
	if err := s.purge(); err != nil {
		return err
	}
	return s.db.Set(sourceKey, []byte(source))
}

// purge 删除所有缓存的页面
func (s *CachedStore) purge() error {
	var keys [][]byte
	s.db.IterKey(pagePrefix, func(k []byte) error {
		keys = append(keys, bytes.Clone(k))
		return nil
	})
	if len(keys) == 0 {
		return nil
	}
	return s.db.BatchDelete(keys)
}

func pageKey(docID int) []byte {
	return append(bytes.Clone(pagePrefix), strconv.Itoa(docID)...)
}

func encodePage(page *types.Page) ([]byte, error) {
	var value bytes.Buffer
	if err := gob.NewEncoder(&value).Encode(page); err != nil {
		return nil, err
	}
	return value.Bytes(), nil
}

func (s *CachedStore) Validate() bool {
	return s.inner.Validate()
}

func (s *CachedStore) Load(docID int) (*types.Page, error) {
	key := pageKey(docID)
	if data, err := s.db.Get(key); err == nil {
		var page types.Page
		err := gob.NewDecoder(bytes.NewReader(data)).Decode(&page)
		if err == nil {
			return &page, nil
		}
		slog.Warn("gob decode cached page failed", slog.Int("docID", docID), slog.Any("err", err))
	} else if !errors.Is(err, kvdb.ErrKeyNotFound) {
		slog.Warn("read page cache failed", slog.Int("docID", docID), slog.Any("err", err))
	}

	page, err := s.inner.Load(docID)
	if err != nil {
		return nil, err
	}
	if value, err := encodePage(page); err != nil {
		slog.Warn("gob encode page failed", slog.Int("docID", docID), slog.Any("err", err))
	} else if err := s.db.Set(key, value); err != nil {
		slog.Warn("write page cache failed", slog.Int("docID", docID), slog.Any("err", err))
	}
	return page, nil
}

func (s *CachedStore) URL(docID int) (string, error) {
	page, err := s.Load(docID)
	if err != nil {
		return "", err
	}
	return page.URL, nil
}

// Warm copies every page from docID 1 up to the first missing one out of the
// inner store into the cache, in batches, and returns how many it wrote.
func (s *CachedStore) Warm() (int, error) {
	var keys, values [][]byte
	stored := 0
	flush := func() error {
		if len(keys) == 0 {
			return nil
		}
		if err := s.db.BatchSet(keys, values); err != nil {
			return err
		}
		stored += len(keys)
		keys, values = nil, nil
		return nil
	}

	for id := 1; ; id++ {
		page, err := s.inner.Load(id)
		if errors.Is(err, ErrPageNotFound) {
			break
		}
		if err != nil {
			return stored, err
		}
		value, err := encodePage(page)
		if err != nil {
			return stored, err
		}
		keys = append(keys, pageKey(id))
		values = append(values, value)
		if len(keys) == warmBatchSize {
			if err := flush(); err != nil {
				return stored, err
			}
		}
	}
	if err := flush(); err != nil {
		return stored, err
	}
	slog.Info("page cache warmed", slog.Int("pages", stored))
	return stored, nil
}

// Cached returns the number of pages held in the cache.
func (s *CachedStore) Cached() int {
	return int(s.db.IterKey(pagePrefix, func([]byte) error { return nil }))
}

// Close releases the kv database, compacting it first when the backend
// supports that.
func (s *CachedStore) Close() error {
	if gc, ok := s.db.(interface{ CheckAndGC() }); ok {
		gc.CheckAndGC()
	}
	return s.db.Close()
}
