package kvdb

import (
	"errors"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// Badger 一个目录就是一个库，只保留最新版本
type Badger struct {
	db  *badger.DB
	dir string
}

func NewBadger(dir string) *Badger {
	return &Badger{dir: dir}
}

func (b *Badger) Open() error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return err
	}
	opts := badger.DefaultOptions(b.dir).
		WithNumVersionsToKeep(1).
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return err
	}
	b.db = db
	return nil
}

// CheckAndGC 回收 value log 中过期数据超过一半的文件，直到没有可回收的为止
func (b *Badger) CheckAndGC() {
	_, before := b.db.Size()
	var err error
	for err == nil {
		err = b.db.RunValueLogGC(0.5)
	}
	if !errors.Is(err, badger.ErrNoRewrite) {
		slog.Error("badger value log GC failed", "error", err)
	}
	if _, after := b.db.Size(); after < before {
		slog.Info("badger GC completed", "saved_bytes", before-after, "vlog_after", after)
	}
}

func (b *Badger) Set(k, v []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(k, v)
	})
}

// BatchSet writes through a WriteBatch, which splits oversized transactions
// on its own.
func (b *Badger) BatchSet(keys, values [][]byte) error {
	if len(keys) != len(values) {
		return errLengthMismatch
	}
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for i := range keys {
		if err := wb.Set(keys[i], values[i]); err != nil {
			return err
		}
	}
	return wb.Flush()
}

func (b *Badger) Get(k []byte) ([]byte, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(k)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		if err != nil {
			return err
		}
		// item 的值只在事务内有效
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

func (b *Badger) BatchDelete(keys [][]byte) error {
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			return err
		}
	}
	return wb.Flush()
}

func (b *Badger) IterKey(prefix []byte, fn func(k []byte) error) int64 {
	var count int64
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := fn(it.Item().Key()); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		slog.Error("IterKey stopped with error", "error", err)
	}
	return count
}

func (b *Badger) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}
