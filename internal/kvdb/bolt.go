package kvdb

import (
	"bytes"
	"log/slog"

	bolt "go.etcd.io/bbolt"
)

const defaultBucket = "tse"

// Bolt 所有数据放在同一个 bucket 里
type Bolt struct {
	db     *bolt.DB
	path   string
	bucket []byte
}

// NewBolt returns a Bolt backed by the file at path. An empty bucket name
// selects the default one.
func NewBolt(path, bucket string) *Bolt {
	if bucket == "" {
		bucket = defaultBucket
	}
	return &Bolt{path: path, bucket: []byte(bucket)}
}

func (b *Bolt) Open() error {
	db, err := bolt.Open(b.path, 0o600, bolt.DefaultOptions)
	if err != nil {
		return err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(b.bucket)
		return err
	})
	if err != nil {
		db.Close()
		return err
	}
	b.db = db
	return nil
}

func (b *Bolt) Set(k, v []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).Put(k, v)
	})
}

func (b *Bolt) BatchSet(keys, values [][]byte) error {
	if len(keys) != len(values) {
		return errLengthMismatch
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		for i, k := range keys {
			if err := bucket.Put(k, values[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *Bolt) Get(k []byte) ([]byte, error) {
	var val []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(b.bucket).Get(k)
		if v == nil {
			return ErrKeyNotFound
		}
		// bolt 返回的切片只在事务内有效，需要拷贝
		val = bytes.Clone(v)
		return nil
	})
	return val, err
}

func (b *Bolt) BatchDelete(keys [][]byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		for _, k := range keys {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *Bolt) IterKey(prefix []byte, fn func(k []byte) error) int64 {
	var count int64
	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(b.bucket).Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			if err := fn(k); err != nil {
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

func (b *Bolt) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}
