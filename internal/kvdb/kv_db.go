package kvdb

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// 两种常见的嵌入式KV数据库
const (
	BOLT = iota
	BADGER
)

// ErrKeyNotFound is returned by Get when the key is absent.
var ErrKeyNotFound = errors.New("key not found")

// IKeyValueDB is the storage the page cache runs on.
type IKeyValueDB interface {
	Open() error                                          // 初始化DB
	Set(k, v []byte) error                                // 写入k v
	BatchSet(keys, values [][]byte) error                 // 批量写入
	Get(k []byte) ([]byte, error)                         // 读取key对应的value，不存在返回 ErrKeyNotFound
	BatchDelete(keys [][]byte) error                      // 批量删除
	IterKey(prefix []byte, fn func(k []byte) error) int64 // 遍历以 prefix 开头的key，k 只在回调内有效
	Close() error                                         // 把内存中的数据flush到磁盘，同时释放文件锁
}

// ParseType maps a config name to a db type.
func ParseType(name string) (int, error) {
	switch name {
	case "bolt":
		return BOLT, nil
	case "badger":
		return BADGER, nil
	default:
		return 0, fmt.Errorf("unknown kv db %q", name)
	}
}

// GetKvDb opens a database of the given type at path, creating the parent
// directory when needed.
func GetKvDb(dbtype int, path string) (IKeyValueDB, error) {
	parentPath := filepath.Dir(path)

	info, err := os.Stat(parentPath)
	if os.IsNotExist(err) {
		slog.Info("parent directory missing, creating it", slog.String("path", parentPath))
		if err := os.MkdirAll(parentPath, 0o755); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, fmt.Errorf("kv db parent %s is not a directory", parentPath)
	}

	var db IKeyValueDB
	switch dbtype {
	case BADGER:
		db = NewBadger(path)
	default:
		db = NewBolt(path, "")
	}
	if err := db.Open(); err != nil {
		return nil, err
	}
	return db, nil
}

var errLengthMismatch = errors.New("keys and values differ in length")
