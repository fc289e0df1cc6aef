package kvdb

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAll(t *testing.T) map[string]IKeyValueDB {
	t.Helper()
	dir := t.TempDir()
	dbs := map[string]IKeyValueDB{}
	for name, typ := range map[string]int{"bolt": BOLT, "badger": BADGER} {
		db, err := GetKvDb(typ, filepath.Join(dir, "nested", name))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		dbs[name] = db
	}
	return dbs
}

func keysWithPrefix(db IKeyValueDB, prefix string) []string {
	var seen []string
	db.IterKey([]byte(prefix), func(k []byte) error {
		seen = append(seen, string(k))
		return nil
	})
	return seen
}

func TestKvDb_SetGet(t *testing.T) {
	for name, db := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, db.Set([]byte("1"), []byte("one")))
			v, err := db.Get([]byte("1"))
			require.NoError(t, err)
			assert.Equal(t, []byte("one"), v)

			require.NoError(t, db.Set([]byte("1"), []byte("uno")))
			v, err = db.Get([]byte("1"))
			require.NoError(t, err)
			assert.Equal(t, []byte("uno"), v)

			_, err = db.Get([]byte("2"))
			assert.True(t, errors.Is(err, ErrKeyNotFound), "got %v", err)
		})
	}
}

func TestKvDb_BatchAndPrefix(t *testing.T) {
	for name, db := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			keys := [][]byte{[]byte("page/1"), []byte("page/2"), []byte("meta/x")}
			values := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
			require.NoError(t, db.BatchSet(keys, values))
			assert.Error(t, db.BatchSet(keys, values[:1]))

			assert.ElementsMatch(t, []string{"page/1", "page/2"}, keysWithPrefix(db, "page/"))
			assert.EqualValues(t, 3, db.IterKey(nil, func([]byte) error { return nil }))
			assert.Empty(t, keysWithPrefix(db, "zzz"))

			require.NoError(t, db.BatchDelete(keys[:2]))
			assert.Empty(t, keysWithPrefix(db, "page/"))
			v, err := db.Get([]byte("meta/x"))
			require.NoError(t, err)
			assert.Equal(t, []byte("c"), v)
		})
	}
}

func TestKvDb_IterKeyStops(t *testing.T) {
	for name, db := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			var keys, values [][]byte
			for i := 0; i < 5; i++ {
				keys = append(keys, []byte(fmt.Sprintf("k%d", i)))
				values = append(values, []byte{byte(i)})
			}
			require.NoError(t, db.BatchSet(keys, values))
			stop := errors.New("stop")
			n := db.IterKey([]byte("k"), func(k []byte) error {
				if string(k) == "k2" {
					return stop
				}
				return nil
			})
			assert.EqualValues(t, 2, n)
		})
	}
}

func TestBadger_ManyBatched(t *testing.T) {
	db, err := GetKvDb(BADGER, filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err)
	defer db.Close()

	var keys, values [][]byte
	for i := 0; i < 5000; i++ {
		keys = append(keys, []byte(fmt.Sprintf("page/%d", i)))
		values = append(values, make([]byte, 512))
	}
	require.NoError(t, db.BatchSet(keys, values))
	assert.EqualValues(t, 5000, db.IterKey([]byte("page/"), func([]byte) error { return nil }))
	db.(*Badger).CheckAndGC()
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("badger")
	require.NoError(t, err)
	assert.Equal(t, BADGER, typ)
	typ, err = ParseType("bolt")
	require.NoError(t, err)
	assert.Equal(t, BOLT, typ)
	_, err = ParseType("redis")
	assert.Error(t, err)
}
