package pagedir

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TSE/types"
)

var backends = []string{"bolt", "badger"}

func TestCachedStore(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			dir := newCrawlDir(t,
				types.Page{URL: "http://example.com/a", Depth: 0, HTML: "<p>alpha</p>"},
				types.Page{URL: "http://example.com/b", Depth: 1, HTML: "<p>beta</p>"},
			)
			cache, err := OpenCachedStore(dir, backend, filepath.Join(t.TempDir(), "cache", backend))
			require.NoError(t, err)
			defer cache.Close()

			assert.True(t, cache.Validate())
			assert.Equal(t, 0, cache.Cached())
			n, err := cache.Warm()
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			assert.Equal(t, 2, cache.Cached())

			// served from the cache once the directory copy is gone
			require.NoError(t, os.Remove(filepath.Join(dir.Dir(), "2")))
			url, err := cache.URL(2)
			require.NoError(t, err)
			assert.Equal(t, "http://example.com/b", url)
			page, err := cache.Load(1)
			require.NoError(t, err)
			assert.Equal(t, "<p>alpha</p>", page.HTML)

			_, err = cache.URL(3)
			assert.True(t, errors.Is(err, ErrPageNotFound))
		})
	}
}

func TestCachedStore_WarmManyBatches(t *testing.T) {
	pages := make([]types.Page, warmBatchSize+3)
	for i := range pages {
		pages[i] = types.Page{URL: "http://example.com/", Depth: 1, HTML: "<p>x</p>"}
	}
	dir := newCrawlDir(t, pages...)
	cache, err := OpenCachedStore(dir, "bolt", filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	defer cache.Close()

	n, err := cache.Warm()
	require.NoError(t, err)
	assert.Equal(t, len(pages), n)
	assert.Equal(t, len(pages), cache.Cached())
}

func TestCachedStore_ReopenSameDirectoryKeepsPages(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			dir := newCrawlDir(t, types.Page{URL: "http://example.com/a", HTML: "<p>alpha</p>"})
			path := filepath.Join(t.TempDir(), "cache")

			cache, err := OpenCachedStore(dir, backend, path)
			require.NoError(t, err)
			_, err = cache.Warm()
			require.NoError(t, err)
			require.NoError(t, cache.Close())

			cache, err = OpenCachedStore(dir, backend, path)
			require.NoError(t, err)
			defer cache.Close()
			assert.Equal(t, 1, cache.Cached())
		})
	}
}

func TestCachedStore_OtherDirectoryDropsPages(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			first := newCrawlDir(t, types.Page{URL: "http://first.example/1", HTML: "<p>one</p>"})
			second := newCrawlDir(t, types.Page{URL: "http://second.example/1", HTML: "<p>uno</p>"})
			path := filepath.Join(t.TempDir(), "cache")

			cache, err := OpenCachedStore(first, backend, path)
			require.NoError(t, err)
			_, err = cache.Warm()
			require.NoError(t, err)
			require.NoError(t, cache.Close())

			cache, err = OpenCachedStore(second, backend, path)
			require.NoError(t, err)
			defer cache.Close()
			assert.Equal(t, 0, cache.Cached())
			url, err := cache.URL(1)
			require.NoError(t, err)
			assert.Equal(t, "http://second.example/1", url)
		})
	}
}

func TestOpenCachedStore_UnknownBackend(t *testing.T) {
	_, err := OpenCachedStore(NewDirStore(t.TempDir()), "memcached", filepath.Join(t.TempDir(), "x"))
	assert.Error(t, err)
}
