package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Index.Buckets)
	assert.Equal(t, 3, cfg.Index.MinWordLength)
	assert.Equal(t, 100, cfg.Query.ScoreboardCapacity)
	assert.Equal(t, "", cfg.PageStore.Cache)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
index:
  buckets: 50
pageStore:
  cache: bolt
  cacheDir: /tmp/cache
`), 0o644))
	t.Setenv("TSE_INDEX_BUCKETS", "75")
	t.Setenv("TSE_QUERY_SCOREBOARD_CAPACITY", "10")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 75, cfg.Index.Buckets)
	assert.Equal(t, 3, cfg.Index.MinWordLength)
	assert.Equal(t, 10, cfg.Query.ScoreboardCapacity)
	assert.Equal(t, "bolt", cfg.PageStore.Cache)
	assert.Equal(t, "/tmp/cache", cfg.PageStore.CacheDir)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"zero buckets": "index:\n  buckets: 0\n",
		"bad cache":    "pageStore:\n  cache: redis\n  cacheDir: x\n",
		"no cache dir": "pageStore:\n  cache: badger\n",
		"not yaml":     "index: [",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tse.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
