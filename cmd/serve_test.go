package cmd

import (
	"path/filepath"
	"testing"

	"github.com/gpxtone/gpxtone/cache"
	"github.com/gpxtone/gpxtone/model"
	"github.com/stretchr/testify/assert"
)

func TestCacheSnapshotRoundTrip(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "scores.gob")
	key := cache.Key{Trail: "fp", Config: "cfg"}

	scoreCache.Reset()
	scoreCache.Put(key, &model.Score{Tempo: 120})
	saveCacheSnapshot(path)

	scoreCache.Reset()
	assert.Equal(scoreCache.Len(), 0)

	loadCacheSnapshot(path)
	assert.Equal(scoreCache.Len(), 1)
	s, ok := scoreCache.Get(key)
	if assert.True(ok) {
		assert.Equal(s.Tempo, 120.0)
	}
}

func TestLoadCacheSnapshotIgnoresMissingFile(t *testing.T) {
	scoreCache.Reset()
	loadCacheSnapshot(filepath.Join(t.TempDir(), "absent.gob"))
	assert.Equal(t, scoreCache.Len(), 0)
}
