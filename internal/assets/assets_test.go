package assets

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	assert.Equal(t, "textures/door/color.jpg", Clean("/textures/door/color.jpg"))
	assert.Equal(t, "models/fence.glb", Clean("models/./fence.glb"))
	assert.Equal(t, "../secret", Clean("/../secret"))
}

func TestManagerLoadPriority(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{
		"textures/grass/color.jpg": {Data: []byte("base")},
		"textures/roof/color.jpg":  {Data: []byte("roof")},
	})
	m.AddFS(fstest.MapFS{
		"textures/grass/color.jpg": {Data: []byte("override")},
	})

	data, err := m.Load("/textures/grass/color.jpg")
	require.NoError(t, err)
	assert.Equal(t, "override", string(data), "last root wins")

	data, err = m.Load("textures/roof/color.jpg")
	require.NoError(t, err)
	assert.Equal(t, "roof", string(data))
}

func TestManagerCache(t *testing.T) {
	fsys := fstest.MapFS{"a.bin": {Data: []byte{1, 2, 3}}}
	m := NewManager()
	m.AddFS(fsys)

	_, err := m.Load("a.bin")
	require.NoError(t, err)
	delete(fsys, "a.bin")

	data, err := m.ReadFile("/a.bin")
	require.NoError(t, err, "second read is served from the cache")
	assert.Equal(t, []byte{1, 2, 3}, data)

	hits, misses := m.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestManagerErrors(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{})

	_, err := m.Load("models/missing.glb")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Load("../outside.txt")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestManagerPut(t *testing.T) {
	m := NewManager()
	m.Put("/models/ghost.glb#image0", []byte("png"))

	data, err := m.Load("models/ghost.glb#image0")
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	m.Close()
	_, err = m.Load("models/ghost.glb#image0")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerAddRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "textures"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "textures", "alpha.jpg"), []byte("jpg"), 0o644))

	m := NewManager()
	require.NoError(t, m.AddRoot(dir))
	data, err := m.Load("/textures/alpha.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpg", string(data))

	assert.Error(t, m.AddRoot(filepath.Join(dir, "nope")))
	assert.Error(t, m.AddRoot(filepath.Join(dir, "textures", "alpha.jpg")))
}
