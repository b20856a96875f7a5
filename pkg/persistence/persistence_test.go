package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONFileStore_SaveLoad(t *testing.T) {
	svc := NewJSONFileService(t.TempDir())
	store := svc.NewStore("state", "marketplace", "filters")

	in := payload{Name: "vault", Count: 42}
	require.NoError(t, store.Save(in))

	var out payload
	require.NoError(t, store.Load(&out))
	assert.Equal(t, in, out)
}

func TestJSONFileStore_LoadMissing(t *testing.T) {
	svc := NewJSONFileService(t.TempDir())
	store := svc.NewStore("state", "nowhere", "filters")

	var out payload
	assert.ErrorIs(t, store.Load(&out), ErrNotExists)
}

func TestJSONFileStore_EmptyFileIsNotExists(t *testing.T) {
	dir := t.TempDir()
	svc := NewJSONFileService(dir)
	store := svc.NewStore("state", "marketplace", "filters")

	require.NoError(t, store.Save(payload{}))

	// 截断成空文件，等价于不存在
	fs := store.(*JSONFileStore)
	require.NoError(t, os.WriteFile(fs.filePath(), nil, 0o644))

	var out payload
	assert.ErrorIs(t, store.Load(&out), ErrNotExists)
}

func TestJSONFileStore_KeySanitized(t *testing.T) {
	dir := t.TempDir()
	svc := NewJSONFileService(dir)
	store := svc.NewStore("state", "some/evil:key", "filters")

	require.NoError(t, store.Save(payload{Name: "x"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "/")
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))
}

func TestJSONFileStore_Overwrite(t *testing.T) {
	svc := NewJSONFileService(t.TempDir())
	store := svc.NewStore("state", "marketplace", "filters")

	require.NoError(t, store.Save(payload{Name: "a", Count: 1}))
	require.NoError(t, store.Save(payload{Name: "b", Count: 2}))

	var out payload
	require.NoError(t, store.Load(&out))
	assert.Equal(t, payload{Name: "b", Count: 2}, out)
}
