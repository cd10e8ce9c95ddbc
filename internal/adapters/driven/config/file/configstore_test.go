package file

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set("llm.model", "gpt-4o-mini"))
	require.NoError(t, store.Set("server.port", 8080))
	require.NoError(t, store.Set("server.verbose", true))

	assert.Equal(t, "gpt-4o-mini", store.GetString("llm.model"))
	assert.Equal(t, 8080, store.GetInt("server.port"))
	assert.True(t, store.GetBool("server.verbose"))
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("nope"))
	assert.Equal(t, 0, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set("key", "a string"))

	assert.Equal(t, 0, store.GetInt("key"))
	assert.False(t, store.GetBool("key"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, store.Set("llm.api_key", "sk-test"))
	require.NoError(t, store.Set("llm.timeout", 60))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "sk-test", reopened.GetString("llm.api_key"))
	assert.Equal(t, 60, reopened.GetInt("llm.timeout"))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[llm]\nmodel = \"gpt-4o-mini\"\n\n[llm.limits]\nrps = 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", store.GetString("llm.model"))
	assert.Equal(t, 2, store.GetInt("llm.limits.rps"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set("llm.api_key", "sk-secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_WatchReloads(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, store.Set("llm.model", "old"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = store.Watch(ctx, func() { reloads.Add(1) })
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	content := "[llm]\nmodel = \"new\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	require.Eventually(t, func() bool {
		return store.GetString("llm.model") == "new"
	}, 3*time.Second, 50*time.Millisecond)

	assert.Eventually(t, func() bool {
		return reloads.Load() >= 1
	}, 3*time.Second, 50*time.Millisecond, "reload callback should fire")

	cancel()
	<-done
}
