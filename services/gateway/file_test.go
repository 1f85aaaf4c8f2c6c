package gatewaysvc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwneis/neishelper/core/checklist"
)

func TestFileSlot(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "config")
	slot := NewFileSlot(dir, "neis-checklist-state")
	assert.Equal(t, filepath.Join(dir, "neis-checklist-state.json"), slot.Path())

	_, found, err := slot.Get(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, slot.Put(ctx, "alice", `{"ys-1":true}`))
	blob, found, err := slot.Get(ctx, "bob") // one slot per device
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"ys-1":true}`, blob)

	require.NoError(t, slot.Put(ctx, "alice", `{}`))
	blob, _, err = slot.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, `{}`, blob)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files left behind")
}

func TestFileSlot_storeRoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := NewFileSlot(t.TempDir(), "neis-checklist-state")

	store := checklist.NewStore(slot, "default")
	store.Load(ctx)
	store.Toggle("ys-1")
	store.Toggle("ys-1-2")
	store.Wait()

	reloaded := checklist.NewStore(slot, "default")
	assert.Equal(t, checklist.State{"ys-1": true, "ys-1-2": true}, reloaded.Load(ctx))
}

func TestFileSlot_corruptFileLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	slot := NewFileSlot(t.TempDir(), "neis-checklist-state")
	require.NoError(t, os.WriteFile(slot.Path(), []byte("{not json"), 0o600))

	store := checklist.NewStore(slot, "default")
	assert.Equal(t, checklist.State{}, store.Load(ctx))
	assert.Equal(t, checklist.StatusReady, store.Status())
}
