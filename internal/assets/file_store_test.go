package assets

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileStore_RequiresPath(t *testing.T) {
	_, err := NewFileStore("  ")
	assert.Error(t, err)
}

func TestFileStore_PutOpenDelete(t *testing.T) {
	base := filepath.Join(t.TempDir(), "uploads")
	fs, err := NewFileStore(base)
	require.NoError(t, err)
	ctx := context.Background()

	ref, err := fs.Put(ctx, "images/a.jpg", bytes.NewReader([]byte("img")), 3, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "images", "a.jpg"), ref)
	assert.True(t, fs.Exists(ctx, ref))

	rc, err := fs.Open(ctx, ref)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))

	require.NoError(t, fs.Delete(ctx, ref))
	assert.False(t, fs.Exists(ctx, ref))
	// повторное удаление — не ошибка
	require.NoError(t, fs.Delete(ctx, ref))

	_, err = fs.Open(ctx, ref)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_RejectsOutsidePaths(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	ctx := context.Background()

	outside := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))

	_, err = fs.Put(ctx, "../escape.txt", bytes.NewReader(nil), 0, "")
	assert.Error(t, err)
	assert.False(t, fs.Exists(ctx, outside))
	_, err = fs.Open(ctx, outside)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Error(t, fs.Delete(ctx, outside))

	_, statErr := os.Stat(outside)
	assert.NoError(t, statErr, "file outside storage must survive")
}
