package assets

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return NewManager(fs, zap.NewNop().Sugar())
}

func TestManager_SaveDocument(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	ref, err := m.SaveDocument(ctx, minimalPDF())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".pdf"))
	assert.Contains(t, filepath.ToSlash(ref), "/documents/")
	assert.True(t, m.Exists(ctx, &ref))

	data, err := m.Read(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, minimalPDF(), data)

	_, err = m.SaveDocument(ctx, []byte("plain text"))
	assert.ErrorIs(t, err, ErrUnsupportedDocument)
	_, err = m.SaveDocument(ctx, nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestManager_SaveImage_UniqueNames(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	a, err := m.SaveImage(ctx, "cover.PNG", []byte("png-bytes"))
	require.NoError(t, err)
	b, err := m.SaveImage(ctx, "", []byte("jpeg-bytes"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".png"))
	assert.True(t, strings.HasSuffix(b, ".jpg"))
	assert.Contains(t, filepath.ToSlash(a), "/images/")
}

func TestManager_RemoveAndExists(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	ref, err := m.SaveImage(ctx, "a.jpg", []byte("x"))
	require.NoError(t, err)
	require.NoError(t, m.Remove(ctx, ref))
	assert.False(t, m.Exists(ctx, &ref))

	require.NoError(t, m.Remove(ctx, ""))
	assert.False(t, m.Exists(ctx, nil))
	empty := ""
	assert.False(t, m.Exists(ctx, &empty))

	_, err = m.Read(ctx, ref)
	assert.ErrorIs(t, err, ErrNotFound)
}
