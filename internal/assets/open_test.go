package assets

import (
	"CatalogBot/internal/config"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	st, err := OpenStore(&config.Config{AssetBackend: config.AssetBackendFS, UploadDir: dir})
	require.NoError(t, err)
	_, ok := st.(*FileStore)
	assert.True(t, ok)

	_, err = OpenStore(&config.Config{AssetBackend: config.AssetBackendMinio})
	assert.Error(t, err, "minio without endpoint must fail fast")
}
