package commands

import (
	"CatalogBot/internal/assets"
	"CatalogBot/internal/config"
	"CatalogBot/internal/model"
	"CatalogBot/internal/repo"
	"CatalogBot/internal/service"
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// перехват вывода на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// withTempCatalog подменяет openCatalog на временную базу и каталог файлов.
func withTempCatalog(t *testing.T) *service.CatalogService {
	t.Helper()
	dir := t.TempDir()
	db, err := repo.InitDB(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store, err := assets.NewFileStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	logger := zap.NewNop().Sugar()
	svc := service.NewCatalogService(service.NewRepos(db), assets.NewManager(store, logger), logger)

	old := openCatalog
	openCatalog = func(*config.Config) (*service.CatalogService, func(), error) {
		return svc, func() {}, nil
	}
	t.Cleanup(func() { openCatalog = old })
	return svc
}

func seedUser(t *testing.T, svc *service.CatalogService, id int64, username string, role model.Role) {
	t.Helper()
	ctx := context.Background()
	require.True(t, svc.UpsertUser(ctx, model.User{ID: id, Username: username, FirstName: "Имя"}))
	if role != model.RoleUser {
		require.True(t, svc.SetRole(ctx, id, role))
	}
}
