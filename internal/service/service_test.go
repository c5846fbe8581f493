package service

import (
	"CatalogBot/internal/repo"
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: filepath.Join(t.TempDir(), "test.db")}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

// recordingRemover запоминает удалённые ссылки
type recordingRemover struct {
	mu      sync.Mutex
	removed []string
}

func (r *recordingRemover) Remove(_ context.Context, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, ref)
	return nil
}

func (r *recordingRemover) Removed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.removed...)
}

type mockRemover struct{ mock.Mock }

func (m *mockRemover) Remove(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}

var _ AssetRemover = (*mockRemover)(nil)

func newTestCatalog(t *testing.T) (*CatalogService, *recordingRemover, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	rm := &recordingRemover{}
	return NewCatalogService(NewRepos(db), rm, zap.NewNop().Sugar()), rm, db
}

func strPtr(s string) *string { return &s }
