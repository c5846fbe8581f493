package repo

import (
	"CatalogBot/internal/model"
	"context"
	"path/filepath"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB открывает SQLite (modernc.org/sqlite) во временном каталоге теста
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

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

// mkItem создаёт запись и возвращает её id
func mkItem(t *testing.T, r ItemRepository, title, author, category string) int64 {
	t.Helper()
	it := model.Item{Title: title, Author: author, Category: category}
	if err := r.Create(context.Background(), &it); err != nil {
		t.Fatalf("create item: %v", err)
	}
	return it.ID
}

func strPtr(s string) *string { return &s }
