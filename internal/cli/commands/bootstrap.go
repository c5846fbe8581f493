package commands

import (
	"CatalogBot/internal/assets"
	"CatalogBot/internal/config"
	"CatalogBot/internal/repo"
	"CatalogBot/internal/service"
	"fmt"

	"go.uber.org/zap"
)

// openCatalog открывает БД и хранилище файлов из конфигурации.
// Возвращает сервис и функцию закрытия. В тестах подменяется.
var openCatalog = func(cfg *config.Config) (*service.CatalogService, func(), error) {
	db, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	store, err := assets.OpenStore(cfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("open asset store: %w", err)
	}

	logger := zap.NewNop().Sugar()
	svc := service.NewCatalogService(service.NewRepos(db), assets.NewManager(store, logger), logger)
	return svc, func() { _ = sqlDB.Close() }, nil
}
