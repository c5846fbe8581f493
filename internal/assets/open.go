package assets

import (
	"CatalogBot/internal/config"
	"fmt"
)

// OpenStore выбирает хранилище по конфигурации.
func OpenStore(cfg *config.Config) (Store, error) {
	switch cfg.AssetBackend {
	case config.AssetBackendMinio:
		if cfg.MinioEndpoint == "" {
			return nil, fmt.Errorf("minio endpoint is required for asset backend %q", cfg.AssetBackend)
		}
		return NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	default:
		return NewFileStore(cfg.UploadDir)
	}
}
