package handlers

import (
	"CatalogBot/internal/assets"
	"CatalogBot/internal/links"
	"CatalogBot/internal/middleware"
	"CatalogBot/internal/telegram"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps: зависимости HTTP-слоя. Webhook и Links могут быть nil.
type Deps struct {
	Assets  *assets.Manager
	Links   middleware.TokenVerifier
	Webhook http.Handler
	DB      Pinger
	Logger  *zap.SugaredLogger
}

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(d Deps) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	healthHandler := NewHealthHandler(d.DB, d.Logger)
	r.Get("/healthz", healthHandler.Health)

	if d.Webhook != nil {
		r.Method(http.MethodPost, telegram.WebhookPath, d.Webhook)
	}

	if d.Links != nil {
		fileHandler := NewFileHandler(d.Assets, d.Logger)
		r.With(middleware.WithAssetToken(d.Links)).Get(links.FilesPath+"{token}", fileHandler.Download)
	}

	return &Handler{Router: r}
}
