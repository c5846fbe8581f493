package handlers

import (
	"CatalogBot/internal/assets"
	"CatalogBot/internal/middleware"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"
)

// FileHandler отдаёт файлы каталога по подписанной ссылке.
type FileHandler struct {
	Assets *assets.Manager
	Logger *zap.SugaredLogger
}

func NewFileHandler(a *assets.Manager, logger *zap.SugaredLogger) *FileHandler {
	return &FileHandler{Assets: a, Logger: logger}
}

// Download стримит файл. Неверная или просроченная ссылка даёт 404, как и отсутствующий файл.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	ref, ok := middleware.GetAssetRefFromContext(r.Context())
	if !ok {
		http.NotFound(w, r)
		return
	}

	rc, err := h.Assets.Open(r.Context(), ref)
	if errors.Is(err, assets.ErrNotFound) {
		h.Logger.Warnw("Download: file is gone", "ref", ref)
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.Logger.Errorw("Download: open failed", "ref", ref, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	name := path.Base(ref)
	w.Header().Set("Content-Type", contentTypeOf(name))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.Logger.Warnw("Download: copy interrupted", "ref", ref, "error", err)
	}
}

func contentTypeOf(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
