package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind: логический раздел хранилища.
type Kind string

const (
	KindImage    Kind = "images"
	KindDocument Kind = "documents"
)

// ErrUnsupportedDocument: присланный файл не является PDF.
var ErrUnsupportedDocument = errors.New("document must be a PDF file")

// ErrEmptyFile: пустое вложение.
var ErrEmptyFile = errors.New("empty file")

// Manager выдаёт ссылки на сохранённые файлы и удаляет их.
type Manager struct {
	store  Store
	logger *zap.SugaredLogger
}

func NewManager(store Store, logger *zap.SugaredLogger) *Manager {
	return &Manager{store: store, logger: logger}
}

// SaveImage сохраняет обложку и возвращает ссылку.
func (m *Manager) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return m.put(ctx, KindImage, ext, data, http.DetectContentType(data))
}

// SaveDocument проверяет, что данные являются читаемым PDF, и сохраняет их.
func (m *Manager) SaveDocument(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if _, err := PDFPages(data); err != nil {
		return "", err
	}
	return m.put(ctx, KindDocument, ".pdf", data, "application/pdf")
}

func (m *Manager) put(ctx context.Context, kind Kind, ext string, data []byte, contentType string) (string, error) {
	key := string(kind) + "/" + uuid.NewString() + ext
	ref, err := m.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return "", fmt.Errorf("save %s: %w", kind, err)
	}
	m.logger.Infow("asset stored", "kind", kind, "ref", ref, "size", len(data))
	return ref, nil
}

// Remove удаляет файл по ссылке; пустая ссылка игнорируется.
func (m *Manager) Remove(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	if err := m.store.Delete(ctx, ref); err != nil {
		return err
	}
	m.logger.Infow("asset removed", "ref", ref)
	return nil
}

// Exists сообщает, есть ли файл по ссылке.
func (m *Manager) Exists(ctx context.Context, ref *string) bool {
	if ref == nil || *ref == "" {
		return false
	}
	return m.store.Exists(ctx, *ref)
}

// Read читает файл целиком.
func (m *Manager) Read(ctx context.Context, ref string) ([]byte, error) {
	rc, err := m.store.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Open открывает файл для потоковой отдачи.
func (m *Manager) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	return m.store.Open(ctx, ref)
}
