package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore сохраняет файлы на диск; ссылкой служит путь к файлу.
type FileStore struct {
	basePath string
}

// NewFileStore создаёт базовый каталог, если его нет.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{basePath: filepath.Clean(basePath)}, nil
}

func (f *FileStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	target := filepath.Join(f.basePath, filepath.FromSlash(key))
	if !f.inside(target) {
		return "", fmt.Errorf("key %q escapes storage dir", key)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close file: %w", err)
	}
	return target, nil
}

func (f *FileStore) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	if !f.inside(ref) {
		return nil, ErrNotFound
	}
	file, err := os.Open(ref)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return file, nil
}

func (f *FileStore) Exists(_ context.Context, ref string) bool {
	if !f.inside(ref) {
		return false
	}
	st, err := os.Stat(ref)
	return err == nil && st.Mode().IsRegular()
}

func (f *FileStore) Delete(_ context.Context, ref string) error {
	if !f.inside(ref) {
		return fmt.Errorf("ref %q is outside storage dir", ref)
	}
	err := os.Remove(ref)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("remove file: %w", err)
}

// inside проверяет, что путь лежит внутри базового каталога
func (f *FileStore) inside(path string) bool {
	rel, err := filepath.Rel(f.basePath, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
