// Package assets хранит обложки и документы записей каталога.
// Запись в БД хранит только ссылку (ref), выданную хранилищем.
package assets

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound: файла по ссылке нет.
var ErrNotFound = errors.New("asset not found")

// Store: хранилище файлов.
type Store interface {
	// Put сохраняет данные под ключом и возвращает ссылку для записи в БД.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Open открывает файл по ссылке; ErrNotFound, если его нет.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	Exists(ctx context.Context, ref string) bool
	// Delete удаляет файл; отсутствие файла ошибкой не считается.
	Delete(ctx context.Context, ref string) error
}
