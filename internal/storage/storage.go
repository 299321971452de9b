// Package storage описывает абстракцию над единственным контейнером объектного хранилища.
// Реализации: azure (Azure Blob Storage), s3 (S3-совместимые хранилища через MinIO SDK)
// и localfs (каталог на диске для локальной разработки и тестов).
package storage

import (
	"context"
	"io"
	"strings"
	"time"
)

// ObjectInfo — метаданные объекта в том виде, в каком их отдал бэкенд.
type ObjectInfo struct {
	Name         string
	Size         int64
	ContentType  *string
	LastModified *time.Time
	ETag         string
}

// ContainerProperties — минимальный набор свойств контейнера.
type ContainerProperties struct {
	Name         string
	LastModified *time.Time
	ETag         string
}

// Backend — операции над одним контейнером.
type Backend interface {
	// Container возвращает имя контейнера.
	Container() string

	// ContainerProperties читает свойства контейнера; требует как минимум права на чтение.
	ContainerProperties(ctx context.Context) (ContainerProperties, error)

	// List возвращает не более limit объектов, имя которых начинается с prefix.
	// Читается ровно одна страница.
	List(ctx context.Context, prefix string, limit int) ([]ObjectInfo, error)

	// Upload записывает объект целиком, перезаписывая существующий.
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Delete удаляет объект.
	Delete(ctx context.Context, key string) error

	// URL детерминированно строит адрес объекта из базового адреса контейнера.
	URL(key string) string
}

// Opener создаёт клиент бэкенда из заранее выданных учётных данных.
type Opener func(ctx context.Context) (Backend, error)

// JoinURL склеивает базовый адрес контейнера и имя объекта.
func JoinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
