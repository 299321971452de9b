package blobsvc

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sir_venger/blob_functions/internal/models"
)

// Upload сохраняет файл под новым ключом <uuid><расширение> и возвращает его адрес.
func (s *Blobs) Upload(ctx context.Context, file models.UploadedFile) (models.FileInfo, error) {
	key := s.objectKey(file.Filename)
	size := int64(len(file.Bytes))

	backend, err := s.Open(ctx)
	if err != nil {
		return models.FileInfo{}, fmt.Errorf("failed to upload file to blob storage: %w", err)
	}

	if err = backend.Upload(ctx, key, bytes.NewReader(file.Bytes), size, file.ContentType); err != nil {
		return models.FileInfo{}, fmt.Errorf("failed to upload file to blob storage: %w", err)
	}

	s.Logger.Info().
		Str("original_filename", file.Filename).
		Str("blob", key).
		Int64("size", size).
		Msg("file uploaded")

	return models.FileInfo{
		OriginalFilename: file.Filename,
		BlobFilename:     key,
		ContentType:      file.ContentType,
		FileSize:         size,
		BlobURL:          backend.URL(key),
	}, nil
}

// objectKey строит ключ, не зависящий от присланного имени, кроме расширения.
func (s *Blobs) objectKey(filename string) string {
	return s.NewID() + extension(filename)
}

// extension возвращает расширение имени файла; ведущие точки (".env") расширением не считаются.
func extension(filename string) string {
	base := strings.TrimLeft(filepath.Base(filename), ".")
	return filepath.Ext(base)
}
