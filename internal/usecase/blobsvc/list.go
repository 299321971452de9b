package blobsvc

import (
	"context"
	"fmt"

	"github.com/sir_venger/blob_functions/internal/models"
)

// List читает одну страницу объектов с префиксом prefix и нормализует метаданные.
func (s *Blobs) List(ctx context.Context, prefix string, maxResults int) ([]models.Blob, error) {
	if maxResults < 1 {
		return nil, fmt.Errorf("failed to list blobs in container: max_results must be positive, got %d", maxResults)
	}

	backend, err := s.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs in container: %w", err)
	}

	objects, err := backend.List(ctx, prefix, maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs in container: %w", err)
	}

	blobs := make([]models.Blob, 0, min(len(objects), maxResults))
	for _, obj := range objects {
		if len(blobs) == maxResults {
			break
		}
		blobs = append(blobs, models.Blob{
			Name:         obj.Name,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
			ETag:         obj.ETag,
			URL:          backend.URL(obj.Name),
		})
	}

	return blobs, nil
}
