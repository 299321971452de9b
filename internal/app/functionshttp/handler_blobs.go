package functionshttp

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sir_venger/blob_functions/internal/models"
	"github.com/sir_venger/blob_functions/internal/usecase/blobsvc"
	"github.com/sir_venger/blob_functions/pkg/apiproto"
	"github.com/sir_venger/blob_functions/pkg/httperrors"
)

// listBlobs отдаёт одну страницу объектов контейнера.
func (s *Server) listBlobs(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	prefix := q.Get(apiproto.QueryPrefix)
	maxResults, err := parseMaxResults(q)
	if err != nil {
		s.fail(w, r, "invalid max_results", err)
		return
	}

	blobs, err := s.Blobs.List(r.Context(), prefix, maxResults)
	if err != nil {
		s.fail(w, r, "error listing blobs", err)
		return
	}

	httperrors.JSON(w, http.StatusOK, models.BlobList{
		Status:     models.StatusSuccess,
		Timestamp:  models.Now(),
		Message:    "Blob list retrieved successfully",
		Container:  s.Blobs.Container(),
		Prefix:     prefix,
		MaxResults: maxResults,
		TotalCount: len(blobs),
		Blobs:      blobs,
	})
}

// parseMaxResults читает max_results; по умолчанию 50. Некорректное значение —
// внутренняя ошибка (500), как и у остальных сбоев обработчика.
func parseMaxResults(q map[string][]string) (int, error) {
	vals, ok := q[apiproto.QueryMaxResults]
	if !ok || len(vals) == 0 {
		return blobsvc.DefaultMaxResults, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(vals[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid max_results %q: %w", vals[0], err)
	}
	return n, nil
}
