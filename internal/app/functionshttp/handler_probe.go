package functionshttp

import (
	"net/http"

	"github.com/sir_venger/blob_functions/internal/models"
	"github.com/sir_venger/blob_functions/pkg/httperrors"
)

// blobTest прогоняет самопроверку хранилища. Сбои шагов возвращаются внутри
// отчёта со статусом 200.
func (s *Server) blobTest(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	tests := s.Blobs.Probe(r.Context())

	httperrors.JSON(w, http.StatusOK, models.ConnectivityReport{
		Status:    models.StatusSuccess,
		Timestamp: models.Now(),
		Message:   "Blob storage connection test completed",
		Container: s.Blobs.Container(),
		Tests:     tests,
	})
}
