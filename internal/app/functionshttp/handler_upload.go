package functionshttp

import (
	"net/http"

	"github.com/sir_venger/blob_functions/internal/models"
	"github.com/sir_venger/blob_functions/pkg/httperrors"
)

// upload принимает multipart-запрос с полем file и сохраняет файл в контейнер.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	if !isMultipart(r) {
		s.fail(w, r, "upload rejected", models.ErrNotMultipart)
		return
	}

	file, err := readUploadedFile(r, s.Cfg.Upload.MaxBytes)
	if err != nil {
		s.fail(w, r, "upload rejected", err)
		return
	}

	info, err := s.Blobs.Upload(r.Context(), file)
	if err != nil {
		s.fail(w, r, "error in file upload", err)
		return
	}

	httperrors.JSON(w, http.StatusOK, models.UploadResponse{
		Status:    models.StatusSuccess,
		Timestamp: models.Now(),
		Message:   "File uploaded successfully",
		FileInfo:  info,
	})
}
