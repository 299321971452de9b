package functionshttp

import (
	"net/http"

	"github.com/sir_venger/blob_functions/internal/models"
	"github.com/sir_venger/blob_functions/pkg/httperrors"
)

// hello отвечает приветствием на любой метод.
func (s *Server) hello(w http.ResponseWriter, r *http.Request) {
	httperrors.JSON(w, http.StatusOK, models.Greeting{
		Message:   "Hello, World!",
		Timestamp: models.Now(),
		Method:    r.Method,
		Status:    models.StatusSuccess,
	})
}
