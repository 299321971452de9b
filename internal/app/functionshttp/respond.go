package functionshttp

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/sir_venger/blob_functions/internal/models"
	"github.com/sir_venger/blob_functions/pkg/httperrors"
)

func (s *Server) errWriter() httperrors.Writer {
	return httperrors.Writer{ExposeInternal: s.Cfg.ExposeBackendErrors}
}

// fail логирует ошибку и отвечает конвертом с соответствующим статусом.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ev := hlog.FromRequest(r).Warn()
	if httperrors.Status(err) >= http.StatusInternalServerError {
		ev = hlog.FromRequest(r).Error()
	}
	ev.Err(err).Msg(msg)

	s.errWriter().Write(w, err)
}

// requireMethod отвечает 405, если метод запроса не совпадает с ожидаемым.
func (s *Server) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}

	s.errWriter().Write(w, fmt.Errorf("%w. Only %s is supported.", models.ErrMethodNotAllowed, method))
	return false
}

func errorEnvelope(msg string) models.ErrorEnvelope {
	return models.ErrorEnvelope{
		Error:     msg,
		Timestamp: models.Now(),
		Status:    models.StatusError,
	}
}
