package functionshttp

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/sir_venger/blob_functions/internal/models"
	"github.com/sir_venger/blob_functions/pkg/apiproto"
	"github.com/sir_venger/blob_functions/pkg/httperrors"
)

// health отдаёт сведения о платформе и ресурсах. Ошибка сбора метрик не
// прерывает ответ: клиент получает 503 со статусом unhealthy.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	sys, res, err := s.Health.Collect(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("health metrics collection failed")
		httperrors.JSON(w, http.StatusServiceUnavailable, models.Unhealthy{
			Status:    models.StatusUnhealthy,
			Error:     err.Error(),
			Timestamp: models.Now(),
			Service:   s.Cfg.ServiceName,
		})
		return
	}

	httperrors.JSON(w, http.StatusOK, models.Health{
		Status:      models.StatusHealthy,
		Timestamp:   models.Now(),
		Service:     s.Cfg.ServiceName,
		Version:     s.Cfg.ServiceVersion,
		Environment: s.Cfg.Environment,
		System:      sys,
		Resources:   res,
		Endpoints:   s.endpoints(),
	})
}

func (s *Server) endpoints() map[string]string {
	p := s.Cfg.RoutePrefix
	return map[string]string{
		"hello":     p + apiproto.PathHello,
		"health":    p + apiproto.PathHealth,
		"blobs":     p + apiproto.PathBlobs,
		"upload":    p + apiproto.PathUpload,
		"blob_test": p + apiproto.PathBlobTest,
	}
}
