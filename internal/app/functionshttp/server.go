package functionshttp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/sir_venger/blob_functions/internal/config"
	"github.com/sir_venger/blob_functions/internal/storage"
	"github.com/sir_venger/blob_functions/internal/storage/azure"
	"github.com/sir_venger/blob_functions/internal/storage/localfs"
	"github.com/sir_venger/blob_functions/internal/storage/s3"
	"github.com/sir_venger/blob_functions/internal/sysinfo"
	"github.com/sir_venger/blob_functions/internal/usecase/blobsvc"
	"github.com/sir_venger/blob_functions/pkg/apiproto"
	"github.com/sir_venger/blob_functions/pkg/httperrors"
)

type Server struct {
	Blobs  blobsvc.Service
	Health sysinfo.Collector
	Cfg    *config.Config
	Logger zerolog.Logger
}

// NewServer конструктор
func NewServer(cfg *config.Config, logger zerolog.Logger) (http.Handler, *Server, error) {
	open, err := buildOpener(cfg)
	if err != nil {
		return nil, nil, err
	}

	srv := &Server{
		Blobs: blobsvc.New(blobsvc.Deps{
			Open:      open,
			Container: cfg.Storage.Container,
			Logger:    logger.With().Str("component", "blobsvc").Logger(),
		}),
		Health: &sysinfo.Host{CPUSample: cfg.CPUSample()},
		Cfg:    cfg,
		Logger: logger,
	}

	return srv.Routes(), srv, nil
}

// Routes собирает роутер. Метод проверяет сам обработчик, чтобы 405 тоже
// отдавался JSON-конвертом.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(s.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(allowAnyOrigin)
	r.Use(s.recoverJSON)

	prefix := s.Cfg.RoutePrefix
	r.HandleFunc(prefix+apiproto.PathHello, s.hello)
	r.HandleFunc(prefix+apiproto.PathHealth, s.health)
	r.HandleFunc(prefix+apiproto.PathBlobs, s.listBlobs)
	r.HandleFunc(prefix+apiproto.PathUpload, s.upload)
	r.HandleFunc(prefix+apiproto.PathBlobTest, s.blobTest)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httperrors.JSON(w, http.StatusNotFound, errorEnvelope("Not found: "+r.URL.Path))
	})

	return r
}

// StartProbeSweeper запускает фоновую очистку probe-объектов, если сервис её поддерживает.
func (s *Server) StartProbeSweeper() func() {
	type sweeper interface {
		StartProbeSweeper(ttl, every time.Duration) func()
	}
	if sw, ok := s.Blobs.(sweeper); ok {
		return sw.StartProbeSweeper(s.Cfg.SweepTTL(), s.Cfg.SweepInterval())
	}
	return func() {}
}

// buildOpener выбирает реализацию бэкенда по конфигурации. Клиент создаётся
// на каждый запрос.
func buildOpener(cfg *config.Config) (storage.Opener, error) {
	st := cfg.Storage

	switch st.Backend {
	case config.BackendAzure:
		return func(context.Context) (storage.Backend, error) {
			return azure.New(azure.Config{
				AccountURL:       st.AccountURL,
				SASToken:         st.SASToken,
				ConnectionString: st.ConnectionString,
				Container:        st.Container,
				PublicBaseURL:    st.PublicBaseURL,
			})
		}, nil
	case config.BackendS3:
		return func(context.Context) (storage.Backend, error) {
			return s3.New(s3.Config{
				Endpoint:      st.Endpoint,
				AccessKey:     st.AccessKey,
				SecretKey:     st.SecretKey,
				Region:        st.Region,
				UseSSL:        st.UseSSL,
				Bucket:        st.Container,
				PublicBaseURL: st.PublicBaseURL,
			})
		}, nil
	case config.BackendLocal:
		// Каталог контейнера создаётся один раз при старте, дальше только открывается.
		if _, err := localfs.New(st.LocalDir, st.Container, st.PublicBaseURL); err != nil {
			return nil, err
		}
		return func(context.Context) (storage.Backend, error) {
			return localfs.Open(st.LocalDir, st.Container, st.PublicBaseURL)
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", st.Backend)
	}
}
