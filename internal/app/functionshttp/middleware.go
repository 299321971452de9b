package functionshttp

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/sir_venger/blob_functions/pkg/apiproto"
)

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

// allowAnyOrigin проставляет CORS-заголовок до того, как обработчик начнёт писать ответ.
func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(apiproto.HeaderAllowOrigin, "*")
		next.ServeHTTP(w, r)
	})
}

// recoverJSON превращает панику обработчика в 500 с конвертом ошибки.
func (s *Server) recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			hlog.FromRequest(r).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("handler panic")
			s.errWriter().Write(w, fmt.Errorf("%v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
