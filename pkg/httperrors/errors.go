// Package httperrors переводит ошибки обработчиков в JSON-конверт и HTTP-статус.
package httperrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sir_venger/blob_functions/internal/models"
	"github.com/sir_venger/blob_functions/pkg/apiproto"
)

// InternalMessage заменяет текст 500-х ошибок, когда детали бэкенда скрываются.
const InternalMessage = "internal server error"

// Writer пишет конверт ошибки. Если ExposeInternal выключен, текст ошибок
// с кодом 500 не уходит клиенту.
type Writer struct {
	ExposeInternal bool
}

// Status возвращает HTTP-статус для ошибки.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, models.ErrNotMultipart),
		errors.Is(err, models.ErrNoFile),
		errors.Is(err, models.ErrInvalidFile),
		errors.Is(err, models.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (wr Writer) Write(w http.ResponseWriter, err error) {
	status := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError && !wr.ExposeInternal {
		msg = InternalMessage
	}

	JSON(w, status, models.ErrorEnvelope{
		Error:     msg,
		Timestamp: models.Now(),
		Status:    models.StatusError,
	})
}

// JSON пишет тело с отступом в два пробела и стандартными заголовками конверта.
func JSON(w http.ResponseWriter, status int, payload any) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		status = http.StatusInternalServerError
		b, _ = json.MarshalIndent(models.ErrorEnvelope{
			Error:     err.Error(),
			Timestamp: models.Now(),
			Status:    models.StatusError,
		}, "", "  ")
	}

	h := w.Header()
	h.Set(apiproto.HeaderContentType, apiproto.ContentTypeJSON)
	h.Set(apiproto.HeaderAllowOrigin, "*")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}
