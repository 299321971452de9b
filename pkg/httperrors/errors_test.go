package httperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sir_venger/blob_functions/internal/models"
)

func TestStatus(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("%w. Only GET is supported.", models.ErrMethodNotAllowed): http.StatusMethodNotAllowed,
		models.ErrNotMultipart: http.StatusBadRequest,
		models.ErrNoFile:       http.StatusBadRequest,
		models.ErrInvalidFile:  http.StatusBadRequest,
		fmt.Errorf("%w: too big", models.ErrInvalidRequest): http.StatusBadRequest,
		errors.New("boom"): http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, Status(err), err.Error())
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWrite_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Writer{ExposeInternal: true}.Write(rec, fmt.Errorf("%w. Only POST is supported.", models.ErrMethodNotAllowed))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	body := decode(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Method not allowed. Only POST is supported.", body["error"])
	assert.NotEmpty(t, body["timestamp"])
	assert.Contains(t, rec.Body.String(), "\n  \"error\"")
}

func TestWrite_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	Writer{ExposeInternal: false}.Write(rec, errors.New("AuthorizationPermissionMismatch"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, InternalMessage, decode(t, rec)["error"])

	// 4xx не скрываются
	rec = httptest.NewRecorder()
	Writer{ExposeInternal: false}.Write(rec, models.ErrNoFile)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.ErrNoFile.Error(), decode(t, rec)["error"])
}

func TestJSON_MarshalFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", decode(t, rec)["status"])
}
