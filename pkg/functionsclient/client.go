// Package functionsclient — HTTP-клиент для API блоб-функций.
package functionsclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sir_venger/blob_functions/internal/models"
	"github.com/sir_venger/blob_functions/pkg/apiproto"
)

// APIError — ответ сервера со статусом не 2xx.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	// BaseURL включает префикс маршрутов, например http://localhost:7071/api.
	BaseURL string
	HTTP    *http.Client
	// Progress получает индикатор загрузки; nil отключает его.
	Progress io.Writer
}

// New создаёт клиент с http.Client по умолчанию.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
	}
}

// Hello вызывает приветствие указанным методом (пустой — GET).
func (c *Client) Hello(ctx context.Context, method string) (models.Greeting, error) {
	if method == "" {
		method = http.MethodGet
	}
	var out models.Greeting
	err := c.call(ctx, method, apiproto.PathHello, nil, nil, "", &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) (models.Health, error) {
	var out models.Health
	err := c.call(ctx, http.MethodGet, apiproto.PathHealth, nil, nil, "", &out)
	return out, err
}

// List читает страницу блобов. maxResults <= 0 оставляет значение сервера по умолчанию.
func (c *Client) List(ctx context.Context, prefix string, maxResults int) (models.BlobList, error) {
	q := url.Values{}
	if prefix != "" {
		q.Set(apiproto.QueryPrefix, prefix)
	}
	if maxResults > 0 {
		q.Set(apiproto.QueryMaxResults, strconv.Itoa(maxResults))
	}

	var out models.BlobList
	err := c.call(ctx, http.MethodGet, apiproto.PathBlobs, q, nil, "", &out)
	return out, err
}

func (c *Client) Probe(ctx context.Context) (models.ConnectivityReport, error) {
	var out models.ConnectivityReport
	err := c.call(ctx, http.MethodGet, apiproto.PathBlobTest, nil, nil, "", &out)
	return out, err
}

// UploadFile отправляет файл с диска.
func (c *Client) UploadFile(ctx context.Context, path string) (models.UploadResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.UploadResponse{}, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return models.UploadResponse{}, err
	}
	return c.Upload(ctx, filepath.Base(path), f, st.Size(), "")
}

// Upload стримит файл multipart-запросом через io.Pipe, не буферизуя его целиком.
// size нужен только для индикатора; 0 — размер неизвестен.
func (c *Client) Upload(ctx context.Context, filename string, body io.Reader, size int64, contentType string) (models.UploadResponse, error) {
	progress := newUploadProgress(c.Progress, "Uploading "+filename, size)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeFilePart(mw, filename, contentType, io.TeeReader(body, progress)))
	}()

	var out models.UploadResponse
	err := c.call(ctx, http.MethodPost, apiproto.PathUpload, nil, pr, mw.FormDataContentType(), &out)
	_ = pr.CloseWithError(io.ErrClosedPipe)
	progress.finish(err)
	return out, err
}

func writeFilePart(mw *multipart.Writer, filename, contentType string, body io.Reader) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, apiproto.FormFieldFile, filename))
	if contentType != "" {
		h.Set(apiproto.HeaderContentType, contentType)
	}

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err = io.Copy(part, body); err != nil {
		return err
	}
	return mw.Close()
}

func (c *Client) call(ctx context.Context, method, path string, q url.Values, body io.Reader, contentType string, out any) error {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set(apiproto.HeaderContentType, contentType)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeAPIError разбирает конверт ошибки; если тело не JSON, сообщением станет сам текст.
func decodeAPIError(code int, raw []byte) error {
	var env struct {
		Error  string `json:"error"`
		Status string `json:"status"`
	}
	apiErr := &APIError{StatusCode: code, Message: strings.TrimSpace(string(raw))}
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != "" {
		apiErr.Status = env.Status
		apiErr.Message = env.Error
	}
	return apiErr
}

// IsStatus сообщает, что ошибка — ответ сервера с кодом code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
