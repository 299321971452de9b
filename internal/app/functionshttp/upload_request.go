package functionshttp

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sir_venger/blob_functions/internal/models"
	"github.com/sir_venger/blob_functions/pkg/apiproto"
)

const defaultContentType = "application/octet-stream"

// isMultipart проверяет Content-Type запроса так же мягко, как клиенты его шлют:
// достаточно вхождения multipart/form-data.
func isMultipart(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get(apiproto.HeaderContentType)), apiproto.MultipartFormData)
}

// readUploadedFile потоково читает multipart-тело до поля file и возвращает
// провалидированный файл. Остальные поля пропускаются.
func readUploadedFile(r *http.Request, maxBytes int64) (models.UploadedFile, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("read multipart body: %w", err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			// Пустое тело или поле file отсутствует.
			return models.UploadedFile{}, models.ErrNoFile
		}
		if err != nil {
			return models.UploadedFile{}, fmt.Errorf("read multipart body: %w", err)
		}

		if part.FormName() != apiproto.FormFieldFile {
			_ = part.Close()
			continue
		}

		filename := rawFileName(part)
		if filename == "" {
			return models.UploadedFile{}, models.ErrInvalidFile
		}

		data, err := io.ReadAll(io.LimitReader(part, maxBytes+1))
		if err != nil {
			return models.UploadedFile{}, fmt.Errorf("read file %q: %w", filename, err)
		}
		if int64(len(data)) > maxBytes {
			return models.UploadedFile{}, fmt.Errorf("%w: file exceeds the %d byte upload limit", models.ErrInvalidRequest, maxBytes)
		}

		return models.UploadedFile{
			Filename:    filename,
			ContentType: partContentType(part.Header.Get(apiproto.HeaderContentType), filename),
			Bytes:       data,
		}, nil
	}
}

// rawFileName возвращает filename из Content-Disposition как прислал клиент:
// Part.FileName отрезает каталоги, а original_filename должен совпадать с исходным.
func rawFileName(part *multipart.Part) string {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return ""
	}
	return params["filename"]
}

// partContentType берёт тип из заголовка части, иначе угадывает по расширению.
func partContentType(declared, filename string) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return byExt
	}
	return defaultContentType
}
