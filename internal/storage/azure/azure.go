// Package azure реализует storage.Backend поверх Azure Blob Storage.
package azure

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"

	"github.com/sir_venger/blob_functions/internal/storage"
)

// maxPageSize — верхняя граница maxresults у List Blobs.
const maxPageSize = 5000

var _ storage.Backend = (*Store)(nil)

// Config — параметры подключения к одному контейнеру.
type Config struct {
	// AccountURL — адрес сервиса. Допускается SAS-URL контейнера целиком
	// (https://acct.blob.core.windows.net/container?sp=...&sig=...).
	AccountURL       string
	SASToken         string
	ConnectionString string
	Container        string
	PublicBaseURL    string
}

// Store — клиент Azure Blob, привязанный к контейнеру.
type Store struct {
	client    *azblob.Client
	container string
	baseURL   string
}

// New создаёт клиент. Сетевых вызовов не делает.
func New(cfg Config) (*Store, error) {
	if cfg.Container == "" {
		return nil, fmt.Errorf("azure: container is required")
	}

	var (
		client     *azblob.Client
		serviceURL string
		err        error
	)
	if cfg.ConnectionString != "" {
		client, err = azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
		if err != nil {
			return nil, fmt.Errorf("azure: create client: %w", err)
		}
		serviceURL, _, err = splitAccountURL(client.URL())
	} else {
		var sas string
		serviceURL, sas, err = splitAccountURL(cfg.AccountURL)
		if err != nil {
			return nil, err
		}
		if cfg.SASToken != "" {
			sas = strings.TrimPrefix(cfg.SASToken, "?")
		}
		endpoint := serviceURL + "/"
		if sas != "" {
			endpoint += "?" + sas
		}
		client, err = azblob.NewClientWithNoCredential(endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("azure: create client: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = serviceURL + "/" + cfg.Container
	}

	return &Store{
		client:    client,
		container: cfg.Container,
		baseURL:   strings.TrimRight(base, "/"),
	}, nil
}

// splitAccountURL отделяет scheme://host от SAS-параметров; путь (например,
// имя контейнера в SAS-URL) отбрасывается.
func splitAccountURL(raw string) (serviceURL, sas string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("azure: parse account url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("azure: account url %q must be absolute", raw)
	}

	return u.Scheme + "://" + u.Host, u.RawQuery, nil
}

func (s *Store) Container() string {
	return s.container
}

func (s *Store) ContainerProperties(ctx context.Context) (storage.ContainerProperties, error) {
	resp, err := s.client.ServiceClient().NewContainerClient(s.container).GetProperties(ctx, nil)
	if err != nil {
		return storage.ContainerProperties{}, fmt.Errorf("azure: get container properties: %w", err)
	}

	props := storage.ContainerProperties{
		Name:         s.container,
		LastModified: resp.LastModified,
	}
	if resp.ETag != nil {
		props.ETag = string(*resp.ETag)
	}
	return props, nil
}

func (s *Store) List(ctx context.Context, prefix string, limit int) ([]storage.ObjectInfo, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("azure: limit must be positive")
	}

	opts := &azblob.ListBlobsFlatOptions{
		MaxResults: to.Ptr(int32(min(limit, maxPageSize))),
	}
	if prefix != "" {
		opts.Prefix = to.Ptr(prefix)
	}

	pager := s.client.NewListBlobsFlatPager(s.container, opts)
	if !pager.More() {
		return nil, nil
	}

	// Только одна страница: пагинация дальше первой не поддерживается.
	page, err := pager.NextPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("azure: list blobs: %w", err)
	}

	out := make([]storage.ObjectInfo, 0, len(page.Segment.BlobItems))
	for _, item := range page.Segment.BlobItems {
		if item == nil || item.Name == nil {
			continue
		}
		info := storage.ObjectInfo{Name: *item.Name}
		if p := item.Properties; p != nil {
			if p.ContentLength != nil {
				info.Size = *p.ContentLength
			}
			info.ContentType = p.ContentType
			info.LastModified = p.LastModified
			if p.ETag != nil {
				info.ETag = string(*p.ETag)
			}
		}
		out = append(out, info)
		if len(out) == limit {
			break
		}
	}

	return out, nil
}

func (s *Store) Upload(ctx context.Context, key string, body io.Reader, _ int64, contentType string) error {
	opts := &azblob.UploadStreamOptions{}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)}
	}

	// Без условий доступа Put Blob перезаписывает существующий объект.
	if _, err := s.client.UploadStream(ctx, s.container, key, body, opts); err != nil {
		return fmt.Errorf("azure: upload %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteBlob(ctx, s.container, key, nil); err != nil {
		return fmt.Errorf("azure: delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) URL(key string) string {
	return storage.JoinURL(s.baseURL, key)
}
