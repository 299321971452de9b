package blobsvc

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sir_venger/blob_functions/internal/storage"
)

// fakeBackend — in-memory контейнер с внедрением ошибок по операциям.
type fakeBackend struct {
	mu      sync.Mutex
	objects map[string]fakeObject
	errs    map[string]error
	deleted []string
}

type fakeObject struct {
	body        []byte
	contentType string
	modified    time.Time
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{objects: map[string]fakeObject{}, errs: map[string]error{}}
}

func (f *fakeBackend) fail(op string, err error) { f.errs[op] = err }

func (f *fakeBackend) Container() string { return "mcpai" }

func (f *fakeBackend) ContainerProperties(context.Context) (storage.ContainerProperties, error) {
	if err := f.errs["props"]; err != nil {
		return storage.ContainerProperties{}, err
	}
	return storage.ContainerProperties{Name: "mcpai"}, nil
}

func (f *fakeBackend) List(_ context.Context, prefix string, limit int) ([]storage.ObjectInfo, error) {
	if err := f.errs["list"]; err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if len(keys) > limit {
		keys = keys[:limit]
	}

	out := make([]storage.ObjectInfo, 0, len(keys))
	for _, k := range keys {
		obj := f.objects[k]
		ct := obj.contentType
		lm := obj.modified
		out = append(out, storage.ObjectInfo{Name: k, Size: int64(len(obj.body)), ContentType: &ct, LastModified: &lm, ETag: "0x1"})
	}
	return out, nil
}

func (f *fakeBackend) Upload(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if err := f.errs["upload"]; err != nil {
		return err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = fakeObject{body: b, contentType: contentType, modified: time.Now()}
	return nil
}

func (f *fakeBackend) Delete(_ context.Context, key string) error {
	if err := f.errs["delete"]; err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[key]; !ok {
		return errors.New("BlobNotFound")
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBackend) URL(key string) string {
	return "https://acct.blob.core.windows.net/mcpai/" + key
}

func newTestService(b *fakeBackend, openErr error) *Blobs {
	return New(Deps{
		Open: func(context.Context) (storage.Backend, error) {
			if openErr != nil {
				return nil, openErr
			}
			return b, nil
		},
		Container: "mcpai",
		Logger:    zerolog.Nop(),
	})
}
