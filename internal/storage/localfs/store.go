// Package localfs хранит объекты контейнера в каталоге на диске. Каждый объект —
// файл в objects/, рядом в meta/ лежит JSON с типом содержимого и SHA-256.
// Используется для локальной разработки и интеграционных тестов.
package localfs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sir_venger/blob_functions/internal/storage"
)

const (
	objectsDir = "objects"
	metaDir    = "meta"
	metaSuffix = ".json"
)

var _ storage.Backend = (*Store)(nil)

// Store — контейнер в каталоге root/<container>.
type Store struct {
	dir       string
	container string
	baseURL   string
}

// New создаёт каталог контейнера при необходимости.
func New(root, container, publicBaseURL string) (*Store, error) {
	s, err := Open(root, container, publicBaseURL)
	if err != nil {
		return nil, err
	}
	for _, sub := range []string{objectsDir, metaDir} {
		if err := os.MkdirAll(filepath.Join(s.dir, sub), 0o755); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Open подключается к контейнеру, не создавая его: отсутствие каталога
// обнаружится при первом обращении.
func Open(root, container, publicBaseURL string) (*Store, error) {
	if strings.TrimSpace(container) == "" {
		return nil, fmt.Errorf("localfs: container is required")
	}
	if !filepath.IsLocal(container) {
		return nil, fmt.Errorf("localfs: invalid container name %q", container)
	}

	dir, err := filepath.Abs(filepath.Join(root, container))
	if err != nil {
		return nil, err
	}

	base := publicBaseURL
	if base == "" {
		base = "file://" + filepath.ToSlash(filepath.Join(dir, objectsDir))
	}

	return &Store{dir: dir, container: container, baseURL: base}, nil
}

func (s *Store) Container() string {
	return s.container
}

func (s *Store) ContainerProperties(_ context.Context) (storage.ContainerProperties, error) {
	fi, err := os.Stat(filepath.Join(s.dir, objectsDir))
	if err != nil {
		return storage.ContainerProperties{}, fmt.Errorf("localfs: container %q: %w", s.container, err)
	}
	if !fi.IsDir() {
		return storage.ContainerProperties{}, fmt.Errorf("localfs: container %q is not a directory", s.container)
	}

	lm := fi.ModTime().UTC()
	return storage.ContainerProperties{Name: s.container, LastModified: &lm}, nil
}

func (s *Store) List(ctx context.Context, prefix string, limit int) ([]storage.ObjectInfo, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("localfs: limit must be positive")
	}

	root := filepath.Join(s.dir, objectsDir)
	var keys []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || strings.HasSuffix(path, ".tmp") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("localfs: list: %w", err)
	}

	// Порядок как у облачных бэкендов: лексикографический по имени.
	sort.Strings(keys)
	if len(keys) > limit {
		keys = keys[:limit]
	}

	out := make([]storage.ObjectInfo, 0, len(keys))
	for _, key := range keys {
		info, err := s.stat(key)
		if err != nil {
			return nil, fmt.Errorf("localfs: stat %q: %w", key, err)
		}
		out = append(out, info)
	}

	return out, nil
}

func (s *Store) stat(key string) (storage.ObjectInfo, error) {
	dataPath, metaPath, err := s.paths(key)
	if err != nil {
		return storage.ObjectInfo{}, err
	}

	m, err := readMeta(metaPath)
	if err != nil {
		// Файл положили мимо Upload — восстанавливаем то, что можно.
		fi, statErr := os.Stat(dataPath)
		if statErr != nil {
			return storage.ObjectInfo{}, statErr
		}
		lm := fi.ModTime().UTC()
		return storage.ObjectInfo{Name: key, Size: fi.Size(), LastModified: &lm}, nil
	}

	info := storage.ObjectInfo{
		Name:         key,
		Size:         m.Size,
		LastModified: &m.LastModified,
		ETag:         `"` + m.Sha256 + `"`,
	}
	if m.ContentType != "" {
		ct := m.ContentType
		info.ContentType = &ct
	}
	return info, nil
}

func (s *Store) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	dataPath, metaPath, err := s.paths(key)
	if err != nil {
		return err
	}
	if _, err = os.Stat(filepath.Join(s.dir, objectsDir)); err != nil {
		return fmt.Errorf("localfs: container %q: %w", s.container, err)
	}
	if err = os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return err
	}

	tmp := dataPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(f, h), body)
	closeErr := f.Close()
	if err != nil {
		return fmt.Errorf("localfs: write %q: %w", key, err)
	}
	if closeErr != nil {
		return closeErr
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if size >= 0 && n != size {
		return fmt.Errorf("localfs: size mismatch for %q: want %d, got %d", key, size, n)
	}

	if err = os.Rename(tmp, dataPath); err != nil {
		return err
	}

	return writeMeta(metaPath, objectMeta{
		Key:          key,
		Size:         n,
		ContentType:  contentType,
		Sha256:       hex.EncodeToString(h.Sum(nil)),
		LastModified: time.Now().UTC(),
	})
}

func (s *Store) Delete(_ context.Context, key string) error {
	dataPath, metaPath, err := s.paths(key)
	if err != nil {
		return err
	}
	if err = os.Remove(dataPath); err != nil {
		return fmt.Errorf("localfs: delete %q: %w", key, err)
	}
	if err = os.Remove(metaPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("localfs: delete meta %q: %w", key, err)
	}
	return nil
}

func (s *Store) URL(key string) string {
	return storage.JoinURL(s.baseURL, key)
}

// paths валидирует ключ и рассчитывает пути до данных и метаданных.
func (s *Store) paths(key string) (string, string, error) {
	rel := filepath.FromSlash(key)
	if key == "" || !filepath.IsLocal(rel) || strings.HasSuffix(key, ".tmp") {
		return "", "", fmt.Errorf("localfs: invalid key %q", key)
	}

	return filepath.Join(s.dir, objectsDir, rel), filepath.Join(s.dir, metaDir, rel+metaSuffix), nil
}
