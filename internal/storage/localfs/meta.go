package localfs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// objectMeta хранится рядом с данными и описывает объект.
type objectMeta struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	Sha256       string    `json:"sha256"`
	LastModified time.Time `json:"last_modified"`
}

// writeMeta атомарно перезаписывает метаданные объекта на диске.
func writeMeta(path string, m objectMeta) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// readMeta читает метаданные объекта с диска.
func readMeta(path string) (*objectMeta, error) {
	// meta-файлы маленькие, ReadFile достаточно.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m objectMeta
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}

	return &m, nil
}
