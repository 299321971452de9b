package models

import "time"

// Blob — нормализованные метаданные объекта контейнера.
type Blob struct {
	Name         string     `json:"name"`
	Size         int64      `json:"size"`
	ContentType  *string    `json:"content_type"`
	LastModified *time.Time `json:"last_modified"`
	ETag         string     `json:"etag"`
	URL          string     `json:"url"`
}

// BlobList — ответ /blobs.
type BlobList struct {
	Status     string    `json:"status"`
	Timestamp  Timestamp `json:"timestamp"`
	Message    string    `json:"message"`
	Container  string    `json:"container"`
	Prefix     string    `json:"prefix"`
	MaxResults int       `json:"max_results"`
	TotalCount int       `json:"total_count"`
	Blobs      []Blob    `json:"blobs"`
}
