package models

// UploadedFile — файл, извлечённый из multipart-запроса и уже провалидированный.
type UploadedFile struct {
	Filename    string
	ContentType string
	Bytes       []byte
}

// FileInfo описывает результат успешной загрузки.
type FileInfo struct {
	OriginalFilename string `json:"original_filename"`
	BlobFilename     string `json:"blob_filename"`
	ContentType      string `json:"content_type"`
	FileSize         int64  `json:"file_size"`
	BlobURL          string `json:"blob_url"`
}

// UploadResponse — ответ /upload.
type UploadResponse struct {
	Status    string    `json:"status"`
	Timestamp Timestamp `json:"timestamp"`
	Message   string    `json:"message"`
	FileInfo  FileInfo  `json:"file_info"`
}
