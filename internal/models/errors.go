package models

import "errors"

var (
	ErrMethodNotAllowed = errors.New("Method not allowed")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrNoFile           = errors.New("No file provided. Please include a file in the 'file' field.")
	ErrInvalidFile      = errors.New("Invalid file data")
	ErrNotMultipart     = errors.New("Content-Type must be multipart/form-data")
)
