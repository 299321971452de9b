package blobsvc

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sir_venger/blob_functions/internal/models"
)

func TestUpload_GeneratesCollisionFreeKey(t *testing.T) {
	b := newFakeBackend()
	svc := newTestService(b, nil)
	file := models.UploadedFile{Filename: "report.pdf", ContentType: "application/pdf", Bytes: []byte("%PDF-1.4")}

	first, err := svc.Upload(context.Background(), file)
	require.NoError(t, err)
	second, err := svc.Upload(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, "report.pdf", first.OriginalFilename)
	assert.True(t, strings.HasSuffix(first.BlobFilename, ".pdf"))
	assert.NotEqual(t, "report.pdf", first.BlobFilename)
	assert.NotEqual(t, first.BlobFilename, second.BlobFilename)
	assert.Equal(t, "application/pdf", first.ContentType)
	assert.EqualValues(t, 8, first.FileSize)
	assert.Equal(t, "https://acct.blob.core.windows.net/mcpai/"+first.BlobFilename, first.BlobURL)

	stored := b.objects[first.BlobFilename]
	assert.Equal(t, "%PDF-1.4", string(stored.body))
	assert.Equal(t, "application/pdf", stored.contentType)
}

func TestUpload_DeterministicID(t *testing.T) {
	svc := newTestService(newFakeBackend(), nil)
	svc.NewID = func() string { return "0b7c1f0e-1111-2222-3333-444455556666" }

	info, err := svc.Upload(context.Background(), models.UploadedFile{Filename: "archive.tar.gz"})
	require.NoError(t, err)
	assert.Equal(t, "0b7c1f0e-1111-2222-3333-444455556666.gz", info.BlobFilename)
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"report.pdf":       ".pdf",
		"archive.tar.gz":   ".gz",
		"README":           "",
		".env":             "",
		".bashrc.txt":      ".txt",
		"dir.v2/notes":     "",
		"nested/photo.JPG": ".JPG",
	}
	for in, want := range cases {
		assert.Equal(t, want, extension(in), in)
	}
}

func TestUpload_BackendError(t *testing.T) {
	b := newFakeBackend()
	b.fail("upload", errors.New("AuthorizationPermissionMismatch: This request is not authorized"))
	svc := newTestService(b, nil)

	_, err := svc.Upload(context.Background(), models.UploadedFile{Filename: "a.txt", Bytes: []byte("x")})
	require.Error(t, err)
	assert.Equal(t, "failed to upload file to blob storage: AuthorizationPermissionMismatch: This request is not authorized", err.Error())
}
