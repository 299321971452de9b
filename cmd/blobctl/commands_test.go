package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/blobs", r.URL.Path)
		assert.Equal(t, "logs/", r.URL.Query().Get("prefix"))
		assert.Equal(t, "3", r.URL.Query().Get("max_results"))
		_, _ = io.WriteString(w, `{"status":"success","timestamp":"2024-05-01T10:00:00Z","message":"Blob list retrieved successfully","container":"mcpai","prefix":"logs/","max_results":3,"total_count":0,"blobs":[]}`)
	}))
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--url", srv.URL + "/api", "list", "--prefix", "logs/", "-n", "3"})
	require.NoError(t, rootCmd.Execute())

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "mcpai", got["container"])
	assert.EqualValues(t, 3, got["max_results"])
}

func TestProbeCommand_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = io.WriteString(w, `{"error":"Method not allowed. Only GET is supported.","timestamp":"2024-05-01T10:00:00Z","status":"error"}`)
	}))
	defer srv.Close()

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--url", srv.URL, "probe"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Method not allowed")
}

func TestListCommand_Text(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"success","timestamp":"2024-05-01T10:00:00Z","message":"Blob list retrieved successfully","container":"mcpai","prefix":"","max_results":50,"total_count":1,
"blobs":[{"name":"a.pdf","size":2048,"content_type":"application/pdf","last_modified":"2024-05-01T09:00:00Z","etag":"\"e\"","url":"https://h/mcpai/a.pdf"}]}`)
	}))
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--url", srv.URL, "list", "-o", "text"})
	require.NoError(t, rootCmd.Execute())
	listOut = outJSON

	assert.Contains(t, out.String(), "a.pdf")
	assert.Contains(t, out.String(), "2.0 KiB")
	assert.Contains(t, out.String(), "application/pdf")
}
