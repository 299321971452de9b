package azure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ContainerSASURL(t *testing.T) {
	s, err := New(Config{
		AccountURL: "https://acct.blob.core.windows.net/mcpai?sp=racwdl&sv=2024-11-04&sr=c&sig=abc",
		Container:  "mcpai",
	})
	require.NoError(t, err)

	assert.Equal(t, "mcpai", s.Container())
	assert.Equal(t, "https://acct.blob.core.windows.net/mcpai/report.pdf", s.URL("report.pdf"))
}

func TestNew_PublicBaseOverride(t *testing.T) {
	s, err := New(Config{
		AccountURL:    "https://acct.blob.core.windows.net",
		SASToken:      "?sp=r&sig=abc",
		Container:     "mcpai",
		PublicBaseURL: "https://cdn.example.com/files/",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/files/a/b.txt", s.URL("a/b.txt"))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{AccountURL: "https://acct.blob.core.windows.net"})
	assert.ErrorContains(t, err, "container is required")

	_, err = New(Config{AccountURL: "acct.blob.core.windows.net", Container: "c"})
	assert.ErrorContains(t, err, "must be absolute")
}

func TestSplitAccountURL(t *testing.T) {
	svc, sas, err := splitAccountURL("https://acct.blob.core.windows.net/mcpai?sp=r&sig=x")
	require.NoError(t, err)
	assert.Equal(t, "https://acct.blob.core.windows.net", svc)
	assert.Equal(t, "sp=r&sig=x", sas)
}
