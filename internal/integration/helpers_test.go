package integration

import (
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sir_venger/blob_functions/internal/app/functionshttp"
	"github.com/sir_venger/blob_functions/internal/config"
	"github.com/sir_venger/blob_functions/pkg/functionsclient"
)

const publicBase = "https://devstoreaccount1.blob.core.windows.net/mcpai"

// startHost поднимает полный роутер поверх локального хранилища во временной директории.
func startHost(t *testing.T) (*functionsclient.Client, *config.Config) {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.Backend = config.BackendLocal
	cfg.Storage.Container = "mcpai"
	cfg.Storage.LocalDir = t.TempDir()
	cfg.Storage.PublicBaseURL = publicBase
	require.NoError(t, cfg.Validate())

	h, _, err := functionshttp.NewServer(cfg, zerolog.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return functionsclient.New(srv.URL + cfg.RoutePrefix), cfg
}
