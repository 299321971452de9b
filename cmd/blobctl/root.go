package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sir_venger/blob_functions/pkg/functionsclient"
)

var (
	baseURL string
	timeout time.Duration
)

// rootCmd — точка входа CLI для ручной проверки API функций.
var rootCmd = &cobra.Command{
	Use:          "blobctl",
	Short:        "Call the blob functions API.",
	Long:         `blobctl calls a running blob functions host and prints its JSON responses. It covers every route: hello, health, blob listing, upload and the storage connectivity test.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", envOr("BLOB_FUNCTIONS_URL", "http://localhost:7071/api"), "API base URL including the route prefix")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "request timeout")
}

func newClient() *functionsclient.Client {
	c := functionsclient.New(baseURL)
	c.HTTP = &http.Client{Timeout: timeout}
	c.Progress = functionsclient.InteractiveStderr()
	return c
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
