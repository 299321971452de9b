package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helloMethod string

var helloCmd = &cobra.Command{
	Use:   "hello",
	Short: "Call the greeting endpoint.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		out, err := newClient().Hello(ctx, helloMethod)
		if err != nil {
			return err
		}
		return printJSON(cmd, out)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show host platform and resource usage.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		out, err := newClient().Health(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd, out)
	},
}

var (
	listPrefix     string
	listMaxResults int
	listOut        string
	probeOut       string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List blobs in the configured container.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		out, err := newClient().List(ctx, listPrefix, listMaxResults)
		if err != nil {
			return err
		}
		switch listOut {
		case outText:
			renderBlobTable(cmd.OutOrStdout(), out)
			return nil
		case outJSON:
			return printJSON(cmd, out)
		default:
			return fmt.Errorf("unknown output format %q", listOut)
		}
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a local file as a new blob.",
	Long:  `Upload sends the file as multipart/form-data in the "file" field. The blob name is generated by the server; only the extension of the local name is kept.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		out, err := newClient().UploadFile(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, out)
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run the storage connectivity test.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		out, err := newClient().Probe(ctx)
		if err != nil {
			return err
		}
		switch probeOut {
		case outText:
			renderProbeTable(cmd.OutOrStdout(), out)
			return nil
		case outJSON:
			return printJSON(cmd, out)
		default:
			return fmt.Errorf("unknown output format %q", probeOut)
		}
	},
}

func init() {
	rootCmd.AddCommand(helloCmd, healthCmd, listCmd, uploadCmd, probeCmd)

	helloCmd.Flags().StringVarP(&helloMethod, "method", "X", "GET", "HTTP method to send")
	listCmd.Flags().StringVarP(&listPrefix, "prefix", "p", "", "only blobs whose names start with this prefix")
	listCmd.Flags().IntVarP(&listMaxResults, "max-results", "n", 0, "page size (server default 50)")
	listCmd.Flags().StringVarP(&listOut, "out", "o", outJSON, "output format: text, json")
	probeCmd.Flags().StringVarP(&probeOut, "out", "o", outJSON, "output format: text, json")
}
