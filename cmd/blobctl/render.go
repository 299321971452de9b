package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sir_venger/blob_functions/internal/models"
)

const (
	outText = "text"
	outJSON = "json"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	return t
}

func renderBlobTable(w io.Writer, list models.BlobList) {
	if len(list.Blobs) == 0 {
		fmt.Fprintf(w, "No blobs in %s match prefix %q.\n", list.Container, list.Prefix)
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Size", "Modified", "Content Type", "Name"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Size", Align: text.AlignRight},
	})
	for _, b := range list.Blobs {
		modified := "-"
		if b.LastModified != nil {
			modified = b.LastModified.Local().Format(time.Stamp)
		}
		contentType := "-"
		if b.ContentType != nil {
			contentType = *b.ContentType
		}
		t.AppendRow(table.Row{humanize.IBytes(uint64(max(b.Size, 0))), modified, contentType, b.Name})
	}
	t.AppendFooter(table.Row{"", "", "Total", list.TotalCount})
	t.Render()
}

func renderProbeTable(w io.Writer, report models.ConnectivityReport) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Test", "Status", "Duration", "Message"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Duration", Align: text.AlignRight},
	})
	for _, r := range report.Tests {
		t.AppendRow(table.Row{r.Name, r.Status, fmt.Sprintf("%.2f ms", r.DurationMS), r.Message})
	}
	t.Render()
}
