// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/pdiddy/proceedings-engine/internal/pipeline"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// renderTable draws rows under headers. Columns listed in right are
// right-aligned.
func renderTable(headers []string, rows [][]string, right ...int) string {
	if len(headers) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(right))
	for _, n := range right {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

// renderReport summarizes a build, one row per stage.
func renderReport(r pipeline.Report) string {
	rows := make([][]string, 0, len(r.Stages))
	for _, s := range r.Stages {
		status := "ok"
		if s.Err != nil {
			status = "error"
		} else if s.Result.HasFailures() {
			status = "failures"
		}
		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(s.Result.Done),
			strconv.Itoa(s.Result.Skipped),
			strconv.Itoa(s.Result.Failed),
			s.Duration.Round(time.Millisecond).String(),
			status,
		})
	}
	return renderTable([]string{"Stage", "Done", "Skipped", "Failed", "Time", "Status"}, rows, 2, 3, 4, 5)
}

// renderPublications lists ledger rows.
func renderPublications(pubs []types.Publication) string {
	rows := make([][]string, 0, len(pubs))
	for _, p := range pubs {
		published := "-"
		if p.IsPublished() {
			published = p.PublishedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			fmt.Sprintf("p%d", p.ID),
			p.DOI,
			p.RecordedAt.Local().Format("2006-01-02 15:04"),
			published,
		})
	}
	return renderTable([]string{"Paper", "DOI", "Recorded", "Published"}, rows)
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

var statusLabels = map[statusKind]string{
	statusInfo:  "INFO",
	statusOK:    "OK",
	statusWarn:  "WARN",
	statusError: "ERROR",
}

var statusColors = map[statusKind]string{
	statusInfo:  ansiBlue,
	statusOK:    ansiGreen,
	statusWarn:  ansiYellow,
	statusError: ansiRed,
}

// statusLine renders "  Label:   [KIND] message", colored on terminals.
func statusLine(label string, kind statusKind, message string, colorize bool) string {
	line := fmt.Sprintf("  %-20s [%s]", label+":", statusLabels[kind])
	if message != "" {
		line += " " + message
	}
	if colorize {
		return statusColors[kind] + line + ansiReset
	}
	return line
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
