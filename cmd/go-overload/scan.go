// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/go-overload/internal/ast"
	"github.com/petar-djukic/go-overload/pkg/types"
)

// Output formats of the scan command.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// scanReport is what scan prints.
type scanReport struct {
	Root   string              `json:"root" yaml:"root"`
	Files  int                 `json:"files" yaml:"files"`
	Blocks []types.BlockReport `json:"blocks" yaml:"blocks"`
	Errors []string            `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// newScanCmd creates the "scan" command.
func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Report the overload blocks in a Go source tree",
		Long:  "Scan parses every Go file under dir (default .) and reports each overload block: its definitions in dispatch order and the dispatch groups they form.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}

	cmd.Flags().String("format", "", "Output format: text, json or yaml (default text on a terminal, json otherwise)")
	cmd.Flags().Int("concurrency", 0, "Files parsed in parallel (default number of CPUs)")
	viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("concurrency", cmd.Flags().Lookup("concurrency"))

	return cmd
}

// runScan scans the directory and prints the report.
func runScan(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	format := viper.GetString("format")
	if format == "" {
		format = defaultFormat(os.Stdout)
	}
	if format != formatText && format != formatJSON && format != formatYAML {
		return fmt.Errorf("unknown format %q", format)
	}

	parser, err := ast.NewParser(viper.GetString("parser"))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	res, err := ast.ScanDir(ctx, dir, ast.ScanOptions{
		Parser:      parser,
		Concurrency: viper.GetInt("concurrency"),
	})
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}

	report := scanReport{Root: dir, Files: len(res.Files), Blocks: res.Blocks}
	for _, e := range res.Errors {
		slog.Warn("skipped file", "file", e.FilePath, "error", e.Err)
		report.Errors = append(report.Errors, e.Error())
	}
	slog.Debug("scan complete", "root", dir, "files", report.Files, "blocks", len(report.Blocks))

	return writeReport(cmd.OutOrStdout(), format, report)
}

// defaultFormat picks text for terminals and json for pipes and files.
func defaultFormat(f *os.File) string {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return formatText
	}
	return formatJSON
}

// writeReport writes report to w in format.
func writeReport(w io.Writer, format string, report scanReport) error {
	switch format {
	case formatJSON:
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, renderText(report))
		return err
	}
}

// renderText formats the report for reading in a terminal.
func renderText(report scanReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d files, %d overload blocks\n", report.Root, report.Files, len(report.Blocks))
	for _, blk := range report.Blocks {
		fmt.Fprintf(&b, "\n%s:%d\n", blk.File, blk.Line)
		for _, d := range blk.Definitions {
			fmt.Fprintf(&b, "  #%d %s line %d\n", d.Index, d.Signature(), d.Location.Line)
		}
		for _, g := range blk.Groups {
			idx := make([]string, len(g.Indexes))
			for i, n := range g.Indexes {
				idx[i] = fmt.Sprintf("#%d", n)
			}
			fmt.Fprintf(&b, "  %s -> %s\n", g.Name, strings.Join(idx, ", "))
		}
	}
	for _, e := range report.Errors {
		fmt.Fprintf(&b, "error: %s\n", e)
	}
	return b.String()
}
