// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetcher

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Output formats accepted by Format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Format writes papers to w in the named format.
func Format(papers []types.Paper, format string, w io.Writer) error {
	switch strings.ToLower(format) {
	case "", FormatTable:
		WriteTable(papers, w)
		return nil
	case FormatJSON:
		return WriteJSON(papers, w)
	case FormatYAML:
		return WriteYAML(papers, w)
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

// WriteTable writes papers as a human-readable table to w.
func WriteTable(papers []types.Paper, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-12s  %-16s  %-55s  %-20s  %s\n",
		"#", "ID", "Published", "Title", "Authors", "Categories")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for i, p := range papers {
		fmt.Fprintf(w, "%-4d  %-12s  %-16s  %-55s  %-20s  %s\n",
			i+1, p.ID, p.Published.UTC().Format("2006-01-02 15:04"),
			truncate(p.Title, 55), formatAuthors(p.Authors), strings.Join(p.Categories, ","))
	}

	fmt.Fprintf(w, "\n%d papers\n", len(papers))
}

// WriteJSON writes papers as indented JSON to w.
func WriteJSON(papers []types.Paper, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}

// WriteYAML writes papers as a YAML sequence to w.
func WriteYAML(papers []types.Paper, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(papers); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
