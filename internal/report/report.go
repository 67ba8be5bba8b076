package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/cruffinoni/djt2ast/internal/diagnostics"
)

// FileStatus is the per-template processing status used in reports.
type FileStatus string

const (
	StatusParsed       FileStatus = "parsed"
	StatusParsedErrors FileStatus = "parsed_with_errors"
	StatusLexError     FileStatus = "failed_lex"
	StatusParseError   FileStatus = "failed_parse"
)

// DiagnosticItem is the report-friendly representation of one diagnostic.
type DiagnosticItem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// FileItem describes scanning and parsing for one template file.
type FileItem struct {
	File        string           `json:"file"`
	Status      FileStatus       `json:"status"`
	Diagnostics []DiagnosticItem `json:"diagnostics,omitempty"`
	Tokens      int              `json:"tokens,omitempty"`
	Nodes       int              `json:"nodes,omitempty"`
	NodeKinds   []string         `json:"node_kinds,omitempty"`
	DumpPath    string           `json:"dump_path,omitempty"`
}

// Summary contains aggregate counters for a check run.
type Summary struct {
	Discovered  int `json:"discovered"`
	Parsed      int `json:"parsed"`
	LexFailed   int `json:"lex_failed"`
	ParseFailed int `json:"parse_failed"`
	NodeTotal   int `json:"node_total"`
}

// JSONReport is the structured report persisted by --report-json.
type JSONReport struct {
	GeneratedAt string     `json:"generated_at"`
	Summary     Summary    `json:"summary"`
	Files       []FileItem `json:"files"`
}

// NewJSONReport builds a report payload with RFC3339 generation timestamp.
func NewJSONReport(summary Summary, files []FileItem) JSONReport {
	return JSONReport{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Summary:     summary,
		Files:       files,
	}
}

// ToDiagnosticItem converts an error to a typed report diagnostic.
func ToDiagnosticItem(file string, err error) DiagnosticItem {
	d := diagnostics.FromError(file, err)
	return DiagnosticItem{
		Code:    d.Code,
		Message: d.Message,
		File:    d.File,
		Line:    d.Line,
		Snippet: d.Snippet,
	}
}

// WriteJSON writes the full JSON report if path is non-empty.
func WriteJSON(path string, report JSONReport) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	return os.WriteFile(path, raw, 0o644)
}

// WriteCSV writes the flattened CSV report if path is non-empty.
func WriteCSV(path string, files []FileItem) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	w := csv.NewWriter(fh)
	defer w.Flush()

	header := []string{
		"file",
		"status",
		"diagnostics_count",
		"tokens",
		"nodes",
		"dump_path",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	copied := append([]FileItem(nil), files...)
	sort.Slice(copied, func(i, j int) bool { return copied[i].File < copied[j].File })

	for _, item := range copied {
		row := []string{
			item.File,
			string(item.Status),
			strconv.Itoa(len(item.Diagnostics)),
			strconv.Itoa(item.Tokens),
			strconv.Itoa(item.Nodes),
			item.DumpPath,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
