package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cruffinoni/djt2ast/internal/compiler"
	"github.com/cruffinoni/djt2ast/internal/config"
	"github.com/cruffinoni/djt2ast/internal/diagnostics"
	"github.com/cruffinoni/djt2ast/internal/fswalk"
	"github.com/cruffinoni/djt2ast/internal/report"
)

func writeReports(cfg config.Config, summary report.Summary, files []report.FileItem) error {
	if cfg.ReportJSON != "" {
		if err := report.WriteJSON(cfg.ReportJSON, report.NewJSONReport(summary, files)); err != nil {
			return err
		}
	}
	if cfg.ReportCSV != "" {
		if err := report.WriteCSV(cfg.ReportCSV, files); err != nil {
			return err
		}
	}
	return nil
}

// isLexFailure distinguishes the scanning taxonomy from the parsing one.
func isLexFailure(file string, err error) bool {
	return strings.HasPrefix(diagnostics.FromError(file, err).Code, "LEX_")
}

func writeDump(cfg config.Config, relPath string, result compiler.Result) (string, error) {
	if cfg.Out == "" {
		return "", nil
	}
	outPath := fswalk.MirrorOutputPath(cfg.Out, relPath, cfg.Ext)
	if err := fswalk.EnsureParentDir(outPath); err != nil {
		return "", fmt.Errorf("prepare output path %q: %w", outPath, err)
	}
	raw, err := json.MarshalIndent(result.Document, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode syntax tree for %q: %w", relPath, err)
	}
	raw = append(raw, '\n')
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		return "", fmt.Errorf("write syntax-tree dump %q: %w", outPath, err)
	}
	return outPath, nil
}

func runCheck(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	files, err := fswalk.DiscoverTemplates(cfg.In, cfg.Glob)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no template files matched %q under %q", cfg.Glob, cfg.In)
	}

	var (
		parsed      int
		lexFailed   int
		parseFailed int
		nodeTotal   int

		fileItems = make([]report.FileItem, 0, len(files))

		stopErr  error
		stopCode = ExitCodeSuccess
	)

	for _, f := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		raw, err := os.ReadFile(f.AbsPath)
		if err != nil {
			return fmt.Errorf("read %q: %w", f.AbsPath, err)
		}

		item := report.FileItem{
			File: f.RelPath,
		}

		var result compiler.Result
		var compileErrs []error
		if cfg.Lenient {
			result, compileErrs = compiler.CompileLenient(f.RelPath, string(raw))
		} else {
			result, err = compiler.Compile(f.RelPath, string(raw))
			if err != nil {
				compileErrs = []error{err}
			}
		}

		if len(compileErrs) > 0 {
			lex := false
			for _, cerr := range compileErrs {
				item.Diagnostics = append(item.Diagnostics, report.ToDiagnosticItem(f.RelPath, cerr))
				if isLexFailure(f.RelPath, cerr) {
					lex = true
				}
				slog.Warn("compile failed", "file", f.RelPath, "error", cerr)
			}
			switch {
			case lex:
				lexFailed++
				item.Status = report.StatusLexError
			case cfg.Lenient:
				parseFailed++
				item.Status = report.StatusParsedErrors
			default:
				parseFailed++
				item.Status = report.StatusParseError
			}

			if cfg.Strict {
				fileItems = append(fileItems, item)
				stopErr = fmt.Errorf("compile failed on %s: %w", f.RelPath, compileErrs[0])
				stopCode = ExitCodeParseFailed
				if lex {
					stopCode = ExitCodeLexFailed
				}
				break
			}
			if !cfg.Lenient {
				fileItems = append(fileItems, item)
				continue
			}
			// lenient keeps the partial tree and still dumps it
		} else {
			parsed++
			item.Status = report.StatusParsed
		}

		item.Tokens = result.Stats.Tokens
		item.Nodes = result.Stats.Nodes
		item.NodeKinds = result.Stats.KindCensus()
		nodeTotal += result.Stats.Nodes

		dumpPath, err := writeDump(cfg, f.RelPath, result)
		if err != nil {
			return err
		}
		item.DumpPath = dumpPath
		slog.Debug("template checked", "file", f.RelPath, "tokens", item.Tokens, "nodes", item.Nodes)

		fileItems = append(fileItems, item)
	}

	slog.Info(
		"check summary",
		"discovered",
		len(files),
		"parsed",
		parsed,
		"lex_failed",
		lexFailed,
		"parse_failed",
		parseFailed,
		"nodes",
		nodeTotal,
		"input",
		filepath.Clean(cfg.In),
	)

	summary := report.Summary{
		Discovered:  len(files),
		Parsed:      parsed,
		LexFailed:   lexFailed,
		ParseFailed: parseFailed,
		NodeTotal:   nodeTotal,
	}

	if err := writeReports(cfg, summary, fileItems); err != nil {
		return fmt.Errorf("write report artifacts: %w", err)
	}
	if cfg.ReportJSON != "" || cfg.ReportCSV != "" {
		slog.Info("reports written", "json", cfg.ReportJSON, "csv", cfg.ReportCSV)
	}

	if stopErr != nil {
		return newExitError(stopCode, stopErr)
	}

	if lexFailed > 0 {
		return newExitError(ExitCodeLexFailed, fmt.Errorf("check finished with %d files failing to scan", lexFailed))
	}
	if parseFailed > 0 {
		return newExitError(ExitCodeParseFailed, fmt.Errorf("check finished with %d files failing to parse", parseFailed))
	}

	return nil
}
