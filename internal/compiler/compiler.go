// Package compiler wires the scanning and parsing stages into the one-call
// front end used by the CLI: source text in, syntax tree out.
package compiler

import (
	"sort"
	"strconv"

	"github.com/cruffinoni/djt2ast/internal/ast"
	"github.com/cruffinoni/djt2ast/internal/lexer"
	"github.com/cruffinoni/djt2ast/internal/parser"
)

// Stats summarizes one compiled template for reports.
type Stats struct {
	Tokens int
	Nodes  int
	Kinds  map[string]int
}

// Result carries the syntax tree and per-file statistics.
type Result struct {
	Document ast.Document
	Stats    Stats
}

// Compile runs source through the scanner and the strict parser.
func Compile(file string, source string) (Result, error) {
	stream, err := lexer.Tokenize(file, source)
	if err != nil {
		return Result{}, err
	}
	doc, err := parser.Parse(file, stream)
	if err != nil {
		return Result{}, err
	}
	return Result{Document: doc, Stats: collectStats(stream.Len(), doc)}, nil
}

// CompileLenient runs source through the scanner and the recovering parser.
// Scanning failures are unrecoverable and abort with a single error.
func CompileLenient(file string, source string) (Result, []error) {
	stream, err := lexer.Tokenize(file, source)
	if err != nil {
		return Result{}, []error{err}
	}
	doc, errs := parser.ParseLenient(file, stream)
	return Result{Document: doc, Stats: collectStats(stream.Len(), doc)}, errs
}

func collectStats(tokens int, doc ast.Document) Stats {
	stats := Stats{Tokens: tokens, Kinds: map[string]int{}}
	var walk func(nodes []ast.Node)
	walk = func(nodes []ast.Node) {
		for _, node := range nodes {
			stats.Nodes++
			stats.Kinds[node.Kind()]++
			switch n := node.(type) {
			case ast.Element:
				walk(n.Children)
			case ast.Block:
				walk(n.Children)
			}
		}
	}
	walk(doc.Nodes)
	return stats
}

// KindCensus flattens the kind counters into sorted "kind:count" entries.
func (s Stats) KindCensus() []string {
	entries := make([]string, 0, len(s.Kinds))
	for kind := range s.Kinds {
		entries = append(entries, kind)
	}
	sort.Strings(entries)
	for i, kind := range entries {
		entries[i] = kind + ":" + strconv.Itoa(s.Kinds[kind])
	}
	return entries
}
