// Package parser builds the syntax tree from a token stream by recursive
// descent, using one- and two-token lookahead to pick productions.
package parser

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cruffinoni/djt2ast/internal/ast"
	"github.com/cruffinoni/djt2ast/internal/diagnostics"
	"github.com/cruffinoni/djt2ast/internal/scan"
	"github.com/cruffinoni/djt2ast/internal/token"
)

// Closed set of parsing failure codes.
const (
	CodeEmptyTokenStream     = "PARSE_EMPTY_TOKEN_STREAM"
	CodeAtBeginningOfStream  = "PARSE_AT_BEGINNING_OF_STREAM"
	CodeAtEndOfStream        = "PARSE_AT_END_OF_STREAM"
	CodeInvalidAccess        = "PARSE_INVALID_ACCESS"
	CodeExpectedToken        = "PARSE_EXPECTED_TOKEN"
	CodeUnexpectedToken      = "PARSE_UNEXPECTED_TOKEN"
	CodeUnexpectedEOF        = "PARSE_UNEXPECTED_EOF"
	CodeEmptyBlockName       = "PARSE_EMPTY_BLOCK_NAME"
	CodeMismatchedClosingTag = "PARSE_MISMATCHED_CLOSING_TAG"

	// node-construction failures surfaced through the AST layer
	CodeNoTagName   = "AST_NO_TAG_NAME"
	CodeNoBlockName = "AST_NO_BLOCK_NAME"
)

// recoverySet lists the token kinds that can start a top-level production;
// lenient parsing resynchronizes at the next one of these.
var recoverySet = []token.Kind{
	token.LeftAngle,
	token.CommentOpen,
	token.DoubleLeftBrace,
	token.LeftBracePercent,
	token.LeftBraceHash,
	token.Text,
}

// state stores parser progress while consuming stream tokens.
type state struct {
	file    string
	stream  *token.Stream
	current int
}

// Parse converts a finalized token stream into a document, aborting on the
// first error.
func Parse(file string, stream *token.Stream) (ast.Document, error) {
	s := &state{file: file, stream: stream}

	var nodes []ast.Node
	for !s.atEnd() {
		node, err := s.parseNode()
		if err != nil {
			return ast.Document{}, err
		}
		nodes = append(nodes, node)
	}
	return ast.Document{Nodes: nodes}, nil
}

// ParseLenient parses best-effort: each failure is recorded and the parser
// resynchronizes at the next token that can start a production. The
// returned document holds every node that parsed cleanly.
func ParseLenient(file string, stream *token.Stream) (ast.Document, []error) {
	s := &state{file: file, stream: stream}

	var nodes []ast.Node
	var errs []error
	for !s.atEnd() {
		node, err := s.parseNode()
		if err != nil {
			errs = append(errs, err)
			s.synchronize(recoverySet...)
			continue
		}
		nodes = append(nodes, node)
	}
	return ast.Document{Nodes: nodes}, errs
}

// synchronize skips forward to the next token whose kind is in kinds,
// advancing at least once so a failing token cannot loop.
func (s *state) synchronize(kinds ...token.Kind) {
	s.bump()
	for !s.atEnd() {
		tok, err := s.peek()
		if err != nil || slices.Contains(kinds, tok.Kind) {
			return
		}
		s.bump()
	}
}

// peek returns the current token without consuming it.
func (s *state) peek() (token.Token, error) {
	tok, err := s.stream.At(s.current)
	if err != nil {
		return token.Token{}, s.boundary(err)
	}
	return tok, nil
}

// peekNext returns the token one past the cursor without consuming.
func (s *state) peekNext() (token.Token, error) {
	tok, err := s.stream.At(s.current + 1)
	if err != nil {
		return token.Token{}, s.boundary(err)
	}
	return tok, nil
}

// bump consumes the current token; the cursor never moves past EOF.
func (s *state) bump() {
	if tok, err := s.peek(); err == nil && tok.Kind != token.EOF {
		s.current++
	}
}

// atEnd reports whether the cursor reached the terminal EOF token.
func (s *state) atEnd() bool {
	tok, err := s.peek()
	return err != nil || tok.Kind == token.EOF
}

// expect consumes and returns the current token, failing when its kind is
// not want.
func (s *state) expect(want token.Kind) (token.Token, error) {
	tok, err := s.peek()
	if err != nil {
		return token.Token{}, err
	}
	if tok.Kind != want {
		return token.Token{}, diagnostics.New(
			CodeExpectedToken,
			s.file,
			tok.Line,
			fmt.Sprintf("expected %s, found %s", want, tok.Kind),
			tok.Lexeme,
		)
	}
	s.bump()
	return tok, nil
}

// consumeUntil collects tokens up to, but not including, the first token of
// kind stop. Reaching EOF first is an error.
func (s *state) consumeUntil(stop token.Kind) ([]token.Token, error) {
	var collected []token.Token
	for {
		tok, err := s.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == stop {
			return collected, nil
		}
		if tok.Kind == token.EOF {
			return nil, diagnostics.New(
				CodeUnexpectedEOF,
				s.file,
				tok.Line,
				fmt.Sprintf("end of input while looking for %s", stop),
				"",
			)
		}
		s.bump()
		collected = append(collected, tok)
	}
}

// boundary translates a shared cursor error into a coded parsing diagnostic.
func (s *state) boundary(err error) error {
	code := CodeInvalidAccess
	msg := "invalid token access"
	switch {
	case errors.Is(err, scan.ErrEmpty):
		code = CodeEmptyTokenStream
		msg = "token stream is empty"
	case errors.Is(err, scan.ErrBeforeStart):
		code = CodeAtBeginningOfStream
		msg = "at beginning of token stream"
	case errors.Is(err, scan.ErrPastEnd):
		code = CodeAtEndOfStream
		msg = "at end of token stream"
	}
	return diagnostics.New(code, s.file, 0, msg, "")
}

func (s *state) unexpectedToken(tok token.Token) error {
	return diagnostics.New(
		CodeUnexpectedToken,
		s.file,
		tok.Line,
		fmt.Sprintf("unexpected token %s", tok.Kind),
		tok.Lexeme,
	)
}

// renderTokens re-joins token lexemes with single spaces; comment bodies,
// doctype content and templating expressions use this rule.
func renderTokens(tokens []token.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, tok.Lexeme)
	}
	return strings.Join(parts, " ")
}

// concatTokens joins token lexemes with no separator; quoted attribute
// values use this rule.
func concatTokens(tokens []token.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Lexeme)
	}
	return b.String()
}
