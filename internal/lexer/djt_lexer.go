// Package lexer turns django-template source into a token stream. It is a
// single-pass, per-character state machine with bounded lookahead and a raw
// mode for script/style bodies.
package lexer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cruffinoni/djt2ast/internal/diagnostics"
	"github.com/cruffinoni/djt2ast/internal/scan"
	"github.com/cruffinoni/djt2ast/internal/token"
)

// Closed set of scanning failure codes.
const (
	CodeEmptySource         = "LEX_EMPTY_SOURCE"
	CodeAtBeginningOfSource = "LEX_AT_BEGINNING_OF_SOURCE"
	CodeAtEndOfSource       = "LEX_AT_END_OF_SOURCE"
	CodeInvalidAccess       = "LEX_INVALID_ACCESS"
	CodeUnexpectedCharacter = "LEX_UNEXPECTED_CHARACTER"
	CodeEmptyToken          = "LEX_EMPTY_TOKEN"
)

// rawState tracks the transition into verbatim scanning of a raw-text
// container body. pending is set between `<script`/`<style` and the tag's
// closing `>`; quote suppresses the transition inside quoted attribute
// values; active names the container whose body is being consumed.
type rawState struct {
	pending string
	active  string
	quote   token.Kind
}

// scanner performs streaming lexical analysis over one template source.
type scanner struct {
	src      string
	file     string
	pos      scan.Position
	raw      rawState
	lastKind token.Kind
}

// Tokenize scans source into a finalized token stream. The stream contains
// no whitespace tokens and ends with exactly one EOF token.
func Tokenize(file string, source string) (*token.Stream, error) {
	s := &scanner{
		src:      source,
		file:     file,
		pos:      scan.NewPosition(),
		lastKind: token.EOF,
	}
	stream := token.NewStream()

	for !s.eof() {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		stream.Add(tok)
	}

	return stream.Finalize(s.pos.Line), nil
}

func (s *scanner) eof() bool {
	return s.pos.Current >= len(s.src)
}

// peek reads the byte at offset ahead of the cursor without committing.
func (s *scanner) peek(offset int) (byte, error) {
	index := s.pos.Current + offset
	if index >= 0 && index < len(s.src) {
		return s.src[index], nil
	}
	return 0, s.boundary(scan.Classify(index, s.pos.Current, len(s.src)))
}

// boundary translates a shared cursor error into a coded lexing diagnostic.
func (s *scanner) boundary(err error) error {
	code := CodeInvalidAccess
	msg := "invalid character access"
	switch {
	case errors.Is(err, scan.ErrEmpty):
		code = CodeEmptySource
		msg = "source is empty"
	case errors.Is(err, scan.ErrBeforeStart):
		code = CodeAtBeginningOfSource
		msg = "at beginning of source"
	case errors.Is(err, scan.ErrPastEnd):
		code = CodeAtEndOfSource
		msg = "at end of source"
	}
	return diagnostics.New(code, s.file, s.pos.Line, msg, "")
}

// next produces the token at the cursor and advances past it.
func (s *scanner) next() (token.Token, error) {
	s.pos.Start = s.pos.Current

	if s.raw.active != "" {
		if tok, ok := s.scanRawBody(); ok {
			return tok, nil
		}
		// empty body, the closing tag follows immediately
	}

	c, err := s.peek(0)
	if err != nil {
		return token.Token{}, err
	}
	rest := s.src[s.pos.Current:]

	if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
		size, lines := measureWhitespace(rest)
		tok := s.emit(token.Whitespace, size)
		s.observe(tok)
		s.pos.Line += lines
		return tok, nil
	}

	var kind token.Kind
	var size int
	switch c {
	case ',', '.', '+', ':', ';', '*', '|', '\'', '"', '(', ')', '[', ']':
		k, ok := singleCharKind(c)
		if !ok {
			return token.Token{}, diagnostics.New(
				CodeUnexpectedCharacter,
				s.file,
				s.pos.Line,
				fmt.Sprintf("unexpected character %q", c),
				string(c),
			)
		}
		kind, size = k, 1
	case '{':
		kind, size = matchLeftBrace(rest)
	case '}':
		kind, size = matchRightBrace(rest)
	case '%':
		kind, size = matchPercent(rest)
	case '#':
		kind, size = matchHash(rest)
	case '!':
		kind, size = matchBang(rest)
	case '=':
		kind, size = matchEqual(rest)
	case '<':
		kind, size = matchLeftAngle(rest)
	case '>':
		kind, size = matchRightAngle(rest)
	case '/':
		kind, size = matchSlash(rest)
	case '-':
		kind, size = matchDash(rest)
	default:
		size = measureText(rest)
		if size == 0 {
			return token.Token{}, diagnostics.New(
				CodeEmptyToken,
				s.file,
				s.pos.Line,
				"text scan consumed no characters",
				rest[:1],
			)
		}
		kind = token.Text
	}

	tok := s.emit(kind, size)
	s.observe(tok)
	return tok, nil
}

// emit builds a token from the size bytes starting at the unit's Start
// mark and commits the advance.
func (s *scanner) emit(kind token.Kind, size int) token.Token {
	lexeme := s.src[s.pos.Start : s.pos.Start+size]
	tok := token.Token{Kind: kind, Lexeme: lexeme, Line: s.pos.Line}
	s.pos.Current = s.pos.Start + size
	return tok
}

// observe updates the raw-mode transition state after each emitted token.
func (s *scanner) observe(tok token.Token) {
	switch {
	case s.raw.quote != 0:
		if tok.Kind == s.raw.quote {
			s.raw.quote = 0
		}
	case s.raw.pending != "":
		switch tok.Kind {
		case token.SingleQuote, token.DoubleQuote:
			s.raw.quote = tok.Kind
		case token.SlashRightAngle:
			s.raw.pending = ""
		case token.RightAngle:
			s.raw.active = s.raw.pending
			s.raw.pending = ""
		}
	case tok.Kind == token.Text && s.lastKind == token.LeftAngle && IsRawTag(tok.Lexeme):
		s.raw.pending = strings.ToLower(tok.Lexeme)
	}
	s.lastKind = tok.Kind
}

// scanRawBody consumes everything up to the container's closing tag as one
// verbatim Text token. Reports false when the body is empty.
func (s *scanner) scanRawBody() (token.Token, bool) {
	closer := "</" + s.raw.active
	rest := s.src[s.pos.Current:]
	s.raw.active = ""

	end := indexFold(rest, closer)
	if end < 0 {
		// unterminated container: the parser reports the missing close tag
		end = len(rest)
	}
	if end == 0 {
		return token.Token{}, false
	}

	tok := s.emit(token.Text, end)
	s.pos.Line += countLines(tok.Lexeme)
	return tok, true
}

// IsRawTag reports whether tag names a verbatim-content container.
func IsRawTag(tag string) bool {
	return strings.EqualFold(tag, "script") || strings.EqualFold(tag, "style")
}

// indexFold returns the first case-insensitive occurrence of sub in s.
func indexFold(s string, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

// countLines counts line breaks with a \r\n pair counting once.
func countLines(s string) int {
	lines := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines++
		case '\r':
			lines++
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		}
	}
	return lines
}
