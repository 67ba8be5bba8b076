package token

import "github.com/cruffinoni/djt2ast/internal/scan"

// Stream is the ordered token sequence handed to the parser. It is built
// incrementally by the scanner and read-only afterwards: it never contains
// Whitespace tokens and, once finalized, ends with exactly one EOF token.
type Stream struct {
	tokens []Token
}

// NewStream returns an empty stream builder.
func NewStream() *Stream {
	return &Stream{}
}

// Add appends a token in source order. Throwaway tokens are dropped here so
// the parser never has to skip insignificant tokens.
func (s *Stream) Add(t Token) {
	if t.Throwaway() {
		return
	}
	s.tokens = append(s.tokens, t)
}

// Finalize appends the terminal EOF token stamped with the final line and
// returns the completed stream.
func (s *Stream) Finalize(line int) *Stream {
	s.tokens = append(s.tokens, Token{Kind: EOF, Line: line})
	return s
}

// Len returns the number of retained tokens, EOF included once finalized.
func (s *Stream) Len() int {
	return len(s.tokens)
}

// At returns the token at index or a boundary-access error.
func (s *Stream) At(index int) (Token, error) {
	if index >= 0 && index < len(s.tokens) {
		return s.tokens[index], nil
	}
	return Token{}, scan.Classify(index, 0, len(s.tokens))
}

// Tokens exposes the underlying sequence for read-only iteration.
func (s *Stream) Tokens() []Token {
	return s.tokens
}
