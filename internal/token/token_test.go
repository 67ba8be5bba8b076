package token

import (
	"testing"

	"github.com/cruffinoni/djt2ast/internal/scan"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	require.Equal(t, "EOF", EOF.String())
	require.Equal(t, "DoubleLeftBrace", DoubleLeftBrace.String())
	require.Equal(t, "SlashRightAngle", SlashRightAngle.String())
	require.Equal(t, "Kind(200)", Kind(200).String())
}

func TestIsQuote(t *testing.T) {
	require.True(t, SingleQuote.IsQuote())
	require.True(t, DoubleQuote.IsQuote())
	require.False(t, Text.IsQuote())
}

func TestStreamDropsWhitespace(t *testing.T) {
	s := NewStream()
	s.Add(Token{Kind: Text, Lexeme: "a", Line: 1})
	s.Add(Token{Kind: Whitespace, Lexeme: " ", Line: 1})
	s.Add(Token{Kind: Text, Lexeme: "b", Line: 1})
	s.Finalize(1)

	require.Equal(t, 3, s.Len())
	tok, err := s.At(1)
	require.NoError(t, err)
	require.Equal(t, "b", tok.Lexeme)
	last, err := s.At(2)
	require.NoError(t, err)
	require.Equal(t, EOF, last.Kind)
	require.Equal(t, 1, last.Line)
}

func TestStreamAtBoundaries(t *testing.T) {
	empty := NewStream()
	_, err := empty.At(0)
	require.ErrorIs(t, err, scan.ErrEmpty)

	s := NewStream()
	s.Add(Token{Kind: Text, Lexeme: "a", Line: 1})
	s.Finalize(1)

	_, err = s.At(-1)
	require.ErrorIs(t, err, scan.ErrBeforeStart)
	_, err = s.At(2)
	require.ErrorIs(t, err, scan.ErrPastEnd)
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Text, Lexeme: "div", Line: 3}
	require.Equal(t, `Text("div")@3`, tok.String())
}
