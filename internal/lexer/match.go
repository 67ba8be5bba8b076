package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/cruffinoni/djt2ast/internal/token"
)

// tokenBoundaries is the exact delimiter-introducing character set; a Text
// run ends at the first occurrence of any of these or end of input.
const tokenBoundaries = "()[]{},.-+:;*|%#!=<>/ \r\t\n\"'"

// IsTokenBoundary reports whether r terminates a Text run.
func IsTokenBoundary(r rune) bool {
	return r < utf8.RuneSelf && strings.ContainsRune(tokenBoundaries, r)
}

// singleCharKind maps a single-character delimiter to its kind.
func singleCharKind(c byte) (token.Kind, bool) {
	switch c {
	case ',':
		return token.Comma, true
	case '.':
		return token.Dot, true
	case '+':
		return token.Plus, true
	case ':':
		return token.Colon, true
	case ';':
		return token.Semicolon, true
	case '*':
		return token.Star, true
	case '|':
		return token.Pipe, true
	case '\'':
		return token.SingleQuote, true
	case '"':
		return token.DoubleQuote, true
	case '(':
		return token.LeftParen, true
	case ')':
		return token.RightParen, true
	case '[':
		return token.LeftBracket, true
	case ']':
		return token.RightBracket, true
	}
	return token.EOF, false
}

func matchLeftBrace(rest string) (token.Kind, int) {
	switch {
	case strings.HasPrefix(rest, "{{"):
		return token.DoubleLeftBrace, 2
	case strings.HasPrefix(rest, "{%"):
		return token.LeftBracePercent, 2
	case strings.HasPrefix(rest, "{#"):
		return token.LeftBraceHash, 2
	}
	// a bare brace is ordinary text-boundary punctuation
	return token.Text, 1
}

func matchRightBrace(rest string) (token.Kind, int) {
	if strings.HasPrefix(rest, "}}") {
		return token.DoubleRightBrace, 2
	}
	return token.Text, 1
}

func matchPercent(rest string) (token.Kind, int) {
	if strings.HasPrefix(rest, "%}") {
		return token.PercentRightBrace, 2
	}
	return token.Percent, 1
}

func matchHash(rest string) (token.Kind, int) {
	if strings.HasPrefix(rest, "#}") {
		return token.HashRightBrace, 2
	}
	return token.Text, 1
}

func matchBang(rest string) (token.Kind, int) {
	if strings.HasPrefix(rest, "!=") {
		return token.BangEqual, 2
	}
	return token.Bang, 1
}

func matchEqual(rest string) (token.Kind, int) {
	if strings.HasPrefix(rest, "==") {
		return token.DoubleEqual, 2
	}
	return token.Equal, 1
}

func matchLeftAngle(rest string) (token.Kind, int) {
	switch {
	case strings.HasPrefix(rest, "<="):
		return token.LeftAngleEqual, 2
	case strings.HasPrefix(rest, "<!--"):
		return token.CommentOpen, 4
	}
	return token.LeftAngle, 1
}

func matchRightAngle(rest string) (token.Kind, int) {
	if strings.HasPrefix(rest, ">=") {
		return token.RightAngleEqual, 2
	}
	return token.RightAngle, 1
}

func matchSlash(rest string) (token.Kind, int) {
	if strings.HasPrefix(rest, "/>") {
		return token.SlashRightAngle, 2
	}
	return token.Slash, 1
}

func matchDash(rest string) (token.Kind, int) {
	if strings.HasPrefix(rest, "--") {
		if strings.HasPrefix(rest, "-->") {
			return token.CommentClose, 3
		}
		return token.Text, 2
	}
	return token.Dash, 1
}

// measureWhitespace returns the byte length of the maximal whitespace run
// at the head of rest and the number of lines it spans, a \r\n pair
// counting once.
func measureWhitespace(rest string) (int, int) {
	size := 0
	lines := 0
	for size < len(rest) {
		switch rest[size] {
		case ' ', '\t':
			size++
		case '\n':
			size++
			lines++
		case '\r':
			size++
			lines++
			if size < len(rest) && rest[size] == '\n' {
				size++
			}
		default:
			return size, lines
		}
	}
	return size, lines
}

// measureText returns the byte length of the maximal run at the head of
// rest containing no token boundary character. Invalid UTF-8 sequences
// decode one byte at a time and stay in the run, so the count always
// matches the bytes consumed.
func measureText(rest string) int {
	size := 0
	for size < len(rest) {
		r, width := utf8.DecodeRuneInString(rest[size:])
		if IsTokenBoundary(r) {
			break
		}
		size += width
	}
	return size
}
