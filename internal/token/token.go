// Package token defines the lexical categories shared by the scanner and
// the parser, and the whitespace-eliding token stream that binds them.
package token

import "fmt"

// Kind is the closed set of lexical categories.
type Kind uint8

const (
	EOF Kind = iota
	Text
	Whitespace

	LeftAngle    // <
	RightAngle   // >
	LeftParen    // (
	RightParen   // )
	LeftBracket  // [
	RightBracket // ]
	Comma        // ,
	Dot          // .
	Dash         // -
	Plus         // +
	Colon        // :
	Semicolon    // ;
	Star         // *
	Slash        // /
	Bang         // !
	Equal        // =
	Pipe         // |
	Percent      // %
	SingleQuote  // '
	DoubleQuote  // "

	DoubleLeftBrace   // {{
	DoubleRightBrace  // }}
	LeftBracePercent  // {%
	PercentRightBrace // %}
	LeftBraceHash     // {#
	HashRightBrace    // #}
	BangEqual         // !=
	DoubleEqual       // ==
	LeftAngleEqual    // <=
	RightAngleEqual   // >=
	CommentOpen       // <!--
	CommentClose      // -->
	SlashRightAngle   // />
)

var kindNames = [...]string{
	EOF:               "EOF",
	Text:              "Text",
	Whitespace:        "Whitespace",
	LeftAngle:         "LeftAngle",
	RightAngle:        "RightAngle",
	LeftParen:         "LeftParen",
	RightParen:        "RightParen",
	LeftBracket:       "LeftBracket",
	RightBracket:      "RightBracket",
	Comma:             "Comma",
	Dot:               "Dot",
	Dash:              "Dash",
	Plus:              "Plus",
	Colon:             "Colon",
	Semicolon:         "Semicolon",
	Star:              "Star",
	Slash:             "Slash",
	Bang:              "Bang",
	Equal:             "Equal",
	Pipe:              "Pipe",
	Percent:           "Percent",
	SingleQuote:       "SingleQuote",
	DoubleQuote:       "DoubleQuote",
	DoubleLeftBrace:   "DoubleLeftBrace",
	DoubleRightBrace:  "DoubleRightBrace",
	LeftBracePercent:  "LeftBracePercent",
	PercentRightBrace: "PercentRightBrace",
	LeftBraceHash:     "LeftBraceHash",
	HashRightBrace:    "HashRightBrace",
	BangEqual:         "BangEqual",
	DoubleEqual:       "DoubleEqual",
	LeftAngleEqual:    "LeftAngleEqual",
	RightAngleEqual:   "RightAngleEqual",
	CommentOpen:       "CommentOpen",
	CommentClose:      "CommentClose",
	SlashRightAngle:   "SlashRightAngle",
}

// String returns the kind name used in diagnostics and reports.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsQuote reports whether the kind opens or closes a quoted attribute value.
func (k Kind) IsQuote() bool {
	return k == SingleQuote || k == DoubleQuote
}

// Token is one immutable lexical unit. Lexeme is the exact source substring;
// Line is 1-based and monotonic across a stream.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
}

// Throwaway reports whether the token is dropped before reaching the stream.
func (t Token) Throwaway() bool {
	return t.Kind == Whitespace
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Lexeme, t.Line)
}
