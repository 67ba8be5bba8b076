package lexer

import (
	"testing"

	"github.com/cruffinoni/djt2ast/internal/token"
	"github.com/stretchr/testify/require"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	stream, err := Tokenize("t.html", src)
	require.NoError(t, err)
	var out []token.Kind
	for _, tok := range stream.Tokens() {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenizeSingleCharacterDelimiters(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"(", token.LeftParen},
		{")", token.RightParen},
		{"[", token.LeftBracket},
		{"]", token.RightBracket},
		{",", token.Comma},
		{".", token.Dot},
		{"-", token.Dash},
		{"+", token.Plus},
		{":", token.Colon},
		{";", token.Semicolon},
		{"*", token.Star},
		{"/", token.Slash},
		{"!", token.Bang},
		{"=", token.Equal},
		{"|", token.Pipe},
		{"%", token.Percent},
		{"'", token.SingleQuote},
		{`"`, token.DoubleQuote},
		{"<", token.LeftAngle},
		{">", token.RightAngle},
	}

	for _, tc := range cases {
		stream, err := Tokenize("t.html", tc.src)
		require.NoError(t, err, tc.src)
		require.Equal(t, 2, stream.Len(), tc.src)
		tok, err := stream.At(0)
		require.NoError(t, err, tc.src)
		require.Equal(t, tc.kind, tok.Kind, tc.src)
		require.Equal(t, tc.src, tok.Lexeme, tc.src)
	}
}

func TestTokenizeCompoundDelimiters(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"{{", token.DoubleLeftBrace},
		{"}}", token.DoubleRightBrace},
		{"{%", token.LeftBracePercent},
		{"%}", token.PercentRightBrace},
		{"{#", token.LeftBraceHash},
		{"#}", token.HashRightBrace},
		{"!=", token.BangEqual},
		{"==", token.DoubleEqual},
		{"<=", token.LeftAngleEqual},
		{">=", token.RightAngleEqual},
		{"<!--", token.CommentOpen},
		{"-->", token.CommentClose},
		{"/>", token.SlashRightAngle},
	}

	for _, tc := range cases {
		stream, err := Tokenize("t.html", tc.src)
		require.NoError(t, err, tc.src)
		require.Equal(t, 2, stream.Len(), tc.src)
		tok, err := stream.At(0)
		require.NoError(t, err, tc.src)
		require.Equal(t, tc.kind, tok.Kind, tc.src)
		require.Equal(t, tc.src, tok.Lexeme, tc.src)
	}
}

func TestTokenizeBareDelimiterFragmentsFallBackToText(t *testing.T) {
	cases := []struct {
		src    string
		lexeme string
	}{
		{"{", "{"},
		{"}", "}"},
		{"#", "#"},
		{"--", "--"},
	}

	for _, tc := range cases {
		stream, err := Tokenize("t.html", tc.src)
		require.NoError(t, err, tc.src)
		tok, err := stream.At(0)
		require.NoError(t, err, tc.src)
		require.Equal(t, token.Text, tok.Kind, tc.src)
		require.Equal(t, tc.lexeme, tok.Lexeme, tc.src)
	}
}

func TestTokenizeTextRunsBreakAtBoundaries(t *testing.T) {
	stream, err := Tokenize("t.html", "user.name")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.Text, token.Dot, token.Text, token.EOF}, kinds(t, "user.name"))

	first, err := stream.At(0)
	require.NoError(t, err)
	require.Equal(t, "user", first.Lexeme)
}

func TestTokenizeElidesWhitespace(t *testing.T) {
	stream, err := Tokenize("t.html", "a  \t b")
	require.NoError(t, err)
	require.Equal(t, 3, stream.Len())
	for _, tok := range stream.Tokens() {
		require.NotEqual(t, token.Whitespace, tok.Kind)
	}
}

func TestTokenizeTracksLines(t *testing.T) {
	stream, err := Tokenize("t.html", "a\nb\nc")
	require.NoError(t, err)

	toks := stream.Tokens()
	require.Len(t, toks, 4)
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[1].Line)
	require.Equal(t, 3, toks[2].Line)
	require.Equal(t, 3, toks[3].Line)
}

func TestTokenizeCountsCRLFOnce(t *testing.T) {
	stream, err := Tokenize("t.html", "a\r\nb")
	require.NoError(t, err)

	toks := stream.Tokens()
	require.Len(t, toks, 3)
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[1].Line)
}

func TestTokenizeEmptySource(t *testing.T) {
	stream, err := Tokenize("t.html", "")
	require.NoError(t, err)
	require.Equal(t, 1, stream.Len())
	tok, err := stream.At(0)
	require.NoError(t, err)
	require.Equal(t, token.EOF, tok.Kind)
	require.Equal(t, 1, tok.Line)
}

func TestTokenizeScriptBodyIsVerbatim(t *testing.T) {
	src := `<script>if (a < b) { run(); }</script>`
	stream, err := Tokenize("t.html", src)
	require.NoError(t, err)

	want := []token.Kind{
		token.LeftAngle, token.Text, token.RightAngle,
		token.Text,
		token.LeftAngle, token.Slash, token.Text, token.RightAngle,
		token.EOF,
	}
	require.Equal(t, want, kinds(t, src))

	body, err := stream.At(3)
	require.NoError(t, err)
	require.Equal(t, "if (a < b) { run(); }", body.Lexeme)
}

func TestTokenizeStyleBodyIsVerbatimAndCaseInsensitive(t *testing.T) {
	src := "<STYLE>p { color: red; }</STYLE>"
	stream, err := Tokenize("t.html", src)
	require.NoError(t, err)

	body, err := stream.At(3)
	require.NoError(t, err)
	require.Equal(t, token.Text, body.Kind)
	require.Equal(t, "p { color: red; }", body.Lexeme)
}

func TestTokenizeRawBodyKeepsLineCount(t *testing.T) {
	src := "<script>\nvar a;\nvar b;\n</script>\nx"
	stream, err := Tokenize("t.html", src)
	require.NoError(t, err)

	toks := stream.Tokens()
	last := toks[len(toks)-2]
	require.Equal(t, "x", last.Lexeme)
	require.Equal(t, 5, last.Line)
}

func TestTokenizeSelfClosingScriptStaysMarkup(t *testing.T) {
	src := `<script/><p>x</p>`
	want := []token.Kind{
		token.LeftAngle, token.Text, token.SlashRightAngle,
		token.LeftAngle, token.Text, token.RightAngle,
		token.Text,
		token.LeftAngle, token.Slash, token.Text, token.RightAngle,
		token.EOF,
	}
	require.Equal(t, want, kinds(t, src))
}

func TestTokenizeQuotedAngleInScriptTagDoesNotActivateRawMode(t *testing.T) {
	src := `<script data-x="a>b">y</script>`
	stream, err := Tokenize("t.html", src)
	require.NoError(t, err)

	// the > inside the quoted value must not start the raw body
	var bodies []string
	for _, tok := range stream.Tokens() {
		if tok.Kind == token.Text {
			bodies = append(bodies, tok.Lexeme)
		}
	}
	require.Contains(t, bodies, "y")
}

func TestTokenizeEmptyScriptBody(t *testing.T) {
	src := "<script></script>"
	want := []token.Kind{
		token.LeftAngle, token.Text, token.RightAngle,
		token.LeftAngle, token.Slash, token.Text, token.RightAngle,
		token.EOF,
	}
	require.Equal(t, want, kinds(t, src))
}

func TestTokenizeKeepsInvalidUTF8BytesInText(t *testing.T) {
	cases := []string{
		"x\xff",
		"a\xffb",
		"caf\xc3",
		"\x80x",
	}

	for _, src := range cases {
		stream, err := Tokenize("t.html", src)
		require.NoError(t, err, "%q", src)
		require.Equal(t, 2, stream.Len(), "%q", src)
		tok, err := stream.At(0)
		require.NoError(t, err, "%q", src)
		require.Equal(t, token.Text, tok.Kind, "%q", src)
		require.Equal(t, src, tok.Lexeme, "%q", src)
	}
}

func TestTokenizeInvalidByteRunEndsAtBoundary(t *testing.T) {
	stream, err := Tokenize("t.html", "\xff<p>")
	require.NoError(t, err)

	want := []token.Kind{token.Text, token.LeftAngle, token.Text, token.RightAngle, token.EOF}
	require.Equal(t, want, kinds(t, "\xff<p>"))

	tok, err := stream.At(0)
	require.NoError(t, err)
	require.Equal(t, "\xff", tok.Lexeme)
}

func TestTokenizeMultiByteRunes(t *testing.T) {
	stream, err := Tokenize("t.html", "héllo wörld")
	require.NoError(t, err)
	require.Equal(t, 3, stream.Len())
	first, err := stream.At(0)
	require.NoError(t, err)
	require.Equal(t, "héllo", first.Lexeme)
}

func TestIsRawTag(t *testing.T) {
	require.True(t, IsRawTag("script"))
	require.True(t, IsRawTag("Style"))
	require.False(t, IsRawTag("div"))
}

func TestIsTokenBoundary(t *testing.T) {
	for _, r := range tokenBoundaries {
		require.True(t, IsTokenBoundary(r), string(r))
	}
	require.False(t, IsTokenBoundary('a'))
	require.False(t, IsTokenBoundary('é'))
}
