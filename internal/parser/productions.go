package parser

import (
	"fmt"
	"strings"

	"github.com/cruffinoni/djt2ast/internal/ast"
	"github.com/cruffinoni/djt2ast/internal/diagnostics"
	"github.com/cruffinoni/djt2ast/internal/lexer"
	"github.com/cruffinoni/djt2ast/internal/token"
)

// voidTags are the markup elements that never take children or a close tag.
var voidTags = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "param": {},
	"source": {}, "track": {}, "wbr": {},
}

func isVoidTag(tag string) bool {
	_, ok := voidTags[strings.ToLower(tag)]
	return ok
}

// parseNode dispatches on the current token kind to one production rule.
func (s *state) parseNode() (ast.Node, error) {
	tok, err := s.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case token.LeftAngle:
		next, err := s.peekNext()
		if err != nil {
			return nil, err
		}
		switch next.Kind {
		case token.Bang:
			return s.parseDoctype()
		case token.Text:
			return s.parseElement()
		default:
			return nil, s.unexpectedToken(next)
		}
	case token.CommentOpen:
		return s.parseComment()
	case token.DoubleLeftBrace:
		return s.parseVariable()
	case token.LeftBracePercent:
		return s.parseBlock()
	case token.LeftBraceHash:
		return s.parseTemplateComment()
	case token.Text:
		s.bump()
		return ast.Text{Line: tok.Line, Content: tok.Lexeme}, nil
	default:
		return nil, s.unexpectedToken(tok)
	}
}

// parseDoctype handles <! KEYWORD ... >.
func (s *state) parseDoctype() (ast.Node, error) {
	open, err := s.expect(token.LeftAngle)
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.Bang); err != nil {
		return nil, err
	}
	keyword, err := s.expect(token.Text)
	if err != nil {
		return nil, err
	}
	body, err := s.consumeUntil(token.RightAngle)
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.RightAngle); err != nil {
		return nil, err
	}

	content := renderTokens(append([]token.Token{keyword}, body...))
	return ast.Doctype{Line: open.Line, Content: content}, nil
}

// parseComment handles <!-- ... -->.
func (s *state) parseComment() (ast.Node, error) {
	open, err := s.expect(token.CommentOpen)
	if err != nil {
		return nil, err
	}
	body, err := s.consumeUntil(token.CommentClose)
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.CommentClose); err != nil {
		return nil, err
	}
	return ast.Comment{Line: open.Line, Content: renderTokens(body)}, nil
}

// parseVariable handles {{ ... }}.
func (s *state) parseVariable() (ast.Node, error) {
	open, err := s.expect(token.DoubleLeftBrace)
	if err != nil {
		return nil, err
	}
	body, err := s.consumeUntil(token.DoubleRightBrace)
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.DoubleRightBrace); err != nil {
		return nil, err
	}
	return ast.Variable{Line: open.Line, Expression: renderTokens(body)}, nil
}

// parseTemplateComment handles {# ... #}.
func (s *state) parseTemplateComment() (ast.Node, error) {
	open, err := s.expect(token.LeftBraceHash)
	if err != nil {
		return nil, err
	}
	body, err := s.consumeUntil(token.HashRightBrace)
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.HashRightBrace); err != nil {
		return nil, err
	}
	return ast.TemplateComment{Line: open.Line, Content: renderTokens(body)}, nil
}

// parseBlock handles {% name args %} and, when a matching {% end<name> %}
// exists ahead at the same nesting depth, the nested content before it.
func (s *state) parseBlock() (ast.Node, error) {
	open, err := s.expect(token.LeftBracePercent)
	if err != nil {
		return nil, err
	}
	body, err := s.consumeUntil(token.PercentRightBrace)
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.PercentRightBrace); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, diagnostics.New(
			CodeEmptyBlockName,
			s.file,
			open.Line,
			"block tag has no name",
			"{% %}",
		)
	}

	name := body[0].Lexeme
	var arguments []string
	for _, tok := range body[1:] {
		arguments = append(arguments, tok.Lexeme)
	}

	var children []ast.Node
	if s.hasMatchingEnd(name) {
		for !s.terminatorAhead(name) {
			if s.atEnd() {
				tok, _ := s.peek()
				return nil, diagnostics.New(
					CodeUnexpectedEOF,
					s.file,
					tok.Line,
					fmt.Sprintf("block %q not closed by {%% end%s %%}", name, name),
					"",
				)
			}
			child, err := s.parseNode()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if err := s.consumeTerminator(); err != nil {
			return nil, err
		}
	}

	node, err := ast.NewBlock(open.Line, name, arguments, children)
	if err != nil {
		return nil, diagnostics.New(CodeNoBlockName, s.file, open.Line, err.Error(), "")
	}
	return node, nil
}

// hasMatchingEnd scans ahead without consuming, tracking same-name nesting,
// and reports whether a matching end tag terminates the block just opened.
func (s *state) hasMatchingEnd(name string) bool {
	tokens := s.stream.Tokens()
	depth := 1
	for i := s.current; i+1 < len(tokens); i++ {
		if tokens[i].Kind != token.LeftBracePercent || tokens[i+1].Kind != token.Text {
			continue
		}
		switch tokens[i+1].Lexeme {
		case name:
			depth++
		case "end" + name:
			depth--
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// terminatorAhead reports whether the cursor sits on {% end<name> ... %}.
func (s *state) terminatorAhead(name string) bool {
	tok, err := s.peek()
	if err != nil || tok.Kind != token.LeftBracePercent {
		return false
	}
	next, err := s.peekNext()
	return err == nil && next.Kind == token.Text && next.Lexeme == "end"+name
}

// consumeTerminator consumes a full {% end<name> ... %} tag.
func (s *state) consumeTerminator() error {
	if _, err := s.expect(token.LeftBracePercent); err != nil {
		return err
	}
	if _, err := s.consumeUntil(token.PercentRightBrace); err != nil {
		return err
	}
	_, err := s.expect(token.PercentRightBrace)
	return err
}

// parseElement handles tags: void and self-closing forms, raw-text
// containers, and container elements with recursively parsed children.
func (s *state) parseElement() (ast.Node, error) {
	open, err := s.expect(token.LeftAngle)
	if err != nil {
		return nil, err
	}
	nameTok, err := s.expect(token.Text)
	if err != nil {
		return nil, err
	}
	tag := nameTok.Lexeme

	attributes, err := s.parseAttributes()
	if err != nil {
		return nil, err
	}

	closer, err := s.peek()
	if err != nil {
		return nil, err
	}
	switch closer.Kind {
	case token.SlashRightAngle:
		s.bump()
		return s.newVoidElement(open.Line, tag, attributes)
	case token.RightAngle:
		s.bump()
	default:
		return nil, diagnostics.New(
			CodeExpectedToken,
			s.file,
			closer.Line,
			fmt.Sprintf("expected %s or %s to close tag %q, found %s",
				token.RightAngle, token.SlashRightAngle, tag, closer.Kind),
			closer.Lexeme,
		)
	}

	if lexer.IsRawTag(tag) {
		return s.parseRawContent(open.Line, tag, attributes)
	}
	if isVoidTag(tag) {
		return s.newVoidElement(open.Line, tag, attributes)
	}

	var children []ast.Node
	for {
		if s.atEnd() {
			tok, _ := s.peek()
			return nil, diagnostics.New(
				CodeUnexpectedEOF,
				s.file,
				tok.Line,
				fmt.Sprintf("element %q not closed by </%s>", tag, tag),
				"",
			)
		}
		if s.closingTagAhead() {
			if err := s.consumeClosingTag(tag); err != nil {
				return nil, err
			}
			break
		}
		child, err := s.parseNode()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	node, err := ast.NewElement(open.Line, tag, attributes, children)
	if err != nil {
		return nil, diagnostics.New(CodeNoTagName, s.file, open.Line, err.Error(), "")
	}
	return node, nil
}

func (s *state) newVoidElement(line int, tag string, attributes []ast.Attribute) (ast.Node, error) {
	node, err := ast.NewVoidElement(line, tag, attributes)
	if err != nil {
		return nil, diagnostics.New(CodeNoTagName, s.file, line, err.Error(), "")
	}
	return node, nil
}

// closingTagAhead reports whether the cursor sits on </.
func (s *state) closingTagAhead() bool {
	tok, err := s.peek()
	if err != nil || tok.Kind != token.LeftAngle {
		return false
	}
	next, err := s.peekNext()
	return err == nil && next.Kind == token.Slash
}

// consumeClosingTag consumes </tag> and checks the name matches the open
// tag, case-insensitively.
func (s *state) consumeClosingTag(tag string) error {
	if _, err := s.expect(token.LeftAngle); err != nil {
		return err
	}
	if _, err := s.expect(token.Slash); err != nil {
		return err
	}
	nameTok, err := s.expect(token.Text)
	if err != nil {
		return err
	}
	if !strings.EqualFold(nameTok.Lexeme, tag) {
		return diagnostics.New(
			CodeMismatchedClosingTag,
			s.file,
			nameTok.Line,
			fmt.Sprintf("closing tag </%s> does not match open tag <%s>", nameTok.Lexeme, tag),
			nameTok.Lexeme,
		)
	}
	_, err = s.expect(token.RightAngle)
	return err
}

// parseRawContent reads the verbatim body token emitted by the scanner's
// raw mode, then the container's closing tag.
func (s *state) parseRawContent(line int, tag string, attributes []ast.Attribute) (ast.Node, error) {
	content := ""
	tok, err := s.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.Text {
		s.bump()
		content = tok.Lexeme
	}
	if err := s.consumeClosingTag(tag); err != nil {
		return nil, err
	}

	if strings.EqualFold(tag, "style") {
		return ast.Style{Line: line, Attributes: attributes, Content: content}, nil
	}
	return ast.Script{Line: line, Attributes: attributes, Content: content}, nil
}

// parseAttributes accumulates name/value pairs while the lookahead stays on
// a Text token.
func (s *state) parseAttributes() ([]ast.Attribute, error) {
	var attributes []ast.Attribute
	for {
		tok, err := s.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != token.Text {
			return attributes, nil
		}
		s.bump()

		next, err := s.peek()
		if err != nil {
			return nil, err
		}
		if next.Kind != token.Equal {
			attributes = append(attributes, ast.Attribute{Name: tok.Lexeme, Value: ast.Boolean()})
			continue
		}
		s.bump()

		value, err := s.parseAttributeValue()
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, ast.Attribute{Name: tok.Lexeme, Value: value})
	}
}

// parseAttributeValue handles a quoted run or a single unquoted Text token.
func (s *state) parseAttributeValue() (ast.AttributeValue, error) {
	tok, err := s.peek()
	if err != nil {
		return ast.AttributeValue{}, err
	}

	if tok.Kind.IsQuote() {
		s.bump()
		parts, err := s.consumeUntil(tok.Kind)
		if err != nil {
			return ast.AttributeValue{}, err
		}
		if _, err := s.expect(tok.Kind); err != nil {
			return ast.AttributeValue{}, err
		}
		return ast.Value(concatTokens(parts)), nil
	}

	if tok.Kind != token.Text {
		return ast.AttributeValue{}, diagnostics.New(
			CodeExpectedToken,
			s.file,
			tok.Line,
			fmt.Sprintf("expected attribute value, found %s", tok.Kind),
			tok.Lexeme,
		)
	}
	s.bump()
	return ast.Value(tok.Lexeme), nil
}
