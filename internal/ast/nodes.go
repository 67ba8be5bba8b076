// Package ast defines the closed node set produced by the parser: markup
// elements, raw-text containers, comments, the doctype declaration, the
// three templating constructs and literal text.
package ast

import "errors"

// Construction failures, propagated by the parser as coded diagnostics.
var (
	ErrNoTagName   = errors.New("element requires a non-empty tag name")
	ErrNoBlockName = errors.New("block requires a non-empty name")
)

// Node is the common interface implemented by every AST node. The variant
// set is closed: every consumer dispatches exhaustively over it.
type Node interface {
	node()
	Pos() int
	Kind() string
}

// Document is the parser output: the template's root-level siblings in
// source order. A template has no single mandatory root element.
type Document struct {
	Nodes []Node
}

// AttributeValue is a tagged choice between an explicit value and a bare
// boolean attribute such as `disabled`.
type AttributeValue struct {
	Text    string
	Boolean bool
}

// Value returns an attribute value carrying text.
func Value(text string) AttributeValue {
	return AttributeValue{Text: text}
}

// Boolean returns the value of an attribute present without a value.
func Boolean() AttributeValue {
	return AttributeValue{Boolean: true}
}

// Attribute is one name/value pair on an opening tag. Order is source
// order; name uniqueness is not enforced.
type Attribute struct {
	Name  string
	Value AttributeValue
}

// Element is a markup element with a matching close tag.
type Element struct {
	Line       int
	Tag        string
	Attributes []Attribute
	Children   []Node
}

func (n Element) node()        {}
func (n Element) Pos() int     { return n.Line }
func (n Element) Kind() string { return "element" }

// NewElement builds an Element, rejecting an empty tag.
func NewElement(line int, tag string, attributes []Attribute, children []Node) (Element, error) {
	if tag == "" {
		return Element{}, ErrNoTagName
	}
	return Element{Line: line, Tag: tag, Attributes: attributes, Children: children}, nil
}

// VoidElement is a self-closing markup element with no children slot.
type VoidElement struct {
	Line       int
	Tag        string
	Attributes []Attribute
}

func (n VoidElement) node()        {}
func (n VoidElement) Pos() int     { return n.Line }
func (n VoidElement) Kind() string { return "void_element" }

// NewVoidElement builds a VoidElement, rejecting an empty tag.
func NewVoidElement(line int, tag string, attributes []Attribute) (VoidElement, error) {
	if tag == "" {
		return VoidElement{}, ErrNoTagName
	}
	return VoidElement{Line: line, Tag: tag, Attributes: attributes}, nil
}

// Comment is a markup comment body, exclusive of the <!-- --> delimiters.
type Comment struct {
	Line    int
	Content string
}

func (n Comment) node()        {}
func (n Comment) Pos() int     { return n.Line }
func (n Comment) Kind() string { return "comment" }

// Doctype is the declaration body between <! and >.
type Doctype struct {
	Line    int
	Content string
}

func (n Doctype) node()        {}
func (n Doctype) Pos() int     { return n.Line }
func (n Doctype) Kind() string { return "doctype" }

// Script is a script container whose body is not re-tokenized as markup.
type Script struct {
	Line       int
	Attributes []Attribute
	Content    string
}

func (n Script) node()        {}
func (n Script) Pos() int     { return n.Line }
func (n Script) Kind() string { return "script" }

// Style is a style container whose body is not re-tokenized as markup.
type Style struct {
	Line       int
	Attributes []Attribute
	Content    string
}

func (n Style) node()        {}
func (n Style) Pos() int     { return n.Line }
func (n Style) Kind() string { return "style" }

// Variable is the uninterpreted expression between {{ and }}.
type Variable struct {
	Line       int
	Expression string
}

func (n Variable) node()        {}
func (n Variable) Pos() int     { return n.Line }
func (n Variable) Kind() string { return "variable" }

// Block is a templating control tag with its argument tokens and, when the
// block is terminated by a matching end tag, its nested content.
type Block struct {
	Line      int
	Name      string
	Arguments []string
	Children  []Node
}

func (n Block) node()        {}
func (n Block) Pos() int     { return n.Line }
func (n Block) Kind() string { return "block" }

// NewBlock builds a Block, rejecting an empty name.
func NewBlock(line int, name string, arguments []string, children []Node) (Block, error) {
	if name == "" {
		return Block{}, ErrNoBlockName
	}
	return Block{Line: line, Name: name, Arguments: arguments, Children: children}, nil
}

// TemplateComment is the body between {# and #}.
type TemplateComment struct {
	Line    int
	Content string
}

func (n TemplateComment) node()        {}
func (n TemplateComment) Pos() int     { return n.Line }
func (n TemplateComment) Kind() string { return "template_comment" }

// Text is one literal run of non-delimiter characters.
type Text struct {
	Line    int
	Content string
}

func (n Text) node()        {}
func (n Text) Pos() int     { return n.Line }
func (n Text) Kind() string { return "text" }
