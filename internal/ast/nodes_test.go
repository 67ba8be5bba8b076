package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewElementRejectsEmptyTag(t *testing.T) {
	_, err := NewElement(1, "", nil, nil)
	require.ErrorIs(t, err, ErrNoTagName)

	el, err := NewElement(2, "div", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "div", el.Tag)
	require.Equal(t, 2, el.Pos())
}

func TestNewVoidElementRejectsEmptyTag(t *testing.T) {
	_, err := NewVoidElement(1, "", nil)
	require.ErrorIs(t, err, ErrNoTagName)
}

func TestNewBlockRejectsEmptyName(t *testing.T) {
	_, err := NewBlock(1, "", nil, nil)
	require.ErrorIs(t, err, ErrNoBlockName)

	b, err := NewBlock(3, "if", []string{"x"}, nil)
	require.NoError(t, err)
	require.Equal(t, "if", b.Name)
	require.Equal(t, 3, b.Pos())
}

func TestNodeKinds(t *testing.T) {
	cases := []struct {
		node Node
		kind string
	}{
		{Element{Tag: "div"}, "element"},
		{VoidElement{Tag: "br"}, "void_element"},
		{Comment{}, "comment"},
		{Doctype{}, "doctype"},
		{Script{}, "script"},
		{Style{}, "style"},
		{Variable{}, "variable"},
		{Block{Name: "if"}, "block"},
		{TemplateComment{}, "template_comment"},
		{Text{}, "text"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.kind, tc.node.Kind())
	}
}

func TestMarshalEmptyDocument(t *testing.T) {
	raw, err := json.Marshal(Document{})
	require.NoError(t, err)
	require.JSONEq(t, `{"nodes":[]}`, string(raw))
}

func TestMarshalTextNode(t *testing.T) {
	doc := Document{Nodes: []Node{Text{Line: 1, Content: "hi"}}}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.JSONEq(t, `{"nodes":[{"kind":"text","line":1,"content":"hi"}]}`, string(raw))
}

func TestMarshalElementTree(t *testing.T) {
	doc := Document{Nodes: []Node{
		Element{
			Line: 1,
			Tag:  "p",
			Attributes: []Attribute{
				{Name: "class", Value: Value("intro")},
				{Name: "hidden", Value: Boolean()},
			},
			Children: []Node{Variable{Line: 1, Expression: "name"}},
		},
	}}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"nodes": [{
			"kind": "element",
			"line": 1,
			"tag": "p",
			"attributes": [
				{"name": "class", "value": {"value": "intro"}},
				{"name": "hidden", "value": {"boolean": true}}
			],
			"children": [{"kind": "variable", "line": 1, "expression": "name"}]
		}]
	}`, string(raw))
}

func TestMarshalVoidElementOmitsEmptyAttributes(t *testing.T) {
	raw, err := json.Marshal(VoidElement{Line: 2, Tag: "br"})
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"void_element","line":2,"tag":"br"}`, string(raw))
}

func TestMarshalBlock(t *testing.T) {
	raw, err := json.Marshal(Block{Line: 4, Name: "if", Arguments: []string{"user"}})
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"block","line":4,"name":"if","arguments":["user"]}`, string(raw))
}
