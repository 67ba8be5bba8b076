package ast

import "encoding/json"

// JSON encoding for the AST dump artifact. Every node carries a "kind"
// discriminator so dumps stay self-describing.

// MarshalJSON encodes the document as its root node list.
func (d Document) MarshalJSON() ([]byte, error) {
	nodes := d.Nodes
	if nodes == nil {
		nodes = []Node{}
	}
	return json.Marshal(struct {
		Nodes []Node `json:"nodes"`
	}{nodes})
}

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	if v.Boolean {
		return json.Marshal(struct {
			Boolean bool `json:"boolean"`
		}{true})
	}
	return json.Marshal(struct {
		Value string `json:"value"`
	}{v.Text})
}

func (a Attribute) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name  string         `json:"name"`
		Value AttributeValue `json:"value"`
	}{a.Name, a.Value})
}

func (n Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind       string      `json:"kind"`
		Line       int         `json:"line"`
		Tag        string      `json:"tag"`
		Attributes []Attribute `json:"attributes,omitempty"`
		Children   []Node      `json:"children,omitempty"`
	}{n.Kind(), n.Line, n.Tag, n.Attributes, n.Children})
}

func (n VoidElement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind       string      `json:"kind"`
		Line       int         `json:"line"`
		Tag        string      `json:"tag"`
		Attributes []Attribute `json:"attributes,omitempty"`
	}{n.Kind(), n.Line, n.Tag, n.Attributes})
}

func (n Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Line    int    `json:"line"`
		Content string `json:"content"`
	}{n.Kind(), n.Line, n.Content})
}

func (n Doctype) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Line    int    `json:"line"`
		Content string `json:"content"`
	}{n.Kind(), n.Line, n.Content})
}

func (n Script) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind       string      `json:"kind"`
		Line       int         `json:"line"`
		Attributes []Attribute `json:"attributes,omitempty"`
		Content    string      `json:"content"`
	}{n.Kind(), n.Line, n.Attributes, n.Content})
}

func (n Style) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind       string      `json:"kind"`
		Line       int         `json:"line"`
		Attributes []Attribute `json:"attributes,omitempty"`
		Content    string      `json:"content"`
	}{n.Kind(), n.Line, n.Attributes, n.Content})
}

func (n Variable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind       string `json:"kind"`
		Line       int    `json:"line"`
		Expression string `json:"expression"`
	}{n.Kind(), n.Line, n.Expression})
}

func (n Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      string   `json:"kind"`
		Line      int      `json:"line"`
		Name      string   `json:"name"`
		Arguments []string `json:"arguments,omitempty"`
		Children  []Node   `json:"children,omitempty"`
	}{n.Kind(), n.Line, n.Name, n.Arguments, n.Children})
}

func (n TemplateComment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Line    int    `json:"line"`
		Content string `json:"content"`
	}{n.Kind(), n.Line, n.Content})
}

func (n Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Line    int    `json:"line"`
		Content string `json:"content"`
	}{n.Kind(), n.Line, n.Content})
}
