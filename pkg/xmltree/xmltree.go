// Package xmltree turns Wazuh configuration markup into a generic node
// tree. The documents are not schema-bound (section and option tags form
// an open vocabulary), so the tree keeps tags, ordered attributes, text
// and children as-is and leaves interpretation to the config package.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Placeholder tokens protecting characters that cannot survive an XML
// parse. They are substituted into the raw document before parsing and
// resolved again by the config package after each value is read. The
// token strings appear verbatim in documents written by existing
// deployments and must not change.
const (
	TokenOpenTag  = "_custom_open_tag_"  // literal "\<" in the source
	TokenCloseTag = "_custom_close_tag_" // literal "\>" in the source
	TokenAmpLt    = "_custom_amp_lt_"    // "&lt;" entity in the source
	TokenAmpGt    = "_custom_amp_gt_"    // "&gt;" entity in the source
)

// Attribute is a single name="value" pair. Attributes keep document
// order, which map[string]string would lose.
type Attribute struct {
	Name  string
	Value string
}

// Node is one element of the parsed document.
type Node struct {
	Tag      string
	Attrs    []Attribute
	Text     string
	Children []*Node
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttrs reports whether the node carries any attribute.
func (n *Node) HasAttrs() bool { return len(n.Attrs) > 0 }

// Iter returns the node and every descendant in document order.
func (n *Node) Iter() []*Node {
	nodes := []*Node{n}
	for _, c := range n.Children {
		nodes = append(nodes, c.Iter()...)
	}
	return nodes
}

// substitutions applied to the raw document before it reaches the XML
// decoder, mirroring what the daemons accept in ossec.conf.
var preParse = strings.NewReplacer(
	`\<`, TokenOpenTag,
	`\>`, TokenCloseTag,
	"&lt;", TokenAmpLt,
	"&gt;", TokenAmpGt,
)

// Parse reads a whole configuration document and returns a synthetic
// root node whose children are the document's top level elements. A
// file may contain several top level elements (multiple ossec_config
// blocks), which plain XML would reject, so the payload is wrapped
// before decoding.
func Parse(r io.Reader) (*Node, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(raw))
}

// ParseString is Parse over an in-memory document.
func ParseString(doc string) (*Node, error) {
	wrapped := "<root>\n" + preParse.Replace(doc) + "\n</root>"

	dec := xml.NewDecoder(strings.NewReader(wrapped))
	dec.Strict = false

	root := &Node{Tag: "root"}
	stack := []*Node{root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse markup: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: t.Name.Local}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attribute{Name: a.Name.Local, Value: a.Value})
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			cur := stack[len(stack)-1]
			cur.Text += string(t)
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("parse markup: unbalanced document")
	}
	// The decoder produced a node for the synthetic wrapper element
	// itself; that node is the root whose children are the document's
	// top level elements. It collects stray whitespace, so its text is
	// dropped; the callers only look at its children.
	root = root.Children[0]
	root.Text = ""
	trimStructural(root)
	return root, nil
}

// LoadFile parses the document stored at path.
func LoadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// trimStructural drops the indentation that pretty printed documents
// leave inside elements that only contain children. Leaf text is kept
// verbatim.
func trimStructural(n *Node) {
	if len(n.Children) > 0 && strings.TrimSpace(n.Text) == "" {
		n.Text = ""
	}
	for _, c := range n.Children {
		trimStructural(c)
	}
}

var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// postSerialize restores the placeholder tokens to the escape sequences
// found in the original document, so the serialized form matches the
// source bytes.
var postSerialize = strings.NewReplacer(
	TokenOpenTag, `\<`,
	TokenCloseTag, `\>`,
	TokenAmpLt, "&lt;",
	TokenAmpGt, "&gt;",
)

// Serialize renders a node back to markup. It is used by readers that
// need an option's source form rather than its parsed text, such as
// logcollector queries embedding escaped markup of their own.
func Serialize(n *Node) string {
	var b strings.Builder
	serializeInto(&b, n)
	return postSerialize.Replace(b.String())
}

func serializeInto(b *strings.Builder, n *Node) {
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(a.Value))
		b.WriteByte('"')
	}
	if n.Text == "" && len(n.Children) == 0 {
		b.WriteString(" />")
		return
	}
	b.WriteByte('>')
	b.WriteString(textEscaper.Replace(n.Text))
	for _, c := range n.Children {
		serializeInto(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}
