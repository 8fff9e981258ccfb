package fhirconv

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"sort"
	"strings"
)

// Element is one node of a parsed markup tree: a name, its attributes and
// ordered child nodes. Character data inside mixed content is kept as inline
// text nodes (empty Name, non-empty Text) so narrative markup re-serializes
// in document order. Elements are built once and never mutated afterwards.
type Element struct {
	Name       string
	Attributes map[string]string
	Children   []*Element
	Text       string
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	if e.Attributes == nil {
		return ""
	}
	return e.Attributes[name]
}

// ChildrenNamed returns the direct child elements with the given local name,
// in document order. Text nodes never match.
func (e *Element) ChildrenNamed(name string) []*Element {
	if name == "" {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// hasInlineContent reports whether the element carries any nested markup or
// character data worth re-serializing.
func (e *Element) hasInlineContent() bool {
	for _, c := range e.Children {
		if c.Name != "" || strings.TrimSpace(c.Text) != "" {
			return true
		}
	}
	return false
}

// Markup re-serializes the element subtree as markup text. Attributes are
// written in sorted order so the output is deterministic; text and attribute
// values are escaped.
func (e *Element) Markup() string {
	var b bytes.Buffer
	e.writeMarkup(&b)
	return b.String()
}

func (e *Element) writeMarkup(b *bytes.Buffer) {
	if e.Name == "" {
		_ = xml.EscapeText(b, []byte(e.Text))
		return
	}
	b.WriteByte('<')
	b.WriteString(e.Name)
	if len(e.Attributes) > 0 {
		keys := make([]string, 0, len(e.Attributes))
		for k := range e.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteByte(' ')
			b.WriteString(k)
			b.WriteString(`="`)
			_ = xml.EscapeText(b, []byte(e.Attributes[k]))
			b.WriteByte('"')
		}
	}
	if len(e.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range e.Children {
		c.writeMarkup(b)
	}
	b.WriteString("</")
	b.WriteString(e.Name)
	b.WriteByte('>')
}

// ParseXML builds an Element tree from markup text. Only local names are
// used; namespace prefixes and declarations beyond plain attributes are not
// interpreted. Whitespace-only character data between elements is dropped.
func ParseXML(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var root *Element
	var stack []*Element
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, singleIssue("", CodeParseError, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local}
			if len(t.Attr) > 0 {
				el.Attributes = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					el.Attributes[a.Name.Local] = a.Value
				}
			}
			if n := len(stack); n > 0 {
				parent := stack[n-1]
				parent.Children = append(parent.Children, el)
			} else if root == nil {
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
			}
		case xml.CharData:
			if n := len(stack); n > 0 {
				text := string(t)
				if strings.TrimSpace(text) == "" {
					continue
				}
				parent := stack[n-1]
				parent.Children = append(parent.Children, &Element{Text: text})
			}
		}
	}
	if root == nil {
		return nil, singleIssue("", CodeParseError, "no root element")
	}
	return root, nil
}

// ParseXMLBytes wraps ParseXML over an in-memory document.
func ParseXMLBytes(data []byte) (*Element, error) {
	return ParseXML(bytes.NewReader(data))
}
