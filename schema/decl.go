package schema

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// propertyDecl is the on-disk shape of one property in a registry document.
// Either Type or Fields must be set; Fields declares an inline structural
// group.
type propertyDecl struct {
	Name    string         `yaml:"name" json:"name"`
	Type    string         `yaml:"type,omitempty" json:"type,omitempty"`
	Repeats bool           `yaml:"repeats,omitempty" json:"repeats,omitempty"`
	Fields  []propertyDecl `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// stringTypeCodes are the primitive type codes that convert as plain
// strings: lexical variants carried verbatim from the value attribute.
var stringTypeCodes = map[string]struct{}{
	"string": {}, "uri": {}, "url": {}, "code": {}, "id": {},
	"date": {}, "dateTime": {}, "instant": {}, "time": {},
	"oid": {}, "uuid": {}, "canonical": {}, "markdown": {},
	"base64Binary": {},
}

var integerTypeCodes = map[string]struct{}{
	"integer": {}, "positiveInt": {}, "unsignedInt": {},
}

func buildRegistry(doc map[string][]propertyDecl) (*Registry, error) {
	reg := NewRegistry()
	for name, decls := range doc {
		props, err := buildProperties(name, decls)
		if err != nil {
			return nil, err
		}
		reg.Add(&Type{Name: name, Properties: props})
	}
	return reg, nil
}

func buildProperties(owner string, decls []propertyDecl) ([]*Property, error) {
	props := make([]*Property, 0, len(decls))
	for _, d := range decls {
		p, err := buildProperty(owner, d)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, nil
}

func buildProperty(owner string, d propertyDecl) (*Property, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("schema: %s: property with no name", owner)
	}
	p := &Property{Name: d.Name, Repeats: d.Repeats}
	if len(d.Fields) > 0 {
		nested, err := buildProperties(owner+"."+d.Name, d.Fields)
		if err != nil {
			return nil, err
		}
		p.Kind = KindElement
		p.Properties = nested
		return p, nil
	}
	if d.Type == "" {
		return nil, fmt.Errorf("schema: %s.%s: property needs a type or fields", owner, d.Name)
	}
	switch {
	case strings.HasPrefix(d.Type, "#"):
		p.Kind = KindReference
		p.Ref = d.Type
	case d.Type == "Resource":
		p.Kind = KindResource
	case d.Type == "boolean":
		p.Kind = KindBoolean
	case d.Type == "decimal":
		p.Kind = KindDecimal
	case d.Type == "xhtml":
		p.Kind = KindXHTML
	default:
		if _, ok := integerTypeCodes[d.Type]; ok {
			p.Kind = KindInteger
			break
		}
		if _, ok := stringTypeCodes[d.Type]; ok {
			p.Kind = KindString
			break
		}
		if r, _ := utf8.DecodeRuneInString(d.Type); unicode.IsUpper(r) {
			p.Kind = KindComplex
			p.TypeName = d.Type
			break
		}
		// Unrecognized lowercase codes are lexical string variants.
		p.Kind = KindString
	}
	return p, nil
}
