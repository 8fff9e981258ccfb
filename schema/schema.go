// Package schema holds the declarative type registry that drives
// conversion: named type definitions, their ordered property definitions,
// and the resolver for self-referential property paths.
package schema

// Kind identifies the value kind of a property.
type Kind int

const (
	KindString    Kind = iota // Plain string and its lexical variants (uri, code, id, timestamps, ...).
	KindBoolean               // "true" / "false".
	KindInteger               // Base-10 integer, signed/unsigned/positive variants.
	KindDecimal               // Exact-precision decimal.
	KindXHTML                 // Embedded markup fragment, re-serialized to text.
	KindElement               // Structural group with nested property definitions.
	KindResource              // Embedded sub-record, converted through the resource converter.
	KindComplex               // Named complex type looked up in the registry.
	KindReference             // Path back into another type's property graph, resolved at conversion time.
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindXHTML:
		return "xhtml"
	case KindElement:
		return "element"
	case KindResource:
		return "resource"
	case KindComplex:
		return "complex"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Property describes one field of a type: its name, value kind and
// cardinality. TypeName is set for KindComplex, Ref for KindReference and
// Properties for KindElement.
type Property struct {
	Name       string
	Kind       Kind
	Repeats    bool
	TypeName   string
	Ref        string
	Properties []*Property
}

// Type is a named record or structural type with its ordered property
// definitions. Property order is declaration order and fixes output key
// order during conversion.
type Type struct {
	Name       string
	Properties []*Property
}

func findProperty(props []*Property, name string) *Property {
	for _, p := range props {
		if p.Name == name {
			return p
		}
	}
	return nil
}
