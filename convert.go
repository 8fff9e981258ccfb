package fhirconv

import (
	"errors"
	"regexp"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/okubos/fhirconv/schema"
)

var integerPattern = regexp.MustCompile(`^-?\d+$`)

// Convert builds the output object for one record: a resourceType key equal
// to the node name, then one entry per schema property that has matching
// children, in schema-declared order. Any failure aborts the whole
// conversion and returns Issues; there is no partial result.
func Convert(node *Element, reg *schema.Registry, opts ...ConvertOpt) (*Object, error) {
	var opt ConvertOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxDepth == 0 {
		opt.MaxDepth = defaultMaxDepth
	}
	c := &converter{reg: reg, opt: opt}
	return c.convertResource(node, "")
}

// ConvertJSON converts and encodes in one step. Decimals are forced into
// exact mode so they appear in the stream as bare numeric literals of
// unbounded precision rather than quoted strings or floats.
func ConvertJSON(node *Element, reg *schema.Registry, opts ...ConvertOpt) ([]byte, error) {
	var opt ConvertOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	opt.Decimals = DecimalExact
	obj, err := Convert(node, reg, opt)
	if err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}

// converter carries the per-conversion state. It is exclusively owned by
// one top-level Convert call; the registry it reads is never written.
type converter struct {
	reg   *schema.Registry
	opt   ConvertOpt
	depth int
}

func (c *converter) push(path string) error {
	c.depth++
	if c.depth > c.opt.MaxDepth {
		return singleIssue(path, CodeMaxDepth, "max nesting depth exceeded")
	}
	return nil
}

func (c *converter) pop() { c.depth-- }

func (c *converter) convertResource(node *Element, path string) (*Object, error) {
	if err := c.push(path); err != nil {
		return nil, err
	}
	defer c.pop()
	t, ok := c.reg.Lookup(node.Name)
	if !ok {
		return nil, singleIssue(path, CodeUnknownType, "unknown resource type "+quote(node.Name))
	}
	out := NewObject()
	out.Set("resourceType", node.Name)
	for _, p := range t.Properties {
		if err := c.convertProperty(node, out, p, path); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// maxReferenceHops caps reference-to-reference chains so a cyclic schema
// cannot loop the resolver.
const maxReferenceHops = 16

func (c *converter) convertProperty(node *Element, out *Object, prop *schema.Property, base string) error {
	matches := node.ChildrenNamed(prop.Name)
	if len(matches) == 0 {
		return nil
	}
	propPath := joinJSONPointer(base, prop.Name)

	// The declaring site keeps its own name and cardinality; a reference
	// only supplies the kind and nested definitions of its target.
	eff := prop
	for hops := 0; eff.Kind == schema.KindReference; hops++ {
		if hops == maxReferenceHops {
			return singleIssue(propPath, CodeUnresolvedReference, "reference cycle at "+quote(prop.Ref))
		}
		resolved, err := c.reg.Resolve(eff.Ref)
		if err != nil {
			var ur *schema.UnresolvedReferenceError
			if errors.As(err, &ur) {
				return Issues{Issue{Path: normalizeIssuePath(propPath), Code: CodeUnresolvedReference, Message: err.Error(), Cause: err}}
			}
			return err
		}
		if resolved == nil {
			return nil
		}
		eff = resolved
	}

	if prop.Repeats {
		out.Set(prop.Name, []any{})
	}
	for i, child := range matches {
		path := propPath
		if prop.Repeats {
			path = joinJSONPointer(propPath, strconv.Itoa(i))
		}
		v, ok, err := c.convertValue(child, eff, path)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if prop.Repeats {
			seq, _ := out.Get(prop.Name)
			out.Set(prop.Name, append(seq.([]any), v))
		} else {
			// Multiple matches on a singular property: last one wins.
			out.Set(prop.Name, v)
		}
	}
	return nil
}

// convertValue extracts one output value from a matching child element.
// ok=false means the element produced nothing and the property entry is
// simply not emitted for it.
func (c *converter) convertValue(child *Element, prop *schema.Property, path string) (any, bool, error) {
	switch prop.Kind {
	case schema.KindString:
		v := child.Attr("value")
		if v == "" {
			return nil, false, nil
		}
		return v, true, nil

	case schema.KindBoolean:
		raw, ok := valueAttr(child)
		if !ok {
			return nil, false, nil
		}
		switch raw {
		case "true":
			return true, true, nil
		case "false":
			return false, true, nil
		}
		return nil, false, singleIssueHint(path, CodeInvalidBoolean,
			"invalid boolean literal "+quote(raw), `"true" or "false"`)

	case schema.KindInteger:
		raw, ok := valueAttr(child)
		if !ok {
			return nil, false, nil
		}
		if !integerPattern.MatchString(raw) {
			return nil, false, singleIssueHint(path, CodeInvalidInteger,
				"invalid integer literal "+quote(raw), integerPattern.String())
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, false, Issues{Issue{Path: normalizeIssuePath(path), Code: CodeOverflow, Message: "integer literal " + quote(raw) + " overflows int64", Cause: err}}
		}
		return n, true, nil

	case schema.KindDecimal:
		raw, ok := valueAttr(child)
		if !ok {
			return nil, false, nil
		}
		d, err := parseDecimalAt(raw, path)
		if err != nil {
			return nil, false, err
		}
		if c.opt.Decimals == DecimalExact {
			return d, true, nil
		}
		return d.String(), true, nil

	case schema.KindXHTML:
		if !child.hasInlineContent() {
			return nil, false, nil
		}
		return child.Markup(), true, nil

	case schema.KindElement:
		nested, err := c.convertGroup(child, prop.Properties, path)
		if err != nil {
			return nil, false, err
		}
		return nested, true, nil

	case schema.KindResource:
		var inner *Element
		for _, n := range child.Children {
			if n.Name != "" {
				inner = n
				break
			}
		}
		if inner == nil {
			return nil, false, nil
		}
		sub, err := c.convertResource(inner, path)
		if err != nil {
			return nil, false, err
		}
		return sub, true, nil

	case schema.KindComplex:
		t, ok := c.reg.Lookup(prop.TypeName)
		if !ok {
			if c.opt.UnknownComplex == UnknownComplexSkip {
				return nil, false, nil
			}
			return nil, false, singleIssue(path, CodeUnknownType,
				"unknown type "+quote(prop.TypeName)+" for property "+quote(prop.Name))
		}
		nested, err := c.convertGroup(child, t.Properties, path)
		if err != nil {
			return nil, false, err
		}
		return nested, true, nil

	case schema.KindReference:
		// References are resolved before dispatch; reaching here means the
		// schema loader produced a malformed definition.
		return nil, false, singleIssue(path, CodeParseError, "unresolved reference kind in dispatch")

	default:
		return nil, false, singleIssue(path, CodeParseError, "unhandled value kind "+quote(prop.Kind.String()))
	}
}

// convertGroup builds a nested object from a list of property definitions,
// shared by structural groups and named complex types. Unlike resources the
// result carries no resourceType key.
func (c *converter) convertGroup(node *Element, props []*schema.Property, path string) (*Object, error) {
	if err := c.push(path); err != nil {
		return nil, err
	}
	defer c.pop()
	nested := NewObject()
	for _, p := range props {
		if err := c.convertProperty(node, nested, p, path); err != nil {
			return nil, err
		}
	}
	return nested, nil
}

func valueAttr(e *Element) (string, bool) {
	if e.Attributes == nil {
		return "", false
	}
	v, ok := e.Attributes["value"]
	return v, ok
}
