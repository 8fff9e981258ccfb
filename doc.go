// Package fhirconv converts a parsed markup-element tree representing one
// structured clinical record into an equivalent object graph, or into
// JSON-compatible text, directed by a declarative type registry.
//
// Decimal values are carried as exact text end to end: in object form they
// appear as strings, and in text form (ConvertJSON) as bare numeric
// literals of unbounded precision. No decimal ever passes through a native
// float.
//
// A minimal end-to-end use:
//
//	reg, err := schema.LoadYAML(schemaDoc)
//	node, err := fhirconv.ParseXMLBytes(record)
//	obj, err := fhirconv.Convert(node, reg)
//	text, err := fhirconv.ConvertJSON(node, reg)
//
// Conversion is synchronous and single-pass. Independent conversions may
// run in parallel over one shared Registry.
package fhirconv
