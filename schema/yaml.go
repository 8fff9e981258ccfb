package schema

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a registry document from YAML. Multi-document streams are
// merged in order, later documents overriding earlier definitions of the
// same type name.
//
// Document shape, one entry per type:
//
//	Patient:
//	  - name: active
//	    type: boolean
//	  - name: name
//	    type: HumanName
//	    repeats: true
//	  - name: contact
//	    repeats: true
//	    fields:
//	      - name: relationship
//	        type: CodeableConcept
//	        repeats: true
func LoadYAML(data []byte) (*Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	merged := map[string][]propertyDecl{}
	for {
		var doc map[string][]propertyDecl
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		for name, decls := range doc {
			merged[name] = decls
		}
	}
	return buildRegistry(merged)
}

// LoadYAMLReader reads a registry document from a stream.
func LoadYAMLReader(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadYAML(data)
}
