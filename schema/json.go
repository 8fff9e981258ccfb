package schema

import (
	"io"

	json "github.com/goccy/go-json"
)

// LoadJSON reads a registry document from JSON. The shape mirrors LoadYAML:
// an object mapping type names to ordered property lists.
func LoadJSON(data []byte) (*Registry, error) {
	var doc map[string][]propertyDecl
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return buildRegistry(doc)
}

// LoadJSONReader reads a registry document from a stream.
func LoadJSONReader(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadJSON(data)
}
