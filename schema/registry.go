package schema

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// UnresolvedReferenceError reports a reference path whose root type name is
// missing from the registry.
type UnresolvedReferenceError struct {
	Ref      string // The full reference path, e.g. "#Questionnaire.item".
	TypeName string // The root type name that failed to resolve.
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved type reference %q: unknown type %q", e.Ref, e.TypeName)
}

// Registry maps type names to their definitions. It is safe for concurrent
// readers; one registry typically serves many parallel conversions.
type Registry struct {
	types map[string]*Type

	mu   sync.RWMutex
	refs map[string]*Property // memoized reference resolutions, keyed by raw path
}

// NewRegistry builds a registry over the given types.
func NewRegistry(types ...*Type) *Registry {
	r := &Registry{
		types: make(map[string]*Type, len(types)),
		refs:  make(map[string]*Property),
	}
	for _, t := range types {
		r.types[t.Name] = t
	}
	return r
}

// Add registers a type, replacing any previous definition with the same
// name. Not safe to call concurrently with conversions.
func (r *Registry) Add(t *Type) {
	r.types[t.Name] = t
	r.refs = make(map[string]*Property)
}

// Lookup returns the type definition for a name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int { return len(r.types) }

// Resolve follows a "#TypeName.segment..." reference path to the property
// definition it denotes. An unknown root type name is an error; an unknown
// nested segment yields (nil, nil) and the caller treats the property as
// having no matching data. Resolutions are memoized per path.
func (r *Registry) Resolve(ref string) (*Property, error) {
	r.mu.RLock()
	p, ok := r.refs[ref]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err := r.resolve(ref)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.refs[ref] = p
	r.mu.Unlock()
	return p, nil
}

func (r *Registry) resolve(ref string) (*Property, error) {
	path := strings.TrimPrefix(ref, "#")
	segs := strings.Split(path, ".")
	t, ok := r.types[segs[0]]
	if !ok {
		return nil, &UnresolvedReferenceError{Ref: ref, TypeName: segs[0]}
	}
	props := t.Properties
	var cur *Property
	for _, seg := range segs[1:] {
		cur = findProperty(props, seg)
		if cur == nil {
			return nil, nil
		}
		props = cur.Properties
	}
	return cur, nil
}

// Validate eagerly resolves every reference path declared anywhere in the
// registry. Dangling nested segments, which Resolve tolerates silently at
// conversion time, are reported here so sparse schemas can be caught at
// load time.
func (r *Registry) Validate() error {
	var errs []error
	for _, t := range r.types {
		validateProperties(r, t.Name, t.Properties, &errs)
	}
	return errors.Join(errs...)
}

func validateProperties(r *Registry, owner string, props []*Property, errs *[]error) {
	for _, p := range props {
		switch p.Kind {
		case KindReference:
			resolved, err := r.Resolve(p.Ref)
			if err != nil {
				*errs = append(*errs, fmt.Errorf("%s.%s: %w", owner, p.Name, err))
			} else if resolved == nil {
				*errs = append(*errs, fmt.Errorf("%s.%s: reference %q has no target", owner, p.Name, p.Ref))
			}
		case KindComplex:
			if _, ok := r.types[p.TypeName]; !ok {
				*errs = append(*errs, fmt.Errorf("%s.%s: unknown type %q", owner, p.Name, p.TypeName))
			}
		case KindElement:
			validateProperties(r, owner+"."+p.Name, p.Properties, errs)
		}
	}
}
