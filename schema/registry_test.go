package schema_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/okubos/fhirconv/schema"
)

func questionnaire() *schema.Type {
	return &schema.Type{Name: "Questionnaire", Properties: []*schema.Property{
		{Name: "title", Kind: schema.KindString},
		{Name: "item", Kind: schema.KindElement, Repeats: true, Properties: []*schema.Property{
			{Name: "linkId", Kind: schema.KindString},
			{Name: "item", Kind: schema.KindReference, Ref: "#Questionnaire.item", Repeats: true},
		}},
	}}
}

func TestRegistry_Lookup(t *testing.T) {
	reg := schema.NewRegistry(questionnaire())
	if reg.Len() != 1 {
		t.Fatalf("got %d types", reg.Len())
	}
	typ, ok := reg.Lookup("Questionnaire")
	if !ok || typ.Name != "Questionnaire" {
		t.Fatalf("Lookup failed: %v %v", typ, ok)
	}
	if _, ok := reg.Lookup("Patient"); ok {
		t.Fatalf("unexpected hit for unregistered type")
	}
}

func TestResolve_SelfReference(t *testing.T) {
	reg := schema.NewRegistry(questionnaire())
	p, err := reg.Resolve("#Questionnaire.item")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p == nil || p.Kind != schema.KindElement {
		t.Fatalf("expected the structural item property, got %+v", p)
	}
	nested, err := reg.Resolve("#Questionnaire.item.linkId")
	if err != nil || nested == nil || nested.Kind != schema.KindString {
		t.Fatalf("nested segment resolution failed: %+v %v", nested, err)
	}
}

func TestResolve_UnknownRootTypeIsError(t *testing.T) {
	reg := schema.NewRegistry(questionnaire())
	_, err := reg.Resolve("#Nope.item")
	if err == nil {
		t.Fatalf("expected error for unknown root type")
	}
	var ur *schema.UnresolvedReferenceError
	if !errors.As(err, &ur) {
		t.Fatalf("expected UnresolvedReferenceError, got %T", err)
	}
	if ur.TypeName != "Nope" || ur.Ref != "#Nope.item" {
		t.Fatalf("error fields wrong: %+v", ur)
	}
}

func TestResolve_DanglingSegmentIsAbsent(t *testing.T) {
	reg := schema.NewRegistry(questionnaire())
	p, err := reg.Resolve("#Questionnaire.missing")
	if err != nil || p != nil {
		t.Fatalf("dangling segment must be absent, not an error: %v %v", p, err)
	}
	p, err = reg.Resolve("#Questionnaire.item.missing.deeper")
	if err != nil || p != nil {
		t.Fatalf("deep dangling segment must be absent: %v %v", p, err)
	}
}

func TestResolve_Memoized(t *testing.T) {
	reg := schema.NewRegistry(questionnaire())
	a, err := reg.Resolve("#Questionnaire.item")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	b, err := reg.Resolve("#Questionnaire.item")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if a != b {
		t.Fatalf("repeated resolution must return the memoized property")
	}
}

func TestValidate_ReportsBrokenReferences(t *testing.T) {
	reg := schema.NewRegistry(
		questionnaire(),
		&schema.Type{Name: "Broken", Properties: []*schema.Property{
			{Name: "a", Kind: schema.KindReference, Ref: "#Nope.x"},
			{Name: "b", Kind: schema.KindReference, Ref: "#Questionnaire.missing"},
			{Name: "c", Kind: schema.KindComplex, TypeName: "Ghost"},
			{Name: "grp", Kind: schema.KindElement, Properties: []*schema.Property{
				{Name: "d", Kind: schema.KindReference, Ref: "#Questionnaire.item"},
			}},
		}},
	)
	err := reg.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	msg := err.Error()
	for _, frag := range []string{"Broken.a", "Broken.b", "Broken.c", `"Ghost"`} {
		if !strings.Contains(msg, frag) {
			t.Fatalf("validation message missing %q: %s", frag, msg)
		}
	}
	if strings.Contains(msg, "Broken.grp.d") {
		t.Fatalf("valid nested reference must not be reported: %s", msg)
	}
}

func TestValidate_CleanRegistry(t *testing.T) {
	if err := schema.NewRegistry(questionnaire()).Validate(); err != nil {
		t.Fatalf("clean registry must validate: %v", err)
	}
}
