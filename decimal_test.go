package fhirconv_test

import (
	"testing"

	json "github.com/goccy/go-json"

	fhirconv "github.com/okubos/fhirconv"
)

func TestParseDecimal_Grammar(t *testing.T) {
	valid := []string{
		"0", "3", "-1", "0.5", "-0.5", "0.500", "100.00",
		"123456789012345678901234567890.000000000000000000000001",
	}
	for _, s := range valid {
		if _, err := fhirconv.ParseDecimal(s); err != nil {
			t.Fatalf("ParseDecimal(%q) failed: %v", s, err)
		}
	}
	invalid := []string{
		"", "01", "1.", ".5", "1e2", "1E2", "--1", "+1", "1.2.3", "abc", "0x10", "NaN",
	}
	for _, s := range invalid {
		_, err := fhirconv.ParseDecimal(s)
		if err == nil {
			t.Fatalf("ParseDecimal(%q) unexpectedly succeeded", s)
		}
		iss, ok := fhirconv.AsIssues(err)
		if !ok || iss[0].Code != fhirconv.CodeInvalidDecimal {
			t.Fatalf("ParseDecimal(%q): expected %s issue, got %v", s, fhirconv.CodeInvalidDecimal, err)
		}
	}
}

func TestDecimal_PreservesLexeme(t *testing.T) {
	for _, s := range []string{"0.500", "100.00", "-0.000001", "0"} {
		d, err := fhirconv.ParseDecimal(s)
		if err != nil {
			t.Fatalf("ParseDecimal(%q) failed: %v", s, err)
		}
		if got := d.String(); got != s {
			t.Fatalf("lexeme changed: got %q, want %q", got, s)
		}
	}
}

func TestDecimal_MarshalJSON_BareLiteral(t *testing.T) {
	d, err := fhirconv.ParseDecimal("100.00")
	if err != nil {
		t.Fatalf("ParseDecimal failed: %v", err)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != "100.00" {
		t.Fatalf("expected bare literal 100.00, got %s", b)
	}
	if !json.Valid(b) {
		t.Fatalf("literal is not valid JSON: %s", b)
	}
}

func TestDecimal_Cmp(t *testing.T) {
	a, _ := fhirconv.ParseDecimal("0.500")
	b, _ := fhirconv.ParseDecimal("0.5")
	c, _ := fhirconv.ParseDecimal("-2")
	if a.Cmp(b) != 0 {
		t.Fatalf("0.500 and 0.5 should compare equal")
	}
	if c.Cmp(a) != -1 || a.Cmp(c) != 1 {
		t.Fatalf("ordering against -2 wrong")
	}
}

func TestDecimal_Value(t *testing.T) {
	d, _ := fhirconv.ParseDecimal("0.500")
	if d.Value() == nil {
		t.Fatalf("expected numeric view")
	}
	if d.Value().Negative {
		t.Fatalf("0.500 should not be negative")
	}
}
