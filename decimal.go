package fhirconv

import (
	"regexp"

	"github.com/cockroachdb/apd/v3"
)

// decimalPattern is the accepted decimal grammar: no exponent form, no
// leading zeros, no bare "." forms. The source lexeme is kept verbatim so
// trailing zeros survive.
var decimalPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// Decimal is an exact-precision decimal value. It carries the source lexeme
// untouched and never passes through a native float, so "0.500" stays
// "0.500". An apd-backed numeric view is available for comparison and
// arithmetic.
type Decimal struct {
	text string
	num  *apd.Decimal
}

// ParseDecimal validates the lexeme against the decimal grammar and returns
// the exact value.
func ParseDecimal(s string) (Decimal, error) {
	return parseDecimalAt(s, "")
}

func parseDecimalAt(s, path string) (Decimal, error) {
	if !decimalPattern.MatchString(s) {
		return Decimal{}, singleIssueHint(path, CodeInvalidDecimal,
			"invalid decimal literal "+quote(s), decimalPattern.String())
	}
	num, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal{}, Issues{Issue{Path: normalizeIssuePath(path), Code: CodeInvalidDecimal, Message: "invalid decimal literal " + quote(s), Cause: err}}
	}
	return Decimal{text: s, num: num}, nil
}

// String returns the source lexeme verbatim.
func (d Decimal) String() string { return d.text }

// Value returns the arbitrary-precision numeric view.
func (d Decimal) Value() *apd.Decimal { return d.num }

// Cmp compares two decimals numerically: -1 if d < other, 0 if equal,
// +1 if d > other. "0.500" and "0.5" compare equal even though their
// lexemes differ.
func (d Decimal) Cmp(other Decimal) int { return d.num.Cmp(other.num) }

// MarshalJSON emits the lexeme as a bare numeric literal. The grammar
// accepted by ParseDecimal is a strict subset of JSON's number grammar, so
// the output stays valid JSON while preserving unbounded precision.
func (d Decimal) MarshalJSON() ([]byte, error) { return []byte(d.text), nil }
