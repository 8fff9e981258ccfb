package fhirconv

// DecimalMode dictates how decimal values appear in the output object.
type DecimalMode int

const (
	DecimalString DecimalMode = iota // Exact-text strings (object form).
	DecimalExact                     // Decimal values that encode to bare numeric literals (text form).
)

// UnknownComplexPolicy controls how a named complex type that is missing
// from the registry is handled.
type UnknownComplexPolicy int

const (
	UnknownComplexError UnknownComplexPolicy = iota // Abort the conversion.
	UnknownComplexSkip                              // Omit the property (tolerates sparse registries).
)

// defaultMaxDepth bounds recursion so pathologically nested documents fail
// instead of exhausting the call stack.
const defaultMaxDepth = 512

// ConvertOpt bundles conversion options.
type ConvertOpt struct {
	Decimals       DecimalMode
	UnknownComplex UnknownComplexPolicy
	MaxDepth       int // 0 means defaultMaxDepth.
}
