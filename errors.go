package fhirconv

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnknownType         = "unknown_type"
	CodeUnresolvedReference = "unresolved_reference"
	CodeInvalidDecimal      = "invalid_decimal"
	CodeInvalidBoolean      = "invalid_boolean"
	CodeInvalidInteger      = "invalid_integer"
	CodeOverflow            = "overflow"
	CodeMaxDepth            = "max_depth"
	CodeParseError          = "parse_error"
)

// Issue represents a single conversion failure.
type Issue struct {
	Path    string // JSON Pointer into the output being built (for example: /contact/0/name).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: expected grammar, remediation hints.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of conversion errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_decimal at /valueQuantity/value
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func singleIssue(path, code, msg string) Issues {
	return Issues{Issue{Path: normalizeIssuePath(path), Code: code, Message: msg}}
}

func singleIssueHint(path, code, msg, hint string) Issues {
	return Issues{Issue{Path: normalizeIssuePath(path), Code: code, Message: msg, Hint: hint}}
}

func quote(s string) string { return `"` + s + `"` }

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}
