// Package rfc matches Mexican taxpayer identifiers (RFC) against the fixed
// format: three or four letters from A-Z, Ñ or &, six digits, and an optional
// three-character homoclave of letters or digits.
//
// A Pattern is built once at startup and shared read-only by every request.
package rfc

import (
	"fmt"
	"regexp"
	"strings"
)

// Expr is the anchored expression every identifier must fully match.
const Expr = `^[A-ZÑ&]{3,4}\d{6}(?:[A-Z0-9]{3})?$`

// Pattern is an immutable compiled identifier pattern. It is safe for
// concurrent use.
type Pattern struct {
	re *regexp.Regexp
}

// Compile builds a Pattern from expr. The expression must be anchored at both
// ends so a match always covers the whole candidate.
func Compile(expr string) (*Pattern, error) {
	if !strings.HasPrefix(expr, "^") || !strings.HasSuffix(expr, "$") {
		return nil, fmt.Errorf("rfc pattern %q must be anchored with ^ and $", expr)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile rfc pattern: %w", err)
	}
	return &Pattern{re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Default compiles Expr.
func Default() (*Pattern, error) {
	return Compile(Expr)
}

// Match reports whether the already-normalized candidate is a well-formed RFC.
func (p *Pattern) Match(normalized string) bool {
	return p.re.MatchString(normalized)
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.re.String()
}

// Normalize upper-cases s and trims surrounding whitespace. Interior
// characters are left untouched.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}
