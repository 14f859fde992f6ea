// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// PointsPerMillimeter converts millimeters to points.
	PointsPerMillimeter = 72 / 25.4
	// PointsPerCentimeter converts centimeters to points.
	PointsPerCentimeter = 72 / 2.54
	// PointsPerInch converts inches to points.
	PointsPerInch = 72
	// EmSize is the font size em units are resolved against at parse time.
	EmSize = 11
)

type (
	// Expr is a function argument value.
	Expr interface {
		// Kind names the variant for diagnostics ("identifier", "string", ...).
		Kind() string
		String() string
		expr()
	}

	// Ident is a bare identifier such as `center`.
	Ident string

	// Str is a quoted string literal.
	Str string

	// Num is a unitless number.
	Num float64

	// Bool is `true` or `false`.
	Bool bool

	// Size is a length in points.
	Size float64
)

func (Ident) expr() {}
func (Str) expr()   {}
func (Num) expr()   {}
func (Bool) expr()  {}
func (Size) expr()  {}

// Kind implements Expr.
func (Ident) Kind() string { return "identifier" }

// Kind implements Expr.
func (Str) Kind() string { return "string" }

// Kind implements Expr.
func (Num) Kind() string { return "number" }

// Kind implements Expr.
func (Bool) Kind() string { return "bool" }

// Kind implements Expr.
func (Size) Kind() string { return "size" }

func (i Ident) String() string { return string(i) }
func (s Str) String() string   { return strconv.Quote(string(s)) }
func (n Num) String() string   { return strconv.FormatFloat(float64(n), 'g', -1, 64) }
func (b Bool) String() string  { return strconv.FormatBool(bool(b)) }
func (s Size) String() string  { return strconv.FormatFloat(float64(s), 'g', -1, 64) + "pt" }

// Points returns the size as a plain float64 number of points.
func (s Size) Points() float64 { return float64(s) }

// ParseExpr converts one argument token into an expression.
// Quoted strings must already include their quotes.
func ParseExpr(tok string) (Expr, error) {
	switch {
	case tok == "":
		return nil, fmt.Errorf("empty argument")
	case strings.HasPrefix(tok, `"`):
		s, err := strconv.Unquote(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid string literal %s", tok)
		}
		return Str(s), nil
	case tok == "true":
		return Bool(true), nil
	case tok == "false":
		return Bool(false), nil
	}

	size, ok, err := parseSize(tok)
	if err != nil {
		return nil, err
	}
	if ok {
		return size, nil
	}
	// inf and nan are identifiers, not numbers.
	if n, err := strconv.ParseFloat(tok, 64); err == nil && isFinite(n) {
		return Num(n), nil
	}
	if isIdent(tok) {
		return Ident(tok), nil
	}
	return nil, fmt.Errorf("invalid argument %q", tok)
}

// parseSize reports false when tok is not a number with a unit suffix. A
// size that is not a finite number of points is an error.
func parseSize(tok string) (Size, bool, error) {
	units := []struct {
		suffix string
		scale  float64
	}{
		{"pt", 1},
		{"mm", PointsPerMillimeter},
		{"cm", PointsPerCentimeter},
		{"in", PointsPerInch},
		{"em", EmSize},
	}
	for _, u := range units {
		num, found := strings.CutSuffix(tok, u.suffix)
		if !found || num == "" {
			continue
		}
		v, err := strconv.ParseFloat(num, 64)
		if errors.Is(err, strconv.ErrSyntax) {
			return 0, false, nil
		}
		if err != nil || !isFinite(v*u.scale) {
			return 0, false, fmt.Errorf("size %s out of range", tok)
		}
		return Size(v * u.scale), true, nil
	}
	return 0, false, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '-' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
