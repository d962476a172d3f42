package znap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseTransformList parses an SVG transform attribute such as
//
//	translate(10 20) rotate(45) scale(2, 1)
//
// and returns the product of the listed transforms, leftmost outermost.
// Supported functions: matrix, translate, scale, rotate (with optional
// centre), skewX and skewY. Angles are in degrees.
func ParseTransformList(s string) (Affine, error) {
	m := Identity
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return Identity, fmt.Errorf("%w: transform list %q: missing '('", ErrInvalidArgument, s)
		}
		closing := strings.IndexByte(rest, ')')
		if closing < open {
			return Identity, fmt.Errorf("%w: transform list %q: missing ')'", ErrInvalidArgument, s)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseArgs(rest[open+1 : closing])
		if err != nil {
			return Identity, fmt.Errorf("%w: transform list %q: %v", ErrInvalidArgument, s, err)
		}
		fn, err := svgFunc(name, args)
		if err != nil {
			return Identity, fmt.Errorf("%w: transform list %q: %v", ErrInvalidArgument, s, err)
		}
		m = m.Multiply(fn)
		rest = strings.TrimLeft(rest[closing+1:], ", \t\n\r")
	}
	return m, nil
}

// parseArgs splits an SVG argument list. Numbers may be separated by
// commas, whitespace or nothing at all where the grammar allows it, as in
// "10-20" or "0.5.5".
func parseArgs(s string) ([]float64, error) {
	var args []float64
	for i := 0; i < len(s); {
		c := s[i]
		if c == ',' || unicode.IsSpace(rune(c)) {
			i++
			continue
		}
		n := scanNumber(s[i:])
		if n == 0 {
			return nil, fmt.Errorf("bad number at %q", s[i:])
		}
		v, err := strconv.ParseFloat(s[i:i+n], 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("bad number %q", s[i:i+n])
		}
		args = append(args, v)
		i += n
	}
	return args, nil
}

// scanNumber returns the length of the SVG number at the start of s, or 0.
func scanNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func svgFunc(name string, args []float64) (Affine, error) {
	n := len(args)
	switch name {
	case "matrix":
		if n == 6 {
			return Affine{args[0], args[1], args[2], args[3], args[4], args[5]}, nil
		}
	case "translate":
		switch n {
		case 1:
			return Translate(args[0], 0), nil
		case 2:
			return Translate(args[0], args[1]), nil
		}
	case "scale":
		switch n {
		case 1:
			return ScaleU(args[0]), nil
		case 2:
			return Scale(args[0], args[1]), nil
		}
	case "rotate":
		switch n {
		case 1:
			return RotateDeg(args[0]), nil
		case 3:
			cx, cy := args[1], args[2]
			return Translate(cx, cy).Multiply(RotateDeg(args[0])).Multiply(Translate(-cx, -cy)), nil
		}
	case "skewX":
		if n == 1 {
			return SkewDeg(args[0], 0), nil
		}
	case "skewY":
		if n == 1 {
			return SkewDeg(0, args[0]), nil
		}
	default:
		return Identity, fmt.Errorf("unknown function %q", name)
	}
	return Identity, fmt.Errorf("%s: wrong number of arguments (%d)", name, n)
}
