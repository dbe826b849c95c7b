// Package expr evaluates the restricted arithmetic expressions entered in the
// in-game calculator. Input is limited to digits, '.', and "+ - * / ( )".
//
// The evaluator never fails hard: structurally broken input degrades to the
// Pending sentinel and malformed number fragments coerce to zero, so partial
// input mid-typing never crashes the caller.
package expr

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Pending is returned for input that cannot be evaluated yet.
const Pending = "..."

var errMalformed = errors.New("malformed expression")

// Evaluate parses and evaluates text, returning the result as a string.
// Blank input yields "0". Integral results render without a decimal point,
// non-integral results with exactly two decimal places. Anything that cannot
// be evaluated yields Pending.
func Evaluate(text string) string {
	s := strings.ReplaceAll(text, " ", "")
	if s == "" {
		return "0"
	}

	result, err := evaluate(s)
	if err != nil {
		return Pending
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return Pending
	}

	if result == math.Trunc(result) {
		return strconv.FormatFloat(result, 'f', -1, 64)
	}
	return strconv.FormatFloat(result, 'f', 2, 64)
}

// evaluate resolves innermost parenthesized groups first, then evaluates the
// flattened expression.
func evaluate(s string) (float64, error) {
	for {
		close := strings.IndexByte(s, ')')
		if close < 0 {
			break
		}
		open := strings.LastIndexByte(s[:close], '(')
		if open < 0 {
			return 0, errMalformed
		}
		inner, err := evaluateFlat(s[open+1 : close])
		if err != nil {
			return 0, err
		}
		s = s[:open] + strconv.FormatFloat(inner, 'f', -1, 64) + s[close+1:]
	}
	if strings.IndexByte(s, '(') >= 0 {
		return 0, errMalformed
	}
	return evaluateFlat(s)
}

// evaluateFlat evaluates an expression without parentheses: one pass for
// multiplication and division, then one pass for addition and subtraction,
// both left to right.
func evaluateFlat(s string) (float64, error) {
	tokens := tokenize(s)
	if len(tokens) == 0 {
		return 0, errMalformed
	}

	// A single leading minus negates the first number. Unary plus and
	// non-leading unary minus are not supported.
	if tokens[0] == "-" {
		if len(tokens) < 2 || isOperator(tokens[1]) {
			return 0, errMalformed
		}
		tokens = append([]string{"-" + tokens[1]}, tokens[2:]...)
	}

	// Multiplication and division pass.
	reduced := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok != "*" && tok != "/" {
			reduced = append(reduced, tok)
			continue
		}
		if len(reduced) == 0 || isOperator(reduced[len(reduced)-1]) {
			return 0, errMalformed
		}
		if i+1 >= len(tokens) || isOperator(tokens[i+1]) {
			return 0, errMalformed
		}
		left := parseNumber(reduced[len(reduced)-1])
		right := parseNumber(tokens[i+1])
		var v float64
		if tok == "*" {
			v = left * right
		} else {
			v = left / right
		}
		reduced[len(reduced)-1] = strconv.FormatFloat(v, 'f', -1, 64)
		i++
	}

	// Addition and subtraction pass.
	result := parseNumber(reduced[0])
	for i := 1; i < len(reduced); i += 2 {
		op := reduced[i]
		if op != "+" && op != "-" {
			return 0, errMalformed
		}
		if i+1 >= len(reduced) || isOperator(reduced[i+1]) {
			return 0, errMalformed
		}
		right := parseNumber(reduced[i+1])
		if op == "+" {
			result += right
		} else {
			result -= right
		}
	}
	return result, nil
}

// tokenize splits at operator boundaries, preserving operators as standalone
// tokens.
func tokenize(s string) []string {
	var tokens []string
	var buf strings.Builder
	for _, r := range s {
		switch r {
		case '+', '-', '*', '/':
			if buf.Len() > 0 {
				tokens = append(tokens, buf.String())
				buf.Reset()
			}
			tokens = append(tokens, string(r))
		default:
			buf.WriteRune(r)
		}
	}
	if buf.Len() > 0 {
		tokens = append(tokens, buf.String())
	}
	return tokens
}

func isOperator(tok string) bool {
	return tok == "+" || tok == "-" || tok == "*" || tok == "/"
}

// parseNumber coerces malformed number fragments to zero instead of failing.
// Partial input like "1." or "abc" must not break evaluation.
func parseNumber(tok string) float64 {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0
	}
	return v
}
