package expr

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"
)

// Result is the outcome of a successful evaluation. Value is already rounded
// to eight fractional digits.
type Result struct {
	Value float64
}

func (r Result) String() string {
	return FormatNumber(r.Value)
}

type Option func(*evaluator)

// WithoutDivisionHeuristic disables the textual "/0" check. Division by a
// value that evaluates to zero fails instead.
func WithoutDivisionHeuristic() Option {
	return func(e *evaluator) {
		e.divisionHeuristic = false
	}
}

// WithDivisionHeuristic selects between the textual "/0" check (true, the
// default) and semantic division-by-zero detection (false).
func WithDivisionHeuristic(enabled bool) Option {
	return func(e *evaluator) {
		e.divisionHeuristic = enabled
	}
}

type evaluator struct {
	text              string
	input             string
	divisionHeuristic bool
}

var aliasReplacer = strings.NewReplacer("×", "*", "÷", "/")

// Normalize replaces the display-only operator aliases × and ÷ with * and /.
func Normalize(text string) string {
	return aliasReplacer.Replace(text)
}

// Evaluate computes text as a single arithmetic expression over + - * / ( )
// and decimal literals.
//
// By default any normalized text containing "/0" is rejected before parsing.
// This over-matches ("8/02", "1/0.5") and under-matches ("8/(3-3)", which is
// then caught as a non-finite result).
func Evaluate(text string, opts ...Option) (Result, error) {
	e := &evaluator{
		text:              text,
		input:             text,
		divisionHeuristic: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	if strings.TrimSpace(text) == "" {
		return Result{}, evalError(text, 0, "empty expression")
	}

	normalized := Normalize(text)
	e.input = normalized

	if e.divisionHeuristic {
		if i := strings.Index(normalized, "/0"); i >= 0 {
			return Result{}, evalError(text, utf8.RuneCountInString(normalized[:i])+1, "division by zero")
		}
	}

	node, err := Parse(normalized)
	if err != nil {
		return Result{}, e.reportOriginal(err)
	}

	value, err := e.eval(node)
	if err != nil {
		return Result{}, e.reportOriginal(err)
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return Result{}, evalError(text, 0, "result is not a finite number")
	}

	return Result{Value: Round(value)}, nil
}

// reportOriginal points err at the text as typed. Normalization maps runes
// one to one, so rune columns carry over unchanged.
func (e *evaluator) reportOriginal(err error) error {
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		evalErr.Expr = e.text
	}
	return err
}

func (e *evaluator) eval(node Node) (float64, error) {
	switch n := node.(type) {
	case *Number:
		return n.Value, nil
	case *Unary:
		v, err := e.eval(n.Operand)
		if err != nil {
			return 0, err
		}
		if n.Op == TokenMinus {
			return -v, nil
		}
		return v, nil
	case *Binary:
		left, err := e.eval(n.Left)
		if err != nil {
			return 0, err
		}
		right, err := e.eval(n.Right)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case TokenPlus:
			return left + right, nil
		case TokenMinus:
			return left - right, nil
		case TokenStar:
			return left * right, nil
		case TokenSlash:
			if right == 0 && !e.divisionHeuristic {
				return 0, evalError(e.input, n.Right.Span().Start.Column, "division by zero")
			}
			return left / right, nil
		}
	}
	return 0, evalError(e.input, node.Span().Start.Column, "cannot evaluate %s", node)
}

const roundingScale = 1e8

// Round rounds v to eight fractional digits, half away from zero. Integral
// values are returned unchanged.
func Round(v float64) float64 {
	if v == math.Trunc(v) {
		return v
	}
	r := math.Round(v*roundingScale) / roundingScale
	if r == 0 {
		return 0
	}
	return r
}
