package expr

import (
	"errors"
	"fmt"
)

// ErrorMarker is what a display shows in place of any failed evaluation.
const ErrorMarker = "Error"

// ErrEvaluation is the single failure kind of the evaluator. Syntax errors,
// division by zero and non-finite results all wrap it.
var ErrEvaluation = errors.New("evaluation error")

type EvaluationError struct {
	Expr   string
	Column int
	Reason string
}

func (e *EvaluationError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("evaluate %q: %s at column %d", e.Expr, e.Reason, e.Column)
	}
	return fmt.Sprintf("evaluate %q: %s", e.Expr, e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return ErrEvaluation
}

func evalError(expr string, column int, format string, args ...any) error {
	return &EvaluationError{
		Expr:   expr,
		Column: column,
		Reason: fmt.Sprintf(format, args...),
	}
}
