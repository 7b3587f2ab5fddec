package expr

import (
	"errors"
	"testing"
)

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1+2*3", "(1 + (2 * 3))"},
		{"1*2+3", "((1 * 2) + 3)"},
		{"8-3-2", "((8 - 3) - 2)"},
		{"8/4/2", "((8 / 4) / 2)"},
		{"(1+2)*3", "((1 + 2) * 3)"},
		{"-2*3", "((-2) * 3)"},
		{"3*-2", "(3 * (-2))"},
		{"3+-2", "(3 + (-2))"},
		{"+.5", "(+0.5)"},
		{"((4))", "4"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got := node.String(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"1+",
		"*2",
		"(1+2",
		"1+2)",
		"()",
		"1 2",
		"1.2.3",
		"3--2",
		"3++2",
		"2x",
		".",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", input)
			}
			if !errors.Is(err, ErrEvaluation) {
				t.Errorf("errors.Is(err, ErrEvaluation) = false for %v", err)
			}
		})
	}
}

func TestParseErrorColumn(t *testing.T) {
	_, err := Parse("12+x")
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("error %v is not an *EvaluationError", err)
	}
	if evalErr.Column != 4 {
		t.Errorf("Column = %d, want 4", evalErr.Column)
	}
}
