package expr

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"7", "7"},
		{"123456789", "123456789"},
		{"1+2*3", "7"},
		{"(1+2)*3", "9"},
		{"10-4-3", "3"},
		{"100/10/5", "2"},
		{"0.1+0.2", "0.3"},
		{"1/3", "0.33333333"},
		{"2/3", "0.66666667"},
		{"3+-2", "1"},
		{"-3*-3", "9"},
		{"1.5×4", "6"},
		{"9÷3", "3"},
		{"1.", "1"},
		{".5+.5", "1"},
		{"0.000000004", "0"},
		{"0.000000006", "1e-8"},
		{"-0.000000006", "-1e-8"},
		{"0.00000012", "1.2e-7"},
		{"1000000*1000000*1000000*1000", "1e+21"},
		{"08", "8"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := Evaluate(tt.input)
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tt.input, err)
			}
			if got := result.String(); got != tt.want {
				t.Errorf("Evaluate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluateDigitsAreIdentity(t *testing.T) {
	for _, input := range []string{"0", "1", "9", "10", "42", "987654321", "31415926535"} {
		result, err := Evaluate(input)
		if err != nil {
			t.Fatalf("Evaluate(%q) error: %v", input, err)
		}
		if got := result.String(); got != input {
			t.Errorf("Evaluate(%q) = %s, want %s", input, got, input)
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []string{
		"",
		" ",
		"8/0",
		"8/02",
		"1/0.5",
		"8÷0",
		"1+",
		"*3",
		"3--2",
		"1.2.3",
		"abc",
		"Error",
		"8/(3-3)",
		"0/(1-1)",
		"1" + zeros(400),
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Evaluate(input)
			if err == nil {
				t.Fatalf("Evaluate(%q) succeeded, want error", input)
			}
			if !errors.Is(err, ErrEvaluation) {
				t.Errorf("errors.Is(err, ErrEvaluation) = false for %v", err)
			}
		})
	}
}

func TestEvaluateWithoutDivisionHeuristic(t *testing.T) {
	ok := []struct {
		input string
		want  string
	}{
		{"8/02", "4"},
		{"1/0.5", "2"},
		{"0/5", "0"},
	}
	for _, tt := range ok {
		result, err := Evaluate(tt.input, WithoutDivisionHeuristic())
		if err != nil {
			t.Fatalf("Evaluate(%q) error: %v", tt.input, err)
		}
		if got := result.String(); got != tt.want {
			t.Errorf("Evaluate(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}

	for _, input := range []string{"8/0", "1/(1/0)", "8/(3-3)", "0/0"} {
		_, err := Evaluate(input, WithDivisionHeuristic(false))
		if !errors.Is(err, ErrEvaluation) {
			t.Errorf("Evaluate(%q) error = %v, want ErrEvaluation", input, err)
		}
	}
}

func TestEvaluateErrorColumnsWithAliases(t *testing.T) {
	tests := []struct {
		input  string
		opts   []Option
		column int
	}{
		{"2×3+x", nil, 5},
		{"6÷0", nil, 2},
		{"6÷÷2", nil, 3},
		{"7×(4-4)÷0", []Option{WithoutDivisionHeuristic()}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Evaluate(tt.input, tt.opts...)
			var evalErr *EvaluationError
			if !errors.As(err, &evalErr) {
				t.Fatalf("Evaluate(%q) error = %v, want *EvaluationError", tt.input, err)
			}
			if evalErr.Expr != tt.input {
				t.Errorf("Expr = %q, want %q", evalErr.Expr, tt.input)
			}
			if evalErr.Column != tt.column {
				t.Errorf("Column = %d, want %d", evalErr.Column, tt.column)
			}
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.1 + 0.2, 0.3},
		{1.234567891, 1.23456789},
		{1.234567896, 1.2345679},
		{-1.234567896, -1.2345679},
		{31415926535, 31415926535},
		{-0.000000001, 0},
		{1e300, 1e300},
		// 2^-9 scales to exactly 195312.5.
		{0.001953125, 0.00195313},
		{-0.001953125, -0.00195313},
		{1.001953125, 1.00195313},
		{-1.001953125, -1.00195313},
	}

	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := Round(-0.000000001); math.Signbit(got) {
		t.Errorf("Round(-1e-9) = %v, want positive zero", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{42, "42"},
		{-2.5, "-2.5"},
		{0.3, "0.3"},
		{1e-6, "0.000001"},
		{1e-7, "1e-7"},
		{1.5e-8, "1.5e-8"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.25e22, "1.25e+22"},
		{math.Inf(1), "Infinity"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}
