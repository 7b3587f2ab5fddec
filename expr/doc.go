// Package expr evaluates the arithmetic expressions typed into a calculator
// display.
//
// The accepted language is small: decimal literals ("12", "1.5", "1.", ".5"),
// the binary operators + - * / with the usual precedence and left
// associativity, unary + and -, and parentheses. The display aliases × and ÷
// are normalized to * and / before lexing.
//
// Every failure, whether a syntax error, a division by zero or a result that
// is not finite, is reported as an *EvaluationError wrapping ErrEvaluation, and
// is shown to the user as the single marker "Error". Successful results are
// rounded to eight fractional digits and printed by FormatNumber.
package expr
