package expr

import "fmt"

// Position locates a token. Offset counts bytes, Column counts runes from 1.
type Position struct {
	Offset int
	Column int
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenNumber

	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenLParen
	TokenRParen

	// Increment and decrement are never valid in an arithmetic expression,
	// they are lexed so the parser can reject "3--2" instead of reading it
	// as "3 - -2".
	TokenIncrement
	TokenDecrement
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenError:      "Error",
	TokenWhitespace: "Whitespace",
	TokenNumber:     "Number",
	TokenPlus:       "+",
	TokenMinus:      "-",
	TokenStar:       "*",
	TokenSlash:      "/",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenIncrement:  "++",
	TokenDecrement:  "--",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

func (t Token) IsOperator() bool {
	switch t.Kind {
	case TokenPlus, TokenMinus, TokenStar, TokenSlash:
		return true
	}
	return false
}
