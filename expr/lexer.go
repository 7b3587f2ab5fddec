package expr

import (
	"unicode/utf8"
)

type Lexer struct {
	input  string
	pos    int
	column int
}

func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		Offset: l.pos,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if !utf8.RuneStart(ch) {
		return ch
	}
	l.column++
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// NextToken returns the next token, including whitespace. Use Tokens to get
// the significant tokens of a whole input.
func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if isSpace(ch) {
		return l.scanWhitespace(startPos)
	}

	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber(startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for isSpace(l.peek()) {
		l.advance()
	}
	return l.makeToken(TokenWhitespace, start)
}

// scanNumber accepts "12", "1.5", "1." and ".5". A second decimal point ends
// the literal, so "1.2.3" lexes as "1.2" followed by an error token.
func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	return l.makeToken(TokenNumber, start)
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()
	switch ch {
	case '+':
		if l.peekN(1) == '+' {
			l.advanceN(2)
			return l.makeToken(TokenIncrement, start)
		}
		l.advance()
		return l.makeToken(TokenPlus, start)
	case '-':
		if l.peekN(1) == '-' {
			l.advanceN(2)
			return l.makeToken(TokenDecrement, start)
		}
		l.advance()
		return l.makeToken(TokenMinus, start)
	case '*':
		l.advance()
		return l.makeToken(TokenStar, start)
	case '/':
		l.advance()
		return l.makeToken(TokenSlash, start)
	case '(':
		l.advance()
		return l.makeToken(TokenLParen, start)
	case ')':
		l.advance()
		return l.makeToken(TokenRParen, start)
	}

	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.advanceN(size)
	return l.makeToken(TokenError, start)
}

func (l *Lexer) makeToken(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: l.input[start.Offset:end.Offset],
	}
}

// Tokens lexes input to completion, dropping whitespace. The returned slice
// always ends with a TokenEOF.
func Tokens(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Kind == TokenWhitespace {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}
