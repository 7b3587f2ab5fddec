package expr

import (
	"strconv"
)

// Parser is a recursive-descent parser for
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/") unary }
//	unary  = ("+" | "-") unary | primary
//	primary = number | "(" expr ")"
type Parser struct {
	input  string
	tokens []Token
	pos    int
}

func NewParser(input string) *Parser {
	return &Parser{
		input:  input,
		tokens: Tokens(input),
	}
}

// Parse parses input as a single arithmetic expression.
func Parse(input string) (Node, error) {
	return NewParser(input).Parse()
}

func (p *Parser) Parse() (Node, error) {
	if p.peek().Kind == TokenEOF {
		return nil, evalError(p.input, 0, "empty expression")
	}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, p.unexpected(tok)
	}
	return node, nil
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind != TokenPlus && tok.Kind != TokenMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: tok.Kind, Left: left, Right: right, span: Span{Start: left.Span().Start, End: right.Span().End}}
	}
}

func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind != TokenStar && tok.Kind != TokenSlash {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: tok.Kind, Left: left, Right: right, span: Span{Start: left.Span().Start, End: right.Span().End}}
	}
}

func (p *Parser) parseUnary() (Node, error) {
	tok := p.peek()
	if tok.Kind == TokenPlus || tok.Kind == TokenMinus {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: tok.Kind, Operand: operand, span: Span{Start: tok.Span.Start, End: operand.Span().End}}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.next()
	switch tok.Kind {
	case TokenNumber:
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, evalError(p.input, tok.Span.Start.Column, "invalid number %q", tok.Literal)
		}
		return &Number{Value: value, Literal: tok.Literal, span: tok.Span}, nil
	case TokenLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing.Kind != TokenRParen {
			return nil, p.unexpected(closing)
		}
		return inner, nil
	default:
		return nil, p.unexpected(tok)
	}
}

func (p *Parser) unexpected(tok Token) error {
	switch tok.Kind {
	case TokenEOF:
		return evalError(p.input, tok.Span.Start.Column, "unexpected end of expression")
	case TokenError:
		return evalError(p.input, tok.Span.Start.Column, "unknown token %q", tok.Literal)
	default:
		return evalError(p.input, tok.Span.Start.Column, "unexpected %q", tok.Literal)
	}
}
