package parser

import (
	"strconv"

	"github.com/ariyin/go-brewin/internal/ast"
	"github.com/ariyin/go-brewin/pkg/token"
)

// parseExpression parses an expression with precedence climbing. curToken
// is on the first token of the expression and ends on its last token.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		p.nextToken()
		left = p.parseInfix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) parsePrefix() ast.Expression {
	switch p.curToken.Type {
	case token.INT:
		return p.parseIntegerLiteral()
	case token.STRING:
		return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
	case token.TRUE:
		return &ast.BooleanLiteral{Token: p.curToken, Value: true}
	case token.FALSE:
		return &ast.BooleanLiteral{Token: p.curToken, Value: false}
	case token.NIL:
		return &ast.NilLiteral{Token: p.curToken}
	case token.IDENT:
		return p.parseIdentOrCall()
	case token.MINUS:
		return p.parsePrefixExpression("neg")
	case token.BANG:
		return p.parsePrefixExpression("!")
	case token.NEW:
		return p.parseNewExpression()
	case token.LPAREN:
		return p.parseGroupedExpression()
	default:
		p.errorf(p.curToken.Pos, "unexpected %s in expression", describeToken(p.curToken))
		return nil
	}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curToken}
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.errorf(p.curToken.Pos, "could not parse %q as integer", p.curToken.Literal)
		return nil
	}
	lit.Value = value
	return lit
}

// parseIdentOrCall parses a variable reference (possibly dotted) or a
// function call.
func (p *Parser) parseIdentOrCall() ast.Expression {
	if p.peekTokenIs(token.LPAREN) {
		return callOrNil(p.parseCallExpression())
	}

	tok := p.curToken
	name, ok := p.parseQualifiedName()
	if !ok {
		return nil
	}
	return &ast.Identifier{Token: tok, Value: name}
}

// callOrNil converts a typed nil *CallExpression into an untyped nil
// Expression so error paths propagate cleanly.
func callOrNil(call *ast.CallExpression) ast.Expression {
	if call == nil {
		return nil
	}
	return call
}

// parseCallExpression parses `name(args)`. curToken is on the function
// name and ends on ')'.
func (p *Parser) parseCallExpression() *ast.CallExpression {
	call := &ast.CallExpression{Token: p.curToken, Function: p.curToken.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return call
	}

	p.nextToken()
	arg := p.parseExpression(LOWEST)
	if arg == nil {
		return nil
	}
	call.Arguments = append(call.Arguments, arg)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		call.Arguments = append(call.Arguments, arg)
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return call
}

func (p *Parser) parsePrefixExpression(operator string) ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: operator}
	p.nextToken()
	expr.Right = p.parsePrefixOperand()
	if expr.Right == nil {
		return nil
	}
	return expr
}

// parsePrefixOperand parses the operand of a unary operator at PREFIX
// precedence.
func (p *Parser) parsePrefixOperand() ast.Expression {
	return p.parseExpression(PREFIX)
}

func (p *Parser) parseNewExpression() ast.Expression {
	expr := &ast.NewExpression{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	expr.TypeName = p.curToken.Literal
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseInfix(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}
	precedence := LOWEST
	if prec, ok := precedences[p.curToken.Type]; ok {
		precedence = prec
	}
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}
