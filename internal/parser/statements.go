package parser

import (
	"github.com/ariyin/go-brewin/internal/ast"
	"github.com/ariyin/go-brewin/pkg/token"
)

// parseStatement parses a single statement. curToken is on the first token
// of the statement and ends on the statement's final token (';' or '}').
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR:
		return p.parseVarStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.RAISE:
		return p.parseRaiseStatement()
	case token.IDENT:
		return p.parseAssignOrCallStatement()
	default:
		p.errorf(p.curToken.Pos, "unexpected %s at start of statement", describeToken(p.curToken))
		p.synchronizeStatement()
		return nil
	}
}

// synchronizeStatement skips to the end of the current statement after an
// error.
func (p *Parser) synchronizeStatement() {
	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

func (p *Parser) parseVarStatement() *ast.VarStatement {
	stmt := &ast.VarStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		typeName, ok := p.parseTypeName()
		if !ok {
			return nil
		}
		stmt.VarType = typeName
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

// parseAssignOrCallStatement disambiguates `name = expr;`, `a.b.c = expr;`
// and `name(args);` from their first tokens.
func (p *Parser) parseAssignOrCallStatement() ast.Statement {
	if p.peekTokenIs(token.LPAREN) {
		call := p.parseCallExpression()
		if call == nil {
			return nil
		}
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
		return &ast.CallStatement{Call: call}
	}

	stmt := p.parseAssignment()
	if stmt == nil {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

// parseAssignment parses `qualname = expr` without the trailing semicolon,
// so for-loop clauses can reuse it. curToken must be on the first name
// segment and ends on the last token of the expression.
func (p *Parser) parseAssignment() *ast.AssignStatement {
	stmt := &ast.AssignStatement{Token: p.curToken}

	name, ok := p.parseQualifiedName()
	if !ok {
		return nil
	}
	stmt.Name = name

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

// parseQualifiedName reads IDENT ("." IDENT)* starting at curToken and
// returns the dotted form.
func (p *Parser) parseQualifiedName() (string, bool) {
	if !p.curTokenIs(token.IDENT) {
		p.errorf(p.curToken.Pos, "expected name, got %s", describeToken(p.curToken))
		return "", false
	}
	name := p.curToken.Literal
	for p.peekTokenIs(token.DOT) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return "", false
		}
		name += "." + p.curToken.Literal
	}
	return name, true
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Consequence = p.parseBlock()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		stmt.Alternative = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseForStatement() *ast.ForStatement {
	stmt := &ast.ForStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Init = p.parseAssignment()
	if stmt.Init == nil {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	p.nextToken()
	stmt.Update = p.parseAssignment()
	if stmt.Update == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return stmt
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	stmt := &ast.TryStatement{Token: p.curToken}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlock()

	for p.peekTokenIs(token.CATCH) {
		p.nextToken()
		clause := &ast.CatchClause{Token: p.curToken}
		if !p.expectPeek(token.STRING) {
			return nil
		}
		clause.ExceptionType = p.curToken.Literal
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		clause.Body = p.parseBlock()
		stmt.Catchers = append(stmt.Catchers, clause)
	}

	if len(stmt.Catchers) == 0 {
		p.errorf(stmt.Token.Pos, "try without catch clause")
		return nil
	}
	return stmt
}

func (p *Parser) parseRaiseStatement() *ast.RaiseStatement {
	stmt := &ast.RaiseStatement{Token: p.curToken}

	p.nextToken()
	stmt.Exception = p.parseExpression(LOWEST)
	if stmt.Exception == nil {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}
