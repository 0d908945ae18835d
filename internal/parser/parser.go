// Package parser implements the Brewin parser using Pratt parsing for
// expressions and recursive descent for declarations and statements.
package parser

import (
	"fmt"
	"strings"

	"github.com/ariyin/go-brewin/internal/ast"
	"github.com/ariyin/go-brewin/internal/lexer"
	"github.com/ariyin/go-brewin/pkg/token"
)

// Precedence levels for operators (lowest to highest).
const (
	_ int = iota
	LOWEST
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x, !x
)

// precedences maps token types to their precedence levels.
var precedences = map[token.TokenType]int{
	token.OR:       OR,
	token.AND:      AND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.LT_EQ:    LESSGREATER,
	token.GT:       LESSGREATER,
	token.GT_EQ:    LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
}

// Error is a parse error with its source position.
type Error struct {
	Message string
	Pos     token.Position
}

func (e Error) String() string {
	return fmt.Sprintf("line %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// ErrorList is the set of errors produced by a parse, usable as a single
// Go error by callers of the embedding API.
type ErrorList []Error

func (el ErrorList) Error() string {
	msgs := make([]string, 0, len(el))
	for _, e := range el {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "\n")
}

// Parser parses Brewin source into an AST.
type Parser struct {
	l      *lexer.Lexer
	errors ErrorList

	curToken  token.Token
	peekToken token.Token
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the parse errors encountered so far, including lexical
// errors surfaced by the scanner.
func (p *Parser) Errors() ErrorList {
	errs := p.errors
	for _, le := range p.l.Errors() {
		errs = append(errs, Error{Message: le.Message, Pos: le.Pos})
	}
	return errs
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

// expectPeek advances when the next token has the expected type and
// records an error otherwise.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.errorf(p.peekToken.Pos, "expected %s, got %s", t, describeToken(p.peekToken))
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, Error{
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	})
}

func describeToken(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.IDENT, token.INT, token.STRING:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	default:
		return fmt.Sprintf("%q", tok.Literal)
	}
}

// ParseProgram parses a complete Brewin program: any number of struct and
// function declarations.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.STRUCT:
			if s := p.parseStructDecl(); s != nil {
				program.Structs = append(program.Structs, s)
			}
		case token.FUNC:
			if f := p.parseFuncDecl(); f != nil {
				program.Functions = append(program.Functions, f)
			}
		default:
			p.errorf(p.curToken.Pos, "expected struct or func declaration, got %s", describeToken(p.curToken))
			p.synchronizeTopLevel()
			continue
		}
		p.nextToken()
	}

	return program
}

// synchronizeTopLevel skips tokens until the next plausible declaration
// start so one bad token does not cascade.
func (p *Parser) synchronizeTopLevel() {
	for !p.curTokenIs(token.EOF) && !p.curTokenIs(token.STRUCT) && !p.curTokenIs(token.FUNC) {
		p.nextToken()
	}
}

// parseStructDecl parses: struct Name { field: type; ... }
func (p *Parser) parseStructDecl() *ast.StructDecl {
	decl := &ast.StructDecl{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.curToken.Literal

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		field := &ast.Field{Token: p.curToken}
		if !p.curTokenIs(token.IDENT) {
			p.errorf(p.curToken.Pos, "expected field name, got %s", describeToken(p.curToken))
			return nil
		}
		field.Name = p.curToken.Literal
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		typeName, ok := p.parseTypeName()
		if !ok {
			return nil
		}
		field.VarType = typeName
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
		decl.Fields = append(decl.Fields, field)
		p.nextToken()
	}

	if !p.curTokenIs(token.RBRACE) {
		p.errorf(p.curToken.Pos, "unterminated struct declaration")
		return nil
	}
	return decl
}

// parseFuncDecl parses: func name(params) [: type] { statements }
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	decl := &ast.FuncDecl{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.curToken.Literal

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	decl.Params = p.parseParams()

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		typeName, ok := p.parseTypeName()
		if !ok {
			return nil
		}
		decl.ReturnType = typeName
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	decl.Body = p.parseBlock()
	return decl
}

// parseParams parses the parameter list after '('; curToken ends on ')'.
func (p *Parser) parseParams() []*ast.Param {
	params := []*ast.Param{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	p.nextToken()
	for {
		param := &ast.Param{Token: p.curToken}
		if !p.curTokenIs(token.IDENT) {
			p.errorf(p.curToken.Pos, "expected parameter name, got %s", describeToken(p.curToken))
			return params
		}
		param.Name = p.curToken.Literal
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			typeName, ok := p.parseTypeName()
			if !ok {
				return params
			}
			param.VarType = typeName
		}
		params = append(params, param)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

// parseTypeName accepts a plain identifier or the void keyword in type
// annotation position. Whether the name denotes a valid type is decided at
// evaluation time.
func (p *Parser) parseTypeName() (string, bool) {
	switch p.curToken.Type {
	case token.IDENT, token.VOID:
		return p.curToken.Literal, true
	default:
		p.errorf(p.curToken.Pos, "expected type name, got %s", describeToken(p.curToken))
		return "", false
	}
}

// parseBlock parses statements until the matching '}'. curToken must be on
// '{' when called and ends on '}'.
func (p *Parser) parseBlock() []ast.Statement {
	stmts := []ast.Statement{}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.nextToken()
	}

	if !p.curTokenIs(token.RBRACE) {
		p.errorf(p.curToken.Pos, "unterminated block")
	}
	return stmts
}
