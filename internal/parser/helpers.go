package parser

import (
	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/token"
)

// ============================================================================
// Token 游标
// ============================================================================

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekNext() token.Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+1]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) checkAny(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			return true
		}
	}
	return false
}

func (p *Parser) match(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume 期望下一个 token 是 t，否则报告致命错误并展开
func (p *Parser) consume(t token.TokenType, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.fail(p.peek(), errors.E0001, message)
	return token.Token{}
}

// ============================================================================
// 错误报告与恢复
// ============================================================================

func (p *Parser) report(err *errors.CompileError) {
	if p.sink != nil {
		p.sink.Report(err)
	}
}

// errorAt 报告非致命的 critical 错误，解析继续
func (p *Parser) errorAt(tok token.Token, code, message string) {
	p.report(errors.AtToken(code, errors.LevelError, tok, message))
}

// fail 报告致命错误并展开到最近的 declaration
func (p *Parser) fail(tok token.Token, code, message string) {
	p.errorAt(tok, code, message)
	panic(bailout{})
}

// synchronize 丢弃 token 直到语句边界：刚越过一个 ';'，或下一个 token 开始新的语句
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}

		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF,
			token.WHILE, token.PRINT, token.RETURN, token.BREAK:
			return
		}

		p.advance()
	}
}
