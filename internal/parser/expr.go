package parser

import (
	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/i18n"
	"github.com/tangzhangming/lox/internal/token"
)

// ============================================================================
// 表达式
// ============================================================================

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		}

		p.errorAt(equals, errors.E0011, i18n.T(i18n.ErrInvalidAssignTarget))
	}

	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		operator := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.ternary()
	for p.match(token.AND) {
		operator := p.previous()
		right := p.ternary()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) ternary() ast.Expr {
	cond := p.equality()

	if p.match(token.QUESTION_MARK) {
		question := p.previous()
		then := p.equality()
		colon := p.consume(token.COLON, i18n.T(i18n.ErrExpectColonTernary))
		els := p.equality()
		return &ast.Ternary{Cond: cond, Question: question, Then: then, Colon: colon, Else: els}
	}

	return cond
}

func (p *Parser) equality() ast.Expr {
	return p.binary(p.comparison, token.BANG_EQUAL, token.EQUAL_EQUAL)
}

func (p *Parser) comparison() ast.Expr {
	return p.binary(p.term, token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL)
}

// term 中只有 '+' 可能缺少左操作数，'-' 开头是一元取负
func (p *Parser) term() ast.Expr {
	var expr ast.Expr
	if p.check(token.PLUS) {
		p.missingLeftOperand()
	} else {
		expr = p.factor()
	}

	for p.match(token.MINUS, token.PLUS) {
		operator := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	return p.binary(p.unary, token.SLASH, token.STAR)
}

// binary 解析左结合的二元运算层级；以运算符开头时给出警告并把左操作数留空
func (p *Parser) binary(operand func() ast.Expr, ops ...token.TokenType) ast.Expr {
	var expr ast.Expr
	if p.checkAny(ops...) {
		p.missingLeftOperand()
	} else {
		expr = operand()
	}

	for p.match(ops...) {
		operator := p.previous()
		right := operand()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) missingLeftOperand() {
	p.report(errors.AtToken(errors.W0002, errors.LevelWarning, p.peek(), i18n.T(i18n.WarnMissingLeftOperand)))
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		operator := p.previous()
		right := p.unary()
		return &ast.Unary{Operator: operator, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, i18n.T(i18n.ErrExpectPropertyName))
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), errors.E0010, i18n.T(i18n.ErrTooManyArgs))
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	paren := p.consume(token.RIGHT_PAREN, i18n.T(i18n.ErrExpectParenAfterArgs))
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Token: p.previous(), Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{Token: p.previous(), Value: true}
	case p.match(token.NIL):
		return &ast.Literal{Token: p.previous(), Value: nil}
	case p.match(token.NUMBER, token.STRING):
		return &ast.Literal{Token: p.previous(), Value: p.previous().Literal}
	case p.match(token.THIS):
		return &ast.This{Keyword: p.previous()}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, i18n.T(i18n.ErrExpectDotAfterSuper))
		method := p.consume(token.IDENTIFIER, i18n.T(i18n.ErrExpectSuperMethod))
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(token.FUN):
		return p.lambda()
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		// 括号内的逗号表达式
		for p.match(token.COMMA) {
			operator := p.previous()
			right := p.expression()
			expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
		}
		p.consume(token.RIGHT_PAREN, i18n.T(i18n.ErrExpectParenAfterExpr))
		return &ast.Grouping{Expr: expr}
	}

	p.fail(p.peek(), errors.E0001, i18n.T(i18n.ErrExpectExpression))
	return nil
}

func (p *Parser) lambda() ast.Expr {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, i18n.T(i18n.ErrExpectParenAfterFun))
	params := p.parameters()
	p.consume(token.LEFT_BRACE, i18n.T(i18n.ErrExpectBraceBeforeBody, "lambda"))
	return &ast.Lambda{Keyword: keyword, Params: params, Body: p.functionBody()}
}
