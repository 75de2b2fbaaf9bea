package parser

import (
	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/i18n"
	"github.com/tangzhangming/lox/internal/token"
)

// ============================================================================
// Parser - 语法分析器
// ============================================================================
//
// 递归下降，优先级从低到高：
//   assignment → or → and → ternary → equality → comparison → term
//   → factor → unary → call → primary
//
// 错误恢复：致命错误（缺少分号、意外 token）通过 bailout 展开到最近的
// declaration，随后 synchronize 跳到下一个语句边界。非致命错误
// （无效赋值目标、参数过多、循环外的 break）只上报，解析继续。
// 缺少左操作数是警告，仍然产生一个 Left 为 nil 的 Binary 节点。
//
// ============================================================================

// maxArgs 参数和实参的上限
const maxArgs = 255

// Parser 语法分析器
type Parser struct {
	tokens    []token.Token
	current   int
	sink      errors.Sink
	loopDepth int // 当前所在的循环层数，函数体内重新计数
}

// bailout 致命语法错误的展开信号，只在 declaration 中被 recover
type bailout struct{}

// New 创建一个新的语法分析器，tokens 必须以 EOF 结尾
func New(tokens []token.Token, sink errors.Sink) *Parser {
	return &Parser{
		tokens: tokens,
		sink:   sink,
	}
}

// Parse 解析整个程序，返回的语句列表中没有 nil
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// ============================================================================
// 声明
// ============================================================================

// declaration 是错误恢复的边界
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.check(token.FUN) && p.peekNext().Type != token.LEFT_PAREN:
		p.advance()
		return p.function(ast.KindFunction, "function")
	case p.match(token.VAR):
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, i18n.T(i18n.ErrExpectClassName))

	var superclass *ast.Variable
	if p.match(token.LESS) {
		p.consume(token.IDENTIFIER, i18n.T(i18n.ErrExpectSuperclassName))
		superclass = &ast.Variable{Name: p.previous()}
	}

	p.consume(token.LEFT_BRACE, i18n.T(i18n.ErrExpectBraceBeforeCls))

	var methods []*ast.Function
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if p.match(token.CLASS) {
			methods = append(methods, p.function(ast.KindStaticMethod, "method"))
		} else {
			methods = append(methods, p.function(ast.KindMethod, "method"))
		}
	}

	p.consume(token.RIGHT_BRACE, i18n.T(i18n.ErrExpectBraceAfterCls))
	return &ast.Class{Name: name, Superclass: superclass, Methods: methods}
}

// function 解析函数、方法、静态方法；方法名后直接跟 '{' 的是 getter
func (p *Parser) function(kind ast.FunctionKind, label string) *ast.Function {
	name := p.consume(token.IDENTIFIER, i18n.T(i18n.ErrExpectKindName, label))

	if kind == ast.KindMethod && p.check(token.LEFT_BRACE) {
		p.advance()
		return &ast.Function{Name: name, Body: p.functionBody(), Kind: ast.KindGetter}
	}

	p.consume(token.LEFT_PAREN, i18n.T(i18n.ErrExpectParenAfterName, label))
	params := p.parameters()
	p.consume(token.LEFT_BRACE, i18n.T(i18n.ErrExpectBraceBeforeBody, label))

	return &ast.Function{Name: name, Params: params, Body: p.functionBody(), Kind: kind}
}

// parameters 解析参数列表直到 ')'（'(' 已被消费）
func (p *Parser) parameters() []token.Token {
	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), errors.E0010, i18n.T(i18n.ErrTooManyParams))
			}
			params = append(params, p.consume(token.IDENTIFIER, i18n.T(i18n.ErrExpectParamName)))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, i18n.T(i18n.ErrExpectParenAfterParam))
	return params
}

// functionBody 解析函数体（'{' 已被消费），函数体内的循环层数重新计数
func (p *Parser) functionBody() []ast.Stmt {
	enclosing := p.loopDepth
	p.loopDepth = 0
	defer func() { p.loopDepth = enclosing }()
	return p.block()
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, i18n.T(i18n.ErrExpectVarName))

	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}

	p.consume(token.SEMICOLON, i18n.T(i18n.ErrExpectSemiAfterVar))
	return &ast.Var{Name: name, Init: init}
}

// ============================================================================
// 语句
// ============================================================================

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.BREAK):
		return p.breakStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.LEFT_BRACE):
		lbrace := p.previous()
		return &ast.Block{LBrace: lbrace, Stmts: p.block()}
	}
	return p.expressionStatement()
}

func (p *Parser) ifStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, i18n.T(i18n.ErrExpectParenAfterIf))
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, i18n.T(i18n.ErrExpectParenAfterIfCnd))

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.If{Keyword: keyword, Cond: cond, Then: then, Else: els}
}

func (p *Parser) printStatement() ast.Stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(token.SEMICOLON, i18n.T(i18n.ErrExpectSemiAfterValue))
	return &ast.Print{Keyword: keyword, Expr: value}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, i18n.T(i18n.ErrExpectSemiAfterReturn))
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) breakStatement() ast.Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.errorAt(keyword, errors.E0304, i18n.T(i18n.ErrBreakOutsideLoopParse))
	}
	p.consume(token.SEMICOLON, i18n.T(i18n.ErrExpectSemiAfterBreak))
	return &ast.Break{Keyword: keyword}
}

func (p *Parser) whileStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, i18n.T(i18n.ErrExpectParenAfterWhile))
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, i18n.T(i18n.ErrExpectParenAfterCond))

	return &ast.While{Keyword: keyword, Cond: cond, Body: p.loopBody()}
}

// forStatement 脱糖为 { init; while (cond) { body; inc; } }
func (p *Parser) forStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, i18n.T(i18n.ErrExpectParenAfterFor))

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
	case p.match(token.VAR):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, i18n.T(i18n.ErrExpectSemiAfterCond))

	var inc ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		inc = p.expression()
	}
	p.consume(token.RIGHT_PAREN, i18n.T(i18n.ErrExpectParenAfterFor3))

	body := p.loopBody()

	if inc != nil {
		body = &ast.Block{LBrace: keyword, Stmts: []ast.Stmt{body, &ast.Expression{Expr: inc}}}
	}
	if cond == nil {
		cond = &ast.Literal{Token: token.Synthetic(token.TRUE, "true", keyword.Line()), Value: true}
	}
	var loop ast.Stmt = &ast.While{Keyword: keyword, Cond: cond, Body: body}
	if init != nil {
		loop = &ast.Block{LBrace: keyword, Stmts: []ast.Stmt{init, loop}}
	}
	return loop
}

func (p *Parser) loopBody() ast.Stmt {
	p.loopDepth++
	defer func() { p.loopDepth-- }()
	return p.statement()
}

// block 解析到 '}' 为止（'{' 已被消费）
func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, i18n.T(i18n.ErrExpectBraceAfterBlock))
	return stmts
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, i18n.T(i18n.ErrExpectSemiAfterExpr))
	return &ast.Expression{Expr: expr}
}
