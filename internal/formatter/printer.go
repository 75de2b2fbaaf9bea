package formatter

import (
	"bytes"
	"strings"

	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/lexer"
	"github.com/tangzhangming/lox/internal/token"
)

// Printer AST 打印器
type Printer struct {
	options  *Options
	buf      bytes.Buffer
	indent   int
	comments []lexer.Comment // 尚未输出的注释
}

// NewPrinter 创建打印器
func NewPrinter(options *Options) *Printer {
	if options == nil {
		options = DefaultOptions()
	}
	return &Printer{options: options}
}

// SetComments 设置需要穿插输出的注释
func (p *Printer) SetComments(comments []lexer.Comment) {
	p.comments = comments
}

// Print 打印 AST 并返回格式化的代码
func (p *Printer) Print(stmts []ast.Stmt) string {
	p.printTopLevel(stmts)
	p.flushComments(-1)

	result := p.buf.String()

	// 移除行尾空格
	if p.options.RemoveTrailingSpace {
		lines := strings.Split(result, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimRight(line, " \t")
		}
		result = strings.Join(lines, "\n")
	}

	// 确保文件末尾有换行符
	if p.options.EnsureNewlineAtEOF && result != "" && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}

	return result
}

func (p *Printer) printTopLevel(stmts []ast.Stmt) {
	for i, stmt := range stmts {
		if i > 0 && p.options.BlankLineAroundDecl && (isDecl(stmt) || isDecl(stmts[i-1])) {
			p.writeln()
		}
		p.printStatement(stmt)
	}
}

func isDecl(stmt ast.Stmt) bool {
	switch stmt.(type) {
	case *ast.Function, *ast.Class:
		return true
	}
	return false
}

// ============================================================================
// 输出辅助
// ============================================================================

func (p *Printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *Printer) writeln(s ...string) {
	for _, str := range s {
		p.buf.WriteString(str)
	}
	p.buf.WriteString("\n")
}

func (p *Printer) writeIndent() {
	p.buf.WriteString(strings.Repeat(p.options.IndentString(), p.indent))
}

// openBrace K&R 风格：开括号前一个空格，不换行
func (p *Printer) openBrace() {
	p.writeln(" {")
	p.indent++
}

func (p *Printer) closeBrace() {
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *Printer) writeOperator(op string) {
	if p.options.SpaceAroundOps {
		p.write(" " + op + " ")
		return
	}
	p.write(op)
}

// ============================================================================
// 注释
// ============================================================================

// flushComments 输出所有位于 offset 之前的注释，offset < 0 时全部输出
func (p *Printer) flushComments(offset int) {
	for len(p.comments) > 0 && (offset < 0 || p.comments[0].Pos.Offset < offset) {
		p.writeIndent()
		p.writeln(p.comments[0].Text)
		p.comments = p.comments[1:]
	}
}

// trailingComment 把与语句同一行的注释追加到行尾
func (p *Printer) trailingComment(line int) {
	if len(p.comments) == 0 || p.comments[0].Pos.Line != line {
		return
	}
	if b := p.buf.Bytes(); len(b) > 0 && b[len(b)-1] == '\n' {
		p.buf.Truncate(len(b) - 1)
	}
	p.writeln(" " + p.comments[0].Text)
	p.comments = p.comments[1:]
}

// ============================================================================
// 语句
// ============================================================================

func (p *Printer) printStatement(stmt ast.Stmt) {
	p.flushComments(stmt.Pos().Offset)

	if init, loop, ok := forLoop(stmt); ok {
		p.printFor(init, loop)
		return
	}

	switch s := stmt.(type) {
	case *ast.Expression:
		p.writeIndent()
		p.printExpr(s.Expr)
		p.writeln(";")
	case *ast.Print:
		p.writeIndent()
		p.write("print ")
		p.printExpr(s.Expr)
		p.writeln(";")
	case *ast.Var:
		p.writeIndent()
		p.write("var ")
		p.write(s.Name.Lexeme)
		if s.Init != nil {
			p.writeOperator("=")
			p.printExpr(s.Init)
		}
		p.writeln(";")
	case *ast.Block:
		p.writeIndent()
		p.write("{")
		p.writeln()
		p.indent++
		p.printStatements(s.Stmts)
		p.closeBrace()
		p.writeln()
	case *ast.If:
		p.writeIndent()
		p.printIf(s)
	case *ast.While:
		p.writeIndent()
		p.write("while (")
		p.printExpr(s.Cond)
		p.write(")")
		p.printBody(s.Body)
	case *ast.Function:
		p.writeIndent()
		p.write("fun ")
		p.printFunction(s)
		p.writeln()
	case *ast.Class:
		p.printClass(s)
	case *ast.Return:
		p.writeIndent()
		p.write("return")
		if s.Value != nil {
			p.write(" ")
			p.printExpr(s.Value)
		}
		p.writeln(";")
	case *ast.Break:
		p.writeIndent()
		p.writeln("break;")
	}

	switch stmt.(type) {
	case *ast.Expression, *ast.Print, *ast.Var, *ast.Return, *ast.Break:
		p.trailingComment(stmt.Pos().Line)
	}
}

func (p *Printer) printStatements(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		p.printStatement(stmt)
	}
}

// printBody 循环体和分支：代码块跟在同一行，单条语句换行缩进
func (p *Printer) printBody(body ast.Stmt) {
	if block, ok := body.(*ast.Block); ok && block.LBrace.Type == token.LEFT_BRACE {
		p.openBrace()
		p.printStatements(block.Stmts)
		p.closeBrace()
		p.writeln()
		return
	}
	p.writeln()
	p.indent++
	p.printStatement(body)
	p.indent--
}

func (p *Printer) printIf(s *ast.If) {
	p.write("if (")
	p.printExpr(s.Cond)
	p.write(")")

	then, isBlock := s.Then.(*ast.Block)
	if s.Else == nil || !isBlock || then.LBrace.Type != token.LEFT_BRACE {
		p.printBody(s.Then)
		if s.Else != nil {
			p.writeIndent()
			p.write("else")
			p.printElse(s.Else)
		}
		return
	}

	p.openBrace()
	p.printStatements(then.Stmts)
	p.closeBrace()
	p.write(" else")
	p.printElse(s.Else)
}

func (p *Printer) printElse(stmt ast.Stmt) {
	if elseIf, ok := stmt.(*ast.If); ok {
		p.write(" ")
		p.printIf(elseIf)
		return
	}
	p.printBody(stmt)
}

// forLoop 识别脱糖后的 for 循环：for 关键字作为 Block 或 While 的起始 token
func forLoop(stmt ast.Stmt) (init ast.Stmt, loop *ast.While, ok bool) {
	switch s := stmt.(type) {
	case *ast.Block:
		if s.LBrace.Type != token.FOR || len(s.Stmts) != 2 {
			return nil, nil, false
		}
		loop, ok = s.Stmts[1].(*ast.While)
		return s.Stmts[0], loop, ok
	case *ast.While:
		return nil, s, s.Keyword.Type == token.FOR
	}
	return nil, nil, false
}

func (p *Printer) printFor(init ast.Stmt, loop *ast.While) {
	p.writeIndent()
	p.write("for (")
	switch s := init.(type) {
	case *ast.Var:
		p.write("var ")
		p.write(s.Name.Lexeme)
		if s.Init != nil {
			p.writeOperator("=")
			p.printExpr(s.Init)
		}
	case *ast.Expression:
		p.printExpr(s.Expr)
	}
	p.write(";")

	if lit, ok := loop.Cond.(*ast.Literal); !ok || lit.Token.Pos.Column != 0 {
		p.write(" ")
		p.printExpr(loop.Cond)
	}
	p.write(";")

	body := loop.Body
	if block, ok := body.(*ast.Block); ok && block.LBrace.Type == token.FOR && len(block.Stmts) == 2 {
		if inc, ok := block.Stmts[1].(*ast.Expression); ok {
			p.write(" ")
			p.printExpr(inc.Expr)
			body = block.Stmts[0]
		}
	}
	p.write(")")
	p.printBody(body)
}

// printFunction 输出名字、参数和函数体（不含 fun 关键字和结尾换行）
func (p *Printer) printFunction(fn *ast.Function) {
	p.write(fn.Name.Lexeme)
	if fn.Kind != ast.KindGetter {
		p.printParams(fn.Params)
	}
	p.printFunctionBody(fn.Body)
}

func (p *Printer) printParams(params []token.Token) {
	p.write("(")
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Lexeme)
	}
	p.write(")")
}

func (p *Printer) printFunctionBody(body []ast.Stmt) {
	if len(body) == 0 {
		p.write(" {}")
		return
	}
	p.openBrace()
	p.printStatements(body)
	p.closeBrace()
}

func (p *Printer) printClass(c *ast.Class) {
	p.writeIndent()
	p.write("class ")
	p.write(c.Name.Lexeme)
	if c.Superclass != nil {
		p.write(" < ")
		p.write(c.Superclass.Name.Lexeme)
	}
	if len(c.Methods) == 0 {
		p.writeln(" {}")
		return
	}

	p.openBrace()
	for i, m := range c.Methods {
		if i > 0 {
			p.writeln()
		}
		p.flushComments(m.Pos().Offset)
		p.writeIndent()
		if m.Kind == ast.KindStaticMethod {
			p.write("class ")
		}
		p.printFunction(m)
		p.writeln()
	}
	p.closeBrace()
	p.writeln()
}

// ============================================================================
// 表达式
// ============================================================================

func (p *Printer) printExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		p.write(e.Token.Lexeme)
	case *ast.Variable:
		p.write(e.Name.Lexeme)
	case *ast.This:
		p.write("this")
	case *ast.Super:
		p.write("super.")
		p.write(e.Method.Lexeme)
	case *ast.Grouping:
		p.write("(")
		p.printExpr(e.Expr)
		p.write(")")
	case *ast.Unary:
		p.write(e.Operator.Lexeme)
		p.printExpr(e.Right)
	case *ast.Binary:
		if e.Left == nil {
			p.write(e.Operator.Lexeme)
			p.write(" ")
			p.printExpr(e.Right)
			return
		}
		p.printExpr(e.Left)
		if e.Operator.Type == token.COMMA {
			p.write(", ")
		} else {
			p.writeOperator(e.Operator.Lexeme)
		}
		p.printExpr(e.Right)
	case *ast.Logical:
		p.printExpr(e.Left)
		p.write(" " + e.Operator.Lexeme + " ")
		p.printExpr(e.Right)
	case *ast.Ternary:
		p.printExpr(e.Cond)
		p.writeOperator("?")
		p.printExpr(e.Then)
		p.writeOperator(":")
		p.printExpr(e.Else)
	case *ast.Assign:
		p.write(e.Name.Lexeme)
		p.writeOperator("=")
		p.printExpr(e.Value)
	case *ast.Call:
		p.printExpr(e.Callee)
		p.write("(")
		for i, arg := range e.Args {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(arg)
		}
		p.write(")")
	case *ast.Get:
		p.printExpr(e.Object)
		p.write(".")
		p.write(e.Name.Lexeme)
	case *ast.Set:
		p.printExpr(e.Object)
		p.write(".")
		p.write(e.Name.Lexeme)
		p.writeOperator("=")
		p.printExpr(e.Value)
	case *ast.Lambda:
		p.write("fun ")
		p.printParams(e.Params)
		p.printFunctionBody(e.Body)
	}
}
