package ast

import (
	"github.com/tangzhangming/lox/internal/token"
)

// ============================================================================
// 表达式节点
// ============================================================================

// Assign 赋值 name = value
type Assign struct {
	Name  token.Token
	Value Expr
}

func (e *Assign) Pos() token.Position { return e.Name.Pos }
func (e *Assign) String() string      { return Dump(e) }
func (e *Assign) exprNode()           {}

// Binary 二元运算，逗号表达式也用它表示
//
// 缺少左操作数时 Left 为 nil（语法分析只给出警告）。
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *Binary) Pos() token.Position {
	if e.Left != nil {
		return e.Left.Pos()
	}
	return e.Operator.Pos
}
func (e *Binary) String() string { return Dump(e) }
func (e *Binary) exprNode()      {}

// Logical 短路运算 and / or
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *Logical) Pos() token.Position { return e.Left.Pos() }
func (e *Logical) String() string      { return Dump(e) }
func (e *Logical) exprNode()           {}

// Unary 一元运算 ! / -
type Unary struct {
	Operator token.Token
	Right    Expr
}

func (e *Unary) Pos() token.Position { return e.Operator.Pos }
func (e *Unary) String() string      { return Dump(e) }
func (e *Unary) exprNode()           {}

// Ternary 条件表达式 cond ? then : else
type Ternary struct {
	Cond     Expr
	Question token.Token
	Then     Expr
	Colon    token.Token
	Else     Expr
}

func (e *Ternary) Pos() token.Position { return e.Cond.Pos() }
func (e *Ternary) String() string      { return Dump(e) }
func (e *Ternary) exprNode()           {}

// Call 调用 callee(args)，Paren 是右括号，运行时错误归属到它
type Call struct {
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func (e *Call) Pos() token.Position { return e.Callee.Pos() }
func (e *Call) String() string      { return Dump(e) }
func (e *Call) exprNode()           {}

// Get 属性访问 object.name
type Get struct {
	Object Expr
	Name   token.Token
}

func (e *Get) Pos() token.Position { return e.Object.Pos() }
func (e *Get) String() string      { return Dump(e) }
func (e *Get) exprNode()           {}

// Set 属性赋值 object.name = value
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

func (e *Set) Pos() token.Position { return e.Object.Pos() }
func (e *Set) String() string      { return Dump(e) }
func (e *Set) exprNode()           {}

// This this 关键字
type This struct {
	Keyword token.Token
}

func (e *This) Pos() token.Position { return e.Keyword.Pos }
func (e *This) String() string      { return Dump(e) }
func (e *This) exprNode()           {}

// Super super.method
type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (e *Super) Pos() token.Position { return e.Keyword.Pos }
func (e *Super) String() string      { return Dump(e) }
func (e *Super) exprNode()           {}

// Grouping 括号
type Grouping struct {
	Expr Expr
}

func (e *Grouping) Pos() token.Position { return e.Expr.Pos() }
func (e *Grouping) String() string      { return Dump(e) }
func (e *Grouping) exprNode()           {}

// Literal 字面量，Value 是 nil、bool、float64 或 string
type Literal struct {
	Token token.Token
	Value interface{}
}

func (e *Literal) Pos() token.Position { return e.Token.Pos }
func (e *Literal) String() string      { return Dump(e) }
func (e *Literal) exprNode()           {}

// Lambda 匿名函数 fun (params) { body }
type Lambda struct {
	Keyword token.Token
	Params  []token.Token
	Body    []Stmt
}

func (e *Lambda) Pos() token.Position { return e.Keyword.Pos }
func (e *Lambda) String() string      { return Dump(e) }
func (e *Lambda) exprNode()           {}

// Variable 变量引用
type Variable struct {
	Name token.Token
}

func (e *Variable) Pos() token.Position { return e.Name.Pos }
func (e *Variable) String() string      { return Dump(e) }
func (e *Variable) exprNode()           {}
