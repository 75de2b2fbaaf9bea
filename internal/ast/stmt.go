package ast

import (
	"github.com/tangzhangming/lox/internal/token"
)

// ============================================================================
// 语句节点
// ============================================================================

// Expression 表达式语句
type Expression struct {
	Expr Expr
}

func (s *Expression) Pos() token.Position { return s.Expr.Pos() }
func (s *Expression) String() string      { return Dump(s) }
func (s *Expression) stmtNode()           {}

// Print print 语句
type Print struct {
	Keyword token.Token
	Expr    Expr
}

func (s *Print) Pos() token.Position { return s.Keyword.Pos }
func (s *Print) String() string      { return Dump(s) }
func (s *Print) stmtNode()           {}

// Var 变量声明，Init 可以为 nil（变量处于未初始化状态）
type Var struct {
	Name token.Token
	Init Expr
}

func (s *Var) Pos() token.Position { return s.Name.Pos }
func (s *Var) String() string      { return Dump(s) }
func (s *Var) stmtNode()           {}

// Block 代码块
type Block struct {
	LBrace token.Token
	Stmts  []Stmt
}

func (s *Block) Pos() token.Position { return s.LBrace.Pos }
func (s *Block) String() string      { return Dump(s) }
func (s *Block) stmtNode()           {}

// If 条件语句，Else 可以为 nil
type If struct {
	Keyword token.Token
	Cond    Expr
	Then    Stmt
	Else    Stmt
}

func (s *If) Pos() token.Position { return s.Keyword.Pos }
func (s *If) String() string      { return Dump(s) }
func (s *If) stmtNode()           {}

// While 循环，for 循环在语法分析阶段脱糖为 While
type While struct {
	Keyword token.Token
	Cond    Expr
	Body    Stmt
}

func (s *While) Pos() token.Position { return s.Keyword.Pos }
func (s *While) String() string      { return Dump(s) }
func (s *While) stmtNode()           {}

// Function 函数、方法、静态方法或 getter 的声明
//
// getter 没有参数列表，Params 为空。
type Function struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
	Kind   FunctionKind
}

func (s *Function) Pos() token.Position { return s.Name.Pos }
func (s *Function) String() string      { return Dump(s) }
func (s *Function) stmtNode()           {}

// Return return 语句，Value 可以为 nil
type Return struct {
	Keyword token.Token
	Value   Expr
}

func (s *Return) Pos() token.Position { return s.Keyword.Pos }
func (s *Return) String() string      { return Dump(s) }
func (s *Return) stmtNode()           {}

// Break break 语句
type Break struct {
	Keyword token.Token
}

func (s *Break) Pos() token.Position { return s.Keyword.Pos }
func (s *Break) String() string      { return Dump(s) }
func (s *Break) stmtNode()           {}

// Class 类声明
type Class struct {
	Name       token.Token
	Superclass *Variable // 可以为 nil
	Methods    []*Function
}

func (s *Class) Pos() token.Position { return s.Name.Pos }
func (s *Class) String() string      { return Dump(s) }
func (s *Class) stmtNode()           {}
