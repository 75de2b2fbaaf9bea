package ast

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/lox/internal/token"
)

// ============================================================================
// 括号式打印（-ast 输出）
// ============================================================================

// Dump 以带括号的前缀形式输出节点，例如 (+ 1 (* 2 3))
func Dump(n Node) string {
	var sb strings.Builder
	dump(&sb, n)
	return sb.String()
}

// DumpProgram 每条顶层语句一行
func DumpProgram(stmts []Stmt) string {
	var sb strings.Builder
	for _, s := range stmts {
		dump(&sb, s)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func dump(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		sb.WriteString("<missing>")

	// 表达式
	case *Assign:
		parenthesize(sb, "= "+n.Name.Lexeme, n.Value)
	case *Binary:
		if n.Left == nil {
			parenthesize(sb, n.Operator.Lexeme, nil, n.Right)
		} else {
			parenthesize(sb, n.Operator.Lexeme, n.Left, n.Right)
		}
	case *Logical:
		parenthesize(sb, n.Operator.Lexeme, n.Left, n.Right)
	case *Unary:
		parenthesize(sb, n.Operator.Lexeme, n.Right)
	case *Ternary:
		parenthesize(sb, "?:", n.Cond, n.Then, n.Else)
	case *Call:
		parenthesize(sb, "call", append([]Node{n.Callee}, exprNodes(n.Args)...)...)
	case *Get:
		parenthesize(sb, ".", n.Object, nameNode(n.Name))
	case *Set:
		parenthesize(sb, "=", &Get{Object: n.Object, Name: n.Name}, n.Value)
	case *This:
		sb.WriteString("this")
	case *Super:
		sb.WriteString("super." + n.Method.Lexeme)
	case *Grouping:
		parenthesize(sb, "group", n.Expr)
	case *Literal:
		sb.WriteString(LiteralString(n.Value))
	case *Lambda:
		sb.WriteString("(fun (" + paramList(n.Params) + ")")
		for _, s := range n.Body {
			sb.WriteByte(' ')
			dump(sb, s)
		}
		sb.WriteByte(')')
	case *Variable:
		sb.WriteString(n.Name.Lexeme)

	// 语句
	case *Expression:
		parenthesize(sb, ";", n.Expr)
	case *Print:
		parenthesize(sb, "print", n.Expr)
	case *Var:
		if n.Init == nil {
			sb.WriteString("(var " + n.Name.Lexeme + ")")
		} else {
			parenthesize(sb, "var "+n.Name.Lexeme+" =", n.Init)
		}
	case *Block:
		parenthesize(sb, "block", stmtNodes(n.Stmts)...)
	case *If:
		if n.Else == nil {
			parenthesize(sb, "if", n.Cond, n.Then)
		} else {
			parenthesize(sb, "if-else", n.Cond, n.Then, n.Else)
		}
	case *While:
		parenthesize(sb, "while", n.Cond, n.Body)
	case *Function:
		head := "fun"
		switch n.Kind {
		case KindMethod:
			head = "method"
		case KindStaticMethod:
			head = "static"
		case KindGetter:
			head = "getter"
		}
		sb.WriteString("(" + head + " " + n.Name.Lexeme)
		if n.Kind != KindGetter {
			sb.WriteString(" (" + paramList(n.Params) + ")")
		}
		for _, s := range n.Body {
			sb.WriteByte(' ')
			dump(sb, s)
		}
		sb.WriteByte(')')
	case *Return:
		if n.Value == nil {
			sb.WriteString("(return)")
		} else {
			parenthesize(sb, "return", n.Value)
		}
	case *Break:
		sb.WriteString("(break)")
	case *Class:
		sb.WriteString("(class " + n.Name.Lexeme)
		if n.Superclass != nil {
			sb.WriteString(" < " + n.Superclass.Name.Lexeme)
		}
		for _, m := range n.Methods {
			sb.WriteByte(' ')
			dump(sb, m)
		}
		sb.WriteByte(')')

	case *name:
		sb.WriteString(n.tok.Lexeme)
	default:
		fmt.Fprintf(sb, "<%T>", n)
	}
}

func parenthesize(sb *strings.Builder, head string, parts ...Node) {
	sb.WriteByte('(')
	sb.WriteString(head)
	for _, p := range parts {
		sb.WriteByte(' ')
		dump(sb, p)
	}
	sb.WriteByte(')')
}

// name 打印时把一个裸 token 当作节点
type name struct{ tok token.Token }

func (n *name) Pos() token.Position { return n.tok.Pos }
func (n *name) String() string      { return n.tok.Lexeme }

func nameNode(tok token.Token) Node { return &name{tok: tok} }

func exprNodes(exprs []Expr) []Node {
	out := make([]Node, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}

func stmtNodes(stmts []Stmt) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

func paramList(params []token.Token) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	return strings.Join(names, " ")
}

// LiteralString 输出字面量值
func LiteralString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return token.FormatNumber(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// ============================================================================
// 逆波兰式打印（-rpn 输出）
// ============================================================================

// RPN 以逆波兰式输出表达式，例如 1 2 3 * +
func RPN(e Expr) string {
	switch e := e.(type) {
	case nil:
		return "<missing>"
	case *Binary:
		return rpnize(e.Operator.Lexeme, e.Left, e.Right)
	case *Logical:
		return rpnize(e.Operator.Lexeme, e.Left, e.Right)
	case *Unary:
		return rpnize(e.Operator.Lexeme, e.Right)
	case *Ternary:
		return rpnize(e.Question.Lexeme+" "+e.Colon.Lexeme, e.Cond, e.Then, e.Else)
	case *Grouping:
		return rpnize("group", e.Expr)
	case *Literal:
		return LiteralString(e.Value)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return rpnize(e.Name.Lexeme+" =", e.Value)
	case *Call:
		return rpnize("call", append([]Expr{e.Callee}, e.Args...)...)
	case *Get:
		return rpnize(e.Name.Lexeme+" .", e.Object)
	case *Set:
		return rpnize(e.Name.Lexeme+" .=", e.Object, e.Value)
	case *This:
		return "this"
	case *Super:
		return "super." + e.Method.Lexeme
	case *Lambda:
		return "<lambda>"
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func rpnize(op string, exprs ...Expr) string {
	var sb strings.Builder
	for _, e := range exprs {
		sb.WriteString(RPN(e))
		sb.WriteByte(' ')
	}
	sb.WriteString(op)
	return sb.String()
}
