// Package ast 定义 Lox 的抽象语法树
//
// 表达式和语句是两个封闭的节点族。节点总是以指针形式出现，
// 指针本身就是节点的身份：静态分析按指针记录解析结果，
// 两个文本相同的变量引用是两个不同的节点。
package ast

import (
	"github.com/tangzhangming/lox/internal/token"
)

// Node 是所有 AST 节点的基接口
type Node interface {
	Pos() token.Position // 返回节点在源代码中的位置
	String() string      // 返回节点的字符串表示（用于调试）
}

// Expr 表示一个表达式节点
type Expr interface {
	Node
	exprNode()
}

// Stmt 表示一个语句节点
type Stmt interface {
	Node
	stmtNode()
}

// ============================================================================
// 函数种类
// ============================================================================

// FunctionKind 区分普通函数、方法、静态方法和 getter
type FunctionKind int

const (
	KindFunction     FunctionKind = iota // fun name() {}
	KindMethod                           // 类中的 name() {}
	KindStaticMethod                     // 类中的 class name() {}
	KindGetter                           // 类中的 name {}
)

func (k FunctionKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindStaticMethod:
		return "static method"
	case KindGetter:
		return "getter"
	default:
		return "unknown"
	}
}
