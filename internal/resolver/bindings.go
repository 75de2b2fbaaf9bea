package resolver

import (
	"github.com/tangzhangming/lox/internal/token"
)

// DeclKind 声明种类
type DeclKind int

const (
	DeclVariable DeclKind = iota
	DeclParameter
	DeclFunction
	DeclClass
)

func (k DeclKind) String() string {
	switch k {
	case DeclVariable:
		return "var"
	case DeclParameter:
		return "parameter"
	case DeclFunction:
		return "fun"
	case DeclClass:
		return "class"
	default:
		return "unknown"
	}
}

// Declaration 一个具名声明
type Declaration struct {
	Name   token.Token
	Kind   DeclKind
	Global bool
}

// Binding 一次引用及其指向的声明（语言服务器的跳转和悬停使用）
type Binding struct {
	Ref  token.Token
	Decl *Declaration
}

// Bindings 返回所有已绑定的引用，按分析顺序排列
func (r *Resolver) Bindings() []Binding {
	return r.bindings
}

// Globals 返回顶层声明，同名的后一次声明覆盖前一次
func (r *Resolver) Globals() map[string]*Declaration {
	return r.globals
}

// Lookup 查找覆盖 pos 的引用或声明
func (r *Resolver) Lookup(pos token.Position) (*Declaration, bool) {
	for _, b := range r.bindings {
		if covers(b.Ref, pos) {
			return b.Decl, true
		}
	}
	for _, d := range r.globals {
		if covers(d.Name, pos) {
			return d, true
		}
	}
	return nil, false
}

// bindGlobals 把没有解析到局部作用域的引用绑定到全局声明
func (r *Resolver) bindGlobals() {
	for _, ref := range r.pending {
		if decl, ok := r.globals[ref.Lexeme]; ok {
			r.bindings = append(r.bindings, Binding{Ref: ref, Decl: decl})
		}
	}
	r.pending = nil
}

func covers(tok token.Token, pos token.Position) bool {
	return tok.Pos.Line == pos.Line &&
		pos.Column >= tok.Pos.Column &&
		pos.Column < tok.Pos.Column+len(tok.Lexeme)
}
