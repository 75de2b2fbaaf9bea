// Package resolver 在执行前对 AST 做静态作用域分析
//
// 每个局部变量引用（Variable、Assign、This、Super）被解析为
// (distance, slot)：distance 是从引用所在作用域向外走的层数，
// slot 是变量在目标作用域中的声明序号。顶层不开作用域，
// 找不到的引用在运行时按名字查全局变量。
package resolver

import (
	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/i18n"
	"github.com/tangzhangming/lox/internal/token"
)

// Recorder 接收解析结果，解释器实现它
type Recorder interface {
	Resolve(expr ast.Expr, distance, slot int)
}

// functionType 当前所在的函数上下文
type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcMethod
	funcStaticMethod
	funcInitializer
)

// classType 当前所在的类上下文
type classType int

const (
	classNone classType = iota
	classPlain
	classSubclass
)

// scope 一个局部作用域，slot 按声明顺序分配
type scope struct {
	index   map[string]int
	defined []bool
	used    []bool
	decls   []*Declaration
}

func newScope() *scope {
	return &scope{index: make(map[string]int)}
}

// Resolver 静态分析器
type Resolver struct {
	recorder Recorder
	sink     errors.Sink

	scopes          []*scope
	currentFunction functionType
	currentClass    classType
	inLoop          bool

	globals  map[string]*Declaration
	bindings []Binding
	pending  []token.Token // 未解析到局部作用域的引用，结束时按全局声明绑定
}

// New 创建静态分析器，recorder 可以为 nil（只做检查）
func New(recorder Recorder, sink errors.Sink) *Resolver {
	return &Resolver{
		recorder: recorder,
		sink:     sink,
		globals:  make(map[string]*Declaration),
	}
}

// Resolve 分析一组顶层语句
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
	r.bindGlobals()
}

// ============================================================================
// 语句
// ============================================================================

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()

	case *ast.Var:
		r.declare(s.Name, DeclVariable)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)

	case *ast.Function:
		r.declare(s.Name, DeclFunction)
		r.define(s.Name)
		r.resolveFunction(s.Params, s.Body, funcFunction)

	case *ast.Class:
		r.resolveClass(s)

	case *ast.Expression:
		r.resolveExpr(s.Expr)

	case *ast.Print:
		r.resolveExpr(s.Expr)

	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.While:
		r.resolveExpr(s.Cond)
		enclosing := r.inLoop
		r.inLoop = true
		r.resolveStmt(s.Body)
		r.inLoop = enclosing

	case *ast.Return:
		if r.currentFunction == funcNone {
			r.error(s.Keyword, errors.E0300, i18n.T(i18n.ErrReturnTopLevel))
		}
		if s.Value != nil {
			if r.currentFunction == funcInitializer {
				r.error(s.Keyword, errors.E0303, i18n.T(i18n.ErrReturnFromInitializer))
			}
			r.resolveExpr(s.Value)
		}

	case *ast.Break:
		if !r.inLoop {
			r.error(s.Keyword, errors.E0304, i18n.T(i18n.ErrBreakOutsideLoop))
		}
	}
}

func (r *Resolver) resolveClass(s *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classPlain
	defer func() { r.currentClass = enclosingClass }()

	if s.Superclass != nil && s.Superclass.Name.Lexeme == s.Name.Lexeme {
		r.error(s.Superclass.Name, errors.E0405, i18n.T(i18n.ErrInheritFromSelf))
	}

	r.declare(s.Name, DeclClass)
	r.define(s.Name)

	if s.Superclass != nil {
		r.currentClass = classSubclass
		r.resolveExpr(s.Superclass)

		// super 所在的作用域，slot 0
		r.beginScope()
		r.defineSynthetic("super")
		defer r.endScope()
	}

	for _, method := range s.Methods {
		if method.Kind == ast.KindStaticMethod {
			r.resolveFunction(method.Params, method.Body, funcStaticMethod)
			continue
		}

		kind := funcMethod
		if method.Name.Lexeme == "init" && method.Kind == ast.KindMethod {
			kind = funcInitializer
		}

		// this 所在的作用域，slot 0
		r.beginScope()
		r.defineSynthetic("this")
		r.resolveFunction(method.Params, method.Body, kind)
		r.endScope()
	}
}

// resolveFunction 参数和函数体共用一个作用域
func (r *Resolver) resolveFunction(params []token.Token, body []ast.Stmt, kind functionType) {
	enclosingFunction, enclosingLoop := r.currentFunction, r.inLoop
	r.currentFunction, r.inLoop = kind, false

	r.beginScope()
	for _, param := range params {
		r.declare(param, DeclParameter)
		r.define(param)
	}
	r.resolveStmts(body)
	r.endScope()

	r.currentFunction, r.inLoop = enclosingFunction, enclosingLoop
}

// ============================================================================
// 表达式
// ============================================================================

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if n := len(r.scopes); n > 0 {
			top := r.scopes[n-1]
			if slot, ok := top.index[e.Name.Lexeme]; ok && !top.defined[slot] {
				r.error(e.Name, errors.E0102, i18n.T(i18n.ErrReadInOwnInitializer))
			}
		}
		r.resolveLocal(e, e.Name, true)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name, false)

	case *ast.Binary:
		if e.Left != nil {
			r.resolveExpr(e.Left)
		}
		r.resolveExpr(e.Right)

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Ternary:
		r.resolveExpr(e.Cond)
		r.resolveExpr(e.Then)
		r.resolveExpr(e.Else)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.Grouping:
		r.resolveExpr(e.Expr)

	case *ast.Lambda:
		r.resolveFunction(e.Params, e.Body, funcFunction)

	case *ast.This:
		switch {
		case r.currentClass == classNone:
			r.error(e.Keyword, errors.E0402, i18n.T(i18n.ErrThisOutsideClass))
		case r.currentFunction == funcStaticMethod:
			r.error(e.Keyword, errors.E0403, i18n.T(i18n.ErrThisInStatic))
		default:
			r.resolveLocal(e, e.Keyword, true)
		}

	case *ast.Super:
		switch {
		case r.currentClass == classNone:
			r.error(e.Keyword, errors.E0404, i18n.T(i18n.ErrSuperOutsideClass))
		case r.currentClass != classSubclass:
			r.error(e.Keyword, errors.E0404, i18n.T(i18n.ErrSuperNoSuperclass))
		case r.currentFunction == funcStaticMethod:
			r.error(e.Keyword, errors.E0404, i18n.T(i18n.ErrSuperInStatic))
		default:
			r.resolveLocal(e, e.Keyword, true)
		}

	case *ast.Literal:
	}
}

// ============================================================================
// 作用域
// ============================================================================

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, newScope())
}

// endScope 弹出作用域，对从未读取的局部变量给出警告
func (r *Resolver) endScope() {
	s := r.scopes[len(r.scopes)-1]
	r.scopes = r.scopes[:len(r.scopes)-1]

	for slot, decl := range s.decls {
		if decl == nil || s.used[slot] {
			continue
		}
		r.report(errors.AtToken(errors.W0001, errors.LevelWarning, decl.Name,
			i18n.T(i18n.WarnUnusedLocal, decl.Name.Lexeme)))
	}
}

// declare 在当前作用域追加一个 slot；顶层声明记录为全局声明
func (r *Resolver) declare(name token.Token, kind DeclKind) {
	decl := &Declaration{Name: name, Kind: kind}
	if len(r.scopes) == 0 {
		decl.Global = true
		r.globals[name.Lexeme] = decl
		return
	}

	s := r.scopes[len(r.scopes)-1]
	if _, ok := s.index[name.Lexeme]; ok {
		r.error(name, errors.E0101, i18n.T(i18n.ErrVariableRedeclared))
	}
	s.index[name.Lexeme] = len(s.defined)
	s.defined = append(s.defined, false)
	s.used = append(s.used, false)
	s.decls = append(s.decls, decl)
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.scopes[len(r.scopes)-1]
	s.defined[s.index[name.Lexeme]] = true
}

// defineSynthetic 定义 this / super，它们不参与未使用检查
func (r *Resolver) defineSynthetic(name string) {
	s := r.scopes[len(r.scopes)-1]
	s.index[name] = len(s.defined)
	s.defined = append(s.defined, true)
	s.used = append(s.used, true)
	s.decls = append(s.decls, nil)
}

// resolveLocal 从内向外查找名字，找到则把 (distance, slot) 交给 Recorder
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token, read bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		s := r.scopes[i]
		slot, ok := s.index[name.Lexeme]
		if !ok {
			continue
		}
		if read {
			s.used[slot] = true
		}
		if r.recorder != nil {
			r.recorder.Resolve(expr, len(r.scopes)-1-i, slot)
		}
		if decl := s.decls[slot]; decl != nil {
			r.bindings = append(r.bindings, Binding{Ref: name, Decl: decl})
		}
		return
	}
	r.pending = append(r.pending, name)
}

func (r *Resolver) error(tok token.Token, code, message string) {
	r.report(errors.AtToken(code, errors.LevelError, tok, message))
}

func (r *Resolver) report(err *errors.CompileError) {
	if r.sink != nil {
		r.sink.Report(err)
	}
}
