package lsp

import (
	"encoding/json"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/token"
)

// ============================================================================
// 声明收集
// ============================================================================

// declSite 源代码中的一处声明
type declSite struct {
	Name   token.Token
	Node   ast.Node // *ast.Var / *ast.Function / *ast.Class；参数为所属的函数或 lambda
	Param  bool
	Global bool
	Class  *ast.Class // 方法所属的类
}

// collectSites 遍历整棵树收集所有声明，包括局部变量、参数和方法
// writes 是赋值表达式左侧的名字
func collectSites(stmts []ast.Stmt) (sites []declSite, writes []token.Token) {
	c := &siteCollector{}
	c.stmts(stmts)
	return c.sites, c.writes
}

type siteCollector struct {
	sites  []declSite
	writes []token.Token
	depth  int
}

func (c *siteCollector) add(site declSite) {
	site.Global = c.depth == 0 && !site.Param && site.Class == nil
	c.sites = append(c.sites, site)
}

func (c *siteCollector) stmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		c.stmt(s)
	}
}

func (c *siteCollector) stmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Var:
		c.add(declSite{Name: s.Name, Node: s})
		c.expr(s.Init)
	case *ast.Function:
		c.add(declSite{Name: s.Name, Node: s})
		c.function(s, s.Params, s.Body)
	case *ast.Class:
		c.add(declSite{Name: s.Name, Node: s})
		for _, m := range s.Methods {
			c.sites = append(c.sites, declSite{Name: m.Name, Node: m, Class: s})
			c.function(m, m.Params, m.Body)
		}
	case *ast.Block:
		c.depth++
		c.stmts(s.Stmts)
		c.depth--
	case *ast.If:
		c.expr(s.Cond)
		c.stmt(s.Then)
		if s.Else != nil {
			c.stmt(s.Else)
		}
	case *ast.While:
		c.expr(s.Cond)
		c.stmt(s.Body)
	case *ast.Expression:
		c.expr(s.Expr)
	case *ast.Print:
		c.expr(s.Expr)
	case *ast.Return:
		c.expr(s.Value)
	}
}

func (c *siteCollector) function(owner ast.Node, params []token.Token, body []ast.Stmt) {
	c.depth++
	for _, p := range params {
		c.add(declSite{Name: p, Node: owner, Param: true})
	}
	c.stmts(body)
	c.depth--
}

// expr 找出 lambda 和赋值目标
func (c *siteCollector) expr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Lambda:
		c.function(e, e.Params, e.Body)
	case *ast.Assign:
		c.writes = append(c.writes, e.Name)
		c.expr(e.Value)
	case *ast.Binary:
		c.expr(e.Left)
		c.expr(e.Right)
	case *ast.Logical:
		c.expr(e.Left)
		c.expr(e.Right)
	case *ast.Unary:
		c.expr(e.Right)
	case *ast.Ternary:
		c.expr(e.Cond)
		c.expr(e.Then)
		c.expr(e.Else)
	case *ast.Call:
		c.expr(e.Callee)
		for _, arg := range e.Args {
			c.expr(arg)
		}
	case *ast.Get:
		c.expr(e.Object)
	case *ast.Set:
		c.expr(e.Object)
		c.expr(e.Value)
	case *ast.Grouping:
		c.expr(e.Expr)
	}
}

// siteAt 返回名字覆盖 pos 的声明
func (doc *Document) siteAt(pos token.Position) (declSite, bool) {
	for _, site := range doc.sites {
		if covers(site.Name, pos) {
			return site, true
		}
	}
	return declSite{}, false
}

// siteOf 按声明 token 的位置找到声明
func (doc *Document) siteOf(name token.Token) (declSite, bool) {
	for _, site := range doc.sites {
		if site.Name.Pos == name.Pos {
			return site, true
		}
	}
	return declSite{}, false
}

func covers(tok token.Token, pos token.Position) bool {
	return tok.Pos.Line == pos.Line &&
		pos.Column >= tok.Pos.Column &&
		pos.Column < tok.Pos.Column+len(tok.Lexeme)
}

// signature 返回声明的 Lox 源代码形式
func (site declSite) signature() string {
	if site.Param {
		return "parameter " + site.Name.Lexeme
	}
	switch n := site.Node.(type) {
	case *ast.Var:
		return "var " + n.Name.Lexeme
	case *ast.Class:
		if n.Superclass != nil {
			return "class " + n.Name.Lexeme + " < " + n.Superclass.Name.Lexeme
		}
		return "class " + n.Name.Lexeme
	case *ast.Function:
		switch n.Kind {
		case ast.KindFunction:
			return "fun " + n.Name.Lexeme + paramList(n.Params)
		case ast.KindStaticMethod:
			return "class " + n.Name.Lexeme + paramList(n.Params)
		case ast.KindGetter:
			return n.Name.Lexeme
		default:
			return n.Name.Lexeme + paramList(n.Params)
		}
	}
	return site.Name.Lexeme
}

// description 声明种类的说明
func (site declSite) description() string {
	if site.Param {
		return "parameter"
	}
	scope := "local"
	if site.Global {
		scope = "global"
	}
	switch n := site.Node.(type) {
	case *ast.Var:
		return scope + " variable"
	case *ast.Class:
		return scope + " class"
	case *ast.Function:
		if site.Class != nil {
			if n.Kind == ast.KindMethod && n.Name.Lexeme == "init" {
				return "initializer of " + site.Class.Name.Lexeme
			}
			return n.Kind.String() + " of " + site.Class.Name.Lexeme
		}
		return scope + " function"
	}
	return ""
}

func paramList(params []token.Token) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// ============================================================================
// textDocument/documentSymbol
// ============================================================================

// handleDocumentSymbol 处理文档符号请求
func (s *Server) handleDocumentSymbol(id json.RawMessage, params json.RawMessage) {
	var p protocol.DocumentSymbolParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.sendError(id, codeParseError, "Parse error")
		return
	}

	doc := s.documents.Get(p.TextDocument.URI)
	if doc == nil {
		s.sendResult(id, []protocol.DocumentSymbol{})
		return
	}
	s.sendResult(id, doc.documentSymbols())
}

// documentSymbols 顶层函数、类（含方法）和全局变量
func (doc *Document) documentSymbols() []protocol.DocumentSymbol {
	symbols := make([]protocol.DocumentSymbol, 0)
	for _, stmt := range doc.Stmts {
		switch s := stmt.(type) {
		case *ast.Var:
			symbols = append(symbols, doc.symbol(s.Name, protocol.SymbolKindVariable, ""))
		case *ast.Function:
			symbols = append(symbols, doc.symbol(s.Name, protocol.SymbolKindFunction, paramList(s.Params)))
		case *ast.Class:
			detail := ""
			if s.Superclass != nil {
				detail = "< " + s.Superclass.Name.Lexeme
			}
			class := doc.symbol(s.Name, protocol.SymbolKindClass, detail)
			for _, m := range s.Methods {
				class.Children = append(class.Children, doc.methodSymbol(m))
			}
			symbols = append(symbols, class)
		}
	}
	return symbols
}

func (doc *Document) methodSymbol(m *ast.Function) protocol.DocumentSymbol {
	switch {
	case m.Kind == ast.KindGetter:
		return doc.symbol(m.Name, protocol.SymbolKindProperty, "getter")
	case m.Kind == ast.KindStaticMethod:
		return doc.symbol(m.Name, protocol.SymbolKindMethod, "class "+m.Name.Lexeme+paramList(m.Params))
	case m.Name.Lexeme == "init":
		return doc.symbol(m.Name, protocol.SymbolKindConstructor, paramList(m.Params))
	default:
		return doc.symbol(m.Name, protocol.SymbolKindMethod, paramList(m.Params))
	}
}

func (doc *Document) symbol(name token.Token, kind protocol.SymbolKind, detail string) protocol.DocumentSymbol {
	r := doc.tokenRange(name)
	return protocol.DocumentSymbol{
		Name:           name.Lexeme,
		Detail:         detail,
		Kind:           kind,
		Range:          r,
		SelectionRange: r,
	}
}
