package lsp

import (
	"encoding/json"
	"sort"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/token"
)

// handleCompletion 处理代码补全请求
func (s *Server) handleCompletion(id json.RawMessage, params json.RawMessage) {
	var p protocol.CompletionParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.sendError(id, codeParseError, "Parse error")
		return
	}

	doc := s.documents.Get(p.TextDocument.URI)
	if doc == nil {
		s.sendResult(id, []protocol.CompletionItem{})
		return
	}

	s.sendResult(id, doc.completions(doc.fromProtocol(p.Position)))
}

// completions 根据光标前的文本给出补全项
//
// "Class." 之后补全静态方法（包括继承的），其他 "." 之后补全文档中的实例成员，
// 否则补全关键字、全局声明以及光标之前声明的参数和局部变量。
func (doc *Document) completions(pos token.Position) []protocol.CompletionItem {
	prefix := ""
	if pos.Line >= 1 && pos.Line <= len(doc.Lines) {
		line := doc.Lines[pos.Line-1]
		end := pos.Column - 1
		if end > len(line) {
			end = len(line)
		}
		if end > 0 {
			prefix = line[:end]
		}
	}

	// 去掉正在输入的单词
	i := len(prefix)
	for i > 0 && isWordChar(prefix[i-1]) {
		i--
	}
	head := strings.TrimRight(prefix[:i], " \t")

	var items []protocol.CompletionItem
	if strings.HasSuffix(head, ".") {
		object := strings.TrimRight(head[:len(head)-1], " \t")
		j := len(object)
		for j > 0 && isWordChar(object[j-1]) {
			j--
		}
		if class := doc.globalClass(object[j:]); class != nil {
			items = doc.staticMembers(class)
		} else {
			items = doc.instanceMembers()
		}
	} else {
		items = doc.generalCompletions(pos)
	}

	sort.SliceStable(items, func(a, b int) bool { return items[a].Label < items[b].Label })
	return items
}

// globalClass 返回顶层声明的类
func (doc *Document) globalClass(name string) *ast.Class {
	for _, site := range doc.sites {
		if site.Global && site.Name.Lexeme == name {
			if class, ok := site.Node.(*ast.Class); ok {
				return class
			}
		}
	}
	return nil
}

// staticMembers 沿父类链收集静态方法，子类的同名方法优先
func (doc *Document) staticMembers(class *ast.Class) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	seen := make(map[string]bool)
	visited := make(map[*ast.Class]bool)
	for class != nil && !visited[class] {
		visited[class] = true
		for _, m := range class.Methods {
			if m.Kind != ast.KindStaticMethod || seen[m.Name.Lexeme] {
				continue
			}
			seen[m.Name.Lexeme] = true
			items = append(items, protocol.CompletionItem{
				Label:  m.Name.Lexeme,
				Kind:   protocol.CompletionItemKindMethod,
				Detail: "class " + m.Name.Lexeme + "(" + paramList(m.Params) + ")",
			})
		}
		if class.Superclass == nil {
			break
		}
		class = doc.globalClass(class.Superclass.Name.Lexeme)
	}
	return items
}

// instanceMembers 文档中所有类的方法和 getter
func (doc *Document) instanceMembers() []protocol.CompletionItem {
	var items []protocol.CompletionItem
	seen := make(map[string]bool)
	for _, site := range doc.sites {
		m, ok := site.Node.(*ast.Function)
		if site.Class == nil || !ok || m.Kind == ast.KindStaticMethod || m.Name.Lexeme == "init" {
			continue
		}
		if seen[m.Name.Lexeme] {
			continue
		}
		seen[m.Name.Lexeme] = true

		kind := protocol.CompletionItemKindMethod
		if m.Kind == ast.KindGetter {
			kind = protocol.CompletionItemKindProperty
		}
		items = append(items, protocol.CompletionItem{
			Label:  m.Name.Lexeme,
			Kind:   kind,
			Detail: site.signature(),
		})
	}
	return items
}

// generalCompletions 关键字和可见的声明
func (doc *Document) generalCompletions(pos token.Position) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	seen := make(map[string]bool)

	for _, kw := range token.Keywords() {
		seen[kw] = true
		items = append(items, protocol.CompletionItem{
			Label: kw,
			Kind:  protocol.CompletionItemKindKeyword,
		})
	}

	for _, site := range doc.sites {
		if site.Class != nil || seen[site.Name.Lexeme] {
			continue
		}
		// 局部变量和参数只补全光标之前声明的
		if !site.Global && site.Name.Pos.Line > pos.Line {
			continue
		}
		seen[site.Name.Lexeme] = true

		items = append(items, protocol.CompletionItem{
			Label:  site.Name.Lexeme,
			Kind:   site.completionKind(),
			Detail: site.signature(),
		})
	}
	return items
}

func (site declSite) completionKind() protocol.CompletionItemKind {
	if site.Param {
		return protocol.CompletionItemKindVariable
	}
	switch site.Node.(type) {
	case *ast.Function:
		return protocol.CompletionItemKindFunction
	case *ast.Class:
		return protocol.CompletionItemKindClass
	default:
		return protocol.CompletionItemKindVariable
	}
}
