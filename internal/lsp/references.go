package lsp

import (
	"encoding/json"
	"sort"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/tangzhangming/lox/internal/token"
)

// handleReferences 处理查找引用请求
func (s *Server) handleReferences(id json.RawMessage, params json.RawMessage) {
	var p protocol.ReferenceParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.sendError(id, codeParseError, "Parse error")
		return
	}

	doc := s.documents.Get(p.TextDocument.URI)
	if doc == nil {
		s.sendResult(id, []protocol.Location{})
		return
	}

	_, site, ok := doc.resolve(doc.fromProtocol(p.Position))
	if !ok {
		s.sendResult(id, []protocol.Location{})
		return
	}

	locations := []protocol.Location{}
	for _, tok := range doc.occurrences(site, p.Context.IncludeDeclaration) {
		locations = append(locations, protocol.Location{
			URI:   doc.URI,
			Range: doc.tokenRange(tok),
		})
	}
	s.logger.Debug("references",
		zap.String("name", site.Name.Lexeme),
		zap.Int("count", len(locations)))
	s.sendResult(id, locations)
}

// occurrences 返回声明的所有引用，按源代码顺序排列
//
// 引用来自静态分析的绑定，因此同名但属于其他作用域的名字不会混入。
// 方法只能通过属性访问调用，没有静态绑定，只返回声明本身。
func (doc *Document) occurrences(site declSite, includeDeclaration bool) []token.Token {
	var toks []token.Token
	if includeDeclaration {
		toks = append(toks, site.Name)
	}
	if doc.resolver != nil {
		for _, b := range doc.resolver.Bindings() {
			if b.Decl.Name.Pos == site.Name.Pos && b.Ref.Pos != site.Name.Pos {
				toks = append(toks, b.Ref)
			}
		}
	}

	sort.SliceStable(toks, func(i, j int) bool {
		a, b := toks[i].Pos, toks[j].Pos
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return toks
}
