package lsp

import (
	"encoding/json"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/tangzhangming/lox/internal/token"
)

// handleHover 处理悬停请求
func (s *Server) handleHover(id json.RawMessage, params json.RawMessage) {
	var p protocol.HoverParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.sendError(id, codeParseError, "Parse error")
		return
	}

	doc := s.documents.Get(p.TextDocument.URI)
	if doc == nil {
		s.sendResult(id, nil)
		return
	}

	hover := doc.hover(doc.fromProtocol(p.Position))
	if hover == nil {
		s.logger.Debug("hover: nothing at position",
			zap.String("uri", string(p.TextDocument.URI)),
			zap.Uint32("line", p.Position.Line),
			zap.Uint32("character", p.Position.Character))
		s.sendResult(id, nil)
		return
	}
	s.sendResult(id, hover)
}

// hover 位置上是声明或引用时返回声明的签名和种类
func (doc *Document) hover(pos token.Position) *protocol.Hover {
	ref, site, ok := doc.resolve(pos)
	if !ok {
		return nil
	}

	r := doc.tokenRange(ref)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: "```lox\n" + site.signature() + "\n```\n" + site.description(),
		},
		Range: &r,
	}
}

// resolve 找到位置上的 token 以及它指向的声明
//
// 声明自身的名字直接命中；引用通过静态分析的绑定找到声明。
func (doc *Document) resolve(pos token.Position) (token.Token, declSite, bool) {
	if site, ok := doc.siteAt(pos); ok {
		return site.Name, site, true
	}
	if doc.resolver == nil {
		return token.Token{}, declSite{}, false
	}
	for _, b := range doc.resolver.Bindings() {
		if !covers(b.Ref, pos) {
			continue
		}
		if site, ok := doc.siteOf(b.Decl.Name); ok {
			return b.Ref, site, true
		}
	}
	return token.Token{}, declSite{}, false
}
