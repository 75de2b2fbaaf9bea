package lsp

import (
	"encoding/json"

	"go.lsp.dev/protocol"

	"github.com/tangzhangming/lox/internal/token"
)

// handleDocumentHighlight 处理文档高亮请求
func (s *Server) handleDocumentHighlight(id json.RawMessage, params json.RawMessage) {
	var p protocol.DocumentHighlightParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.sendError(id, codeParseError, "Parse error")
		return
	}

	doc := s.documents.Get(p.TextDocument.URI)
	if doc == nil {
		s.sendResult(id, []protocol.DocumentHighlight{})
		return
	}
	s.sendResult(id, doc.highlights(doc.fromProtocol(p.Position)))
}

// highlights 声明和赋值标为写，其余引用标为读
func (doc *Document) highlights(pos token.Position) []protocol.DocumentHighlight {
	highlights := []protocol.DocumentHighlight{}

	_, site, ok := doc.resolve(pos)
	if !ok {
		return highlights
	}

	for _, tok := range doc.occurrences(site, true) {
		kind := protocol.DocumentHighlightKindRead
		if tok.Pos == site.Name.Pos || doc.isWrite(tok) {
			kind = protocol.DocumentHighlightKindWrite
		}
		highlights = append(highlights, protocol.DocumentHighlight{
			Range: doc.tokenRange(tok),
			Kind:  kind,
		})
	}
	return highlights
}

func (doc *Document) isWrite(tok token.Token) bool {
	for _, w := range doc.writes {
		if w.Pos == tok.Pos {
			return true
		}
	}
	return false
}
