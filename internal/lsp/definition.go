package lsp

import (
	"encoding/json"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// handleDefinition 处理跳转定义请求
func (s *Server) handleDefinition(id json.RawMessage, params json.RawMessage) {
	var p protocol.DefinitionParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.sendError(id, codeParseError, "Parse error")
		return
	}

	doc := s.documents.Get(p.TextDocument.URI)
	if doc == nil {
		s.sendResult(id, nil)
		return
	}

	_, site, ok := doc.resolve(doc.fromProtocol(p.Position))
	if !ok {
		s.logger.Debug("definition not found",
			zap.String("uri", string(p.TextDocument.URI)),
			zap.Uint32("line", p.Position.Line))
		s.sendResult(id, nil)
		return
	}

	location := protocol.Location{
		URI:   doc.URI,
		Range: doc.tokenRange(site.Name),
	}
	s.logger.Debug("definition found",
		zap.String("name", site.Name.Lexeme),
		zap.Int("line", site.Name.Pos.Line))
	s.sendResult(id, []protocol.Location{location})
}
