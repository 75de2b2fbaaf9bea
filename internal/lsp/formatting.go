package lsp

import (
	"encoding/json"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/tangzhangming/lox/internal/formatter"
)

// handleFormatting 处理文档格式化请求
func (s *Server) handleFormatting(id json.RawMessage, params json.RawMessage) {
	var p protocol.DocumentFormattingParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.sendError(id, codeParseError, "Parse error")
		return
	}

	doc := s.documents.Get(p.TextDocument.URI)
	if doc == nil {
		s.sendResult(id, []protocol.TextEdit{})
		return
	}

	// 从 LSP 选项转换
	options := formatter.DefaultOptions()
	if p.Options.TabSize > 0 {
		options.IndentSize = int(p.Options.TabSize)
	}
	if p.Options.InsertSpaces {
		options.IndentStyle = "spaces"
	} else {
		options.IndentStyle = "tabs"
	}

	formatted, err := formatter.Format(doc.Content, uriToPath(doc.URI), options)
	if err != nil {
		// 存在语法错误时不格式化
		s.logger.Debug("format refused", zap.String("uri", string(doc.URI)), zap.Error(err))
		s.sendResult(id, []protocol.TextEdit{})
		return
	}

	if formatted == doc.Content {
		s.sendResult(id, []protocol.TextEdit{})
		return
	}

	s.sendResult(id, []protocol.TextEdit{{
		Range:   doc.fullRange(),
		NewText: formatted,
	}})
}
