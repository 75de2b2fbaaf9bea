package lsp

import (
	"encoding/json"
	"fmt"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/tangzhangming/lox/internal/token"
)

// handleRename 处理重命名请求
func (s *Server) handleRename(id json.RawMessage, params json.RawMessage) {
	var p protocol.RenameParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.sendError(id, codeParseError, "Parse error")
		return
	}

	doc := s.documents.Get(p.TextDocument.URI)
	if doc == nil {
		s.sendError(id, codeInvalidParams, "Document not found")
		return
	}

	edit, err := doc.rename(doc.fromProtocol(p.Position), p.NewName)
	if err != nil {
		s.logger.Debug("rename refused", zap.Error(err))
		s.sendError(id, codeInvalidParams, err.Error())
		return
	}
	s.sendResult(id, edit)
}

// rename 生成把位置上的声明及其所有引用改名的编辑
func (doc *Document) rename(pos token.Position, newName string) (*protocol.WorkspaceEdit, error) {
	if !isValidIdentifier(newName) {
		return nil, fmt.Errorf("invalid new name %q", newName)
	}

	_, site, ok := doc.resolve(pos)
	if !ok {
		return nil, fmt.Errorf("no symbol at position")
	}
	// 方法通过属性访问动态查找，无法找到全部调用点
	if site.Class != nil {
		return nil, fmt.Errorf("cannot rename method %q", site.Name.Lexeme)
	}

	edits := []protocol.TextEdit{}
	for _, tok := range doc.occurrences(site, true) {
		edits = append(edits, protocol.TextEdit{
			Range:   doc.tokenRange(tok),
			NewText: newName,
		})
	}
	return &protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentURI][]protocol.TextEdit{doc.URI: edits},
	}, nil
}

// isValidIdentifier 验证标识符是否有效
func isValidIdentifier(name string) bool {
	if name == "" {
		return false
	}

	first := name[0]
	if !((first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') || first == '_') {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isWordChar(name[i]) {
			return false
		}
	}

	return token.LookupIdent(name) == token.IDENTIFIER
}

func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}
