package lsp

import (
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/tangzhangming/lox/internal/errors"
)

// publishDiagnostics 发布文档的诊断信息
func (s *Server) publishDiagnostics(doc *Document) {
	diagnostics := doc.protocolDiagnostics()

	if err := doc.Err(); err != nil {
		s.logger.Debug("document has errors",
			zap.String("uri", string(doc.URI)),
			zap.Int("count", len(diagnostics)),
			zap.Error(err))
	}

	s.sendNotification("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     uint32(doc.Version),
		Diagnostics: diagnostics,
	})
}

// protocolDiagnostics 把静态诊断转换为 LSP 诊断
func (doc *Document) protocolDiagnostics() []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(doc.Diagnostics))
	for _, d := range doc.Diagnostics {
		diagnostics = append(diagnostics, doc.toDiagnostic(d))
	}
	return diagnostics
}

func (doc *Document) toDiagnostic(d *errors.CompileError) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if d.Level == errors.LevelWarning {
		severity = protocol.DiagnosticSeverityWarning
	}

	length := d.Length
	if length < 1 {
		length = 1
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: doc.toProtocol(d.Line, d.Column),
			End:   doc.toProtocol(d.Line, d.Column+length),
		},
		Severity: severity,
		Code:     d.Code,
		Source:   "lox",
		Message:  d.Message,
	}
}
