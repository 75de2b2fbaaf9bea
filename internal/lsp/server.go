// Package lsp 实现 Lox 的语言服务器（stdio，完整文档同步）
//
// 支持诊断发布、悬停、跳转定义、查找引用、高亮、重命名、补全、文档符号和格式化。
// 所有分析复用解释器的词法、语法和静态分析阶段。
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// ServerName 和 ServerVersion 在 initialize 响应中返回
const (
	ServerName    = "loxls"
	ServerVersion = "0.1.0"
)

// JSON-RPC 错误码
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeNotInitialized = -32002
)

// Server LSP 服务器
type Server struct {
	documents *DocumentManager
	logger    *zap.Logger

	// 工作区根目录
	workspaceRoot string

	// 输入输出
	reader *bufio.Reader
	writer io.Writer
	mu     sync.Mutex

	// 服务器状态
	initialized       *atomic.Bool
	shutdownRequested *atomic.Bool
	exited            *atomic.Bool
}

// NewServer 创建 LSP 服务器，logger 为 nil 时不记录日志
func NewServer(in io.Reader, out io.Writer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		documents:         NewDocumentManager(),
		logger:            logger,
		reader:            bufio.NewReader(in),
		writer:            out,
		initialized:       atomic.NewBool(false),
		shutdownRequested: atomic.NewBool(false),
		exited:            atomic.NewBool(false),
	}
}

// Documents 返回文档管理器
func (s *Server) Documents() *DocumentManager {
	return s.documents
}

// ExitCode exit 之前收到过 shutdown 时为 0，否则为 1
func (s *Server) ExitCode() int {
	if s.shutdownRequested.Load() {
		return 0
	}
	return 1
}

// Run 启动 LSP 服务器主循环，收到 exit 或输入结束时返回
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("server started", zap.String("version", ServerVersion))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF || stderrors.Is(err, io.ErrUnexpectedEOF) {
				s.logger.Info("client disconnected")
				return nil
			}
			s.logger.Error("read message", zap.Error(err))
			continue
		}

		s.handleMessage(msg)

		if s.exited.Load() {
			s.logger.Info("server exit", zap.Int("code", s.ExitCode()))
			return nil
		}
	}
}

// readMessage 读取一条 Content-Length 分帧的消息
func (s *Server) readMessage() ([]byte, error) {
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)

		if line == "" {
			// 头部结束
			break
		}

		if strings.HasPrefix(line, "Content-Length:") {
			lengthStr := strings.TrimSpace(strings.TrimPrefix(line, "Content-Length:"))
			contentLength, err = strconv.Atoi(lengthStr)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %s", lengthStr)
			}
		}
	}

	if contentLength == 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, content); err != nil {
		return nil, err
	}

	s.logger.Debug("received", zap.Int("bytes", contentLength))
	return content, nil
}

// sendMessage 发送一条消息
func (s *Server) sendMessage(msg interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(content))
	if _, err := io.WriteString(s.writer, header); err != nil {
		return err
	}
	_, err = s.writer.Write(content)
	return err
}

// handleMessage 分发请求和通知
func (s *Server) handleMessage(msg []byte) {
	var baseMsg struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id,omitempty"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}

	if err := json.Unmarshal(msg, &baseMsg); err != nil {
		s.logger.Error("parse message", zap.Error(err))
		s.sendError(json.RawMessage("null"), codeParseError, "Parse error")
		return
	}

	isRequest := baseMsg.ID != nil
	s.logger.Debug("handle", zap.String("method", baseMsg.Method), zap.Bool("request", isRequest))

	switch baseMsg.Method {
	case "initialize":
		s.handleInitialize(baseMsg.ID, baseMsg.Params)
		return
	case "exit":
		s.handleExit()
		return
	}

	// initialize 之前只接受 exit；shutdown 之后拒绝所有请求
	if !s.initialized.Load() {
		if isRequest {
			s.sendError(baseMsg.ID, codeNotInitialized, "Server not initialized")
		}
		return
	}
	if s.shutdownRequested.Load() {
		if isRequest {
			s.sendError(baseMsg.ID, codeInvalidRequest, "Server is shutting down")
		}
		return
	}

	switch baseMsg.Method {
	case "initialized":
		s.logger.Info("client initialized")
	case "shutdown":
		s.handleShutdown(baseMsg.ID)
	case "textDocument/didOpen":
		s.handleDidOpen(baseMsg.Params)
	case "textDocument/didChange":
		s.handleDidChange(baseMsg.Params)
	case "textDocument/didClose":
		s.handleDidClose(baseMsg.Params)
	case "textDocument/didSave":
		s.handleDidSave(baseMsg.Params)
	case "textDocument/hover":
		s.handleHover(baseMsg.ID, baseMsg.Params)
	case "textDocument/definition":
		s.handleDefinition(baseMsg.ID, baseMsg.Params)
	case "textDocument/documentSymbol":
		s.handleDocumentSymbol(baseMsg.ID, baseMsg.Params)
	case "textDocument/formatting":
		s.handleFormatting(baseMsg.ID, baseMsg.Params)
	case "textDocument/references":
		s.handleReferences(baseMsg.ID, baseMsg.Params)
	case "textDocument/documentHighlight":
		s.handleDocumentHighlight(baseMsg.ID, baseMsg.Params)
	case "textDocument/rename":
		s.handleRename(baseMsg.ID, baseMsg.Params)
	case "textDocument/completion":
		s.handleCompletion(baseMsg.ID, baseMsg.Params)
	case "$/cancelRequest":
		// 请求都是同步处理的，没有可取消的
	default:
		s.logger.Debug("unhandled method", zap.String("method", baseMsg.Method))
		if isRequest {
			s.sendError(baseMsg.ID, codeMethodNotFound, "Method not found: "+baseMsg.Method)
		}
	}
}

// ============================================================================
// 生命周期
// ============================================================================

// handleInitialize 处理初始化请求
func (s *Server) handleInitialize(id json.RawMessage, params json.RawMessage) {
	var initParams protocol.InitializeParams
	if err := json.Unmarshal(params, &initParams); err != nil {
		s.sendError(id, codeParseError, "Parse error")
		return
	}

	if initParams.RootURI != "" {
		s.workspaceRoot = uriToPath(initParams.RootURI)
	}
	s.logger.Info("initialize", zap.String("workspace", s.workspaceRoot))

	result := map[string]interface{}{
		"capabilities": map[string]interface{}{
			// 文档同步：完整同步
			"textDocumentSync": map[string]interface{}{
				"openClose": true,
				"change":    1, // TextDocumentSyncKindFull
				"save": map[string]interface{}{
					"includeText": true,
				},
			},
			"hoverProvider":              true,
			"definitionProvider":         true,
			"documentSymbolProvider":     true,
			"documentFormattingProvider": true,
			"referencesProvider":         true,
			"documentHighlightProvider":  true,
			"renameProvider":             true,
			"completionProvider": map[string]interface{}{
				"triggerCharacters": []string{"."},
			},
		},
		"serverInfo": map[string]interface{}{
			"name":    ServerName,
			"version": ServerVersion,
		},
	}

	s.initialized.Store(true)
	s.sendResult(id, result)
}

// handleShutdown 处理关闭请求
func (s *Server) handleShutdown(id json.RawMessage) {
	s.logger.Info("shutdown requested")
	s.shutdownRequested.Store(true)
	s.sendResult(id, nil)
}

// handleExit 处理退出通知
func (s *Server) handleExit() {
	s.exited.Store(true)
}

// ============================================================================
// 文档同步
// ============================================================================

// handleDidOpen 处理文档打开
func (s *Server) handleDidOpen(params json.RawMessage) {
	var p protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.logger.Error("parse didOpen params", zap.Error(err))
		return
	}

	s.logger.Debug("document opened", zap.String("uri", string(p.TextDocument.URI)))
	doc := s.documents.Open(p.TextDocument.URI, p.TextDocument.Text, int32(p.TextDocument.Version))
	s.publishDiagnostics(doc)
}

// handleDidChange 处理文档变更（完整同步：最后一个变更就是完整内容）
func (s *Server) handleDidChange(params json.RawMessage) {
	var p protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.logger.Error("parse didChange params", zap.Error(err))
		return
	}
	if len(p.ContentChanges) == 0 {
		return
	}

	text := p.ContentChanges[len(p.ContentChanges)-1].Text
	doc := s.documents.Update(p.TextDocument.URI, text, int32(p.TextDocument.Version))
	if doc == nil {
		s.logger.Warn("change for unopened document", zap.String("uri", string(p.TextDocument.URI)))
		return
	}
	s.publishDiagnostics(doc)
}

// handleDidClose 处理文档关闭，并清除它的诊断
func (s *Server) handleDidClose(params json.RawMessage) {
	var p protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.logger.Error("parse didClose params", zap.Error(err))
		return
	}

	s.logger.Debug("document closed", zap.String("uri", string(p.TextDocument.URI)))
	s.documents.Close(p.TextDocument.URI)

	s.sendNotification("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         p.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
}

// handleDidSave 处理文档保存
func (s *Server) handleDidSave(params json.RawMessage) {
	var p protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.logger.Error("parse didSave params", zap.Error(err))
		return
	}

	doc := s.documents.Get(p.TextDocument.URI)
	if doc == nil {
		return
	}
	if p.Text != "" && p.Text != doc.Content {
		doc = s.documents.Update(p.TextDocument.URI, p.Text, doc.Version)
	}
	s.publishDiagnostics(doc)
}

// ============================================================================
// 输出
// ============================================================================

// sendResult 发送成功响应
func (s *Server) sendResult(id json.RawMessage, result interface{}) {
	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	s.send(response)
}

// sendError 发送错误响应
func (s *Server) sendError(id json.RawMessage, code int, message string) {
	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}
	s.send(response)
}

// sendNotification 发送通知
func (s *Server) sendNotification(method string, params interface{}) {
	notification := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}
	s.send(notification)
}

func (s *Server) send(msg interface{}) {
	if err := s.sendMessage(msg); err != nil {
		s.logger.Error("send message", zap.Error(err))
	}
}

// uriToPath 将 URI 转换为文件路径
func uriToPath(docURI protocol.DocumentURI) string {
	if !strings.HasPrefix(string(docURI), uri.FileScheme+"://") {
		return string(docURI)
	}
	return uri.URI(docURI).Filename()
}
