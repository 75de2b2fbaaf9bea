package lsp

import (
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"go.lsp.dev/protocol"
	"go.uber.org/multierr"

	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/lexer"
	"github.com/tangzhangming/lox/internal/parser"
	"github.com/tangzhangming/lox/internal/resolver"
	"github.com/tangzhangming/lox/internal/token"
)

// maxDocumentSize 超过该大小的文档不做分析
const maxDocumentSize = 500 * 1024

// Document 表示一个打开的文档
type Document struct {
	URI     protocol.DocumentURI
	Content string
	Version int32
	Lines   []string // 按行分割的内容

	// 分析结果
	Stmts       []ast.Stmt
	Diagnostics []*errors.CompileError
	resolver    *resolver.Resolver // 存在语法错误时为 nil
	sites       []declSite
	writes      []token.Token
}

// DocumentManager 文档管理器
type DocumentManager struct {
	documents map[protocol.DocumentURI]*Document
	mu        sync.RWMutex
}

// NewDocumentManager 创建文档管理器
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		documents: make(map[protocol.DocumentURI]*Document),
	}
}

// Open 打开文档并立即分析
func (dm *DocumentManager) Open(uri protocol.DocumentURI, content string, version int32) *Document {
	doc := newDocument(uri, content, version)

	dm.mu.Lock()
	dm.documents[uri] = doc
	dm.mu.Unlock()
	return doc
}

// Update 用完整内容替换文档，文档未打开时返回 nil
func (dm *DocumentManager) Update(uri protocol.DocumentURI, content string, version int32) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if _, ok := dm.documents[uri]; !ok {
		return nil
	}
	doc := newDocument(uri, content, version)
	dm.documents[uri] = doc
	return doc
}

// Close 关闭文档
func (dm *DocumentManager) Close(uri protocol.DocumentURI) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.documents, uri)
}

// Get 获取文档
func (dm *DocumentManager) Get(uri protocol.DocumentURI) *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.documents[uri]
}

// Len 打开的文档数
func (dm *DocumentManager) Len() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.documents)
}

func newDocument(uri protocol.DocumentURI, content string, version int32) *Document {
	doc := &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Lines:   splitLines(content),
	}
	doc.analyze()
	return doc
}

// analyze 做词法、语法和静态分析，收集诊断和声明
func (doc *Document) analyze() {
	if len(doc.Content) > maxDocumentSize {
		doc.Diagnostics = []*errors.CompileError{{
			Code:    errors.E0001,
			Level:   errors.LevelError,
			Message: "document too large to analyze",
			Line:    1,
			Column:  1,
			Length:  1,
		}}
		return
	}

	sink := &errors.Collector{}
	tokens := lexer.New(doc.Content, sink).ScanTokens()
	doc.Stmts = parser.New(tokens, sink).Parse()

	// 与运行时一致：语法错误时不做静态分析
	if !sink.HadError() {
		doc.resolver = resolver.New(nil, sink)
		doc.resolver.Resolve(doc.Stmts)
	}

	doc.Diagnostics = sink.Diagnostics
	doc.sites, doc.writes = collectSites(doc.Stmts)
}

// Err 合并文档中所有 critical 诊断
func (doc *Document) Err() error {
	var err error
	for _, d := range doc.Diagnostics {
		if d.Critical() {
			err = multierr.Append(err, d)
		}
	}
	return err
}

// ============================================================================
// 位置转换
// ============================================================================

// LSP 位置从 0 开始、列按 UTF-16 码元计；token 位置从 1 开始、列按字节计

// toProtocol 把 token 的行列转换为 LSP 位置
func (doc *Document) toProtocol(line, column int) protocol.Position {
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}
	pos := protocol.Position{Line: uint32(line - 1)}
	if line-1 >= len(doc.Lines) {
		return pos
	}

	text := doc.Lines[line-1]
	end := column - 1
	if end > len(text) {
		end = len(text)
	}
	pos.Character = uint32(utf16Len(text[:end]))
	return pos
}

// fromProtocol 把 LSP 位置转换为 token 位置（只填行和列）
func (doc *Document) fromProtocol(p protocol.Position) token.Position {
	pos := token.Position{Line: int(p.Line) + 1, Column: 1}
	if int(p.Line) >= len(doc.Lines) {
		return pos
	}

	text := doc.Lines[p.Line]
	units := 0
	for i, r := range text {
		if units >= int(p.Character) {
			pos.Column = i + 1
			return pos
		}
		units += runeUnits(r)
	}
	pos.Column = len(text) + 1
	return pos
}

// tokenRange 返回 token 覆盖的范围
func (doc *Document) tokenRange(tok token.Token) protocol.Range {
	end := tok.End()
	return protocol.Range{
		Start: doc.toProtocol(tok.Pos.Line, tok.Pos.Column),
		End:   doc.toProtocol(end.Line, end.Column),
	}
}

// fullRange 返回整个文档的范围
func (doc *Document) fullRange() protocol.Range {
	last := len(doc.Lines) - 1
	return protocol.Range{
		End: protocol.Position{
			Line:      uint32(last),
			Character: uint32(utf16Len(doc.Lines[last])),
		},
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) int {
	if r == utf8.RuneError {
		return 1
	}
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

// splitLines 按行分割，去掉行尾的 \r
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
