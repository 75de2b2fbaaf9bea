package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"

	"go.lsp.dev/protocol"

	"github.com/tangzhangming/lox/internal/token"
)

const testURI = "file:///work/main.lox"

const sample = `var greeting = "hi";
fun add(a, b) {
  return a + b;
}
class Base {}
class Point < Base {
  init(x) { this.x = x; }
  norm { return 1; }
  class origin() { return Point(0); }
}
print add(1, 2) + greeting;
{
  var local = 1;
  print local;
}
var f = fun (n) { return n; };
`

// ============================================================================
// 测试客户端
// ============================================================================

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcMessage struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Result json.RawMessage `json:"result"`
	Params json.RawMessage `json:"params"`
	Error  *rpcError       `json:"error"`
}

// client 把消息按 Content-Length 分帧写入服务器的输入
type client struct {
	in     bytes.Buffer
	nextID int
}

func (c *client) write(msg map[string]interface{}) {
	msg["jsonrpc"] = "2.0"
	body, _ := json.Marshal(msg)
	fmt.Fprintf(&c.in, "Content-Length: %d\r\n\r\n%s", len(body), body)
}

func (c *client) request(method string, params interface{}) int {
	c.nextID++
	c.write(map[string]interface{}{"id": c.nextID, "method": method, "params": params})
	return c.nextID
}

func (c *client) notify(method string, params interface{}) {
	c.write(map[string]interface{}{"method": method, "params": params})
}

func (c *client) initialize() {
	c.request("initialize", map[string]interface{}{
		"processId":    1,
		"rootUri":      "file:///work",
		"capabilities": map[string]interface{}{},
	})
	c.notify("initialized", map[string]interface{}{})
}

func (c *client) open(uri, text string) {
	c.notify("textDocument/didOpen", map[string]interface{}{
		"textDocument": map[string]interface{}{
			"uri": uri, "languageId": "lox", "version": 1, "text": text,
		},
	})
}

func docParams(uri string) map[string]interface{} {
	return map[string]interface{}{"textDocument": map[string]interface{}{"uri": uri}}
}

func positionParams(uri string, line, character int) map[string]interface{} {
	p := docParams(uri)
	p["position"] = map[string]interface{}{"line": line, "character": character}
	return p
}

// run 运行服务器直到输入耗尽，返回服务器写出的全部消息
func (c *client) run(t *testing.T) (*Server, []rpcMessage) {
	t.Helper()
	var out bytes.Buffer
	s := NewServer(&c.in, &out, nil)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return s, readMessages(t, &out)
}

func readMessages(t *testing.T, r io.Reader) []rpcMessage {
	t.Helper()
	br := bufio.NewReader(r)
	var msgs []rpcMessage
	for {
		header, err := br.ReadString('\n')
		if err == io.EOF {
			return msgs
		}
		if err != nil {
			t.Fatal(err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(header, "Content-Length:")))
		if err != nil {
			t.Fatalf("bad header %q", header)
		}
		br.ReadString('\n') // 空行
		body := make([]byte, n)
		if _, err := io.ReadFull(br, body); err != nil {
			t.Fatal(err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			t.Fatalf("bad message %s: %v", body, err)
		}
		msgs = append(msgs, msg)
	}
}

func response(t *testing.T, msgs []rpcMessage, id int) rpcMessage {
	t.Helper()
	for _, m := range msgs {
		if m.Method == "" && string(m.ID) == strconv.Itoa(id) {
			return m
		}
	}
	t.Fatalf("no response for request %d", id)
	return rpcMessage{}
}

func diagnosticsFor(t *testing.T, msgs []rpcMessage) []protocol.PublishDiagnosticsParams {
	t.Helper()
	var out []protocol.PublishDiagnosticsParams
	for _, m := range msgs {
		if m.Method != "textDocument/publishDiagnostics" {
			continue
		}
		var p protocol.PublishDiagnosticsParams
		if err := json.Unmarshal(m.Params, &p); err != nil {
			t.Fatal(err)
		}
		out = append(out, p)
	}
	return out
}

// ============================================================================
// 生命周期
// ============================================================================

func TestLifecycle(t *testing.T) {
	c := &client{}
	c.initialize()
	shutdownID := c.request("shutdown", nil)
	afterID := c.request("textDocument/hover", positionParams(testURI, 0, 0))
	c.notify("exit", nil)
	c.request("shutdown", nil) // exit 之后的消息不再处理

	s, msgs := c.run(t)

	var init struct {
		Capabilities map[string]interface{} `json:"capabilities"`
		ServerInfo   struct {
			Name string `json:"name"`
		} `json:"serverInfo"`
	}
	if err := json.Unmarshal(response(t, msgs, 1).Result, &init); err != nil {
		t.Fatal(err)
	}
	if init.ServerInfo.Name != ServerName {
		t.Errorf("server name = %q", init.ServerInfo.Name)
	}
	for _, capability := range []string{"hoverProvider", "definitionProvider", "documentSymbolProvider", "documentFormattingProvider", "referencesProvider", "documentHighlightProvider", "renameProvider"} {
		if init.Capabilities[capability] != true {
			t.Errorf("capability %s = %v", capability, init.Capabilities[capability])
		}
	}

	if r := response(t, msgs, shutdownID); r.Error != nil || string(r.Result) != "null" {
		t.Errorf("shutdown response = %+v", r)
	}
	if r := response(t, msgs, afterID); r.Error == nil || r.Error.Code != codeInvalidRequest {
		t.Errorf("request after shutdown = %+v", r)
	}
	if len(msgs) != 3 {
		t.Errorf("got %d messages, want 3", len(msgs))
	}
	if s.ExitCode() != 0 {
		t.Errorf("ExitCode = %d", s.ExitCode())
	}
}

func TestRequestBeforeInitialize(t *testing.T) {
	c := &client{}
	id := c.request("textDocument/hover", positionParams(testURI, 0, 0))
	c.open(testURI, "print 1;")
	c.notify("exit", nil)

	s, msgs := c.run(t)

	if r := response(t, msgs, id); r.Error == nil || r.Error.Code != codeNotInitialized {
		t.Errorf("response = %+v", r)
	}
	if len(diagnosticsFor(t, msgs)) != 0 {
		t.Error("notification before initialize was handled")
	}
	if s.Documents().Len() != 0 {
		t.Error("document opened before initialize")
	}
	if s.ExitCode() != 1 {
		t.Errorf("ExitCode = %d, want 1 without shutdown", s.ExitCode())
	}
}

func TestUnknownMethod(t *testing.T) {
	c := &client{}
	c.initialize()
	id := c.request("textDocument/rename", docParams(testURI))
	c.notify("workspace/didChangeConfiguration", map[string]interface{}{})

	_, msgs := c.run(t)

	if r := response(t, msgs, id); r.Error == nil || r.Error.Code != codeMethodNotFound {
		t.Errorf("response = %+v", r)
	}
	if len(msgs) != 2 {
		t.Errorf("got %d messages, want 2", len(msgs))
	}
}

// ============================================================================
// 诊断
// ============================================================================

func TestPublishDiagnostics(t *testing.T) {
	c := &client{}
	c.initialize()
	c.open(testURI, "print ;")
	c.open("file:///work/warn.lox", "{ var a = 1; }")
	c.notify("textDocument/didChange", map[string]interface{}{
		"textDocument":   map[string]interface{}{"uri": testURI, "version": 2},
		"contentChanges": []interface{}{map[string]interface{}{"text": "print 1;"}},
	})
	c.notify("textDocument/didClose", docParams("file:///work/warn.lox"))

	s, msgs := c.run(t)
	published := diagnosticsFor(t, msgs)
	if len(published) != 4 {
		t.Fatalf("published %d times, want 4", len(published))
	}

	syntax := published[0]
	if len(syntax.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v", syntax.Diagnostics)
	}
	d := syntax.Diagnostics[0]
	if d.Message != "Expect expression." || d.Code != "E0001" || d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Range.Start.Line != 0 || d.Range.Start.Character != 6 || d.Range.End.Character != 7 {
		t.Errorf("range = %+v", d.Range)
	}

	warn := published[1]
	if len(warn.Diagnostics) != 1 || warn.Diagnostics[0].Severity != protocol.DiagnosticSeverityWarning ||
		warn.Diagnostics[0].Code != "W0001" {
		t.Errorf("warning diagnostics = %+v", warn.Diagnostics)
	}

	if changed := published[2]; string(changed.URI) != testURI || len(changed.Diagnostics) != 0 || changed.Version != 2 {
		t.Errorf("after change = %+v", changed)
	}
	if closed := published[3]; string(closed.URI) != "file:///work/warn.lox" || len(closed.Diagnostics) != 0 {
		t.Errorf("after close = %+v", closed)
	}
	if s.Documents().Len() != 1 {
		t.Errorf("open documents = %d", s.Documents().Len())
	}
}

func TestDocumentErr(t *testing.T) {
	doc := newDocument(testURI, "print ;\nvar 1;", 1)
	err := doc.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "[line 1]") || !strings.Contains(err.Error(), "[line 2]") {
		t.Errorf("Err() = %v", err)
	}

	if err := newDocument(testURI, "{ var a = 1; }", 1).Err(); err != nil {
		t.Errorf("warnings reported as errors: %v", err)
	}
}

// ============================================================================
// 悬停和跳转
// ============================================================================

func TestHover(t *testing.T) {
	doc := newDocument(testURI, sample, 1)
	if err := doc.Err(); err != nil {
		t.Fatalf("sample has errors: %v", err)
	}

	tests := []struct {
		name      string
		line, col int
		signature string
		desc      string
	}{
		{"function reference", 11, 7, "fun add(a, b)", "global function"},
		{"function declaration", 2, 5, "fun add(a, b)", "global function"},
		{"parameter", 3, 10, "parameter a", "parameter"},
		{"superclass", 6, 15, "class Base", "global class"},
		{"initializer", 7, 3, "init(x)", "initializer of Point"},
		{"getter", 8, 3, "norm", "getter of Point"},
		{"static method", 9, 9, "class origin()", "static method of Point"},
		{"global variable", 1, 5, "var greeting", "global variable"},
		{"local variable", 14, 9, "var local", "local variable"},
		{"lambda parameter", 16, 26, "parameter n", "parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hover := doc.hover(token.Position{Line: tt.line, Column: tt.col})
			if hover == nil {
				t.Fatal("no hover")
			}
			want := "```lox\n" + tt.signature + "\n```\n" + tt.desc
			if hover.Contents.Value != want {
				t.Errorf("hover = %q, want %q", hover.Contents.Value, want)
			}
		})
	}

	if hover := doc.hover(token.Position{Line: 11, Column: 1}); hover != nil {
		t.Errorf("hover on keyword = %+v", hover)
	}
}

func TestHoverAndDefinitionRequests(t *testing.T) {
	c := &client{}
	c.initialize()
	c.open(testURI, sample)
	hoverID := c.request("textDocument/hover", positionParams(testURI, 10, 7))
	defID := c.request("textDocument/definition", positionParams(testURI, 10, 7))
	missID := c.request("textDocument/definition", positionParams(testURI, 10, 0))
	unknownID := c.request("textDocument/definition", positionParams("file:///work/other.lox", 0, 0))

	_, msgs := c.run(t)

	var hover protocol.Hover
	if err := json.Unmarshal(response(t, msgs, hoverID).Result, &hover); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(hover.Contents.Value, "fun add(a, b)") {
		t.Errorf("hover = %q", hover.Contents.Value)
	}
	if hover.Range == nil || hover.Range.Start.Line != 10 || hover.Range.Start.Character != 6 || hover.Range.End.Character != 9 {
		t.Errorf("hover range = %+v", hover.Range)
	}

	var locations []protocol.Location
	if err := json.Unmarshal(response(t, msgs, defID).Result, &locations); err != nil {
		t.Fatal(err)
	}
	if len(locations) != 1 {
		t.Fatalf("locations = %+v", locations)
	}
	loc := locations[0]
	if string(loc.URI) != testURI || loc.Range.Start.Line != 1 || loc.Range.Start.Character != 4 || loc.Range.End.Character != 7 {
		t.Errorf("location = %+v", loc)
	}

	if r := response(t, msgs, missID); string(r.Result) != "null" {
		t.Errorf("definition on keyword = %s", r.Result)
	}
	if r := response(t, msgs, unknownID); string(r.Result) != "null" {
		t.Errorf("definition in unknown document = %s", r.Result)
	}
}

func TestDefinitionOfLocalAndParameter(t *testing.T) {
	doc := newDocument(testURI, sample, 1)

	tests := []struct {
		line, col  int
		wantLine   int
		wantColumn int
	}{
		{14, 9, 13, 7},   // local -> var local
		{3, 14, 2, 12},   // b -> parameter b
		{16, 26, 16, 14}, // n -> lambda parameter
		{9, 27, 6, 7},    // Point inside static method -> class Point
	}

	for _, tt := range tests {
		ref, site, ok := doc.resolve(token.Position{Line: tt.line, Column: tt.col})
		if !ok {
			t.Errorf("%d:%d not resolved", tt.line, tt.col)
			continue
		}
		if site.Name.Pos.Line != tt.wantLine || site.Name.Pos.Column != tt.wantColumn {
			t.Errorf("%d:%d (%s) -> %s, want %d:%d", tt.line, tt.col, ref.Lexeme, site.Name.Pos, tt.wantLine, tt.wantColumn)
		}
	}
}

// ============================================================================
// 文档符号
// ============================================================================

func TestDocumentSymbols(t *testing.T) {
	c := &client{}
	c.initialize()
	c.open(testURI, sample)
	id := c.request("textDocument/documentSymbol", docParams(testURI))

	_, msgs := c.run(t)

	var symbols []protocol.DocumentSymbol
	if err := json.Unmarshal(response(t, msgs, id).Result, &symbols); err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, sym := range symbols {
		names = append(names, sym.Name)
	}
	if got := strings.Join(names, ","); got != "greeting,add,Base,Point,f" {
		t.Fatalf("symbols = %s", got)
	}

	if symbols[1].Kind != protocol.SymbolKindFunction || symbols[1].Detail != "(a, b)" {
		t.Errorf("add = %+v", symbols[1])
	}

	point := symbols[3]
	if point.Kind != protocol.SymbolKindClass || point.Detail != "< Base" {
		t.Errorf("Point = %+v", point)
	}
	wantChildren := []struct {
		name string
		kind protocol.SymbolKind
	}{
		{"init", protocol.SymbolKindConstructor},
		{"norm", protocol.SymbolKindProperty},
		{"origin", protocol.SymbolKindMethod},
	}
	if len(point.Children) != len(wantChildren) {
		t.Fatalf("children = %+v", point.Children)
	}
	for i, want := range wantChildren {
		if point.Children[i].Name != want.name || point.Children[i].Kind != want.kind {
			t.Errorf("child %d = %+v", i, point.Children[i])
		}
	}
	if point.Children[0].SelectionRange.Start.Line != 6 || point.Children[0].SelectionRange.Start.Character != 2 {
		t.Errorf("init range = %+v", point.Children[0].SelectionRange)
	}
}

// ============================================================================
// 格式化
// ============================================================================

func TestFormatting(t *testing.T) {
	c := &client{}
	c.initialize()
	c.open("file:///work/messy.lox", "print 1+2;\nif(true){print 3;}")
	c.open("file:///work/clean.lox", "print 1;\n")
	c.open("file:///work/broken.lox", "print ;")
	options := map[string]interface{}{"tabSize": 2, "insertSpaces": true}
	messyID := c.request("textDocument/formatting", map[string]interface{}{
		"textDocument": map[string]interface{}{"uri": "file:///work/messy.lox"}, "options": options,
	})
	cleanID := c.request("textDocument/formatting", map[string]interface{}{
		"textDocument": map[string]interface{}{"uri": "file:///work/clean.lox"}, "options": options,
	})
	brokenID := c.request("textDocument/formatting", map[string]interface{}{
		"textDocument": map[string]interface{}{"uri": "file:///work/broken.lox"}, "options": options,
	})

	_, msgs := c.run(t)

	var edits []protocol.TextEdit
	if err := json.Unmarshal(response(t, msgs, messyID).Result, &edits); err != nil {
		t.Fatal(err)
	}
	if len(edits) != 1 {
		t.Fatalf("edits = %+v", edits)
	}
	if edits[0].NewText != "print 1 + 2;\nif (true) {\n  print 3;\n}\n" {
		t.Errorf("NewText = %q", edits[0].NewText)
	}
	if r := edits[0].Range; r.Start.Line != 0 || r.Start.Character != 0 || r.End.Line != 1 || r.End.Character != 18 {
		t.Errorf("range = %+v", r)
	}

	for _, id := range []int{cleanID, brokenID} {
		if r := response(t, msgs, id); string(r.Result) != "[]" {
			t.Errorf("request %d result = %s", id, r.Result)
		}
	}
}

// ============================================================================
// 位置转换
// ============================================================================

func TestPositionConversion(t *testing.T) {
	doc := newDocument(testURI, "var s = \"héllo\"; var t = 1;\r\nprint t;", 1)

	// é 占两个字节、一个 UTF-16 码元
	if p := doc.toProtocol(1, 19); p.Line != 0 || p.Character != 17 {
		t.Errorf("toProtocol = %+v", p)
	}
	if pos := doc.fromProtocol(protocol.Position{Line: 0, Character: 17}); pos.Line != 1 || pos.Column != 19 {
		t.Errorf("fromProtocol = %+v", pos)
	}
	// 超出行尾
	if pos := doc.fromProtocol(protocol.Position{Line: 1, Character: 99}); pos.Column != len("print t;")+1 {
		t.Errorf("fromProtocol past end = %+v", pos)
	}
	if doc.Lines[0] != "var s = \"héllo\"; var t = 1;" {
		t.Errorf("carriage return kept: %q", doc.Lines[0])
	}
	if r := doc.fullRange(); r.End.Line != 1 || r.End.Character != 8 {
		t.Errorf("fullRange = %+v", r)
	}
}

func TestURIToPath(t *testing.T) {
	if got := uriToPath("file:///work/main.lox"); got != "/work/main.lox" {
		t.Errorf("uriToPath = %q", got)
	}
	if got := uriToPath("untitled:Untitled-1"); got != "untitled:Untitled-1" {
		t.Errorf("uriToPath = %q", got)
	}
}

// ============================================================================
// 引用、高亮、重命名与补全
// ============================================================================

func TestOccurrences(t *testing.T) {
	doc := newDocument(testURI, sample, 1)

	tests := []struct {
		name      string
		line, col int
		want      []token.Position
	}{
		{"global variable", 11, 19, []token.Position{{Line: 1, Column: 5}, {Line: 11, Column: 19}}},
		{"parameter", 2, 9, []token.Position{{Line: 2, Column: 9}, {Line: 3, Column: 10}}},
		{"class", 6, 7, []token.Position{{Line: 6, Column: 7}, {Line: 9, Column: 27}}},
		{"local", 13, 7, []token.Position{{Line: 13, Column: 7}, {Line: 14, Column: 9}}},
		{"method", 8, 3, []token.Position{{Line: 8, Column: 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, site, ok := doc.resolve(token.Position{Line: tt.line, Column: tt.col})
			if !ok {
				t.Fatal("not resolved")
			}
			toks := doc.occurrences(site, true)
			if len(toks) != len(tt.want) {
				t.Fatalf("occurrences = %d, want %d", len(toks), len(tt.want))
			}
			for i, tok := range toks {
				if tok.Pos.Line != tt.want[i].Line || tok.Pos.Column != tt.want[i].Column {
					t.Errorf("occurrence %d at %s, want %d:%d", i, tok.Pos, tt.want[i].Line, tt.want[i].Column)
				}
			}

			if without := doc.occurrences(site, false); len(without) != len(tt.want)-1 {
				t.Errorf("without declaration = %d, want %d", len(without), len(tt.want)-1)
			}
		})
	}
}

func TestReferencesRequest(t *testing.T) {
	c := &client{}
	c.initialize()
	c.open(testURI, sample)
	params := positionParams(testURI, 0, 5)
	params["context"] = map[string]interface{}{"includeDeclaration": false}
	id := c.request("textDocument/references", params)

	_, msgs := c.run(t)

	var locations []protocol.Location
	if err := json.Unmarshal(response(t, msgs, id).Result, &locations); err != nil {
		t.Fatal(err)
	}
	if len(locations) != 1 {
		t.Fatalf("locations = %+v", locations)
	}
	if r := locations[0].Range; r.Start.Line != 10 || r.Start.Character != 18 || r.End.Character != 26 {
		t.Errorf("range = %+v", r)
	}
}

func TestDocumentHighlight(t *testing.T) {
	doc := newDocument(testURI, "var x = 1;\nx = 2;\nprint x;\n", 1)

	highlights := doc.highlights(token.Position{Line: 3, Column: 7})
	want := []struct {
		line uint32
		kind protocol.DocumentHighlightKind
	}{
		{0, protocol.DocumentHighlightKindWrite},
		{1, protocol.DocumentHighlightKindWrite},
		{2, protocol.DocumentHighlightKindRead},
	}
	if len(highlights) != len(want) {
		t.Fatalf("highlights = %+v", highlights)
	}
	for i, h := range highlights {
		if h.Range.Start.Line != want[i].line || h.Kind != want[i].kind {
			t.Errorf("highlight %d = %+v, want line %d kind %v", i, h, want[i].line, want[i].kind)
		}
	}

	if got := doc.highlights(token.Position{Line: 3, Column: 1}); len(got) != 0 {
		t.Errorf("highlights on keyword = %+v", got)
	}
}

func TestRename(t *testing.T) {
	doc := newDocument(testURI, sample, 1)

	edit, err := doc.rename(token.Position{Line: 3, Column: 10}, "first")
	if err != nil {
		t.Fatal(err)
	}
	edits := edit.Changes[testURI]
	if len(edits) != 2 {
		t.Fatalf("edits = %+v", edits)
	}
	if edits[0].Range.Start.Line != 1 || edits[0].Range.Start.Character != 8 ||
		edits[1].Range.Start.Line != 2 || edits[1].Range.Start.Character != 9 {
		t.Errorf("edits = %+v", edits)
	}
	for _, e := range edits {
		if e.NewText != "first" {
			t.Errorf("NewText = %q", e.NewText)
		}
	}

	failures := []struct {
		name      string
		line, col int
		newName   string
	}{
		{"keyword", 3, 10, "class"},
		{"not an identifier", 3, 10, "1x"},
		{"method", 8, 3, "length"},
		{"nothing", 11, 1, "y"},
	}
	for _, tt := range failures {
		if _, err := doc.rename(token.Position{Line: tt.line, Column: tt.col}, tt.newName); err == nil {
			t.Errorf("%s: rename succeeded", tt.name)
		}
	}
}

func TestRenameRequestError(t *testing.T) {
	c := &client{}
	c.initialize()
	c.open(testURI, sample)
	params := positionParams(testURI, 0, 5)
	params["newName"] = "while"
	id := c.request("textDocument/rename", params)

	_, msgs := c.run(t)

	r := response(t, msgs, id)
	if r.Error == nil || r.Error.Code != codeInvalidParams {
		t.Errorf("response = %+v", r)
	}
}

func labels(items []protocol.CompletionItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Label)
	}
	return out
}

func hasLabel(items []protocol.CompletionItem, label string) bool {
	for _, item := range items {
		if item.Label == label {
			return true
		}
	}
	return false
}

func TestCompletions(t *testing.T) {
	doc := newDocument(testURI, sample, 1)

	inBlock := doc.completions(token.Position{Line: 14, Column: 9})
	for _, want := range []string{"local", "greeting", "add", "Point", "print", "while"} {
		if !hasLabel(inBlock, want) {
			t.Errorf("missing %q in %v", want, labels(inBlock))
		}
	}
	for _, unwanted := range []string{"norm", "origin", "n"} {
		if hasLabel(inBlock, unwanted) {
			t.Errorf("unexpected %q", unwanted)
		}
	}

	early := doc.completions(token.Position{Line: 4, Column: 1})
	if hasLabel(early, "local") {
		t.Error("local declared later is offered")
	}
}

func TestMemberCompletions(t *testing.T) {
	src := "class A { m() {} size { return 1; } init() {} class make() {} }\n" +
		"class B < A { class build() {} }\n" +
		"var a = A();\n" +
		"B.\n" +
		"a.\n"
	doc := newDocument(testURI, src, 1)

	static := labels(doc.completions(token.Position{Line: 4, Column: 3}))
	if strings.Join(static, ",") != "build,make" {
		t.Errorf("static members = %v", static)
	}

	instance := doc.completions(token.Position{Line: 5, Column: 3})
	if got := strings.Join(labels(instance), ","); got != "m,size" {
		t.Errorf("instance members = %v", got)
	}
	if instance[1].Kind != protocol.CompletionItemKindProperty {
		t.Errorf("getter kind = %v", instance[1].Kind)
	}
}
