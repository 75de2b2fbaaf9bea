package repl

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tangzhangming/lox/internal/runtime"
)

// scriptReader 按顺序返回预设的输入行，读完后返回 io.EOF
type scriptReader struct {
	lines   []string
	prompts []string
	history []string
}

func (s *scriptReader) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptReader) AppendHistory(item string) {
	s.history = append(s.history, item)
}

type session struct {
	repl   *REPL
	reader *scriptReader
	out    bytes.Buffer // print 输出
	errOut bytes.Buffer // 诊断
	msgs   bytes.Buffer // REPL 自身的输出
}

func runSession(t *testing.T, lines ...string) *session {
	t.Helper()
	s := &session{reader: &scriptReader{lines: lines}}
	rt := runtime.New(runtime.WithOutput(&s.out), runtime.WithErrorOutput(&s.errOut))
	s.repl = New(rt, s.reader, &s.msgs, DefaultConfig())
	if err := s.repl.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return s
}

func TestREPLSharesGlobals(t *testing.T) {
	s := runSession(t, "var a = 1", "a + 1", "print a;", "fun inc() { a = a + 1; }", "inc();", "a")

	if got, want := s.out.String(), "2\n1\nnil\n2\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if s.errOut.Len() != 0 {
		t.Errorf("stderr = %q", s.errOut.String())
	}
	if !strings.HasSuffix(s.msgs.String(), "\nBye!\n") {
		t.Errorf("missing goodbye: %q", s.msgs.String())
	}
}

func TestREPLMultiline(t *testing.T) {
	s := runSession(t,
		"fun add(a, b) {",
		"  return a + b;",
		"}",
		"add(1,",
		"2)",
	)

	if got := s.out.String(); got != "3\n" {
		t.Errorf("stdout = %q", got)
	}
	want := []string{"> ", ". ", ". ", "> ", ". ", "> "}
	if strings.Join(s.reader.prompts, "|") != strings.Join(want, "|") {
		t.Errorf("prompts = %q, want %q", s.reader.prompts, want)
	}
	if len(s.repl.History()) != 2 || s.repl.History()[0] != "fun add(a, b) {\n  return a + b;\n}" {
		t.Errorf("history = %q", s.repl.History())
	}
}

func TestREPLErrorsDoNotStick(t *testing.T) {
	s := runSession(t, "print ;", "print 1;", "print x;", "print 2;")

	if got := s.out.String(); got != "1\n2\n" {
		t.Errorf("stdout = %q", got)
	}
	stderr := s.errOut.String()
	if !strings.Contains(stderr, "Error at ';': Expect expression.") {
		t.Errorf("missing syntax error: %q", stderr)
	}
	if !strings.Contains(stderr, "RuntimeError: Undefined variable 'x'.") {
		t.Errorf("missing runtime error: %q", stderr)
	}
}

func TestREPLCommands(t *testing.T) {
	s := runSession(t,
		"var a = 1;",
		"var b;",
		":env",
		":reset",
		":env",
		":tokens 1",
		":ast 1 + 2",
		":nope",
		":quit",
		"print 99;",
	)

	msgs := s.msgs.String()
	for _, want := range []string{
		"  a = 1\n  b (uninitialized)\n",
		"Environment reset.\nNo globals defined.\n",
		"NUMBER 1 1\nEOF  null\n",
		"(; (+ 1 2))\n",
		"Unknown command: :nope\n",
	} {
		if !strings.Contains(msgs, want) {
			t.Errorf("output missing %q:\n%s", want, msgs)
		}
	}
	if s.out.Len() != 0 {
		t.Errorf("statements after :quit ran: %q", s.out.String())
	}
	if len(s.reader.prompts) != 9 {
		t.Errorf("prompted %d times, want 9", len(s.reader.prompts))
	}
}

func TestREPLLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.lox")
	if err := os.WriteFile(path, []byte("fun twice(n) { return n * 2; }\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s := runSession(t, ":load "+path, "twice(21)", ":load", ":load "+path+".missing")

	if got := s.out.String(); got != "42\n" {
		t.Errorf("stdout = %q", got)
	}
	msgs := s.msgs.String()
	for _, want := range []string{"Loaded: " + path, "Usage: :load <filename>", "Error loading file:"} {
		if !strings.Contains(msgs, want) {
			t.Errorf("output missing %q:\n%s", want, msgs)
		}
	}
}

func TestREPLHistory(t *testing.T) {
	s := runSession(t, "print 1;", "print 1;", "print 2;", ":history")

	if got := s.repl.History(); len(got) != 2 {
		t.Errorf("history = %q", got)
	}
	if !strings.Contains(s.msgs.String(), "   1  print 1;\n   2  print 2;\n") {
		t.Errorf("history output:\n%s", s.msgs.String())
	}
	// liner 的历史包含命令本身
	if len(s.reader.history) != 4 {
		t.Errorf("line editor history = %q", s.reader.history)
	}
}

func TestNeedsMoreInput(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"print 1;", false},
		{"fun f() {", true},
		{"fun f() { }", false},
		{"f(1,", true},
		{`print "abc`, true},
		{`print "a{b";`, false},
		{"print 1; // {", false},
		{"{\n{\n}", true},
		{"}", false},
	}

	for _, tt := range tests {
		if got := needsMoreInput(tt.input); got != tt.want {
			t.Errorf("needsMoreInput(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCompleteStatement(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2", "1 + 2;"},
		{"  x  ", "x;"},
		{"print 1;", "print 1;"},
		{"fun f() {}", "fun f() {}"},
		{"x // note", "x // note"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := completeStatement(tt.input); got != tt.want {
			t.Errorf("completeStatement(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCompletions(t *testing.T) {
	s := runSession(t, "var printer = 1;")

	got := s.repl.Completions("var y = pri")
	want := []string{"var y = print", "var y = printer"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Completions = %q, want %q", got, want)
	}

	if got := s.repl.Completions(":h"); len(got) != 2 {
		t.Errorf("command completions = %q", got)
	}
	if got := s.repl.Completions("x + "); len(got) != 0 {
		t.Errorf("empty word completions = %q", got)
	}
}
