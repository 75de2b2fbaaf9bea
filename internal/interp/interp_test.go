package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/lexer"
	"github.com/tangzhangming/lox/internal/parser"
	"github.com/tangzhangming/lox/internal/resolver"
)

// runSource 完整走一遍 lex -> parse -> resolve -> interpret
func runSource(t *testing.T, in *Interpreter, src string) error {
	t.Helper()
	sink := &errors.Collector{}
	tokens := lexer.New(src, sink).ScanTokens()
	stmts := parser.New(tokens, sink).Parse()
	resolver.New(in, sink).Resolve(stmts)
	for _, d := range sink.Diagnostics {
		if d.Critical() {
			t.Fatalf("unexpected static error: %v", d)
		}
	}
	return in.Interpret(stmts)
}

func interpret(t *testing.T, src string, opts ...Option) (string, error) {
	t.Helper()
	var out bytes.Buffer
	in := New(append([]Option{WithOutput(&out)}, opts...)...)
	err := runSource(t, in, src)
	return out.String(), err
}

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}

func TestInterpretPrograms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"arithmetic", "print 1 + 2;", lines("3")},
		{"precedence", "print 2 + 3 * 4 - 6 / 2;", lines("11")},
		{"shadowing", "var a = 1; { var a = 2; print a; } print a;", lines("2", "1")},
		{"counter closure",
			"fun c() { var i = 0; fun inc() { i = i + 1; return i; } return inc; } var f = c(); print f(); print f();",
			lines("1", "2")},
		{"super call",
			`class A { f() { return "A.f"; } } class B < A { f() { return super.f() + "+B"; } } print B().f();`,
			lines("A.f+B")},
		{"init fields", "class C { init(x) { this.x = x; } } var c = C(10); print c.x;", lines("10")},
		{"for loop", "for (var i = 0; i < 3; i = i + 1) print i;", lines("0", "1", "2")},
		{"echo string plus number", `"ab" + 1;`, lines("ab1")},
		{"echo number plus string", `1 + "ab";`, lines("1ab")},
		{"equality with nil",
			`print nil == nil; print nil == 0; print nil == false; print nil == "";`,
			lines("true", "false", "false", "false")},
		{"number format", "print 1.0; print 1.5; print -0.25; print 10 / 4;", lines("1", "1.5", "-0.25", "2.5")},
		{"truthiness", `print !nil; print !0; print !""; print !false;`, lines("true", "false", "false", "true")},
		{"string concat", `print "a" + "b"; print "n" + 1.5; print nil + "x"; print "t" + true;`,
			lines("ab", "n1.5", "nilx", "ttrue")},
		{"comparison", "print 1 < 2; print 2 <= 2; print 3 > 4; print 4 >= 5; print 1 != 2;",
			lines("true", "true", "false", "false", "true")},
		{"ternary", "print true ? 1 : 2; print nil ? 1 : 2;", lines("1", "2")},
		{"comma", "print (1, 2, 3);", lines("3")},
		{"nil initializer", "var x = nil; print x;", lines("nil")},
		{"while break",
			"var i = 0; while (true) { i = i + 1; if (i == 3) break; } print i;",
			lines("3")},
		{"for break",
			"for (var i = 0; i < 10; i = i + 1) { if (i == 2) break; print i; }",
			lines("0", "1")},
		{"return from loop",
			"fun f() { var i = 0; while (true) { i = i + 1; if (i > 4) return i; } } print f();",
			lines("5")},
		{"nested break only leaves inner loop",
			`for (var i = 0; i < 2; i = i + 1) { while (true) { break; } print i; }`,
			lines("0", "1")},
		{"function without return", "fun f() {} print f();", lines("nil")},
		{"recursion", "fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); } print fib(10);",
			lines("55")},
		{"lambda", "var f = fun (a) { return a + 1; }; print f(1); print f;", lines("2", "<fn lambda>")},
		{"lambda closure",
			"fun adder(n) { return fun (x) { return x + n; }; } var add2 = adder(2); print add2(3);",
			lines("5")},
		{"display forms",
			"fun foo() {} class A {} print foo; print A; print A();",
			lines("<fn foo>", "A class", "A instance")},
		{"getter", "class Circle { init(r) { this.r = r; } area { return 3 * this.r; } } print Circle(2).area;",
			lines("6")},
		{"inherited getter",
			`class A { name { return "a"; } } class B < A {} print B().name;`,
			lines("a")},
		{"static method", "class M { class sq(x) { return x * x; } } print M.sq(3);", lines("9")},
		{"inherited static", "class M { class sq(x) { return x * x; } } class N < M {} print N.sq(2);", lines("4")},
		{"inherited init", "class A { init(x) { this.x = x; } } class B < A {} print B(5).x;", lines("5")},
		{"field shadows method", "class A { m() { return 1; } } var a = A(); a.m = 2; print a.m;", lines("2")},
		{"set returns value", "class A {} var a = A(); print a.x = 3;", lines("3")},
		{"local classes",
			`{ class A { f() { return "a"; } } class B < A { f() { return super.f() + "b"; } } print B().f(); }`,
			lines("ab")},
		{"super skips override",
			`class A { m() { return "A"; } }
			 class B < A { m() { return "B"; } t() { return super.m(); } }
			 class C < B {}
			 print C().t();`,
			lines("A")},
		{"this in nested closure",
			`class A { init() { this.v = 1; } f() { fun g() { return this.v; } return g; } } print A().f()();`,
			lines("1")},
		{"global declared later",
			"fun f() { return later; } var later = 4; print f();",
			lines("4")},
		{"resolved before shadow",
			`var a = "global"; { fun show() { print a; } show(); var a = "block"; show(); }`,
			lines("global", "global")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := interpret(t, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("output = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestShortCircuit(t *testing.T) {
	src := `fun side() { print "side"; return true; }
print false and side();
print true or side();
print nil or "r";
print 1 and side();`
	got, err := interpret(t, src)
	if err != nil {
		t.Fatal(err)
	}
	want := lines("false", "true", "r", "side", "true")
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestTernaryOnlyEvaluatesSelectedBranch(t *testing.T) {
	got, err := interpret(t, "print true ? 1 : missing; print false ? missing : 2;")
	if err != nil {
		t.Fatal(err)
	}
	if got != lines("1", "2") {
		t.Errorf("output = %q", got)
	}
}

func TestClosureCapturesByReference(t *testing.T) {
	src := `{
  var x = 1;
  fun get() { return x; }
  x = 2;
  print get();
  fun set() { x = 3; }
  set();
  print x;
}`
	got, err := interpret(t, src)
	if err != nil {
		t.Fatal(err)
	}
	if got != lines("2", "3") {
		t.Errorf("output = %q", got)
	}
}

func TestMethodBinding(t *testing.T) {
	src := `class A {
  init() { this.v = 7; }
  m() { return this.v; }
  me() { return this; }
}
var a = A();
var m = a.m;
print m();
print a.m();
print (a.m)();
print a.me() == a;
print m == a.m;`
	got, err := interpret(t, src)
	if err != nil {
		t.Fatal(err)
	}
	// 每次属性访问都生成新的绑定方法
	want := lines("7", "7", "7", "true", "false")
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestInitReturnsInstance(t *testing.T) {
	src := `class P {
  init(early) {
    this.x = 1;
    if (early) return;
    this.x = 2;
  }
}
var p = P(true);
print p;
print p.x;
var q = P(false);
print q.x;
print q.init(true) == q;`
	got, err := interpret(t, src)
	if err != nil {
		t.Fatal(err)
	}
	want := lines("P instance", "1", "2", "true")
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    string
		message string
	}{
		{"negate string", `print -"a";`, errors.R0201, "Operand must be a number."},
		{"subtract string", `print 1 - "a";`, errors.R0201, "Operands must be numbers."},
		{"compare mixed", `print 1 < "a";`, errors.R0201, "Operands must be numbers."},
		{"plus nil", "print 1 + nil;", errors.R0201, "Operands must be two numbers or at least one string."},
		{"division by zero", "print 1 / 0;", errors.R0200, "Division by zero."},
		{"undefined read", "print y;", errors.R0100, "Undefined variable 'y'."},
		{"undefined assign", "y = 1;", errors.R0100, "Undefined variable 'y'."},
		{"uninitialized global", "var x; print x;", errors.R0101, "Uninitialized variable 'x'."},
		{"uninitialized local", "{ var x; print x; }", errors.R0101, "Uninitialized variable 'x'."},
		{"not callable", `"s"();`, errors.R0300, "Can only call functions and classes."},
		{"arity", "fun f(a) {} f();", errors.R0301, "Expected 1 arguments but got 0."},
		{"class arity", "class C { init(a, b) {} } C(1);", errors.R0301, "Expected 2 arguments but got 1."},
		{"property on number", "var n = 1; print n.x;", errors.R0302, "Only instances have properties."},
		{"field on number", "var n = 1; n.x = 2;", errors.R0302, "Only instances have fields."},
		{"undefined property", "class A {} print A().x;", errors.R0303, "Undefined property 'x'."},
		{"undefined static", "class A {} print A.x;", errors.R0303, "Undefined static method 'x'."},
		{"set on class", "class A {} A.x = 1;", errors.R0302, "Can't set static property 'x' on A."},
		{"superclass not class", "var B = 1; class A < B {}", errors.R0304, "Superclass must be a class."},
		{"super missing method",
			"class A {} class B < A { m() { return super.x(); } } B().m();",
			errors.R0303, "Undefined property 'x'."},
		{"stack overflow", "fun r() { return r(); } r();", errors.R0400, "Stack overflow."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interpret(t, tt.input)
			if err == nil {
				t.Fatal("expected runtime error")
			}
			rerr, ok := err.(*errors.RuntimeError)
			if !ok {
				t.Fatalf("expected *errors.RuntimeError, got %T", err)
			}
			if rerr.Code != tt.code {
				t.Errorf("code = %s, want %s", rerr.Code, tt.code)
			}
			if rerr.Message != tt.message {
				t.Errorf("message = %q, want %q", rerr.Message, tt.message)
			}
		})
	}
}

func TestRuntimeErrorStopsExecution(t *testing.T) {
	got, err := interpret(t, "print 1;\nprint y;\nprint 2;")
	if err == nil {
		t.Fatal("expected runtime error")
	}
	if got != lines("1") {
		t.Errorf("output = %q", got)
	}
	if want := "[line 2] RuntimeError: Undefined variable 'y'."; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestMaxCallDepth(t *testing.T) {
	src := "fun f(n) { if (n == 0) return 0; return f(n - 1); } print f(2);"
	got, err := interpret(t, src, WithMaxCallDepth(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != lines("0") {
		t.Errorf("output = %q", got)
	}

	_, err = interpret(t, "fun f(n) { if (n == 0) return 0; return f(n - 1); } print f(3);", WithMaxCallDepth(3))
	rerr, ok := err.(*errors.RuntimeError)
	if !ok || rerr.Code != errors.R0400 {
		t.Fatalf("expected stack overflow, got %v", err)
	}
}

func TestGlobalsPersistAcrossRuns(t *testing.T) {
	var out bytes.Buffer
	in := New(WithOutput(&out))
	if err := runSource(t, in, "var b = 1; fun c() { return b; }"); err != nil {
		t.Fatal(err)
	}
	if err := runSource(t, in, "var a = c() + 1;"); err != nil {
		t.Fatal(err)
	}
	if err := runSource(t, in, "print a;"); err != nil {
		t.Fatal(err)
	}
	if out.String() != lines("2") {
		t.Errorf("output = %q", out.String())
	}

	names := in.Globals()
	if strings.Join(names, ",") != "a,b,c" {
		t.Errorf("Globals() = %v", names)
	}
	if v, ok := in.Global("a"); !ok || v.AsNumber() != 2 {
		t.Errorf("Global(a) = %v, %v", v, ok)
	}

	in.Reset()
	if len(in.Globals()) != 0 {
		t.Errorf("globals after Reset: %v", in.Globals())
	}
}
