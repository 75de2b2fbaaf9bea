package errors

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/tangzhangming/lox/internal/token"
)

func TestCompileErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *CompileError
		want string
	}{
		{
			name: "at token",
			err:  AtToken(E0001, LevelError, token.New(token.IDENTIFIER, "foo", token.Position{Line: 3, Column: 5}), "Expect ';' after value."),
			want: "[line 3] Error at 'foo': Expect ';' after value.",
		},
		{
			name: "at end",
			err:  AtToken(E0001, LevelError, token.New(token.EOF, "", token.Position{Line: 7}), "Expect expression."),
			want: "[line 7] Error at end: Expect expression.",
		},
		{
			name: "lexer",
			err:  AtLine(E0002, token.Position{Line: 1, Column: 2}, "Unexpected character."),
			want: "[line 1] Error: Unexpected character.",
		},
		{
			name: "warning",
			err:  AtToken(W0001, LevelWarning, token.New(token.IDENTIFIER, "a", token.Position{Line: 2}), "Local variable 'a' is never used."),
			want: "[line 2] Warning at 'a': Local variable 'a' is never used.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRuntimeErrorFormat(t *testing.T) {
	err := NewRuntimeError(R0101, token.New(token.IDENTIFIER, "x", token.Position{Line: 1}), "Uninitialized variable 'x'.")
	want := "[line 1] RuntimeError: Uninitialized variable 'x'."
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestReporterCounts(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Report(AtLine(E0003, token.Position{Line: 1}, "Unterminated string."))
	r.Report(AtToken(W0001, LevelWarning, token.New(token.IDENTIFIER, "a", token.Position{Line: 2}), "unused"))

	if !r.HadError() {
		t.Error("expected HadError")
	}
	if r.ErrorCount() != 1 || r.WarningCount() != 1 {
		t.Errorf("counts = %d/%d, want 1/1", r.ErrorCount(), r.WarningCount())
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %q", buf.String())
	}

	r.Reset()
	if r.HadError() || r.Err() != nil {
		t.Error("Reset should clear the critical flag")
	}
}

func TestReporterWarningsOff(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.SetWarnings(false)

	r.Report(AtToken(W0001, LevelWarning, token.New(token.IDENTIFIER, "a", token.Position{Line: 2}), "unused"))
	if buf.Len() != 0 {
		t.Errorf("warning printed while disabled: %q", buf.String())
	}
	if r.WarningCount() != 1 {
		t.Errorf("warning not counted")
	}
}

func TestReporterErr(t *testing.T) {
	r := NewReporter(&bytes.Buffer{})
	r.Report(AtLine(E0002, token.Position{Line: 1}, "Unexpected character."))
	r.Report(AtLine(E0002, token.Position{Line: 2}, "Unexpected character."))

	errs := multierr.Errors(r.Err())
	if len(errs) != 2 {
		t.Fatalf("expected 2 combined errors, got %d", len(errs))
	}
}

func TestPrettyFormat(t *testing.T) {
	f := NewFormatter()
	f.Pretty = true
	f.File = "main.lox"

	err := AtToken(E0101, LevelError, token.New(token.IDENTIFIER, "a", token.Position{Line: 1, Column: 16}), "Already a variable with this name in this scope.")
	err.Hints = []string{"rename it"}
	out := f.FormatCompileError(err, []string{"{ var a = 1; var a = 2; }"})

	for _, want := range []string{
		"error[E0101]: Already a variable with this name in this scope.",
		"--> main.lox:1:16",
		"1 | { var a = 1; var a = 2; }",
		"= help: rename it",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(out, "\n")
	if got := strings.Index(lines[4], "^"); got != strings.Index(lines[3], "a = 2") {
		t.Errorf("caret at %d, want under second 'a':\n%s", got, out)
	}
}

func TestHints(t *testing.T) {
	if len(Hints(R0200)) != 1 {
		t.Error("division by zero should carry a hint")
	}
	if Hints("X9999") != nil {
		t.Error("unknown code should have no hints")
	}
}
