package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Interpreter.MaxCallDepth != DefaultMaxCallDepth {
		t.Errorf("MaxCallDepth = %d", cfg.Interpreter.MaxCallDepth)
	}
	if cfg.REPL.Prompt != "> " {
		t.Errorf("Prompt = %q", cfg.REPL.Prompt)
	}
	if !cfg.Diagnostics.Warnings || cfg.Diagnostics.Pretty {
		t.Errorf("unexpected diagnostics defaults: %+v", cfg.Diagnostics)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[diagnostics]
pretty = true
language = "zh"

[interpreter]
max_call_depth = 64
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.Diagnostics.Pretty || cfg.Diagnostics.Language != "zh" {
		t.Errorf("diagnostics = %+v", cfg.Diagnostics)
	}
	if cfg.Interpreter.MaxCallDepth != 64 {
		t.Errorf("MaxCallDepth = %d", cfg.Interpreter.MaxCallDepth)
	}
	// 未出现的字段保持默认值
	if !cfg.Diagnostics.Hints || cfg.REPL.Prompt != DefaultPrompt {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown key", "[diagnostics]\nfancy = true\n"},
		{"unknown section", "[server]\nport = 1\n"},
		{"bad language", "[diagnostics]\nlanguage = \"fr\"\n"},
		{"negative depth", "[interpreter]\nmax_call_depth = -1\n"},
		{"wrong type", "[interpreter]\nmax_call_depth = \"deep\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := Default()
	cfg.Diagnostics.Pretty = true
	cfg.Interpreter.MaxCallDepth = 200
	cfg.REPL.Prompt = "lox> "
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "max_call_depth = 200") {
		t.Errorf("saved file:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Path != path {
		t.Errorf("Path = %q", loaded.Path)
	}
	if !loaded.Diagnostics.Pretty || loaded.Interpreter.MaxCallDepth != 200 || loaded.REPL.Prompt != "lox> " {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(nested, "main.lox")
	if err := os.WriteFile(script, []byte("print 1;"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := FindConfigFile(script); got != "" {
		// 临时目录的某个祖先目录恰好有 lox.toml 时跳过
		t.Skipf("unexpected config above temp dir: %s", got)
	}

	want := filepath.Join(root, "a", ConfigFileName)
	if err := os.WriteFile(want, []byte("[interpreter]\nmax_call_depth = 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := FindConfigFile(script); got != want {
		t.Errorf("FindConfigFile = %q, want %q", got, want)
	}

	cfg, err := Discover(script)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Interpreter.MaxCallDepth != 7 {
		t.Errorf("MaxCallDepth = %d", cfg.Interpreter.MaxCallDepth)
	}
}
