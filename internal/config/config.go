// Package config 读取 lox.toml 配置
//
// 查找顺序：从脚本所在目录向上查找 lox.toml，找不到时使用
// $HOME/.config/lox/lox.toml，都没有则使用 Default()。
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// 常量定义
const (
	ConfigFileName = "lox.toml" // 配置文件名

	DefaultMaxCallDepth   = 1024
	DefaultPrompt         = "> "
	DefaultContinuePrompt = ". "
)

// Config 全部配置
type Config struct {
	Diagnostics Diagnostics `toml:"diagnostics"`
	Interpreter Interpreter `toml:"interpreter"`
	REPL        REPL        `toml:"repl"`

	// Path 配置来源，使用默认配置时为空
	Path string `toml:"-"`
}

// Diagnostics 诊断输出
type Diagnostics struct {
	// Pretty 输出错误码、源码片段和提示
	Pretty bool `toml:"pretty"`

	// Color 是否着色（仍受 NO_COLOR 和终端检测影响）
	Color bool `toml:"color"`

	// Hints 是否显示修复提示
	Hints bool `toml:"hints"`

	// Language 诊断语言：en 或 zh
	Language string `toml:"language"`

	// Warnings 是否输出警告
	Warnings bool `toml:"warnings"`
}

// Interpreter 解释器
type Interpreter struct {
	MaxCallDepth int `toml:"max_call_depth"`
}

// REPL 交互环境
type REPL struct {
	Prompt         string `toml:"prompt"`
	ContinuePrompt string `toml:"continue_prompt"`
	HistoryFile    string `toml:"history_file"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Diagnostics: Diagnostics{
			Color:    true,
			Hints:    true,
			Language: "en",
			Warnings: true,
		},
		Interpreter: Interpreter{
			MaxCallDepth: DefaultMaxCallDepth,
		},
		REPL: REPL{
			Prompt:         DefaultPrompt,
			ContinuePrompt: DefaultContinuePrompt,
			HistoryFile:    defaultHistoryFile(),
		},
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lox_history")
}

// Load 从文件加载配置，未出现的字段保持默认值，未知字段报错
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse 解析 TOML 内容
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查取值范围
func (c *Config) Validate() error {
	switch strings.ToLower(c.Diagnostics.Language) {
	case "", "en", "zh":
	default:
		return fmt.Errorf("diagnostics.language: unsupported language %q", c.Diagnostics.Language)
	}
	if c.Interpreter.MaxCallDepth < 0 {
		return fmt.Errorf("interpreter.max_call_depth: must not be negative, got %d", c.Interpreter.MaxCallDepth)
	}
	if c.Interpreter.MaxCallDepth == 0 {
		c.Interpreter.MaxCallDepth = DefaultMaxCallDepth
	}
	return nil
}

// Save 保存配置到文件
func (c *Config) Save(path string) error {
	if err := os.WriteFile(path, []byte(generateConfigWithComments(c)), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// generateConfigWithComments 生成带注释的配置文件内容
func generateConfigWithComments(c *Config) string {
	var sb strings.Builder

	sb.WriteString("[diagnostics]\n")
	sb.WriteString("# 输出错误码、源码片段和提示\n")
	sb.WriteString(fmt.Sprintf("pretty = %t\n", c.Diagnostics.Pretty))
	sb.WriteString(fmt.Sprintf("color = %t\n", c.Diagnostics.Color))
	sb.WriteString(fmt.Sprintf("hints = %t\n", c.Diagnostics.Hints))
	sb.WriteString("# 诊断语言：en 或 zh\n")
	sb.WriteString(fmt.Sprintf("language = %q\n", c.Diagnostics.Language))
	sb.WriteString(fmt.Sprintf("warnings = %t\n\n", c.Diagnostics.Warnings))

	sb.WriteString("[interpreter]\n")
	sb.WriteString("# 超过该调用深度时报告 Stack overflow.\n")
	sb.WriteString(fmt.Sprintf("max_call_depth = %d\n\n", c.Interpreter.MaxCallDepth))

	sb.WriteString("[repl]\n")
	sb.WriteString(fmt.Sprintf("prompt = %q\n", c.REPL.Prompt))
	sb.WriteString(fmt.Sprintf("continue_prompt = %q\n", c.REPL.ContinuePrompt))
	sb.WriteString(fmt.Sprintf("history_file = %q\n", c.REPL.HistoryFile))

	return sb.String()
}

// ============================================================================
// 查找
// ============================================================================

// FindConfigFile 从指定路径向上查找配置文件
// 返回配置文件的完整路径，如果找不到则返回空字符串
func FindConfigFile(startPath string) string {
	info, err := os.Stat(startPath)
	if err != nil {
		return ""
	}

	dir := startPath
	if !info.IsDir() {
		dir = filepath.Dir(startPath)
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// UserConfigFile 返回 $HOME/.config/lox/lox.toml（不检查是否存在）
func UserConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lox", ConfigFileName)
}

// Discover 按查找顺序加载配置，找不到任何文件时返回默认配置
func Discover(startPath string) (*Config, error) {
	if path := FindConfigFile(startPath); path != "" {
		return Load(path)
	}
	if path := UserConfigFile(); path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}
