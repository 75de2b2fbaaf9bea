package main

import (
	"os"
	"strings"
)

// Language 语言类型
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// Messages 命令行消息
type Messages struct {
	// 版本信息
	VersionTitle string

	// 帮助信息
	HelpUsage    string
	HelpOptions  string
	HelpExamples string
	HelpREPL     string
	HelpScript   string

	// 选项描述
	OptTokens  string
	OptAST     string
	OptRPN     string
	OptCheck   string
	OptFormat  string
	OptConfig  string
	OptDebug   string
	OptPretty  string
	OptLang    string
	OptInit    string
	OptVersion string

	// 错误信息
	ErrTooManyArgs  string
	ErrReadFile     string
	ErrConfig       string
	ErrFormatFailed string
	ErrConfigExists string
	ErrWriteFile    string

	// 成功信息
	SuccessSyntaxOK string
	InitCreated     string
}

var messagesEN = Messages{
	VersionTitle: "Lox %s",

	HelpUsage:    "Usage:",
	HelpOptions:  "Options:",
	HelpExamples: "Examples:",
	HelpREPL:     "start the interactive prompt",
	HelpScript:   "run a script",

	OptTokens:  "print the token stream and exit",
	OptAST:     "print the syntax tree and exit",
	OptRPN:     "print expression statements in reverse Polish notation",
	OptCheck:   "run static checks only",
	OptFormat:  "print the formatted source",
	OptConfig:  "path to lox.toml",
	OptDebug:   "trace interpreter phases to stderr",
	OptPretty:  "pretty diagnostics with source context",
	OptLang:    "diagnostic language (en|zh)",
	OptInit:    "write a default lox.toml into the directory",
	OptVersion: "print the version",

	ErrTooManyArgs:  "Too many arguments.",
	ErrReadFile:     "Could not read file: %v",
	ErrConfig:       "Invalid configuration: %v",
	ErrFormatFailed: "Format failed: %v",
	ErrConfigExists: "%s already exists",
	ErrWriteFile:    "Could not write file: %v",

	SuccessSyntaxOK: "No errors found.",
	InitCreated:     "Created %s",
}

var messagesZH = Messages{
	VersionTitle: "Lox %s",

	HelpUsage:    "用法:",
	HelpOptions:  "选项:",
	HelpExamples: "示例:",
	HelpREPL:     "启动交互式环境",
	HelpScript:   "运行脚本",

	OptTokens:  "输出词法单元后退出",
	OptAST:     "输出语法树后退出",
	OptRPN:     "以逆波兰式输出表达式语句",
	OptCheck:   "只做静态检查",
	OptFormat:  "输出格式化后的源代码",
	OptConfig:  "lox.toml 的路径",
	OptDebug:   "在标准错误输出解释器各阶段的跟踪信息",
	OptPretty:  "带源代码上下文的详细诊断",
	OptLang:    "诊断语言 (en|zh)",
	OptInit:    "在目录中生成默认的 lox.toml",
	OptVersion: "输出版本号",

	ErrTooManyArgs:  "参数过多。",
	ErrReadFile:     "无法读取文件: %v",
	ErrConfig:       "配置无效: %v",
	ErrFormatFailed: "格式化失败: %v",
	ErrConfigExists: "%s 已存在",
	ErrWriteFile:    "无法写入文件: %v",

	SuccessSyntaxOK: "没有发现错误。",
	InitCreated:     "已创建 %s",
}

// 当前消息
var msg = messagesEN

// 当前语言
var currentLang = LangEnglish

// InitLanguage 初始化语言设置
// 优先级: 命令行参数 > 配置文件 > 环境变量 LOX_LANG > 操作系统语言 > 默认英文
func InitLanguage(langOverride, configured string) {
	if langOverride != "" {
		setLanguage(langOverride)
		return
	}

	if configured != "" {
		setLanguage(configured)
		return
	}

	if envLang := os.Getenv("LOX_LANG"); envLang != "" {
		setLanguage(envLang)
		return
	}

	if detectChineseOS() {
		setLanguage("zh")
		return
	}

	setLanguage("en")
}

// setLanguage 设置语言
func setLanguage(lang string) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	switch lang {
	case "zh", "zh-cn", "zh-tw", "zh-hk", "chinese":
		currentLang = LangChinese
		msg = messagesZH
	default:
		currentLang = LangEnglish
		msg = messagesEN
	}
}

// detectChineseOS 通过 locale 环境变量检测中文环境
func detectChineseOS() bool {
	langVars := []string{"LC_ALL", "LC_MESSAGES", "LANG", "LANGUAGE"}
	for _, v := range langVars {
		if val := os.Getenv(v); val != "" {
			lower := strings.ToLower(val)
			return strings.HasPrefix(lower, "zh") || strings.Contains(lower, "chinese")
		}
	}
	return false
}

// GetLanguage 获取当前语言
func GetLanguage() Language {
	return currentLang
}

// Msg 获取当前消息对象
func Msg() *Messages {
	return &msg
}
