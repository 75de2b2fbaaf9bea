// Package repl 实现 Lox 的交互式解释器
//
// 提供：
//   - 多行输入（括号未闭合或字符串未结束时继续读取）
//   - 历史记录（基于 liner，可写入历史文件）
//   - 特殊命令（:help, :quit, :reset, :load 等）
//   - 单个表达式自动打印结果
package repl

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/lexer"
	"github.com/tangzhangming/lox/internal/parser"
	"github.com/tangzhangming/lox/internal/runtime"
	"github.com/tangzhangming/lox/internal/token"
)

// maxHistory 内存中保留的历史条数
const maxHistory = 1000

// LineReader 行输入源，*liner.State 满足该接口
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Config REPL 配置
type Config struct {
	Prompt         string
	ContinuePrompt string
	HistoryFile    string
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		Prompt:         "> ",
		ContinuePrompt: ". ",
	}
}

// REPL 交互式解释器
type REPL struct {
	runtime *runtime.Runtime
	reader  LineReader
	writer  io.Writer
	history []string
	buffer  strings.Builder
	config  Config
}

// New 创建 REPL。reader 为 nil 时需要先调用 Open 接管终端
func New(rt *runtime.Runtime, reader LineReader, writer io.Writer, config Config) *REPL {
	if config.Prompt == "" {
		config.Prompt = DefaultConfig().Prompt
	}
	if config.ContinuePrompt == "" {
		config.ContinuePrompt = DefaultConfig().ContinuePrompt
	}
	return &REPL{
		runtime: rt,
		reader:  reader,
		writer:  writer,
		config:  config,
	}
}

// Open 使用 liner 接管终端并读入历史文件，返回的函数负责写回历史并恢复终端
func (r *REPL) Open() (closeFn func() error) {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(r.Completions)

	if r.config.HistoryFile != "" {
		if f, err := os.Open(r.config.HistoryFile); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
	}
	r.reader = state

	return func() error {
		if r.config.HistoryFile != "" {
			if f, err := os.Create(r.config.HistoryFile); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}
		return state.Close()
	}
}

// Run 运行 REPL，直到输入结束或 :quit
func (r *REPL) Run() error {
	r.printWelcome()

	for {
		prompt := r.config.Prompt
		if r.buffer.Len() > 0 {
			prompt = r.config.ContinuePrompt
		}

		line, err := r.reader.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			// Ctrl-C 丢弃当前输入
			r.buffer.Reset()
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(r.writer, "\nBye!")
			return nil
		}
		if err != nil {
			return err
		}

		// 处理特殊命令
		if r.buffer.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			r.reader.AppendHistory(line)
			if !r.handleCommand(strings.TrimSpace(line)) {
				return nil
			}
			continue
		}

		if r.buffer.Len() > 0 {
			r.buffer.WriteString("\n")
		}
		r.buffer.WriteString(line)

		// 检查是否需要继续输入
		if needsMoreInput(r.buffer.String()) {
			continue
		}

		input := r.buffer.String()
		r.buffer.Reset()

		if strings.TrimSpace(input) == "" {
			continue
		}

		r.addHistory(input)
		r.reader.AppendHistory(input)
		r.execute(input)
	}
}

// printWelcome 打印欢迎信息
func (r *REPL) printWelcome() {
	fmt.Fprintln(r.writer, "Lox REPL")
	fmt.Fprintln(r.writer, "Type :help for help, :quit to exit")
}

// handleCommand 处理特殊命令，返回 false 表示退出
func (r *REPL) handleCommand(line string) bool {
	cmd, rest := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		cmd, rest = line[:i], strings.TrimSpace(line[i+1:])
	}
	cmd = strings.ToLower(cmd)

	switch cmd {
	case ":help", ":h", ":?":
		r.printHelp()

	case ":quit", ":q", ":exit":
		fmt.Fprintln(r.writer, "Bye!")
		return false

	case ":reset", ":clear":
		r.runtime.Reset()
		r.buffer.Reset()
		fmt.Fprintln(r.writer, "Environment reset.")

	case ":load", ":l":
		if rest == "" {
			fmt.Fprintln(r.writer, "Usage: :load <filename>")
			break
		}
		r.loadFile(rest)

	case ":history", ":hist":
		r.printHistory()

	case ":env":
		r.printEnv()

	case ":tokens":
		r.printTokens(rest)

	case ":ast":
		r.printAST(rest)

	default:
		fmt.Fprintf(r.writer, "Unknown command: %s\n", cmd)
		fmt.Fprintln(r.writer, "Type :help for available commands.")
	}
	return true
}

// printHelp 打印帮助信息
func (r *REPL) printHelp() {
	fmt.Fprintln(r.writer, "Available commands:")
	fmt.Fprintln(r.writer, "  :help, :h, :?     Show this help message")
	fmt.Fprintln(r.writer, "  :quit, :q, :exit  Exit the REPL")
	fmt.Fprintln(r.writer, "  :reset, :clear    Reset the environment")
	fmt.Fprintln(r.writer, "  :load <file>      Load and execute a file")
	fmt.Fprintln(r.writer, "  :history, :hist   Show command history")
	fmt.Fprintln(r.writer, "  :env              Show defined globals")
	fmt.Fprintln(r.writer, "  :tokens <source>  Show the tokens of source")
	fmt.Fprintln(r.writer, "  :ast <source>     Show the syntax tree of source")
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, "Multi-line input:")
	fmt.Fprintln(r.writer, "  Unclosed braces, parentheses or strings")
	fmt.Fprintln(r.writer, "  continue on the next line.")
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, "Examples:")
	fmt.Fprintln(r.writer, "  > var x = 10;")
	fmt.Fprintln(r.writer, "  > x * 2")
	fmt.Fprintln(r.writer, "  > fun add(a, b) {")
	fmt.Fprintln(r.writer, "  .   return a + b;")
	fmt.Fprintln(r.writer, "  . }")
}

// loadFile 加载并执行文件，文件中的全局变量在之后的输入中可见
func (r *REPL) loadFile(filename string) {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(r.writer, "Error loading file: %v\n", err)
		return
	}

	r.runtime.Reporter().Reset()
	if err := r.runtime.Run(string(source), filename); err == nil {
		fmt.Fprintf(r.writer, "Loaded: %s\n", filename)
	}
}

// printHistory 打印历史记录
func (r *REPL) printHistory() {
	for i, cmd := range r.history {
		fmt.Fprintf(r.writer, "%4d  %s\n", i+1, cmd)
	}
}

// printEnv 打印全局变量及其当前值
func (r *REPL) printEnv() {
	in := r.runtime.Interpreter()
	names := in.Globals()
	if len(names) == 0 {
		fmt.Fprintln(r.writer, "No globals defined.")
		return
	}
	for _, name := range names {
		v, _ := in.Global(name)
		if !v.IsInitialized() {
			fmt.Fprintf(r.writer, "  %s (uninitialized)\n", name)
			continue
		}
		fmt.Fprintf(r.writer, "  %s = %s\n", name, v)
	}
}

func (r *REPL) printTokens(source string) {
	sink := &errors.Collector{}
	tokens := lexer.New(source, sink).ScanTokens()
	for _, tok := range tokens {
		fmt.Fprintln(r.writer, tok.String())
	}
	r.printDiagnostics(sink)
}

func (r *REPL) printAST(source string) {
	sink := &errors.Collector{}
	tokens := lexer.New(completeStatement(source), sink).ScanTokens()
	stmts := parser.New(tokens, sink).Parse()
	if !sink.HadError() {
		fmt.Fprint(r.writer, ast.DumpProgram(stmts))
	}
	r.printDiagnostics(sink)
}

func (r *REPL) printDiagnostics(sink *errors.Collector) {
	for _, d := range sink.Diagnostics {
		fmt.Fprintln(r.writer, d.Error())
	}
}

// addHistory 添加到历史记录
func (r *REPL) addHistory(input string) {
	// 不添加重复的历史记录
	if len(r.history) > 0 && r.history[len(r.history)-1] == input {
		return
	}
	r.history = append(r.history, input)
	if len(r.history) > maxHistory {
		r.history = r.history[len(r.history)-maxHistory:]
	}
}

// History 返回本次会话的输入历史
func (r *REPL) History() []string {
	return r.history
}

// needsMoreInput 括号未闭合或字符串未结束时需要更多输入
func needsMoreInput(input string) bool {
	braceDepth := 0 // {}
	parenDepth := 0 // ()
	inString := false

	for i := 0; i < len(input); i++ {
		c := input[i]

		if inString {
			if c == '"' {
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '/':
			// 行注释里的括号不计入
			if i+1 < len(input) && input[i+1] == '/' {
				for i < len(input) && input[i] != '\n' {
					i++
				}
			}
		case '{':
			braceDepth++
		case '}':
			braceDepth--
		case '(':
			parenDepth++
		case ')':
			parenDepth--
		}
	}

	return braceDepth > 0 || parenDepth > 0 || inString
}

// completeStatement 语句末尾的分号可以省略
func completeStatement(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}") {
		return input
	}
	// 最后一行带注释时不补分号
	if i := strings.LastIndex(trimmed, "\n"); strings.Contains(trimmed[i+1:], "//") {
		return input
	}
	return trimmed + ";"
}

// execute 执行输入，诊断已经由运行时的报告器输出
func (r *REPL) execute(input string) {
	r.runtime.RunLine(completeStatement(input))
}

// Completions 补全当前行最后一个单词，返回完整的候选行（liner 的补全约定）
func (r *REPL) Completions(line string) []string {
	completions := make([]string, 0)

	if strings.HasPrefix(line, ":") {
		commands := []string{":help", ":quit", ":reset", ":load", ":history", ":env", ":tokens", ":ast"}
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, line) {
				completions = append(completions, cmd)
			}
		}
		return completions
	}

	start := len(line)
	for start > 0 && isWordChar(line[start-1]) {
		start--
	}
	head, word := line[:start], line[start:]
	if word == "" {
		return completions
	}

	candidates := append(token.Keywords(), r.runtime.Interpreter().Globals()...)
	sort.Strings(candidates)
	seen := make(map[string]bool)
	for _, c := range candidates {
		if strings.HasPrefix(c, word) && !seen[c] {
			seen[c] = true
			completions = append(completions, head+c)
		}
	}
	return completions
}

func isWordChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
