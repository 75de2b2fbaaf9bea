// Package runtime 把词法分析、语法分析、静态分析和解释执行串成一条流水线
//
// 命令行、REPL 和测试都通过 Runtime 运行源代码。诊断写到错误流，
// print 的输出写到输出流。
package runtime

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/interp"
	"github.com/tangzhangming/lox/internal/lexer"
	"github.com/tangzhangming/lox/internal/parser"
	"github.com/tangzhangming/lox/internal/resolver"
	"github.com/tangzhangming/lox/internal/token"
)

// 进程退出码
const (
	ExitOK      = 0
	ExitUsage   = 64 // 命令行用法错误
	ExitStatic  = 65 // 词法、语法或静态分析错误
	ExitRuntime = 70 // 运行时错误
	ExitIO      = 74 // 读取源文件失败
)

// StaticError 源代码存在 critical 诊断，程序没有执行
type StaticError struct {
	Diagnostics []*errors.CompileError
	Err         error // 合并后的诊断
}

func (e *StaticError) Error() string {
	return e.Err.Error()
}

func (e *StaticError) Unwrap() error {
	return e.Err
}

// ExitCode 把 Run 返回的错误映射为进程退出码
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var static *StaticError
	if stderrors.As(err, &static) {
		return ExitStatic
	}
	return ExitRuntime
}

// Program 前端处理的结果
type Program struct {
	Filename string
	Source   string
	Tokens   []token.Token
	Stmts    []ast.Stmt
}

// Runtime 运行时
type Runtime struct {
	out      io.Writer
	errOut   io.Writer
	logger   *zap.Logger
	reporter *errors.Reporter
	interp   *interp.Interpreter

	maxCallDepth int
}

// Option 配置运行时
type Option func(*Runtime)

// WithOutput 设置 print 的输出
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) { r.out = w }
}

// WithErrorOutput 设置诊断的输出
func WithErrorOutput(w io.Writer) Option {
	return func(r *Runtime) { r.errOut = w }
}

// WithLogger 设置阶段跟踪日志
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxCallDepth 设置最大调用深度
func WithMaxCallDepth(n int) Option {
	return func(r *Runtime) { r.maxCallDepth = n }
}

// New 创建运行时
func New(opts ...Option) *Runtime {
	r := &Runtime{
		out:    os.Stdout,
		errOut: os.Stderr,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.reporter = errors.NewReporter(r.errOut)
	r.interp = interp.New(
		interp.WithOutput(r.out),
		interp.WithLogger(r.logger),
		interp.WithMaxCallDepth(r.maxCallDepth),
	)
	return r
}

// Reporter 返回诊断报告器，调用方可以替换格式化器或关闭警告
func (r *Runtime) Reporter() *errors.Reporter {
	return r.reporter
}

// Interpreter 返回解释器（REPL 列出全局变量使用）
func (r *Runtime) Interpreter() *interp.Interpreter {
	return r.interp
}

// ============================================================================
// 流水线
// ============================================================================

// Compile 做词法、语法和静态分析
//
// 语法分析出错时不再做静态分析。有 critical 诊断时返回 *StaticError。
func (r *Runtime) Compile(source, filename string) (*Program, error) {
	return r.compile(source, filename, r.interp)
}

func (r *Runtime) compile(source, filename string, recorder resolver.Recorder) (*Program, error) {
	r.reporter.SetSource(filename, source)
	prog := &Program{Filename: filename, Source: source}

	start := time.Now()
	prog.Tokens = lexer.New(source, r.reporter).ScanTokens()
	r.logger.Debug("lex",
		zap.String("file", filename),
		zap.Int("tokens", len(prog.Tokens)),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	prog.Stmts = parser.New(prog.Tokens, r.reporter).Parse()
	r.logger.Debug("parse",
		zap.Int("statements", len(prog.Stmts)),
		zap.Int("errors", r.reporter.ErrorCount()),
		zap.Duration("elapsed", time.Since(start)))

	if !r.reporter.HadError() {
		start = time.Now()
		resolver.New(recorder, r.reporter).Resolve(prog.Stmts)
		r.logger.Debug("resolve",
			zap.Int("errors", r.reporter.ErrorCount()),
			zap.Int("warnings", r.reporter.WarningCount()),
			zap.Duration("elapsed", time.Since(start)))
	}

	if r.reporter.HadError() {
		return prog, &StaticError{
			Diagnostics: r.reporter.Errors(),
			Err:         r.reporter.Err(),
		}
	}
	return prog, nil
}

// Check 只做静态检查，不执行
func (r *Runtime) Check(source, filename string) error {
	_, err := r.compile(source, filename, nil)
	return err
}

// Run 编译并执行源代码
//
// 运行时错误报告到错误流后原样返回，调用方用 ExitCode 得到退出码。
func (r *Runtime) Run(source, filename string) error {
	prog, err := r.Compile(source, filename)
	if err != nil {
		return err
	}
	return r.Execute(prog)
}

// Execute 执行已经编译的程序
func (r *Runtime) Execute(prog *Program) error {
	start := time.Now()
	err := r.interp.Interpret(prog.Stmts)
	r.logger.Debug("execute",
		zap.String("file", prog.Filename),
		zap.Bool("ok", err == nil),
		zap.Duration("elapsed", time.Since(start)))

	if err == nil {
		return nil
	}
	var rerr *errors.RuntimeError
	if stderrors.As(err, &rerr) {
		r.reporter.ReportRuntime(rerr)
		return rerr
	}
	return fmt.Errorf("execute %s: %w", prog.Filename, err)
}

// RunLine 执行 REPL 的一行，行与行之间共享全局变量，错误状态不累积
func (r *Runtime) RunLine(line string) error {
	r.reporter.Reset()
	return r.Run(line, "<repl>")
}

// Reset 清空全局变量和诊断状态
func (r *Runtime) Reset() {
	r.reporter.Reset()
	r.interp.Reset()
}
