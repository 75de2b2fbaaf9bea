package errors

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
)

// ============================================================================
// 诊断接收器
// ============================================================================

// Sink 是词法、语法、静态分析阶段上报诊断的接口
type Sink interface {
	Report(err *CompileError)
}

// RuntimeSink 接收运行时错误
type RuntimeSink interface {
	ReportRuntime(err *RuntimeError)
}

// Collector 只收集诊断、不输出（LSP 和测试使用）
type Collector struct {
	Diagnostics []*CompileError
}

// Report 实现 Sink
func (c *Collector) Report(err *CompileError) {
	c.Diagnostics = append(c.Diagnostics, err)
}

// HadError 是否收到过 critical 诊断
func (c *Collector) HadError() bool {
	for _, d := range c.Diagnostics {
		if d.Critical() {
			return true
		}
	}
	return false
}

// ============================================================================
// 错误报告器
// ============================================================================

// Reporter 错误报告器：计数并把诊断写到错误流
type Reporter struct {
	out        io.Writer
	formatter  *Formatter
	lines      []string // 当前源代码（Pretty 模式使用）
	warningsOn bool

	errors     []*CompileError
	warnings   []*CompileError
	runtimeErr *RuntimeError
}

// NewReporter 创建错误报告器
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:        out,
		formatter:  NewFormatter(),
		warningsOn: true,
	}
}

// SetFormatter 设置格式化器
func (r *Reporter) SetFormatter(f *Formatter) {
	r.formatter = f
}

// Formatter 获取格式化器
func (r *Reporter) Formatter() *Formatter {
	return r.formatter
}

// SetWarnings 设置是否输出警告（警告始终计数）
func (r *Reporter) SetWarnings(on bool) {
	r.warningsOn = on
}

// SetSource 设置当前源代码
func (r *Reporter) SetSource(filename string, content string) {
	r.formatter.File = filename
	r.lines = strings.Split(content, "\n")
}

// ============================================================================
// 报告
// ============================================================================

// Report 实现 Sink
func (r *Reporter) Report(err *CompileError) {
	if len(err.Hints) == 0 && r.formatter.ShowHints {
		err.Hints = Hints(err.Code)
	}
	if err.Level == LevelWarning {
		r.warnings = append(r.warnings, err)
		if !r.warningsOn {
			return
		}
	} else {
		r.errors = append(r.errors, err)
	}
	fmt.Fprint(r.out, r.formatter.FormatCompileError(err, r.lines))
}

// ReportRuntime 实现 RuntimeSink
func (r *Reporter) ReportRuntime(err *RuntimeError) {
	if len(err.Hints) == 0 && r.formatter.ShowHints {
		err.Hints = Hints(err.Code)
	}
	r.runtimeErr = err
	fmt.Fprint(r.out, r.formatter.FormatRuntimeError(err, r.lines))
}

// ============================================================================
// 状态查询
// ============================================================================

// HadError 是否有 critical 错误
func (r *Reporter) HadError() bool {
	return len(r.errors) > 0
}

// HadRuntimeError 是否发生过运行时错误
func (r *Reporter) HadRuntimeError() bool {
	return r.runtimeErr != nil
}

// ErrorCount 错误数量
func (r *Reporter) ErrorCount() int {
	return len(r.errors)
}

// WarningCount 警告数量
func (r *Reporter) WarningCount() int {
	return len(r.warnings)
}

// Errors 获取所有错误
func (r *Reporter) Errors() []*CompileError {
	return r.errors
}

// Warnings 获取所有警告
func (r *Reporter) Warnings() []*CompileError {
	return r.warnings
}

// Err 把所有 critical 错误和运行时错误合并成一个 error，没有则返回 nil
func (r *Reporter) Err() error {
	var err error
	for _, e := range r.errors {
		err = multierr.Append(err, e)
	}
	if r.runtimeErr != nil {
		err = multierr.Append(err, r.runtimeErr)
	}
	return err
}

// Reset 清空错误和警告（REPL 每行之间调用）
func (r *Reporter) Reset() {
	r.errors = nil
	r.warnings = nil
	r.runtimeErr = nil
}
