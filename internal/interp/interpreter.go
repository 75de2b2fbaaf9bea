// Package interp 是树遍历解释器
//
// 解释器直接在经过静态分析的 AST 上求值。局部变量通过分析阶段记录的
// (distance, slot) 访问，顶层声明是按名字存放的全局变量。
// return 和 break 作为语句执行结果逐层返回，运行时错误作为普通 error 返回。
package interp

import (
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/i18n"
	"github.com/tangzhangming/lox/internal/token"
)

// DefaultMaxCallDepth 默认的最大调用深度
const DefaultMaxCallDepth = 1024

// location 局部变量的静态位置
type location struct {
	distance int
	slot     int
}

// Interpreter 解释器
//
// 全局变量在多次 Interpret 之间保留，REPL 依赖这一点。
type Interpreter struct {
	out    io.Writer
	logger *zap.Logger

	globals map[string]Value
	locals  map[ast.Expr]location
	env     *Environment

	depth        int
	maxCallDepth int
	callSite     token.Token // 最近一次调用的位置，栈溢出时报告
}

// Option 配置解释器
type Option func(*Interpreter)

// WithOutput 设置 print 的输出目标
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) {
		if w != nil {
			in.out = w
		}
	}
}

// WithLogger 设置调试日志，函数调用以 Debug 级别记录
func WithLogger(logger *zap.Logger) Option {
	return func(in *Interpreter) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithMaxCallDepth 设置最大调用深度，<= 0 时使用默认值
func WithMaxCallDepth(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.maxCallDepth = n
		}
	}
}

// New 创建解释器
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		out:          os.Stdout,
		logger:       zap.NewNop(),
		globals:      make(map[string]Value),
		locals:       make(map[ast.Expr]location),
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Resolve 记录局部变量引用的位置，由静态分析器调用
func (in *Interpreter) Resolve(expr ast.Expr, distance, slot int) {
	in.locals[expr] = location{distance: distance, slot: slot}
}

// ============================================================================
// 入口
// ============================================================================

// Interpret 执行一段程序
//
// 整个程序只有一条表达式语句时，输出它的值。
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	if len(stmts) == 1 {
		if es, ok := stmts[0].(*ast.Expression); ok {
			v, err := in.Evaluate(es.Expr)
			if err != nil {
				return err
			}
			in.println(v)
			return nil
		}
	}
	return in.Execute(stmts)
}

// Execute 在全局作用域中依次执行语句，遇到第一个运行时错误即停止
func (in *Interpreter) Execute(stmts []ast.Stmt) error {
	in.env = nil
	in.depth = 0
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		if _, err := in.execute(stmt); err != nil {
			in.env = nil
			return err
		}
	}
	return nil
}

// Evaluate 在全局作用域中对单个表达式求值
func (in *Interpreter) Evaluate(expr ast.Expr) (Value, error) {
	in.env = nil
	in.depth = 0
	v, err := in.evaluate(expr)
	in.env = nil
	return v, err
}

// Globals 返回已定义的全局变量名（排序）
func (in *Interpreter) Globals() []string {
	names := make([]string, 0, len(in.globals))
	for name := range in.globals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global 读取全局变量
func (in *Interpreter) Global(name string) (Value, bool) {
	v, ok := in.globals[name]
	return v, ok
}

// Reset 清空全局变量和解析记录
func (in *Interpreter) Reset() {
	in.globals = make(map[string]Value)
	in.locals = make(map[ast.Expr]location)
	in.env = nil
	in.depth = 0
}

// ============================================================================
// 辅助
// ============================================================================

func (in *Interpreter) println(v Value) {
	fmt.Fprintln(in.out, v.String())
}

// define 在当前作用域定义变量：局部追加 slot，全局按名字存放
func (in *Interpreter) define(name token.Token, v Value) {
	if in.env == nil {
		in.globals[name.Lexeme] = v
		return
	}
	in.env.Define(v)
}

// lookUp 读取变量，未初始化的变量是运行时错误
func (in *Interpreter) lookUp(expr ast.Expr, name token.Token) (Value, error) {
	var (
		v  Value
		ok = true
	)
	if loc, resolved := in.locals[expr]; resolved {
		v = in.env.GetAt(loc.distance, loc.slot)
	} else {
		v, ok = in.globals[name.Lexeme]
	}
	if !ok {
		return NilValue, errors.NewRuntimeError(errors.R0100, name,
			i18n.T(i18n.ErrUndefinedVariable, name.Lexeme))
	}
	if !v.IsInitialized() {
		return NilValue, errors.NewRuntimeError(errors.R0101, name,
			i18n.T(i18n.ErrUninitializedVariable, name.Lexeme))
	}
	return v, nil
}

// assign 给已存在的变量赋值
func (in *Interpreter) assign(expr ast.Expr, name token.Token, v Value) error {
	if loc, resolved := in.locals[expr]; resolved {
		in.env.AssignAt(loc.distance, loc.slot, v)
		return nil
	}
	if _, ok := in.globals[name.Lexeme]; !ok {
		return errors.NewRuntimeError(errors.R0100, name,
			i18n.T(i18n.ErrUndefinedVariable, name.Lexeme))
	}
	in.globals[name.Lexeme] = v
	return nil
}

func (in *Interpreter) enterCall() error {
	if in.depth >= in.maxCallDepth {
		return errors.NewRuntimeError(errors.R0400, in.callSite, i18n.T(i18n.ErrStackOverflow))
	}
	in.depth++
	return nil
}

func (in *Interpreter) leaveCall() {
	in.depth--
}
