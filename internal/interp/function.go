package interp

import (
	"fmt"

	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/token"
)

// Callable 可以出现在调用表达式左侧的值：函数和类
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// Function 用户定义的函数、方法、getter 或 lambda 以及它捕获的作用域
type Function struct {
	Name          string
	Params        []token.Token
	Body          []ast.Stmt
	Closure       *Environment
	Kind          ast.FunctionKind
	IsInitializer bool
	IsLambda      bool
}

// newFunction 由函数声明创建闭包
func newFunction(decl *ast.Function, closure *Environment, isInitializer bool) *Function {
	return &Function{
		Name:          decl.Name.Lexeme,
		Params:        decl.Params,
		Body:          decl.Body,
		Closure:       closure,
		Kind:          decl.Kind,
		IsInitializer: isInitializer,
	}
}

// newLambda 由匿名函数表达式创建闭包
func newLambda(expr *ast.Lambda, closure *Environment) *Function {
	return &Function{
		Name:     "lambda",
		Params:   expr.Params,
		Body:     expr.Body,
		Closure:  closure,
		Kind:     ast.KindFunction,
		IsLambda: true,
	}
}

// Arity 参数个数
func (f *Function) Arity() int {
	return len(f.Params)
}

// IsGetter 报告是否是无参数列表的 getter
func (f *Function) IsGetter() bool {
	return f.Kind == ast.KindGetter
}

// Bind 返回绑定到 inst 的方法：新作用域的 slot 0 是 this
func (f *Function) Bind(inst *Instance) *Function {
	env := NewEnvironment(f.Closure)
	env.Define(NewInstance(inst))

	bound := *f
	bound.Closure = env
	return &bound
}

// Call 在闭包之上新建作用域，按顺序定义参数后直接在其中执行函数体
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	if err := in.enterCall(); err != nil {
		return NilValue, err
	}
	defer in.leaveCall()

	env := NewEnvironment(f.Closure)
	for _, arg := range args {
		env.Define(arg)
	}

	out, err := in.executeStmts(f.Body, env)
	if err != nil {
		return NilValue, err
	}

	// init 无论是否执行了 return; 都返回 this
	if f.IsInitializer {
		return f.Closure.GetAt(0, 0), nil
	}
	if out.kind == outcomeReturn {
		return out.value, nil
	}
	return NilValue, nil
}

func (f *Function) String() string {
	if f.IsLambda {
		return "<fn lambda>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}
