package interp

import (
	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/i18n"
)

// outcomeKind 语句执行结果
type outcomeKind int

const (
	outcomeNormal outcomeKind = iota
	outcomeBreak
	outcomeReturn
)

// outcome break 和 return 沿语句逐层返回，分别由循环和函数调用接住
type outcome struct {
	kind  outcomeKind
	value Value
}

var normal = outcome{kind: outcomeNormal}

// executeStmts 在 env 中执行一组语句，返回前恢复原来的作用域
func (in *Interpreter) executeStmts(stmts []ast.Stmt, env *Environment) (outcome, error) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		out, err := in.execute(stmt)
		if err != nil || out.kind != outcomeNormal {
			return out, err
		}
	}
	return normal, nil
}

func (in *Interpreter) execute(stmt ast.Stmt) (outcome, error) {
	switch s := stmt.(type) {
	case *ast.Expression:
		_, err := in.evaluate(s.Expr)
		return normal, err

	case *ast.Print:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return normal, err
		}
		in.println(v)
		return normal, nil

	case *ast.Var:
		var v Value // 没有初始化器时保持未初始化
		if s.Init != nil {
			var err error
			if v, err = in.evaluate(s.Init); err != nil {
				return normal, err
			}
		}
		in.define(s.Name, v)
		return normal, nil

	case *ast.Block:
		return in.executeStmts(s.Stmts, NewEnvironment(in.env))

	case *ast.If:
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return normal, err
		}
		if cond.IsTruthy() {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return normal, nil

	case *ast.While:
		return in.executeWhile(s)

	case *ast.Function:
		in.define(s.Name, NewFunction(newFunction(s, in.env, false)))
		return normal, nil

	case *ast.Class:
		return normal, in.executeClass(s)

	case *ast.Return:
		v := NilValue
		if s.Value != nil {
			var err error
			if v, err = in.evaluate(s.Value); err != nil {
				return normal, err
			}
		}
		return outcome{kind: outcomeReturn, value: v}, nil

	case *ast.Break:
		return outcome{kind: outcomeBreak}, nil
	}
	return normal, nil
}

func (in *Interpreter) executeWhile(s *ast.While) (outcome, error) {
	for {
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return normal, err
		}
		if !cond.IsTruthy() {
			return normal, nil
		}

		out, err := in.execute(s.Body)
		if err != nil {
			return normal, err
		}
		switch out.kind {
		case outcomeBreak:
			return normal, nil
		case outcomeReturn:
			return out, nil
		}
	}
}

// executeClass 先占用类名的位置，再创建方法闭包，最后写入类对象
//
// 有父类时方法闭包外面多一层作用域，slot 0 是 super。
func (in *Interpreter) executeClass(s *ast.Class) error {
	slot := -1
	if in.env != nil {
		slot = in.env.Define(Value{})
	}

	var superclass *Class
	closure := in.env
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		if v.Type != ValClass {
			return errors.NewRuntimeError(errors.R0304, s.Superclass.Name,
				i18n.T(i18n.ErrSuperclassNotClass))
		}
		superclass = v.AsClass()

		closure = NewEnvironment(in.env)
		closure.Define(NewClass(superclass))
	}

	methods := make(map[string]*Function)
	statics := make(map[string]*Function)
	getters := make(map[string]*Function)
	for _, m := range s.Methods {
		switch m.Kind {
		case ast.KindStaticMethod:
			statics[m.Name.Lexeme] = newFunction(m, closure, false)
		case ast.KindGetter:
			getters[m.Name.Lexeme] = newFunction(m, closure, false)
		default:
			methods[m.Name.Lexeme] = newFunction(m, closure, m.Name.Lexeme == "init")
		}
	}

	class := NewClass(newClass(s.Name.Lexeme, superclass, methods, statics, getters))
	if slot >= 0 {
		in.env.AssignAt(0, slot, class)
	} else {
		in.globals[s.Name.Lexeme] = class
	}
	return nil
}
