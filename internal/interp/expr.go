package interp

import (
	"go.uber.org/zap"

	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/i18n"
	"github.com/tangzhangming/lox/internal/token"
)

func (in *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return FromLiteral(e.Value), nil

	case *ast.Grouping:
		return in.evaluate(e.Expr)

	case *ast.Variable:
		return in.lookUp(e, e.Name)

	case *ast.Assign:
		v, err := in.evaluate(e.Value)
		if err != nil {
			return NilValue, err
		}
		if err := in.assign(e, e.Name, v); err != nil {
			return NilValue, err
		}
		return v, nil

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		left, err := in.evaluate(e.Left)
		if err != nil {
			return NilValue, err
		}
		if e.Operator.Type == token.OR {
			if left.IsTruthy() {
				return left, nil
			}
		} else if !left.IsTruthy() {
			return left, nil
		}
		return in.evaluate(e.Right)

	case *ast.Ternary:
		cond, err := in.evaluate(e.Cond)
		if err != nil {
			return NilValue, err
		}
		if cond.IsTruthy() {
			return in.evaluate(e.Then)
		}
		return in.evaluate(e.Else)

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Get:
		return in.evalGet(e)

	case *ast.Set:
		return in.evalSet(e)

	case *ast.This:
		return in.lookUp(e, e.Keyword)

	case *ast.Super:
		return in.evalSuper(e)

	case *ast.Lambda:
		return NewFunction(newLambda(e, in.env)), nil
	}
	return NilValue, nil
}

// ============================================================================
// 运算符
// ============================================================================

func (in *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return NilValue, err
	}
	switch e.Operator.Type {
	case token.MINUS:
		if right.Type != ValNumber {
			return NilValue, operandError(e.Operator, i18n.ErrOperandMustBeNumber)
		}
		return NewNumber(-right.AsNumber()), nil
	case token.BANG:
		return NewBool(!right.IsTruthy()), nil
	}
	return NilValue, nil
}

func (in *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	if e.Left == nil {
		return NilValue, errors.NewRuntimeError(errors.R0001, e.Operator,
			i18n.T(i18n.ErrMissingLeftOperand))
	}

	left, err := in.evaluate(e.Left)
	if err != nil {
		return NilValue, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return NilValue, err
	}

	op := e.Operator
	switch op.Type {
	case token.COMMA:
		return right, nil
	case token.EQUAL_EQUAL:
		return NewBool(left.Equals(right)), nil
	case token.BANG_EQUAL:
		return NewBool(!left.Equals(right)), nil
	case token.PLUS:
		return add(op, left, right)
	}

	if left.Type != ValNumber || right.Type != ValNumber {
		return NilValue, operandError(op, i18n.ErrOperandsMustBeNumbers)
	}
	a, b := left.AsNumber(), right.AsNumber()

	switch op.Type {
	case token.MINUS:
		return NewNumber(a - b), nil
	case token.STAR:
		return NewNumber(a * b), nil
	case token.SLASH:
		if b == 0 {
			return NilValue, errors.NewRuntimeError(errors.R0200, op, i18n.T(i18n.ErrDivisionByZero))
		}
		return NewNumber(a / b), nil
	case token.GREATER:
		return NewBool(a > b), nil
	case token.GREATER_EQUAL:
		return NewBool(a >= b), nil
	case token.LESS:
		return NewBool(a < b), nil
	case token.LESS_EQUAL:
		return NewBool(a <= b), nil
	}
	return NilValue, nil
}

// add 数字相加；任意一边是字符串时把另一边转成文本后拼接
func add(op token.Token, left, right Value) (Value, error) {
	switch {
	case left.Type == ValNumber && right.Type == ValNumber:
		return NewNumber(left.AsNumber() + right.AsNumber()), nil
	case left.Type == ValString || right.Type == ValString:
		return NewString(left.String() + right.String()), nil
	}
	return NilValue, operandError(op, i18n.ErrOperandsPlus)
}

func operandError(op token.Token, msgID string) error {
	return errors.NewRuntimeError(errors.R0201, op, i18n.T(msgID))
}

// ============================================================================
// 调用与属性
// ============================================================================

func (in *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return NilValue, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, arg := range e.Args {
		v, err := in.evaluate(arg)
		if err != nil {
			return NilValue, err
		}
		args = append(args, v)
	}

	fn, ok := callee.Callable()
	if !ok {
		return NilValue, errors.NewRuntimeError(errors.R0300, e.Paren, i18n.T(i18n.ErrNotCallable))
	}
	if len(args) != fn.Arity() {
		return NilValue, errors.NewRuntimeError(errors.R0301, e.Paren,
			i18n.T(i18n.ErrArity, fn.Arity(), len(args)))
	}

	if ce := in.logger.Check(zap.DebugLevel, "call"); ce != nil {
		ce.Write(zap.String("callee", callee.String()), zap.Int("args", len(args)),
			zap.Int("depth", in.depth), zap.Int("line", e.Paren.Line()))
	}

	in.callSite = e.Paren
	return fn.Call(in, args)
}

func (in *Interpreter) evalGet(e *ast.Get) (Value, error) {
	object, err := in.evaluate(e.Object)
	if err != nil {
		return NilValue, err
	}
	switch object.Type {
	case ValInstance:
		in.callSite = e.Name
		return object.AsInstance().Get(in, e.Name)
	case ValClass:
		return object.AsClass().Get(e.Name)
	}
	return NilValue, errors.NewRuntimeError(errors.R0302, e.Name, i18n.T(i18n.ErrPropertyOnNonInstance))
}

func (in *Interpreter) evalSet(e *ast.Set) (Value, error) {
	object, err := in.evaluate(e.Object)
	if err != nil {
		return NilValue, err
	}
	switch object.Type {
	case ValInstance:
	case ValClass:
		return NilValue, object.AsClass().Set(e.Name, NilValue)
	default:
		return NilValue, errors.NewRuntimeError(errors.R0302, e.Name, i18n.T(i18n.ErrFieldOnNonInstance))
	}

	v, err := in.evaluate(e.Value)
	if err != nil {
		return NilValue, err
	}
	object.AsInstance().Set(e.Name, v)
	return v, nil
}

// evalSuper super 在 (d, 0)，this 在 (d-1, 0)
func (in *Interpreter) evalSuper(e *ast.Super) (Value, error) {
	loc, ok := in.locals[e]
	if !ok {
		return NilValue, errors.NewRuntimeError(errors.R0100, e.Keyword,
			i18n.T(i18n.ErrUndefinedVariable, "super"))
	}
	superclass := in.env.GetAt(loc.distance, 0).AsClass()
	this := in.env.GetAt(loc.distance-1, 0).AsInstance()
	if superclass == nil || this == nil {
		return NilValue, errors.NewRuntimeError(errors.R0001, e.Keyword,
			i18n.T(i18n.ErrUndefinedProperty, e.Method.Lexeme))
	}

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return NilValue, errors.NewRuntimeError(errors.R0303, e.Method,
			i18n.T(i18n.ErrUndefinedProperty, e.Method.Lexeme))
	}
	return NewFunction(method.Bind(this)), nil
}
