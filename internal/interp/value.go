package interp

import (
	"github.com/tangzhangming/lox/internal/token"
)

// ValueType 值类型
type ValueType byte

const (
	// ValUninitialized 是零值：声明了但没有初始化器的变量（var x;）
	ValUninitialized ValueType = iota
	ValNil
	ValBool
	ValNumber
	ValString
	ValFunction
	ValClass
	ValInstance
)

var valueTypeNames = [...]string{
	ValUninitialized: "uninitialized",
	ValNil:           "nil",
	ValBool:          "bool",
	ValNumber:        "number",
	ValString:        "string",
	ValFunction:      "function",
	ValClass:         "class",
	ValInstance:      "instance",
}

func (t ValueType) String() string {
	if int(t) < len(valueTypeNames) {
		return valueTypeNames[t]
	}
	return "unknown"
}

// Value 运行时值
//
// Data 的实际类型：bool、float64、string、*Function、*Class、*Instance。
type Value struct {
	Type ValueType
	Data interface{}
}

// 预定义常量值
var (
	NilValue   = Value{Type: ValNil}
	TrueValue  = Value{Type: ValBool, Data: true}
	FalseValue = Value{Type: ValBool, Data: false}
)

// NewNil 创建 nil 值
func NewNil() Value {
	return NilValue
}

// NewBool 创建布尔值
func NewBool(b bool) Value {
	if b {
		return TrueValue
	}
	return FalseValue
}

// NewNumber 创建数字值
func NewNumber(n float64) Value {
	return Value{Type: ValNumber, Data: n}
}

// NewString 创建字符串值
func NewString(s string) Value {
	return Value{Type: ValString, Data: s}
}

// NewFunction 包装函数（包括绑定方法和 lambda）
func NewFunction(fn *Function) Value {
	return Value{Type: ValFunction, Data: fn}
}

// NewClass 包装类
func NewClass(c *Class) Value {
	return Value{Type: ValClass, Data: c}
}

// NewInstance 包装实例
func NewInstance(inst *Instance) Value {
	return Value{Type: ValInstance, Data: inst}
}

// FromLiteral 把 token 字面量（nil / bool / float64 / string）转换为运行时值
func FromLiteral(lit interface{}) Value {
	switch v := lit.(type) {
	case nil:
		return NilValue
	case bool:
		return NewBool(v)
	case float64:
		return NewNumber(v)
	case string:
		return NewString(v)
	case Value:
		return v
	}
	return NilValue
}

// ============================================================================
// 取值
// ============================================================================

func (v Value) AsBool() bool {
	b, _ := v.Data.(bool)
	return b
}

func (v Value) AsNumber() float64 {
	n, _ := v.Data.(float64)
	return n
}

func (v Value) AsString() string {
	s, _ := v.Data.(string)
	return s
}

func (v Value) AsFunction() *Function {
	fn, _ := v.Data.(*Function)
	return fn
}

func (v Value) AsClass() *Class {
	c, _ := v.Data.(*Class)
	return c
}

func (v Value) AsInstance() *Instance {
	inst, _ := v.Data.(*Instance)
	return inst
}

// IsInitialized 报告值是否已经被赋值过
func (v Value) IsInitialized() bool {
	return v.Type != ValUninitialized
}

// IsTruthy 只有 nil 和 false 为假
func (v Value) IsTruthy() bool {
	switch v.Type {
	case ValNil, ValUninitialized:
		return false
	case ValBool:
		return v.AsBool()
	default:
		return true
	}
}

// Callable 返回值对应的可调用对象，不可调用时 ok 为 false
func (v Value) Callable() (Callable, bool) {
	switch v.Type {
	case ValFunction:
		return v.AsFunction(), true
	case ValClass:
		return v.AsClass(), true
	}
	return nil, false
}

// Equals 类型不同则不等；基本类型按值比较，函数、类、实例按同一性比较
func (v Value) Equals(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case ValNil, ValUninitialized:
		return true
	case ValBool:
		return v.AsBool() == other.AsBool()
	case ValNumber:
		return v.AsNumber() == other.AsNumber()
	case ValString:
		return v.AsString() == other.AsString()
	default:
		return v.Data == other.Data
	}
}

// String 返回 print 使用的文本形式
func (v Value) String() string {
	switch v.Type {
	case ValNil, ValUninitialized:
		return "nil"
	case ValBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case ValNumber:
		return token.FormatNumber(v.AsNumber())
	case ValString:
		return v.AsString()
	case ValFunction:
		return v.AsFunction().String()
	case ValClass:
		return v.AsClass().String()
	case ValInstance:
		return v.AsInstance().String()
	}
	return "<unknown>"
}
