package interp

import (
	"fmt"

	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/i18n"
	"github.com/tangzhangming/lox/internal/token"
)

// ============================================================================
// Class
// ============================================================================

// Class 运行时的类对象，本身也可以调用（构造实例）
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
	Statics    map[string]*Function
	Getters    map[string]*Function
}

// newClass 创建类，nil 的方法表会被替换为空表
func newClass(name string, superclass *Class, methods, statics, getters map[string]*Function) *Class {
	if methods == nil {
		methods = make(map[string]*Function)
	}
	if statics == nil {
		statics = make(map[string]*Function)
	}
	if getters == nil {
		getters = make(map[string]*Function)
	}
	return &Class{
		Name:       name,
		Superclass: superclass,
		Methods:    methods,
		Statics:    statics,
		Getters:    getters,
	}
}

// FindMethod 沿继承链查找实例方法
func (c *Class) FindMethod(name string) *Function {
	for k := c; k != nil; k = k.Superclass {
		if m, ok := k.Methods[name]; ok {
			return m
		}
	}
	return nil
}

// FindStatic 沿继承链查找静态方法
func (c *Class) FindStatic(name string) *Function {
	for k := c; k != nil; k = k.Superclass {
		if m, ok := k.Statics[name]; ok {
			return m
		}
	}
	return nil
}

// FindGetter 沿继承链查找 getter
func (c *Class) FindGetter(name string) *Function {
	for k := c; k != nil; k = k.Superclass {
		if m, ok := k.Getters[name]; ok {
			return m
		}
	}
	return nil
}

// Arity 等于 init 的参数个数，没有 init 时为 0
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call 构造实例，有 init 时以绑定的 init 完成初始化
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	inst := NewInstanceOf(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(inst).Call(in, args); err != nil {
			return NilValue, err
		}
	}
	return NewInstance(inst), nil
}

// Get 类对象上的属性访问只查静态方法
func (c *Class) Get(name token.Token) (Value, error) {
	if m := c.FindStatic(name.Lexeme); m != nil {
		return NewFunction(m), nil
	}
	return NilValue, errors.NewRuntimeError(errors.R0303, name,
		i18n.T(i18n.ErrUndefinedStatic, name.Lexeme))
}

// Set 类对象不能设置属性
func (c *Class) Set(name token.Token, _ Value) error {
	return errors.NewRuntimeError(errors.R0302, name,
		i18n.T(i18n.ErrSetStaticProperty, name.Lexeme, c.Name))
}

func (c *Class) String() string {
	return c.Name + " class"
}

// ============================================================================
// Instance
// ============================================================================

// Instance 类的实例
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// NewInstanceOf 分配一个没有字段的实例
func NewInstanceOf(c *Class) *Instance {
	return &Instance{Class: c, Fields: make(map[string]Value)}
}

// Get 依次查找字段、getter、方法；getter 会立即执行
func (inst *Instance) Get(in *Interpreter, name token.Token) (Value, error) {
	if v, ok := inst.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if g := inst.Class.FindGetter(name.Lexeme); g != nil {
		return g.Bind(inst).Call(in, nil)
	}
	if m := inst.Class.FindMethod(name.Lexeme); m != nil {
		return NewFunction(m.Bind(inst)), nil
	}
	return NilValue, errors.NewRuntimeError(errors.R0303, name,
		i18n.T(i18n.ErrUndefinedProperty, name.Lexeme))
}

// Set 写字段
func (inst *Instance) Set(name token.Token, v Value) {
	inst.Fields[name.Lexeme] = v
}

func (inst *Instance) String() string {
	return fmt.Sprintf("%s instance", inst.Class.Name)
}
