package interp

// Environment 一个局部作用域的运行时存储
//
// 变量按声明顺序占用 slot，和静态分析阶段分配的序号一一对应。
// nil 的 *Environment 表示全局作用域，全局变量按名字存放在解释器中。
type Environment struct {
	outer *Environment
	slots []Value
}

// NewEnvironment 创建嵌套在 outer 中的作用域
func NewEnvironment(outer *Environment) *Environment {
	return &Environment{outer: outer}
}

// Outer 返回外层作用域
func (e *Environment) Outer() *Environment {
	return e.outer
}

// Len 返回已定义的 slot 数
func (e *Environment) Len() int {
	return len(e.slots)
}

// Define 追加一个 slot，返回它的序号
func (e *Environment) Define(v Value) int {
	e.slots = append(e.slots, v)
	return len(e.slots) - 1
}

// Ancestor 向外走 distance 层
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.outer
	}
	return env
}

// GetAt 读取 (distance, slot)，位置不存在时返回零值（未初始化）
func (e *Environment) GetAt(distance, slot int) Value {
	env := e.Ancestor(distance)
	if env == nil || slot < 0 || slot >= len(env.slots) {
		return Value{}
	}
	return env.slots[slot]
}

// AssignAt 写入 (distance, slot)
func (e *Environment) AssignAt(distance, slot int, v Value) bool {
	env := e.Ancestor(distance)
	if env == nil || slot < 0 || slot >= len(env.slots) {
		return false
	}
	env.slots[slot] = v
	return true
}
