// Package errors 提供 Lox 解释器的诊断模型
//
// 词法、语法、静态分析阶段产生 CompileError，执行阶段产生 RuntimeError。
// 各阶段只依赖 Sink 接口，Reporter 负责计数、格式化和输出。
package errors

import "github.com/tangzhangming/lox/internal/i18n"

// ============================================================================
// 错误级别
// ============================================================================

// Level 错误级别
type Level int

const (
	LevelError   Level = iota // 错误（critical，阻止执行）
	LevelWarning              // 警告
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ============================================================================
// 静态错误码 (E 开头) 和警告码 (W 开头)
// ============================================================================

const (
	// E0001-E0099: 语法错误
	E0001 = "E0001" // 语法错误
	E0002 = "E0002" // 意外的字符
	E0003 = "E0003" // 未闭合的字符串
	E0004 = "E0004" // 未闭合的注释
	E0010 = "E0010" // 参数或实参过多
	E0011 = "E0011" // 无效的赋值目标

	// E0100-E0199: 变量错误
	E0101 = "E0101" // 变量重复声明
	E0102 = "E0102" // 在自身初始化表达式中读取

	// E0300-E0399: 函数 / 控制流错误
	E0300 = "E0300" // 顶层 return
	E0303 = "E0303" // 初始化方法返回值
	E0304 = "E0304" // break 在循环外

	// E0400-E0499: 类错误
	E0402 = "E0402" // this 在类外使用
	E0403 = "E0403" // this 在静态方法中使用
	E0404 = "E0404" // super 使用不当
	E0405 = "E0405" // 类继承自身

	W0001 = "W0001" // 未使用的局部变量
	W0002 = "W0002" // 二元表达式缺少左操作数
)

// ============================================================================
// 运行时错误码 (R 开头)
// ============================================================================

const (
	R0001 = "R0001" // 通用运行时错误

	R0100 = "R0100" // 未定义的变量
	R0101 = "R0101" // 变量未初始化

	R0200 = "R0200" // 除以零
	R0201 = "R0201" // 操作数类型错误

	R0300 = "R0300" // 不可调用
	R0301 = "R0301" // 参数数量错误
	R0302 = "R0302" // 非实例上的属性/字段
	R0303 = "R0303" // 未定义的属性
	R0304 = "R0304" // 父类不是类

	R0400 = "R0400" // 栈溢出
)

// ============================================================================
// 修复建议
// ============================================================================

// hintIDs 错误码到修复建议消息的映射
var hintIDs = map[string]string{
	E0101: i18n.HintRedeclared,
	E0102: i18n.HintSelfInit,
	E0303: i18n.HintReturnInit,
	E0304: i18n.HintBreak,
	E0402: i18n.HintThis,
	E0403: i18n.HintThis,
	E0404: i18n.HintSuper,
	W0001: i18n.HintUnused,
	R0100: i18n.HintUndefined,
	R0101: i18n.HintUninitialized,
	R0200: i18n.HintDivisionByZero,
	R0300: i18n.HintNotCallable,
	R0301: i18n.HintArity,
	R0400: i18n.HintStackOverflow,
}

// Hints 返回错误码对应的修复建议（按当前语言）
func Hints(code string) []string {
	id, ok := hintIDs[code]
	if !ok {
		return nil
	}
	return []string{i18n.T(id)}
}

// IsWarningCode 检查是否为警告码
func IsWarningCode(code string) bool {
	return len(code) > 0 && code[0] == 'W'
}
