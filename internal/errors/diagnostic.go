package errors

import (
	"fmt"

	"github.com/tangzhangming/lox/internal/token"
)

// ============================================================================
// 编译错误（词法 / 语法 / 静态分析）
// ============================================================================

// CompileError 静态诊断
type CompileError struct {
	Code    string   // 错误码 (E0001 / W0001)
	Level   Level    // 错误级别
	Message string   // 主消息
	Where   string   // 位置描述："" / " at end" / " at 'x'"
	Line    int      // 行号
	Column  int      // 列号（1-based，0 表示未知）
	Length  int      // 标注长度
	Hints   []string // 修复建议
}

// Error 实现 error 接口，输出 "[line L] Error<where>: msg"
func (e *CompileError) Error() string {
	label := "Error"
	if e.Level == LevelWarning {
		label = "Warning"
	}
	return fmt.Sprintf("[line %d] %s%s: %s", e.Line, label, e.Where, e.Message)
}

// Critical 是否为阻止执行的错误
func (e *CompileError) Critical() bool {
	return e.Level == LevelError
}

// AtToken 创建一个定位到 token 的诊断
func AtToken(code string, level Level, tok token.Token, message string) *CompileError {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Type == token.EOF {
		where = " at end"
	}
	length := len(tok.Lexeme)
	if length == 0 {
		length = 1
	}
	return &CompileError{
		Code:    code,
		Level:   level,
		Message: message,
		Where:   where,
		Line:    tok.Pos.Line,
		Column:  tok.Pos.Column,
		Length:  length,
	}
}

// AtLine 创建一个只有位置、没有 token 的诊断（词法错误使用）
func AtLine(code string, pos token.Position, message string) *CompileError {
	return &CompileError{
		Code:    code,
		Level:   LevelError,
		Message: message,
		Line:    pos.Line,
		Column:  pos.Column,
		Length:  1,
	}
}

// ============================================================================
// 运行时错误
// ============================================================================

// RuntimeError 运行时错误，归属到出错的 token
type RuntimeError struct {
	Code    string      // 错误码 (R0100)
	Message string      // 主消息
	Token   token.Token // 出错位置
	Hints   []string    // 修复建议
}

// NewRuntimeError 创建运行时错误
func NewRuntimeError(code string, tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Code: code, Message: message, Token: tok}
}

// Line 出错行号
func (e *RuntimeError) Line() int {
	return e.Token.Pos.Line
}

// Error 实现 error 接口，输出 "[line L] RuntimeError: msg"
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] RuntimeError: %s", e.Token.Pos.Line, e.Message)
}
