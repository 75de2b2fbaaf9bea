package token

import (
	"fmt"
	"math"
	"strconv"
)

// ============================================================================
// Token 类型定义
// ============================================================================
//
// TokenType 使用 iota 自动编号，按类别分组：
// 1. 特殊标记（EOF）
// 2. 单字符 / 双字符标点
// 3. 字面量（标识符、字符串、数字）
// 4. 关键字
//
// ============================================================================

// TokenType 表示 Token 的类型
type TokenType int

const (
	// ----------------------------------------------------------
	// 特殊标记
	// ----------------------------------------------------------
	EOF TokenType = iota // 文件结束

	// ----------------------------------------------------------
	// 单字符标点
	// ----------------------------------------------------------
	LEFT_PAREN    // (
	RIGHT_PAREN   // )
	LEFT_BRACE    // {
	RIGHT_BRACE   // }
	COMMA         // ,
	DOT           // .
	MINUS         // -
	PLUS          // +
	SEMICOLON     // ;
	COLON         // :
	QUESTION_MARK // ?
	SLASH         // /
	STAR          // *

	// ----------------------------------------------------------
	// 一到两个字符的运算符
	// ----------------------------------------------------------
	BANG          // !
	BANG_EQUAL    // !=
	EQUAL         // =
	EQUAL_EQUAL   // ==
	GREATER       // >
	GREATER_EQUAL // >=
	LESS          // <
	LESS_EQUAL    // <=

	// ----------------------------------------------------------
	// 字面量
	// ----------------------------------------------------------
	IDENTIFIER // 标识符
	STRING     // 字符串字面量
	NUMBER     // 数字字面量

	// ----------------------------------------------------------
	// 关键字
	// ----------------------------------------------------------
	keyword_beg // 关键字起始标记（不是实际 token）
	AND         // and
	CLASS       // class
	ELSE        // else
	FALSE       // false
	FUN         // fun
	FOR         // for
	IF          // if
	NIL         // nil
	OR          // or
	PRINT       // print
	RETURN      // return
	SUPER       // super
	THIS        // this
	TRUE        // true
	VAR         // var
	WHILE       // while
	BREAK       // break
	keyword_end // 关键字结束标记（不是实际 token）
)

// ============================================================================
// Token 类型名称映射
// ============================================================================

var tokenNames = map[TokenType]string{
	EOF: "EOF",

	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	COMMA:         "COMMA",
	DOT:           "DOT",
	MINUS:         "MINUS",
	PLUS:          "PLUS",
	SEMICOLON:     "SEMICOLON",
	COLON:         "COLON",
	QUESTION_MARK: "QUESTION_MARK",
	SLASH:         "SLASH",
	STAR:          "STAR",

	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",

	IDENTIFIER: "IDENTIFIER",
	STRING:     "STRING",
	NUMBER:     "NUMBER",

	AND:    "AND",
	CLASS:  "CLASS",
	ELSE:   "ELSE",
	FALSE:  "FALSE",
	FUN:    "FUN",
	FOR:    "FOR",
	IF:     "IF",
	NIL:    "NIL",
	OR:     "OR",
	PRINT:  "PRINT",
	RETURN: "RETURN",
	SUPER:  "SUPER",
	THIS:   "THIS",
	TRUE:   "TRUE",
	VAR:    "VAR",
	WHILE:  "WHILE",
	BREAK:  "BREAK",
}

// ============================================================================
// 关键字查找表
// ============================================================================

var keywords = map[string]TokenType{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
	"break":  BREAK,
}

// LookupIdent 查找标识符是否为关键字，不是则返回 IDENTIFIER
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENTIFIER
}

// IsKeyword 判断 TokenType 是否为关键字
func IsKeyword(t TokenType) bool {
	return t > keyword_beg && t < keyword_end
}

// Keywords 返回全部关键字（补全、高亮使用）
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}

// String 返回 TokenType 的字符串表示
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// ============================================================================
// Position - 源代码位置
// ============================================================================

// Position 表示源代码中的位置
type Position struct {
	Line   int // 行号 (从1开始)
	Column int // 列号 (从1开始，按字节计)
	Offset int // 字节偏移量 (从0开始)
}

// String 返回 "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid 检查位置是否有效
func (p Position) IsValid() bool {
	return p.Line > 0
}

// ============================================================================
// Token - 词法单元
// ============================================================================

// Token 表示一个词法单元
//
// Literal 只在 NUMBER（float64）和 STRING（string）上有值。
type Token struct {
	Type    TokenType   // Token 类型
	Lexeme  string      // 源码中的原始文本
	Literal interface{} // 字面量值
	Pos     Position    // 起始位置
}

// Line 返回 token 所在行，错误报告使用
func (t Token) Line() int {
	return t.Pos.Line
}

// End 返回 token 结束位置（不含）。多行字符串按最后一行计算。
func (t Token) End() Position {
	end := t.Pos
	for i := 0; i < len(t.Lexeme); i++ {
		if t.Lexeme[i] == '\n' {
			end.Line++
			end.Column = 1
		} else {
			end.Column++
		}
		end.Offset++
	}
	return end
}

// String 返回 Token 的字符串表示（用于 -tokens 输出和调试）
func (t Token) String() string {
	switch t.Type {
	case NUMBER:
		return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, FormatNumber(t.Literal.(float64)))
	case STRING:
		return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, t.Literal)
	default:
		return fmt.Sprintf("%s %s null", t.Type, t.Lexeme)
	}
}

// FormatNumber 按语言的规则输出数字：整数值不带小数部分，
// 其余使用最短的十进制表示，绝对值很大时改用指数形式
func FormatNumber(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		switch {
		case math.IsNaN(v):
			return "NaN"
		case v > 0:
			return "Infinity"
		default:
			return "-Infinity"
		}
	}
	if math.Abs(v) >= 1e21 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ============================================================================
// Token 构造函数
// ============================================================================

// New 创建一个新的 Token
func New(tokenType TokenType, lexeme string, pos Position) Token {
	return Token{
		Type:   tokenType,
		Lexeme: lexeme,
		Pos:    pos,
	}
}

// NewWithLiteral 创建一个带字面量值的 Token
func NewWithLiteral(tokenType TokenType, lexeme string, literal interface{}, pos Position) Token {
	return Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Pos:     pos,
	}
}

// Synthetic 创建一个不对应源码的 token（例如 for 脱糖生成的 true 字面量）
func Synthetic(tokenType TokenType, lexeme string, line int) Token {
	return Token{
		Type:   tokenType,
		Lexeme: lexeme,
		Pos:    Position{Line: line},
	}
}
