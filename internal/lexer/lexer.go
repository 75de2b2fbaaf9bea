package lexer

import (
	"strconv"

	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/i18n"
	"github.com/tangzhangming/lox/internal/token"
)

// ============================================================================
// Lexer - 词法分析器
// ============================================================================
//
// 词法分析器负责将源代码字符串转换为 Token 序列。
// 单遍从左到右扫描，维护 start / current / line 三个游标。
// 扫描永远不会中止：意外字符、未闭合字符串和注释都上报给 Sink 后继续。
// 源码按字节处理，标识符只接受 ASCII 字母、数字和下划线。
//
// ============================================================================

// Lexer 词法分析器结构体
type Lexer struct {
	source string        // 源代码字符串
	sink   errors.Sink   // 诊断接收器
	tokens []token.Token // 已扫描的 Token 列表

	start     int // 当前 Token 的起始位置（字节偏移）
	current   int // 当前扫描位置（字节偏移）
	line      int // 当前行号（从1开始）
	lineStart int // 当前行的起始偏移（用于计算列号）

	startPos token.Position // 当前 Token 的起始位置

	comments []Comment // 跳过的注释（格式化器使用）
}

// Comment 源码中的一条注释，Text 包含 // 或 /* */
type Comment struct {
	Text string
	Pos  token.Position
}

// New 创建一个新的词法分析器
func New(source string, sink errors.Sink) *Lexer {
	// 预估 token 数量：源码长度 / 5 是一个经验值
	estimatedTokens := len(source) / 5
	if estimatedTokens < 16 {
		estimatedTokens = 16
	}

	return &Lexer{
		source: source,
		sink:   sink,
		tokens: make([]token.Token, 0, estimatedTokens),
		line:   1,
	}
}

// ScanTokens 扫描所有 tokens，最后一个 Token 总是 EOF
func (l *Lexer) ScanTokens() []token.Token {
	for !l.isAtEnd() {
		l.start = l.current
		l.startPos = l.currentPos()
		l.scanToken()
	}

	l.tokens = append(l.tokens, token.New(token.EOF, "", l.currentPos()))
	return l.tokens
}

// Comments 返回 ScanTokens 过程中跳过的注释，按出现顺序
func (l *Lexer) Comments() []Comment {
	return l.comments
}

// ============================================================================
// 核心扫描逻辑
// ============================================================================

func (l *Lexer) scanToken() {
	ch := l.advance()

	switch ch {
	case ' ', '\t', '\r':
		// 跳过空白
	case '\n':
		l.newLine()

	case '(':
		l.addToken(token.LEFT_PAREN)
	case ')':
		l.addToken(token.RIGHT_PAREN)
	case '{':
		l.addToken(token.LEFT_BRACE)
	case '}':
		l.addToken(token.RIGHT_BRACE)
	case ',':
		l.addToken(token.COMMA)
	case '.':
		l.addToken(token.DOT)
	case '-':
		l.addToken(token.MINUS)
	case '+':
		l.addToken(token.PLUS)
	case ';':
		l.addToken(token.SEMICOLON)
	case ':':
		l.addToken(token.COLON)
	case '?':
		l.addToken(token.QUESTION_MARK)
	case '*':
		l.addToken(token.STAR)

	case '!':
		l.addToken(l.choose('=', token.BANG_EQUAL, token.BANG))
	case '=':
		l.addToken(l.choose('=', token.EQUAL_EQUAL, token.EQUAL))
	case '<':
		l.addToken(l.choose('=', token.LESS_EQUAL, token.LESS))
	case '>':
		l.addToken(l.choose('=', token.GREATER_EQUAL, token.GREATER))

	case '/':
		switch {
		case l.match('/'):
			l.skipLineComment()
		case l.match('*'):
			l.skipBlockComment()
		default:
			l.addToken(token.SLASH)
		}

	case '"':
		l.scanString()

	default:
		switch {
		case isDigit(ch):
			l.scanNumber()
		case isAlpha(ch):
			l.scanIdentifier()
		default:
			l.error(errors.E0002, l.startPos, i18n.T(i18n.ErrUnexpectedChar))
		}
	}
}

// skipLineComment 跳过 // 到行尾（不消费换行）
func (l *Lexer) skipLineComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
	l.addComment()
}

// skipBlockComment 跳过 /* ... */，可以跨行
func (l *Lexer) skipBlockComment() {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			l.addComment()
			return
		}
		if l.advance() == '\n' {
			l.newLine()
		}
	}
	l.error(errors.E0004, l.currentPos(), i18n.T(i18n.ErrUnterminatedComment))
}

// scanString 扫描字符串字面量，允许跨行，不处理转义
func (l *Lexer) scanString() {
	for !l.isAtEnd() && l.peek() != '"' {
		if l.advance() == '\n' {
			l.newLine()
		}
	}

	if l.isAtEnd() {
		l.error(errors.E0003, l.currentPos(), i18n.T(i18n.ErrUnterminatedString))
		return
	}

	// 闭合的引号
	l.advance()

	value := l.source[l.start+1 : l.current-1]
	l.addTokenWithLiteral(token.STRING, value)
}

// scanNumber 扫描 [0-9]+ ( "." [0-9]+ )?，末尾单独的 '.' 不被消费
func (l *Lexer) scanNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	text := l.source[l.start:l.current]
	// 词法已保证格式合法，唯一可能的错误是溢出，此时 ParseFloat 返回 +Inf
	value, _ := strconv.ParseFloat(text, 64)
	l.addTokenWithLiteral(token.NUMBER, value)
}

// scanIdentifier 扫描标识符或关键字
func (l *Lexer) scanIdentifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	l.addToken(token.LookupIdent(l.source[l.start:l.current]))
}

// ============================================================================
// 辅助方法
// ============================================================================

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() byte {
	ch := l.source[l.current]
	l.current++
	return ch
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

// choose 下一个字符是 next 时返回 two，否则返回 one
func (l *Lexer) choose(next byte, two, one token.TokenType) token.TokenType {
	if l.match(next) {
		return two
	}
	return one
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// newLine 在消费了一个 '\n' 之后调用
func (l *Lexer) newLine() {
	l.line++
	l.lineStart = l.current
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.current - l.lineStart + 1,
		Offset: l.current,
	}
}

func (l *Lexer) addComment() {
	l.comments = append(l.comments, Comment{Text: l.source[l.start:l.current], Pos: l.startPos})
}

func (l *Lexer) addToken(t token.TokenType) {
	l.tokens = append(l.tokens, token.New(t, l.source[l.start:l.current], l.startPos))
}

func (l *Lexer) addTokenWithLiteral(t token.TokenType, literal interface{}) {
	l.tokens = append(l.tokens, token.NewWithLiteral(t, l.source[l.start:l.current], literal, l.startPos))
}

func (l *Lexer) error(code string, pos token.Position, message string) {
	if l.sink != nil {
		l.sink.Report(errors.AtLine(code, pos, message))
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}
