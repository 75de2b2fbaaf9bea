package errors

import (
	"fmt"
	"strings"
)

// ============================================================================
// 格式化器
// ============================================================================

// Formatter 错误格式化器
//
// 默认输出单行的 "[line L] Error<where>: msg"；Pretty 模式额外输出
// 错误码、源代码片段、插入符标注和修复建议。
type Formatter struct {
	Pretty    bool   // 是否使用详细格式
	Colors    bool   // 是否使用颜色
	ShowHints bool   // 是否显示修复建议
	TabWidth  int    // Tab 宽度
	File      string // 文件名（Pretty 模式的位置行使用）
}

// NewFormatter 创建默认格式化器（单行格式）
func NewFormatter() *Formatter {
	return &Formatter{
		Colors:    false,
		ShowHints: true,
		TabWidth:  4,
	}
}

// FormatCompileError 格式化静态诊断
func (f *Formatter) FormatCompileError(err *CompileError, sourceLines []string) string {
	if !f.Pretty {
		return err.Error() + "\n"
	}

	var sb strings.Builder

	// 错误头: error[E0001]: Expect expression.
	color := f.levelColor(err.Level)
	levelStr := f.colorize(err.Level.String(), color)
	codeStr := f.colorize(fmt.Sprintf("[%s]", err.Code), color)
	sb.WriteString(fmt.Sprintf("%s%s: %s\n", levelStr, codeStr, err.Message))

	sb.WriteString(f.location(err.Line, err.Column))
	sb.WriteString(f.formatSourceLine(sourceLines, err.Line, err.Column, err.Length, color))
	sb.WriteString(f.formatHints(err.Hints))
	return sb.String()
}

// FormatRuntimeError 格式化运行时错误
func (f *Formatter) FormatRuntimeError(err *RuntimeError, sourceLines []string) string {
	if !f.Pretty {
		return err.Error() + "\n"
	}

	var sb strings.Builder
	levelStr := f.colorize("RuntimeError", ColorRed)
	codeStr := f.colorize(fmt.Sprintf("[%s]", err.Code), ColorRed)
	sb.WriteString(fmt.Sprintf("%s%s: %s\n", levelStr, codeStr, err.Message))

	length := len(err.Token.Lexeme)
	sb.WriteString(f.location(err.Token.Pos.Line, err.Token.Pos.Column))
	sb.WriteString(f.formatSourceLine(sourceLines, err.Token.Pos.Line, err.Token.Pos.Column, length, ColorRed))
	sb.WriteString(f.formatHints(err.Hints))
	return sb.String()
}

// location 位置行: --> script.lox:5:12
func (f *Formatter) location(line, col int) string {
	file := f.File
	if file == "" {
		file = "<input>"
	}
	arrow := f.colorize("-->", ColorCyan)
	loc := fmt.Sprintf("%s:%d", file, line)
	if col > 0 {
		loc = fmt.Sprintf("%s:%d", loc, col)
	}
	return fmt.Sprintf(" %s %s\n", arrow, f.colorize(loc, ColorCyan))
}

// formatSourceLine 格式化出错行及其下方的插入符
func (f *Formatter) formatSourceLine(lines []string, lineNum, col, length int, color Color) string {
	if lineNum <= 0 || lineNum > len(lines) {
		return ""
	}
	var sb strings.Builder

	width := len(fmt.Sprintf("%d", lineNum))
	separator := f.colorize(strings.Repeat(" ", width)+" |", ColorBlue)
	sb.WriteString(separator + "\n")

	line := lines[lineNum-1]
	num := f.colorize(fmt.Sprintf("%*d", width, lineNum), ColorBlue)
	pipe := f.colorize(" |", ColorBlue)
	sb.WriteString(fmt.Sprintf("%s%s %s\n", num, pipe, f.highlight(f.expandTabs(line))))

	if col > 0 {
		if length < 1 {
			length = 1
		}
		// 多行 token 只标注到行尾
		if rest := len(line) - (col - 1); rest > 0 && length > rest {
			length = rest
		}
		actual := f.calculateActualColumn(line, col)
		underline := strings.Repeat(" ", width+3+actual) +
			f.colorize(strings.Repeat("^", length), color)
		sb.WriteString(underline + "\n")
	}
	return sb.String()
}

func (f *Formatter) formatHints(hints []string) string {
	if !f.ShowHints {
		return ""
	}
	var sb strings.Builder
	for _, hint := range hints {
		sb.WriteString(fmt.Sprintf("%s %s\n", f.colorize(" = help:", ColorCyan), hint))
	}
	return sb.String()
}

func (f *Formatter) highlight(line string) string {
	if !f.Colors {
		return line
	}
	return NewSyntaxHighlighter().HighlightLine(line)
}

// expandTabs 展开 Tab 为空格
func (f *Formatter) expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", f.TabWidth))
}

// calculateActualColumn 计算列前的显示宽度（考虑 Tab）
func (f *Formatter) calculateActualColumn(line string, col int) int {
	actual := 0
	for i := 0; i < col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			actual += f.TabWidth
		} else {
			actual++
		}
	}
	return actual
}

// levelColor 获取错误级别对应的颜色
func (f *Formatter) levelColor(level Level) Color {
	if level == LevelWarning {
		return ColorYellow
	}
	return ColorRed
}

// colorize 着色字符串
func (f *Formatter) colorize(s string, color Color) string {
	if !f.Colors {
		return s
	}
	return Colorize(s, color)
}
