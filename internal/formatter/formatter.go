// Package formatter 把 Lox 源代码输出为统一的格式
//
// 格式化基于 AST：先完整地做词法和语法分析，存在 critical 错误时拒绝格式化。
// for 循环在 AST 中已经脱糖为 while，打印时按 for 的形式还原。
package formatter

import (
	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/lexer"
	"github.com/tangzhangming/lox/internal/parser"
)

// Format 格式化源代码
func Format(source, filename string, options *Options) (string, error) {
	sink := &errors.Collector{}
	l := lexer.New(source, sink)
	tokens := l.ScanTokens()
	stmts := parser.New(tokens, sink).Parse()

	for _, d := range sink.Diagnostics {
		if d.Critical() {
			return "", d
		}
	}

	printer := NewPrinter(options)
	if options.PreserveComments {
		printer.SetComments(l.Comments())
	}
	return printer.Print(stmts), nil
}

// FormatWithDefaultOptions 使用默认选项格式化
func FormatWithDefaultOptions(source, filename string) (string, error) {
	return Format(source, filename, DefaultOptions())
}
