package formatter

import "strings"

// Options 格式化选项
type Options struct {
	// 缩进设置
	IndentStyle string // "tabs" 或 "spaces"
	IndentSize  int    // 空格数（当使用 spaces 时）

	// 代码风格
	SpaceAroundOps      bool // 运算符周围是否有空格
	BlankLineAroundDecl bool // 顶层函数和类声明前后空一行

	// 注释设置
	PreserveComments bool // 保留注释

	// 其他
	RemoveTrailingSpace bool // 移除行尾空格
	EnsureNewlineAtEOF  bool // 确保文件末尾有换行符
}

// DefaultOptions 返回默认格式化选项（K&R 风格 + 4空格缩进）
func DefaultOptions() *Options {
	return &Options{
		IndentStyle:         "spaces",
		IndentSize:          4,
		SpaceAroundOps:      true,
		BlankLineAroundDecl: true,
		PreserveComments:    true,
		RemoveTrailingSpace: true,
		EnsureNewlineAtEOF:  true,
	}
}

// IndentString 返回一级缩进
func (o *Options) IndentString() string {
	if o.IndentStyle == "tabs" {
		return "\t"
	}
	return strings.Repeat(" ", o.IndentSize)
}
