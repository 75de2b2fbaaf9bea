package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tangzhangming/lox/internal/lsp"
)

func main() {
	// 解析命令行参数
	showVersion := flag.Bool("version", false, "显示版本信息")
	showHelp := flag.Bool("help", false, "显示帮助信息")
	logFile := flag.String("log", "", "日志文件路径（默认不记录日志，设置环境变量 LOX_LSP_DEBUG=1 时输出到 stderr）")

	flag.Parse()

	if *showVersion {
		fmt.Printf("Lox Language Server v%s\n", lsp.ServerVersion)
		os.Exit(0)
	}

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	logger, err := newLogger(*logFile, os.Getenv("LOX_LSP_DEBUG") == "1")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 创建并启动 LSP 服务器
	server := lsp.NewServer(os.Stdin, os.Stdout, logger)
	if err := server.Run(context.Background()); err != nil {
		logger.Error("server stopped", zap.Error(err))
		fmt.Fprintf(os.Stderr, "LSP server error: %v\n", err)
		os.Exit(1)
	}

	logger.Sync()
	os.Exit(server.ExitCode())
}

// newLogger 指定 -log 时写入该文件，LOX_LSP_DEBUG=1 时写入 stderr，否则不记录
// stdout 用于协议通信，日志永远不能写到 stdout
func newLogger(path string, debug bool) (*zap.Logger, error) {
	if path == "" && !debug {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}
	return cfg.Build()
}

func printUsage() {
	fmt.Println("Lox Language Server")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  loxls [options]")
	fmt.Println()
	fmt.Println("选项:")
	fmt.Println("  --version    显示版本信息")
	fmt.Println("  --help       显示帮助信息")
	fmt.Println("  --log <file> 日志文件路径")
	fmt.Println()
	fmt.Println("环境变量:")
	fmt.Println("  LOX_LSP_DEBUG=1  未指定 --log 时把调试日志输出到 stderr")
	fmt.Println()
	fmt.Println("特性:")
	fmt.Println("  - 诊断：词法、语法和静态分析错误与警告")
	fmt.Println("  - 悬停：显示声明的签名和种类")
	fmt.Println("  - 跳转定义：变量、函数、类、参数和方法")
	fmt.Println("  - 文档符号与格式化")
	fmt.Println()
	fmt.Println("LSP 服务器通过标准输入输出 (stdio) 与编辑器通信。")
}
