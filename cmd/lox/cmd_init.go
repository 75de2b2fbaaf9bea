package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tangzhangming/lox/internal/config"
	"github.com/tangzhangming/lox/internal/runtime"
)

// cmdInit 在目录（默认当前目录）中生成默认的 lox.toml
func cmdInit(args []string, stdout, stderr io.Writer) int {
	m := Msg()

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	// 检查是否已存在配置文件
	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(stderr, m.ErrConfigExists+"\n", configPath)
		return runtime.ExitUsage
	}

	if err := config.Default().Save(configPath); err != nil {
		fmt.Fprintf(stderr, m.ErrWriteFile+"\n", err)
		return runtime.ExitIO
	}

	fmt.Fprintf(stdout, m.InitCreated+"\n", configPath)
	return runtime.ExitOK
}
