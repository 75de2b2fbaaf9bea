package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tangzhangming/lox/internal/ast"
	"github.com/tangzhangming/lox/internal/config"
	"github.com/tangzhangming/lox/internal/errors"
	"github.com/tangzhangming/lox/internal/formatter"
	"github.com/tangzhangming/lox/internal/i18n"
	"github.com/tangzhangming/lox/internal/repl"
	"github.com/tangzhangming/lox/internal/runtime"
)

const (
	Version = "0.1.0"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options 命令行选项
type options struct {
	tokens     bool
	ast        bool
	rpn        bool
	check      bool
	format     bool
	configPath string
	debug      bool
	pretty     bool
	initConfig bool
	version    bool
}

// run 执行一次命令行调用并返回退出码
func run(args []string, stdout, stderr io.Writer) int {
	// 预扫描 -lang，让选项说明使用正确的语言
	lang, args := preprocessArgs(args)
	InitLanguage(lang, "")

	m := Msg()
	var opts options
	fs := flag.NewFlagSet("lox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.tokens, "tokens", false, m.OptTokens)
	fs.BoolVar(&opts.ast, "ast", false, m.OptAST)
	fs.BoolVar(&opts.rpn, "rpn", false, m.OptRPN)
	fs.BoolVar(&opts.check, "check", false, m.OptCheck)
	fs.BoolVar(&opts.format, "fmt", false, m.OptFormat)
	fs.StringVar(&opts.configPath, "config", "", m.OptConfig)
	fs.BoolVar(&opts.debug, "debug", false, m.OptDebug)
	fs.BoolVar(&opts.pretty, "pretty", false, m.OptPretty)
	fs.BoolVar(&opts.initConfig, "init", false, m.OptInit)
	fs.BoolVar(&opts.version, "version", false, m.OptVersion)
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return runtime.ExitOK
		}
		return runtime.ExitUsage
	}

	if opts.version {
		fmt.Fprintf(stdout, m.VersionTitle+"\n", Version)
		return runtime.ExitOK
	}
	if opts.initConfig {
		return cmdInit(fs.Args(), stdout, stderr)
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, m.ErrTooManyArgs)
		printUsage(stderr, fs)
		return runtime.ExitUsage
	}

	// 配置
	start := "."
	if fs.NArg() == 1 {
		start = fs.Arg(0)
	}
	cfg, cfgFile, err := loadConfig(opts.configPath, start)
	if err != nil {
		fmt.Fprintf(stderr, Msg().ErrConfig+"\n", err)
		return runtime.ExitUsage
	}
	if opts.pretty {
		cfg.Diagnostics.Pretty = true
	}
	configuredLang := ""
	if cfgFile != "" {
		configuredLang = cfg.Diagnostics.Language
	}
	InitLanguage(lang, configuredLang)
	switch GetLanguage() {
	case LangChinese:
		i18n.SetLanguage(i18n.LangChinese)
	default:
		i18n.SetLanguage(i18n.LangEnglish)
	}
	m = Msg()

	logger := newLogger(opts.debug, stderr)
	defer logger.Sync()
	if cfgFile != "" {
		logger.Debug("config", zap.String("file", cfgFile))
	}

	rt := newRuntime(cfg, logger, stdout, stderr)

	// 没有参数：交互式环境
	if fs.NArg() == 0 {
		r := repl.New(rt, nil, stdout, repl.Config{
			Prompt:         cfg.REPL.Prompt,
			ContinuePrompt: cfg.REPL.ContinuePrompt,
			HistoryFile:    cfg.REPL.HistoryFile,
		})
		closeFn := r.Open()
		defer closeFn()
		if err := r.Run(); err != nil {
			fmt.Fprintln(stderr, err)
			return runtime.ExitIO
		}
		return runtime.ExitOK
	}

	filename := fs.Arg(0)
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(stderr, m.ErrReadFile+"\n", err)
		return runtime.ExitIO
	}

	switch {
	case opts.format:
		return runFormat(string(source), filename, stdout, stderr)
	case opts.tokens, opts.ast, opts.rpn:
		return runDump(rt, opts, string(source), filename, stdout)
	case opts.check:
		if err := rt.Check(string(source), filename); err != nil {
			return runtime.ExitCode(err)
		}
		fmt.Fprintln(stdout, m.SuccessSyntaxOK)
		return runtime.ExitOK
	}

	return runtime.ExitCode(rt.Run(string(source), filename))
}

// preprocessArgs 提取 -lang / --lang 参数
func preprocessArgs(args []string) (string, []string) {
	var lang string
	var result []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--lang" || arg == "-lang" {
			if i+1 < len(args) {
				lang = args[i+1]
				i++
				continue
			}
		} else if strings.HasPrefix(arg, "--lang=") {
			lang = strings.TrimPrefix(arg, "--lang=")
			continue
		} else if strings.HasPrefix(arg, "-lang=") {
			lang = strings.TrimPrefix(arg, "-lang=")
			continue
		}
		result = append(result, arg)
	}
	return lang, result
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	m := Msg()
	fmt.Fprintln(w, m.HelpUsage)
	fmt.Fprintf(w, "  lox [options]           %s\n", m.HelpREPL)
	fmt.Fprintf(w, "  lox [options] <script>  %s\n", m.HelpScript)
	fmt.Fprintln(w)
	fmt.Fprintln(w, m.HelpOptions)
	fs.PrintDefaults()
	fmt.Fprintf(w, "  -lang <en|zh>\n    \t%s\n", m.OptLang)
	fmt.Fprintln(w)
	fmt.Fprintln(w, m.HelpExamples)
	fmt.Fprintln(w, "  lox main.lox")
	fmt.Fprintln(w, "  lox -ast main.lox")
	fmt.Fprintln(w, "  lox -lang zh -check main.lox")
}

// loadConfig 加载 -config 指定的文件，否则从 start 向上查找，最后查找用户配置
// 返回使用的配置文件路径，没有找到时为空
func loadConfig(explicit, start string) (*config.Config, string, error) {
	path := explicit
	if path == "" {
		path = config.FindConfigFile(start)
	}
	if path == "" {
		if user := config.UserConfigFile(); user != "" {
			if _, err := os.Stat(user); err == nil {
				path = user
			}
		}
	}
	if path == "" {
		return config.Default(), "", nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// newLogger -debug 时创建写到 stderr 的开发日志，否则不记录
func newLogger(debug bool, stderr io.Writer) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core, zap.Development())
}

// newRuntime 按配置创建运行时
func newRuntime(cfg *config.Config, logger *zap.Logger, stdout, stderr io.Writer) *runtime.Runtime {
	rt := runtime.New(
		runtime.WithOutput(stdout),
		runtime.WithErrorOutput(stderr),
		runtime.WithLogger(logger),
		runtime.WithMaxCallDepth(cfg.Interpreter.MaxCallDepth),
	)

	colors := cfg.Diagnostics.Color && errors.ColorsEnabled()
	errors.SetColorsEnabled(colors)

	f := errors.NewFormatter()
	f.Pretty = cfg.Diagnostics.Pretty
	f.Colors = colors
	f.ShowHints = cfg.Diagnostics.Hints
	rt.Reporter().SetFormatter(f)
	rt.Reporter().SetWarnings(cfg.Diagnostics.Warnings)
	return rt
}

// runFormat 输出格式化后的源代码
func runFormat(source, filename string, stdout, stderr io.Writer) int {
	formatted, err := formatter.FormatWithDefaultOptions(source, filename)
	if err != nil {
		fmt.Fprintf(stderr, Msg().ErrFormatFailed+"\n", err)
		return runtime.ExitStatic
	}
	fmt.Fprint(stdout, formatted)
	return runtime.ExitOK
}

// runDump 输出词法单元、语法树或逆波兰式，不执行
func runDump(rt *runtime.Runtime, opts options, source, filename string, stdout io.Writer) int {
	prog, err := rt.Compile(source, filename)

	if opts.tokens {
		for _, tok := range prog.Tokens {
			fmt.Fprintln(stdout, tok.String())
		}
	}
	if opts.ast {
		fmt.Fprint(stdout, ast.DumpProgram(prog.Stmts))
	}
	if opts.rpn {
		for _, stmt := range prog.Stmts {
			switch s := stmt.(type) {
			case *ast.Expression:
				fmt.Fprintln(stdout, ast.RPN(s.Expr))
			case *ast.Print:
				fmt.Fprintln(stdout, ast.RPN(s.Expr))
			}
		}
	}
	return runtime.ExitCode(err)
}
