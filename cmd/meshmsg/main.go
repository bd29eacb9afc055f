// meshmsg 读取 YAML 批量文件并输出组装结果
//
//	meshmsg -f batch.yaml [-o text|json|yaml] [--app-key hex]
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/taoyao-code/meshmsg/internal/logging"
	"github.com/taoyao-code/meshmsg/internal/mesh/command"
	"github.com/taoyao-code/meshmsg/internal/mesh/message"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// item 一条输出
type item struct {
	Index  int             `json:"index" yaml:"index"`
	Dst    string          `json:"dst,omitempty" yaml:"dst,omitempty"`
	Error  string          `json:"error,omitempty" yaml:"error,omitempty"`
	Result *command.Result `json:"result,omitempty" yaml:"result,omitempty"`
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("meshmsg", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.StringP("file", "f", "", "batch YAML file (- for stdin)")
	output := fs.StringP("output", "o", "text", "output format: text|json|yaml")
	appKey := fs.String("app-key", "", "default AppKey (hex) for commands without one")
	verbose := fs.BoolP("verbose", "v", false, "log every assembled message to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *file == "" {
		fmt.Fprintln(stderr, "meshmsg: -f is required")
		fs.PrintDefaults()
		return 2
	}

	// 日志走 stderr，stdout 只输出结果
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if *verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := zcfg.Build()
	if err != nil {
		fmt.Fprintln(stderr, "meshmsg:", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	message.SetObserver(logging.AssemblyObserver(logger))
	defer message.SetObserver(nil)

	cmds, err := load(*file)
	if err != nil {
		fmt.Fprintln(stderr, "meshmsg:", err)
		return 1
	}

	items := make([]item, 0, len(cmds))
	failed := 0
	for i, c := range cmds {
		if c.AppKey == "" {
			c.AppKey = *appKey
		}
		it := item{Index: i, Dst: c.Dst}
		m, err := c.Build()
		if err != nil {
			failed++
			it.Error = err.Error()
			logger.Warn("assemble failed", zap.Int("index", i), zap.String("opcode", c.Opcode), zap.Error(err))
		} else {
			r := command.NewResult(m)
			it.Result = &r
		}
		items = append(items, it)
	}

	if err := render(stdout, *output, items); err != nil {
		fmt.Fprintln(stderr, "meshmsg:", err)
		return 1
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func load(path string) ([]command.Command, error) {
	if path == "-" {
		return command.Decode(os.Stdin)
	}
	return command.LoadFile(path)
}

func render(w io.Writer, format string, items []item) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(items)
	case "text":
		for _, it := range items {
			if it.Result == nil {
				fmt.Fprintf(w, "#%d ERROR %s\n", it.Index, it.Error)
				continue
			}
			fmt.Fprintf(w, "#%d %s opcode=%s aid=%s params=%s wire=%s\n",
				it.Index, it.Result.Opcode, it.Result.OpcodeHex, it.Result.AID, it.Result.Parameters, it.Result.Wire)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
