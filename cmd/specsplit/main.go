package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cubahno/specsplit/pkg/config"
	"github.com/cubahno/specsplit/pkg/splitter"
	"github.com/joho/godotenv"
)

var version = "dev"

// CLI is the command line of specsplit.
// Flags left empty fall back to the config file and SPECSPLIT_* variables.
type CLI struct {
	Environment string `arg:"" help:"Environment name, fragments go to <output-dir>/<environment>."`
	Source      string `arg:"" help:"Path or http(s) URL of the OpenAPI / Swagger document."`

	Config    string           `short:"c" placeholder:"FILE" help:"Config file (default: ${default_config}, skipped if missing)."`
	OutputDir string           `short:"o" placeholder:"DIR" help:"Output root directory."`
	SortKeys  bool             `negatable:"" help:"Sort mapping keys in fragments instead of keeping source order."`
	Indent    int              `placeholder:"N" help:"YAML indentation, 2-9."`
	LogLevel  string           `placeholder:"LEVEL" help:"Log level: debug, info, warn, error."`
	LogFormat string           `placeholder:"FORMAT" help:"Log format: text or json."`
	Version   kong.VersionFlag `help:"Print version and exit."`
}

// overrides returns the config keys given on the command line.
// Booleans are passed whenever the flag was used, so --no-sort-keys beats the config file.
func (c *CLI) overrides(ctx *kong.Context) map[string]any {
	res := make(map[string]any)
	if c.OutputDir != "" {
		res["output_dir"] = c.OutputDir
	}
	if flagUsed(ctx, "sort-keys") {
		res["sort_keys"] = c.SortKeys
	}
	if c.Indent != 0 {
		res["indent"] = c.Indent
	}
	if c.LogLevel != "" {
		res["log_level"] = c.LogLevel
	}
	if c.LogFormat != "" {
		res["log_format"] = c.LogFormat
	}
	return res
}

// flagUsed reports whether the flag was given in args, in either form when negatable.
func flagUsed(ctx *kong.Context, name string) bool {
	if ctx == nil {
		return false
	}
	for _, p := range ctx.Path {
		if p.Flag != nil && p.Flag.Name == name {
			return true
		}
	}
	return false
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cli := &CLI{}
	exitCode := -1

	parser, err := kong.New(cli,
		kong.Name("specsplit"),
		kong.Description("Splits an OpenAPI / Swagger document into one YAML file per path."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			if exitCode < 0 {
				exitCode = code
			}
		}),
		kong.Vars{
			"version":        version,
			"default_config": config.DefaultConfigFile,
		},
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if exitCode >= 0 {
		// --help or --version
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(true)
		}
		return 1
	}

	cfgFile, required := cli.Config, true
	if cfgFile == "" {
		cfgFile, required = config.DefaultConfigFile, false
	}

	cfg, err := config.Load(config.LoadOptions{
		File:      cfgFile,
		Required:  required,
		Overrides: cli.overrides(ctx),
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	slog.SetDefault(logger)

	res, err := splitter.New(cfg, splitter.WithLogger(logger)).Run(cli.Environment, cli.Source)
	if err != nil {
		logger.Error("Split failed", "environment", cli.Environment, "source", cli.Source, "error", err)
		return 1
	}

	for _, f := range res.Files {
		fmt.Fprintln(stdout, f.File)
	}

	return 0
}

// newLogger writes to w in the configured format.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
