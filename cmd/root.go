package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rithvikp/relnorm/analysis/deps"
	"github.com/rithvikp/relnorm/ast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// app carries the settings shared by every subcommand.
type app struct {
	configPath string
	cfg        Config
	logger     *slog.Logger
}

// Execute starts the program.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: defaultConfig()}

	root := &cobra.Command{
		Use:   "relnorm",
		Short: "Analyze relational schemas described by functional and multi-valued dependencies",
		Long: `relnorm computes closures, keys, minimal covers and normal forms of a schema,
decomposes it into BCNF, 3NF or 4NF, runs the chase to test implication and
lossless joins, and checks dependency proofs.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Flags(), cmd.ErrOrStderr())
		},
	}
	a.addFlags(root.PersistentFlags())

	root.AddCommand(
		newAnalyzeCmd(a),
		newFourthCmd(a),
		newChaseCmd(a),
		newProveCmd(a),
	)
	return root
}

func (a *app) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&a.configPath, "config", "", "YAML config file")
	fs.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.BoolVar(&a.cfg.Parallel, "parallel", false, "Decompose independent sub-schemas concurrently")
	fs.BoolVar(&a.cfg.Trace, "trace", false, "Log minimal cover and decomposition steps at debug level")
}

// setup loads the config file, re-applies explicitly set flags on top of it
// and builds the logger.
func (a *app) setup(fs *pflag.FlagSet, logOut io.Writer) error {
	if a.configPath != "" {
		cfg, err := LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		if fs.Changed("log-level") {
			cfg.LogLevel = a.cfg.LogLevel
		}
		if fs.Changed("parallel") {
			cfg.Parallel = a.cfg.Parallel
		}
		if fs.Changed("trace") {
			cfg.Trace = a.cfg.Trace
		}
		a.cfg = cfg
	}

	level, err := a.cfg.Level()
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) schemaOptions() []deps.Option {
	opts := []deps.Option{deps.WithParallel(a.cfg.Parallel)}
	if a.cfg.Trace {
		opts = append(opts, deps.WithTracer(a.traceEvent))
	}
	return opts
}

func (a *app) traceEvent(e deps.TraceEvent) {
	attrs := []any{slog.String("schema", e.Schema.String())}
	if e.Dep != nil {
		attrs = append(attrs, slog.String("dependency", e.Dep.String()))
	}
	if len(e.FDs) > 0 {
		attrs = append(attrs, slog.String("fds", fmt.Sprint(e.FDs)))
	}
	if len(e.Parts) > 0 {
		attrs = append(attrs, slog.String("parts", fmt.Sprint(e.Parts)))
	}
	a.logger.Debug(string(e.Stage), attrs...)
}

// parseFile reads and parses a dependency file.
func parseFile(path string) (*ast.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	file, err := ast.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}
	return file, nil
}
