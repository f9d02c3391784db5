package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agenthands/rpncalc/pkg/calc"
	"github.com/agenthands/rpncalc/pkg/config"
	"github.com/agenthands/rpncalc/pkg/logger"
)

// errReported marks a failure whose message was already printed.
var errReported = errors.New("reported")

// app holds state shared by all subcommands after flag parsing.
type app struct {
	configFile string
	logLevel   string
	noColor    bool

	cfg config.Config
	log *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "rpncalc [expression...]",
		Short: "Evaluate integer arithmetic expressions",
		Long: `rpncalc evaluates integer expressions built from + - * / and parentheses.

The expression is tokenized, reordered into postfix (RPN) form and run on an
operand stack. With no expression the sample "` + calc.SampleExpression + `" is used.`,
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := calc.SampleExpression
			if len(args) > 0 {
				expr = strings.Join(args, " ")
			}
			return a.runEval(cmd, expr)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Configuration file (YAML)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error or none")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newRPNCmd(a),
		newTokensCmd(a),
		newBatchCmd(a),
		newReplCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.noColor {
		cfg.Color = config.ColorNever
	}
	a.cfg = cfg

	switch cfg.Color {
	case config.ColorNever:
		color.NoColor = true
	case config.ColorAlways:
		color.NoColor = false
	}

	a.log = logger.New(cfg.LogLevel, cmd.ErrOrStderr())
	a.log.Debug("configuration loaded", "file", a.configFile, "log_level", cfg.LogLevel, "color", cfg.Color)
	return nil
}

func (a *app) runEval(cmd *cobra.Command, expr string) error {
	a.log.Debug("evaluating", "expr", expr)
	v, err := calc.CalculateLimited(expr, a.cfg.Limits.Gas)
	if err != nil {
		printError(cmd, err)
		return errReported
	}
	printResult(cmd, v)
	return nil
}
