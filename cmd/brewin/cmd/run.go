package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brewinlang/interpreter/internal/config"
	"github.com/brewinlang/interpreter/internal/driver"
	"github.com/brewinlang/interpreter/internal/evaluator"
	"github.com/brewinlang/interpreter/internal/parser"
)

var runCmd = &cobra.Command{
	Use:   "run <file.brew>",
	Short: "Parse and run a single Brewin source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runFile(c *cobra.Command, args []string) error {
	cfg, err := config.Load(c.Flags(), configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	stopMetrics := maybeServeMetrics(cfg.MetricsAddr)
	defer stopMetrics()

	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	host := evaluator.NewStdHost(os.Stdin, os.Stdout).WithFlushPerLine(cfg.FlushPerLine)
	defer host.Flush()
	p := parser.New()
	opts := driver.Options{MaxCallDepth: cfg.MaxCallDepth}

	return timedRun(func() error {
		return driver.RunAndReportWithOptions(p, string(source), host, opts)
	})
}
