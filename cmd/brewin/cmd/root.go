package cmd

import (
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "brewin",
	Short: "A tree-walking interpreter for the Brewin language",
	Long: `brewin parses and evaluates Brewin source files: lexically scoped,
dynamically typed, with lazy call-by-need function arguments and
arity-based function overloading.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file (overridden by flags and BREWIN_* env vars)")
	rootCmd.PersistentFlags().Int("max-call-depth", 0, "maximum recursive call depth (0 uses the built-in default)")
	rootCmd.PersistentFlags().Bool("flush-per-line", true, "flush program output after every print")
	rootCmd.PersistentFlags().String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
}
