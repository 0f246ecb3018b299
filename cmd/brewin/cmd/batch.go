package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/brewinlang/interpreter/internal/config"
	"github.com/brewinlang/interpreter/internal/driver"
	"github.com/brewinlang/interpreter/internal/evaluator"
	"github.com/brewinlang/interpreter/internal/parser"
)

// batchEntry is one manifest line: a source file to run and, optionally,
// canned stdin for its inputi/inputs calls.
type batchEntry struct {
	File  string `yaml:"file"`
	Stdin string `yaml:"stdin"`
}

type batchManifest struct {
	Runs []batchEntry `yaml:"runs"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Run a YAML manifest of Brewin programs in sequence",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().Bool("watch", false, "re-run the manifest whenever the manifest file changes (the files it lists are not watched)")
}

func runBatch(c *cobra.Command, args []string) error {
	cfg, err := config.Load(c.Flags(), configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	stopMetrics := maybeServeMetrics(cfg.MetricsAddr)
	defer stopMetrics()

	manifestPath := args[0]
	if err := executeManifest(manifestPath, cfg); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}
	return watchManifest(manifestPath, cfg)
}

func executeManifest(manifestPath string, cfg *config.Config) error {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("reading manifest %s: %w", manifestPath, err)
	}

	var manifest batchManifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return fmt.Errorf("parsing manifest %s: %w", manifestPath, err)
	}

	p := parser.New()
	opts := driver.Options{MaxCallDepth: cfg.MaxCallDepth}

	var failures int
	for _, entry := range manifest.Runs {
		source, err := os.ReadFile(entry.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", entry.File, err)
			failures++
			continue
		}

		host := evaluator.NewStdHost(strings.NewReader(entry.Stdin), os.Stdout).WithFlushPerLine(cfg.FlushPerLine)
		runErr := timedRun(func() error {
			return driver.RunAndReportWithOptions(p, string(source), host, opts)
		})
		host.Flush()
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", entry.File, runErr)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d runs failed", failures, len(manifest.Runs))
	}
	return nil
}

// watchManifest re-executes the manifest each time it changes on disk,
// the same fsnotify-driven reload loop kube-state-metrics uses to pick up
// a changed resource-config file (pkg/options/autoload.go), adapted from
// "reload collector config" to "re-run a batch".
func watchManifest(manifestPath string, cfg *config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(manifestPath); err != nil {
		return fmt.Errorf("watching %s: %w", manifestPath, err)
	}

	klog.V(1).Infof("watch: watching %s for changes", manifestPath)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			klog.V(1).Infof("watch: %s changed, re-running", manifestPath)
			if err := executeManifest(manifestPath, cfg); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch: %v", err)
		}
	}
}
