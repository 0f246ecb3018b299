// Package config resolves cmd/brewin's runtime settings (max call-stack
// depth, per-line output flushing, metrics listen address, watch mode)
// through the flags > environment (BREWIN_*) > config file layering
// described in SPEC_FULL.md's ambient stack section, the same precedence
// order kube-state-metrics' viper setup uses for its collector flags.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Defaults mirror the evaluator's own constants so a config file only
// needs to mention what it wants to override.
const (
	DefaultMaxCallDepth  = 4000
	DefaultFlushPerLine  = true
	DefaultMetricsAddr   = ""
	DefaultWatch         = false
)

// Config is the fully-resolved set of runtime knobs for one cmd/brewin
// invocation.
type Config struct {
	MaxCallDepth int    `mapstructure:"max_call_depth"`
	FlushPerLine bool   `mapstructure:"flush_per_line"`
	MetricsAddr  string `mapstructure:"metrics_addr"`
	Watch        bool   `mapstructure:"watch"`
	ConfigFile   string `mapstructure:"-"`
}

// Load resolves a Config from flags, BREWIN_*-prefixed environment
// variables, and an optional YAML file, in that order of precedence.
// flags is typically cmd.Flags() from the cobra command invoking this.
func Load(flags *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BREWIN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("max_call_depth", DefaultMaxCallDepth)
	v.SetDefault("flush_per_line", DefaultFlushPerLine)
	v.SetDefault("metrics_addr", DefaultMetricsAddr)
	v.SetDefault("watch", DefaultWatch)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	// Only an explicitly-set flag overrides env/config here: pflag always
	// carries a default value, so binding unconditionally would make an
	// untouched flag outrank a BREWIN_* env var or config file entry,
	// inverting the flags > env > config precedence this layering promises.
	if flags != nil {
		for key, flagName := range map[string]string{
			"max_call_depth": "max-call-depth",
			"flush_per_line": "flush-per-line",
			"metrics_addr":   "metrics-addr",
			"watch":          "watch",
		} {
			f := flags.Lookup(flagName)
			if f != nil && f.Changed {
				v.Set(key, f.Value.String())
			}
		}
	}

	cfg := &Config{ConfigFile: configFile}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
