// Package config loads the settings of the mathexpr command from a TOML file.
//
//    trace_level = "info"
//    max_depth   = 256
//    policy      = "propagate"
//    format      = "tree"
//    symbols     = true
//    east_asian  = false
//
// Missing keys are set to their defaults. Command line flags override
// settings from the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/mathexpr/displaywidth"
	"github.com/npillmayer/mathexpr/parser"
	"github.com/npillmayer/schuko/tracing"
)

// Output formats of the parse command.
const (
	FormatTree  = "tree"
	FormatSExpr = "sexpr"
	FormatYAML  = "yaml"
)

// Config holds the settings of the mathexpr command.
type Config struct {
	TraceLevel string `toml:"trace_level"`
	MaxDepth   int    `toml:"max_depth"`
	Policy     string `toml:"policy"`
	Format     string `toml:"format"`
	Symbols    bool   `toml:"symbols"`
	EastAsian  bool   `toml:"east_asian"`
}

// Default returns a configuration with every setting at its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads the configuration from a TOML file.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the configuration from the file named by MATHEXPR_CONFIG,
// or from $HOME/.config/mathexpr/config.toml. If neither exists, the default
// configuration is returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("MATHEXPR_CONFIG")
	if path == "" {
		p := filepath.Join(os.Getenv("HOME"), ".config", "mathexpr", "config.toml")
		if _, err := os.Stat(p); err != nil {
			return Default(), nil
		}
		path = p
	}
	return Load(path)
}

func (c *Config) applyDefaults() {
	if c.TraceLevel == "" {
		c.TraceLevel = "error"
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = parser.DefaultMaxDepth
	}
	if c.Policy == "" {
		c.Policy = parser.Propagate.String()
	}
	if c.Format == "" {
		c.Format = FormatTree
	}
}

// Validate checks settings with a fixed set of values.
func (c *Config) Validate() error {
	if _, err := ParseTraceLevel(c.TraceLevel); err != nil {
		return err
	}
	if _, err := ParsePolicy(c.Policy); err != nil {
		return err
	}
	switch c.Format {
	case FormatTree, FormatSExpr, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q, expected one of tree, sexpr, yaml", c.Format)
	}
	return nil
}

// ParseTraceLevel converts a level name into a trace level.
func ParseTraceLevel(level string) (tracing.TraceLevel, error) {
	switch strings.ToLower(level) {
	case "error":
		return tracing.LevelError, nil
	case "info":
		return tracing.LevelInfo, nil
	case "debug":
		return tracing.LevelDebug, nil
	}
	return tracing.LevelError, fmt.Errorf("unknown trace level %q, expected one of error, info, debug", level)
}

// ParsePolicy converts a policy name into a parser policy.
func ParsePolicy(policy string) (parser.Policy, error) {
	switch strings.ToLower(policy) {
	case parser.Propagate.String():
		return parser.Propagate, nil
	case parser.Poison.String():
		return parser.Poison, nil
	}
	return parser.Propagate, fmt.Errorf("unknown policy %q, expected propagate or poison", policy)
}

// Level returns the trace level. Invalid level names result in LevelError.
func (c *Config) Level() tracing.TraceLevel {
	level, _ := ParseTraceLevel(c.TraceLevel)
	return level
}

// ParserOptions returns the parser options for this configuration.
func (c *Config) ParserOptions() []parser.Option {
	policy, _ := ParsePolicy(c.Policy)
	return []parser.Option{
		parser.WithPolicy(policy),
		parser.MaxDepth(c.MaxDepth),
	}
}

// DisplayContext returns the context for measuring the width of symbols.
// Unless East Asian display is configured, the user's locale decides.
func (c *Config) DisplayContext() *displaywidth.Context {
	if c.EastAsian {
		return displaywidth.EastAsianContext
	}
	return displaywidth.ContextFromEnvironment()
}
