package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/parsely/internal/errors"
	"github.com/mcncl/parsely/internal/formatter"
	"github.com/mcncl/parsely/internal/parser"
)

// Config represents the complete configuration for parsely
type Config struct {
	Engine string       `yaml:"engine"`
	Strict bool         `yaml:"strict"`
	Output OutputConfig `yaml:"output"`
	Naming NamingConfig `yaml:"naming"`
	Dev    DevConfig    `yaml:"dev"`
}

// OutputConfig controls how parsed values are rendered
type OutputConfig struct {
	Format string `yaml:"format"`
	Indent int    `yaml:"indent"`
	Stats  bool   `yaml:"stats"`
}

// NamingConfig controls object key renaming on output
type NamingConfig struct {
	KeyCase string `yaml:"key_case"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Engine: string(parser.EngineDynamic),
		Strict: true,
		Output: OutputConfig{
			Format: string(formatter.FormatJSON),
			Indent: 2,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that enumerated settings hold known values
func (c *Config) Validate() error {
	if _, err := parser.ParseEngine(c.Engine); err != nil {
		return err
	}
	if !formatter.OutputFormat(c.Output.Format).Valid() {
		return errors.NewConfigError(fmt.Sprintf("unknown output format '%s'", c.Output.Format), nil)
	}
	if c.Output.Indent < 0 {
		return errors.NewConfigError(fmt.Sprintf("indent must not be negative, got %d", c.Output.Indent), nil)
	}
	if !formatter.KeyCase(c.Naming.KeyCase).Valid() {
		return errors.NewConfigError(fmt.Sprintf("unknown key case '%s'", c.Naming.KeyCase), nil)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".parsely.yml", ".parsely.yaml", "parsely.yml", "parsely.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// ParserOptions returns the ingestion options described by the config
func (c *Config) ParserOptions() parser.Options {
	engine, err := parser.ParseEngine(c.Engine)
	if err != nil {
		engine = parser.EngineDynamic
	}
	return parser.Options{Engine: engine, Lenient: !c.Strict}
}

// FormatterOptions returns the rendering options described by the config
func (c *Config) FormatterOptions() formatter.Options {
	return formatter.Options{
		Format:  formatter.OutputFormat(c.Output.Format),
		Indent:  c.Output.Indent,
		KeyCase: formatter.KeyCase(c.Naming.KeyCase),
	}
}

// CLIOverrides carries command-line values that take precedence over the
// config file. Zero values mean "not given".
type CLIOverrides struct {
	Engine  string
	Lenient bool
	Format  string
	Indent  *int
	KeyCase string
	Stats   bool
	Debug   bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Engine != "" {
		cfg.Engine = cli.Engine
	}
	if cli.Lenient {
		cfg.Strict = false
	}
	if cli.Format != "" {
		cfg.Output.Format = cli.Format
	}
	if cli.Indent != nil {
		cfg.Output.Indent = *cli.Indent
	}
	if cli.KeyCase != "" {
		cfg.Naming.KeyCase = cli.KeyCase
	}
	// Boolean switches can only turn features on
	cfg.Output.Stats = cfg.Output.Stats || cli.Stats
	cfg.Dev.Debug = cfg.Dev.Debug || cli.Debug

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
