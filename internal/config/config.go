package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rhyrak/go-facultyload/internal/loads"
)

// EnvPrefix marks environment overrides, e.g. FL_LOADS__MERGE_RULE=sum.
const EnvPrefix = "FL_"

type Config struct {
	Input   InputConfig   `json:"input"`
	Export  ExportConfig  `json:"export"`
	Loads   LoadsConfig   `json:"loads"`
	Server  ServerConfig  `json:"server"`
	Logging LoggingConfig `json:"logging"`
}

// InputConfig locates the schedule to read.
type InputConfig struct {
	Path string `json:"path"`
	// Delimiter separates the columns of flat CSV schedules.
	Delimiter string `json:"delimiter"`
}

// ExportConfig names the files written by the export command.
type ExportConfig struct {
	Dir             string `json:"dir"`
	TeachingFile    string `json:"teaching_file"`
	NonTeachingFile string `json:"non_teaching_file"`
	LoadsFile       string `json:"loads_file"`
}

// LoadsConfig tunes the faculty loads table.
type LoadsConfig struct {
	// MergeRule is "legacy" or "sum".
	MergeRule string `json:"merge_rule"`
}

type ServerConfig struct {
	Addr        string `json:"addr"`
	AllowOrigin string `json:"allow_origin"`
}

type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// Load reads path (yaml or json) and applies FL_ environment overrides. An
// empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Input.Delimiter == "" {
		c.Input.Delimiter = ","
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.Export.TeachingFile == "" {
		c.Export.TeachingFile = "teaching.csv"
	}
	if c.Export.NonTeachingFile == "" {
		c.Export.NonTeachingFile = "non-teaching.csv"
	}
	if c.Export.LoadsFile == "" {
		c.Export.LoadsFile = "faculty-loads.csv"
	}
	if c.Loads.MergeRule == "" {
		c.Loads.MergeRule = loads.DefaultMergeRule.String()
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3001"
	}
	if c.Server.AllowOrigin == "" {
		c.Server.AllowOrigin = "*"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		return fmt.Errorf("input.delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	if _, err := loads.ParseMergeRule(c.Loads.MergeRule); err != nil {
		return fmt.Errorf("loads.merge_rule: %w", err)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("unknown logging format %s", c.Logging.Format)
	}
	return nil
}

// Delimiter returns the flat CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Input.Delimiter)
	return r
}

// MergeRule returns the parsed loads merge rule.
func (c *Config) MergeRule() loads.MergeRule {
	rule, _ := loads.ParseMergeRule(c.Loads.MergeRule)
	return rule
}

// ExportPath joins name to the export directory.
func (c *Config) ExportPath(name string) string {
	return filepath.Join(c.Export.Dir, name)
}
