package domain

import (
	"fmt"
	"strings"
)

const (
	DiffModeFull    = "full"
	DiffModeSummary = "summary"
	DiffModeNone    = "none"
)

type DiffConfig struct {
	Mode    string `yaml:"mode"`
	Context int    `yaml:"context"`
}

// Config holds the user defaults stored in ~/.smalipatch.yaml. Command line
// flags take precedence over these values.
type Config struct {
	SkipFailed      bool       `yaml:"skipFailed"`
	NonStrict       bool       `yaml:"nonStrict"`
	IgnoreDebugInfo bool       `yaml:"ignoreDebugInfo"`
	Extensions      []string   `yaml:"extensions"`
	Diff            DiffConfig `yaml:"diff"`
	LogFile         string     `yaml:"logFile,omitempty"`
}

func CreateDefaultConfig() Config {
	return Config{
		SkipFailed:      false,
		NonStrict:       false,
		IgnoreDebugInfo: true,
		Extensions:      []string{".smali"},
		Diff: DiffConfig{
			Mode:    DiffModeFull,
			Context: 3,
		},
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	switch c.Diff.Mode {
	case DiffModeFull, DiffModeSummary, DiffModeNone:
	default:
		return fmt.Errorf("unknown diff mode '%s', expected one of %s, %s, %s",
			c.Diff.Mode, DiffModeFull, DiffModeSummary, DiffModeNone)
	}
	if c.Diff.Context < 0 {
		return fmt.Errorf("diff context must not be negative, got %d", c.Diff.Context)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("at least one file extension is required")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension '%s' must start with a dot", ext)
		}
		if strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("extension '%s' contains a path separator", ext)
		}
	}
	return nil
}
