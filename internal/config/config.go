// Package config loads the ratbatch YAML configuration.
//
// Every field has a default, so an absent file or an empty document yields a
// usable configuration. Fields present in the document override the defaults
// one by one.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type ExpressionsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type SumConfig struct {
	Files  []string `yaml:"files"`
	Output string   `yaml:"output"`
}

type Config struct {
	Expressions ExpressionsConfig `yaml:"expressions"`
	Sum         SumConfig         `yaml:"sum"`
	// Precision is the number of decimals printed after each fraction.
	Precision int    `yaml:"precision"`
	LogLevel  string `yaml:"log_level"`
	History   bool   `yaml:"history"`
}

// maxPrecision is the most decimals a float64 can meaningfully show.
const maxPrecision = 17

func Default() Config {
	return Config{
		Expressions: ExpressionsConfig{
			Input:  "input01.txt",
			Output: "output_demo.txt",
		},
		Sum: SumConfig{
			Files:  []string{"input01 (1).txt", "input02.txt", "input03.txt"},
			Output: "output_demo2.txt",
		},
		Precision: 5,
		LogLevel:  "info",
		History:   true,
	}
}

// Parse decodes a YAML document over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	return LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// LoadFS is Load over a filesystem.
func LoadFS(fsys fs.FS, name string) (Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Precision < 0 || c.Precision > maxPrecision {
		return fmt.Errorf("precision must be between 0 and %d, got %d", maxPrecision, c.Precision)
	}
	if c.Expressions.Input == "" || c.Expressions.Output == "" {
		return errors.New("expressions.input and expressions.output must be set")
	}
	if c.Sum.Output == "" {
		return errors.New("sum.output must be set")
	}
	if _, err := c.ZapLevel(); err != nil {
		return err
	}
	return nil
}

// ZapLevel parses LogLevel.
func (c Config) ZapLevel() (zap.AtomicLevel, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
