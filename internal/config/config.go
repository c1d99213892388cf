// Package config loads the bootlogo settings file and maps it onto pipeline
// options.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/pipeline"
	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/round"
)

// Environment variable names
const (
	EnvConfigPath = "BOOTLOGO_CONFIG"
	EnvSystemRoot = "SystemRoot"
)

// Default values
const (
	DefaultSystemRoot = `C:\Windows`
	DefaultTempPrefix = "icon_replacer_"
	TargetFileName    = "imageres.dll"
)

// Config represents the application configuration
type Config struct {
	Sizes       [][2]int     `yaml:"sizes"`
	Filter      string       `yaml:"filter"`
	MinWidth    int          `yaml:"min_width"`
	MinHeight   int          `yaml:"min_height"`
	PreviewName string       `yaml:"preview_name"`
	IconName    string       `yaml:"icon_name"`
	OutputDir   string       `yaml:"output_dir"`
	TempPrefix  string       `yaml:"temp_prefix"`
	Backup      BackupConfig `yaml:"backup"`
}

type BackupConfig struct {
	Target string `yaml:"target"`
	Dir    string `yaml:"dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Filter:      round.DefaultFilter,
		MinWidth:    pipeline.DefaultMinWidth,
		MinHeight:   pipeline.DefaultMinHeight,
		PreviewName: pipeline.DefaultPreviewName,
		IconName:    pipeline.DefaultIconName,
		TempPrefix:  DefaultTempPrefix,
		Backup: BackupConfig{
			Target: DefaultTarget(),
		},
	}
	for _, s := range round.DefaultSizes {
		cfg.Sizes = append(cfg.Sizes, [2]int{s.Width, s.Height})
	}
	return cfg
}

// DefaultTarget is the system DLL that carries the boot logo icon group,
// resolved against %SystemRoot%.
func DefaultTarget() string {
	root := strings.TrimSpace(os.Getenv(EnvSystemRoot))
	if root == "" {
		root = DefaultSystemRoot
	}
	return joinWindows(root, "System32", TargetFileName)
}

// joinWindows joins with a backslash when root looks like a Windows path so
// the default stays meaningful when the tool runs elsewhere.
func joinWindows(root string, elem ...string) string {
	if strings.Contains(root, `\`) {
		return strings.TrimRight(root, `\`) + `\` + strings.Join(elem, `\`)
	}
	return filepath.Join(append([]string{root}, elem...)...)
}

// Load reads and parses the configuration file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadDefault loads path if set, otherwise the file named by BOOTLOGO_CONFIG,
// otherwise the built-in defaults.
func LoadDefault(path string) (*Config, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks if required configuration fields are set
func (c *Config) Validate() error {
	if err := c.SizeSpec().Validate(); err != nil {
		return fmt.Errorf("sizes: %w", err)
	}
	if _, err := round.ParseFilter(c.Filter); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if c.MinWidth < 1 || c.MinHeight < 1 {
		return fmt.Errorf("min_width and min_height must be positive")
	}
	if c.PreviewName == "" || c.IconName == "" {
		return fmt.Errorf("preview_name and icon_name are required")
	}
	if c.PreviewName == c.IconName {
		return fmt.Errorf("preview_name and icon_name must differ")
	}
	if filepath.Base(c.PreviewName) != c.PreviewName || filepath.Base(c.IconName) != c.IconName {
		return fmt.Errorf("preview_name and icon_name must be plain file names")
	}
	return nil
}

// SizeSpec converts the configured size pairs, keeping their order.
func (c *Config) SizeSpec() round.SizeSpec {
	spec := make(round.SizeSpec, 0, len(c.Sizes))
	for _, s := range c.Sizes {
		spec = append(spec, round.Size{Width: s[0], Height: s[1]})
	}
	return spec
}

// PipelineOptions maps the configuration onto pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Sizes:       c.SizeSpec(),
		Filter:      c.Filter,
		MinWidth:    c.MinWidth,
		MinHeight:   c.MinHeight,
		PreviewName: c.PreviewName,
		IconName:    c.IconName,
	}
}
