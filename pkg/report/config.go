package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/wdm0006/arffutils/pkg/dataset"
)

// Subset names, in report order.
const (
	SubsetAll   = "all"
	SubsetFalse = "false"
	SubsetTrue  = "true"
)

// Config controls which features are reported and how.
type Config struct {
	// TargetClass is the boolean target attribute. It is never reported as
	// a feature.
	TargetClass string `json:"target_class" yaml:"target_class" toml:"target_class"`
	// ExcludedFeatures are numeric attributes left out of the report.
	ExcludedFeatures []string `json:"excluded_features" yaml:"excluded_features" toml:"excluded_features"`
	// Quantiles are the two extreme quantiles shown next to the median.
	Quantiles []float64 `json:"quantiles" yaml:"quantiles" toml:"quantiles"`
	// Subsets selects and orders the row subsets; any of all, false, true.
	Subsets []string `json:"subsets" yaml:"subsets" toml:"subsets"`
	// LogLogKurtosis is the "all" kurtosis above which the PDF is drawn
	// log-log.
	LogLogKurtosis float64 `json:"loglog_kurtosis" yaml:"loglog_kurtosis" toml:"loglog_kurtosis"`
	// GraphSize is the side of one plot tile, in inches.
	GraphSize float64 `json:"graph_size" yaml:"graph_size" toml:"graph_size"`
	// TextWidth is the plot width, in columns, of the console summary.
	TextWidth int `json:"text_width" yaml:"text_width" toml:"text_width"`
}

func DefaultConfig() Config {
	return Config{
		TargetClass:      dataset.DefaultTargetClass,
		ExcludedFeatures: []string{"KeyColumn"},
		Quantiles:        []float64{0.0001, 0.9999},
		Subsets:          []string{SubsetAll, SubsetFalse, SubsetTrue},
		LogLogKurtosis:   100,
		GraphSize:        5,
		TextWidth:        60,
	}
}

// LoadConfig reads a config file over the defaults. The format follows the
// extension: .yaml/.yml, .toml or .json.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.TargetClass == "" {
		return fmt.Errorf("config: target_class is empty")
	}
	if len(c.Quantiles) != 2 {
		return fmt.Errorf("config: want 2 quantiles, got %d", len(c.Quantiles))
	}
	for _, q := range c.Quantiles {
		if q < 0 || q > 1 {
			return fmt.Errorf("config: quantile %v outside [0,1]", q)
		}
	}
	if len(c.Subsets) == 0 {
		return fmt.Errorf("config: no subsets")
	}
	for _, s := range c.Subsets {
		switch s {
		case SubsetAll, SubsetFalse, SubsetTrue:
		default:
			return fmt.Errorf("config: unknown subset %q", s)
		}
	}
	if c.GraphSize <= 0 {
		return fmt.Errorf("config: graph_size must be positive")
	}
	return nil
}

// DatasetOptions are the loader options matching c.
func (c Config) DatasetOptions() dataset.Options {
	return dataset.Options{TargetClass: c.TargetClass}
}

func (c Config) excluded(name string) bool {
	if name == c.TargetClass {
		return true
	}
	for _, e := range c.ExcludedFeatures {
		if e == name {
			return true
		}
	}
	return false
}
