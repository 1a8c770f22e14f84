package snap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Config captures the profiling settings active when a snapshot is taken.
// Optional settings use pointer fields so a merge can tell "explicitly set"
// apart from "left at default".
type Config struct {
	Minimal      *bool          `json:"minimal,omitempty" yaml:"minimal,omitempty"`
	Explorative  *bool          `json:"explorative,omitempty" yaml:"explorative,omitempty"`
	ProgressBar  *bool          `json:"progress_bar,omitempty" yaml:"progress_bar,omitempty"`
	Samples      *SampleConfig  `json:"samples,omitempty" yaml:"samples,omitempty"`
	Correlations map[string]bool `json:"correlations,omitempty" yaml:"correlations,omitempty"`
	Plot         *PlotConfig    `json:"plot,omitempty" yaml:"plot,omitempty"`
	Vars         *VarConfig     `json:"vars,omitempty" yaml:"vars,omitempty"`
}

// SampleConfig controls how many dataset rows are carried into the report.
type SampleConfig struct {
	Head *int `json:"head,omitempty" yaml:"head,omitempty"`
	Tail *int `json:"tail,omitempty" yaml:"tail,omitempty"`
}

// PlotConfig controls rendered chart output.
type PlotConfig struct {
	Histogram   *HistogramConfig `json:"histogram,omitempty" yaml:"histogram,omitempty"`
	ImageFormat *string          `json:"image_format,omitempty" yaml:"image_format,omitempty"`
	DPI         *int             `json:"dpi,omitempty" yaml:"dpi,omitempty"`
}

// HistogramConfig bounds histogram rendering.
type HistogramConfig struct {
	Bins    *int `json:"bins,omitempty" yaml:"bins,omitempty"`
	MaxBins *int `json:"max_bins,omitempty" yaml:"max_bins,omitempty"`
}

// VarConfig controls per-type variable summarisation.
type VarConfig struct {
	NumLowCategoricalThreshold *int  `json:"num_low_categorical_threshold,omitempty" yaml:"num_low_categorical_threshold,omitempty"`
	CatUnicode                 *bool `json:"cat_unicode,omitempty" yaml:"cat_unicode,omitempty"`
}

// DefaultConfig returns the configuration a freshly constructed report runs
// with. IsDefault compares against this value.
func DefaultConfig() Config {
	return Config{
		Minimal:     ptr(false),
		Explorative: ptr(false),
		ProgressBar: ptr(true),
		Samples:     &SampleConfig{Head: ptr(10), Tail: ptr(10)},
		Correlations: map[string]bool{
			"pearson":  true,
			"spearman": true,
			"kendall":  true,
			"cramers":  true,
		},
		Plot: &PlotConfig{
			Histogram:   &HistogramConfig{Bins: ptr(50), MaxBins: ptr(250)},
			ImageFormat: ptr("svg"),
			DPI:         ptr(800),
		},
		Vars: &VarConfig{
			NumLowCategoricalThreshold: ptr(5),
			CatUnicode:                 ptr(false),
		},
	}
}

// IsDefault reports whether the configuration is indistinguishable from
// DefaultConfig.
func (c Config) IsDefault() bool {
	return reflect.DeepEqual(c, DefaultConfig())
}

// ConfigFromYAML decodes a configuration document. Unknown keys are rejected
// so typos surface instead of silently reverting to defaults.
func ConfigFromYAML(data []byte) (Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Config
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("snap: empty config document")
		}
		return Config{}, fmt.Errorf("snap: parse config: %w", err)
	}
	return c, nil
}

// LoadConfigFile reads a YAML configuration file from path.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("snap: read config file: %w", err)
	}
	return ConfigFromYAML(data)
}

func ptr[T any](v T) *T { return &v }
