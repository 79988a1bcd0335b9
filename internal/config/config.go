// Package config manages application configuration.
package config

import (
	"fmt"

	"github.com/roboco-io/bmpmorph/internal/morphology"
)

// Config represents the application configuration.
type Config struct {
	Morphology MorphologyConfig `yaml:"morphology"`
	Kernel     KernelConfig     `yaml:"kernel"`
	Conversion ConversionConfig `yaml:"conversion"`
	Output     OutputConfig     `yaml:"output"`
}

// MorphologyConfig selects the default transform.
type MorphologyConfig struct {
	Operation  string `yaml:"operation"`
	Iterations int    `yaml:"iterations"`
}

// KernelConfig describes the structuring element.
type KernelConfig struct {
	Size       int    `yaml:"size"`
	Expression string `yaml:"expression,omitempty"` // empty means a full square
}

// ConversionConfig contains colour-to-binary options.
type ConversionConfig struct {
	Threshold int `yaml:"threshold"`
}

// OutputConfig controls how results are written.
type OutputConfig struct {
	Compression string `yaml:"compression"` // none, zstd
	ZstdLevel   int    `yaml:"zstd_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Morphology: MorphologyConfig{
			Operation:  "open",
			Iterations: 1,
		},
		Kernel: KernelConfig{
			Size: 3,
		},
		Conversion: ConversionConfig{
			Threshold: 128,
		},
		Output: OutputConfig{
			Compression: "none",
			ZstdLevel:   3,
		},
	}
}

// Compressed reports whether output should be wrapped in zstd.
func (c *Config) Compressed() bool {
	return c.Output.Compression == "zstd"
}

// Validate checks value ranges. Operation names are checked by the
// command that uses them.
func (c *Config) Validate() error {
	if c.Morphology.Iterations < 1 {
		return fmt.Errorf("morphology.iterations must be >= 1: %d", c.Morphology.Iterations)
	}
	if c.Kernel.Size < 0 || c.Kernel.Size > morphology.MaxKernelSize {
		return fmt.Errorf("kernel.size must be in 0-%d: %d", morphology.MaxKernelSize, c.Kernel.Size)
	}
	if c.Conversion.Threshold < 0 || c.Conversion.Threshold > 255 {
		return fmt.Errorf("conversion.threshold must be in 0-255: %d", c.Conversion.Threshold)
	}
	switch c.Output.Compression {
	case "none", "zstd":
	default:
		return fmt.Errorf("output.compression must be none or zstd: %q", c.Output.Compression)
	}
	if c.Output.ZstdLevel < 1 || c.Output.ZstdLevel > 4 {
		return fmt.Errorf("output.zstd_level must be in 1-4: %d", c.Output.ZstdLevel)
	}
	return nil
}
