package filerenamer

import (
	"os"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// RawRules holds rule entries the way a user types them. Numeric entries stay
// strings until Parse so that a bad value can be reported as ErrInvalidConfig.
type RawRules struct {
	ReplaceEnabled   bool   `yaml:"replace_enabled" json:"replace_enabled,omitempty"`
	FindText         string `yaml:"find_text" json:"find_text,omitempty"`
	ReplaceText      string `yaml:"replace_text" json:"replace_text,omitempty"`
	RenumberEnabled  bool   `yaml:"renumber_enabled" json:"renumber_enabled,omitempty"`
	StartNumber      string `yaml:"start_number" json:"start_number,omitempty"`
	PaddingEnabled   bool   `yaml:"padding_enabled" json:"padding_enabled,omitempty"`
	PaddingWidth     string `yaml:"padding_width" json:"padding_width,omitempty"`
	ExtensionEnabled bool   `yaml:"extension_enabled" json:"extension_enabled,omitempty"`
	NewExtension     string `yaml:"new_extension" json:"new_extension,omitempty"`
}

type Config struct {
	Rules           RawRules `yaml:"rules"`
	OutputDir       string   `yaml:"output_dir"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

func DefaultConfig() *Config {
	return &Config{
		Rules: RawRules{
			StartNumber:  strconv.Itoa(DefaultStartNumber),
			PaddingWidth: strconv.Itoa(DefaultPaddingWidth),
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}

	return config, nil
}

// Parse converts the entries into Rules. The start number is only required
// when renumbering and the width only when padding; an empty width falls back
// to DefaultPaddingWidth.
func (r RawRules) Parse() (Rules, error) {
	rules := Rules{
		ReplaceEnabled:   r.ReplaceEnabled,
		FindText:         r.FindText,
		ReplaceText:      r.ReplaceText,
		RenumberEnabled:  r.RenumberEnabled,
		StartNumber:      DefaultStartNumber,
		PaddingEnabled:   r.PaddingEnabled,
		PaddingWidth:     DefaultPaddingWidth,
		ExtensionEnabled: r.ExtensionEnabled,
		NewExtension:     strings.TrimLeft(strings.TrimSpace(r.NewExtension), "."),
	}

	if r.RenumberEnabled {
		start, err := strconv.Atoi(strings.TrimSpace(r.StartNumber))
		if err != nil {
			return Rules{}, errors.Errorf("%w: start number %q is not an integer", ErrInvalidConfig, r.StartNumber)
		}
		rules.StartNumber = start
	}

	if r.PaddingEnabled {
		if width := strings.TrimSpace(r.PaddingWidth); width != "" {
			n, err := strconv.Atoi(width)
			if err != nil {
				return Rules{}, errors.Errorf("%w: padding width %q is not an integer", ErrInvalidConfig, r.PaddingWidth)
			}
			rules.PaddingWidth = n
		}
	}

	if err := ValidateRules(rules); err != nil {
		return Rules{}, err
	}

	return rules, nil
}
