// SPDX-License-Identifier: Apache-2.0

// Package config loads cardmint settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/qudoro/cardmint/internal/card"
	"github.com/qudoro/cardmint/internal/dedupe"
	"github.com/qudoro/cardmint/internal/intake"
)

// DefaultFile is read when no explicit path is given and it exists.
const DefaultFile = "cardmint.yaml"

type Log struct {
	Mode string `yaml:"mode"`
}

type Intake struct {
	LowConfidenceThreshold  float64 `yaml:"low_confidence_threshold"`
	SuppressExactDuplicates *bool   `yaml:"suppress_exact_duplicates"`
	FuzzyBatchDuplicates    bool    `yaml:"fuzzy_batch_duplicates"`
	Workers                 int     `yaml:"workers"`
}

type Duplicates struct {
	Similarity       float64 `yaml:"similarity"`
	MinLengthSlack   int     `yaml:"min_length_slack"`
	LengthSlackRatio float64 `yaml:"length_slack_ratio"`
}

type Accept struct {
	ForceDuplicates bool `yaml:"force_duplicates"`
}

type Card struct {
	Tags   []string `yaml:"tags"`
	Domain string   `yaml:"domain"`
}

type Config struct {
	Log        Log        `yaml:"log"`
	Intake     Intake     `yaml:"intake"`
	Duplicates Duplicates `yaml:"duplicates"`
	Accept     Accept     `yaml:"accept"`
	Card       Card       `yaml:"card"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero or out-of-range values.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.Log.Mode) == "" {
		c.Log.Mode = "dev"
	}
	if c.Intake.LowConfidenceThreshold <= 0 || c.Intake.LowConfidenceThreshold > 1 {
		c.Intake.LowConfidenceThreshold = intake.DefaultLowConfidence
	}
	if c.Intake.SuppressExactDuplicates == nil {
		on := true
		c.Intake.SuppressExactDuplicates = &on
	}
	if c.Intake.Workers < 1 {
		c.Intake.Workers = 1
	}
	if c.Duplicates.Similarity <= 0 || c.Duplicates.Similarity > 1 {
		c.Duplicates.Similarity = dedupe.DefaultSimilarity
	}
	if c.Duplicates.MinLengthSlack <= 0 {
		c.Duplicates.MinLengthSlack = dedupe.DefaultMinLengthSlack
	}
	if c.Duplicates.LengthSlackRatio <= 0 {
		c.Duplicates.LengthSlackRatio = dedupe.DefaultLengthSlackRatio
	}
	if len(c.Card.Tags) == 0 {
		c.Card.Tags = []string{card.DefaultTag}
	}
	if strings.TrimSpace(c.Card.Domain) == "" {
		c.Card.Domain = card.DefaultDomain
	}
}

// Load reads configuration from path. An empty path reads DefaultFile when it
// exists and falls back to defaults otherwise; an explicit missing path is an
// error. Environment overrides are applied last.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("CARDMINT_LOG_MODE")); v != "" {
		c.Log.Mode = v
	}
	if v := strings.TrimSpace(os.Getenv("CARDMINT_FORCE_DUPLICATES")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CARDMINT_FORCE_DUPLICATES: %w", err)
		}
		c.Accept.ForceDuplicates = b
	}
	if v := strings.TrimSpace(os.Getenv("CARDMINT_WORKERS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CARDMINT_WORKERS: %w", err)
		}
		c.Intake.Workers = n
	}
	return nil
}

// PipelineOptions maps the intake section onto intake.Options.
func (c Config) PipelineOptions() intake.Options {
	return intake.Options{
		LowConfidenceThreshold:  c.Intake.LowConfidenceThreshold,
		SuppressExactDuplicates: c.Intake.SuppressExactDuplicates == nil || *c.Intake.SuppressExactDuplicates,
		FuzzyBatchDuplicates:    c.Intake.FuzzyBatchDuplicates,
		Workers:                 c.Intake.Workers,
	}
}

// Detector builds a duplicate detector from the duplicates section.
func (c Config) Detector() *dedupe.Detector {
	return &dedupe.Detector{
		Similarity:       c.Duplicates.Similarity,
		MinLengthSlack:   c.Duplicates.MinLengthSlack,
		LengthSlackRatio: c.Duplicates.LengthSlackRatio,
	}
}

// Builder builds a card builder from the card section.
func (c Config) Builder() *card.Builder {
	b := card.NewBuilder()
	b.Tags = append([]string{}, c.Card.Tags...)
	b.Domain = c.Card.Domain
	return b
}

// AcceptOptions combines the accept, duplicates, and card sections.
func (c Config) AcceptOptions() intake.AcceptOptions {
	return intake.AcceptOptions{
		Force:    c.Accept.ForceDuplicates,
		Builder:  c.Builder(),
		Detector: c.Detector(),
	}
}
