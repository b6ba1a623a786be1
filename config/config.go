// Package config assembles a separator.Options from Viper-backed
// defaults, an optional config file, and per-key overrides made through
// Set. Environment variables are not read.
package config

import (
	"github.com/spf13/viper"

	"github.com/mongoosego/separator/internal/logging"
	"github.com/mongoosego/separator/pkg/separator"

	"github.com/rs/zerolog"
)

// Config wraps a *viper.Viper seeded with spec-named defaults
// (DefaultOptions mirrored as dotted keys) plus a logging section.
type Config struct {
	v *viper.Viper
}

// New returns a Config pre-loaded with separator.DefaultOptions() and an
// info-level logging default.
func New() *Config {
	v := viper.New()
	d := separator.DefaultOptions()

	v.SetDefault("random_seed", d.RandomSeed)

	v.SetDefault("coarsening.limit", d.CoarsenLimit)
	v.SetDefault("coarsening.strategy", d.MatchingStrategy.String())
	v.SetDefault("coarsening.do_community_matching", d.DoCommunityMatching)
	v.SetDefault("coarsening.davis_brotherly_threshold", d.DavisBrotherlyThreshold)

	v.SetDefault("guess.type", "qp")

	v.SetDefault("waterdance.num_dances", d.NumDances)

	v.SetDefault("fm.enabled", d.UseFM)
	v.SetDefault("fm.search_depth", d.FMSearchDepth)
	v.SetDefault("fm.consider_count", d.FMConsiderCount)
	v.SetDefault("fm.max_num_refinements", d.FMMaxNumRefinements)

	v.SetDefault("qp.enabled", d.UseQPGradProj)
	v.SetDefault("qp.grad_proj_tolerance", d.GradProjTolerance)
	v.SetDefault("qp.grad_proj_iteration_limit", d.GradProjIterationLimit)

	v.SetDefault("split.target", d.TargetSplit)
	v.SetDefault("split.soft_tolerance", d.SoftSplitTolerance)

	v.SetDefault("logging.level", "info")

	return &Config{v: v}
}

// LoadFromFile merges a config file (any format Viper supports) over the
// current defaults.
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Set allows a caller (e.g. the CLI flag layer) to override one key.
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

func (c *Config) matchingStrategy() separator.MatchingStrategy {
	switch c.v.GetString("coarsening.strategy") {
	case "random":
		return separator.Random
	case "hem":
		return separator.HEM
	case "hempa":
		return separator.HEMPA
	case "hemdavispa":
		return separator.HEMDavisPA
	default:
		return separator.HEMDavisPA
	}
}

func (c *Config) guessCutType() separator.GuessCutType {
	switch c.v.GetString("guess.type") {
	case "natural":
		return separator.GuessNaturalOrder
	case "random":
		return separator.GuessRandom
	case "qp":
		return separator.GuessQP
	default:
		return separator.GuessQP
	}
}

// Build assembles a validated separator.Options from the current config
// state.
func (c *Config) Build() (separator.Options, error) {
	opts := separator.Options{
		RandomSeed:              c.v.GetInt64("random_seed"),
		CoarsenLimit:            c.v.GetInt("coarsening.limit"),
		MatchingStrategy:        c.matchingStrategy(),
		DoCommunityMatching:     c.v.GetBool("coarsening.do_community_matching"),
		DavisBrotherlyThreshold: c.v.GetFloat64("coarsening.davis_brotherly_threshold"),
		GuessCutType:            c.guessCutType(),
		NumDances:               c.v.GetInt("waterdance.num_dances"),
		UseFM:                   c.v.GetBool("fm.enabled"),
		FMSearchDepth:           c.v.GetInt("fm.search_depth"),
		FMConsiderCount:         c.v.GetInt("fm.consider_count"),
		FMMaxNumRefinements:     c.v.GetInt("fm.max_num_refinements"),
		UseQPGradProj:           c.v.GetBool("qp.enabled"),
		GradProjTolerance:       c.v.GetFloat64("qp.grad_proj_tolerance"),
		GradProjIterationLimit:  c.v.GetInt("qp.grad_proj_iteration_limit"),
		TargetSplit:             c.v.GetFloat64("split.target"),
		SoftSplitTolerance:      c.v.GetFloat64("split.soft_tolerance"),
	}
	if err := opts.Validate(); err != nil {
		return separator.Options{}, err
	}
	return opts, nil
}

// LogLevel returns the configured logging level string.
func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }

// CreateLogger builds the zerolog.Logger named by LogLevel, via the
// shared internal/logging constructor.
func (c *Config) CreateLogger() zerolog.Logger {
	return logging.New(c.LogLevel())
}
