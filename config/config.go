// SPDX-License-Identifier: MIT
//
// File: config.go
// Role: Config sections, defaults and validation.

package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config is the complete proteonet configuration.
type Config struct {
	// MissingValue is the dataset missing sentinel; YAML ".nan" or env "NaN" select NaN.
	MissingValue float64 `yaml:"missing_value"`

	Log   Log   `yaml:"log"`
	Blob  Blob  `yaml:"blob"`
	Graph Graph `yaml:"graph"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// Blob selects and configures the object store driver.
type Blob struct {
	Driver string `yaml:"driver" validate:"oneof=fs memory s3"`
	// Root is the directory of the fs driver.
	Root string `yaml:"root" validate:"required_if=Driver fs"`

	Bucket          string `yaml:"bucket" validate:"required_if=Driver s3"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint" validate:"omitempty,url"`
	PathStyle       bool   `yaml:"path_style"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// Graph configures node projection and tensor population.
type Graph struct {
	Mapping       string `yaml:"mapping" validate:"required"`
	Bidirectional bool   `yaml:"bidirectional"`
	// CacheSize bounds the projection cache; 0 disables it.
	CacheSize int `yaml:"cache_size" validate:"gte=0"`
	// MissingColumnValue substitutes absent feature columns; nil fails instead.
	MissingColumnValue *float64 `yaml:"missing_column_value"`
	TargetColumn       string   `yaml:"target_column" validate:"required"`
	FeatureColumns     []string `yaml:"feature_columns" validate:"dive,required"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MissingValue: math.NaN(),
		Log:          Log{Level: "info"},
		Blob:         Blob{Driver: "fs", Root: "./data"},
		Graph: Graph{
			Mapping:        "peptide-protein",
			CacheSize:      16,
			TargetColumn:   "abundance",
			FeatureColumns: []string{},
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags and the cross-field rules.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for _, col := range c.Graph.FeatureColumns {
		if col == c.Graph.TargetColumn {
			return fmt.Errorf("%w: target column %q listed as feature", ErrInvalid, col)
		}
	}

	return nil
}
