// SPDX-License-Identifier: MIT
//
// File: load.go
// Role: layered loading (defaults, YAML, .env, environment).

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment key.
const EnvPrefix = "PROTEONET_"

// Source is the set of optional inputs of Load.
type Source struct {
	// File is a YAML file; empty skips it.
	File string
	// EnvFile is a dotenv file; empty or absent skips it.
	EnvFile string
	// Lookup reads environment values; nil uses os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Load reads the YAML file at path (optional), ".env" in the working
// directory (optional) and the process environment.
func Load(path string) (Config, error) {
	return LoadFrom(Source{File: path, EnvFile: ".env"})
}

// LoadFrom merges src over Default and validates the result.
//
// Implementation:
//   - Stage 1: defaults.
//   - Stage 2: YAML file decoded over the defaults (unknown keys fail).
//   - Stage 3: environment overlay; a key set in the environment wins over
//     the same key in the dotenv file.
//   - Stage 4: validation.
func LoadFrom(src Source) (Config, error) {
	cfg := Default()
	if src.File != "" {
		if err := readYAML(src.File, &cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv := map[string]string{}
	if src.EnvFile != "" {
		m, err := godotenv.Read(src.EnvFile)
		switch {
		case err == nil:
			dotenv = m
		case !errors.Is(err, fs.ErrNotExist):
			return Config{}, fmt.Errorf("config: read %s: %w", src.EnvFile, err)
		}
	}
	lookup := src.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	env := func(key string) (string, bool) {
		if v, ok := lookup(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := dotenv[EnvPrefix+key]
		return v, ok
	}
	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func readYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	return nil
}

// applyEnv overlays every recognized key present in env.
func applyEnv(cfg *Config, env func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := env(key); ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		v, ok := env(key)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q", ErrInvalidEnv, EnvPrefix, key, v)
		}
		*dst = b
		return nil
	}
	number := func(key string) (*float64, error) {
		v, ok := env(key)
		if !ok {
			return nil, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s%s=%q", ErrInvalidEnv, EnvPrefix, key, v)
		}
		return &f, nil
	}

	mv, err := number("MISSING_VALUE")
	if err != nil {
		return err
	}
	if mv != nil {
		cfg.MissingValue = *mv
	}

	str("LOG_LEVEL", &cfg.Log.Level)
	if err = boolean("LOG_DEVELOPMENT", &cfg.Log.Development); err != nil {
		return err
	}

	str("BLOB_DRIVER", &cfg.Blob.Driver)
	str("BLOB_ROOT", &cfg.Blob.Root)
	str("BLOB_BUCKET", &cfg.Blob.Bucket)
	str("BLOB_REGION", &cfg.Blob.Region)
	str("BLOB_ENDPOINT", &cfg.Blob.Endpoint)
	str("BLOB_ACCESS_KEY_ID", &cfg.Blob.AccessKeyID)
	str("BLOB_SECRET_ACCESS_KEY", &cfg.Blob.SecretAccessKey)
	if err = boolean("BLOB_PATH_STYLE", &cfg.Blob.PathStyle); err != nil {
		return err
	}

	str("GRAPH_MAPPING", &cfg.Graph.Mapping)
	str("GRAPH_TARGET_COLUMN", &cfg.Graph.TargetColumn)
	if err = boolean("GRAPH_BIDIRECTIONAL", &cfg.Graph.Bidirectional); err != nil {
		return err
	}
	if v, ok := env("GRAPH_CACHE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sGRAPH_CACHE_SIZE=%q", ErrInvalidEnv, EnvPrefix, v)
		}
		cfg.Graph.CacheSize = n
	}
	mcv, err := number("GRAPH_MISSING_COLUMN_VALUE")
	if err != nil {
		return err
	}
	if mcv != nil {
		cfg.Graph.MissingColumnValue = mcv
	}
	if v, ok := env("GRAPH_FEATURE_COLUMNS"); ok {
		cfg.Graph.FeatureColumns = splitList(v)
	}

	return nil
}

func splitList(v string) []string {
	out := []string{}
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
