// SPDX-License-Identifier: MIT

package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/proteonet/config"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	return p
}

func TestDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(config.Source{Lookup: env(nil)})
	require.NoError(t, err)
	require.True(t, math.IsNaN(cfg.MissingValue))
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "fs", cfg.Blob.Driver)
	require.Equal(t, "peptide-protein", cfg.Graph.Mapping)
	require.Equal(t, 16, cfg.Graph.CacheSize)
	require.Nil(t, cfg.Graph.MissingColumnValue)
}

func TestLayering(t *testing.T) {
	file := write(t, "proteonet.yaml", `
missing_value: -1
log:
  level: debug
blob:
  driver: memory
graph:
  mapping: gene
  bidirectional: true
  target_column: abundance
  feature_columns: [observed]
  missing_column_value: 0
`)
	dotenv := write(t, ".env", "PROTEONET_LOG_LEVEL=warn\nPROTEONET_GRAPH_CACHE_SIZE=4\n")

	cfg, err := config.LoadFrom(config.Source{
		File:    file,
		EnvFile: dotenv,
		Lookup:  env(map[string]string{"PROTEONET_LOG_LEVEL": "error", "PROTEONET_GRAPH_FEATURE_COLUMNS": "a, b,,c"}),
	})
	require.NoError(t, err)
	require.Equal(t, -1.0, cfg.MissingValue)
	require.Equal(t, "error", cfg.Log.Level, "environment wins over .env and YAML")
	require.Equal(t, 4, cfg.Graph.CacheSize, ".env wins over YAML")
	require.Equal(t, "memory", cfg.Blob.Driver)
	require.Equal(t, "gene", cfg.Graph.Mapping)
	require.True(t, cfg.Graph.Bidirectional)
	require.Equal(t, []string{"a", "b", "c"}, cfg.Graph.FeatureColumns)
	require.NotNil(t, cfg.Graph.MissingColumnValue)
	require.Equal(t, 0.0, *cfg.Graph.MissingColumnValue)
}

func TestMissingEnvFileIsIgnored(t *testing.T) {
	_, err := config.LoadFrom(config.Source{EnvFile: filepath.Join(t.TempDir(), "absent.env"), Lookup: env(nil)})
	require.NoError(t, err)
}

func TestNaNFromEnv(t *testing.T) {
	cfg, err := config.LoadFrom(config.Source{Lookup: env(map[string]string{"PROTEONET_MISSING_VALUE": "NaN"})})
	require.NoError(t, err)
	require.True(t, math.IsNaN(cfg.MissingValue))
}

func TestErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		err  error
	}{
		{"bad bool", map[string]string{"PROTEONET_GRAPH_BIDIRECTIONAL": "maybe"}, config.ErrInvalidEnv},
		{"bad float", map[string]string{"PROTEONET_MISSING_VALUE": "x"}, config.ErrInvalidEnv},
		{"bad int", map[string]string{"PROTEONET_GRAPH_CACHE_SIZE": "many"}, config.ErrInvalidEnv},
		{"bad level", map[string]string{"PROTEONET_LOG_LEVEL": "loud"}, config.ErrInvalid},
		{"bad driver", map[string]string{"PROTEONET_BLOB_DRIVER": "ftp"}, config.ErrInvalid},
		{"s3 without bucket", map[string]string{"PROTEONET_BLOB_DRIVER": "s3"}, config.ErrInvalid},
		{"negative cache", map[string]string{"PROTEONET_GRAPH_CACHE_SIZE": "-1"}, config.ErrInvalid},
		{"target as feature", map[string]string{"PROTEONET_GRAPH_FEATURE_COLUMNS": "abundance"}, config.ErrInvalid},
		{"bad endpoint", map[string]string{"PROTEONET_BLOB_ENDPOINT": "not a url"}, config.ErrInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.LoadFrom(config.Source{Lookup: env(tc.env)})
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestUnknownYAMLKey(t *testing.T) {
	file := write(t, "c.yaml", "graph:\n  mapings: x\n")
	_, err := config.LoadFrom(config.Source{File: file, Lookup: env(nil)})
	require.Error(t, err)

	_, err = config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
