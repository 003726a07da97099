package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"grammar_url": "http://localhost:8081",
		"hard_skills": ["go", "rust"],
		"top_roles": 5,
		"use_browser": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "http://localhost:8081", cfg.GrammarURL)
	assert.Equal(t, []string{"go", "rust"}, cfg.HardSkills)
	assert.Equal(t, 5, cfg.TopRoles)
	assert.True(t, cfg.UseBrowser)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	for _, ext := range []string{"yaml", "yml"} {
		t.Run(ext, func(t *testing.T) {
			path := writeConfig(t, "config."+ext, `
model_path: models/roles.json
section_headers:
  - experience
  - volunteering
batch_workers: 8
log_format: pretty
`)

			cfg, err := LoadConfig(path)
			require.NoError(t, err)

			assert.Equal(t, "models/roles.json", cfg.ModelPath)
			assert.Equal(t, []string{"experience", "volunteering"}, cfg.SectionHeaders)
			assert.Equal(t, 8, cfg.BatchWorkers)
			assert.Equal(t, "pretty", cfg.LogFormat)
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		msg  string
	}{
		{"empty path", "", "config path is empty"},
		{"missing file", "/nonexistent/path/config.json", "failed to read config file"},
		{"invalid json", writeConfig(t, "config.json", `{ invalid json }`), "failed to parse config JSON"},
		{"invalid yaml", writeConfig(t, "config.yaml", "top_roles: [1, 2"), "failed to parse config YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty", Config{}, false},
		{"defaults", Default(), false},
		{"bad url", Config{GrammarURL: "not a url"}, true},
		{"top roles too large", Config{TopRoles: 50}, true},
		{"negative workers", Config{BatchWorkers: -1}, true},
		{"port out of range", Config{Port: 70000}, true},
		{"unknown log level", Config{LogLevel: "loud"}, true},
		{"unknown log format", Config{LogFormat: "xml"}, true},
		{"blank skill", Config{HardSkills: []string{"go", ""}}, true},
		{"missing model file", Config{ModelPath: "/nonexistent/model.json"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "config error")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "secret")
	t.Setenv(EnvGrammarURL, "http://lt:8010")
	t.Setenv(EnvPort, "9090")

	cfg := FromEnv()
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "http://lt:8010", cfg.GrammarURL)
	assert.Equal(t, 9090, cfg.Port)
}

func TestFromEnv_InvalidPortIgnored(t *testing.T) {
	t.Setenv(EnvPort, "eighty")
	assert.Zero(t, FromEnv().Port)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		GrammarURL: "http://custom:8010",
		HardSkills: []string{"go"},
		TopRoles:   5,
	}
	defaults := Default()
	defaults.GrammarURL = "http://default:8010"
	defaults.SoftSkills = []string{"teamwork"}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "http://custom:8010", merged.GrammarURL)
	assert.Equal(t, []string{"go"}, merged.HardSkills)
	assert.Equal(t, []string{"teamwork"}, merged.SoftSkills)
	assert.Equal(t, 5, merged.TopRoles)
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, "gemini-2.5-flash-lite", merged.LLMModel)

	// Original is not modified
	assert.Equal(t, 0, cfg.Port)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, *cfg, merged)
}
