// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvAPIKey          = "GEMINI_API_KEY"
	EnvGrammarURL      = "LANGUAGETOOL_URL"
	EnvGrammarLanguage = "LANGUAGETOOL_LANGUAGE"
	EnvModelPath       = "ROLE_MODEL_PATH"
	EnvPort            = "PORT"
)

// Config represents the analyzer configuration that can be loaded from a JSON
// or YAML file. All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Role classification
	ModelPath string   `json:"model_path,omitempty" yaml:"model_path"` // Path to a serialized role model
	LLMModel  string   `json:"llm_model,omitempty" yaml:"llm_model"`   // Gemini model used when no local model is set
	APIKey    string   `json:"api_key,omitempty" yaml:"api_key"`       // Gemini API key
	Roles     []string `json:"roles,omitempty" yaml:"roles" validate:"omitempty,dive,required"`
	TopRoles  int      `json:"top_roles,omitempty" yaml:"top_roles" validate:"omitempty,min=1,max=20"`

	// Grammar service
	GrammarURL      string `json:"grammar_url,omitempty" yaml:"grammar_url" validate:"omitempty,url"`
	GrammarLanguage string `json:"grammar_language,omitempty" yaml:"grammar_language"`

	// Vocabularies; an empty list keeps the built-in one
	HardSkills     []string `json:"hard_skills,omitempty" yaml:"hard_skills" validate:"omitempty,dive,required"`
	SoftSkills     []string `json:"soft_skills,omitempty" yaml:"soft_skills" validate:"omitempty,dive,required"`
	SectionHeaders []string `json:"section_headers,omitempty" yaml:"section_headers" validate:"omitempty,dive,required"`

	// Job description fetching
	UseBrowser bool `json:"use_browser,omitempty" yaml:"use_browser"` // Render SPA job boards with a headless browser

	// Runtime
	Port         int    `json:"port,omitempty" yaml:"port" validate:"omitempty,min=1,max=65535"`
	BatchWorkers int    `json:"batch_workers,omitempty" yaml:"batch_workers" validate:"omitempty,min=1,max=64"`
	LogLevel     string `json:"log_level,omitempty" yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat    string `json:"log_format,omitempty" yaml:"log_format" validate:"omitempty,oneof=json pretty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLMModel:        "gemini-2.5-flash-lite",
		TopRoles:        3,
		GrammarLanguage: "en-US",
		Port:            8080,
		BatchWorkers:    4,
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// LoadConfig loads configuration from a JSON file, or YAML when the
// extension is .yaml or .yml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv returns a Config holding only the values set in the environment.
func FromEnv() Config {
	cfg := Config{
		APIKey:          os.Getenv(EnvAPIKey),
		GrammarURL:      os.Getenv(EnvGrammarURL),
		GrammarLanguage: os.Getenv(EnvGrammarLanguage),
		ModelPath:       os.Getenv(EnvModelPath),
	}
	if port, err := strconv.Atoi(os.Getenv(EnvPort)); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks field ranges and formats.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.ModelPath != "" {
		if _, err := os.Stat(c.ModelPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: model file not found: %s", c.ModelPath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.ModelPath == "" {
		result.ModelPath = defaults.ModelPath
	}
	if result.LLMModel == "" {
		result.LLMModel = defaults.LLMModel
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.GrammarURL == "" {
		result.GrammarURL = defaults.GrammarURL
	}
	if result.GrammarLanguage == "" {
		result.GrammarLanguage = defaults.GrammarLanguage
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Slice fields: use default if empty
	if len(result.Roles) == 0 {
		result.Roles = defaults.Roles
	}
	if len(result.HardSkills) == 0 {
		result.HardSkills = defaults.HardSkills
	}
	if len(result.SoftSkills) == 0 {
		result.SoftSkills = defaults.SoftSkills
	}
	if len(result.SectionHeaders) == 0 {
		result.SectionHeaders = defaults.SectionHeaders
	}

	// Int fields: use default if zero
	if result.TopRoles == 0 {
		result.TopRoles = defaults.TopRoles
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.BatchWorkers == 0 {
		result.BatchWorkers = defaults.BatchWorkers
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
