// Package main provides the entry point for the resume analyzer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "resume_analyzer",
	Short: "Resume analysis CLI and HTTP API server",
	Long: `Resume analyzer extracts contact details and sections from PDF, DOCX and text resumes,
scores each section, checks grammar, ATS compatibility and writing quality, predicts the target
role and compares the resume against a job description.

Configuration is read from --config (JSON or YAML), then the environment (GEMINI_API_KEY,
LANGUAGETOOL_URL, ROLE_MODEL_PATH, PORT), then built-in defaults. Flags override all of them.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupRuntime,
}

var (
	rootConfigPath string
	rootLogLevel   string
	rootLogFormat  string

	// appConfig and logger are set by setupRuntime before any subcommand runs.
	appConfig config.Config
	logger    = zerolog.Nop()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", "", "Log format: json or pretty")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupRuntime resolves the configuration and installs the logger.
func setupRuntime(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(rootConfigPath, config.FromEnv())
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = rootLogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = rootLogFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	logger = logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if rootConfigPath != "" {
		logger.Debug().Str("path", rootConfigPath).Msg("loaded config")
	}
	return nil
}

// resolveConfig layers the config file over env over built-in defaults.
func resolveConfig(path string, env config.Config) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(env)
	return cfg.MergeWithDefaults(config.Default()), nil
}
