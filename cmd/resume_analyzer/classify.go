package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/classifier"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <resume-file>",
	Short: "Predict the job role a resume targets",
	Long: `Predict the most likely job roles for a resume with their confidence in percent.

A local model file (--model or model_path) is used when set; otherwise the Gemini
predictor is used with GEMINI_API_KEY.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

var (
	classifyModel  string
	classifyTop    int
	classifyFormat string
)

func init() {
	classifyCmd.Flags().StringVar(&classifyModel, "model", "", "Path to a role model file (overrides model_path)")
	classifyCmd.Flags().IntVar(&classifyTop, "top", 0, "Number of top roles to report (default from config)")
	classifyCmd.Flags().StringVarP(&classifyFormat, "format", "f", formatJSON, "Output format: json or text")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if err := checkFormat(classifyFormat); err != nil {
		return err
	}

	cfg := appConfig
	if cmd.Flags().Changed("model") {
		cfg.ModelPath = classifyModel
	}
	if cmd.Flags().Changed("top") {
		cfg.TopRoles = classifyTop
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	predictor, closePredictor, err := newPredictor(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closePredictor()
	if predictor == nil {
		return fmt.Errorf("no role predictor configured (use --model, set model_path or GEMINI_API_KEY)")
	}

	doc, err := ingestion.NewFileExtractor().Extract(ctx, args[0])
	if err != nil {
		return err
	}

	prediction, err := classifier.Classify(ctx, predictor, doc.Text, cfg.TopRoles)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	if strings.ToLower(classifyFormat) == formatText {
		observability.NewPrinter(cmd.OutOrStdout()).PrintRole(prediction)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), prediction)
}
