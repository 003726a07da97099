package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Run the full analysis on one resume",
	Long: `Analyze a PDF, DOCX or text resume, or inline text given with --text.

The report holds contact details, per-section skills, timeline, score and writing quality,
the overall length verdict, the predicted role (when a model or API key is configured),
ATS checks (file input only) and, with a job description, the match result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeText     string
	analyzeJob      string
	analyzeJobURL   string
	analyzeJobText  string
	analyzeFormat   string
	analyzeXLSX     string
	analyzeModel    string
	analyzeGrammar  string
	analyzeTopRoles int
	analyzeBrowser  bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "Resume text to analyze instead of a file")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to a job description text file")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch the job description from")
	analyzeCmd.Flags().StringVar(&analyzeJobText, "job-text", "", "Job description text")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", formatJSON, "Output format: json or text")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "Also export the report to this .xlsx file")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Path to a role model file (overrides model_path)")
	analyzeCmd.Flags().StringVar(&analyzeGrammar, "grammar-url", "", "LanguageTool base URL (overrides grammar_url)")
	analyzeCmd.Flags().IntVar(&analyzeTopRoles, "top", 0, "Number of top roles to report")
	analyzeCmd.Flags().BoolVar(&analyzeBrowser, "use-browser", false, "Render job pages with headless Chrome when needed")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := checkFormat(analyzeFormat); err != nil {
		return err
	}

	in := pipeline.Input{Text: analyzeText}
	switch {
	case len(args) == 1 && analyzeText != "":
		return fmt.Errorf("cannot use --text with a resume file")
	case len(args) == 1:
		in.Path = args[0]
	case analyzeText == "":
		return fmt.Errorf("either a resume file or --text must be provided")
	}

	cfg := appConfig
	if cmd.Flags().Changed("model") {
		cfg.ModelPath = analyzeModel
	}
	if cmd.Flags().Changed("grammar-url") {
		cfg.GrammarURL = analyzeGrammar
	}
	if cmd.Flags().Changed("top") {
		cfg.TopRoles = analyzeTopRoles
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = analyzeBrowser
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	jd, err := resolveJobDescription(ctx, jobSource{Path: analyzeJob, URL: analyzeJobURL, Text: analyzeJobText}, newFetcher(cfg, logger))
	if err != nil {
		return err
	}
	in.JobDescription = jd

	analyzer, closeAnalyzer, err := newAnalyzer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeAnalyzer()

	report, err := analyzer.Analyze(ctx, in)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	reports := []*types.Report{report}
	if err := writeReports(cmd.OutOrStdout(), analyzeFormat, reports); err != nil {
		return err
	}
	return exportReports(cmd.ErrOrStderr(), analyzeXLSX, reports)
}
