package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
)

var batchCmd = &cobra.Command{
	Use:   "batch [resume-file...]",
	Short: "Analyze many resumes concurrently",
	Long: `Analyze several resumes in parallel, given as arguments and/or every supported
file (.pdf, .docx, .txt) in --dir. Reports keep the input order. The first failure
stops the batch.`,
	RunE: runBatch,
}

var (
	batchDir     string
	batchJob     string
	batchJobURL  string
	batchJobText string
	batchWorkers int
	batchFormat  string
	batchXLSX    string
	batchModel   string
	batchGrammar string
	batchBrowser bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchDir, "dir", "d", "", "Directory of resumes to analyze")
	batchCmd.Flags().StringVarP(&batchJob, "job", "j", "", "Path to a job description text file")
	batchCmd.Flags().StringVar(&batchJobURL, "job-url", "", "URL to fetch the job description from")
	batchCmd.Flags().StringVar(&batchJobText, "job-text", "", "Job description text")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Number of resumes analyzed at once (default from config)")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", formatJSON, "Output format: json or text")
	batchCmd.Flags().StringVar(&batchXLSX, "xlsx", "", "Also export the reports to this .xlsx file")
	batchCmd.Flags().StringVar(&batchModel, "model", "", "Path to a role model file (overrides model_path)")
	batchCmd.Flags().StringVar(&batchGrammar, "grammar-url", "", "LanguageTool base URL (overrides grammar_url)")
	batchCmd.Flags().BoolVar(&batchBrowser, "use-browser", false, "Render job pages with headless Chrome when needed")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if err := checkFormat(batchFormat); err != nil {
		return err
	}

	paths := append([]string{}, args...)
	if batchDir != "" {
		found, err := collectResumes(batchDir)
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no resumes to analyze (pass files or --dir)")
	}

	cfg := appConfig
	if cmd.Flags().Changed("workers") {
		cfg.BatchWorkers = batchWorkers
	}
	if cmd.Flags().Changed("model") {
		cfg.ModelPath = batchModel
	}
	if cmd.Flags().Changed("grammar-url") {
		cfg.GrammarURL = batchGrammar
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = batchBrowser
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	jd, err := resolveJobDescription(ctx, jobSource{Path: batchJob, URL: batchJobURL, Text: batchJobText}, newFetcher(cfg, logger))
	if err != nil {
		return err
	}

	analyzer, closeAnalyzer, err := newAnalyzer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeAnalyzer()

	logger.Info().Int("resumes", len(paths)).Int("workers", cfg.BatchWorkers).Msg("starting batch")
	reports, err := analyzer.AnalyzeBatch(ctx, paths, jd, cfg.BatchWorkers)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	if err := writeReports(cmd.OutOrStdout(), batchFormat, reports); err != nil {
		return err
	}
	return exportReports(cmd.ErrOrStderr(), batchXLSX, reports)
}

// collectResumes returns the supported files directly inside dir, sorted by name.
func collectResumes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !ingestion.IsSupported(filepath.Ext(e.Name())) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
