package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/ranking"
)

var matchCmd = &cobra.Command{
	Use:   "match <resume-file>",
	Short: "Compare a resume with a job description",
	Long: `Score a resume against a job description by cosine similarity of term frequencies
and list the job keywords the resume is missing.

The job description comes from exactly one of --job, --job-url or --job-text.`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

var (
	matchJob     string
	matchJobURL  string
	matchJobText string
	matchFormat  string
	matchBrowser bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchJob, "job", "j", "", "Path to a job description text file")
	matchCmd.Flags().StringVar(&matchJobURL, "job-url", "", "URL to fetch the job description from")
	matchCmd.Flags().StringVar(&matchJobText, "job-text", "", "Job description text")
	matchCmd.Flags().StringVarP(&matchFormat, "format", "f", formatJSON, "Output format: json or text")
	matchCmd.Flags().BoolVar(&matchBrowser, "use-browser", false, "Render job pages with headless Chrome when needed")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	if err := checkFormat(matchFormat); err != nil {
		return err
	}

	src := jobSource{Path: matchJob, URL: matchJobURL, Text: matchJobText}
	if src.count() == 0 {
		return fmt.Errorf("one of --job, --job-url or --job-text must be provided")
	}

	cfg := appConfig
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = matchBrowser
	}

	ctx := context.Background()

	doc, err := ingestion.NewFileExtractor().Extract(ctx, args[0])
	if err != nil {
		return err
	}

	jd, err := resolveJobDescription(ctx, src, newFetcher(cfg, logger))
	if err != nil {
		return err
	}

	result := ranking.MatchResumeToJob(doc.Text, jd)
	logger.Debug().Float64("score", result.Score).Int("missing", len(result.MissingKeywords)).Msg("resume matched")

	if strings.ToLower(matchFormat) == formatText {
		observability.NewPrinter(cmd.OutOrStdout()).PrintMatch(&result)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), result)
}
