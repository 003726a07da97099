package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/vocab"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <resume-file>",
	Short: "Split a resume into labeled sections",
	Long: `Split a resume into sections using the section header vocabulary
(section_headers in the config, or the built-in list).`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

var sectionsFormat string

func init() {
	sectionsCmd.Flags().StringVarP(&sectionsFormat, "format", "f", formatJSON, "Output format: json or text")
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	if err := checkFormat(sectionsFormat); err != nil {
		return err
	}

	doc, err := ingestion.NewFileExtractor().Extract(context.Background(), args[0])
	if err != nil {
		return err
	}

	var headers vocab.Matcher
	if len(appConfig.SectionHeaders) > 0 {
		headers = vocab.NewList(appConfig.SectionHeaders...)
	}
	sections := parsing.SegmentSections(doc.Text, headers)
	logger.Debug().Strs("labels", sections.Labels()).Msg("segmented resume")

	if strings.ToLower(sectionsFormat) == formatText {
		observability.NewPrinter(cmd.OutOrStdout()).PrintSections(sections)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), sections)
}
