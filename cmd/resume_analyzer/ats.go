package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/ats"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
)

var atsCmd = &cobra.Command{
	Use:   "ats <resume-file>",
	Short: "Check a resume file for applicant tracking system compatibility",
	Long: `Check the file format, multi-column layout, tables and standard section headers
that applicant tracking systems rely on.`,
	Args: cobra.ExactArgs(1),
	RunE: runATS,
}

var atsFormat string

func init() {
	atsCmd.Flags().StringVarP(&atsFormat, "format", "f", formatJSON, "Output format: json or text")
	rootCmd.AddCommand(atsCmd)
}

func runATS(cmd *cobra.Command, args []string) error {
	if err := checkFormat(atsFormat); err != nil {
		return err
	}

	doc, err := ingestion.NewFileExtractor().Extract(context.Background(), args[0])
	if err != nil {
		return err
	}

	report := ats.Check(args[0], doc.Text, doc.HasTables)

	if strings.ToLower(atsFormat) == formatText {
		observability.NewPrinter(cmd.OutOrStdout()).PrintATS(&report)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), report)
}
