package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/classifier"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/export"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/grammar"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/jonathan/resume-analyzer/internal/vocab"
)

// Output formats accepted by --format.
const (
	formatJSON = "json"
	formatText = "text"
)

// newPredictor picks the role predictor for cfg: a local model file when one
// is set, otherwise Gemini when an API key is available. It returns a nil
// predictor when neither is configured. The returned func releases the
// predictor's resources.
func newPredictor(ctx context.Context, cfg config.Config, log zerolog.Logger) (classifier.Predictor, func(), error) {
	noop := func() {}

	if cfg.ModelPath != "" {
		p, err := classifier.LoadModelPredictor(cfg.ModelPath)
		if err != nil {
			return nil, noop, err
		}
		log.Debug().Str("path", cfg.ModelPath).Strs("classes", p.Classes()).Msg("loaded role model")
		return p, noop, nil
	}

	if cfg.APIKey != "" {
		llmConfig := llm.DefaultConfig()
		if cfg.LLMModel != "" {
			llmConfig = llmConfig.WithModel(llm.TierLite, cfg.LLMModel)
		}
		client, err := llm.NewGeminiClient(ctx, llmConfig, cfg.APIKey)
		if err != nil {
			return nil, noop, err
		}
		p, err := classifier.NewLLMPredictor(client, cfg.Roles)
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		log.Debug().Str("model", client.GetModel(llm.TierLite)).Msg("using Gemini role predictor")
		return p, func() { _ = client.Close() }, nil
	}

	log.Debug().Msg("no role model or API key configured; role prediction disabled")
	return nil, noop, nil
}

// newGrammarChecker returns a LanguageTool checker, or nil when no service URL is set.
func newGrammarChecker(cfg config.Config, log zerolog.Logger) grammar.Checker {
	if cfg.GrammarURL == "" {
		return nil
	}
	return grammar.NewLanguageToolChecker(cfg.GrammarURL, cfg.GrammarLanguage, log)
}

// newFetcher returns a job posting fetcher, with headless rendering when enabled.
func newFetcher(cfg config.Config, log zerolog.Logger) *fetch.Client {
	opts := []fetch.Option{fetch.WithLogger(log)}
	if cfg.UseBrowser {
		opts = append(opts, fetch.WithRenderer(fetch.NewChromeRenderer(log)))
	}
	return fetch.NewClient(opts...)
}

// analyzerOptions translates cfg into analyzer options. Empty vocabularies
// keep the built-in lists.
func analyzerOptions(cfg config.Config, log zerolog.Logger) []pipeline.Option {
	var hard, soft vocab.Matcher
	if len(cfg.HardSkills) > 0 {
		hard = vocab.NewList(cfg.HardSkills...)
	}
	if len(cfg.SoftSkills) > 0 {
		soft = vocab.NewList(cfg.SoftSkills...)
	}

	opts := []pipeline.Option{
		pipeline.WithSkills(skills.NewClassifier(hard, soft)),
		pipeline.WithLogger(log),
		pipeline.WithProgress(func(e pipeline.ProgressEvent) {
			log.Debug().Str("step", e.Step).Str("source", e.Source).Msg(e.Message)
		}),
	}
	if len(cfg.SectionHeaders) > 0 {
		opts = append(opts, pipeline.WithHeaders(vocab.NewList(cfg.SectionHeaders...)))
	}
	if cfg.TopRoles > 0 {
		opts = append(opts, pipeline.WithTopN(cfg.TopRoles))
	}
	if checker := newGrammarChecker(cfg, log); checker != nil {
		opts = append(opts, pipeline.WithGrammar(checker))
	}
	return opts
}

// newAnalyzer builds an analyzer with every collaborator cfg enables.
func newAnalyzer(ctx context.Context, cfg config.Config, log zerolog.Logger) (*pipeline.Analyzer, func(), error) {
	predictor, closePredictor, err := newPredictor(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	opts := analyzerOptions(cfg, log)
	if predictor != nil {
		opts = append(opts, pipeline.WithPredictor(predictor))
	}
	return pipeline.NewAnalyzer(opts...), closePredictor, nil
}

// jobSource names where a job description comes from. At most one field may be set.
type jobSource struct {
	Path string
	URL  string
	Text string
}

func (s jobSource) count() int {
	n := 0
	for _, v := range []string{s.Path, s.URL, s.Text} {
		if v != "" {
			n++
		}
	}
	return n
}

// resolveJobDescription loads the job description named by src. An empty
// source yields an empty description.
func resolveJobDescription(ctx context.Context, src jobSource, fetcher ingestion.PageFetcher) (string, error) {
	if src.count() > 1 {
		return "", fmt.Errorf("only one of --job, --job-url or --job-text may be provided")
	}

	switch {
	case src.Path != "":
		text, _, err := ingestion.JobDescriptionFromFile(src.Path)
		if err != nil {
			return "", fmt.Errorf("failed to load job description: %w", err)
		}
		return text, nil
	case src.URL != "":
		text, _, err := ingestion.JobDescriptionFromURL(ctx, fetcher, src.URL)
		if err != nil {
			return "", err
		}
		return text, nil
	default:
		return ingestion.CleanText(src.Text), nil
	}
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// checkFormat rejects output formats other than json and text.
func checkFormat(format string) error {
	switch strings.ToLower(format) {
	case formatJSON, formatText:
		return nil
	}
	return fmt.Errorf("unknown output format %q (use json or text)", format)
}

// writeReports prints reports in format. A single JSON report is written as
// an object, several as an array.
func writeReports(w io.Writer, format string, reports []*types.Report) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	if strings.ToLower(format) == formatText {
		printer := observability.NewPrinter(w)
		for _, r := range reports {
			printer.PrintReport(r)
		}
		return nil
	}

	if len(reports) == 1 {
		return writeJSON(w, reports[0])
	}
	return writeJSON(w, reports)
}

// exportReports writes reports to an xlsx workbook when path is set.
func exportReports(w io.Writer, path string, reports []*types.Report) error {
	if path == "" {
		return nil
	}
	if err := export.ExportToExcel(reports, path); err != nil {
		return fmt.Errorf("failed to export workbook: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d report(s) to %s\n", len(reports), path)
	return nil
}
