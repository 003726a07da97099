// Package pipeline runs the full resume analysis: text extraction, identity,
// sections, per-section analytics, role prediction, ATS checks and job matching.
package pipeline

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/ats"
	"github.com/jonathan/resume-analyzer/internal/classifier"
	"github.com/jonathan/resume-analyzer/internal/experience"
	"github.com/jonathan/resume-analyzer/internal/grammar"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/ranking"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/jonathan/resume-analyzer/internal/validation"
	"github.com/jonathan/resume-analyzer/internal/vocab"
)

// Step names reported through ProgressEvent and StepError.
const (
	StepExtract  = "extract"
	StepIdentity = "identity"
	StepSections = "sections"
	StepGrammar  = "grammar"
	StepRole     = "role"
	StepATS      = "ats"
	StepMatch    = "match"
)

// ProgressEvent represents a progress update during an analysis.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Source  string `json:"source,omitempty"`
}

// ProgressCallback is called when analysis progress occurs.
type ProgressCallback func(event ProgressEvent)

// Input is one analysis request. Path selects a resume file; when Data is
// also set it holds the file content and Path only supplies the name. Text
// is used when no file is given.
type Input struct {
	Text           string
	Path           string
	Data           []byte
	JobDescription string
}

// Analyzer holds the collaborators of an analysis. It keeps no per-request
// state and is safe for concurrent use when its collaborators are.
type Analyzer struct {
	extractor  ingestion.Extractor
	predictor  classifier.Predictor
	grammar    grammar.Checker
	headers    vocab.Matcher
	skills     *skills.Classifier
	topN       int
	logger     zerolog.Logger
	onProgress ProgressCallback
	now        func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithExtractor sets the resume file extractor.
func WithExtractor(e ingestion.Extractor) Option {
	return func(a *Analyzer) { a.extractor = e }
}

// WithPredictor enables role prediction.
func WithPredictor(p classifier.Predictor) Option {
	return func(a *Analyzer) { a.predictor = p }
}

// WithGrammar enables per-section grammar checks.
func WithGrammar(c grammar.Checker) Option {
	return func(a *Analyzer) { a.grammar = c }
}

// WithHeaders replaces the section header vocabulary.
func WithHeaders(m vocab.Matcher) Option {
	return func(a *Analyzer) { a.headers = m }
}

// WithSkills replaces the skill classifier.
func WithSkills(c *skills.Classifier) Option {
	return func(a *Analyzer) { a.skills = c }
}

// WithTopN sets how many roles are reported.
func WithTopN(n int) Option {
	return func(a *Analyzer) { a.topN = n }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithProgress registers a progress callback. During AnalyzeBatch it may be
// called from several goroutines at once.
func WithProgress(cb ProgressCallback) Option {
	return func(a *Analyzer) { a.onProgress = cb }
}

// NewAnalyzer returns an Analyzer with file extraction, the default
// vocabularies and no optional collaborators.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		extractor: ingestion.NewFileExtractor(),
		headers:   vocab.SectionHeaders(),
		skills:    skills.NewClassifier(nil, nil),
		topN:      classifier.DefaultTopN,
		logger:    zerolog.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// emit calls the progress callback if configured.
func (a *Analyzer) emit(step, message, source string) {
	if a.onProgress != nil {
		a.onProgress(ProgressEvent{Step: step, Message: message, Source: source})
	}
}

// Sections segments text with the configured header vocabulary.
func (a *Analyzer) Sections(text string) parsing.Sections {
	return parsing.SegmentSections(text, a.headers)
}

// Analyze runs every analysis step on one resume. Collaborator failures are
// returned as *StepError wrapping the original error.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*types.Report, error) {
	start := time.Now()

	doc, err := a.document(ctx, in)
	if err != nil {
		return nil, err
	}
	text := doc.Text
	log := a.logger.With().Str("source", in.Path).Logger()

	report := &types.Report{
		ID:        uuid.NewString(),
		Source:    in.Path,
		Hash:      ingestion.ContentHash(text),
		CreatedAt: a.now().UTC(),
		Identity:  parsing.ExtractIdentity(text),
		Length:    validation.CheckResumeLength(text),
	}
	a.emit(StepIdentity, "Extracted contact details", in.Path)

	sections := a.Sections(text)
	report.Sections = make([]types.SectionReport, 0, len(sections))
	for _, section := range sections {
		sr, err := a.analyzeSection(ctx, section)
		if err != nil {
			return nil, err
		}
		report.Sections = append(report.Sections, sr)
	}
	a.emit(StepSections, "Analyzed "+pluralize(len(sections), "section"), in.Path)

	if a.predictor != nil {
		role, err := classifier.Classify(ctx, a.predictor, text, a.topN)
		if err != nil {
			return nil, &StepError{Step: StepRole, Cause: err}
		}
		report.Role = role
		a.emit(StepRole, "Predicted role "+role.Role, in.Path)
	}

	if in.Path != "" {
		atsReport := ats.Check(in.Path, text, doc.HasTables)
		report.ATS = &atsReport
		a.emit(StepATS, "Checked ATS formatting", in.Path)
	}

	if strings.TrimSpace(in.JobDescription) != "" {
		match := ranking.MatchResumeToJob(text, in.JobDescription)
		report.Match = &match
		a.emit(StepMatch, "Compared resume with job description", in.Path)
	}

	log.Info().
		Str("report_id", report.ID).
		Int("sections", len(report.Sections)).
		Int("words", report.Length.WordCount).
		Dur("duration", time.Since(start)).
		Msg("resume analyzed")

	return report, nil
}

// document resolves the resume text of in.
func (a *Analyzer) document(ctx context.Context, in Input) (*ingestion.Document, error) {
	switch {
	case in.Path != "" && in.Data != nil:
		doc, err := a.extractor.ExtractBytes(ctx, in.Path, in.Data)
		if err != nil {
			return nil, &StepError{Step: StepExtract, Cause: err}
		}
		a.emit(StepExtract, "Extracted text from upload", in.Path)
		return doc, nil
	case in.Path != "":
		doc, err := a.extractor.Extract(ctx, in.Path)
		if err != nil {
			return nil, &StepError{Step: StepExtract, Cause: err}
		}
		a.emit(StepExtract, "Extracted text from file", in.Path)
		return doc, nil
	case strings.TrimSpace(in.Text) != "":
		return &ingestion.Document{Text: ingestion.NormalizeLineEndings(in.Text)}, nil
	default:
		return nil, &InputError{Message: "no resume text or file provided"}
	}
}

func (a *Analyzer) analyzeSection(ctx context.Context, section parsing.Section) (types.SectionReport, error) {
	found := a.skills.Classify(section.Content)

	quality := validation.CheckQuality(section.Content)
	quality.Readability = grammar.Readability(section.Content)
	if a.grammar != nil {
		report, err := a.grammar.Check(ctx, section.Content)
		if err != nil {
			return types.SectionReport{}, &StepError{Step: StepGrammar, Cause: err}
		}
		quality.Grammar = &report
	}

	return types.SectionReport{
		Label:    section.Label,
		Content:  section.Content,
		Skills:   found,
		Timeline: experience.AnalyzeTimeline(section.Content),
		Score:    ranking.ScoreSection(section.Content, found),
		Quality:  quality,
	}, nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
