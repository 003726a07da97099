// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// IdentityInfo holds contact details pulled from a resume. A nil field means not found.
type IdentityInfo struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	LinkedIn  *string `json:"linkedin"`
	GitHub    *string `json:"github"`
	Portfolio *string `json:"portfolio"`
}

// SkillSet holds the hard and soft skills found in one section.
type SkillSet struct {
	Hard []string `json:"hard"`
	Soft []string `json:"soft"`
}

// Count returns the number of distinct skills.
func (s SkillSet) Count() int {
	return len(s.Hard) + len(s.Soft)
}

// Gap is an interval between two consecutive years longer than one year.
type Gap struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Timeline is the year analysis of a single section.
type Timeline struct {
	Years         []int `json:"years"`
	Gaps          []Gap `json:"gaps"`
	Chronological bool  `json:"chronological"`
}

// MatchResult is the comparison of a resume against a job description.
type MatchResult struct {
	Score           float64  `json:"score"`
	MissingKeywords []string `json:"missing_keywords"`
	Suggestions     []string `json:"suggestions"`
}

// RoleScore is a role label with its confidence in percent.
type RoleScore struct {
	Role       string  `json:"role"`
	Confidence float64 `json:"confidence"`
}

// RolePrediction is the output of the role classifier for one resume.
type RolePrediction struct {
	Role        string      `json:"role"`
	Confidence  float64     `json:"confidence"`
	TopRoles    []RoleScore `json:"top_roles"`
	Explanation string      `json:"explanation"`
}

// Readability holds the reading-ease score and a grade label.
type Readability struct {
	FleschScore float64 `json:"flesch_score"`
	GradeLevel  string  `json:"grade_level"`
}

// GrammarIssue is one problem reported by a grammar checker.
type GrammarIssue struct {
	Message      string   `json:"message"`
	Replacements []string `json:"replacements,omitempty"`
	Offset       int      `json:"offset"`
	ErrorText    string   `json:"error_text"`
}

// GrammarReport is the result of a grammar check. Suggestions holds one
// message per issue, in document order.
type GrammarReport struct {
	ErrorCount  int            `json:"error_count"`
	Suggestions []string       `json:"suggestions"`
	Issues      []GrammarIssue `json:"issues,omitempty"`
}

// QualityReport collects the writing-quality heuristics of a section.
type QualityReport struct {
	PassiveSentences int            `json:"passive_sentences"`
	WeakVerbs        []string       `json:"weak_verbs"`
	Quantified       bool           `json:"quantified"`
	FormattingIssues []string       `json:"formatting_issues"`
	Readability      Readability    `json:"readability"`
	Grammar          *GrammarReport `json:"grammar,omitempty"`
}

// SectionReport is the full analysis of one resume section.
type SectionReport struct {
	Label    string        `json:"label"`
	Content  string        `json:"content"`
	Skills   SkillSet      `json:"skills"`
	Timeline Timeline      `json:"timeline"`
	Score    float64       `json:"score"`
	Quality  QualityReport `json:"quality"`
}

// LengthVerdict values.
const (
	LengthTooShort = "too_short"
	LengthTooLong  = "too_long"
	LengthOK       = "ok"
)

// LengthCheck is the resume-wide length evaluation.
type LengthCheck struct {
	WordCount int    `json:"word_count"`
	Verdict   string `json:"verdict"`
	Message   string `json:"message"`
}

// ATSReport holds the applicant-tracking-system formatting heuristics.
type ATSReport struct {
	Extension      string   `json:"extension"`
	FileOK         bool     `json:"file_ok"`
	MultiColumn    bool     `json:"multi_column"`
	TablesPresent  bool     `json:"tables_present"`
	HeadersFound   []string `json:"headers_found"`
	HeadersMissing []string `json:"headers_missing"`
}

// Report is everything the analyzer derives from one resume.
type Report struct {
	ID        string          `json:"id"`
	Source    string          `json:"source,omitempty"`
	Hash      string          `json:"hash"`
	CreatedAt time.Time       `json:"created_at"`
	Identity  IdentityInfo    `json:"identity"`
	Sections  []SectionReport `json:"sections"`
	Length    LengthCheck     `json:"length"`
	Role      *RolePrediction `json:"role,omitempty"`
	ATS       *ATSReport      `json:"ats,omitempty"`
	Match     *MatchResult    `json:"match,omitempty"`
}
