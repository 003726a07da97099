package classifier

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/prompts"
)

// DefaultRoles are the classes offered to the LLM when none are configured.
var DefaultRoles = []string{
	"Data Scientist",
	"Software Developer",
	"Web Developer",
	"DevOps Engineer",
	"Project Manager",
	"Business Analyst",
	"UI/UX Designer",
	"HR Specialist",
}

// maxPromptChars bounds the resume text sent to the model.
const maxPromptChars = 12000

// LLMPredictor asks a hosted model for a distribution over a fixed role list.
type LLMPredictor struct {
	client llm.Client
	roles  []string
	tier   llm.ModelTier
}

// NewLLMPredictor returns a predictor over roles. Empty roles use DefaultRoles.
func NewLLMPredictor(client llm.Client, roles []string) (*LLMPredictor, error) {
	if client == nil {
		return nil, &ModelError{Message: "LLM client is required"}
	}
	cleaned := make([]string, 0, len(roles))
	for _, r := range roles {
		if r = strings.TrimSpace(r); r != "" {
			cleaned = append(cleaned, r)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, DefaultRoles...)
	}
	return &LLMPredictor{client: client, roles: cleaned, tier: llm.TierLite}, nil
}

// Classes returns the candidate roles.
func (p *LLMPredictor) Classes() []string {
	out := make([]string, len(p.roles))
	copy(out, p.roles)
	return out
}

// Predict returns the most probable role.
func (p *LLMPredictor) Predict(ctx context.Context, text string) (string, error) {
	probs, err := p.PredictProba(ctx, text)
	if err != nil {
		return "", err
	}
	best := 0
	for i := range probs {
		if probs[i].P > probs[best].P {
			best = i
		}
	}
	return probs[best].Role, nil
}

type llmDistribution struct {
	Roles []struct {
		Role        string  `json:"role"`
		Probability float64 `json:"probability"`
	} `json:"roles"`
}

// PredictProba prompts the model and renormalizes its answer over the
// candidate roles. Unknown labels are dropped and missing roles get zero.
func (p *LLMPredictor) PredictProba(ctx context.Context, text string) ([]Probability, error) {
	prompt, err := p.buildPrompt(text)
	if err != nil {
		return nil, &ModelError{Message: "failed to build prompt", Cause: err}
	}

	resp, err := p.client.GenerateJSON(ctx, prompt, p.tier)
	if err != nil {
		return nil, &ModelError{Message: "LLM call failed", Cause: err}
	}

	var dist llmDistribution
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(resp)), &dist); err != nil {
		return nil, &ModelError{Message: "failed to parse LLM response", Cause: err}
	}

	index := make(map[string]int, len(p.roles))
	for i, r := range p.roles {
		index[strings.ToLower(r)] = i
	}
	mass := make([]float64, len(p.roles))
	total := 0.0
	for _, entry := range dist.Roles {
		i, ok := index[strings.ToLower(strings.TrimSpace(entry.Role))]
		if !ok || entry.Probability <= 0 {
			continue
		}
		mass[i] += entry.Probability
		total += entry.Probability
	}
	if total == 0 {
		return nil, &ModelError{Message: "LLM response assigned no probability to any candidate role"}
	}

	out := make([]Probability, len(p.roles))
	for i, r := range p.roles {
		out[i] = Probability{Role: r, P: mass[i] / total}
	}
	return out, nil
}

func (p *LLMPredictor) buildPrompt(text string) (string, error) {
	resume := parsing.Normalize(text)
	if len(resume) > maxPromptChars {
		resume = strings.ToValidUTF8(resume[:maxPromptChars], "")
	}

	return prompts.Render(prompts.RoleDistribution, struct {
		Roles  []string
		Resume string
	}{Roles: p.roles, Resume: resume})
}
