package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	internalschemas "github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/schemas"
)

const defaultMinTokenLength = 2

// Model is a serialized multinomial naive Bayes role classifier. All
// probabilities are natural logarithms.
type Model struct {
	Name           string       `json:"name,omitempty"`
	Version        string       `json:"version"`
	MinTokenLength int          `json:"min_token_length,omitempty"`
	Classes        []ClassModel `json:"classes"`
}

// ClassModel holds the parameters of one role.
type ClassModel struct {
	Label          string             `json:"label"`
	LogPrior       float64            `json:"log_prior"`
	DefaultLogProb float64            `json:"default_log_prob"`
	TokenLogProbs  map[string]float64 `json:"token_log_probs"`
}

// Labels returns the class labels in model order.
func (m *Model) Labels() []string {
	labels := make([]string, len(m.Classes))
	for i, c := range m.Classes {
		labels[i] = c.Label
	}
	return labels
}

// ParseModel validates data against the role model schema and decodes it.
func ParseModel(data []byte) (*Model, error) {
	schema, err := internalschemas.Embedded(schemas.RoleModel)
	if err != nil {
		return nil, &ModelError{Message: "role model schema unavailable", Cause: err}
	}
	if err := schema.ValidateBytes(data); err != nil {
		return nil, &ModelError{Message: "invalid role model", Cause: err}
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ModelError{Message: "failed to decode role model", Cause: err}
	}

	seen := make(map[string]struct{}, len(m.Classes))
	for _, c := range m.Classes {
		if _, dup := seen[c.Label]; dup {
			return nil, &ModelError{Message: fmt.Sprintf("duplicate class %q", c.Label)}
		}
		seen[c.Label] = struct{}{}
	}
	return &m, nil
}

// LoadModel reads and parses a role model file.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ModelError{Message: fmt.Sprintf("failed to read model %s", path), Cause: err}
	}
	return ParseModel(data)
}

// ModelPredictor runs a Model locally. It holds no mutable state and is safe
// for concurrent use.
type ModelPredictor struct {
	model      *Model
	vocabulary map[string]struct{}
	minLength  int
}

// NewModelPredictor prepares m for inference.
func NewModelPredictor(m *Model) *ModelPredictor {
	vocabulary := make(map[string]struct{})
	for _, c := range m.Classes {
		for token := range c.TokenLogProbs {
			vocabulary[token] = struct{}{}
		}
	}
	minLength := m.MinTokenLength
	if minLength <= 0 {
		minLength = defaultMinTokenLength
	}
	return &ModelPredictor{model: m, vocabulary: vocabulary, minLength: minLength}
}

// LoadModelPredictor loads the model at path and wraps it in a predictor.
func LoadModelPredictor(path string) (*ModelPredictor, error) {
	m, err := LoadModel(path)
	if err != nil {
		return nil, err
	}
	return NewModelPredictor(m), nil
}

// Classes returns the class labels.
func (p *ModelPredictor) Classes() []string {
	return p.model.Labels()
}

// Predict returns the most probable role.
func (p *ModelPredictor) Predict(ctx context.Context, text string) (string, error) {
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

// PredictProba scores the normalized text against every class and returns
// softmax probabilities in model order. Tokens outside the model vocabulary
// are ignored.
func (p *ModelPredictor) PredictProba(ctx context.Context, text string) ([]Probability, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, token := range parsing.Tokens(parsing.Normalize(text)) {
		if utf8.RuneCountInString(token) < p.minLength {
			continue
		}
		if _, known := p.vocabulary[token]; known {
			counts[token]++
		}
	}

	scores := make([]float64, len(p.model.Classes))
	for i, c := range p.model.Classes {
		score := c.LogPrior
		for token, n := range counts {
			logProb, ok := c.TokenLogProbs[token]
			if !ok {
				logProb = c.DefaultLogProb
			}
			score += float64(n) * logProb
		}
		scores[i] = score
	}

	probs := softmax(scores)
	out := make([]Probability, len(probs))
	for i, c := range p.model.Classes {
		out[i] = Probability{Role: c.Label, P: probs[i]}
	}
	return out, nil
}

func softmax(scores []float64) []float64 {
	maxScore := math.Inf(-1)
	for _, s := range scores {
		maxScore = math.Max(maxScore, s)
	}
	out := make([]float64, len(scores))
	sum := 0.0
	for i, s := range scores {
		out[i] = math.Exp(s - maxScore)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
