package classifier

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultTopN is the number of roles reported by Classify.
const DefaultTopN = 3

// Probability is the model probability of one role, in [0, 1].
type Probability struct {
	Role string
	P    float64
}

// Predictor maps resume text to job roles over a fixed set of classes.
type Predictor interface {
	// Predict returns the most likely role.
	Predict(ctx context.Context, text string) (string, error)
	// PredictProba returns one probability per class, summing to 1, in class order.
	PredictProba(ctx context.Context, text string) ([]Probability, error)
}

// TopRoles returns the n most probable roles, highest first, with confidence
// in percent rounded to two decimals. Ties keep class order.
func TopRoles(ctx context.Context, p Predictor, text string, n int) ([]types.RoleScore, error) {
	probs, err := p.PredictProba(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(probs) == 0 {
		return nil, &ModelError{Message: "model returned no classes"}
	}

	sorted := make([]Probability, len(probs))
	copy(sorted, probs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].P > sorted[j].P })

	if n <= 0 || n > len(sorted) {
		n = len(sorted)
	}
	out := make([]types.RoleScore, n)
	for i := 0; i < n; i++ {
		out[i] = types.RoleScore{Role: sorted[i].Role, Confidence: percent(sorted[i].P)}
	}
	return out, nil
}

// PredictWithConfidence returns the top role and its confidence in percent.
func PredictWithConfidence(ctx context.Context, p Predictor, text string) (types.RoleScore, error) {
	top, err := TopRoles(ctx, p, text, 1)
	if err != nil {
		return types.RoleScore{}, err
	}
	return top[0], nil
}

// Classify runs the predictor once and assembles the top roles and an
// explanation of the winning role.
func Classify(ctx context.Context, p Predictor, text string, n int) (*types.RolePrediction, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	top, err := TopRoles(ctx, p, text, n)
	if err != nil {
		return nil, err
	}
	return &types.RolePrediction{
		Role:        top[0].Role,
		Confidence:  top[0].Confidence,
		TopRoles:    top,
		Explanation: Explain(top),
	}, nil
}

// roleFamilies are checked in order against the lowercased role label.
var roleFamilies = []struct {
	keywords []string
	reason   string
}{
	{[]string{"data"}, "Frequent use of terms like data, analysis and statistics suggests a data-centric role."},
	{[]string{"software", "developer"}, "Presence of coding, development and software terminology fits engineering roles."},
	{[]string{"project", "manager"}, "Project management vocabulary such as stakeholders, timelines and deliverables indicates a managerial role."},
	{[]string{"designer"}, "Emphasis on visual tools, design principles and portfolio links indicates a design role."},
	{[]string{"analyst"}, "Analytical terms and decision-making frameworks align with analyst positions."},
}

// Explain describes the first role in top: a reason chosen from its label
// and the model confidence.
func Explain(top []types.RoleScore) string {
	if len(top) == 0 {
		return ""
	}
	best := top[0]

	var sb strings.Builder
	fmt.Fprintf(&sb, "The resume is most likely for the role of %s based on the following:\n\n", best.Role)

	label := strings.ToLower(best.Role)
	for _, family := range roleFamilies {
		if containsAny(label, family.keywords) {
			fmt.Fprintf(&sb, "- %s\n", family.reason)
			break
		}
	}

	fmt.Fprintf(&sb, "\nModel confidence in this prediction: %.2f%%", best.Confidence)
	return sb.String()
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func percent(p float64) float64 {
	return math.Round(p*100*100) / 100
}
