package comp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxTotal is a participant's highest possible score: the sum of all
// criteria maxima.
func MaxTotal(criteria []Criterion) float64 {
	var sum float64
	for _, c := range criteria {
		sum += c.MaxScore
	}
	return sum
}

// Total sums the currently held input values over the given criteria.
// Criteria without a held value count as zero.
func Total(criteria []Criterion, values map[string]float64) float64 {
	var sum float64
	for _, c := range criteria {
		sum += values[c.Name]
	}
	return sum
}

// ProgressPercent maps a score onto a 0..100 progress bar, rounded.
func ProgressPercent(score, max float64) int {
	if max <= 0 {
		return 0
	}
	pct := int(math.Round(score / max * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// ParseScore turns a raw input string into a score for a criterion capped
// at max. Empty input counts as zero. Non-numeric input and values
// outside [0, max] are rejected so that an invalid value is never
// submitted to the server.
func ParseScore(raw string, max float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if v < 0 || v > max {
		return 0, fmt.Errorf("score must be between 0 and %g", max)
	}
	return v, nil
}

// SeedInputs builds the initial editable score inputs for a scoring form:
// previously submitted values when the judge has a prior submission,
// zeros otherwise.
func SeedInputs(m ScoringMatrix) map[string]float64 {
	initial := make(map[string]float64, len(m.Criteria))
	if len(m.ExistingScores) > 0 {
		for _, s := range m.ExistingScores {
			initial[s.Criterion] = s.Value
		}
		return initial
	}
	for _, c := range m.Criteria {
		initial[c.Name] = 0
	}
	return initial
}
