package comp_test

import (
	"testing"

	"github.com/damrufest/judgeboard/comp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxTotal(t *testing.T) {
	criteria := []comp.Criterion{
		{Name: "Code", MaxScore: 50},
		{Name: "Design", MaxScore: 50},
	}
	assert.Equal(t, 100.0, comp.MaxTotal(criteria))
	assert.Equal(t, 0.0, comp.MaxTotal(nil))
}

func TestTotalAndProgress(t *testing.T) {
	criteria := []comp.Criterion{
		{Name: "Code", MaxScore: 50},
		{Name: "Design", MaxScore: 50},
	}
	values := map[string]float64{"Code": 40, "Design": 30}

	total := comp.Total(criteria, values)
	assert.Equal(t, 70.0, total)
	assert.Equal(t, 70, comp.ProgressPercent(total, comp.MaxTotal(criteria)))
}

func TestTotalIgnoresUnknownCriteria(t *testing.T) {
	criteria := []comp.Criterion{{Name: "Code", MaxScore: 50}}
	values := map[string]float64{"Code": 10, "Stale": 99}
	assert.Equal(t, 10.0, comp.Total(criteria, values))
}

func TestProgressPercentBounds(t *testing.T) {
	assert.Equal(t, 0, comp.ProgressPercent(50, 0))
	assert.Equal(t, 100, comp.ProgressPercent(150, 100))
	assert.Equal(t, 0, comp.ProgressPercent(-5, 100))
	assert.Equal(t, 33, comp.ProgressPercent(1, 3))
}

func TestParseScore(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		max     float64
		want    float64
		wantErr bool
	}{
		{name: "plain value", raw: "40", max: 50, want: 40},
		{name: "decimal value", raw: "7.5", max: 10, want: 7.5},
		{name: "empty counts as zero", raw: "", max: 50, want: 0},
		{name: "whitespace counts as zero", raw: "  ", max: 50, want: 0},
		{name: "at the cap", raw: "50", max: 50, want: 50},
		{name: "above the cap", raw: "51", max: 50, wantErr: true},
		{name: "negative", raw: "-1", max: 50, wantErr: true},
		{name: "not a number", raw: "abc", max: 50, wantErr: true},
		{name: "nan literal", raw: "NaN", max: 50, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := comp.ParseScore(tc.raw, tc.max)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSeedInputsFromExistingScores(t *testing.T) {
	m := comp.ScoringMatrix{
		Criteria: []comp.Criterion{
			{Name: "Code", MaxScore: 50},
			{Name: "Design", MaxScore: 50},
		},
		ExistingScores: []comp.ScoreEntry{
			{Criterion: "Code", Value: 40},
			{Criterion: "Design", Value: 30},
		},
	}

	inputs := comp.SeedInputs(m)
	assert.Equal(t, 40.0, inputs["Code"])
	assert.Equal(t, 30.0, inputs["Design"])
}

func TestSeedInputsDefaultsToZero(t *testing.T) {
	m := comp.ScoringMatrix{
		Criteria: []comp.Criterion{
			{Name: "Code", MaxScore: 50},
			{Name: "Design", MaxScore: 50},
		},
	}

	inputs := comp.SeedInputs(m)
	require.Len(t, inputs, 2)
	assert.Equal(t, 0.0, inputs["Code"])
	assert.Equal(t, 0.0, inputs["Design"])
}
