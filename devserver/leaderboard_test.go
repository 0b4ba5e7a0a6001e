package devserver

import (
	"testing"
	"time"

	"github.com/damrufest/judgeboard/comp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture builds a competition with two criteria, three participants and
// two judges, advancing the store clock one second per mutation so that
// "latest" ordering is deterministic.
func newLeaderboardFixture(t *testing.T) (*Store, string, []comp.Participant, comp.User, comp.User) {
	t.Helper()
	store := NewStore()
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	producer := store.AddAccount("Paula", "paula@example.com", comp.RoleProducer, nil)
	judge1 := store.AddAccount("Jana", "jana@example.com", comp.RoleJudge, nil)
	judge2 := store.AddAccount("Omar", "omar@example.com", comp.RoleJudge, nil)

	criteria := []comp.Criterion{
		{Name: "Code", MaxScore: 50},
		{Name: "Design", MaxScore: 50},
	}
	c := store.createCompetition("Hack Night", "annual", comp.TypeTeam, criteria, producer)

	require.True(t, store.addParticipants(c.ID, []comp.Participant{
		{TeamName: "Alpha", Members: []string{"A"}},
		{TeamName: "Beta", Members: []string{"B"}},
		{TeamName: "Gamma", Members: []string{"G"}},
	}, producer))
	participants, ok := store.listParticipants(c.ID)
	require.True(t, ok)

	return store, c.ID, participants, judge1, judge2
}

func scoresOf(code, design float64) []comp.ScoreEntry {
	return []comp.ScoreEntry{
		{Criterion: "Code", Value: code},
		{Criterion: "Design", Value: design},
	}
}

func TestLeaderboardAggregates(t *testing.T) {
	store, compID, ps, j1, j2 := newLeaderboardFixture(t)

	require.NoError(t, store.submitScores(compID, ps[0].ID, j1.ID, scoresOf(40, 30)))
	require.NoError(t, store.submitScores(compID, ps[0].ID, j2.ID, scoresOf(50, 40)))
	require.NoError(t, store.submitScores(compID, ps[1].ID, j1.ID, scoresOf(20, 20)))

	lb, err := store.buildLeaderboard(compID, 10, comp.SortAvgTotal)
	require.NoError(t, err)
	require.Len(t, lb.Entries, 2, "unscored participants never appear")

	first := lb.Entries[0]
	assert.Equal(t, "Alpha", first.Participant.TeamName)
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, 80.0, first.Scores.Average) // (70 + 90) / 2
	assert.Equal(t, 90.0, first.Scores.Maximum)
	assert.Equal(t, 160.0, first.Scores.TotalSum)
	assert.Equal(t, 2, first.Scores.JudgeCount)
	require.Len(t, first.Judges, 2)

	second := lb.Entries[1]
	assert.Equal(t, "Beta", second.Participant.TeamName)
	assert.Equal(t, 2, second.Rank)
	assert.Equal(t, 40.0, second.Scores.Average)

	assert.Equal(t, 3, lb.Metadata.TotalParticipants)
	assert.Equal(t, 80.0, lb.Metadata.Statistics.HighestScore)
	assert.Equal(t, 60.0, lb.Metadata.Statistics.AverageScore)
	assert.Equal(t, 67.0, lb.Metadata.Statistics.CompletionRate) // 2 of 3 scored
}

func TestLeaderboardRanksStrictlyIncrease(t *testing.T) {
	store, compID, ps, j1, _ := newLeaderboardFixture(t)
	require.NoError(t, store.submitScores(compID, ps[0].ID, j1.ID, scoresOf(10, 10)))
	require.NoError(t, store.submitScores(compID, ps[1].ID, j1.ID, scoresOf(30, 30)))
	require.NoError(t, store.submitScores(compID, ps[2].ID, j1.ID, scoresOf(20, 20)))

	lb, err := store.buildLeaderboard(compID, 50, comp.SortTotalSum)
	require.NoError(t, err)
	require.Len(t, lb.Entries, 3)

	prevMetric := lb.Entries[0].Scores.TotalSum
	for i, e := range lb.Entries {
		assert.Equal(t, i+1, e.Rank)
		if i > 0 {
			assert.LessOrEqual(t, e.Scores.TotalSum, prevMetric)
			prevMetric = e.Scores.TotalSum
		}
	}
}

func TestLeaderboardSortKeys(t *testing.T) {
	store, compID, ps, j1, j2 := newLeaderboardFixture(t)

	// Alpha: avg 50, max 60. Beta: avg 55, max 55. Gamma scored last.
	require.NoError(t, store.submitScores(compID, ps[0].ID, j1.ID, scoresOf(20, 20)))
	require.NoError(t, store.submitScores(compID, ps[0].ID, j2.ID, scoresOf(30, 30)))
	require.NoError(t, store.submitScores(compID, ps[1].ID, j1.ID, scoresOf(30, 25)))
	require.NoError(t, store.submitScores(compID, ps[2].ID, j1.ID, scoresOf(5, 5)))

	testCases := []struct {
		sortBy comp.SortKey
		want   []string
	}{
		{sortBy: comp.SortAvgTotal, want: []string{"Beta", "Alpha", "Gamma"}},
		{sortBy: comp.SortMaxScore, want: []string{"Alpha", "Beta", "Gamma"}},
		{sortBy: comp.SortTotalSum, want: []string{"Alpha", "Beta", "Gamma"}},
		{sortBy: comp.SortLatest, want: []string{"Gamma", "Beta", "Alpha"}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.sortBy), func(t *testing.T) {
			lb, err := store.buildLeaderboard(compID, 10, tc.sortBy)
			require.NoError(t, err)
			got := make([]string, len(lb.Entries))
			for i, e := range lb.Entries {
				got[i] = e.Participant.TeamName
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResubmissionReplacesScoreSet(t *testing.T) {
	store, compID, ps, j1, _ := newLeaderboardFixture(t)

	require.NoError(t, store.submitScores(compID, ps[0].ID, j1.ID, scoresOf(10, 10)))
	require.NoError(t, store.submitScores(compID, ps[0].ID, j1.ID, scoresOf(40, 30)))

	matrix, err := store.scoringMatrix(compID, ps[0].ID, j1.ID)
	require.NoError(t, err)
	require.Len(t, matrix.ExistingScores, 2, "old values must not accumulate")
	assert.Equal(t, 40.0, matrix.ExistingScores[0].Value)
	assert.Equal(t, 30.0, matrix.ExistingScores[1].Value)

	lb, err := store.buildLeaderboard(compID, 10, comp.SortAvgTotal)
	require.NoError(t, err)
	assert.Equal(t, 1, lb.Entries[0].Scores.JudgeCount)
	assert.Equal(t, 70.0, lb.Entries[0].Scores.Average)
}

func TestSubmitScoresValidation(t *testing.T) {
	store, compID, ps, j1, _ := newLeaderboardFixture(t)

	testCases := []struct {
		name   string
		scores []comp.ScoreEntry
	}{
		{name: "above the cap", scores: scoresOf(51, 10)},
		{name: "negative", scores: scoresOf(-1, 10)},
		{name: "unknown criterion", scores: []comp.ScoreEntry{{Criterion: "Vibes", Value: 10}, {Criterion: "Design", Value: 10}}},
		{name: "missing criterion", scores: []comp.ScoreEntry{{Criterion: "Code", Value: 10}}},
		{name: "duplicate criterion", scores: []comp.ScoreEntry{{Criterion: "Code", Value: 10}, {Criterion: "Code", Value: 20}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.submitScores(compID, ps[0].ID, j1.ID, tc.scores)
			assert.Error(t, err)
		})
	}
}

func TestDeleteParticipantDropsScores(t *testing.T) {
	store, compID, ps, j1, _ := newLeaderboardFixture(t)
	require.NoError(t, store.submitScores(compID, ps[0].ID, j1.ID, scoresOf(40, 30)))
	require.NoError(t, store.submitScores(compID, ps[1].ID, j1.ID, scoresOf(10, 10)))

	require.NoError(t, store.deleteParticipant(compID, ps[0].ID))

	lb, err := store.buildLeaderboard(compID, 10, comp.SortAvgTotal)
	require.NoError(t, err)
	require.Len(t, lb.Entries, 1)
	assert.Equal(t, "Beta", lb.Entries[0].Participant.TeamName)
	assert.Equal(t, 1, lb.Entries[0].Rank)
	assert.Equal(t, 2, lb.Metadata.TotalParticipants)
}

func TestReorderParticipantsPersists(t *testing.T) {
	store, compID, ps, _, _ := newLeaderboardFixture(t)

	require.NoError(t, store.reorderParticipants(compID, []string{ps[2].ID, ps[0].ID, ps[1].ID}))

	got, ok := store.listParticipants(compID)
	require.True(t, ok)
	assert.Equal(t, "Gamma", got[0].TeamName)
	assert.Equal(t, "Alpha", got[1].TeamName)
	assert.Equal(t, "Beta", got[2].TeamName)
}
