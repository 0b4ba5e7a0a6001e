package devserver_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/damrufest/judgeboard/apiclient"
	"github.com/damrufest/judgeboard/comp"
	"github.com/damrufest/judgeboard/devserver"
	"github.com/damrufest/judgeboard/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServer spins up a seeded dev server and returns a fresh client
// per call, so each client has its own cookie jar (its own session).
func startServer(t *testing.T) (*httptest.Server, func() *apiclient.Client) {
	t.Helper()
	store := devserver.NewStore()
	require.NoError(t, devserver.Seed(store, devserver.DefaultSeedAccounts))
	srv := devserver.New(store, devserver.Options{JwtKey: []byte("test"), Quiet: true})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts, func() *apiclient.Client {
		client, err := apiclient.New(ts.URL)
		require.NoError(t, err)
		return client
	}
}

func loginAs(t *testing.T, client *apiclient.Client, email, password string) *comp.User {
	t.Helper()
	user, err := client.Login(context.Background(), email, password)
	require.NoError(t, err)
	return user
}

func TestLoginOutcomes(t *testing.T) {
	_, newClient := startServer(t)
	store := session.NewStore(newClient())
	ctx := context.Background()

	res := store.Login(ctx, "producer@example.com", "wrongpassword")
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid credentials", res.Msg)
	assert.False(t, store.IsAuthenticated(), "failed login must not navigate anywhere")

	res = store.Login(ctx, "nobody@example.com", "whatever")
	assert.False(t, res.Success)
	assert.Equal(t, "User not found", res.Msg)

	res = store.Login(ctx, "producer@example.com", "producer123")
	require.True(t, res.Success)
	assert.Equal(t, comp.RoleProducer, store.Role())
}

func TestSessionResolveLifecycle(t *testing.T) {
	_, newClient := startServer(t)
	client := newClient()
	ctx := context.Background()

	// Anonymous resolve: not an error, just no user.
	store := session.NewStore(client)
	assert.False(t, store.Resolved())
	store.Resolve(ctx)
	assert.True(t, store.Resolved())
	assert.False(t, store.IsAuthenticated())

	// After login the cookie lives in the client's jar, so a second
	// resolve over the same client finds the user again.
	res := store.Login(ctx, "judge@example.com", "judge123")
	require.True(t, res.Success)
	store.Resolve(ctx)
	require.True(t, store.IsAuthenticated())
	assert.Equal(t, "Jana Judge", store.User().Name)

	store.Logout(ctx)
	assert.False(t, store.IsAuthenticated())
	store.Resolve(ctx)
	assert.False(t, store.IsAuthenticated(), "cookie must be gone after logout")
}

const rosterCSV = `teamName,members,email
Byte Bandits,Alice;Bob,bandits@example.com
Null Pointers,Carol,carol@example.com
`

func setupCompetition(t *testing.T, producer *apiclient.Client) *comp.Competition {
	t.Helper()
	ctx := context.Background()
	created, err := producer.CreateCompetition(ctx, apiclient.CreateCompetitionInput{
		Title:       "Hack Night",
		Description: "annual hackathon",
		Type:        comp.TypeTeam,
		Criteria: []comp.Criterion{
			{Name: "Code", MaxScore: 50},
			{Name: "Design", MaxScore: 50},
		},
	})
	require.NoError(t, err)

	err = producer.UploadParticipants(ctx, created.ID, "roster.csv", strings.NewReader(rosterCSV))
	require.NoError(t, err)
	return created
}

func TestJudgeSelectionIsIdempotent(t *testing.T) {
	_, newClient := startServer(t)
	ctx := context.Background()

	producer := newClient()
	loginAs(t, producer, "producer@example.com", "producer123")
	created := setupCompetition(t, producer)

	judgeClient := newClient()
	judge := loginAs(t, judgeClient, "judge@example.com", "judge123")

	list, err := judgeClient.ListCompetitions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].HasJudge(judge.ID))

	require.NoError(t, judgeClient.SelectCompetition(ctx, created.ID))
	require.NoError(t, judgeClient.SelectCompetition(ctx, created.ID), "selecting twice is fine")

	list, err = judgeClient.ListCompetitions(ctx)
	require.NoError(t, err)
	require.Len(t, list[0].Judges, 1, "no duplicate judge entries")
	assert.True(t, list[0].HasJudge(judge.ID), "reload must now offer view instead of select")
}

func TestScoringRoundTrip(t *testing.T) {
	_, newClient := startServer(t)
	ctx := context.Background()

	producer := newClient()
	loginAs(t, producer, "producer@example.com", "producer123")
	created := setupCompetition(t, producer)

	judgeClient := newClient()
	loginAs(t, judgeClient, "judge@example.com", "judge123")
	require.NoError(t, judgeClient.SelectCompetition(ctx, created.ID))

	participants, err := judgeClient.ListParticipants(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, participants, 2)
	target := participants[0]

	// Fresh matrix: criteria present, nothing submitted yet.
	matrix, err := judgeClient.GetScoringMatrix(ctx, created.ID, target.ID)
	require.NoError(t, err)
	assert.Len(t, matrix.Criteria, 2)
	assert.Empty(t, matrix.ExistingScores)

	err = judgeClient.SubmitScores(ctx, created.ID, target.ID, []comp.ScoreEntry{
		{Criterion: "Code", Value: 40},
		{Criterion: "Design", Value: 30},
	})
	require.NoError(t, err)

	// Re-opened form pre-fills from the previous submission.
	matrix, err = judgeClient.GetScoringMatrix(ctx, created.ID, target.ID)
	require.NoError(t, err)
	inputs := comp.SeedInputs(*matrix)
	assert.Equal(t, 40.0, inputs["Code"])
	assert.Equal(t, 30.0, inputs["Design"])

	// Resubmission replaces, not appends.
	err = judgeClient.SubmitScores(ctx, created.ID, target.ID, []comp.ScoreEntry{
		{Criterion: "Code", Value: 45},
		{Criterion: "Design", Value: 35},
	})
	require.NoError(t, err)
	matrix, err = judgeClient.GetScoringMatrix(ctx, created.ID, target.ID)
	require.NoError(t, err)
	require.Len(t, matrix.ExistingScores, 2)
	inputs = comp.SeedInputs(*matrix)
	assert.Equal(t, 45.0, inputs["Code"])
	assert.Equal(t, 35.0, inputs["Design"])

	lb, err := judgeClient.GetLeaderboard(ctx, created.ID, 50, comp.SortTotalSum)
	require.NoError(t, err)
	require.Len(t, lb.Entries, 1)
	assert.Equal(t, 1, lb.Entries[0].Rank)
	assert.Equal(t, 80.0, lb.Entries[0].Scores.TotalSum)
	assert.Equal(t, 80, comp.ProgressPercent(lb.Entries[0].Scores.Average, comp.MaxTotal(matrix.Criteria)))
}

func TestLeaderboardRankOrder(t *testing.T) {
	_, newClient := startServer(t)
	ctx := context.Background()

	producer := newClient()
	loginAs(t, producer, "producer@example.com", "producer123")
	created := setupCompetition(t, producer)

	j1 := newClient()
	loginAs(t, j1, "judge@example.com", "judge123")
	require.NoError(t, j1.SelectCompetition(ctx, created.ID))
	j2 := newClient()
	loginAs(t, j2, "judge2@example.com", "judge123")
	require.NoError(t, j2.SelectCompetition(ctx, created.ID))

	participants, err := producer.ListParticipants(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, j1.SubmitScores(ctx, created.ID, participants[0].ID, []comp.ScoreEntry{
		{Criterion: "Code", Value: 20}, {Criterion: "Design", Value: 20},
	}))
	require.NoError(t, j2.SubmitScores(ctx, created.ID, participants[0].ID, []comp.ScoreEntry{
		{Criterion: "Code", Value: 30}, {Criterion: "Design", Value: 20},
	}))
	require.NoError(t, j1.SubmitScores(ctx, created.ID, participants[1].ID, []comp.ScoreEntry{
		{Criterion: "Code", Value: 50}, {Criterion: "Design", Value: 45},
	}))

	lb, err := producer.GetLeaderboard(ctx, created.ID, 50, comp.SortTotalSum)
	require.NoError(t, err)
	require.Len(t, lb.Entries, 2)
	for i, e := range lb.Entries {
		assert.Equal(t, i+1, e.Rank, "rank is strictly increasing")
	}
	assert.Equal(t, "Null Pointers", lb.Entries[0].Participant.TeamName)
	assert.Equal(t, 2, lb.Entries[1].Scores.JudgeCount)
}

func TestParticipantDeletionRefreshesRanks(t *testing.T) {
	_, newClient := startServer(t)
	ctx := context.Background()

	producer := newClient()
	loginAs(t, producer, "producer@example.com", "producer123")
	created := setupCompetition(t, producer)

	judge := newClient()
	loginAs(t, judge, "judge@example.com", "judge123")
	require.NoError(t, judge.SelectCompetition(ctx, created.ID))

	participants, err := producer.ListParticipants(ctx, created.ID)
	require.NoError(t, err)
	for i, p := range participants {
		require.NoError(t, judge.SubmitScores(ctx, created.ID, p.ID, []comp.ScoreEntry{
			{Criterion: "Code", Value: float64(10 * (i + 1))},
			{Criterion: "Design", Value: 10},
		}))
	}

	lb, err := producer.GetLeaderboard(ctx, created.ID, 10, comp.SortAvgTotal)
	require.NoError(t, err)
	topID := lb.Entries[0].ID

	require.NoError(t, producer.DeleteParticipant(ctx, created.ID, topID))

	lb, err = producer.GetLeaderboard(ctx, created.ID, 10, comp.SortAvgTotal)
	require.NoError(t, err)
	require.Len(t, lb.Entries, 1)
	assert.Equal(t, 1, lb.Entries[0].Rank)
	assert.NotEqual(t, topID, lb.Entries[0].ID)
}

func TestRoleGatesEnforced(t *testing.T) {
	_, newClient := startServer(t)
	ctx := context.Background()

	producer := newClient()
	loginAs(t, producer, "producer@example.com", "producer123")
	created := setupCompetition(t, producer)

	judge := newClient()
	loginAs(t, judge, "judge@example.com", "judge123")

	err := judge.DeleteCompetition(ctx, created.ID)
	assert.True(t, apiclient.IsStatus(err, 403), "judges cannot delete competitions")

	err = judge.UploadParticipants(ctx, created.ID, "r.csv", strings.NewReader(rosterCSV))
	assert.True(t, apiclient.IsStatus(err, 403))

	anon := newClient()
	_, err = anon.ListCompetitions(ctx)
	assert.True(t, apiclient.IsUnauthorized(err))
}

func TestUploadRejectsBadRoster(t *testing.T) {
	_, newClient := startServer(t)
	ctx := context.Background()

	producer := newClient()
	loginAs(t, producer, "producer@example.com", "producer123")
	created := setupCompetition(t, producer)

	err := producer.UploadParticipants(ctx, created.ID, "bad.csv", strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, apiclient.IsStatus(err, 400))

	// Failed upload leaves the roster untouched.
	participants, listErr := producer.ListParticipants(ctx, created.ID)
	require.NoError(t, listErr)
	assert.Len(t, participants, 2)
}
