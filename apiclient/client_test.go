package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/damrufest/judgeboard/comp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	client, err := New(ts.URL)
	require.NoError(t, err)
	return client
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"status":"error","code":"invalid_credentials","message":"Invalid credentials"}`)
	})

	_, err := client.WhoAmI(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid_credentials", apiErr.Code)
	assert.Equal(t, "Invalid credentials", apiErr.Error())
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNotFound(err))
}

func TestNonJsonFailureStillYieldsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.ListCompetitions(context.Background())
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadGateway))
}

func TestErrorStatusWithSuccessEnvelopeIsStillAnError(t *testing.T) {
	// A broken proxy could pair a success body with a failure status;
	// the status code wins.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"status":"success","data":{}}`)
	})

	_, err := client.ListCompetitions(context.Background())
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
}

func TestCookiesPersistAcrossRequests(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "tok", Path: "/"})
			fmt.Fprint(w, `{"status":"success","data":{"user":{"id":"u1","role":"judge"}}}`)
		case "/auth/me":
			if c, err := r.Cookie("auth_token"); err != nil || c.Value != "tok" {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"status":"error","message":"Not authenticated"}`)
				return
			}
			fmt.Fprint(w, `{"status":"success","data":{"user":{"id":"u1","role":"judge"}}}`)
		}
	})

	ctx := context.Background()
	user, err := client.Login(ctx, "judge@example.com", "judge123")
	require.NoError(t, err)
	assert.Equal(t, comp.RoleJudge, user.Role)

	user, err = client.WhoAmI(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestRedirectsAreNotFollowed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://elsewhere.example.com/", http.StatusFound)
	})

	_, err := client.ListCompetitions(context.Background())
	assert.True(t, IsStatus(err, http.StatusFound), "a redirect surfaces as-is instead of being chased")
}

func TestUploadParticipantsSendsMultipartFile(t *testing.T) {
	const roster = "teamName,members,email\nAlpha,A;B,alpha@example.com\n"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/competitions/c1/participants/upload", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "roster.csv", header.Filename)

		body, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, roster, string(body))

		fmt.Fprint(w, `{"status":"success"}`)
	})

	err := client.UploadParticipants(context.Background(), "c1", "roster.csv", strings.NewReader(roster))
	assert.NoError(t, err)
}

func TestGetLeaderboardQueryParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leaderboard/c1", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "totalSum", r.URL.Query().Get("sortBy"))
		fmt.Fprint(w, `{"status":"success","data":{"leaderboard":[],"metadata":{"totalParticipants":0}}}`)
	})

	lb, err := client.GetLeaderboard(context.Background(), "c1", 50, comp.SortTotalSum)
	require.NoError(t, err)
	assert.Empty(t, lb.Entries)
}

func TestJudgeRefShapesDecode(t *testing.T) {
	// Older records store judges as bare ID strings, newer ones as
	// objects. Both shapes arrive from the list endpoint.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","data":{"competitions":[
			{"id":"c1","name":"Mixed","judges":["j1",{"id":"j2","name":"Jana"}]}
		]}}`)
	})

	comps, err := client.ListCompetitions(context.Background())
	require.NoError(t, err)
	require.Len(t, comps, 1)
	require.Len(t, comps[0].Judges, 2)
	assert.Equal(t, "j1", comps[0].Judges[0].ID)
	assert.Equal(t, "Jana", comps[0].Judges[1].Name)
	assert.True(t, comps[0].HasJudge("j2"))
}
