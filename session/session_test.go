package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/damrufest/judgeboard/apiclient"
	"github.com/damrufest/judgeboard/comp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeAgainst(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	client, err := apiclient.New(ts.URL)
	require.NoError(t, err)
	return NewStore(client)
}

func TestLoginMapsFailuresToScreenMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantMsg string
	}{
		{"wrong password", http.StatusUnauthorized, "Invalid credentials"},
		{"unknown account", http.StatusNotFound, "User not found"},
		{"backend down", http.StatusInternalServerError, "Server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storeAgainst(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"status":"error","message":"whatever the server says"}`)
			})

			res := store.Login(context.Background(), "a@example.com", "pw")
			assert.False(t, res.Success)
			assert.Equal(t, tt.wantMsg, res.Msg)
			assert.False(t, store.IsAuthenticated())
		})
	}
}

func TestLoginSuccessMarksResolved(t *testing.T) {
	store := storeAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","data":{"user":{"id":"u1","name":"Jana","role":"judge"}}}`)
	})

	require.False(t, store.Resolved())
	res := store.Login(context.Background(), "judge@example.com", "judge123")
	require.True(t, res.Success)
	assert.True(t, store.Resolved())
	assert.Equal(t, comp.RoleJudge, store.Role())
}

func TestUserReturnsACopy(t *testing.T) {
	store := storeAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","data":{"user":{"id":"u1","name":"Jana","role":"judge"}}}`)
	})
	store.Resolve(context.Background())

	u := store.User()
	require.NotNil(t, u)
	u.Name = "mutated"
	assert.Equal(t, "Jana", store.User().Name)
}

func TestLogoutClearsEvenWhenServerErrors(t *testing.T) {
	calls := 0
	store := storeAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == "/auth/logout" {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"status":"error","message":"boom"}`)
			return
		}
		fmt.Fprint(w, `{"status":"success","data":{"user":{"id":"u1","role":"judge"}}}`)
	})

	store.Resolve(context.Background())
	require.True(t, store.IsAuthenticated())

	store.Logout(context.Background())
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, 2, calls)
}
