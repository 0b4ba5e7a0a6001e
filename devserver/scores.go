package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/damrufest/judgeboard/comp"
	"github.com/damrufest/judgeboard/httpjson"
	"github.com/damrufest/judgeboard/logger"
	"github.com/go-chi/chi/v5"
)

// scoringMatrix returns the criteria plus the calling judge's existing
// score set for the participant, if any.
func (s *Server) scoringMatrix(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r)
	if user == nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrNotAuthenticated())
		return
	}
	matrix, err := s.store.scoringMatrix(
		chi.URLParam(r, "competitionId"),
		chi.URLParam(r, "participantId"),
		user.ID,
	)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}
	httpjson.WriteSuccessJson(w, matrix)
}

func (s *Server) submitScores(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r)
	if user == nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrNotAuthenticated())
		return
	}
	if user.Role != comp.RoleJudge {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrForbidden())
		return
	}

	var req struct {
		Scores []comp.ScoreEntry `json:"scores"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err := s.store.submitScores(
		chi.URLParam(r, "competitionId"),
		chi.URLParam(r, "participantId"),
		user.ID,
		req.Scores,
	)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}
	httpjson.WriteSuccessJson(w, map[string]string{"message": "Scores saved"})
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r)
	if user == nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrNotAuthenticated())
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	sortBy := comp.SortKey(r.URL.Query().Get("sortBy"))
	if sortBy == "" {
		sortBy = comp.SortAvgTotal
	}

	lb, err := s.store.buildLeaderboard(chi.URLParam(r, "competitionId"), limit, sortBy)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}
	httpjson.WriteSuccessJson(w, lb)
}
