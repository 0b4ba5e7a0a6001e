package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/damrufest/judgeboard/comp"
	"github.com/damrufest/judgeboard/httpjson"
	"github.com/damrufest/judgeboard/logger"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listCompetitions(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r)
	if user == nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrNotAuthenticated())
		return
	}
	httpjson.WriteSuccessJson(w, map[string]any{
		"competitions": s.store.listCompetitions(),
	})
}

func (s *Server) createCompetition(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r)
	if user == nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrNotAuthenticated())
		return
	}
	if !user.Role.CanManage() {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrForbidden())
		return
	}

	var req struct {
		Name        string               `json:"name"`
		Description string               `json:"description"`
		Type        comp.CompetitionType `json:"type"`
		Criteria    []comp.Criterion     `json:"criteria"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrInvalidCriterion("competition name must not be empty"))
		return
	}
	for _, c := range req.Criteria {
		if c.Name == "" || c.MaxScore <= 0 {
			httpjson.HandleError(logger.FromContext(r.Context()), w, newErrInvalidCriterion("criteria need a name and a positive max score"))
			return
		}
	}
	if req.Type != comp.TypeTeam {
		req.Type = comp.TypeSolo
	}

	created := s.store.createCompetition(req.Name, req.Description, req.Type, req.Criteria, *user)
	httpjson.WriteSuccessJson(w, map[string]any{"competition": created})
}

func (s *Server) getCompetition(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r)
	if user == nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrNotAuthenticated())
		return
	}
	c, ok := s.store.getCompetition(chi.URLParam(r, "competitionId"))
	if !ok {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrCompetitionNotFound())
		return
	}
	httpjson.WriteSuccessJson(w, map[string]any{"competition": c})
}

func (s *Server) deleteCompetition(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r)
	if user == nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrNotAuthenticated())
		return
	}
	if !user.Role.CanManage() {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrForbidden())
		return
	}
	if !s.store.deleteCompetition(chi.URLParam(r, "competitionId")) {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrCompetitionNotFound())
		return
	}
	httpjson.WriteSuccessJson(w, map[string]string{"message": "Competition deleted"})
}

// selectCompetition self-assigns the session judge. Selecting twice is
// fine; the judge list never gains duplicates.
func (s *Server) selectCompetition(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r)
	if user == nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrNotAuthenticated())
		return
	}
	if user.Role != comp.RoleJudge {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrForbidden())
		return
	}
	if !s.store.addJudge(chi.URLParam(r, "competitionId"), *user) {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrCompetitionNotFound())
		return
	}
	httpjson.WriteSuccessJson(w, map[string]string{"message": "Selected"})
}

func (s *Server) addCriteria(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r)
	if user == nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrNotAuthenticated())
		return
	}
	if !user.Role.CanManage() {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrForbidden())
		return
	}

	var req struct {
		Criteria []comp.Criterion `json:"criteria"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := s.store.addCriteria(chi.URLParam(r, "competitionId"), req.Criteria); err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}
	httpjson.WriteSuccessJson(w, map[string]string{"message": "Criteria added"})
}
