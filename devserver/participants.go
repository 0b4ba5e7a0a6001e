package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/damrufest/judgeboard/httpjson"
	"github.com/damrufest/judgeboard/logger"
	"github.com/go-chi/chi/v5"
)

// Roster uploads are tiny CSV files; anything bigger than this is a
// mistake, not a roster.
const maxRosterSize = 1 << 20

func (s *Server) listParticipants(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r)
	if user == nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrNotAuthenticated())
		return
	}
	participants, ok := s.store.listParticipants(chi.URLParam(r, "competitionId"))
	if !ok {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrCompetitionNotFound())
		return
	}
	httpjson.WriteSuccessJson(w, map[string]any{"participants": participants})
}

func (s *Server) uploadParticipants(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r)
	if user == nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrNotAuthenticated())
		return
	}
	if !user.Role.CanManage() {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrForbidden())
		return
	}

	if err := r.ParseMultipartForm(maxRosterSize); err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrInvalidRoster("expected multipart form data").SetDebug(err))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrInvalidRoster("missing file field").SetDebug(err))
		return
	}
	defer file.Close()

	participants, err := parseRoster(file)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrInvalidRoster(err.Error()))
		return
	}

	if !s.store.addParticipants(chi.URLParam(r, "competitionId"), participants, *user) {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrCompetitionNotFound())
		return
	}
	httpjson.WriteSuccessJson(w, map[string]any{"added": len(participants)})
}

func (s *Server) deleteParticipant(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r)
	if user == nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrNotAuthenticated())
		return
	}
	if !user.Role.CanManage() {
		httpjson.HandleError(logger.FromContext(r.Context()), w, newErrForbidden())
		return
	}
	err := s.store.deleteParticipant(
		chi.URLParam(r, "competitionId"),
		chi.URLParam(r, "participantId"),
	)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}
	httpjson.WriteSuccessJson(w, map[string]string{"message": "Participant deleted"})
}

func (s *Server) reorderParticipants(w http.ResponseWriter, r *http.Request) {
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
		Order []string `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := s.store.reorderParticipants(chi.URLParam(r, "competitionId"), req.Order); err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}
	httpjson.WriteSuccessJson(w, map[string]string{"message": "Order saved"})
}
