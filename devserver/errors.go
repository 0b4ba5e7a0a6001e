package devserver

import (
	"fmt"
	"net/http"

	"github.com/damrufest/judgeboard/srvcerror"
)

const ErrCodeInvalidCredentials = "invalid_credentials"

func newErrInvalidCredentials() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidCredentials,
		"email or password is incorrect",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

const ErrCodeUserNotFound = "user_not_found"

func newErrUserNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUserNotFound,
		"no account exists for this email",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeNotAuthenticated = "not_authenticated"

func newErrNotAuthenticated() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotAuthenticated,
		"not authenticated",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

const ErrCodeForbidden = "forbidden"

func newErrForbidden() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeForbidden,
		"your role does not allow this action",
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeCompetitionNotFound = "competition_not_found"

func newErrCompetitionNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeCompetitionNotFound,
		"competition not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeParticipantNotFound = "participant_not_found"

func newErrParticipantNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeParticipantNotFound,
		"participant not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeInvalidRoster = "invalid_roster"

func newErrInvalidRoster(detail string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidRoster,
		fmt.Sprintf("roster file is not valid: %s", detail),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeDuplicateCriterion = "duplicate_criterion"

func newErrDuplicateCriterion(name string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeDuplicateCriterion,
		fmt.Sprintf("criterion %q already exists", name),
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeInvalidCriterion = "invalid_criterion"

func newErrInvalidCriterion(detail string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidCriterion,
		fmt.Sprintf("criterion is not valid: %s", detail),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidScore = "invalid_score"

func newErrInvalidScore(detail string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidScore,
		fmt.Sprintf("score set is not valid: %s", detail),
	).SetHttpStatusCode(http.StatusBadRequest)
}
