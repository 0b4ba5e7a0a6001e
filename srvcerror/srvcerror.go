package srvcerror

import "net/http"

// Error is a service-level failure with a stable machine code, a message
// safe to show to the user, and optional debug detail that never leaves
// the server log.
type Error struct {
	errorCode  string
	msgToUser  string // public
	dbgInfoErr error  // private, for debugging

	httpStatus int // optional, for HTTP responses
}

func (e *Error) Error() string {
	return e.msgToUser
}

func (e *Error) ErrorCode() string {
	return e.errorCode
}

func (e *Error) DebugInfo() error {
	return e.dbgInfoErr
}

func (e *Error) SetDebug(err error) *Error {
	e.dbgInfoErr = err
	return e
}

func (e *Error) HttpStatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.httpStatus
}

func (e *Error) SetHttpStatusCode(code int) *Error {
	e.httpStatus = code
	return e
}

func New(errorCode string, msgToUser string) *Error {
	return &Error{
		errorCode: errorCode,
		msgToUser: msgToUser,
	}
}

const ErrCodeInternalServerError = "internal_server_error"

func ErrInternalSE() *Error {
	return New(
		ErrCodeInternalServerError,
		"internal server error",
	).SetHttpStatusCode(http.StatusInternalServerError)
}

const ErrCodeNotFound = "not_found"

func ErrNotFound(msg string) *Error {
	return New(ErrCodeNotFound, msg).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeForbidden = "forbidden"

func ErrForbidden(msg string) *Error {
	return New(ErrCodeForbidden, msg).SetHttpStatusCode(http.StatusForbidden)
}
