package github

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind enumerates the failures the upstream client can produce.
type ErrorKind int

const (
	// KindUnknown is anything that does not match a more specific kind.
	KindUnknown ErrorKind = iota
	KindEmptyQuery
	KindEmptyUsername
	KindRateLimited
	KindInvalidQuery
	KindUserNotFound
	// KindUpstream is any other non-2xx answer from GitHub.
	KindUpstream
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyQuery:
		return "empty_query"
	case KindEmptyUsername:
		return "empty_username"
	case KindRateLimited:
		return "rate_limited"
	case KindInvalidQuery:
		return "invalid_query"
	case KindUserNotFound:
		return "user_not_found"
	case KindUpstream:
		return "upstream_error"
	default:
		return "unknown"
	}
}

const (
	MsgEmptyQuery    = "Search query cannot be empty"
	MsgEmptyUsername = "Username cannot be empty"
	MsgRateLimited   = "GitHub API rate limit exceeded. Please try again later."
	MsgInvalidQuery  = "Invalid search query"
	MsgUserNotFound  = "User not found"
)

// Error is the single failure type returned by Client. Status is the HTTP
// status the failure maps to; for KindUpstream it is the upstream status.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// EmptyQuery is returned when a search query is blank after trimming.
func EmptyQuery() *Error {
	return &Error{Kind: KindEmptyQuery, Status: http.StatusBadRequest, Message: MsgEmptyQuery}
}

// EmptyUsername is returned when a username is blank after trimming.
func EmptyUsername() *Error {
	return &Error{Kind: KindEmptyUsername, Status: http.StatusBadRequest, Message: MsgEmptyUsername}
}

func RateLimited(cause error) *Error {
	return &Error{Kind: KindRateLimited, Status: http.StatusForbidden, Message: MsgRateLimited, Err: cause}
}

func InvalidQuery(cause error) *Error {
	return &Error{Kind: KindInvalidQuery, Status: http.StatusUnprocessableEntity, Message: MsgInvalidQuery, Err: cause}
}

func UserNotFound(cause error) *Error {
	return &Error{Kind: KindUserNotFound, Status: http.StatusNotFound, Message: MsgUserNotFound, Err: cause}
}

// Upstream wraps a non-2xx status that has no dedicated kind.
func Upstream(status int, cause error) *Error {
	return &Error{
		Kind:    KindUpstream,
		Status:  status,
		Message: fmt.Sprintf("GitHub API error: %d", status),
		Err:     cause,
	}
}

// Unknown wraps a failure that never produced an HTTP answer, such as a
// transport or decoding error.
func Unknown(cause error) *Error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: KindUnknown, Status: http.StatusInternalServerError, Message: msg, Err: cause}
}

// AsError extracts an *Error from err's chain. Errors that are not already
// classified come back as KindUnknown.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Unknown(err)
}
