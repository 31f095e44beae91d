package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/github/github-user-browser/pkg/github"
	log "github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger log.FieldLogger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.WithError(err).Error("failed to encode JSON response")
	}
}

// statusFor maps a classified failure to the HTTP status and message sent
// to the browser. fallback is used when an unknown failure has no message.
func statusFor(e *github.Error, fallback string) (int, string) {
	switch e.Kind {
	case github.KindEmptyQuery, github.KindEmptyUsername:
		return http.StatusBadRequest, e.Message
	case github.KindRateLimited:
		return http.StatusForbidden, e.Message
	case github.KindInvalidQuery:
		return http.StatusUnprocessableEntity, e.Message
	case github.KindUserNotFound:
		return http.StatusNotFound, e.Message
	case github.KindUpstream:
		return e.Status, e.Message
	case github.KindUnknown:
		if e.Message == "" {
			return http.StatusInternalServerError, fallback
		}
		return http.StatusInternalServerError, e.Message
	default:
		panic(fmt.Sprintf("unhandled error kind %d", e.Kind))
	}
}

// writeFailure translates err once, logs it tagged with the endpoint and
// writes the JSON error body.
func writeFailure(w http.ResponseWriter, logger log.FieldLogger, err error, fallback string) {
	ghErr := github.AsError(err)
	status, msg := statusFor(ghErr, fallback)
	if ghErr.Err != nil {
		logger = logger.WithError(ghErr.Err)
	}
	logger.Errorf("%s (status: %d)", msg, status)
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}
