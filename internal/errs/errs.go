// Package errs defines the error shapes returned to API clients.
//
// Every failure that reaches the HTTP layer is an *HTTPError: a status, a
// machine-readable code, a human message and optional per-field details.
// The global error handler renders it as JSON, or as a bare text body when
// PlainText is set.
package errs

import (
	"errors"
	"net/http"
	"strings"
)

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
//
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

// StatusOf reports the HTTP status carried by err, or 500 when err is not an *HTTPError.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return http.StatusInternalServerError
}
