package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// StatusCode maps err to the HTTP status of the first Exception in its chain.
// Anything else, store failures included, is a 500.
func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsException reports whether err carries an application Exception.
func IsException(err error) bool {
	var appErr *Exception
	return errors.As(err, &appErr)
}
