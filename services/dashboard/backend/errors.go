package backend

import (
	"errors"
	"net/http"
)

// ErrUnauthorized signals that the health backend rejected the session's bearer token
var ErrUnauthorized = errors.New("backend rejected the bearer token")

type errStatusNotOK struct {
	code    int
	message string
}

func (e errStatusNotOK) Error() string {
	if len(e.message) > 0 {
		return "backend returned " + http.StatusText(e.code) + ": " + e.message
	}
	return "non-2xx HTTP status code: " + http.StatusText(e.code)
}

type errFieldNotFound string

func (e errFieldNotFound) Error() string {
	return "JSON field not found in response: " + string(e)
}
