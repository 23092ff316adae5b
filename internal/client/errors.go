package client

import (
	"fmt"
	"net/http"
)

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string // without the query string, so the key never leaks
	StatusCode int
	Body       string // first bytes of the response body
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: upstream returned %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}
