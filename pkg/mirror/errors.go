package mirror

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned for non-2xx mirror node responses.
type StatusError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "mirror node request failed"
	}
	if e.Body == "" {
		return fmt.Sprintf("mirror node request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("mirror node request failed with status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the mirror node.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
