package ghclient

import (
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v57/github"
)

// Operations reported in a StatusError.
const (
	OpCreateCard    = "create project card"
	OpCreateComment = "create comment"
)

// StatusError reports a write that GitHub answered with an unexpected status.
type StatusError struct {
	Op      string
	Status  int
	Context string
	Err     error
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("unable to %s for %s - %d", e.Op, e.Context, e.Status)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// checkCreated turns the outcome of a create call into nil or an error.
// Errors that carry an HTTP response become a *StatusError.
func checkCreated(op, target string, resp *gh.Response, err error) error {
	if err != nil {
		if status, ok := responseStatus(err); ok {
			return &StatusError{Op: op, Status: status, Context: target, Err: err}
		}
		return fmt.Errorf("failed to %s for %s: %w", op, target, err)
	}

	if resp == nil {
		return fmt.Errorf("failed to %s for %s: no response", op, target)
	}
	if resp.StatusCode != http.StatusCreated {
		return &StatusError{Op: op, Status: resp.StatusCode, Context: target}
	}
	return nil
}

// responseStatus extracts the HTTP status from the go-github error types
// that keep the response, including primary and secondary rate limits.
func responseStatus(err error) (int, bool) {
	var (
		ghErr    *gh.ErrorResponse
		rateErr  *gh.RateLimitError
		abuseErr *gh.AbuseRateLimitError
		r        *http.Response
	)
	switch {
	case errors.As(err, &ghErr):
		r = ghErr.Response
	case errors.As(err, &rateErr):
		r = rateErr.Response
	case errors.As(err, &abuseErr):
		r = abuseErr.Response
	}
	if r == nil {
		return 0, false
	}
	return r.StatusCode, true
}
