package pokeapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches fetch failures caused by a 404 from upstream
var ErrNotFound = errors.New("not found")

// FetchError is a failed upstream request: a transport error or a
// non-success status. Its message is safe to show to users.
type FetchError struct {
	URL        string
	StatusCode int // 0 for transport errors
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return fmt.Sprintf("%s: not found", e.URL)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: upstream returned %d", e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("%s: request failed", e.URL)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNotFound) match 404 responses
func (e *FetchError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err is an upstream 404
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
