package themeparks

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates the client was constructed with unusable settings.
	ErrInvalidConfig = errors.New("invalid themeparks client configuration")

	// ErrEntityNotFound indicates the upstream API has no entity with the given ID.
	ErrEntityNotFound = errors.New("entity not found upstream")
)

// UpstreamStatusError reports a non-2xx response from the upstream API.
type UpstreamStatusError struct {
	StatusCode int
	URL        string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d for %s", e.StatusCode, e.URL)
}

// IsUpstreamStatusError reports whether err is (or wraps) an UpstreamStatusError.
func IsUpstreamStatusError(err error) bool {
	var statusErr *UpstreamStatusError
	return errors.As(err, &statusErr)
}
