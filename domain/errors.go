package domain

import (
	"errors"
	"fmt"
)

// ErrGenerationFailed marks a fatal stage-one failure: the script back-end
// was unreachable, its output had no page markers, or the parsed page list
// was empty. Media failures never map to this error.
var ErrGenerationFailed = errors.New("story generation failed")

// HTTPStatusError is returned by the content fetcher for non-OK responses so
// the retry wrapper can tell transient failures (429, 5xx) from permanent
// ones (400, 401, 403).
type HTTPStatusError struct {
	Code int
	Body string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP request returned non-OK status code: %d", e.Code)
}

// IsPermanentStatus reports whether err is an HTTPStatusError that should
// not be retried.
func IsPermanentStatus(err error) bool {
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	switch statusErr.Code {
	case 400, 401, 403:
		return true
	}
	return false
}
