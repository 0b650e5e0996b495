package api

import "fmt"

// APIError is a non-2xx response that carried a server-side message.
// Transport-level failures are reported as common.ErrUnavailable instead.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}
