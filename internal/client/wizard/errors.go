package wizard

// ValidationError is a local, synchronous rule failure: it aborts the
// current transition, is always recoverable, and never touches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
