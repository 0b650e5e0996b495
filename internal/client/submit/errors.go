package submit

import (
	"fmt"
	"strings"
)

// FinalizeError reports documents that failed to promote during the bulk
// finalize. Recoverable: the failed slots were cleared, the wizard is back
// on the Documents step, and the user re-selects exactly those files.
type FinalizeError struct {
	FailedTitles []string
}

func (e *FinalizeError) Error() string {
	return fmt.Sprintf("these documents failed to upload, please re-select them: %s",
		strings.Join(e.FailedTitles, ", "))
}

// SubmitError is a failure of the final application-submit call, after all
// files were finalized. The draft stays intact and the finalized references
// are kept, so a manual retry re-sends only the submit request.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("application submit failed: %v", e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }
