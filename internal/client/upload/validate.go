// Package upload validates and stages applicant files: a staged file sits in
// the backend's temporary storage under a short-lived tempId until the
// submission orchestrator promotes the whole batch.
package upload

import (
	"fmt"
)

// MaxFileSize is the largest accepted upload.
const MaxFileSize = 10 << 20 // 10 MiB

// allowedMimeTypes is the upload allow-list. Only the reported MIME type is
// checked; there is no content sniffing.
var allowedMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
}

// ValidationError rejects a file before any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validate checks size and MIME type against the upload constraints. It
// returns nil when the file is acceptable. Pure: no I/O, no side effects.
func Validate(size int64, mimeType string) error {
	if size > MaxFileSize {
		return &ValidationError{Message: fmt.Sprintf("file is too large: maximum size is %d MB", MaxFileSize>>20)}
	}
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return &ValidationError{Message: fmt.Sprintf("file type %q is not allowed: use PDF, JPG or PNG", mimeType)}
	}
	return nil
}

// MimeTypeByExt maps a file extension (with leading dot, any case) to the
// MIME type reported to validation. Unknown extensions report an empty
// string and fail the allow-list.
func MimeTypeByExt(ext string) string {
	switch ext {
	case ".pdf", ".PDF":
		return "application/pdf"
	case ".jpg", ".jpeg", ".JPG", ".JPEG":
		return "image/jpeg"
	case ".png", ".PNG":
		return "image/png"
	default:
		return ""
	}
}
