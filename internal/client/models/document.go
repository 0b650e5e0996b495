package models

import (
	"strings"
	"time"
)

// DocumentKind tells how a requirement slot is satisfied: by an uploaded
// file or by a non-empty URL.
type DocumentKind string

const (
	DocumentKindFile DocumentKind = "file"
	DocumentKindURL  DocumentKind = "url"
)

// DocumentRequirement is one slot the applicant has to fill.
type DocumentRequirement struct {
	Key      string       `json:"key"`
	Title    string       `json:"title"`
	Desc     string       `json:"desc"`
	Required bool         `json:"required"`
	Kind     DocumentKind `json:"kind"`
}

// StagedFileReference points at a file sitting in the backend's temporary
// storage. It is short-lived: either promoted to a FinalizedFileReference by
// a bulk finalize or dropped (explicit removal, replacement, or server-side
// expiry).
type StagedFileReference struct {
	TempID     string    `json:"tempId"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mimeType"`
	PreviewURL string    `json:"previewUrl"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// FinalizedFileReference points at a file in permanent storage. Once a slot
// holds one, resubmission reuses FileID instead of re-uploading.
type FinalizedFileReference struct {
	FileID     string `json:"fileId"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	PreviewURL string `json:"previewUrl"`
}

// DocumentSlot is the client-side state of one requirement. At most one of
// Staged/Finalized is set at any time; URL is used for url-kind slots.
type DocumentSlot struct {
	Staged    *StagedFileReference
	Finalized *FinalizedFileReference
	URL       string

	// LocalPath remembers the file the user selected, so a failed slot can
	// be cleared back to "unselected".
	LocalPath string
}

// Satisfied reports whether the slot fulfills a requirement of the given
// kind.
func (s *DocumentSlot) Satisfied(kind DocumentKind) bool {
	if s == nil {
		return false
	}
	if kind == DocumentKindURL {
		return strings.TrimSpace(s.URL) != ""
	}
	return s.Staged != nil || s.Finalized != nil
}

// Reset clears the slot back to "unselected".
func (s *DocumentSlot) Reset() {
	s.Staged = nil
	s.Finalized = nil
	s.URL = ""
	s.LocalPath = ""
}

// Promote replaces the staged reference with the finalized one.
func (s *DocumentSlot) Promote(f *FinalizedFileReference) {
	s.Staged = nil
	s.Finalized = f
}

// FinalizeItem is one entry of a bulk finalize request.
type FinalizeItem struct {
	TempID string `json:"tempId"`
	Folder string `json:"folder"`
}

// FinalizedUpload is one successfully promoted file in a finalize response.
type FinalizedUpload struct {
	TempID     string `json:"tempId"`
	FileID     string `json:"fileId"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	PreviewURL string `json:"previewUrl"`
}

// FinalizeFailure is one file the backend failed to promote.
type FinalizeFailure struct {
	TempID string `json:"tempId"`
	Reason string `json:"reason"`
}

// FinalizeResult is the per-item outcome of a bulk finalize. Partial success
// is expected; entries are correlated by TempID, not by position.
type FinalizeResult struct {
	Uploaded []FinalizedUpload `json:"uploaded"`
	Errors   []FinalizeFailure `json:"errors"`
}
