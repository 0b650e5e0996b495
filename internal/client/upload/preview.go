package upload

import "strings"

// TempPreviewURL derives the preview location for a staged file. Pure
// derivation, no network call.
func TempPreviewURL(baseURL, tempID string) string {
	return strings.TrimRight(baseURL, "/") + "/files/stage/" + tempID + "/preview"
}

// FilePreviewURL derives the preview location for a finalized file.
func FilePreviewURL(baseURL, fileID string) string {
	return strings.TrimRight(baseURL, "/") + "/files/" + fileID + "/preview"
}
