// Package api is the typed boundary to the scholarship backend's REST API.
// Every endpoint decodes through one documented response shape; a body that
// does not match fails loudly with common.ErrDecode instead of silently
// degrading to empty values.
package api

import (
	"context"
	"io"

	"github.com/beswanhub/beswan-cli/internal/client/models"
)

// Client defines the remote operations the application core needs.
type Client interface {
	// Login authenticates with email/password and stores the issued bearer
	// token on the client for subsequent calls.
	Login(ctx context.Context, email string, password []byte) error

	// Registration fetches the current registration window, including the
	// optional server-provided document requirement list.
	Registration(ctx context.Context) (*models.RegistrationWindow, error)

	// MyApplication returns the caller's application record, or (nil, nil)
	// when no application exists for the current cycle.
	MyApplication(ctx context.Context) (*models.ApplicationRecord, error)

	// SubmitApplication sends the final application payload.
	SubmitApplication(ctx context.Context, req *SubmitRequest) (*models.ApplicationRecord, error)

	// StageFile uploads file bytes to temporary storage and returns the
	// short-lived reference. No state is mutated on failure.
	StageFile(ctx context.Context, name string, mimeType string, size int64, r io.Reader) (*models.StagedFileReference, error)

	// DeleteStaged removes a staged file. Best-effort: the temp entry
	// expires server-side regardless.
	DeleteStaged(ctx context.Context, tempID string) error

	// FinalizeFiles promotes a batch of staged files into the given
	// destination folder in one round-trip. Partial success is expected;
	// results are correlated by tempId.
	FinalizeFiles(ctx context.Context, items []models.FinalizeItem) (*models.FinalizeResult, error)
}

// SubmitRequest is the application-submit payload: personal fields plus the
// resolved file/url value per document key, plus the consent flag.
type SubmitRequest struct {
	models.PersonalInfo

	// Files maps document key to either a permanent fileId or, for url-kind
	// slots, the URL string itself.
	Files map[string]string `json:"files"`

	Agree bool `json:"agree"`
}
