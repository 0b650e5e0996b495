package upload

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/beswanhub/beswan-cli/internal/client/api"
	"github.com/beswanhub/beswan-cli/internal/client/models"
	"github.com/beswanhub/beswan-cli/internal/logging"
)

// UploadError is a single slot's staging failure. It never affects other
// slots; the user retries by re-selecting the file.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload for %s failed: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// ErrSlotBusy rejects a second staging attempt for a slot whose upload is
// still in flight. The first upload must complete or fail before the slot
// can change again.
var ErrSlotBusy = &UploadError{Key: "", Err: fmt.Errorf("an upload for this document is already in progress")}

// File describes the bytes being staged.
type File struct {
	Name     string
	Size     int64
	MimeType string
	Reader   io.Reader
}

// Service stages applicant files through the API and tracks which slots have
// an upload in flight, so the wizard can refuse step transitions and
// concurrent re-uploads while one is outstanding.
type Service struct {
	api api.Client
	log logging.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService returns a staging service bound to the API client.
func NewService(c api.Client, log logging.Logger) *Service {
	return &Service{api: c, log: log, inflight: make(map[string]struct{})}
}

// Stage validates the file and uploads it to temporary storage for the given
// document key. On success the previous staged reference for the key, if
// any, should be replaced by the caller (and its temp file deleted via
// Remove). On failure nothing is mutated; the error is the only outcome.
func (s *Service) Stage(ctx context.Context, key string, f File) (*models.StagedFileReference, error) {
	if err := Validate(f.Size, f.MimeType); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, busy := s.inflight[key]; busy {
		s.mu.Unlock()
		return nil, ErrSlotBusy
	}
	s.inflight[key] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, key)
		s.mu.Unlock()
	}()

	ref, err := s.api.StageFile(ctx, f.Name, f.MimeType, f.Size, f.Reader)
	if err != nil {
		return nil, &UploadError{Key: key, Err: err}
	}

	s.log.Info(ctx, "file staged", "key", key, "tempId", ref.TempID, "size", ref.Size)
	return ref, nil
}

// Remove deletes a staged temp file, best-effort: failures are logged and
// swallowed since the entry expires server-side anyway.
func (s *Service) Remove(ctx context.Context, tempID string) {
	if tempID == "" {
		return
	}
	if err := s.api.DeleteStaged(ctx, tempID); err != nil {
		s.log.Warn(ctx, "staged file cleanup failed", "tempId", tempID, "error", err)
	}
}

// InFlight reports whether any staging upload is outstanding. The wizard
// blocks Next() while this is true.
func (s *Service) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inflight) > 0
}
