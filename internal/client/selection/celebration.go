package selection

import (
	"context"

	"github.com/beswanhub/beswan-cli/internal/client/repositories/kv"
	"github.com/beswanhub/beswan-cli/internal/logging"
)

const celebrationNamespace = "celebration"

// CelebrationStore persists the "passed administration" interstitial flag
// per application id, so it fires exactly once per installation. Like the
// draft, this is a convenience: storage failures degrade to re-showing the
// interstitial, never to an error.
type CelebrationStore struct {
	repo kv.Repository
	log  logging.Logger
}

// NewCelebrationStore returns a store over the client-local KV repository.
func NewCelebrationStore(repo kv.Repository, log logging.Logger) *CelebrationStore {
	return &CelebrationStore{repo: repo, log: log}
}

// Seen reports whether the interstitial has already been shown for the
// application.
func (s *CelebrationStore) Seen(ctx context.Context, applicationID string) bool {
	raw, err := s.repo.Get(ctx, celebrationNamespace, applicationID)
	if err != nil {
		s.log.Warn(ctx, "celebration flag read failed", "applicationId", applicationID, "error", err)
		return false
	}
	return raw != nil
}

// MarkSeen records that the interstitial was shown.
func (s *CelebrationStore) MarkSeen(ctx context.Context, applicationID string) {
	if err := s.repo.Set(ctx, celebrationNamespace, applicationID, []byte("1")); err != nil {
		s.log.Warn(ctx, "celebration flag write failed", "applicationId", applicationID, "error", err)
	}
}
