// Package draft persists a resumable snapshot of the application wizard in
// the client-local store, so an interrupted session picks up where it left
// off.
//
// The draft is a convenience, not a correctness requirement: storage
// failures are logged and swallowed, corrupted or expired entries are
// deleted on read, and restore simply reports "no draft".
package draft

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/beswanhub/beswan-cli/internal/client/models"
	"github.com/beswanhub/beswan-cli/internal/client/repositories/kv"
	"github.com/beswanhub/beswan-cli/internal/logging"
)

const namespace = "draft"

const (
	// DefaultDebounce collapses rapid successive saves into the last write.
	DefaultDebounce = 800 * time.Millisecond

	// DefaultMaxAge is how long a draft stays restorable.
	DefaultMaxAge = 7 * 24 * time.Hour
)

// Store saves and restores one form's draft, debounced.
type Store struct {
	repo     kv.Repository
	form     string
	debounce time.Duration
	maxAge   time.Duration
	log      logging.Logger
	now      func() time.Time

	mu      sync.Mutex
	timer   *time.Timer
	pending *models.FormDraft
}

// Option configures a Store.
type Option func(*Store)

// WithDebounce overrides the save debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) { s.debounce = d }
}

// WithMaxAge overrides the draft expiry window.
func WithMaxAge(d time.Duration) Option {
	return func(s *Store) { s.maxAge = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a Store for the named form.
func NewStore(repo kv.Repository, form string, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		repo:     repo,
		form:     form,
		debounce: DefaultDebounce,
		maxAge:   DefaultMaxAge,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore reads the saved draft. It returns nil when there is no draft, when
// the stored entry is corrupted (the entry is deleted), or when the draft is
// older than the max age (also deleted). Consent-like keys are stripped on
// the way out so a restored form is never pre-consented.
func (s *Store) Restore(ctx context.Context) *models.FormDraft {
	raw, err := s.repo.Get(ctx, namespace, s.form)
	if err != nil {
		s.log.Warn(ctx, "draft read failed", "form", s.form, "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	var d models.FormDraft
	if err := json.Unmarshal(raw, &d); err != nil {
		s.log.Warn(ctx, "discarding corrupted draft", "form", s.form, "error", err)
		s.delete(ctx)
		return nil
	}

	age := s.now().Sub(time.UnixMilli(d.SavedAt))
	if age > s.maxAge {
		s.log.Info(ctx, "discarding expired draft", "form", s.form, "age", age)
		s.delete(ctx)
		return nil
	}

	for name := range d.Form {
		if excludedName(name) {
			delete(d.Form, name)
		}
	}
	return &d
}

// Save schedules a debounced write of the snapshot. Rapid successive calls
// collapse into the last one.
func (s *Store) Save(d models.FormDraft) {
	snapshot := s.sanitize(d)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = &snapshot
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flushPending)
}

// SaveNow writes the snapshot immediately, bypassing the debounce. Used when
// the host is about to exit and a pending timer would be lost.
func (s *Store) SaveNow(ctx context.Context, d models.FormDraft) {
	snapshot := s.sanitize(d)

	s.mu.Lock()
	s.cancelTimer()
	s.mu.Unlock()

	s.write(ctx, snapshot)
}

// FlushOnExit writes any pending debounced snapshot right away. The host
// wires this to its shutdown path.
func (s *Store) FlushOnExit(ctx context.Context) {
	s.mu.Lock()
	pending := s.pending
	s.cancelTimer()
	s.pending = nil
	s.mu.Unlock()

	if pending != nil {
		s.write(ctx, *pending)
	}
}

// Clear removes the draft and cancels any pending save.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cancelTimer()
	s.pending = nil
	s.mu.Unlock()

	s.delete(ctx)
}

func (s *Store) sanitize(d models.FormDraft) models.FormDraft {
	d.Form = sanitizeForm(d.Form)
	return d
}

// cancelTimer must be called with s.mu held.
func (s *Store) cancelTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Store) flushPending() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()

	if pending != nil {
		s.write(context.Background(), *pending)
	}
}

func (s *Store) write(ctx context.Context, d models.FormDraft) {
	d.SavedAt = s.now().UnixMilli()

	raw, err := json.Marshal(d)
	if err != nil {
		s.log.Warn(ctx, "draft serialization failed", "form", s.form, "error", err)
		return
	}
	if err := s.repo.Set(ctx, namespace, s.form, raw); err != nil {
		s.log.Warn(ctx, "draft write failed", "form", s.form, "error", err)
	}
}

func (s *Store) delete(ctx context.Context) {
	if err := s.repo.Delete(ctx, namespace, s.form); err != nil {
		s.log.Warn(ctx, "draft delete failed", "form", s.form, "error", err)
	}
}
