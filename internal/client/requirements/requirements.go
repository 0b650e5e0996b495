// Package requirements resolves the document requirement list for the
// application form: a static fallback, replaced wholesale by the backend's
// list when the registration window carries a non-empty one.
package requirements

import (
	"context"
	"sync"
	"time"

	"github.com/beswanhub/beswan-cli/internal/client/models"
)

// Fallback is the built-in requirement list, used when the backend does not
// provide one.
func Fallback() []models.DocumentRequirement {
	return []models.DocumentRequirement{
		{Key: "ktmKtp", Title: "KTM/KTP", Desc: "Scan of your student and national ID cards in one PDF", Required: true, Kind: models.DocumentKindFile},
		{Key: "transkrip", Title: "Transkrip Nilai", Desc: "Latest academic transcript", Required: true, Kind: models.DocumentKindFile},
		{Key: "pasFoto", Title: "Pas Foto", Desc: "Recent 3x4 photograph", Required: true, Kind: models.DocumentKindFile},
		{Key: "suratRekomendasi", Title: "Surat Rekomendasi", Desc: "Recommendation letter from a lecturer", Required: false, Kind: models.DocumentKindFile},
		{Key: "videoUrl", Title: "Video Profil", Desc: "Link to a short self-introduction video", Required: true, Kind: models.DocumentKindURL},
	}
}

// Resolve applies the replacement rule: a non-empty server list fully
// replaces the fallback, with no merging.
func Resolve(win *models.RegistrationWindow) []models.DocumentRequirement {
	if win != nil && len(win.Documents) > 0 {
		return win.Documents
	}
	return Fallback()
}

// Fetcher loads the registration window from the backend.
type Fetcher func(ctx context.Context) (*models.RegistrationWindow, error)

// Cache holds the registration window for a bounded time so the three
// selection screens and the wizard don't refetch on every view. It is an
// explicit object owned by the caller, with an injected TTL and clock.
type Cache struct {
	fetch Fetcher
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	window    *models.RegistrationWindow
	fetchedAt time.Time
}

// NewCache returns a cache around fetch with the given TTL.
func NewCache(fetch Fetcher, ttl time.Duration) *Cache {
	return &Cache{fetch: fetch, ttl: ttl, now: time.Now}
}

// WithClock overrides the cache's time source.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Window returns the cached registration window, refetching when the entry
// is stale or absent. Fetch errors are returned as-is; a stale value is
// never served in place of an error.
func (c *Cache) Window(ctx context.Context) (*models.RegistrationWindow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.window != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.window, nil
	}

	win, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.window = win
	c.fetchedAt = c.now()
	return win, nil
}

// Invalidate drops the cached entry.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window = nil
}

// Requirements returns the resolved requirement list for the current window.
func (c *Cache) Requirements(ctx context.Context) ([]models.DocumentRequirement, error) {
	win, err := c.Window(ctx)
	if err != nil {
		return nil, err
	}
	return Resolve(win), nil
}
