// Package places attaches a representative photo to each stop of a route.
//
// Lookups never fail: any provider problem yields a placeholder image that
// carries the place name. Successful results are cached in-process.
package places

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/vibewalk/internal/metrics"
	"github.com/mmynk/vibewalk/internal/models"
)

const (
	// DefaultTimeout bounds a single photo search.
	DefaultTimeout = 5 * time.Second
	// Workers is the maximum number of concurrent photo searches per route.
	Workers = 5
	// CacheTTL is how long a found photo URL is reused.
	CacheTTL = 24 * time.Hour

	placeholderURL = "https://via.placeholder.com/400x300?text="
)

// Placeholder returns the fallback image URL for a place.
func Placeholder(name string) string {
	return placeholderURL + url.QueryEscape(name)
}

// Lookup resolves photo URLs for place names.
type Lookup struct {
	searcher PhotoSearcher
	timeout  time.Duration
	cache    *cache.Cache
	logger   *slog.Logger
}

// NewLookup creates a Lookup. A zero timeout means DefaultTimeout.
func NewLookup(searcher PhotoSearcher, timeout time.Duration, logger *slog.Logger) *Lookup {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Lookup{
		searcher: searcher,
		timeout:  timeout,
		cache:    cache.New(CacheTTL, time.Hour),
		logger:   logger,
	}
}

// FetchImage returns a photo URL for the place, or its placeholder.
func (l *Lookup) FetchImage(ctx context.Context, name string) string {
	if cached, ok := l.cache.Get(name); ok {
		metrics.RecordImageLookup("cached")
		return cached.(string)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	photo, err := l.searcher.SearchPhoto(ctx, name+" Singapore")
	if err != nil {
		metrics.RecordImageLookup("placeholder")
		l.logger.Debug("Photo lookup fell back to placeholder", "place", name, "error", err)
		return Placeholder(name)
	}

	metrics.RecordImageLookup("found")
	l.cache.Set(name, photo, cache.DefaultExpiration)
	return photo
}

// Enrich returns a copy of stops with Image set on every stop that lacks one.
// Up to Workers lookups run at once; the call returns when all are done and
// keeps the input order. Lookups are not cancelled by the caller's context.
func (l *Lookup) Enrich(ctx context.Context, stops []models.Stop) []models.Stop {
	out := make([]models.Stop, len(stops))
	copy(out, stops)

	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(Workers)
	for i := range out {
		if out[i].Image != "" {
			continue
		}
		g.Go(func() error {
			out[i].Image = l.FetchImage(ctx, out[i].Name)
			return nil
		})
	}
	_ = g.Wait()

	l.logger.Debug("Stops enriched", "stops", len(out), "duration_ms", time.Since(start).Milliseconds())
	return out
}
