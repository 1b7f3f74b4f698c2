// Package itinerary turns trip parameters into walking routes by prompting an
// external language model and validating its JSON answer.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/vibewalk/internal/models"
)

// ErrNotFound is returned by SearchPlace when no usable place came back.
var ErrNotFound = errors.New("no matching place found")

// DefaultTimeout bounds one completion call.
const DefaultTimeout = 60 * time.Second

// RouteRequest holds the trip parameters a route is generated from.
type RouteRequest struct {
	StartName        string
	StartCoords      models.Coordinates
	Mood             string
	DurationHours    float64
	IncludeMuseums   bool
	CustomPreference string
}

// Composer generates itineraries through a Completer.
type Composer struct {
	completer Completer
	timeout   time.Duration
	logger    *slog.Logger
}

// NewComposer creates a Composer. A zero timeout means DefaultTimeout.
func NewComposer(completer Completer, timeout time.Duration, logger *slog.Logger) *Composer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{completer: completer, timeout: timeout, logger: logger}
}

// GenerateRoute asks the model for a 3-5 stop route and its summary.
// On any failure it returns no stops, an empty summary and the cause; callers
// show the error as a notice and keep their current state.
func (c *Composer) GenerateRoute(ctx context.Context, req RouteRequest) ([]models.Stop, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := c.completer.Complete(ctx, routeSystemPrompt, buildRoutePrompt(req))
	if err != nil {
		c.logger.Warn("Route generation failed", "mood", req.Mood, "start", req.StartName, "error", err)
		return nil, "", fmt.Errorf("route generation failed: %w", err)
	}

	stops, summary, err := parseRoute(text)
	if err != nil {
		c.logger.Warn("Route generation returned unusable payload", "mood", req.Mood, "error", err)
		return nil, "", fmt.Errorf("route generation failed: %w", err)
	}

	c.logger.Info("Route generated",
		"mood", req.Mood,
		"start", req.StartName,
		"stops", len(stops),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return stops, summary, nil
}

// SearchPlace asks the model for one place matching query. Failures are
// logged and reported as ErrNotFound.
func (c *Composer) SearchPlace(ctx context.Context, query, mood string) (*models.Stop, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.completer.Complete(ctx, searchSystemPrompt, buildSearchPrompt(query, mood))
	if err != nil {
		c.logger.Warn("Place search failed", "query", query, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	stop, err := parsePlace(text)
	if err != nil {
		c.logger.Warn("Place search returned unusable payload", "query", query, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	c.logger.Info("Place found", "query", query, "name", stop.Name)
	return stop, nil
}
