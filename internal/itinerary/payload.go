package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/vibewalk/internal/models"
)

const (
	MinStops = 3
	MaxStops = 5
)

// ErrInvalidPayload marks a provider answer that does not match the itinerary contract.
var ErrInvalidPayload = errors.New("invalid itinerary payload")

type routePayload struct {
	Stops   []stopPayload `json:"stops"`
	Summary *string       `json:"summary"`
}

type stopPayload struct {
	Name      string            `json:"name"`
	Coords    []float64         `json:"coords"`
	Desc      *string           `json:"desc"`
	Price     *string           `json:"price"`
	Transport *models.Transport `json:"transport_from_prev"`
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, fmt.Sprintf(format, args...))
}

// stripFences removes a markdown code fence some models wrap JSON in.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func parseCoords(raw []float64) (*models.Coordinates, error) {
	if len(raw) != 2 {
		return nil, invalid("coords must be [lat, lon], got %d values", len(raw))
	}
	c := models.Coordinates{raw[0], raw[1]}
	if !c.Valid() {
		return nil, invalid("coords %v out of range", raw)
	}
	return &c, nil
}

// parseRoute decodes and validates a full itinerary answer. Any violation
// rejects the whole answer.
func parseRoute(text string) ([]models.Stop, string, error) {
	var payload routePayload
	if err := json.Unmarshal([]byte(stripFences(text)), &payload); err != nil {
		return nil, "", invalid("decode: %v", err)
	}
	if payload.Summary == nil {
		return nil, "", invalid("missing summary")
	}
	if n := len(payload.Stops); n < MinStops || n > MaxStops {
		return nil, "", invalid("expected %d-%d stops, got %d", MinStops, MaxStops, n)
	}

	stops := make([]models.Stop, len(payload.Stops))
	for i, p := range payload.Stops {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, "", invalid("stop %d has no name", i)
		}
		if p.Desc == nil {
			return nil, "", invalid("stop %q has no desc", name)
		}
		if p.Coords == nil {
			return nil, "", invalid("stop %q has no coords", name)
		}
		coords, err := parseCoords(p.Coords)
		if err != nil {
			return nil, "", fmt.Errorf("stop %q: %w", name, err)
		}

		stop := models.Stop{
			Name:        name,
			Coords:      coords,
			Description: *p.Desc,
			Price:       "Free",
		}
		if p.Price != nil && strings.TrimSpace(*p.Price) != "" {
			stop.Price = *p.Price
		}
		// The first stop is where the walk begins; it has no inbound leg.
		if i > 0 {
			stop.Transport = p.Transport
		}
		stops[i] = stop
	}

	return stops, *payload.Summary, nil
}

// parsePlace decodes a single place recommendation. Coordinates are optional.
func parsePlace(text string) (*models.Stop, error) {
	var p stopPayload
	if err := json.Unmarshal([]byte(stripFences(text)), &p); err != nil {
		return nil, invalid("decode: %v", err)
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, invalid("place has no name")
	}

	stop := &models.Stop{Name: name}
	if p.Desc != nil {
		stop.Description = *p.Desc
	}
	if p.Coords != nil {
		coords, err := parseCoords(p.Coords)
		if err != nil {
			return nil, err
		}
		stop.Coords = coords
	}
	return stop, nil
}
