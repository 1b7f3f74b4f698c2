package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	routeSystemPrompt  = "You are a Singapore travel guide. Output valid JSON only."
	searchSystemPrompt = "Output valid JSON. Use Chinese for descriptions."
)

// buildRoutePrompt renders the user prompt for a full itinerary.
// The wording is tunable; the JSON contract it asks for is not.
func buildRoutePrompt(req RouteRequest) string {
	// json.Marshal sorts map keys, so the prompt is stable across calls.
	prices, _ := json.Marshal(TicketPrices)

	var b strings.Builder
	b.WriteString("Plan a Singapore walking route.\n")
	fmt.Fprintf(&b, "Start: %s (%.4f, %.4f)\n", req.StartName, req.StartCoords.Lat(), req.StartCoords.Lon())
	fmt.Fprintf(&b, "Mood: %s\n", req.Mood)
	fmt.Fprintf(&b, "Duration: %.1f hours.\n", req.DurationHours)
	if req.IncludeMuseums {
		b.WriteString("Include at least one museum or heritage site.\n")
	}
	if pref := strings.TrimSpace(req.CustomPreference); pref != "" {
		fmt.Fprintf(&b, "User Specific Preferences: %s\n", pref)
	}
	fmt.Fprintf(&b, "\nReference Prices: %s\n\n", prices)
	b.WriteString(`Return JSON with key "stops" (list of objects) and "summary":
- "stops": each object has
    - "name": place name
    - "coords": [lat, lon] (accurate GPS)
    - "desc": short engaging description in Chinese
    - "price": "Free" or a price from Reference Prices (e.g. "SGD $53"); estimate if missing
    - "transport_from_prev": null for the first stop, otherwise an object describing how to get here from the previous stop:
        - "method": 步行 / 巴士 / 地铁 / Taxi
        - "duration": e.g. "10 mins"
        - "cost": e.g. "SGD $0" or "SGD $2.50"
- "summary": one sentence in Chinese describing the vibe of the trip.

Ensure 3-5 stops.`)
	return b.String()
}

// buildSearchPrompt renders the user prompt for a single place recommendation.
func buildSearchPrompt(query, mood string) string {
	return fmt.Sprintf(`Recommend ONE place in Singapore for: %q
Current Mood: %s

Return JSON:
- "name": place name
- "coords": [lat, lon]
- "desc": why it fits (MUST be in Chinese)`, query, mood)
}
