package itinerary

import "github.com/mmynk/vibewalk/internal/models"

// TicketPrices are reference admission prices (2025 estimates) handed to the
// model so that paid attractions carry realistic labels.
var TicketPrices = map[string]string{
	"Gardens by the Bay":           "SGD $53",
	"Flower Dome":                  "SGD $32",
	"Cloud Forest":                 "SGD $32",
	"Marina Bay Sands Skypark":     "SGD $32",
	"ArtScience Museum":            "SGD $25",
	"National Museum of Singapore": "SGD $15",
	"National Gallery Singapore":   "SGD $20",
	"Singapore Flyer":              "SGD $40",
	"Singapore Zoo":                "SGD $48",
	"Night Safari":                 "SGD $55",
	"River Wonders":                "SGD $42",
	"Bird Paradise":                "SGD $48",
	"S.E.A. Aquarium":              "SGD $44",
	"Universal Studios Singapore":  "SGD $88",
	"Asian Civilisations Museum":   "SGD $15",
}

// StartLocation is a named starting point offered to the user.
type StartLocation struct {
	Name   string
	Coords models.Coordinates
}

// StartLocations are the supported starting points, in display order.
var StartLocations = []StartLocation{
	{Name: "NUS (National University of Singapore)", Coords: models.Coordinates{1.2966, 103.7764}},
	{Name: "MBS (Marina Bay Sands)", Coords: models.Coordinates{1.2847, 103.8610}},
	{Name: "Changi Airport", Coords: models.Coordinates{1.3644, 103.9915}},
	{Name: "Orchard Road", Coords: models.Coordinates{1.3048, 103.8318}},
	{Name: "Chinatown", Coords: models.Coordinates{1.2842, 103.8436}},
}

// LookupStart returns the start location with the given name.
func LookupStart(name string) (StartLocation, bool) {
	for _, s := range StartLocations {
		if s.Name == name {
			return s, true
		}
	}
	return StartLocation{}, false
}
