package models

// Coordinates is a [latitude, longitude] pair.
type Coordinates [2]float64

// Lat returns the latitude.
func (c Coordinates) Lat() float64 { return c[0] }

// Lon returns the longitude.
func (c Coordinates) Lon() float64 { return c[1] }

// Valid reports whether both values are inside WGS84 bounds.
func (c Coordinates) Valid() bool {
	return c[0] >= -90 && c[0] <= 90 && c[1] >= -180 && c[1] <= 180
}

// Transport describes how to reach a stop from the previous one.
type Transport struct {
	// Method is the travel mode, e.g. "步行", "地铁", "Taxi/Grab".
	Method string `json:"method"`

	// Duration is a free-text label such as "10 mins".
	Duration string `json:"duration"`

	// Cost is a free-text label such as "SGD $2.50".
	Cost string `json:"cost"`
}

// Stop is one point of interest in an itinerary.
type Stop struct {
	Name string `json:"name"`

	// Coords is nil when the location is unknown; such stops are not drawn on the map.
	Coords *Coordinates `json:"coords,omitempty"`

	// Description is the provider-written blurb (Chinese text).
	Description string `json:"desc"`

	// Price is a label like "Free" or "SGD $53".
	Price string `json:"price"`

	// Transport is nil for the first stop.
	Transport *Transport `json:"transport_from_prev,omitempty"`

	// Image is the photo URL attached during enrichment.
	Image string `json:"image,omitempty"`
}

// Review holds the post-trip fields of a plan.
type Review struct {
	PostMood   string
	ReviewText string
	Rating     int
}

// Plan is a saved, shareable itinerary authored by a user.
type Plan struct {
	// ID is the unique identifier for the plan (UUID format).
	ID string

	// OwnerID is the user who saved the plan.
	OwnerID string

	// OwnerUsername is denormalized for the community feed.
	OwnerUsername string

	Mood          string
	StartLocation string

	// Stops are in walking order and immutable after creation.
	Stops []Stop

	Summary string

	// Review is nil until the owner reviews the plan.
	Review *Review

	// CreatedAt is the Unix timestamp when the plan was saved.
	CreatedAt int64
}

// StopNames returns the stop names in walking order.
func (p *Plan) StopNames() []string {
	names := make([]string, len(p.Stops))
	for i, s := range p.Stops {
		names[i] = s.Name
	}
	return names
}
