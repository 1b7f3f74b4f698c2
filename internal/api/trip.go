package api

import "github.com/mmynk/vibewalk/internal/view"

type GenerateRouteRequest struct {
	StartLocation    string  `json:"start_location"`
	Mood             string  `json:"mood"`
	DurationHours    float64 `json:"duration_hours"`
	IncludeMuseums   bool    `json:"include_museums"`
	CustomPreference string  `json:"custom_preference,omitempty"`
}

type GenerateRouteResponse struct {
	Itinerary view.Itinerary `json:"itinerary"`
}

type SearchPlaceRequest struct {
	Query string `json:"query"`
}

type SearchPlaceResponse struct {
	Found     bool           `json:"found"`
	Itinerary view.Itinerary `json:"itinerary"`
}

type AddSearchResultRequest struct{}

type AddSearchResultResponse struct {
	Added     string         `json:"added"`
	Itinerary view.Itinerary `json:"itinerary"`
}

type ClearSearchRequest struct{}

type ClearSearchResponse struct {
	Itinerary view.Itinerary `json:"itinerary"`
}

type GetItineraryRequest struct{}

type GetItineraryResponse struct {
	Itinerary view.Itinerary `json:"itinerary"`
}

type LoadPlanRequest struct {
	PlanID string `json:"plan_id"`
}

type LoadPlanResponse struct {
	Itinerary view.Itinerary `json:"itinerary"`
}

// BookTicketRequest selects a stop of the working route by zero-based index.
type BookTicketRequest struct {
	StopIndex int `json:"stop_index"`
}

type BookTicketResponse struct {
	PaymentURL string         `json:"payment_url"`
	Itinerary  view.Itinerary `json:"itinerary"`
}

type ListStartLocationsRequest struct{}

type StartLocation struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type ListStartLocationsResponse struct {
	Locations     []StartLocation `json:"locations"`
	Moods         []string        `json:"moods"`
	PostTripMoods []string        `json:"post_trip_moods"`
}
