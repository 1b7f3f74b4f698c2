package view

import (
	"github.com/mmynk/vibewalk/internal/models"
	"github.com/mmynk/vibewalk/internal/payment"
	"github.com/mmynk/vibewalk/internal/session"
)

// TransportBadge describes the leg from the previous stop.
type TransportBadge struct {
	Method   string `json:"method"`
	Duration string `json:"duration"`
	Cost     string `json:"cost"`
}

// StopCard is one stop of the working route as shown in the planner.
type StopCard struct {
	Index       int             `json:"index"`
	Name        string          `json:"name"`
	Description string          `json:"desc"`
	Price       string          `json:"price"`
	Image       string          `json:"image,omitempty"`
	Transport   *TransportBadge `json:"transport_from_prev,omitempty"`
	// BookableSGD is the ticket amount that can be checked out, 0 if none.
	BookableSGD int64  `json:"bookable_sgd,omitempty"`
	PaymentLink string `json:"payment_link,omitempty"`
}

// SearchCard is the pending search result offered for adding to the route.
type SearchCard struct {
	Name        string `json:"name"`
	Description string `json:"desc"`
	Image       string `json:"image,omitempty"`
	HasCoords   bool   `json:"has_coords"`
}

// Itinerary is everything the planner page renders for one session.
type Itinerary struct {
	StartLocation  string          `json:"start_location"`
	Mood           string          `json:"mood"`
	Summary        string          `json:"summary"`
	Cards          []StopCard      `json:"cards"`
	EstimatedTotal int64           `json:"estimated_total_sgd"`
	Sandbox        bool            `json:"sandbox"`
	Search         *SearchCard     `json:"search,omitempty"`
	Map            Map             `json:"map"`
	Notice         *session.Notice `json:"notice,omitempty"`
}

func badge(t *models.Transport) *TransportBadge {
	if t == nil {
		return nil
	}
	b := &TransportBadge{Method: t.Method, Duration: t.Duration, Cost: t.Cost}
	if b.Method == "" {
		b.Method = "步行"
	}
	if b.Duration == "" {
		b.Duration = "5 mins"
	}
	if b.Cost == "" {
		b.Cost = "Free"
	}
	return b
}

// BuildItinerary renders a session's working trip.
func BuildItinerary(it session.Itinerary, sandbox bool) Itinerary {
	v := Itinerary{
		StartLocation:  it.StartName,
		Mood:           it.Mood,
		Summary:        it.Summary,
		Cards:          make([]StopCard, 0, len(it.Route)),
		EstimatedTotal: payment.EstimateTotal(it.Route),
		Sandbox:        sandbox,
		Map:            BuildMap(it.Route, it.Mood, it.SearchResult),
	}

	for i, s := range it.Route {
		price := s.Price
		if price == "" {
			price = "Free"
		}
		v.Cards = append(v.Cards, StopCard{
			Index:       i + 1,
			Name:        s.Name,
			Description: s.Description,
			Price:       price,
			Image:       s.Image,
			Transport:   badge(s.Transport),
			BookableSGD: payment.TicketPrice(price),
			PaymentLink: it.PaymentLinks[i],
		})
	}

	if r := it.SearchResult; r != nil {
		v.Search = &SearchCard{
			Name:        r.Name,
			Description: r.Description,
			Image:       r.Image,
			HasCoords:   r.Coords != nil,
		}
	}
	return v
}
