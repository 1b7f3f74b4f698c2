package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/vibewalk/internal/api"
	"github.com/mmynk/vibewalk/internal/itinerary"
	"github.com/mmynk/vibewalk/internal/metrics"
	"github.com/mmynk/vibewalk/internal/models"
	"github.com/mmynk/vibewalk/internal/payment"
	"github.com/mmynk/vibewalk/internal/session"
	"github.com/mmynk/vibewalk/internal/storage"
	"github.com/mmynk/vibewalk/internal/view"
)

const (
	MinDurationHours     = 1.0
	MaxDurationHours     = 6.0
	DefaultDurationHours = 2.5

	// Price label for places added from search.
	searchResultPrice = "Check On-site"
)

// Transport leg assumed for a place added from search.
var searchResultTransport = models.Transport{Method: "Taxi/Grab", Duration: "15 mins", Cost: "Est. SGD $12"}

// Notices shown to the user.
const (
	noticeRouteFailed   = "路线生成失败，请稍后再试 (Route generation failed, please try again)"
	noticeNoPlace       = "没有找到合适的地点 (No matching place found)"
	noticePaymentFailed = "支付链接创建失败 (Payment Error)"
	noticePaid          = "🎉 支付成功！您的门票已确认。(Payment Successful!)"
	noticeCanceled      = "❌ 支付已取消。(Payment Canceled)"
)

// RouteComposer produces itineraries and single-place recommendations.
type RouteComposer interface {
	GenerateRoute(ctx context.Context, req itinerary.RouteRequest) ([]models.Stop, string, error)
	SearchPlace(ctx context.Context, query, mood string) (*models.Stop, error)
}

// ImageEnricher attaches photos to places.
type ImageEnricher interface {
	Enrich(ctx context.Context, stops []models.Stop) []models.Stop
	FetchImage(ctx context.Context, name string) string
}

// TripService implements the TripService RPC interface: the commands behind
// the trip planner page, operating on the caller's session.
type TripService struct {
	composer  RouteComposer
	images    ImageEnricher
	checkout  payment.Checkout
	plans     storage.PlanStore
	publicURL string
	logger    *slog.Logger
}

// NewTripService creates a trip service. publicURL is the externally visible
// base URL used for payment redirects.
func NewTripService(composer RouteComposer, images ImageEnricher, checkout payment.Checkout, plans storage.PlanStore, publicURL string, logger *slog.Logger) *TripService {
	return &TripService{
		composer:  composer,
		images:    images,
		checkout:  checkout,
		plans:     plans,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

func (s *TripService) render(st *session.State) view.Itinerary {
	return view.BuildItinerary(st.Snapshot(), s.checkout.IsTestMode())
}

func withNotice(v view.Itinerary, level, message string) view.Itinerary {
	v.Notice = &session.Notice{Level: level, Message: message}
	return v
}

// GenerateRoute asks for a new route and makes it the session's working trip.
// Provider failures leave the session untouched and come back as a notice.
func (s *TripService) GenerateRoute(ctx context.Context, req *connect.Request[api.GenerateRouteRequest]) (*connect.Response[api.GenerateRouteResponse], error) {
	_, st, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	start, ok := itinerary.LookupStart(req.Msg.StartLocation)
	if !ok {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown start location %q", req.Msg.StartLocation))
	}
	mood := req.Msg.Mood
	if mood == "" {
		mood = models.MoodChill
	}
	if !models.IsTripMood(mood) {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown mood %q", mood))
	}
	hours := req.Msg.DurationHours
	if hours == 0 {
		hours = DefaultDurationHours
	}
	if hours < MinDurationHours || hours > MaxDurationHours {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("duration must be between %.0f and %.0f hours", MinDurationHours, MaxDurationHours))
	}

	stops, summary, err := s.composer.GenerateRoute(ctx, itinerary.RouteRequest{
		StartName:        start.Name,
		StartCoords:      start.Coords,
		Mood:             mood,
		DurationHours:    hours,
		IncludeMuseums:   req.Msg.IncludeMuseums,
		CustomPreference: req.Msg.CustomPreference,
	})
	metrics.RecordGeneration("route", err == nil)
	if err != nil {
		return connect.NewResponse(&api.GenerateRouteResponse{
			Itinerary: withNotice(s.render(st), "error", noticeRouteFailed),
		}), nil
	}

	stops = s.images.Enrich(ctx, stops)
	st.SetRoute(stops, summary, mood, start.Name)
	st.ClearSearch()

	s.logger.Info("Route ready", "start", start.Name, "mood", mood, "stops", len(stops))
	return connect.NewResponse(&api.GenerateRouteResponse{Itinerary: s.render(st)}), nil
}

// SearchPlace recommends one place for a free-text query and keeps it as the
// session's pending search result.
func (s *TripService) SearchPlace(ctx context.Context, req *connect.Request[api.SearchPlaceRequest]) (*connect.Response[api.SearchPlaceResponse], error) {
	_, st, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.TrimSpace(req.Msg.Query)
	if query == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("query is required"))
	}

	mood := st.Snapshot().Mood
	if mood == "" {
		mood = models.MoodChill
	}

	place, err := s.composer.SearchPlace(ctx, query, mood)
	metrics.RecordGeneration("search", err == nil)
	if err != nil {
		return connect.NewResponse(&api.SearchPlaceResponse{
			Itinerary: withNotice(s.render(st), "warning", noticeNoPlace),
		}), nil
	}

	place.Image = s.images.FetchImage(ctx, place.Name)
	st.SetSearchResult(place)

	return connect.NewResponse(&api.SearchPlaceResponse{Found: true, Itinerary: s.render(st)}), nil
}

// AddSearchResult appends the pending search result to the working route.
func (s *TripService) AddSearchResult(ctx context.Context, req *connect.Request[api.AddSearchResultRequest]) (*connect.Response[api.AddSearchResultResponse], error) {
	_, st, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	stop, ok := st.AppendSearchResult(searchResultTransport, searchResultPrice)
	if !ok {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("no search result to add"))
	}

	return connect.NewResponse(&api.AddSearchResultResponse{Added: stop.Name, Itinerary: s.render(st)}), nil
}

// ClearSearch drops the pending search result.
func (s *TripService) ClearSearch(ctx context.Context, req *connect.Request[api.ClearSearchRequest]) (*connect.Response[api.ClearSearchResponse], error) {
	_, st, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}
	st.ClearSearch()
	return connect.NewResponse(&api.ClearSearchResponse{Itinerary: s.render(st)}), nil
}

// GetItinerary renders the working trip. A pending one-shot notice, such as
// a payment result, is delivered once and then cleared.
func (s *TripService) GetItinerary(ctx context.Context, req *connect.Request[api.GetItineraryRequest]) (*connect.Response[api.GetItineraryResponse], error) {
	_, st, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}
	v := s.render(st)
	v.Notice = st.TakeNotice()
	return connect.NewResponse(&api.GetItineraryResponse{Itinerary: v}), nil
}

// LoadPlan copies a saved plan into the session as the working trip.
func (s *TripService) LoadPlan(ctx context.Context, req *connect.Request[api.LoadPlanRequest]) (*connect.Response[api.LoadPlanResponse], error) {
	_, st, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.GetPlan(ctx, req.Msg.PlanID)
	if err != nil {
		return nil, storageError(err)
	}

	st.SetRoute(plan.Stops, plan.Summary, plan.Mood, plan.StartLocation)
	s.logger.Info("Plan loaded", "plan_id", plan.ID, "owner", plan.OwnerUsername)
	return connect.NewResponse(&api.LoadPlanResponse{Itinerary: s.render(st)}), nil
}

// BookTicket creates a checkout session for one paid stop of the working route.
func (s *TripService) BookTicket(ctx context.Context, req *connect.Request[api.BookTicketRequest]) (*connect.Response[api.BookTicketResponse], error) {
	sessionID, st, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	stop, ok := st.StopAt(req.Msg.StopIndex)
	if !ok {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("no stop at index %d", req.Msg.StopIndex))
	}
	amount := payment.TicketPrice(stop.Price)
	if amount <= 0 {
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("%q has no ticket to book", stop.Name))
	}

	paymentURL, err := s.checkout.CreateCheckout(ctx, payment.CheckoutRequest{
		ItemName:   "Ticket for " + stop.Name,
		AmountSGD:  amount,
		SuccessURL: s.returnURL(sessionID, "success"),
		CancelURL:  s.returnURL(sessionID, "canceled"),
	})
	if err != nil {
		s.logger.Warn("Checkout failed", "stop", stop.Name, "amount_sgd", amount, "error", err)
		return connect.NewResponse(&api.BookTicketResponse{
			Itinerary: withNotice(s.render(st), "error", noticePaymentFailed+": "+err.Error()),
		}), nil
	}

	st.SetPaymentLink(req.Msg.StopIndex, paymentURL)
	s.logger.Info("Checkout created", "stop", stop.Name, "amount_sgd", amount)
	return connect.NewResponse(&api.BookTicketResponse{PaymentURL: paymentURL, Itinerary: s.render(st)}), nil
}

func (s *TripService) returnURL(sessionID, outcome string) string {
	q := url.Values{}
	q.Set("session", sessionID)
	q.Set(outcome, "true")
	return s.publicURL + CheckoutReturnPath + "?" + q.Encode()
}

// ListStartLocations returns the choices offered by the planner form.
func (s *TripService) ListStartLocations(ctx context.Context, req *connect.Request[api.ListStartLocationsRequest]) (*connect.Response[api.ListStartLocationsResponse], error) {
	locations := make([]api.StartLocation, 0, len(itinerary.StartLocations))
	for _, l := range itinerary.StartLocations {
		locations = append(locations, api.StartLocation{Name: l.Name, Lat: l.Coords.Lat(), Lon: l.Coords.Lon()})
	}
	return connect.NewResponse(&api.ListStartLocationsResponse{
		Locations:     locations,
		Moods:         models.TripMoods,
		PostTripMoods: models.PostTripMoods,
	}), nil
}
