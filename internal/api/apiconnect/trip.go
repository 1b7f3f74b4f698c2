package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/vibewalk/internal/api"
)

const TripServiceName = "vibewalk.v1.TripService"

const (
	TripServiceGenerateRouteProcedure      = "/vibewalk.v1.TripService/GenerateRoute"
	TripServiceSearchPlaceProcedure        = "/vibewalk.v1.TripService/SearchPlace"
	TripServiceAddSearchResultProcedure    = "/vibewalk.v1.TripService/AddSearchResult"
	TripServiceClearSearchProcedure        = "/vibewalk.v1.TripService/ClearSearch"
	TripServiceGetItineraryProcedure       = "/vibewalk.v1.TripService/GetItinerary"
	TripServiceLoadPlanProcedure           = "/vibewalk.v1.TripService/LoadPlan"
	TripServiceBookTicketProcedure         = "/vibewalk.v1.TripService/BookTicket"
	TripServiceListStartLocationsProcedure = "/vibewalk.v1.TripService/ListStartLocations"
)

// TripServiceHandler is implemented by the trip service.
type TripServiceHandler interface {
	GenerateRoute(context.Context, *connect.Request[api.GenerateRouteRequest]) (*connect.Response[api.GenerateRouteResponse], error)
	SearchPlace(context.Context, *connect.Request[api.SearchPlaceRequest]) (*connect.Response[api.SearchPlaceResponse], error)
	AddSearchResult(context.Context, *connect.Request[api.AddSearchResultRequest]) (*connect.Response[api.AddSearchResultResponse], error)
	ClearSearch(context.Context, *connect.Request[api.ClearSearchRequest]) (*connect.Response[api.ClearSearchResponse], error)
	GetItinerary(context.Context, *connect.Request[api.GetItineraryRequest]) (*connect.Response[api.GetItineraryResponse], error)
	LoadPlan(context.Context, *connect.Request[api.LoadPlanRequest]) (*connect.Response[api.LoadPlanResponse], error)
	BookTicket(context.Context, *connect.Request[api.BookTicketRequest]) (*connect.Response[api.BookTicketResponse], error)
	ListStartLocations(context.Context, *connect.Request[api.ListStartLocationsRequest]) (*connect.Response[api.ListStartLocationsResponse], error)
}

// NewTripServiceHandler builds an HTTP handler from the service implementation.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	generateRoute := connect.NewUnaryHandler(TripServiceGenerateRouteProcedure, svc.GenerateRoute, opts...)
	searchPlace := connect.NewUnaryHandler(TripServiceSearchPlaceProcedure, svc.SearchPlace, opts...)
	addSearchResult := connect.NewUnaryHandler(TripServiceAddSearchResultProcedure, svc.AddSearchResult, opts...)
	clearSearch := connect.NewUnaryHandler(TripServiceClearSearchProcedure, svc.ClearSearch, opts...)
	getItinerary := connect.NewUnaryHandler(TripServiceGetItineraryProcedure, svc.GetItinerary, opts...)
	loadPlan := connect.NewUnaryHandler(TripServiceLoadPlanProcedure, svc.LoadPlan, opts...)
	bookTicket := connect.NewUnaryHandler(TripServiceBookTicketProcedure, svc.BookTicket, opts...)
	listStartLocations := connect.NewUnaryHandler(TripServiceListStartLocationsProcedure, svc.ListStartLocations, opts...)
	return "/" + TripServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case TripServiceGenerateRouteProcedure:
			generateRoute.ServeHTTP(w, r)
		case TripServiceSearchPlaceProcedure:
			searchPlace.ServeHTTP(w, r)
		case TripServiceAddSearchResultProcedure:
			addSearchResult.ServeHTTP(w, r)
		case TripServiceClearSearchProcedure:
			clearSearch.ServeHTTP(w, r)
		case TripServiceGetItineraryProcedure:
			getItinerary.ServeHTTP(w, r)
		case TripServiceLoadPlanProcedure:
			loadPlan.ServeHTTP(w, r)
		case TripServiceBookTicketProcedure:
			bookTicket.ServeHTTP(w, r)
		case TripServiceListStartLocationsProcedure:
			listStartLocations.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// TripServiceClient is a client for the vibewalk.v1.TripService service.
type TripServiceClient interface {
	GenerateRoute(context.Context, *connect.Request[api.GenerateRouteRequest]) (*connect.Response[api.GenerateRouteResponse], error)
	SearchPlace(context.Context, *connect.Request[api.SearchPlaceRequest]) (*connect.Response[api.SearchPlaceResponse], error)
	AddSearchResult(context.Context, *connect.Request[api.AddSearchResultRequest]) (*connect.Response[api.AddSearchResultResponse], error)
	ClearSearch(context.Context, *connect.Request[api.ClearSearchRequest]) (*connect.Response[api.ClearSearchResponse], error)
	GetItinerary(context.Context, *connect.Request[api.GetItineraryRequest]) (*connect.Response[api.GetItineraryResponse], error)
	LoadPlan(context.Context, *connect.Request[api.LoadPlanRequest]) (*connect.Response[api.LoadPlanResponse], error)
	BookTicket(context.Context, *connect.Request[api.BookTicketRequest]) (*connect.Response[api.BookTicketResponse], error)
	ListStartLocations(context.Context, *connect.Request[api.ListStartLocationsRequest]) (*connect.Response[api.ListStartLocationsResponse], error)
}

// NewTripServiceClient constructs a client for the vibewalk.v1.TripService service.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &tripServiceClient{
		generateRoute:      connect.NewClient[api.GenerateRouteRequest, api.GenerateRouteResponse](httpClient, baseURL+TripServiceGenerateRouteProcedure, opts...),
		searchPlace:        connect.NewClient[api.SearchPlaceRequest, api.SearchPlaceResponse](httpClient, baseURL+TripServiceSearchPlaceProcedure, opts...),
		addSearchResult:    connect.NewClient[api.AddSearchResultRequest, api.AddSearchResultResponse](httpClient, baseURL+TripServiceAddSearchResultProcedure, opts...),
		clearSearch:        connect.NewClient[api.ClearSearchRequest, api.ClearSearchResponse](httpClient, baseURL+TripServiceClearSearchProcedure, opts...),
		getItinerary:       connect.NewClient[api.GetItineraryRequest, api.GetItineraryResponse](httpClient, baseURL+TripServiceGetItineraryProcedure, opts...),
		loadPlan:           connect.NewClient[api.LoadPlanRequest, api.LoadPlanResponse](httpClient, baseURL+TripServiceLoadPlanProcedure, opts...),
		bookTicket:         connect.NewClient[api.BookTicketRequest, api.BookTicketResponse](httpClient, baseURL+TripServiceBookTicketProcedure, opts...),
		listStartLocations: connect.NewClient[api.ListStartLocationsRequest, api.ListStartLocationsResponse](httpClient, baseURL+TripServiceListStartLocationsProcedure, opts...),
	}
}

type tripServiceClient struct {
	generateRoute      *connect.Client[api.GenerateRouteRequest, api.GenerateRouteResponse]
	searchPlace        *connect.Client[api.SearchPlaceRequest, api.SearchPlaceResponse]
	addSearchResult    *connect.Client[api.AddSearchResultRequest, api.AddSearchResultResponse]
	clearSearch        *connect.Client[api.ClearSearchRequest, api.ClearSearchResponse]
	getItinerary       *connect.Client[api.GetItineraryRequest, api.GetItineraryResponse]
	loadPlan           *connect.Client[api.LoadPlanRequest, api.LoadPlanResponse]
	bookTicket         *connect.Client[api.BookTicketRequest, api.BookTicketResponse]
	listStartLocations *connect.Client[api.ListStartLocationsRequest, api.ListStartLocationsResponse]
}

func (c *tripServiceClient) GenerateRoute(ctx context.Context, req *connect.Request[api.GenerateRouteRequest]) (*connect.Response[api.GenerateRouteResponse], error) {
	return c.generateRoute.CallUnary(ctx, req)
}

func (c *tripServiceClient) SearchPlace(ctx context.Context, req *connect.Request[api.SearchPlaceRequest]) (*connect.Response[api.SearchPlaceResponse], error) {
	return c.searchPlace.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddSearchResult(ctx context.Context, req *connect.Request[api.AddSearchResultRequest]) (*connect.Response[api.AddSearchResultResponse], error) {
	return c.addSearchResult.CallUnary(ctx, req)
}

func (c *tripServiceClient) ClearSearch(ctx context.Context, req *connect.Request[api.ClearSearchRequest]) (*connect.Response[api.ClearSearchResponse], error) {
	return c.clearSearch.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetItinerary(ctx context.Context, req *connect.Request[api.GetItineraryRequest]) (*connect.Response[api.GetItineraryResponse], error) {
	return c.getItinerary.CallUnary(ctx, req)
}

func (c *tripServiceClient) LoadPlan(ctx context.Context, req *connect.Request[api.LoadPlanRequest]) (*connect.Response[api.LoadPlanResponse], error) {
	return c.loadPlan.CallUnary(ctx, req)
}

func (c *tripServiceClient) BookTicket(ctx context.Context, req *connect.Request[api.BookTicketRequest]) (*connect.Response[api.BookTicketResponse], error) {
	return c.bookTicket.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListStartLocations(ctx context.Context, req *connect.Request[api.ListStartLocationsRequest]) (*connect.Response[api.ListStartLocationsResponse], error) {
	return c.listStartLocations.CallUnary(ctx, req)
}
