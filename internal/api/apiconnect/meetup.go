package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/vibewalk/internal/api"
)

const MeetupServiceName = "vibewalk.v1.MeetupService"

const (
	MeetupServiceCreateMeetupProcedure = "/vibewalk.v1.MeetupService/CreateMeetup"
	MeetupServiceJoinMeetupProcedure   = "/vibewalk.v1.MeetupService/JoinMeetup"
	MeetupServiceListMeetupsProcedure  = "/vibewalk.v1.MeetupService/ListMeetups"
)

// MeetupServiceHandler is implemented by the meetup service.
type MeetupServiceHandler interface {
	CreateMeetup(context.Context, *connect.Request[api.CreateMeetupRequest]) (*connect.Response[api.CreateMeetupResponse], error)
	JoinMeetup(context.Context, *connect.Request[api.JoinMeetupRequest]) (*connect.Response[api.JoinMeetupResponse], error)
	ListMeetups(context.Context, *connect.Request[api.ListMeetupsRequest]) (*connect.Response[api.ListMeetupsResponse], error)
}

// NewMeetupServiceHandler builds an HTTP handler from the service implementation.
func NewMeetupServiceHandler(svc MeetupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createMeetup := connect.NewUnaryHandler(MeetupServiceCreateMeetupProcedure, svc.CreateMeetup, opts...)
	joinMeetup := connect.NewUnaryHandler(MeetupServiceJoinMeetupProcedure, svc.JoinMeetup, opts...)
	listMeetups := connect.NewUnaryHandler(MeetupServiceListMeetupsProcedure, svc.ListMeetups, opts...)
	return "/" + MeetupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case MeetupServiceCreateMeetupProcedure:
			createMeetup.ServeHTTP(w, r)
		case MeetupServiceJoinMeetupProcedure:
			joinMeetup.ServeHTTP(w, r)
		case MeetupServiceListMeetupsProcedure:
			listMeetups.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// MeetupServiceClient is a client for the vibewalk.v1.MeetupService service.
type MeetupServiceClient interface {
	CreateMeetup(context.Context, *connect.Request[api.CreateMeetupRequest]) (*connect.Response[api.CreateMeetupResponse], error)
	JoinMeetup(context.Context, *connect.Request[api.JoinMeetupRequest]) (*connect.Response[api.JoinMeetupResponse], error)
	ListMeetups(context.Context, *connect.Request[api.ListMeetupsRequest]) (*connect.Response[api.ListMeetupsResponse], error)
}

// NewMeetupServiceClient constructs a client for the vibewalk.v1.MeetupService service.
func NewMeetupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) MeetupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &meetupServiceClient{
		createMeetup: connect.NewClient[api.CreateMeetupRequest, api.CreateMeetupResponse](httpClient, baseURL+MeetupServiceCreateMeetupProcedure, opts...),
		joinMeetup:   connect.NewClient[api.JoinMeetupRequest, api.JoinMeetupResponse](httpClient, baseURL+MeetupServiceJoinMeetupProcedure, opts...),
		listMeetups:  connect.NewClient[api.ListMeetupsRequest, api.ListMeetupsResponse](httpClient, baseURL+MeetupServiceListMeetupsProcedure, opts...),
	}
}

type meetupServiceClient struct {
	createMeetup *connect.Client[api.CreateMeetupRequest, api.CreateMeetupResponse]
	joinMeetup   *connect.Client[api.JoinMeetupRequest, api.JoinMeetupResponse]
	listMeetups  *connect.Client[api.ListMeetupsRequest, api.ListMeetupsResponse]
}

func (c *meetupServiceClient) CreateMeetup(ctx context.Context, req *connect.Request[api.CreateMeetupRequest]) (*connect.Response[api.CreateMeetupResponse], error) {
	return c.createMeetup.CallUnary(ctx, req)
}

func (c *meetupServiceClient) JoinMeetup(ctx context.Context, req *connect.Request[api.JoinMeetupRequest]) (*connect.Response[api.JoinMeetupResponse], error) {
	return c.joinMeetup.CallUnary(ctx, req)
}

func (c *meetupServiceClient) ListMeetups(ctx context.Context, req *connect.Request[api.ListMeetupsRequest]) (*connect.Response[api.ListMeetupsResponse], error) {
	return c.listMeetups.CallUnary(ctx, req)
}
