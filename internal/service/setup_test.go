package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/vibewalk/internal/api"
	"github.com/mmynk/vibewalk/internal/api/apiconnect"
	"github.com/mmynk/vibewalk/internal/auth"
	"github.com/mmynk/vibewalk/internal/itinerary"
	"github.com/mmynk/vibewalk/internal/middleware"
	"github.com/mmynk/vibewalk/internal/payment"
	"github.com/mmynk/vibewalk/internal/places"
	"github.com/mmynk/vibewalk/internal/session"
	"github.com/mmynk/vibewalk/internal/storage/sqlite"
)

const routeJSON = `{
  "stops": [
    {"name": "Chinatown Heritage Centre", "coords": [1.2834, 103.8441], "desc": "了解牛车水历史", "price": "SGD $20"},
    {"name": "Maxwell Food Centre", "coords": [1.2803, 103.8447], "desc": "天天海南鸡饭", "price": "Free", "transport_from_prev": {"method": "步行", "duration": "3 mins", "cost": "SGD $0"}},
    {"name": "Gardens by the Bay", "coords": [1.2816, 103.8636], "desc": "超级树夜景", "price": "SGD $53", "transport_from_prev": {"method": "地铁", "duration": "15 mins", "cost": "SGD $2"}}
  ],
  "summary": "历史与美食交织的文化之旅"
}`

const placeJSON = `{"name": "Tiong Bahru Bakery", "coords": [1.2847, 103.8327], "desc": "安静的咖啡馆"}`

// scriptedCompleter answers route and search prompts with canned text.
type scriptedCompleter struct {
	mu        sync.Mutex
	routeText string
	placeText string
	err       error
	calls     int
}

func (c *scriptedCompleter) Complete(_ context.Context, _, user string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	if strings.HasPrefix(user, "Recommend ONE place") {
		return c.placeText, nil
	}
	return c.routeText, nil
}

func (c *scriptedCompleter) set(routeText, placeText string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routeText, c.placeText, c.err = routeText, placeText, err
}

func (c *scriptedCompleter) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// photoIndex returns a photo for known names only.
type photoIndex map[string]string

func (p photoIndex) SearchPhoto(_ context.Context, query string) (string, error) {
	if url, ok := p[strings.TrimSuffix(query, " Singapore")]; ok {
		return url, nil
	}
	return "", places.ErrNoResults
}

type fakeCheckout struct {
	mu       sync.Mutex
	requests []payment.CheckoutRequest
	err      error
}

func (f *fakeCheckout) CreateCheckout(_ context.Context, req payment.CheckoutRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.requests = append(f.requests, req)
	return "https://checkout.example/" + strings.ReplaceAll(req.ItemName, " ", "-"), nil
}

func (f *fakeCheckout) IsTestMode() bool { return true }

func (f *fakeCheckout) failWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeCheckout) lastRequest() payment.CheckoutRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return payment.CheckoutRequest{}
	}
	return f.requests[len(f.requests)-1]
}

type testEnv struct {
	accounts  apiconnect.AccountServiceClient
	trips     apiconnect.TripServiceClient
	plans     apiconnect.PlanServiceClient
	meetups   apiconnect.MeetupServiceClient
	completer *scriptedCompleter
	checkout  *fakeCheckout
	sessions  *session.Store
	serverURL string
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestServer starts all services over a temp database, wired with the
// same interceptors as production.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	logger := quietLogger()
	env := &testEnv{
		completer: &scriptedCompleter{routeText: routeJSON, placeText: placeJSON},
		checkout:  &fakeCheckout{},
		sessions:  session.NewStore(time.Hour),
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	composer := itinerary.NewComposer(env.completer, time.Second, logger)
	images := places.NewLookup(photoIndex{
		"Chinatown Heritage Centre": "https://images.example/chc.jpg",
		"Tiong Bahru Bakery":        "https://images.example/tbb.jpg",
	}, time.Second, logger)
	limiter := middleware.NewRateLimiter(60, 3, apiconnect.TripServiceGenerateRouteProcedure)

	interceptors := connect.WithInterceptors(
		middleware.SessionInterceptor(env.sessions),
		middleware.RequireAuth(jwtManager,
			apiconnect.AccountServiceGetCurrentUserProcedure,
			apiconnect.PlanServiceSavePlanProcedure,
			apiconnect.PlanServiceAddReviewProcedure,
			apiconnect.MeetupServiceCreateMeetupProcedure,
			apiconnect.MeetupServiceJoinMeetupProcedure,
		),
		limiter.Interceptor(),
		middleware.LoggingInterceptor(logger),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAccountServiceHandler(
		NewAccountService(auth.NewPasswordAuthenticator(store), jwtManager, store, logger), interceptors))
	mux.Handle(apiconnect.NewTripServiceHandler(
		NewTripService(composer, images, env.checkout, store, "http://vibewalk.test", logger), interceptors))
	mux.Handle(apiconnect.NewPlanServiceHandler(NewPlanService(store, logger), interceptors))
	mux.Handle(apiconnect.NewMeetupServiceHandler(NewMeetupService(store, logger), interceptors))
	mux.Handle(CheckoutReturnPath, CheckoutReturnHandler(env.sessions, logger))

	server := httptest.NewServer(mux)
	env.serverURL = server.URL
	env.accounts = apiconnect.NewAccountServiceClient(http.DefaultClient, server.URL)
	env.trips = apiconnect.NewTripServiceClient(http.DefaultClient, server.URL)
	env.plans = apiconnect.NewPlanServiceClient(http.DefaultClient, server.URL)
	env.meetups = apiconnect.NewMeetupServiceClient(http.DefaultClient, server.URL)

	t.Cleanup(func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	})
	return env
}

// visitor is one browser: a session and, once logged in, a token.
type visitor struct {
	sessionID string
	token     string
}

func (e *testEnv) newVisitor() *visitor {
	id, _ := e.sessions.Resolve("")
	return &visitor{sessionID: id}
}

// signUp registers username and returns a logged-in visitor.
func (e *testEnv) signUp(t *testing.T, username string) *visitor {
	t.Helper()
	resp, err := e.accounts.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Username: username,
		Password: "password123",
	}))
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", username, err)
	}
	v := e.newVisitor()
	v.token = resp.Msg.Token
	return v
}

// req wraps msg with the visitor's session and token headers.
func req[T any](v *visitor, msg *T) *connect.Request[T] {
	r := connect.NewRequest(msg)
	if v == nil {
		return r
	}
	r.Header().Set(session.HeaderName, v.sessionID)
	if v.token != "" {
		r.Header().Set("Authorization", "Bearer "+v.token)
	}
	return r
}

// generate gives the visitor a working route.
func (e *testEnv) generate(t *testing.T, v *visitor) {
	t.Helper()
	resp, err := e.trips.GenerateRoute(context.Background(), req(v, &api.GenerateRouteRequest{
		StartLocation: "Chinatown",
		Mood:          "Cultural (文化)",
		DurationHours: 3,
	}))
	if err != nil {
		t.Fatalf("GenerateRoute failed: %v", err)
	}
	if len(resp.Msg.Itinerary.Cards) == 0 {
		t.Fatalf("GenerateRoute produced no stops: %+v", resp.Msg.Itinerary.Notice)
	}
}

func codeOf(err error) connect.Code {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code()
	}
	return connect.CodeUnknown
}
