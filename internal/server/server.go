// Package server assembles the HTTP surface: Connect services, the payment
// return route, health and metrics endpoints, and the static frontend.
package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mmynk/vibewalk/internal/api/apiconnect"
	"github.com/mmynk/vibewalk/internal/auth"
	"github.com/mmynk/vibewalk/internal/metrics"
	"github.com/mmynk/vibewalk/internal/middleware"
	"github.com/mmynk/vibewalk/internal/payment"
	"github.com/mmynk/vibewalk/internal/service"
	"github.com/mmynk/vibewalk/internal/session"
	"github.com/mmynk/vibewalk/internal/storage"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	Store         storage.Store
	Authenticator auth.Authenticator
	JWT           *auth.JWTManager
	Composer      service.RouteComposer
	Images        service.ImageEnricher
	Checkout      payment.Checkout
	Sessions      *session.Store
	Limiter       *middleware.RateLimiter
	PublicURL     string
	StaticDir     string
	Logger        *slog.Logger
}

// protectedProcedures need a logged-in caller.
var protectedProcedures = []string{
	apiconnect.AccountServiceGetCurrentUserProcedure,
	apiconnect.PlanServiceSavePlanProcedure,
	apiconnect.PlanServiceAddReviewProcedure,
	apiconnect.MeetupServiceCreateMeetupProcedure,
	apiconnect.MeetupServiceJoinMeetupProcedure,
}

// RateLimitedProcedures call the completion provider.
var RateLimitedProcedures = []string{
	apiconnect.TripServiceGenerateRouteProcedure,
	apiconnect.TripServiceSearchPlaceProcedure,
}

// NewRouter builds the root handler.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Outermost first: the session and identity must be known before rate
	// limiting, metrics and logging look at the call.
	interceptors := connect.WithInterceptors(
		middleware.SessionInterceptor(d.Sessions),
		middleware.RequireAuth(d.JWT, protectedProcedures...),
		d.Limiter.Interceptor(),
		middleware.MetricsInterceptor(),
		middleware.LoggingInterceptor(logger),
	)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(corsMiddleware)

	mount := func(path string, h http.Handler) {
		r.Handle(path+"*", h)
	}
	mount(apiconnect.NewAccountServiceHandler(
		service.NewAccountService(d.Authenticator, d.JWT, d.Store, logger), interceptors))
	mount(apiconnect.NewTripServiceHandler(
		service.NewTripService(d.Composer, d.Images, d.Checkout, d.Store, d.PublicURL, logger), interceptors))
	mount(apiconnect.NewPlanServiceHandler(
		service.NewPlanService(d.Store, logger), interceptors))
	mount(apiconnect.NewMeetupServiceHandler(
		service.NewMeetupService(d.Store, logger), interceptors))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Method(http.MethodGet, service.CheckoutReturnPath, service.CheckoutReturnHandler(d.Sessions, logger))

	if d.StaticDir != "" {
		r.NotFound(staticHandler(d.StaticDir))
	}

	return loggingMiddleware(logger, r)
}

// staticHandler serves files from dir. Unknown paths get index.html so the
// single-page frontend can route on the client.
func staticHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// loggingMiddleware logs every plain HTTP request. RPCs are logged by the
// Connect interceptor, so they are only logged here at debug level.
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		level := slog.LevelInfo
		if r.Method == http.MethodPost {
			level = slog.LevelDebug
		}
		logger.Log(r.Context(), level, "Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms, "+session.HeaderName)
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, "+session.HeaderName)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
