package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/vibewalk/internal/auth"
	"github.com/mmynk/vibewalk/internal/config"
	"github.com/mmynk/vibewalk/internal/itinerary"
	"github.com/mmynk/vibewalk/internal/middleware"
	"github.com/mmynk/vibewalk/internal/payment"
	"github.com/mmynk/vibewalk/internal/places"
	"github.com/mmynk/vibewalk/internal/server"
	"github.com/mmynk/vibewalk/internal/session"
	"github.com/mmynk/vibewalk/internal/storage/sqlite"
	"github.com/mmynk/vibewalk/pkg/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == config.DevJWTSecret {
		logger.Warn("Using the development JWT secret, set JWT_SECRET in production")
	}
	if cfg.OpenAI.APIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, route generation will fail")
	}
	if cfg.Unsplash.AccessKey == "" {
		logger.Info("UNSPLASH_ACCESS_KEY not set, using placeholder images")
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		logger.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	logger.Info("Serving static files", "path", staticDir)

	checkout := payment.NewStripeCheckout(cfg.Stripe.SecretKey, nil)
	if checkout.IsTestMode() {
		logger.Info("Payments running in sandbox mode")
	}

	handler := server.NewRouter(server.Deps{
		Store:         store,
		Authenticator: auth.NewPasswordAuthenticator(store),
		JWT:           auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		Composer: itinerary.NewComposer(
			itinerary.NewOpenAICompleter(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model),
			cfg.OpenAI.Timeout,
			logger,
		),
		Images: places.NewLookup(
			places.NewUnsplashClient(cfg.Unsplash.AccessKey, "", &http.Client{Timeout: cfg.Unsplash.Timeout}),
			cfg.Unsplash.Timeout,
			logger,
		),
		Checkout:  checkout,
		Sessions:  session.NewStore(cfg.SessionTTL),
		Limiter:   middleware.NewRateLimiter(cfg.GenerateRatePerMinute, cfg.GenerateBurst, server.RateLimitedProcedures...),
		PublicURL: cfg.PublicURL,
		StaticDir: staticDir,
		Logger:    logger,
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Connect server starting", "address", srv.Addr, "url", cfg.PublicURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
