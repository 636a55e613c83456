package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"link-hub/internal/adapter/gateway"
	adapterhandler "link-hub/internal/adapter/handler"
	"link-hub/internal/domain"
	infracache "link-hub/internal/infrastructure/cache"
	"link-hub/internal/infrastructure/cookie"
	infratoken "link-hub/internal/infrastructure/token"
	"link-hub/internal/usecase"

	"link-hub/config"
	appmiddleware "link-hub/middleware"
	"link-hub/utils/logger"
	"link-hub/utils/otel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// Initialize structured logger
	logger.Init(otelCfg.Enabled)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"upstream_url", cfg.UpstreamURL,
		"port", cfg.Port,
		"link_policy", cfg.LinkPolicy)

	// Infrastructure
	marketplace := gateway.NewMarketplaceGateway(cfg.UpstreamURL, cfg.UpstreamTimeout)
	attemptRegistry := infracache.NewAttemptRegistry(cfg.LinkAttemptTTL)
	jwtIssuer := infratoken.NewJWTIssuer(infratoken.JWTConfig{
		Secret:   cfg.BackendTokenSecret,
		Issuer:   cfg.BackendTokenIssuer,
		Audience: cfg.BackendTokenAudience,
		TTL:      cfg.BackendTokenTTL,
	})

	cookieCfg := cookie.Config{
		SessionName: cfg.SessionCookieName,
		TokenName:   cfg.TokenCookieName,
		Domain:      cfg.CookieDomain,
		Secure:      cfg.CookieSecure,
		TTL:         cfg.CredentialTTL,
	}
	stores := func(c echo.Context) domain.CredentialStore {
		return cookie.NewStore(c, cookieCfg)
	}

	// Usecases
	linkPolicy := usecase.LinkPolicy(cfg.LinkPolicy)
	initiateUC := usecase.NewInitiateLink(marketplace, linkPolicy, attemptRegistry, slog.Default())
	pollUC := usecase.NewPollLink(marketplace, linkPolicy, attemptRegistry, slog.Default())
	confirmUC := usecase.NewConfirmLink(marketplace, marketplace, linkPolicy, attemptRegistry, slog.Default())
	snapshotUC := usecase.NewFetchSnapshot(marketplace, slog.Default())
	attachUC := usecase.NewAttachIdentifiers(marketplace, slog.Default())
	authorizeUC := usecase.NewAuthorize(marketplace, slog.Default())
	sessionUC := usecase.NewGetSession(marketplace, jwtIssuer, slog.Default())
	otpUC := usecase.NewSendOTP(marketplace, slog.Default())

	// Handlers
	linkHandler := adapterhandler.NewLinkHandler(initiateUC, pollUC, confirmUC, snapshotUC, attachUC, authorizeUC, stores)
	authHandler := adapterhandler.NewAuthHandler(otpUC, stores)
	sessionHandler := adapterhandler.NewSessionHandler(sessionUC, stores)
	healthHandler := adapterhandler.NewHealthHandler(cfg.LinkPolicy)
	internalHandler := adapterhandler.NewInternalHandler(attemptRegistry, slog.Default())

	// Setup Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Security middleware
	e.Use(appmiddleware.SecurityHeaders())

	// OpenTelemetry tracing
	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	// Request logging
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// Per-group budgets: otp 5/min, session 30/min, link 60/min (poll driven), internal 10/min
	otpRL := appmiddleware.NewRateLimiter("otp", 5.0/60.0, 2)
	sessionRL := appmiddleware.NewRateLimiter("session", 30.0/60.0, 5)
	linkRL := appmiddleware.NewRateLimiter("link", 60.0/60.0, 10)
	internalRL := appmiddleware.NewRateLimiter("internal", 10.0/60.0, 3)

	// Auth routes
	e.POST("/auth/otp", authHandler.HandleSendOTP, otpRL.Middleware())
	e.PUT("/auth/session", authHandler.HandleSetSession, sessionRL.Middleware())
	e.DELETE("/auth/session", authHandler.HandleClearSession, sessionRL.Middleware())
	e.GET("/session", sessionHandler.Handle, sessionRL.Middleware())

	// Linking flow routes
	linkGroup := e.Group("/link", linkRL.Middleware())
	linkGroup.POST("/initiate", linkHandler.HandleInitiate)
	linkGroup.POST("/poll", linkHandler.HandlePoll)
	linkGroup.POST("/confirm", linkHandler.HandleConfirm)
	linkGroup.GET("/snapshot", linkHandler.HandleSnapshot)
	linkGroup.POST("/identifiers", linkHandler.HandleAttach)

	e.GET("/health", healthHandler.Handle)

	// Internal routes, closed unless a shared secret is configured
	internalGroup := e.Group("/internal",
		internalRL.Middleware(),
		appmiddleware.InternalAuth(cfg.InternalSharedSecret),
	)
	internalGroup.POST("/link-attempts/flush", internalHandler.HandleFlushAttempts)

	// Start server with errgroup for graceful shutdown
	address := fmt.Sprintf(":%s", cfg.Port)
	slog.InfoContext(ctx, "starting link-hub server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8889"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
