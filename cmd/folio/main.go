package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/config"
	dbRedis "github.com/kailas-cloud/folio/internal/db/redis"
	"github.com/kailas-cloud/folio/internal/docstore"
	"github.com/kailas-cloud/folio/internal/domain"
	logpkg "github.com/kailas-cloud/folio/internal/logger"
	"github.com/kailas-cloud/folio/internal/metrics"
	"github.com/kailas-cloud/folio/internal/notify"
	"github.com/kailas-cloud/folio/internal/ratelimit"
	contactrepo "github.com/kailas-cloud/folio/internal/repository/contact"
	linkedinrepo "github.com/kailas-cloud/folio/internal/repository/linkedin"
	postrepo "github.com/kailas-cloud/folio/internal/repository/post"
	subscriberrepo "github.com/kailas-cloud/folio/internal/repository/subscriber"
	"github.com/kailas-cloud/folio/internal/tracing"
	chiTransport "github.com/kailas-cloud/folio/internal/transport/chi"
	"github.com/kailas-cloud/folio/internal/transport/mail"
	openaiGen "github.com/kailas-cloud/folio/internal/transport/openai"
	bloguc "github.com/kailas-cloud/folio/internal/usecase/blog"
	contactuc "github.com/kailas-cloud/folio/internal/usecase/contact"
	"github.com/kailas-cloud/folio/internal/usecase/formguard"
	healthuc "github.com/kailas-cloud/folio/internal/usecase/health"
	linkedinuc "github.com/kailas-cloud/folio/internal/usecase/linkedin"
	newsletteruc "github.com/kailas-cloud/folio/internal/usecase/newsletter"
	subscribeuc "github.com/kailas-cloud/folio/internal/usecase/subscribe"
	"github.com/kailas-cloud/folio/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting folio API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("project_id", cfg.Docstore.ProjectID),
		zap.String("rate_limit_driver", cfg.RateLimit.Driver),
		zap.String("mail_provider", cfg.Mail.Provider),
	)

	if env == "prod" && !hasAdminKey(cfg.Auth.APIKeys) {
		logger.Fatal("No admin API key configured for production")
	}

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
		ServiceName: "folio",
		Version:     version.Short(),
	})
	if err != nil {
		logger.Fatal("Failed to set up tracing", zap.Error(err))
	}

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterExternalMetrics()

	store, err := docstore.New(docstore.Config{
		ProjectID:   cfg.Docstore.ProjectID,
		Database:    cfg.Docstore.Database,
		APIKey:      cfg.Docstore.APIKey,
		AccessToken: cfg.Docstore.AccessToken,
		BaseURL:     cfg.Docstore.BaseURL,
		Timeout:     time.Duration(cfg.Docstore.TimeoutSec) * time.Second,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("Failed to create document store client", zap.Error(err))
	}

	// Rate limiting: in-process by default, shared through Redis when configured.
	// Pass a nil interface (not a typed nil pointer) to health when there is no Redis.
	var rateLimitPinger healthuc.Pinger
	newLimiter := func(scope string) ratelimit.Limiter {
		return ratelimit.NewMemory(ratelimit.Options{
			MaxRequests: cfg.RateLimit.MaxRequests,
			Window:      time.Duration(cfg.RateLimit.WindowSec) * time.Second,
			Scope:       scope,
		})
	}
	if cfg.RateLimit.Driver == "redis" {
		redisStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.RateLimit.Addrs,
			Username:  cfg.RateLimit.Username,
			Password:  cfg.RateLimit.Password,
			DB:        cfg.RateLimit.DB,
			KeyPrefix: cfg.RateLimit.KeyPrefix,
		})
		if err != nil {
			logger.Fatal("Failed to create rate limit store", zap.Error(err))
		}
		defer redisStore.Close()

		readiness := time.Duration(cfg.RateLimit.ReadinessTimeout) * time.Second
		if err := redisStore.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Rate limit store not ready", zap.Error(err))
		}
		logger.Info("Connected to rate limit store", zap.Strings("addrs", cfg.RateLimit.Addrs))

		rateLimitPinger = redisStore
		newLimiter = func(scope string) ratelimit.Limiter {
			return ratelimit.NewRedis(redisStore, ratelimit.Options{
				MaxRequests: cfg.RateLimit.MaxRequests,
				Window:      time.Duration(cfg.RateLimit.WindowSec) * time.Second,
				Scope:       scope,
			})
		}
	}

	mailer, err := buildMailer(cfg.Mail, logger)
	if err != nil {
		logger.Fatal("Failed to create mailer", zap.Error(err))
	}

	// Pass a nil interface when generation is not configured.
	var generator linkedinuc.Generator
	if cfg.LLM.APIKey != "" {
		generator = buildGenerator(cfg.LLM, logger)
		logger.Info("Content generator created", zap.String("model", modelName(cfg.LLM)))
	} else {
		logger.Warn("LLM api key not set, content generation disabled")
	}

	// Repositories
	posts := postrepo.New(store)
	subscribers := subscriberrepo.New(store)
	linkedinItems := linkedinrepo.New(store)
	messages := contactrepo.New(store)

	// Background email tasks outlive the request that scheduled them.
	dispatcher := notify.NewDispatcher(logger)
	renderer := notify.Renderer{SiteName: cfg.Site.Name, SiteURL: cfg.Site.URL}
	minSubmit := time.Duration(cfg.Forms.MinSubmitMs) * time.Millisecond

	// Use case services
	blogSvc := bloguc.New(posts, subscribers, mailer, dispatcher).
		WithPagination(cfg.Blog.DefaultPageSize, cfg.Blog.MaxPageSize).
		WithNotifications(cfg.Blog.NotifySubscribers, renderer,
			time.Duration(cfg.Blog.NotifyDelayMs)*time.Millisecond)
	subscribeSvc := subscribeuc.New(subscribers,
		formguard.New(newLimiter("subscribe"), minSubmit), mailer, dispatcher).
		WithRenderer(renderer)
	newsletterSvc := newsletteruc.New(subscribers, mailer).
		WithRenderer(renderer).
		WithSendDelay(time.Duration(cfg.Newsletter.SendDelayMs) * time.Millisecond)
	linkedinSvc := linkedinuc.New(linkedinItems, generator)
	contactSvc := contactuc.New(messages,
		formguard.New(newLimiter("contact"), minSubmit), mailer, dispatcher, cfg.Mail.AdminEmail).
		WithRenderer(renderer)
	healthSvc := healthuc.New(store, rateLimitPinger)

	server := chiTransport.NewServer(chiTransport.Services{
		Blog:       blogSvc,
		Subscribe:  subscribeSvc,
		Newsletter: newsletterSvc,
		LinkedIn:   linkedinSvc,
		Contact:    contactSvc,
		Health:     healthSvc,
	}, chiTransport.NewAdminAuth(cfg.Auth.APIKeys), logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	if err := dispatcher.Wait(shutdownCtx); err != nil {
		logger.Warn("Background tasks still running at shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Error flushing traces", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func hasAdminKey(keys []string) bool {
	for _, k := range keys {
		if k != "" {
			return true
		}
	}
	return false
}

func buildMailer(cfg config.MailConfig, logger *zap.Logger) (domain.Mailer, error) {
	if cfg.Provider != "brevo" {
		return mail.NewLog(logger), nil
	}
	return mail.NewBrevo(mail.BrevoConfig{
		APIKey:     cfg.APIKey,
		SenderName: cfg.SenderName,
		SenderMail: cfg.SenderEmail,
		Timeout:    time.Duration(cfg.TimeoutSec) * time.Second,
		Logger:     logger,
	})
}

// buildGenerator assembles the chain: OpenAI -> Instrumented.
func buildGenerator(cfg config.LLMConfig, logger *zap.Logger) linkedinuc.Generator {
	base := openaiGen.NewGenerator(&openaiGen.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Logger:  logger,
	})
	return linkedinuc.NewInstrumentedGenerator(base, modelName(cfg), logger)
}

func modelName(cfg config.LLMConfig) string {
	if cfg.Model == "" {
		return openaiGen.DefaultModel
	}
	return cfg.Model
}

// jsonRecoverer is a recovery middleware that answers with the API envelope
// instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"message": "Internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware opens the server span, emits a canonical log line per
// request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	tracer := otel.Tracer("github.com/kailas-cloud/folio/cmd/folio")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			if sc := span.SpanContext(); sc.IsValid() {
				reqLogger = reqLogger.With(zap.String("trace_id", sc.TraceID().String()))
			}
			ctx = logpkg.ContextWithLogger(ctx, reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.response.status_code", ww.Status()))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
