// Package chi is the HTTP transport: routes, request decoding, the response
// envelope and the error-to-status mapping.
package chi

import (
	"net"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/domain"
	healthuc "github.com/kailas-cloud/folio/internal/usecase/health"
	"github.com/kailas-cloud/folio/internal/version"
)

// Services bundles the use cases the API serves.
type Services struct {
	Blog       BlogService
	Subscribe  SubscribeService
	Newsletter NewsletterService
	LinkedIn   LinkedInService
	Contact    ContactService
	Health     HealthService
}

// Server holds the HTTP handlers.
type Server struct {
	blog       BlogService
	subscribe  SubscribeService
	newsletter NewsletterService
	linkedin   LinkedInService
	contact    ContactService
	health     HealthService
	auth       *AdminAuth
	logger     *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, auth *AdminAuth, logger *zap.Logger) *Server {
	if auth == nil {
		auth = NewAdminAuth(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		blog:       svc.Blog,
		subscribe:  svc.Subscribe,
		newsletter: svc.Newsletter,
		linkedin:   svc.LinkedIn,
		contact:    svc.Contact,
		health:     svc.Health,
		auth:       auth,
		logger:     logger,
	}
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r gochi.Router) {
		r.Route("/blog", func(r gochi.Router) {
			r.With(s.auth.Identify).Get("/", s.ListPosts)
			r.With(s.auth.Identify).Get("/{slug}", s.GetPost)
			r.Post("/{slug}/view", s.ViewPost)
			r.Post("/{slug}/like", s.LikePost)

			r.Group(func(r gochi.Router) {
				r.Use(s.auth.Require)
				r.Post("/", s.CreatePost)
				r.Put("/{slug}", s.UpdatePost)
				r.Patch("/{slug}", s.UpdatePost)
				r.Delete("/{slug}", s.DeletePost)
			})
		})

		r.Post("/subscribe", s.Subscribe)
		r.Delete("/subscribe", s.Unsubscribe)
		r.Post("/contact", s.SubmitContact)

		r.Group(func(r gochi.Router) {
			r.Use(s.auth.Require)
			r.Get("/subscribers", s.ListSubscribers)
			r.Post("/newsletter/send", s.SendNewsletter)

			r.Route("/linkedin", func(r gochi.Router) {
				r.Get("/content", s.ListLinkedIn)
				r.Post("/content", s.CreateLinkedIn)
				r.Get("/content/{id}", s.GetLinkedIn)
				r.Put("/content/{id}", s.UpdateLinkedIn)
				r.Patch("/content/{id}", s.UpdateLinkedIn)
				r.Delete("/content/{id}", s.DeleteLinkedIn)
				r.Post("/generate", s.GenerateLinkedIn)
			})
		})
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status":  string(report.Status),
		"checks":  checks,
		"version": version.Short(),
	})
}

// bindQuery binds an optional form-style query parameter into dest.
func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return domain.Validationf("invalid %s parameter", name)
	}
	return nil
}

// clientIP returns the caller address. chi's RealIP middleware has already
// replaced RemoteAddr with the forwarded address when one was sent.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
