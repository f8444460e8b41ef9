package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/harmonyhub/portal-api/internal/application/account"
	"github.com/harmonyhub/portal-api/internal/application/catalog"
	"github.com/harmonyhub/portal-api/internal/application/intake"
	"github.com/harmonyhub/portal-api/internal/application/notification"
	"github.com/harmonyhub/portal-api/internal/config"
	"github.com/harmonyhub/portal-api/internal/pkg/ratelimit"
	"github.com/harmonyhub/portal-api/internal/transport/http/handler"
	appmiddleware "github.com/harmonyhub/portal-api/internal/transport/http/middleware"
)

// Per-endpoint sliding-window policies. The verify endpoint is polled by the
// front-end while a request is pending, so it runs a much higher cap.
var (
	appointmentsLimit = ratelimit.Policy{Window: 10 * time.Minute, Max: 6}
	contactLimit      = ratelimit.Policy{Window: 10 * time.Minute, Max: 10}
	registerLimit     = ratelimit.Policy{Window: 10 * time.Minute, Max: 6}
	loginLimit        = ratelimit.Policy{Window: 10 * time.Minute, Max: 10}
	verifyLimit       = ratelimit.Policy{Window: 10 * time.Minute, Max: 30}
	approveLimit      = ratelimit.Policy{Window: time.Minute, Max: 20}
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.CORS(cfg.AllowedOrigins))

	limiter := ratelimit.New()

	notifSvc := notification.NewService(deps.Mailer, cfg.SiteURL)
	intakeSvc := intake.NewService(notifSvc)
	accountSvc := account.NewService(account.ServiceDeps{
		Verifications: deps.Verifications,
		Approvals:     deps.Approvals,
		Verified:      deps.Verified,
		Notifier:      notifSvc,
		Sessions:      deps.Sessions,
		SiteURL:       cfg.SiteURL,
		AuthPassword:  cfg.AuthPassword,
		AllowedUsers:  cfg.AllowedUsers,
	})
	catalogSvc := catalog.NewService()

	healthH := handler.NewHealthHandler()
	intakeH := handler.NewIntakeHandler(intakeSvc)
	authH := handler.NewAuthHandler(accountSvc)
	approveH := handler.NewApproveHandler(accountSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"ok":false,"error":"Method not allowed"}`))
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error":"Not found"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health-check", healthH.Ping)
		r.Get("/services", catalogH.List)

		r.With(appmiddleware.RateLimit(limiter, "appointments", appointmentsLimit)).
			Post("/appointments", intakeH.Appointment)
		r.With(appmiddleware.RateLimit(limiter, "contact", contactLimit)).
			Post("/contact", intakeH.Contact)

		r.Route("/auth", func(r chi.Router) {
			r.With(appmiddleware.RateLimit(limiter, "auth-register", registerLimit)).
				Post("/register", authH.Register)
			r.With(appmiddleware.RateLimit(limiter, "auth-verify", verifyLimit)).
				Post("/verify", authH.Verify)
			r.With(appmiddleware.RateLimit(limiter, "auth-login", loginLimit)).
				Post("/login", authH.Login)

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RateLimit(limiter, "auth-approve", approveLimit))
				r.Get("/approve", approveH.Action)
				r.Post("/approve", approveH.Action)
			})
		})
	})

	return r
}
