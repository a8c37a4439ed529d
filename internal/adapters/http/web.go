package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/language"

	"agegate/internal/adapters/http/middleware"
	auditStore "agegate/internal/adapters/storage/audit"
	customFieldStore "agegate/internal/adapters/storage/customfield"
	membershipStore "agegate/internal/adapters/storage/membership"
	noticeStore "agegate/internal/adapters/storage/notice"
	settingsStore "agegate/internal/adapters/storage/settings"
	"agegate/internal/application/orchestrators"
	"agegate/internal/platform/metrics"
)

// Stores holds all storage dependencies.
type Stores struct {
	SettingsStore    settingsStore.Store
	MembershipStore  membershipStore.Store
	CustomFieldStore customFieldStore.Store
	NoticeStore      noticeStore.Store
	AuditStore       auditStore.Store
}

// Pinger reports database liveness.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options configures NewMux.
type Options struct {
	// Validator runs on every signup attempt posted to the signup hook.
	Validator orchestrators.SignupValidator
	// Admin guards every /api/admin route.
	Admin middleware.AdminCredential
	// CSRF protects form-encoded admin posts. A nil Key disables it.
	CSRF middleware.CSRFConfig
	// Locale is used when a request has no usable Accept-Language.
	Locale language.Tag
	// DB is pinged by /healthz. May be nil.
	DB                 Pinger
	RateLimitPerMinute int
	SlowRequest        time.Duration
	Now                func() time.Time
}

// server carries handler dependencies; one per NewMux call.
type server struct {
	stores    *Stores
	validator orchestrators.SignupValidator
	locale    language.Tag
	db        Pinger
	now       func() time.Time
}

// NewMux wires HTTP handlers for the service.
// PRE: s and every store in it are non-nil; opts.Validator is non-nil
func NewMux(s *Stores, opts Options) http.Handler {
	srv := &server{
		stores:    s,
		validator: opts.Validator,
		locale:    opts.Locale,
		db:        opts.DB,
		now:       opts.Now,
	}
	if srv.now == nil {
		srv.now = time.Now
	}
	rateLimit := opts.RateLimitPerMinute
	if rateLimit <= 0 {
		rateLimit = 120
	}

	r := chi.NewRouter()
	// Timing -> SecurityHeaders -> routes
	r.Use(middleware.Timing(opts.SlowRequest, metrics.HTTPRequestDuration))
	r.Use(middleware.SecurityHeaders)

	r.Get("/healthz", srv.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/signup/validate", middleware.Chain(
			http.HandlerFunc(srv.handleSignupValidate),
			requireJSON,
			middleware.RateLimit(rateLimit, time.Minute),
		))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(opts.Admin))
			if len(opts.CSRF.Key) > 0 {
				r.Use(middleware.CSRF(opts.CSRF))
			}

			r.Get("/settings", srv.handleGetSettings)
			r.Post("/settings", srv.handleSaveSettings)

			r.Get("/memberships", srv.handleListMemberships)
			r.Post("/memberships", srv.handleSaveMembership)
			r.Delete("/memberships/{id}", srv.handleDeleteMembership)

			r.Get("/custom-fields", srv.handleListCustomFields)
			r.Post("/custom-fields", srv.handleAddCustomField)
			r.Put("/custom-fields", srv.handleReplaceCustomFields)
			r.Delete("/custom-fields/{key}", srv.handleDeleteCustomField)

			r.Get("/audit", srv.handleListAudit)
		})
	})

	return r
}

func (s *server) registryDeps() orchestrators.RegistryDeps {
	return orchestrators.RegistryDeps{
		MembershipStore:  s.stores.MembershipStore,
		CustomFieldStore: s.stores.CustomFieldStore,
	}
}

// handleHealthz reports liveness and database reachability.
func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
