// Package web serves the public site and the admin dashboard.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"kingdomstudio/internal/adapters/http/middleware"
	"kingdomstudio/internal/application/site"
	"kingdomstudio/internal/domain/blogpost"
	"kingdomstudio/internal/domain/business"
	"kingdomstudio/internal/domain/contact"
	"kingdomstudio/internal/domain/program"
	"kingdomstudio/internal/domain/registration"
	"kingdomstudio/internal/domain/settings"
	"kingdomstudio/internal/metrics"
)

// SiteController is the slice of the site controller the handlers drive.
type SiteController interface {
	Snapshot() site.Snapshot
	Login(ctx context.Context, username, password string) bool
	Logout(ctx context.Context)

	AddBusiness(ctx context.Context, b business.Business) (business.Business, error)
	UpdateBusiness(ctx context.Context, id string, patch business.Patch) error
	RemoveBusiness(ctx context.Context, id string) error

	AddBlogPost(ctx context.Context, p blogpost.BlogPost) (blogpost.BlogPost, error)
	UpdateBlogPost(ctx context.Context, id string, patch blogpost.Patch) error
	RemoveBlogPost(ctx context.Context, id string) error

	UpdateProgram(ctx context.Context, id string, patch program.Patch) error

	AddRegistration(ctx context.Context, r registration.Registration) (registration.Registration, error)
	RemoveRegistration(ctx context.Context, id string) error

	UpdateRegistrationPrice(ctx context.Context, price int) error
	UpdateContactInfo(ctx context.Context, info settings.ContactInfo) error
	UpdateSocialMediaLinks(ctx context.Context, links settings.SocialMediaLinks) error
	UpdateAdminPassword(ctx context.Context, plaintext string) error

	SendContactMessage(m contact.Message) (contact.Draft, error)
}

// Deps carries everything the router needs.
type Deps struct {
	Site     SiteController
	Sessions middleware.SessionStore
	Logger   *zap.Logger

	// CSRFKey is the 32-byte gorilla/csrf secret. Nil disables CSRF
	// protection, which only tests should do.
	CSRFKey        []byte
	TrustedOrigins []string
	SecureCookies  bool
	SlowRequestMs  int

	// LoginAttemptsPerMinute bounds admin login posts per client IP.
	LoginAttemptsPerMinute int
}

// Server holds handler dependencies.
type Server struct {
	site     SiteController
	sessions middleware.SessionStore
	logger   *zap.Logger
	pages    pageSet
	secure   bool
	now      func() time.Time
}

const defaultLoginAttemptsPerMinute = 10

// NewRouter wires the page routes, admin routes and middleware.
// Middleware order: Recoverer -> Timing -> SecurityHeaders -> CSRF -> Auth.
func NewRouter(d Deps) (http.Handler, error) {
	if d.Site == nil || d.Sessions == nil {
		return nil, errors.New("web: site controller and session store are required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.LoginAttemptsPerMinute <= 0 {
		d.LoginAttemptsPerMinute = defaultLoginAttemptsPerMinute
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		site:     d.Site,
		sessions: d.Sessions,
		logger:   d.Logger,
		pages:    pages,
		secure:   d.SecureCookies,
		now:      time.Now,
	}
	loginLimiter := middleware.NewRateLimiter(d.LoginAttemptsPerMinute, time.Minute, d.Logger)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Timing(d.Logger, d.SlowRequestMs, metrics.HTTPRequestDuration))
	r.Use(middleware.SecurityHeaders)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if d.CSRFKey != nil {
			r.Use(middleware.CSRF(d.CSRFKey, d.SecureCookies, d.TrustedOrigins))
		}
		r.Use(middleware.Auth(d.Sessions))

		r.Get("/", s.handleHome)
		r.Get("/register", s.handleRegisterForm)
		r.Post("/register", s.handleRegisterSubmit)
		r.Get("/contact", s.handleContactForm)
		r.Post("/contact", s.handleContactSubmit)
		r.Get("/blog/{id}", s.handleBlogPost)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/", s.handleAdmin)
			r.With(middleware.RateLimit(loginLimiter)).Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Post("/businesses", s.handleCreateBusiness)
				r.Post("/businesses/{id}", s.handleUpdateBusiness)
				r.Post("/businesses/{id}/delete", s.handleDeleteBusiness)

				r.Post("/posts", s.handleCreatePost)
				r.Post("/posts/{id}", s.handleUpdatePost)
				r.Post("/posts/{id}/delete", s.handleDeletePost)

				r.Post("/programs/{id}", s.handleUpdateProgram)

				r.Post("/registrations/{id}/delete", s.handleDeleteRegistration)

				r.Post("/settings/price", s.handleUpdatePrice)
				r.Post("/settings/contact", s.handleUpdateContactInfo)
				r.Post("/settings/social", s.handleUpdateSocialLinks)
				r.Post("/settings/password", s.handleUpdatePassword)
			})
		})

		r.NotFound(s.handleNotFound)
	})

	return r, nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
