package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/interfaces/http/rest/handlers"
	"meumuseu/interfaces/http/rest/middleware"
	"meumuseu/pkg/auth"
	pkgerrors "meumuseu/pkg/errors"
	"meumuseu/pkg/observability"
)

// Deps carries everything the router wires into handlers
type Deps struct {
	Identity   ports.IdentityStore
	Plans      ports.PlanStore
	Museum     ports.MuseumStore
	Share      ports.ShareReader
	Avatars    ports.AvatarStore
	Captions   ports.CaptionGenerator
	Tokens     *auth.TokenService
	Metrics    *observability.Collector
	ErrorHdl   *pkgerrors.ErrorHandler
	PaymentURL func() string

	AllowedOrigins []string
	EnableCORS     bool
	EnableMetrics  bool

	// AuthRateLimit is the per-IP requests-per-minute ceiling on the
	// public auth endpoints; zero or negative falls back to the default
	AuthRateLimit int

	// Ready reports whether the storage backend answers; used by /ready
	Ready func(r *http.Request) error
}

// Router creates and configures the HTTP router
type Router struct {
	deps   Deps
	logger *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(deps Deps, logger *zap.Logger) *Router {
	return &Router{deps: deps, logger: logger}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.deps.EnableMetrics && rt.deps.Metrics != nil {
		router.Use(middleware.Metrics(rt.deps.Metrics))
	}

	if rt.deps.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.deps.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health and operational endpoints
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.deps.EnableMetrics && rt.deps.Metrics != nil {
		router.Method("GET", "/metrics", promhttp.HandlerFor(
			rt.deps.Metrics.Registry(),
			promhttp.HandlerOpts{},
		))
	}

	authHandler := handlers.NewAuthHandler(rt.deps.Identity, rt.deps.Tokens, rt.deps.ErrorHdl, rt.logger)
	shareHandler := handlers.NewShareHandler(rt.deps.Share, rt.deps.ErrorHdl, rt.logger)
	roomHandler := handlers.NewRoomHandler(rt.deps.Museum, rt.deps.Plans, rt.deps.ErrorHdl, rt.logger)
	memoryHandler := handlers.NewMemoryHandler(rt.deps.Museum, rt.deps.ErrorHdl, rt.logger)
	planHandler := handlers.NewPlanHandler(rt.deps.Plans, rt.deps.PaymentURL, rt.deps.ErrorHdl, rt.logger)
	profileHandler := handlers.NewProfileHandler(rt.deps.Avatars, rt.deps.ErrorHdl, rt.logger)
	captionHandler := handlers.NewCaptionHandler(rt.deps.Captions, rt.deps.ErrorHdl, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(auth.NewIPRateLimiter(rt.authRateLimit())))
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/register", authHandler.Register)
		})
		r.Get("/share/{userID}", shareHandler.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.deps.Tokens, rt.logger))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", roomHandler.List)
				r.Post("/", roomHandler.Create)
				r.Get("/{roomID}", roomHandler.Get)
				r.Put("/{roomID}", roomHandler.Update)
				r.Delete("/{roomID}", roomHandler.Delete)
				r.Get("/{roomID}/usage", roomHandler.Usage)

				r.Route("/{roomID}/memories", func(r chi.Router) {
					r.Get("/", memoryHandler.List)
					r.Post("/", memoryHandler.Create)
					r.Get("/{memoryID}", memoryHandler.Get)
					r.Put("/{memoryID}", memoryHandler.Update)
					r.Delete("/{memoryID}", memoryHandler.Delete)
				})
			})

			r.Get("/plan", planHandler.Get)
			r.Post("/plan/upgrade", planHandler.Upgrade)

			r.Get("/profile", profileHandler.Get)
			r.Get("/profile/avatar", profileHandler.GetAvatar)
			r.Put("/profile/avatar", profileHandler.PutAvatar)

			r.Post("/captions", captionHandler.Generate)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.deps.ErrorHdl.Handle(w, r, pkgerrors.NewNotFoundError("route"))
	})

	return router
}

const defaultAuthRateLimit = 30

func (rt *Router) authRateLimit() int {
	if rt.deps.AuthRateLimit > 0 {
		return rt.deps.AuthRateLimit
	}
	return defaultAuthRateLimit
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if rt.deps.Ready != nil {
		if err := rt.deps.Ready(req); err != nil {
			rt.logger.Warn("Readiness check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"not ready"}`))
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
