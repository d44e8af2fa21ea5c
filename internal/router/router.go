package router

import (
	"net/http"

	"pantry-hub/internal/handler"
	"pantry-hub/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the resource handlers mounted by New.
type Handlers struct {
	Auth         *handler.AuthHandler
	Account      *handler.AccountHandler
	Pantry       *handler.PantryHandler
	Item         *handler.ItemHandler
	Shopping     *handler.ShoppingHandler
	Recipe       *handler.RecipeHandler
	Notification *handler.NotificationHandler
}

// Options configures the unauthenticated surfaces of the router.
type Options struct {
	// MediaDir is served under /media when set; locally stored photos live there.
	MediaDir string
	// Limiter throttles API requests per client when set.
	Limiter *middleware.RateLimiter
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, authenticator middleware.TokenAuthenticator, opts Options, logger zerolog.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)

	// Health check endpoint (no authentication required)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if opts.MediaDir != "" {
		r.PathPrefix("/media/").Handler(http.StripPrefix("/media/", http.FileServer(http.Dir(opts.MediaDir)))).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	if opts.Limiter != nil {
		api.Use(opts.Limiter.Middleware)
	}

	// Registration and sign-in are the only unauthenticated API routes.
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(authenticator, logger))

	protected.HandleFunc("/account", h.Account.Get).Methods(http.MethodGet)
	protected.HandleFunc("/account", h.Account.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/account/photo", h.Account.UploadPhoto).Methods(http.MethodPost)

	protected.HandleFunc("/pantries", h.Pantry.List).Methods(http.MethodGet)
	protected.HandleFunc("/pantries", h.Pantry.Create).Methods(http.MethodPost)
	protected.HandleFunc("/pantries/join", h.Pantry.Join).Methods(http.MethodPost)
	protected.HandleFunc("/pantries/{code}", h.Pantry.Get).Methods(http.MethodGet)
	protected.HandleFunc("/pantries/{code}", h.Pantry.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/pantries/{code}", h.Pantry.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/pantries/{code}/leave", h.Pantry.Leave).Methods(http.MethodPost)

	protected.HandleFunc("/pantries/{code}/items", h.Item.List).Methods(http.MethodGet)
	protected.HandleFunc("/pantries/{code}/items", h.Item.Create).Methods(http.MethodPost)
	protected.HandleFunc("/pantries/{code}/items/{id}", h.Item.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/pantries/{code}/items/{id}", h.Item.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/pantries/{code}/shopping", h.Shopping.List).Methods(http.MethodGet)
	protected.HandleFunc("/pantries/{code}/shopping", h.Shopping.Create).Methods(http.MethodPost)
	protected.HandleFunc("/pantries/{code}/shopping/{id}", h.Shopping.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/pantries/{code}/shopping/{id}", h.Shopping.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/pantries/{code}/shopping/{id}/purchase", h.Shopping.Purchase).Methods(http.MethodPost)

	protected.HandleFunc("/pantries/{code}/recipes", h.Recipe.Suggest).Methods(http.MethodGet)
	protected.HandleFunc("/recipes", h.Recipe.Search).Methods(http.MethodGet)

	protected.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/schedule", h.Notification.GetSchedule).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/schedule", h.Notification.SetSchedule).Methods(http.MethodPut)
	protected.HandleFunc("/notifications/{id}/read", h.Notification.MarkRead).Methods(http.MethodPost)

	// Apply middleware in order: Recovery -> Logging -> CORS -> routes
	var handler http.Handler = r
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
