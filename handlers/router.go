package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"healthtrack-server/middleware"
	"healthtrack-server/services"
	"healthtrack-server/utils/errors"
	"healthtrack-server/utils/metrics"
)

type RouterConfig struct {
	Services       *services.Services
	Log            *zap.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	// AuthLimiter throttles /api/auth; nil disables throttling.
	AuthLimiter *middleware.RateLimiter
}

// NewRouter wires every route. CORS wraps the router itself so preflight
// requests are answered before route matching.
func NewRouter(cfg RouterConfig) http.Handler {
	svc := cfg.Services
	authHandler := NewAuthHandler(svc.Auth, svc.Users)
	userHandler := NewUserHandler(svc.Users)
	friendHandler := NewFriendHandler(svc.Friends)
	healthHandler := NewHealthHandler(svc.Health)
	exerciseHandler := NewExerciseHandler(svc.Exercises)
	medicationHandler := NewMedicationHandler(svc.Medications)

	r := mux.NewRouter()
	r.Use(middleware.ErrorMiddleware(cfg.Log))
	r.Use(middleware.RequestLogger(cfg.Log, cfg.Metrics))
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteError(w, errors.ErrNotFound.WithMessage("Endpoint bulunamadı"))
	})

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()

	// Auth routes
	authRouter := api.PathPrefix("/auth").Subrouter()
	if cfg.AuthLimiter != nil {
		authRouter.Use(cfg.AuthLimiter.Handler)
	}
	authRouter.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	jwt := middleware.JWTMiddleware(svc.Auth)
	authRouter.Handle("/me", jwt(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(jwt)

	// Users
	protected.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}", userHandler.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/users/{id}/avatar", userHandler.UpdateAvatar).Methods(http.MethodPut)
	protected.HandleFunc("/users/{id}/points", userHandler.AdjustPoints).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{id}/progress", userHandler.Progress).Methods(http.MethodGet)

	// Friends
	protected.HandleFunc("/friends", friendHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/friends/request", friendHandler.SendRequest).Methods(http.MethodPost)
	protected.HandleFunc("/friends/requests", friendHandler.ListRequests).Methods(http.MethodGet)
	protected.HandleFunc("/friends/accept", friendHandler.Accept).Methods(http.MethodPost)
	protected.HandleFunc("/friends/reject", friendHandler.Reject).Methods(http.MethodPost)
	protected.HandleFunc("/friends/ranking", friendHandler.Ranking).Methods(http.MethodGet)
	protected.HandleFunc("/friends/{id}", friendHandler.Remove).Methods(http.MethodDelete)

	// Records
	protected.HandleFunc("/health-data", healthHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/health-data", healthHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/health-data/{id}", healthHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/health-data/{id}", healthHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/health-data/{id}", healthHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/exercises", exerciseHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/exercises", exerciseHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/exercises/{id}", exerciseHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/exercises/{id}", exerciseHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/medications", medicationHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/medications", medicationHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/medications/{id}", medicationHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/medications/{id}", medicationHandler.Delete).Methods(http.MethodDelete)

	if len(cfg.AllowedOrigins) == 0 {
		return r
	}
	return middleware.CORSMiddleware(cfg.AllowedOrigins)(r)
}
