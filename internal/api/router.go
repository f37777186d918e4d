package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/promoarcade/snakesladders/internal/api/handler"
	apimiddleware "github.com/promoarcade/snakesladders/internal/api/middleware"
	"github.com/promoarcade/snakesladders/internal/dependencies/clock"
	"github.com/promoarcade/snakesladders/internal/middleware"
	"github.com/promoarcade/snakesladders/internal/services/adminauth"
	"github.com/promoarcade/snakesladders/internal/services/game"
	"github.com/promoarcade/snakesladders/internal/services/grants"
	"github.com/promoarcade/snakesladders/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	GrantsService  *grants.Service
	AuthService    *adminauth.Service
	Storage        storage.Storage
	Clock          clock.Clock
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.GameController)
	adminHandler := handler.NewAdminHandler(cfg.GameController, cfg.GrantsService, cfg.AuthService, cfg.Storage, cfg.Clock)

	adminAuthMiddleware := apimiddleware.AdminAuth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth; the game is open to anyone with the link)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/players/state", playerHandler.State).Methods(http.MethodGet)
	api.HandleFunc("/players/roll", playerHandler.Roll).Methods(http.MethodPost)

	// Admin login is outside the Basic auth wall so the frontend can
	// verify credentials first
	api.HandleFunc("/admin/login", adminHandler.Login).Methods(http.MethodPost)

	// Admin routes (Basic auth)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(adminAuthMiddleware)
	admin.HandleFunc("/players", adminHandler.ListPlayers).Methods(http.MethodGet)
	admin.HandleFunc("/players", adminHandler.DeletePlayer).Methods(http.MethodDelete)
	admin.HandleFunc("/players/reset", adminHandler.ResetPlayer).Methods(http.MethodPost)
	admin.HandleFunc("/grants", adminHandler.Grant).Methods(http.MethodPost)
	admin.HandleFunc("/grants/undo", adminHandler.UndoGrant).Methods(http.MethodPost)
	admin.HandleFunc("/areas/{area}/prize", adminHandler.GetPrizeConfig).Methods(http.MethodGet)
	admin.HandleFunc("/areas/{area}/prize", adminHandler.PutPrizeConfig).Methods(http.MethodPut)
	admin.HandleFunc("/change-password", adminHandler.ChangePassword).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
