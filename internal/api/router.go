package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/batepapo/internal/api/handler"
	"github.com/mcoot/batepapo/internal/api/middleware"
	basemiddleware "github.com/mcoot/batepapo/internal/middleware"
	"github.com/mcoot/batepapo/internal/services/exchange"
	"github.com/mcoot/batepapo/internal/services/registry"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger   *slog.Logger
	Registry *registry.Service
	Exchange *exchange.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	participantHandler := handler.NewParticipantHandler(cfg.Registry)
	messageHandler := handler.NewMessageHandler(cfg.Exchange)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(basemiddleware.RequestID)
	r.Use(basemiddleware.Logging(cfg.Logger))
	r.Use(middleware.Identity)

	r.HandleFunc("/participants", participantHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/participants", participantHandler.List).Methods(http.MethodGet)

	r.HandleFunc("/messages", messageHandler.Post).Methods(http.MethodPost)
	r.HandleFunc("/messages", messageHandler.History).Methods(http.MethodGet)

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// CORS wraps the router so preflight requests are answered before route matching
	return middleware.CORS()(r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
