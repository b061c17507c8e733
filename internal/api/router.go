package api

import (
	"net/http"

	"moving-dispatch-service/internal/api/handlers"
	"moving-dispatch-service/internal/ports"
	"moving-dispatch-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// quoteRepo may be nil; the audit endpoints then report unavailable.
func NewRouter(
	agents ports.AgentProvider,
	matchCfg services.MatchingConfig,
	routeCfg services.RoutingConfig,
	pricing *services.PricingEngine,
	quoteRepo ports.QuoteRepository,
) http.Handler {
	mux := http.NewServeMux()

	matchHandler := &handlers.MatchHandler{Agents: agents, Config: matchCfg}
	routeHandler := &handlers.RouteHandler{Config: routeCfg}
	quoteHandler := &handlers.QuoteHandler{Engine: pricing, Repo: quoteRepo}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/matches", matchHandler.Find)
	mux.HandleFunc("/matches/instant", matchHandler.Instant)
	mux.HandleFunc("/routes/optimize", routeHandler.Optimize)
	mux.HandleFunc("/quotes", quoteHandler.Quotes)

	return loggingMiddleware(mux)
}
