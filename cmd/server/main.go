package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"moving-dispatch-service/internal/adapters/agents"
	"moving-dispatch-service/internal/adapters/market"
	"moving-dispatch-service/internal/adapters/repositories"
	"moving-dispatch-service/internal/api"
	"moving-dispatch-service/internal/config"
	"moving-dispatch-service/internal/platform/db"
	"moving-dispatch-service/internal/ports"
	"moving-dispatch-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Redis agent pool, Postgres audit, simulated
// market feed) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	redisAddr := config.Get("REDIS_ADDR", "localhost:6379")

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       config.GetInt("REDIS_DB", 0),
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("redis ping addr=%s: %v", redisAddr, err)
	}
	pool := agents.NewRedisAgentPool(rdb)

	// Quote auditing is optional; without DATABASE_URL the service still
	// matches, routes, and quotes, but GET /quotes is unavailable.
	var quoteRepo ports.QuoteRepository
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		if err := repositories.InitSchema(pg); err != nil {
			log.Fatal(err)
		}
		quoteRepo = repositories.NewPgQuoteRepository(pg)
	} else {
		log.Println("DATABASE_URL not set, quote auditing disabled")
	}

	provider := market.NewSimulatedMarketProvider(time.Now().UnixNano())
	engine := services.NewPricingEngine(services.DefaultPricingConfig(), provider)

	router := api.NewRouter(
		pool,
		services.DefaultMatchingConfig(),
		services.DefaultRoutingConfig(),
		engine,
		quoteRepo,
	)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
