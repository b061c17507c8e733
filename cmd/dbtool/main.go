package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"moving-dispatch-service/internal/adapters/agents"
	"moving-dispatch-service/internal/adapters/repositories"
	"moving-dispatch-service/internal/config"
	"moving-dispatch-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// dbtool prepares local infrastructure: the Postgres quote-audit schema and a
// seeded Redis agent pool for demo runs.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		initSchema(databaseURL)
	} else {
		log.Println("DATABASE_URL not set, skipping quote schema")
	}

	seedAgents(ctx)
}

func initSchema(databaseURL string) {
	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	log.Println("Initializing quote schema...")
	if err := repositories.InitSchema(pg); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}

func seedAgents(ctx context.Context) {
	redisAddr := config.Get("REDIS_ADDR", "localhost:6379")
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       config.GetInt("REDIS_DB", 0),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis ping addr=%s: %v", redisAddr, err)
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/agents.json")
	log.Println("Seeding agent pool...")
	count, err := agents.SeedFromJSON(ctx, agents.NewRedisAgentPool(rdb), seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeded %d agents.", count)
}
