package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"pharmacy-options-service/internal/adapters/pricing"
	"pharmacy-options-service/internal/adapters/search"
	"pharmacy-options-service/internal/adapters/snapshot"
	"pharmacy-options-service/internal/api"
	"pharmacy-options-service/internal/config"
	"pharmacy-options-service/internal/platform/db"
	"pharmacy-options-service/internal/ports"
	"pharmacy-options-service/internal/services"
)

// main is the application composition root.
// It wires the collaborator clients and snapshot sink behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	searchURL := os.Getenv("URL_SEARCH")
	if strings.TrimSpace(searchURL) == "" {
		log.Fatal("URL_SEARCH is required")
	}
	priceURL := os.Getenv("URL_PRICE")
	if strings.TrimSpace(priceURL) == "" {
		log.Fatal("URL_PRICE is required")
	}

	port := config.Get("PORT", "8080")
	timeout := config.Duration("COLLABORATOR_TIMEOUT", 10*time.Second)

	tzName := config.Get("REFERENCE_TZ", "Asia/Almaty")
	location, err := time.LoadLocation(tzName)
	if err != nil {
		log.Fatalf("invalid REFERENCE_TZ %q: %v", tzName, err)
	}

	searcher, err := search.NewHTTPSearcher(searchURL, timeout)
	if err != nil {
		log.Fatal(err)
	}
	pricer, err := pricing.NewHTTPPricer(priceURL, timeout)
	if err != nil {
		log.Fatal(err)
	}

	sink, cleanup, err := buildSnapshotSink()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	recommender := &services.Recommender{
		Searcher:  searcher,
		Pricer:    pricer,
		Snapshots: sink,
		Location:  location,
	}

	origins := strings.Split(config.Get("ALLOW_ORIGINS", "*"), ",")
	router := api.NewRouter(recommender, origins)

	// Write timeout leaves room for the search call plus the quote fan-out
	// at the collaborator timeout each.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildSnapshotSink selects the snapshot backend from SNAPSHOT_BACKEND:
// "postgres", "redis", or anything else for the no-op sink.
func buildSnapshotSink() (ports.SnapshotSink, func(), error) {
	switch config.Get("SNAPSHOT_BACKEND", "off") {
	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			log.Fatal("DATABASE_URL is required when SNAPSHOT_BACKEND=postgres")
		}
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := snapshot.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return snapshot.NewSQLSnapshotStore(conn), func() { conn.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: config.Get("REDIS_ADDR", "localhost:6379"),
		})
		ttl := config.Duration("SNAPSHOT_TTL", 24*time.Hour)
		return snapshot.NewRedisSnapshotStore(client, ttl), func() { client.Close() }, nil

	default:
		return snapshot.NoopSink{}, func() {}, nil
	}
}
