package main

import (
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"pharmacy-options-service/internal/adapters/snapshot"
	"pharmacy-options-service/internal/platform/db"
)

// dbtool initializes the pipeline snapshot schema so the server can run
// with SNAPSHOT_BACKEND=postgres against a fresh database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing snapshot schema...")
	if err := snapshot.InitSchema(conn); err != nil {
		log.Fatal(err)
	}
	log.Println("Done")
}
