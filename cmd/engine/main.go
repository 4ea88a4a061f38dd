package main

import (
	"log"
	"os"

	"github.com/bravoaudit/engine/internal/api"
	"github.com/bravoaudit/engine/internal/db"
)

func main() {
	log.Println("Starting BRAVO ballot-polling audit engine...")

	dbUrl := requireEnv("DATABASE_URL")

	dbConn, err := db.Connect(dbUrl)
	if err != nil {
		log.Fatalf("FATAL: failed to connect to PostgreSQL: %v", err)
	}
	defer dbConn.Close()
	if err := dbConn.InitSchema(); err != nil {
		log.Fatalf("FATAL: schema init failed: %v", err)
	}

	wsHub := api.NewHub()
	go wsHub.Run()

	r := api.SetupRouter(dbConn, wsHub)

	port := getEnvOrDefault("PORT", "8080")

	log.Printf("Audit engine listening on :%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// requireEnv reads a required environment variable and exits if it is not set.
func requireEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("FATAL: required environment variable %s is not set", key)
	}
	return val
}

// getEnvOrDefault returns the env var value or a safe default for non-secret settings.
func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
