package main

import (
	"log"
	"os"

	"shopcart/internal/database"
)

// Clears persisted refresh tokens for blocked accounts, so a blocked user's
// session dies even before their next request hits the auth gate.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	res := db.Exec(`UPDATE users SET refresh_token = '' WHERE blocked = true AND refresh_token <> ''`)
	if res.Error != nil {
		log.Fatalf("session cleanup failed: %v", res.Error)
	}

	log.Printf("session cleanup completed: sessions_revoked=%d", res.RowsAffected)
}
