package database

import (
	"context"
	"database/sql"
	"log"
	"time"

	"dinebot/config"

	_ "github.com/lib/pq"
)

// DB is the global Postgres handle.
var DB *sql.DB

// InitDB opens the Postgres connection pool and verifies it.
func InitDB() {
	db, err := sql.Open("postgres", config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open Postgres connection: %v", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping Postgres: %v", err)
	}

	DB = db
	log.Println("Connected to PostgreSQL successfully!")
}

// CloseDB closes the global connection pool.
func CloseDB() {
	if DB != nil {
		if err := DB.Close(); err != nil {
			log.Printf("failed to close Postgres connection: %v", err)
		}
	}
}
