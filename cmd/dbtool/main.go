package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"strings"
	"time"

	"shipment-tracker-web/internal/adapters/sessions"
	"shipment-tracker-web/internal/config"
	"shipment-tracker-web/internal/platform/db"
)

// dbtool prepares the SQL session stores ahead of deployment and purges
// expired sessions. Run it from cron for the postgres backend; the sqlite
// store drops expired rows lazily on read.
func main() {
	purge := flag.Bool("purge", false, "delete expired sessions after initializing the schema")
	flag.Parse()

	config.LoadDotEnv()

	backend := config.Get("SESSION_BACKEND", config.SessionBackendPostgres)

	switch backend {
	case config.SessionBackendPostgres:
		databaseURL := config.Get("DATABASE_URL", "")
		if strings.TrimSpace(databaseURL) == "" {
			log.Fatal("DATABASE_URL is required")
		}

		conn, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		initSchema(conn, sessions.InitPostgresSchema)
		if *purge {
			purgeExpired(sessions.NewSQLSessionStore(conn))
		}

	case config.SessionBackendSQLite:
		conn, err := db.OpenSQLite(config.Get("DB_PATH", "data/sessions.db"))
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		initSchema(conn, sessions.InitSQLiteSchema)
		if *purge {
			log.Println("sqlite sessions expire on read; nothing to purge")
		}

	default:
		log.Fatalf("SESSION_BACKEND %q has no SQL schema", backend)
	}
}

func initSchema(conn *sql.DB, init func(*sql.DB) error) {
	log.Println("Initializing session schema...")
	if err := init(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}

func purgeExpired(store *sessions.SQLSessionStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("Purging expired sessions...")
	n, err := store.PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("purge failed: %v", err)
	}
	log.Printf("Purge complete. removed=%d", n)
}
