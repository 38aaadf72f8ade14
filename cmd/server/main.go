package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"shipment-tracker-web/internal/adapters/events"
	"shipment-tracker-web/internal/adapters/sessions"
	"shipment-tracker-web/internal/adapters/strapi"
	"shipment-tracker-web/internal/api"
	"shipment-tracker-web/internal/config"
	"shipment-tracker-web/internal/platform/db"
	"shipment-tracker-web/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Strapi, session store, event publisher) behind
// ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	client, err := strapi.NewClient(cfg.StrapiURL, cfg.StrapiTimeout, cfg.LookupStyle)
	if err != nil {
		log.Fatal(err)
	}

	store, closeStore, err := openSessionStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	pub, err := openPublisher(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pub.Close()

	router := api.NewRouter(api.Deps{
		API:            client,
		Sessions:       store,
		Events:         pub,
		SessionTTL:     cfg.SessionTTL,
		CookieSecure:   cfg.CookieSecure,
		FrontendURL:    cfg.FrontendURL,
		LoginRateLimit: cfg.LoginRateLimit,
	})

	// WriteTimeout leaves room for the slowest page: two writes and a read
	// against the content API, each bounded by STRAPI_TIMEOUT.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      3*cfg.StrapiTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening addr=:%s strapi=%s sessions=%s", cfg.Port, cfg.StrapiURL, cfg.SessionBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown failed: %v", err)
	}
}

func openSessionStore(cfg *config.Config) (ports.SessionStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.SessionBackend {
	case config.SessionBackendSQLite:
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, noop, fmt.Errorf("open session store: %w", err)
		}
		if err := sessions.InitSQLiteSchema(conn); err != nil {
			conn.Close()
			return nil, noop, fmt.Errorf("open session store: %w", err)
		}
		return sessions.NewSqliteSessionStore(conn), conn.Close, nil

	case config.SessionBackendPostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open session store: %w", err)
		}
		if err := sessions.InitPostgresSchema(conn); err != nil {
			conn.Close()
			return nil, noop, fmt.Errorf("open session store: %w", err)
		}
		return sessions.NewSQLSessionStore(conn), conn.Close, nil

	case config.SessionBackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, noop, fmt.Errorf("open session store: ping redis %q: %w", cfg.RedisAddr, err)
		}
		return sessions.NewRedisSessionStore(rdb), rdb.Close, nil

	default:
		return sessions.NewMemorySessionStore(), noop, nil
	}
}

func openPublisher(cfg *config.Config) (ports.EventPublisher, error) {
	if cfg.KafkaBroker == "" {
		log.Println("KAFKA_BROKER not set, activity events go to the log")
		return events.LogPublisher{}, nil
	}

	pub, err := events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
	if err != nil {
		return nil, fmt.Errorf("open publisher: %w", err)
	}
	return pub, nil
}
