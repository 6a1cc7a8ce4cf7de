package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	adapthttp "hydration/internal/adapter/http"
	"hydration/internal/adapter/postgres"
	"hydration/internal/adapter/sqlite"
	"hydration/internal/app"
	"hydration/internal/assist"
	"hydration/internal/domain"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	addr := env("ADDR", ":8080")
	defaultGoal := envInt("DEFAULT_GOAL", app.DefaultGoal)

	repo, closeStore, err := openStore()
	if err != nil {
		log.Fatalf("store open: %v", err)
	}
	defer func() { _ = closeStore() }()

	engine := app.NewEngine(repo, defaultGoal)
	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := engine.Start(startCtx); err != nil {
		// The engine is ready with defaults; mutations will retry
		// against the store on their own.
		log.Printf("startup load failed, continuing with defaults: %v", err)
	}
	cancel()

	dispatcher := assist.NewDispatcher(engine)
	srv := &http.Server{
		Addr:    addr,
		Handler: adapthttp.New(engine, dispatcher).Handler(),
	}

	go func() {
		log.Printf("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// openStore picks PostgreSQL when DATABASE_URL is set and an embedded
// SQLite file otherwise.
func openStore() (domain.ProgressRepository, func() error, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		db, err := postgres.Open(connStr)
		if err != nil {
			return nil, nil, err
		}
		log.Println("using postgres store")
		return db, db.Close, nil
	}

	path := env("SQLITE_PATH", "data/hydration.db")
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("using sqlite store at %s", path)
	return db, db.Close, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("ignoring invalid %s=%q", key, v)
		return fallback
	}
	return n
}
