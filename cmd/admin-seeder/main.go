package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	customerpostgres "github.com/marketcore/go-gin-market-server/internal/domains/customers/adapters/persistence/postgres"
	customerdomain "github.com/marketcore/go-gin-market-server/internal/domains/customers/domain"
	customerports "github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"
	platformpostgres "github.com/marketcore/go-gin-market-server/internal/platform/postgres"
)

// Seeds the bootstrap admin account. Safe to run repeatedly: an existing
// admin with the configured username is left untouched.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	username := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot seed admin")
	}

	repo := customerpostgres.NewRepository(db)
	if _, err := repo.GetByUsername(ctx, username); err == nil {
		log.Printf("admin %q already exists, nothing to do", username)
		return
	} else if !errors.Is(err, customerports.ErrNotFound) {
		log.Fatalf("failed to look up admin: %v", err)
	}

	if err := customerdomain.ValidatePassword(password); err != nil {
		log.Fatalf("invalid admin password: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	admin, err := customerdomain.NewCustomer(0, envDefault("ADMIN_FULL_NAME", "Administrator"), username, string(hash), 30)
	if err != nil {
		log.Fatalf("failed to build admin account: %v", err)
	}
	admin.IsAdmin = true
	if _, err := repo.Save(ctx, admin); err != nil {
		log.Fatalf("failed to save admin account: %v", err)
	}
	log.Printf("admin %q created", username)
}

func envDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
