// Command create-admin creates the first super_admin account. It refuses to
// run when the email or username is already taken.
//
// Usage:
//
//	create-admin --username=admin --email=admin@example.com
//
// The password is read from ADMIN_PASSWORD.
//
// Exit codes: 0 = created, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/newsroom-backend/internal/adapter/postgres"
	userrepo "github.com/heartmarshall/newsroom-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/newsroom-backend/internal/app"
	"github.com/heartmarshall/newsroom-backend/internal/auth"
	"github.com/heartmarshall/newsroom-backend/internal/config"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/internal/service/user"
)

func main() {
	username := flag.String("username", "admin", "username of the new administrator")
	email := flag.String("email", "", "email of the new administrator")
	flag.Parse()

	_ = godotenv.Load()

	input := user.CreateInput{
		Username: strings.TrimSpace(*username),
		Email:    domain.NormalizeEmail(*email),
		Password: os.Getenv("ADMIN_PASSWORD"),
		Role:     domain.UserRoleSuperAdmin,
	}
	if err := input.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid input: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: ADMIN_PASSWORD=... create-admin --username=admin --email=admin@example.com")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := auth.NewPasswordHasher(cfg.Auth.PasswordHashCost).Hash(input.Password)
	if err != nil {
		logger.Error("hash password", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}

	created, err := userrepo.New(pool).Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.UserRoleSuperAdmin,
	})
	if err != nil {
		logger.Error("create administrator",
			slog.String("error", err.Error()),
			slog.String("email", input.Email),
		)
		pool.Close()
		os.Exit(1)
	}

	logger.Info("administrator created",
		slog.String("user_id", created.ID.String()),
		slog.String("username", created.Username),
	)
}
