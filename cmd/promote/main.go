// Command promote grants super_admin to an existing user by email address.
// It is used to bootstrap the first administrator when the account was
// registered through the API.
//
// Usage:
//
//	promote --email=user@example.com [--role=super_admin]
//
// Exit codes: 0 = promoted, 1 = error or nothing to change.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/newsroom-backend/internal/adapter/postgres"
	userrepo "github.com/heartmarshall/newsroom-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/newsroom-backend/internal/config"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

func main() {
	email := flag.String("email", "", "email of the user to promote")
	role := flag.String("role", string(domain.UserRoleSuperAdmin), "role to grant (user or super_admin)")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --email=user@example.com [--role=super_admin]")
		os.Exit(1)
	}
	target := domain.UserRole(*role)
	if !target.IsValid() || target.RequiresDomain() {
		log.Fatalf("role %q cannot be granted without a domain; use the users API", *role)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	ok, err := userrepo.New(pool).PromoteByEmail(ctx, *email, target)
	if err != nil {
		log.Fatalf("update role: %v", err)
	}
	if !ok {
		fmt.Printf("No user found with email %q, or already %s.\n", *email, target)
		pool.Close()
		os.Exit(1)
	}

	fmt.Printf("User %q promoted to %s.\n", *email, target)
}
