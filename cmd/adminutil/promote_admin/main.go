package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/homeserve/api/internal/config"
	"github.com/homeserve/api/internal/db"
)

// promote_admin sets a user's role to 'admin' by email.
// Usage:
//   go run cmd/adminutil/promote_admin/main.go -email user@example.com
func main() {
	email := flag.String("email", "", "Email of the user to promote to admin")
	flag.Parse()

	if *email == "" {
		log.Fatalf("usage: go run cmd/adminutil/promote_admin/main.go -email user@example.com")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	if err := db.Init(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	defer db.Close()

	ct, err := db.Conn.Exec(ctx, `UPDATE users SET role = 'admin', updated_at = NOW() WHERE email = $1`, *email)
	if err != nil {
		log.Fatalf("failed to promote user to admin: %v", err)
	}
	if ct.RowsAffected() == 0 {
		log.Fatalf("no user found with email: %s", *email)
	}

	fmt.Printf("User %s promoted to admin.\n", *email)
}
