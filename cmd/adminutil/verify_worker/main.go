package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/homeserve/api/internal/config"
	"github.com/homeserve/api/internal/db"
)

// verify_worker marks a worker profile as verified by the account email.
// Usage:
//   go run cmd/adminutil/verify_worker/main.go -email worker@example.com
func main() {
	email := flag.String("email", "", "Email of the worker to verify")
	flag.Parse()

	if *email == "" {
		log.Fatalf("usage: go run cmd/adminutil/verify_worker/main.go -email worker@example.com")
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

	ct, err := db.Conn.Exec(ctx, `
		UPDATE worker_profiles SET verified = TRUE, updated_at = NOW()
		WHERE user_id = (SELECT id FROM users WHERE email = $1 AND role = 'worker')
	`, *email)
	if err != nil {
		log.Fatalf("failed to verify worker: %v", err)
	}
	if ct.RowsAffected() == 0 {
		log.Fatalf("no worker found with email: %s", *email)
	}

	fmt.Printf("Worker %s verified.\n", *email)
}
