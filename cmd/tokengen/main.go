// tokengen mints a bearer token for a user id, for local development and
// scripted API access.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/home-inventory/backend/internal/auth"
	"github.com/home-inventory/backend/internal/config"
)

func main() {
	userFlag := flag.String("user", "", "user id (uuid); random when empty")
	ttlFlag := flag.Duration("ttl", 0, "token lifetime (default from config)")
	flag.Parse()

	cfg := config.Load()

	userID := uuid.New()
	if *userFlag != "" {
		parsed, err := uuid.Parse(*userFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid user id: %v\n", err)
			os.Exit(1)
		}
		userID = parsed
	}

	ttl := cfg.JWTExpiration
	if *ttlFlag > 0 {
		ttl = *ttlFlag
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	token, err := auth.GenerateJWT(cfg.JWTSecret, userID, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("user: %s\ntoken: %s\n", userID, token)
}
