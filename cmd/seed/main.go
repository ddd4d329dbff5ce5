package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"beacon-chat/config"
	"beacon-chat/internal/domain/user"
	"beacon-chat/internal/repository"
	"beacon-chat/internal/services"
	"beacon-chat/internal/store"
)

// Seeds users into the state file from a JSON array and prints an access
// token per user. User registration is owned by an external identity
// service in production; this tool stands in for it in dev environments.
func main() {
	var usersPath string
	flag.StringVar(&usersPath, "users", "seed-users.json", "path to JSON array of users")
	flag.Parse()

	cfg := config.LoadConfig()

	st, err := store.Open(cfg.StatePath)
	if err != nil {
		log.Fatalf("Failed to open state store: %v", err)
	}

	data, err := os.ReadFile(usersPath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", usersPath, err)
	}
	var users []user.User
	if err := json.Unmarshal(data, &users); err != nil {
		log.Fatalf("Failed to parse %s: %v", usersPath, err)
	}

	userRepo := repository.NewUserRepository(st)
	auth := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpiryMin, userRepo)

	ctx := context.Background()
	for i := range users {
		if users[i].Perm == 0 {
			users[i].Perm = user.PermMember
		}
		if err := userRepo.Create(ctx, &users[i]); err != nil {
			log.Printf("skipping %s: %v", users[i].Handle, err)
			continue
		}
		token, err := auth.IssueToken(ctx, users[i].ID)
		if err != nil {
			log.Fatalf("Failed to issue token for %s: %v", users[i].Handle, err)
		}
		fmt.Printf("%s\t%d\t%s\n", users[i].Handle, users[i].ID, token)
	}
}
