package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/skillswap-api/config"
	"github.com/oksasatya/skillswap-api/internal/application"
	"github.com/oksasatya/skillswap-api/internal/infrastructure/backend"
	"github.com/oksasatya/skillswap-api/pkg/apperror"
	"github.com/oksasatya/skillswap-api/pkg/helpers"
)

type demoUser struct {
	email, password, name string
	profile               application.ProfileInput
}

var demoUsers = []demoUser{
	{
		email: "alice@example.com", password: "password123", name: "Alice",
		profile: application.ProfileInput{
			Bio:            "Backend developer who wants to draw.",
			SkillsOffering: "Go, PostgreSQL",
			SkillsSeeking:  "Illustration",
			Availability:   "Weekday evenings",
		},
	},
	{
		email: "bob@example.com", password: "password123", name: "Bob",
		profile: application.ProfileInput{
			Bio:            "Illustrator learning to code.",
			SkillsOffering: "Illustration, Figma",
			SkillsSeeking:  "Go",
			Availability:   "Weekends",
		},
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	if cfg.StorageDriver == config.StorageMemory {
		log.Fatal("seeding the in-memory store has no effect; set STORAGE_DRIVER=mongo or postgres")
	}
	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	if store.Close != nil {
		defer store.Close()
	}

	dir := application.NewDirectory(store.Users, nil, logger)
	users := application.NewUserService(store.Users, nil, dir, logger, nil)
	requests := application.NewRequestService(store.Requests, store.Users, dir, nil, logger, nil)

	seeded := make([]*application.PublicUser, 0, len(demoUsers))
	for _, d := range demoUsers {
		u, err := users.Register(ctx, d.email, d.password, d.name)
		switch {
		case err == nil:
			fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, d.email, d.password)
		case apperror.KindOf(err) == apperror.KindConflict:
			if u, err = users.Authenticate(ctx, d.email, d.password); err != nil {
				log.Fatalf("user %s exists with a different password: %v", d.email, err)
			}
			fmt.Printf("user exists: id=%s email=%s\n", u.ID, d.email)
		default:
			log.Fatalf("failed to seed user %s: %v", d.email, err)
		}
		if u, err = users.UpdateProfile(ctx, u.ID, d.profile); err != nil {
			log.Fatalf("failed to set profile for %s: %v", d.email, err)
		}
		seeded = append(seeded, u)
	}

	existing, err := requests.ListForUser(ctx, seeded[0].ID)
	if err != nil {
		log.Fatalf("failed to list requests: %v", err)
	}
	if len(existing) > 0 {
		fmt.Println("sample swap request already present")
		return
	}
	req, err := requests.Create(ctx, seeded[0], seeded[1].ID, "Go lessons for illustration tips?")
	if err != nil {
		log.Fatalf("failed to create sample request: %v", err)
	}
	fmt.Printf("seeded swap request: id=%s %s -> %s\n", req.ID, seeded[0].Name, seeded[1].Name)
}
