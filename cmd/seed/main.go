package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/aldisetiawan/go-user-address-api/config"
	"github.com/aldisetiawan/go-user-address-api/internal/domain/entity"
	"github.com/aldisetiawan/go-user-address-api/internal/infrastructure/postgres"
	"github.com/aldisetiawan/go-user-address-api/pkg/helpers"
)

type seedUser struct {
	user      entity.User
	password  string
	addresses []entity.Address
}

var seeds = []seedUser{
	{
		user: entity.User{
			Email:       "admin@example.com",
			FirstName:   "Ada",
			LastName:    "Admin",
			IsActive:    true,
			Roles:       []string{"admin", "user"},
			PhoneNumber: "+14155550100",
		},
		password: "admin123",
		addresses: []entity.Address{
			{Street: "1 Admin Plaza", City: "San Francisco", State: "CA", PostalCode: "94105", Country: "USA", IsDefault: true},
		},
	},
	{
		user: entity.User{
			Email:       "john.doe@example.com",
			FirstName:   "John",
			LastName:    "Doe",
			IsActive:    true,
			Roles:       []string{"user"},
			PhoneNumber: "+14155550101",
		},
		password: "password1",
		addresses: []entity.Address{
			{Street: "42 Elm Street", City: "Springfield", State: "IL", PostalCode: "62701", Country: "USA", IsDefault: true},
			{Street: "7 Oak Avenue", City: "Chicago", State: "IL", PostalCode: "60601", Country: "USA"},
		},
	},
	{
		user: entity.User{
			Email:       "jane.roe@example.com",
			FirstName:   "Jane",
			LastName:    "Roe",
			IsActive:    true,
			Roles:       []string{"user"},
			PhoneNumber: "+14155550102",
		},
		password: "password2",
		addresses: []entity.Address{
			{Street: "9 Maple Drive", City: "Austin", State: "TX", PostalCode: "73301", Country: "USA", IsDefault: true},
		},
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	addresses := postgres.NewAddressRepository(pool)

	for _, s := range seeds {
		existing, err := users.GetByEmail(ctx, s.user.Email)
		if err != nil {
			log.Fatalf("lookup %s: %v", s.user.Email, err)
		}
		if existing != nil {
			log.Printf("skip %s: already seeded", s.user.Email)
			continue
		}

		hash, err := helpers.HashPassword(s.password)
		if err != nil {
			log.Fatalf("hash password for %s: %v", s.user.Email, err)
		}
		u := s.user
		u.Password = hash
		created, err := users.Create(ctx, &u)
		if err != nil {
			log.Fatalf("create %s: %v", s.user.Email, err)
		}

		for _, a := range s.addresses {
			a.UserID = created.ID
			if _, err := addresses.Create(ctx, &a); err != nil {
				log.Fatalf("create address for %s: %v", s.user.Email, err)
			}
		}
		log.Printf("seeded %s with %d address(es)", created.Email, len(s.addresses))
	}
	log.Println("seeding complete")
}
