package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stockroom/internal/config"
	"stockroom/internal/db"
	"stockroom/internal/model"
	"stockroom/internal/repository"
)

// seedPassword is the login password for every demo account.
const seedPassword = "password123"

type seedUser struct {
	FirstName string
	LastName  string
	Username  string
	Items     []model.Item
}

var seedUsers = []seedUser{
	{
		FirstName: "Ann", LastName: "Lee", Username: "ann",
		Items: []model.Item{
			{ItemName: "Ergonomic Steel Chair", Description: "The Football Is Good For Training And Recreational Purposes", Quantity: 12},
			{ItemName: "Practical Granite Shirt", Description: "New ABC 13 9370, 13.3, 5th Gen CoreA5-8250U, 8GB RAM, 256GB SSD, power UHD Graphics, OS 10 Home, OS Office A & J 2016", Quantity: 3},
		},
	},
	{
		FirstName: "Bob", LastName: "Nguyen", Username: "bobn",
		Items: []model.Item{
			{ItemName: "Rustic Wooden Keyboard", Description: "The beautiful range of Apple Naturals that has an exciting mix of natural ingredients", Quantity: 7},
		},
	},
	{
		FirstName: "Cara", LastName: "Okafor", Username: "cara_o",
		Items: []model.Item{
			{ItemName: "Incredible Concrete Towels", Description: "The automobile layout consists of a front-engine design", Quantity: 48},
			{ItemName: "Handmade Cotton Gloves", Description: "", Quantity: 0},
			{ItemName: "Refined Plastic Bacon", Description: "Carbonite web goalkeeper gloves are ergonomically designed to give easy fit", Quantity: 21},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Item{}, &model.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	items := repository.NewItemRepository(gormDB)

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	created, skipped := 0, 0
	for _, su := range seedUsers {
		if _, err := users.FindByUsername(ctx, su.Username); err == nil {
			log.Printf("User %q already exists, skipping", su.Username)
			skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check user %q: %v", su.Username, err)
		}

		user := &model.User{
			FirstName:    su.FirstName,
			LastName:     su.LastName,
			Username:     su.Username,
			PasswordHash: string(hashed),
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %q: %v", su.Username, err)
		}

		for _, it := range su.Items {
			it.UserID = user.ID
			if err := items.Create(ctx, &it); err != nil {
				log.Fatalf("Failed to create item %q: %v", it.ItemName, err)
			}
		}
		created++
	}

	log.Printf("Seed complete: %d users created, %d skipped (password for all: %s)", created, skipped, seedPassword)
}
