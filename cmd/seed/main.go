// Seeds the demo accounts: admin@example.com (admin123) and
// user@example.com (useris123).
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"eventboard/configs"
	"eventboard/database"
	"eventboard/internal/storage/mongodb"
	"eventboard/model"
)

func main() {
	if err := godotenv.Overload(".env"); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := configs.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	store, err := mongodb.New(ctx, client, cfg.DBName)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}
	defer store.Close(context.Background())

	seed := []model.User{
		{
			Username:  "Admin",
			Email:     "admin@example.com",
			Password:  "$2a$10$FU46pNnJ7XhVQvpNKeZNLuhGqArYtn45ePcN.QRHPEWQkQgF3gNOS",
			Admin:     true,
			CreatedAt: time.Now().UTC(),
		},
		{
			Username:  "User",
			Email:     "user@example.com",
			Password:  "$2a$10$7bKoVnUfoxoaSfp00HlCy.uFd7/MttZc3NurJoLCFX4YC5GsksxHW",
			CreatedAt: time.Now().UTC(),
		},
	}

	for i := range seed {
		if err := store.CreateUser(ctx, &seed[i]); err != nil {
			log.Printf("seed %s: %v", seed[i].Email, err)
			continue
		}
		log.Printf("seeded %s (%s)", seed[i].Email, seed[i].ID.Hex())
	}
}
