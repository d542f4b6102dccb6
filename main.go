package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	"eventboard/configs"
	"eventboard/database"
	_ "eventboard/docs"
	"eventboard/internal/middleware"
	"eventboard/internal/routes"
	"eventboard/internal/storage/mongodb"
	"eventboard/internal/token"
	"eventboard/services"
)

func init() {
	if err := godotenv.Overload(".env"); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
}

// @title        eventboard API
// @version      1.0
// @description  Content-sharing backend with moderation and a like ledger.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("create upload dir: %v", err)
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

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Static("/uploads", cfg.UploadDir)

	app.Use(middleware.Auth(tokens))

	routes.Register(app, routes.Deps{
		Auth:       services.NewAuthService(store, tokens),
		Users:      services.NewModerationService(store),
		Categories: services.NewCategoryService(store),
		Posts:      services.NewPostService(store),
		Likes:      services.NewLikeService(store),
		UploadDir:  cfg.UploadDir,
	})

	log.Printf("listening at http://localhost:%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
