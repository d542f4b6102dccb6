package configs

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string
	UploadDir string
	TokenTTL  time.Duration
}

// Load reads the environment (main.go has already overloaded .env into
// it). MONGO_URI, DB_NAME and JWT_SECRET are mandatory.
func Load() (Config, error) {
	cfg := Config{
		Port:      getenv("PORT", "3001"),
		MongoURI:  os.Getenv("MONGO_URI"),
		DBName:    os.Getenv("DB_NAME"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		UploadDir: getenv("UPLOAD_DIR", "./uploads"),
		TokenTTL:  time.Hour,
	}
	if cfg.MongoURI == "" || cfg.DBName == "" {
		return Config{}, fmt.Errorf("MONGO_URI or DB_NAME not set in environment")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
