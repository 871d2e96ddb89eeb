package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the process configuration, resolved from the environment
// with an optional .env file for local runs.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string

	// Seed credentials for the default admin and client accounts.
	AdminPassword  string
	ClientPassword string
}

// Load reads an optional .env file and binds the environment through viper.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "catalog-redis:6379")
	v.SetDefault("JWT_SECRET", "supersecret123")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("CLIENT_PASSWORD", "client123")

	return Config{
		Port:           v.GetString("PORT"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		ClientPassword: v.GetString("CLIENT_PASSWORD"),
	}
}
