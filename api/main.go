package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/inventory-suite/product-catalog/internal/auth"
	"github.com/inventory-suite/product-catalog/internal/config"
	"github.com/inventory-suite/product-catalog/internal/db"
	api "github.com/inventory-suite/product-catalog/internal/http"
	"github.com/inventory-suite/product-catalog/internal/http/handlers"
	rl "github.com/inventory-suite/product-catalog/internal/http/rate_limiter"
	"github.com/inventory-suite/product-catalog/internal/models"
	"github.com/inventory-suite/product-catalog/internal/redissvc"
	"github.com/inventory-suite/product-catalog/internal/repo"
)

// @title Product Catalog API
// @version 1.0
// @description REST API for a product catalog with an append-only stock audit trail.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	auth.SetSecret(cfg.JWTSecret)

	go rl.StartVisitorCleanupLoop()

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unavailable, category caching disabled: %v", err)
	} else {
		handlers.SetRedisService(redissvc.NewRedisService(rdb, ctx))
		defer rdb.Close()
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	userRepo := repo.NewPostgresUserRepository(database)
	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetUserRepo(userRepo)

	seedDefaultUsers(userRepo, cfg)

	r := api.NewRouter()
	log.Printf("✅ Server running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}

// seedDefaultUsers provisions the default admin and client accounts when they
// do not exist yet.
func seedDefaultUsers(users repo.UserRepository, cfg config.Config) {
	seed := []struct {
		username string
		password string
		role     string
	}{
		{"admin", cfg.AdminPassword, "admin"},
		{"client", cfg.ClientPassword, "client"},
	}

	for _, s := range seed {
		if _, err := users.GetByUsername(s.username); err == nil {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("could not hash seed password for %s: %v", s.username, err)
			continue
		}
		_, err = users.CreateUser(models.User{
			Username:     s.username,
			PasswordHash: string(hash),
			Role:         s.role,
		})
		if err != nil && !errors.Is(err, repo.ErrDuplicateUsername) {
			log.Printf("could not seed user %s: %v", s.username, err)
		}
	}
}
