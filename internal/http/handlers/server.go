package handlers

import (
	"net/http"

	"github.com/inventory-suite/product-catalog/internal/redissvc"
	repo "github.com/inventory-suite/product-catalog/internal/repo"
)

var (
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository

	redisService *redissvc.RedisService
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetRedisService(rs *redissvc.RedisService) {
	redisService = rs
}

// HealthHandler godoc
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]string{"message": "catalog backend is running"})
}
