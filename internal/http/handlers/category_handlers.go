package handlers

import (
	"log"
	"net/http"
)

// GetCategoriesHandler godoc
// @Summary List the distinct categories in use
// @Description Cached in redis with a short TTL; writers invalidate the cache.
// @Tags products
// @Produce json
// @Success 200 {array} string
// @Failure 500 {string} string "Internal error"
// @Router /products/categories [get]
// @Security BearerAuth
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	if redisService != nil {
		if categories, ok := redisService.CachedCategories(); ok {
			_ = writeJSON(w, http.StatusOK, categories)
			return
		}
	}

	categories, err := productRepo.Categories()
	if err != nil {
		log.Printf("could not fetch categories: %v", err)
		http.Error(w, "could not fetch categories", http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []string{}
	}

	if redisService != nil {
		redisService.StoreCategories(categories)
	}

	_ = writeJSON(w, http.StatusOK, categories)
}

// invalidateCategories drops the cached category list after any write to the
// product set. No-op when redis is not wired (tests, local runs without cache).
func invalidateCategories() {
	if redisService != nil {
		redisService.InvalidateCategories()
	}
}
