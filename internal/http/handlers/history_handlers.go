package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	models "github.com/inventory-suite/product-catalog/internal/models"
	repo "github.com/inventory-suite/product-catalog/internal/repo"
)

// GetProductHistoryHandler godoc
// @Summary Get a product's stock change history, newest first
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} models.AuditEntry
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/history [get]
// @Security BearerAuth
func GetProductHistoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if _, err := productRepo.GetByID(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	entries, err := productRepo.GetHistory(id)
	if err != nil {
		http.Error(w, "could not fetch history", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}

	_ = writeJSON(w, http.StatusOK, entries)
}
