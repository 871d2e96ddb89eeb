package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	models "github.com/inventory-suite/product-catalog/internal/models"
	repo "github.com/inventory-suite/product-catalog/internal/repo"
)

// ListProductsHandler godoc
// @Summary Search, filter and paginate the catalog
// @Tags products
// @Produce json
// @Param search query string false "Case-insensitive substring match on name"
// @Param category query string false "Exact category ('All' means no filter)"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Param sort query string false "Sort field (id|name|category|brand|stock|created_at|updated_at)"
// @Param order query string false "Sort order (asc|desc)"
// @Success 200 {object} ProductsSearchResult
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
// @Security BearerAuth
func ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repo.ProductFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
		Page:     parseIntDefault(q.Get("page"), 0),
		PageSize: parseIntDefault(q.Get("pageSize"), 0),
	}
	filter = filter.Normalize()

	products, total, err := productRepo.Filter(filter)
	if err != nil {
		log.Printf("could not filter products: %v", err)
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	_ = writeJSON(w, http.StatusOK, ProductsSearchResult{
		Data:     products,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
}

// parseIntDefault coerces non-numeric input to def instead of failing;
// the filter normalization clamps the rest.
func parseIntDefault(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Failure 400 {object} []ProductValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products [post]
// @Security BearerAuth
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	created, err := productRepo.Create(models.Product{
		Name:     req.Name,
		Unit:     req.Unit,
		Category: req.Category,
		Brand:    req.Brand,
		Stock:    req.Stock,
		Image:    req.Image,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateName) {
			http.Error(w, "product name already exists", http.StatusBadRequest)
			return
		}
		log.Printf("could not create product: %v", err)
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	invalidateCategories()
	_ = writeJSON(w, http.StatusCreated, created)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
// @Security BearerAuth
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	_ = writeJSON(w, http.StatusOK, product)
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Replaces all mutable fields. When the stock value changes, one
// audit entry is recorded with the supplied user/remark in the same transaction.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} models.Product
// @Failure 400 {object} []ProductValidationError
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
// @Security BearerAuth
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	actor := req.User
	if actor == "" {
		actor = requesterUsername(r)
	}
	if actor == "" {
		actor = "system"
	}

	updated, err := productRepo.Update(models.Product{
		ID:       id,
		Name:     req.Name,
		Unit:     req.Unit,
		Category: req.Category,
		Brand:    req.Brand,
		Stock:    req.Stock,
		Image:    req.Image,
	}, actor, req.Remark)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrDuplicateName):
			http.Error(w, "product name already exists", http.StatusBadRequest)
		default:
			log.Printf("could not update product %d: %v", id, err)
			http.Error(w, "could not update product", http.StatusInternalServerError)
		}
		return
	}

	invalidateCategories()
	_ = writeJSON(w, http.StatusOK, updated)
}

// DeleteProductHandler godoc
// @Summary Delete a product and its audit history
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
// @Security BearerAuth
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if err := productRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Printf("could not delete product %d: %v", id, err)
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}

	invalidateCategories()
	w.WriteHeader(http.StatusNoContent)
}
