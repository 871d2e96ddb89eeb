package handlers

import "github.com/inventory-suite/product-catalog/internal/models"

type ProductRequest struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    int    `json:"stock"`
	Image    string `json:"image"`
	// User and Remark feed the audit entry when an update changes the stock.
	User   string `json:"user,omitempty"`
	Remark string `json:"remark,omitempty"`
}

type ProductsSearchResult struct {
	Data     []models.Product `json:"data"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

type DuplicateProduct struct {
	Name       string `json:"name"`
	ExistingID int    `json:"existingId"`
}

type ImportProductsResult struct {
	Message    string             `json:"message"`
	Added      int                `json:"added"`
	Skipped    int                `json:"skipped"`
	Duplicates []DuplicateProduct `json:"duplicates"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
