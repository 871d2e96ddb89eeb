package repo

import "github.com/inventory-suite/product-catalog/internal/models"

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(user models.User) (models.User, error)
	GetByUsername(username string) (models.User, error)
}
