package repo

import "github.com/inventory-suite/product-catalog/internal/models"

// ProductRepository defines the interface for product data operations.
// It is the only writer of audit entries: Update appends one entry whenever
// the stock value changes, in the same transactional unit as the update.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByName(name string) (models.Product, error)
	Update(product models.Product, actor, remark string) (models.Product, error)
	Delete(id int) error
	Filter(pf ProductFilter) ([]models.Product, int, error)
	GetHistory(productID int) ([]models.AuditEntry, error)
	Categories() ([]string, error)
}
