package repo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/inventory-suite/product-catalog/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository. It mirrors the Postgres behavior, including the
// case-insensitive name uniqueness and the audit write on stock changes,
// so the handler suites can run without a database.
type InMemoryProductRepository struct {
	mu        sync.Mutex
	products  []models.Product
	history   []models.AuditEntry
	nextID    int
	nextLogID int
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products:  []models.Product{},
		history:   []models.AuditEntry{},
		nextID:    1,
		nextLogID: 1,
	}
}

func (r *InMemoryProductRepository) findByName(name string) (models.Product, bool) {
	for _, p := range r.products {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return models.Product{}, false
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.findByName(product.Name); exists {
		return models.Product{}, ErrDuplicateName
	}

	now := time.Now().UTC()
	product.ID = r.nextID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves all products ordered by ID.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// GetByName retrieves a product by name, case-insensitively.
func (r *InMemoryProductRepository) GetByName(name string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.findByName(name); ok {
		return p, nil
	}
	return models.Product{}, ErrProductNotFound
}

// Update replaces all mutable fields. When the stock value changes it also
// records one audit entry; both happen under the same lock so no caller can
// observe one without the other.
func (r *InMemoryProductRepository) Update(product models.Product, actor, remark string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if other, ok := r.findByName(product.Name); ok && other.ID != product.ID {
		return models.Product{}, ErrDuplicateName
	}

	for i, p := range r.products {
		if p.ID == product.ID {
			product.CreatedAt = p.CreatedAt
			product.UpdatedAt = time.Now().UTC()
			r.products[i] = product

			if p.Stock != product.Stock {
				r.history = append(r.history, models.AuditEntry{
					ID:          r.nextLogID,
					ProductID:   product.ID,
					OldQuantity: p.Stock,
					NewQuantity: product.Stock,
					ChangedAt:   product.UpdatedAt,
					Actor:       actor,
					Remark:      remark,
				})
				r.nextLogID++
			}
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product and all of its audit entries.
func (r *InMemoryProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)

			kept := r.history[:0]
			for _, e := range r.history {
				if e.ProductID != id {
					kept = append(kept, e)
				}
			}
			r.history = kept
			return nil
		}
	}
	return ErrProductNotFound
}

func matchesCatalogFilter(p models.Product, pf ProductFilter) bool {
	if pf.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Search)) {
		return false
	}
	if pf.Category != "" && p.Category != pf.Category {
		return false
	}
	return true
}

// Filter returns the requested page in the requested order plus the total
// count of matching products. Ties always break by ID ascending so identical
// inputs yield identical output.
func (r *InMemoryProductRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pf = pf.Normalize()

	var filtered []models.Product
	for _, p := range r.products {
		if matchesCatalogFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}

	less := sortLess(pf.Sort)
	desc := pf.Order == "desc"
	sort.Slice(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if less(a, b) {
			return !desc
		}
		if less(b, a) {
			return desc
		}
		// Ties break by ID ascending regardless of order.
		return a.ID < b.ID
	})

	total := len(filtered)
	start := clamp(pf.Offset(), 0, total)
	end := clamp(start+pf.PageSize, start, total)

	page := make([]models.Product, end-start)
	copy(page, filtered[start:end])
	return page, total, nil
}

func sortLess(field string) func(a, b models.Product) bool {
	switch field {
	case "name":
		return func(a, b models.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "category":
		return func(a, b models.Product) bool { return a.Category < b.Category }
	case "brand":
		return func(a, b models.Product) bool { return a.Brand < b.Brand }
	case "stock":
		return func(a, b models.Product) bool { return a.Stock < b.Stock }
	case "created_at":
		return func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "updated_at":
		return func(a, b models.Product) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return func(a, b models.Product) bool { return a.ID < b.ID }
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GetHistory returns a product's audit entries, newest first.
func (r *InMemoryProductRepository) GetHistory(productID int) ([]models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []models.AuditEntry
	for _, e := range r.history {
		if e.ProductID == productID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ChangedAt.Equal(entries[j].ChangedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].ChangedAt.After(entries[j].ChangedAt)
	})
	return entries, nil
}

// Categories returns the distinct non-empty categories in use, sorted.
func (r *InMemoryProductRepository) Categories() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := map[string]bool{}
	var categories []string
	for _, p := range r.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = []models.Product{}
	r.history = []models.AuditEntry{}
	r.nextID = 1
	r.nextLogID = 1
}
