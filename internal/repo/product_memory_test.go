package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-suite/product-catalog/internal/models"
)

func TestInMemoryCreate_DuplicateName(t *testing.T) {
	r := NewInMemoryProductRepository()

	_, err := r.Create(models.Product{Name: "Widget", Stock: 1})
	require.NoError(t, err)

	_, err = r.Create(models.Product{Name: "WIDGET", Stock: 5})
	assert.ErrorIs(t, err, ErrDuplicateName)

	all, _ := r.GetAll()
	assert.Len(t, all, 1, "rejected create must leave no side effects")
}

func TestInMemoryUpdate_AuditOnlyOnStockChange(t *testing.T) {
	r := NewInMemoryProductRepository()

	p, err := r.Create(models.Product{Name: "Widget", Stock: 5})
	require.NoError(t, err)

	p.Unit = "pcs"
	_, err = r.Update(p, "alice", "")
	require.NoError(t, err)

	entries, _ := r.GetHistory(p.ID)
	assert.Empty(t, entries, "no audit entry when stock is unchanged")

	p.Stock = 3
	_, err = r.Update(p, "alice", "broken units")
	require.NoError(t, err)

	entries, _ = r.GetHistory(p.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].OldQuantity)
	assert.Equal(t, 3, entries[0].NewQuantity)
	assert.Equal(t, "alice", entries[0].Actor)
	assert.Equal(t, "broken units", entries[0].Remark)
}

func TestInMemoryUpdate_DuplicateNameOtherProduct(t *testing.T) {
	r := NewInMemoryProductRepository()

	a, _ := r.Create(models.Product{Name: "Widget", Stock: 1})
	_, err := r.Create(models.Product{Name: "Gadget", Stock: 1})
	require.NoError(t, err)

	a.Name = "gadget"
	_, err = r.Update(a, "system", "")
	assert.ErrorIs(t, err, ErrDuplicateName)

	// A product may keep its own name.
	a.Name = "Widget"
	a.Stock = 2
	_, err = r.Update(a, "system", "")
	assert.NoError(t, err)
}

func TestInMemoryDelete_Cascades(t *testing.T) {
	r := NewInMemoryProductRepository()

	p, _ := r.Create(models.Product{Name: "Widget", Stock: 5})
	p.Stock = 1
	_, err := r.Update(p, "system", "")
	require.NoError(t, err)

	require.NoError(t, r.Delete(p.ID))

	_, err = r.GetByID(p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	entries, _ := r.GetHistory(p.ID)
	assert.Empty(t, entries, "audit entries are removed with the product")

	assert.ErrorIs(t, r.Delete(p.ID), ErrProductNotFound)
}

func TestInMemoryFilter_TotalIndependentOfWindow(t *testing.T) {
	r := NewInMemoryProductRepository()
	for _, name := range []string{"Widget A", "Widget B", "Widget C", "Gadget"} {
		_, err := r.Create(models.Product{Name: name})
		require.NoError(t, err)
	}

	page, total, err := r.Filter(ProductFilter{Search: "widget", Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)

	// Past the last page: empty slice, same total.
	page, total, err = r.Filter(ProductFilter{Search: "widget", Page: 5, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, page)
}

func TestInMemoryFilter_TiesBreakByID(t *testing.T) {
	r := NewInMemoryProductRepository()
	for i := 0; i < 4; i++ {
		_, err := r.Create(models.Product{Name: string(rune('A' + i)), Stock: 7})
		require.NoError(t, err)
	}

	page, _, err := r.Filter(ProductFilter{Sort: "stock", Order: "desc"})
	require.NoError(t, err)
	require.Len(t, page, 4)
	for i := 1; i < len(page); i++ {
		assert.Greater(t, page[i].ID, page[i-1].ID, "equal keys must order by id ascending")
	}
}

func TestInMemoryFilter_NameSortCaseInsensitive(t *testing.T) {
	r := NewInMemoryProductRepository()
	for _, name := range []string{"banana", "Apple", "cherry", "Blueberry"} {
		_, err := r.Create(models.Product{Name: name})
		require.NoError(t, err)
	}

	page, _, err := r.Filter(ProductFilter{Sort: "name"})
	require.NoError(t, err)
	require.Len(t, page, 4)

	got := make([]string, len(page))
	for i, p := range page {
		got[i] = p.Name
	}
	assert.Equal(t, []string{"Apple", "banana", "Blueberry", "cherry"}, got)
}

func TestInMemoryCategories(t *testing.T) {
	r := NewInMemoryProductRepository()
	for i, c := range []string{"Tools", "", "Hardware", "Tools"} {
		_, err := r.Create(models.Product{Name: "Product " + string(rune('A'+i)), Category: c})
		require.NoError(t, err)
	}

	categories, err := r.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Hardware", "Tools"}, categories)
}
