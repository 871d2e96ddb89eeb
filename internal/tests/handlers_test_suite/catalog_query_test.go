package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	api "github.com/inventory-suite/product-catalog/internal/http"
	handler "github.com/inventory-suite/product-catalog/internal/http/handlers"
)

func decodeSearchResult(t *testing.T, w *httptest.ResponseRecorder) handler.ProductsSearchResult {
	t.Helper()
	var resp handler.ProductsSearchResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return resp
}

func seedCatalog() {
	seedProduct("Widget Small", "Hardware", 5)
	seedProduct("Widget Large", "Hardware", 2)
	seedProduct("Gadget", "Hardware", 9)
	seedProduct("Apple", "Groceries", 30)
	seedProduct("Banana", "Groceries", 20)
	seedProduct("Cable", "Electronics", 14)
	seedProduct("Monitor", "Electronics", 3)
	seedProduct("Desk", "Furniture", 1)
	seedProduct("Chair", "Furniture", 8)
	seedProduct("Super Widget", "Hardware", 0)
}

func TestListProducts_SearchAndTotal(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()
	seedCatalog()

	w := listProducts(r, "?search=wid&page=1&pageSize=10")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	resp := decodeSearchResult(t, w)
	if resp.Total != 3 {
		t.Errorf("expected total 3, got %d", resp.Total)
	}
	if len(resp.Data) != 3 {
		t.Errorf("expected 3 products, got %d", len(resp.Data))
	}
	for _, p := range resp.Data {
		if got := p.Name; got != "Widget Small" && got != "Widget Large" && got != "Super Widget" {
			t.Errorf("unexpected product in search result: %q", got)
		}
	}
}

func TestListProducts_Pagination(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()
	seedCatalog()

	w := listProducts(r, "?page=2&pageSize=4")
	resp := decodeSearchResult(t, w)

	if resp.Total != 10 {
		t.Errorf("expected total 10 independent of the page window, got %d", resp.Total)
	}
	if len(resp.Data) != 4 {
		t.Errorf("expected 4 products on page 2, got %d", len(resp.Data))
	}
	if resp.Page != 2 || resp.PageSize != 4 {
		t.Errorf("expected page=2 pageSize=4 echoed, got page=%d pageSize=%d", resp.Page, resp.PageSize)
	}
	// Default id ascending: page 2 starts at the fifth product.
	if resp.Data[0].Name != "Banana" {
		t.Errorf("expected page 2 to start at 'Banana', got %q", resp.Data[0].Name)
	}
}

func TestListProducts_PageClamping(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()
	seedCatalog()

	for _, query := range []string{"?page=0", "?page=-3", "?page=junk", ""} {
		w := listProducts(r, query)
		resp := decodeSearchResult(t, w)
		if resp.Page != 1 {
			t.Errorf("query %q: expected page clamped to 1, got %d", query, resp.Page)
		}
		if resp.PageSize != 10 {
			t.Errorf("query %q: expected default pageSize 10, got %d", query, resp.PageSize)
		}
	}
}

func TestListProducts_SortWhitelistFallback(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()
	seedCatalog()

	reference := decodeSearchResult(t, listProducts(r, "?sort=id"))

	hostile := url.QueryEscape("name; DROP TABLE products--")
	for _, sortParam := range []string{"price", hostile, "ID", ""} {
		resp := decodeSearchResult(t, listProducts(r, "?sort="+sortParam))
		if len(resp.Data) != len(reference.Data) {
			t.Fatalf("sort %q: expected %d products, got %d", sortParam, len(reference.Data), len(resp.Data))
		}
		for i := range resp.Data {
			if resp.Data[i].ID != reference.Data[i].ID {
				t.Errorf("sort %q: expected same order as sort=id", sortParam)
				break
			}
		}
	}
}

func TestListProducts_SortAndOrder(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()
	seedCatalog()

	resp := decodeSearchResult(t, listProducts(r, "?sort=stock&order=desc&pageSize=3"))
	if len(resp.Data) != 3 {
		t.Fatalf("expected 3 products, got %d", len(resp.Data))
	}
	if resp.Data[0].Name != "Apple" || resp.Data[1].Name != "Banana" || resp.Data[2].Name != "Cable" {
		t.Errorf("expected stock descending (Apple, Banana, Cable), got (%s, %s, %s)",
			resp.Data[0].Name, resp.Data[1].Name, resp.Data[2].Name)
	}

	resp = decodeSearchResult(t, listProducts(r, "?sort=name&order=asc&pageSize=2"))
	if resp.Data[0].Name != "Apple" || resp.Data[1].Name != "Banana" {
		t.Errorf("expected name ascending (Apple, Banana), got (%s, %s)", resp.Data[0].Name, resp.Data[1].Name)
	}
}

func TestListProducts_CategoryFilter(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()
	seedCatalog()

	resp := decodeSearchResult(t, listProducts(r, "?category=Furniture"))
	if resp.Total != 2 {
		t.Errorf("expected 2 furniture products, got %d", resp.Total)
	}

	// "All" is the no-filter sentinel, not a literal category.
	resp = decodeSearchResult(t, listProducts(r, "?category=All"))
	if resp.Total != 10 {
		t.Errorf("expected all 10 products for category=All, got %d", resp.Total)
	}

	resp = decodeSearchResult(t, listProducts(r, "?category=Nonexistent"))
	if resp.Total != 0 {
		t.Errorf("expected 0 products for unknown category, got %d", resp.Total)
	}
}

func TestListProducts_Deterministic(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()
	seedCatalog()

	first := decodeSearchResult(t, listProducts(r, "?sort=category&order=asc"))
	for n := 0; n < 5; n++ {
		again := decodeSearchResult(t, listProducts(r, "?sort=category&order=asc"))
		for i := range first.Data {
			if first.Data[i].ID != again.Data[i].ID {
				t.Fatal("expected identical inputs to produce identical ordering")
			}
		}
	}
}
