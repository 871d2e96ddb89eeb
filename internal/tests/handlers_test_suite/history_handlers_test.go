package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	api "github.com/inventory-suite/product-catalog/internal/http"
	handler "github.com/inventory-suite/product-catalog/internal/http/handlers"
	"github.com/inventory-suite/product-catalog/internal/models"
)

func decodeHistory(t *testing.T, r http.Handler, id int) []models.AuditEntry {
	t.Helper()
	w := getHistory(r, id)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var entries []models.AuditEntry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("error decoding history: %v", err)
	}
	return entries
}

func TestHistory_NoEntryWhenStockUnchanged(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	created := seedProduct("Widget", "", 5)

	// Full-field update that keeps stock at 5.
	w := updateProduct(r, created.ID, handler.ProductRequest{Name: "Widget", Unit: "pcs", Stock: 5})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	if entries := decodeHistory(t, r, created.ID); len(entries) != 0 {
		t.Errorf("expected no audit entries for unchanged stock, got %d", len(entries))
	}
}

func TestHistory_EntryRecordsActorAndQuantities(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	created := seedProduct("Widget", "", 5)

	w := updateProduct(r, created.ID, handler.ProductRequest{
		Name: "Widget", Stock: 3, User: "alice", Remark: "damaged units removed",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	entries := decodeHistory(t, r, created.ID)
	if len(entries) != 1 {
		t.Fatalf("expected exactly one audit entry, got %d", len(entries))
	}

	e := entries[0]
	if e.OldQuantity != 5 || e.NewQuantity != 3 {
		t.Errorf("expected old=5 new=3, got old=%d new=%d", e.OldQuantity, e.NewQuantity)
	}
	if e.Actor != "alice" {
		t.Errorf("expected actor 'alice', got %q", e.Actor)
	}
	if e.Remark != "damaged units removed" {
		t.Errorf("expected remark preserved, got %q", e.Remark)
	}
	if e.ProductID != created.ID {
		t.Errorf("expected product id %d, got %d", created.ID, e.ProductID)
	}
}

func TestHistory_ActorFallsBackToRequester(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	created := seedProduct("Widget", "", 5)

	// No user supplied in the body: the authenticated username is recorded.
	w := updateProduct(r, created.ID, handler.ProductRequest{Name: "Widget", Stock: 1})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	entries := decodeHistory(t, r, created.ID)
	if len(entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(entries))
	}
	if entries[0].Actor != "admin" {
		t.Errorf("expected actor to fall back to requester 'admin', got %q", entries[0].Actor)
	}
}

func TestHistory_NewestFirst(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	created := seedProduct("Widget", "", 5)

	for _, stock := range []int{4, 9, 2} {
		w := updateProduct(r, created.ID, handler.ProductRequest{Name: "Widget", Stock: stock})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
	}

	entries := decodeHistory(t, r, created.ID)
	if len(entries) != 3 {
		t.Fatalf("expected 3 audit entries, got %d", len(entries))
	}

	// Newest first: 9→2, then 4→9, then 5→4.
	wantOld := []int{9, 4, 5}
	wantNew := []int{2, 9, 4}
	for i, e := range entries {
		if e.OldQuantity != wantOld[i] || e.NewQuantity != wantNew[i] {
			t.Errorf("entry %d: expected old=%d new=%d, got old=%d new=%d",
				i, wantOld[i], wantNew[i], e.OldQuantity, e.NewQuantity)
		}
	}
}

func TestHistory_UnknownProduct(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	if w := getHistory(r, 12345); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", w.Code)
	}
}
