package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	models "github.com/inventory-suite/product-catalog/internal/models"
	repo "github.com/inventory-suite/product-catalog/internal/repo"
)

type importRow struct {
	Name     string
	Unit     string
	Category string
	Brand    string
	Stock    string
	Image    string
}

// parseProductsCSV reads a headered CSV feed. Columns are matched by
// (lowercased) header name, so column order is free and unknown columns,
// including the id/created_at/updated_at of an exported file, are ignored.
func parseProductsCSV(src io.Reader) ([]importRow, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []importRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, importRow{
			Name:     field(record, "name"),
			Unit:     field(record, "unit"),
			Category: field(record, "category"),
			Brand:    field(record, "brand"),
			Stock:    field(record, "stock"),
			Image:    field(record, "image"),
		})
	}
	return rows, nil
}

// reconcileImport processes rows strictly in input order: rows without a name
// are ignored, rows whose name already exists (case-insensitively) are
// counted as skipped with a reference to the existing product, and the rest
// are inserted. Each row's check-then-insert completes before the next row is
// examined, so two same-named rows in one feed yield one insert and one
// recorded duplicate.
func reconcileImport(rows []importRow) (ImportProductsResult, error) {
	result := ImportProductsResult{Duplicates: []DuplicateProduct{}}

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}

		existing, err := productRepo.GetByName(name)
		if err != nil && !errors.Is(err, repo.ErrProductNotFound) {
			return result, fmt.Errorf("failed to look up %q: %w", name, err)
		}
		if err == nil {
			result.Skipped++
			result.Duplicates = append(result.Duplicates, DuplicateProduct{Name: name, ExistingID: existing.ID})
			continue
		}

		// Unparsable or negative stock values fall back to 0; a negative
		// value must never reach the store's non-negative constraint.
		stock, err := strconv.Atoi(strings.TrimSpace(row.Stock))
		if err != nil || stock < 0 {
			stock = 0
		}

		if _, err := productRepo.Create(models.Product{
			Name:     name,
			Unit:     row.Unit,
			Category: row.Category,
			Brand:    row.Brand,
			Stock:    stock,
			Image:    row.Image,
		}); err != nil {
			return result, fmt.Errorf("failed to insert %q: %w", name, err)
		}
		result.Added++
	}

	result.Message = "Import completed"
	return result, nil
}

// ImportProductsHandler godoc
// @Summary Bulk-import products via CSV
// @Description Existing products are never overwritten; duplicate names are
// reported back with the existing product's id.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "CSV file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := parseProductsCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := reconcileImport(rows)
	if err != nil {
		log.Printf("import aborted: %v", err)
		http.Error(w, "import failed", http.StatusInternalServerError)
		return
	}

	if result.Added > 0 {
		invalidateCategories()
	}

	_ = writeJSON(w, http.StatusOK, result)
}
