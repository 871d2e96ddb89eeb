package handlers

import (
	"bytes"
	"encoding/csv"
	"log"
	"net/http"
	"strconv"
	"time"

	models "github.com/inventory-suite/product-catalog/internal/models"
)

var exportHeader = []string{"id", "name", "unit", "category", "brand", "stock", "image", "created_at", "updated_at"}

// exportProductsCSV serializes products to one header line plus one line per
// product. encoding/csv applies the standard quoting rule, so the output
// round-trips through the importer.
func exportProductsCSV(products []models.Product) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, p := range products {
		record := []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Unit,
			p.Category,
			p.Brand,
			strconv.Itoa(p.Stock),
			p.Image,
			p.CreatedAt.Format(time.RFC3339),
			p.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportProductsHandler godoc
// @Summary Export the full catalog as CSV
// @Tags export
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Failure 500 {string} string "Internal error"
// @Router /products/export [get]
// @Security BearerAuth
func ExportProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		log.Printf("could not fetch products for export: %v", err)
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	content, err := exportProductsCSV(products)
	if err != nil {
		log.Printf("could not serialize export: %v", err)
		http.Error(w, "could not export products", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		log.Printf("failed to write export response: %v", err)
	}
}
