package models

import "time"

// AuditEntry is one immutable record in a product's stock history.
// Entries are written only when an update changes the stock value.
type AuditEntry struct {
	ID          int       `json:"id"`
	ProductID   int       `json:"product_id"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	ChangedAt   time.Time `json:"change_date"`
	Actor       string    `json:"user"`
	Remark      string    `json:"remark"`
}
