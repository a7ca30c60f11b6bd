// Package catalog implements the finite-stock product catalog: redemption
// against the points ledger and the password-guarded admin write path.
// models.go describes products and exchange records.
package catalog

import "time"

// Product statuses. Stock and status are linked: stock 0 forces sold_out.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusSoldOut  = "sold_out"
)

// Product is one redeemable catalog item. Name is unique case-insensitively.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Points      int64     `json:"points"` // Redemption price, always > 0
	Stock       int       `json:"stock"`  // Units left, never negative
	Status      string    `json:"status"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExchangeRecord is one successful redemption. Append-only.
type ExchangeRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Points      int64     `json:"points"` // Price paid
	CreatedAt   time.Time `json:"created_at"`
}
