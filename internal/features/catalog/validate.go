// Package catalog — validate.go checks admin catalog writes. Any violation
// rejects the entire write with a field-specific ValidationError.
package catalog

import (
	"strings"

	"culturecraft.app/gamification/internal/common"
)

// validateProduct checks every field of p. existing is the current catalog;
// selfID excludes the product being updated from the uniqueness check.
func validateProduct(p *Product, existing []Product, selfID string) error {
	if strings.TrimSpace(p.Name) == "" {
		return common.NewValidationError("name", "name must not be empty")
	}
	for i := range existing {
		if existing[i].ID == selfID {
			continue
		}
		if strings.EqualFold(existing[i].Name, p.Name) {
			return common.NewValidationError("name", "a product named %q already exists", existing[i].Name)
		}
	}
	if p.Points <= 0 {
		return common.NewValidationError("points", "points must be > 0, got %d", p.Points)
	}
	if p.Stock < 0 {
		return common.NewValidationError("stock", "stock must be >= 0, got %d", p.Stock)
	}
	if strings.TrimSpace(p.Description) == "" {
		return common.NewValidationError("description", "description must not be empty")
	}
	if strings.TrimSpace(p.Category) == "" {
		return common.NewValidationError("category", "category must not be empty")
	}
	if len(p.Tags) == 0 {
		return common.NewValidationError("tags", "at least one tag is required")
	}
	if strings.TrimSpace(p.ImageURL) == "" {
		return common.NewValidationError("image_url", "image URL must not be empty")
	}
	switch p.Status {
	case StatusActive, StatusInactive, StatusSoldOut, "":
	default:
		return common.NewValidationError("status", "unknown status %q", p.Status)
	}
	return nil
}

// normalizeStatus keeps the stock/status invariant: zero stock forces
// sold_out, and a restocked sold_out product goes back to active.
func normalizeStatus(p *Product) {
	if p.Stock == 0 {
		p.Status = StatusSoldOut
		return
	}
	if p.Status == "" || p.Status == StatusSoldOut {
		p.Status = StatusActive
	}
}
