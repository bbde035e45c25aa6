package dto

import "github.com/atelierops/backoffice/internal/model"

type ProductFilters struct {
	Category    model.ProductCategory
	IsActive    *bool
	SearchQuery string
	SortBy      string // name, price, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}

type MovementFilters struct {
	VariantID string
	Operation string
	Page      int
	PageSize  int
}

// BulkAdjustResult reports one variant's outcome. Each update is independent;
// a failed item does not roll back the others.
type BulkAdjustResult struct {
	VariantID string `json:"variant_id"`
	SKU       string `json:"sku"`
	Before    int    `json:"before"`
	After     int    `json:"after"`
	Error     string `json:"error,omitempty"`
}
