package model

import "time"

type ProductCategory string

const (
	CategorySuits       ProductCategory = "suits"
	CategoryShirts      ProductCategory = "shirts"
	CategoryAccessories ProductCategory = "accessories"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategorySuits, CategoryShirts, CategoryAccessories:
		return true
	}
	return false
}

type InventoryProduct struct {
	BaseModel
	Category       ProductCategory    `db:"category" json:"category"`
	Name           string             `db:"name" json:"name"`
	Description    *string            `db:"description" json:"description"`
	SKUPrefix      string             `db:"sku_prefix" json:"sku_prefix"`
	BasePrice      float64            `db:"base_price" json:"base_price"`
	RequiresSize   bool               `db:"requires_size" json:"requires_size"`
	RequiresColor  bool               `db:"requires_color" json:"requires_color"`
	SizingCategory *string            `db:"sizing_category" json:"sizing_category"`
	ImagePath      *string            `db:"image_path" json:"image_path"`
	IsActive       bool               `db:"is_active" json:"is_active"`
	Variants       []InventoryVariant `db:"-" json:"variants,omitempty"` // Joined, not a column
}

type InventoryVariant struct {
	BaseModel
	ProductID         string  `db:"product_id" json:"product_id"`
	SKU               string  `db:"sku" json:"sku"`
	Size              *string `db:"size" json:"size"`
	Color             *string `db:"color" json:"color"`
	PieceType         *string `db:"piece_type" json:"piece_type"`
	Price             float64 `db:"price" json:"price"`
	StockQuantity     int     `db:"stock_quantity" json:"stock_quantity"`
	LowStockThreshold int     `db:"low_stock_threshold" json:"low_stock_threshold"`
	IsActive          bool    `db:"is_active" json:"is_active"`
}

// LowStock classifies a variant for display only; nothing is enforced off it.
func (v *InventoryVariant) LowStock() bool {
	return v.LowStockThreshold > 0 && v.StockQuantity <= v.LowStockThreshold
}

type StockMovement struct {
	ID             string    `db:"id" json:"id"`
	VariantID      string    `db:"variant_id" json:"variant_id"`
	Operation      string    `db:"operation" json:"operation"`
	Operand        string    `db:"operand" json:"operand"`
	QuantityBefore int       `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int       `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string   `db:"reference_type" json:"reference_type"`
	ReferenceID    *string   `db:"reference_id" json:"reference_id"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedBy      *string   `db:"created_by" json:"created_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
