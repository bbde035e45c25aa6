package dto

import (
	"github.com/atelierops/backoffice/internal/inventory/stock"
	"github.com/atelierops/backoffice/internal/model"
)

type CreateProductInput struct {
	Category       model.ProductCategory
	Name           string
	Description    string
	SKUPrefix      string
	BasePrice      float64
	RequiresSize   bool
	RequiresColor  bool
	SizingCategory string
	ImagePath      string
}

type UpdateProductInput struct {
	ID             string
	Category       model.ProductCategory
	Name           string
	Description    string
	SKUPrefix      string
	BasePrice      float64
	RequiresSize   bool
	RequiresColor  bool
	SizingCategory string
	ImagePath      string
	IsActive       bool
}

type CreateVariantInput struct {
	ProductID         string
	Size              string
	Color             string
	PieceType         string
	Price             float64
	StockQuantity     int
	LowStockThreshold int
}

type AdjustStockInput struct {
	VariantID     string
	Operation     stock.Operation
	Operand       string
	Reason        string
	ReferenceType string
	ReferenceID   string
}

type BulkAdjustInput struct {
	VariantIDs []string
	Operation  stock.Operation
	Operand    string
	Reason     string
}
