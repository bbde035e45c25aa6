package inventory

import (
	"context"

	"github.com/atelierops/backoffice/internal/inventory/dto"
	"github.com/atelierops/backoffice/internal/model"
)

type Repository interface {
	// Products
	CreateProduct(ctx context.Context, p *model.InventoryProduct) error
	FindProductByID(ctx context.Context, id string) (*model.InventoryProduct, error)
	FindProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.InventoryProduct, int, error)
	FindProductsByIDs(ctx context.Context, ids []string) ([]model.InventoryProduct, error)
	UpdateProduct(ctx context.Context, p *model.InventoryProduct) error
	DeactivateProduct(ctx context.Context, id string) error
	IsSKUPrefixUnique(ctx context.Context, prefix, excludeID string) (bool, error)

	// Variants
	CreateVariant(ctx context.Context, v *model.InventoryVariant) error
	FindVariantByID(ctx context.Context, id string) (*model.InventoryVariant, error)
	FindVariantsByProduct(ctx context.Context, productID string) ([]model.InventoryVariant, error)
	FindVariantsByIDs(ctx context.Context, ids []string) ([]model.InventoryVariant, error)
	UpdateVariant(ctx context.Context, v *model.InventoryVariant) error
	FindLowStock(ctx context.Context, page, pageSize int) ([]model.InventoryVariant, int, error)

	// Stock: the quantity write and its movement row commit in one transaction.
	UpdateStockWithMovement(ctx context.Context, variantID string, newQuantity int, m *model.StockMovement) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
