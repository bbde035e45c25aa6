package inventory

import (
	"context"

	"github.com/atelierops/backoffice/internal/inventory/dto"
	"github.com/atelierops/backoffice/internal/inventory/stock"
	"github.com/atelierops/backoffice/internal/model"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.InventoryProduct, error)
	GetProduct(ctx context.Context, id string) (*model.InventoryProduct, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.InventoryProduct, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.InventoryProduct, error)
	DeactivateProduct(ctx context.Context, id string) error
	SearchProducts(ctx context.Context, query string, page, pageSize int) ([]model.InventoryProduct, int, error)

	AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.InventoryVariant, error)
	ListVariants(ctx context.Context, productID string) ([]model.InventoryVariant, error)
	ListLowStock(ctx context.Context, page, pageSize int) ([]model.InventoryVariant, int, error)

	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryVariant, error)
	PreviewBulkAdjust(ctx context.Context, input *dto.BulkAdjustInput) ([]stock.PreviewItem, error)
	BulkAdjustStock(ctx context.Context, input *dto.BulkAdjustInput) ([]dto.BulkAdjustResult, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)

	// InvalidateProductCache evicts cached product lists; the change feed
	// and write paths call it.
	InvalidateProductCache(ctx context.Context)
}
