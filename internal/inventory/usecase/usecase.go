package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atelierops/backoffice/internal/inventory"
	"github.com/atelierops/backoffice/internal/inventory/dto"
	"github.com/atelierops/backoffice/internal/inventory/stock"
	"github.com/atelierops/backoffice/internal/model"
	"github.com/atelierops/backoffice/internal/session"
	"github.com/atelierops/backoffice/pkg/cache"
	"github.com/atelierops/backoffice/pkg/search"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	productCachePrefix = "inventory:products:"
	productCacheTTL    = 5 * time.Minute
	productIndex       = "inventory_products"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger *zap.Logger
}

func NewInventoryUseCase(repo inventory.Repository, c *cache.RedisClient, es *search.Client, log *zap.Logger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		cache:  c,
		es:     es,
		logger: log,
	}
}

func (uc *inventoryUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.InventoryProduct, error) {
	if !input.Category.Valid() {
		return nil, inventory.ErrInvalidCategory
	}

	unique, err := uc.repo.IsSKUPrefixUnique(ctx, strings.ToUpper(input.SKUPrefix), "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, inventory.ErrSKUPrefixTaken
	}

	now := time.Now()
	p := &model.InventoryProduct{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Category:       input.Category,
		Name:           input.Name,
		Description:    optional(input.Description),
		SKUPrefix:      strings.ToUpper(input.SKUPrefix),
		BasePrice:      input.BasePrice,
		RequiresSize:   input.RequiresSize,
		RequiresColor:  input.RequiresColor,
		SizingCategory: optional(input.SizingCategory),
		ImagePath:      optional(input.ImagePath),
		IsActive:       true,
	}

	if err := uc.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	go uc.InvalidateProductCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *inventoryUseCase) GetProduct(ctx context.Context, id string) (*model.InventoryProduct, error) {
	p, err := uc.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, inventory.ErrProductNotFound
	}

	variants, err := uc.repo.FindVariantsByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return p, nil
}

func (uc *inventoryUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.InventoryProduct, int, error) {
	cacheKey, keyErr := uc.generateCacheKey(filters)
	if keyErr == nil && uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached struct {
				Products []model.InventoryProduct
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Count, nil
			}
		}
	}

	products, count, err := uc.repo.FindProducts(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if keyErr == nil && uc.cache != nil {
		payload, err := json.Marshal(struct {
			Products []model.InventoryProduct
			Count    int
		}{products, count})
		if err == nil {
			if err := uc.cache.Client.Set(ctx, cacheKey, payload, productCacheTTL).Err(); err != nil {
				uc.logger.Warn("failed to cache product list", zap.Error(err))
			}
		}
	}

	return products, count, nil
}

func (uc *inventoryUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.InventoryProduct, error) {
	if !input.Category.Valid() {
		return nil, inventory.ErrInvalidCategory
	}

	p, err := uc.repo.FindProductByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, inventory.ErrProductNotFound
	}

	if !strings.EqualFold(p.SKUPrefix, input.SKUPrefix) {
		unique, err := uc.repo.IsSKUPrefixUnique(ctx, strings.ToUpper(input.SKUPrefix), input.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, inventory.ErrSKUPrefixTaken
		}
	}

	p.Category = input.Category
	p.Name = input.Name
	p.Description = optional(input.Description)
	p.SKUPrefix = strings.ToUpper(input.SKUPrefix)
	p.BasePrice = input.BasePrice
	p.RequiresSize = input.RequiresSize
	p.RequiresColor = input.RequiresColor
	p.SizingCategory = optional(input.SizingCategory)
	p.ImagePath = optional(input.ImagePath)
	p.IsActive = input.IsActive
	p.UpdatedAt = time.Now()

	if err := uc.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	go uc.InvalidateProductCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *inventoryUseCase) DeactivateProduct(ctx context.Context, id string) error {
	if err := uc.repo.DeactivateProduct(ctx, id); err != nil {
		return err
	}
	go uc.InvalidateProductCache(context.Background())
	return nil
}

func (uc *inventoryUseCase) SearchProducts(ctx context.Context, query string, page, pageSize int) ([]model.InventoryProduct, int, error) {
	if uc.es != nil {
		ids, total, err := uc.searchElastic(ctx, query, page, pageSize)
		if err == nil {
			products, err := uc.repo.FindProductsByIDs(ctx, ids)
			if err != nil {
				return nil, 0, err
			}
			return orderByIDs(ids, products), total, nil
		}
		uc.logger.Warn("elastic search failed, falling back to SQL", zap.Error(err))
	}

	return uc.repo.FindProducts(ctx, &dto.ProductFilters{
		SearchQuery: query,
		Page:        page,
		PageSize:    pageSize,
	})
}

func (uc *inventoryUseCase) AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.InventoryVariant, error) {
	p, err := uc.repo.FindProductByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, inventory.ErrProductNotFound
	}

	if p.RequiresSize && input.Size == "" {
		return nil, fmt.Errorf("product %s requires a size", p.SKUPrefix)
	}
	if p.RequiresColor && input.Color == "" {
		return nil, fmt.Errorf("product %s requires a color", p.SKUPrefix)
	}

	now := time.Now()
	v := &model.InventoryVariant{
		BaseModel:         model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:         p.ID,
		SKU:               buildVariantSKU(p.SKUPrefix, input.Size, input.Color, input.PieceType),
		Size:              optional(input.Size),
		Color:             optional(input.Color),
		PieceType:         optional(input.PieceType),
		Price:             input.Price,
		StockQuantity:     0,
		LowStockThreshold: input.LowStockThreshold,
		IsActive:          true,
	}
	if v.Price == 0 {
		v.Price = p.BasePrice
	}

	if err := uc.repo.CreateVariant(ctx, v); err != nil {
		return nil, err
	}

	// Initial stock arrives through the audited adjustment path.
	if input.StockQuantity > 0 {
		adjusted, err := uc.AdjustStock(ctx, &dto.AdjustStockInput{
			VariantID:     v.ID,
			Operation:     stock.OpSet,
			Operand:       strconv.Itoa(input.StockQuantity),
			Reason:        "initial stock",
			ReferenceType: "variant_created",
			ReferenceID:   v.ID,
		})
		if err != nil {
			return nil, err
		}
		return adjusted, nil
	}

	return v, nil
}

func (uc *inventoryUseCase) ListVariants(ctx context.Context, productID string) ([]model.InventoryVariant, error) {
	return uc.repo.FindVariantsByProduct(ctx, productID)
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, page, pageSize int) ([]model.InventoryVariant, int, error) {
	return uc.repo.FindLowStock(ctx, page, pageSize)
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryVariant, error) {
	if !input.Operation.Valid() {
		return nil, inventory.ErrInvalidOp
	}
	if _, ok := stock.ParseOperand(input.Operand); !ok {
		return nil, inventory.ErrInvalidOperand
	}

	release, err := uc.lockVariant(ctx, input.VariantID)
	if err != nil {
		return nil, err
	}
	defer release()

	v, _, err := uc.adjustLocked(ctx, input)
	return v, err
}

// adjustLocked performs the fetch-compute-commit cycle and reports the
// pre-adjustment quantity. Callers hold the variant lock.
func (uc *inventoryUseCase) adjustLocked(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryVariant, int, error) {
	v, err := uc.repo.FindVariantByID(ctx, input.VariantID)
	if err != nil {
		return nil, 0, err
	}
	if v == nil {
		return nil, 0, inventory.ErrVariantNotFound
	}

	before := v.StockQuantity
	after := stock.Adjust(before, input.Operation, input.Operand)
	if after == before {
		return v, before, nil
	}

	movement := &model.StockMovement{
		ID:             uuid.New().String(),
		VariantID:      v.ID,
		Operation:      string(input.Operation),
		Operand:        input.Operand,
		QuantityBefore: before,
		QuantityAfter:  after,
		ReferenceType:  optional(input.ReferenceType),
		ReferenceID:    optional(input.ReferenceID),
		Notes:          input.Reason,
		CreatedBy:      session.Actor(ctx),
		CreatedAt:      time.Now(),
	}

	if err := uc.repo.UpdateStockWithMovement(ctx, v.ID, after, movement); err != nil {
		return nil, 0, err
	}

	v.StockQuantity = after
	v.UpdatedAt = movement.CreatedAt
	return v, before, nil
}

func (uc *inventoryUseCase) PreviewBulkAdjust(ctx context.Context, input *dto.BulkAdjustInput) ([]stock.PreviewItem, error) {
	if !input.Operation.Valid() {
		return nil, inventory.ErrInvalidOp
	}
	if _, ok := stock.ParseOperand(input.Operand); !ok {
		return nil, inventory.ErrInvalidOperand
	}

	variants, err := uc.repo.FindVariantsByIDs(ctx, input.VariantIDs)
	if err != nil {
		return nil, err
	}
	return stock.Preview(variants, input.Operation, input.Operand), nil
}

// BulkAdjustStock applies the operation to each selected variant
// independently. There is no batch transaction: an item failure is reported
// in its result slot and does not roll back the others.
func (uc *inventoryUseCase) BulkAdjustStock(ctx context.Context, input *dto.BulkAdjustInput) ([]dto.BulkAdjustResult, error) {
	if !input.Operation.Valid() {
		return nil, inventory.ErrInvalidOp
	}
	if _, ok := stock.ParseOperand(input.Operand); !ok {
		return nil, inventory.ErrInvalidOperand
	}

	results := make([]dto.BulkAdjustResult, 0, len(input.VariantIDs))
	for _, id := range input.VariantIDs {
		res := dto.BulkAdjustResult{VariantID: id}

		v, before, err := uc.adjustOne(ctx, id, input)
		if err != nil {
			res.Error = err.Error()
			uc.logger.Error("bulk adjust item failed",
				zap.String("variant_id", id),
				zap.Error(err),
			)
		} else {
			res.SKU = v.SKU
			res.Before = before
			res.After = v.StockQuantity
		}
		results = append(results, res)
	}
	return results, nil
}

func (uc *inventoryUseCase) adjustOne(ctx context.Context, variantID string, input *dto.BulkAdjustInput) (*model.InventoryVariant, int, error) {
	release, err := uc.lockVariant(ctx, variantID)
	if err != nil {
		return nil, 0, err
	}
	defer release()

	return uc.adjustLocked(ctx, &dto.AdjustStockInput{
		VariantID:     variantID,
		Operation:     input.Operation,
		Operand:       input.Operand,
		Reason:        input.Reason,
		ReferenceType: "bulk_adjustment",
	})
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

// lockVariant serializes stock writes per variant through a redis lock with a
// short retry loop. The service still works without redis, just unguarded.
func (uc *inventoryUseCase) lockVariant(ctx context.Context, variantID string) (func(), error) {
	if uc.cache == nil {
		return func() {}, nil
	}

	lockKey := "lock:stock:" + variantID
	lockValue := uuid.New().String()

	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire stock lock", zap.Error(err))
		}
		if ok {
			return func() {
				if err := uc.cache.ReleaseLock(context.Background(), lockKey, lockValue); err != nil {
					uc.logger.Warn("failed to release stock lock", zap.Error(err))
				}
			}, nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	return nil, inventory.ErrLockBusy
}

// InvalidateProductCache drops every cached product listing. Called after
// mutations and by the change-feed listener.
func (uc *inventoryUseCase) InvalidateProductCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}

	iter := uc.cache.Client.Scan(ctx, 0, productCachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := uc.cache.Client.Del(ctx, iter.Val()).Err(); err != nil {
			uc.logger.Warn("failed to evict product cache key", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		uc.logger.Warn("product cache invalidation scan failed", zap.Error(err))
	}
}

func (uc *inventoryUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	payload, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%slist:%x", productCachePrefix, md5.Sum(payload)), nil
}

func (uc *inventoryUseCase) syncToElastic(ctx context.Context, p *model.InventoryProduct) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"category": { "type": "keyword" },
				"name": { "type": "text" },
				"description": { "type": "text" },
				"sku_prefix": { "type": "keyword" },
				"base_price": { "type": "double" },
				"is_active": { "type": "boolean" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndex, mapping)

	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

// orderByIDs rearranges rows fetched by an unordered IN query back into the
// relevance order the search returned.
func orderByIDs(ids []string, products []model.InventoryProduct) []model.InventoryProduct {
	byID := make(map[string]model.InventoryProduct, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ordered := make([]model.InventoryProduct, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

func (uc *inventoryUseCase) searchElastic(ctx context.Context, query string, page, pageSize int) ([]string, int, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	body, err := json.Marshal(map[string]interface{}{
		"from": (page - 1) * pageSize,
		"size": pageSize,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^2", "sku_prefix", "description"},
			},
		},
	})
	if err != nil {
		return nil, 0, err
	}
	return uc.es.Search(ctx, productIndex, string(body))
}

func buildVariantSKU(prefix string, parts ...string) string {
	sku := strings.ToUpper(prefix)
	for _, part := range parts {
		if part == "" {
			continue
		}
		sku += "-" + strings.ToUpper(strings.ReplaceAll(part, " ", ""))
	}
	return sku
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
