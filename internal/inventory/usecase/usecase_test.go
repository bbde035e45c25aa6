package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/atelierops/backoffice/internal/inventory"
	"github.com/atelierops/backoffice/internal/inventory/dto"
	"github.com/atelierops/backoffice/internal/inventory/stock"
	"github.com/atelierops/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRepo is an in-memory Repository for usecase tests.
type fakeRepo struct {
	products  map[string]*model.InventoryProduct
	variants  map[string]*model.InventoryVariant
	movements []model.StockMovement

	failStockUpdateFor map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products:           map[string]*model.InventoryProduct{},
		variants:           map[string]*model.InventoryVariant{},
		failStockUpdateFor: map[string]bool{},
	}
}

func (f *fakeRepo) CreateProduct(_ context.Context, p *model.InventoryProduct) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) FindProductByID(_ context.Context, id string) (*model.InventoryProduct, error) {
	if p, ok := f.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) FindProducts(_ context.Context, _ *dto.ProductFilters) ([]model.InventoryProduct, int, error) {
	out := make([]model.InventoryProduct, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) FindProductsByIDs(_ context.Context, ids []string) ([]model.InventoryProduct, error) {
	var out []model.InventoryProduct
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateProduct(_ context.Context, p *model.InventoryProduct) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) DeactivateProduct(_ context.Context, id string) error {
	if p, ok := f.products[id]; ok {
		p.IsActive = false
		return nil
	}
	return errors.New("not found")
}

func (f *fakeRepo) IsSKUPrefixUnique(_ context.Context, prefix, excludeID string) (bool, error) {
	for _, p := range f.products {
		if p.SKUPrefix == prefix && p.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeRepo) CreateVariant(_ context.Context, v *model.InventoryVariant) error {
	cp := *v
	f.variants[v.ID] = &cp
	return nil
}

func (f *fakeRepo) FindVariantByID(_ context.Context, id string) (*model.InventoryVariant, error) {
	if v, ok := f.variants[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) FindVariantsByProduct(_ context.Context, productID string) ([]model.InventoryVariant, error) {
	var out []model.InventoryVariant
	for _, v := range f.variants {
		if v.ProductID == productID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindVariantsByIDs(_ context.Context, ids []string) ([]model.InventoryVariant, error) {
	var out []model.InventoryVariant
	for _, id := range ids {
		if v, ok := f.variants[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateVariant(_ context.Context, v *model.InventoryVariant) error {
	cp := *v
	f.variants[v.ID] = &cp
	return nil
}

func (f *fakeRepo) FindLowStock(_ context.Context, _, _ int) ([]model.InventoryVariant, int, error) {
	var out []model.InventoryVariant
	for _, v := range f.variants {
		if v.LowStock() {
			out = append(out, *v)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateStockWithMovement(_ context.Context, variantID string, newQuantity int, m *model.StockMovement) error {
	if f.failStockUpdateFor[variantID] {
		return errors.New("simulated store failure")
	}
	v, ok := f.variants[variantID]
	if !ok {
		return errors.New("not found")
	}
	v.StockQuantity = newQuantity
	f.movements = append(f.movements, *m)
	return nil
}

func (f *fakeRepo) ListMovements(_ context.Context, _ *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return f.movements, len(f.movements), nil
}

func newTestUseCase(repo *fakeRepo) *inventoryUseCase {
	return NewInventoryUseCase(repo, nil, nil, zap.NewNop()).(*inventoryUseCase)
}

func seedVariants(repo *fakeRepo, stocks []int) []string {
	ids := make([]string, len(stocks))
	for i, q := range stocks {
		id := fmt.Sprintf("v%d", i)
		repo.variants[id] = &model.InventoryVariant{
			BaseModel:     model.BaseModel{ID: id},
			ProductID:     "p1",
			SKU:           fmt.Sprintf("SUIT-%d", i),
			StockQuantity: q,
			IsActive:      true,
		}
		ids[i] = id
	}
	return ids
}

func TestBulkAdjustSubtractScenario(t *testing.T) {
	repo := newFakeRepo()
	ids := seedVariants(repo, []int{0, 3, 10, 4, 100})
	uc := newTestUseCase(repo)

	results, err := uc.BulkAdjustStock(context.Background(), &dto.BulkAdjustInput{
		VariantIDs: ids,
		Operation:  stock.OpSubtract,
		Operand:    "5",
		Reason:     "cycle count correction",
	})
	require.NoError(t, err)
	require.Len(t, results, 5)

	want := []int{0, 0, 5, 0, 95}
	for i, res := range results {
		assert.Empty(t, res.Error)
		assert.Equal(t, want[i], res.After, "variant %d", i)
		assert.Equal(t, want[i], repo.variants[ids[i]].StockQuantity, "stored variant %d", i)
	}

	// Variant 0 was already at the clamp; no movement row for a no-op.
	assert.Len(t, repo.movements, 4)
	for _, m := range repo.movements {
		assert.Equal(t, "subtract", m.Operation)
		assert.GreaterOrEqual(t, m.QuantityAfter, 0)
	}
}

func TestBulkAdjustPartialFailure(t *testing.T) {
	repo := newFakeRepo()
	ids := seedVariants(repo, []int{10, 10, 10})
	repo.failStockUpdateFor[ids[1]] = true
	uc := newTestUseCase(repo)

	results, err := uc.BulkAdjustStock(context.Background(), &dto.BulkAdjustInput{
		VariantIDs: ids,
		Operation:  stock.OpAdd,
		Operand:    "5",
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Empty(t, results[0].Error)
	assert.Equal(t, 15, results[0].After)
	assert.NotEmpty(t, results[1].Error)
	assert.Empty(t, results[2].Error)
	assert.Equal(t, 15, results[2].After)

	// No rollback: the failed item's neighbors keep their writes.
	assert.Equal(t, 15, repo.variants[ids[0]].StockQuantity)
	assert.Equal(t, 10, repo.variants[ids[1]].StockQuantity)
	assert.Equal(t, 15, repo.variants[ids[2]].StockQuantity)
}

func TestBulkAdjustUnknownVariantReported(t *testing.T) {
	repo := newFakeRepo()
	ids := seedVariants(repo, []int{5})
	uc := newTestUseCase(repo)

	results, err := uc.BulkAdjustStock(context.Background(), &dto.BulkAdjustInput{
		VariantIDs: append(ids, "missing"),
		Operation:  stock.OpSet,
		Operand:    "1",
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Empty(t, results[0].Error)
	assert.Equal(t, inventory.ErrVariantNotFound.Error(), results[1].Error)
}

func TestAdjustStockValidation(t *testing.T) {
	repo := newFakeRepo()
	ids := seedVariants(repo, []int{5})
	uc := newTestUseCase(repo)

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		VariantID: ids[0],
		Operation: stock.OpAdd,
		Operand:   "abc",
	})
	assert.ErrorIs(t, err, inventory.ErrInvalidOperand)

	_, err = uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		VariantID: ids[0],
		Operation: stock.OpAdd,
		Operand:   "1e300",
	})
	assert.ErrorIs(t, err, inventory.ErrInvalidOperand)

	_, err = uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		VariantID: ids[0],
		Operation: stock.Operation("divide"),
		Operand:   "2",
	})
	assert.ErrorIs(t, err, inventory.ErrInvalidOp)

	// Nothing reached the store.
	assert.Equal(t, 5, repo.variants[ids[0]].StockQuantity)
	assert.Empty(t, repo.movements)
}

func TestAdjustStockWritesAuditRow(t *testing.T) {
	repo := newFakeRepo()
	ids := seedVariants(repo, []int{10})
	uc := newTestUseCase(repo)

	v, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		VariantID:     ids[0],
		Operation:     stock.OpPercentage,
		Operand:       "33",
		Reason:        "seasonal uplift",
		ReferenceType: "manual",
	})
	require.NoError(t, err)
	assert.Equal(t, 13, v.StockQuantity)

	require.Len(t, repo.movements, 1)
	m := repo.movements[0]
	assert.Equal(t, 10, m.QuantityBefore)
	assert.Equal(t, 13, m.QuantityAfter)
	assert.Equal(t, "percentage", m.Operation)
	assert.Equal(t, "seasonal uplift", m.Notes)
}

func TestPreviewBulkAdjustHasNoSideEffects(t *testing.T) {
	repo := newFakeRepo()
	ids := seedVariants(repo, []int{0, 3, 10, 4, 100})
	uc := newTestUseCase(repo)

	items, err := uc.PreviewBulkAdjust(context.Background(), &dto.BulkAdjustInput{
		VariantIDs: ids,
		Operation:  stock.OpSubtract,
		Operand:    "5",
	})
	require.NoError(t, err)
	require.Len(t, items, 5)

	for i, q := range []int{0, 3, 10, 4, 100} {
		assert.Equal(t, q, repo.variants[ids[i]].StockQuantity)
	}
	assert.Empty(t, repo.movements)
}

func TestAddVariantRequirements(t *testing.T) {
	repo := newFakeRepo()
	repo.products["p1"] = &model.InventoryProduct{
		BaseModel:    model.BaseModel{ID: "p1"},
		Category:     model.CategorySuits,
		SKUPrefix:    "SUIT",
		BasePrice:    499,
		RequiresSize: true,
		IsActive:     true,
	}
	uc := newTestUseCase(repo)

	_, err := uc.AddVariant(context.Background(), &dto.CreateVariantInput{
		ProductID: "p1",
		Color:     "navy",
	})
	require.Error(t, err)

	v, err := uc.AddVariant(context.Background(), &dto.CreateVariantInput{
		ProductID:     "p1",
		Size:          "42R",
		Color:         "navy",
		PieceType:     "jacket",
		StockQuantity: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "SUIT-42R-NAVY-JACKET", v.SKU)
	assert.Equal(t, 8, v.StockQuantity)
	assert.Equal(t, 499.0, v.Price)

	// Initial stock went through the audited path.
	require.Len(t, repo.movements, 1)
	assert.Equal(t, "variant_created", *repo.movements[0].ReferenceType)
}

func TestOrderByIDsKeepsSearchRanking(t *testing.T) {
	products := []model.InventoryProduct{}
	for _, id := range []string{"p1", "p2", "p3"} {
		p := model.InventoryProduct{}
		p.ID = id
		products = append(products, p)
	}

	// IN queries return rows in storage order; the ranking must win.
	ordered := orderByIDs([]string{"p3", "p1", "p2"}, products)
	require.Len(t, ordered, 3)
	assert.Equal(t, "p3", ordered[0].ID)
	assert.Equal(t, "p1", ordered[1].ID)
	assert.Equal(t, "p2", ordered[2].ID)

	// IDs the store no longer has are skipped.
	ordered = orderByIDs([]string{"p2", "gone"}, products)
	require.Len(t, ordered, 1)
	assert.Equal(t, "p2", ordered[0].ID)
}

func TestCreateProductValidation(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo)

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Category:  model.ProductCategory("hats"),
		Name:      "Fedora",
		SKUPrefix: "HAT",
	})
	assert.ErrorIs(t, err, inventory.ErrInvalidCategory)

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Category:  model.CategoryAccessories,
		Name:      "Silk Tie",
		SKUPrefix: "tie",
		BasePrice: 59,
	})
	require.NoError(t, err)
	assert.Equal(t, "TIE", p.SKUPrefix)
	assert.True(t, p.IsActive)

	_, err = uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Category:  model.CategoryAccessories,
		Name:      "Other Tie",
		SKUPrefix: "TIE",
	})
	assert.ErrorIs(t, err, inventory.ErrSKUPrefixTaken)

	// Prefixes are stored uppercased, so uniqueness must compare the
	// uppercased form too.
	_, err = uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Category:  model.CategoryAccessories,
		Name:      "Knit Tie",
		SKUPrefix: "tie",
	})
	assert.ErrorIs(t, err, inventory.ErrSKUPrefixTaken)

	stored := 0
	for _, p := range repo.products {
		if p.SKUPrefix == "TIE" {
			stored++
		}
	}
	assert.Equal(t, 1, stored)
}
