package handler

import (
	"errors"

	"github.com/atelierops/backoffice/internal/inventory"
	"github.com/atelierops/backoffice/internal/inventory/dto"
	"github.com/atelierops/backoffice/internal/inventory/stock"
	"github.com/atelierops/backoffice/internal/media"
	"github.com/atelierops/backoffice/internal/model"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc      inventory.UseCase
	cdnBase string
	logger  *zap.Logger
}

func NewInventoryHandler(uc inventory.UseCase, cdnBase string, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		uc:      uc,
		cdnBase: cdnBase,
		logger:  log,
	}
}

func (h *InventoryHandler) Register(router fiber.Router) {
	g := router.Group("/inventory")
	g.Get("/products", h.ListProducts)
	g.Post("/products", h.CreateProduct)
	g.Get("/products/search", h.SearchProducts)
	g.Get("/products/:id", h.GetProduct)
	g.Put("/products/:id", h.UpdateProduct)
	g.Delete("/products/:id", h.DeactivateProduct)
	g.Get("/products/:id/variants", h.ListVariants)
	g.Post("/products/:id/variants", h.AddVariant)
	g.Get("/variants/low-stock", h.ListLowStock)
	g.Post("/variants/:id/adjust", h.AdjustStock)
	g.Post("/variants/bulk-adjust/preview", h.PreviewBulkAdjust)
	g.Post("/variants/bulk-adjust", h.BulkAdjustStock)
	g.Get("/movements", h.ListMovements)
}

type createProductRequest struct {
	Category       string  `json:"category"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	SKUPrefix      string  `json:"sku_prefix"`
	BasePrice      float64 `json:"base_price"`
	RequiresSize   bool    `json:"requires_size"`
	RequiresColor  bool    `json:"requires_color"`
	SizingCategory string  `json:"sizing_category"`
	ImagePath      string  `json:"image_path"`
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Name == "" || req.SKUPrefix == "" {
		return badRequest(c, "name and sku_prefix are required")
	}

	imagePath := ""
	if req.ImagePath != "" {
		p, err := media.NewStoragePath(req.ImagePath, h.cdnBase)
		if err != nil {
			return badRequest(c, err.Error())
		}
		imagePath = p.String()
	}

	p, err := h.uc.CreateProduct(c.UserContext(), &dto.CreateProductInput{
		Category:       model.ProductCategory(req.Category),
		Name:           req.Name,
		Description:    req.Description,
		SKUPrefix:      req.SKUPrefix,
		BasePrice:      req.BasePrice,
		RequiresSize:   req.RequiresSize,
		RequiresColor:  req.RequiresColor,
		SizingCategory: req.SizingCategory,
		ImagePath:      imagePath,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(h.productResponse(p))
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(h.productResponse(p))
}

func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	filters := &dto.ProductFilters{
		Category:    model.ProductCategory(c.Query("category")),
		SearchQuery: c.Query("q"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Page:        c.QueryInt("page", 1),
		PageSize:    c.QueryInt("page_size", 20),
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}

	products, total, err := h.uc.ListProducts(c.UserContext(), filters)
	if err != nil {
		return h.mapError(c, err)
	}

	items := make([]fiber.Map, len(products))
	for i := range products {
		items[i] = h.productResponse(&products[i])
	}
	return c.JSON(fiber.Map{"items": items, "total": total})
}

func (h *InventoryHandler) SearchProducts(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return badRequest(c, "q is required")
	}

	products, total, err := h.uc.SearchProducts(c.UserContext(), q, c.QueryInt("page", 1), c.QueryInt("page_size", 20))
	if err != nil {
		return h.mapError(c, err)
	}

	items := make([]fiber.Map, len(products))
	for i := range products {
		items[i] = h.productResponse(&products[i])
	}
	return c.JSON(fiber.Map{"items": items, "total": total})
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	var req struct {
		createProductRequest
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	imagePath := ""
	if req.ImagePath != "" {
		p, err := media.NewStoragePath(req.ImagePath, h.cdnBase)
		if err != nil {
			return badRequest(c, err.Error())
		}
		imagePath = p.String()
	}

	p, err := h.uc.UpdateProduct(c.UserContext(), &dto.UpdateProductInput{
		ID:             c.Params("id"),
		Category:       model.ProductCategory(req.Category),
		Name:           req.Name,
		Description:    req.Description,
		SKUPrefix:      req.SKUPrefix,
		BasePrice:      req.BasePrice,
		RequiresSize:   req.RequiresSize,
		RequiresColor:  req.RequiresColor,
		SizingCategory: req.SizingCategory,
		ImagePath:      imagePath,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(h.productResponse(p))
}

func (h *InventoryHandler) DeactivateProduct(c *fiber.Ctx) error {
	if err := h.uc.DeactivateProduct(c.UserContext(), c.Params("id")); err != nil {
		return h.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type createVariantRequest struct {
	Size              string  `json:"size"`
	Color             string  `json:"color"`
	PieceType         string  `json:"piece_type"`
	Price             float64 `json:"price"`
	StockQuantity     int     `json:"stock_quantity"`
	LowStockThreshold int     `json:"low_stock_threshold"`
}

func (h *InventoryHandler) AddVariant(c *fiber.Ctx) error {
	var req createVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.StockQuantity < 0 || req.LowStockThreshold < 0 {
		return badRequest(c, "stock quantities cannot be negative")
	}

	v, err := h.uc.AddVariant(c.UserContext(), &dto.CreateVariantInput{
		ProductID:         c.Params("id"),
		Size:              req.Size,
		Color:             req.Color,
		PieceType:         req.PieceType,
		Price:             req.Price,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(variantResponse(v))
}

func (h *InventoryHandler) ListVariants(c *fiber.Ctx) error {
	variants, err := h.uc.ListVariants(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}

	items := make([]fiber.Map, len(variants))
	for i := range variants {
		items[i] = variantResponse(&variants[i])
	}
	return c.JSON(fiber.Map{"items": items})
}

func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	variants, total, err := h.uc.ListLowStock(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("page_size", 20))
	if err != nil {
		return h.mapError(c, err)
	}

	items := make([]fiber.Map, len(variants))
	for i := range variants {
		items[i] = variantResponse(&variants[i])
	}
	return c.JSON(fiber.Map{"items": items, "total": total})
}

type adjustRequest struct {
	Operation     string `json:"operation"`
	Operand       string `json:"operand"`
	Reason        string `json:"reason"`
	ReferenceType string `json:"reference_type"`
	ReferenceID   string `json:"reference_id"`
}

func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var req adjustRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	v, err := h.uc.AdjustStock(c.UserContext(), &dto.AdjustStockInput{
		VariantID:     c.Params("id"),
		Operation:     stock.Operation(req.Operation),
		Operand:       req.Operand,
		Reason:        req.Reason,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(variantResponse(v))
}

type bulkAdjustRequest struct {
	VariantIDs []string `json:"variant_ids"`
	Operation  string   `json:"operation"`
	Operand    string   `json:"operand"`
	Reason     string   `json:"reason"`
}

func (h *InventoryHandler) PreviewBulkAdjust(c *fiber.Ctx) error {
	var req bulkAdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.VariantIDs) == 0 {
		return badRequest(c, "variant_ids is required")
	}

	items, err := h.uc.PreviewBulkAdjust(c.UserContext(), &dto.BulkAdjustInput{
		VariantIDs: req.VariantIDs,
		Operation:  stock.Operation(req.Operation),
		Operand:    req.Operand,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

func (h *InventoryHandler) BulkAdjustStock(c *fiber.Ctx) error {
	var req bulkAdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.VariantIDs) == 0 {
		return badRequest(c, "variant_ids is required")
	}

	results, err := h.uc.BulkAdjustStock(c.UserContext(), &dto.BulkAdjustInput{
		VariantIDs: req.VariantIDs,
		Operation:  stock.Operation(req.Operation),
		Operand:    req.Operand,
		Reason:     req.Reason,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	return c.JSON(fiber.Map{"results": results, "failed": failed})
}

func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	movements, total, err := h.uc.ListMovements(c.UserContext(), &dto.MovementFilters{
		VariantID: c.Query("variant_id"),
		Operation: c.Query("operation"),
		Page:      c.QueryInt("page", 1),
		PageSize:  c.QueryInt("page_size", 20),
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"items": movements, "total": total})
}

func (h *InventoryHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, inventory.ErrProductNotFound), errors.Is(err, inventory.ErrVariantNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, inventory.ErrInvalidCategory),
		errors.Is(err, inventory.ErrInvalidOperand),
		errors.Is(err, inventory.ErrInvalidOp),
		errors.Is(err, inventory.ErrSKUPrefixTaken):
		return badRequest(c, err.Error())
	case errors.Is(err, inventory.ErrLockBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.Error("inventory request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func (h *InventoryHandler) productResponse(p *model.InventoryProduct) fiber.Map {
	variants := make([]fiber.Map, len(p.Variants))
	for i := range p.Variants {
		variants[i] = variantResponse(&p.Variants[i])
	}

	return fiber.Map{
		"id":              p.ID,
		"category":        p.Category,
		"name":            p.Name,
		"description":     deref(p.Description),
		"sku_prefix":      p.SKUPrefix,
		"base_price":      p.BasePrice,
		"requires_size":   p.RequiresSize,
		"requires_color":  p.RequiresColor,
		"sizing_category": deref(p.SizingCategory),
		"image_url":       media.ResolveURL(p.ImagePath, h.cdnBase),
		"is_active":       p.IsActive,
		"variants":        variants,
		"created_at":      p.CreatedAt,
		"updated_at":      p.UpdatedAt,
	}
}

func variantResponse(v *model.InventoryVariant) fiber.Map {
	return fiber.Map{
		"id":                  v.ID,
		"product_id":          v.ProductID,
		"sku":                 v.SKU,
		"size":                deref(v.Size),
		"color":               deref(v.Color),
		"piece_type":          deref(v.PieceType),
		"price":               v.Price,
		"stock_quantity":      v.StockQuantity,
		"low_stock_threshold": v.LowStockThreshold,
		"low_stock":           v.LowStock(),
		"is_active":           v.IsActive,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
