package handler

import (
	"errors"

	"github.com/atelierops/backoffice/internal/model"
	"github.com/atelierops/backoffice/internal/order"
	"github.com/atelierops/backoffice/internal/order/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     order.UseCase
	logger *zap.Logger
}

func NewOrderHandler(uc order.UseCase, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) Register(router fiber.Router) {
	g := router.Group("/orders")
	g.Get("/", h.ListOrders)
	g.Get("/queue", h.Queue)
	g.Get("/queue/pins", h.ListPinned)
	g.Get("/:id", h.GetOrder)
	g.Put("/:id/status", h.UpdateStatus)
	g.Put("/:id/stage", h.UpdateStage)
	g.Put("/:id/priority", h.SetPriority)
	g.Put("/:id/pin", h.PinQueuePosition)
	g.Delete("/:id/pin", h.UnpinQueuePosition)
}

func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	filters := &dto.OrderFilters{
		Status:        model.OrderStatus(c.Query("status")),
		Stage:         model.FulfillmentStage(c.Query("stage")),
		PriorityLevel: model.PriorityTier(c.Query("priority")),
		CustomerID:    c.Query("customer_id"),
		Page:          c.QueryInt("page", 1),
		PageSize:      c.QueryInt("page_size", 20),
	}

	orders, total, err := h.uc.ListOrders(c.UserContext(), filters)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{
		"data":      orders,
		"total":     total,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

func (h *OrderHandler) Queue(c *fiber.Ctx) error {
	queue, err := h.uc.Queue(c.UserContext())
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"data": queue})
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	o, err := h.uc.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(o)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	o, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), model.OrderStatus(req.Status))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(o)
}

type stageRequest struct {
	Stage string `json:"stage"`
}

func (h *OrderHandler) UpdateStage(c *fiber.Ctx) error {
	var req stageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	o, err := h.uc.UpdateStage(c.UserContext(), c.Params("id"), model.FulfillmentStage(req.Stage))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(o)
}

type priorityRequest struct {
	// Null clears the tier back to the default ranking.
	Priority *string `json:"priority"`
}

func (h *OrderHandler) SetPriority(c *fiber.Ctx) error {
	var req priorityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	var tier *model.PriorityTier
	if req.Priority != nil {
		t := model.PriorityTier(*req.Priority)
		tier = &t
	}

	o, err := h.uc.SetPriority(c.UserContext(), c.Params("id"), tier)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(o)
}

type pinRequest struct {
	Position int `json:"position"`
}

func (h *OrderHandler) PinQueuePosition(c *fiber.Ctx) error {
	var req pinRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.uc.PinQueuePosition(c.UserContext(), c.Params("id"), req.Position); err != nil {
		return h.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *OrderHandler) UnpinQueuePosition(c *fiber.Ctx) error {
	if err := h.uc.UnpinQueuePosition(c.UserContext(), c.Params("id")); err != nil {
		return h.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *OrderHandler) ListPinned(c *fiber.Ctx) error {
	entries, err := h.uc.ListPinned(c.UserContext())
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"data": entries})
}

func (h *OrderHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, order.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidStage),
		errors.Is(err, order.ErrInvalidPriority),
		errors.Is(err, order.ErrInvalidPosition):
		return badRequest(c, err.Error())
	}

	h.logger.Error("order request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
