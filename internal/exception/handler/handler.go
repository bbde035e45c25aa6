package handler

import (
	"errors"

	"github.com/atelierops/backoffice/internal/exception"
	"github.com/atelierops/backoffice/internal/exception/dto"
	"github.com/atelierops/backoffice/internal/model"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExceptionHandler struct {
	uc     exception.UseCase
	logger *zap.Logger
}

func NewExceptionHandler(uc exception.UseCase, log *zap.Logger) *ExceptionHandler {
	return &ExceptionHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ExceptionHandler) Register(router fiber.Router) {
	g := router.Group("/exceptions")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.Get)
	g.Put("/:id/status", h.UpdateStatus)
	g.Post("/:id/resolve", h.Resolve)
}

type createRequest struct {
	OrderID       string `json:"order_id"`
	ExceptionType string `json:"exception_type"`
	Priority      string `json:"priority"`
	Description   string `json:"description"`
}

func (h *ExceptionHandler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.OrderID == "" || req.ExceptionType == "" {
		return badRequest(c, "order_id and exception_type are required")
	}

	e, err := h.uc.Create(c.UserContext(), &dto.CreateExceptionInput{
		OrderID:       req.OrderID,
		ExceptionType: req.ExceptionType,
		Priority:      model.PriorityTier(req.Priority),
		Description:   req.Description,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

func (h *ExceptionHandler) Get(c *fiber.Ctx) error {
	e, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(e)
}

func (h *ExceptionHandler) List(c *fiber.Ctx) error {
	filters := &dto.ExceptionFilters{
		Status:   model.ExceptionStatus(c.Query("status")),
		Priority: model.PriorityTier(c.Query("priority")),
		OrderID:  c.Query("order_id"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	exceptions, total, err := h.uc.List(c.UserContext(), filters)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{
		"data":      exceptions,
		"total":     total,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *ExceptionHandler) UpdateStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	e, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), model.ExceptionStatus(req.Status))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(e)
}

type resolveRequest struct {
	Notes string `json:"notes"`
}

func (h *ExceptionHandler) Resolve(c *fiber.Ctx) error {
	var req resolveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	e, err := h.uc.Resolve(c.UserContext(), c.Params("id"), req.Notes)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(e)
}

func (h *ExceptionHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, exception.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, exception.ErrInvalidStatus),
		errors.Is(err, exception.ErrInvalidPriority),
		errors.Is(err, exception.ErrNotesRequired):
		return badRequest(c, err.Error())
	case errors.Is(err, exception.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.Error("exception request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
