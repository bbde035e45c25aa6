package handler

import (
	"errors"

	"github.com/atelierops/backoffice/internal/communication"
	"github.com/atelierops/backoffice/internal/communication/dto"
	"github.com/atelierops/backoffice/internal/model"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CommunicationHandler struct {
	uc     communication.UseCase
	logger *zap.Logger
}

func NewCommunicationHandler(uc communication.UseCase, log *zap.Logger) *CommunicationHandler {
	return &CommunicationHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CommunicationHandler) Register(router fiber.Router) {
	g := router.Group("/communications")
	g.Post("/", h.Record)
	g.Get("/orders/:orderId", h.ListByOrder)
	g.Put("/:id/response", h.SetResponseReceived)
}

type recordRequest struct {
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	Direction  string `json:"direction"`
	Type       string `json:"type"`
	Subject    string `json:"subject"`
	Content    string `json:"content"`
}

func (h *CommunicationHandler) Record(c *fiber.Ctx) error {
	var req recordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.OrderID == "" {
		return badRequest(c, "order_id is required")
	}

	l, err := h.uc.Record(c.UserContext(), &dto.RecordInput{
		OrderID:    req.OrderID,
		CustomerID: req.CustomerID,
		Direction:  model.CommDirection(req.Direction),
		Type:       model.CommType(req.Type),
		Subject:    req.Subject,
		Content:    req.Content,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(l)
}

func (h *CommunicationHandler) ListByOrder(c *fiber.Ctx) error {
	logs, err := h.uc.ListByOrder(c.UserContext(), c.Params("orderId"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"data": logs})
}

type responseRequest struct {
	Received bool `json:"received"`
}

func (h *CommunicationHandler) SetResponseReceived(c *fiber.Ctx) error {
	var req responseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.uc.SetResponseReceived(c.UserContext(), c.Params("id"), req.Received); err != nil {
		return h.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CommunicationHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, communication.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, communication.ErrInvalidType),
		errors.Is(err, communication.ErrInvalidDirection),
		errors.Is(err, communication.ErrContentRequired):
		return badRequest(c, err.Error())
	}

	h.logger.Error("communication request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
