package handler

import (
	"github.com/atelierops/backoffice/internal/reference"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReferenceHandler struct {
	uc     reference.UseCase
	logger *zap.Logger
}

func NewReferenceHandler(uc reference.UseCase, log *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ReferenceHandler) Register(router fiber.Router) {
	g := router.Group("/reference")
	g.Get("/sizes", h.Sizes)
	g.Get("/colors", h.Colors)
}

func (h *ReferenceHandler) Sizes(c *fiber.Ctx) error {
	sizes, err := h.uc.Sizes(c.UserContext())
	if err != nil {
		h.logger.Error("reference request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"data": sizes})
}

func (h *ReferenceHandler) Colors(c *fiber.Ctx) error {
	colors, err := h.uc.Colors(c.UserContext())
	if err != nil {
		h.logger.Error("reference request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"data": colors})
}
