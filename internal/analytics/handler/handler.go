package handler

import (
	"encoding/json"

	"github.com/atelierops/backoffice/internal/analytics"
	"github.com/atelierops/backoffice/internal/model"
	"github.com/atelierops/backoffice/internal/session"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	recorder *analytics.Recorder
	logger   *zap.Logger
}

func NewAnalyticsHandler(recorder *analytics.Recorder, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		recorder: recorder,
		logger:   log,
	}
}

func (h *AnalyticsHandler) Register(router fiber.Router) {
	g := router.Group("/analytics")
	g.Post("/events", h.RecordEvent)
	g.Get("/sessions/:id", h.ListBySession)
}

type eventRequest struct {
	EventType string          `json:"event_type"`
	Page      string          `json:"page"`
	Payload   json.RawMessage `json:"payload"`
}

func (h *AnalyticsHandler) RecordEvent(c *fiber.Ctx) error {
	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.EventType == "" {
		req.EventType = model.EventAction
	}

	s := session.FromContext(c.UserContext())
	h.recorder.Record(s.SessionID, req.EventType, req.Page, req.Payload)

	// Fire and forget; the recorder batches writes.
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *AnalyticsHandler) ListBySession(c *fiber.Ctx) error {
	events, err := h.recorder.ListBySession(c.UserContext(), c.Params("id"))
	if err != nil {
		h.logger.Error("analytics request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"data": events})
}
