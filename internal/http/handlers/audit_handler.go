package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/http/dto"
	"github.com/home-inventory/backend/internal/models"
	"github.com/home-inventory/backend/internal/repositories"
	"github.com/home-inventory/backend/internal/services"
)

type AuditHandler struct {
	audit *services.AuditService
	log   *zap.Logger
}

func NewAuditHandler(audit *services.AuditService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{audit: audit, log: log}
}

// List returns audit entries, newest first, filtered by query parameters.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var filter repositories.AuditFilter

	if v := c.Query("entity_type"); v != "" {
		kind := models.EntityKind(v)
		filter.EntityType = &kind
	}
	if v := c.Query("entity_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return badRequest(c, "invalid entity id")
		}
		filter.EntityID = &id
	}
	if v := c.Query("actor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return badRequest(c, "invalid actor id")
		}
		filter.ActorID = &id
	}
	if v := c.Query("action"); v != "" {
		filter.Action = &v
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	entries, err := h.audit.Query(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}
