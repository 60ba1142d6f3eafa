package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/config"
	"github.com/home-inventory/backend/internal/http/dto"
	"github.com/home-inventory/backend/internal/middleware"
	"github.com/home-inventory/backend/internal/models"
	"github.com/home-inventory/backend/internal/services"
)

type TagHandler struct {
	tags *services.TagService
	cfg  *config.Config
	log  *zap.Logger
}

func NewTagHandler(tags *services.TagService, cfg *config.Config, log *zap.Logger) *TagHandler {
	return &TagHandler{tags: tags, cfg: cfg, log: log}
}

func (h *TagHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	tag, err := h.tags.Create(c.Context(), req.Name, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: tag})
}

func (h *TagHandler) List(c *fiber.Ctx) error {
	tags, err := h.tags.List(c.Context(), pageFromQuery(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: tags})
}

func (h *TagHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid tag id")
	}
	tag, err := h.tags.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: tag})
}

func (h *TagHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid tag id")
	}
	var req dto.UpdateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	tag, err := h.tags.Update(c.Context(), id, services.UpdateTagInput{Name: req.Name}, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: tag})
}

func (h *TagHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid tag id")
	}
	if err := h.tags.Delete(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// ListForEntity lists the tags attached to one entity.
func (h *TagHandler) ListForEntity(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid entity id")
	}
	tags, err := h.tags.ListForEntity(c.Context(), models.EntityKind(c.Params("type")), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: tags})
}

func (h *TagHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignTagsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		return badRequest(c, "invalid entity id")
	}
	tagIDs, err := parseIDList(req.TagIDs)
	if err != nil {
		return badRequest(c, "invalid tag id")
	}

	err = h.tags.Assign(c.Context(), models.EntityKind(req.EntityType), entityID, tagIDs, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *TagHandler) BulkAssign(c *fiber.Ctx) error {
	var req dto.BulkAssignTagsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	entityIDs, err := parseIDList(req.EntityIDs)
	if err != nil {
		return badRequest(c, "invalid entity id")
	}
	tagIDs, err := parseIDList(req.TagIDs)
	if err != nil {
		return badRequest(c, "invalid tag id")
	}

	err = h.tags.BulkAssign(c.Context(), models.EntityKind(req.EntityType), entityIDs, tagIDs, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func parseIDList(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
