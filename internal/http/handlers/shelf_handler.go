package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/config"
	"github.com/home-inventory/backend/internal/http/dto"
	"github.com/home-inventory/backend/internal/middleware"
	"github.com/home-inventory/backend/internal/services"
)

type ShelfHandler struct {
	shelves    *services.ShelfService
	containers *services.ContainerService
	items      *services.ItemService
	moves      *services.MoveService
	cfg        *config.Config
	log        *zap.Logger
}

func NewShelfHandler(shelves *services.ShelfService, containers *services.ContainerService, items *services.ItemService, moves *services.MoveService, cfg *config.Config, log *zap.Logger) *ShelfHandler {
	return &ShelfHandler{shelves: shelves, containers: containers, items: items, moves: moves, cfg: cfg, log: log}
}

func (h *ShelfHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateShelfRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	unitID, err := uuid.Parse(req.ShelvingUnitID)
	if err != nil {
		return badRequest(c, "invalid shelving unit id")
	}

	shelf, err := h.shelves.Create(c.Context(), services.CreateShelfInput{
		ShelvingUnitID: unitID,
		Name:           req.Name,
		Description:    req.Description,
		Position:       req.Position,
	}, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: shelf})
}

func (h *ShelfHandler) List(c *fiber.Ctx) error {
	shelves, err := h.shelves.List(c.Context(), pageFromQuery(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: shelves})
}

func (h *ShelfHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid shelf id")
	}
	shelf, err := h.shelves.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: shelf})
}

// ListContainers lists the containers sitting directly on the shelf.
func (h *ShelfHandler) ListContainers(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid shelf id")
	}
	containers, err := h.containers.ListByShelf(c.Context(), id, pageFromQuery(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: containers})
}

// ListItems lists the items sitting directly on the shelf.
func (h *ShelfHandler) ListItems(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid shelf id")
	}
	items, err := h.items.ListByShelf(c.Context(), id, pageFromQuery(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: items})
}

func (h *ShelfHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid shelf id")
	}
	var req dto.UpdateShelfRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	shelf, err := h.shelves.Update(c.Context(), id, services.UpdateShelfInput{
		Name:        req.Name,
		Description: req.Description,
		Position:    req.Position,
	}, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: shelf})
}

// Move relocates the shelf to another unit, optionally repositioning it.
func (h *ShelfHandler) Move(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid shelf id")
	}
	var req dto.MoveShelfRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	unitID, err := uuid.Parse(req.ShelvingUnitID)
	if err != nil {
		return badRequest(c, "invalid shelving unit id")
	}

	shelf, err := h.moves.MoveShelf(c.Context(), id, unitID, req.Position, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: shelf})
}

func (h *ShelfHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid shelf id")
	}
	if err := h.shelves.Delete(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
