package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/config"
	"github.com/home-inventory/backend/internal/http/dto"
	"github.com/home-inventory/backend/internal/middleware"
	"github.com/home-inventory/backend/internal/services"
)

type ItemHandler struct {
	items *services.ItemService
	moves *services.MoveService
	cfg   *config.Config
	log   *zap.Logger
}

func NewItemHandler(items *services.ItemService, moves *services.MoveService, cfg *config.Config, log *zap.Logger) *ItemHandler {
	return &ItemHandler{items: items, moves: moves, cfg: cfg, log: log}
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	shelfID, err := parseOptionalID(req.ShelfID)
	if err != nil {
		return badRequest(c, "invalid shelf id")
	}
	containerID, err := parseOptionalID(req.ContainerID)
	if err != nil {
		return badRequest(c, "invalid container id")
	}

	item, err := h.items.Create(c.Context(), services.CreateItemInput{
		ShelfID:      shelfID,
		ContainerID:  containerID,
		Name:         req.Name,
		Description:  req.Description,
		Barcode:      req.Barcode,
		BarcodeType:  req.BarcodeType,
		ProductLink:  req.ProductLink,
		AcquiredDate: req.AcquiredDate,
	}, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: item})
}

func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.items.List(c.Context(), pageFromQuery(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: items})
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid item id")
	}
	item, err := h.items.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: item})
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid item id")
	}
	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	item, err := h.items.Update(c.Context(), id, services.UpdateItemInput{
		Name:         req.Name,
		Description:  req.Description,
		Barcode:      req.Barcode,
		BarcodeType:  req.BarcodeType,
		ProductLink:  req.ProductLink,
		AcquiredDate: req.AcquiredDate,
	}, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: item})
}

// Move relocates the item onto a shelf or into a container.
func (h *ItemHandler) Move(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid item id")
	}
	var req dto.MoveItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	loc, err := moveTarget(req.ShelfID, req.ContainerID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	item, err := h.moves.MoveItem(c.Context(), id, loc, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: item})
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid item id")
	}
	if err := h.items.Delete(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
