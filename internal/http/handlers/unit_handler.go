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

type UnitHandler struct {
	units   *services.UnitService
	shelves *services.ShelfService
	moves   *services.MoveService
	cfg     *config.Config
	log     *zap.Logger
}

func NewUnitHandler(units *services.UnitService, shelves *services.ShelfService, moves *services.MoveService, cfg *config.Config, log *zap.Logger) *UnitHandler {
	return &UnitHandler{units: units, shelves: shelves, moves: moves, cfg: cfg, log: log}
}

func (h *UnitHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateShelvingUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return badRequest(c, "invalid room id")
	}

	unit, err := h.units.Create(c.Context(), services.CreateUnitInput{
		RoomID:      roomID,
		Name:        req.Name,
		Description: req.Description,
	}, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: unit})
}

func (h *UnitHandler) List(c *fiber.Ctx) error {
	units, err := h.units.List(c.Context(), pageFromQuery(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: units})
}

func (h *UnitHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid shelving unit id")
	}
	unit, err := h.units.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: unit})
}

func (h *UnitHandler) ListShelves(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid shelving unit id")
	}
	shelves, err := h.shelves.ListByUnit(c.Context(), id, pageFromQuery(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: shelves})
}

func (h *UnitHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid shelving unit id")
	}
	var req dto.UpdateShelvingUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	unit, err := h.units.Update(c.Context(), id, services.UpdateUnitInput{
		Name:        req.Name,
		Description: req.Description,
	}, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: unit})
}

// Move relocates the unit to another room.
func (h *UnitHandler) Move(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid shelving unit id")
	}
	var req dto.MoveShelvingUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return badRequest(c, "invalid room id")
	}

	unit, err := h.moves.MoveShelvingUnit(c.Context(), id, roomID, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: unit})
}

func (h *UnitHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid shelving unit id")
	}
	if err := h.units.Delete(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
