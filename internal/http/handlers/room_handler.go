package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/config"
	"github.com/home-inventory/backend/internal/http/dto"
	"github.com/home-inventory/backend/internal/middleware"
	"github.com/home-inventory/backend/internal/services"
)

type RoomHandler struct {
	rooms *services.RoomService
	units *services.UnitService
	cfg   *config.Config
	log   *zap.Logger
}

func NewRoomHandler(rooms *services.RoomService, units *services.UnitService, cfg *config.Config, log *zap.Logger) *RoomHandler {
	return &RoomHandler{rooms: rooms, units: units, cfg: cfg, log: log}
}

func (h *RoomHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	room, err := h.rooms.Create(c.Context(), services.CreateRoomInput{
		Name:        req.Name,
		Description: req.Description,
	}, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: room})
}

func (h *RoomHandler) List(c *fiber.Ctx) error {
	rooms, err := h.rooms.List(c.Context(), pageFromQuery(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: rooms})
}

func (h *RoomHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid room id")
	}
	room, err := h.rooms.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: room})
}

// ListUnits lists the shelving units placed in the room.
func (h *RoomHandler) ListUnits(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid room id")
	}
	units, err := h.units.ListByRoom(c.Context(), id, pageFromQuery(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: units})
}

func (h *RoomHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid room id")
	}
	var req dto.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	room, err := h.rooms.Update(c.Context(), id, services.UpdateRoomInput{
		Name:        req.Name,
		Description: req.Description,
	}, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: room})
}

func (h *RoomHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid room id")
	}
	if err := h.rooms.Delete(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
