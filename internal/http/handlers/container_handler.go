package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/config"
	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/http/dto"
	"github.com/home-inventory/backend/internal/middleware"
	"github.com/home-inventory/backend/internal/models"
	"github.com/home-inventory/backend/internal/services"
)

type ContainerHandler struct {
	containers *services.ContainerService
	items      *services.ItemService
	moves      *services.MoveService
	cfg        *config.Config
	log        *zap.Logger
}

func NewContainerHandler(containers *services.ContainerService, items *services.ItemService, moves *services.MoveService, cfg *config.Config, log *zap.Logger) *ContainerHandler {
	return &ContainerHandler{containers: containers, items: items, moves: moves, cfg: cfg, log: log}
}

func (h *ContainerHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateContainerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	shelfID, err := parseOptionalID(req.ShelfID)
	if err != nil {
		return badRequest(c, "invalid shelf id")
	}
	parentID, err := parseOptionalID(req.ParentContainerID)
	if err != nil {
		return badRequest(c, "invalid parent container id")
	}

	container, err := h.containers.Create(c.Context(), services.CreateContainerInput{
		ShelfID:           shelfID,
		ParentContainerID: parentID,
		Name:              req.Name,
		Description:       req.Description,
	}, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: container})
}

func (h *ContainerHandler) List(c *fiber.Ctx) error {
	containers, err := h.containers.List(c.Context(), pageFromQuery(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: containers})
}

func (h *ContainerHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid container id")
	}
	container, err := h.containers.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: container})
}

// ListChildren lists containers nested directly inside this one.
func (h *ContainerHandler) ListChildren(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid container id")
	}
	children, err := h.containers.ListByParent(c.Context(), id, pageFromQuery(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: children})
}

// ListItems lists items stored directly inside this container.
func (h *ContainerHandler) ListItems(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid container id")
	}
	items, err := h.items.ListByContainer(c.Context(), id, pageFromQuery(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: items})
}

// Breadcrumbs returns the container's ancestor chain, nearest parent first.
func (h *ContainerHandler) Breadcrumbs(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid container id")
	}
	chain, err := h.moves.AncestorChain(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.BreadcrumbResponse{Chain: chain}})
}

func (h *ContainerHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid container id")
	}
	var req dto.UpdateContainerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	container, err := h.containers.Update(c.Context(), id, services.UpdateContainerInput{
		Name:        req.Name,
		Description: req.Description,
	}, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: container})
}

// Move relocates the container onto a shelf or into another container.
func (h *ContainerHandler) Move(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid container id")
	}
	var req dto.MoveContainerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	loc, err := moveTarget(req.ShelfID, req.ParentContainerID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	container, err := h.moves.MoveContainer(c.Context(), id, loc, middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: container})
}

func (h *ContainerHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid container id")
	}
	if err := h.containers.Delete(c.Context(), id, middleware.GetUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// moveTarget converts the two-reference request shape into a Location.
func moveTarget(shelfRef, containerRef *string) (models.Location, error) {
	shelfID, err := parseOptionalID(shelfRef)
	if err != nil {
		return models.Location{}, errs.InvalidLocation("invalid shelf id")
	}
	containerID, err := parseOptionalID(containerRef)
	if err != nil {
		return models.Location{}, errs.InvalidLocation("invalid container id")
	}
	return models.LocationFromColumns(shelfID, containerID)
}
