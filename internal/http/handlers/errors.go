package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/http/dto"
	"github.com/home-inventory/backend/internal/middleware"
	"github.com/home-inventory/backend/internal/models"
)

// statusFor maps a domain error code to an HTTP status. Placement rejections
// are client errors; lock and serialization failures are conflicts the client
// may retry.
func statusFor(code errs.Code) int {
	switch code {
	case errs.CodeNotFound:
		return fiber.StatusNotFound
	case errs.CodeValidation, errs.CodeInvalidLocation, errs.CodeSelfReference, errs.CodeCyclicReference:
		return fiber.StatusBadRequest
	case errs.CodeConcurrentModification, errs.CodeConflict:
		return fiber.StatusConflict
	case errs.CodeBrokenChain:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	code := errs.CodeOf(err)
	status := statusFor(code)
	if errs.Retryable(err) {
		c.Set("Retry-After", "1")
	}

	resp := dto.ErrorResponse{
		Code:      string(code),
		RequestID: requestID(c),
	}
	if status == fiber.StatusInternalServerError {
		log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		resp.Error = "internal error"
	} else {
		resp.Error = err.Error()
	}
	return c.Status(status).JSON(resp)
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.CtxRequestID).(string)
	return id
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg, RequestID: requestID(c)})
}

func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func parseOptionalID(s *string) (*uuid.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func pageFromQuery(c *fiber.Ctx, defaultLimit, maxLimit int) models.Page {
	page := models.Page{}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Offset = n
		}
	}
	return page.Clamp(defaultLimit, maxLimit)
}
