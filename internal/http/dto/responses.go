package dto

import "github.com/home-inventory/backend/internal/models"

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

// BreadcrumbResponse is the path from an entity up to its rooting shelf,
// nearest parent first.
type BreadcrumbResponse struct {
	Chain []models.Location `json:"chain"`
}
