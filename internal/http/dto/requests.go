package dto

import (
	"time"

	"github.com/home-inventory/backend/internal/models"
)

type CreateRoomRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Update requests use Optional fields so an omitted field, an explicit null
// and a value are three distinct inputs. Audit change-sets depend on the
// difference.
type UpdateRoomRequest struct {
	Name        models.Optional[string] `json:"name"`
	Description models.Optional[string] `json:"description"`
}

type CreateShelvingUnitRequest struct {
	RoomID      string  `json:"room_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdateShelvingUnitRequest struct {
	Name        models.Optional[string] `json:"name"`
	Description models.Optional[string] `json:"description"`
}

type CreateShelfRequest struct {
	ShelvingUnitID string  `json:"shelving_unit_id"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	Position       *int    `json:"position,omitempty"`
}

type UpdateShelfRequest struct {
	Name        models.Optional[string] `json:"name"`
	Description models.Optional[string] `json:"description"`
	Position    models.Optional[int]    `json:"position"`
}

type CreateContainerRequest struct {
	ShelfID           *string `json:"shelf_id,omitempty"`
	ParentContainerID *string `json:"parent_container_id,omitempty"`
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
}

type UpdateContainerRequest struct {
	Name        models.Optional[string] `json:"name"`
	Description models.Optional[string] `json:"description"`
}

type CreateItemRequest struct {
	ShelfID      *string    `json:"shelf_id,omitempty"`
	ContainerID  *string    `json:"container_id,omitempty"`
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	Barcode      *string    `json:"barcode,omitempty"`
	BarcodeType  *string    `json:"barcode_type,omitempty"`
	ProductLink  *string    `json:"product_link,omitempty"`
	AcquiredDate *time.Time `json:"acquired_date,omitempty"`
}

type UpdateItemRequest struct {
	Name         models.Optional[string]    `json:"name"`
	Description  models.Optional[string]    `json:"description"`
	Barcode      models.Optional[string]    `json:"barcode"`
	BarcodeType  models.Optional[string]    `json:"barcode_type"`
	ProductLink  models.Optional[string]    `json:"product_link"`
	AcquiredDate models.Optional[time.Time] `json:"acquired_date"`
}

type CreateTagRequest struct {
	Name string `json:"name"`
}

type UpdateTagRequest struct {
	Name models.Optional[string] `json:"name"`
}

// AssignTagsRequest replaces the entity's whole tag set.
type AssignTagsRequest struct {
	EntityType string   `json:"entity_type"`
	EntityID   string   `json:"entity_id"`
	TagIDs     []string `json:"tag_ids"`
}

type BulkAssignTagsRequest struct {
	EntityType string   `json:"entity_type"`
	EntityIDs  []string `json:"entity_ids"`
	TagIDs     []string `json:"tag_ids"`
}

type MoveShelvingUnitRequest struct {
	RoomID string `json:"room_id"`
}

type MoveShelfRequest struct {
	ShelvingUnitID string `json:"shelving_unit_id"`
	Position       *int   `json:"position,omitempty"`
}

// Move requests for containers and items mirror their create payloads:
// exactly one of the two references must be set, under the same field names.
type MoveContainerRequest struct {
	ShelfID           *string `json:"shelf_id,omitempty"`
	ParentContainerID *string `json:"parent_container_id,omitempty"`
}

type MoveItemRequest struct {
	ShelfID     *string `json:"shelf_id,omitempty"`
	ContainerID *string `json:"container_id,omitempty"`
}
