package models

import (
	"time"

	"github.com/google/uuid"
)

// Container holds items or other containers. Exactly one of ShelfID /
// ParentContainerID is set; nesting depth is unbounded but the located-in
// relation stays acyclic (enforced by the move validator).
type Container struct {
	ID                uuid.UUID  `json:"id"`
	ShelfID           *uuid.UUID `json:"shelf_id,omitempty"`
	ParentContainerID *uuid.UUID `json:"parent_container_id,omitempty"`
	Name              string     `json:"name"`
	Description       *string    `json:"description,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	CreatedBy         uuid.UUID  `json:"created_by"`
}

// Location rebuilds the tagged parent reference from the column pair.
func (c *Container) Location() (Location, error) {
	return LocationFromColumns(c.ShelfID, c.ParentContainerID)
}

// Item is a terminal leaf: it lives on a shelf or in a container and can
// never be a parent itself.
type Item struct {
	ID           uuid.UUID  `json:"id"`
	ShelfID      *uuid.UUID `json:"shelf_id,omitempty"`
	ContainerID  *uuid.UUID `json:"container_id,omitempty"`
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	Barcode      *string    `json:"barcode,omitempty"`
	BarcodeType  *string    `json:"barcode_type,omitempty"`
	ProductLink  *string    `json:"product_link,omitempty"`
	AcquiredDate *time.Time `json:"acquired_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CreatedBy    uuid.UUID  `json:"created_by"`
}

func (i *Item) Location() (Location, error) {
	return LocationFromColumns(i.ShelfID, i.ContainerID)
}
