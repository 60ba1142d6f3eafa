package models

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedBy   uuid.UUID `json:"created_by"`
}

type ShelvingUnit struct {
	ID          uuid.UUID `json:"id"`
	RoomID      uuid.UUID `json:"room_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedBy   uuid.UUID `json:"created_by"`
}

// Location returns the unit's parent reference.
func (u *ShelvingUnit) Location() Location { return RoomLocation(u.RoomID) }

type Shelf struct {
	ID             uuid.UUID `json:"id"`
	ShelvingUnitID uuid.UUID `json:"shelving_unit_id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	Position       *int      `json:"position,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	CreatedBy      uuid.UUID `json:"created_by"`
}

func (s *Shelf) Location() Location { return UnitLocation(s.ShelvingUnitID) }
