package models

import (
	"time"

	"github.com/google/uuid"
)

// EntityTag is the audit entity type for tag lifecycle entries. Tags are not
// placeable and carry no location.
const EntityTag EntityKind = "tag"

// Tag is a free-form label. Names are unique case-insensitively; a tag can be
// attached to any placeable entity.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Taggable reports whether the kind can carry tag assignments.
func Taggable(kind EntityKind) bool {
	switch kind {
	case EntityRoom, EntityShelvingUnit, EntityShelf, EntityContainer, EntityItem:
		return true
	}
	return false
}
