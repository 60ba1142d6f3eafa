package models

import (
	"github.com/google/uuid"

	"github.com/home-inventory/backend/internal/errs"
)

// EntityKind names a placeable entity type. Stored in audit_log.entity_type.
type EntityKind string

const (
	EntityRoom         EntityKind = "room"
	EntityShelvingUnit EntityKind = "shelving_unit"
	EntityShelf        EntityKind = "shelf"
	EntityContainer    EntityKind = "container"
	EntityItem         EntityKind = "item"
)

// LocationKind names the parent entity type a location points at.
type LocationKind string

const (
	LocationRoom         LocationKind = "room"
	LocationShelvingUnit LocationKind = "shelving_unit"
	LocationShelf        LocationKind = "shelf"
	LocationContainer    LocationKind = "container"
)

// Location is the single parent reference placing an entity in the hierarchy.
// The tagged form makes "both set" and "neither set" unrepresentable; the
// two-nullable-column storage shape exists only at the persistence boundary
// (LocationFromColumns / Columns).
type Location struct {
	Kind LocationKind `json:"kind"`
	ID   uuid.UUID    `json:"id"`
}

func RoomLocation(id uuid.UUID) Location      { return Location{Kind: LocationRoom, ID: id} }
func UnitLocation(id uuid.UUID) Location      { return Location{Kind: LocationShelvingUnit, ID: id} }
func ShelfLocation(id uuid.UUID) Location     { return Location{Kind: LocationShelf, ID: id} }
func ContainerLocation(id uuid.UUID) Location { return Location{Kind: LocationContainer, ID: id} }

// allowedParents is the closed set of parent kinds per entity kind. Rooms are
// hierarchy roots and carry no location.
var allowedParents = map[EntityKind][]LocationKind{
	EntityShelvingUnit: {LocationRoom},
	EntityShelf:        {LocationShelvingUnit},
	EntityContainer:    {LocationShelf, LocationContainer},
	EntityItem:         {LocationShelf, LocationContainer},
}

// ValidateLocation checks that the proposed location is structurally valid for
// the entity kind. Pure; existence of the referenced row is checked by the
// caller against the store.
func ValidateLocation(kind EntityKind, loc Location) error {
	if loc.ID == uuid.Nil {
		return errs.InvalidLocation("%s location requires a target id", kind)
	}
	allowed, ok := allowedParents[kind]
	if !ok {
		return errs.InvalidLocation("%s entities cannot be placed", kind)
	}
	for _, k := range allowed {
		if loc.Kind == k {
			return nil
		}
	}
	return errs.InvalidLocation("a %s cannot be located in a %s", kind, loc.Kind)
}

// LocationFromColumns rebuilds a Location from the shelf_id/container_id
// column pair used by containers and items. Exactly one must be non-nil.
func LocationFromColumns(shelfID, containerID *uuid.UUID) (Location, error) {
	switch {
	case shelfID != nil && containerID == nil:
		return ShelfLocation(*shelfID), nil
	case shelfID == nil && containerID != nil:
		return ContainerLocation(*containerID), nil
	case shelfID != nil && containerID != nil:
		return Location{}, errs.InvalidLocation("both shelf and container references are set")
	default:
		return Location{}, errs.InvalidLocation("neither shelf nor container reference is set")
	}
}

// Columns serializes a shelf-or-container location back to the nullable
// column pair. Only valid for LocationShelf and LocationContainer.
func (l Location) Columns() (shelfID, containerID *uuid.UUID) {
	id := l.ID
	switch l.Kind {
	case LocationShelf:
		return &id, nil
	case LocationContainer:
		return nil, &id
	}
	return nil, nil
}
