package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/events"
	"github.com/home-inventory/backend/internal/metrics"
	"github.com/home-inventory/backend/internal/models"
)

// MoveService owns every relocation in the hierarchy. Each move runs as one
// transaction: lock and re-read the entity, validate the proposed location
// (including the cycle check for containers), write the new parent reference,
// and record the move in the audit trail. A failure anywhere rolls the whole
// unit back.
type MoveService struct {
	tx         TxManager
	rooms      RoomStore
	units      UnitStore
	shelves    ShelfStore
	containers ContainerStore
	items      ItemStore
	audit      *AuditService
	publisher  events.Publisher
	log        *zap.Logger
}

func NewMoveService(
	tx TxManager,
	rooms RoomStore,
	units UnitStore,
	shelves ShelfStore,
	containers ContainerStore,
	items ItemStore,
	audit *AuditService,
	publisher events.Publisher,
	log *zap.Logger,
) *MoveService {
	return &MoveService{
		tx:         tx,
		rooms:      rooms,
		units:      units,
		shelves:    shelves,
		containers: containers,
		items:      items,
		audit:      audit,
		publisher:  publisher,
		log:        log,
	}
}

// ancestorsOf walks parent references upward from c and returns each ancestor
// location, ending with the shelf that roots the chain. The walk re-reads
// persisted state under share locks every time, so two overlapping moves
// cannot both pass validation against a snapshot the other is changing.
func (s *MoveService) ancestorsOf(ctx context.Context, c *models.Container) ([]models.Location, error) {
	var chain []models.Location
	seen := map[uuid.UUID]bool{c.ID: true}
	cur := c
	for {
		loc, err := cur.Location()
		if err != nil {
			return nil, errs.BrokenChain("container %s has no valid parent reference", cur.ID)
		}
		chain = append(chain, loc)

		if loc.Kind == models.LocationShelf {
			ok, err := s.shelves.Exists(ctx, loc.ID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, errs.BrokenChain("shelf %s vanished during ancestor walk", loc.ID)
			}
			return chain, nil
		}

		// Pre-existing cycle in stored data would loop forever; surface it
		// instead.
		if seen[loc.ID] {
			return nil, errs.BrokenChain("container %s appears in its own ancestor chain", loc.ID)
		}
		seen[loc.ID] = true

		parent, err := s.containers.GetForShare(ctx, loc.ID)
		if err != nil {
			if errs.CodeOf(err) == errs.CodeNotFound {
				return nil, errs.BrokenChain("container %s vanished during ancestor walk", loc.ID)
			}
			return nil, err
		}
		cur = parent
	}
}

// AncestorChain returns the path from the container up to its rooting shelf.
// Used by the breadcrumb endpoint; recomputed from current state each call.
func (s *MoveService) AncestorChain(ctx context.Context, containerID uuid.UUID) ([]models.Location, error) {
	c, err := s.containers.GetByID(ctx, containerID)
	if err != nil {
		return nil, err
	}
	return s.ancestorsOf(ctx, c)
}

// validateContainerTarget rejects self-containment: the proposed parent must
// not be the container itself nor any of its descendants. Descendance is
// checked in reverse, by walking the target's ancestors and looking for the
// container being moved.
func (s *MoveService) validateContainerTarget(ctx context.Context, id uuid.UUID, loc models.Location) error {
	switch loc.Kind {
	case models.LocationShelf:
		ok, err := s.shelves.Exists(ctx, loc.ID)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFound("shelf %s not found", loc.ID)
		}
	case models.LocationContainer:
		if loc.ID == id {
			return errs.SelfReference("container %s cannot be its own parent", id)
		}
		target, err := s.containers.GetForShare(ctx, loc.ID)
		if err != nil {
			return err
		}
		chain, err := s.ancestorsOf(ctx, target)
		if err != nil {
			return err
		}
		metrics.AncestorWalkDepth.Observe(float64(len(chain)))
		for _, anc := range chain {
			if anc.Kind == models.LocationContainer && anc.ID == id {
				return errs.CyclicReference("container %s is located inside %s", loc.ID, id)
			}
		}
	}
	return nil
}

// MoveShelvingUnit relocates a unit to another room.
func (s *MoveService) MoveShelvingUnit(ctx context.Context, id, targetRoomID, actorID uuid.UUID) (*models.ShelvingUnit, error) {
	var moved *models.ShelvingUnit
	var before, after models.Location
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := s.units.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		after = models.RoomLocation(targetRoomID)
		if err := models.ValidateLocation(models.EntityShelvingUnit, after); err != nil {
			return err
		}
		ok, err := s.rooms.Exists(ctx, targetRoomID)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFound("room %s not found", targetRoomID)
		}
		before = u.Location()
		if err := s.units.UpdateLocation(ctx, id, targetRoomID); err != nil {
			return err
		}
		if err := s.audit.RecordMove(ctx, models.EntityShelvingUnit, id, actorID, before, after); err != nil {
			return err
		}
		moved, err = s.units.GetByID(ctx, id)
		return err
	})
	s.finishMove(ctx, models.EntityShelvingUnit, id, before, after, err)
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// MoveShelf relocates a shelf to another unit, optionally repositioning it
// among its new siblings.
func (s *MoveService) MoveShelf(ctx context.Context, id, targetUnitID uuid.UUID, position *int, actorID uuid.UUID) (*models.Shelf, error) {
	var moved *models.Shelf
	var before, after models.Location
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		sh, err := s.shelves.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		after = models.UnitLocation(targetUnitID)
		if err := models.ValidateLocation(models.EntityShelf, after); err != nil {
			return err
		}
		ok, err := s.units.Exists(ctx, targetUnitID)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFound("shelving unit %s not found", targetUnitID)
		}
		before = sh.Location()
		if err := s.shelves.UpdateLocation(ctx, id, targetUnitID, position); err != nil {
			return err
		}
		if err := s.audit.RecordMove(ctx, models.EntityShelf, id, actorID, before, after); err != nil {
			return err
		}
		moved, err = s.shelves.GetByID(ctx, id)
		return err
	})
	s.finishMove(ctx, models.EntityShelf, id, before, after, err)
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// MoveContainer relocates a container to a shelf or into another container.
// Moving to the current location is a no-op success and still audits.
func (s *MoveService) MoveContainer(ctx context.Context, id uuid.UUID, loc models.Location, actorID uuid.UUID) (*models.Container, error) {
	var moved *models.Container
	var before models.Location
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.containers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := models.ValidateLocation(models.EntityContainer, loc); err != nil {
			return err
		}
		if err := s.validateContainerTarget(ctx, id, loc); err != nil {
			return err
		}
		before, err = c.Location()
		if err != nil {
			return errs.BrokenChain("container %s has no valid parent reference", id)
		}
		if err := s.containers.UpdateLocation(ctx, id, loc); err != nil {
			return err
		}
		if err := s.audit.RecordMove(ctx, models.EntityContainer, id, actorID, before, loc); err != nil {
			return err
		}
		moved, err = s.containers.GetByID(ctx, id)
		return err
	})
	s.finishMove(ctx, models.EntityContainer, id, before, loc, err)
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// MoveItem relocates an item to a shelf or container. Items are leaves, so
// no cycle check is needed: only existence and the location model.
func (s *MoveService) MoveItem(ctx context.Context, id uuid.UUID, loc models.Location, actorID uuid.UUID) (*models.Item, error) {
	var moved *models.Item
	var before models.Location
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		it, err := s.items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := models.ValidateLocation(models.EntityItem, loc); err != nil {
			return err
		}
		switch loc.Kind {
		case models.LocationShelf:
			ok, err := s.shelves.Exists(ctx, loc.ID)
			if err != nil {
				return err
			}
			if !ok {
				return errs.NotFound("shelf %s not found", loc.ID)
			}
		case models.LocationContainer:
			if _, err := s.containers.GetForShare(ctx, loc.ID); err != nil {
				return err
			}
		}
		before, err = it.Location()
		if err != nil {
			return errs.BrokenChain("item %s has no valid parent reference", id)
		}
		if err := s.items.UpdateLocation(ctx, id, loc); err != nil {
			return err
		}
		if err := s.audit.RecordMove(ctx, models.EntityItem, id, actorID, before, loc); err != nil {
			return err
		}
		moved, err = s.items.GetByID(ctx, id)
		return err
	})
	s.finishMove(ctx, models.EntityItem, id, before, loc, err)
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// finishMove records the outcome metric and, on success, publishes the moved
// event. Publishing is best effort: the relocation is already committed.
func (s *MoveService) finishMove(ctx context.Context, kind models.EntityKind, id uuid.UUID, from, to models.Location, err error) {
	result := "ok"
	if err != nil {
		result = string(errs.CodeOf(err))
	}
	metrics.MovesTotal.WithLabelValues(string(kind), result).Inc()
	if err != nil {
		return
	}
	if pubErr := s.publisher.Publish(ctx, events.StreamInventory, events.Event{
		Type: events.EventEntityMoved,
		Payload: map[string]any{
			"entity_type": kind,
			"entity_id":   id.String(),
			"from":        from,
			"to":          to,
		},
	}); pubErr != nil {
		s.log.Warn("failed to publish move event", zap.Error(pubErr))
	}
}
