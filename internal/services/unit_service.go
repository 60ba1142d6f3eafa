package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/events"
	"github.com/home-inventory/backend/internal/models"
)

type UnitService struct {
	tx        TxManager
	units     UnitStore
	rooms     RoomStore
	audit     *AuditService
	publisher events.Publisher
	log       *zap.Logger
}

func NewUnitService(tx TxManager, units UnitStore, rooms RoomStore, audit *AuditService, publisher events.Publisher, log *zap.Logger) *UnitService {
	return &UnitService{tx: tx, units: units, rooms: rooms, audit: audit, publisher: publisher, log: log}
}

type CreateUnitInput struct {
	RoomID      uuid.UUID
	Name        string
	Description *string
}

// Create validates the initial location exactly like a move: the location
// model first, then existence of the referenced room.
func (s *UnitService) Create(ctx context.Context, in CreateUnitInput, actorID uuid.UUID) (*models.ShelvingUnit, error) {
	if in.Name == "" {
		return nil, errs.Validation("name is required")
	}
	loc := models.RoomLocation(in.RoomID)
	if err := models.ValidateLocation(models.EntityShelvingUnit, loc); err != nil {
		return nil, err
	}

	unit := &models.ShelvingUnit{RoomID: in.RoomID, Name: in.Name, Description: in.Description, CreatedBy: actorID}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.rooms.Exists(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFound("room %s not found", in.RoomID)
		}
		if err := s.units.Create(ctx, unit); err != nil {
			return err
		}
		return s.audit.RecordCreate(ctx, models.EntityShelvingUnit, unit.ID, actorID, map[string]any{
			"name":     unit.Name,
			"location": loc,
		})
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEntityCreated, unit.ID)
	return unit, nil
}

func (s *UnitService) GetByID(ctx context.Context, id uuid.UUID) (*models.ShelvingUnit, error) {
	return s.units.GetByID(ctx, id)
}

func (s *UnitService) List(ctx context.Context, page models.Page) ([]models.ShelvingUnit, error) {
	return s.units.List(ctx, page)
}

func (s *UnitService) ListByRoom(ctx context.Context, roomID uuid.UUID, page models.Page) ([]models.ShelvingUnit, error) {
	return s.units.ListByRoom(ctx, roomID, page)
}

// UpdateUnitInput never carries location fields; relocation goes through
// MoveService only.
type UpdateUnitInput struct {
	Name        models.Optional[string]
	Description models.Optional[string]
}

func (in UpdateUnitInput) changes(existing *models.ShelvingUnit) (models.ChangeSet, error) {
	var cs models.ChangeSet
	if in.Name.Set {
		if !in.Name.Valid || in.Name.Value == "" {
			return nil, errs.Validation("name cannot be empty")
		}
		if in.Name.Value != existing.Name {
			cs = append(cs, models.FieldChange{Field: "name", Old: existing.Name, New: in.Name.Value})
		}
	}
	if in.Description.Set && !strPtrEqual(in.Description.Ptr(), existing.Description) {
		cs = append(cs, models.FieldChange{Field: "description", Old: existing.Description, New: in.Description.Ptr()})
	}
	return cs, nil
}

func (s *UnitService) Update(ctx context.Context, id uuid.UUID, in UpdateUnitInput, actorID uuid.UUID) (*models.ShelvingUnit, error) {
	var unit *models.ShelvingUnit
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.units.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		cs, err := in.changes(existing)
		if err != nil {
			return err
		}
		if in.Name.Set {
			existing.Name = in.Name.Value
		}
		if in.Description.Set {
			existing.Description = in.Description.Ptr()
		}
		if err := s.units.Update(ctx, existing); err != nil {
			return err
		}
		unit = existing
		return s.audit.RecordUpdate(ctx, models.EntityShelvingUnit, id, actorID, cs)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEntityUpdated, id)
	return unit, nil
}

func (s *UnitService) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.units.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.audit.RecordDelete(ctx, models.EntityShelvingUnit, id, actorID, map[string]any{"name": existing.Name}); err != nil {
			return err
		}
		return s.units.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventEntityDeleted, id)
	return nil
}

func (s *UnitService) publish(ctx context.Context, eventType string, id uuid.UUID) {
	if err := s.publisher.Publish(ctx, events.StreamInventory, events.Event{
		Type:    eventType,
		Payload: map[string]any{"entity_type": models.EntityShelvingUnit, "entity_id": id.String()},
	}); err != nil {
		s.log.Warn("failed to publish unit event", zap.Error(err))
	}
}
