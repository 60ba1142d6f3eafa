package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/events"
	"github.com/home-inventory/backend/internal/models"
)

type ShelfService struct {
	tx        TxManager
	shelves   ShelfStore
	units     UnitStore
	audit     *AuditService
	publisher events.Publisher
	log       *zap.Logger
}

func NewShelfService(tx TxManager, shelves ShelfStore, units UnitStore, audit *AuditService, publisher events.Publisher, log *zap.Logger) *ShelfService {
	return &ShelfService{tx: tx, shelves: shelves, units: units, audit: audit, publisher: publisher, log: log}
}

type CreateShelfInput struct {
	ShelvingUnitID uuid.UUID
	Name           string
	Description    *string
	Position       *int
}

func (s *ShelfService) Create(ctx context.Context, in CreateShelfInput, actorID uuid.UUID) (*models.Shelf, error) {
	if in.Name == "" {
		return nil, errs.Validation("name is required")
	}
	loc := models.UnitLocation(in.ShelvingUnitID)
	if err := models.ValidateLocation(models.EntityShelf, loc); err != nil {
		return nil, err
	}

	shelf := &models.Shelf{
		ShelvingUnitID: in.ShelvingUnitID,
		Name:           in.Name,
		Description:    in.Description,
		Position:       in.Position,
		CreatedBy:      actorID,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.units.Exists(ctx, in.ShelvingUnitID)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFound("shelving unit %s not found", in.ShelvingUnitID)
		}
		if err := s.shelves.Create(ctx, shelf); err != nil {
			return err
		}
		return s.audit.RecordCreate(ctx, models.EntityShelf, shelf.ID, actorID, map[string]any{
			"name":     shelf.Name,
			"location": loc,
		})
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEntityCreated, shelf.ID)
	return shelf, nil
}

func (s *ShelfService) GetByID(ctx context.Context, id uuid.UUID) (*models.Shelf, error) {
	return s.shelves.GetByID(ctx, id)
}

func (s *ShelfService) List(ctx context.Context, page models.Page) ([]models.Shelf, error) {
	return s.shelves.List(ctx, page)
}

func (s *ShelfService) ListByUnit(ctx context.Context, unitID uuid.UUID, page models.Page) ([]models.Shelf, error) {
	return s.shelves.ListByUnit(ctx, unitID, page)
}

type UpdateShelfInput struct {
	Name        models.Optional[string]
	Description models.Optional[string]
	Position    models.Optional[int]
}

func (in UpdateShelfInput) changes(existing *models.Shelf) (models.ChangeSet, error) {
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
	if in.Position.Set && !intPtrEqual(in.Position.Ptr(), existing.Position) {
		cs = append(cs, models.FieldChange{Field: "position", Old: existing.Position, New: in.Position.Ptr()})
	}
	return cs, nil
}

func (s *ShelfService) Update(ctx context.Context, id uuid.UUID, in UpdateShelfInput, actorID uuid.UUID) (*models.Shelf, error) {
	var shelf *models.Shelf
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.shelves.GetForUpdate(ctx, id)
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
		if in.Position.Set {
			existing.Position = in.Position.Ptr()
		}
		if err := s.shelves.Update(ctx, existing); err != nil {
			return err
		}
		shelf = existing
		return s.audit.RecordUpdate(ctx, models.EntityShelf, id, actorID, cs)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEntityUpdated, id)
	return shelf, nil
}

// Delete removes the shelf and cascades to every container and item beneath
// it. One audit entry covers the shelf; descendants are not logged.
func (s *ShelfService) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.shelves.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.audit.RecordDelete(ctx, models.EntityShelf, id, actorID, map[string]any{"name": existing.Name}); err != nil {
			return err
		}
		return s.shelves.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventEntityDeleted, id)
	return nil
}

func (s *ShelfService) publish(ctx context.Context, eventType string, id uuid.UUID) {
	if err := s.publisher.Publish(ctx, events.StreamInventory, events.Event{
		Type:    eventType,
		Payload: map[string]any{"entity_type": models.EntityShelf, "entity_id": id.String()},
	}); err != nil {
		s.log.Warn("failed to publish shelf event", zap.Error(err))
	}
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
