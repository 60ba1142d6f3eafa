package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/events"
	"github.com/home-inventory/backend/internal/models"
)

type RoomService struct {
	tx        TxManager
	rooms     RoomStore
	audit     *AuditService
	publisher events.Publisher
	log       *zap.Logger
}

func NewRoomService(tx TxManager, rooms RoomStore, audit *AuditService, publisher events.Publisher, log *zap.Logger) *RoomService {
	return &RoomService{tx: tx, rooms: rooms, audit: audit, publisher: publisher, log: log}
}

type CreateRoomInput struct {
	Name        string
	Description *string
}

func (s *RoomService) Create(ctx context.Context, in CreateRoomInput, actorID uuid.UUID) (*models.Room, error) {
	if in.Name == "" {
		return nil, errs.Validation("name is required")
	}
	room := &models.Room{Name: in.Name, Description: in.Description, CreatedBy: actorID}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.rooms.Create(ctx, room); err != nil {
			return err
		}
		return s.audit.RecordCreate(ctx, models.EntityRoom, room.ID, actorID, map[string]any{"name": room.Name})
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEntityCreated, room.ID)
	return room, nil
}

func (s *RoomService) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *RoomService) List(ctx context.Context, page models.Page) ([]models.Room, error) {
	return s.rooms.List(ctx, page)
}

// UpdateRoomInput fields are Optionals: omitted fields are never compared or
// written, so the audit change-set reflects exactly what the caller supplied.
type UpdateRoomInput struct {
	Name        models.Optional[string]
	Description models.Optional[string]
}

func (in UpdateRoomInput) changes(existing *models.Room) (models.ChangeSet, error) {
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

func (s *RoomService) Update(ctx context.Context, id uuid.UUID, in UpdateRoomInput, actorID uuid.UUID) (*models.Room, error) {
	var room *models.Room
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.rooms.GetForUpdate(ctx, id)
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
		if err := s.rooms.Update(ctx, existing); err != nil {
			return err
		}
		room = existing
		return s.audit.RecordUpdate(ctx, models.EntityRoom, id, actorID, cs)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEntityUpdated, id)
	return room, nil
}

// Delete removes the room and everything beneath it. One audit entry is
// written for the room itself; cascaded descendants are not logged
// individually.
func (s *RoomService) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.rooms.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.audit.RecordDelete(ctx, models.EntityRoom, id, actorID, map[string]any{"name": existing.Name}); err != nil {
			return err
		}
		return s.rooms.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventEntityDeleted, id)
	return nil
}

func (s *RoomService) publish(ctx context.Context, eventType string, id uuid.UUID) {
	if err := s.publisher.Publish(ctx, events.StreamInventory, events.Event{
		Type:    eventType,
		Payload: map[string]any{"entity_type": models.EntityRoom, "entity_id": id.String()},
	}); err != nil {
		s.log.Warn("failed to publish room event", zap.Error(err))
	}
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
