package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/events"
	"github.com/home-inventory/backend/internal/models"
)

type ContainerService struct {
	tx         TxManager
	containers ContainerStore
	shelves    ShelfStore
	audit      *AuditService
	publisher  events.Publisher
	log        *zap.Logger
}

func NewContainerService(tx TxManager, containers ContainerStore, shelves ShelfStore, audit *AuditService, publisher events.Publisher, log *zap.Logger) *ContainerService {
	return &ContainerService{tx: tx, containers: containers, shelves: shelves, audit: audit, publisher: publisher, log: log}
}

// CreateContainerInput carries the two-nullable-column location shape used at
// the API boundary; exactly one of ShelfID / ParentContainerID must be set.
type CreateContainerInput struct {
	ShelfID           *uuid.UUID
	ParentContainerID *uuid.UUID
	Name              string
	Description       *string
}

func (s *ContainerService) Create(ctx context.Context, in CreateContainerInput, actorID uuid.UUID) (*models.Container, error) {
	if in.Name == "" {
		return nil, errs.Validation("name is required")
	}
	loc, err := models.LocationFromColumns(in.ShelfID, in.ParentContainerID)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateLocation(models.EntityContainer, loc); err != nil {
		return nil, err
	}

	container := &models.Container{
		ShelfID:           in.ShelfID,
		ParentContainerID: in.ParentContainerID,
		Name:              in.Name,
		Description:       in.Description,
		CreatedBy:         actorID,
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
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
		if err := s.containers.Create(ctx, container); err != nil {
			return err
		}
		return s.audit.RecordCreate(ctx, models.EntityContainer, container.ID, actorID, map[string]any{
			"name":     container.Name,
			"location": loc,
		})
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEntityCreated, container.ID)
	return container, nil
}

func (s *ContainerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Container, error) {
	return s.containers.GetByID(ctx, id)
}

func (s *ContainerService) List(ctx context.Context, page models.Page) ([]models.Container, error) {
	return s.containers.List(ctx, page)
}

func (s *ContainerService) ListByShelf(ctx context.Context, shelfID uuid.UUID, page models.Page) ([]models.Container, error) {
	return s.containers.ListByShelf(ctx, shelfID, page)
}

func (s *ContainerService) ListByParent(ctx context.Context, parentID uuid.UUID, page models.Page) ([]models.Container, error) {
	return s.containers.ListByParent(ctx, parentID, page)
}

// UpdateContainerInput deliberately has no location fields: relocation is a
// distinct audited operation on MoveService.
type UpdateContainerInput struct {
	Name        models.Optional[string]
	Description models.Optional[string]
}

func (in UpdateContainerInput) changes(existing *models.Container) (models.ChangeSet, error) {
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

func (s *ContainerService) Update(ctx context.Context, id uuid.UUID, in UpdateContainerInput, actorID uuid.UUID) (*models.Container, error) {
	var container *models.Container
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.containers.GetForUpdate(ctx, id)
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
		if err := s.containers.Update(ctx, existing); err != nil {
			return err
		}
		container = existing
		return s.audit.RecordUpdate(ctx, models.EntityContainer, id, actorID, cs)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEntityUpdated, id)
	return container, nil
}

// Delete removes the container and cascades through nested containers and
// items. Acyclicity guarantees the cascade terminates. One audit entry
// covers the container itself.
func (s *ContainerService) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.containers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.audit.RecordDelete(ctx, models.EntityContainer, id, actorID, map[string]any{"name": existing.Name}); err != nil {
			return err
		}
		return s.containers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventEntityDeleted, id)
	return nil
}

func (s *ContainerService) publish(ctx context.Context, eventType string, id uuid.UUID) {
	if err := s.publisher.Publish(ctx, events.StreamInventory, events.Event{
		Type:    eventType,
		Payload: map[string]any{"entity_type": models.EntityContainer, "entity_id": id.String()},
	}); err != nil {
		s.log.Warn("failed to publish container event", zap.Error(err))
	}
}
