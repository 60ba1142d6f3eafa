package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/events"
	"github.com/home-inventory/backend/internal/models"
)

type ItemService struct {
	tx         TxManager
	items      ItemStore
	shelves    ShelfStore
	containers ContainerStore
	audit      *AuditService
	publisher  events.Publisher
	log        *zap.Logger
}

func NewItemService(tx TxManager, items ItemStore, shelves ShelfStore, containers ContainerStore, audit *AuditService, publisher events.Publisher, log *zap.Logger) *ItemService {
	return &ItemService{tx: tx, items: items, shelves: shelves, containers: containers, audit: audit, publisher: publisher, log: log}
}

type CreateItemInput struct {
	ShelfID      *uuid.UUID
	ContainerID  *uuid.UUID
	Name         string
	Description  *string
	Barcode      *string
	BarcodeType  *string
	ProductLink  *string
	AcquiredDate *time.Time
}

func (s *ItemService) Create(ctx context.Context, in CreateItemInput, actorID uuid.UUID) (*models.Item, error) {
	if in.Name == "" {
		return nil, errs.Validation("name is required")
	}
	loc, err := models.LocationFromColumns(in.ShelfID, in.ContainerID)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateLocation(models.EntityItem, loc); err != nil {
		return nil, err
	}

	item := &models.Item{
		ShelfID:      in.ShelfID,
		ContainerID:  in.ContainerID,
		Name:         in.Name,
		Description:  in.Description,
		Barcode:      in.Barcode,
		BarcodeType:  in.BarcodeType,
		ProductLink:  in.ProductLink,
		AcquiredDate: in.AcquiredDate,
		CreatedBy:    actorID,
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
		if err := s.items.Create(ctx, item); err != nil {
			return err
		}
		return s.audit.RecordCreate(ctx, models.EntityItem, item.ID, actorID, map[string]any{
			"name":     item.Name,
			"location": loc,
		})
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEntityCreated, item.ID)
	return item, nil
}

func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *ItemService) List(ctx context.Context, page models.Page) ([]models.Item, error) {
	return s.items.List(ctx, page)
}

func (s *ItemService) ListByShelf(ctx context.Context, shelfID uuid.UUID, page models.Page) ([]models.Item, error) {
	return s.items.ListByShelf(ctx, shelfID, page)
}

func (s *ItemService) ListByContainer(ctx context.Context, containerID uuid.UUID, page models.Page) ([]models.Item, error) {
	return s.items.ListByContainer(ctx, containerID, page)
}

type UpdateItemInput struct {
	Name         models.Optional[string]
	Description  models.Optional[string]
	Barcode      models.Optional[string]
	BarcodeType  models.Optional[string]
	ProductLink  models.Optional[string]
	AcquiredDate models.Optional[time.Time]
}

func (in UpdateItemInput) changes(existing *models.Item) (models.ChangeSet, error) {
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
	if in.Barcode.Set && !strPtrEqual(in.Barcode.Ptr(), existing.Barcode) {
		cs = append(cs, models.FieldChange{Field: "barcode", Old: existing.Barcode, New: in.Barcode.Ptr()})
	}
	if in.BarcodeType.Set && !strPtrEqual(in.BarcodeType.Ptr(), existing.BarcodeType) {
		cs = append(cs, models.FieldChange{Field: "barcode_type", Old: existing.BarcodeType, New: in.BarcodeType.Ptr()})
	}
	if in.ProductLink.Set && !strPtrEqual(in.ProductLink.Ptr(), existing.ProductLink) {
		cs = append(cs, models.FieldChange{Field: "product_link", Old: existing.ProductLink, New: in.ProductLink.Ptr()})
	}
	if in.AcquiredDate.Set && !timePtrEqual(in.AcquiredDate.Ptr(), existing.AcquiredDate) {
		cs = append(cs, models.FieldChange{Field: "acquired_date", Old: existing.AcquiredDate, New: in.AcquiredDate.Ptr()})
	}
	return cs, nil
}

func (s *ItemService) Update(ctx context.Context, id uuid.UUID, in UpdateItemInput, actorID uuid.UUID) (*models.Item, error) {
	var item *models.Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.items.GetForUpdate(ctx, id)
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
		if in.Barcode.Set {
			existing.Barcode = in.Barcode.Ptr()
		}
		if in.BarcodeType.Set {
			existing.BarcodeType = in.BarcodeType.Ptr()
		}
		if in.ProductLink.Set {
			existing.ProductLink = in.ProductLink.Ptr()
		}
		if in.AcquiredDate.Set {
			existing.AcquiredDate = in.AcquiredDate.Ptr()
		}
		if err := s.items.Update(ctx, existing); err != nil {
			return err
		}
		item = existing
		return s.audit.RecordUpdate(ctx, models.EntityItem, id, actorID, cs)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEntityUpdated, id)
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.audit.RecordDelete(ctx, models.EntityItem, id, actorID, map[string]any{"name": existing.Name}); err != nil {
			return err
		}
		return s.items.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventEntityDeleted, id)
	return nil
}

func (s *ItemService) publish(ctx context.Context, eventType string, id uuid.UUID) {
	if err := s.publisher.Publish(ctx, events.StreamInventory, events.Event{
		Type:    eventType,
		Payload: map[string]any{"entity_type": models.EntityItem, "entity_id": id.String()},
	}); err != nil {
		s.log.Warn("failed to publish item event", zap.Error(err))
	}
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
