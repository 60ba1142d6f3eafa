package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/events"
	"github.com/home-inventory/backend/internal/models"
)

const tagNameMaxLen = 100

// TagService manages free-form labels and their assignments. Assignments
// replace the entity's whole tag set, so one call both adds and removes.
type TagService struct {
	tx        TxManager
	tags      TagStore
	audit     *AuditService
	publisher events.Publisher
	log       *zap.Logger
}

func NewTagService(tx TxManager, tags TagStore, audit *AuditService, publisher events.Publisher, log *zap.Logger) *TagService {
	return &TagService{tx: tx, tags: tags, audit: audit, publisher: publisher, log: log}
}

// normalizeTagName trims and validates a tag name.
func normalizeTagName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.Validation("tag name cannot be empty")
	}
	if len(name) > tagNameMaxLen {
		return "", errs.Validation("tag name cannot exceed %d characters", tagNameMaxLen)
	}
	return name, nil
}

func (s *TagService) Create(ctx context.Context, name string, actorID uuid.UUID) (*models.Tag, error) {
	name, err := normalizeTagName(name)
	if err != nil {
		return nil, err
	}
	tag := &models.Tag{Name: name}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		taken, err := s.tags.NameTaken(ctx, name, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return errs.Conflict("tag %q already exists", name)
		}
		if err := s.tags.Create(ctx, tag); err != nil {
			return err
		}
		return s.audit.RecordCreate(ctx, models.EntityTag, tag.ID, actorID, map[string]any{"name": tag.Name})
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEntityCreated, models.EntityTag, tag.ID)
	return tag, nil
}

func (s *TagService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

func (s *TagService) List(ctx context.Context, page models.Page) ([]models.Tag, error) {
	return s.tags.List(ctx, page)
}

type UpdateTagInput struct {
	Name models.Optional[string]
}

func (s *TagService) Update(ctx context.Context, id uuid.UUID, in UpdateTagInput, actorID uuid.UUID) (*models.Tag, error) {
	var tag *models.Tag
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.tags.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		var cs models.ChangeSet
		if in.Name.Set {
			if !in.Name.Valid {
				return errs.Validation("tag name cannot be empty")
			}
			name, err := normalizeTagName(in.Name.Value)
			if err != nil {
				return err
			}
			if name != existing.Name {
				taken, err := s.tags.NameTaken(ctx, name, id)
				if err != nil {
					return err
				}
				if taken {
					return errs.Conflict("tag %q already exists", name)
				}
				cs = append(cs, models.FieldChange{Field: "name", Old: existing.Name, New: name})
				existing.Name = name
			}
		}
		if err := s.tags.Update(ctx, existing); err != nil {
			return err
		}
		tag = existing
		return s.audit.RecordUpdate(ctx, models.EntityTag, id, actorID, cs)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEntityUpdated, models.EntityTag, id)
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.tags.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.audit.RecordDelete(ctx, models.EntityTag, id, actorID, map[string]any{"name": existing.Name}); err != nil {
			return err
		}
		return s.tags.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventEntityDeleted, models.EntityTag, id)
	return nil
}

// ListForEntity returns the tags attached to one entity.
func (s *TagService) ListForEntity(ctx context.Context, kind models.EntityKind, entityID uuid.UUID) ([]models.Tag, error) {
	if !models.Taggable(kind) {
		return nil, errs.Validation("unknown entity type %q", kind)
	}
	return s.tags.ListByEntity(ctx, kind, entityID)
}

// Assign replaces the entity's tag set with tagIDs. The audit entry on the
// entity records the old and new tag id lists as a field change.
func (s *TagService) Assign(ctx context.Context, kind models.EntityKind, entityID uuid.UUID, tagIDs []uuid.UUID, actorID uuid.UUID) error {
	if !models.Taggable(kind) {
		return errs.Validation("unknown entity type %q", kind)
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.assignOne(ctx, kind, entityID, tagIDs, actorID)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventEntityUpdated, kind, entityID)
	return nil
}

// BulkAssign applies the same tag set to several entities atomically.
func (s *TagService) BulkAssign(ctx context.Context, kind models.EntityKind, entityIDs []uuid.UUID, tagIDs []uuid.UUID, actorID uuid.UUID) error {
	if !models.Taggable(kind) {
		return errs.Validation("unknown entity type %q", kind)
	}
	if len(entityIDs) == 0 {
		return errs.Validation("entity_ids cannot be empty")
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, entityID := range entityIDs {
			if err := s.assignOne(ctx, kind, entityID, tagIDs, actorID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, entityID := range entityIDs {
		s.publish(ctx, events.EventEntityUpdated, kind, entityID)
	}
	return nil
}

func (s *TagService) assignOne(ctx context.Context, kind models.EntityKind, entityID uuid.UUID, tagIDs []uuid.UUID, actorID uuid.UUID) error {
	for _, tagID := range tagIDs {
		ok, err := s.tags.Exists(ctx, tagID)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFound("tag %s not found", tagID)
		}
	}
	before, err := s.tags.ListByEntity(ctx, kind, entityID)
	if err != nil {
		return err
	}
	if err := s.tags.ReplaceAssignments(ctx, kind, entityID, tagIDs); err != nil {
		return err
	}
	cs := models.ChangeSet{{Field: "tags", Old: tagIDsOf(before), New: tagIDs}}
	return s.audit.RecordUpdate(ctx, kind, entityID, actorID, cs)
}

func tagIDsOf(tags []models.Tag) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

func (s *TagService) publish(ctx context.Context, eventType string, kind models.EntityKind, id uuid.UUID) {
	if err := s.publisher.Publish(ctx, events.StreamInventory, events.Event{
		Type:    eventType,
		Payload: map[string]any{"entity_type": kind, "entity_id": id.String()},
	}); err != nil {
		s.log.Warn("failed to publish tag event", zap.Error(err))
	}
}
