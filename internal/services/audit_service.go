package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/metrics"
	"github.com/home-inventory/backend/internal/models"
	"github.com/home-inventory/backend/internal/repositories"
)

// AuditService writes the audit trail. Record calls run inside the caller's
// transaction, so an entry either commits with its mutation or not at all.
type AuditService struct {
	store AuditStore
	log   *zap.Logger
}

func NewAuditService(store AuditStore, log *zap.Logger) *AuditService {
	return &AuditService{store: store, log: log}
}

func (s *AuditService) record(ctx context.Context, entry *models.AuditLog) error {
	if err := s.store.Insert(ctx, entry); err != nil {
		return err
	}
	metrics.AuditEntriesTotal.WithLabelValues(entry.Action).Inc()
	return nil
}

func (s *AuditService) RecordCreate(ctx context.Context, kind models.EntityKind, id, actorID uuid.UUID, metadata any) error {
	return s.record(ctx, &models.AuditLog{
		EntityType: kind,
		EntityID:   id,
		Action:     models.AuditActionCreate,
		ActorID:    actorID,
		Metadata:   metadata,
	})
}

// RecordUpdate writes one entry per successful update, even when the
// change-set is empty. The change-set covers only fields the caller supplied.
func (s *AuditService) RecordUpdate(ctx context.Context, kind models.EntityKind, id, actorID uuid.UUID, changes models.ChangeSet) error {
	return s.record(ctx, &models.AuditLog{
		EntityType: kind,
		EntityID:   id,
		Action:     models.AuditActionUpdate,
		ActorID:    actorID,
		Changes:    changes,
	})
}

func (s *AuditService) RecordDelete(ctx context.Context, kind models.EntityKind, id, actorID uuid.UUID, metadata any) error {
	return s.record(ctx, &models.AuditLog{
		EntityType: kind,
		EntityID:   id,
		Action:     models.AuditActionDelete,
		ActorID:    actorID,
		Metadata:   metadata,
	})
}

// RecordMove stores the old and new location as structured metadata rather
// than a field change-set; a relocation is not a textual edit.
func (s *AuditService) RecordMove(ctx context.Context, kind models.EntityKind, id, actorID uuid.UUID, from, to models.Location) error {
	return s.record(ctx, &models.AuditLog{
		EntityType: kind,
		EntityID:   id,
		Action:     models.AuditActionMove,
		ActorID:    actorID,
		Metadata:   models.MoveMetadata{From: from, To: to},
	})
}

func (s *AuditService) Query(ctx context.Context, f repositories.AuditFilter) ([]models.AuditLog, error) {
	return s.store.List(ctx, f)
}
