package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/home-inventory/backend/internal/db"
	"github.com/home-inventory/backend/internal/models"
)

// AuditRepo writes to and reads from the append-only audit_log table. Rows
// are never updated or deleted.
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Insert(ctx context.Context, entry *models.AuditLog) error {
	var changes, metadata []byte
	var err error
	if !entry.Changes.IsEmpty() {
		if changes, err = json.Marshal(entry.Changes); err != nil {
			return err
		}
	}
	if entry.Metadata != nil {
		if metadata, err = json.Marshal(entry.Metadata); err != nil {
			return err
		}
	}

	q := db.QuerierFrom(ctx, r.pool)
	err = q.QueryRow(ctx, `
		INSERT INTO audit_log (entity_type, entity_id, action, actor_id, changes, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, entry.EntityType, entry.EntityID, entry.Action, entry.ActorID, changes, metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
	return db.TranslateError(err)
}

type AuditFilter struct {
	EntityType *models.EntityKind
	EntityID   *uuid.UUID
	ActorID    *uuid.UUID
	Action     *string
	Limit      int
	Offset     int
}

func (r *AuditRepo) List(ctx context.Context, f AuditFilter) ([]models.AuditLog, error) {
	query := `
		SELECT id, entity_type, entity_id, action, actor_id, changes, metadata, created_at
		FROM audit_log
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.EntityType != nil {
		where = append(where, fmt.Sprintf("entity_type = $%d", argIdx))
		args = append(args, *f.EntityType)
		argIdx++
	}
	if f.EntityID != nil {
		where = append(where, fmt.Sprintf("entity_id = $%d", argIdx))
		args = append(args, *f.EntityID)
		argIdx++
	}
	if f.ActorID != nil {
		where = append(where, fmt.Sprintf("actor_id = $%d", argIdx))
		args = append(args, *f.ActorID)
		argIdx++
	}
	if f.Action != nil {
		where = append(where, fmt.Sprintf("action = $%d", argIdx))
		args = append(args, *f.Action)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	q := db.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		var changes, metadata []byte
		if err := rows.Scan(&l.ID, &l.EntityType, &l.EntityID, &l.Action, &l.ActorID, &changes, &metadata, &l.CreatedAt); err != nil {
			return nil, err
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &l.Changes); err != nil {
				return nil, err
			}
		}
		if len(metadata) > 0 {
			var meta any
			if err := json.Unmarshal(metadata, &meta); err != nil {
				return nil, err
			}
			l.Metadata = meta
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
