package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/home-inventory/backend/internal/db"
	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/models"
)

type TagRepo struct {
	pool *pgxpool.Pool
}

func NewTagRepo(pool *pgxpool.Pool) *TagRepo {
	return &TagRepo{pool: pool}
}

func (r *TagRepo) Create(ctx context.Context, tag *models.Tag) error {
	q := db.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, `
		INSERT INTO tags (name) VALUES ($1)
		RETURNING id, created_at
	`, tag.Name).Scan(&tag.ID, &tag.CreatedAt)
	return db.TranslateError(err)
}

func (r *TagRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var tag models.Tag
	err := q.QueryRow(ctx, `
		SELECT id, name, created_at FROM tags WHERE id = $1
	`, id).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NotFound("tag %s not found", id)
		}
		return nil, db.TranslateError(err)
	}
	return &tag, nil
}

// GetForUpdate locks the tag row for the rest of the surrounding transaction.
func (r *TagRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var tag models.Tag
	err := q.QueryRow(ctx, `
		SELECT id, name, created_at FROM tags WHERE id = $1 FOR UPDATE
	`, id).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NotFound("tag %s not found", id)
		}
		return nil, db.TranslateError(err)
	}
	return &tag, nil
}

func (r *TagRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var got uuid.UUID
	err := q.QueryRow(ctx, `SELECT id FROM tags WHERE id = $1 FOR SHARE`, id).Scan(&got)
	if err != nil {
		if db.IsNoRows(err) {
			return false, nil
		}
		return false, db.TranslateError(err)
	}
	return true, nil
}

// NameTaken checks for a case-insensitive name collision. exclude skips one
// tag id so renames do not collide with themselves.
func (r *TagRepo) NameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var taken bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM tags WHERE LOWER(name) = LOWER($1) AND id != $2)
	`, name, exclude).Scan(&taken)
	if err != nil {
		return false, db.TranslateError(err)
	}
	return taken, nil
}

func (r *TagRepo) List(ctx context.Context, page models.Page) ([]models.Tag, error) {
	q := db.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT id, name, created_at FROM tags
		ORDER BY name ASC LIMIT $1 OFFSET $2
	`, page.Limit, page.Offset)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *TagRepo) Update(ctx context.Context, tag *models.Tag) error {
	q := db.QuerierFrom(ctx, r.pool)
	ct, err := q.Exec(ctx, `UPDATE tags SET name = $1 WHERE id = $2`, tag.Name, tag.ID)
	if err != nil {
		return db.TranslateError(err)
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFound("tag %s not found", tag.ID)
	}
	return nil
}

// Delete removes the tag; entity_tags rows cascade with it.
func (r *TagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := db.QuerierFrom(ctx, r.pool)
	ct, err := q.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFound("tag %s not found", id)
	}
	return nil
}

// ListByEntity returns the tags attached to one entity, ordered by name.
func (r *TagRepo) ListByEntity(ctx context.Context, kind models.EntityKind, entityID uuid.UUID) ([]models.Tag, error) {
	q := db.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT t.id, t.name, t.created_at
		FROM tags t
		JOIN entity_tags et ON et.tag_id = t.id
		WHERE et.entity_type = $1 AND et.entity_id = $2
		ORDER BY t.name ASC
	`, kind, entityID)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// ReplaceAssignments swaps the entity's tag set for tagIDs. Runs inside the
// caller's transaction so the delete and inserts land atomically.
func (r *TagRepo) ReplaceAssignments(ctx context.Context, kind models.EntityKind, entityID uuid.UUID, tagIDs []uuid.UUID) error {
	q := db.QuerierFrom(ctx, r.pool)
	if _, err := q.Exec(ctx, `
		DELETE FROM entity_tags WHERE entity_type = $1 AND entity_id = $2
	`, kind, entityID); err != nil {
		return db.TranslateError(err)
	}
	for _, tagID := range tagIDs {
		if _, err := q.Exec(ctx, `
			INSERT INTO entity_tags (entity_type, entity_id, tag_id)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING
		`, kind, entityID, tagID); err != nil {
			return db.TranslateError(err)
		}
	}
	return nil
}
