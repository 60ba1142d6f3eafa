package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/home-inventory/backend/internal/db"
	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/models"
)

type ShelfRepo struct {
	pool *pgxpool.Pool
}

func NewShelfRepo(pool *pgxpool.Pool) *ShelfRepo {
	return &ShelfRepo{pool: pool}
}

const shelfColumns = `id, shelving_unit_id, name, description, position, created_at, updated_at, created_by`

func scanShelf(row interface{ Scan(...any) error }, s *models.Shelf) error {
	return row.Scan(&s.ID, &s.ShelvingUnitID, &s.Name, &s.Description, &s.Position, &s.CreatedAt, &s.UpdatedAt, &s.CreatedBy)
}

func (r *ShelfRepo) Create(ctx context.Context, s *models.Shelf) error {
	q := db.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, `
		INSERT INTO shelves (shelving_unit_id, name, description, position, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, s.ShelvingUnitID, s.Name, s.Description, s.Position, s.CreatedBy).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return db.TranslateError(err)
}

func (r *ShelfRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Shelf, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var s models.Shelf
	err := scanShelf(q.QueryRow(ctx, `SELECT `+shelfColumns+` FROM shelves WHERE id = $1`, id), &s)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NotFound("shelf %s not found", id)
		}
		return nil, db.TranslateError(err)
	}
	return &s, nil
}

func (r *ShelfRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Shelf, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var s models.Shelf
	err := scanShelf(q.QueryRow(ctx, `SELECT `+shelfColumns+` FROM shelves WHERE id = $1 FOR UPDATE`, id), &s)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NotFound("shelf %s not found", id)
		}
		return nil, db.TranslateError(err)
	}
	return &s, nil
}

func (r *ShelfRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var got uuid.UUID
	err := q.QueryRow(ctx, `SELECT id FROM shelves WHERE id = $1 FOR SHARE`, id).Scan(&got)
	if err != nil {
		if db.IsNoRows(err) {
			return false, nil
		}
		return false, db.TranslateError(err)
	}
	return true, nil
}

func (r *ShelfRepo) ListByUnit(ctx context.Context, unitID uuid.UUID, page models.Page) ([]models.Shelf, error) {
	q := db.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT `+shelfColumns+` FROM shelves
		WHERE shelving_unit_id = $1
		ORDER BY position NULLS LAST, created_at LIMIT $2 OFFSET $3
	`, unitID, page.Limit, page.Offset)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var shelves []models.Shelf
	for rows.Next() {
		var s models.Shelf
		if err := scanShelf(rows, &s); err != nil {
			return nil, err
		}
		shelves = append(shelves, s)
	}
	return shelves, rows.Err()
}

func (r *ShelfRepo) List(ctx context.Context, page models.Page) ([]models.Shelf, error) {
	q := db.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT `+shelfColumns+` FROM shelves
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, page.Limit, page.Offset)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var shelves []models.Shelf
	for rows.Next() {
		var s models.Shelf
		if err := scanShelf(rows, &s); err != nil {
			return nil, err
		}
		shelves = append(shelves, s)
	}
	return shelves, rows.Err()
}

func (r *ShelfRepo) Update(ctx context.Context, s *models.Shelf) error {
	q := db.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, `
		UPDATE shelves SET name = $1, description = $2, position = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`, s.Name, s.Description, s.Position, s.ID).Scan(&s.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return errs.NotFound("shelf %s not found", s.ID)
		}
		return db.TranslateError(err)
	}
	return nil
}

func (r *ShelfRepo) UpdateLocation(ctx context.Context, id, unitID uuid.UUID, position *int) error {
	q := db.QuerierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, `
		UPDATE shelves SET shelving_unit_id = $1, position = COALESCE($2, position), updated_at = now()
		WHERE id = $3
	`, unitID, position, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("shelf %s not found", id)
	}
	return nil
}

func (r *ShelfRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := db.QuerierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, `DELETE FROM shelves WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("shelf %s not found", id)
	}
	return nil
}
