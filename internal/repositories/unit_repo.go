package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/home-inventory/backend/internal/db"
	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/models"
)

type UnitRepo struct {
	pool *pgxpool.Pool
}

func NewUnitRepo(pool *pgxpool.Pool) *UnitRepo {
	return &UnitRepo{pool: pool}
}

const unitColumns = `id, room_id, name, description, created_at, updated_at, created_by`

func scanUnit(row interface{ Scan(...any) error }, u *models.ShelvingUnit) error {
	return row.Scan(&u.ID, &u.RoomID, &u.Name, &u.Description, &u.CreatedAt, &u.UpdatedAt, &u.CreatedBy)
}

func (r *UnitRepo) Create(ctx context.Context, u *models.ShelvingUnit) error {
	q := db.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, `
		INSERT INTO shelving_units (room_id, name, description, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.RoomID, u.Name, u.Description, u.CreatedBy).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return db.TranslateError(err)
}

func (r *UnitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ShelvingUnit, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var u models.ShelvingUnit
	err := scanUnit(q.QueryRow(ctx, `SELECT `+unitColumns+` FROM shelving_units WHERE id = $1`, id), &u)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NotFound("shelving unit %s not found", id)
		}
		return nil, db.TranslateError(err)
	}
	return &u, nil
}

func (r *UnitRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.ShelvingUnit, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var u models.ShelvingUnit
	err := scanUnit(q.QueryRow(ctx, `SELECT `+unitColumns+` FROM shelving_units WHERE id = $1 FOR UPDATE`, id), &u)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NotFound("shelving unit %s not found", id)
		}
		return nil, db.TranslateError(err)
	}
	return &u, nil
}

func (r *UnitRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var got uuid.UUID
	err := q.QueryRow(ctx, `SELECT id FROM shelving_units WHERE id = $1 FOR SHARE`, id).Scan(&got)
	if err != nil {
		if db.IsNoRows(err) {
			return false, nil
		}
		return false, db.TranslateError(err)
	}
	return true, nil
}

func (r *UnitRepo) ListByRoom(ctx context.Context, roomID uuid.UUID, page models.Page) ([]models.ShelvingUnit, error) {
	q := db.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT `+unitColumns+` FROM shelving_units
		WHERE room_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3
	`, roomID, page.Limit, page.Offset)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var units []models.ShelvingUnit
	for rows.Next() {
		var u models.ShelvingUnit
		if err := scanUnit(rows, &u); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *UnitRepo) List(ctx context.Context, page models.Page) ([]models.ShelvingUnit, error) {
	q := db.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT `+unitColumns+` FROM shelving_units
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, page.Limit, page.Offset)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var units []models.ShelvingUnit
	for rows.Next() {
		var u models.ShelvingUnit
		if err := scanUnit(rows, &u); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *UnitRepo) Update(ctx context.Context, u *models.ShelvingUnit) error {
	q := db.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, `
		UPDATE shelving_units SET name = $1, description = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, u.Name, u.Description, u.ID).Scan(&u.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return errs.NotFound("shelving unit %s not found", u.ID)
		}
		return db.TranslateError(err)
	}
	return nil
}

// UpdateLocation is the move path: only the parent reference and the
// modification timestamp change.
func (r *UnitRepo) UpdateLocation(ctx context.Context, id, roomID uuid.UUID) error {
	q := db.QuerierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, `
		UPDATE shelving_units SET room_id = $1, updated_at = now() WHERE id = $2
	`, roomID, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("shelving unit %s not found", id)
	}
	return nil
}

func (r *UnitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := db.QuerierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, `DELETE FROM shelving_units WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("shelving unit %s not found", id)
	}
	return nil
}
