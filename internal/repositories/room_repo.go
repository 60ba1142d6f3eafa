package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/home-inventory/backend/internal/db"
	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/models"
)

type RoomRepo struct {
	pool *pgxpool.Pool
}

func NewRoomRepo(pool *pgxpool.Pool) *RoomRepo {
	return &RoomRepo{pool: pool}
}

func (r *RoomRepo) Create(ctx context.Context, room *models.Room) error {
	q := db.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, `
		INSERT INTO rooms (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, room.Name, room.Description, room.CreatedBy).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	return db.TranslateError(err)
}

func (r *RoomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var room models.Room
	err := q.QueryRow(ctx, `
		SELECT id, name, description, created_at, updated_at, created_by
		FROM rooms WHERE id = $1
	`, id).Scan(&room.ID, &room.Name, &room.Description, &room.CreatedAt, &room.UpdatedAt, &room.CreatedBy)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NotFound("room %s not found", id)
		}
		return nil, db.TranslateError(err)
	}
	return &room, nil
}

// GetForUpdate locks the row for the rest of the surrounding transaction.
func (r *RoomRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var room models.Room
	err := q.QueryRow(ctx, `
		SELECT id, name, description, created_at, updated_at, created_by
		FROM rooms WHERE id = $1 FOR UPDATE
	`, id).Scan(&room.ID, &room.Name, &room.Description, &room.CreatedAt, &room.UpdatedAt, &room.CreatedBy)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NotFound("room %s not found", id)
		}
		return nil, db.TranslateError(err)
	}
	return &room, nil
}

// Exists takes a share lock so the row cannot be deleted while the calling
// transaction is still validating against it.
func (r *RoomRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var got uuid.UUID
	err := q.QueryRow(ctx, `SELECT id FROM rooms WHERE id = $1 FOR SHARE`, id).Scan(&got)
	if err != nil {
		if db.IsNoRows(err) {
			return false, nil
		}
		return false, db.TranslateError(err)
	}
	return true, nil
}

func (r *RoomRepo) List(ctx context.Context, page models.Page) ([]models.Room, error) {
	q := db.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT id, name, description, created_at, updated_at, created_by
		FROM rooms ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, page.Limit, page.Offset)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Description, &room.CreatedAt, &room.UpdatedAt, &room.CreatedBy); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *RoomRepo) Update(ctx context.Context, room *models.Room) error {
	q := db.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, `
		UPDATE rooms SET name = $1, description = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, room.Name, room.Description, room.ID).Scan(&room.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return errs.NotFound("room %s not found", room.ID)
		}
		return db.TranslateError(err)
	}
	return nil
}

// Delete removes the room and, through the schema's cascading foreign keys,
// everything located beneath it.
func (r *RoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := db.QuerierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("room %s not found", id)
	}
	return nil
}
