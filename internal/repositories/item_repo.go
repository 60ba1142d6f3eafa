package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/home-inventory/backend/internal/db"
	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/models"
)

type ItemRepo struct {
	pool *pgxpool.Pool
}

func NewItemRepo(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

const itemColumns = `id, shelf_id, container_id, name, description, barcode, barcode_type, product_link, acquired_date, created_at, updated_at, created_by`

func scanItem(row interface{ Scan(...any) error }, i *models.Item) error {
	return row.Scan(&i.ID, &i.ShelfID, &i.ContainerID, &i.Name, &i.Description, &i.Barcode,
		&i.BarcodeType, &i.ProductLink, &i.AcquiredDate, &i.CreatedAt, &i.UpdatedAt, &i.CreatedBy)
}

func (r *ItemRepo) Create(ctx context.Context, i *models.Item) error {
	q := db.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, `
		INSERT INTO items (shelf_id, container_id, name, description, barcode, barcode_type, product_link, acquired_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, i.ShelfID, i.ContainerID, i.Name, i.Description, i.Barcode, i.BarcodeType, i.ProductLink, i.AcquiredDate, i.CreatedBy,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	return db.TranslateError(err)
}

func (r *ItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var i models.Item
	err := scanItem(q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id), &i)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NotFound("item %s not found", id)
		}
		return nil, db.TranslateError(err)
	}
	return &i, nil
}

func (r *ItemRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var i models.Item
	err := scanItem(q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id), &i)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NotFound("item %s not found", id)
		}
		return nil, db.TranslateError(err)
	}
	return &i, nil
}

func (r *ItemRepo) ListByShelf(ctx context.Context, shelfID uuid.UUID, page models.Page) ([]models.Item, error) {
	return r.listWhere(ctx, `WHERE shelf_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`, shelfID, page)
}

func (r *ItemRepo) ListByContainer(ctx context.Context, containerID uuid.UUID, page models.Page) ([]models.Item, error) {
	return r.listWhere(ctx, `WHERE container_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`, containerID, page)
}

func (r *ItemRepo) listWhere(ctx context.Context, suffix string, parent uuid.UUID, page models.Page) ([]models.Item, error) {
	q := db.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `SELECT `+itemColumns+` FROM items `+suffix, parent, page.Limit, page.Offset)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var i models.Item
		if err := scanItem(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *ItemRepo) List(ctx context.Context, page models.Page) ([]models.Item, error) {
	q := db.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT `+itemColumns+` FROM items
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, page.Limit, page.Offset)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var i models.Item
		if err := scanItem(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *ItemRepo) Update(ctx context.Context, i *models.Item) error {
	q := db.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, `
		UPDATE items SET name = $1, description = $2, barcode = $3, barcode_type = $4,
		       product_link = $5, acquired_date = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at
	`, i.Name, i.Description, i.Barcode, i.BarcodeType, i.ProductLink, i.AcquiredDate, i.ID).Scan(&i.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return errs.NotFound("item %s not found", i.ID)
		}
		return db.TranslateError(err)
	}
	return nil
}

func (r *ItemRepo) UpdateLocation(ctx context.Context, id uuid.UUID, loc models.Location) error {
	shelfID, containerID := loc.Columns()
	q := db.QuerierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, `
		UPDATE items SET shelf_id = $1, container_id = $2, updated_at = now()
		WHERE id = $3
	`, shelfID, containerID, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("item %s not found", id)
	}
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := db.QuerierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("item %s not found", id)
	}
	return nil
}
