package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/home-inventory/backend/internal/db"
	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/models"
)

type ContainerRepo struct {
	pool *pgxpool.Pool
}

func NewContainerRepo(pool *pgxpool.Pool) *ContainerRepo {
	return &ContainerRepo{pool: pool}
}

const containerColumns = `id, shelf_id, parent_container_id, name, description, created_at, updated_at, created_by`

func scanContainer(row interface{ Scan(...any) error }, c *models.Container) error {
	return row.Scan(&c.ID, &c.ShelfID, &c.ParentContainerID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.CreatedBy)
}

func (r *ContainerRepo) Create(ctx context.Context, c *models.Container) error {
	q := db.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, `
		INSERT INTO containers (shelf_id, parent_container_id, name, description, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, c.ShelfID, c.ParentContainerID, c.Name, c.Description, c.CreatedBy).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return db.TranslateError(err)
}

func (r *ContainerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Container, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var c models.Container
	err := scanContainer(q.QueryRow(ctx, `SELECT `+containerColumns+` FROM containers WHERE id = $1`, id), &c)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NotFound("container %s not found", id)
		}
		return nil, db.TranslateError(err)
	}
	return &c, nil
}

// GetForUpdate takes an exclusive lock on the container being mutated.
func (r *ContainerRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Container, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var c models.Container
	err := scanContainer(q.QueryRow(ctx, `SELECT `+containerColumns+` FROM containers WHERE id = $1 FOR UPDATE`, id), &c)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NotFound("container %s not found", id)
		}
		return nil, db.TranslateError(err)
	}
	return &c, nil
}

// GetForShare locks a row against concurrent relocation or deletion without
// blocking other readers. The ancestor walk takes this lock on every row it
// traverses so two overlapping moves cannot both pass cycle validation.
func (r *ContainerRepo) GetForShare(ctx context.Context, id uuid.UUID) (*models.Container, error) {
	q := db.QuerierFrom(ctx, r.pool)
	var c models.Container
	err := scanContainer(q.QueryRow(ctx, `SELECT `+containerColumns+` FROM containers WHERE id = $1 FOR SHARE`, id), &c)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NotFound("container %s not found", id)
		}
		return nil, db.TranslateError(err)
	}
	return &c, nil
}

func (r *ContainerRepo) ListByShelf(ctx context.Context, shelfID uuid.UUID, page models.Page) ([]models.Container, error) {
	return r.list(ctx, `WHERE shelf_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`, shelfID, page)
}

func (r *ContainerRepo) ListByParent(ctx context.Context, parentID uuid.UUID, page models.Page) ([]models.Container, error) {
	return r.list(ctx, `WHERE parent_container_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`, parentID, page)
}

func (r *ContainerRepo) list(ctx context.Context, suffix string, parent uuid.UUID, page models.Page) ([]models.Container, error) {
	q := db.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `SELECT `+containerColumns+` FROM containers `+suffix, parent, page.Limit, page.Offset)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var containers []models.Container
	for rows.Next() {
		var c models.Container
		if err := scanContainer(rows, &c); err != nil {
			return nil, err
		}
		containers = append(containers, c)
	}
	return containers, rows.Err()
}

func (r *ContainerRepo) List(ctx context.Context, page models.Page) ([]models.Container, error) {
	q := db.QuerierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT `+containerColumns+` FROM containers
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, page.Limit, page.Offset)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	var containers []models.Container
	for rows.Next() {
		var c models.Container
		if err := scanContainer(rows, &c); err != nil {
			return nil, err
		}
		containers = append(containers, c)
	}
	return containers, rows.Err()
}

func (r *ContainerRepo) Update(ctx context.Context, c *models.Container) error {
	q := db.QuerierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, `
		UPDATE containers SET name = $1, description = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, c.Name, c.Description, c.ID).Scan(&c.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return errs.NotFound("container %s not found", c.ID)
		}
		return db.TranslateError(err)
	}
	return nil
}

// UpdateLocation writes both parent columns from the tagged location so the
// exactly-one constraint cannot drift.
func (r *ContainerRepo) UpdateLocation(ctx context.Context, id uuid.UUID, loc models.Location) error {
	shelfID, parentID := loc.Columns()
	q := db.QuerierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, `
		UPDATE containers SET shelf_id = $1, parent_container_id = $2, updated_at = now()
		WHERE id = $3
	`, shelfID, parentID, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("container %s not found", id)
	}
	return nil
}

func (r *ContainerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := db.QuerierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, `DELETE FROM containers WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("container %s not found", id)
	}
	return nil
}
