package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/home-inventory/backend/internal/models"
	"github.com/home-inventory/backend/internal/repositories"
)

// TxManager scopes a function to one atomic unit of work. Every mutating
// service operation runs its read-validate-write-audit sequence inside a
// single WithinTx call.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// The store interfaces mirror internal/repositories. Services depend on them
// so the placement and audit logic can be exercised against map-backed fakes.

type RoomStore interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Room, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, page models.Page) ([]models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UnitStore interface {
	Create(ctx context.Context, u *models.ShelvingUnit) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ShelvingUnit, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.ShelvingUnit, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID, page models.Page) ([]models.ShelvingUnit, error)
	List(ctx context.Context, page models.Page) ([]models.ShelvingUnit, error)
	Update(ctx context.Context, u *models.ShelvingUnit) error
	UpdateLocation(ctx context.Context, id, roomID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ShelfStore interface {
	Create(ctx context.Context, s *models.Shelf) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shelf, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Shelf, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ListByUnit(ctx context.Context, unitID uuid.UUID, page models.Page) ([]models.Shelf, error)
	List(ctx context.Context, page models.Page) ([]models.Shelf, error)
	Update(ctx context.Context, s *models.Shelf) error
	UpdateLocation(ctx context.Context, id, unitID uuid.UUID, position *int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ContainerStore interface {
	Create(ctx context.Context, c *models.Container) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Container, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Container, error)
	GetForShare(ctx context.Context, id uuid.UUID) (*models.Container, error)
	ListByShelf(ctx context.Context, shelfID uuid.UUID, page models.Page) ([]models.Container, error)
	ListByParent(ctx context.Context, parentID uuid.UUID, page models.Page) ([]models.Container, error)
	List(ctx context.Context, page models.Page) ([]models.Container, error)
	Update(ctx context.Context, c *models.Container) error
	UpdateLocation(ctx context.Context, id uuid.UUID, loc models.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ItemStore interface {
	Create(ctx context.Context, i *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Item, error)
	ListByShelf(ctx context.Context, shelfID uuid.UUID, page models.Page) ([]models.Item, error)
	ListByContainer(ctx context.Context, containerID uuid.UUID, page models.Page) ([]models.Item, error)
	List(ctx context.Context, page models.Page) ([]models.Item, error)
	Update(ctx context.Context, i *models.Item) error
	UpdateLocation(ctx context.Context, id uuid.UUID, loc models.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TagStore interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	NameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error)
	List(ctx context.Context, page models.Page) ([]models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByEntity(ctx context.Context, kind models.EntityKind, entityID uuid.UUID) ([]models.Tag, error)
	ReplaceAssignments(ctx context.Context, kind models.EntityKind, entityID uuid.UUID, tagIDs []uuid.UUID) error
}

type AuditStore interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, f repositories.AuditFilter) ([]models.AuditLog, error)
}
