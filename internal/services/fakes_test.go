package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/events"
	"github.com/home-inventory/backend/internal/models"
	"github.com/home-inventory/backend/internal/repositories"
)

// fakeState backs the map-based store fakes. fakeTx snapshots it before each
// unit of work and restores the snapshot on error, mimicking rollback.
type fakeState struct {
	rooms      map[uuid.UUID]models.Room
	units      map[uuid.UUID]models.ShelvingUnit
	shelves    map[uuid.UUID]models.Shelf
	containers map[uuid.UUID]models.Container
	items      map[uuid.UUID]models.Item
	tags       map[uuid.UUID]models.Tag
	entityTags map[entityKey][]uuid.UUID
	audit      []models.AuditLog
}

// entityKey addresses one entity's tag assignments.
type entityKey struct {
	kind models.EntityKind
	id   uuid.UUID
}

func newFakeState() *fakeState {
	return &fakeState{
		rooms:      make(map[uuid.UUID]models.Room),
		units:      make(map[uuid.UUID]models.ShelvingUnit),
		shelves:    make(map[uuid.UUID]models.Shelf),
		containers: make(map[uuid.UUID]models.Container),
		items:      make(map[uuid.UUID]models.Item),
		tags:       make(map[uuid.UUID]models.Tag),
		entityTags: make(map[entityKey][]uuid.UUID),
	}
}

func (st *fakeState) clone() fakeState {
	cp := fakeState{
		rooms:      make(map[uuid.UUID]models.Room, len(st.rooms)),
		units:      make(map[uuid.UUID]models.ShelvingUnit, len(st.units)),
		shelves:    make(map[uuid.UUID]models.Shelf, len(st.shelves)),
		containers: make(map[uuid.UUID]models.Container, len(st.containers)),
		items:      make(map[uuid.UUID]models.Item, len(st.items)),
		tags:       make(map[uuid.UUID]models.Tag, len(st.tags)),
		entityTags: make(map[entityKey][]uuid.UUID, len(st.entityTags)),
		audit:      append([]models.AuditLog(nil), st.audit...),
	}
	for k, v := range st.rooms {
		cp.rooms[k] = v
	}
	for k, v := range st.units {
		cp.units[k] = v
	}
	for k, v := range st.shelves {
		cp.shelves[k] = v
	}
	for k, v := range st.containers {
		cp.containers[k] = v
	}
	for k, v := range st.items {
		cp.items[k] = v
	}
	for k, v := range st.tags {
		cp.tags[k] = v
	}
	for k, v := range st.entityTags {
		cp.entityTags[k] = append([]uuid.UUID(nil), v...)
	}
	return cp
}

type fakeTx struct{ st *fakeState }

func (t *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := t.st.clone()
	if err := fn(ctx); err != nil {
		*t.st = snap
		return err
	}
	return nil
}

type fakePublisher struct{ published []events.Event }

func (p *fakePublisher) Publish(_ context.Context, _ string, e events.Event) error {
	p.published = append(p.published, e)
	return nil
}

type fakeRoomStore struct{ st *fakeState }

func (s *fakeRoomStore) Create(_ context.Context, r *models.Room) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	s.st.rooms[r.ID] = *r
	return nil
}

func (s *fakeRoomStore) GetByID(_ context.Context, id uuid.UUID) (*models.Room, error) {
	r, ok := s.st.rooms[id]
	if !ok {
		return nil, errs.NotFound("room %s not found", id)
	}
	return &r, nil
}

func (s *fakeRoomStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return s.GetByID(ctx, id)
}

func (s *fakeRoomStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.st.rooms[id]
	return ok, nil
}

func (s *fakeRoomStore) List(_ context.Context, _ models.Page) ([]models.Room, error) {
	out := make([]models.Room, 0, len(s.st.rooms))
	for _, r := range s.st.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (s *fakeRoomStore) Update(_ context.Context, r *models.Room) error {
	if _, ok := s.st.rooms[r.ID]; !ok {
		return errs.NotFound("room %s not found", r.ID)
	}
	r.UpdatedAt = time.Now()
	s.st.rooms[r.ID] = *r
	return nil
}

func (s *fakeRoomStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.st.rooms[id]; !ok {
		return errs.NotFound("room %s not found", id)
	}
	delete(s.st.rooms, id)
	return nil
}

type fakeUnitStore struct{ st *fakeState }

func (s *fakeUnitStore) Create(_ context.Context, u *models.ShelvingUnit) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	s.st.units[u.ID] = *u
	return nil
}

func (s *fakeUnitStore) GetByID(_ context.Context, id uuid.UUID) (*models.ShelvingUnit, error) {
	u, ok := s.st.units[id]
	if !ok {
		return nil, errs.NotFound("shelving unit %s not found", id)
	}
	return &u, nil
}

func (s *fakeUnitStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.ShelvingUnit, error) {
	return s.GetByID(ctx, id)
}

func (s *fakeUnitStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.st.units[id]
	return ok, nil
}

func (s *fakeUnitStore) ListByRoom(_ context.Context, roomID uuid.UUID, _ models.Page) ([]models.ShelvingUnit, error) {
	var out []models.ShelvingUnit
	for _, u := range s.st.units {
		if u.RoomID == roomID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUnitStore) List(_ context.Context, _ models.Page) ([]models.ShelvingUnit, error) {
	out := make([]models.ShelvingUnit, 0, len(s.st.units))
	for _, u := range s.st.units {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUnitStore) Update(_ context.Context, u *models.ShelvingUnit) error {
	if _, ok := s.st.units[u.ID]; !ok {
		return errs.NotFound("shelving unit %s not found", u.ID)
	}
	u.UpdatedAt = time.Now()
	s.st.units[u.ID] = *u
	return nil
}

func (s *fakeUnitStore) UpdateLocation(_ context.Context, id, roomID uuid.UUID) error {
	u, ok := s.st.units[id]
	if !ok {
		return errs.NotFound("shelving unit %s not found", id)
	}
	u.RoomID = roomID
	u.UpdatedAt = time.Now()
	s.st.units[id] = u
	return nil
}

func (s *fakeUnitStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.st.units[id]; !ok {
		return errs.NotFound("shelving unit %s not found", id)
	}
	delete(s.st.units, id)
	return nil
}

type fakeShelfStore struct{ st *fakeState }

func (s *fakeShelfStore) Create(_ context.Context, sh *models.Shelf) error {
	if sh.ID == uuid.Nil {
		sh.ID = uuid.New()
	}
	sh.CreatedAt = time.Now()
	sh.UpdatedAt = sh.CreatedAt
	s.st.shelves[sh.ID] = *sh
	return nil
}

func (s *fakeShelfStore) GetByID(_ context.Context, id uuid.UUID) (*models.Shelf, error) {
	sh, ok := s.st.shelves[id]
	if !ok {
		return nil, errs.NotFound("shelf %s not found", id)
	}
	return &sh, nil
}

func (s *fakeShelfStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Shelf, error) {
	return s.GetByID(ctx, id)
}

func (s *fakeShelfStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.st.shelves[id]
	return ok, nil
}

func (s *fakeShelfStore) ListByUnit(_ context.Context, unitID uuid.UUID, _ models.Page) ([]models.Shelf, error) {
	var out []models.Shelf
	for _, sh := range s.st.shelves {
		if sh.ShelvingUnitID == unitID {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (s *fakeShelfStore) List(_ context.Context, _ models.Page) ([]models.Shelf, error) {
	out := make([]models.Shelf, 0, len(s.st.shelves))
	for _, sh := range s.st.shelves {
		out = append(out, sh)
	}
	return out, nil
}

func (s *fakeShelfStore) Update(_ context.Context, sh *models.Shelf) error {
	if _, ok := s.st.shelves[sh.ID]; !ok {
		return errs.NotFound("shelf %s not found", sh.ID)
	}
	sh.UpdatedAt = time.Now()
	s.st.shelves[sh.ID] = *sh
	return nil
}

func (s *fakeShelfStore) UpdateLocation(_ context.Context, id, unitID uuid.UUID, position *int) error {
	sh, ok := s.st.shelves[id]
	if !ok {
		return errs.NotFound("shelf %s not found", id)
	}
	sh.ShelvingUnitID = unitID
	if position != nil {
		sh.Position = position
	}
	sh.UpdatedAt = time.Now()
	s.st.shelves[id] = sh
	return nil
}

func (s *fakeShelfStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.st.shelves[id]; !ok {
		return errs.NotFound("shelf %s not found", id)
	}
	delete(s.st.shelves, id)
	return nil
}

type fakeContainerStore struct{ st *fakeState }

func (s *fakeContainerStore) Create(_ context.Context, c *models.Container) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	s.st.containers[c.ID] = *c
	return nil
}

func (s *fakeContainerStore) GetByID(_ context.Context, id uuid.UUID) (*models.Container, error) {
	c, ok := s.st.containers[id]
	if !ok {
		return nil, errs.NotFound("container %s not found", id)
	}
	return &c, nil
}

func (s *fakeContainerStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Container, error) {
	return s.GetByID(ctx, id)
}

func (s *fakeContainerStore) GetForShare(ctx context.Context, id uuid.UUID) (*models.Container, error) {
	return s.GetByID(ctx, id)
}

func (s *fakeContainerStore) ListByShelf(_ context.Context, shelfID uuid.UUID, _ models.Page) ([]models.Container, error) {
	var out []models.Container
	for _, c := range s.st.containers {
		if c.ShelfID != nil && *c.ShelfID == shelfID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeContainerStore) ListByParent(_ context.Context, parentID uuid.UUID, _ models.Page) ([]models.Container, error) {
	var out []models.Container
	for _, c := range s.st.containers {
		if c.ParentContainerID != nil && *c.ParentContainerID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeContainerStore) List(_ context.Context, _ models.Page) ([]models.Container, error) {
	out := make([]models.Container, 0, len(s.st.containers))
	for _, c := range s.st.containers {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeContainerStore) Update(_ context.Context, c *models.Container) error {
	if _, ok := s.st.containers[c.ID]; !ok {
		return errs.NotFound("container %s not found", c.ID)
	}
	c.UpdatedAt = time.Now()
	s.st.containers[c.ID] = *c
	return nil
}

func (s *fakeContainerStore) UpdateLocation(_ context.Context, id uuid.UUID, loc models.Location) error {
	c, ok := s.st.containers[id]
	if !ok {
		return errs.NotFound("container %s not found", id)
	}
	c.ShelfID, c.ParentContainerID = loc.Columns()
	c.UpdatedAt = time.Now()
	s.st.containers[id] = c
	return nil
}

func (s *fakeContainerStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.st.containers[id]; !ok {
		return errs.NotFound("container %s not found", id)
	}
	delete(s.st.containers, id)
	return nil
}

type fakeItemStore struct{ st *fakeState }

func (s *fakeItemStore) Create(_ context.Context, i *models.Item) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.CreatedAt = time.Now()
	i.UpdatedAt = i.CreatedAt
	s.st.items[i.ID] = *i
	return nil
}

func (s *fakeItemStore) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	i, ok := s.st.items[id]
	if !ok {
		return nil, errs.NotFound("item %s not found", id)
	}
	return &i, nil
}

func (s *fakeItemStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.GetByID(ctx, id)
}

func (s *fakeItemStore) ListByShelf(_ context.Context, shelfID uuid.UUID, _ models.Page) ([]models.Item, error) {
	var out []models.Item
	for _, i := range s.st.items {
		if i.ShelfID != nil && *i.ShelfID == shelfID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (s *fakeItemStore) ListByContainer(_ context.Context, containerID uuid.UUID, _ models.Page) ([]models.Item, error) {
	var out []models.Item
	for _, i := range s.st.items {
		if i.ContainerID != nil && *i.ContainerID == containerID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (s *fakeItemStore) List(_ context.Context, _ models.Page) ([]models.Item, error) {
	out := make([]models.Item, 0, len(s.st.items))
	for _, i := range s.st.items {
		out = append(out, i)
	}
	return out, nil
}

func (s *fakeItemStore) Update(_ context.Context, i *models.Item) error {
	if _, ok := s.st.items[i.ID]; !ok {
		return errs.NotFound("item %s not found", i.ID)
	}
	i.UpdatedAt = time.Now()
	s.st.items[i.ID] = *i
	return nil
}

func (s *fakeItemStore) UpdateLocation(_ context.Context, id uuid.UUID, loc models.Location) error {
	i, ok := s.st.items[id]
	if !ok {
		return errs.NotFound("item %s not found", id)
	}
	i.ShelfID, i.ContainerID = loc.Columns()
	i.UpdatedAt = time.Now()
	s.st.items[id] = i
	return nil
}

func (s *fakeItemStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.st.items[id]; !ok {
		return errs.NotFound("item %s not found", id)
	}
	delete(s.st.items, id)
	return nil
}

type fakeTagStore struct{ st *fakeState }

func (s *fakeTagStore) Create(_ context.Context, t *models.Tag) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	s.st.tags[t.ID] = *t
	return nil
}

func (s *fakeTagStore) GetByID(_ context.Context, id uuid.UUID) (*models.Tag, error) {
	t, ok := s.st.tags[id]
	if !ok {
		return nil, errs.NotFound("tag %s not found", id)
	}
	return &t, nil
}

func (s *fakeTagStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	return s.GetByID(ctx, id)
}

func (s *fakeTagStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.st.tags[id]
	return ok, nil
}

func (s *fakeTagStore) NameTaken(_ context.Context, name string, exclude uuid.UUID) (bool, error) {
	for id, t := range s.st.tags {
		if id != exclude && strings.EqualFold(t.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeTagStore) List(_ context.Context, _ models.Page) ([]models.Tag, error) {
	out := make([]models.Tag, 0, len(s.st.tags))
	for _, t := range s.st.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeTagStore) Update(_ context.Context, t *models.Tag) error {
	if _, ok := s.st.tags[t.ID]; !ok {
		return errs.NotFound("tag %s not found", t.ID)
	}
	s.st.tags[t.ID] = *t
	return nil
}

func (s *fakeTagStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.st.tags[id]; !ok {
		return errs.NotFound("tag %s not found", id)
	}
	delete(s.st.tags, id)
	for k, ids := range s.st.entityTags {
		var kept []uuid.UUID
		for _, tid := range ids {
			if tid != id {
				kept = append(kept, tid)
			}
		}
		s.st.entityTags[k] = kept
	}
	return nil
}

func (s *fakeTagStore) ListByEntity(_ context.Context, kind models.EntityKind, entityID uuid.UUID) ([]models.Tag, error) {
	var out []models.Tag
	for _, id := range s.st.entityTags[entityKey{kind: kind, id: entityID}] {
		if t, ok := s.st.tags[id]; ok {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeTagStore) ReplaceAssignments(_ context.Context, kind models.EntityKind, entityID uuid.UUID, tagIDs []uuid.UUID) error {
	s.st.entityTags[entityKey{kind: kind, id: entityID}] = append([]uuid.UUID(nil), tagIDs...)
	return nil
}

type fakeAuditStore struct{ st *fakeState }

func (s *fakeAuditStore) Insert(_ context.Context, entry *models.AuditLog) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	s.st.audit = append(s.st.audit, *entry)
	return nil
}

func (s *fakeAuditStore) List(_ context.Context, f repositories.AuditFilter) ([]models.AuditLog, error) {
	var out []models.AuditLog
	for _, e := range s.st.audit {
		if f.EntityType != nil && e.EntityType != *f.EntityType {
			continue
		}
		if f.EntityID != nil && e.EntityID != *f.EntityID {
			continue
		}
		if f.ActorID != nil && e.ActorID != *f.ActorID {
			continue
		}
		if f.Action != nil && e.Action != *f.Action {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// testEnv wires every service against the shared fake state.
type testEnv struct {
	st        *fakeState
	publisher *fakePublisher

	rooms      *RoomService
	units      *UnitService
	shelves    *ShelfService
	containers *ContainerService
	items      *ItemService
	tags       *TagService
	moves      *MoveService
	audit      *AuditService
}

func newTestEnv() *testEnv {
	st := newFakeState()
	tx := &fakeTx{st: st}
	pub := &fakePublisher{}
	log := zap.NewNop()

	roomStore := &fakeRoomStore{st: st}
	unitStore := &fakeUnitStore{st: st}
	shelfStore := &fakeShelfStore{st: st}
	containerStore := &fakeContainerStore{st: st}
	itemStore := &fakeItemStore{st: st}
	audit := NewAuditService(&fakeAuditStore{st: st}, log)

	return &testEnv{
		st:         st,
		publisher:  pub,
		rooms:      NewRoomService(tx, roomStore, audit, pub, log),
		units:      NewUnitService(tx, unitStore, roomStore, audit, pub, log),
		shelves:    NewShelfService(tx, shelfStore, unitStore, audit, pub, log),
		containers: NewContainerService(tx, containerStore, shelfStore, audit, pub, log),
		items:      NewItemService(tx, itemStore, shelfStore, containerStore, audit, pub, log),
		tags:       NewTagService(tx, &fakeTagStore{st: st}, audit, pub, log),
		moves:      NewMoveService(tx, roomStore, unitStore, shelfStore, containerStore, itemStore, audit, pub, log),
		audit:      audit,
	}
}

// seedShelf builds room -> unit -> shelf and returns the shelf id.
func (e *testEnv) seedShelf() uuid.UUID {
	roomID := uuid.New()
	e.st.rooms[roomID] = models.Room{ID: roomID, Name: "garage"}
	unitID := uuid.New()
	e.st.units[unitID] = models.ShelvingUnit{ID: unitID, RoomID: roomID, Name: "rack"}
	shelfID := uuid.New()
	e.st.shelves[shelfID] = models.Shelf{ID: shelfID, ShelvingUnitID: unitID, Name: "top"}
	return shelfID
}

func (e *testEnv) seedContainerOnShelf(shelfID uuid.UUID, name string) uuid.UUID {
	id := uuid.New()
	sid := shelfID
	e.st.containers[id] = models.Container{ID: id, ShelfID: &sid, Name: name}
	return id
}

func (e *testEnv) seedContainerIn(parentID uuid.UUID, name string) uuid.UUID {
	id := uuid.New()
	pid := parentID
	e.st.containers[id] = models.Container{ID: id, ParentContainerID: &pid, Name: name}
	return id
}

func (e *testEnv) auditFor(id uuid.UUID) []models.AuditLog {
	var out []models.AuditLog
	for _, entry := range e.st.audit {
		if entry.EntityID == id {
			out = append(out, entry)
		}
	}
	return out
}
