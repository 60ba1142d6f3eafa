package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/models"
)

func TestRoomLifecycle(t *testing.T) {
	env := newTestEnv()
	actor := uuid.New()

	if _, err := env.rooms.Create(context.Background(), CreateRoomInput{}, actor); errs.CodeOf(err) != errs.CodeValidation {
		t.Errorf("Create(empty name) error code = %v, want %v", errs.CodeOf(err), errs.CodeValidation)
	}

	desc := "tools and boxes"
	room, err := env.rooms.Create(context.Background(), CreateRoomInput{Name: "garage", Description: &desc}, actor)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if room.ID == uuid.Nil {
		t.Fatalf("Create() did not assign an id")
	}

	updated, err := env.rooms.Update(context.Background(), room.ID, UpdateRoomInput{Name: models.Some("workshop")}, actor)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "workshop" {
		t.Errorf("updated.Name = %q, want %q", updated.Name, "workshop")
	}
	if updated.Description == nil || *updated.Description != desc {
		t.Errorf("updated.Description = %v, want untouched %q", updated.Description, desc)
	}

	if err := env.rooms.Delete(context.Background(), room.ID, actor); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	entries := env.auditFor(room.ID)
	actions := make([]string, len(entries))
	for i, e := range entries {
		actions[i] = e.Action
	}
	want := []string{models.AuditActionCreate, models.AuditActionUpdate, models.AuditActionDelete}
	if len(actions) != len(want) {
		t.Fatalf("audit actions = %v, want %v", actions, want)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Errorf("audit actions = %v, want %v", actions, want)
			break
		}
	}
}

func TestCreateUnitRequiresRoom(t *testing.T) {
	env := newTestEnv()
	actor := uuid.New()

	if _, err := env.units.Create(context.Background(), CreateUnitInput{RoomID: uuid.New(), Name: "rack"}, actor); errs.CodeOf(err) != errs.CodeNotFound {
		t.Errorf("Create(missing room) error code = %v, want %v", errs.CodeOf(err), errs.CodeNotFound)
	}
	if _, err := env.units.Create(context.Background(), CreateUnitInput{Name: "rack"}, actor); errs.CodeOf(err) != errs.CodeInvalidLocation {
		t.Errorf("Create(zero room id) error code = %v, want %v", errs.CodeOf(err), errs.CodeInvalidLocation)
	}

	roomID := uuid.New()
	env.st.rooms[roomID] = models.Room{ID: roomID, Name: "garage"}
	u, err := env.units.Create(context.Background(), CreateUnitInput{RoomID: roomID, Name: "rack"}, actor)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if u.RoomID != roomID {
		t.Errorf("unit.RoomID = %v, want %v", u.RoomID, roomID)
	}
}

func TestUpdateShelfPositionChangeSet(t *testing.T) {
	env := newTestEnv()
	roomID := uuid.New()
	env.st.rooms[roomID] = models.Room{ID: roomID, Name: "garage"}
	unitID := uuid.New()
	env.st.units[unitID] = models.ShelvingUnit{ID: unitID, RoomID: roomID, Name: "rack"}
	pos := 1
	shelfID := uuid.New()
	env.st.shelves[shelfID] = models.Shelf{ID: shelfID, ShelvingUnitID: unitID, Name: "top", Position: &pos}
	actor := uuid.New()

	updated, err := env.shelves.Update(context.Background(), shelfID, UpdateShelfInput{Position: models.Some(2)}, actor)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Position == nil || *updated.Position != 2 {
		t.Errorf("updated.Position = %v, want 2", updated.Position)
	}

	entries := env.auditFor(shelfID)
	if len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(entries))
	}
	cs := entries[0].Changes
	if len(cs) != 1 || cs[0].Field != "position" {
		t.Errorf("change-set = %+v, want single position change", cs)
	}
}
