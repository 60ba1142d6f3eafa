package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/models"
)

func TestCreateContainerPlacement(t *testing.T) {
	env := newTestEnv()
	shelfID := env.seedShelf()
	parent := env.seedContainerOnShelf(shelfID, "parent")
	missing := uuid.New()
	actor := uuid.New()

	tests := []struct {
		name     string
		in       CreateContainerInput
		wantCode errs.Code
	}{
		{"on shelf", CreateContainerInput{ShelfID: &shelfID, Name: "box"}, ""},
		{"in container", CreateContainerInput{ParentContainerID: &parent, Name: "box"}, ""},
		{"both references", CreateContainerInput{ShelfID: &shelfID, ParentContainerID: &parent, Name: "box"}, errs.CodeInvalidLocation},
		{"neither reference", CreateContainerInput{Name: "box"}, errs.CodeInvalidLocation},
		{"missing shelf", CreateContainerInput{ShelfID: &missing, Name: "box"}, errs.CodeNotFound},
		{"missing parent", CreateContainerInput{ParentContainerID: &missing, Name: "box"}, errs.CodeNotFound},
		{"empty name", CreateContainerInput{ShelfID: &shelfID}, errs.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := env.containers.Create(context.Background(), tt.in, actor)
			if errs.CodeOf(err) != tt.wantCode {
				t.Fatalf("Create() error code = %v, want %v", errs.CodeOf(err), tt.wantCode)
			}
			if tt.wantCode != "" {
				return
			}
			entries := env.auditFor(c.ID)
			if len(entries) != 1 || entries[0].Action != models.AuditActionCreate {
				t.Errorf("audit entries for created container = %+v, want one create", entries)
			}
		})
	}
}

func TestUpdateContainerChangeSet(t *testing.T) {
	env := newTestEnv()
	shelfID := env.seedShelf()
	actor := uuid.New()

	desc := "old description"
	id := uuid.New()
	env.st.containers[id] = models.Container{ID: id, ShelfID: &shelfID, Name: "box", Description: &desc}

	// Only the name changes; description is supplied but identical.
	updated, err := env.containers.Update(context.Background(), id, UpdateContainerInput{
		Name:        models.Some("crate"),
		Description: models.Some(desc),
	}, actor)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "crate" {
		t.Errorf("updated.Name = %q, want %q", updated.Name, "crate")
	}

	entries := env.auditFor(id)
	if len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(entries))
	}
	cs := entries[0].Changes
	if len(cs) != 1 || cs[0].Field != "name" || cs[0].Old != "box" || cs[0].New != "crate" {
		t.Errorf("change-set = %+v, want single name change box->crate", cs)
	}

	// Explicit null clears the description and shows up as a change.
	updated, err = env.containers.Update(context.Background(), id, UpdateContainerInput{
		Description: models.Null[string](),
	}, actor)
	if err != nil {
		t.Fatalf("Update(null description) error = %v", err)
	}
	if updated.Description != nil {
		t.Errorf("updated.Description = %v, want nil", updated.Description)
	}
	entries = env.auditFor(id)
	if len(entries) != 2 {
		t.Fatalf("audit entries = %d, want 2", len(entries))
	}
	cs = entries[1].Changes
	if len(cs) != 1 || cs[0].Field != "description" {
		t.Errorf("change-set = %+v, want single description change", cs)
	}

	// Empty payload is a valid no-op update and still audits, with an empty
	// change-set.
	if _, err := env.containers.Update(context.Background(), id, UpdateContainerInput{}, actor); err != nil {
		t.Fatalf("Update(empty) error = %v", err)
	}
	entries = env.auditFor(id)
	if len(entries) != 3 {
		t.Fatalf("audit entries = %d, want 3", len(entries))
	}
	if !entries[2].Changes.IsEmpty() {
		t.Errorf("change-set for empty update = %+v, want empty", entries[2].Changes)
	}
}

func TestUpdateContainerValidation(t *testing.T) {
	env := newTestEnv()
	shelfID := env.seedShelf()
	id := env.seedContainerOnShelf(shelfID, "box")
	actor := uuid.New()

	tests := []struct {
		name     string
		target   uuid.UUID
		in       UpdateContainerInput
		wantCode errs.Code
	}{
		{"null name", id, UpdateContainerInput{Name: models.Null[string]()}, errs.CodeValidation},
		{"empty name", id, UpdateContainerInput{Name: models.Some("")}, errs.CodeValidation},
		{"missing container", uuid.New(), UpdateContainerInput{Name: models.Some("x")}, errs.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.containers.Update(context.Background(), tt.target, tt.in, actor)
			if errs.CodeOf(err) != tt.wantCode {
				t.Errorf("Update() error code = %v, want %v", errs.CodeOf(err), tt.wantCode)
			}
		})
	}

	// Rejected updates leave no audit rows behind.
	if n := len(env.auditFor(id)); n != 0 {
		t.Errorf("audit entries after rejected updates = %d, want 0", n)
	}
	if env.st.containers[id].Name != "box" {
		t.Errorf("container name changed despite rejected updates")
	}
}

func TestDeleteContainer(t *testing.T) {
	env := newTestEnv()
	shelfID := env.seedShelf()
	id := env.seedContainerOnShelf(shelfID, "box")
	actor := uuid.New()

	if err := env.containers.Delete(context.Background(), id, actor); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := env.st.containers[id]; ok {
		t.Errorf("container still present after delete")
	}
	entries := env.auditFor(id)
	if len(entries) != 1 || entries[0].Action != models.AuditActionDelete {
		t.Errorf("audit entries = %+v, want one delete", entries)
	}

	if err := env.containers.Delete(context.Background(), id, actor); errs.CodeOf(err) != errs.CodeNotFound {
		t.Errorf("Delete(missing) error code = %v, want %v", errs.CodeOf(err), errs.CodeNotFound)
	}
	// The failed delete must not add audit rows.
	if n := len(env.auditFor(id)); n != 1 {
		t.Errorf("audit entries after failed delete = %d, want 1", n)
	}
}
