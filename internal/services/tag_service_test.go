package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/home-inventory/backend/internal/errs"
	"github.com/home-inventory/backend/internal/models"
)

func TestCreateTagValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	actor := uuid.New()

	if _, err := env.tags.Create(ctx, "fragile", actor); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name     string
		tagName  string
		wantCode errs.Code
	}{
		{"empty", "", errs.CodeValidation},
		{"whitespace only", "   ", errs.CodeValidation},
		{"too long", strings.Repeat("x", 101), errs.CodeValidation},
		{"duplicate case-insensitive", "FRAGILE", errs.CodeConflict},
		{"new name", "seasonal", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.tags.Create(ctx, tt.tagName, actor)
			if got := errs.CodeOf(err); got != tt.wantCode {
				t.Errorf("Create(%q) error code = %s, want %s", tt.tagName, got, tt.wantCode)
			}
		})
	}
}

func TestCreateTagTrimsAndAudits(t *testing.T) {
	env := newTestEnv()
	actor := uuid.New()

	tag, err := env.tags.Create(context.Background(), "  winter gear  ", actor)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if tag.Name != "winter gear" {
		t.Errorf("name = %q, want trimmed %q", tag.Name, "winter gear")
	}

	entries := env.auditFor(tag.ID)
	if len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(entries))
	}
	if entries[0].Action != models.AuditActionCreate || entries[0].EntityType != models.EntityTag {
		t.Errorf("audit entry = %s/%s, want create/tag", entries[0].Action, entries[0].EntityType)
	}
}

func TestUpdateTagRename(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	actor := uuid.New()

	tag, err := env.tags.Create(ctx, "fragile", actor)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	other, err := env.tags.Create(ctx, "heavy", actor)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Renaming over another tag's name is rejected, case-insensitively.
	_, err = env.tags.Update(ctx, tag.ID, UpdateTagInput{Name: models.Some("HEAVY")}, actor)
	if got := errs.CodeOf(err); got != errs.CodeConflict {
		t.Fatalf("Update() error code = %s, want %s", got, errs.CodeConflict)
	}

	// Re-submitting the current name is a no-op, not a self-collision.
	updated, err := env.tags.Update(ctx, tag.ID, UpdateTagInput{Name: models.Some("fragile")}, actor)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "fragile" {
		t.Errorf("name = %q, want %q", updated.Name, "fragile")
	}

	updated, err = env.tags.Update(ctx, tag.ID, UpdateTagInput{Name: models.Some("delicate")}, actor)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "delicate" {
		t.Errorf("name = %q, want %q", updated.Name, "delicate")
	}

	entries := env.auditFor(tag.ID)
	// create, no-op update, rename. The rejected rename rolled back.
	if len(entries) != 3 {
		t.Fatalf("audit entries = %d, want 3", len(entries))
	}
	rename := entries[2]
	if len(rename.Changes) != 1 || rename.Changes[0].Field != "name" {
		t.Fatalf("rename changes = %+v, want one name change", rename.Changes)
	}
	if rename.Changes[0].Old != "fragile" || rename.Changes[0].New != "delicate" {
		t.Errorf("rename change = %v -> %v, want fragile -> delicate", rename.Changes[0].Old, rename.Changes[0].New)
	}

	if _, err := env.tags.GetByID(ctx, other.ID); err != nil {
		t.Errorf("other tag lost: %v", err)
	}
}

func TestDeleteTag(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	actor := uuid.New()

	tag, err := env.tags.Create(ctx, "fragile", actor)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := env.tags.Delete(ctx, tag.ID, actor); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := env.tags.GetByID(ctx, tag.ID); errs.CodeOf(err) != errs.CodeNotFound {
		t.Errorf("GetByID() after delete error = %v, want not_found", err)
	}

	entries := env.auditFor(tag.ID)
	if len(entries) != 2 || entries[1].Action != models.AuditActionDelete {
		t.Fatalf("audit = %+v, want create then delete", entries)
	}

	if err := env.tags.Delete(ctx, tag.ID, actor); errs.CodeOf(err) != errs.CodeNotFound {
		t.Errorf("second Delete() error = %v, want not_found", err)
	}
}

func TestAssignTagsReplacesSet(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	actor := uuid.New()

	shelfID := env.seedShelf()
	boxID := env.seedContainerOnShelf(shelfID, "box")

	fragile, _ := env.tags.Create(ctx, "fragile", actor)
	heavy, _ := env.tags.Create(ctx, "heavy", actor)

	if err := env.tags.Assign(ctx, models.EntityContainer, boxID, []uuid.UUID{fragile.ID, heavy.ID}, actor); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	got, err := env.tags.ListForEntity(ctx, models.EntityContainer, boxID)
	if err != nil {
		t.Fatalf("ListForEntity() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("tags = %d, want 2", len(got))
	}

	// A second assign replaces rather than appends.
	if err := env.tags.Assign(ctx, models.EntityContainer, boxID, []uuid.UUID{heavy.ID}, actor); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	got, _ = env.tags.ListForEntity(ctx, models.EntityContainer, boxID)
	if len(got) != 1 || got[0].ID != heavy.ID {
		t.Fatalf("tags after reassign = %+v, want only heavy", got)
	}

	entries := env.auditFor(boxID)
	if len(entries) != 2 {
		t.Fatalf("audit entries = %d, want 2", len(entries))
	}
	last := entries[1]
	if last.EntityType != models.EntityContainer || last.Action != models.AuditActionUpdate {
		t.Errorf("audit entry = %s/%s, want container/update", last.EntityType, last.Action)
	}
	if len(last.Changes) != 1 || last.Changes[0].Field != "tags" {
		t.Fatalf("audit changes = %+v, want one tags change", last.Changes)
	}
}

func TestAssignTagsValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	actor := uuid.New()

	shelfID := env.seedShelf()
	boxID := env.seedContainerOnShelf(shelfID, "box")
	fragile, _ := env.tags.Create(ctx, "fragile", actor)

	err := env.tags.Assign(ctx, models.EntityKind("warehouse"), boxID, []uuid.UUID{fragile.ID}, actor)
	if got := errs.CodeOf(err); got != errs.CodeValidation {
		t.Errorf("Assign(bad kind) error code = %s, want %s", got, errs.CodeValidation)
	}

	err = env.tags.Assign(ctx, models.EntityContainer, boxID, []uuid.UUID{uuid.New()}, actor)
	if got := errs.CodeOf(err); got != errs.CodeNotFound {
		t.Errorf("Assign(missing tag) error code = %s, want %s", got, errs.CodeNotFound)
	}
	if got, _ := env.tags.ListForEntity(ctx, models.EntityContainer, boxID); len(got) != 0 {
		t.Errorf("failed assign left %d tags behind", len(got))
	}
	if entries := env.auditFor(boxID); len(entries) != 0 {
		t.Errorf("failed assign wrote %d audit entries", len(entries))
	}
}

func TestBulkAssignTags(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	actor := uuid.New()

	shelfID := env.seedShelf()
	boxID := env.seedContainerOnShelf(shelfID, "box")
	crateID := env.seedContainerOnShelf(shelfID, "crate")
	fragile, _ := env.tags.Create(ctx, "fragile", actor)

	if err := env.tags.BulkAssign(ctx, models.EntityContainer, nil, []uuid.UUID{fragile.ID}, actor); errs.CodeOf(err) != errs.CodeValidation {
		t.Fatalf("BulkAssign(no entities) error = %v, want validation", err)
	}

	err := env.tags.BulkAssign(ctx, models.EntityContainer, []uuid.UUID{boxID, crateID}, []uuid.UUID{fragile.ID}, actor)
	if err != nil {
		t.Fatalf("BulkAssign() error = %v", err)
	}
	for _, id := range []uuid.UUID{boxID, crateID} {
		got, err := env.tags.ListForEntity(ctx, models.EntityContainer, id)
		if err != nil {
			t.Fatalf("ListForEntity() error = %v", err)
		}
		if len(got) != 1 || got[0].ID != fragile.ID {
			t.Errorf("entity %s tags = %+v, want fragile", id, got)
		}
		if entries := env.auditFor(id); len(entries) != 1 {
			t.Errorf("entity %s audit entries = %d, want 1", id, len(entries))
		}
	}
}
