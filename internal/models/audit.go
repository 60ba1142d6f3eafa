package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionMove   = "move"
)

// FieldChange records one field's transition in an update.
type FieldChange struct {
	Field string `json:"field"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

// ChangeSet is an ordered list of field changes. Order follows the payload's
// field declaration order, so it marshals deterministically.
type ChangeSet []FieldChange

func (cs ChangeSet) IsEmpty() bool { return len(cs) == 0 }

// MoveMetadata is stored on move entries, distinct from the field change-set:
// a relocation is not a textual field edit.
type MoveMetadata struct {
	From Location `json:"from"`
	To   Location `json:"to"`
}

// AuditLog is one immutable row in the append-only audit trail.
type AuditLog struct {
	ID         uuid.UUID  `json:"id"`
	EntityType EntityKind `json:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id"`
	Action     string     `json:"action"`
	ActorID    uuid.UUID  `json:"actor_id"`
	Changes    ChangeSet  `json:"changes,omitempty"`
	Metadata   any        `json:"metadata,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
