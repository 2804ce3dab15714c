package model

import "time"

// AuditAction identifies one kind of state-changing operation
// recorded in the audit trail.
type AuditAction string

const (
	ActionCreateProfile     AuditAction = "CREATE_PROFILE"
	ActionRemoveProfile     AuditAction = "REMOVE_PROFILE"
	ActionActivateProfile   AuditAction = "ACTIVATE_PROFILE"
	ActionDeactivateProfile AuditAction = "DEACTIVATE_PROFILE"
)

// AuditEvent is one immutable entry in the append-only audit trail.
// Events reference profiles by name only, so a profile's history
// survives its removal.
type AuditEvent struct {
	ID          int64
	OccurredAt  time.Time
	ProfileName string
	Kind        string
	Action      AuditAction
}
