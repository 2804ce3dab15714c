package sqlite

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/profile-manager/internal/domain/model"
	"github.com/ericfisherdev/profile-manager/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AuditStore = (*AuditRepo)(nil)

// AuditRepo is the SQLite implementation of the AuditStore port interface.
// The audit_events table is append-only; no update or delete statement
// exists anywhere in this package.
type AuditRepo struct {
	db *DB
}

// NewAuditRepo creates a new AuditRepo backed by the given DB.
func NewAuditRepo(db *DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Record appends one event to the audit trail.
func (r *AuditRepo) Record(ctx context.Context, event model.AuditEvent) error {
	_, err := r.db.Writer.ExecContext(ctx,
		`INSERT INTO audit_events (occurred_at, profile_name, kind, action) VALUES (?, ?, ?, ?)`,
		formatTime(event.OccurredAt), event.ProfileName, event.Kind, string(event.Action),
	)
	if err != nil {
		return fmt.Errorf("%w: record %s for profile %q: %v", driven.ErrStoreWrite, event.Action, event.ProfileName, err)
	}
	return nil
}

// ListAll returns every recorded event in append order.
func (r *AuditRepo) ListAll(ctx context.Context) ([]model.AuditEvent, error) {
	rows, err := r.db.Reader.QueryContext(ctx,
		`SELECT id, occurred_at, profile_name, kind, action FROM audit_events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []model.AuditEvent
	for rows.Next() {
		var (
			e          model.AuditEvent
			occurredAt string
			action     string
		)
		if err := rows.Scan(&e.ID, &occurredAt, &e.ProfileName, &e.Kind, &action); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.OccurredAt, err = parseTime(occurredAt)
		if err != nil {
			return nil, fmt.Errorf("parse occurred_at: %w", err)
		}
		e.Action = model.AuditAction(action)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}

	return events, nil
}
