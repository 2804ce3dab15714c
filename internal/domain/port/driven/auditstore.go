package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/profile-manager/internal/domain/model"
)

// ErrStoreWrite is returned when appending to the audit trail fails at the
// storage layer. It is the only failure mode Record has.
var ErrStoreWrite = errors.New("store write failed")

// AuditStore defines the driven port for the append-only audit trail.
// There are intentionally no update or delete operations.
type AuditStore interface {
	// Record appends one event. Failures are wrapped as ErrStoreWrite.
	Record(ctx context.Context, event model.AuditEvent) error

	// ListAll returns every recorded event in append order.
	ListAll(ctx context.Context) ([]model.AuditEvent, error)
}
