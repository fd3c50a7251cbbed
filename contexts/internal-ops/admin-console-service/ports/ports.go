package ports

import (
	"context"
	"iter"
	"time"

	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
)

// RecordStore is the only point of contact with the persistence backend for
// one entity type.
type RecordStore[E entities.Record] interface {
	NewRecord() E
	// Get reports false when no record carries id; a miss is not an error.
	Get(ctx context.Context, id int64) (E, bool, error)
	// Find is lazy: each range over the returned sequence re-runs the query.
	Find(ctx context.Context, offset, limit int, filter string) iter.Seq2[E, error]
	// Store inserts unidentified records, assigning their ID, and overwrites
	// identified ones.
	Store(ctx context.Context, record *E) error
	Delete(ctx context.Context, record E) error
}

// Refresher is signalled after every successful mutation.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type AuditLog struct {
	AuditID    string
	ActorID    string
	Action     string
	TargetKind string
	TargetID   int64
	OccurredAt time.Time
	RequestID  string
}

type AuditRepository interface {
	AppendAuditLog(ctx context.Context, row AuditLog) error
	ListRecentAuditLogs(ctx context.Context, limit int) ([]AuditLog, error)
}

// PasswordHasher is opaque to the console; it is only used for demo members.
type PasswordHasher interface {
	Salt() (string, error)
	Hash(secret, salt string) string
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Clock interface {
	Now() time.Time
}

// MetricsRecorder observes one record store operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, kind, operation string, err error, duration time.Duration)
}
