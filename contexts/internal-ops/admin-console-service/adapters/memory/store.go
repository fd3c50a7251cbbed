package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"komunumo/contexts/internal-ops/admin-console-service/ports"
)

// Store keeps the admin audit trail in process memory.
type Store struct {
	mu   sync.Mutex
	logs []ports.AuditLog
}

func NewStore() *Store {
	return &Store{
		logs: make([]ports.AuditLog, 0, 128),
	}
}

func (s *Store) AppendAuditLog(_ context.Context, row ports.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, row)
	return nil
}

func (s *Store) ListRecentAuditLogs(_ context.Context, limit int) ([]ports.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 50
	}
	out := make([]ports.AuditLog, 0, min(limit, len(s.logs)))
	for _, row := range slices.Backward(s.logs) {
		out = append(out, row)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
