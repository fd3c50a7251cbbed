package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"komunumo/contexts/internal-ops/admin-console-service/adapters/memory"
	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	domainerrors "komunumo/contexts/internal-ops/admin-console-service/domain/errors"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
)

var errBackendDown = domainerrors.Storage(errors.New("connection reset"))

// spyStore counts mutating calls and can be told to fail them.
type spyStore[E entities.Record] struct {
	ports.RecordStore[E]
	stores    int
	deletes   int
	failStore error
	failDel   error
}

func (s *spyStore[E]) Store(ctx context.Context, record *E) error {
	s.stores++
	if s.failStore != nil {
		return s.failStore
	}
	return s.RecordStore.Store(ctx, record)
}

func (s *spyStore[E]) Delete(ctx context.Context, record E) error {
	s.deletes++
	if s.failDel != nil {
		return s.failDel
	}
	return s.RecordStore.Delete(ctx, record)
}

type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls++
	return r.err
}

func newSponsorSpy() *spyStore[entities.Sponsor] {
	return &spyStore[entities.Sponsor]{
		RecordStore: memory.NewRecordStore[entities.Sponsor, *entities.Sponsor](entities.NewSponsor),
	}
}

func seedSponsors(t *testing.T, store ports.RecordStore[entities.Sponsor], names ...string) []entities.Sponsor {
	t.Helper()
	out := make([]entities.Sponsor, 0, len(names))
	for _, name := range names {
		sponsor := store.NewRecord()
		sponsor.Name = name
		require.NoError(t, store.Store(context.Background(), &sponsor))
		out = append(out, sponsor)
	}
	return out
}

func newAuditTrail() (AuditTrail, *memory.Store) {
	store := memory.NewStore()
	return AuditTrail{Repo: store, Clock: store, IDGenerator: store}, store
}

type fixedHasher struct{}

func (fixedHasher) Salt() (string, error) { return "salt", nil }

func (fixedHasher) Hash(secret, salt string) string { return secret + ":" + salt }
