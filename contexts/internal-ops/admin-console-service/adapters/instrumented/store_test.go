package instrumented

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"komunumo/contexts/internal-ops/admin-console-service/adapters/memory"
	"komunumo/contexts/internal-ops/admin-console-service/adapters/storetest"
	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	domainerrors "komunumo/contexts/internal-ops/admin-console-service/domain/errors"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
)

type observation struct {
	kind      string
	operation string
	failed    bool
}

type recorder struct {
	mu   sync.Mutex
	seen []observation
}

func (r *recorder) Observe(_ context.Context, kind, operation string, err error, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, observation{kind: kind, operation: operation, failed: err != nil})
}

func newSponsorStore() ports.RecordStore[entities.Sponsor] {
	return memory.NewRecordStore[entities.Sponsor, *entities.Sponsor](entities.NewSponsor)
}

func TestWrapWithoutRecorderReturnsStore(t *testing.T) {
	store := newSponsorStore()
	assert.Same(t, store, Wrap(store, nil))
}

func TestWrapObservesEveryOperation(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	store := Wrap(newSponsorStore(), rec)

	sponsor := store.NewRecord()
	sponsor.Name = "Acme"
	require.NoError(t, store.Store(ctx, &sponsor))
	_, _, err := store.Get(ctx, sponsor.ID)
	require.NoError(t, err)
	rows := storetest.Collect(t, store.Find(ctx, 0, 10, ""))
	require.Len(t, rows, 1)
	require.NoError(t, store.Delete(ctx, sponsor))
	assert.ErrorIs(t, store.Delete(ctx, store.NewRecord()), domainerrors.ErrUnidentified)

	assert.Equal(t, []observation{
		{kind: "sponsor", operation: "store"},
		{kind: "sponsor", operation: "get"},
		{kind: "sponsor", operation: "find"},
		{kind: "sponsor", operation: "delete"},
		{kind: "sponsor", operation: "delete", failed: true},
	}, rec.seen)
}

func TestFindObservesEachPass(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	store := Wrap(newSponsorStore(), rec)

	seq := store.Find(ctx, 0, 10, "")
	assert.Empty(t, rec.seen, "creating the sequence runs nothing")

	storetest.Collect(t, seq)
	storetest.Collect(t, seq)
	assert.ErrorIs(t, storetest.FirstError(store.Find(ctx, -1, 10, "")), domainerrors.ErrInvalidPage)

	assert.Equal(t, []observation{
		{kind: "sponsor", operation: "find"},
		{kind: "sponsor", operation: "find"},
		{kind: "sponsor", operation: "find", failed: true},
	}, rec.seen)
}
