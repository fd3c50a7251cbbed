package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"komunumo/contexts/internal-ops/admin-console-service/adapters/storetest"
	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
)

func TestSponsorRecordStoreContract(t *testing.T) {
	storetest.RunSponsorSuite(t, func(t *testing.T) ports.RecordStore[entities.Sponsor] {
		return NewRecordStore[entities.Sponsor, *entities.Sponsor](entities.NewSponsor)
	})
}

func TestRecordStoreSearchColumns(t *testing.T) {
	storetest.RunSearchSuites(t, storetest.SearchStores{
		Speakers: func(*testing.T) ports.RecordStore[entities.Speaker] {
			return NewRecordStore[entities.Speaker, *entities.Speaker](entities.NewSpeaker)
		},
		Events: func(*testing.T) ports.RecordStore[entities.Event] {
			return NewRecordStore[entities.Event, *entities.Event](entities.NewEvent)
		},
		Members: func(*testing.T) ports.RecordStore[entities.Member] {
			return NewRecordStore[entities.Member, *entities.Member](entities.NewMember)
		},
	})
}

func TestSpeakerFilterSearchesNameAndCompany(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore[entities.Speaker, *entities.Speaker](entities.NewSpeaker)
	for _, speaker := range []entities.Speaker{
		{FirstName: "John", LastName: "Doe", Company: "Acme", Email: "john@example.com"},
		{FirstName: "Jane", LastName: "Roe", Company: "Globex", Email: "jane@acme.example"},
	} {
		require.NoError(t, store.Store(ctx, &speaker))
	}

	rows := storetest.Collect(t, store.Find(ctx, 0, 10, "ACME"))
	require.Len(t, rows, 1)
	assert.Equal(t, "John", rows[0].FirstName)

	rows = storetest.Collect(t, store.Find(ctx, 0, 10, "roe"))
	require.Len(t, rows, 1)
	assert.Equal(t, "Jane", rows[0].FirstName)
}

func TestEventSpeakerIgnoresFilter(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore[entities.EventSpeaker, *entities.EventSpeaker](entities.NewEventSpeaker)
	link := entities.EventSpeaker{EventID: 1, SpeakerID: 2}
	require.NoError(t, store.Store(ctx, &link))

	assert.Len(t, storetest.Collect(t, store.Find(ctx, 0, 10, "anything")), 1)
}

func TestConcurrentInsertsGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore[entities.Sponsor, *entities.Sponsor](entities.NewSponsor)

	const writers = 16
	ids := make([]int64, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sponsor := store.NewRecord()
			sponsor.Name = "sponsor"
			if err := store.Store(ctx, &sponsor); err == nil {
				ids[i] = sponsor.ID
			}
		}()
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, id := range ids {
		require.NotZero(t, id)
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
	assert.Equal(t, writers, store.Len())
}
