package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"komunumo/contexts/internal-ops/admin-console-service/adapters/memory"
	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
)

type demoStores struct {
	speakers      *memory.RecordStore[entities.Speaker, *entities.Speaker]
	events        *memory.RecordStore[entities.Event, *entities.Event]
	eventSpeakers *memory.RecordStore[entities.EventSpeaker, *entities.EventSpeaker]
	members       *memory.RecordStore[entities.Member, *entities.Member]
	sponsors      *memory.RecordStore[entities.Sponsor, *entities.Sponsor]
}

func newDemoGenerator() (DemoDataGenerator, demoStores) {
	stores := demoStores{
		speakers:      memory.NewRecordStore[entities.Speaker, *entities.Speaker](entities.NewSpeaker),
		events:        memory.NewRecordStore[entities.Event, *entities.Event](entities.NewEvent),
		eventSpeakers: memory.NewRecordStore[entities.EventSpeaker, *entities.EventSpeaker](entities.NewEventSpeaker),
		members:       memory.NewRecordStore[entities.Member, *entities.Member](entities.NewMember),
		sponsors:      memory.NewRecordStore[entities.Sponsor, *entities.Sponsor](entities.NewSponsor),
	}
	return DemoDataGenerator{
		Speakers:      stores.speakers,
		Events:        stores.events,
		EventSpeakers: stores.eventSpeakers,
		Members:       stores.members,
		Sponsors:      stores.sponsors,
		Hasher:        fixedHasher{},
	}, stores
}

func TestDemoDataGeneratorSeedsEmptyStores(t *testing.T) {
	ctx := context.Background()
	generator, stores := newDemoGenerator()
	require.NoError(t, generator.Run(ctx))

	assert.Equal(t, 2, stores.speakers.Len())
	assert.Equal(t, 3, stores.events.Len())
	assert.Equal(t, 4, stores.eventSpeakers.Len())
	assert.Equal(t, 2, stores.members.Len())
	assert.Equal(t, 3, stores.sponsors.Len())

	var links [][2]int64
	for link, err := range stores.eventSpeakers.Find(ctx, 0, 10, "") {
		require.NoError(t, err)
		links = append(links, [2]int64{link.EventID, link.SpeakerID})
	}
	assert.Equal(t, [][2]int64{{1, 1}, {2, 2}, {3, 1}, {3, 2}}, links)

	event, ok, err := stores.events.Get(ctx, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Testevent Three", event.Title)
	assert.False(t, event.Visible)

	admin, ok, err := stores.members.Get(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, admin.Admin)
	assert.Equal(t, "salt", admin.PasswordSalt)
	assert.Equal(t, "admin:salt", admin.PasswordHash)

	sponsor, ok, err := stores.sponsors.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "mimacom ag", sponsor.Name)
	assert.Equal(t, entities.SponsorLevelPlatin, sponsor.Level)
	require.NotNil(t, sponsor.ValidTo)
	assert.Equal(t, 2099, sponsor.ValidTo.Year())
}

func TestDemoDataGeneratorIsIdempotent(t *testing.T) {
	ctx := context.Background()
	generator, stores := newDemoGenerator()
	require.NoError(t, generator.Run(ctx))
	require.NoError(t, generator.Run(ctx))

	assert.Equal(t, 2, stores.speakers.Len())
	assert.Equal(t, 3, stores.events.Len())
	assert.Equal(t, 4, stores.eventSpeakers.Len())
	assert.Equal(t, 2, stores.members.Len())
	assert.Equal(t, 3, stores.sponsors.Len())
}

func TestDemoDataGeneratorSkipsPopulatedGroups(t *testing.T) {
	ctx := context.Background()
	generator, stores := newDemoGenerator()
	existing := entities.Sponsor{Name: "Existing"}
	require.NoError(t, stores.sponsors.Store(ctx, &existing))

	require.NoError(t, generator.Run(ctx))
	assert.Equal(t, 1, stores.sponsors.Len())
	assert.Equal(t, 2, stores.speakers.Len())
}
