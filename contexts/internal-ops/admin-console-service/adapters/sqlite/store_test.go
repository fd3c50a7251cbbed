package sqliteadapter

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"komunumo/contexts/internal-ops/admin-console-service/adapters/storetest"
	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	domainerrors "komunumo/contexts/internal-ops/admin-console-service/domain/errors"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
	"komunumo/internal/platform/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	lite, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = lite.Close() })
	require.NoError(t, EnsureSchema(context.Background(), lite.DB))
	return lite.DB
}

func TestSponsorStoreContract(t *testing.T) {
	storetest.RunSponsorSuite(t, func(t *testing.T) ports.RecordStore[entities.Sponsor] {
		return NewSponsorStore(openTestDB(t), nil)
	})
}

func TestStoreSearchColumns(t *testing.T) {
	storetest.RunSearchSuites(t, storetest.SearchStores{
		Speakers: func(t *testing.T) ports.RecordStore[entities.Speaker] {
			return NewSpeakerStore(openTestDB(t), nil)
		},
		Events: func(t *testing.T) ports.RecordStore[entities.Event] {
			return NewEventStore(openTestDB(t), nil)
		},
		Members: func(t *testing.T) ports.RecordStore[entities.Member] {
			return NewMemberStore(openTestDB(t), nil)
		},
	})
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, EnsureSchema(context.Background(), conn))
}

func TestSponsorLevelCheckIsValidation(t *testing.T) {
	store := NewSponsorStore(openTestDB(t), nil)
	sponsor := store.NewRecord()
	sponsor.Name = "Acme"
	sponsor.Level = "BRONZE"

	err := store.Store(context.Background(), &sponsor)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Zero(t, sponsor.ID)
}

func TestMemberEmailUniqueIsValidation(t *testing.T) {
	ctx := context.Background()
	store := NewMemberStore(openTestDB(t), nil)

	first := entities.Member{FirstName: "Jane", LastName: "Doe", Email: "jane.doe@localhost"}
	require.NoError(t, store.Store(ctx, &first))

	second := entities.Member{FirstName: "Janet", LastName: "Doe", Email: "jane.doe@localhost"}
	assert.ErrorIs(t, store.Store(ctx, &second), domainerrors.ErrValidation)

	// blank emails are not subject to the unique index
	a := entities.Member{FirstName: "A"}
	b := entities.Member{FirstName: "B"}
	require.NoError(t, store.Store(ctx, &a))
	require.NoError(t, store.Store(ctx, &b))
}

func TestEventSpeakerForeignKeysAreValidation(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	events := NewEventStore(conn, nil)
	speakers := NewSpeakerStore(conn, nil)
	links := NewEventSpeakerStore(conn, nil)

	dangling := entities.EventSpeaker{EventID: 99, SpeakerID: 98}
	assert.ErrorIs(t, links.Store(ctx, &dangling), domainerrors.ErrValidation)

	event := entities.Event{Title: "Testevent One"}
	speaker := entities.Speaker{FirstName: "John", LastName: "Doe"}
	require.NoError(t, events.Store(ctx, &event))
	require.NoError(t, speakers.Store(ctx, &speaker))

	link := entities.EventSpeaker{EventID: event.ID, SpeakerID: speaker.ID}
	require.NoError(t, links.Store(ctx, &link))
	duplicate := entities.EventSpeaker{EventID: event.ID, SpeakerID: speaker.ID}
	assert.ErrorIs(t, links.Store(ctx, &duplicate), domainerrors.ErrValidation)

	// the filter has no columns to search
	assert.Len(t, storetest.Collect(t, links.Find(ctx, 0, 10, "doe")), 1)
}

func TestMemberRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemberStore(openTestDB(t), nil)
	since := time.Date(2021, time.October, 1, 18, 30, 0, 123, time.UTC)
	member := entities.Member{
		FirstName:    "John",
		LastName:     "Doe",
		Email:        "john.doe@localhost",
		Address:      "Main Street 1",
		ZipCode:      "6000",
		City:         "Luzern",
		State:        "LU",
		Country:      "Switzerland",
		MemberSince:  &since,
		Admin:        true,
		PasswordSalt: "salt",
		PasswordHash: "hash",
		Active:       true,
	}
	require.NoError(t, store.Store(ctx, &member))

	got, ok, err := store.Get(ctx, member.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, got.MemberSince)
	assert.True(t, since.Equal(*got.MemberSince))
	got.MemberSince = member.MemberSince
	assert.Equal(t, member, got)

	rows := storetest.Collect(t, store.Find(ctx, 0, 10, "LOCALHOST"))
	require.Len(t, rows, 1)
	assert.Equal(t, member.ID, rows[0].ID)
}

func TestEventDatesSortAsText(t *testing.T) {
	early := time.Date(2021, time.October, 1, 18, 0, 0, 0, time.UTC)
	late := early.Add(500 * time.Millisecond)
	assert.Less(t, formatTime(&early, timestampLayout), formatTime(&late, timestampLayout))
}

func TestAuditRepositoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewAuditRepository(openTestDB(t))
	base := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	for i, action := range []string{"sponsor.create", "sponsor.update", "sponsor.delete"} {
		require.NoError(t, repo.AppendAuditLog(ctx, ports.AuditLog{
			AuditID:    action,
			ActorID:    "admin",
			Action:     action,
			TargetKind: "sponsor",
			TargetID:   1,
			OccurredAt: base.Add(time.Duration(i) * time.Second),
			RequestID:  "req-1",
		}))
	}

	rows, err := repo.ListRecentAuditLogs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "sponsor.delete", rows[0].Action)
	assert.Equal(t, "sponsor.update", rows[1].Action)
	assert.True(t, base.Add(2*time.Second).Equal(rows[0].OccurredAt))
}

func TestFoldLowercasesUnicode(t *testing.T) {
	var folded string
	err := openTestDB(t).QueryRowContext(context.Background(), "SELECT komunumo_fold(?)", "ÖKK Zürich").Scan(&folded)
	require.NoError(t, err)
	assert.Equal(t, "ökk zürich", folded)
}

func TestLikeClauseEscapesWildcards(t *testing.T) {
	clause, args := likeClause([]string{"name", "website"}, `  50%_Off\ `)
	assert.Equal(t, `(komunumo_fold(name) LIKE ? ESCAPE '\' OR komunumo_fold(website) LIKE ? ESCAPE '\')`, clause)
	assert.Equal(t, []any{`%50\%\_off\\%`, `%50\%\_off\\%`}, args)

	clause, args = likeClause([]string{"name"}, "  ")
	assert.Empty(t, clause)
	assert.Nil(t, args)
}
