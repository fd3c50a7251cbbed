// Package storetest holds the behaviour every ports.RecordStore backend must
// share. Backends call RunSponsorSuite and RunSearchSuites from their own
// tests.
package storetest

import (
	"context"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	domainerrors "komunumo/contexts/internal-ops/admin-console-service/domain/errors"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
)

// Collect drains seq and fails the test on the first error.
func Collect[E any](t *testing.T, seq iter.Seq2[E, error]) []E {
	t.Helper()
	var out []E
	for row, err := range seq {
		require.NoError(t, err)
		out = append(out, row)
	}
	return out
}

// FirstError drains seq and returns the first error it yields.
func FirstError[E any](seq iter.Seq2[E, error]) error {
	for _, err := range seq {
		if err != nil {
			return err
		}
	}
	return nil
}

func names(rows []entities.Sponsor) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Name)
	}
	return out
}

func storeNamed(t *testing.T, store ports.RecordStore[entities.Sponsor], names ...string) []entities.Sponsor {
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

func date(year int, month time.Month, day int) *time.Time {
	value := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &value
}

// RunSponsorSuite exercises the record store contract against a fresh, empty
// sponsor store returned by open for every subtest.
func RunSponsorSuite(t *testing.T, open func(t *testing.T) ports.RecordStore[entities.Sponsor]) {
	ctx := context.Background()

	t.Run("new record has defaults", func(t *testing.T) {
		store := open(t)
		sponsor := store.NewRecord()
		assert.Zero(t, sponsor.ID)
		assert.Empty(t, sponsor.Name)
		assert.Empty(t, sponsor.Level)
		assert.Nil(t, sponsor.ValidFrom)
		assert.Nil(t, sponsor.ValidTo)
	})

	t.Run("stored record is listed", func(t *testing.T) {
		store := open(t)
		sponsor := store.NewRecord()
		sponsor.Name = "Acme"
		require.NoError(t, store.Store(ctx, &sponsor))
		assert.NotZero(t, sponsor.ID)

		rows := Collect(t, store.Find(ctx, 0, 10, ""))
		require.Len(t, rows, 1)
		assert.Equal(t, "Acme", rows[0].Name)
	})

	t.Run("filter matches case-insensitive substrings", func(t *testing.T) {
		store := open(t)
		storeNamed(t, store, "Acme", "Beta")

		assert.Equal(t, []string{"Beta"}, names(Collect(t, store.Find(ctx, 0, 10, "be"))))
		assert.Equal(t, []string{"Acme"}, names(Collect(t, store.Find(ctx, 0, 10, "ACM"))))
		assert.Empty(t, Collect(t, store.Find(ctx, 0, 10, "zeta")))
	})

	t.Run("filter folds non-ascii letters", func(t *testing.T) {
		store := open(t)
		storeNamed(t, store, "ÖKK Zürich", "Okay AG")

		assert.Equal(t, []string{"ÖKK Zürich"}, names(Collect(t, store.Find(ctx, 0, 10, "ökk"))))
		assert.Equal(t, []string{"ÖKK Zürich"}, names(Collect(t, store.Find(ctx, 0, 10, "ZÜR"))))
	})

	t.Run("blank filter lists everything", func(t *testing.T) {
		store := open(t)
		storeNamed(t, store, "Acme", "Beta")
		assert.Len(t, Collect(t, store.Find(ctx, 0, 10, "   ")), 2)
	})

	t.Run("like wildcards in the filter are literal", func(t *testing.T) {
		store := open(t)
		storeNamed(t, store, "100% Fun", "1000 Fun", "a_b", "axb", `back\slash`)

		assert.Equal(t, []string{"100% Fun"}, names(Collect(t, store.Find(ctx, 0, 10, "0%"))))
		assert.Equal(t, []string{"a_b"}, names(Collect(t, store.Find(ctx, 0, 10, "a_b"))))
		assert.Equal(t, []string{`back\slash`}, names(Collect(t, store.Find(ctx, 0, 10, `k\s`))))
	})

	t.Run("pages follow ascending id order", func(t *testing.T) {
		store := open(t)
		stored := storeNamed(t, store, "one", "two", "three", "four", "five")

		all := Collect(t, store.Find(ctx, 0, len(stored)+5, ""))
		require.Len(t, all, len(stored))
		for i := 1; i < len(all); i++ {
			assert.Less(t, all[i-1].ID, all[i].ID)
		}

		page := Collect(t, store.Find(ctx, 1, 2, ""))
		assert.Equal(t, []string{"two", "three"}, names(page))

		assert.Empty(t, Collect(t, store.Find(ctx, 10, 2, "")))
	})

	t.Run("paging applies after filtering", func(t *testing.T) {
		store := open(t)
		storeNamed(t, store, "alpha", "bravo", "alpine", "charlie", "alps")

		assert.Equal(t, []string{"alpine", "alps"}, names(Collect(t, store.Find(ctx, 1, 5, "al"))))
		assert.Equal(t, []string{"alpha"}, names(Collect(t, store.Find(ctx, 0, 1, "al"))))
	})

	t.Run("invalid page bounds are rejected", func(t *testing.T) {
		store := open(t)
		storeNamed(t, store, "Acme")

		assert.ErrorIs(t, FirstError(store.Find(ctx, -1, 10, "")), domainerrors.ErrInvalidPage)
		assert.ErrorIs(t, FirstError(store.Find(ctx, 0, 0, "")), domainerrors.ErrInvalidPage)
		assert.ErrorIs(t, FirstError(store.Find(ctx, 0, -3, "")), domainerrors.ErrInvalidPage)
	})

	t.Run("sequence is lazy and restartable", func(t *testing.T) {
		store := open(t)
		storeNamed(t, store, "Acme")

		seq := store.Find(ctx, 0, 10, "")
		assert.Len(t, Collect(t, seq), 1)

		storeNamed(t, store, "Beta")
		assert.Equal(t, []string{"Acme", "Beta"}, names(Collect(t, seq)))
	})

	t.Run("stopping early is allowed", func(t *testing.T) {
		store := open(t)
		storeNamed(t, store, "one", "two", "three")

		var seen []string
		for row, err := range store.Find(ctx, 0, 10, "") {
			require.NoError(t, err)
			seen = append(seen, row.Name)
			break
		}
		assert.Equal(t, []string{"one"}, seen)

		// the store stays usable after an abandoned pass
		assert.Len(t, Collect(t, store.Find(ctx, 0, 10, "")), 3)
	})

	t.Run("round trip keeps every field", func(t *testing.T) {
		store := open(t)
		sponsor := store.NewRecord()
		sponsor.Name = "mimacom ag"
		sponsor.Website = "https://www.mimacom.com/"
		sponsor.Logo = "https://www.mimacom.com/logo.svg"
		sponsor.Level = entities.SponsorLevelPlatin
		sponsor.ValidFrom = date(2000, time.January, 1)
		sponsor.ValidTo = date(2099, time.December, 31)
		require.NoError(t, store.Store(ctx, &sponsor))

		got, ok, err := store.Get(ctx, sponsor.ID)
		require.NoError(t, err)
		require.True(t, ok)
		AssertSponsorEqual(t, sponsor, got)
	})

	t.Run("text is stored as given", func(t *testing.T) {
		store := open(t)
		sponsor := store.NewRecord()
		sponsor.Name = "  Acme  "
		sponsor.Website = " https://acme.example/ "
		require.NoError(t, store.Store(ctx, &sponsor))

		got, ok, err := store.Get(ctx, sponsor.ID)
		require.NoError(t, err)
		require.True(t, ok)
		AssertSponsorEqual(t, sponsor, got)
	})

	t.Run("update keeps id and overwrites fields", func(t *testing.T) {
		store := open(t)
		sponsor := storeNamed(t, store, "Acme")[0]
		id := sponsor.ID

		sponsor.Name = "Acme Corp"
		sponsor.Level = entities.SponsorLevelGold
		sponsor.ValidFrom = date(2024, time.March, 1)
		require.NoError(t, store.Store(ctx, &sponsor))
		assert.Equal(t, id, sponsor.ID)

		sponsor.ValidFrom = nil
		sponsor.Website = ""
		require.NoError(t, store.Store(ctx, &sponsor))

		got, ok, err := store.Get(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
		AssertSponsorEqual(t, sponsor, got)
		assert.Len(t, Collect(t, store.Find(ctx, 0, 10, "")), 1)
	})

	t.Run("identifiers are never reused", func(t *testing.T) {
		store := open(t)
		stored := storeNamed(t, store, "one", "two")
		require.NoError(t, store.Delete(ctx, stored[1]))

		next := storeNamed(t, store, "three")[0]
		assert.Greater(t, next.ID, stored[1].ID)
	})

	t.Run("get on unknown id is absent without error", func(t *testing.T) {
		store := open(t)
		_, ok, err := store.Get(ctx, 4711)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("deleted record is absent", func(t *testing.T) {
		store := open(t)
		sponsor := storeNamed(t, store, "Acme")[0]

		require.NoError(t, store.Delete(ctx, sponsor))
		_, ok, err := store.Get(ctx, sponsor.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		// deleting twice is a no-op
		require.NoError(t, store.Delete(ctx, sponsor))
	})

	t.Run("delete without id is a caller error", func(t *testing.T) {
		store := open(t)
		assert.ErrorIs(t, store.Delete(ctx, store.NewRecord()), domainerrors.ErrUnidentified)
	})

	t.Run("update of a vanished record fails", func(t *testing.T) {
		store := open(t)
		sponsor := storeNamed(t, store, "Acme")[0]
		require.NoError(t, store.Delete(ctx, sponsor))

		sponsor.Name = "Ghost"
		assert.ErrorIs(t, store.Store(ctx, &sponsor), domainerrors.ErrRecordGone)
		assert.Empty(t, Collect(t, store.Find(ctx, 0, 10, "")))
	})
}

// SearchStores opens fresh, empty stores for the kinds whose filter spans
// several columns.
type SearchStores struct {
	Speakers func(t *testing.T) ports.RecordStore[entities.Speaker]
	Events   func(t *testing.T) ports.RecordStore[entities.Event]
	Members  func(t *testing.T) ports.RecordStore[entities.Member]
}

// RunSearchSuites checks that every searchable column of speakers, events
// and members takes part in filtering, and that the other columns do not.
func RunSearchSuites(t *testing.T, open SearchStores) {
	ctx := context.Background()

	t.Run("speaker", func(t *testing.T) {
		store := open.Speakers(t)
		for _, speaker := range []entities.Speaker{
			{FirstName: "John", LastName: "Doe", Company: "Acme", Email: "john@globex.example"},
			{FirstName: "Jane", LastName: "Roe", Company: "Globex", Bio: "Speaks about Acme"},
		} {
			require.NoError(t, store.Store(ctx, &speaker))
		}

		assert.Equal(t, []string{"John Doe"}, displayNames(Collect(t, store.Find(ctx, 0, 10, "joh"))))
		assert.Equal(t, []string{"Jane Roe"}, displayNames(Collect(t, store.Find(ctx, 0, 10, "ROE"))))
		assert.Equal(t, []string{"John Doe"}, displayNames(Collect(t, store.Find(ctx, 0, 10, "acme"))))
		assert.Equal(t, []string{"Jane Roe"}, displayNames(Collect(t, store.Find(ctx, 0, 10, "globex"))))
		assert.Len(t, Collect(t, store.Find(ctx, 0, 10, "j")), 2)
	})

	t.Run("event", func(t *testing.T) {
		store := open.Events(t)
		for _, event := range []entities.Event{
			{Title: "Testevent One", Subtitle: "Kubernetes", Location: "Zürich"},
			{Title: "Testevent Two", Subtitle: "Go", Abstract: "Kubernetes operators"},
		} {
			require.NoError(t, store.Store(ctx, &event))
		}

		assert.Equal(t, []string{"Testevent One"}, displayNames(Collect(t, store.Find(ctx, 0, 10, "kubern"))))
		assert.Equal(t, []string{"Testevent Two"}, displayNames(Collect(t, store.Find(ctx, 0, 10, "TWO"))))
		assert.Empty(t, Collect(t, store.Find(ctx, 0, 10, "zürich")))
		assert.Len(t, Collect(t, store.Find(ctx, 0, 10, "testevent")), 2)
	})

	t.Run("member", func(t *testing.T) {
		store := open.Members(t)
		for _, member := range []entities.Member{
			{FirstName: "Jane", LastName: "Doe", Email: "Jane.Doe@Example.com", City: "Basel"},
			{FirstName: "Max", LastName: "Basel", Email: "max@komunumo.example"},
		} {
			require.NoError(t, store.Store(ctx, &member))
		}

		assert.Equal(t, []string{"Jane Doe"}, displayNames(Collect(t, store.Find(ctx, 0, 10, "jane.doe@"))))
		assert.Equal(t, []string{"Max Basel"}, displayNames(Collect(t, store.Find(ctx, 0, 10, "basel"))))
		assert.Equal(t, []string{"Max Basel"}, displayNames(Collect(t, store.Find(ctx, 0, 10, "KOMUNUMO"))))

		rows := Collect(t, store.Find(ctx, 0, 10, "doe"))
		require.Len(t, rows, 1)
		assert.Equal(t, "Jane.Doe@Example.com", rows[0].Email)
	})
}

func displayNames[E entities.Record](rows []E) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.DisplayName())
	}
	return out
}

// AssertSponsorEqual compares sponsors field by field, dates by instant.
func AssertSponsorEqual(t *testing.T, want, got entities.Sponsor) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Website, got.Website)
	assert.Equal(t, want.Logo, got.Logo)
	assert.Equal(t, want.Level, got.Level)
	assertSameInstant(t, want.ValidFrom, got.ValidFrom)
	assertSameInstant(t, want.ValidTo, got.ValidTo)
}

func assertSameInstant(t *testing.T, want, got *time.Time) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got), "want %s, got %s", want, got)
}
