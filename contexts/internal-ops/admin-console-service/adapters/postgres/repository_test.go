package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"komunumo/contexts/internal-ops/admin-console-service/adapters/storetest"
	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	domainerrors "komunumo/contexts/internal-ops/admin-console-service/domain/errors"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
	"komunumo/internal/platform/db"
)

func TestClassifyConstraintViolations(t *testing.T) {
	for _, code := range []string{"23502", "23503", "23505", "23514", "22001"} {
		err := fmt.Errorf("insert sponsor: %w", &pgconn.PgError{Code: code, Message: "violation"})
		classified := classify(err)
		assert.ErrorIs(t, classified, domainerrors.ErrValidation, code)
		assert.NotErrorIs(t, classified, domainerrors.ErrStorage, code)

		var pgErr *pgconn.PgError
		assert.True(t, errors.As(classified, &pgErr), "cause stays inspectable")
	}
}

func TestClassifyOtherFailuresAsStorage(t *testing.T) {
	assert.NoError(t, classify(nil))
	assert.ErrorIs(t, classify(errors.New("connection refused")), domainerrors.ErrStorage)
	assert.ErrorIs(t, classify(&pgconn.PgError{Code: "57P01"}), domainerrors.ErrStorage)
}

func TestLikeClause(t *testing.T) {
	clause, args := likeClause([]string{"first_name", "last_name"}, "ILIKE", " Doe_1 ")
	assert.Equal(t, `(first_name ILIKE ? ESCAPE '\' OR last_name ILIKE ? ESCAPE '\')`, clause)
	assert.Equal(t, []any{`%Doe\_1%`, `%Doe\_1%`}, args)

	clause, args = likeClause(nil, "ILIKE", "doe")
	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \\ a\_b`, escapeLike(`100% \ a_b`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

// TestRepositoryContract runs against a live database when
// KOMUNUMO_TEST_POSTGRES_DSN is set.
func TestRepositoryContract(t *testing.T) {
	dsn := os.Getenv("KOMUNUMO_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("KOMUNUMO_TEST_POSTGRES_DSN not set")
	}
	pg, err := db.Connect(dsn, db.PostgresOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Close() })
	require.NoError(t, EnsureSchema(context.Background(), pg.DB))

	storetest.RunSponsorSuite(t, func(t *testing.T) ports.RecordStore[entities.Sponsor] {
		require.NoError(t, pg.DB.Exec("TRUNCATE sponsor").Error)
		return NewSponsorRepository(pg.DB, nil)
	})

	storetest.RunSearchSuites(t, storetest.SearchStores{
		Speakers: func(t *testing.T) ports.RecordStore[entities.Speaker] {
			require.NoError(t, pg.DB.Exec("TRUNCATE speaker CASCADE").Error)
			return NewSpeakerRepository(pg.DB, nil)
		},
		Events: func(t *testing.T) ports.RecordStore[entities.Event] {
			require.NoError(t, pg.DB.Exec("TRUNCATE event CASCADE").Error)
			return NewEventRepository(pg.DB, nil)
		},
		Members: func(t *testing.T) ports.RecordStore[entities.Member] {
			require.NoError(t, pg.DB.Exec("TRUNCATE member").Error)
			return NewMemberRepository(pg.DB, nil)
		},
	})
}
