package postgresadapter

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	domainerrors "komunumo/contexts/internal-ops/admin-console-service/domain/errors"
)

// table describes how one entity type maps onto its gorm model.
type table[E entities.Record, M any] struct {
	searchColumns []string
	newRecord     func() E
	toModel       func(E) M
	toEntity      func(M) E
}

// Repository is a gorm-backed ports.RecordStore for one entity type.
type Repository[E entities.Record, M any] struct {
	db     *gorm.DB
	table  table[E, M]
	logger *slog.Logger
}

func newRepository[E entities.Record, M any](db *gorm.DB, t table[E, M], logger *slog.Logger) *Repository[E, M] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository[E, M]{db: db, table: t, logger: logger}
}

func (r *Repository[E, M]) NewRecord() E {
	return r.table.newRecord()
}

func (r *Repository[E, M]) Get(ctx context.Context, id int64) (E, bool, error) {
	var row M
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		var zero E
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, false, nil
		}
		return zero, false, classify(err)
	}
	return r.table.toEntity(row), true, nil
}

func (r *Repository[E, M]) Find(ctx context.Context, offset, limit int, filter string) iter.Seq2[E, error] {
	return func(yield func(E, error) bool) {
		var zero E
		if offset < 0 || limit <= 0 {
			yield(zero, domainerrors.ErrInvalidPage)
			return
		}
		tx := r.db.WithContext(ctx).Model(new(M))
		if clause, args := likeClause(r.table.searchColumns, "ILIKE", filter); clause != "" {
			tx = tx.Where(clause, args...)
		}
		rows, err := tx.Order("id ASC").Offset(offset).Limit(limit).Rows()
		if err != nil {
			yield(zero, classify(err))
			return
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var row M
			if err := r.db.ScanRows(rows, &row); err != nil {
				yield(zero, classify(err))
				return
			}
			if !yield(r.table.toEntity(row), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, classify(err))
		}
	}
}

func (r *Repository[E, M]) Store(ctx context.Context, record *E) error {
	row := r.table.toModel(*record)
	id := (*record).RecordID()
	if id == 0 {
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return classify(err)
		}
		*record = r.table.toEntity(row)
		r.logger.Debug("record inserted",
			"event", "record_inserted",
			"module", "internal-ops/admin-console-service",
			"layer", "adapter",
			"kind", (*record).RecordKind(),
			"record_id", (*record).RecordID(),
		)
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(new(M)).
		Where("id = ?", id).
		Select("*").
		Omit("id").
		Updates(&row)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRecordGone
	}
	return nil
}

func (r *Repository[E, M]) Delete(ctx context.Context, record E) error {
	id := record.RecordID()
	if id == 0 {
		return domainerrors.ErrUnidentified
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(M)).Error; err != nil {
		return classify(err)
	}
	return nil
}

// likeClause builds "(a OP ? ESCAPE '\' OR b OP ? ESCAPE '\')" for a
// case-insensitive substring match. A blank filter yields no clause.
func likeClause(columns []string, op string, filter string) (string, []any) {
	filter = strings.TrimSpace(filter)
	if filter == "" || len(columns) == 0 {
		return "", nil
	}
	pattern := "%" + escapeLike(filter) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, column+" "+op+` ? ESCAPE '\'`)
		args = append(args, pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if isConstraintViolation(err) {
		return domainerrors.Validation(err)
	}
	return domainerrors.Storage(err)
}

func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "23502", "23503", "23505", "23514", "22001":
		return true
	default:
		return false
	}
}
