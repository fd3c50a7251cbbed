// Package sqliteadapter stores console records in SQLite through database/sql
// and the pure Go modernc driver. SQL is built once per table from its column
// list and always bound with placeholders.
package sqliteadapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	domainerrors "komunumo/contexts/internal-ops/admin-console-service/domain/errors"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// table maps one entity type onto a SQLite table. columns excludes id and
// matches the order of values and of scan after the id.
type table[E entities.Record] struct {
	name          string
	columns       []string
	searchColumns []string
	newRecord     func() E
	values        func(E) []any
	scan          func(rowScanner) (E, error)
}

type RecordStore[E entities.Record, P entities.RecordPtr[E]] struct {
	db     *sql.DB
	table  table[E]
	logger *slog.Logger

	selectSQL string
	insertSQL string
	updateSQL string
	deleteSQL string
}

func newRecordStore[E entities.Record, P entities.RecordPtr[E]](db *sql.DB, t table[E], logger *slog.Logger) *RecordStore[E, P] {
	if logger == nil {
		logger = slog.Default()
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", ")
	assignments := make([]string, 0, len(t.columns))
	for _, column := range t.columns {
		assignments = append(assignments, column+" = ?")
	}
	return &RecordStore[E, P]{
		db:        db,
		table:     t,
		logger:    logger,
		selectSQL: fmt.Sprintf("SELECT id, %s FROM %s", strings.Join(t.columns, ", "), t.name),
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, strings.Join(t.columns, ", "), placeholders),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.name, strings.Join(assignments, ", ")),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.name),
	}
}

func (s *RecordStore[E, P]) NewRecord() E {
	return s.table.newRecord()
}

func (s *RecordStore[E, P]) Get(ctx context.Context, id int64) (E, bool, error) {
	row := s.db.QueryRowContext(ctx, s.selectSQL+" WHERE id = ?", id)
	record, err := s.table.scan(row)
	if err != nil {
		var zero E
		if errors.Is(err, sql.ErrNoRows) {
			return zero, false, nil
		}
		return zero, false, classify(err)
	}
	return record, true, nil
}

func (s *RecordStore[E, P]) Find(ctx context.Context, offset, limit int, filter string) iter.Seq2[E, error] {
	return func(yield func(E, error) bool) {
		var zero E
		if offset < 0 || limit <= 0 {
			yield(zero, domainerrors.ErrInvalidPage)
			return
		}
		query := s.selectSQL
		var args []any
		if clause, clauseArgs := likeClause(s.table.searchColumns, filter); clause != "" {
			query += " WHERE " + clause
			args = clauseArgs
		}
		query += " ORDER BY id ASC LIMIT ? OFFSET ?"
		args = append(args, limit, offset)

		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(zero, classify(err))
			return
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			record, err := s.table.scan(rows)
			if err != nil {
				yield(zero, classify(err))
				return
			}
			if !yield(record, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, classify(err))
		}
	}
}

func (s *RecordStore[E, P]) Store(ctx context.Context, record *E) error {
	values := s.table.values(*record)
	id := (*record).RecordID()
	if id == 0 {
		result, err := s.db.ExecContext(ctx, s.insertSQL, values...)
		if err != nil {
			return classify(err)
		}
		newID, err := result.LastInsertId()
		if err != nil {
			return classify(err)
		}
		P(record).SetRecordID(newID)
		s.logger.Debug("record inserted",
			"event", "record_inserted",
			"module", "internal-ops/admin-console-service",
			"layer", "adapter",
			"kind", (*record).RecordKind(),
			"record_id", newID,
		)
		return nil
	}

	result, err := s.db.ExecContext(ctx, s.updateSQL, append(values, id)...)
	if err != nil {
		return classify(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return classify(err)
	}
	if affected == 0 {
		return domainerrors.ErrRecordGone
	}
	return nil
}

func (s *RecordStore[E, P]) Delete(ctx context.Context, record E) error {
	id := record.RecordID()
	if id == 0 {
		return domainerrors.ErrUnidentified
	}
	if _, err := s.db.ExecContext(ctx, s.deleteSQL, id); err != nil {
		return classify(err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likeClause(columns []string, filter string) (string, []any) {
	filter = strings.TrimSpace(filter)
	if filter == "" || len(columns) == 0 {
		return "", nil
	}
	pattern := "%" + strings.ToLower(likeEscaper.Replace(filter)) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, foldFunction+"("+column+`) LIKE ? ESCAPE '\'`)
		args = append(args, pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return domainerrors.Validation(err)
	}
	return domainerrors.Storage(err)
}
