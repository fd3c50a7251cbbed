package memory

import (
	"context"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"

	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	domainerrors "komunumo/contexts/internal-ops/admin-console-service/domain/errors"
)

// RecordStore is a map-backed ports.RecordStore. Identifiers come from a
// counter and are never reused, even after deletes.
type RecordStore[E entities.Record, P entities.RecordPtr[E]] struct {
	mu        sync.Mutex
	rows      map[int64]E
	lastID    int64
	newRecord func() E
}

func NewRecordStore[E entities.Record, P entities.RecordPtr[E]](newRecord func() E) *RecordStore[E, P] {
	return &RecordStore[E, P]{
		rows:      map[int64]E{},
		newRecord: newRecord,
	}
}

func (s *RecordStore[E, P]) NewRecord() E {
	return s.newRecord()
}

func (s *RecordStore[E, P]) Get(_ context.Context, id int64) (E, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	return row, ok, nil
}

func (s *RecordStore[E, P]) Find(_ context.Context, offset, limit int, filter string) iter.Seq2[E, error] {
	return func(yield func(E, error) bool) {
		if offset < 0 || limit <= 0 {
			var zero E
			yield(zero, domainerrors.ErrInvalidPage)
			return
		}
		needle := strings.ToLower(strings.TrimSpace(filter))

		s.mu.Lock()
		ids := slices.Sorted(maps.Keys(s.rows))
		matched := make([]E, 0, min(limit, len(ids)))
		skipped := 0
		for _, id := range ids {
			if len(matched) == limit {
				break
			}
			row := s.rows[id]
			if !matches(row, needle) {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			matched = append(matched, row)
		}
		s.mu.Unlock()

		for _, row := range matched {
			if !yield(row, nil) {
				return
			}
		}
	}
}

func matches(row entities.Record, needle string) bool {
	fields := row.SearchableText()
	if needle == "" || len(fields) == 0 {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (s *RecordStore[E, P]) Store(_ context.Context, record *E) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := (*record).RecordID()
	if id == 0 {
		s.lastID++
		P(record).SetRecordID(s.lastID)
		s.rows[s.lastID] = *record
		return nil
	}
	if _, ok := s.rows[id]; !ok {
		return domainerrors.ErrRecordGone
	}
	s.rows[id] = *record
	return nil
}

func (s *RecordStore[E, P]) Delete(_ context.Context, record E) error {
	id := record.RecordID()
	if id == 0 {
		return domainerrors.ErrUnidentified
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

// Len reports how many records are held.
func (s *RecordStore[E, P]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
