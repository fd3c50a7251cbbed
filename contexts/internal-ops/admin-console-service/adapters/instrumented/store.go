// Package instrumented decorates record stores with operation metrics.
package instrumented

import (
	"context"
	"iter"
	"time"

	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
)

type Store[E entities.Record] struct {
	next     ports.RecordStore[E]
	kind     string
	recorder ports.MetricsRecorder
}

var _ ports.RecordStore[entities.Sponsor] = (*Store[entities.Sponsor])(nil)

func Wrap[E entities.Record](next ports.RecordStore[E], recorder ports.MetricsRecorder) ports.RecordStore[E] {
	if recorder == nil {
		return next
	}
	return &Store[E]{next: next, kind: next.NewRecord().RecordKind(), recorder: recorder}
}

func (s *Store[E]) observe(ctx context.Context, operation string, started time.Time, err error) {
	s.recorder.Observe(ctx, s.kind, operation, err, time.Since(started))
}

func (s *Store[E]) NewRecord() E {
	return s.next.NewRecord()
}

func (s *Store[E]) Get(ctx context.Context, id int64) (E, bool, error) {
	started := time.Now()
	record, ok, err := s.next.Get(ctx, id)
	s.observe(ctx, "get", started, err)
	return record, ok, err
}

// Find observes one sample per pass over the sequence, not per call.
func (s *Store[E]) Find(ctx context.Context, offset, limit int, filter string) iter.Seq2[E, error] {
	seq := s.next.Find(ctx, offset, limit, filter)
	return func(yield func(E, error) bool) {
		started := time.Now()
		var failure error
		for record, err := range seq {
			if err != nil {
				failure = err
			}
			if !yield(record, err) {
				break
			}
		}
		s.observe(ctx, "find", started, failure)
	}
}

func (s *Store[E]) Store(ctx context.Context, record *E) error {
	started := time.Now()
	err := s.next.Store(ctx, record)
	s.observe(ctx, "store", started, err)
	return err
}

func (s *Store[E]) Delete(ctx context.Context, record E) error {
	started := time.Now()
	err := s.next.Delete(ctx, record)
	s.observe(ctx, "delete", started, err)
	return err
}
