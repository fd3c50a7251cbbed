package application

import (
	"context"
	"iter"
	"log/slog"

	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Query is the listing state a UI shell carries between requests.
type Query struct {
	Filter string
	Offset int
	Limit  int
}

// ListingController bridges pagination and filter requests to a RecordStore.
type ListingController[E entities.Record] struct {
	Records ports.RecordStore[E]
	Logger  *slog.Logger
}

func (c ListingController[E]) List(ctx context.Context, q Query) iter.Seq2[E, error] {
	return c.Records.Find(ctx, q.Offset, q.Limit, q.Filter)
}

// SetFilter replaces the filter and leaves the offset alone. Rewinding to the
// first page is up to the caller.
func (c ListingController[E]) SetFilter(q Query, text string) Query {
	q.Filter = text
	return q
}

// Collect drains one listing into a slice.
func (c ListingController[E]) Collect(ctx context.Context, q Query) ([]E, error) {
	rows := make([]E, 0, max(q.Limit, 0))
	for row, err := range c.List(ctx, q) {
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	ResolveLogger(c.Logger).Debug("records listed",
		"event", "records_listed",
		"module", "internal-ops/admin-console-service",
		"layer", "application",
		"offset", q.Offset,
		"limit", q.Limit,
		"filter", q.Filter,
		"count", len(rows),
	)
	return rows, nil
}

// View holds the rows one operator is looking at. It satisfies
// ports.Refresher so dialog flows can signal it after a mutation.
type View[E entities.Record] struct {
	controller ListingController[E]
	query      Query
	rows       []E
	current    bool
}

// NewView starts a view positioned at q without querying the store.
func NewView[E entities.Record](controller ListingController[E], q Query) *View[E] {
	return &View[E]{controller: controller, query: q}
}

// Load lists q and remembers it as the request Refresh repeats.
func (v *View[E]) Load(ctx context.Context, q Query) ([]E, error) {
	v.query = q
	rows, err := v.controller.Collect(ctx, q)
	v.current = err == nil
	if err != nil {
		return nil, err
	}
	v.rows = rows
	return rows, nil
}

// SetFilter changes the filter and lists again from the first page.
func (v *View[E]) SetFilter(ctx context.Context, text string) ([]E, error) {
	q := v.controller.SetFilter(v.query, text)
	q.Offset = 0
	return v.Load(ctx, q)
}

// Refresh repeats the last listing request against the store.
func (v *View[E]) Refresh(ctx context.Context) error {
	_, err := v.Load(ctx, v.query)
	return err
}

func (v *View[E]) Query() Query { return v.query }

func (v *View[E]) Rows() []E { return v.rows }

// Current reports whether the most recent Load or Refresh succeeded. Rows
// from an earlier pass may be stale when it did not.
func (v *View[E]) Current() bool { return v.current }
