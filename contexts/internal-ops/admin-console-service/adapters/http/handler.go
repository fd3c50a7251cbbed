package http

import (
	"context"
	"log/slog"
	"time"

	"komunumo/contexts/internal-ops/admin-console-service/application"
	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
	httptransport "komunumo/contexts/internal-ops/admin-console-service/transport/http"
)

// RecordRequest is a decoded create or edit form for entity E.
type RecordRequest[E entities.Record] interface {
	ApplyTo(record *E) error
}

// Caller identifies who triggered a request.
type Caller struct {
	ActorID   string
	RequestID string
}

// Resource serves the listing and dialog operations of one entity type.
type Resource[E entities.Record, Req RecordRequest[E], Resp any] struct {
	Records    ports.RecordStore[E]
	Audit      application.AdminActionRecorder
	ToResponse func(E) Resp
	Logger     *slog.Logger
}

func (h Resource[E, Req, Resp]) Kind() string {
	return h.Records.NewRecord().RecordKind()
}

func (h Resource[E, Req, Resp]) controller() application.ListingController[E] {
	return application.ListingController[E]{Records: h.Records, Logger: h.Logger}
}

func (h Resource[E, Req, Resp]) flow(caller Caller, view ports.Refresher) application.DialogFlow[E] {
	return application.DialogFlow[E]{
		Records:   h.Records,
		Refresh:   view,
		Audit:     h.Audit,
		ActorID:   caller.ActorID,
		RequestID: caller.RequestID,
		Logger:    h.Logger,
	}
}

func (h Resource[E, Req, Resp]) view(req httptransport.ListRequest) *application.View[E] {
	return application.NewView(h.controller(), normalizeQuery(req))
}

func normalizeQuery(req httptransport.ListRequest) application.Query {
	limit := req.Limit
	if limit == 0 {
		limit = application.DefaultPageSize
	}
	if limit > application.MaxPageSize {
		limit = application.MaxPageSize
	}
	return application.Query{Filter: req.Filter, Offset: req.Offset, Limit: limit}
}

func (h Resource[E, Req, Resp]) listing(view *application.View[E]) httptransport.ListResponse[Resp] {
	q := view.Query()
	rows := view.Rows()
	items := make([]Resp, 0, len(rows))
	for _, row := range rows {
		items = append(items, h.ToResponse(row))
	}
	return httptransport.ListResponse[Resp]{Items: items, Offset: q.Offset, Limit: q.Limit, Filter: q.Filter}
}

func (h Resource[E, Req, Resp]) ListHandler(ctx context.Context, req httptransport.ListRequest) (httptransport.ListResponse[Resp], error) {
	view := h.view(req)
	if err := view.Refresh(ctx); err != nil {
		return httptransport.ListResponse[Resp]{}, err
	}
	return h.listing(view), nil
}

// NewHandler returns the blank record a create dialog starts from.
func (h Resource[E, Req, Resp]) NewHandler() httptransport.RecordResponse[Resp] {
	session := h.flow(Caller{}, nil).BeginCreate()
	defer session.Cancel()
	return httptransport.RecordResponse[Resp]{Record: h.ToResponse(session.Record)}
}

// OpenHandler reports false when the record does not exist anymore.
func (h Resource[E, Req, Resp]) OpenHandler(ctx context.Context, id int64) (httptransport.RecordResponse[Resp], bool, error) {
	session, ok, err := h.flow(Caller{}, nil).BeginEdit(ctx, id)
	if err != nil || !ok {
		return httptransport.RecordResponse[Resp]{}, ok, err
	}
	defer session.Cancel()
	return httptransport.RecordResponse[Resp]{Record: h.ToResponse(session.Record)}, true, nil
}

func (h Resource[E, Req, Resp]) CreateHandler(
	ctx context.Context,
	caller Caller,
	req Req,
	list httptransport.ListRequest,
) (httptransport.MutationResponse[Resp], error) {
	view := h.view(list)
	session := h.flow(caller, view).BeginCreate()
	return h.commit(ctx, session, req, view)
}

func (h Resource[E, Req, Resp]) UpdateHandler(
	ctx context.Context,
	caller Caller,
	id int64,
	req Req,
	list httptransport.ListRequest,
) (httptransport.MutationResponse[Resp], bool, error) {
	view := h.view(list)
	session, ok, err := h.flow(caller, view).BeginEdit(ctx, id)
	if err != nil || !ok {
		return httptransport.MutationResponse[Resp]{}, ok, err
	}
	resp, err := h.commit(ctx, session, req, view)
	return resp, true, err
}

func (h Resource[E, Req, Resp]) commit(
	ctx context.Context,
	session *application.EditSession[E],
	req Req,
	view *application.View[E],
) (httptransport.MutationResponse[Resp], error) {
	if err := req.ApplyTo(&session.Record); err != nil {
		session.Cancel()
		return httptransport.MutationResponse[Resp]{}, err
	}
	outcome, err := session.Commit(ctx)
	if outcome != application.OutcomeCommitted {
		session.Cancel()
		return httptransport.MutationResponse[Resp]{}, err
	}
	resp := httptransport.MutationResponse[Resp]{
		Outcome: string(outcome),
		Record:  h.ToResponse(session.Record),
	}
	resp.Listing, resp.FollowUpError = h.afterMutation(view, session.Record.RecordID(), err)
	return resp, nil
}

// afterMutation reports the refreshed listing, or no listing when the view
// could not be refreshed. Follow-up failures never undo the mutation.
func (h Resource[E, Req, Resp]) afterMutation(
	view *application.View[E],
	id int64,
	err error,
) (*httptransport.ListResponse[Resp], string) {
	var followUp string
	if err != nil {
		followUp = err.Error()
		application.ResolveLogger(h.Logger).Warn("record mutated with follow-up errors",
			"event", "record_mutation_followup_failed",
			"module", "internal-ops/admin-console-service",
			"layer", "adapter",
			"record_id", id,
			"error", err,
		)
	}
	if !view.Current() {
		return nil, followUp
	}
	listing := h.listing(view)
	return &listing, followUp
}

// DeleteHandler only deletes when confirmed; otherwise it answers with the
// confirmation prompt and leaves the record alone.
func (h Resource[E, Req, Resp]) DeleteHandler(
	ctx context.Context,
	caller Caller,
	id int64,
	confirmed bool,
	list httptransport.ListRequest,
) (httptransport.DeleteResponse[Resp], bool, error) {
	view := h.view(list)
	prompt, ok, err := h.flow(caller, view).BeginDelete(ctx, id)
	if err != nil || !ok {
		return httptransport.DeleteResponse[Resp]{}, ok, err
	}
	if !confirmed {
		message := prompt.Message()
		prompt.Cancel()
		return httptransport.DeleteResponse[Resp]{Outcome: "confirmation_required", Message: message}, true, nil
	}
	outcome, err := prompt.Confirm(ctx)
	if outcome != application.OutcomeConfirmed {
		prompt.Cancel()
		return httptransport.DeleteResponse[Resp]{}, true, err
	}
	resp := httptransport.DeleteResponse[Resp]{Outcome: string(outcome)}
	resp.Listing, resp.FollowUpError = h.afterMutation(view, id, err)
	return resp, true, nil
}

// AuditHandler lists recent console mutations.
type AuditHandler struct {
	Trail application.AuditTrail
}

func (h AuditHandler) ListRecentActionsHandler(ctx context.Context, limit int) ([]httptransport.AuditLogResponse, error) {
	rows, err := h.Trail.ListRecentActions(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]httptransport.AuditLogResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, httptransport.AuditLogResponse{
			AuditID:    row.AuditID,
			ActorID:    row.ActorID,
			Action:     row.Action,
			TargetKind: row.TargetKind,
			TargetID:   row.TargetID,
			OccurredAt: row.OccurredAt.UTC().Format(time.RFC3339),
			RequestID:  row.RequestID,
		})
	}
	return out, nil
}
