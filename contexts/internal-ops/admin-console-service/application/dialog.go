package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	domainerrors "komunumo/contexts/internal-ops/admin-console-service/domain/errors"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
)

type Outcome string

const (
	// OutcomePending is returned while a session is still open, including
	// after a failed commit.
	OutcomePending   Outcome = ""
	OutcomeCommitted Outcome = "committed"
	OutcomeConfirmed Outcome = "confirmed"
	OutcomeCancelled Outcome = "cancelled"
)

// AdminActionRecorder is satisfied by AuditTrail.
type AdminActionRecorder interface {
	RecordAdminAction(ctx context.Context, input RecordActionInput) (ports.AuditLog, error)
}

// DialogFlow opens create, edit and delete sessions for one entity type.
// Refresh is signalled once per successful mutation and never on cancel.
type DialogFlow[E entities.Record] struct {
	Records   ports.RecordStore[E]
	Refresh   ports.Refresher
	Audit     AdminActionRecorder
	ActorID   string
	RequestID string
	Logger    *slog.Logger
}

// NotFoundMessage is what the operator sees when a row vanished before the
// dialog could open.
func NotFoundMessage(kind string) string {
	return fmt.Sprintf("This %s does not exist anymore.", kind)
}

func (f DialogFlow[E]) BeginCreate() *EditSession[E] {
	return &EditSession[E]{flow: f, Record: f.Records.NewRecord(), creating: true}
}

// BeginEdit reports false when the record is gone; no session is opened and
// no refresh is signalled in that case.
func (f DialogFlow[E]) BeginEdit(ctx context.Context, id int64) (*EditSession[E], bool, error) {
	record, ok, err := f.Records.Get(ctx, id)
	if err != nil || !ok {
		f.logMissing(id, ok, err)
		return nil, false, err
	}
	return &EditSession[E]{flow: f, Record: record}, true, nil
}

func (f DialogFlow[E]) BeginDelete(ctx context.Context, id int64) (*DeletePrompt[E], bool, error) {
	record, ok, err := f.Records.Get(ctx, id)
	if err != nil || !ok {
		f.logMissing(id, ok, err)
		return nil, false, err
	}
	return &DeletePrompt[E]{flow: f, Record: record}, true, nil
}

func (f DialogFlow[E]) logMissing(id int64, found bool, err error) {
	if err != nil || found {
		return
	}
	ResolveLogger(f.Logger).Info("record no longer exists",
		"event", "dialog_target_missing",
		"module", "internal-ops/admin-console-service",
		"layer", "application",
		"record_id", id,
	)
}

// afterMutation runs the post-commit side effects. The mutation itself has
// already succeeded, so failures here are reported without reopening the session.
func (f DialogFlow[E]) afterMutation(ctx context.Context, verb string, record E) error {
	logger := ResolveLogger(f.Logger)
	action := strings.ReplaceAll(record.RecordKind(), " ", "_") + "." + verb
	logger.Info("record mutated",
		"event", "record_mutated",
		"module", "internal-ops/admin-console-service",
		"layer", "application",
		"action", action,
		"record_id", record.RecordID(),
	)

	var errs []error
	if f.Audit != nil {
		if _, err := f.Audit.RecordAdminAction(ctx, RecordActionInput{
			ActorID:    f.ActorID,
			Action:     action,
			TargetKind: record.RecordKind(),
			TargetID:   record.RecordID(),
			RequestID:  f.RequestID,
		}); err != nil {
			logger.Error("audit append failed", "event", "audit_append_failed", "action", action, "error", err)
			errs = append(errs, err)
		}
	}
	if f.Refresh != nil {
		if err := f.Refresh.Refresh(ctx); err != nil {
			logger.Error("listing refresh failed", "event", "listing_refresh_failed", "action", action, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type sessionState int

const (
	stateOpen sessionState = iota
	stateClosed
)

// EditSession is an open create or edit dialog. Record may be mutated freely
// until Commit or Cancel.
type EditSession[E entities.Record] struct {
	flow     DialogFlow[E]
	Record   E
	creating bool
	state    sessionState
	outcome  Outcome
}

func (s *EditSession[E]) Creating() bool { return s.creating }

func (s *EditSession[E]) Outcome() Outcome { return s.outcome }

// Commit stores the record. A storage failure leaves the session open so
// the operator can retry or cancel.
func (s *EditSession[E]) Commit(ctx context.Context) (Outcome, error) {
	if s.state != stateOpen {
		return s.outcome, domainerrors.ErrSessionClosed
	}
	if err := s.flow.Records.Store(ctx, &s.Record); err != nil {
		ResolveLogger(s.flow.Logger).Warn("commit failed",
			"event", "dialog_commit_failed",
			"module", "internal-ops/admin-console-service",
			"layer", "application",
			"record_id", s.Record.RecordID(),
			"error", err,
		)
		return OutcomePending, err
	}
	s.state = stateClosed
	s.outcome = OutcomeCommitted
	verb := "update"
	if s.creating {
		verb = "create"
	}
	return s.outcome, s.flow.afterMutation(ctx, verb, s.Record)
}

func (s *EditSession[E]) Cancel() Outcome {
	if s.state == stateOpen {
		s.state = stateClosed
		s.outcome = OutcomeCancelled
	}
	return s.outcome
}

// DeletePrompt asks for explicit confirmation before a record is removed.
type DeletePrompt[E entities.Record] struct {
	flow    DialogFlow[E]
	Record  E
	state   sessionState
	outcome Outcome
}

func (p *DeletePrompt[E]) Message() string {
	return fmt.Sprintf("Are you sure you want to permanently delete the %s \"%s\"?",
		p.Record.RecordKind(), p.Record.DisplayName())
}

func (p *DeletePrompt[E]) Outcome() Outcome { return p.outcome }

func (p *DeletePrompt[E]) Confirm(ctx context.Context) (Outcome, error) {
	if p.state != stateOpen {
		return p.outcome, domainerrors.ErrSessionClosed
	}
	if err := p.flow.Records.Delete(ctx, p.Record); err != nil {
		ResolveLogger(p.flow.Logger).Warn("delete failed",
			"event", "dialog_delete_failed",
			"module", "internal-ops/admin-console-service",
			"layer", "application",
			"record_id", p.Record.RecordID(),
			"error", err,
		)
		return OutcomePending, err
	}
	p.state = stateClosed
	p.outcome = OutcomeConfirmed
	return p.outcome, p.flow.afterMutation(ctx, "delete", p.Record)
}

func (p *DeletePrompt[E]) Cancel() Outcome {
	if p.state == stateOpen {
		p.state = stateClosed
		p.outcome = OutcomeCancelled
	}
	return p.outcome
}
