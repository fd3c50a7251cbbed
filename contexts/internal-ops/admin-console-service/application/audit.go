package application

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "komunumo/contexts/internal-ops/admin-console-service/domain/errors"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
)

// AuditTrail records every mutation committed through the console.
type AuditTrail struct {
	Repo        ports.AuditRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type RecordActionInput struct {
	ActorID    string
	Action     string
	TargetKind string
	TargetID   int64
	RequestID  string
}

func (a AuditTrail) RecordAdminAction(ctx context.Context, input RecordActionInput) (ports.AuditLog, error) {
	if strings.TrimSpace(input.Action) == "" || strings.TrimSpace(input.TargetKind) == "" {
		return ports.AuditLog{}, domainerrors.ErrInvalidInput
	}
	actor := strings.TrimSpace(input.ActorID)
	if actor == "" {
		actor = "anonymous"
	}
	auditID, err := a.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.AuditLog{}, err
	}
	row := ports.AuditLog{
		AuditID:    auditID,
		ActorID:    actor,
		Action:     strings.TrimSpace(input.Action),
		TargetKind: strings.TrimSpace(input.TargetKind),
		TargetID:   input.TargetID,
		OccurredAt: a.Clock.Now().UTC(),
		RequestID:  strings.TrimSpace(input.RequestID),
	}
	if err := a.Repo.AppendAuditLog(ctx, row); err != nil {
		return ports.AuditLog{}, err
	}
	ResolveLogger(a.Logger).Info("admin action recorded",
		"event", "admin_action_recorded",
		"module", "internal-ops/admin-console-service",
		"layer", "application",
		"audit_id", row.AuditID,
		"actor_id", row.ActorID,
		"action", row.Action,
		"target_id", row.TargetID,
	)
	return row, nil
}

func (a AuditTrail) ListRecentActions(ctx context.Context, limit int) ([]ports.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return a.Repo.ListRecentAuditLogs(ctx, limit)
}
