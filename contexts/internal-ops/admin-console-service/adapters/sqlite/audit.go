package sqliteadapter

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"komunumo/contexts/internal-ops/admin-console-service/ports"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) AppendAuditLog(ctx context.Context, row ports.AuditLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admin_audit_log (audit_id, actor_id, action, target_kind, target_id, occurred_at, request_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(row.AuditID),
		strings.TrimSpace(row.ActorID),
		strings.TrimSpace(row.Action),
		strings.TrimSpace(row.TargetKind),
		row.TargetID,
		row.OccurredAt.UTC().Format(timestampLayout),
		strings.TrimSpace(row.RequestID),
	)
	return classify(err)
}

func (r *AuditRepository) ListRecentAuditLogs(ctx context.Context, limit int) ([]ports.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT audit_id, actor_id, action, target_kind, target_id, occurred_at, request_id
		FROM admin_audit_log ORDER BY occurred_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, classify(err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]ports.AuditLog, 0, limit)
	for rows.Next() {
		var item ports.AuditLog
		var occurredAt string
		if err := rows.Scan(&item.AuditID, &item.ActorID, &item.Action, &item.TargetKind, &item.TargetID, &occurredAt, &item.RequestID); err != nil {
			return nil, classify(err)
		}
		if item.OccurredAt, err = time.Parse(timestampLayout, occurredAt); err != nil {
			return nil, classify(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return items, nil
}
