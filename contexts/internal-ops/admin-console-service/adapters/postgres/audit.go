package postgresadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"komunumo/contexts/internal-ops/admin-console-service/ports"
)

type auditLogModel struct {
	AuditID    string    `gorm:"column:audit_id;primaryKey"`
	ActorID    string    `gorm:"column:actor_id"`
	Action     string    `gorm:"column:action"`
	TargetKind string    `gorm:"column:target_kind"`
	TargetID   int64     `gorm:"column:target_id"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
	RequestID  string    `gorm:"column:request_id"`
}

func (auditLogModel) TableName() string {
	return "admin_audit_log"
}

type AuditRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewAuditRepository(db *gorm.DB, logger *slog.Logger) *AuditRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditRepository{db: db, logger: logger}
}

func (r *AuditRepository) AppendAuditLog(ctx context.Context, row ports.AuditLog) error {
	model := auditLogModel{
		AuditID:    strings.TrimSpace(row.AuditID),
		ActorID:    strings.TrimSpace(row.ActorID),
		Action:     strings.TrimSpace(row.Action),
		TargetKind: strings.TrimSpace(row.TargetKind),
		TargetID:   row.TargetID,
		OccurredAt: row.OccurredAt.UTC(),
		RequestID:  strings.TrimSpace(row.RequestID),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return classify(err)
	}
	return nil
}

func (r *AuditRepository) ListRecentAuditLogs(ctx context.Context, limit int) ([]ports.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []auditLogModel
	if err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, classify(err)
	}
	items := make([]ports.AuditLog, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.AuditLog(row))
	}
	return items, nil
}
