package postgresadapter

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// schemaStatements are idempotent; they create missing tables and never alter
// existing ones.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sponsor (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		logo TEXT NOT NULL DEFAULT '',
		level TEXT NOT NULL DEFAULT '' CHECK (level IN ('', 'PLATIN', 'GOLD', 'SILBER')),
		valid_from DATE NULL,
		valid_to DATE NULL
	)`,
	`CREATE TABLE IF NOT EXISTS speaker (
		id BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		twitter TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS event (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		subtitle TEXT NOT NULL DEFAULT '',
		abstract TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NULL,
		visible BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS event_speaker (
		id BIGSERIAL PRIMARY KEY,
		event_id BIGINT NOT NULL REFERENCES event(id) ON DELETE CASCADE,
		speaker_id BIGINT NOT NULL REFERENCES speaker(id) ON DELETE CASCADE,
		UNIQUE (event_id, speaker_id)
	)`,
	`CREATE TABLE IF NOT EXISTS member (
		id BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		zip_code TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		member_since TIMESTAMPTZ NULL,
		admin BOOLEAN NOT NULL DEFAULT FALSE,
		password_salt TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS member_email_key ON member (email) WHERE email <> ''`,
	`CREATE TABLE IF NOT EXISTS admin_audit_log (
		audit_id TEXT PRIMARY KEY,
		actor_id TEXT NOT NULL,
		action TEXT NOT NULL,
		target_kind TEXT NOT NULL,
		target_id BIGINT NOT NULL,
		occurred_at TIMESTAMPTZ NOT NULL,
		request_id TEXT NOT NULL DEFAULT ''
	)`,
}

func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	for _, stmt := range schemaStatements {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}
