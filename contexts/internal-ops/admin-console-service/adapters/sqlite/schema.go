package sqliteadapter

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sponsor (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		logo TEXT NOT NULL DEFAULT '',
		level TEXT NOT NULL DEFAULT '' CHECK (level IN ('', 'PLATIN', 'GOLD', 'SILBER')),
		valid_from TEXT NULL,
		valid_to TEXT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS speaker (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		twitter TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS event (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL DEFAULT '',
		subtitle TEXT NOT NULL DEFAULT '',
		abstract TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		date TEXT NULL,
		visible BOOLEAN NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS event_speaker (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id INTEGER NOT NULL REFERENCES event(id) ON DELETE CASCADE,
		speaker_id INTEGER NOT NULL REFERENCES speaker(id) ON DELETE CASCADE,
		UNIQUE (event_id, speaker_id)
	)`,
	`CREATE TABLE IF NOT EXISTS member (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		zip_code TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		member_since TEXT NULL,
		admin BOOLEAN NOT NULL DEFAULT 0,
		password_salt TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT 0
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS member_email_key ON member (email) WHERE email <> ''`,
	`CREATE TABLE IF NOT EXISTS admin_audit_log (
		audit_id TEXT PRIMARY KEY,
		actor_id TEXT NOT NULL,
		action TEXT NOT NULL,
		target_kind TEXT NOT NULL,
		target_id INTEGER NOT NULL,
		occurred_at TEXT NOT NULL,
		request_id TEXT NOT NULL DEFAULT ''
	)`,
}

// EnsureSchema creates missing tables. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}
