// File: internal/persistence/schema.go
// Project: EC4X Engine
// Description: Relational schema for the per-game entity store (§4.11, §6.4)
// Version: 1.0.0
// Created: 2026-07-30

package persistence

import "context"

// entityTables lists every entity arena's table name; each stores game_id,
// turn and a JSON blob, keyed by (game_id, id) except intel_reports, which
// has no id column, and adds owner/location columns only where the kind
// has them, since the store persists entities as JSON blobs rather than per-kind columns
// (§6.4: "JSON-serialized entity blob, plus indexed columns for
// owner/location/turn").
var entityTables = []string{
	"houses", "systems", "colonies", "fleets", "squadrons", "ships",
	"ground_units", "facilities", "projects", "transfers",
	"ongoing_effects", "intel_reports",
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS games (
	game_id      TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	seed         BIGINT NOT NULL,
	turn         INTEGER NOT NULL DEFAULT 0,
	setup_json   JSONB NOT NULL,
	config_json  JSONB NOT NULL,
	config_hash  TEXT NOT NULL,
	extra_json   JSONB NOT NULL DEFAULT '{}',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS invites (
	selector   TEXT PRIMARY KEY,
	code_hash  TEXT NOT NULL,
	game_id    TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	house_slot INTEGER NOT NULL,
	claimed    BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS events (
	game_id         TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	seq             BIGSERIAL,
	turn            INTEGER NOT NULL,
	kind            TEXT NOT NULL,
	visibility_json JSONB NOT NULL,
	payload_json    JSONB NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (game_id, seq)
);
CREATE INDEX IF NOT EXISTS events_by_turn ON events(game_id, turn);

CREATE TABLE IF NOT EXISTS houses (
	game_id  TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	id       INTEGER NOT NULL,
	turn     INTEGER NOT NULL,
	blob     JSONB NOT NULL,
	PRIMARY KEY (game_id, id)
);

CREATE TABLE IF NOT EXISTS systems (
	game_id TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	id      INTEGER NOT NULL,
	turn    INTEGER NOT NULL,
	blob    JSONB NOT NULL,
	PRIMARY KEY (game_id, id)
);

CREATE TABLE IF NOT EXISTS colonies (
	game_id  TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	id       INTEGER NOT NULL,
	owner    INTEGER NOT NULL,
	location INTEGER NOT NULL,
	turn     INTEGER NOT NULL,
	blob     JSONB NOT NULL,
	PRIMARY KEY (game_id, id)
);
CREATE INDEX IF NOT EXISTS colonies_by_owner ON colonies(game_id, owner);

CREATE TABLE IF NOT EXISTS fleets (
	game_id  TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	id       INTEGER NOT NULL,
	owner    INTEGER NOT NULL,
	location INTEGER NOT NULL,
	turn     INTEGER NOT NULL,
	blob     JSONB NOT NULL,
	PRIMARY KEY (game_id, id)
);
CREATE INDEX IF NOT EXISTS fleets_by_owner ON fleets(game_id, owner);
CREATE INDEX IF NOT EXISTS fleets_by_location ON fleets(game_id, location);

CREATE TABLE IF NOT EXISTS squadrons (
	game_id TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	id      INTEGER NOT NULL,
	owner   INTEGER NOT NULL,
	turn    INTEGER NOT NULL,
	blob    JSONB NOT NULL,
	PRIMARY KEY (game_id, id)
);
CREATE INDEX IF NOT EXISTS squadrons_by_owner ON squadrons(game_id, owner);

CREATE TABLE IF NOT EXISTS ships (
	game_id TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	id      INTEGER NOT NULL,
	owner   INTEGER NOT NULL,
	turn    INTEGER NOT NULL,
	blob    JSONB NOT NULL,
	PRIMARY KEY (game_id, id)
);
CREATE INDEX IF NOT EXISTS ships_by_owner ON ships(game_id, owner);

CREATE TABLE IF NOT EXISTS ground_units (
	game_id  TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	id       INTEGER NOT NULL,
	owner    INTEGER NOT NULL,
	location INTEGER NOT NULL,
	turn     INTEGER NOT NULL,
	blob     JSONB NOT NULL,
	PRIMARY KEY (game_id, id)
);

CREATE TABLE IF NOT EXISTS facilities (
	game_id  TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	id       INTEGER NOT NULL,
	location INTEGER NOT NULL,
	turn     INTEGER NOT NULL,
	blob     JSONB NOT NULL,
	PRIMARY KEY (game_id, id)
);

CREATE TABLE IF NOT EXISTS projects (
	game_id  TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	id       INTEGER NOT NULL,
	owner    INTEGER NOT NULL,
	location INTEGER NOT NULL,
	turn     INTEGER NOT NULL,
	blob     JSONB NOT NULL,
	PRIMARY KEY (game_id, id)
);

CREATE TABLE IF NOT EXISTS transfers (
	game_id TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	id      INTEGER NOT NULL,
	owner   INTEGER NOT NULL,
	turn    INTEGER NOT NULL,
	blob    JSONB NOT NULL,
	PRIMARY KEY (game_id, id)
);

CREATE TABLE IF NOT EXISTS ongoing_effects (
	game_id TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	id      INTEGER NOT NULL,
	owner   INTEGER NOT NULL,
	turn    INTEGER NOT NULL,
	blob    JSONB NOT NULL,
	PRIMARY KEY (game_id, id)
);

CREATE TABLE IF NOT EXISTS intel_reports (
	game_id TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
	owner   INTEGER NOT NULL,
	turn    INTEGER NOT NULL,
	blob    JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS intel_reports_by_owner ON intel_reports(game_id, owner);
`

// RunMigrations applies the full schema; every statement is idempotent
// (CREATE ... IF NOT EXISTS) so it is safe to call on every process start.
func (db *DB) RunMigrations(ctx context.Context) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	return err
}

// ClearGame deletes every row belonging to gameID across all tables (used
// by tests and by the CLI's game-teardown path); every other table,
// intel_reports included, references games(game_id) with ON DELETE
// CASCADE, so deleting the games row removes the rest.
func (db *DB) ClearGame(ctx context.Context, gameID string) error {
	_, err := db.ExecContext(ctx, "DELETE FROM games WHERE game_id = $1", gameID)
	return err
}
