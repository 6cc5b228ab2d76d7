// File: internal/persistence/game_repository.go
// Project: EC4X Engine
// Description: games and invites table access (§6.4)
// Version: 1.0.0
// Created: 2026-07-30

package persistence

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrNotFound is returned when a lookup by id/code finds no row.
var ErrNotFound = errors.New("persistence: not found")

// GameRecord is the games table's row shape, carrying everything needed to
// reconstruct a models.GameState alongside the ruleset it was created with.
type GameRecord struct {
	GameID     string
	Name       string
	Seed       int64
	Turn       int
	SetupJSON  []byte
	ConfigJSON []byte
	ConfigHash string
	ExtraJSON  []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateGame inserts a new games row. Callers persist the initial entity
// snapshot separately via the state repository in the same logical
// transaction as game creation.
func (db *DB) CreateGame(ctx context.Context, rec GameRecord) error {
	if rec.ExtraJSON == nil {
		rec.ExtraJSON = []byte("{}")
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO games (game_id, name, seed, turn, setup_json, config_json, config_hash, extra_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.GameID, rec.Name, rec.Seed, rec.Turn, rec.SetupJSON, rec.ConfigJSON, rec.ConfigHash, rec.ExtraJSON)
	return err
}

// GetGame loads a games row by id.
func (db *DB) GetGame(ctx context.Context, gameID string) (GameRecord, error) {
	var rec GameRecord
	row := db.QueryRowContext(ctx, `
		SELECT game_id, name, seed, turn, setup_json, config_json, config_hash, extra_json, created_at, updated_at
		FROM games WHERE game_id = $1`, gameID)
	err := row.Scan(&rec.GameID, &rec.Name, &rec.Seed, &rec.Turn, &rec.SetupJSON,
		&rec.ConfigJSON, &rec.ConfigHash, &rec.ExtraJSON, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	return rec, err
}

// UpdateGameTurn advances the games row's turn counter and extra-state blob
// after a successful ResolveTurn (§6.2's advance_turn operation persists
// this alongside the entity snapshot).
func (db *DB) UpdateGameTurn(ctx context.Context, gameID string, turn int, extraJSON []byte) error {
	res, err := db.ExecContext(ctx,
		`UPDATE games SET turn = $1, extra_json = $2, updated_at = now() WHERE game_id = $3`,
		turn, extraJSON, gameID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListGames returns every known game, most recently created first.
func (db *DB) ListGames(ctx context.Context) ([]GameRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT game_id, name, seed, turn, setup_json, config_json, config_hash, extra_json, created_at, updated_at
		FROM games ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GameRecord
	for rows.Next() {
		var rec GameRecord
		if err := rows.Scan(&rec.GameID, &rec.Name, &rec.Seed, &rec.Turn, &rec.SetupJSON,
			&rec.ConfigJSON, &rec.ConfigHash, &rec.ExtraJSON, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CreateInvite mints a single-use join code for houseSlot in gameID (§4.12's
// join flow: an invite maps a code to a house slot a new player claims). The
// returned code is "selector.verifier": selector is stored in the clear as
// the lookup key, verifier is bcrypt-hashed at rest — the same split-token
// shape used elsewhere for hashing credentials, since a selector gives an
// indexable lookup a bcrypt hash alone can't.
func (db *DB) CreateInvite(ctx context.Context, gameID string, houseSlot int) (string, error) {
	selector, err := randomToken(8)
	if err != nil {
		return "", fmt.Errorf("persistence: generate invite selector: %w", err)
	}
	verifier, err := randomToken(16)
	if err != nil {
		return "", fmt.Errorf("persistence: generate invite verifier: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(verifier), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("persistence: hash invite code: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO invites (selector, code_hash, game_id, house_slot) VALUES ($1, $2, $3, $4)`,
		selector, string(hash), gameID, houseSlot)
	if err != nil {
		return "", err
	}
	return selector + "." + verifier, nil
}

// ClaimInvite atomically marks the invite named by code as claimed and
// returns the game/slot it unlocks; returns ErrNotFound if the code is
// malformed, unknown, already claimed, or fails the bcrypt comparison.
func (db *DB) ClaimInvite(ctx context.Context, code string) (gameID string, houseSlot int, err error) {
	selector, verifier, ok := strings.Cut(code, ".")
	if !ok {
		return "", 0, ErrNotFound
	}
	err = db.WithTransaction(ctx, func(tx *sql.Tx) error {
		var codeHash string
		row := tx.QueryRowContext(ctx,
			`SELECT code_hash, game_id, house_slot FROM invites WHERE selector = $1 AND claimed = false FOR UPDATE`, selector)
		if scanErr := row.Scan(&codeHash, &gameID, &houseSlot); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return ErrNotFound
			}
			return scanErr
		}
		if bcrypt.CompareHashAndPassword([]byte(codeHash), []byte(verifier)) != nil {
			return ErrNotFound
		}
		_, execErr := tx.ExecContext(ctx, `UPDATE invites SET claimed = true WHERE selector = $1`, selector)
		return execErr
	})
	return gameID, houseSlot, err
}

// randomToken returns a hex-encoded random token of n random bytes.
func randomToken(n int) (string, error) {
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// marshalJSON is a tiny wrapper kept for symmetry with unmarshalJSON and to
// give every call site a single error-wrapping point.
func marshalJSON(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("persistence: marshal: %w", err)
	}
	return b, nil
}
