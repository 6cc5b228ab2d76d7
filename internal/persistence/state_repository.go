// File: internal/persistence/state_repository.go
// Project: EC4X Engine
// Description: Full-state save/load for a running game's entity arenas (§4.11, §6.4)
// Version: 1.0.0
// Created: 2026-07-30

package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
)

// stateExtra carries the parts of models.GameState that are not entity
// arenas (lane topology and per-house intel databases), folded into the
// games.extra_json blob rather than a dedicated table.
type stateExtra struct {
	Lanes          []models.Lane                              `json:"lanes"`
	IntelDatabases map[ids.HouseId]*models.IntelligenceDatabase `json:"intel_databases"`
}

// FullSave persists the complete state of gameID: every live entity in
// every arena, replacing whatever was previously stored (§4.11's
// "full_save" operation — the engine calls this after every ResolveTurn).
// It runs inside a single transaction so a reader never observes a
// partially-written turn.
func (db *DB) FullSave(ctx context.Context, gameID string, state *models.GameState) error {
	return db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, table := range entityTables {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE game_id = $1", table), gameID); err != nil {
				return fmt.Errorf("persistence: clear %s: %w", table, err)
			}
		}

		if err := saveHouses(ctx, tx, gameID, state); err != nil {
			return err
		}
		if err := saveSystems(ctx, tx, gameID, state); err != nil {
			return err
		}
		if err := saveColonies(ctx, tx, gameID, state); err != nil {
			return err
		}
		if err := saveFleets(ctx, tx, gameID, state); err != nil {
			return err
		}
		if err := saveSquadrons(ctx, tx, gameID, state); err != nil {
			return err
		}
		if err := saveShips(ctx, tx, gameID, state); err != nil {
			return err
		}
		if err := saveGroundUnits(ctx, tx, gameID, state); err != nil {
			return err
		}
		if err := saveFacilities(ctx, tx, gameID, state); err != nil {
			return err
		}
		if err := saveProjects(ctx, tx, gameID, state); err != nil {
			return err
		}
		if err := saveTransfers(ctx, tx, gameID, state); err != nil {
			return err
		}
		if err := saveEffects(ctx, tx, gameID, state); err != nil {
			return err
		}

		extra := stateExtra{Lanes: state.Lanes, IntelDatabases: state.IntelDatabases}
		extraJSON, err := marshalJSON(extra)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE games SET turn = $1, extra_json = $2, updated_at = now() WHERE game_id = $3`,
			state.Turn, extraJSON, gameID)
		return err
	})
}

func saveHouses(ctx context.Context, tx *sql.Tx, gameID string, s *models.GameState) error {
	var outerErr error
	s.Houses.All(func(id ids.HouseId, v *models.House) {
		if outerErr != nil {
			return
		}
		blob, err := marshalJSON(v)
		if err != nil {
			outerErr = err
			return
		}
		_, outerErr = tx.ExecContext(ctx,
			`INSERT INTO houses (game_id, id, turn, blob) VALUES ($1, $2, $3, $4)`,
			gameID, uint32(id), s.Turn, blob)
	})
	return outerErr
}

func saveSystems(ctx context.Context, tx *sql.Tx, gameID string, s *models.GameState) error {
	var outerErr error
	s.Systems.All(func(id ids.SystemId, v *models.System) {
		if outerErr != nil {
			return
		}
		blob, err := marshalJSON(v)
		if err != nil {
			outerErr = err
			return
		}
		_, outerErr = tx.ExecContext(ctx,
			`INSERT INTO systems (game_id, id, turn, blob) VALUES ($1, $2, $3, $4)`,
			gameID, uint32(id), s.Turn, blob)
	})
	return outerErr
}

func saveColonies(ctx context.Context, tx *sql.Tx, gameID string, s *models.GameState) error {
	var outerErr error
	s.Colonies.All(func(id ids.ColonyId, v *models.Colony) {
		if outerErr != nil {
			return
		}
		blob, err := marshalJSON(v)
		if err != nil {
			outerErr = err
			return
		}
		_, outerErr = tx.ExecContext(ctx,
			`INSERT INTO colonies (game_id, id, owner, location, turn, blob) VALUES ($1, $2, $3, $4, $5, $6)`,
			gameID, uint32(id), uint32(v.Owner), uint32(v.SystemID), s.Turn, blob)
	})
	return outerErr
}

func saveFleets(ctx context.Context, tx *sql.Tx, gameID string, s *models.GameState) error {
	var outerErr error
	s.Fleets.All(func(id ids.FleetId, v *models.Fleet) {
		if outerErr != nil {
			return
		}
		blob, err := marshalJSON(v)
		if err != nil {
			outerErr = err
			return
		}
		_, outerErr = tx.ExecContext(ctx,
			`INSERT INTO fleets (game_id, id, owner, location, turn, blob) VALUES ($1, $2, $3, $4, $5, $6)`,
			gameID, uint32(id), uint32(v.HouseID), uint32(v.Location), s.Turn, blob)
	})
	return outerErr
}

func saveSquadrons(ctx context.Context, tx *sql.Tx, gameID string, s *models.GameState) error {
	var outerErr error
	s.Squadrons.All(func(id ids.SquadronId, v *models.Squadron) {
		if outerErr != nil {
			return
		}
		blob, err := marshalJSON(v)
		if err != nil {
			outerErr = err
			return
		}
		_, outerErr = tx.ExecContext(ctx,
			`INSERT INTO squadrons (game_id, id, owner, turn, blob) VALUES ($1, $2, $3, $4, $5)`,
			gameID, uint32(id), uint32(v.HouseID), s.Turn, blob)
	})
	return outerErr
}

func saveShips(ctx context.Context, tx *sql.Tx, gameID string, s *models.GameState) error {
	var outerErr error
	s.Ships.All(func(id ids.ShipId, v *models.Ship) {
		if outerErr != nil {
			return
		}
		blob, err := marshalJSON(v)
		if err != nil {
			outerErr = err
			return
		}
		_, outerErr = tx.ExecContext(ctx,
			`INSERT INTO ships (game_id, id, owner, turn, blob) VALUES ($1, $2, $3, $4, $5)`,
			gameID, uint32(id), uint32(v.HouseID), s.Turn, blob)
	})
	return outerErr
}

func saveGroundUnits(ctx context.Context, tx *sql.Tx, gameID string, s *models.GameState) error {
	var outerErr error
	s.GroundUnits.All(func(id ids.GroundUnitId, v *models.GroundUnit) {
		if outerErr != nil {
			return
		}
		blob, err := marshalJSON(v)
		if err != nil {
			outerErr = err
			return
		}
		_, outerErr = tx.ExecContext(ctx,
			`INSERT INTO ground_units (game_id, id, owner, location, turn, blob) VALUES ($1, $2, $3, $4, $5, $6)`,
			gameID, uint32(id), uint32(v.Owner), uint32(v.SystemID), s.Turn, blob)
	})
	return outerErr
}

func saveFacilities(ctx context.Context, tx *sql.Tx, gameID string, s *models.GameState) error {
	var outerErr error
	s.Facilities.All(func(id ids.FacilityId, v *models.Facility) {
		if outerErr != nil {
			return
		}
		blob, err := marshalJSON(v)
		if err != nil {
			outerErr = err
			return
		}
		_, outerErr = tx.ExecContext(ctx,
			`INSERT INTO facilities (game_id, id, location, turn, blob) VALUES ($1, $2, $3, $4, $5)`,
			gameID, uint32(id), uint32(v.ColonyID), s.Turn, blob)
	})
	return outerErr
}

func saveProjects(ctx context.Context, tx *sql.Tx, gameID string, s *models.GameState) error {
	var outerErr error
	s.Projects.All(func(id ids.ProjectId, v *models.ConstructionProject) {
		if outerErr != nil {
			return
		}
		blob, err := marshalJSON(v)
		if err != nil {
			outerErr = err
			return
		}
		_, outerErr = tx.ExecContext(ctx,
			`INSERT INTO projects (game_id, id, owner, location, turn, blob) VALUES ($1, $2, $3, $4, $5, $6)`,
			gameID, uint32(id), uint32(v.Owner), uint32(v.ColonyID), s.Turn, blob)
	})
	return outerErr
}

func saveTransfers(ctx context.Context, tx *sql.Tx, gameID string, s *models.GameState) error {
	var outerErr error
	s.Transfers.All(func(id ids.TransferId, v *models.PopulationInTransit) {
		if outerErr != nil {
			return
		}
		blob, err := marshalJSON(v)
		if err != nil {
			outerErr = err
			return
		}
		_, outerErr = tx.ExecContext(ctx,
			`INSERT INTO transfers (game_id, id, owner, turn, blob) VALUES ($1, $2, $3, $4, $5)`,
			gameID, uint32(id), uint32(v.Owner), s.Turn, blob)
	})
	return outerErr
}

func saveEffects(ctx context.Context, tx *sql.Tx, gameID string, s *models.GameState) error {
	var outerErr error
	s.Effects.All(func(id ids.EffectId, v *models.OngoingEffect) {
		if outerErr != nil {
			return
		}
		blob, err := marshalJSON(v)
		if err != nil {
			outerErr = err
			return
		}
		_, outerErr = tx.ExecContext(ctx,
			`INSERT INTO ongoing_effects (game_id, id, owner, turn, blob) VALUES ($1, $2, $3, $4, $5)`,
			gameID, uint32(id), uint32(v.TargetHouse), s.Turn, blob)
	})
	return outerErr
}

// FullLoad reconstructs a models.GameState from its persisted rows, then
// rebuilds the reverse indices and validates them (§4.11: "initialize_game_
// indices then validate_indices" on every load).
func (db *DB) FullLoad(ctx context.Context, gameID string) (*models.GameState, error) {
	rec, err := db.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	state := models.NewGameState(rec.Seed)
	state.Turn = rec.Turn

	var extra stateExtra
	if len(rec.ExtraJSON) > 0 {
		if err := json.Unmarshal(rec.ExtraJSON, &extra); err != nil {
			return nil, fmt.Errorf("persistence: decode extra state: %w", err)
		}
	}
	state.Lanes = extra.Lanes
	if extra.IntelDatabases != nil {
		state.IntelDatabases = extra.IntelDatabases
	}

	if err := loadHouses(ctx, db, gameID, state); err != nil {
		return nil, err
	}
	if err := loadSystems(ctx, db, gameID, state); err != nil {
		return nil, err
	}
	if err := loadColonies(ctx, db, gameID, state); err != nil {
		return nil, err
	}
	if err := loadFleets(ctx, db, gameID, state); err != nil {
		return nil, err
	}
	if err := loadSquadrons(ctx, db, gameID, state); err != nil {
		return nil, err
	}
	if err := loadShips(ctx, db, gameID, state); err != nil {
		return nil, err
	}
	if err := loadGroundUnits(ctx, db, gameID, state); err != nil {
		return nil, err
	}
	if err := loadFacilities(ctx, db, gameID, state); err != nil {
		return nil, err
	}
	if err := loadProjects(ctx, db, gameID, state); err != nil {
		return nil, err
	}
	if err := loadTransfers(ctx, db, gameID, state); err != nil {
		return nil, err
	}
	if err := loadEffects(ctx, db, gameID, state); err != nil {
		return nil, err
	}

	models.InitializeGameIndices(state)
	if errs := models.ValidateIndices(state); len(errs) > 0 {
		return nil, fmt.Errorf("persistence: loaded state failed validation: %v", errs[0])
	}
	return state, nil
}

func queryBlobs(ctx context.Context, db *DB, table, gameID string) (map[uint32]json.RawMessage, uint32, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT id, blob FROM %s WHERE game_id = $1 ORDER BY id", table), gameID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make(map[uint32]json.RawMessage)
	var highWater uint32
	for rows.Next() {
		var id uint32
		var blob json.RawMessage
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, 0, err
		}
		out[id] = blob
		if id > highWater {
			highWater = id
		}
	}
	return out, highWater, rows.Err()
}

func loadHouses(ctx context.Context, db *DB, gameID string, state *models.GameState) error {
	blobs, highWater, err := queryBlobs(ctx, db, "houses", gameID)
	if err != nil {
		return err
	}
	live := make(map[uint32]*models.House, len(blobs))
	for id, blob := range blobs {
		var v models.House
		if err := json.Unmarshal(blob, &v); err != nil {
			return fmt.Errorf("persistence: decode house %d: %w", id, err)
		}
		live[id] = &v
	}
	state.Houses = ids.Restore[ids.HouseId, *models.House](highWater, live)
	return nil
}

func loadSystems(ctx context.Context, db *DB, gameID string, state *models.GameState) error {
	blobs, highWater, err := queryBlobs(ctx, db, "systems", gameID)
	if err != nil {
		return err
	}
	live := make(map[uint32]*models.System, len(blobs))
	for id, blob := range blobs {
		var v models.System
		if err := json.Unmarshal(blob, &v); err != nil {
			return fmt.Errorf("persistence: decode system %d: %w", id, err)
		}
		live[id] = &v
	}
	state.Systems = ids.Restore[ids.SystemId, *models.System](highWater, live)
	return nil
}

func loadColonies(ctx context.Context, db *DB, gameID string, state *models.GameState) error {
	blobs, highWater, err := queryBlobs(ctx, db, "colonies", gameID)
	if err != nil {
		return err
	}
	live := make(map[uint32]*models.Colony, len(blobs))
	for id, blob := range blobs {
		var v models.Colony
		if err := json.Unmarshal(blob, &v); err != nil {
			return fmt.Errorf("persistence: decode colony %d: %w", id, err)
		}
		live[id] = &v
	}
	state.Colonies = ids.Restore[ids.ColonyId, *models.Colony](highWater, live)
	return nil
}

func loadFleets(ctx context.Context, db *DB, gameID string, state *models.GameState) error {
	blobs, highWater, err := queryBlobs(ctx, db, "fleets", gameID)
	if err != nil {
		return err
	}
	live := make(map[uint32]*models.Fleet, len(blobs))
	for id, blob := range blobs {
		var v models.Fleet
		if err := json.Unmarshal(blob, &v); err != nil {
			return fmt.Errorf("persistence: decode fleet %d: %w", id, err)
		}
		live[id] = &v
	}
	state.Fleets = ids.Restore[ids.FleetId, *models.Fleet](highWater, live)
	return nil
}

func loadSquadrons(ctx context.Context, db *DB, gameID string, state *models.GameState) error {
	blobs, highWater, err := queryBlobs(ctx, db, "squadrons", gameID)
	if err != nil {
		return err
	}
	live := make(map[uint32]*models.Squadron, len(blobs))
	for id, blob := range blobs {
		var v models.Squadron
		if err := json.Unmarshal(blob, &v); err != nil {
			return fmt.Errorf("persistence: decode squadron %d: %w", id, err)
		}
		live[id] = &v
	}
	state.Squadrons = ids.Restore[ids.SquadronId, *models.Squadron](highWater, live)
	return nil
}

func loadShips(ctx context.Context, db *DB, gameID string, state *models.GameState) error {
	blobs, highWater, err := queryBlobs(ctx, db, "ships", gameID)
	if err != nil {
		return err
	}
	live := make(map[uint32]*models.Ship, len(blobs))
	for id, blob := range blobs {
		var v models.Ship
		if err := json.Unmarshal(blob, &v); err != nil {
			return fmt.Errorf("persistence: decode ship %d: %w", id, err)
		}
		live[id] = &v
	}
	state.Ships = ids.Restore[ids.ShipId, *models.Ship](highWater, live)
	return nil
}

func loadGroundUnits(ctx context.Context, db *DB, gameID string, state *models.GameState) error {
	blobs, highWater, err := queryBlobs(ctx, db, "ground_units", gameID)
	if err != nil {
		return err
	}
	live := make(map[uint32]*models.GroundUnit, len(blobs))
	for id, blob := range blobs {
		var v models.GroundUnit
		if err := json.Unmarshal(blob, &v); err != nil {
			return fmt.Errorf("persistence: decode ground unit %d: %w", id, err)
		}
		live[id] = &v
	}
	state.GroundUnits = ids.Restore[ids.GroundUnitId, *models.GroundUnit](highWater, live)
	return nil
}

func loadFacilities(ctx context.Context, db *DB, gameID string, state *models.GameState) error {
	blobs, highWater, err := queryBlobs(ctx, db, "facilities", gameID)
	if err != nil {
		return err
	}
	live := make(map[uint32]*models.Facility, len(blobs))
	for id, blob := range blobs {
		var v models.Facility
		if err := json.Unmarshal(blob, &v); err != nil {
			return fmt.Errorf("persistence: decode facility %d: %w", id, err)
		}
		live[id] = &v
	}
	state.Facilities = ids.Restore[ids.FacilityId, *models.Facility](highWater, live)
	return nil
}

func loadProjects(ctx context.Context, db *DB, gameID string, state *models.GameState) error {
	blobs, highWater, err := queryBlobs(ctx, db, "projects", gameID)
	if err != nil {
		return err
	}
	live := make(map[uint32]*models.ConstructionProject, len(blobs))
	for id, blob := range blobs {
		var v models.ConstructionProject
		if err := json.Unmarshal(blob, &v); err != nil {
			return fmt.Errorf("persistence: decode project %d: %w", id, err)
		}
		live[id] = &v
	}
	state.Projects = ids.Restore[ids.ProjectId, *models.ConstructionProject](highWater, live)
	return nil
}

func loadTransfers(ctx context.Context, db *DB, gameID string, state *models.GameState) error {
	blobs, highWater, err := queryBlobs(ctx, db, "transfers", gameID)
	if err != nil {
		return err
	}
	live := make(map[uint32]*models.PopulationInTransit, len(blobs))
	for id, blob := range blobs {
		var v models.PopulationInTransit
		if err := json.Unmarshal(blob, &v); err != nil {
			return fmt.Errorf("persistence: decode transfer %d: %w", id, err)
		}
		live[id] = &v
	}
	state.Transfers = ids.Restore[ids.TransferId, *models.PopulationInTransit](highWater, live)
	return nil
}

func loadEffects(ctx context.Context, db *DB, gameID string, state *models.GameState) error {
	blobs, highWater, err := queryBlobs(ctx, db, "ongoing_effects", gameID)
	if err != nil {
		return err
	}
	live := make(map[uint32]*models.OngoingEffect, len(blobs))
	for id, blob := range blobs {
		var v models.OngoingEffect
		if err := json.Unmarshal(blob, &v); err != nil {
			return fmt.Errorf("persistence: decode effect %d: %w", id, err)
		}
		live[id] = &v
	}
	state.Effects = ids.Restore[ids.EffectId, *models.OngoingEffect](highWater, live)
	return nil
}
