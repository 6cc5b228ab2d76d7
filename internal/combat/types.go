// File: internal/combat/types.go
// Project: EC4X Engine
// Description: Shared combat participant and result types (§4.6)
// Version: 1.0.0
// Created: 2026-01-07

// Package combat resolves the three-theater encounter (space, orbital,
// planetary) that the turn resolver's Conflict phase runs for every system
// holding hostile fleets (§4.6). Every roll in this package is taken from a
// *rand.Rand the caller seeded from (game_seed, turn_number) so replay stays
// deterministic; nothing here calls rand.Float64/rand.Intn on the package
// default source.
package combat

import (
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
)

// Side is one house's mobile combat strength in an engagement: the
// squadron ids participating (guard-ordered squadrons are excluded by the
// caller before Side is built) plus the tuning inputs that vary by house.
type Side struct {
	HouseID   ids.HouseId
	Squadrons []ids.SquadronId
	Roe       models.ROE

	// WEPMultiplier/SLDMultiplier fold in the house's weapons/shield tech
	// bonus (§4.6: "ship.AS × WEP_bonus(house.WEP)").
	WEPMultiplier float64
	SLDMultiplier float64
}

// CriticalHit records one outright-destroyed target from a critical roll.
type CriticalHit struct {
	ShipID ids.ShipId
}

// RoundLog records one round's outcome for the encounter report.
type RoundLog struct {
	Round        int
	HitsA        int
	HitsB        int
	Destroyed    []ids.ShipId
	Crippled     []ids.ShipId
	Criticals    []CriticalHit
	Stalemate    bool
	DesperationDRM bool
}

// PrestigeEvent is one zero-sum (or achievement) ledger entry emitted by
// combat resolution; the prestige package applies these to House.Prestige
// (§4.9).
type PrestigeEvent struct {
	Source      string
	House       ids.HouseId
	Counterpart ids.HouseId
	Delta       int64
	Reason      string
	Turn        int
}

// squadronAS sums effective AS, scaled by wepMult, across a squadron's
// live ships.
func squadronAS(state *models.GameState, squadronID ids.SquadronId, wepMult float64) float64 {
	sq, ok := state.Squadrons.Get(squadronID)
	if !ok || sq.Destroyed {
		return 0
	}
	total := 0.0
	for _, shipID := range sq.ShipIDs {
		ship, ok := state.Ships.Get(shipID)
		if !ok {
			continue
		}
		total += ship.EffectiveAS() * wepMult
	}
	return total
}

func sideAS(state *models.GameState, side Side) float64 {
	total := 0.0
	for _, sqID := range side.Squadrons {
		total += squadronAS(state, sqID, side.WEPMultiplier)
	}
	return total
}

// liveSquadrons filters out squadrons already destroyed or emptied by prior
// rounds.
func liveSquadrons(state *models.GameState, squadronIDs []ids.SquadronId) []ids.SquadronId {
	live := make([]ids.SquadronId, 0, len(squadronIDs))
	for _, id := range squadronIDs {
		sq, ok := state.Squadrons.Get(id)
		if ok && !sq.Destroyed && len(sq.ShipIDs) > 0 {
			live = append(live, id)
		}
	}
	return live
}
