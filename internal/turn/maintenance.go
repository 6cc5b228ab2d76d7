// File: internal/turn/maintenance.go
// Project: EC4X Engine
// Description: Maintenance Phase: movement, construction, upkeep, capacity enforcement, victory (§4.5 step 4)
// Version: 1.0.0
// Created: 2026-07-30

package turn

import (
	"math/rand"

	"github.com/ec4x/engine/internal/economy"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/prestige"
	"github.com/ec4x/engine/internal/rules"
	"github.com/ec4x/engine/internal/starmap"
)

// runMaintenancePhase implements §4.5 phase 4: execute this turn's staged
// fleet movement one hex at a time, advance construction and repair,
// deliver upkeep and enforce the §3.2 fleet-capacity invariants, decrement
// ongoing effects, regenerate each house's intel database, and finally
// check for victory. rng is accepted for symmetry with the other phases'
// signatures; nothing here currently consumes randomness.
func (r *Resolver) runMaintenancePhase(state *models.GameState, snap *rules.Snapshot, rng *rand.Rand, turn int, report *TurnReport) {
	r.executePendingMoves(state)

	state.Colonies.All(func(colonyID ids.ColonyId, colony *models.Colony) {
		if !colony.Founded {
			return
		}
		system, _ := state.Systems.Get(colony.SystemID)
		house, _ := state.Houses.Get(colony.Owner)
		productionPerFacility := economy.ComputeGCO(colony, system, house, snap)

		completed := economy.AdvanceProjects(state, colony, productionPerFacility)
		if len(completed) > 0 {
			r.pendingCommissions[colonyID] = append(r.pendingCommissions[colonyID], completed...)
		}
		economy.AdvanceRepairs(state, colony, snap)
	})

	economy.ResolvePopulationTransfers(state, turn)

	shortfalls, upkeepPrestige := economy.RunMaintenancePhase(state, snap, turn)
	report.Shortfalls = append(report.Shortfalls, shortfalls...)
	r.Ledger.Apply(state, turn, upkeepPrestige)

	for _, houseID := range state.Houses.Ids() {
		house, ok := state.Houses.Get(houseID)
		if !ok {
			continue
		}
		for _, sys := range state.ColoniesByOwner[houseID] {
			colony := colonyAt(state, sys)
			if colony == nil {
				continue
			}
			report.Violations = append(report.Violations, economy.EnforceFighterCapacity(state, colony, house, snap, turn)...)
		}
		report.Violations = append(report.Violations, economy.EnforcePlanetBreakerCapacity(state, houseID, snap)...)
		report.Violations = append(report.Violations, economy.EnforceCapitalSquadronCapacity(state, houseID, snap)...)
	}

	r.decrementOngoingEffects(state)

	// Diplomatic cooldowns, the dishonored window, and isolation all read
	// the recorded turn lazily against the current turn (diplomacy.Manager),
	// so there is nothing for this phase to tick forward explicitly.

	r.regenerateIntelDatabases(state, turn)

	report.Victory = prestige.CheckVictory(state, r.PrestigeTarget)
}

// executePendingMoves advances every fleet with a staged destination by
// exactly one lane hop (§4.5 step 4a: "one hex per turn"), dropping the
// move once the fleet arrives or no path remains under its current
// restrictions.
func (r *Resolver) executePendingMoves(state *models.GameState) {
	for _, fleetID := range sortedKeys(r.pendingMoves) {
		move := r.pendingMoves[fleetID]
		fleet, ok := state.Fleets.Get(fleetID)
		if !ok {
			delete(r.pendingMoves, fleetID)
			continue
		}
		if fleet.Location == move.Destination {
			delete(r.pendingMoves, fleetID)
			continue
		}

		crippled := fleetHasCrippledFlagship(state, fleet)
		path := starmap.FindPath(state, fleet.Location, move.Destination, crippled)
		if !path.Found || len(path.Path) < 2 {
			delete(r.pendingMoves, fleetID)
			continue
		}

		state.MoveFleet(fleetID, path.Path[1])
		if path.Path[1] == move.Destination {
			delete(r.pendingMoves, fleetID)
		}
	}
}

func fleetHasCrippledFlagship(state *models.GameState, fleet *models.Fleet) bool {
	for _, sqID := range fleet.SquadronIDs {
		sq, ok := state.Squadrons.Get(sqID)
		if !ok {
			continue
		}
		ship, ok := state.Ships.Get(sq.FlagshipID)
		if ok && ship.State == models.Crippled {
			return true
		}
	}
	return false
}

// decrementOngoingEffects ticks every OngoingEffect (espionage fallout,
// sabotage) down by one turn and removes expired ones (§4.10).
func (r *Resolver) decrementOngoingEffects(state *models.GameState) {
	var expired []ids.EffectId
	state.Effects.All(func(id ids.EffectId, e *models.OngoingEffect) {
		if e.Tick() {
			expired = append(expired, id)
		} else {
			state.Effects.Update(id, e)
		}
	})
	for _, id := range expired {
		state.Effects.Delete(id)
	}
}

// regenerateIntelDatabases files an Adjacent-quality SystemIntel report for
// every system a house currently occupies (§4.8: own-fleet presence is
// always at least Adjacent quality), keeping each house's database current
// even in turns with no scouting or combat at that system.
func (r *Resolver) regenerateIntelDatabases(state *models.GameState, turn int) {
	for _, sys := range sortedKeys(state.FleetsByLocation) {
		fleetIDs := state.FleetsByLocation[sys]
		if len(fleetIDs) == 0 {
			continue
		}
		houses := make(map[ids.HouseId]bool)
		for _, fid := range fleetIDs {
			f, ok := state.Fleets.Get(fid)
			if !ok {
				continue
			}
			houses[f.HouseID] = true
		}
		for _, houseID := range sortedKeys(houses) {
			r.fileSystemReport(state, houseID, sys, turn, models.Adjacent)
		}
	}
}
