// File: internal/prestige/ledger.go
// Project: EC4X Engine
// Description: Append-only prestige ledger and victory check (§4.9, §8)
// Version: 1.0.0
// Created: 2026-07-30

// Package prestige accumulates the zero-sum (and achievement-category)
// PrestigeEvent entries emitted by combat, espionage, diplomacy, and the
// economy subpipeline over the course of a turn, applies them to each
// House's running total, and answers the victory-condition question the
// Maintenance Phase checks every turn (§4.5 phase 4g).
package prestige

import (
	"github.com/ec4x/engine/internal/combat"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
)

// AchievementSources lists the Source tags combat.PrestigeEvent carries
// that are exempt from the turn's zero-sum check (§4.9, §8: "excluding
// achievement-category events enumerated in the prestige config").
var AchievementSources = map[string]bool{
	"ColonyEstablished":  true,
	"TechAdvancement":    true,
}

// Entry is one ledger record as persisted and replayed to clients (§4.9:
// "{source_enum, delta, reason, turn}").
type Entry struct {
	Turn        int
	Source      string
	House       ids.HouseId
	Counterpart ids.HouseId
	Delta       int64
	Reason      string
}

// Ledger is the append-only per-game prestige history. It is rebuilt from
// persisted rows on load (§4.11) and extended by Apply every turn.
type Ledger struct {
	Entries []Entry
}

// Apply posts a turn's worth of combat.PrestigeEvent values to both the
// ledger and each named house's running House.Prestige total. Order of
// application does not affect the final totals (each event only touches
// its own House field) but the ledger preserves submission order for
// replay/audit purposes.
func (l *Ledger) Apply(state *models.GameState, turn int, events []combat.PrestigeEvent) {
	for _, ev := range events {
		l.Entries = append(l.Entries, Entry{
			Turn:        turn,
			Source:      ev.Source,
			House:       ev.House,
			Counterpart: ev.Counterpart,
			Delta:       ev.Delta,
			Reason:      ev.Reason,
		})
		if h, ok := state.Houses.Get(ev.House); ok {
			h.Prestige += ev.Delta
			state.Houses.Update(ev.House, h)
		}
	}
}

// ZeroSumResidual sums every non-achievement event's Delta for the turn;
// a correct resolver always returns 0 here (§8: "for every turn, sum
// prestige changes ~= 0, excluding achievement-category events"). Callers
// use this as a property-test assertion, not as a runtime invariant gate,
// since floating-point is not involved (all deltas are int64) the sum is
// exact.
func (l *Ledger) ZeroSumResidual(turn int) int64 {
	var total int64
	for _, e := range l.Entries {
		if e.Turn != turn || AchievementSources[e.Source] {
			continue
		}
		total += e.Delta
	}
	return total
}

// ForHouse returns every ledger entry naming house as the primary actor,
// in turn order; used by the intel projection to surface a house's own
// prestige history in its PlayerState.
func (l *Ledger) ForHouse(house ids.HouseId) []Entry {
	var out []Entry
	for _, e := range l.Entries {
		if e.House == house {
			out = append(out, e)
		}
	}
	return out
}

// VictoryKind distinguishes how a game ended (§1: "win by accumulating
// Prestige or by surviving the elimination of rivals").
type VictoryKind int

const (
	NoVictory VictoryKind = iota
	PrestigeVictory
	EliminationVictory
)

// VictoryResult names the winner, if any, and why.
type VictoryResult struct {
	Kind   VictoryKind
	Winner ids.HouseId
}

// CheckVictory runs the Maintenance Phase's victory check (§4.5 phase 4g):
// a house whose Prestige has reached prestigeTarget wins outright; failing
// that, if every house but one has been eliminated (§3: "marked eliminated
// when last colony lost AND last fleet lost"), the sole survivor wins by
// elimination.
func CheckVictory(state *models.GameState, prestigeTarget int64) VictoryResult {
	var survivors []ids.HouseId
	var topHouse ids.HouseId
	var topPrestige int64
	first := true

	state.Houses.All(func(id ids.HouseId, h *models.House) {
		if !h.Eliminated {
			survivors = append(survivors, id)
		}
		if first || h.Prestige > topPrestige {
			topPrestige = h.Prestige
			topHouse = id
			first = false
		}
	})

	if prestigeTarget > 0 && topPrestige >= prestigeTarget {
		return VictoryResult{Kind: PrestigeVictory, Winner: topHouse}
	}
	if len(survivors) == 1 {
		return VictoryResult{Kind: EliminationVictory, Winner: survivors[0]}
	}
	return VictoryResult{Kind: NoVictory}
}

// CheckElimination marks house eliminated if it holds neither a colony
// nor a fleet (§3: "marked eliminated (not removed) when last colony lost
// AND last fleet lost"). Returns true if this call changed the flag.
func CheckElimination(state *models.GameState, houseID ids.HouseId) bool {
	h, ok := state.Houses.Get(houseID)
	if !ok || h.Eliminated {
		return false
	}
	hasColony := len(state.ColoniesByOwner[houseID]) > 0
	hasFleet := len(state.FleetsByOwner[houseID]) > 0
	if hasColony || hasFleet {
		return false
	}
	h.Eliminated = true
	state.Houses.Update(houseID, h)
	return true
}
