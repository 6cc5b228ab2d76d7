// File: internal/combat/planetary.go
// Project: EC4X Engine
// Description: Planetary theater resolution: Bombard/Invade/Blitz (§4.6.3)
// Version: 1.0.0
// Created: 2026-01-07

package combat

import (
	"math/rand"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

// BombardResult summarizes a Bombard run against a colony.
type BombardResult struct {
	RoundsFired     int
	IUDamage        int64
	PopulationLoss  int64
	CriticalRounds  int
	BlockadeApplied bool
}

// Bombard deals d20 damage to IU per round, up to MaxBombardRoundsPerTurn;
// a critical round (d20 == 20) additionally reduces population, and any
// Bombard run leaves the colony under blockade for the rest of the turn
// (§4.6.3, §4.4e).
func Bombard(colony *models.Colony, snap *rules.Snapshot, rng *rand.Rand) BombardResult {
	result := BombardResult{BlockadeApplied: true}
	for round := 0; round < snap.Combat.MaxBombardRoundsPerTurn; round++ {
		if colony.IU <= 0 {
			break
		}
		roll := int64(rng.Intn(20) + 1)
		result.RoundsFired++
		result.IUDamage += roll
		colony.IU -= roll
		if colony.IU < 0 {
			colony.IU = 0
		}
		if roll == 20 {
			result.CriticalRounds++
			loss := colony.Population / 20
			result.PopulationLoss += loss
			colony.Population -= loss
			if colony.Population < 0 {
				colony.Population = 0
			}
		}
	}
	return result
}

// InvadeResult summarizes the ground-combat outcome of an Invade order.
type InvadeResult struct {
	AttackerStrength int
	DefenderStrength int
	Victory          bool
	PopulationLoss   int64
}

func groundStrength(state *models.GameState, unitIDs []ids.GroundUnitId) int {
	total := 0
	for _, id := range unitIDs {
		u, ok := state.GroundUnits.Get(id)
		if ok && !u.Destroyed {
			total += u.CombatStrength
		}
	}
	return total
}

// Invade resolves ground combat: attacker marines (embarkedMarines) vs the
// colony's garrison (armies, marines, batteries). Victory transfers
// ownership is the caller's responsibility (via state.UpdateColonyOwner);
// this function only computes the outcome and population loss (§4.6.3:
// "population loss = invasion_iu_loss × current_IU").
func Invade(state *models.GameState, colony *models.Colony, embarkedMarines []ids.GroundUnitId, snap *rules.Snapshot) InvadeResult {
	attackerStrength := groundStrength(state, embarkedMarines)
	defenderStrength := groundStrength(state, colony.Garrison)

	result := InvadeResult{AttackerStrength: attackerStrength, DefenderStrength: defenderStrength}
	if defenderStrength == 0 || float64(attackerStrength) >= float64(defenderStrength)*snap.Combat.GroundCombatVictoryRatio {
		result.Victory = true
		result.PopulationLoss = int64(float64(colony.IU) * snap.Combat.InvasionIULoss)
		destroyGarrison(state, colony)
	} else {
		destroyAttackers(state, embarkedMarines, attackerStrength, defenderStrength)
	}
	return result
}

// Blitz runs Bombard immediately followed by Invade in the same turn, at
// the higher BlitzIULoss population-loss rate (§4.6.3).
func Blitz(state *models.GameState, colony *models.Colony, embarkedMarines []ids.GroundUnitId, snap *rules.Snapshot, rng *rand.Rand) (BombardResult, InvadeResult) {
	bombard := Bombard(colony, snap, rng)
	invade := Invade(state, colony, embarkedMarines, snap)
	if invade.Victory {
		invade.PopulationLoss = int64(float64(colony.IU) * snap.Combat.BlitzIULoss)
	}
	return bombard, invade
}

func destroyGarrison(state *models.GameState, colony *models.Colony) {
	for _, id := range colony.Garrison {
		u, ok := state.GroundUnits.Get(id)
		if !ok {
			continue
		}
		u.Destroyed = true
		state.GroundUnits.Update(id, u)
	}
	colony.Garrison = nil
}

// destroyAttackers applies proportional losses to a failed invasion: the
// attacker loses units in proportion to how badly it was outmatched,
// capped so at least one embarked unit can retreat home.
func destroyAttackers(state *models.GameState, embarkedMarines []ids.GroundUnitId, attackerStrength, defenderStrength int) {
	if attackerStrength == 0 || len(embarkedMarines) <= 1 {
		return
	}
	lossFraction := float64(defenderStrength-attackerStrength) / float64(defenderStrength)
	if lossFraction <= 0 {
		return
	}
	if lossFraction > 1 {
		lossFraction = 1
	}
	losses := int(float64(len(embarkedMarines)-1) * lossFraction)
	for i := 0; i < losses; i++ {
		u, ok := state.GroundUnits.Get(embarkedMarines[i])
		if !ok {
			continue
		}
		u.Destroyed = true
		state.GroundUnits.Update(embarkedMarines[i], u)
	}
}
