// File: internal/combat/orbital.go
// Project: EC4X Engine
// Description: Orbital theater resolution: survivors vs defenders-in-orbit (§4.6.2)
// Version: 1.0.0
// Created: 2026-01-07

package combat

import (
	"math"
	"math/rand"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

// OrbitalDefense composes every defensive asset in orbit over a colony:
// guard fleets, reserve fleets (effective at 50% AS per §4.6.2), starbase
// squadrons, and unassigned squadrons. Mothballed ships are screened and
// contribute nothing; callers exclude them before building this struct.
type OrbitalDefense struct {
	GuardSquadrons   []ids.SquadronId
	ReserveSquadrons []ids.SquadronId
	HouseID          ids.HouseId
	ShieldLevel      int
	SLDMultiplier    float64
}

func (d OrbitalDefense) toSide() Side {
	squadrons := make([]ids.SquadronId, 0, len(d.GuardSquadrons)+len(d.ReserveSquadrons))
	squadrons = append(squadrons, d.GuardSquadrons...)
	squadrons = append(squadrons, d.ReserveSquadrons...)
	return Side{HouseID: d.HouseID, Squadrons: squadrons, Roe: models.ROEStandard, WEPMultiplier: 1.0, SLDMultiplier: d.SLDMultiplier}
}

// effectiveAS sums guard squadrons at full strength and reserve squadrons
// at half strength (§4.6.2: "reserve fleets (effective at 50%)").
func (d OrbitalDefense) effectiveAS(state *models.GameState) float64 {
	guard := Side{HouseID: d.HouseID, Squadrons: d.GuardSquadrons, WEPMultiplier: 1.0}
	reserve := Side{HouseID: d.HouseID, Squadrons: d.ReserveSquadrons, WEPMultiplier: 1.0}
	return sideAS(state, guard) + 0.5*sideAS(state, reserve)
}

// OrbitalResult is the outcome of the orbital theater.
type OrbitalResult struct {
	SpaceResult
	AttackerWon bool
}

// shieldBlockChance maps SLD level to the chance a single hit is blocked
// outright before it lands, capped at 0.9 so a shield can never make a
// colony fully invulnerable.
func shieldBlockChance(level int) float64 {
	chance := 0.1 * float64(level)
	if chance > 0.9 {
		chance = 0.9
	}
	return chance
}

// ResolveOrbital runs the orbital round loop: only an attacker that won
// space (or bypassed it because the defender had no mobile fleet) engages.
// Reserve squadrons count at half AS toward the defender's hit total (see
// OrbitalDefense.effectiveAS); planetary shields block a fraction
// of incoming hits per ShieldLevel before they reach defenders.
func ResolveOrbital(state *models.GameState, snap *rules.Snapshot, rng *rand.Rand, attacker Side, defense OrbitalDefense) OrbitalResult {
	defSide := defense.toSide()
	result := OrbitalResult{SpaceResult: SpaceResult{Retreated: make(map[ids.HouseId]bool)}}

	block := shieldBlockChance(defense.ShieldLevel)
	desperation := false

	for round := 1; ; round++ {
		squadAtk := liveSquadrons(state, attacker.Squadrons)
		squadDef := liveSquadrons(state, defSide.Squadrons)
		if len(squadAtk) == 0 {
			result.AttackerWon = false
			break
		}
		if len(squadDef) == 0 {
			result.AttackerWon = true
			break
		}

		asAtk := sideAS(state, attacker)
		asDef := defense.effectiveAS(state)
		hitsAtk := int(math.Floor(asAtk * snap.Combat.RoundCoefficient))
		hitsDef := int(math.Floor(asDef * snap.Combat.RoundCoefficient))
		if desperation {
			hitsAtk += snap.Combat.StalemateDRM
			hitsDef += snap.Combat.StalemateDRM
		}

		if hitsAtk <= 0 && hitsDef <= 0 {
			if desperation {
				result.Stalemate = true
				break
			}
			desperation = true
			continue
		}
		desperation = false

		blockedHits := 0
		for i := 0; i < hitsAtk; i++ {
			if rng.Float64() < block {
				blockedHits++
			}
		}
		effectiveHitsAtk := hitsAtk - blockedHits

		log := RoundLog{Round: round, HitsA: effectiveHitsAtk, HitsB: hitsDef}
		log.append(applyHits(state, snap, rng, squadDef, effectiveHitsAtk, defSide.PrioritizeHulls(state)))
		log.append(applyHits(state, snap, rng, squadAtk, hitsDef, attacker.PrioritizeHulls(state)))
		result.Rounds = append(result.Rounds, log)

		if retreatSide(state, snap, rng, attacker, squadAtk, asDef) {
			result.Retreated[attacker.HouseID] = true
			result.AttackerWon = false
			break
		}
	}

	return result
}
