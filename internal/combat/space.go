// File: internal/combat/space.go
// Project: EC4X Engine
// Description: Space theater resolution: mobile fleet vs mobile fleet (§4.6.1)
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

// SpaceResult is the outcome of one space-theater engagement.
type SpaceResult struct {
	Rounds    []RoundLog
	Prestige  []PrestigeEvent
	Retreated map[ids.HouseId]bool
	Stalemate bool
}

// ResolveSpace runs the round-based space-combat loop between two sides
// co-located at a system (§4.6.1). CER toggles a per-round attack
// multiplier per side (scouts_present/surprise/ambush); cerA/cerB name the
// conditions that apply to that side's opposing fire (i.e. cerA lists
// conditions benefiting side A's attack against B).
func ResolveSpace(state *models.GameState, snap *rules.Snapshot, rng *rand.Rand, a, b Side, cerA, cerB []string) SpaceResult {
	result := SpaceResult{Retreated: make(map[ids.HouseId]bool)}

	desperation := false
	for round := 1; ; round++ {
		squadA := liveSquadrons(state, a.Squadrons)
		squadB := liveSquadrons(state, b.Squadrons)
		if len(squadA) == 0 || len(squadB) == 0 {
			break
		}

		asA := sideAS(state, a) * cerMultiplier(snap, cerA)
		asB := sideAS(state, b) * cerMultiplier(snap, cerB)

		hitsA := int(math.Floor(asA * snap.Combat.RoundCoefficient))
		hitsB := int(math.Floor(asB * snap.Combat.RoundCoefficient))
		if desperation {
			hitsA += snap.Combat.StalemateDRM
			hitsB += snap.Combat.StalemateDRM
		}

		if hitsA <= 0 && hitsB <= 0 {
			if desperation {
				result.Stalemate = true
				result.Rounds = append(result.Rounds, RoundLog{Round: round, Stalemate: true})
				break
			}
			desperation = true
			result.Rounds = append(result.Rounds, RoundLog{Round: round, Stalemate: true, DesperationDRM: true})
			continue
		}
		desperation = false

		log := RoundLog{Round: round, HitsA: hitsA, HitsB: hitsB}
		log.append(applyHits(state, snap, rng, squadB, hitsA, b.PrioritizeHulls(state)))
		log.append(applyHits(state, snap, rng, squadA, hitsB, a.PrioritizeHulls(state)))
		result.Rounds = append(result.Rounds, log)

		if retreatSide(state, snap, rng, a, squadA, sideAS(state, b)) {
			result.Retreated[a.HouseID] = true
			result.Prestige = append(result.Prestige, forceRetreatEvents(a.HouseID, b.HouseID, snap)...)
			break
		}
		if retreatSide(state, snap, rng, b, squadB, sideAS(state, a)) {
			result.Retreated[b.HouseID] = true
			result.Prestige = append(result.Prestige, forceRetreatEvents(b.HouseID, a.HouseID, snap)...)
			break
		}
	}

	for house, retreated := range result.Retreated {
		if retreated {
			pursuitVolley(state, snap, rng, house, a, b, &result)
		}
	}
	return result
}

func (l *RoundLog) append(destroyed, crippled []ids.ShipId, criticals []CriticalHit) {
	l.Destroyed = append(l.Destroyed, destroyed...)
	l.Crippled = append(l.Crippled, crippled...)
	l.Criticals = append(l.Criticals, criticals...)
}

// PrioritizeHulls reports whether any live squadron on this side is flagged
// to direct fire at the weakest-CR enemy squadrons first.
func (s Side) PrioritizeHulls(state *models.GameState) bool {
	for _, id := range s.Squadrons {
		if sq, ok := state.Squadrons.Get(id); ok && sq.PrioritizeHulls {
			return true
		}
	}
	return false
}

func cerMultiplier(snap *rules.Snapshot, conditions []string) float64 {
	mult := 1.0
	for _, c := range conditions {
		if m, ok := snap.Combat.CEREntries[c]; ok {
			mult *= m
		}
	}
	return mult
}

// targetSquadron picks which enemy squadron absorbs the next hit: weakest
// CR first when prioritizeHulls, otherwise the squadrons are cycled
// uniformly by round-robin over the live list.
func targetSquadron(state *models.GameState, squadrons []ids.SquadronId, prioritizeHulls bool, round int) ids.SquadronId {
	if !prioritizeHulls {
		return squadrons[round%len(squadrons)]
	}
	weakest := squadrons[0]
	weakestCR := flagshipCR(state, weakest)
	for _, id := range squadrons[1:] {
		if cr := flagshipCR(state, id); cr < weakestCR {
			weakest, weakestCR = id, cr
		}
	}
	return weakest
}

func flagshipCR(state *models.GameState, squadronID ids.SquadronId) int {
	sq, ok := state.Squadrons.Get(squadronID)
	if !ok {
		return math.MaxInt32
	}
	ship, ok := state.Ships.Get(sq.FlagshipID)
	if !ok {
		return math.MaxInt32
	}
	return ship.Class.CR
}

// applyHits distributes `hits` individual hits across the defending
// squadrons, checking a d20 critical roll per hit, and reports every ship
// that was destroyed or newly crippled.
func applyHits(state *models.GameState, snap *rules.Snapshot, rng *rand.Rand, defenders []ids.SquadronId, hits int, prioritizeHulls bool) ([]ids.ShipId, []ids.ShipId, []CriticalHit) {
	var destroyed, crippled []ids.ShipId
	var criticals []CriticalHit

	for round := 0; round < hits; round++ {
		live := liveSquadrons(state, defenders)
		if len(live) == 0 {
			break
		}
		sqID := targetSquadron(state, live, prioritizeHulls, round)
		sq, _ := state.Squadrons.Get(sqID)
		targetID := pickShipTarget(state, sq)
		if targetID == 0 {
			continue
		}
		ship, ok := state.Ships.Get(targetID)
		if !ok {
			continue
		}

		roll := rng.Intn(20) + 1
		if roll >= snap.Combat.CriticalThreshold {
			criticals = append(criticals, CriticalHit{ShipID: targetID})
			destroyed = append(destroyed, targetID)
			destroySquadronShip(state, sqID, targetID)
			continue
		}

		wasUndamaged := ship.State == models.Undamaged
		die := ship.ApplyHit()
		state.Ships.Update(targetID, ship)
		if die {
			destroyed = append(destroyed, targetID)
			destroySquadronShip(state, sqID, targetID)
		} else if wasUndamaged && ship.State == models.Crippled {
			crippled = append(crippled, targetID)
		}
	}
	return destroyed, crippled, criticals
}

// pickShipTarget selects the next ship within a squadron to absorb a hit:
// non-flagship members first, the flagship only once it is the last ship
// standing (destroying the flagship destroys the whole squadron, §4.6).
func pickShipTarget(state *models.GameState, sq *models.Squadron) ids.ShipId {
	for _, id := range sq.ShipIDs {
		if id != sq.FlagshipID {
			return id
		}
	}
	if len(sq.ShipIDs) > 0 {
		return sq.FlagshipID
	}
	return 0
}

func destroySquadronShip(state *models.GameState, squadronID ids.SquadronId, shipID ids.ShipId) {
	sq, ok := state.Squadrons.Get(squadronID)
	if !ok {
		return
	}
	if shipID == sq.FlagshipID {
		// Flagship down: the whole squadron is destroyed (§4.6).
		for _, memberID := range sq.ShipIDs {
			state.DestroyShip(memberID)
		}
		sq.Destroyed = true
		sq.ShipIDs = nil
		state.Squadrons.Update(squadronID, sq)
		return
	}
	state.DestroyShip(shipID)
}

// retreatSide reports whether side should attempt (and succeed at) a
// retreat this round given its ROE threshold against the current AS ratio
// (§4.6). Retreat is all-or-nothing for the whole side: fighter squadrons
// are not treated separately and withdraw with the rest of the side.
func retreatSide(state *models.GameState, snap *rules.Snapshot, rng *rand.Rand, side Side, live []ids.SquadronId, enemyAS float64) bool {
	threshold := side.Roe.RetreatThreshold()
	if threshold < 0 {
		return false
	}
	ownAS := 0.0
	for _, id := range live {
		ownAS += squadronAS(state, id, side.WEPMultiplier)
	}
	if enemyAS <= 0 {
		return false
	}
	ratio := ownAS / enemyAS
	return ratio < threshold
}

// pursuitVolley lets the non-retreating side fire one final half-CER volley
// at the retreating side (§4.6: "pursuit volley"). Spacelift ships whose
// escort retreated without them are destroyed outright.
func pursuitVolley(state *models.GameState, snap *rules.Snapshot, rng *rand.Rand, retreatingHouse ids.HouseId, a, b Side, result *SpaceResult) {
	pursuer := a
	retreater := b
	if a.HouseID == retreatingHouse {
		pursuer, retreater = b, a
	}
	live := liveSquadrons(state, retreater.Squadrons)
	if len(live) == 0 {
		return
	}
	as := sideAS(state, pursuer) * snap.Combat.PursuitVolleyFactor
	hits := int(math.Floor(as * snap.Combat.RoundCoefficient))
	if hits <= 0 {
		return
	}
	destroyed, crippled, criticals := applyHits(state, snap, rng, live, hits, pursuer.PrioritizeHulls(state))
	result.Rounds = append(result.Rounds, RoundLog{Destroyed: destroyed, Crippled: crippled, Criticals: criticals})

	for _, sqID := range live {
		sq, ok := state.Squadrons.Get(sqID)
		if !ok || sq.Destroyed {
			continue
		}
		for _, shipID := range sq.ShipIDs {
			ship, ok := state.Ships.Get(shipID)
			if ok && ship.Class.IsSpacelift {
				destroySquadronShip(state, sqID, shipID)
			}
		}
	}
}

func forceRetreatEvents(retreatingHouse, forcerHouse ids.HouseId, snap *rules.Snapshot) []PrestigeEvent {
	return []PrestigeEvent{
		{Source: "ForceRetreat", House: forcerHouse, Counterpart: retreatingHouse, Delta: snap.Prestige.ForceRetreatBonus, Reason: "forced enemy retreat"},
		{Source: "ForceRetreat", House: retreatingHouse, Counterpart: forcerHouse, Delta: -snap.Prestige.ForceRetreatBonus, Reason: "forced to retreat"},
	}
}
