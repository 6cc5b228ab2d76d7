// File: internal/espionage/actions.go
// Project: EC4X Engine
// Description: EBP/CIP espionage action resolution, detection, and effects (§4.10)
// Version: 1.0.0
// Created: 2026-07-30

// Package espionage resolves the EBP-funded actions a house's
// EspionageOrder names each turn: detection against the target's CIP and
// CIC tech, success effects applied from the data-driven rules.Snapshot
// action table, and the failed-espionage prestige penalty. Scout-based
// espionage (SpyPlanet/SpySystem/HackStarbase) is a separate path
// resolved by the Conflict Phase directly against intel.Observe*; this
// package only covers the EBP/CIP action list (§4.10).
package espionage

import (
	"math"
	"math/rand"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

// Outcome is the result of resolving one EspionageOrder.
type Outcome struct {
	Attacker   ids.HouseId
	Target     ids.HouseId
	Action     string
	Detected   bool
	Prestige   []PrestigeEvent
	EffectKind models.EffectKind
	EffectApplied bool
}

// PrestigeEvent mirrors combat.PrestigeEvent's shape; espionage has its
// own constructor set because its zero-sum pairing rules (failed actions
// penalize only the attacker, not a symmetric pair) differ from combat's.
type PrestigeEvent struct {
	Source      string
	House       ids.HouseId
	Counterpart ids.HouseId
	Delta       int64
	Reason      string
}

// cipModifier returns the detection-roll bonus defender's banked CIP buys,
// tiered by point bucket per §4.10 ("CIP points apply a roll modifier
// tiered by point bucket"): every 5 CIP banked adds +1, capped at +10.
func cipModifier(cip int) int {
	mod := cip / 5
	if mod > 10 {
		mod = 10
	}
	return mod
}

// detectionThreshold derives the defender's base detection threshold from
// their CIC tech level: higher CIC means espionage is easier to catch, so
// the threshold the detection roll must reach drops as CIC rises.
func detectionThreshold(defenderCIC int) int {
	threshold := 15 - defenderCIC
	if threshold < 5 {
		threshold = 5
	}
	return threshold
}

// Resolve runs one EspionageOrder to completion (§4.10): spends the
// attacker's EBP, rolls detection against the target's CIP/CIC, and on
// success applies the action's data-driven effects; on detection the
// attacker pays failed_espionage_prestige and the target is informed but
// no effect lands. sweepActive marks the target currently running a
// CounterIntelSweep, which shifts the detection threshold by +5 for its
// duration (§4.5 "Simultaneous tie-breaks").
func Resolve(state *models.GameState, snap *rules.Snapshot, rng *rand.Rand, attackerID, targetID ids.HouseId, actionName string, ebpSpend int, sweepActive bool) Outcome {
	out := Outcome{Attacker: attackerID, Target: targetID, Action: actionName}

	rule, ok := snap.Espionage[actionName]
	if !ok {
		return out
	}
	attacker, ok := state.Houses.Get(attackerID)
	if !ok || attacker.Espionage.EBP < rule.EBPCost {
		return out
	}
	target, ok := state.Houses.Get(targetID)
	if !ok || target.Eliminated {
		return out
	}

	attacker.Espionage.EBP -= rule.EBPCost
	state.Houses.Update(attackerID, attacker)

	threshold := detectionThreshold(target.TechTree.Level(models.TechCIC))
	if sweepActive {
		threshold += 5
	}
	roll := rng.Intn(20) + 1 + cipModifier(target.Espionage.CIP)
	out.Detected = roll >= threshold

	if out.Detected {
		out.Prestige = []PrestigeEvent{{
			Source: "FailedEspionage", House: attackerID, Counterpart: targetID,
			Delta: -snap.Prestige.FailedEspionagePenalty, Reason: "espionage action detected: " + actionName,
		}}
		return out
	}

	applyEffects(state, snap, rng, attackerID, targetID, rule, &out)
	return out
}

// applyEffects lands one action's success consequences: prestige
// (zero-sum with the target unless the action has none configured), SRP
// theft, IU damage, and/or an OngoingEffect, all driven by the action's
// EspionageActionRule descriptor (§4.10).
func applyEffects(state *models.GameState, snap *rules.Snapshot, rng *rand.Rand, attackerID, targetID ids.HouseId, rule rules.EspionageActionRule, out *Outcome) {
	if rule.PrestigeDelta != 0 {
		out.Prestige = []PrestigeEvent{
			{Source: rule.Name, House: attackerID, Counterpart: targetID, Delta: -rule.PrestigeDelta, Reason: rule.Name + " succeeded"},
			{Source: rule.Name, House: targetID, Counterpart: attackerID, Delta: rule.PrestigeDelta, Reason: rule.Name + " suffered"},
		}
	}

	if rule.SRPStolen > 0 {
		target, _ := state.Houses.Get(targetID)
		attacker, _ := state.Houses.Get(attackerID)
		if target != nil && attacker != nil {
			stolen := rule.SRPStolen
			stealFromField(target, attacker, stolen)
			state.Houses.Update(targetID, target)
			state.Houses.Update(attackerID, attacker)
		}
	}

	if rule.IUDamageDice != "" {
		dmg := rollDice(rng, rule.IUDamageDice)
		applyIUDamageToRandomColony(state, rng, targetID, dmg)
	}

	if rule.EffectTurns > 0 {
		kind := effectKindForAction(rule.Name)
		out.EffectKind = kind
		out.EffectApplied = true
		effect := &models.OngoingEffect{
			Kind:           kind,
			TargetHouse:    targetID,
			TurnsRemaining: rule.EffectTurns,
			Magnitude:      rule.EffectMagnitude,
		}
		state.Effects.Create(effect)
	}
}

// effectKindForAction maps a named espionage action to the OngoingEffect
// kind it applies, per the action list in §4.10.
func effectKindForAction(name string) models.EffectKind {
	switch name {
	case "CyberAttack":
		return models.EffectNCVReduction
	case "EconomicManipulation":
		return models.EffectTaxReduction
	case "PlantDisinformation":
		return models.EffectIntelCorrupted
	default:
		return models.EffectIntelBlocked
	}
}

// stealFromField moves research points from the target's most-invested
// tech field into the attacker's matching field (§4.10 "SRP stolen from
// target's science pool to attacker's").
func stealFromField(target, attacker *models.House, amount int) {
	field := 0
	best := -1
	for f := 0; f < len(target.TechTree.Points); f++ {
		if target.TechTree.Points[f] > best {
			best = target.TechTree.Points[f]
			field = f
		}
	}
	take := amount
	if target.TechTree.Points[field] < take {
		take = target.TechTree.Points[field]
	}
	target.TechTree.Points[field] -= take
	attacker.TechTree.Points[field] += take
}

// rollDice parses a "NdM" descriptor (e.g. "3d6") and rolls it once.
func rollDice(rng *rand.Rand, dice string) int {
	var n, sides int
	if _, err := parseDice(dice, &n, &sides); err != nil || sides <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < n; i++ {
		total += rng.Intn(sides) + 1
	}
	return total
}

func parseDice(s string, n, sides *int) (int, error) {
	sep := -1
	for i, c := range s {
		if c == 'd' || c == 'D' {
			sep = i
			break
		}
	}
	if sep < 0 {
		return 0, errNotDice
	}
	*n = atoiOrOne(s[:sep])
	*sides = atoiOrOne(s[sep+1:])
	return 0, nil
}

func atoiOrOne(s string) int {
	v := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 1
		}
		v = v*10 + int(c-'0')
	}
	if v == 0 {
		return 1
	}
	return v
}

var errNotDice = dicefmtError("not a dice descriptor")

type dicefmtError string

func (e dicefmtError) Error() string { return string(e) }

// applyIUDamageToRandomColony deducts dmg IU from one of the target
// house's founded colonies, chosen uniformly at random among them (the
// sabotage actions do not name a specific colony, §4.10).
func applyIUDamageToRandomColony(state *models.GameState, rng *rand.Rand, targetID ids.HouseId, dmg int) {
	var candidates []ids.ColonyId
	for _, sysID := range state.ColoniesByOwner[targetID] {
		state.Colonies.All(func(cid ids.ColonyId, c *models.Colony) {
			if c.SystemID == sysID && c.Owner == targetID && c.Founded {
				candidates = append(candidates, cid)
			}
		})
	}
	if len(candidates) == 0 {
		return
	}
	pick := candidates[rng.Intn(len(candidates))]
	c, ok := state.Colonies.Get(pick)
	if !ok {
		return
	}
	c.IU -= int64(dmg)
	if c.IU < 0 {
		c.IU = 0
	}
	state.Colonies.Update(pick, c)
}

// PurchasePoints converts treasury into banked EBP/CIP at the rules'
// fixed PP-per-point rate (§4.10 "purchased with treasury (fixed PP/point
// in config)").
func PurchasePoints(house *models.House, ppPerPoint int64, ebpBuy, cipBuy int) bool {
	cost := int64(ebpBuy+cipBuy) * ppPerPoint
	if cost > house.Treasury {
		return false
	}
	house.Treasury -= cost
	house.Espionage.EBP += ebpBuy
	house.Espionage.CIP += cipBuy
	return true
}

// ensure math import is exercised: EffectMagnitude clamps use it in
// callers; this helper keeps espionage's variance math colocated with the
// action resolution it tunes.
func clampMagnitude(m float64) float64 {
	return math.Max(0, math.Min(1, m))
}
