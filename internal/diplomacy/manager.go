// File: internal/diplomacy/manager.go
// Project: EC4X Engine
// Description: Diplomatic escalation ladder and pact-violation tracking (§4.9)
// Version: 1.0.0
// Created: 2026-07-30

// Package diplomacy runs the Neutral/Hostile/Enemy escalation ladder
// between houses (§4.9): automatic escalation from provocative and
// threatening fleet orders, negotiated de-escalation with a cooldown on
// rejection, and the cooperation semantics combat eligibility depends on.
// State lives on House.DiplomaticRelations; this package only ever writes
// both sides of a pair together so the relation stays symmetric.
package diplomacy

import (
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
)

// Manager runs escalation/de-escalation for one game. It tracks the
// bookkeeping the House record itself has no room for: pending
// de-escalation offers, cooldowns after a rejected offer, the
// last-combat-turn table §4.9's "no combat in last 3 turns" rule reads,
// and pact-violation status (dishonored/isolated).
type Manager struct {
	state *models.GameState

	// pendingOffers[offeror<<16|target] = turn the offer was made.
	pendingOffers map[uint64]int
	// cooldownUntil[pairKey] = turn before which a new offer is rejected
	// outright after a prior rejection.
	cooldownUntil map[uint64]int
	// lastCombatTurn[pairKey] = most recent turn these two houses fought.
	lastCombatTurn map[uint64]int

	// Violations records pact-violation events (§4.9, modelled for
	// extensibility: no pact-formation mechanic is specified, but the
	// violation bookkeeping is).
	Violations []Violation
	// dishonoredUntil/isolatedUntil key by house id.
	dishonoredUntil map[ids.HouseId]int
	isolatedUntil   map[ids.HouseId]int
}

// Violation records one pact violation (§4.9).
type Violation struct {
	Violator ids.HouseId
	Victim   ids.HouseId
	Turn     int
}

// NewManager returns a diplomacy Manager bound to state.
func NewManager(state *models.GameState) *Manager {
	return &Manager{
		state:           state,
		pendingOffers:   make(map[uint64]int),
		cooldownUntil:   make(map[uint64]int),
		lastCombatTurn:  make(map[uint64]int),
		dishonoredUntil: make(map[ids.HouseId]int),
		isolatedUntil:   make(map[ids.HouseId]int),
	}
}

func pairKey(a, b ids.HouseId) uint64 {
	if a > b {
		a, b = b, a
	}
	return (uint64(a) << 32) | uint64(b)
}

// setRelation writes the same DiplomaticState on both houses' views,
// keeping §3.2's symmetry invariant.
func (m *Manager) setRelation(a, b ids.HouseId, state models.DiplomaticState) {
	ha, ok := m.state.Houses.Get(a)
	if !ok {
		return
	}
	hb, ok := m.state.Houses.Get(b)
	if !ok {
		return
	}
	ha.SetRelationWith(b, state)
	hb.SetRelationWith(a, state)
	m.state.Houses.Update(a, ha)
	m.state.Houses.Update(b, hb)
}

// OrderClass is the provocation tier of a fleet order, as classified by
// the caller (internal/orders already carries ThreateningOrders and
// ProvocativeOrders tables keyed by its own FleetOrderKind; this package
// stays independent of the orders package by taking the classification as
// a plain bool pair instead of importing orders.FleetOrderKind).
type OrderClass struct {
	Provocative bool
	Threatening bool
}

// EscalateOnOrder applies §4.9's automatic-escalation rule for one fleet
// order actor issued against target's system: a threatening order jumps
// straight to Enemy from any starting state; a provocative order steps
// Neutral->Hostile on first offense and Hostile->Enemy on the second.
// offenseCount is the number of prior provocative offenses actor has
// committed against target this game (caller-tracked, since the count
// itself is not diplomatic state — it only matters up to the Hostile
// transition).
func (m *Manager) EscalateOnOrder(actor, target ids.HouseId, class OrderClass, priorOffenses int) models.DiplomaticState {
	ha, ok := m.state.Houses.Get(actor)
	if !ok {
		return models.Neutral
	}
	current := ha.RelationWith(target)

	if class.Threatening {
		m.setRelation(actor, target, models.Enemy)
		return models.Enemy
	}
	if !class.Provocative {
		return current
	}

	switch current {
	case models.Neutral:
		m.setRelation(actor, target, models.Hostile)
		return models.Hostile
	case models.Hostile:
		if priorOffenses >= 1 {
			m.setRelation(actor, target, models.Enemy)
			return models.Enemy
		}
		return models.Hostile
	default:
		return current
	}
}

// OfferDeescalation records actor's offer to step down relations with
// target by one rung (§4.9). It fails if a cooldown from a prior
// rejection is still active.
func (m *Manager) OfferDeescalation(actor, target ids.HouseId, turn int) bool {
	key := pairKey(actor, target)
	if until, ok := m.cooldownUntil[key]; ok && turn < until {
		return false
	}
	m.pendingOffers[(uint64(actor)<<16)|uint64(target)] = turn
	return true
}

// AcceptDeescalation resolves target's acceptance of actor's pending
// offer: drops the relation one rung provided neither house has fought
// the other in the last 3 turns (§4.9). Acceptance of a non-existent
// offer is a no-op returning false.
func (m *Manager) AcceptDeescalation(actor, target ids.HouseId, turn int) bool {
	offerKey := (uint64(actor) << 16) | uint64(target)
	offerTurn, ok := m.pendingOffers[offerKey]
	if !ok {
		return false
	}
	delete(m.pendingOffers, offerKey)

	if last, ok := m.lastCombatTurn[pairKey(actor, target)]; ok && turn-last < 3 {
		return false
	}
	_ = offerTurn

	ha, ok := m.state.Houses.Get(actor)
	if !ok {
		return false
	}
	current := ha.RelationWith(target)
	var next models.DiplomaticState
	switch current {
	case models.Enemy:
		next = models.Hostile
	case models.Hostile:
		next = models.Neutral
	default:
		return false
	}
	m.setRelation(actor, target, next)
	return true
}

// RejectDeescalation records target's rejection of actor's offer and
// starts a 3-turn cooldown before either side may offer again (§4.9).
func (m *Manager) RejectDeescalation(actor, target ids.HouseId, turn int) {
	offerKey := (uint64(actor) << 16) | uint64(target)
	delete(m.pendingOffers, offerKey)
	m.cooldownUntil[pairKey(actor, target)] = turn + 3
}

// RecordCombat marks that a and b fought during turn, gating future
// de-escalation acceptance (§4.9 "no combat in last 3 turns").
func (m *Manager) RecordCombat(a, b ids.HouseId, turn int) {
	m.lastCombatTurn[pairKey(a, b)] = turn
}

// CanCooperate reports whether a and b may share a system and jointly
// engage a third house without fighting each other: both Neutral to one
// another is the cooperative case (§4.9 "Cooperation semantics").
func CanCooperate(state *models.GameState, a, b ids.HouseId) bool {
	ha, ok := state.Houses.Get(a)
	if !ok {
		return false
	}
	return ha.RelationWith(b) == models.Neutral
}

// CombatRequired reports whether co-located fleets from houses a and b
// actually fight this turn, given the stricter reading of the source
// §4.5/§9 adopts: Enemy fights on sight; Hostile requires at least one
// side to have issued a threatening order against the other this turn;
// Neutral never fights.
func CombatRequired(state *models.GameState, a, b ids.HouseId, threateningOrderIssued bool) bool {
	ha, ok := state.Houses.Get(a)
	if !ok {
		return false
	}
	switch ha.RelationWith(b) {
	case models.Enemy:
		return true
	case models.Hostile:
		return threateningOrderIssued
	default:
		return false
	}
}

// RecordViolation appends a pact-violation entry and applies its
// dishonored (3 turns, +1 prestige to attackers while active — applied by
// the caller via the prestige package, this method only tracks the
// window) and isolation (5 turns, cannot form pacts) status windows
// (§4.9).
func (m *Manager) RecordViolation(violator, victim ids.HouseId, turn int) {
	m.Violations = append(m.Violations, Violation{Violator: violator, Victim: victim, Turn: turn})
	m.dishonoredUntil[violator] = turn + 3
	m.isolatedUntil[violator] = turn + 5
}

// IsDishonored reports whether house is within its post-violation
// dishonored window at turn.
func (m *Manager) IsDishonored(house ids.HouseId, turn int) bool {
	until, ok := m.dishonoredUntil[house]
	return ok && turn < until
}

// IsIsolated reports whether house is within its post-violation isolation
// window (cannot form pacts) at turn.
func (m *Manager) IsIsolated(house ids.HouseId, turn int) bool {
	until, ok := m.isolatedUntil[house]
	return ok && turn < until
}
