// File: internal/eventlog/log.go
// Project: EC4X Engine
// Description: Append-only per-turn game event log with per-event visibility scope (§7)
// Version: 1.0.0
// Created: 2026-07-30

// Package eventlog records what happened during turn resolution as a
// sequence of GameEvents, each scoped to the houses allowed to see it
// (§7): most events (combat, colonization, elimination) are broadcast to
// every house, but some — an OrderRejected notice chief among them — are
// visible only to the house that submitted the rejected order.
package eventlog

import (
	"sync"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/logger"
)

var log = logger.WithComponent("EventLog")

// Kind discriminates the event payload shape; the turn resolver's report
// (combat prestige, espionage prestige, shortfalls, violations) and
// rejected orders map to one event per reported item.
type Kind string

const (
	KindCombatResolved   Kind = "combat_resolved"
	KindColonyFounded    Kind = "colony_founded"
	KindColonyCaptured   Kind = "colony_captured"
	KindHouseEliminated  Kind = "house_eliminated"
	KindShortfall        Kind = "shortfall"
	KindCapacityViolation Kind = "capacity_violation"
	KindEspionageResolved Kind = "espionage_resolved"
	KindVictory          Kind = "victory"
	// KindOrderRejected is visible only to the submitting house (§7): a
	// client needs to know its own order failed validation, but no other
	// house should learn what orders a rival attempted.
	KindOrderRejected Kind = "order_rejected"
)

// GameEvent is one entry in the log: a monotonic sequence number, the turn
// it occurred on, a kind discriminator, the houses allowed to see it (nil
// means "every house"), and an opaque payload specific to Kind.
type GameEvent struct {
	Seq        int64
	Turn       int
	Kind       Kind
	Visibility map[ids.HouseId]bool // nil = broadcast to all houses
	Payload    interface{}
}

// VisibleTo reports whether houseID may see this event.
func (e *GameEvent) VisibleTo(houseID ids.HouseId) bool {
	if e.Visibility == nil {
		return true
	}
	return e.Visibility[houseID]
}

// maxRetainedEvents bounds how much log history a running game keeps in
// memory; older entries stay in the persistence layer's events table but
// are trimmed from the live Manager the same way the event notification
// buffer this package is adapted from trimmed old entries.
const maxRetainedEvents = 5000

// Manager accumulates one game's event log in memory, handing out
// monotonically increasing sequence numbers.
type Manager struct {
	mu     sync.RWMutex
	events []*GameEvent
	nextSeq int64
}

// NewManager returns an empty event log for one game.
func NewManager() *Manager {
	return &Manager{}
}

// Broadcast appends an event visible to every house.
func (m *Manager) Broadcast(turn int, kind Kind, payload interface{}) *GameEvent {
	return m.append(turn, kind, nil, payload)
}

// Scoped appends an event visible only to the listed houses.
func (m *Manager) Scoped(turn int, kind Kind, visibleTo []ids.HouseId, payload interface{}) *GameEvent {
	scope := make(map[ids.HouseId]bool, len(visibleTo))
	for _, h := range visibleTo {
		scope[h] = true
	}
	return m.append(turn, kind, scope, payload)
}

func (m *Manager) append(turn int, kind Kind, visibility map[ids.HouseId]bool, payload interface{}) *GameEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSeq++
	ev := &GameEvent{Seq: m.nextSeq, Turn: turn, Kind: kind, Visibility: visibility, Payload: payload}
	m.events = append(m.events, ev)
	if len(m.events) > maxRetainedEvents {
		dropped := len(m.events) - maxRetainedEvents
		m.events = m.events[dropped:]
		log.Debug("Trimmed event log: dropped=%d retained=%d", dropped, len(m.events))
	}
	return ev
}

// ForHouse returns every event visible to houseID, oldest first.
func (m *Manager) ForHouse(houseID ids.HouseId) []*GameEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*GameEvent, 0, len(m.events))
	for _, ev := range m.events {
		if ev.VisibleTo(houseID) {
			out = append(out, ev)
		}
	}
	return out
}

// Since returns every event visible to houseID with Seq > afterSeq, for
// incremental polling by a client that already has everything up to
// afterSeq.
func (m *Manager) Since(houseID ids.HouseId, afterSeq int64) []*GameEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*GameEvent
	for _, ev := range m.events {
		if ev.Seq > afterSeq && ev.VisibleTo(houseID) {
			out = append(out, ev)
		}
	}
	return out
}

// All returns the complete in-memory log, unfiltered; used by the
// persistence layer to flush events to the events table.
func (m *Manager) All() []*GameEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*GameEvent, len(m.events))
	copy(out, m.events)
	return out
}
