// File: internal/models/effect.go
// Project: EC4X Engine
// Description: Data model for ongoing effects (espionage fallout, sabotage, etc)
// Version: 1.0.0
// Created: 2026-01-07

package models

import "github.com/ec4x/engine/internal/ids"

// EffectKind enumerates the ongoing-effect variants espionage actions and
// combat outcomes can apply to a house or system (§3).
type EffectKind int

const (
	EffectSRPReduction EffectKind = iota
	EffectNCVReduction
	EffectStarbaseCrippled
	EffectIntelBlocked
	EffectIntelCorrupted
	EffectTaxReduction
)

func (k EffectKind) String() string {
	switch k {
	case EffectSRPReduction:
		return "SRPReduction"
	case EffectNCVReduction:
		return "NCVReduction"
	case EffectStarbaseCrippled:
		return "StarbaseCrippled"
	case EffectIntelBlocked:
		return "IntelBlocked"
	case EffectIntelCorrupted:
		return "IntelCorrupted"
	case EffectTaxReduction:
		return "TaxReduction"
	default:
		return "Unknown"
	}
}

// OngoingEffect is a timed modifier, decremented once per Maintenance phase
// and removed when TurnsRemaining reaches zero (§4.4d).
type OngoingEffect struct {
	ID            ids.EffectId
	Kind          EffectKind
	TargetHouse   ids.HouseId
	TargetSystem  ids.SystemId // zero value (NilSystem) when not system-scoped
	TurnsRemaining int
	Magnitude     float64
}

// Tick decrements the remaining duration by one turn, returning true when
// the effect has expired and should be removed from the arena.
func (e *OngoingEffect) Tick() (expired bool) {
	e.TurnsRemaining--
	return e.TurnsRemaining <= 0
}
