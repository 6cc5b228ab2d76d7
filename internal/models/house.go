// File: internal/models/house.go
// Project: EC4X Engine
// Description: Data model for House (player faction)
// Version: 1.0.0
// Created: 2026-01-07

package models

import "github.com/ec4x/engine/internal/ids"

// TechField enumerates the fourteen research fields a house can invest in.
// Field levels gate unit capability and economic bonuses throughout the
// resolver; see §4.9/GLOSSARY for the abbreviations.
type TechField int

const (
	TechEL  TechField = iota // Economics
	TechSL                   // Shield (colony) level
	TechCST                  // Construction
	TechWEP                  // Weapons
	TechTER                  // Terraforming
	TechELI                  // Electronic intelligence (detection)
	TechCLK                  // Cloaking
	TechSLD                  // Ship shields
	TechSTL                  // Stealth
	TechCIC                  // Counter-intelligence
	TechFC                   // Fighter control
	TechSC                   // Scanner
	TechFD                   // Fighter defense
	TechACO                  // Advanced colonization
	numTechFields
)

// TechTree holds a house's per-field level and the accumulated research
// points banked toward the next level of each field.
type TechTree struct {
	Levels [numTechFields]int
	Points [numTechFields]int
}

// Level returns the current level of field f.
func (t *TechTree) Level(f TechField) int { return t.Levels[f] }

// AddPoints credits research points to field f, returning the number of
// level-ups this allocation produced (callers apply any "tech advancement"
// prestige award per level-up).
func (t *TechTree) AddPoints(f TechField, points int, costPerLevel func(level int) int) int {
	t.Points[f] += points
	levelUps := 0
	for {
		cost := costPerLevel(t.Levels[f])
		if cost <= 0 || t.Points[f] < cost {
			break
		}
		t.Points[f] -= cost
		t.Levels[f]++
		levelUps++
	}
	return levelUps
}

// TaxPolicy records a house's colony-wide default tax rate; individual
// colonies may override it (Colony.TaxRate).
type TaxPolicy struct {
	DefaultRate float64 // 0.0-1.0
}

// EspionageBudget tracks the two point pools spent on espionage actions
// and counter-intelligence (§4.10: EBP offensive, CIP defensive).
type EspionageBudget struct {
	EBP int // offensive espionage budget points, banked across turns
	CIP int // counter-intelligence points, banked across turns
}

// House is a player faction: the root of ownership for colonies, fleets,
// ground units, facilities, projects, transfers, the intel database, and
// the tech tree (§3.3).
type House struct {
	ID         ids.HouseId
	Name       string
	Treasury   int64
	Prestige   int64
	Eliminated bool

	TechTree  TechTree
	TaxPolicy TaxPolicy
	Espionage EspionageBudget

	// DiplomaticRelations is keyed by the other house's id; a missing entry
	// means Neutral (the default starting state, §4.9).
	DiplomaticRelations map[ids.HouseId]DiplomaticState
}

// NewHouse returns a fresh house at game setup with Neutral relations to
// everyone (an absent map entry already means Neutral, but callers may want
// an explicit zero-value map to range over).
func NewHouse(id ids.HouseId, name string, startingTreasury int64) *House {
	return &House{
		ID:                  id,
		Name:                name,
		Treasury:            startingTreasury,
		DiplomaticRelations: make(map[ids.HouseId]DiplomaticState),
	}
}

// RelationWith returns the diplomatic state toward other, defaulting to
// Neutral when no relation has been recorded yet.
func (h *House) RelationWith(other ids.HouseId) DiplomaticState {
	if h.DiplomaticRelations == nil {
		return Neutral
	}
	if s, ok := h.DiplomaticRelations[other]; ok {
		return s
	}
	return Neutral
}

// SetRelationWith records a diplomatic state. Callers are responsible for
// keeping both houses' views symmetric (the diplomacy package always writes
// both sides together).
func (h *House) SetRelationWith(other ids.HouseId, state DiplomaticState) {
	if h.DiplomaticRelations == nil {
		h.DiplomaticRelations = make(map[ids.HouseId]DiplomaticState)
	}
	h.DiplomaticRelations[other] = state
}

// DiplomaticState is a rung on the escalation ladder described in §4.9.
type DiplomaticState int

const (
	Neutral DiplomaticState = iota
	Hostile
	Enemy
)

func (s DiplomaticState) String() string {
	switch s {
	case Neutral:
		return "Neutral"
	case Hostile:
		return "Hostile"
	case Enemy:
		return "Enemy"
	default:
		return "Unknown"
	}
}
