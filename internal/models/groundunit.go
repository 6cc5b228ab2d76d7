// File: internal/models/groundunit.go
// Project: EC4X Engine
// Description: Data model for ground units (armies, marines, batteries, fighter squadrons)
// Version: 1.0.0
// Created: 2026-01-07

package models

import "github.com/ec4x/engine/internal/ids"

// GroundUnitKind distinguishes planetary assets from ship-borne ones; all
// four kinds are created by build orders and destroyed in planetary combat
// or by scrap orders (§3).
type GroundUnitKind int

const (
	GroundUnitArmy GroundUnitKind = iota
	GroundUnitMarine
	GroundUnitGroundBattery
	GroundUnitFighterSquadron
)

func (k GroundUnitKind) String() string {
	switch k {
	case GroundUnitArmy:
		return "Army"
	case GroundUnitMarine:
		return "Marine"
	case GroundUnitGroundBattery:
		return "GroundBattery"
	case GroundUnitFighterSquadron:
		return "FighterSquadron"
	default:
		return "Unknown"
	}
}

// GroundUnit is a planetary combat asset bound to a system (garrisoned at
// a colony, or embarked on a spacelift ship awaiting an Invade/Blitz order
// — embarkation is tracked by the orders/transport layer, not here).
type GroundUnit struct {
	ID       ids.GroundUnitId
	Owner    ids.HouseId
	SystemID ids.SystemId
	Kind     GroundUnitKind

	CombatStrength int
	Destroyed      bool

	// EmbarkedFleet is nonzero while this unit rides a spacelift ship's
	// cargo hold rather than sitting in its colony's garrison; set by the
	// Command Phase's auto-load step and consumed by Invade/Blitz order
	// resolution the following Conflict Phase (§4.5 step 3h, §4.6.3).
	EmbarkedFleet ids.FleetId
}
