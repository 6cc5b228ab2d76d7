// File: internal/models/colony.go
// Project: EC4X Engine
// Description: Data model for colonies, population and construction queues
// Version: 1.0.0
// Created: 2026-01-07

package models

import "github.com/ec4x/engine/internal/ids"

// Colony is a populated world. At most one colony exists per system at a
// time (§3.4), but a destroyed colony's id is retired permanently and a new
// colony founded later at the same system gets a fresh ColonyId.
type Colony struct {
	ID       ids.ColonyId
	SystemID ids.SystemId
	Owner    ids.HouseId

	// Population is denominated in PU (population units); IU (industrial
	// units) are a function of population and facility investment. See
	// GLOSSARY.
	Population int64
	MaxPopulation int64

	// IU (industrial units) is distinct from Population: it gates GCO and
	// is the target of Bombard damage and construction-derived growth
	// (§4.7 "IU growth"). Passive growth is max(1, floor(PU/200)) per turn.
	IU int64

	TaxRate float64 // overrides House.TaxPolicy.DefaultRate when set >= 0; -1 means "inherit"

	ShieldLevel int // colony-side defense tech applied during orbital bombardment

	// InfrastructureDamage is a 0..1 fraction applied against GCO, raised by
	// bombardment and maintenance shortfalls and worked off by repair (§4.7).
	InfrastructureDamage float64
	// Blockaded is set for the remainder of the turn a Bombard/Blockade
	// order lands against this colony (§4.6.3) and reduces GCO.
	Blockaded bool

	Facilities []ids.FacilityId
	Garrison   []ids.GroundUnitId

	// ConstructionQueue holds project ids in submission order; dock
	// capacity (from facilities) gates how many progress per turn (§4.7).
	ConstructionQueue []ids.ProjectId

	// IncomingTransfers are PopulationInTransit ids bound for this colony.
	IncomingTransfers []ids.TransferId

	Founded bool // false for a colony record retained only for historical intel

	// FighterViolationSince is the turn this colony's fighter count first
	// exceeded capacity, or 0 if currently within capacity. The Maintenance
	// Phase auto-disbands the oldest excess fighter once the grace period
	// elapses (§3.2, §4.4e).
	FighterViolationSince int
}

// EffectiveTaxRate resolves the colony's own override or falls back to the
// owning house's default policy.
func (c *Colony) EffectiveTaxRate(houseDefault float64) float64 {
	if c.TaxRate < 0 {
		return houseDefault
	}
	return c.TaxRate
}

// PopulationInTransit represents colonists in motion between two colonies,
// created by a Transfer order and resolved during the Command phase (§4.2).
type PopulationInTransit struct {
	ID     ids.TransferId
	Owner  ids.HouseId
	From   ids.ColonyId
	To     ids.ColonyId
	Amount int64

	// ETATurn is the absolute turn number on which the transfer arrives.
	ETATurn int
}
