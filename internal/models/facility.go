// File: internal/models/facility.go
// Project: EC4X Engine
// Description: Data model for colony facilities (spaceport/shipyard/drydock/starbase)
// Version: 1.0.0
// Created: 2026-01-07

package models

import "github.com/ec4x/engine/internal/ids"

// FacilityKind determines what a facility contributes to its colony's
// construction and repair capacity (§4.7).
type FacilityKind int

const (
	FacilitySpaceport FacilityKind = iota
	FacilityShipyard
	FacilityDrydock
	FacilityStarbase
)

func (k FacilityKind) String() string {
	switch k {
	case FacilitySpaceport:
		return "Spaceport"
	case FacilityShipyard:
		return "Shipyard"
	case FacilityDrydock:
		return "Drydock"
	case FacilityStarbase:
		return "Starbase"
	default:
		return "Unknown"
	}
}

// Facility is a colony-bound production or defense structure.
type Facility struct {
	ID       ids.FacilityId
	ColonyID ids.ColonyId
	Kind     FacilityKind
	Level    int

	// DockCapacity is the number of construction/repair project slots this
	// facility contributes to its colony's queue throughput this turn.
	DockCapacity int

	Damaged bool // set by orbital bombardment; halves DockCapacity until repaired
}

// ConstructionProject is a queued build or repair order progressing toward
// completion under dock-capacity scheduling (§4.7).
type ConstructionProject struct {
	ID       ids.ProjectId
	Owner    ids.HouseId
	ColonyID ids.ColonyId

	Kind ProjectKind

	// TargetDesign names the ship class, ground unit type, or facility kind
	// being produced; interpretation depends on Kind.
	TargetDesign string

	TotalCost     int64
	InvestedSoFar int64

	// RepairTarget is set only for Kind == ProjectRepair.
	RepairTarget ids.ShipId

	// AssignedFacility is the dock slot this project holds, set by the
	// Command Phase's dock-capacity scheduling pass; zero means either
	// not yet assigned or this project doesn't need a dock (§4.7).
	AssignedFacility ids.FacilityId
}

// ProjectKind distinguishes what a construction project produces.
type ProjectKind int

const (
	ProjectShip ProjectKind = iota
	ProjectGroundUnit
	ProjectFacility
	ProjectRepair
)

// Complete reports whether the project has accumulated its full cost.
func (p *ConstructionProject) Complete() bool {
	return p.InvestedSoFar >= p.TotalCost
}

// Progress credits an amount of industrial output toward the project,
// clamped so InvestedSoFar never exceeds TotalCost (excess is lost, not
// carried to the next project in queue per §4.7's scheduling rule).
func (p *ConstructionProject) Progress(amount int64) {
	p.InvestedSoFar += amount
	if p.InvestedSoFar > p.TotalCost {
		p.InvestedSoFar = p.TotalCost
	}
}
