// File: internal/orders/orders.go
// Project: EC4X Engine
// Description: CommandPacket order types submitted by a house for one turn
// Version: 1.0.0
// Created: 2026-01-07

// Package orders defines the per-house CommandPacket a client submits each
// turn and the Validator that screens it before the turn resolver ever sees
// it (§4.4). Orders are plain data; nothing in this package mutates game
// state — Validate only classifies each order as accepted or rejected.
package orders

import "github.com/ec4x/engine/internal/ids"

// FleetOrderKind enumerates every instruction a fleet can be given.
type FleetOrderKind int

const (
	FleetMove FleetOrderKind = iota
	FleetSeekHome
	FleetPatrol
	FleetGuard
	FleetBlockade
	FleetBombard
	FleetInvade
	FleetBlitz
	FleetSpyPlanet
	FleetSpySystem
	FleetHackStarbase
	FleetColonize
	FleetJoin
	FleetRendezvous
	FleetSalvage
	FleetView
	FleetHold
	FleetReserve
	FleetMothball
	FleetReactivate
	FleetTerraform
)

func (k FleetOrderKind) String() string {
	switch k {
	case FleetMove:
		return "Move"
	case FleetSeekHome:
		return "SeekHome"
	case FleetPatrol:
		return "Patrol"
	case FleetGuard:
		return "Guard"
	case FleetBlockade:
		return "Blockade"
	case FleetBombard:
		return "Bombard"
	case FleetInvade:
		return "Invade"
	case FleetBlitz:
		return "Blitz"
	case FleetSpyPlanet:
		return "SpyPlanet"
	case FleetSpySystem:
		return "SpySystem"
	case FleetHackStarbase:
		return "HackStarbase"
	case FleetColonize:
		return "Colonize"
	case FleetJoin:
		return "Join"
	case FleetRendezvous:
		return "Rendezvous"
	case FleetSalvage:
		return "Salvage"
	case FleetView:
		return "View"
	case FleetHold:
		return "Hold"
	case FleetReserve:
		return "Reserve"
	case FleetMothball:
		return "Mothball"
	case FleetReactivate:
		return "Reactivate"
	case FleetTerraform:
		return "Terraform"
	default:
		return "Unknown"
	}
}

// ThreateningOrders are the fleet order kinds that escalate diplomatic
// state directly to Enemy on first use (§4.9).
var ThreateningOrders = map[FleetOrderKind]bool{
	FleetBlockade:     true,
	FleetBombard:      true,
	FleetInvade:       true,
	FleetBlitz:        true,
	FleetHackStarbase: true,
}

// ProvocativeOrders escalate Neutral->Hostile on first use (§4.9).
var ProvocativeOrders = map[FleetOrderKind]bool{
	FleetHold:       true,
	FleetPatrol:     true,
	FleetSpyPlanet:  true,
	FleetSpySystem:  true,
	FleetView:       true,
	FleetSalvage:    true,
}

// FleetOrder targets one fleet with one instruction for this turn.
type FleetOrder struct {
	FleetID     ids.FleetId
	Kind        FleetOrderKind
	Destination ids.SystemId   // Move, SeekHome, Blockade, Join, Rendezvous
	PatrolRoute []ids.SystemId // Patrol
	TargetFleet ids.FleetId    // Join, Rendezvous
}

// BuildOrder requests a new ship, ground unit, facility, planetary shield,
// or PP-for-IU investment at a colony (§4.4, §4.7). Exactly one of the
// target fields applies, selected by Kind: ShipClass/GroundKind/
// FacilityKind for the first three, IUAmount for BuildIUInvestment.
type BuildOrder struct {
	ColonyID     ids.ColonyId
	Kind         BuildKind
	ShipClass    string
	GroundKind   string
	FacilityKind string
	IUAmount      int64 // BuildIUInvestment only: IU points to purchase
	EstimatedCost int64 // caller-computed so the budget-projection pass need not know catalogs
}

// BuildKind distinguishes what a BuildOrder produces.
type BuildKind int

const (
	BuildShip BuildKind = iota
	BuildGroundUnit
	BuildFacility
	BuildShield
	BuildIUInvestment
)

// RepairOrder queues a crippled ship for drydock repair; it names a ship
// only, so starbases cannot be queued through it.
type RepairOrder struct {
	ColonyID ids.ColonyId
	ShipID   ids.ShipId
	Cost     int64
}

// ScrapOrder decommissions a ship or facility for partial salvage value.
type ScrapOrder struct {
	ShipID     ids.ShipId
	FacilityID ids.FacilityId
}

// ResearchAllocation splits a house's research points across tech fields
// for the turn; Shares must sum to <= 1.0 (remainder is unspent).
type ResearchAllocation struct {
	Shares map[int]float64 // keyed by models.TechField
}

// DiplomaticCommand offers or accepts a de-escalation, per §4.9.
type DiplomaticCommand struct {
	TargetHouse ids.HouseId
	Offer       bool // true = offer de-escalation; false = accept a pending offer
}

// PopulationTransferOrder moves population between two of the same house's
// colonies (§4.7).
type PopulationTransferOrder struct {
	From   ids.ColonyId
	To     ids.ColonyId
	Amount int64
}

// ColonyManagementOrder adjusts a colony's tax rate or automation flags.
type ColonyManagementOrder struct {
	ColonyID    ids.ColonyId
	TaxRate     float64 // -1 means "inherit house default", see Colony.TaxRate
	AutoRepair  bool
	AutoLoad    bool
}

// EspionageOrder invests EBP/CIP and names one action to attempt this turn.
type EspionageOrder struct {
	TargetHouse ids.HouseId
	ActionName  string // keys rules.Snapshot.Espionage
	EBPSpend    int
	CIPSpend    int
}

// StandingOrderUpdate replaces a fleet's persistent Maintenance-phase order.
type StandingOrderUpdate struct {
	FleetID     ids.FleetId
	Kind        int // models.StandingOrderKind
	Destination ids.SystemId
	PatrolRoute []ids.SystemId
}

// CommandPacket aggregates one house's submission for a single turn (§4.4).
// Every order kind is optional; an empty packet is a no-op turn for that
// house.
type CommandPacket struct {
	HouseID ids.HouseId
	Turn    int

	FleetOrders    []FleetOrder
	BuildOrders    []BuildOrder
	RepairOrders   []RepairOrder
	ScrapOrders    []ScrapOrder
	Research       ResearchAllocation
	Diplomatic     []DiplomaticCommand
	Transfers      []PopulationTransferOrder
	ColonyOrders   []ColonyManagementOrder
	Espionage      []EspionageOrder
	StandingOrders []StandingOrderUpdate
}
