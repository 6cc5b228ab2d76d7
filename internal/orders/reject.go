// File: internal/orders/reject.go
// Project: EC4X Engine
// Description: Typed rejection reasons for order validation
// Version: 1.0.0
// Created: 2026-01-07

package orders

import "fmt"

// RejectReason is a typed reason a Validator refused an order (§4.4: "a
// typed reason (ColonyNotOwned, InsufficientTreasury, CapacityFull,
// EliminatedTarget, ShieldAlreadyPresent, etc.)").
type RejectReason int

const (
	ColonyNotOwned RejectReason = iota
	FleetNotOwned
	SquadronNotOwned
	InsufficientTreasury
	CapacityFull
	EliminatedTarget
	ShieldAlreadyPresent
	InvalidDestination
	NoLaneConnection
	UnknownShipClass
	UnknownGroundUnitKind
	UnknownFacilityKind
	UnknownEspionageAction
	InsufficientEBP
	InsufficientCIP
	InsufficientPopulation
	InvalidTransferTarget
	AlreadyAtRelationFloor
	NoPendingOffer
	RecentCombatCooldown
	BudgetExceeded
	ColonyAlreadyPresent
	InvalidAllocation
)

func (r RejectReason) String() string {
	switch r {
	case ColonyNotOwned:
		return "ColonyNotOwned"
	case FleetNotOwned:
		return "FleetNotOwned"
	case SquadronNotOwned:
		return "SquadronNotOwned"
	case InsufficientTreasury:
		return "InsufficientTreasury"
	case CapacityFull:
		return "CapacityFull"
	case EliminatedTarget:
		return "EliminatedTarget"
	case ShieldAlreadyPresent:
		return "ShieldAlreadyPresent"
	case InvalidDestination:
		return "InvalidDestination"
	case NoLaneConnection:
		return "NoLaneConnection"
	case UnknownShipClass:
		return "UnknownShipClass"
	case UnknownGroundUnitKind:
		return "UnknownGroundUnitKind"
	case UnknownFacilityKind:
		return "UnknownFacilityKind"
	case UnknownEspionageAction:
		return "UnknownEspionageAction"
	case InsufficientEBP:
		return "InsufficientEBP"
	case InsufficientCIP:
		return "InsufficientCIP"
	case InsufficientPopulation:
		return "InsufficientPopulation"
	case InvalidTransferTarget:
		return "InvalidTransferTarget"
	case AlreadyAtRelationFloor:
		return "AlreadyAtRelationFloor"
	case NoPendingOffer:
		return "NoPendingOffer"
	case RecentCombatCooldown:
		return "RecentCombatCooldown"
	case BudgetExceeded:
		return "BudgetExceeded"
	case ColonyAlreadyPresent:
		return "ColonyAlreadyPresent"
	case InvalidAllocation:
		return "InvalidAllocation"
	default:
		return "Unknown"
	}
}

// RejectedOrder pairs a rejected order with why it failed, in the same
// shape a field-level validation error would take, but keyed by order
// class and index within the packet rather than by field.
type RejectedOrder struct {
	OrderClass string
	Index      int
	Reason     RejectReason
	Detail     string
}

func (e *RejectedOrder) Error() string {
	return fmt.Sprintf("%s[%d]: %s: %s", e.OrderClass, e.Index, e.Reason, e.Detail)
}
