// File: internal/orders/validator.go
// Project: EC4X Engine
// Description: Validates a CommandPacket against current game state (§4.4)
// Version: 1.0.0
// Created: 2026-01-07

package orders

import (
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
	"github.com/ec4x/engine/internal/starmap"
)

// Result is the outcome of validating one CommandPacket: every order not
// listed in Rejected is accepted and passed on to the turn resolver. A
// rejected order does not abort the packet — validation "continues with
// remaining orders" (§4.4).
type Result struct {
	Rejected []RejectedOrder
}

// Accepted reports whether no order in the packet was rejected.
func (r Result) Accepted() bool { return len(r.Rejected) == 0 }

// Validator screens a house's CommandPacket against the current GameState
// and rule snapshot before the turn resolver runs.
type Validator struct {
	state    *models.GameState
	snapshot *rules.Snapshot
}

// NewValidator builds a Validator bound to one game's state and rules.
func NewValidator(state *models.GameState, snapshot *rules.Snapshot) *Validator {
	return &Validator{state: state, snapshot: snapshot}
}

// Validate screens every order in packet, returning the rejected subset.
// Build orders additionally go through a budget-projection pass: a packet
// asking for cumulative cost greater than treasury has later orders
// rejected in submission order (§4.4).
func (v *Validator) Validate(packet CommandPacket) Result {
	var result Result

	house, ok := v.state.Houses.Get(packet.HouseID)
	if !ok {
		result.Rejected = append(result.Rejected, RejectedOrder{
			OrderClass: "Packet", Reason: FleetNotOwned, Detail: "unknown submitting house",
		})
		return result
	}

	for i, fo := range packet.FleetOrders {
		if reason, detail, ok := v.checkFleetOrder(packet.HouseID, fo); !ok {
			result.Rejected = append(result.Rejected, RejectedOrder{
				OrderClass: "FleetOrder", Index: i, Reason: reason, Detail: detail,
			})
		}
	}

	v.validateBuildOrders(packet, house, &result)

	for i, ro := range packet.RepairOrders {
		if reason, detail, ok := v.checkRepairOrder(packet.HouseID, ro); !ok {
			result.Rejected = append(result.Rejected, RejectedOrder{
				OrderClass: "RepairOrder", Index: i, Reason: reason, Detail: detail,
			})
		}
	}

	for i, so := range packet.ScrapOrders {
		if reason, detail, ok := v.checkScrapOrder(packet.HouseID, so); !ok {
			result.Rejected = append(result.Rejected, RejectedOrder{
				OrderClass: "ScrapOrder", Index: i, Reason: reason, Detail: detail,
			})
		}
	}

	for i, t := range packet.Transfers {
		if reason, detail, ok := v.checkTransfer(packet.HouseID, t); !ok {
			result.Rejected = append(result.Rejected, RejectedOrder{
				OrderClass: "Transfer", Index: i, Reason: reason, Detail: detail,
			})
		}
	}

	for i, co := range packet.ColonyOrders {
		if reason, detail, ok := v.checkColonyOrder(packet.HouseID, co); !ok {
			result.Rejected = append(result.Rejected, RejectedOrder{
				OrderClass: "ColonyOrder", Index: i, Reason: reason, Detail: detail,
			})
		}
	}

	for i, eo := range packet.Espionage {
		if reason, detail, ok := v.checkEspionageOrder(house, eo); !ok {
			result.Rejected = append(result.Rejected, RejectedOrder{
				OrderClass: "Espionage", Index: i, Reason: reason, Detail: detail,
			})
		}
	}

	return result
}

func (v *Validator) checkFleetOrder(houseID ids.HouseId, fo FleetOrder) (RejectReason, string, bool) {
	fleet, ok := v.state.Fleets.Get(fo.FleetID)
	if !ok || fleet.HouseID != houseID {
		return FleetNotOwned, "fleet does not exist or is not owned by the submitting house", false
	}

	switch fo.Kind {
	case FleetMove, FleetSeekHome, FleetBlockade, FleetJoin, FleetRendezvous:
		if _, ok := v.state.Systems.Get(fo.Destination); !ok {
			return InvalidDestination, "destination system does not exist", false
		}
		hasCrippledFlagship := v.fleetHasCrippledFlagship(fleet)
		path := starmap.FindPath(v.state, fleet.Location, fo.Destination, hasCrippledFlagship)
		if !path.Found {
			return NoLaneConnection, "no lane path to destination under this fleet's restrictions", false
		}
	case FleetColonize:
		sys, ok := v.state.Systems.Get(fleet.Location)
		if !ok {
			return InvalidDestination, "fleet location does not resolve to a system", false
		}
		if v.systemHasLiveColony(sys.ID) {
			return ColonyAlreadyPresent, "system already has a founded colony", false
		}
	case FleetInvade, FleetBlitz, FleetBombard:
		if !v.systemHasLiveColony(fleet.Location) {
			return InvalidDestination, "no colony present at fleet location to target", false
		}
	}
	return 0, "", true
}

func (v *Validator) fleetHasCrippledFlagship(fleet *models.Fleet) bool {
	for _, sqID := range fleet.SquadronIDs {
		sq, ok := v.state.Squadrons.Get(sqID)
		if !ok {
			continue
		}
		ship, ok := v.state.Ships.Get(sq.FlagshipID)
		if ok && ship.State == models.Crippled {
			return true
		}
	}
	return false
}

func (v *Validator) systemHasLiveColony(systemID ids.SystemId) bool {
	found := false
	v.state.Colonies.All(func(_ ids.ColonyId, c *models.Colony) {
		if c.SystemID == systemID && c.Founded {
			found = true
		}
	})
	return found
}

func (v *Validator) validateBuildOrders(packet CommandPacket, house *models.House, result *Result) {
	running := house.Treasury
	for i, bo := range packet.BuildOrders {
		colony, ok := v.state.Colonies.Get(bo.ColonyID)
		if !ok || colony.Owner != packet.HouseID {
			result.Rejected = append(result.Rejected, RejectedOrder{
				OrderClass: "BuildOrder", Index: i, Reason: ColonyNotOwned, Detail: "colony does not exist or is not owned by the submitting house",
			})
			continue
		}

		switch bo.Kind {
		case BuildShip:
			if _, ok := v.snapshot.Ships[bo.ShipClass]; !ok {
				result.Rejected = append(result.Rejected, RejectedOrder{
					OrderClass: "BuildOrder", Index: i, Reason: UnknownShipClass, Detail: bo.ShipClass,
				})
				continue
			}
		case BuildGroundUnit:
			if _, ok := v.snapshot.GroundUnits[bo.GroundKind]; !ok {
				result.Rejected = append(result.Rejected, RejectedOrder{
					OrderClass: "BuildOrder", Index: i, Reason: UnknownGroundUnitKind, Detail: bo.GroundKind,
				})
				continue
			}
		case BuildFacility:
			if _, ok := v.snapshot.Facilities[bo.FacilityKind]; !ok {
				result.Rejected = append(result.Rejected, RejectedOrder{
					OrderClass: "BuildOrder", Index: i, Reason: UnknownFacilityKind, Detail: bo.FacilityKind,
				})
				continue
			}
		case BuildShield:
			if colony.ShieldLevel > 0 {
				result.Rejected = append(result.Rejected, RejectedOrder{
					OrderClass: "BuildOrder", Index: i, Reason: ShieldAlreadyPresent, Detail: "colony already has a planetary shield",
				})
				continue
			}
		case BuildIUInvestment:
			if bo.IUAmount <= 0 {
				result.Rejected = append(result.Rejected, RejectedOrder{
					OrderClass: "BuildOrder", Index: i, Reason: InvalidAllocation, Detail: "IUAmount must be positive",
				})
				continue
			}
		}

		// Budget-projection pass: later orders in submission order are
		// rejected once the running total exceeds treasury (§4.4).
		if running-bo.EstimatedCost < 0 {
			result.Rejected = append(result.Rejected, RejectedOrder{
				OrderClass: "BuildOrder", Index: i, Reason: BudgetExceeded, Detail: "cumulative cost exceeds treasury",
			})
			continue
		}
		running -= bo.EstimatedCost
	}
}

func (v *Validator) checkRepairOrder(houseID ids.HouseId, ro RepairOrder) (RejectReason, string, bool) {
	colony, ok := v.state.Colonies.Get(ro.ColonyID)
	if !ok || colony.Owner != houseID {
		return ColonyNotOwned, "colony does not exist or is not owned by the submitting house", false
	}
	ship, ok := v.state.Ships.Get(ro.ShipID)
	if !ok || ship.HouseID != houseID {
		return FleetNotOwned, "ship does not exist or is not owned by the submitting house", false
	}
	if ship.State != models.Crippled {
		return InvalidAllocation, "ship is not crippled", false
	}
	if !v.colonyHasDrydock(colony) {
		return CapacityFull, "colony has no drydock to assign a repair slot", false
	}
	return 0, "", true
}

func (v *Validator) colonyHasDrydock(colony *models.Colony) bool {
	for _, facID := range colony.Facilities {
		fac, ok := v.state.Facilities.Get(facID)
		if ok && fac.Kind == models.FacilityDrydock && !fac.Damaged {
			return true
		}
	}
	return false
}

func (v *Validator) checkScrapOrder(houseID ids.HouseId, so ScrapOrder) (RejectReason, string, bool) {
	if so.ShipID != 0 {
		ship, ok := v.state.Ships.Get(so.ShipID)
		if !ok || ship.HouseID != houseID {
			return FleetNotOwned, "ship does not exist or is not owned by the submitting house", false
		}
	}
	if so.FacilityID != 0 {
		fac, ok := v.state.Facilities.Get(so.FacilityID)
		if !ok {
			return ColonyNotOwned, "facility does not exist", false
		}
		colony, ok := v.state.Colonies.Get(fac.ColonyID)
		if !ok || colony.Owner != houseID {
			return ColonyNotOwned, "facility's colony is not owned by the submitting house", false
		}
	}
	return 0, "", true
}

func (v *Validator) checkTransfer(houseID ids.HouseId, t PopulationTransferOrder) (RejectReason, string, bool) {
	from, ok := v.state.Colonies.Get(t.From)
	if !ok || from.Owner != houseID {
		return ColonyNotOwned, "source colony not owned by the submitting house", false
	}
	to, ok := v.state.Colonies.Get(t.To)
	if !ok || to.Owner != houseID {
		return InvalidTransferTarget, "destination colony not owned by the submitting house", false
	}
	if t.Amount <= 0 || t.Amount > from.Population {
		return InsufficientPopulation, "transfer amount exceeds source population", false
	}
	return 0, "", true
}

func (v *Validator) checkColonyOrder(houseID ids.HouseId, co ColonyManagementOrder) (RejectReason, string, bool) {
	colony, ok := v.state.Colonies.Get(co.ColonyID)
	if !ok || colony.Owner != houseID {
		return ColonyNotOwned, "colony does not exist or is not owned by the submitting house", false
	}
	if co.TaxRate != -1 && (co.TaxRate < 0 || co.TaxRate > 1) {
		return InvalidAllocation, "tax rate must be -1 (inherit) or within [0,1]", false
	}
	return 0, "", true
}

func (v *Validator) checkEspionageOrder(house *models.House, eo EspionageOrder) (RejectReason, string, bool) {
	action, ok := v.snapshot.Espionage[eo.ActionName]
	if !ok {
		return UnknownEspionageAction, eo.ActionName, false
	}
	if eo.EBPSpend < action.EBPCost {
		return InsufficientEBP, "EBP spend below the action's cost", false
	}
	if house.Espionage.EBP < eo.EBPSpend {
		return InsufficientEBP, "insufficient banked EBP", false
	}
	if eo.CIPSpend > house.Espionage.CIP {
		return InsufficientCIP, "insufficient banked CIP", false
	}
	target, ok := v.state.Houses.Get(eo.TargetHouse)
	if !ok || target.Eliminated {
		return EliminatedTarget, "target house does not exist or has been eliminated", false
	}
	return 0, "", true
}
