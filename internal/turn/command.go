// File: internal/turn/command.go
// Project: EC4X Engine
// Description: Command Phase: commissioning, build orders, diplomacy escalation, order staging (§4.5 step 3)
// Version: 1.0.0
// Created: 2026-07-30

package turn

import (
	"github.com/ec4x/engine/internal/diplomacy"
	"github.com/ec4x/engine/internal/economy"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/orders"
	"github.com/ec4x/engine/internal/rules"
	"github.com/ec4x/engine/internal/starmap"
)

// runCommandPhase implements §4.5 step 3: commission last turn's completed
// projects, intake this turn's build/repair/transfer/diplomatic orders, and
// stage the orders whose effects land in a later phase (movement for
// Maintenance, Bombard/Invade/Blitz for next turn's Conflict Phase).
func (r *Resolver) runCommandPhase(state *models.GameState, snap *rules.Snapshot, turn int, packets map[ids.HouseId]orders.CommandPacket, report *TurnReport) {
	r.commissionPending(state, snap)

	for _, houseID := range sortedKeys(packets) {
		packet := packets[houseID]
		r.intakeBuildOrders(state, snap, houseID, packet)
		r.intakeRepairOrders(state, houseID, packet)
		r.intakeTransfers(state, houseID, turn, packet)
		r.intakeDiplomacy(houseID, turn, packet)
		r.intakeEscalationFromOrders(state, houseID, packet)
		r.stageFleetOrders(state, houseID, packet)
	}

	state.Colonies.All(func(_ ids.ColonyId, colony *models.Colony) {
		if !colony.Founded {
			return
		}
		economy.AssignDocks(state, colony, snap)
	})
}

// commissionPending turns every project this resolver marked complete
// during last turn's Maintenance Phase into a live entity (§4.7
// "completed projects are appended to pending_commissions and the next
// turn's Command Phase commissions them, freeing docks first").
func (r *Resolver) commissionPending(state *models.GameState, snap *rules.Snapshot) {
	for _, colonyID := range sortedKeys(r.pendingCommissions) {
		projectIDs := r.pendingCommissions[colonyID]
		colony, ok := state.Colonies.Get(colonyID)
		if !ok {
			continue
		}
		for _, pid := range projectIDs {
			project, ok := state.Projects.Get(pid)
			if !ok {
				continue
			}
			commissionProject(state, snap, colony, project)
		}
		state.Colonies.Update(colonyID, colony)
	}
	r.pendingCommissions = make(map[ids.ColonyId][]ids.ProjectId)
}

// intakeBuildOrders turns each BuildOrder into a queued ConstructionProject
// (§4.5 step 3c); dock assignment happens afterward in a single pass so
// every colony's queue is complete before scheduling runs.
func (r *Resolver) intakeBuildOrders(state *models.GameState, snap *rules.Snapshot, houseID ids.HouseId, packet orders.CommandPacket) {
	for _, bo := range packet.BuildOrders {
		colony, ok := state.Colonies.Get(bo.ColonyID)
		if !ok || colony.Owner != houseID {
			continue
		}

		// A planetary shield is a one-shot colony flag, not a queued
		// project: it has no dock footprint and no ship/unit to
		// commission, so it takes effect the turn it's paid for.
		if bo.Kind == orders.BuildShield {
			if colony.ShieldLevel == 0 {
				colony.ShieldLevel = 1
				state.Colonies.Update(bo.ColonyID, colony)
			}
			continue
		}

		// PP-for-IU investment is also a one-shot effect rather than a
		// queued project: it has no dock footprint and nothing to
		// commission, only a treasury debit and a direct IU increment
		// (§4.7 "IU growth" investment path).
		if bo.Kind == orders.BuildIUInvestment {
			if bo.IUAmount <= 0 {
				continue
			}
			house, ok := state.Houses.Get(houseID)
			if !ok {
				continue
			}
			cost := economy.IUInvestmentCost(colony, snap) * bo.IUAmount
			if cost > house.Treasury {
				continue
			}
			house.Treasury -= cost
			state.Houses.Update(houseID, house)
			colony.IU += bo.IUAmount
			state.Colonies.Update(bo.ColonyID, colony)
			continue
		}

		project := &models.ConstructionProject{
			Owner:     houseID,
			ColonyID:  bo.ColonyID,
			TotalCost: bo.EstimatedCost,
		}
		switch bo.Kind {
		case orders.BuildShip:
			project.Kind = models.ProjectShip
			project.TargetDesign = bo.ShipClass
		case orders.BuildGroundUnit:
			project.Kind = models.ProjectGroundUnit
			project.TargetDesign = bo.GroundKind
		case orders.BuildFacility:
			project.Kind = models.ProjectFacility
			project.TargetDesign = bo.FacilityKind
		}
		pid := state.Projects.Create(project)
		project.ID = pid
		colony.ConstructionQueue = append(colony.ConstructionQueue, pid)
		state.Colonies.Update(bo.ColonyID, colony)
	}
}

// intakeRepairOrders queues a ProjectRepair for each submitted RepairOrder,
// mirroring economy.ScheduleRepairs' project shape for a player-requested
// (rather than automatic) repair.
func (r *Resolver) intakeRepairOrders(state *models.GameState, houseID ids.HouseId, packet orders.CommandPacket) {
	for _, ro := range packet.RepairOrders {
		colony, ok := state.Colonies.Get(ro.ColonyID)
		if !ok || colony.Owner != houseID {
			continue
		}
		ship, ok := state.Ships.Get(ro.ShipID)
		if !ok {
			continue
		}
		project := &models.ConstructionProject{
			Owner: houseID, ColonyID: ro.ColonyID, Kind: models.ProjectRepair,
			TargetDesign: ship.Class.Name, RepairTarget: ro.ShipID, TotalCost: ro.Cost,
		}
		pid := state.Projects.Create(project)
		project.ID = pid
		colony.ConstructionQueue = append(colony.ConstructionQueue, pid)
		state.Colonies.Update(ro.ColonyID, colony)
	}
}

// intakeTransfers creates a PopulationInTransit record per
// PopulationTransferOrder (§4.5 step 3e); transit time is the starmap lane
// distance between the two colonies' systems, and arrival is handled by
// economy.ResolvePopulationTransfers during Maintenance.
func (r *Resolver) intakeTransfers(state *models.GameState, houseID ids.HouseId, turn int, packet orders.CommandPacket) {
	for _, to := range packet.Transfers {
		src, ok := state.Colonies.Get(to.From)
		if !ok || src.Owner != houseID || src.Population < to.Amount {
			continue
		}
		dest, ok := state.Colonies.Get(to.To)
		if !ok || dest.Owner != houseID {
			continue
		}

		transitTurns := 1
		if path := starmap.FindPath(state, src.SystemID, dest.SystemID, false); path.Found && path.TotalCost > 0 {
			transitTurns = path.TotalCost
		}

		src.Population -= to.Amount
		state.Colonies.Update(to.From, src)

		transfer := &models.PopulationInTransit{Owner: houseID, From: to.From, To: to.To, Amount: to.Amount, ETATurn: turn + transitTurns}
		tid := state.Transfers.Create(transfer)
		transfer.ID = tid

		dest.IncomingTransfers = append(dest.IncomingTransfers, tid)
		state.Colonies.Update(to.To, dest)
	}
}

// intakeDiplomacy runs each submitted DiplomaticCommand against the
// diplomacy manager: Offer=true proposes a de-escalation, Offer=false
// accepts a pending one (§4.9). Explicit rejection isn't a command the
// order protocol exposes; an un-accepted offer simply expires.
func (r *Resolver) intakeDiplomacy(houseID ids.HouseId, turn int, packet orders.CommandPacket) {
	for _, dc := range packet.Diplomatic {
		if dc.Offer {
			r.Diplomacy.OfferDeescalation(houseID, dc.TargetHouse, turn)
		} else {
			r.Diplomacy.AcceptDeescalation(houseID, dc.TargetHouse, turn)
		}
	}
}

// intakeEscalationFromOrders escalates the actor's relation toward every
// house whose systems received a threatening or provocative fleet order
// this turn (§4.9). priorOffenses is tracked per ordered pair so repeat
// offenses jump further up the ladder.
func (r *Resolver) intakeEscalationFromOrders(state *models.GameState, houseID ids.HouseId, packet orders.CommandPacket) {
	for _, fo := range packet.FleetOrders {
		threatening := orders.ThreateningOrders[fo.Kind]
		provocative := orders.ProvocativeOrders[fo.Kind]
		if !threatening && !provocative {
			continue
		}
		target, ok := r.orderTargetHouse(state, fo)
		if !ok || target == houseID {
			continue
		}
		key := offensePairKey(houseID, target)
		r.Diplomacy.EscalateOnOrder(houseID, target, diplomacy.OrderClass{Threatening: threatening, Provocative: provocative}, r.offenseCounts[key])
		r.offenseCounts[key]++
	}
}

// orderTargetHouse identifies the house whose territory a fleet order
// concerns, for escalation bookkeeping: the owner of a colony at the
// order's system (destination for Move-shaped orders, current location for
// Bombard/Invade/Blitz).
func (r *Resolver) orderTargetHouse(state *models.GameState, fo orders.FleetOrder) (ids.HouseId, bool) {
	sys := fo.Destination
	switch fo.Kind {
	case orders.FleetBombard, orders.FleetInvade, orders.FleetBlitz:
		if f, ok := state.Fleets.Get(fo.FleetID); ok {
			sys = f.Location
		}
	}
	colony := colonyAt(state, sys)
	if colony == nil {
		return 0, false
	}
	return colony.Owner, true
}

// stageFleetOrders splits this turn's FleetOrders by when they take effect:
// Bombard/Invade/Blitz queue for next turn's Conflict Phase (§4.5 step 3j);
// Move-shaped orders persist for the Maintenance Phase's one-hex-per-turn
// movement executor; Hold, Blockade and Patrol set the fleet's standing
// order immediately. Any other kind is not staged here.
func (r *Resolver) stageFleetOrders(state *models.GameState, houseID ids.HouseId, packet orders.CommandPacket) {
	for _, fo := range packet.FleetOrders {
		fleet, ok := state.Fleets.Get(fo.FleetID)
		if !ok || fleet.HouseID != houseID {
			continue
		}

		switch fo.Kind {
		case orders.FleetBombard, orders.FleetInvade, orders.FleetBlitz:
			r.pendingCombat[fleet.Location] = append(r.pendingCombat[fleet.Location], pendingCombatOrder{House: houseID, FleetID: fo.FleetID, Kind: fo.Kind})
		case orders.FleetMove, orders.FleetSeekHome, orders.FleetJoin, orders.FleetRendezvous:
			r.pendingMoves[fo.FleetID] = pendingMove{Destination: fo.Destination}
		case orders.FleetHold:
			fleet.StandingOrder = models.StandingOrder{Kind: models.StandingOrderHold}
			state.Fleets.Update(fo.FleetID, fleet)
		case orders.FleetBlockade:
			fleet.StandingOrder = models.StandingOrder{Kind: models.StandingOrderMoveTo, Destination: fo.Destination}
			state.Fleets.Update(fo.FleetID, fleet)
		case orders.FleetPatrol:
			fleet.StandingOrder = models.StandingOrder{Kind: models.StandingOrderPatrol, PatrolRoute: fo.PatrolRoute}
			state.Fleets.Update(fo.FleetID, fleet)
		}
	}
}
