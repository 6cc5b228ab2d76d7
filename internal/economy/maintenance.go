// File: internal/economy/maintenance.go
// Project: EC4X Engine
// Description: Maintenance-phase upkeep, shortfall, repair scheduling, and capacity enforcement (§4.7, §4.4e)
// Version: 1.0.0
// Created: 2026-07-30

package economy

import (
	"sort"

	"github.com/ec4x/engine/internal/combat"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

// ShortfallEvent records one house's maintenance shortfall for the turn:
// treasury floored to zero and infrastructure damage applied to a
// deterministically chosen colony (§4.7, §9 "lowest-PU colony, tie ->
// lowest system-id").
type ShortfallEvent struct {
	House         ids.HouseId
	Overdraft     int64
	Colony        ids.ColonyId
	DamageApplied float64
}

// ComputeUpkeep sums one house's per-turn maintenance bill: ship upkeep
// (crippled ships cost less, per the crippled-maintenance multiplier),
// facility upkeep, and ground-unit upkeep including colony fighter
// squadrons (§4.7).
func ComputeUpkeep(state *models.GameState, houseID ids.HouseId, snap *rules.Snapshot) int64 {
	var total int64

	for _, shipID := range state.ShipsByHouse[houseID] {
		ship, ok := state.Ships.Get(shipID)
		if !ok {
			continue
		}
		rule, ok := snap.Ships[ship.Class.Name]
		if !ok {
			continue
		}
		cost := rule.MaintenanceCost
		if ship.State == models.Crippled {
			cost = int64(float64(cost) * snap.Capacity.CrippledMaintenanceMultiplier)
		}
		total += cost
	}

	state.Colonies.All(func(_ ids.ColonyId, c *models.Colony) {
		if c.Owner != houseID || !c.Founded {
			return
		}
		for _, facID := range c.Facilities {
			fac, ok := state.Facilities.Get(facID)
			if !ok {
				continue
			}
			if rule, ok := snap.Facilities[fac.Kind.String()]; ok {
				total += rule.MaintenanceCost
			}
		}
		for _, guID := range c.Garrison {
			gu, ok := state.GroundUnits.Get(guID)
			if !ok || gu.Destroyed {
				continue
			}
			if rule, ok := snap.GroundUnits[gu.Kind.String()]; ok {
				total += rule.MaintenanceCost
			}
		}
	})

	return total
}

// overdraftSteps buckets an overdraft amount into shortfall_base-sized
// steps (§4.7: "shortfall_base + shortfall_increment × overdraft_steps").
func overdraftSteps(overdraft int64, snap *rules.Snapshot) int {
	if snap.Economy.ShortfallBase <= 0 {
		return 0
	}
	steps := overdraft / snap.Economy.ShortfallBase
	if steps < 0 {
		return 0
	}
	return int(steps)
}

// lowestPUColony picks the house's deterministic shortfall target: the
// colony with the lowest population, tie-broken by lowest system id (§9
// Open Question decision).
func lowestPUColony(state *models.GameState, houseID ids.HouseId) (ids.ColonyId, bool) {
	var best ids.ColonyId
	var bestPU int64
	var bestSys ids.SystemId
	found := false

	state.Colonies.All(func(cid ids.ColonyId, c *models.Colony) {
		if c.Owner != houseID || !c.Founded {
			return
		}
		if !found || c.Population < bestPU || (c.Population == bestPU && c.SystemID < bestSys) {
			best = cid
			bestPU = c.Population
			bestSys = c.SystemID
			found = true
		}
	})
	return best, found
}

// applyInfrastructureDamage adds damage to a colony's infrastructure
// damage fraction, clamped to 1.0.
func applyInfrastructureDamage(state *models.GameState, colonyID ids.ColonyId, damage float64) {
	c, ok := state.Colonies.Get(colonyID)
	if !ok {
		return
	}
	c.InfrastructureDamage += damage
	if c.InfrastructureDamage > 1 {
		c.InfrastructureDamage = 1
	}
	state.Colonies.Update(colonyID, c)
}

// RunMaintenancePhase deducts every house's upkeep from treasury and, on
// overdraft, floors the treasury to zero, applies the deterministic
// shortfall infrastructure damage, and emits a MaintenanceShortfall
// prestige debit against that house alone (§4.5 phase 4c, §4.7, §4.9).
func RunMaintenancePhase(state *models.GameState, snap *rules.Snapshot, turn int) ([]ShortfallEvent, []combat.PrestigeEvent) {
	var shortfalls []ShortfallEvent
	var events []combat.PrestigeEvent

	state.Houses.All(func(houseID ids.HouseId, house *models.House) {
		if house.Eliminated {
			return
		}
		upkeep := ComputeUpkeep(state, houseID, snap)
		if upkeep <= house.Treasury {
			house.Treasury -= upkeep
			state.Houses.Update(houseID, house)
			return
		}

		overdraft := upkeep - house.Treasury
		house.Treasury = 0
		state.Houses.Update(houseID, house)

		colonyID, ok := lowestPUColony(state, houseID)
		if !ok {
			return
		}
		steps := overdraftSteps(overdraft, snap)
		damage := float64(snap.Economy.ShortfallBase+snap.Economy.ShortfallIncrement*int64(steps)) / 100.0
		applyInfrastructureDamage(state, colonyID, damage)

		shortfalls = append(shortfalls, ShortfallEvent{House: houseID, Overdraft: overdraft, Colony: colonyID, DamageApplied: damage})
		events = append(events, combat.PrestigeEvent{
			Source:      "MaintenanceShortfall",
			House:       houseID,
			Delta:       -(snap.Prestige.MaintenanceShortfallBase + snap.Prestige.MaintenanceShortfallBase*int64(steps)),
			Reason:      "treasury shortfall under maintenance upkeep",
			Turn:        turn,
		})
	})

	return shortfalls, events
}

// RepairCost returns the PP cost to restore a crippled ship of the given
// class, per §4.7: "ship_base_cost × repair_cost_multiplier".
func RepairCost(rule rules.ShipRule, snap *rules.Snapshot) int64 {
	return int64(float64(rule.BuildCost) * snap.Capacity.RepairCostMultiplier)
}

// ScheduleRepairs finds crippled ships owned by the colony's house and
// currently at the colony's system, and queues a ProjectRepair for any
// that has none outstanding yet; these projects need a dock exactly like a
// ship build (§4.7 needsDock already routes ProjectRepair through dock
// scheduling). Only crippled ships are queued: starbase repair is not
// scheduled here, and no check is made of which facility kinds the colony
// has.
func ScheduleRepairs(state *models.GameState, colony *models.Colony, snap *rules.Snapshot) []ids.ProjectId {
	alreadyQueued := make(map[ids.ShipId]bool)
	for _, pid := range colony.ConstructionQueue {
		p, ok := state.Projects.Get(pid)
		if ok && p.Kind == models.ProjectRepair {
			alreadyQueued[p.RepairTarget] = true
		}
	}

	var queued []ids.ProjectId
	for _, fleetID := range state.FleetsByLocation[colony.SystemID] {
		f, ok := state.Fleets.Get(fleetID)
		if !ok || f.HouseID != colony.Owner {
			continue
		}
		for _, sqID := range f.SquadronIDs {
			sq, ok := state.Squadrons.Get(sqID)
			if !ok || sq.Destroyed {
				continue
			}
			for _, shipID := range sq.ShipIDs {
				ship, ok := state.Ships.Get(shipID)
				if !ok || ship.State != models.Crippled || alreadyQueued[shipID] {
					continue
				}
				rule, ok := snap.Ships[ship.Class.Name]
				if !ok {
					continue
				}
				project := &models.ConstructionProject{
					Owner:        colony.Owner,
					ColonyID:     colony.ID,
					Kind:         models.ProjectRepair,
					TargetDesign: ship.Class.Name,
					RepairTarget: shipID,
					TotalCost:    RepairCost(rule, snap),
				}
				pid := state.Projects.Create(project)
				colony.ConstructionQueue = append(colony.ConstructionQueue, pid)
				queued = append(queued, pid)
			}
		}
	}
	return queued
}

// repairProductionFloor ensures a repair project completes within
// ship_repair_turns regardless of the facility's normal per-turn output
// (§4.7: "turn count = ship_repair_turns").
func repairProductionFloor(project *models.ConstructionProject, snap *rules.Snapshot) int64 {
	if snap.Capacity.ShipRepairTurns <= 0 {
		return project.TotalCost
	}
	remaining := project.TotalCost - project.InvestedSoFar
	floor := remaining / int64(snap.Capacity.ShipRepairTurns)
	if remaining%int64(snap.Capacity.ShipRepairTurns) != 0 {
		floor++
	}
	return floor
}

// AdvanceRepairs progresses every ProjectRepair in the colony's queue by at
// least repairProductionFloor, restoring the target ship's DS to full and
// releasing its dock slot on completion.
func AdvanceRepairs(state *models.GameState, colony *models.Colony, snap *rules.Snapshot) {
	for _, pid := range colony.ConstructionQueue {
		project, ok := state.Projects.Get(pid)
		if !ok || project.Kind != models.ProjectRepair || project.Complete() {
			continue
		}
		project.Progress(repairProductionFloor(project, snap))
		state.Projects.Update(pid, project)
		if !project.Complete() {
			continue
		}

		ship, ok := state.Ships.Get(project.RepairTarget)
		if ok {
			ship.State = models.Undamaged
			if rule, ok := snap.Ships[ship.Class.Name]; ok {
				ship.DS = rule.BaseDS
			}
			state.Ships.Update(project.RepairTarget, ship)
		}
		ReleaseDock(state, project)
		state.Projects.Update(pid, project)
	}
}

// ResolvePopulationTransfers delivers every PopulationInTransit whose
// ETATurn has arrived: the population is added to the destination
// colony's PU (clamped at MaxPopulation) and the transfer record is
// removed (§4.2, §4.7).
func ResolvePopulationTransfers(state *models.GameState, turn int) {
	var arrived []ids.TransferId
	state.Transfers.All(func(tid ids.TransferId, t *models.PopulationInTransit) {
		if t.ETATurn <= turn {
			arrived = append(arrived, tid)
		}
	})

	for _, tid := range arrived {
		t, ok := state.Transfers.Get(tid)
		if !ok {
			continue
		}
		dest, ok := state.Colonies.Get(t.To)
		if ok {
			dest.Population += t.Amount
			if dest.MaxPopulation > 0 && dest.Population > dest.MaxPopulation {
				dest.Population = dest.MaxPopulation
			}
			dest.IncomingTransfers = indexRemoveTransfer(dest.IncomingTransfers, tid)
			state.Colonies.Update(t.To, dest)
		}
		state.Transfers.Delete(tid)
	}
}

func indexRemoveTransfer(slice []ids.TransferId, v ids.TransferId) []ids.TransferId {
	for i, x := range slice {
		if x == v {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}

// CapacityViolation describes one enforcement action taken during the
// Maintenance Phase's capacity check (§4.4e, §4.5 phase 4e).
type CapacityViolation struct {
	House  ids.HouseId
	Kind   string // "Fighter", "PlanetBreaker", "CapitalSquadron"
	Colony ids.ColonyId
}

// fighterCapacity computes a colony's fighter cap: floor(IU /
// fighter_iu_divisor) scaled by the house's FD tech level (§3.2).
func fighterCapacity(colony *models.Colony, house *models.House, snap *rules.Snapshot) int {
	if snap.Capacity.FighterIUDivisor <= 0 {
		return 0
	}
	base := int(colony.IU) / snap.Capacity.FighterIUDivisor
	level := house.TechTree.Level(models.TechFD)
	mult := 1.0 + float64(level)*snap.Capacity.FDMultiplierPerLevel
	return int(float64(base) * mult)
}

// EnforceFighterCapacity disbands the oldest excess fighter squadron once
// a colony's fighter count has exceeded capacity for
// fighter_grace_period_turns consecutive turns (§3.2, §4.4e).
func EnforceFighterCapacity(state *models.GameState, colony *models.Colony, house *models.House, snap *rules.Snapshot, turn int) []CapacityViolation {
	var fighters []ids.GroundUnitId
	for _, guID := range colony.Garrison {
		gu, ok := state.GroundUnits.Get(guID)
		if ok && !gu.Destroyed && gu.Kind == models.GroundUnitFighterSquadron {
			fighters = append(fighters, guID)
		}
	}

	limit := fighterCapacity(colony, house, snap)
	if len(fighters) <= limit {
		colony.FighterViolationSince = 0
		return nil
	}
	if colony.FighterViolationSince == 0 {
		colony.FighterViolationSince = turn
		return nil
	}
	if turn-colony.FighterViolationSince < snap.Capacity.FighterGracePeriodTurns {
		return nil
	}

	sort.Slice(fighters, func(i, j int) bool { return fighters[i] < fighters[j] })
	oldest := fighters[0]
	disbandGroundUnit(state, colony, oldest)
	colony.FighterViolationSince = 0
	return []CapacityViolation{{House: colony.Owner, Kind: "Fighter", Colony: colony.ID}}
}

func disbandGroundUnit(state *models.GameState, colony *models.Colony, guID ids.GroundUnitId) {
	gu, ok := state.GroundUnits.Get(guID)
	if ok {
		gu.Destroyed = true
		state.GroundUnits.Update(guID, gu)
	}
	for i, id := range colony.Garrison {
		if id == guID {
			colony.Garrison = append(colony.Garrison[:i], colony.Garrison[i+1:]...)
			break
		}
	}
}

// EnforcePlanetBreakerCapacity scraps the house's oldest planet-breaker
// (lowest ship id) with zero salvage, no grace period, whenever the
// house's PB count exceeds its colony count — e.g. after losing a colony
// to invasion (§3.2, §8 property 7).
func EnforcePlanetBreakerCapacity(state *models.GameState, houseID ids.HouseId, snap *rules.Snapshot) []CapacityViolation {
	var breakers []ids.ShipId
	for _, shipID := range state.ShipsByHouse[houseID] {
		ship, ok := state.Ships.Get(shipID)
		if ok && ship.Class.IsPlanetBreaker {
			breakers = append(breakers, shipID)
		}
	}
	colonyCount := len(state.ColoniesByOwner[houseID])
	if len(breakers) <= colonyCount {
		return nil
	}

	sort.Slice(breakers, func(i, j int) bool { return breakers[i] < breakers[j] })
	var violations []CapacityViolation
	for len(breakers) > colonyCount {
		oldest := breakers[0]
		breakers = breakers[1:]
		scrapShip(state, oldest)
		violations = append(violations, CapacityViolation{House: houseID, Kind: "PlanetBreaker"})
	}
	return violations
}

// scrapShip destroys a ship with no salvage, removing it from its
// squadron (and the squadron itself, if it was the flagship).
func scrapShip(state *models.GameState, shipID ids.ShipId) {
	ship, ok := state.Ships.Get(shipID)
	if !ok {
		return
	}
	sq, sqOK := state.Squadrons.Get(ship.SquadronID)
	if sqOK && sq.FlagshipID == shipID {
		for _, memberID := range sq.ShipIDs {
			state.DestroyShip(memberID)
		}
		sq.Destroyed = true
		state.Squadrons.Update(ship.SquadronID, sq)
		return
	}
	state.DestroyShip(shipID)
}

// capitalSquadronCapacity computes a house's capital-squadron cap:
// max(min, 2*floor(total_IU/squadron_iu_divisor)) (§3.2).
func capitalSquadronCapacity(state *models.GameState, houseID ids.HouseId, snap *rules.Snapshot) int {
	var totalIU int64
	for _, sysID := range state.ColoniesByOwner[houseID] {
		state.Colonies.All(func(_ ids.ColonyId, c *models.Colony) {
			if c.SystemID == sysID && c.Owner == houseID && c.Founded {
				totalIU += c.IU
			}
		})
	}
	limit := 0
	if snap.Capacity.SquadronIUDivisor > 0 {
		limit = 2 * int(totalIU/snap.Capacity.SquadronIUDivisor)
	}
	if limit < snap.Capacity.CapitalSquadronMinimum {
		limit = snap.Capacity.CapitalSquadronMinimum
	}
	return limit
}

// EnforceCapitalSquadronCapacity scraps the house's oldest (lowest
// SquadronId) squadron, no grace period, when the squadron count exceeds
// the economy-derived cap (§3.2, §4.4e). Fighter squadrons are ground
// units, not Squadron records, so every live Squadron here is a capital
// squadron by construction.
func EnforceCapitalSquadronCapacity(state *models.GameState, houseID ids.HouseId, snap *rules.Snapshot) []CapacityViolation {
	var squadrons []ids.SquadronId
	state.Squadrons.All(func(sqID ids.SquadronId, sq *models.Squadron) {
		if sq.HouseID == houseID && !sq.Destroyed {
			squadrons = append(squadrons, sqID)
		}
	})

	limit := capitalSquadronCapacity(state, houseID, snap)
	if len(squadrons) <= limit {
		return nil
	}

	sort.Slice(squadrons, func(i, j int) bool { return squadrons[i] < squadrons[j] })
	var violations []CapacityViolation
	for len(squadrons) > limit {
		oldest := squadrons[0]
		squadrons = squadrons[1:]
		scrapSquadron(state, oldest)
		violations = append(violations, CapacityViolation{House: houseID, Kind: "CapitalSquadron"})
	}
	return violations
}

func scrapSquadron(state *models.GameState, sqID ids.SquadronId) {
	sq, ok := state.Squadrons.Get(sqID)
	if !ok {
		return
	}
	for _, shipID := range sq.ShipIDs {
		state.DestroyShip(shipID)
	}
	sq.Destroyed = true
	state.Squadrons.Update(sqID, sq)
}
