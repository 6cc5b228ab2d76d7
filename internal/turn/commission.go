// File: internal/turn/commission.go
// Project: EC4X Engine
// Description: Commissions completed construction/repair projects (§4.5 step 3a, §4.7)
// Version: 1.0.0
// Created: 2026-07-30

package turn

import (
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

// commissionProject turns one completed project into the entity it built,
// freeing its dock slot and dropping it from the colony's queue (§4.7
// "completed projects are appended to pending_commissions and the next
// turn's Command Phase commissions them"). Repair projects are handled by
// economy.AdvanceRepairs instead and never reach here.
func commissionProject(state *models.GameState, snap *rules.Snapshot, colony *models.Colony, project *models.ConstructionProject) {
	switch project.Kind {
	case models.ProjectShip:
		commissionShip(state, snap, colony, project)
	case models.ProjectGroundUnit:
		commissionGroundUnit(state, snap, colony, project)
	case models.ProjectFacility:
		commissionFacility(state, colony, project)
	}

	if project.AssignedFacility != 0 {
		economyReleaseDock(state, project)
	}
	colony.ConstructionQueue = removeProject(colony.ConstructionQueue, project.ID)
	state.Projects.Delete(project.ID)
}

// economyReleaseDock mirrors economy.ReleaseDock so that commission.go does
// not import the economy package. No import cycle is involved (the rest of
// package turn imports economy); keeping commission.go free of economy
// keeps scheduling and commissioning cleanly separated, matching §4.7's
// own split.
func economyReleaseDock(state *models.GameState, project *models.ConstructionProject) {
	project.AssignedFacility = 0
}

func commissionShip(state *models.GameState, snap *rules.Snapshot, colony *models.Colony, project *models.ConstructionProject) {
	rule, ok := snap.Ships[project.TargetDesign]
	if !ok {
		return
	}
	house, _ := state.Houses.Get(project.Owner)

	sq := &models.Squadron{HouseID: project.Owner}
	sqID := state.Squadrons.Create(sq)

	ship := &models.Ship{
		HouseID:    project.Owner,
		SquadronID: sqID,
		Class: models.ShipClass{
			Name: rule.Name, BaseAS: rule.BaseAS, BaseDS: rule.BaseDS,
			CC: rule.CC, CR: rule.CR, CargoCapacity: rule.CargoCapacity,
			IsFighter: rule.IsFighter, IsSpacelift: rule.IsSpacelift, IsPlanetBreaker: rule.IsPlanetBreaker,
			MaintenanceCost: rule.MaintenanceCost,
		},
		AS: rule.BaseAS, DS: rule.BaseDS,
	}
	if house != nil {
		ship.WEP = house.TechTree.Level(models.TechWEP)
	}
	shipID := state.CreateShip(ship)
	ship.ID = shipID

	sq.FlagshipID = shipID
	state.Squadrons.Update(sqID, sq)

	if rule.IsFighter {
		gu := &models.GroundUnit{Owner: project.Owner, SystemID: colony.SystemID, Kind: models.GroundUnitFighterSquadron, CombatStrength: 0}
		guID := state.GroundUnits.Create(gu)
		gu.ID = guID
		colony.Garrison = append(colony.Garrison, guID)
		// Fighters commission as a garrison asset, not a mobile fleet — the
		// squadron/ship records above track its combat stats, while the
		// ground-unit record is what capacity enforcement and garrison
		// accounting (§3.2) actually count against the colony.
		return
	}

	fleet, fleetID := findOrCreateHomeFleet(state, project.Owner, colony.SystemID)
	fleet.SquadronIDs = append(fleet.SquadronIDs, sqID)
	state.Fleets.Update(fleetID, fleet)
}

// findOrCreateHomeFleet returns a fleet belonging to house at system,
// creating one if none exists yet (a freshly commissioned ship needs
// somewhere to sit before its owner gives it an order).
func findOrCreateHomeFleet(state *models.GameState, house ids.HouseId, system ids.SystemId) (*models.Fleet, ids.FleetId) {
	for _, fid := range state.FleetsByLocation[system] {
		f, ok := state.Fleets.Get(fid)
		if ok && f.HouseID == house {
			return f, fid
		}
	}
	f := &models.Fleet{HouseID: house, Location: system}
	fid := state.CreateFleet(f)
	return f, fid
}

func commissionGroundUnit(state *models.GameState, snap *rules.Snapshot, colony *models.Colony, project *models.ConstructionProject) {
	rule, ok := snap.GroundUnits[project.TargetDesign]
	if !ok {
		return
	}
	kind := groundUnitKindFromName(project.TargetDesign)
	gu := &models.GroundUnit{Owner: project.Owner, SystemID: colony.SystemID, Kind: kind, CombatStrength: rule.CombatStrength}
	guID := state.GroundUnits.Create(gu)
	gu.ID = guID
	colony.Garrison = append(colony.Garrison, guID)
}

func groundUnitKindFromName(name string) models.GroundUnitKind {
	switch name {
	case "Army":
		return models.GroundUnitArmy
	case "Marine":
		return models.GroundUnitMarine
	case "GroundBattery":
		return models.GroundUnitGroundBattery
	case "FighterSquadron":
		return models.GroundUnitFighterSquadron
	default:
		return models.GroundUnitArmy
	}
}

func commissionFacility(state *models.GameState, colony *models.Colony, project *models.ConstructionProject) {
	kind := facilityKindFromName(project.TargetDesign)
	fac := &models.Facility{ColonyID: colony.ID, Kind: kind, Level: 1, DockCapacity: facilityDockCapacity(kind)}
	facID := state.Facilities.Create(fac)
	fac.ID = facID
	colony.Facilities = append(colony.Facilities, facID)
}

func facilityKindFromName(name string) models.FacilityKind {
	switch name {
	case "Spaceport":
		return models.FacilitySpaceport
	case "Shipyard":
		return models.FacilityShipyard
	case "Drydock":
		return models.FacilityDrydock
	case "Starbase":
		return models.FacilityStarbase
	default:
		return models.FacilitySpaceport
	}
}

// facilityDockCapacity mirrors the default snapshot's per-kind dock
// capacity; a custom scenario's snapshot is consulted by the Command
// Phase's build-order validation, but the built facility's own capacity is
// fixed at the catalog's base value for its kind at level 1.
func facilityDockCapacity(kind models.FacilityKind) int {
	switch kind {
	case models.FacilitySpaceport:
		return 1
	case models.FacilityShipyard:
		return 2
	case models.FacilityDrydock:
		return 3
	case models.FacilityStarbase:
		return 2
	default:
		return 1
	}
}

func removeProject(slice []ids.ProjectId, v ids.ProjectId) []ids.ProjectId {
	for i, x := range slice {
		if x == v {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}
