// File: internal/economy/maintenance_test.go
// Project: EC4X Engine
// Description: Tests for Maintenance-Phase upkeep, repair, and capacity enforcement
// Version: 1.0.0
// Created: 2026-07-30

package economy

import (
	"testing"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

func newTestColony(state *models.GameState, owner ids.HouseId, iu, pop int64) ids.ColonyId {
	sysID := state.Systems.Create(&models.System{})
	colony := &models.Colony{SystemID: sysID, Owner: owner, IU: iu, Population: pop, Founded: true}
	cid := state.Colonies.Create(colony)
	colony.ID = cid
	state.Colonies.Update(cid, colony)
	state.ColoniesByOwner[owner] = append(state.ColoniesByOwner[owner], sysID)
	return cid
}

func TestComputeUpkeepSumsShipsFacilitiesAndGroundUnits(t *testing.T) {
	state := models.NewGameState(1)
	house := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
	snap := rules.Default()

	ship := &models.Ship{HouseID: house, Class: models.ShipClass{Name: "Cruiser"}}
	shipID := state.CreateShip(ship)
	ship.ID = shipID
	state.Ships.Update(shipID, ship)

	colonyID := newTestColony(state, house, 100, 1000)
	colony, _ := state.Colonies.Get(colonyID)
	facID := state.Facilities.Create(&models.Facility{ColonyID: colonyID, Kind: models.FacilitySpaceport, DockCapacity: 1})
	colony.Facilities = append(colony.Facilities, facID)
	guID := state.GroundUnits.Create(&models.GroundUnit{Owner: house, Kind: models.GroundUnitArmy})
	colony.Garrison = append(colony.Garrison, guID)
	state.Colonies.Update(colonyID, colony)

	got := ComputeUpkeep(state, house, snap)
	want := snap.Ships["Cruiser"].MaintenanceCost + snap.Facilities["Spaceport"].MaintenanceCost + snap.GroundUnits["Army"].MaintenanceCost
	if got != want {
		t.Errorf("ComputeUpkeep() = %d, want %d", got, want)
	}
}

func TestComputeUpkeepHalvesCrippledShipCost(t *testing.T) {
	state := models.NewGameState(1)
	house := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
	snap := rules.Default()

	ship := &models.Ship{HouseID: house, Class: models.ShipClass{Name: "Cruiser"}, State: models.Crippled}
	shipID := state.CreateShip(ship)
	ship.ID = shipID
	state.Ships.Update(shipID, ship)

	got := ComputeUpkeep(state, house, snap)
	want := int64(float64(snap.Ships["Cruiser"].MaintenanceCost) * snap.Capacity.CrippledMaintenanceMultiplier)
	if got != want {
		t.Errorf("ComputeUpkeep() with crippled ship = %d, want %d", got, want)
	}
}

func TestRunMaintenancePhaseDeductsTreasuryWhenAffordable(t *testing.T) {
	state := models.NewGameState(1)
	house := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
	snap := rules.Default()

	ship := &models.Ship{HouseID: house, Class: models.ShipClass{Name: "Cruiser"}}
	shipID := state.CreateShip(ship)
	ship.ID = shipID
	state.Ships.Update(shipID, ship)

	shortfalls, events := RunMaintenancePhase(state, snap, 1)
	if len(shortfalls) != 0 || len(events) != 0 {
		t.Fatalf("expected no shortfall when treasury covers upkeep, got %+v / %+v", shortfalls, events)
	}
	h, _ := state.Houses.Get(house)
	if h.Treasury != 1000-snap.Ships["Cruiser"].MaintenanceCost {
		t.Errorf("treasury = %d, want %d", h.Treasury, 1000-snap.Ships["Cruiser"].MaintenanceCost)
	}
}

func TestRunMaintenancePhaseAppliesShortfallToLowestPUColony(t *testing.T) {
	state := models.NewGameState(1)
	house := state.Houses.Create(models.NewHouse(0, "Federation", 1))
	snap := rules.Default()

	ship := &models.Ship{HouseID: house, Class: models.ShipClass{Name: "Dreadnought"}}
	shipID := state.CreateShip(ship)
	ship.ID = shipID
	state.Ships.Update(shipID, ship)

	highPU := newTestColony(state, house, 50, 5000)
	lowPU := newTestColony(state, house, 50, 100)

	shortfalls, events := RunMaintenancePhase(state, snap, 3)
	if len(shortfalls) != 1 {
		t.Fatalf("expected exactly one shortfall event, got %d", len(shortfalls))
	}
	if shortfalls[0].Colony != lowPU {
		t.Errorf("shortfall targeted colony %v, want lowest-PU colony %v", shortfalls[0].Colony, lowPU)
	}
	if len(events) != 1 || events[0].Delta >= 0 {
		t.Errorf("expected one negative MaintenanceShortfall prestige event, got %+v", events)
	}

	h, _ := state.Houses.Get(house)
	if h.Treasury != 0 {
		t.Errorf("treasury = %d, want 0 after shortfall", h.Treasury)
	}

	low, _ := state.Colonies.Get(lowPU)
	if low.InfrastructureDamage <= 0 {
		t.Error("expected infrastructure damage applied to the lowest-PU colony")
	}
	high, _ := state.Colonies.Get(highPU)
	if high.InfrastructureDamage != 0 {
		t.Error("did not expect infrastructure damage on the higher-PU colony")
	}
}

func TestResolvePopulationTransfersDeliversArrivedTransfers(t *testing.T) {
	state := models.NewGameState(1)
	house := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
	from := newTestColony(state, house, 10, 1000)
	to := newTestColony(state, house, 10, 500)

	tid := state.Transfers.Create(&models.PopulationInTransit{Owner: house, From: from, To: to, Amount: 200, ETATurn: 5})

	ResolvePopulationTransfers(state, 3)
	if _, ok := state.Transfers.Get(tid); !ok {
		t.Fatal("transfer should not have been delivered before its ETA")
	}

	ResolvePopulationTransfers(state, 5)
	if _, ok := state.Transfers.Get(tid); ok {
		t.Error("transfer should have been delivered and removed at its ETA")
	}
	dest, _ := state.Colonies.Get(to)
	if dest.Population != 700 {
		t.Errorf("destination population = %d, want 700", dest.Population)
	}
}

func TestEnforceFighterCapacityRespectsGracePeriod(t *testing.T) {
	state := models.NewGameState(1)
	house := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
	hObj, _ := state.Houses.Get(house)
	snap := rules.Default()

	colonyID := newTestColony(state, house, 20, 1000) // capacity = floor(20/20)*1 = 1
	colony, _ := state.Colonies.Get(colonyID)
	var fighterIDs []ids.GroundUnitId
	for i := 0; i < 3; i++ {
		guID := state.GroundUnits.Create(&models.GroundUnit{Owner: house, Kind: models.GroundUnitFighterSquadron})
		colony.Garrison = append(colony.Garrison, guID)
		fighterIDs = append(fighterIDs, guID)
	}
	state.Colonies.Update(colonyID, colony)
	colony, _ = state.Colonies.Get(colonyID)

	// Turn 1: violation first observed, within grace period.
	violations := EnforceFighterCapacity(state, colony, hObj, snap, 1)
	if len(violations) != 0 {
		t.Fatalf("expected no enforcement during the grace period, got %+v", violations)
	}
	state.Colonies.Update(colonyID, colony)

	// Turn 1 + grace period: should now disband the oldest fighter.
	colony, _ = state.Colonies.Get(colonyID)
	violations = EnforceFighterCapacity(state, colony, hObj, snap, 1+snap.Capacity.FighterGracePeriodTurns)
	if len(violations) != 1 {
		t.Fatalf("expected one fighter capacity violation after the grace period, got %d", len(violations))
	}
	state.Colonies.Update(colonyID, colony)

	gu, ok := state.GroundUnits.Get(fighterIDs[0])
	if !ok || !gu.Destroyed {
		t.Error("expected the oldest fighter squadron to be disbanded")
	}
}

func TestEnforcePlanetBreakerCapacityScrapsOldestOverLimit(t *testing.T) {
	state := models.NewGameState(1)
	house := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
	snap := rules.Default()

	newTestColony(state, house, 10, 100) // one colony -> PB cap of 1

	var breakerIDs []ids.ShipId
	for i := 0; i < 3; i++ {
		ship := &models.Ship{HouseID: house, Class: models.ShipClass{Name: "PlanetBreaker", IsPlanetBreaker: true, CR: 40}}
		id := state.Ships.Create(ship)
		ship.ID = id
		state.Ships.Update(id, ship)
		sq := &models.Squadron{HouseID: house, FlagshipID: id, ShipIDs: []ids.ShipId{id}}
		sqID := state.Squadrons.Create(sq)
		ship.SquadronID = sqID
		state.Ships.Update(id, ship)
		state.ShipsByHouse[house] = append(state.ShipsByHouse[house], id)
		breakerIDs = append(breakerIDs, id)
	}

	violations := EnforcePlanetBreakerCapacity(state, house, snap)
	if len(violations) != 2 {
		t.Fatalf("expected 2 scrap violations (3 PBs, cap 1), got %d", len(violations))
	}
	for i := 0; i < 2; i++ {
		ship, ok := state.Ships.Get(breakerIDs[i])
		if ok {
			t.Errorf("expected planet-breaker %v to be scrapped (removed from arena), still present: %+v", breakerIDs[i], ship)
		}
	}
	if _, ok := state.Ships.Get(breakerIDs[2]); !ok {
		t.Error("expected the newest planet-breaker to survive")
	}
}
