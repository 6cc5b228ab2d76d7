// File: internal/orders/validator_test.go
// Project: EC4X Engine
// Description: Tests for CommandPacket validation
// Version: 1.0.0
// Created: 2026-01-07

package orders

import (
	"testing"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

func newTestState(t *testing.T) (*models.GameState, ids.HouseId, ids.ColonyId) {
	t.Helper()
	state := models.NewGameState(1)
	houseID := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
	sysID := state.Systems.Create(&models.System{Coord: models.HexCoord{Q: 0, R: 0}})
	colony := &models.Colony{SystemID: sysID, Owner: houseID, Population: 100, Founded: true, TaxRate: -1}
	colonyID := state.Colonies.Create(colony)
	state.ColoniesByOwner[houseID] = append(state.ColoniesByOwner[houseID], sysID)
	return state, houseID, colonyID
}

func TestValidateRejectsUnownedColony(t *testing.T) {
	state, houseID, _ := newTestState(t)
	otherHouse := state.Houses.Create(models.NewHouse(0, "Hegemony", 1000))
	otherColony := state.Colonies.Create(&models.Colony{Owner: otherHouse, Founded: true})

	v := NewValidator(state, rules.Default())
	packet := CommandPacket{
		HouseID: houseID,
		BuildOrders: []BuildOrder{
			{ColonyID: otherColony, Kind: BuildShip, ShipClass: "Scout", EstimatedCost: 50},
		},
	}

	result := v.Validate(packet)
	if result.Accepted() {
		t.Fatal("expected rejection for a build order against an unowned colony")
	}
	if result.Rejected[0].Reason != ColonyNotOwned {
		t.Errorf("expected ColonyNotOwned, got %v", result.Rejected[0].Reason)
	}
}

func TestValidateBudgetProjectionRejectsOverrun(t *testing.T) {
	state, houseID, colonyID := newTestState(t)

	v := NewValidator(state, rules.Default())
	packet := CommandPacket{
		HouseID: houseID,
		BuildOrders: []BuildOrder{
			{ColonyID: colonyID, Kind: BuildShip, ShipClass: "Cruiser", EstimatedCost: 600},
			{ColonyID: colonyID, Kind: BuildShip, ShipClass: "Cruiser", EstimatedCost: 600},
		},
	}

	result := v.Validate(packet)
	if len(result.Rejected) != 1 {
		t.Fatalf("expected exactly one rejection, got %d", len(result.Rejected))
	}
	if result.Rejected[0].Index != 1 {
		t.Errorf("expected the second (later-submitted) order to be rejected, got index %d", result.Rejected[0].Index)
	}
	if result.Rejected[0].Reason != BudgetExceeded {
		t.Errorf("expected BudgetExceeded, got %v", result.Rejected[0].Reason)
	}
}

func TestValidateRejectsUnknownShipClass(t *testing.T) {
	state, houseID, colonyID := newTestState(t)
	v := NewValidator(state, rules.Default())

	result := v.Validate(CommandPacket{
		HouseID: houseID,
		BuildOrders: []BuildOrder{
			{ColonyID: colonyID, Kind: BuildShip, ShipClass: "NotAShip", EstimatedCost: 10},
		},
	})
	if result.Accepted() {
		t.Fatal("expected rejection for unknown ship class")
	}
	if result.Rejected[0].Reason != UnknownShipClass {
		t.Errorf("expected UnknownShipClass, got %v", result.Rejected[0].Reason)
	}
}

func TestValidateRejectsShieldAlreadyPresent(t *testing.T) {
	state, houseID, colonyID := newTestState(t)
	colony, _ := state.Colonies.Get(colonyID)
	colony.ShieldLevel = 1
	state.Colonies.Update(colonyID, colony)

	v := NewValidator(state, rules.Default())
	result := v.Validate(CommandPacket{
		HouseID: houseID,
		BuildOrders: []BuildOrder{
			{ColonyID: colonyID, Kind: BuildShield, EstimatedCost: 10},
		},
	})
	if result.Accepted() {
		t.Fatal("expected rejection when a shield already exists")
	}
	if result.Rejected[0].Reason != ShieldAlreadyPresent {
		t.Errorf("expected ShieldAlreadyPresent, got %v", result.Rejected[0].Reason)
	}
}

func TestValidateTransferRejectsInsufficientPopulation(t *testing.T) {
	state, houseID, colonyID := newTestState(t)
	otherColony := state.Colonies.Create(&models.Colony{Owner: houseID, Founded: true})

	v := NewValidator(state, rules.Default())
	result := v.Validate(CommandPacket{
		HouseID: houseID,
		Transfers: []PopulationTransferOrder{
			{From: colonyID, To: otherColony, Amount: 10000},
		},
	})
	if result.Accepted() {
		t.Fatal("expected rejection for a transfer exceeding source population")
	}
	if result.Rejected[0].Reason != InsufficientPopulation {
		t.Errorf("expected InsufficientPopulation, got %v", result.Rejected[0].Reason)
	}
}

func TestValidateEspionageRejectsInsufficientEBP(t *testing.T) {
	state, houseID, _ := newTestState(t)
	target := state.Houses.Create(models.NewHouse(0, "Concordat", 500))

	v := NewValidator(state, rules.Default())
	result := v.Validate(CommandPacket{
		HouseID: houseID,
		Espionage: []EspionageOrder{
			{TargetHouse: target, ActionName: "TechTheft", EBPSpend: 5},
		},
	})
	if result.Accepted() {
		t.Fatal("expected rejection: house has 0 banked EBP")
	}
	if result.Rejected[0].Reason != InsufficientEBP {
		t.Errorf("expected InsufficientEBP, got %v", result.Rejected[0].Reason)
	}
}

func TestValidateAcceptsWellFormedPacket(t *testing.T) {
	state, houseID, colonyID := newTestState(t)
	v := NewValidator(state, rules.Default())

	result := v.Validate(CommandPacket{
		HouseID: houseID,
		ColonyOrders: []ColonyManagementOrder{
			{ColonyID: colonyID, TaxRate: 0.25},
		},
	})
	if !result.Accepted() {
		t.Fatalf("expected acceptance, got rejections: %+v", result.Rejected)
	}
}
