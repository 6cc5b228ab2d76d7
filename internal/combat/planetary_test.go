// File: internal/combat/planetary_test.go
// Project: EC4X Engine
// Description: Tests for the planetary theater (Bombard/Invade/Blitz)
// Version: 1.0.0
// Created: 2026-01-07

package combat

import (
	"math/rand"
	"testing"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

func TestBombardDamagesIU(t *testing.T) {
	colony := &models.Colony{Population: 1000, IU: 500}
	snap := rules.Default()
	rng := rand.New(rand.NewSource(5))

	result := Bombard(colony, snap, rng)
	if result.IUDamage <= 0 {
		t.Error("expected bombard to deal IU damage")
	}
	if colony.IU != 500-result.IUDamage {
		t.Errorf("expected colony.IU to drop by exactly the reported damage, got %d (started 500, reported %d)", colony.IU, result.IUDamage)
	}
	if result.RoundsFired != snap.Combat.MaxBombardRoundsPerTurn {
		t.Errorf("expected %d rounds fired, got %d", snap.Combat.MaxBombardRoundsPerTurn, result.RoundsFired)
	}
}

func TestInvadeVictoryTransfersPopulationLoss(t *testing.T) {
	state := models.NewGameState(1)
	defenderHouse := state.Houses.Create(models.NewHouse(0, "Hegemony", 100))
	garrisonID := state.GroundUnits.Create(&models.GroundUnit{Owner: defenderHouse, Kind: models.GroundUnitArmy, CombatStrength: 10})
	colony := &models.Colony{Owner: defenderHouse, IU: 1000, Garrison: []ids.GroundUnitId{garrisonID}}

	attackerHouse := state.Houses.Create(models.NewHouse(0, "Federation", 100))
	var marines []ids.GroundUnitId
	for i := 0; i < 3; i++ {
		id := state.GroundUnits.Create(&models.GroundUnit{Owner: attackerHouse, Kind: models.GroundUnitMarine, CombatStrength: 10})
		marines = append(marines, id)
	}

	snap := rules.Default()
	result := Invade(state, colony, marines, snap)
	if !result.Victory {
		t.Fatalf("expected attacker (strength %d) to beat defender (strength %d)", result.AttackerStrength, result.DefenderStrength)
	}
	if result.PopulationLoss != int64(float64(colony.IU)*snap.Combat.InvasionIULoss) {
		t.Errorf("unexpected population loss: %d", result.PopulationLoss)
	}
	if len(colony.Garrison) != 0 {
		t.Error("expected garrison to be cleared on successful invasion")
	}
}

func TestInvadeDefeatLeavesGarrisonIntact(t *testing.T) {
	state := models.NewGameState(1)
	defenderHouse := state.Houses.Create(models.NewHouse(0, "Hegemony", 100))
	var garrison []ids.GroundUnitId
	for i := 0; i < 5; i++ {
		id := state.GroundUnits.Create(&models.GroundUnit{Owner: defenderHouse, Kind: models.GroundUnitArmy, CombatStrength: 20})
		garrison = append(garrison, id)
	}
	colony := &models.Colony{Owner: defenderHouse, IU: 1000, Garrison: garrison}

	attackerHouse := state.Houses.Create(models.NewHouse(0, "Federation", 100))
	marineID := state.GroundUnits.Create(&models.GroundUnit{Owner: attackerHouse, Kind: models.GroundUnitMarine, CombatStrength: 5})

	snap := rules.Default()
	result := Invade(state, colony, []ids.GroundUnitId{marineID}, snap)
	if result.Victory {
		t.Fatal("expected a single weak marine unit to fail against a strong garrison")
	}
	if len(colony.Garrison) != 5 {
		t.Error("expected garrison to remain intact after the attacker is repelled")
	}
}
