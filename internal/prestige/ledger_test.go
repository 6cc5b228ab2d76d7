// File: internal/prestige/ledger_test.go
// Project: EC4X Engine
// Description: Tests for the zero-sum prestige ledger and victory checks
// Version: 1.0.0
// Created: 2026-07-30

package prestige

import (
	"testing"

	"github.com/ec4x/engine/internal/combat"
	"github.com/ec4x/engine/internal/models"
)

func TestApplyUpdatesHouseTotalsAndLedger(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Houses.Create(models.NewHouse(0, "Federation", 0))
	b := state.Houses.Create(models.NewHouse(0, "Hegemony", 0))

	l := &Ledger{}
	l.Apply(state, 5, []combat.PrestigeEvent{
		{Source: "DestroySquadron", House: a, Counterpart: b, Delta: 10, Reason: "won", Turn: 5},
		{Source: "DestroySquadron", House: b, Counterpart: a, Delta: -10, Reason: "lost", Turn: 5},
	})

	ha, _ := state.Houses.Get(a)
	hb, _ := state.Houses.Get(b)
	if ha.Prestige != 10 {
		t.Errorf("house a prestige = %d, want 10", ha.Prestige)
	}
	if hb.Prestige != -10 {
		t.Errorf("house b prestige = %d, want -10", hb.Prestige)
	}
	if len(l.Entries) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(l.Entries))
	}
}

func TestZeroSumResidualExcludesAchievementEvents(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Houses.Create(models.NewHouse(0, "Federation", 0))

	l := &Ledger{}
	l.Apply(state, 1, []combat.PrestigeEvent{
		{Source: "ColonyEstablished", House: a, Delta: 5, Turn: 1},
		{Source: "DestroySquadron", House: a, Delta: 10, Turn: 1},
		{Source: "DestroySquadron", House: a, Delta: -10, Turn: 1},
	})

	if got := l.ZeroSumResidual(1); got != 0 {
		t.Errorf("ZeroSumResidual() = %d, want 0 (achievement event excluded, combat pair cancels)", got)
	}
}

func TestCheckVictoryPrestigeThreshold(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Houses.Create(models.NewHouse(0, "Federation", 0))
	state.Houses.Create(models.NewHouse(0, "Hegemony", 0))

	ha, _ := state.Houses.Get(a)
	ha.Prestige = 1000
	state.Houses.Update(a, ha)

	result := CheckVictory(state, 1000)
	if result.Kind != PrestigeVictory || result.Winner != a {
		t.Errorf("CheckVictory() = %+v, want PrestigeVictory for house %v", result, a)
	}
}

func TestCheckEliminationMarksHouseWithNoAssets(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Houses.Create(models.NewHouse(0, "Federation", 0))

	if !CheckElimination(state, a) {
		t.Fatal("expected elimination for a house with no colonies or fleets")
	}
	h, _ := state.Houses.Get(a)
	if !h.Eliminated {
		t.Error("expected Eliminated to be set")
	}
}

func TestCheckVictoryElimination(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Houses.Create(models.NewHouse(0, "Federation", 0))
	b := state.Houses.Create(models.NewHouse(0, "Hegemony", 0))

	state.CreateFleet(&models.Fleet{HouseID: a})
	CheckElimination(state, b)

	result := CheckVictory(state, 0)
	if result.Kind != EliminationVictory || result.Winner != a {
		t.Errorf("CheckVictory() = %+v, want EliminationVictory for house %v", result, a)
	}
}
