// File: internal/combat/orbital_test.go
// Project: EC4X Engine
// Description: Tests for orbital-theater combat resolution
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

func TestResolveOrbitalAttackerWinsAgainstWeakDefense(t *testing.T) {
	state := models.NewGameState(1)
	attackerHouse := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
	defenderHouse := state.Houses.Create(models.NewHouse(0, "Hegemony", 1000))

	sqAtk := newSquadron(state, attackerHouse, 4, 20, 20)
	sqGuard := newSquadron(state, defenderHouse, 1, 1, 1)

	attacker := Side{HouseID: attackerHouse, Squadrons: []ids.SquadronId{sqAtk}, Roe: models.ROEAggressive, WEPMultiplier: 1}
	defense := OrbitalDefense{HouseID: defenderHouse, GuardSquadrons: []ids.SquadronId{sqGuard}, ShieldLevel: 0}

	snap := rules.Default()
	rng := rand.New(rand.NewSource(9))

	result := ResolveOrbital(state, snap, rng, attacker, defense)
	if !result.AttackerWon {
		t.Error("expected the much stronger attacker to win orbital combat")
	}
}

func TestShieldBlockChanceCapsAt90Percent(t *testing.T) {
	if got := shieldBlockChance(50); got != 0.9 {
		t.Errorf("expected shield block chance to cap at 0.9, got %v", got)
	}
	if got := shieldBlockChance(2); got != 0.2 {
		t.Errorf("expected 0.2 for level 2, got %v", got)
	}
}

func TestResolveOrbitalReserveFightsAtHalfStrength(t *testing.T) {
	state := models.NewGameState(1)
	houseID := state.Houses.Create(models.NewHouse(0, "Hegemony", 1000))
	reserveSq := newSquadron(state, houseID, 2, 10, 10)

	defense := OrbitalDefense{HouseID: houseID, ReserveSquadrons: []ids.SquadronId{reserveSq}}
	full := Side{HouseID: houseID, Squadrons: []ids.SquadronId{reserveSq}, WEPMultiplier: 1}

	if got, want := defense.effectiveAS(state), 0.5*sideAS(state, full); got != want {
		t.Errorf("expected reserve squadrons to contribute half AS: got %v, want %v", got, want)
	}
}
