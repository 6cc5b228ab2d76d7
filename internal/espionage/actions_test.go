// File: internal/espionage/actions_test.go
// Project: EC4X Engine
// Description: Tests for EBP/CIP espionage action resolution
// Version: 1.0.0
// Created: 2026-07-30

package espionage

import (
	"math/rand"
	"testing"

	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

func TestResolveRejectsInsufficientEBP(t *testing.T) {
	state := models.NewGameState(1)
	attacker := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
	target := state.Houses.Create(models.NewHouse(0, "Hegemony", 1000))

	snap := rules.Default()
	rng := rand.New(rand.NewSource(1))

	out := Resolve(state, snap, rng, attacker, target, "TechTheft", 0, false)
	if out.Detected || out.EffectApplied || len(out.Prestige) != 0 {
		t.Errorf("expected a no-op outcome when attacker lacks EBP, got %+v", out)
	}
}

func TestResolveSweepRaisesDetectionThreshold(t *testing.T) {
	// Runs the same seeds with and without a sweep and counts detections: a
	// higher threshold for the detection roll to reach means fewer detections.
	snap := rules.Default()
	countDetected := func(sweep bool) int {
		n := 0
		for seed := int64(0); seed < 200; seed++ {
			state := models.NewGameState(1)
			attacker := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
			target := state.Houses.Create(models.NewHouse(0, "Hegemony", 1000))
			a, _ := state.Houses.Get(attacker)
			a.Espionage.EBP = 10
			state.Houses.Update(attacker, a)
			rng := rand.New(rand.NewSource(seed))
			if Resolve(state, snap, rng, attacker, target, "TechTheft", 0, sweep).Detected {
				n++
			}
		}
		return n
	}

	withoutSweep := countDetected(false)
	withSweep := countDetected(true)

	if withSweep >= withoutSweep {
		t.Fatal("sweep should raise the detection threshold")
	}
}

func TestResolveSuccessAppliesEffectsAndSpendsEBP(t *testing.T) {
	state := models.NewGameState(1)
	attacker := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
	target := state.Houses.Create(models.NewHouse(0, "Hegemony", 1000))

	a, _ := state.Houses.Get(attacker)
	a.Espionage.EBP = 10
	state.Houses.Update(attacker, a)

	tgt, _ := state.Houses.Get(target)
	tgt.TechTree.Points[0] = 50
	state.Houses.Update(target, tgt)

	snap := rules.Default()
	// Seed chosen so the d20 roll stays below the (undefended) detection
	// threshold; TechTheft costs 5 EBP and steals 10 SRP on success.
	var out Outcome
	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		a2, _ := state.Houses.Get(attacker)
		a2.Espionage.EBP = 10
		state.Houses.Update(attacker, a2)
		out = Resolve(state, snap, rng, attacker, target, "TechTheft", 0, false)
		if !out.Detected {
			break
		}
	}
	if out.Detected {
		t.Fatal("expected at least one seed within range to produce an undetected TechTheft")
	}

	a, _ = state.Houses.Get(attacker)
	if a.Espionage.EBP != 5 {
		t.Errorf("expected EBP spent down to 5, got %d", a.Espionage.EBP)
	}
}

func TestPurchasePointsRejectsInsufficientTreasury(t *testing.T) {
	house := models.NewHouse(1, "Federation", 10)
	if PurchasePoints(house, 5, 3, 0) {
		t.Fatal("expected purchase to fail: 3 points at 5 PP/point costs 15 > treasury of 10")
	}
	if house.Espionage.EBP != 0 {
		t.Error("failed purchase should not mutate the espionage budget")
	}
}

func TestPurchasePointsDeductsTreasuryOnSuccess(t *testing.T) {
	house := models.NewHouse(1, "Federation", 100)
	if !PurchasePoints(house, 5, 3, 2) {
		t.Fatal("expected purchase to succeed")
	}
	if house.Treasury != 75 {
		t.Errorf("treasury = %d, want 75", house.Treasury)
	}
	if house.Espionage.EBP != 3 || house.Espionage.CIP != 2 {
		t.Errorf("espionage budget = %+v, want EBP=3 CIP=2", house.Espionage)
	}
}
