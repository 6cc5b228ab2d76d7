// File: internal/engine/game_test.go
// Project: EC4X Engine
// Description: Game lifecycle smoke tests (§6.2)
// Version: 1.0.0
// Created: 2026-07-30

package engine

import (
	"testing"

	"github.com/ec4x/engine/internal/orders"
)

func TestNewGameSeedsHousesAndStarmap(t *testing.T) {
	setup := DefaultSetup(42, "Atreides", "Harkonnen")
	g, err := NewGame("game-1", setup, nil)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if len(g.Houses) != 2 {
		t.Fatalf("houses = %d, want 2", len(g.Houses))
	}
	if g.State.Systems.Len() == 0 {
		t.Fatal("expected a generated starmap")
	}
	for _, houseID := range g.Houses {
		if len(g.State.ColoniesByOwner[houseID]) != 1 {
			t.Fatalf("house %v: expected exactly one starting colony, got %d", houseID, len(g.State.ColoniesByOwner[houseID]))
		}
		if len(g.State.FleetsByOwner[houseID]) != 1 {
			t.Fatalf("house %v: expected exactly one starting fleet, got %d", houseID, len(g.State.FleetsByOwner[houseID]))
		}
	}
}

func TestSubmitOrdersAndAdvanceTurn(t *testing.T) {
	setup := DefaultSetup(7, "Atreides", "Harkonnen")
	g, err := NewGame("game-2", setup, nil)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	for _, houseID := range g.Houses {
		result := g.SubmitOrders(houseID, orders.CommandPacket{})
		if !result.Accepted() {
			t.Fatalf("house %v: expected empty packet accepted, got rejections %v", houseID, result.Rejected)
		}
	}

	report := g.AdvanceTurn()
	if report.Turn != 1 {
		t.Fatalf("turn = %d, want 1", report.Turn)
	}
	if g.State.Turn != 1 {
		t.Fatalf("state turn = %d, want 1", g.State.Turn)
	}
	for _, houseID := range g.Houses {
		if _, ok := report.PlayerStates[houseID]; !ok {
			t.Fatalf("house %v: missing player state in turn report", houseID)
		}
	}
}

func TestAdvanceTurnDeterministicAcrossIdenticalGames(t *testing.T) {
	setup := DefaultSetup(99, "Atreides", "Harkonnen")
	g1, err := NewGame("a", setup, nil)
	if err != nil {
		t.Fatalf("NewGame g1: %v", err)
	}
	g2, err := NewGame("b", setup, nil)
	if err != nil {
		t.Fatalf("NewGame g2: %v", err)
	}

	r1 := g1.AdvanceTurn()
	r2 := g2.AdvanceTurn()

	for _, houseID := range g1.Houses {
		p1, p2 := r1.PlayerStates[houseID], r2.PlayerStates[houseID]
		if len(p1.OwnColonies) != len(p2.OwnColonies) {
			t.Fatalf("house %v: colony count diverged between identical seeds", houseID)
		}
		if p1.Prestige[houseID] != p2.Prestige[houseID] {
			t.Fatalf("house %v: prestige diverged between identical seeds", houseID)
		}
	}
}

func TestPlayerStateUnknownHouse(t *testing.T) {
	setup := DefaultSetup(1, "Atreides")
	g, err := NewGame("game-3", setup, nil)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := g.PlayerState(9999); err == nil {
		t.Fatal("expected error for unknown house")
	}
}
