// File: internal/starmap/generator_test.go
// Project: EC4X Engine
// Description: Tests for hex-grid starmap generation
// Version: 1.0.0
// Created: 2026-01-07

package starmap

import (
	"testing"

	"github.com/ec4x/engine/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig(42)

	if config.HomeworldMajorLanes != 3 {
		t.Errorf("expected HomeworldMajorLanes 3, got %d", config.HomeworldMajorLanes)
	}
	if config.Seed != 42 {
		t.Errorf("expected seed 42, got %d", config.Seed)
	}
}

func TestGeneratorCreation(t *testing.T) {
	gen := NewGenerator(DefaultConfig(1))
	if gen == nil {
		t.Fatal("generator should not be nil")
	}
	if gen.nameGen == nil {
		t.Error("name generator should be initialized")
	}
	if gen.rand == nil {
		t.Error("random source should be initialized")
	}
}

// TestStarmapGenerationScenario reproduces §8's seeded concrete scenario 1:
// seed=42, players=4 -> 37 systems, hub has 6 lanes, each homeworld has 3
// Major lanes, and the map is connected.
func TestStarmapGenerationScenario(t *testing.T) {
	state := models.NewGameState(42)
	gen := NewGenerator(DefaultConfig(42))

	homeworlds, err := gen.Generate(state, 4)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	if got := state.Systems.Len(); got != 37 {
		t.Errorf("expected 37 systems, got %d", got)
	}

	if len(homeworlds) != 4 {
		t.Fatalf("expected 4 homeworlds, got %d", len(homeworlds))
	}

	for _, hwID := range homeworlds {
		hw, ok := state.Systems.Get(hwID)
		if !ok {
			t.Fatalf("homeworld %v does not exist", hwID)
		}
		if hw.Kind != models.SystemHomeworld {
			t.Errorf("system %v expected Homeworld kind, got %v", hwID, hw.Kind)
		}
		majorCount := 0
		for _, idx := range hw.LaneIndices {
			if state.Lanes[idx].Class == models.LaneMajor {
				majorCount++
			}
		}
		if majorCount != 3 {
			t.Errorf("homeworld %v: expected 3 Major lanes, got %d", hwID, majorCount)
		}
	}

	var hub *models.System
	for _, id := range state.Systems.Ids() {
		sys, _ := state.Systems.Get(id)
		if sys.Kind == models.SystemHub {
			hub = sys
			break
		}
	}
	if hub == nil {
		t.Fatal("no hub system found")
	}
	if len(hub.LaneIndices) != 6 {
		t.Errorf("hub: expected 6 lanes, got %d", len(hub.LaneIndices))
	}
}

func TestFindPathRespectsLaneClassWeights(t *testing.T) {
	state := models.NewGameState(7)
	gen := NewGenerator(DefaultConfig(7))
	homeworlds, err := gen.Generate(state, 2)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	result := FindPath(state, homeworlds[0], homeworlds[1], false)
	if !result.Found {
		t.Fatal("expected a path between the two homeworlds of a connected map")
	}
	if result.TotalCost <= 0 {
		t.Errorf("expected positive total cost, got %d", result.TotalCost)
	}

	eta, ok := CalculateETA(result)
	if !ok {
		t.Fatal("expected ETA to resolve")
	}
	if eta < 1 {
		t.Errorf("expected ETA >= 1, got %d", eta)
	}
}

func TestFindPathUnreachable(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Systems.Create(&models.System{Coord: models.HexCoord{Q: 0, R: 0}})
	b := state.Systems.Create(&models.System{Coord: models.HexCoord{Q: 5, R: 5}})

	result := FindPath(state, a, b, false)
	if result.Found {
		t.Fatal("expected no path between disconnected systems")
	}
	if _, ok := CalculateETA(result); ok {
		t.Error("expected ETA to be unresolved for an unreachable destination")
	}
}

func TestUnionFindTracksComponents(t *testing.T) {
	uf := NewUnionFind([]int{1, 2, 3, 4})
	uf.Union(1, 2)
	uf.Union(3, 4)
	if got := uf.Components(); got != 2 {
		t.Errorf("expected 2 components, got %d", got)
	}
	uf.Union(2, 3)
	if got := uf.Components(); got != 1 {
		t.Errorf("expected 1 component after merging, got %d", got)
	}
}

func TestHexDistanceAndRing(t *testing.T) {
	center := models.HexCoord{Q: 0, R: 0}
	if d := Distance(center, models.HexCoord{Q: 2, R: -1}); d != 2 {
		t.Errorf("expected distance 2, got %d", d)
	}
	ring := Ring(center, 2)
	if len(ring) != 12 {
		t.Errorf("expected ring radius 2 to have 12 cells, got %d", len(ring))
	}
	corners := RingCorners(center, 2)
	if len(corners) != 6 {
		t.Errorf("expected 6 corners, got %d", len(corners))
	}
}
