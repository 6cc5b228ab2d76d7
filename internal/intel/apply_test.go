// File: internal/intel/apply_test.go
// Project: EC4X Engine
// Description: Delta round-trip property test (§8)
// Version: 1.0.0
// Created: 2026-07-30

package intel

import (
	"testing"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
)

// TestApplyDeltaRoundTrip covers §8's "apply_delta(apply_delta(PlayerState0,
// delta1), delta2) == project(state_after_turn_2)" property directly
// against ApplyDelta/ExtractDelta rather than the full resolver, since the
// property is about the delta machinery, not turn resolution.
func TestApplyDeltaRoundTrip(t *testing.T) {
	house := ids.HouseId(1)

	turn1 := &PlayerState{
		HouseID:    house,
		Turn:       1,
		ConfigHash: "abc",
		OwnColonies: []*models.Colony{
			{ID: 1, Owner: house, Population: 100},
		},
		VisibleSystems:      map[ids.SystemId]VisibleSystem{},
		VisibleFleets:       map[ids.FleetId]VisibleFleet{},
		Prestige:            map[ids.HouseId]int64{house: 10},
		ColonyCounts:        map[ids.HouseId]int{house: 1},
		HouseNames:          map[ids.HouseId]string{house: "House One"},
		DiplomaticRelations: map[uint64]models.DiplomaticState{},
	}

	turn2 := &PlayerState{
		HouseID:    house,
		Turn:       2,
		ConfigHash: "abc",
		OwnColonies: []*models.Colony{
			{ID: 1, Owner: house, Population: 120},
			{ID: 2, Owner: house, Population: 50},
		},
		VisibleSystems:      map[ids.SystemId]VisibleSystem{},
		VisibleFleets:       map[ids.FleetId]VisibleFleet{},
		Prestige:            map[ids.HouseId]int64{house: 12},
		ColonyCounts:        map[ids.HouseId]int{house: 2},
		HouseNames:          map[ids.HouseId]string{house: "House One"},
		DiplomaticRelations: map[uint64]models.DiplomaticState{},
	}

	d1 := ExtractDelta(nil, turn1)
	applied1 := ApplyDelta(nil, d1, turn1)

	d2 := ExtractDelta(turn1, turn2)
	applied2 := ApplyDelta(applied1, d2, turn2)

	if len(applied2.OwnColonies) != len(turn2.OwnColonies) {
		t.Fatalf("colony count mismatch: got %d want %d", len(applied2.OwnColonies), len(turn2.OwnColonies))
	}
	byID := make(map[uint32]*models.Colony)
	for _, c := range applied2.OwnColonies {
		byID[uint32(c.ID)] = c
	}
	for _, want := range turn2.OwnColonies {
		got, ok := byID[uint32(want.ID)]
		if !ok {
			t.Fatalf("colony %d missing after apply", want.ID)
		}
		if got.Population != want.Population {
			t.Fatalf("colony %d population = %d, want %d", want.ID, got.Population, want.Population)
		}
	}
	if applied2.Prestige[house] != turn2.Prestige[house] {
		t.Fatalf("prestige = %d, want %d", applied2.Prestige[house], turn2.Prestige[house])
	}
}
