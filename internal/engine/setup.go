// File: internal/engine/setup.go
// Project: EC4X Engine
// Description: Scenario/game-setup types driving new-game creation (§6.2)
// Version: 1.0.0
// Created: 2026-07-30

package engine

import "github.com/ec4x/engine/internal/rules"

// HouseSetup names one player slot a new game reserves; a real join flow
// fills these in as invites are claimed (§4.12), but engine creation does
// not itself require a bound client identity.
type HouseSetup struct {
	Name string `json:"name"`
}

// GameSetup is the scenario a new game is created from: the player roster,
// the starmap/seed parameters, and the starting resources every house
// begins play with (§6.2's create_game operation, §4.3's map generation
// inputs).
type GameSetup struct {
	Name   string       `json:"name"`
	Seed   int64        `json:"seed"`
	Houses []HouseSetup `json:"houses"`

	StartingTreasury int64    `json:"starting_treasury"`
	StartingFleet    []string `json:"starting_fleet"` // ship class names, flagship first

	// PrestigeTarget is the Maintenance Phase victory threshold (§4.5 step
	// 4g); zero disables the prestige win condition.
	PrestigeTarget int64 `json:"prestige_target"`
}

// DefaultSetup returns a scenario with one house per name in houseNames
// (two default houses when none are given), using the built-in rule
// snapshot's Scout/Frigate catalog, suitable for smoke tests and the CLI's
// quickstart path.
func DefaultSetup(seed int64, houseNames ...string) GameSetup {
	if len(houseNames) == 0 {
		houseNames = []string{"House One", "House Two"}
	}
	houses := make([]HouseSetup, len(houseNames))
	for i, name := range houseNames {
		houses[i] = HouseSetup{Name: name}
	}
	return GameSetup{
		Name:             "quickstart",
		Seed:             seed,
		Houses:           houses,
		StartingTreasury: 5000,
		StartingFleet:    []string{"Frigate", "Scout"},
		PrestigeTarget:   10000,
	}
}

// resolveSnapshot picks the rule snapshot a setup should run against: the
// snapshot passed by the caller, or the built-in default when nil.
func resolveSnapshot(snap *rules.Snapshot) *rules.Snapshot {
	if snap != nil {
		return snap
	}
	return rules.Default()
}
