// File: cmd/genmap/main.go
// Project: EC4X Engine
// Description: Starmap generation debug tool (§4.3)
// Version: 1.0.0
// Created: 2026-07-30

package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/starmap"
)

func main() {
	var (
		players = flag.Int("players", 4, "number of houses to seat (drives ring count)")
		seed    = flag.Int64("seed", 0, "generation seed (0 picks a pseudo-random one)")
		list    = flag.Bool("list", false, "list every generated system")
	)
	flag.Parse()

	if *seed == 0 {
		*seed = int64(os.Getpid())
	}

	fmt.Printf("generating starmap: players=%d seed=%d\n", *players, *seed)

	state := models.NewGameState(*seed)
	gen := starmap.NewGenerator(starmap.DefaultConfig(*seed))
	homeworlds, err := gen.Generate(state, *players)
	if err != nil {
		fmt.Fprintf(os.Stderr, "genmap: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("systems: %d\n", state.Systems.Len())
	fmt.Printf("lanes:   %d\n", len(state.Lanes))
	fmt.Println("homeworlds:")
	for i, id := range homeworlds {
		sys, _ := state.Systems.Get(id)
		fmt.Printf("  house %d: system %d %q at %+v\n", i, id, sys.Name, sys.Coord)
	}

	if *list {
		printSystems(state)
	}
}

func printSystems(state *models.GameState) {
	systemIDs := state.Systems.Ids()
	sort.Slice(systemIDs, func(i, j int) bool { return systemIDs[i] < systemIDs[j] })

	fmt.Println("systems:")
	for _, id := range systemIDs {
		sys, _ := state.Systems.Get(id)
		laneCount := laneCountFor(state, id)
		fmt.Printf("  %5d  %-24s kind=%-10v coord=%+v resource=%d lanes=%d\n",
			id, sys.Name, sys.Kind, sys.Coord, sys.ResourceRating, laneCount)
	}
}

func laneCountFor(state *models.GameState, id ids.SystemId) int {
	n := 0
	for _, lane := range state.Lanes {
		if lane.A == id || lane.B == id {
			n++
		}
	}
	return n
}
