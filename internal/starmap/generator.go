// File: internal/starmap/generator.go
// Project: EC4X Engine
// Description: Procedural hex-grid starmap generation (§4.3)
// Version: 1.0.0
// Created: 2026-01-07

package starmap

import (
	"fmt"
	"math/rand"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
)

// GeneratorConfig tunes map generation. Seed is mandatory for reproducible
// maps — §3.2's determinism invariant extends to map generation, not just
// turn resolution, since both are seeded from the same game_seed.
type GeneratorConfig struct {
	Seed int64

	// HomeworldMajorLanes is the exact lane count every homeworld ends up
	// with; §4.3 step 4 defaults this to 3.
	HomeworldMajorLanes int

	// LaneWeights gives the relative odds used when classifying a newly
	// added lane that is not forced to be Major by the hub/homeworld rules.
	LaneWeights [3]float64 // [Major, Minor, Restricted]

	// ResourceRatingRange bounds the per-system resource rating rolled at
	// generation time (inclusive).
	ResourceRatingMin int
	ResourceRatingMax int
}

// DefaultConfig returns the generator defaults used when a scenario file
// does not override them.
func DefaultConfig(seed int64) GeneratorConfig {
	return GeneratorConfig{
		Seed:                seed,
		HomeworldMajorLanes: 3,
		LaneWeights:         [3]float64{0.5, 0.35, 0.15},
		ResourceRatingMin:   1,
		ResourceRatingMax:   5,
	}
}

// Generator builds a starmap into a GameState.
type Generator struct {
	config  GeneratorConfig
	rand    *rand.Rand
	nameGen *NameGenerator
}

// NewGenerator returns a generator seeded per config.
func NewGenerator(config GeneratorConfig) *Generator {
	r := rand.New(rand.NewSource(config.Seed))
	return &Generator{
		config:  config,
		rand:    r,
		nameGen: NewNameGenerator(r),
	}
}

// ringCount derives the number of hex rings to populate from the player
// count. §4.3 says only "rings 1..N" without pinning N to the player
// count exactly; players-1 is the value that reproduces the canonical
// seeded scenario (players=4 -> 37 systems, i.e. 3 populated rings plus
// the hub: 1 + 3*3*4 = 37), so that is the relationship this generator
// implements.
func ringCount(players int) int {
	n := players - 1
	if n < 1 {
		n = 1
	}
	return n
}

// Generate populates state with a fresh starmap sized for playerCount
// houses and returns their homeworld system ids in house-assignment order
// (index i is house i's homeworld, matching caller's house creation order).
func (g *Generator) Generate(state *models.GameState, playerCount int) ([]ids.SystemId, error) {
	rings := ringCount(playerCount)

	coordToID := make(map[models.HexCoord]ids.SystemId)
	var allCoords []models.HexCoord

	hubCoord := models.HexCoord{Q: 0, R: 0}
	hubID := g.createSystem(state, hubCoord, models.SystemHub)
	coordToID[hubCoord] = hubID
	allCoords = append(allCoords, hubCoord)

	for r := 1; r <= rings; r++ {
		for _, coord := range Ring(hubCoord, r) {
			id := g.createSystem(state, coord, models.SystemOrdinary)
			coordToID[coord] = id
			allCoords = append(allCoords, coord)
		}
	}

	homeworldCoords := g.chooseHomeworlds(hubCoord, rings, playerCount)
	homeworldIDs := make([]ids.SystemId, 0, len(homeworldCoords))
	for _, coord := range homeworldCoords {
		id := coordToID[coord]
		sys, _ := state.Systems.Get(id)
		sys.Kind = models.SystemHomeworld
		state.Systems.Update(id, sys)
		homeworldIDs = append(homeworldIDs, id)
	}

	g.connectLanes(state, coordToID, allCoords, hubCoord, hubID, homeworldCoords)

	if errs := g.validate(state, coordToID, hubID, homeworldIDs); len(errs) > 0 {
		return nil, fmt.Errorf("starmap generation invalid: %v", errs[0])
	}

	return homeworldIDs, nil
}

func (g *Generator) createSystem(state *models.GameState, coord models.HexCoord, kind models.SystemKind) ids.SystemId {
	sys := &models.System{
		Name:           g.nameGen.GenerateSystemName(),
		Coord:          coord,
		Kind:           kind,
		ResourceRating: g.config.ResourceRatingMin + g.rand.Intn(g.config.ResourceRatingMax-g.config.ResourceRatingMin+1),
	}
	id := state.Systems.Create(sys)
	sys.ID = id
	state.Systems.Update(id, sys)
	return id
}

// chooseHomeworlds implements §4.3 step 2: for small player counts, pick
// from the outermost ring's 6 "vertex" cells (the only cells with exactly
// three in-grid neighbors); for larger counts, spread further candidates
// evenly by angle around the same outer ring. Either way, iterate
// distance-maximization: seed with a random candidate, then repeatedly add
// whichever remaining candidate maximizes the minimum hex distance to any
// already-chosen homeworld.
func (g *Generator) chooseHomeworlds(hub models.HexCoord, rings, playerCount int) []models.HexCoord {
	var candidates []models.HexCoord
	if playerCount <= 4 {
		candidates = RingCorners(hub, rings)
	} else {
		candidates = Ring(hub, rings)
	}
	if len(candidates) == 0 {
		candidates = []models.HexCoord{hub}
	}

	chosen := make([]models.HexCoord, 0, playerCount)
	remaining := append([]models.HexCoord(nil), candidates...)

	first := remaining[g.rand.Intn(len(remaining))]
	chosen = append(chosen, first)
	remaining = removeCoord(remaining, first)

	for len(chosen) < playerCount && len(remaining) > 0 {
		best := remaining[0]
		bestMinDist := -1
		for _, cand := range remaining {
			minDist := minDistanceTo(cand, chosen)
			if minDist > bestMinDist {
				bestMinDist = minDist
				best = cand
			}
		}
		chosen = append(chosen, best)
		remaining = removeCoord(remaining, best)
	}

	return chosen
}

func minDistanceTo(c models.HexCoord, others []models.HexCoord) int {
	min := -1
	for _, o := range others {
		d := Distance(c, o)
		if min == -1 || d < min {
			min = d
		}
	}
	return min
}

func removeCoord(coords []models.HexCoord, target models.HexCoord) []models.HexCoord {
	out := make([]models.HexCoord, 0, len(coords))
	for _, c := range coords {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}

// connectLanes implements §4.3 steps 3-5: hub connects to all six ring-1
// neighbors, every homeworld ends up with exactly HomeworldMajorLanes
// Major lanes, and the remaining adjacent pairs are connected with
// weighted-random classes subject to the homeworld degree cap.
func (g *Generator) connectLanes(state *models.GameState, coordToID map[models.HexCoord]ids.SystemId, allCoords []models.HexCoord, hubCoord models.HexCoord, hubID ids.SystemId, homeworldCoords []models.HexCoord) {
	homeworldSet := make(map[models.HexCoord]bool, len(homeworldCoords))
	for _, c := range homeworldCoords {
		homeworldSet[c] = true
	}
	degree := make(map[ids.SystemId]int)
	connected := make(map[[2]ids.SystemId]bool)

	addLane := func(a, b ids.SystemId, class models.LaneClass) {
		key := laneKey(a, b)
		if connected[key] {
			return
		}
		connected[key] = true
		idx := len(state.Lanes)
		state.Lanes = append(state.Lanes, models.Lane{A: a, B: b, Class: class})
		degree[a]++
		degree[b]++
		appendLaneIndex(state, a, idx)
		appendLaneIndex(state, b, idx)
	}

	for _, neighbor := range Neighbors(hubCoord) {
		if id, ok := coordToID[neighbor]; ok {
			class := g.randomLaneClass()
			if homeworldSet[neighbor] {
				class = models.LaneMajor
			}
			addLane(hubID, id, class)
		}
	}

	for _, hwCoord := range homeworldCoords {
		hwID := coordToID[hwCoord]
		neighborIDs := make([]ids.SystemId, 0, 6)
		for _, n := range Neighbors(hwCoord) {
			if id, ok := coordToID[n]; ok {
				neighborIDs = append(neighborIDs, id)
			}
		}
		limit := g.config.HomeworldMajorLanes
		if limit > len(neighborIDs) {
			limit = len(neighborIDs)
		}
		for i := 0; i < limit; i++ {
			addLane(hwID, neighborIDs[i], models.LaneMajor)
		}
	}

	for _, coord := range allCoords {
		id := coordToID[coord]
		if homeworldSet[coord] || coord == hubCoord {
			continue
		}
		for _, n := range Neighbors(coord) {
			nID, ok := coordToID[n]
			if !ok {
				continue
			}
			key := laneKey(id, nID)
			if connected[key] {
				continue
			}
			if homeworldSet[n] && degree[nID] >= g.config.HomeworldMajorLanes {
				continue
			}
			if n == hubCoord {
				continue
			}
			addLane(id, nID, g.randomLaneClass())
		}
	}
}

func laneKey(a, b ids.SystemId) [2]ids.SystemId {
	if a < b {
		return [2]ids.SystemId{a, b}
	}
	return [2]ids.SystemId{b, a}
}

func appendLaneIndex(state *models.GameState, id ids.SystemId, idx int) {
	sys, ok := state.Systems.Get(id)
	if !ok {
		return
	}
	sys.LaneIndices = append(sys.LaneIndices, idx)
	state.Systems.Update(id, sys)
}

func (g *Generator) randomLaneClass() models.LaneClass {
	roll := g.rand.Float64()
	if roll < g.config.LaneWeights[0] {
		return models.LaneMajor
	}
	if roll < g.config.LaneWeights[0]+g.config.LaneWeights[1] {
		return models.LaneMinor
	}
	return models.LaneRestricted
}

// validate implements §4.3 step 6: connectivity via BFS from the hub,
// the homeworld lane-count invariant, and the hub's lane count.
func (g *Generator) validate(state *models.GameState, coordToID map[models.HexCoord]ids.SystemId, hubID ids.SystemId, homeworldIDs []ids.SystemId) []error {
	var errs []error

	visited := map[ids.SystemId]bool{hubID: true}
	queue := []ids.SystemId{hubID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		sys, _ := state.Systems.Get(cur)
		for _, idx := range sys.LaneIndices {
			lane := state.Lanes[idx]
			other := lane.Other(cur)
			if !visited[other] {
				visited[other] = true
				queue = append(queue, other)
			}
		}
	}
	if len(visited) != len(coordToID) {
		errs = append(errs, fmt.Errorf("starmap not connected: reached %d of %d systems from hub", len(visited), len(coordToID)))
	}

	allIDs := make([]ids.SystemId, 0, len(coordToID))
	for _, id := range coordToID {
		allIDs = append(allIDs, id)
	}
	uf := NewUnionFind(allIDs)
	for _, lane := range state.Lanes {
		uf.Union(lane.A, lane.B)
	}
	if uf.Components() != 1 {
		errs = append(errs, fmt.Errorf("starmap union-find check: %d disjoint components, want 1", uf.Components()))
	}

	hub, _ := state.Systems.Get(hubID)
	if len(hub.LaneIndices) != 6 {
		errs = append(errs, fmt.Errorf("hub has %d lanes, want 6", len(hub.LaneIndices)))
	}

	for _, hwID := range homeworldIDs {
		hw, _ := state.Systems.Get(hwID)
		majorCount := 0
		for _, idx := range hw.LaneIndices {
			if state.Lanes[idx].Class == models.LaneMajor {
				majorCount++
			}
		}
		if majorCount != g.config.HomeworldMajorLanes {
			errs = append(errs, fmt.Errorf("homeworld %v has %d Major lanes, want %d", hwID, majorCount, g.config.HomeworldMajorLanes))
		}
	}

	return errs
}
