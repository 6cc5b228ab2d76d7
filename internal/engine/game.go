// File: internal/engine/game.go
// Project: EC4X Engine
// Description: Game lifecycle orchestration: creation, order submission, turn advance, state query (§6.2)
// Version: 1.0.0
// Created: 2026-07-30

// Package engine owns one running game end to end: creating it from a
// GameSetup scenario, accepting and validating per-house CommandPackets,
// driving the turn.Resolver forward, and answering fog-of-war PlayerState
// queries. It is the seam between the pure rules packages (turn, orders,
// intel, rules, starmap) and the outer transport/persistence/CLI layers.
package engine

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/ec4x/engine/internal/economy"
	"github.com/ec4x/engine/internal/eventlog"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/intel"
	"github.com/ec4x/engine/internal/logger"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/orders"
	"github.com/ec4x/engine/internal/prestige"
	"github.com/ec4x/engine/internal/rules"
	"github.com/ec4x/engine/internal/starmap"
	"github.com/ec4x/engine/internal/turn"
)

var log = logger.WithComponent("Engine")

// Game is one running match: its entity state, the rule snapshot it was
// created under, the turn resolver carrying cross-turn bookkeeping, and the
// orders staged for the next advance_turn call.
type Game struct {
	ID         string
	State      *models.GameState
	Snapshot   *rules.Snapshot
	ConfigHash string

	Resolver *turn.Resolver
	Events   *eventlog.Manager

	// Houses maps each house's setup-order index to its assigned id, so
	// callers that only know a house by slot (e.g. an invite) can resolve
	// the ids.HouseId the engine uses everywhere else.
	Houses []ids.HouseId

	pending map[ids.HouseId]orders.CommandPacket
}

// NewGame creates a fresh game from setup: generates the starmap, seeds one
// house per setup.Houses entry with a homeworld colony and starting fleet,
// and returns a Game ready to accept orders for turn 1 (§6.2's create_game
// operation).
func NewGame(id string, setup GameSetup, snap *rules.Snapshot) (*Game, error) {
	if len(setup.Houses) == 0 {
		return nil, fmt.Errorf("engine: game setup must include at least one house")
	}
	snap = resolveSnapshot(snap)
	configHash, err := snap.ConfigHash()
	if err != nil {
		return nil, fmt.Errorf("engine: compute config hash: %w", err)
	}

	state := models.NewGameState(setup.Seed)

	gen := starmap.NewGenerator(starmap.DefaultConfig(setup.Seed))
	homeworlds, err := gen.Generate(state, len(setup.Houses))
	if err != nil {
		return nil, fmt.Errorf("engine: generate starmap: %w", err)
	}

	houseIDs := make([]ids.HouseId, len(setup.Houses))
	for i, hs := range setup.Houses {
		houseID := state.Houses.Create(models.NewHouse(0, hs.Name, setup.StartingTreasury))
		h, _ := state.Houses.Get(houseID)
		h.ID = houseID
		state.Houses.Update(houseID, h)
		houseIDs[i] = houseID
		state.IntelDatabases[houseID] = models.NewIntelligenceDatabase(houseID)

		seedHomeworld(state, snap, houseID, homeworlds[i])
		seedStartingFleet(state, snap, houseID, homeworlds[i], setup.StartingFleet)
	}

	totalSystems := state.Systems.Len()
	growth := dynamicGrowthMultiplierFor(totalSystems, len(setup.Houses), snap)

	g := &Game{
		ID:         id,
		State:      state,
		Snapshot:   snap,
		ConfigHash: configHash,
		Resolver:   turn.NewResolver(state, growth, setup.PrestigeTarget),
		Events:     eventlog.NewManager(),
		Houses:     houseIDs,
		pending:    make(map[ids.HouseId]orders.CommandPacket),
	}
	log.Info("Created game: id=%s houses=%d systems=%d", id, len(houseIDs), totalSystems)
	return g, nil
}

// LoadGame reconstructs a Game around an already-persisted state (the
// persistence package's FullLoad output), rebuilding the resolver's
// derived fields the same way NewGame computes them for a fresh game. The
// resolver's cross-turn bookkeeping (diplomacy cooldowns, pending
// moves/combat, prior-turn intel snapshots) does not survive a restart in
// this implementation — a house simply sees its first post-restart delta
// as a full resync (§4.11's delta contract tolerates this: ExtractDelta
// against a nil previous state degrades to "everything added").
func LoadGame(id string, state *models.GameState, snap *rules.Snapshot, houseIDs []ids.HouseId, prestigeTarget int64) (*Game, error) {
	snap = resolveSnapshot(snap)
	configHash, err := snap.ConfigHash()
	if err != nil {
		return nil, fmt.Errorf("engine: compute config hash: %w", err)
	}
	growth := dynamicGrowthMultiplierFor(state.Systems.Len(), len(houseIDs), snap)
	return &Game{
		ID:         id,
		State:      state,
		Snapshot:   snap,
		ConfigHash: configHash,
		Resolver:   turn.NewResolver(state, growth, prestigeTarget),
		Events:     eventlog.NewManager(),
		Houses:     houseIDs,
		pending:    make(map[ids.HouseId]orders.CommandPacket),
	}, nil
}

func seedHomeworld(state *models.GameState, snap *rules.Snapshot, houseID ids.HouseId, systemID ids.SystemId) {
	colony := &models.Colony{
		SystemID:      systemID,
		Owner:         houseID,
		Population:    1_000_000,
		MaxPopulation: 10_000_000,
		IU:            100,
		TaxRate:       -1,
		Founded:       true,
	}
	cid := state.Colonies.Create(colony)
	colony.ID = cid
	state.Colonies.Update(cid, colony)
	state.ColoniesByOwner[houseID] = append(state.ColoniesByOwner[houseID], systemID)

	if rule, ok := snap.Facilities["Shipyard"]; ok {
		facility := &models.Facility{ColonyID: cid, Kind: models.FacilityShipyard, Level: 1, DockCapacity: rule.DockCapacity}
		fid := state.Facilities.Create(facility)
		facility.ID = fid
		state.Facilities.Update(fid, facility)
		colony.Facilities = append(colony.Facilities, fid)
		state.Colonies.Update(cid, colony)
	}
}

// seedStartingFleet commissions one squadron at systemID: the first class
// in classNames serves as flagship, the remainder as escorts, all frozen
// with untouched tech (house starts at tech level 0 in every field).
func seedStartingFleet(state *models.GameState, snap *rules.Snapshot, houseID ids.HouseId, systemID ids.SystemId, classNames []string) {
	if len(classNames) == 0 {
		return
	}

	fleet := &models.Fleet{HouseID: houseID, Location: systemID, Roe: models.ROEStandard}
	fleetID := state.CreateFleet(fleet)

	squadron := &models.Squadron{HouseID: houseID}
	squadronID := state.Squadrons.Create(squadron)
	squadron.ID = squadronID

	for i, className := range classNames {
		rule, ok := snap.Ships[className]
		if !ok {
			continue
		}
		ship := &models.Ship{
			HouseID:    houseID,
			SquadronID: squadronID,
			Class: models.ShipClass{
				Name: rule.Name, BaseAS: rule.BaseAS, BaseDS: rule.BaseDS,
				CC: rule.CC, CR: rule.CR, CargoCapacity: rule.CargoCapacity,
				IsFighter: rule.IsFighter, IsSpacelift: rule.IsSpacelift,
				IsPlanetBreaker: rule.IsPlanetBreaker, MaintenanceCost: rule.MaintenanceCost,
			},
			AS: rule.BaseAS, DS: rule.BaseDS,
		}
		shipID := state.CreateShip(ship)
		if i == 0 {
			squadron.FlagshipID = shipID
		}
	}
	state.Squadrons.Update(squadronID, squadron)

	fleet.SquadronIDs = append(fleet.SquadronIDs, squadronID)
	state.Fleets.Update(fleetID, fleet)
}

// dynamicGrowthMultiplierFor derives the systems-per-player density figure
// economy.DynamicGrowthMultiplier expects from the generated map.
func dynamicGrowthMultiplierFor(totalSystems, playerCount int, snap *rules.Snapshot) float64 {
	if playerCount <= 0 {
		return 1.0
	}
	return economy.DynamicGrowthMultiplier(float64(totalSystems)/float64(playerCount), snap)
}

// SubmitOrders validates packet against the current state and rules, stages
// the accepted subset for the next AdvanceTurn call, and returns the
// validation result (§6.2's submit_orders operation: "validate, stage,
// return Ack|Error"). A packet whose owning house is unknown is rejected in
// full by the validator itself.
func (g *Game) SubmitOrders(houseID ids.HouseId, packet orders.CommandPacket) orders.Result {
	packet.HouseID = houseID
	packet.Turn = g.State.Turn + 1
	v := orders.NewValidator(g.State, g.Snapshot)
	result := v.Validate(packet)
	for _, rejected := range result.Rejected {
		g.Events.Scoped(packet.Turn, eventlog.KindOrderRejected, []ids.HouseId{houseID}, rejected)
	}
	g.pending[houseID] = packet
	return result
}

// AdvanceTurn runs the turn resolver over every house's staged orders (an
// absent house submits an implicit empty packet), persists nothing itself
// (callers own save timing via the persistence package), and clears the
// staged-orders buffer for the next turn (§6.2's advance_turn operation).
func (g *Game) AdvanceTurn() *turn.TurnReport {
	packets := make(map[ids.HouseId]orders.CommandPacket, len(g.Houses))
	allocations := make(map[ids.HouseId]map[models.TechField]float64, len(g.Houses))
	for _, houseID := range g.Houses {
		packet, ok := g.pending[houseID]
		if !ok {
			packet = orders.CommandPacket{HouseID: houseID, Turn: g.State.Turn + 1}
		}
		packets[houseID] = packet
		allocations[houseID] = researchAllocation(packet.Research)
	}

	rng := rand.New(rand.NewSource(turnSeed(g.State.Seed, g.State.Turn+1)))
	report := g.Resolver.ResolveTurn(g.State, g.Snapshot, rng, packets, allocations, g.ConfigHash)
	g.recordEvents(report)

	g.pending = make(map[ids.HouseId]orders.CommandPacket)
	return report
}

// recordEvents folds one turn's report into the broadcast event log (§7);
// every item here is visible to all houses — intel restrictions on what a
// house can infer from them are handled by the fog-of-war projection, not
// by hiding the event itself.
func (g *Game) recordEvents(report *turn.TurnReport) {
	for _, ev := range report.CombatPrestige {
		g.Events.Broadcast(report.Turn, eventlog.KindCombatResolved, ev)
	}
	for _, ev := range report.EspionagePrestige {
		g.Events.Broadcast(report.Turn, eventlog.KindEspionageResolved, ev)
	}
	for _, ev := range report.Shortfalls {
		g.Events.Broadcast(report.Turn, eventlog.KindShortfall, ev)
	}
	for _, ev := range report.Violations {
		g.Events.Broadcast(report.Turn, eventlog.KindCapacityViolation, ev)
	}
	if victory := prestige.CheckVictory(g.State, g.Resolver.PrestigeTarget); victory.Kind != prestige.NoVictory {
		g.Events.Broadcast(report.Turn, eventlog.KindVictory, victory)
	}
}

// PlayerState returns house's current fog-of-war projection (§6.2's
// player_state query operation). Unlike the turn report's per-turn
// snapshot, this can be called between turns without re-running resolution.
func (g *Game) PlayerState(houseID ids.HouseId) (*intel.PlayerState, error) {
	if !g.State.Houses.Exists(houseID) {
		return nil, fmt.Errorf("engine: unknown house %v", houseID)
	}
	return intel.Project(g.State, g.Snapshot, houseID, g.State.Turn, g.ConfigHash), nil
}

func researchAllocation(r orders.ResearchAllocation) map[models.TechField]float64 {
	out := make(map[models.TechField]float64, len(r.Shares))
	for field, share := range r.Shares {
		out[models.TechField(field)] = share
	}
	return out
}

// turnSeed derives a turn-local RNG seed from the game's fixed seed and the
// turn number so that, given the same game_seed and the same sequence of
// submitted orders, resolution is fully reproducible (§5's determinism
// invariant) while still drawing different random numbers each turn.
func turnSeed(gameSeed int64, turnNumber int) int64 {
	h := fnv.New64a()
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(gameSeed >> (8 * i))
	}
	for i := 0; i < 8; i++ {
		buf[8+i] = byte(uint64(turnNumber) >> (8 * i))
	}
	_, _ = h.Write(buf[:])
	return int64(h.Sum64())
}
