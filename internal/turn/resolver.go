// File: internal/turn/resolver.go
// Project: EC4X Engine
// Description: Phase-structured turn resolver: Conflict -> Income -> Command -> Maintenance (§4.5)
// Version: 1.0.0
// Created: 2026-07-30

// Package turn orchestrates one full game turn by running the four phases
// §4.5 defines in order, wiring together the combat, economy, diplomacy,
// espionage, intel, and prestige packages that each own one slice of the
// rules. The Resolver is the only piece of state that persists from one
// turn to the next beyond GameState itself: pending project commissions,
// one-turn fleet movement/combat orders staged by the Command Phase for the
// following Maintenance/Conflict phases, and the diplomacy bookkeeping
// (offers, cooldowns, combat history) the diplomacy package needs.
package turn

import (
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/ec4x/engine/internal/combat"
	"github.com/ec4x/engine/internal/diplomacy"
	"github.com/ec4x/engine/internal/economy"
	"github.com/ec4x/engine/internal/espionage"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/intel"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/orders"
	"github.com/ec4x/engine/internal/prestige"
	"github.com/ec4x/engine/internal/rules"
	"github.com/ec4x/engine/internal/starmap"
)

// pendingMove is a one-shot Maintenance-phase movement instruction staged by
// the Command Phase (§4.5 step 3j: "persist movement orders for
// Maintenance"); distinct from Fleet.StandingOrder, which repeats every
// turn until replaced.
type pendingMove struct {
	Destination ids.SystemId
}

// pendingCombatOrder is a Bombard/Invade/Blitz queued by this turn's Command
// Phase for resolution in next turn's Conflict Phase (§4.5 step 3j).
type pendingCombatOrder struct {
	House  ids.HouseId
	FleetID ids.FleetId
	Kind   orders.FleetOrderKind
}

// Resolver runs successive turns for one game, carrying the bookkeeping
// that has to survive from one turn's Command Phase to the next turn's
// Conflict/Maintenance phases.
type Resolver struct {
	Diplomacy *diplomacy.Manager
	Ledger    *prestige.Ledger

	pendingCommissions map[ids.ColonyId][]ids.ProjectId
	pendingMoves       map[ids.FleetId]pendingMove
	pendingCombat      map[ids.SystemId][]pendingCombatOrder
	offenseCounts      map[uint64]int

	intelDB map[ids.HouseId]*intel.PlayerState

	// DynamicGrowthMultiplier is computed once at game setup from the
	// map's systems-per-player density and held fixed for the game (§4.7).
	DynamicGrowthMultiplier float64
	// PrestigeTarget is the Maintenance Phase's victory threshold (§4.5
	// step 4g); zero disables the prestige win condition.
	PrestigeTarget int64
}

// NewResolver returns a Resolver bound to state, ready to run turn 1.
func NewResolver(state *models.GameState, dynamicGrowthMultiplier float64, prestigeTarget int64) *Resolver {
	return &Resolver{
		Diplomacy:               diplomacy.NewManager(state),
		Ledger:                  &prestige.Ledger{},
		pendingCommissions:      make(map[ids.ColonyId][]ids.ProjectId),
		pendingMoves:            make(map[ids.FleetId]pendingMove),
		pendingCombat:           make(map[ids.SystemId][]pendingCombatOrder),
		offenseCounts:           make(map[uint64]int),
		intelDB:                 make(map[ids.HouseId]*intel.PlayerState),
		DynamicGrowthMultiplier: dynamicGrowthMultiplier,
		PrestigeTarget:          prestigeTarget,
	}
}

// TurnReport summarizes everything one ResolveTurn call produced, for the
// engine/transport layer to deliver to clients.
type TurnReport struct {
	Turn int

	CombatPrestige   []combat.PrestigeEvent
	EspionagePrestige []espionage.PrestigeEvent
	Incomes          []economy.ColonyIncome
	Shortfalls       []economy.ShortfallEvent
	Violations       []economy.CapacityViolation

	PlayerStates map[ids.HouseId]*intel.PlayerState
	Deltas       map[ids.HouseId]*intel.PlayerStateDelta

	Victory prestige.VictoryResult
}

func offensePairKey(actor, target ids.HouseId) uint64 {
	return (uint64(actor) << 32) | uint64(target)
}

// ResolveTurn advances state by exactly one turn, running the four §4.5
// phases in order. packets holds each house's validated CommandPacket
// (rejected orders already stripped by orders.Validator); allocations holds
// each house's research-field shares for the Income Phase; configHash is
// passed through to intel.Project for client drift detection.
func (r *Resolver) ResolveTurn(state *models.GameState, snap *rules.Snapshot, rng *rand.Rand, packets map[ids.HouseId]orders.CommandPacket, allocations map[ids.HouseId]map[models.TechField]float64, configHash string) *TurnReport {
	state.Turn++
	turn := state.Turn
	report := &TurnReport{Turn: turn}

	r.runConflictPhase(state, snap, rng, turn, packets, report)
	incomes := economy.RunIncomePhase(state, snap, allocations, r.DynamicGrowthMultiplier)
	report.Incomes = incomes

	r.runCommandPhase(state, snap, turn, packets, report)
	r.runMaintenancePhase(state, snap, rng, turn, report)

	report.PlayerStates = make(map[ids.HouseId]*intel.PlayerState)
	report.Deltas = make(map[ids.HouseId]*intel.PlayerStateDelta)

	houseIDs := state.Houses.Ids()
	projections := make([]*intel.PlayerState, len(houseIDs))

	// intel.Project is a read-only pass over state, so one house's
	// projection never touches another's — safe to fan out per house and
	// collect before touching the shared report/intelDB maps.
	var g errgroup.Group
	for i, houseID := range houseIDs {
		i, houseID := i, houseID
		g.Go(func() error {
			projections[i] = intel.Project(state, snap, houseID, turn, configHash)
			return nil
		})
	}
	_ = g.Wait() // projections never error; Wait only for the join

	for i, houseID := range houseIDs {
		ps := projections[i]
		report.Deltas[houseID] = intel.ExtractDelta(r.intelDB[houseID], ps)
		r.intelDB[houseID] = ps
		report.PlayerStates[houseID] = ps
	}

	return report
}

// runConflictPhase implements §4.5 step 1: combat eligibility + space
// combat for every system holding mobile fleets from more than one house,
// simultaneous colonization tie-breaks, and EBP/CIP espionage resolution.
// Scout-based espionage (SpyPlanet/SpySystem/HackStarbase) and the
// Bombard/Invade/Blitz orders queued by last turn's Command Phase also
// resolve here.
func (r *Resolver) runConflictPhase(state *models.GameState, snap *rules.Snapshot, rng *rand.Rand, turn int, packets map[ids.HouseId]orders.CommandPacket, report *TurnReport) {
	r.resolveColonizeTieBreaks(state, packets)
	r.resolveCombatOrders(state, snap, rng, turn, report)
	r.resolveSpaceCombat(state, snap, rng, turn, packets, report)
	r.resolveEspionage(state, snap, rng, turn, packets, report)
	r.resolveScoutEspionage(state, packets, turn)
}

// resolveScoutEspionage resolves SpyPlanet/SpySystem/HackStarbase fleet
// orders into intel reports filed against the ordering house's database
// (§4.5 step 1c, §4.8). Diplomatic escalation for these orders runs later
// in the same turn, in the Command Phase; this is the report-generation half.
func (r *Resolver) resolveScoutEspionage(state *models.GameState, packets map[ids.HouseId]orders.CommandPacket, turn int) {
	for _, houseID := range sortedKeys(packets) {
		packet := packets[houseID]
		for _, fo := range packet.FleetOrders {
			switch fo.Kind {
			case orders.FleetSpySystem:
				r.fileSystemReport(state, houseID, fo.Destination, turn, models.Scouted)
			case orders.FleetSpyPlanet:
				colony := colonyAt(state, fo.Destination)
				if colony == nil {
					continue
				}
				owner, ok := state.Houses.Get(colony.Owner)
				if !ok {
					continue
				}
				rpt := intel.ObserveColony(turn, models.Spy, colony, owner, "")
				r.recordSystemReport(state, houseID, fo.Destination, rpt)
			case orders.FleetHackStarbase:
				colony := colonyAt(state, fo.Destination)
				if colony == nil {
					continue
				}
				fac := starbaseAt(state, colony)
				if fac == nil {
					continue
				}
				rpt := intel.ObserveStarbase(turn, fac)
				r.recordSystemReport(state, houseID, fo.Destination, rpt)
			}
		}
	}
}

func starbaseAt(state *models.GameState, colony *models.Colony) *models.Facility {
	for _, fid := range colony.Facilities {
		fac, ok := state.Facilities.Get(fid)
		if ok && fac.Kind == models.FacilityStarbase {
			return fac
		}
	}
	return nil
}

// fileSystemReport builds a SystemIntel report for sys from the live
// FleetsByLocation index and records it into houseID's database.
func (r *Resolver) fileSystemReport(state *models.GameState, houseID ids.HouseId, sys ids.SystemId, turn int, quality models.IntelQuality) {
	hasColony := hasLiveColony(state, sys)
	byHouse := fleetsByHouseAt(state, sys)
	rpt := intel.ObserveSystem(turn, quality, sys, hasColony, byHouse)
	r.recordSystemReport(state, houseID, sys, rpt)
}

func (r *Resolver) recordSystemReport(state *models.GameState, houseID ids.HouseId, sys ids.SystemId, rpt *models.IntelReport) {
	db := state.IntelDatabases[houseID]
	if db == nil {
		db = models.NewIntelligenceDatabase(houseID)
		state.IntelDatabases[houseID] = db
	}
	db.RecordSystem(sys, rpt)
}

func fleetsByHouseAt(state *models.GameState, sys ids.SystemId) map[ids.HouseId][]*models.Fleet {
	out := make(map[ids.HouseId][]*models.Fleet)
	for _, fid := range state.FleetsByLocation[sys] {
		f, ok := state.Fleets.Get(fid)
		if !ok {
			continue
		}
		out[f.HouseID] = append(out[f.HouseID], f)
	}
	return out
}

// resolveColonizeTieBreaks grants a Colonize order at an uninhabited system
// to the lowest-numbered house id among this turn's simultaneous claimants
// (§4.5 step 1b): no ordering between houses is otherwise meaningful, so id
// order is the simplest deterministic rule available.
func (r *Resolver) resolveColonizeTieBreaks(state *models.GameState, packets map[ids.HouseId]orders.CommandPacket) {
	claimants := make(map[ids.SystemId][]ids.HouseId)
	fleetOf := make(map[ids.SystemId]map[ids.HouseId]ids.FleetId)

	for houseID, packet := range packets {
		for _, fo := range packet.FleetOrders {
			if fo.Kind != orders.FleetColonize {
				continue
			}
			fleet, ok := state.Fleets.Get(fo.FleetID)
			if !ok {
				continue
			}
			sys := fleet.Location
			claimants[sys] = append(claimants[sys], houseID)
			if fleetOf[sys] == nil {
				fleetOf[sys] = make(map[ids.HouseId]ids.FleetId)
			}
			fleetOf[sys][houseID] = fo.FleetID
		}
	}

	for _, sys := range sortedKeys(claimants) {
		houses := claimants[sys]
		if hasLiveColony(state, sys) {
			continue
		}
		winner := houses[0]
		for _, h := range houses[1:] {
			if h < winner {
				winner = h
			}
		}
		colony := &models.Colony{SystemID: sys, Owner: winner, Founded: true, Population: 1, MaxPopulation: 1_000_000, IU: 1}
		cid := state.Colonies.Create(colony)
		colony.ID = cid
		state.Colonies.Update(cid, colony)
		state.ColoniesByOwner[winner] = append(state.ColoniesByOwner[winner], sys)
	}
}

func hasLiveColony(state *models.GameState, sys ids.SystemId) bool {
	found := false
	state.Colonies.All(func(_ ids.ColonyId, c *models.Colony) {
		if c.SystemID == sys && c.Founded {
			found = true
		}
	})
	return found
}

// resolveCombatOrders executes the Bombard/Invade/Blitz orders staged by
// last turn's Command Phase (§4.5 step 3j queues them; step 1d runs them).
func (r *Resolver) resolveCombatOrders(state *models.GameState, snap *rules.Snapshot, rng *rand.Rand, turn int, report *TurnReport) {
	for _, sys := range sortedKeys(r.pendingCombat) {
		pending := r.pendingCombat[sys]
		colony := colonyAt(state, sys)
		for _, order := range pending {
			if colony == nil {
				continue
			}
			marines := embarkedUnits(state, order.House, order.FleetID, models.GroundUnitMarine)
			switch order.Kind {
			case orders.FleetBombard:
				combat.Bombard(colony, snap, rng)
				colony.Blockaded = true
			case orders.FleetInvade:
				result := combat.Invade(state, colony, marines, snap)
				if result.Victory {
					state.UpdateColonyOwner(sys, colony.ID, order.House)
				}
			case orders.FleetBlitz:
				_, invadeResult := combat.Blitz(state, colony, marines, snap, rng)
				if invadeResult.Victory {
					state.UpdateColonyOwner(sys, colony.ID, order.House)
				}
			}
			state.Colonies.Update(colony.ID, colony)
		}
	}
	r.pendingCombat = make(map[ids.SystemId][]pendingCombatOrder)
}

func colonyAt(state *models.GameState, sys ids.SystemId) *models.Colony {
	var found *models.Colony
	state.Colonies.All(func(_ ids.ColonyId, c *models.Colony) {
		if c.SystemID == sys && c.Founded {
			found = c
		}
	})
	return found
}

func embarkedUnits(state *models.GameState, house ids.HouseId, fleetID ids.FleetId, kind models.GroundUnitKind) []ids.GroundUnitId {
	var out []ids.GroundUnitId
	state.GroundUnits.All(func(id ids.GroundUnitId, gu *models.GroundUnit) {
		if gu.Owner == house && gu.EmbarkedFleet == fleetID && gu.Kind == kind && !gu.Destroyed {
			out = append(out, id)
		}
	})
	return out
}

// resolveSpaceCombat detects every system with mobile fleets from more
// than one house, resolves pairwise combat eligibility (§4.9 via the
// diplomacy package plus this turn's threatening/provocative orders), and
// runs combat.ResolveSpace for every eligible pair (§4.5 step 1a/1d).
func (r *Resolver) resolveSpaceCombat(state *models.GameState, snap *rules.Snapshot, rng *rand.Rand, turn int, packets map[ids.HouseId]orders.CommandPacket, report *TurnReport) {
	threatenedAt := r.threateningOrdersBySystem(state, packets)

	cloned := cloneFleetsByLocation(state.FleetsByLocation)
	for _, sys := range sortedKeys(cloned) {
		fleetIDs := cloned[sys]
		byHouse := make(map[ids.HouseId][]ids.SquadronId)
		for _, fid := range fleetIDs {
			f, ok := state.Fleets.Get(fid)
			if !ok || f.Empty() {
				continue
			}
			byHouse[f.HouseID] = append(byHouse[f.HouseID], f.SquadronIDs...)
		}
		if len(byHouse) < 2 {
			continue
		}

		houses := sortedKeys(byHouse)
		for i := 0; i < len(houses); i++ {
			for j := i + 1; j < len(houses); j++ {
				a, b := houses[i], houses[j]
				threatening := threatenedAt[sys][a] || threatenedAt[sys][b]
				if !diplomacy.CombatRequired(state, a, b, threatening) {
					continue
				}
				r.Diplomacy.RecordCombat(a, b, turn)

				sideA := combat.Side{HouseID: a, Squadrons: byHouse[a], Roe: models.ROEStandard, WEPMultiplier: wepMultiplier(state, a), SLDMultiplier: sldMultiplier(state, a)}
				sideB := combat.Side{HouseID: b, Squadrons: byHouse[b], Roe: models.ROEStandard, WEPMultiplier: wepMultiplier(state, b), SLDMultiplier: sldMultiplier(state, b)}
				result := combat.ResolveSpace(state, snap, rng, sideA, sideB, nil, nil)
				for i := range result.Prestige {
					result.Prestige[i].Turn = turn
				}
				report.CombatPrestige = append(report.CombatPrestige, result.Prestige...)
				r.Ledger.Apply(state, turn, result.Prestige)

				outcome := combatOutcomeString(result, a, b)
				r.fileCombatReport(state, a, intel.ObserveCombat(turn, sys, a, byHouse[a], b, byHouse[b], models.Scouted, outcome))
				r.fileCombatReport(state, b, intel.ObserveCombat(turn, sys, b, byHouse[b], a, byHouse[a], models.Scouted, outcome))
			}
		}
	}
}

func cloneFleetsByLocation(m map[ids.SystemId][]ids.FleetId) map[ids.SystemId][]ids.FleetId {
	out := make(map[ids.SystemId][]ids.FleetId, len(m))
	for k, v := range m {
		cp := make([]ids.FleetId, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// combatOutcomeString classifies a resolved engagement for a CombatEncounter
// report's Outcome field (§4.8); retreat/stalemate are the only outcomes
// combat.SpaceResult itself distinguishes beyond squadron losses.
func combatOutcomeString(result combat.SpaceResult, a, b ids.HouseId) string {
	switch {
	case result.Stalemate:
		return "Stalemate"
	case result.Retreated[a] && result.Retreated[b]:
		return "MutualRetreat"
	case result.Retreated[a]:
		return "ARetreated"
	case result.Retreated[b]:
		return "BRetreated"
	default:
		return "Resolved"
	}
}

// fileCombatReport appends a CombatEncounter report to houseID's
// IntelligenceDatabase, initializing one if the house has none yet.
func (r *Resolver) fileCombatReport(state *models.GameState, houseID ids.HouseId, rpt *models.IntelReport) {
	db := state.IntelDatabases[houseID]
	if db == nil {
		db = models.NewIntelligenceDatabase(houseID)
		state.IntelDatabases[houseID] = db
	}
	db.AppendCombatLog(rpt)
}

// threateningOrdersBySystem classifies this turn's FleetOrders by
// destination system so resolveSpaceCombat can tell whether a Hostile pair
// actually fights (§4.9 "Hostile requires a threatening order this turn").
// Bombard/Invade/Blitz target the ordering fleet's current system rather
// than fo.Destination, which those kinds leave unset.
func (r *Resolver) threateningOrdersBySystem(state *models.GameState, packets map[ids.HouseId]orders.CommandPacket) map[ids.SystemId]map[ids.HouseId]bool {
	out := make(map[ids.SystemId]map[ids.HouseId]bool)
	for houseID, packet := range packets {
		for _, fo := range packet.FleetOrders {
			if !orders.ThreateningOrders[fo.Kind] && !orders.ProvocativeOrders[fo.Kind] {
				continue
			}
			sys := fo.Destination
			switch fo.Kind {
			case orders.FleetBombard, orders.FleetInvade, orders.FleetBlitz:
				if f, ok := state.Fleets.Get(fo.FleetID); ok {
					sys = f.Location
				}
			}
			if out[sys] == nil {
				out[sys] = make(map[ids.HouseId]bool)
			}
			out[sys][houseID] = true
		}
	}
	return out
}

func wepMultiplier(state *models.GameState, houseID ids.HouseId) float64 {
	h, ok := state.Houses.Get(houseID)
	if !ok {
		return 1.0
	}
	return 1.0 + float64(h.TechTree.Level(models.TechWEP))*0.1
}

func sldMultiplier(state *models.GameState, houseID ids.HouseId) float64 {
	h, ok := state.Houses.Get(houseID)
	if !ok {
		return 1.0
	}
	return 1.0 + float64(h.TechTree.Level(models.TechSLD))*0.1
}

// resolveEspionage runs every submitted EspionageOrder through the
// espionage package (§4.5 step 1c, §4.10) and posts its prestige effects to
// the shared ledger alongside combat's.
func (r *Resolver) resolveEspionage(state *models.GameState, snap *rules.Snapshot, rng *rand.Rand, turn int, packets map[ids.HouseId]orders.CommandPacket, report *TurnReport) {
	for _, houseID := range sortedKeys(packets) {
		packet := packets[houseID]
		for _, eo := range packet.Espionage {
			out := espionage.Resolve(state, snap, rng, houseID, eo.TargetHouse, eo.ActionName, eo.EBPSpend, false)
			report.EspionagePrestige = append(report.EspionagePrestige, out.Prestige...)

			converted := make([]combat.PrestigeEvent, len(out.Prestige))
			for i, ev := range out.Prestige {
				converted[i] = combat.PrestigeEvent{
					Source: ev.Source, House: ev.House, Counterpart: ev.Counterpart,
					Delta: ev.Delta, Reason: ev.Reason, Turn: turn,
				}
			}
			r.Ledger.Apply(state, turn, converted)
		}
	}
}
