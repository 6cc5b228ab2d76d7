// File: internal/intel/state.go
// Project: EC4X Engine
// Description: Per-house PlayerState projection and delta extraction (§4.8, §4.11)
// Version: 1.0.0
// Created: 2026-07-30

package intel

import (
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

// VisibleSystem is one system entry in a projected PlayerState: always
// includes the system's immutable map data (owned outright by every
// house, since the starmap itself is public knowledge) plus whatever
// colony/fleet detail the observer's intel quality reveals.
type VisibleSystem struct {
	System  *models.System
	Colony  *ColonyObservation // nil if no colony or none observed
	Quality models.IntelQuality
	LTU     int
}

// VisibleFleet is a fleet known to the observer at some quality, via
// SystemIntel/ScoutEncounter reports rather than ownership.
type VisibleFleet struct {
	FleetID ids.FleetId
	HouseID ids.HouseId
	Location ids.SystemId
	Squadrons []ids.SquadronId // only populated at Scouted+
	LTU      int
}

// PlayerState is the fog-of-war-redacted view of the game delivered to one
// house's client (§4.8 "the unit of state delivery to the client").
type PlayerState struct {
	HouseID ids.HouseId
	Turn    int
	ConfigHash string

	// Own entities: full detail, no redaction (§4.8 "H's full entities").
	OwnHouse    *models.House
	OwnColonies []*models.Colony
	OwnFleets   []*models.Fleet
	OwnShips    []*models.Ship
	OwnGroundUnits []*models.GroundUnit

	// Visible-to-H entities, redacted per report quality.
	VisibleSystems map[ids.SystemId]VisibleSystem
	VisibleFleets  map[ids.FleetId]VisibleFleet

	// Cross-cutting projections every house receives regardless of intel.
	Prestige            map[ids.HouseId]int64
	ColonyCounts        map[ids.HouseId]int
	HouseNames          map[ids.HouseId]string
	DiplomaticRelations map[uint64]models.DiplomaticState // packed (source<<16)|target, §4.11
	Eliminated          []ids.HouseId
}

// PackRelationKey packs a diplomatic pair into the uint64 key
// PlayerStateDelta uses (§4.11: "(source<<16)|target").
func PackRelationKey(source, target ids.HouseId) uint64 {
	return (uint64(source) << 16) | uint64(target)
}

// Project derives house H's PlayerState from authoritative state plus H's
// IntelligenceDatabase (§4.8). configHash is carried on every projection
// so clients can detect rule-version drift (§4.2).
func Project(state *models.GameState, snap *rules.Snapshot, house ids.HouseId, turn int, configHash string) *PlayerState {
	ps := &PlayerState{
		HouseID:             house,
		Turn:                turn,
		ConfigHash:          configHash,
		VisibleSystems:      make(map[ids.SystemId]VisibleSystem),
		VisibleFleets:       make(map[ids.FleetId]VisibleFleet),
		Prestige:            make(map[ids.HouseId]int64),
		ColonyCounts:        make(map[ids.HouseId]int),
		HouseNames:          make(map[ids.HouseId]string),
		DiplomaticRelations: make(map[uint64]models.DiplomaticState),
	}

	h, ok := state.Houses.Get(house)
	if !ok {
		return ps
	}
	ps.OwnHouse = h

	for _, sysID := range state.ColoniesByOwner[house] {
		state.Colonies.All(func(_ ids.ColonyId, c *models.Colony) {
			if c.SystemID == sysID && c.Owner == house && c.Founded {
				ps.OwnColonies = append(ps.OwnColonies, c)
			}
		})
	}
	for _, fID := range state.FleetsByOwner[house] {
		if f, ok := state.Fleets.Get(fID); ok {
			ps.OwnFleets = append(ps.OwnFleets, f)
		}
	}
	for _, shID := range state.ShipsByHouse[house] {
		if sh, ok := state.Ships.Get(shID); ok {
			ps.OwnShips = append(ps.OwnShips, sh)
		}
	}
	state.GroundUnits.All(func(_ ids.GroundUnitId, g *models.GroundUnit) {
		if g.Owner == house && !g.Destroyed {
			ps.OwnGroundUnits = append(ps.OwnGroundUnits, g)
		}
	})

	state.Houses.All(func(id ids.HouseId, other *models.House) {
		ps.Prestige[id] = other.Prestige
		ps.HouseNames[id] = other.Name
		ps.ColonyCounts[id] = len(state.ColoniesByOwner[id])
		if other.Eliminated {
			ps.Eliminated = append(ps.Eliminated, id)
		}
		if id != house {
			ps.DiplomaticRelations[PackRelationKey(house, id)] = h.RelationWith(id)
		}
	})

	db := state.IntelDatabases[house]
	state.Systems.All(func(sysID ids.SystemId, sys *models.System) {
		vs := VisibleSystem{System: sys}
		// A system the house itself holds a colony at is always fully
		// visible regardless of intel (owning presence, not observation).
		ownsHere := false
		for _, c := range ps.OwnColonies {
			if c.SystemID == sysID {
				ownsHere = true
				obs := fullColonyObservation(c, h)
				vs.Colony = &obs
				vs.Quality = models.Perfect
				vs.LTU = turn
			}
		}
		if !ownsHere && db != nil {
			if report, ok := db.BySystem[sysID]; ok {
				vs.Quality = report.Quality
				vs.LTU = report.Turn
				if co, ok := report.Observed.(ColonyObservation); ok {
					vs.Colony = &co
				}
			}
		}
		if ownsHere || vs.Quality > 0 || vs.LTU > 0 {
			ps.VisibleSystems[sysID] = vs
		}
	})

	return ps
}

// fullColonyObservation builds an unredacted ColonyObservation for a
// colony the projecting house owns outright.
func fullColonyObservation(c *models.Colony, owner *models.House) ColonyObservation {
	return ColonyObservation{
		SystemID:   c.SystemID,
		Owner:      c.Owner,
		Population: c.Population,
		IU:         c.IU,
		TaxRate:    c.TaxRate,
		ShieldLevel: c.ShieldLevel,
		Garrison:   len(c.Garrison),
		Treasury:   owner.Treasury,
	}
}

// Delta is a per-collection {added, updated, removed} + scalar change set
// (§4.11). Keys are the entity's primary id as a uint32 (ShipId/FleetId/
// ColonyId/SystemId all alias uint32, so a single generic shape covers
// every collection without reflection).
type Delta struct {
	Added   []uint32
	Updated []uint32
	Removed []uint32
}

func diffKeys(prev, next map[uint32]bool) Delta {
	var d Delta
	for k := range next {
		if !prev[k] {
			d.Added = append(d.Added, k)
		} else {
			d.Updated = append(d.Updated, k)
		}
	}
	for k := range prev {
		if !next[k] {
			d.Removed = append(d.Removed, k)
		}
	}
	return d
}

// PlayerStateDelta is the wire-shaped difference between two consecutive
// turns' PlayerState for one house (§4.11, §6.3 kind "turn delta").
type PlayerStateDelta struct {
	Turn       int
	ConfigHash string

	OwnColonies    Delta
	OwnFleets      Delta
	OwnShips       Delta
	OwnGroundUnits Delta

	VisibleSystems Delta
	VisibleFleets  Delta

	PrestigeChanged            map[ids.HouseId]int64
	ColonyCountsChanged        map[ids.HouseId]int
	DiplomaticRelationsChanged map[uint64]models.DiplomaticState
	NewlyEliminated            []ids.HouseId
}

func keysOf[T ~uint32](ids []T) map[uint32]bool {
	m := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		m[uint32(id)] = true
	}
	return m
}

// ExtractDelta diffs next against prev for the same house and produces the
// PlayerStateDelta the transport layer wraps in a "turn delta" envelope
// (§4.11, §6.3). prev may be nil for a house's very first delta, in which
// case every own/visible entity is reported as Added.
func ExtractDelta(prev, next *PlayerState) *PlayerStateDelta {
	d := &PlayerStateDelta{
		Turn:                       next.Turn,
		ConfigHash:                 next.ConfigHash,
		PrestigeChanged:            make(map[ids.HouseId]int64),
		ColonyCountsChanged:        make(map[ids.HouseId]int),
		DiplomaticRelationsChanged: make(map[uint64]models.DiplomaticState),
	}

	var prevColonyKeys, prevFleetKeys, prevShipKeys, prevGroundKeys map[uint32]bool
	var prevVisSystems, prevVisFleets map[uint32]bool
	var prevPrestige map[ids.HouseId]int64
	var prevColonyCounts map[ids.HouseId]int
	var prevRelations map[uint64]models.DiplomaticState

	if prev != nil {
		prevColonyKeys = keysOf(colonyIDs(prev.OwnColonies))
		prevFleetKeys = keysOf(fleetIDs(prev.OwnFleets))
		prevShipKeys = keysOf(shipIDs(prev.OwnShips))
		prevGroundKeys = keysOf(groundIDs(prev.OwnGroundUnits))
		prevVisSystems = keysOf(systemKeysOf(prev.VisibleSystems))
		prevVisFleets = keysOf(fleetKeysOf(prev.VisibleFleets))
		prevPrestige = prev.Prestige
		prevColonyCounts = prev.ColonyCounts
		prevRelations = prev.DiplomaticRelations
	} else {
		prevColonyKeys, prevFleetKeys, prevShipKeys, prevGroundKeys = map[uint32]bool{}, map[uint32]bool{}, map[uint32]bool{}, map[uint32]bool{}
		prevVisSystems, prevVisFleets = map[uint32]bool{}, map[uint32]bool{}
		prevPrestige, prevColonyCounts, prevRelations = map[ids.HouseId]int64{}, map[ids.HouseId]int{}, map[uint64]models.DiplomaticState{}
	}

	d.OwnColonies = diffKeys(prevColonyKeys, keysOf(colonyIDs(next.OwnColonies)))
	d.OwnFleets = diffKeys(prevFleetKeys, keysOf(fleetIDs(next.OwnFleets)))
	d.OwnShips = diffKeys(prevShipKeys, keysOf(shipIDs(next.OwnShips)))
	d.OwnGroundUnits = diffKeys(prevGroundKeys, keysOf(groundIDs(next.OwnGroundUnits)))
	d.VisibleSystems = diffKeys(prevVisSystems, keysOf(systemKeysOf(next.VisibleSystems)))
	d.VisibleFleets = diffKeys(prevVisFleets, keysOf(fleetKeysOf(next.VisibleFleets)))

	for house, p := range next.Prestige {
		if prevPrestige[house] != p {
			d.PrestigeChanged[house] = p
		}
	}
	for house, c := range next.ColonyCounts {
		if prevColonyCounts[house] != c {
			d.ColonyCountsChanged[house] = c
		}
	}
	for key, rel := range next.DiplomaticRelations {
		if prevRelations[key] != rel {
			d.DiplomaticRelationsChanged[key] = rel
		}
	}

	nextEliminated := make(map[ids.HouseId]bool, len(next.Eliminated))
	for _, h := range next.Eliminated {
		nextEliminated[h] = true
	}
	for _, h := range prev.eliminatedOrEmpty() {
		delete(nextEliminated, h)
	}
	for h := range nextEliminated {
		d.NewlyEliminated = append(d.NewlyEliminated, h)
	}

	return d
}

func (ps *PlayerState) eliminatedOrEmpty() []ids.HouseId {
	if ps == nil {
		return nil
	}
	return ps.Eliminated
}

func colonyIDs(cs []*models.Colony) []ids.ColonyId {
	out := make([]ids.ColonyId, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
func fleetIDs(fs []*models.Fleet) []ids.FleetId {
	out := make([]ids.FleetId, len(fs))
	for i, f := range fs {
		out[i] = f.ID
	}
	return out
}
func shipIDs(ss []*models.Ship) []ids.ShipId {
	out := make([]ids.ShipId, len(ss))
	for i, s := range ss {
		out[i] = s.ID
	}
	return out
}
func groundIDs(gs []*models.GroundUnit) []ids.GroundUnitId {
	out := make([]ids.GroundUnitId, len(gs))
	for i, g := range gs {
		out[i] = g.ID
	}
	return out
}
func systemKeysOf(m map[ids.SystemId]VisibleSystem) []ids.SystemId {
	out := make([]ids.SystemId, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
func fleetKeysOf(m map[ids.FleetId]VisibleFleet) []ids.FleetId {
	out := make([]ids.FleetId, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
