// File: internal/intel/apply.go
// Project: EC4X Engine
// Description: Client-side delta application semantics (§4.11)
// Version: 1.0.0
// Created: 2026-07-30

package intel

import (
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
)

// ApplyDelta reproduces the client's apply-delta semantics (§4.11: "'added'
// inserts or replaces by key; 'updated' replaces by key; 'removed' deletes
// by key"). Delta carries keys, not payloads (every key present in both
// turns is listed as updated, whether or not its record changed), so the caller
// supplies full — the authoritative PlayerState the delta was extracted
// against (the engine always has it; a real client instead caches full
// records locally and patches them in place with whatever the server sends
// alongside the key, e.g. over the same wire event). The result equals
// Project(state_after_turn) for the house the delta belongs to, which is
// the round-trip property §8 tests.
func ApplyDelta(prev *PlayerState, delta *PlayerStateDelta, full *PlayerState) *PlayerState {
	if prev == nil {
		prev = &PlayerState{}
	}

	next := &PlayerState{
		HouseID:             full.HouseID,
		OwnHouse:            full.OwnHouse,
		Turn:                delta.Turn,
		ConfigHash:          delta.ConfigHash,
		Prestige:            make(map[ids.HouseId]int64, len(prev.Prestige)),
		ColonyCounts:        make(map[ids.HouseId]int, len(prev.ColonyCounts)),
		HouseNames:          make(map[ids.HouseId]string, len(full.HouseNames)),
		DiplomaticRelations: make(map[uint64]models.DiplomaticState, len(prev.DiplomaticRelations)),
	}

	next.OwnColonies = applyColonies(prev.OwnColonies, delta.OwnColonies, full.OwnColonies)
	next.OwnFleets = applyFleets(prev.OwnFleets, delta.OwnFleets, full.OwnFleets)
	next.OwnShips = applyShips(prev.OwnShips, delta.OwnShips, full.OwnShips)
	next.OwnGroundUnits = applyGroundUnits(prev.OwnGroundUnits, delta.OwnGroundUnits, full.OwnGroundUnits)
	next.VisibleSystems = applyVisibleSystems(prev.VisibleSystems, delta.VisibleSystems, full.VisibleSystems)
	next.VisibleFleets = applyVisibleFleets(prev.VisibleFleets, delta.VisibleFleets, full.VisibleFleets)

	for house, p := range prev.Prestige {
		next.Prestige[house] = p
	}
	for house, p := range delta.PrestigeChanged {
		next.Prestige[house] = p
	}
	for house, c := range prev.ColonyCounts {
		next.ColonyCounts[house] = c
	}
	for house, c := range delta.ColonyCountsChanged {
		next.ColonyCounts[house] = c
	}
	for house, name := range full.HouseNames {
		next.HouseNames[house] = name
	}
	for key, rel := range prev.DiplomaticRelations {
		next.DiplomaticRelations[key] = rel
	}
	for key, rel := range delta.DiplomaticRelationsChanged {
		next.DiplomaticRelations[key] = rel
	}

	eliminated := make(map[ids.HouseId]bool)
	for _, h := range prev.Eliminated {
		eliminated[h] = true
	}
	for _, h := range delta.NewlyEliminated {
		eliminated[h] = true
	}
	for h := range eliminated {
		next.Eliminated = append(next.Eliminated, h)
	}

	return next
}

func applyColonies(prev []*models.Colony, d Delta, full []*models.Colony) []*models.Colony {
	byID := make(map[uint32]*models.Colony, len(prev))
	for _, c := range prev {
		byID[uint32(c.ID)] = c
	}
	fullByID := make(map[uint32]*models.Colony, len(full))
	for _, c := range full {
		fullByID[uint32(c.ID)] = c
	}
	for _, k := range append(append([]uint32{}, d.Added...), d.Updated...) {
		if c, ok := fullByID[k]; ok {
			byID[k] = c
		}
	}
	for _, k := range d.Removed {
		delete(byID, k)
	}
	return colonyValues(byID)
}

func colonyValues(m map[uint32]*models.Colony) []*models.Colony {
	out := make([]*models.Colony, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func applyFleets(prev []*models.Fleet, d Delta, full []*models.Fleet) []*models.Fleet {
	byID := make(map[uint32]*models.Fleet, len(prev))
	for _, f := range prev {
		byID[uint32(f.ID)] = f
	}
	fullByID := make(map[uint32]*models.Fleet, len(full))
	for _, f := range full {
		fullByID[uint32(f.ID)] = f
	}
	for _, k := range append(append([]uint32{}, d.Added...), d.Updated...) {
		if f, ok := fullByID[k]; ok {
			byID[k] = f
		}
	}
	for _, k := range d.Removed {
		delete(byID, k)
	}
	out := make([]*models.Fleet, 0, len(byID))
	for _, v := range byID {
		out = append(out, v)
	}
	return out
}

func applyShips(prev []*models.Ship, d Delta, full []*models.Ship) []*models.Ship {
	byID := make(map[uint32]*models.Ship, len(prev))
	for _, s := range prev {
		byID[uint32(s.ID)] = s
	}
	fullByID := make(map[uint32]*models.Ship, len(full))
	for _, s := range full {
		fullByID[uint32(s.ID)] = s
	}
	for _, k := range append(append([]uint32{}, d.Added...), d.Updated...) {
		if s, ok := fullByID[k]; ok {
			byID[k] = s
		}
	}
	for _, k := range d.Removed {
		delete(byID, k)
	}
	out := make([]*models.Ship, 0, len(byID))
	for _, v := range byID {
		out = append(out, v)
	}
	return out
}

func applyGroundUnits(prev []*models.GroundUnit, d Delta, full []*models.GroundUnit) []*models.GroundUnit {
	byID := make(map[uint32]*models.GroundUnit, len(prev))
	for _, g := range prev {
		byID[uint32(g.ID)] = g
	}
	fullByID := make(map[uint32]*models.GroundUnit, len(full))
	for _, g := range full {
		fullByID[uint32(g.ID)] = g
	}
	for _, k := range append(append([]uint32{}, d.Added...), d.Updated...) {
		if g, ok := fullByID[k]; ok {
			byID[k] = g
		}
	}
	for _, k := range d.Removed {
		delete(byID, k)
	}
	out := make([]*models.GroundUnit, 0, len(byID))
	for _, v := range byID {
		out = append(out, v)
	}
	return out
}

func applyVisibleSystems(prev map[ids.SystemId]VisibleSystem, d Delta, full map[ids.SystemId]VisibleSystem) map[ids.SystemId]VisibleSystem {
	next := make(map[ids.SystemId]VisibleSystem, len(prev))
	for k, v := range prev {
		next[k] = v
	}
	for _, k := range append(append([]uint32{}, d.Added...), d.Updated...) {
		sysID := ids.SystemId(k)
		if v, ok := full[sysID]; ok {
			next[sysID] = v
		}
	}
	for _, k := range d.Removed {
		delete(next, ids.SystemId(k))
	}
	return next
}

func applyVisibleFleets(prev map[ids.FleetId]VisibleFleet, d Delta, full map[ids.FleetId]VisibleFleet) map[ids.FleetId]VisibleFleet {
	next := make(map[ids.FleetId]VisibleFleet, len(prev))
	for k, v := range prev {
		next[k] = v
	}
	for _, k := range append(append([]uint32{}, d.Added...), d.Updated...) {
		fID := ids.FleetId(k)
		if v, ok := full[fID]; ok {
			next[fID] = v
		}
	}
	for _, k := range d.Removed {
		delete(next, ids.FleetId(k))
	}
	return next
}
