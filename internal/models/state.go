// File: internal/models/state.go
// Project: EC4X Engine
// Description: GameState composition root: arenas plus reverse indices (§4.1)
// Version: 1.0.0
// Created: 2026-01-07

package models

import "github.com/ec4x/engine/internal/ids"

// GameState is the single source of truth for a running game: one arena
// per entity kind plus the reverse indices §4.1 requires. Every mutation
// must go through the helper methods below (CreateShip, DestroyShip,
// TransferShip, UpdateColonyOwner, ...) — direct arena writes would leave
// the reverse indices stale.
type GameState struct {
	Seed int64
	Turn int

	Houses     *ids.Arena[ids.HouseId, *House]
	Systems    *ids.Arena[ids.SystemId, *System]
	Colonies   *ids.Arena[ids.ColonyId, *Colony]
	Fleets     *ids.Arena[ids.FleetId, *Fleet]
	Squadrons  *ids.Arena[ids.SquadronId, *Squadron]
	Ships      *ids.Arena[ids.ShipId, *Ship]
	GroundUnits *ids.Arena[ids.GroundUnitId, *GroundUnit]
	Facilities *ids.Arena[ids.FacilityId, *Facility]
	Projects   *ids.Arena[ids.ProjectId, *ConstructionProject]
	Transfers  *ids.Arena[ids.TransferId, *PopulationInTransit]
	Effects    *ids.Arena[ids.EffectId, *OngoingEffect]

	Lanes []Lane

	IntelDatabases map[ids.HouseId]*IntelligenceDatabase

	// Reverse indices, maintained exclusively by the mutation helpers below.
	FleetsByLocation map[ids.SystemId][]ids.FleetId
	FleetsByOwner    map[ids.HouseId][]ids.FleetId
	ColoniesByOwner  map[ids.HouseId][]ids.SystemId
	ShipsBySquadron  map[ids.SquadronId][]ids.ShipId
	ShipsByHouse     map[ids.HouseId][]ids.ShipId
}

// NewGameState returns an empty state with initialized arenas and indices,
// ready to be populated by the setup/scenario loader.
func NewGameState(seed int64) *GameState {
	return &GameState{
		Seed:        seed,
		Turn:        0,
		Houses:      ids.NewArena[ids.HouseId, *House](),
		Systems:     ids.NewArena[ids.SystemId, *System](),
		Colonies:    ids.NewArena[ids.ColonyId, *Colony](),
		Fleets:      ids.NewArena[ids.FleetId, *Fleet](),
		Squadrons:   ids.NewArena[ids.SquadronId, *Squadron](),
		Ships:       ids.NewArena[ids.ShipId, *Ship](),
		GroundUnits: ids.NewArena[ids.GroundUnitId, *GroundUnit](),
		Facilities:  ids.NewArena[ids.FacilityId, *Facility](),
		Projects:    ids.NewArena[ids.ProjectId, *ConstructionProject](),
		Transfers:   ids.NewArena[ids.TransferId, *PopulationInTransit](),
		Effects:     ids.NewArena[ids.EffectId, *OngoingEffect](),

		IntelDatabases: make(map[ids.HouseId]*IntelligenceDatabase),

		FleetsByLocation: make(map[ids.SystemId][]ids.FleetId),
		FleetsByOwner:    make(map[ids.HouseId][]ids.FleetId),
		ColoniesByOwner:  make(map[ids.HouseId][]ids.SystemId),
		ShipsBySquadron:  make(map[ids.SquadronId][]ids.ShipId),
		ShipsByHouse:     make(map[ids.HouseId][]ids.ShipId),
	}
}

// indexRemove is a small helper shared by the mutation methods to drop one
// value from a slice-valued index entry.
func indexRemove[T comparable](slice []T, v T) []T {
	for i, x := range slice {
		if x == v {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}

// CreateFleet creates a fleet and indexes it by owner and location.
func (s *GameState) CreateFleet(f *Fleet) ids.FleetId {
	id := s.Fleets.Create(f)
	f.ID = id
	s.FleetsByOwner[f.HouseID] = append(s.FleetsByOwner[f.HouseID], id)
	s.FleetsByLocation[f.Location] = append(s.FleetsByLocation[f.Location], id)
	return id
}

// MoveFleet relocates a fleet, updating the location index.
func (s *GameState) MoveFleet(fleetID ids.FleetId, to ids.SystemId) bool {
	f, ok := s.Fleets.Get(fleetID)
	if !ok {
		return false
	}
	s.FleetsByLocation[f.Location] = indexRemove(s.FleetsByLocation[f.Location], fleetID)
	f.Location = to
	s.FleetsByLocation[to] = append(s.FleetsByLocation[to], fleetID)
	s.Fleets.Update(fleetID, f)
	return true
}

// DestroyFleet removes a fleet (used once it is empty) and its indices.
func (s *GameState) DestroyFleet(fleetID ids.FleetId) bool {
	f, ok := s.Fleets.Get(fleetID)
	if !ok {
		return false
	}
	s.FleetsByLocation[f.Location] = indexRemove(s.FleetsByLocation[f.Location], fleetID)
	s.FleetsByOwner[f.HouseID] = indexRemove(s.FleetsByOwner[f.HouseID], fleetID)
	return s.Fleets.Delete(fleetID)
}

// CreateShip creates a ship already assigned to a squadron and indexes it.
func (s *GameState) CreateShip(sh *Ship) ids.ShipId {
	id := s.Ships.Create(sh)
	sh.ID = id
	s.ShipsBySquadron[sh.SquadronID] = append(s.ShipsBySquadron[sh.SquadronID], id)
	s.ShipsByHouse[sh.HouseID] = append(s.ShipsByHouse[sh.HouseID], id)
	if sq, ok := s.Squadrons.Get(sh.SquadronID); ok {
		sq.ShipIDs = append(sq.ShipIDs, id)
		s.Squadrons.Update(sh.SquadronID, sq)
	}
	return id
}

// DestroyShip removes a ship from its squadron and both reverse indices.
// If removing the flagship, callers are responsible for destroying the
// whole squadron (this helper only maintains the ship-level indices).
func (s *GameState) DestroyShip(shipID ids.ShipId) bool {
	sh, ok := s.Ships.Get(shipID)
	if !ok {
		return false
	}
	s.ShipsBySquadron[sh.SquadronID] = indexRemove(s.ShipsBySquadron[sh.SquadronID], shipID)
	s.ShipsByHouse[sh.HouseID] = indexRemove(s.ShipsByHouse[sh.HouseID], shipID)
	if sq, ok := s.Squadrons.Get(sh.SquadronID); ok {
		sq.RemoveMember(shipID)
		s.Squadrons.Update(sh.SquadronID, sq)
	}
	return s.Ships.Delete(shipID)
}

// TransferShip moves a ship from its current squadron to newSquadron,
// updating both squadrons' rosters and the ships_by_squadron index. It does
// not change the ship's house or ships_by_house.
func (s *GameState) TransferShip(shipID ids.ShipId, newSquadron ids.SquadronId) bool {
	sh, ok := s.Ships.Get(shipID)
	if !ok {
		return false
	}
	oldSquadron := sh.SquadronID
	s.ShipsBySquadron[oldSquadron] = indexRemove(s.ShipsBySquadron[oldSquadron], shipID)
	if sq, ok := s.Squadrons.Get(oldSquadron); ok {
		sq.RemoveMember(shipID)
		s.Squadrons.Update(oldSquadron, sq)
	}

	sh.SquadronID = newSquadron
	s.Ships.Update(shipID, sh)
	s.ShipsBySquadron[newSquadron] = append(s.ShipsBySquadron[newSquadron], shipID)
	if sq, ok := s.Squadrons.Get(newSquadron); ok {
		sq.ShipIDs = append(sq.ShipIDs, shipID)
		s.Squadrons.Update(newSquadron, sq)
	}
	return true
}

// UpdateColonyOwner transfers ownership of the colony at system atomically,
// rewriting colonies_by_owner for both the old and new owner (§3.3).
func (s *GameState) UpdateColonyOwner(systemID ids.SystemId, colonyID ids.ColonyId, newOwner ids.HouseId) bool {
	c, ok := s.Colonies.Get(colonyID)
	if !ok {
		return false
	}
	oldOwner := c.Owner
	s.ColoniesByOwner[oldOwner] = indexRemove(s.ColoniesByOwner[oldOwner], systemID)
	c.Owner = newOwner
	s.Colonies.Update(colonyID, c)
	s.ColoniesByOwner[newOwner] = append(s.ColoniesByOwner[newOwner], systemID)
	return true
}
