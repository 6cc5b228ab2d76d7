// File: internal/models/reindex.go
// Project: EC4X Engine
// Description: Reverse-index reconstruction after a state load (§4.11)
// Version: 1.0.0
// Created: 2026-07-30

package models

import "github.com/ec4x/engine/internal/ids"

// InitializeGameIndices rebuilds every reverse index from the arena
// contents. The persistence load path reconstructs arenas directly (it must
// preserve the exact id layout that was saved), bypassing the CreateFleet/
// CreateShip/etc. mutation helpers that normally keep indices in sync as
// entities are created — this is the one place that catches the indices
// back up before play resumes. ValidateIndices should always pass
// immediately afterward.
func InitializeGameIndices(s *GameState) {
	s.FleetsByLocation = make(map[ids.SystemId][]ids.FleetId)
	s.FleetsByOwner = make(map[ids.HouseId][]ids.FleetId)
	s.ColoniesByOwner = make(map[ids.HouseId][]ids.SystemId)
	s.ShipsBySquadron = make(map[ids.SquadronId][]ids.ShipId)
	s.ShipsByHouse = make(map[ids.HouseId][]ids.ShipId)

	s.Fleets.All(func(id ids.FleetId, f *Fleet) {
		s.FleetsByOwner[f.HouseID] = append(s.FleetsByOwner[f.HouseID], id)
		s.FleetsByLocation[f.Location] = append(s.FleetsByLocation[f.Location], id)
	})
	s.Colonies.All(func(_ ids.ColonyId, c *Colony) {
		s.ColoniesByOwner[c.Owner] = append(s.ColoniesByOwner[c.Owner], c.SystemID)
	})
	s.Ships.All(func(id ids.ShipId, sh *Ship) {
		s.ShipsBySquadron[sh.SquadronID] = append(s.ShipsBySquadron[sh.SquadronID], id)
		s.ShipsByHouse[sh.HouseID] = append(s.ShipsByHouse[sh.HouseID], id)
	})
}
