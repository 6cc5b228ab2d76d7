// File: internal/models/squadron.go
// Project: EC4X Engine
// Description: Data model for squadrons (flagship-led ship groupings)
// Version: 1.0.0
// Created: 2026-01-07

package models

import "github.com/ec4x/engine/internal/ids"

// Squadron is a flagship plus subordinate ships fighting as one unit. The
// flagship's CR bounds the sum of member ships' CC (§4.1 invariant); the
// squadron is destroyed the instant its flagship is destroyed.
type Squadron struct {
	ID         ids.SquadronId
	HouseID    ids.HouseId
	FlagshipID ids.ShipId

	// ShipIDs contains every member ship including the flagship, kept in
	// commission order; this is the single source of truth for membership
	// (ship.SquadronID must point back here for every id listed).
	ShipIDs []ids.ShipId

	Destroyed bool

	// PrioritizeHulls marks this squadron as directing incoming fire at
	// the weakest-CR enemy squadrons first rather than uniformly (§4.6).
	PrioritizeHulls bool
}

// CommandUsed sums member CC given a lookup of ship command costs; the
// caller supplies the cost function to avoid this package depending on the
// arena directly.
func (s *Squadron) CommandUsed(ccOf func(ids.ShipId) int) int {
	total := 0
	for _, id := range s.ShipIDs {
		total += ccOf(id)
	}
	return total
}

// HasMember reports whether shipID currently belongs to this squadron.
func (s *Squadron) HasMember(shipID ids.ShipId) bool {
	for _, id := range s.ShipIDs {
		if id == shipID {
			return true
		}
	}
	return false
}

// RemoveMember drops shipID from the roster (used when a ship is destroyed
// or transferred out). The flagship is removed like any other member;
// callers must destroy the whole squadron in that case.
func (s *Squadron) RemoveMember(shipID ids.ShipId) {
	for i, id := range s.ShipIDs {
		if id == shipID {
			s.ShipIDs = append(s.ShipIDs[:i], s.ShipIDs[i+1:]...)
			return
		}
	}
}
