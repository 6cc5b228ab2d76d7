// File: internal/models/invariants.go
// Project: EC4X Engine
// Description: Cross-entity invariant checks run after every turn phase in debug builds
// Version: 1.0.0
// Created: 2026-01-07

package models

import (
	"fmt"

	"github.com/ec4x/engine/internal/ids"
)

// ValidateIndices walks the arenas and reverse indices and returns every
// violation found. §4.1 requires this return empty after every phase in
// debug builds; callers decide whether a non-empty result is fatal.
func ValidateIndices(s *GameState) []error {
	var errs []error

	// Fleet <-> squadron <-> ship tree (§3.2).
	s.Squadrons.All(func(sqID ids.SquadronId, sq *Squadron) {
		flagship, ok := s.Ships.Get(sq.FlagshipID)
		if !ok {
			errs = append(errs, fmt.Errorf("squadron %v: flagship %v does not exist", sqID, sq.FlagshipID))
			return
		}
		if flagship.HouseID != sq.HouseID {
			errs = append(errs, fmt.Errorf("squadron %v: flagship house %v does not match squadron house %v", sqID, flagship.HouseID, sq.HouseID))
		}
		if !sq.HasMember(sq.FlagshipID) {
			errs = append(errs, fmt.Errorf("squadron %v: flagship %v not present in ship list", sqID, sq.FlagshipID))
		}

		commandUsed := 0
		for _, shID := range sq.ShipIDs {
			sh, ok := s.Ships.Get(shID)
			if !ok {
				errs = append(errs, fmt.Errorf("squadron %v: member ship %v does not exist", sqID, shID))
				continue
			}
			if sh.SquadronID != sqID {
				errs = append(errs, fmt.Errorf("ship %v: squadron_id %v does not match owning squadron %v", shID, sh.SquadronID, sqID))
			}
			commandUsed += sh.Class.CC
		}
		if commandUsed > flagship.Class.CR {
			errs = append(errs, fmt.Errorf("squadron %v: command used %d exceeds flagship CR %d", sqID, commandUsed, flagship.Class.CR))
		}
	})

	s.Fleets.All(func(fleetID ids.FleetId, f *Fleet) {
		for _, sqID := range f.SquadronIDs {
			sq, ok := s.Squadrons.Get(sqID)
			if !ok {
				errs = append(errs, fmt.Errorf("fleet %v: squadron %v does not exist", fleetID, sqID))
				continue
			}
			if sq.HouseID != f.HouseID {
				errs = append(errs, fmt.Errorf("fleet %v: squadron %v house %v does not match fleet house %v", fleetID, sqID, sq.HouseID, f.HouseID))
			}
		}
	})

	// Reverse index consistency: ships_by_house / ships_by_squadron must
	// agree with the arena contents.
	for houseID, shipIDs := range s.ShipsByHouse {
		for _, shID := range shipIDs {
			sh, ok := s.Ships.Get(shID)
			if !ok {
				errs = append(errs, fmt.Errorf("ships_by_house[%v]: dangling ship %v", houseID, shID))
				continue
			}
			if sh.HouseID != houseID {
				errs = append(errs, fmt.Errorf("ships_by_house[%v]: ship %v actually belongs to %v", houseID, shID, sh.HouseID))
			}
		}
	}
	for sqID, shipIDs := range s.ShipsBySquadron {
		for _, shID := range shipIDs {
			sh, ok := s.Ships.Get(shID)
			if !ok {
				errs = append(errs, fmt.Errorf("ships_by_squadron[%v]: dangling ship %v", sqID, shID))
				continue
			}
			if sh.SquadronID != sqID {
				errs = append(errs, fmt.Errorf("ships_by_squadron[%v]: ship %v actually in squadron %v", sqID, shID, sh.SquadronID))
			}
		}
	}
	for houseID, fleetIDs := range s.FleetsByOwner {
		for _, fID := range fleetIDs {
			f, ok := s.Fleets.Get(fID)
			if !ok {
				errs = append(errs, fmt.Errorf("fleets_by_owner[%v]: dangling fleet %v", houseID, fID))
				continue
			}
			if f.HouseID != houseID {
				errs = append(errs, fmt.Errorf("fleets_by_owner[%v]: fleet %v actually belongs to %v", houseID, fID, f.HouseID))
			}
		}
	}
	for systemID, fleetIDs := range s.FleetsByLocation {
		for _, fID := range fleetIDs {
			f, ok := s.Fleets.Get(fID)
			if !ok {
				errs = append(errs, fmt.Errorf("fleets_by_location[%v]: dangling fleet %v", systemID, fID))
				continue
			}
			if f.Location != systemID {
				errs = append(errs, fmt.Errorf("fleets_by_location[%v]: fleet %v actually at %v", systemID, fID, f.Location))
			}
		}
	}
	for houseID, systemIDs := range s.ColoniesByOwner {
		for _, sysID := range systemIDs {
			found := false
			s.Colonies.All(func(_ ids.ColonyId, c *Colony) {
				if c.SystemID == sysID && c.Owner == houseID {
					found = true
				}
			})
			if !found {
				errs = append(errs, fmt.Errorf("colonies_by_owner[%v]: no live colony at system %v owned by that house", houseID, sysID))
			}
		}
	}

	// Treasury floor (§3.2).
	s.Houses.All(func(_ ids.HouseId, h *House) {
		if h.Treasury < 0 {
			errs = append(errs, fmt.Errorf("house %v: treasury %d below zero", h.ID, h.Treasury))
		}
	})

	return errs
}
