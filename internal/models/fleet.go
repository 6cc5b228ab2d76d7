// File: internal/models/fleet.go
// Project: EC4X Engine
// Description: Data model for fleets (mobile groupings of squadrons)
// Version: 1.0.0
// Created: 2026-01-07

package models

import "github.com/ec4x/engine/internal/ids"

// ROE is a fleet's rule-of-engagement retreat threshold: the AS-ratio
// (own-side AS / enemy-side AS) below which the fleet attempts to retreat
// during combat resolution (§4.6).
type ROE int

const (
	// ROEAggressive never retreats voluntarily.
	ROEAggressive ROE = iota
	// ROEStandard retreats once own AS-ratio drops below 0.5.
	ROEStandard
	// ROECautious retreats once own AS-ratio drops below 1.0.
	ROECautious
)

// RetreatThreshold returns the AS-ratio below which this ROE triggers a
// retreat attempt; ROEAggressive returns a negative value that can never
// be crossed.
func (r ROE) RetreatThreshold() float64 {
	switch r {
	case ROEStandard:
		return 0.5
	case ROECautious:
		return 1.0
	default:
		return -1
	}
}

// StandingOrderKind is a persistent order a fleet executes every
// Maintenance phase until cancelled or superseded (§4.4a).
type StandingOrderKind int

const (
	StandingOrderNone StandingOrderKind = iota
	StandingOrderMoveTo
	StandingOrderPatrol
	StandingOrderHold
)

// StandingOrder is the fleet's persistent movement instruction.
type StandingOrder struct {
	Kind        StandingOrderKind
	Destination ids.SystemId
	// PatrolRoute is used only for StandingOrderPatrol: the fleet cycles
	// through these systems, one hex of progress per Maintenance phase.
	PatrolRoute []ids.SystemId
	waypoint    int
}

// Fleet is a mobile grouping of squadrons under a single house, located at
// one system. It is destroyed automatically once it holds no squadrons
// (§3: "destroyed when empty").
type Fleet struct {
	ID       ids.FleetId
	HouseID  ids.HouseId
	Location ids.SystemId

	SquadronIDs []ids.SquadronId

	Roe           ROE
	StandingOrder StandingOrder
}

// Empty reports whether the fleet holds no squadrons and should be retired.
func (f *Fleet) Empty() bool {
	return len(f.SquadronIDs) == 0
}

// RemoveSquadron drops squadronID from the fleet's roster.
func (f *Fleet) RemoveSquadron(squadronID ids.SquadronId) {
	for i, id := range f.SquadronIDs {
		if id == squadronID {
			f.SquadronIDs = append(f.SquadronIDs[:i], f.SquadronIDs[i+1:]...)
			return
		}
	}
}

// HasSquadron reports membership.
func (f *Fleet) HasSquadron(squadronID ids.SquadronId) bool {
	for _, id := range f.SquadronIDs {
		if id == squadronID {
			return true
		}
	}
	return false
}
