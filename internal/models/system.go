// File: internal/models/system.go
// Project: EC4X Engine
// Description: Data model for star systems and the hex starmap
// Version: 1.0.0
// Created: 2026-01-07

package models

import "github.com/ec4x/engine/internal/ids"

// HexCoord is an axial hex coordinate (q, r). distance(a, b) is the standard
// cube-distance formula max(|dq|, |dr|, |dq+dr|), implemented in the starmap
// package alongside pathfinding.
type HexCoord struct {
	Q int
	R int
}

// LaneClass determines which ships may transit a lane and how detection
// works along it (§4.3).
type LaneClass int

const (
	LaneMajor LaneClass = iota
	LaneMinor
	LaneRestricted
)

func (c LaneClass) String() string {
	switch c {
	case LaneMajor:
		return "Major"
	case LaneMinor:
		return "Minor"
	case LaneRestricted:
		return "Restricted"
	default:
		return "Unknown"
	}
}

// Lane is one undirected edge of the starmap graph between two systems.
type Lane struct {
	A     ids.SystemId
	B     ids.SystemId
	Class LaneClass
}

// Other returns the endpoint of the lane that is not from.
func (l Lane) Other(from ids.SystemId) ids.SystemId {
	if l.A == from {
		return l.B
	}
	return l.A
}

// SystemKind classifies a system's strategic role, set at generation time.
type SystemKind int

const (
	SystemOrdinary SystemKind = iota
	SystemHomeworld
	SystemHub
)

// System is an immutable node of the starmap: its coordinate, name and
// lanes never change after generation. Ownership of any colony at the
// system lives on the Colony entity, not here.
type System struct {
	ID    ids.SystemId
	Name  string
	Coord HexCoord
	Kind  SystemKind

	// Lanes lists the ids of lanes incident to this system; the starmap
	// package keeps the canonical Lane records and derives adjacency from
	// them, but each system caches its own incident lane indices for O(1)
	// neighbor enumeration during pathfinding.
	LaneIndices []int

	// ResourceRating influences colony income and construction cost
	// multipliers for a colony founded here (§4.7).
	ResourceRating int
}
