// File: internal/ids/ids.go
// Project: EC4X Engine
// Description: Typed monotonic entity identifiers shared across the data model
// Version: 1.0.0
// Created: 2026-01-07

// Package ids defines the typed identifier kinds used throughout the engine.
//
// Every entity referenced from another entity is referenced by ID value, never
// by interior pointer — §4.1 of the design requires this so arenas stay the
// single source of truth and reverse indices can be rebuilt deterministically
// from persisted rows.
package ids

import "fmt"

// HouseId identifies a player house (faction) within a single game.
type HouseId uint32

// SystemId identifies a star system on the hex map. Systems are immutable
// once the map is generated, so SystemId doubles as a stable map coordinate key.
type SystemId uint32

// ColonyId identifies a colonized world. A colony's ColonyId is distinct from
// its SystemId even though at most one colony exists per system, because a
// colony can be destroyed (population -> 0) and a new one later founded there.
type ColonyId uint32

// FleetId identifies a mobile grouping of squadrons under one house.
type FleetId uint32

// SquadronId identifies a flagship-led grouping of ships.
type SquadronId uint32

// ShipId identifies a single hull.
type ShipId uint32

// GroundUnitId identifies an army, marine, ground battery, or fighter squadron.
type GroundUnitId uint32

// FacilityId identifies a spaceport, shipyard, drydock, or starbase.
type FacilityId uint32

// ProjectId identifies a construction or repair project.
type ProjectId uint32

// TransferId identifies a population-in-transit record.
type TransferId uint32

// EffectId identifies an ongoing effect (espionage fallout, sabotage, etc).
type EffectId uint32

// ReportId identifies a stored intel report.
type ReportId uint32

// NilHouse is the zero value, never assigned to a real house.
const NilHouse HouseId = 0

func (id HouseId) String() string      { return fmt.Sprintf("House#%d", uint32(id)) }
func (id SystemId) String() string     { return fmt.Sprintf("System#%d", uint32(id)) }
func (id ColonyId) String() string     { return fmt.Sprintf("Colony#%d", uint32(id)) }
func (id FleetId) String() string      { return fmt.Sprintf("Fleet#%d", uint32(id)) }
func (id SquadronId) String() string   { return fmt.Sprintf("Squadron#%d", uint32(id)) }
func (id ShipId) String() string       { return fmt.Sprintf("Ship#%d", uint32(id)) }
func (id GroundUnitId) String() string { return fmt.Sprintf("GroundUnit#%d", uint32(id)) }
func (id FacilityId) String() string   { return fmt.Sprintf("Facility#%d", uint32(id)) }
func (id ProjectId) String() string    { return fmt.Sprintf("Project#%d", uint32(id)) }
func (id TransferId) String() string   { return fmt.Sprintf("Transfer#%d", uint32(id)) }
func (id EffectId) String() string     { return fmt.Sprintf("Effect#%d", uint32(id)) }
func (id ReportId) String() string     { return fmt.Sprintf("Report#%d", uint32(id)) }
