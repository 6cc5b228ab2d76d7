// File: internal/models/intel_report.go
// Project: EC4X Engine
// Description: Data model for intelligence reports and the fog-of-war database
// Version: 1.0.0
// Created: 2026-01-07

package models

import "github.com/ec4x/engine/internal/ids"

// IntelQuality ranks how much detail an observation reveals (§4.8).
// Higher values strictly supersede lower ones for the same subject.
type IntelQuality int

const (
	Adjacent IntelQuality = iota // existence + rough counts
	Scouted                      // composition
	Spy                          // full snapshot; research allocation values are not recorded
	Perfect                       // also internal treasury
)

func (q IntelQuality) String() string {
	switch q {
	case Adjacent:
		return "Adjacent"
	case Scouted:
		return "Scouted"
	case Spy:
		return "Spy"
	case Perfect:
		return "Perfect"
	default:
		return "Unknown"
	}
}

// ReportKind distinguishes the six observation variants an intel report
// can carry (§3).
type ReportKind int

const (
	ReportColonyIntel ReportKind = iota
	ReportSystemIntel
	ReportStarbaseIntel
	ReportCombatEncounter
	ReportStarbaseSurveillance
	ReportScoutEncounter
)

func (k ReportKind) String() string {
	switch k {
	case ReportColonyIntel:
		return "ColonyIntel"
	case ReportSystemIntel:
		return "SystemIntel"
	case ReportStarbaseIntel:
		return "StarbaseIntel"
	case ReportCombatEncounter:
		return "CombatEncounter"
	case ReportStarbaseSurveillance:
		return "StarbaseSurveillance"
	case ReportScoutEncounter:
		return "ScoutEncounter"
	default:
		return "Unknown"
	}
}

// IntelReport is one observation recorded in an observer house's
// IntelligenceDatabase. Observed is a kind-specific payload produced by the
// intel package (e.g. a ColonyObservation or CombatEncounterObservation);
// it is stored as an any here so the model package stays free of a
// dependency on the intel package's report builders.
type IntelReport struct {
	ID      ids.ReportId
	Kind    ReportKind
	Turn    int
	Quality IntelQuality

	// SubjectHouse/SubjectSystem/SubjectColony identify what the report is
	// about, for supersession lookups; zero value means not applicable to
	// this report kind.
	SubjectHouse  ids.HouseId
	SubjectSystem ids.SystemId
	SubjectColony ids.ColonyId

	Observed any

	// Corrupted marks a report whose payload was tampered with by a
	// successful disinformation espionage action (§4.10); corrupted
	// reports are still delivered to the observer but their Observed
	// fields no longer reflect ground truth.
	Corrupted bool
}

// IntelligenceDatabase is one house's accumulated view of the rest of the
// game, keyed for supersession lookups by subject.
type IntelligenceDatabase struct {
	OwnerHouse ids.HouseId

	// BySystem holds the best (highest-quality, then most recent) report
	// currently held about each system.
	BySystem map[ids.SystemId]*IntelReport
	// ByHouse holds the best report currently held about each other house
	// as a whole (used for starbase/strategic-level intel).
	ByHouse map[ids.HouseId]*IntelReport

	// CombatLog is the ungated append history of combat encounter reports
	// this house has received; these never get superseded, only appended.
	CombatLog []*IntelReport
}

// NewIntelligenceDatabase returns an empty database for owner.
func NewIntelligenceDatabase(owner ids.HouseId) *IntelligenceDatabase {
	return &IntelligenceDatabase{
		OwnerHouse: owner,
		BySystem:   make(map[ids.SystemId]*IntelReport),
		ByHouse:    make(map[ids.HouseId]*IntelReport),
	}
}

// RecordSystem stores report as the system's current best intel if it is
// higher quality, or equal quality but newer, than what is already held
// (§4.8 "quality tiers ... supersession").
func (db *IntelligenceDatabase) RecordSystem(systemID ids.SystemId, report *IntelReport) {
	existing, ok := db.BySystem[systemID]
	if !ok || report.Quality > existing.Quality || (report.Quality == existing.Quality && report.Turn >= existing.Turn) {
		db.BySystem[systemID] = report
	}
}

// RecordHouse stores report as the subject house's current best intel
// under the same supersession rule as RecordSystem.
func (db *IntelligenceDatabase) RecordHouse(houseID ids.HouseId, report *IntelReport) {
	existing, ok := db.ByHouse[houseID]
	if !ok || report.Quality > existing.Quality || (report.Quality == existing.Quality && report.Turn >= existing.Turn) {
		db.ByHouse[houseID] = report
	}
}

// AppendCombatLog records a combat encounter report; these are never
// superseded, each battle produces its own permanent entry.
func (db *IntelligenceDatabase) AppendCombatLog(report *IntelReport) {
	db.CombatLog = append(db.CombatLog, report)
}

// LTU (last-turn-updated) marks the turn a visible entity's projection was
// last refreshed in a house's PlayerState (§4.8/GLOSSARY).
type LTU struct {
	SubjectKind string // "system", "colony", "fleet", "house", etc.
	SubjectID   uint32
	Turn        int
}
