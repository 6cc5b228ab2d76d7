// File: internal/intel/report.go
// Project: EC4X Engine
// Description: Fog-of-war report generation (§4.8)
// Version: 1.0.0
// Created: 2026-07-30

// Package intel generates the typed IntelReport observations a house
// accumulates over the course of a game and projects, per house, the
// fog-of-war-redacted PlayerState the resolver delivers to clients (§4.8).
// Nothing in this package mutates authoritative GameState; it only reads
// it and a house's IntelligenceDatabase to build read-only views.
package intel

import (
	"math/rand"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
)

// ColonyObservation is the Observed payload of a ReportColonyIntel report.
// Fields below Spy quality are simply left at their zero value by the
// caller rather than populated — Observed always carries the full struct
// shape so client decoders don't need a second type per quality tier.
type ColonyObservation struct {
	SystemID       ids.SystemId
	Owner          ids.HouseId
	PlanetClass    string
	Population     int64
	IU             int64
	TaxRate        float64
	ShieldLevel    int
	Garrison       int
	ResearchShare  map[int]float64 // Spy+: an empty map; per-field allocation values are not filled in
	Treasury       int64           // Perfect only
}

// SystemObservation is the Observed payload of a ReportSystemIntel report:
// existence and rough fleet presence at a system (Adjacent quality) up to
// full composition (Scouted+).
type SystemObservation struct {
	SystemID    ids.SystemId
	HasColony   bool
	FleetCounts map[ids.HouseId]int         // Adjacent: rough counts only
	Squadrons   map[ids.HouseId][]ids.SquadronId // Scouted+: composition
}

// StarbaseObservation is the Observed payload of a ReportStarbaseIntel
// report produced by a HackStarbase action.
type StarbaseObservation struct {
	FacilityID  ids.FacilityId
	ColonyID    ids.ColonyId
	DockCapacity int
	Damaged     bool
}

// CombatEncounterObservation is the Observed payload of a
// ReportCombatEncounter report; OwnComposition is always full detail for
// the observer's own side, OpponentComposition is redacted to the
// observer's ELI-derived quality (§4.6 "Post-combat").
type CombatEncounterObservation struct {
	SystemID            ids.SystemId
	OwnHouse            ids.HouseId
	OwnComposition       []ids.SquadronId
	OpponentHouse        ids.HouseId
	OpponentComposition  []ids.SquadronId // nil/partial below Scouted
	Outcome              string
}

// ScoutEncounterObservation is the Observed payload of a
// ReportScoutEncounter report: one fleet sighting another in transit.
type ScoutEncounterObservation struct {
	SystemID     ids.SystemId
	SightedHouse ids.HouseId
	RoughSize    int
}

// ObserveColony builds a ColonyIntel report at the given quality,
// populating only the fields that quality tier reveals (§4.8: "Adjacent =
// existence + rough counts; Scouted = composition; Spy = full snapshot
// including research allocation; Perfect = also internal treasury").
// At Spy quality and above ResearchShare is an empty map: the owner's
// research allocation values are not recorded in the observation.
func ObserveColony(turn int, quality models.IntelQuality, colony *models.Colony, owner *models.House, className string) *models.IntelReport {
	obs := ColonyObservation{
		SystemID:    colony.SystemID,
		Owner:       colony.Owner,
		PlanetClass: className,
	}
	if quality >= models.Scouted {
		obs.Population = colony.Population
		obs.IU = colony.IU
		obs.ShieldLevel = colony.ShieldLevel
		obs.Garrison = len(colony.Garrison)
	}
	if quality >= models.Spy {
		obs.TaxRate = colony.TaxRate
		if owner != nil {
			shares := make(map[int]float64, len(owner.TechTree.Levels))
			obs.ResearchShare = shares
		}
	}
	if quality >= models.Perfect && owner != nil {
		obs.Treasury = owner.Treasury
	}
	return &models.IntelReport{
		Kind:          models.ReportColonyIntel,
		Turn:          turn,
		Quality:       quality,
		SubjectHouse:  colony.Owner,
		SubjectSystem: colony.SystemID,
		SubjectColony: colony.ID,
		Observed:      obs,
	}
}

// ObserveSystem builds a SystemIntel report summarizing fleet presence at
// a system. Squadron composition is only attached at Scouted+.
func ObserveSystem(turn int, quality models.IntelQuality, systemID ids.SystemId, hasColony bool, fleetsByHouse map[ids.HouseId][]*models.Fleet) *models.IntelReport {
	obs := SystemObservation{SystemID: systemID, HasColony: hasColony}
	obs.FleetCounts = make(map[ids.HouseId]int)
	for house, fleets := range fleetsByHouse {
		obs.FleetCounts[house] = len(fleets)
	}
	if quality >= models.Scouted {
		obs.Squadrons = make(map[ids.HouseId][]ids.SquadronId)
		for house, fleets := range fleetsByHouse {
			for _, f := range fleets {
				obs.Squadrons[house] = append(obs.Squadrons[house], f.SquadronIDs...)
			}
		}
	}
	return &models.IntelReport{
		Kind:          models.ReportSystemIntel,
		Turn:          turn,
		Quality:       quality,
		SubjectSystem: systemID,
		Observed:      obs,
	}
}

// ObserveStarbase builds a StarbaseIntel report, produced by a successful
// HackStarbase action (§4.10 "scout-based espionage").
func ObserveStarbase(turn int, fac *models.Facility) *models.IntelReport {
	return &models.IntelReport{
		Kind:          models.ReportStarbaseIntel,
		Turn:          turn,
		Quality:       models.Spy,
		SubjectColony: fac.ColonyID,
		Observed: StarbaseObservation{
			FacilityID:   fac.ID,
			ColonyID:     fac.ColonyID,
			DockCapacity: fac.DockCapacity,
			Damaged:      fac.Damaged,
		},
	}
}

// ObserveCombat builds a CombatEncounterReport for one observing house's
// side of an engagement (§4.8, §4.6 "Post-combat"); opponentQuality gates
// how much of the opponent's composition is revealed.
func ObserveCombat(turn int, systemID ids.SystemId, ownHouse ids.HouseId, own []ids.SquadronId, opponentHouse ids.HouseId, opponent []ids.SquadronId, opponentQuality models.IntelQuality, outcome string) *models.IntelReport {
	obs := CombatEncounterObservation{
		SystemID:       systemID,
		OwnHouse:       ownHouse,
		OwnComposition: own,
		OpponentHouse:  opponentHouse,
		Outcome:        outcome,
	}
	if opponentQuality >= models.Scouted {
		obs.OpponentComposition = opponent
	}
	return &models.IntelReport{
		Kind:          models.ReportCombatEncounter,
		Turn:          turn,
		Quality:       opponentQuality,
		SubjectHouse:  opponentHouse,
		SubjectSystem: systemID,
		Observed:      obs,
	}
}

// ObserveScoutEncounter builds a ScoutEncounterReport when a fleet enters
// visual range of another house's fleet (§4.8), always at Adjacent
// quality (composition is not revealed by a passing sighting).
func ObserveScoutEncounter(turn int, systemID ids.SystemId, sightedHouse ids.HouseId, roughSize int) *models.IntelReport {
	return &models.IntelReport{
		Kind:          models.ReportScoutEncounter,
		Turn:          turn,
		Quality:       models.Adjacent,
		SubjectHouse:  sightedHouse,
		SubjectSystem: systemID,
		Observed:      ScoutEncounterObservation{SystemID: systemID, SightedHouse: sightedHouse, RoughSize: roughSize},
	}
}

// CorruptReport applies a Disinformation espionage effect's multiplicative
// variance to a report's numeric fields and marks it Corrupted (§4.8,
// §4.10 "corrupt stored numeric fields by a multiplicative variance").
// Only ColonyObservation fields are corrupted; other report kinds carry no
// numeric fields worth disinforming.
func CorruptReport(report *models.IntelReport, magnitude float64, rng *rand.Rand) {
	obs, ok := report.Observed.(ColonyObservation)
	if !ok {
		report.Corrupted = true
		return
	}
	variance := func(v int64) int64 {
		factor := 1.0 + (rng.Float64()*2-1)*magnitude
		return int64(float64(v) * factor)
	}
	obs.Population = variance(obs.Population)
	obs.IU = variance(obs.IU)
	obs.Treasury = variance(obs.Treasury)
	report.Observed = obs
	report.Corrupted = true
}
