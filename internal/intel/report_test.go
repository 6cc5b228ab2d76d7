// File: internal/intel/report_test.go
// Project: EC4X Engine
// Description: Tests for intel report construction and disinformation corruption
// Version: 1.0.0
// Created: 2026-07-30

package intel

import (
	"math/rand"
	"testing"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
)

func TestObserveColonyGatesFieldsByQuality(t *testing.T) {
	owner := models.NewHouse(1, "Federation", 500)
	colony := &models.Colony{SystemID: 1, Owner: 1, Population: 1000, IU: 200, TaxRate: 0.2}

	adjacent := ObserveColony(1, models.Adjacent, colony, owner, "Terran")
	obs := adjacent.Observed.(ColonyObservation)
	if obs.Population != 0 || obs.IU != 0 {
		t.Errorf("Adjacent quality should not reveal population/IU, got %+v", obs)
	}

	perfect := ObserveColony(1, models.Perfect, colony, owner, "Terran")
	obs = perfect.Observed.(ColonyObservation)
	if obs.Population != 1000 || obs.IU != 200 || obs.Treasury != 500 {
		t.Errorf("Perfect quality should reveal full snapshot incl. treasury, got %+v", obs)
	}
}

func TestCorruptReportAppliesVarianceAndMarksCorrupted(t *testing.T) {
	colony := &models.Colony{SystemID: 1, Owner: 1, Population: 1000, IU: 200}
	report := ObserveColony(1, models.Perfect, colony, models.NewHouse(1, "Federation", 500), "Terran")

	rng := rand.New(rand.NewSource(42))
	CorruptReport(report, 0.5, rng)

	if !report.Corrupted {
		t.Fatal("expected report to be marked Corrupted")
	}
	obs := report.Observed.(ColonyObservation)
	if obs.Population == 1000 && obs.IU == 200 {
		t.Error("expected corrupted numeric fields to differ from ground truth")
	}
}

func TestObserveSystemRevealsCompositionOnlyAtScoutedPlus(t *testing.T) {
	fleet := &models.Fleet{HouseID: 2, SquadronIDs: []ids.SquadronId{7, 8}}
	byHouse := map[ids.HouseId][]*models.Fleet{2: {fleet}}

	adjacent := ObserveSystem(1, models.Adjacent, 5, true, byHouse)
	obs := adjacent.Observed.(SystemObservation)
	if obs.FleetCounts[2] != 1 {
		t.Errorf("expected rough fleet count 1 at Adjacent, got %d", obs.FleetCounts[2])
	}
	if obs.Squadrons != nil {
		t.Error("expected no squadron composition at Adjacent quality")
	}

	scouted := ObserveSystem(1, models.Scouted, 5, true, byHouse)
	obs = scouted.Observed.(SystemObservation)
	if len(obs.Squadrons[2]) != 2 {
		t.Errorf("expected full squadron composition at Scouted quality, got %+v", obs.Squadrons)
	}
}
