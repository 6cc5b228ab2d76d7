// File: internal/intel/state_test.go
// Project: EC4X Engine
// Description: Tests for PlayerState projection and delta extraction
// Version: 1.0.0
// Created: 2026-07-30

package intel

import (
	"testing"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

func TestProjectIncludesOwnColoniesAtPerfectQuality(t *testing.T) {
	state := models.NewGameState(1)
	house := state.Houses.Create(models.NewHouse(0, "Federation", 500))
	sysID := state.Systems.Create(&models.System{})
	colony := &models.Colony{SystemID: sysID, Owner: house, Population: 1000, Founded: true}
	cid := state.Colonies.Create(colony)
	colony.ID = cid
	state.Colonies.Update(cid, colony)
	state.ColoniesByOwner[house] = append(state.ColoniesByOwner[house], sysID)

	snap := rules.Default()
	ps := Project(state, snap, house, 1, "hash")

	if len(ps.OwnColonies) != 1 {
		t.Fatalf("expected 1 own colony, got %d", len(ps.OwnColonies))
	}
	vs, ok := ps.VisibleSystems[sysID]
	if !ok || vs.Quality != models.Perfect {
		t.Errorf("expected own system visible at Perfect quality, got %+v (ok=%v)", vs, ok)
	}
}

func TestProjectSurfacesIntelDatabaseReports(t *testing.T) {
	state := models.NewGameState(1)
	house := state.Houses.Create(models.NewHouse(0, "Federation", 500))
	sysID := state.Systems.Create(&models.System{})

	db := models.NewIntelligenceDatabase(house)
	db.RecordSystem(sysID, &models.IntelReport{Kind: models.ReportSystemIntel, Turn: 3, Quality: models.Scouted, SubjectSystem: sysID})
	state.IntelDatabases[house] = db

	snap := rules.Default()
	ps := Project(state, snap, house, 4, "hash")

	vs, ok := ps.VisibleSystems[sysID]
	if !ok {
		t.Fatal("expected the system from the intel database to appear in VisibleSystems")
	}
	if vs.Quality != models.Scouted || vs.LTU != 3 {
		t.Errorf("got quality=%v LTU=%d, want Scouted/3", vs.Quality, vs.LTU)
	}
}

func TestExtractDeltaWithNilPrevReportsEverythingAdded(t *testing.T) {
	next := &PlayerState{
		Turn:     2,
		Prestige: map[ids.HouseId]int64{1: 10},
	}
	next.OwnColonies = []*models.Colony{{ID: 5}}

	d := ExtractDelta(nil, next)
	if len(d.OwnColonies.Added) != 1 || d.OwnColonies.Added[0] != 5 {
		t.Errorf("expected colony 5 reported as Added with nil prev, got %+v", d.OwnColonies)
	}
	if d.PrestigeChanged[1] != 10 {
		t.Errorf("expected prestige change reported against zero baseline, got %+v", d.PrestigeChanged)
	}
}

func TestExtractDeltaDetectsRemovedColony(t *testing.T) {
	prev := &PlayerState{Turn: 1, OwnColonies: []*models.Colony{{ID: 5}}, Prestige: map[ids.HouseId]int64{}}
	next := &PlayerState{Turn: 2, OwnColonies: nil, Prestige: map[ids.HouseId]int64{}}

	d := ExtractDelta(prev, next)
	if len(d.OwnColonies.Removed) != 1 || d.OwnColonies.Removed[0] != 5 {
		t.Errorf("expected colony 5 reported as Removed, got %+v", d.OwnColonies)
	}
}
