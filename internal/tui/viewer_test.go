// File: internal/tui/viewer_test.go
// Project: EC4X Engine
// Description: Smoke test for the status viewer's render path
// Version: 1.0.0
// Created: 2026-07-30

package tui

import (
	"strings"
	"testing"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/intel"
	"github.com/ec4x/engine/internal/models"
)

func TestModelViewRendersOwnEntities(t *testing.T) {
	state := &intel.PlayerState{
		HouseID: ids.HouseId(1),
		Turn:    3,
		OwnColonies: []*models.Colony{
			{SystemID: ids.SystemId(5), Population: 1000, IU: 42},
		},
		OwnFleets: []*models.Fleet{
			{ID: ids.FleetId(2), Location: ids.SystemId(5), SquadronIDs: []ids.SquadronId{1}},
		},
		Prestige:   map[ids.HouseId]int64{1: 10},
		HouseNames: map[ids.HouseId]string{1: "Atreides"},
	}

	out := NewModel(state).View()
	for _, want := range []string{"house 1", "turn 3", "Atreides", "fleet 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered view missing %q:\n%s", want, out)
		}
	}
}

func TestModelViewHandlesNilState(t *testing.T) {
	out := NewModel(nil).View()
	if !strings.Contains(out, "no state loaded") {
		t.Fatalf("expected nil-state placeholder, got: %s", out)
	}
}
