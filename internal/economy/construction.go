// File: internal/economy/construction.go
// Project: EC4X Engine
// Description: Dock-capacity construction scheduling and project advancement (§4.7)
// Version: 1.0.0
// Created: 2026-01-07

package economy

import (
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

// dockKindOrder is the scan order for assigning a dock-bound project to a
// facility: spaceports first, then shipyards, then drydocks (§4.7).
var dockKindOrder = []models.FacilityKind{models.FacilitySpaceport, models.FacilityShipyard, models.FacilityDrydock}

// needsDock reports whether a project kind requires a dock slot. Fighters,
// ground units, and buildings go to the colony-level queue instead (§4.7).
func needsDock(kind models.ProjectKind, targetDesign string, snap *rules.Snapshot) bool {
	if kind != models.ProjectShip && kind != models.ProjectRepair {
		return false
	}
	if kind == models.ProjectRepair {
		return true
	}
	rule, ok := snap.Ships[targetDesign]
	return ok && !rule.IsFighter
}

// AssignDocks scans a colony's undocked queued projects and assigns each
// requesting a dock to the first facility (in spaceport/shipyard/drydock
// order) with a free slot, incrementing that facility's load. Projects
// that cannot be assigned this turn remain queued for next turn's Command
// Phase (§4.7).
func AssignDocks(state *models.GameState, colony *models.Colony, snap *rules.Snapshot) {
	load := make(map[ids.FacilityId]int)
	state.Projects.All(func(_ ids.ProjectId, p *models.ConstructionProject) {
		if p.AssignedFacility != 0 {
			load[p.AssignedFacility]++
		}
	})

	for _, projectID := range colony.ConstructionQueue {
		project, ok := state.Projects.Get(projectID)
		if !ok || project.Complete() || project.AssignedFacility != 0 {
			continue
		}
		if !needsDock(project.Kind, project.TargetDesign, snap) {
			continue
		}
		for _, kind := range dockKindOrder {
			facID, ok := firstFreeFacility(state, colony, kind, load)
			if !ok {
				continue
			}
			project.AssignedFacility = facID
			load[facID]++
			state.Projects.Update(projectID, project)
			break
		}
	}
}

func firstFreeFacility(state *models.GameState, colony *models.Colony, kind models.FacilityKind, load map[ids.FacilityId]int) (ids.FacilityId, bool) {
	for _, facID := range colony.Facilities {
		fac, ok := state.Facilities.Get(facID)
		if !ok || fac.Kind != kind {
			continue
		}
		capacity := fac.DockCapacity
		if fac.Damaged {
			capacity /= 2
		}
		if load[facID] < capacity {
			return facID, true
		}
	}
	return 0, false
}

// ReleaseDock frees the facility slot a completed or cancelled project held.
func ReleaseDock(state *models.GameState, project *models.ConstructionProject) {
	project.AssignedFacility = 0
}

// AdvanceProjects credits each active project other than a repair (repairs
// advance in AdvanceRepairs) production points equal to the lesser of its remaining cost and the colony's production allocation
// for that facility, and appends completed projects to pendingCommissions
// (§4.7: commissioned next turn's Command Phase).
func AdvanceProjects(state *models.GameState, colony *models.Colony, productionPerFacility int64) []ids.ProjectId {
	var completed []ids.ProjectId
	progressed := false
	for _, projectID := range colony.ConstructionQueue {
		project, ok := state.Projects.Get(projectID)
		if !ok || project.Complete() || project.Kind == models.ProjectRepair {
			continue
		}
		if project.AssignedFacility == 0 && progressed {
			// Colony-level queue: one active project plus a FIFO waiting
			// list (§4.7) — only the first non-dock project progresses.
			continue
		}
		remaining := project.TotalCost - project.InvestedSoFar
		amount := productionPerFacility
		if amount > remaining {
			amount = remaining
		}
		project.Progress(amount)
		state.Projects.Update(projectID, project)
		if project.AssignedFacility == 0 {
			progressed = true
		}
		if project.Complete() {
			completed = append(completed, projectID)
		}
	}
	return completed
}
