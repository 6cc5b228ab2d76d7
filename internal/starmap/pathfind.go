// File: internal/starmap/pathfind.go
// Project: EC4X Engine
// Description: A* pathfinding over the lane graph (§4.3)
// Version: 1.0.0
// Created: 2026-01-07

package starmap

import (
	"container/heap"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
)

// laneWeight returns the A* edge cost for a lane class: Major=1, Minor=2,
// Restricted=3 (§4.3).
func laneWeight(class models.LaneClass) int {
	switch class {
	case models.LaneMajor:
		return 1
	case models.LaneMinor:
		return 2
	case models.LaneRestricted:
		return 3
	default:
		return 3
	}
}

// PathResult is the outcome of FindPath.
type PathResult struct {
	Path      []ids.SystemId
	TotalCost int
	Found     bool
}

// FindPath runs A* from `from` to `to` over state's lane graph. Major and
// Minor lanes admit any fleet; a Restricted lane rejects any path for a
// fleet that contains a crippled flagship (§4.3's traversal rule).
func FindPath(state *models.GameState, from, to ids.SystemId, fleetHasCrippledFlagship bool) PathResult {
	if from == to {
		return PathResult{Path: []ids.SystemId{from}, TotalCost: 0, Found: true}
	}

	openSet := &pqueue{}
	heap.Init(openSet)
	heap.Push(openSet, &pqItem{id: from, priority: heuristic(state, from, to)})

	cameFrom := make(map[ids.SystemId]ids.SystemId)
	gScore := map[ids.SystemId]int{from: 0}
	visited := make(map[ids.SystemId]bool)

	for openSet.Len() > 0 {
		cur := heap.Pop(openSet).(*pqItem)
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true

		if cur.id == to {
			return PathResult{Path: reconstructPath(cameFrom, to), TotalCost: gScore[to], Found: true}
		}

		sys, ok := state.Systems.Get(cur.id)
		if !ok {
			continue
		}
		for _, idx := range sys.LaneIndices {
			lane := state.Lanes[idx]
			if lane.Class == models.LaneRestricted && fleetHasCrippledFlagship {
				continue
			}
			neighbor := lane.Other(cur.id)
			tentative := gScore[cur.id] + laneWeight(lane.Class)
			if existing, ok := gScore[neighbor]; !ok || tentative < existing {
				gScore[neighbor] = tentative
				cameFrom[neighbor] = cur.id
				heap.Push(openSet, &pqItem{id: neighbor, priority: tentative + heuristic(state, neighbor, to)})
			}
		}
	}

	return PathResult{Found: false}
}

// CalculateETA returns the path's ETA in turns: max(1, total_cost) if a
// path exists, or nil (represented here by ok=false) otherwise (§8
// property "Fleet ETA").
func CalculateETA(result PathResult) (eta int, ok bool) {
	if !result.Found {
		return 0, false
	}
	if result.TotalCost < 1 {
		return 1, true
	}
	return result.TotalCost, true
}

func heuristic(state *models.GameState, from, to ids.SystemId) int {
	fromSys, ok1 := state.Systems.Get(from)
	toSys, ok2 := state.Systems.Get(to)
	if !ok1 || !ok2 {
		return 0
	}
	return Distance(fromSys.Coord, toSys.Coord)
}

func reconstructPath(cameFrom map[ids.SystemId]ids.SystemId, to ids.SystemId) []ids.SystemId {
	path := []ids.SystemId{to}
	cur := to
	for {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append([]ids.SystemId{prev}, path...)
		cur = prev
	}
	return path
}

// pqItem is one entry of the A* open set priority queue.
type pqItem struct {
	id       ids.SystemId
	priority int
	index    int
}

// pqueue is a container/heap.Interface min-heap over pqItem.priority.
type pqueue []*pqItem

func (pq pqueue) Len() int            { return len(pq) }
func (pq pqueue) Less(i, j int) bool  { return pq[i].priority < pq[j].priority }
func (pq pqueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i]; pq[i].index = i; pq[j].index = j }
func (pq *pqueue) Push(x interface{}) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *pqueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
