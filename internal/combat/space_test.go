// File: internal/combat/space_test.go
// Project: EC4X Engine
// Description: Tests for space-theater combat resolution
// Version: 1.0.0
// Created: 2026-01-07

package combat

import (
	"math/rand"
	"testing"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

func newSquadron(state *models.GameState, houseID ids.HouseId, shipCount, as, ds int) ids.SquadronId {
	var shipIDs []ids.ShipId
	var flagship ids.ShipId
	for i := 0; i < shipCount; i++ {
		ship := &models.Ship{HouseID: houseID, AS: as, DS: ds, Class: models.ShipClass{Name: "Cruiser", CR: 8}}
		id := state.Ships.Create(ship)
		ship.ID = id
		state.Ships.Update(id, ship)
		shipIDs = append(shipIDs, id)
		if i == 0 {
			flagship = id
		}
	}
	sq := &models.Squadron{HouseID: houseID, FlagshipID: flagship, ShipIDs: shipIDs}
	sqID := state.Squadrons.Create(sq)
	for _, id := range shipIDs {
		ship, _ := state.Ships.Get(id)
		ship.SquadronID = sqID
		state.Ships.Update(id, ship)
	}
	return sqID
}

func TestResolveSpaceDestroysWeakerSide(t *testing.T) {
	state := models.NewGameState(1)
	houseA := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
	houseB := state.Houses.Create(models.NewHouse(0, "Hegemony", 1000))

	sqA := newSquadron(state, houseA, 3, 20, 20)
	sqB := newSquadron(state, houseB, 1, 1, 1)

	a := Side{HouseID: houseA, Squadrons: []ids.SquadronId{sqA}, Roe: models.ROEAggressive, WEPMultiplier: 1, SLDMultiplier: 1}
	b := Side{HouseID: houseB, Squadrons: []ids.SquadronId{sqB}, Roe: models.ROEAggressive, WEPMultiplier: 1, SLDMultiplier: 1}

	snap := rules.Default()
	rng := rand.New(rand.NewSource(7))

	result := ResolveSpace(state, snap, rng, a, b, nil, nil)

	sq, ok := state.Squadrons.Get(sqB)
	if !ok || !sq.Destroyed {
		t.Fatalf("expected side B's only squadron to be destroyed, got %+v", sq)
	}
	if len(result.Rounds) == 0 {
		t.Error("expected at least one round to be logged")
	}
}

func TestResolveSpaceStalemateWhenNeitherSideCanHit(t *testing.T) {
	state := models.NewGameState(1)
	houseA := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
	houseB := state.Houses.Create(models.NewHouse(0, "Hegemony", 1000))

	sqA := newSquadron(state, houseA, 1, 1, 1)
	sqB := newSquadron(state, houseB, 1, 1, 1)

	a := Side{HouseID: houseA, Squadrons: []ids.SquadronId{sqA}, Roe: models.ROEAggressive, WEPMultiplier: 1, SLDMultiplier: 1}
	b := Side{HouseID: houseB, Squadrons: []ids.SquadronId{sqB}, Roe: models.ROEAggressive, WEPMultiplier: 1, SLDMultiplier: 1}

	snap := rules.Default()
	snap.Combat.RoundCoefficient = 0.01 // force floor(AS*coef) == 0 both sides
	rng := rand.New(rand.NewSource(3))

	result := ResolveSpace(state, snap, rng, a, b, nil, nil)
	if !result.Stalemate {
		t.Error("expected a stalemate when neither side can inflict a hit even after the desperation DRM")
	}
}

func TestResolveSpaceCautiousSideRetreats(t *testing.T) {
	state := models.NewGameState(1)
	houseA := state.Houses.Create(models.NewHouse(0, "Federation", 1000))
	houseB := state.Houses.Create(models.NewHouse(0, "Hegemony", 1000))

	sqA := newSquadron(state, houseA, 5, 20, 20)
	sqB := newSquadron(state, houseB, 5, 20, 20)

	a := Side{HouseID: houseA, Squadrons: []ids.SquadronId{sqA}, Roe: models.ROEAggressive, WEPMultiplier: 1, SLDMultiplier: 1}
	b := Side{HouseID: houseB, Squadrons: []ids.SquadronId{sqB}, Roe: models.ROECautious, WEPMultiplier: 0.01, SLDMultiplier: 1}

	snap := rules.Default()
	rng := rand.New(rand.NewSource(11))

	result := ResolveSpace(state, snap, rng, a, b, nil, nil)
	if !result.Retreated[houseB] {
		t.Error("expected the heavily outmatched cautious side to retreat")
	}
}
