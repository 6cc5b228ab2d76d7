// File: internal/diplomacy/manager_test.go
// Project: EC4X Engine
// Description: Tests for the diplomatic escalation ladder and violation tracking
// Version: 1.0.0
// Created: 2026-07-30

package diplomacy

import (
	"testing"

	"github.com/ec4x/engine/internal/models"
)

func TestEscalateOnOrderProvocativeStepsOneRung(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Houses.Create(models.NewHouse(0, "Federation", 0))
	b := state.Houses.Create(models.NewHouse(0, "Hegemony", 0))
	m := NewManager(state)

	got := m.EscalateOnOrder(a, b, OrderClass{Provocative: true}, 0)
	if got != models.Hostile {
		t.Fatalf("first provocative offense = %v, want Hostile", got)
	}

	got = m.EscalateOnOrder(a, b, OrderClass{Provocative: true}, 1)
	if got != models.Enemy {
		t.Fatalf("second provocative offense from Hostile = %v, want Enemy", got)
	}
}

func TestEscalateOnOrderThreateningJumpsToEnemy(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Houses.Create(models.NewHouse(0, "Federation", 0))
	b := state.Houses.Create(models.NewHouse(0, "Hegemony", 0))
	m := NewManager(state)

	got := m.EscalateOnOrder(a, b, OrderClass{Threatening: true}, 0)
	if got != models.Enemy {
		t.Fatalf("threatening order = %v, want Enemy", got)
	}

	ha, _ := state.Houses.Get(a)
	hb, _ := state.Houses.Get(b)
	if ha.RelationWith(b) != models.Enemy || hb.RelationWith(a) != models.Enemy {
		t.Error("expected the Enemy relation to be written symmetrically on both houses")
	}
}

func TestOfferAndAcceptDeescalationDropsOneRung(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Houses.Create(models.NewHouse(0, "Federation", 0))
	b := state.Houses.Create(models.NewHouse(0, "Hegemony", 0))
	m := NewManager(state)
	m.EscalateOnOrder(a, b, OrderClass{Threatening: true}, 0)

	if !m.OfferDeescalation(a, b, 10) {
		t.Fatal("expected offer to be accepted for recording")
	}
	if !m.AcceptDeescalation(a, b, 10) {
		t.Fatal("expected de-escalation acceptance to succeed with no recent combat")
	}

	ha, _ := state.Houses.Get(a)
	if ha.RelationWith(b) != models.Hostile {
		t.Errorf("relation after accepted de-escalation = %v, want Hostile", ha.RelationWith(b))
	}
}

func TestAcceptDeescalationBlockedByRecentCombat(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Houses.Create(models.NewHouse(0, "Federation", 0))
	b := state.Houses.Create(models.NewHouse(0, "Hegemony", 0))
	m := NewManager(state)
	m.EscalateOnOrder(a, b, OrderClass{Threatening: true}, 0)
	m.RecordCombat(a, b, 9)

	m.OfferDeescalation(a, b, 10)
	if m.AcceptDeescalation(a, b, 10) {
		t.Fatal("expected de-escalation to be blocked by combat within the last 3 turns")
	}
}

func TestRejectDeescalationStartsCooldown(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Houses.Create(models.NewHouse(0, "Federation", 0))
	b := state.Houses.Create(models.NewHouse(0, "Hegemony", 0))
	m := NewManager(state)

	m.OfferDeescalation(a, b, 1)
	m.RejectDeescalation(a, b, 1)

	if m.OfferDeescalation(a, b, 2) {
		t.Fatal("expected a new offer to be rejected during the post-rejection cooldown")
	}
	if !m.OfferDeescalation(a, b, 5) {
		t.Fatal("expected a new offer to succeed once the cooldown has elapsed")
	}
}

func TestCanCooperateOnlyWhenNeutral(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Houses.Create(models.NewHouse(0, "Federation", 0))
	b := state.Houses.Create(models.NewHouse(0, "Hegemony", 0))

	if !CanCooperate(state, a, b) {
		t.Error("expected two never-interacted houses to default to Neutral and cooperate")
	}

	m := NewManager(state)
	m.EscalateOnOrder(a, b, OrderClass{Provocative: true}, 0)
	if CanCooperate(state, a, b) {
		t.Error("expected Hostile houses not to cooperate")
	}
}

func TestCombatRequiredByRelation(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Houses.Create(models.NewHouse(0, "Federation", 0))
	b := state.Houses.Create(models.NewHouse(0, "Hegemony", 0))
	m := NewManager(state)

	if CombatRequired(state, a, b, false) {
		t.Error("Neutral houses should never be forced into combat")
	}

	m.EscalateOnOrder(a, b, OrderClass{Provocative: true}, 0) // -> Hostile
	if CombatRequired(state, a, b, false) {
		t.Error("Hostile houses without a threatening order this turn should not fight")
	}
	if !CombatRequired(state, a, b, true) {
		t.Error("Hostile houses with a threatening order this turn should fight")
	}

	m.EscalateOnOrder(a, b, OrderClass{Threatening: true}, 0) // -> Enemy
	if !CombatRequired(state, a, b, false) {
		t.Error("Enemy houses should always fight regardless of this turn's orders")
	}
}

func TestRecordViolationSetsDishonoredAndIsolatedWindows(t *testing.T) {
	state := models.NewGameState(1)
	a := state.Houses.Create(models.NewHouse(0, "Federation", 0))
	b := state.Houses.Create(models.NewHouse(0, "Hegemony", 0))
	m := NewManager(state)

	m.RecordViolation(a, b, 10)

	if !m.IsDishonored(a, 12) || m.IsDishonored(a, 13) {
		t.Error("expected dishonored window to cover exactly turns [10,13)")
	}
	if !m.IsIsolated(a, 14) || m.IsIsolated(a, 15) {
		t.Error("expected isolated window to cover exactly turns [10,15)")
	}
	if len(m.Violations) != 1 || m.Violations[0].Victim != b {
		t.Errorf("expected one recorded violation against house %v, got %+v", b, m.Violations)
	}
}
