// File: internal/combat/prestige.go
// Project: EC4X Engine
// Description: Prestige event constructors for post-combat bookkeeping (§4.9)
// Version: 1.0.0
// Created: 2026-01-07

package combat

import (
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/rules"
)

// DestroySquadronEvents returns the zero-sum pair for one house destroying
// another's squadron in combat.
func DestroySquadronEvents(destroyer, victim ids.HouseId, snap *rules.Snapshot) []PrestigeEvent {
	delta := snap.Prestige.ForceRetreatBonus // squadron kills reuse the same base award as retreat-forcing
	return []PrestigeEvent{
		{Source: "DestroySquadron", House: destroyer, Counterpart: victim, Delta: delta, Reason: "destroyed enemy squadron"},
		{Source: "DestroySquadron", House: victim, Counterpart: destroyer, Delta: -delta, Reason: "lost squadron"},
	}
}

// DestroyStarbaseEvents returns the zero-sum pair for destroying a starbase.
func DestroyStarbaseEvents(destroyer, victim ids.HouseId, snap *rules.Snapshot) []PrestigeEvent {
	delta := snap.Prestige.ForceRetreatBonus * 2
	return []PrestigeEvent{
		{Source: "DestroyStarbase", House: destroyer, Counterpart: victim, Delta: delta, Reason: "destroyed enemy starbase"},
		{Source: "DestroyStarbase", House: victim, Counterpart: destroyer, Delta: -delta, Reason: "lost starbase"},
	}
}

// InvadePlanetEvents returns the non-zero-sum pair for a successful
// invasion: the invader pays InvadePenalty (invasion is costly even when
// won) while the loser's penalty is the same magnitude, matching §4.9's
// "invade planet / lose planet" pairing.
func InvadePlanetEvents(invader, loser ids.HouseId, snap *rules.Snapshot) []PrestigeEvent {
	return []PrestigeEvent{
		{Source: "InvadePlanet", House: invader, Counterpart: loser, Delta: -snap.Prestige.InvadePenalty, Reason: "invaded enemy colony"},
		{Source: "LosePlanet", House: loser, Counterpart: invader, Delta: -snap.Prestige.InvadePenalty, Reason: "lost colony to invasion"},
	}
}

// ColonyEstablishedEvent is an achievement-category award (not zero-sum,
// §4.9) for successfully colonizing an uncontested system.
func ColonyEstablishedEvent(house ids.HouseId, snap *rules.Snapshot) PrestigeEvent {
	return PrestigeEvent{Source: "ColonyEstablished", House: house, Delta: snap.Prestige.TechAdvancementAward, Reason: "established new colony"}
}
