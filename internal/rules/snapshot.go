// File: internal/rules/snapshot.go
// Project: EC4X Engine
// Description: Immutable rule snapshot loaded once per game (§4.2)
// Version: 1.0.0
// Created: 2026-01-07

// Package rules loads and exposes the materialized rule snapshot a game is
// created with: ship/ground-unit/facility catalogs, combat/economy/
// prestige/espionage tables, starmap/guild/military/standing-order
// defaults, and house themes. Once loaded the snapshot is immutable for
// the life of the game; config_hash lets clients detect rule-version drift.
package rules

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// ShipRule is the catalog entry for one ship class (§3: Ship.class).
type ShipRule struct {
	Name            string `json:"name"`
	BaseAS          int    `json:"base_as"`
	BaseDS          int    `json:"base_ds"`
	CC              int    `json:"cc"`
	CR              int    `json:"cr"`
	CargoCapacity   int    `json:"cargo_capacity"`
	IsFighter       bool   `json:"is_fighter"`
	IsSpacelift     bool   `json:"is_spacelift"`
	IsPlanetBreaker bool   `json:"is_planet_breaker"`
	MaintenanceCost int64  `json:"maintenance_cost"`
	BuildCost       int64  `json:"build_cost"`
}

// GroundUnitRule is the catalog entry for one ground unit kind.
type GroundUnitRule struct {
	Kind            string `json:"kind"`
	CombatStrength  int    `json:"combat_strength"`
	BuildCost       int64  `json:"build_cost"`
	MaintenanceCost int64  `json:"maintenance_cost"`
}

// FacilityRule is the catalog entry for one facility kind.
type FacilityRule struct {
	Kind            string `json:"kind"`
	DockCapacity    int    `json:"dock_capacity"`
	BuildCost       int64  `json:"build_cost"`
	MaintenanceCost int64  `json:"maintenance_cost"`
}

// CombatRules tunes the three-theater combat resolver (§4.6).
type CombatRules struct {
	RoundCoefficient     float64 `json:"round_coefficient"`
	CrippledASMultiplier float64 `json:"crippled_as_multiplier"`
	StalemateDRM         int     `json:"stalemate_drm"`
	PursuitVolleyFactor  float64 `json:"pursuit_volley_factor"`

	// CriticalThreshold is the d20 roll at or above which a hit destroys
	// its target outright regardless of remaining DS (§4.6).
	CriticalThreshold int `json:"critical_threshold"`
	// StarbaseCriticalDieModifier is added to the d20 roll when a starbase
	// with its critical-reroll toggle engaged participates in the volley.
	StarbaseCriticalDieModifier int `json:"starbase_critical_die_modifier"`

	// MaxBombardRoundsPerTurn bounds Bombard's per-turn d20-to-IU rounds.
	MaxBombardRoundsPerTurn int `json:"max_bombard_rounds_per_turn"`
	// InvasionIULoss is the fraction of current IU lost when Invade succeeds.
	InvasionIULoss float64 `json:"invasion_iu_loss"`
	// BlitzIULoss is the (higher) fraction of IU lost under Blitz.
	BlitzIULoss float64 `json:"blitz_iu_loss"`
	// GroundCombatVictoryRatio is the attacker/defender ground-strength
	// ratio an Invade or Blitz must clear to take the colony (§4.6.3).
	GroundCombatVictoryRatio float64 `json:"ground_combat_victory_ratio"`

	// CEREntries maps a named condition (e.g. "scouts_present", "surprise",
	// "ambush") to its multiplier on attack strength.
	CEREntries map[string]float64 `json:"cer_entries"`
}

// EconomyRules tunes income, population growth, and construction (§4.7).
type EconomyRules struct {
	BaseTaxMultiplier        float64 `json:"base_tax_multiplier"`
	PopulationGrowthRate     float64 `json:"population_growth_rate"`
	PopulationGrowthMultiplier float64 `json:"population_growth_multiplier"`
	ShortfallBase            int64   `json:"shortfall_base"`
	ShortfallIncrement       int64   `json:"shortfall_increment"`
	TransferCostPerPTUPerHex float64 `json:"transfer_cost_per_ptu_per_hex"`

	// BlockadePenalty is the fraction GCO is reduced by while a colony is
	// under blockade (§4.5 Income Phase).
	BlockadePenalty float64 `json:"blockade_penalty"`
	// ELBonusPerLevel is the GCO multiplier added per point of EL tech.
	ELBonusPerLevel float64 `json:"el_bonus_per_level"`
	// ResourceRatingDivisor normalizes System.ResourceRating into the
	// planet-class GCO factor: factor = ResourceRating / divisor.
	ResourceRatingDivisor float64 `json:"resource_rating_divisor"`
	// BaselineSystemsPerPlayer anchors the population-growth dynamic
	// multiplier's clamp(sqrt(...), 0.5, 2.0) formula (§4.7).
	BaselineSystemsPerPlayer float64 `json:"baseline_systems_per_player"`
	// IUInvestmentCostTiers are the PP costs per IU added by player
	// investment, indexed by IU-to-PU ratio tier (§4.7 "5/6/8/10/13 PP").
	IUInvestmentCostTiers [5]int64 `json:"iu_investment_cost_tiers"`
}

// PrestigeRules tunes the zero-sum prestige ledger (§4.9).
type PrestigeRules struct {
	PrestigeMultiplier        float64 `json:"prestige_multiplier"`
	InvadePenalty             int64   `json:"invade_penalty"`
	ForceRetreatBonus         int64   `json:"force_retreat_bonus"`
	MaintenanceShortfallBase  int64   `json:"maintenance_shortfall_base"`
	FailedEspionagePenalty    int64   `json:"failed_espionage_penalty"`
	TechAdvancementAward      int64   `json:"tech_advancement_award"`
}

// EspionageActionRule is one data-driven espionage action descriptor
// (§4.10): cost in EBP plus its success effects.
type EspionageActionRule struct {
	Name           string  `json:"name"`
	EBPCost        int     `json:"ebp_cost"`
	PrestigeDelta  int64   `json:"prestige_delta"`
	SRPStolen      int     `json:"srp_stolen"`
	IUDamageDice   string  `json:"iu_damage_dice"`
	EffectTurns    int     `json:"effect_turns"`
	EffectMagnitude float64 `json:"effect_magnitude"`
}

// StarmapRules tunes map generation (mirrors starmap.GeneratorConfig's
// fields so a scenario file can override them without this package
// depending on the starmap package).
type StarmapRules struct {
	HomeworldMajorLanes int        `json:"homeworld_major_lanes"`
	LaneWeights         [3]float64 `json:"lane_weights"`
}

// GuildRules tunes the neutral trading-guild faction's behavior, if enabled.
type GuildRules struct {
	Enabled       bool    `json:"enabled"`
	TaxRateBonus  float64 `json:"tax_rate_bonus"`
}

// MilitaryRules tunes global military constants (e.g. ROE defaults).
type MilitaryRules struct {
	DefaultROE string `json:"default_roe"`
}

// StandingOrderRules tunes fleet standing-order execution (§4.4a).
type StandingOrderRules struct {
	MaxPatrolWaypoints int `json:"max_patrol_waypoints"`
}

// CapacityRules tunes the §3.2 per-colony/per-house capacity invariants
// and the repair queue's cost/duration (§4.7 "Repair").
type CapacityRules struct {
	// FighterIUDivisor/FDMultiplierPerLevel compute a colony's fighter cap:
	// floor(IU / FighterIUDivisor) * (1 + level*FDMultiplierPerLevel).
	FighterIUDivisor     int     `json:"fighter_iu_divisor"`
	FDMultiplierPerLevel float64 `json:"fd_multiplier_per_level"`
	// FighterGracePeriodTurns is how long a fighter-capacity violation is
	// tolerated before the oldest excess squadron is auto-disbanded.
	FighterGracePeriodTurns int `json:"fighter_grace_period_turns"`

	// SquadronIUDivisor/CapitalSquadronMinimum compute a house's capital
	// squadron cap: max(min, 2 * floor(total_IU / divisor)).
	SquadronIUDivisor      int64 `json:"squadron_iu_divisor"`
	CapitalSquadronMinimum int   `json:"capital_squadron_minimum"`

	// RepairCostMultiplier/ShipRepairTurns tune the drydock repair queue.
	RepairCostMultiplier float64 `json:"repair_cost_multiplier"`
	ShipRepairTurns      int     `json:"ship_repair_turns"`
	// CrippledMaintenanceMultiplier scales a crippled ship's per-turn
	// upkeep relative to its base maintenance cost.
	CrippledMaintenanceMultiplier float64 `json:"crippled_maintenance_multiplier"`
}

// HouseTheme names a cosmetic flavor pack assignable to a house at setup.
type HouseTheme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Snapshot is the complete immutable rule set for one game.
type Snapshot struct {
	Ships         map[string]ShipRule            `json:"ships"`
	GroundUnits   map[string]GroundUnitRule       `json:"ground_units"`
	Facilities    map[string]FacilityRule         `json:"facilities"`
	Combat        CombatRules                     `json:"combat"`
	Economy       EconomyRules                     `json:"economy"`
	Prestige      PrestigeRules                     `json:"prestige"`
	Espionage     map[string]EspionageActionRule   `json:"espionage"`
	Starmap       StarmapRules                     `json:"starmap"`
	Guild         GuildRules                       `json:"guild"`
	Military      MilitaryRules                     `json:"military"`
	StandingOrder StandingOrderRules               `json:"standing_order"`
	Capacity      CapacityRules                    `json:"capacity"`
	HouseThemes   []HouseTheme                     `json:"house_themes"`
}

// ConfigHash computes a stable hash over the materialized schema so
// clients can detect rule-version drift (§4.2); embedded in every player
// delta.
func (s *Snapshot) ConfigHash() (string, error) {
	// json.Marshal on map fields sorts keys alphabetically, so this is
	// stable across process restarts given the same snapshot contents.
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("rules: hash snapshot: %w", err)
	}
	sum := sha256.Sum256(b)
	return fmt.Sprintf("%x", sum), nil
}
