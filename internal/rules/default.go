// File: internal/rules/default.go
// Project: EC4X Engine
// Description: Built-in default rule snapshot
// Version: 1.0.0
// Created: 2026-01-07

package rules

// Default returns the built-in rule snapshot used when a scenario does not
// supply its own config file. Values follow the GLOSSARY's field
// abbreviations and the magnitudes implied by the §8 seeded scenarios.
func Default() *Snapshot {
	return &Snapshot{
		Ships: map[string]ShipRule{
			"Scout":         {Name: "Scout", BaseAS: 1, BaseDS: 1, CC: 1, CR: 0, CargoCapacity: 0, BuildCost: 50, MaintenanceCost: 2},
			"Frigate":       {Name: "Frigate", BaseAS: 4, BaseDS: 4, CC: 2, CR: 0, CargoCapacity: 10, BuildCost: 200, MaintenanceCost: 8},
			"Cruiser":       {Name: "Cruiser", BaseAS: 8, BaseDS: 8, CC: 4, CR: 8, CargoCapacity: 20, BuildCost: 500, MaintenanceCost: 20},
			"Dreadnought":   {Name: "Dreadnought", BaseAS: 16, BaseDS: 18, CC: 8, CR: 24, CargoCapacity: 30, BuildCost: 1200, MaintenanceCost: 50},
			"Transport":     {Name: "Transport", BaseAS: 0, BaseDS: 2, CC: 1, CR: 0, CargoCapacity: 100, IsSpacelift: true, BuildCost: 150, MaintenanceCost: 6},
			"PlanetBreaker": {Name: "PlanetBreaker", BaseAS: 30, BaseDS: 20, CC: 16, CR: 40, IsPlanetBreaker: true, BuildCost: 5000, MaintenanceCost: 150},
		},
		GroundUnits: map[string]GroundUnitRule{
			"Army":            {Kind: "Army", CombatStrength: 5, BuildCost: 100, MaintenanceCost: 3},
			"Marine":          {Kind: "Marine", CombatStrength: 8, BuildCost: 150, MaintenanceCost: 5},
			"GroundBattery":   {Kind: "GroundBattery", CombatStrength: 6, BuildCost: 200, MaintenanceCost: 4},
			"FighterSquadron": {Kind: "FighterSquadron", CombatStrength: 4, BuildCost: 180, MaintenanceCost: 6},
		},
		Facilities: map[string]FacilityRule{
			"Spaceport": {Kind: "Spaceport", DockCapacity: 1, BuildCost: 300, MaintenanceCost: 10},
			"Shipyard":  {Kind: "Shipyard", DockCapacity: 2, BuildCost: 800, MaintenanceCost: 25},
			"Drydock":   {Kind: "Drydock", DockCapacity: 3, BuildCost: 1500, MaintenanceCost: 40},
			"Starbase":  {Kind: "Starbase", DockCapacity: 2, BuildCost: 2000, MaintenanceCost: 60},
		},
		Combat: CombatRules{
			RoundCoefficient:            0.25,
			CrippledASMultiplier:        0.5,
			StalemateDRM:                2,
			PursuitVolleyFactor:         0.5,
			CriticalThreshold:           18,
			StarbaseCriticalDieModifier: 2,
			MaxBombardRoundsPerTurn:     3,
			InvasionIULoss:              0.15,
			BlitzIULoss:                 0.30,
			GroundCombatVictoryRatio:    1.5,
			CEREntries: map[string]float64{
				"scouts_present": 1.1,
				"surprise":       1.5,
				"ambush":         2.0,
			},
		},
		Economy: EconomyRules{
			BaseTaxMultiplier:          1.0,
			PopulationGrowthRate:       0.02,
			PopulationGrowthMultiplier: 1.0,
			ShortfallBase:              10,
			ShortfallIncrement:         5,
			TransferCostPerPTUPerHex:   3.0,
			BlockadePenalty:            0.5,
			ELBonusPerLevel:            0.1,
			ResourceRatingDivisor:      10.0,
			BaselineSystemsPerPlayer:   9.0,
			IUInvestmentCostTiers:      [5]int64{5, 6, 8, 10, 13},
		},
		Prestige: PrestigeRules{
			PrestigeMultiplier:       1.0,
			InvadePenalty:            25,
			ForceRetreatBonus:        10,
			MaintenanceShortfallBase: 5,
			FailedEspionagePenalty:   15,
			TechAdvancementAward:     5,
		},
		Espionage: map[string]EspionageActionRule{
			"TechTheft":             {Name: "TechTheft", EBPCost: 5, SRPStolen: 10},
			"SabotageLow":           {Name: "SabotageLow", EBPCost: 2, IUDamageDice: "1d6"},
			"SabotageHigh":          {Name: "SabotageHigh", EBPCost: 7, IUDamageDice: "3d6"},
			"Assassination":         {Name: "Assassination", EBPCost: 10, PrestigeDelta: -20},
			"CyberAttack":           {Name: "CyberAttack", EBPCost: 6, EffectTurns: 2, EffectMagnitude: 0.5},
			"EconomicManipulation":  {Name: "EconomicManipulation", EBPCost: 6, EffectTurns: 3, EffectMagnitude: 0.25},
			"PsyopsCampaign":        {Name: "PsyopsCampaign", EBPCost: 3, PrestigeDelta: -5},
			"CounterIntelSweep":     {Name: "CounterIntelSweep", EBPCost: 4},
			"IntelTheft":            {Name: "IntelTheft", EBPCost: 8},
			"PlantDisinformation":   {Name: "PlantDisinformation", EBPCost: 6, EffectTurns: 4},
		},
		Starmap: StarmapRules{
			HomeworldMajorLanes: 3,
			LaneWeights:         [3]float64{0.5, 0.35, 0.15},
		},
		Guild: GuildRules{
			Enabled:      true,
			TaxRateBonus: 0.05,
		},
		Military: MilitaryRules{
			DefaultROE: "Standard",
		},
		StandingOrder: StandingOrderRules{
			MaxPatrolWaypoints: 8,
		},
		Capacity: CapacityRules{
			FighterIUDivisor:              20,
			FDMultiplierPerLevel:          0.2,
			FighterGracePeriodTurns:       2,
			SquadronIUDivisor:             100,
			CapitalSquadronMinimum:        2,
			RepairCostMultiplier:          0.3,
			ShipRepairTurns:               2,
			CrippledMaintenanceMultiplier: 0.5,
		},
		HouseThemes: []HouseTheme{
			{Name: "Federation", Description: "Core-world industrial democracy"},
			{Name: "Hegemony", Description: "Militarized frontier autocracy"},
			{Name: "Concordat", Description: "Mercantile trading league"},
			{Name: "Dominion", Description: "Expansionist colonial empire"},
		},
	}
}
