// File: internal/economy/income.go
// Project: EC4X Engine
// Description: Income Phase: GCO/NCV computation, taxation, population growth (§4.5 phase 2, §4.7)
// Version: 1.0.0
// Created: 2026-01-07

// Package economy runs the Income Phase and the Maintenance-phase economic
// bookkeeping of the turn resolver (§4.5, §4.7): gross colony output,
// taxation into treasury, research point accumulation, population growth,
// dock-capacity-scheduled construction and repair, and maintenance
// shortfall. Every function here is a pure transformation over GameState
// passed in by the caller — like combat, nothing in this package owns its
// own goroutines or locks, matching the turn resolver's single-threaded
// cooperative model.
package economy

import (
	"math"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/models"
	"github.com/ec4x/engine/internal/rules"
)

// ColonyIncome is one colony's computed Income Phase result for the turn.
type ColonyIncome struct {
	ColonyID      ids.ColonyId
	GCO           int64
	NCV           int64
	ResearchPoint int64
}

// ComputeGCO computes gross colony output: the colony's IU scaled by EL
// tech bonus, planet-class factor (from the system's resource rating),
// infrastructure damage, and blockade penalty (§4.5 phase 2). Population
// does not enter the figure directly.
func ComputeGCO(colony *models.Colony, system *models.System, house *models.House, snap *rules.Snapshot) int64 {
	base := float64(colony.IU)
	elBonus := 1.0 + float64(house.TechTree.Level(models.TechEL))*snap.Economy.ELBonusPerLevel
	planetFactor := 1.0
	if system != nil && snap.Economy.ResourceRatingDivisor > 0 {
		planetFactor = float64(system.ResourceRating) / snap.Economy.ResourceRatingDivisor
	}
	damageFactor := 1.0 - colony.InfrastructureDamage
	blockadeFactor := 1.0
	if colony.Blockaded {
		blockadeFactor = 1.0 - snap.Economy.BlockadePenalty
	}

	gco := base * elBonus * planetFactor * damageFactor * blockadeFactor
	if gco < 0 {
		gco = 0
	}
	return int64(gco)
}

// ComputeNCV applies the colony's effective tax rate to GCO to get net
// colony value, the amount actually deposited to treasury.
func ComputeNCV(gco int64, colony *models.Colony, house *models.House, snap *rules.Snapshot) int64 {
	rate := colony.EffectiveTaxRate(house.TaxPolicy.DefaultRate) * snap.Economy.BaseTaxMultiplier
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return int64(float64(gco) * rate)
}

// RunIncomePhase computes and deposits income for every founded colony,
// accumulates research points toward each house's allocated tech fields,
// and grows population (§4.5 phase 2). dynamicGrowthMultiplier is the
// per-game constant computed once at setup (§4.7).
func RunIncomePhase(state *models.GameState, snap *rules.Snapshot, allocations map[ids.HouseId]map[models.TechField]float64, dynamicGrowthMultiplier float64) []ColonyIncome {
	var incomes []ColonyIncome

	state.Colonies.All(func(colonyID ids.ColonyId, colony *models.Colony) {
		if !colony.Founded {
			return
		}
		house, ok := state.Houses.Get(colony.Owner)
		if !ok || house.Eliminated {
			return
		}
		system, _ := state.Systems.Get(colony.SystemID)

		gco := ComputeGCO(colony, system, house, snap)
		ncv := ComputeNCV(gco, colony, house, snap)
		house.Treasury += ncv

		researchPoint := gco - ncv // unspent GCO (post-tax retained locally) feeds research, §4.2 GLOSSARY
		if researchPoint < 0 {
			researchPoint = 0
		}
		applyResearch(house, researchPoint, allocations[colony.Owner], snap)

		state.Houses.Update(colony.Owner, house)

		growPopulation(colony, snap, dynamicGrowthMultiplier)
		growIU(colony)
		state.Colonies.Update(colonyID, colony)

		incomes = append(incomes, ColonyIncome{ColonyID: colonyID, GCO: gco, NCV: ncv, ResearchPoint: researchPoint})
	})

	return incomes
}

// applyResearch splits a house's accumulated research points across its
// tech-field allocation shares and credits the tech tree, awarding
// TechAdvancementAward prestige per level-up the caller applies separately.
func applyResearch(house *models.House, points int64, shares map[models.TechField]float64, snap *rules.Snapshot) {
	if points <= 0 || len(shares) == 0 {
		return
	}
	for field, share := range shares {
		fieldPoints := int(float64(points) * share)
		if fieldPoints <= 0 {
			continue
		}
		house.TechTree.AddPoints(field, fieldPoints, func(level int) int {
			return (level + 1) * 10 // cost curve: level N->N+1 costs 10*(N+1) points
		})
	}
}

// growPopulation applies the per-turn PU change: base_rate(class) is
// approximated by PopulationGrowthRate (a flat rate; planet-class curves
// are folded into the resource-rating-derived GCO, not population here,
// since no separate planet-class table exists on Colony) times the
// dynamic multiplier times a tax-morale factor that penalizes high tax
// rates (§4.7).
func growPopulation(colony *models.Colony, snap *rules.Snapshot, dynamicGrowthMultiplier float64) {
	if colony.Population >= colony.MaxPopulation && colony.MaxPopulation > 0 {
		return
	}
	taxMorale := 1.0 - colony.TaxRate*0.5
	if colony.TaxRate < 0 {
		taxMorale = 1.0
	}
	growth := float64(colony.Population) * snap.Economy.PopulationGrowthRate * snap.Economy.PopulationGrowthMultiplier * dynamicGrowthMultiplier * taxMorale
	colony.Population += int64(math.Round(growth))
	if colony.MaxPopulation > 0 && colony.Population > colony.MaxPopulation {
		colony.Population = colony.MaxPopulation
	}
}

// growIU applies passive IU growth of max(1, floor(PU/200)) per turn (§4.7).
func growIU(colony *models.Colony) {
	passive := colony.Population / 200
	if passive < 1 {
		passive = 1
	}
	colony.IU += passive
}

// DynamicGrowthMultiplier computes the fixed per-game population growth
// constant from the map's systems-per-player density, initialized once at
// game start (§4.7: "clamp(sqrt(systems_per_player / baseline), 0.5, 2.0)").
func DynamicGrowthMultiplier(systemsPerPlayer float64, snap *rules.Snapshot) float64 {
	if snap.Economy.BaselineSystemsPerPlayer <= 0 {
		return 1.0
	}
	mult := math.Sqrt(systemsPerPlayer / snap.Economy.BaselineSystemsPerPlayer)
	if mult < 0.5 {
		return 0.5
	}
	if mult > 2.0 {
		return 2.0
	}
	return mult
}

// IUInvestmentCost returns the PP cost to add one IU at the colony's
// current IU-to-PU ratio tier (§4.7: "5/6/8/10/13 PP per IU depending on
// IU-to-PU ratio").
func IUInvestmentCost(colony *models.Colony, snap *rules.Snapshot) int64 {
	if colony.Population <= 0 {
		return snap.Economy.IUInvestmentCostTiers[0]
	}
	ratio := float64(colony.IU) / float64(colony.Population)
	tiers := snap.Economy.IUInvestmentCostTiers
	switch {
	case ratio < 0.05:
		return tiers[0]
	case ratio < 0.10:
		return tiers[1]
	case ratio < 0.15:
		return tiers[2]
	case ratio < 0.20:
		return tiers[3]
	default:
		return tiers[4]
	}
}
