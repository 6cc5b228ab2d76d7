// File: internal/starmap/names.go
// Project: EC4X Engine
// Description: Procedural star system name generation
// Version: 1.0.0
// Created: 2026-01-07

// Package starmap builds the hex-grid starmap (§4.3): system placement,
// lane classification, and A* pathfinding over the resulting graph.
package starmap

import (
	"fmt"
	"math/rand"
)

// NameGenerator produces unique star system names using one of four
// strategies, with a deterministic fallback once names start colliding.
//
// Not thread-safe: one generator is created per map generation run and
// driven entirely from the seeded RNG passed to it.
type NameGenerator struct {
	rand      *rand.Rand
	usedNames map[string]bool
}

// NewNameGenerator returns a generator drawing from r.
func NewNameGenerator(r *rand.Rand) *NameGenerator {
	return &NameGenerator{
		rand:      r,
		usedNames: make(map[string]bool),
	}
}

var greekLetters = []string{
	"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta", "Theta",
	"Iota", "Kappa", "Lambda", "Mu", "Nu", "Xi", "Omicron", "Pi",
	"Rho", "Sigma", "Tau", "Upsilon", "Phi", "Chi", "Psi", "Omega",
}

var constellations = []string{
	"Centauri", "Eridani", "Ceti", "Draconis", "Leonis", "Aquarii", "Orionis",
	"Scorpii", "Cassiopeiae", "Andromedae", "Lyrae", "Cygni", "Aquilae",
	"Ursae", "Bootis", "Virginis", "Geminorum", "Tauri", "Sagittarii",
	"Capricorni", "Piscium", "Arietis", "Cancri", "Librae", "Persei",
	"Herculis", "Ophiuchi", "Serpentis", "Coronae", "Hydrae",
}

var realStars = []string{
	"Sirius", "Canopus", "Arcturus", "Vega", "Capella", "Rigel", "Procyon",
	"Betelgeuse", "Achernar", "Altair", "Aldebaran", "Antares", "Spica",
	"Pollux", "Fomalhaut", "Deneb", "Regulus", "Adhara", "Castor", "Bellatrix",
	"Elnath", "Miaplacidus", "Alnilam", "Alnitak", "Alnair", "Alioth",
	"Dubhe", "Mirfak", "Wezen", "Sargas", "Kaus Australis", "Avior",
	"Alkaid", "Menkalinan", "Atria", "Alhena", "Peacock", "Alsephina",
	"Mirzam", "Alphard", "Hamal", "Polaris", "Alderamin", "Denebola",
}

var namePrefix = []string{
	"New", "Neo", "Nova", "Omega", "Proxima", "Ultima", "Prima", "Kepler",
	"Ross", "Gliese", "Wolf", "Lacaille", "Luyten", "Barnard", "Kruger",
	"Groombridge", "Lalande", "Struve", "Innes", "van", "Stein",
}

var nameSuffix = []string{
	"Prime", "Secundus", "Tertius", "Major", "Minor", "Station", "Outpost",
	"Haven", "Refuge", "Bastion", "Forge", "Reach", "Crossing", "Gate",
	"Nexus", "Hub", "Point", "Junction", "Terminal", "Threshold",
}

// GenerateSystemName picks one of four naming strategies (Greek +
// constellation, real star name, catalog designation, compound name) with
// equal probability, retrying on collision up to 100 times before falling
// back to a guaranteed-unique sequential name.
func (ng *NameGenerator) GenerateSystemName() string {
	const maxAttempts = 100

	for i := 0; i < maxAttempts; i++ {
		var name string
		switch ng.rand.Intn(4) {
		case 0:
			name = ng.generateGreekConstellation()
		case 1:
			name = realStars[ng.rand.Intn(len(realStars))]
		case 2:
			name = ng.generateCatalogName()
		case 3:
			name = ng.generateCompoundName()
		}

		if !ng.usedNames[name] {
			ng.usedNames[name] = true
			return name
		}
	}

	return ng.generateFallbackName()
}

func (ng *NameGenerator) generateGreekConstellation() string {
	greek := greekLetters[ng.rand.Intn(len(greekLetters))]
	constellation := constellations[ng.rand.Intn(len(constellations))]
	return fmt.Sprintf("%s %s", greek, constellation)
}

func (ng *NameGenerator) generateCatalogName() string {
	prefix := namePrefix[ng.rand.Intn(len(namePrefix))]
	number := ng.rand.Intn(9999) + 1
	return fmt.Sprintf("%s-%d", prefix, number)
}

func (ng *NameGenerator) generateCompoundName() string {
	prefix := namePrefix[ng.rand.Intn(len(namePrefix))]
	suffix := nameSuffix[ng.rand.Intn(len(nameSuffix))]
	return fmt.Sprintf("%s %s", prefix, suffix)
}

// generateFallbackName is the last resort once 100 collision retries have
// been exhausted; the usedNames count is already a safe unique counter.
func (ng *NameGenerator) generateFallbackName() string {
	counter := len(ng.usedNames)
	name := fmt.Sprintf("System-%d", counter)
	ng.usedNames[name] = true
	return name
}
