// File: internal/starmap/hex.go
// Project: EC4X Engine
// Description: Axial hex-grid coordinate math (§4.3)
// Version: 1.0.0
// Created: 2026-01-07

package starmap

import "github.com/ec4x/engine/internal/models"

// hexDirections are the six axial unit steps, ordered so that walking them
// in sequence traces a ring counter-clockwise starting from the corner in
// direction hexDirections[4] — the order Ring relies on.
var hexDirections = [6]models.HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

func hexAdd(a, b models.HexCoord) models.HexCoord {
	return models.HexCoord{Q: a.Q + b.Q, R: a.R + b.R}
}

func hexScale(a models.HexCoord, k int) models.HexCoord {
	return models.HexCoord{Q: a.Q * k, R: a.R * k}
}

// Distance returns the hex distance between a and b:
// max(|dq|, |dr|, |dq+dr|) per §4.3.
func Distance(a, b models.HexCoord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return maxInt(absInt(dq), maxInt(absInt(dr), absInt(dq+dr)))
}

// WithinRadius returns every hex within radius r of center, including
// center itself; §4.3 gives the closed-form count 1 + 3r(r+1).
func WithinRadius(center models.HexCoord, r int) []models.HexCoord {
	out := make([]models.HexCoord, 0, 1+3*r*(r+1))
	for q := -r; q <= r; q++ {
		r1 := maxInt(-r, -q-r)
		r2 := minInt(r, -q+r)
		for rr := r1; rr <= r2; rr++ {
			out = append(out, hexAdd(center, models.HexCoord{Q: q, R: rr}))
		}
	}
	return out
}

// Ring returns the 6r hexes forming the ring of radius r around center (r
// must be >= 1). The cells at index 0, r, 2r, 3r, 4r, 5r are the ring's six
// "corner" cells — the only cells with exactly three in-grid neighbors
// when r is the outermost populated ring, used by the generator to pick
// homeworld candidates for small player counts (§4.3 step 2).
func Ring(center models.HexCoord, r int) []models.HexCoord {
	if r <= 0 {
		return []models.HexCoord{center}
	}
	out := make([]models.HexCoord, 0, 6*r)
	hex := hexAdd(center, hexScale(hexDirections[4], r))
	for side := 0; side < 6; side++ {
		for step := 0; step < r; step++ {
			out = append(out, hex)
			hex = hexAdd(hex, hexDirections[side])
		}
	}
	return out
}

// RingCorners returns the 6 corner cells of ring r (the indices that are
// exact multiples of r in the Ring traversal).
func RingCorners(center models.HexCoord, r int) []models.HexCoord {
	ring := Ring(center, r)
	if r <= 0 {
		return ring
	}
	corners := make([]models.HexCoord, 0, 6)
	for i := 0; i < 6; i++ {
		corners = append(corners, ring[i*r])
	}
	return corners
}

// Neighbors returns the six adjacent cells of c, independent of whether
// they exist in the generated map.
func Neighbors(c models.HexCoord) [6]models.HexCoord {
	var out [6]models.HexCoord
	for i, d := range hexDirections {
		out[i] = hexAdd(c, d)
	}
	return out
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
