// File: internal/models/ship.go
// Project: EC4X Engine
// Description: Data model for ships
// Version: 1.0.0
// Created: 2026-01-07

package models

import "github.com/ec4x/engine/internal/ids"

// ShipState is a ship's damage state. A ship transitions Undamaged ->
// Crippled when its DS is reduced to 0 by a hit; a second hit while
// Crippled (or a critical) destroys it outright (§4.6).
type ShipState int

const (
	Undamaged ShipState = iota
	Crippled
)

func (s ShipState) String() string {
	if s == Crippled {
		return "Crippled"
	}
	return "Undamaged"
}

// ShipClass names a hull design. Combat stats are resolved from the class
// plus the owning house's tech at commission time and then frozen on the
// Ship record (§3: "stats frozen at commission by WEP tech").
type ShipClass struct {
	Name string

	// BaseAS/BaseDS are the attack and defense strength before tech bonus.
	BaseAS int
	BaseDS int

	// CC is the command cost this hull contributes to its squadron's total
	// (bounded by the squadron flagship's CR).
	CC int

	// CR is the command rating this hull grants when it serves as a
	// flagship; irrelevant for non-flagship members.
	CR int

	CargoCapacity int
	IsFighter     bool // combat retreat does not single fighters out: they withdraw with their side
	IsSpacelift   bool // destroyed if its escort retreats without it
	IsPlanetBreaker bool // subject to immediate capacity enforcement (§4.4e)

	MaintenanceCost int64
}

// Ship is a single commissioned hull.
type Ship struct {
	ID        ids.ShipId
	HouseID   ids.HouseId
	SquadronID ids.SquadronId

	Class ShipClass

	// AS/DS/WEP are frozen at commission: AS/DS derive from Class base
	// stats plus the WEP tech bonus in effect when the ship was built; WEP
	// records that frozen tech factor for reference.
	AS  int
	DS  int
	WEP int

	State ShipState

	CargoUsed int

	CommissionTurn int
}

// EffectiveAS returns attack strength after the crippled-ship penalty
// (half strength, §4.6) and the WEP tech multiplier already baked into AS.
func (s *Ship) EffectiveAS() float64 {
	as := float64(s.AS)
	if s.State == Crippled {
		as *= 0.5
	}
	return as
}

// ApplyHit reduces DS by one point, transitioning to Crippled when DS
// reaches zero. Returns true if this hit destroyed the ship (a hit landed
// while already Crippled).
func (s *Ship) ApplyHit() (destroyed bool) {
	if s.State == Crippled {
		return true
	}
	if s.DS > 0 {
		s.DS--
	}
	if s.DS <= 0 {
		s.State = Crippled
	}
	return false
}

// CargoSpace returns the remaining cargo capacity.
func (s *Ship) CargoSpace() int {
	return s.Class.CargoCapacity - s.CargoUsed
}

// CanAddCargo reports whether amount additional cargo fits.
func (s *Ship) CanAddCargo(amount int) bool {
	return amount >= 0 && s.CargoUsed+amount <= s.Class.CargoCapacity
}

// AddCargo loads amount units, returning false if it would overflow capacity.
func (s *Ship) AddCargo(amount int) bool {
	if !s.CanAddCargo(amount) {
		return false
	}
	s.CargoUsed += amount
	return true
}

// RemoveCargo unloads amount units, clamping at zero.
func (s *Ship) RemoveCargo(amount int) {
	s.CargoUsed -= amount
	if s.CargoUsed < 0 {
		s.CargoUsed = 0
	}
}
