// perf/perf.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package perf holds the performance model for the airframe: the
// altitude-indexed book-performance table, piecewise-linear interpolation
// between its rows, climb and descent integration, and the fuel-planning
// constants that the safety checks are built on.
package perf

import (
	"github.com/mmp/navlog/math"
)

// Row gives the book performance numbers at one altitude. Rows in the
// table must be ordered by strictly-increasing altitude.
type Row struct {
	Altitude       float32 // ft MSL
	ClimbIAS       float32 // kt
	ClimbRate      float32 // ft/min
	CruiseTAS      float32 // kt
	CruiseFuelFlow float32 // gal/hr
	DescentIAS     float32 // kt
}

// Book is the performance table for the airframe, 0-31000 ft.
var Book = []Row{
	{Altitude: 0, ClimbIAS: 124, ClimbRate: 2000, CruiseTAS: 185, CruiseFuelFlow: 42, DescentIAS: 180},
	{Altitude: 4000, ClimbIAS: 124, ClimbRate: 1900, CruiseTAS: 196, CruiseFuelFlow: 40, DescentIAS: 180},
	{Altitude: 8000, ClimbIAS: 124, ClimbRate: 1750, CruiseTAS: 208, CruiseFuelFlow: 39, DescentIAS: 185},
	{Altitude: 12000, ClimbIAS: 122, ClimbRate: 1600, CruiseTAS: 222, CruiseFuelFlow: 38, DescentIAS: 190},
	{Altitude: 16000, ClimbIAS: 120, ClimbRate: 1400, CruiseTAS: 238, CruiseFuelFlow: 36, DescentIAS: 195},
	{Altitude: 20000, ClimbIAS: 118, ClimbRate: 1200, CruiseTAS: 255, CruiseFuelFlow: 34, DescentIAS: 200},
	{Altitude: 24000, ClimbIAS: 115, ClimbRate: 1000, CruiseTAS: 272, CruiseFuelFlow: 33, DescentIAS: 205},
	{Altitude: 26000, ClimbIAS: 113, ClimbRate: 850, CruiseTAS: 280, CruiseFuelFlow: 32, DescentIAS: 205},
	{Altitude: 28000, ClimbIAS: 112, ClimbRate: 700, CruiseTAS: 287, CruiseFuelFlow: 31, DescentIAS: 205},
	{Altitude: 30000, ClimbIAS: 110, ClimbRate: 550, CruiseTAS: 292, CruiseFuelFlow: 30, DescentIAS: 205},
	{Altitude: 31000, ClimbIAS: 109, ClimbRate: 480, CruiseTAS: 294, CruiseFuelFlow: 29.5, DescentIAS: 205},
}

const (
	// Empirical corrections reconciling book climb/descent performance
	// with what the airplane actually does.
	ClimbFactor   = 1.40
	DescentFactor = 1.12

	// Descent is planned at a constant rate.
	DescentRate = 1500 // ft/min

	// Cruise burn is two-tier: the first hour (climb power, richer
	// mixture) burns at a higher rate than subsequent hours.
	FirstHourBurn = 37 // gal
	LaterBurn     = 31 // gal/hr

	TaxiFuel = 3 // gal per flight

	UsableFuel  = 150 // gal
	ReserveFuel = 24  // gal required at landing
)

// Lookup returns the book performance at the given altitude,
// piecewise-linearly interpolated between adjacent table rows. Below the
// lowest row or above the highest, the boundary row's values are used;
// there is no extrapolation.
func Lookup(alt float32) Row {
	if alt <= Book[0].Altitude {
		return Book[0]
	}
	if alt >= Book[len(Book)-1].Altitude {
		return Book[len(Book)-1]
	}

	i := 1
	for alt > Book[i].Altitude {
		i++
	}

	r0, r1 := Book[i-1], Book[i]
	t := (alt - r0.Altitude) / (r1.Altitude - r0.Altitude)
	return Row{
		Altitude:       alt,
		ClimbIAS:       math.Lerp(t, r0.ClimbIAS, r1.ClimbIAS),
		ClimbRate:      math.Lerp(t, r0.ClimbRate, r1.ClimbRate),
		CruiseTAS:      math.Lerp(t, r0.CruiseTAS, r1.CruiseTAS),
		CruiseFuelFlow: math.Lerp(t, r0.CruiseFuelFlow, r1.CruiseFuelFlow),
		DescentIAS:     math.Lerp(t, r0.DescentIAS, r1.DescentIAS),
	}
}

// CruiseTAS returns the book true airspeed at the given cruise altitude.
func CruiseTAS(alt float32) float32 {
	return Lookup(alt).CruiseTAS
}

// Phase accumulates the time, fuel, and distance of one phase of flight
// (climb, cruise, or descent).
type Phase struct {
	TimeMinutes float32
	FuelGallons float32
	DistanceNM  float32
}

func (p Phase) Add(q Phase) Phase {
	return Phase{
		TimeMinutes: p.TimeMinutes + q.TimeMinutes,
		FuelGallons: p.FuelGallons + q.FuelGallons,
		DistanceNM:  p.DistanceNM + q.DistanceNM,
	}
}

// IntegrateClimb integrates the climb from one altitude to another in
// 1000 ft bands, evaluating the climb rate and fuel flow at each band's
// midpoint. If to <= from the climb contributes nothing; that's the
// degenerate case of a cruise altitude at or below field elevation, not
// an error.
func IntegrateClimb(from, to float32) Phase {
	var p Phase
	for alt := from; alt < to; alt += 1000 {
		top := min(alt+1000, to)
		r := Lookup((alt + top) / 2)

		dt := (top - alt) / r.ClimbRate // minutes
		p.TimeMinutes += dt
		p.FuelGallons += r.CruiseFuelFlow * dt / 60
		p.DistanceNM += r.ClimbIAS * dt / 60
	}

	p.TimeMinutes *= ClimbFactor
	p.FuelGallons *= ClimbFactor
	p.DistanceNM *= ClimbFactor
	return p
}

// IntegrateDescent integrates the descent from one altitude down to
// another, again in 1000 ft bands at a constant planned descent rate,
// taking the descent IAS and fuel flow from the band midpoint.
func IntegrateDescent(from, to float32) Phase {
	var p Phase
	for alt := from; alt > to; alt -= 1000 {
		bottom := max(alt-1000, to)
		r := Lookup((alt + bottom) / 2)

		dt := (alt - bottom) / DescentRate // minutes
		p.TimeMinutes += dt
		p.FuelGallons += r.CruiseFuelFlow * dt / 60
		p.DistanceNM += r.DescentIAS * dt / 60
	}

	p.TimeMinutes *= DescentFactor
	p.FuelGallons *= DescentFactor
	p.DistanceNM *= DescentFactor
	return p
}

// CruiseBurn returns the gallons burned in cruise over the given number
// of hours: the first hour at the higher rate, the rest at the lower.
func CruiseBurn(hours float32) float32 {
	if hours <= 0 {
		return 0
	}
	return FirstHourBurn*min(hours, 1) + LaterBurn*max(hours-1, 0)
}

// LegSafe reports whether a leg of the given duration can be flown with
// the landing reserve intact, starting from full usable fuel.
func LegSafe(hours float32) bool {
	return UsableFuel-CruiseBurn(hours) >= ReserveFuel
}
