// plan/leg.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	av "github.com/mmp/navlog/aviation"
	"github.com/mmp/navlog/math"
	"github.com/mmp/navlog/perf"
)

// Leg is one computed leg of a flight plan: climb, cruise at the given
// altitude and ground speed, and descent, between two airports.
type Leg struct {
	From, To    av.Airport
	DistanceNM  float32
	Course      float32 // degrees true
	Altitude    float32 // ft MSL
	GroundSpeed float32 // kt, cruise
	Wind        WindSummary

	Climb, Cruise, Descent perf.Phase
}

// TimeMinutes returns the leg's total flight time.
func (l Leg) TimeMinutes() float32 {
	return l.Climb.TimeMinutes + l.Cruise.TimeMinutes + l.Descent.TimeMinutes
}

func (l Leg) Hours() float32 {
	return l.TimeMinutes() / 60
}

// FuelGallons returns the leg's total fuel including the taxi allowance.
func (l Leg) FuelGallons() float32 {
	return l.Climb.FuelGallons + l.Cruise.FuelGallons + l.Descent.FuelGallons + perf.TaxiFuel
}

// ComputeLeg builds the leg from departure elevation to destination
// elevation over the given distance and course, cruising at the given
// altitude and ground speed. It always produces a result: a zero-distance
// leg comes back with all phases zero, and a route too short for the full
// climb and descent simply gets no cruise segment.
func ComputeLeg(from, to av.Airport, distNM, course, altitude, gs float32) Leg {
	l := Leg{
		From:        from,
		To:          to,
		DistanceNM:  distNM,
		Course:      course,
		Altitude:    altitude,
		GroundSpeed: gs,
	}
	if distNM <= 0 {
		return l
	}

	l.Climb = perf.IntegrateClimb(from.Elevation, altitude)
	l.Descent = perf.IntegrateDescent(altitude, to.Elevation)

	cruiseDist := max(float32(0), distNM-l.Climb.DistanceNM-l.Descent.DistanceNM)
	cruiseHours := cruiseDist / gs
	l.Cruise = perf.Phase{
		TimeMinutes: cruiseHours * 60,
		FuelGallons: perf.CruiseBurn(cruiseHours),
		DistanceNM:  cruiseDist,
	}
	return l
}

// ComputeDirectLeg is ComputeLeg over the great circle between the two
// airports.
func ComputeDirectLeg(from, to av.Airport, altitude, gs float32) Leg {
	dist := math.NMDistance2LL(from.Location, to.Location)
	course := math.Bearing2LL(from.Location, to.Location)
	return ComputeLeg(from, to, dist, course, altitude, gs)
}
