// plan/leg_test.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"testing"

	av "github.com/mmp/navlog/aviation"
	"github.com/mmp/navlog/math"
	"github.com/mmp/navlog/perf"
)

func TestComputeLegPhases(t *testing.T) {
	dep := av.Airport{Ident: "DEP", Elevation: 1000}
	dest := av.Airport{Ident: "DST", Elevation: 500}
	const dist, course, alt, gs = 600, 90, 27000, 260

	leg := ComputeLeg(dep, dest, dist, course, alt, gs)

	climb := perf.IntegrateClimb(dep.Elevation, alt)
	descent := perf.IntegrateDescent(alt, dest.Elevation)
	cruiseDist := dist - climb.DistanceNM - descent.DistanceNM
	if cruiseDist <= 0 {
		t.Fatal("test route too short for a cruise segment")
	}

	if math.Abs(leg.Cruise.DistanceNM-cruiseDist) > 0.01 {
		t.Errorf("cruise distance %.2f, expected %.2f", leg.Cruise.DistanceNM, cruiseDist)
	}
	wantTime := climb.TimeMinutes + descent.TimeMinutes + cruiseDist/gs*60
	if math.Abs(leg.TimeMinutes()-wantTime) > 0.01 {
		t.Errorf("total time %.2f, expected %.2f", leg.TimeMinutes(), wantTime)
	}
	wantFuel := climb.FuelGallons + descent.FuelGallons + perf.CruiseBurn(cruiseDist/gs) + perf.TaxiFuel
	if math.Abs(leg.FuelGallons()-wantFuel) > 0.01 {
		t.Errorf("total fuel %.2f, expected %.2f", leg.FuelGallons(), wantFuel)
	}
}

func TestComputeLegShortRoute(t *testing.T) {
	// Climb plus descent distance exceeds the route; no cruise segment,
	// but still a result rather than a negative distance.
	dep := av.Airport{Elevation: 0}
	dest := av.Airport{Elevation: 0}
	leg := ComputeLeg(dep, dest, 50, 90, 29000, 280)
	if leg.Cruise.DistanceNM != 0 || leg.Cruise.TimeMinutes != 0 {
		t.Errorf("short route cruise phase %+v, expected zero", leg.Cruise)
	}
	if leg.TimeMinutes() <= 0 {
		t.Errorf("short route total time %.2f", leg.TimeMinutes())
	}
}

func TestComputeLegDegenerate(t *testing.T) {
	ap := av.Airport{Ident: "SAME", Elevation: 1200}
	leg := ComputeLeg(ap, ap, 0, 0, 25000, 250)
	if leg.TimeMinutes() != 0 {
		t.Errorf("zero-distance leg time %.2f", leg.TimeMinutes())
	}
	if leg.Climb.DistanceNM != 0 || leg.Cruise.DistanceNM != 0 || leg.Descent.DistanceNM != 0 {
		t.Errorf("zero-distance leg has nonzero phase distances: %+v", leg)
	}
}
