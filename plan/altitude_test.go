// plan/altitude_test.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"slices"
	"testing"

	av "github.com/mmp/navlog/aviation"
	"github.com/mmp/navlog/math"
	"github.com/mmp/navlog/perf"
)

func TestLegalAltitudes(t *testing.T) {
	odd := []float32{25000, 27000, 29000, 31000}
	even := []float32{24000, 26000, 28000, 30000}
	for _, c := range []struct {
		course   float32
		expected []float32
	}{
		{course: 0, expected: odd},
		{course: 90, expected: odd},
		{course: 179.9, expected: odd},
		{course: 180, expected: even},
		{course: 270, expected: even},
		{course: 359.9, expected: even},
		{course: 450, expected: odd}, // normalized to 090
	} {
		if got := LegalAltitudes(c.course); !slices.Equal(got, c.expected) {
			t.Errorf("course %.1f: got %v, expected %v", c.course, got, c.expected)
		}
	}
}

func TestRankAltitudesStillAir(t *testing.T) {
	// Eastbound on the equator, no wind data: odd altitudes only, ground
	// speed equal to book TAS, sorted by total time.
	dep := av.Airport{Ident: "AAA", Location: math.Point2LL{0, 0}, Elevation: 100}
	dest := av.Airport{Ident: "BBB", Location: math.Point2LL{10, 0}, Elevation: 200}

	opts := RankAltitudes(dep, dest, nil)
	if len(opts) != 3 {
		t.Fatalf("got %d options, expected 3", len(opts))
	}

	odd := []float32{25000, 27000, 29000, 31000}
	for i, o := range opts {
		if !slices.Contains(odd, o.Altitude) {
			t.Errorf("option %d: illegal eastbound altitude %.0f", i, o.Altitude)
		}
		if tas := perf.CruiseTAS(o.Altitude); math.Abs(o.Leg.GroundSpeed-tas) > 0.01 {
			t.Errorf("option %d: still-air GS %.1f, expected book TAS %.1f", i, o.Leg.GroundSpeed, tas)
		}
		if o.Leg.Wind.Valid {
			t.Errorf("option %d: wind summary marked valid with no wind data", i)
		}
		if i > 0 && opts[i-1].Leg.TimeMinutes() > o.Leg.TimeMinutes() {
			t.Errorf("options not sorted by time: %.1f before %.1f",
				opts[i-1].Leg.TimeMinutes(), o.Leg.TimeMinutes())
		}
	}
}

func TestRankAltitudesWestbound(t *testing.T) {
	dep := av.Airport{Ident: "AAA", Location: math.Point2LL{10, 0}}
	dest := av.Airport{Ident: "BBB", Location: math.Point2LL{0, 0}}

	even := []float32{24000, 26000, 28000, 30000}
	for _, o := range RankAltitudes(dep, dest, nil) {
		if !slices.Contains(even, o.Altitude) {
			t.Errorf("illegal westbound altitude %.0f", o.Altitude)
		}
	}
}
