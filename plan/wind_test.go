// plan/wind_test.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"testing"

	"github.com/mmp/navlog/math"
	"github.com/mmp/navlog/wx"
)

func TestWindTriangleGS(t *testing.T) {
	for _, c := range []struct {
		tas, course, dir, speed float32
		expected                float32
	}{
		{tas: 250, course: 90, dir: 0, speed: 0, expected: 250},    // no wind
		{tas: 250, course: 90, dir: 90, speed: 40, expected: 210},  // pure headwind
		{tas: 250, course: 90, dir: 270, speed: 40, expected: 290}, // pure tailwind
		{tas: 100, course: 0, dir: 90, speed: 120, expected: 100},  // crosswind exceeds TAS
		{tas: 60, course: 180, dir: 180, speed: 55, expected: 50},  // floored
	} {
		if gs := WindTriangleGS(c.tas, c.course, c.dir, c.speed); math.Abs(gs-c.expected) > 0.01 {
			t.Errorf("tas %.0f course %.0f wind %.0f@%.0f: got GS %.2f, expected %.2f",
				c.tas, c.course, c.dir, c.speed, gs, c.expected)
		}
	}

	// Crosswind-only is strictly slower than TAS.
	if gs := WindTriangleGS(250, 90, 180, 30); gs >= 250 {
		t.Errorf("crosswind-only GS %.2f not below TAS", gs)
	}
}

func pointAt(frac, xt, dir, speed float32) wx.PointWinds {
	return wx.PointWinds{
		Fraction:     frac,
		CrossTrackNM: xt,
		Profile:      wx.Profile{{Altitude: 25000, Direction: dir, Speed: speed}},
	}
}

func TestEffectiveGSNoData(t *testing.T) {
	gs, ws := EffectiveGS(nil, 25000, 250, 90, 500)
	if gs != 250 || ws.Valid {
		t.Errorf("no points: got GS %.1f valid %v, expected still-air 250", gs, ws.Valid)
	}

	// Points without profiles fly at TAS.
	pts := []wx.PointWinds{{Fraction: 0.5}}
	if gs, ws = EffectiveGS(pts, 25000, 250, 90, 500); gs != 250 || ws.Valid {
		t.Errorf("empty profiles: got GS %.1f valid %v", gs, ws.Valid)
	}
}

func TestEffectiveGSSegments(t *testing.T) {
	// Two on-centerline samples at fractions 0.25 and 0.75, both a 50 kt
	// headwind on an east course: 250 NM covered at GS 200, the uncovered
	// 250 NM at TAS 250.
	pts := []wx.PointWinds{
		pointAt(0.25, 0, 90, 50),
		pointAt(0.75, 0, 90, 50),
	}
	gs, ws := EffectiveGS(pts, 25000, 250, 90, 500)
	expected := float32(500) / (250.0/200 + 250.0/250)
	if math.Abs(gs-expected) > 0.1 {
		t.Errorf("got GS %.2f, expected %.2f", gs, expected)
	}
	if !ws.Valid || math.Abs(ws.Direction-90) > 0.01 || math.Abs(ws.Speed-50) > 0.01 {
		t.Errorf("wind summary %+v, expected 090@50", ws)
	}

	// A single sample owns the whole route.
	gs, _ = EffectiveGS(pts[:1], 25000, 250, 90, 500)
	if math.Abs(gs-200) > 0.1 {
		t.Errorf("single sample: got GS %.2f, expected 200", gs)
	}

	// Headwind costs more time than the same tailwind saves: half the
	// route at +50, half at -50 must come out below TAS.
	pts = []wx.PointWinds{
		pointAt(0, 0, 90, 50),  // headwind half
		pointAt(1, 0, 270, 50), // tailwind half
	}
	if gs, _ = EffectiveGS(pts, 25000, 250, 90, 500); gs >= 250 {
		t.Errorf("asymmetric wind cost: GS %.2f not below TAS", gs)
	}
}

func TestEffectiveGSCrossTrackWeighting(t *testing.T) {
	// An on-centerline headwind sample and a 20 NM-off calm sample: the
	// boundary shifts toward the off-route sample, so the headwind owns
	// two thirds of the span between them and GS drops below the
	// unweighted value.
	weighted := []wx.PointWinds{
		pointAt(0, 0, 90, 60),
		pointAt(1, 20, 90, 0),
	}
	unweighted := []wx.PointWinds{
		pointAt(0, 0, 90, 60),
		pointAt(1, 0, 90, 0),
	}
	wgs, _ := EffectiveGS(weighted, 25000, 250, 90, 500)
	ugs, _ := EffectiveGS(unweighted, 25000, 250, 90, 500)
	if wgs >= ugs {
		t.Errorf("cross-track weighting: got %.2f, expected below unweighted %.2f", wgs, ugs)
	}
}

func TestSliceSpan(t *testing.T) {
	pts := []wx.PointWinds{
		{Fraction: 0.1}, {Fraction: 0.4}, {Fraction: 0.6}, {Fraction: 0.9},
	}
	sub := SliceSpan(pts, 0.5, 1)
	if len(sub) != 2 {
		t.Fatalf("got %d points, expected 2", len(sub))
	}
	if math.Abs(sub[0].Fraction-0.2) > 0.001 || math.Abs(sub[1].Fraction-0.8) > 0.001 {
		t.Errorf("renormalized fractions %.3f %.3f, expected 0.2 0.8", sub[0].Fraction, sub[1].Fraction)
	}

	if sub = SliceSpan(pts, 0.5, 0.5); sub != nil {
		t.Errorf("empty span returned %d points", len(sub))
	}
}
