// math/math_test.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

var (
	// longitude, latitude
	kjfk = Point2LL{-73.7787, 40.6399}
	klax = Point2LL{-118.4085, 33.9425}
	kden = Point2LL{-104.6732, 39.8617}
)

func TestNMDistance2LL(t *testing.T) {
	if d := NMDistance2LL(kjfk, kjfk); d != 0 {
		t.Errorf("distance from a point to itself: got %f, want 0", d)
	}

	dab := NMDistance2LL(kjfk, klax)
	dba := NMDistance2LL(klax, kjfk)
	if Abs(dab-dba) > 1e-3 {
		t.Errorf("distance not symmetric: %f vs %f", dab, dba)
	}

	// Published great-circle distance KJFK-KLAX is about 2145 nm.
	if dab < 2130 || dab > 2160 {
		t.Errorf("KJFK-KLAX distance %f out of expected range", dab)
	}
}

func TestBearing2LL(t *testing.T) {
	// Due east along the equator.
	if b := Bearing2LL(Point2LL{0, 0}, Point2LL{1, 0}); Abs(b-90) > 0.01 {
		t.Errorf("equatorial eastbound bearing: got %f, want 90", b)
	}
	// Due north.
	if b := Bearing2LL(Point2LL{0, 0}, Point2LL{0, 1}); b != 0 && Abs(b-360) > 0.01 {
		t.Errorf("northbound bearing: got %f, want 0", b)
	}

	pts := []Point2LL{kjfk, klax, kden, {0, 0}, {-179.9, 60}, {179.9, -60}}
	for _, a := range pts {
		for _, b := range pts {
			if a == b {
				continue
			}
			br := Bearing2LL(a, b)
			if br < 0 || br >= 360 {
				t.Errorf("bearing %v -> %v = %f outside [0,360)", a, b, br)
			}
		}
	}
}

func TestIntermediatePoint2LL(t *testing.T) {
	if p := IntermediatePoint2LL(kjfk, klax, 0); Abs(p[0]-kjfk[0]) > 1e-4 || Abs(p[1]-kjfk[1]) > 1e-4 {
		t.Errorf("t=0 should give the first point: got %v", p)
	}
	if p := IntermediatePoint2LL(kjfk, klax, 1); Abs(p[0]-klax[0]) > 1e-4 || Abs(p[1]-klax[1]) > 1e-4 {
		t.Errorf("t=1 should give the second point: got %v", p)
	}

	// The midpoint should be equidistant from both ends.
	mid := IntermediatePoint2LL(kjfk, klax, 0.5)
	da, db := NMDistance2LL(kjfk, mid), NMDistance2LL(mid, klax)
	if Abs(da-db) > 0.5 {
		t.Errorf("midpoint not equidistant: %f vs %f", da, db)
	}

	// Degenerate: coincident endpoints.
	if p := IntermediatePoint2LL(kjfk, kjfk, 0.5); p != kjfk {
		t.Errorf("coincident endpoints: got %v, want %v", p, kjfk)
	}
}

func TestCrossAlongTrack(t *testing.T) {
	// Eastbound route along the equator; a point one degree north at the
	// route's midpoint is 60 nm left of course (negative cross-track) and
	// about 60 nm along it.
	a, b := Point2LL{0, 0}, Point2LL{2, 0}
	p := Point2LL{1, 1}

	xt := CrossTrackDistance2LL(p, a, b)
	if xt >= 0 || Abs(Abs(xt)-60) > 1 {
		t.Errorf("cross-track: got %f, want about -60", xt)
	}

	at := AlongTrackDistance2LL(p, a, b)
	if Abs(at-60) > 1 {
		t.Errorf("along-track: got %f, want about 60", at)
	}

	// A point behind the start projects to a negative along-track distance.
	behind := Point2LL{-1, 0}
	if at := AlongTrackDistance2LL(behind, a, b); at >= 0 {
		t.Errorf("point behind start: along-track %f should be negative", at)
	}

	// On-route point: zero cross-track.
	on := IntermediatePoint2LL(a, b, 0.25)
	if xt := CrossTrackDistance2LL(on, a, b); Abs(xt) > 0.01 {
		t.Errorf("on-route cross-track: got %f, want 0", xt)
	}
}

func TestLerpHeading(t *testing.T) {
	testCases := []struct {
		x, a, b, want float32
	}{
		{0.5, 350, 10, 0},
		{0.5, 10, 350, 0},
		{0, 350, 10, 350},
		{1, 350, 10, 10},
		{0.5, 90, 180, 135},
		{0.25, 180, 190, 182.5},
	}
	for _, tc := range testCases {
		if got := LerpHeading(tc.x, tc.a, tc.b); Abs(got-tc.want) > 0.01 {
			t.Errorf("LerpHeading(%f, %f, %f) = %f, want %f", tc.x, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestKDTreeSearchBox(t *testing.T) {
	pts := []Point2LL{
		{-104, 39}, {-100, 38}, {-96, 37}, {-90, 36}, {-104.5, 39.5},
		{-80, 30}, {-120, 45}, {-99, 39.9}, {-101, 37.1},
	}
	tree := BuildKDTree(pts)

	lo, hi := Point2LL{-105, 36.5}, Point2LL{-95, 40}

	got := make(map[int]bool)
	tree.SearchBox(lo, hi, func(id int) { got[id] = true })

	for i, p := range pts {
		want := p[0] >= lo[0] && p[0] <= hi[0] && p[1] >= lo[1] && p[1] <= hi[1]
		if got[i] != want {
			t.Errorf("point %d %v: in box %v, want %v", i, p, got[i], want)
		}
	}
}
