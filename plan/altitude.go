// plan/altitude.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"slices"

	av "github.com/mmp/navlog/aviation"
	"github.com/mmp/navlog/math"
	"github.com/mmp/navlog/perf"
	"github.com/mmp/navlog/wx"
)

// IFR cruise altitudes in the evaluated band: odd flight levels
// eastbound, even westbound.
var (
	eastboundAltitudes = []float32{25000, 27000, 29000, 31000}
	westboundAltitudes = []float32{24000, 26000, 28000, 30000}
)

// maxAltitudeOptions bounds how many ranked options are reported.
const maxAltitudeOptions = 3

// LegalAltitudes returns the IFR-legal cruise altitudes for a true
// course: odd flight levels for courses in [0,180), even otherwise.
func LegalAltitudes(course float32) []float32 {
	if c := math.NormalizeHeading(course); c < 180 {
		return eastboundAltitudes
	}
	return westboundAltitudes
}

// AltitudeOption is one candidate cruise altitude with its computed leg.
type AltitudeOption struct {
	Altitude float32
	Leg      Leg
}

// RankAltitudes evaluates every legal cruise altitude for the direct
// route, correcting book TAS for the given route winds (nil winds
// degrades to a still-air plan), and returns the fastest options sorted
// by total time, at most three.
func RankAltitudes(dep, dest av.Airport, winds []wx.PointWinds) []AltitudeOption {
	dist := math.NMDistance2LL(dep.Location, dest.Location)
	course := math.Bearing2LL(dep.Location, dest.Location)

	var opts []AltitudeOption
	for _, alt := range LegalAltitudes(course) {
		tas := perf.CruiseTAS(alt)
		gs, ws := EffectiveGS(winds, alt, tas, course, dist)

		leg := ComputeLeg(dep, dest, dist, course, alt, gs)
		leg.Wind = ws
		opts = append(opts, AltitudeOption{Altitude: alt, Leg: leg})
	}

	slices.SortFunc(opts, func(a, b AltitudeOption) int {
		if d := a.Leg.TimeMinutes() - b.Leg.TimeMinutes(); d < 0 {
			return -1
		} else if d > 0 {
			return 1
		}
		return 0
	})
	if len(opts) > maxAltitudeOptions {
		opts = opts[:maxAltitudeOptions]
	}
	return opts
}
