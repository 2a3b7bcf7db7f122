// plan/wind.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"github.com/mmp/navlog/math"
	"github.com/mmp/navlog/wx"
)

// MinGroundSpeed is the floor applied to every wind-triangle solution;
// the performance model isn't meaningful below it.
const MinGroundSpeed = 50 // kt

// WindTriangleGS solves the wind triangle for ground speed along the
// given true course. When the crosswind component exceeds the airspeed
// the triangle has no solution, so we fall back to subtracting the
// headwind magnitude alone rather than returning NaN.
func WindTriangleGS(tas, course, windDir, windSpeed float32) float32 {
	delta := math.Radians(windDir - course)
	headwind := windSpeed * math.Cos(delta)
	crosswind := windSpeed * math.Sin(delta)

	var gs float32
	if crosswind*crosswind < tas*tas {
		gs = math.Sqrt(tas*tas-crosswind*crosswind) - headwind
	} else {
		gs = tas - math.Abs(headwind)
	}
	return max(gs, MinGroundSpeed)
}

// WindSummary is the distance-weighted average wind over a leg, for
// display alongside the computed ground speed. Valid is false when no
// wind data contributed (still-air plan).
type WindSummary struct {
	Direction float32 // degrees true, wind from
	Speed     float32 // kt
	Valid     bool
}

// crossTrackWeight biases segment boundaries toward samples that lie
// closer to the route centerline.
func crossTrackWeight(xtNM float32) float32 {
	return 1 / (1 + math.Abs(xtNM)/20)
}

// SliceSpan returns the route wind samples falling in the fraction range
// [a,b] of the full route, with their fractions renormalized so the
// sub-range spans [0,1]. Used to evaluate winds over a single leg of a
// multi-leg plan without refetching.
func SliceSpan(points []wx.PointWinds, a, b float32) []wx.PointWinds {
	if b <= a {
		return nil
	}
	var sub []wx.PointWinds
	for _, p := range points {
		if p.Fraction < a || p.Fraction > b {
			continue
		}
		p.Fraction = (p.Fraction - a) / (b - a)
		sub = append(sub, p)
	}
	return sub
}

// EffectiveGS integrates the wind-corrected ground speed over a route of
// the given length. Each sample owns a segment of the route, with the
// boundary between adjacent samples placed at their cross-track-weighted
// midpoint; flying each segment at its own wind-triangle ground speed and
// any uncovered distance at TAS, the effective speed is total distance
// over total time. Time-weighted rather than distance-weighted: a
// headwind costs more time than the same tailwind saves.
func EffectiveGS(points []wx.PointWinds, altitude, tas, course, distNM float32) (float32, WindSummary) {
	type segment struct {
		start, end float32 // route fractions
		gs         float32
		sample     wx.Sample
		haveWind   bool
	}

	var segs []segment
	for i, p := range points {
		var seg segment
		if len(points) == 1 {
			// a single sample represents the whole route
			seg.start, seg.end = 0, 1
		} else {
			if i == 0 {
				seg.start = p.Fraction
			} else {
				seg.start = weightedBoundary(points[i-1], p)
			}
			if i == len(points)-1 {
				seg.end = p.Fraction
			} else {
				seg.end = weightedBoundary(p, points[i+1])
			}
		}
		if seg.end <= seg.start {
			continue
		}

		seg.gs = tas
		if s, ok := p.Profile.SampleAt(altitude); ok {
			seg.gs = WindTriangleGS(tas, course, s.Direction, s.Speed)
			seg.sample = s
			seg.haveWind = true
		}
		segs = append(segs, seg)
	}

	if len(segs) == 0 || distNM <= 0 {
		return tas, WindSummary{}
	}

	var hours, covered float32
	var sumU, sumV, sumSpeed, windDist float32
	for _, seg := range segs {
		d := (seg.end - seg.start) * distNM
		hours += d / seg.gs
		covered += seg.end - seg.start

		if seg.haveWind {
			r := math.Radians(seg.sample.Direction)
			sumU += math.Sin(r) * seg.sample.Speed * d
			sumV += math.Cos(r) * seg.sample.Speed * d
			sumSpeed += seg.sample.Speed * d
			windDist += d
		}
	}
	if uncovered := (1 - covered) * distNM; uncovered > 0 {
		hours += uncovered / tas
	}

	gs := distNM / hours

	var ws WindSummary
	if windDist > 0 {
		ws.Direction = math.NormalizeHeading(math.Degrees(math.Atan2(sumU, sumV)))
		ws.Speed = sumSpeed / windDist
		ws.Valid = true
	}
	return gs, ws
}

// weightedBoundary places the segment boundary between two adjacent
// samples, pulled toward the one farther off the route centerline so the
// on-route sample owns more of the span.
func weightedBoundary(a, b wx.PointWinds) float32 {
	wa, wb := crossTrackWeight(a.CrossTrackNM), crossTrackWeight(b.CrossTrackNM)
	return a.Fraction + (b.Fraction-a.Fraction)*wa/(wa+wb)
}
