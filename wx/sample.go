// wx/sample.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package wx decodes upper-air wind data from the two wind collaborators
// (the fixed-column station bulletin and the gridded-model point query)
// into a common sample contract, interpolates it by altitude, and handles
// fetching it over the network.
package wx

import (
	"github.com/mmp/navlog/math"
)

// MetersPerSecondToKnots converts gridded-model wind components to knots.
const MetersPerSecondToKnots = 1.94384

// Sample is one wind observation at an altitude: direction is degrees
// true in the meteorological wind-from convention. Samples decoded from
// the gridded model also carry the raw u/v components (m/s), which are
// preferred for interpolation. Temperature is nil when the source didn't
// report one.
type Sample struct {
	Altitude    float32 // ft MSL
	Direction   float32 // degrees true, wind from, [0,360)
	Speed       float32 // kt
	Temperature *float32 // Celsius

	U, V          float32 // m/s, east and north components
	HasComponents bool
}

// DirectionSpeedFromUV converts east/north wind components in m/s to the
// wind-from direction in [0,360) and speed in knots.
func DirectionSpeedFromUV(u, v float32) (float32, float32) {
	speed := math.Sqrt(u*u+v*v) * MetersPerSecondToKnots
	dir := math.NormalizeHeading(math.Degrees(math.Atan2(-u, -v)))
	return dir, speed
}

// Profile is the wind profile at one geographic point: samples ordered by
// strictly-increasing altitude.
type Profile []Sample

// SampleAt interpolates the profile to the given altitude. Between two
// levels, gridded samples are interpolated in u/v component space (more
// numerically stable than interpolating the angle) and bulletin samples
// via linear speed and shorter-arc direction. Above the data the highest
// level is used as-is; below the lowest level a gridded profile tapers
// the speed linearly toward zero at the surface, since the model data
// doesn't extend there. Returns false for an empty profile.
func (p Profile) SampleAt(alt float32) (Sample, bool) {
	if len(p) == 0 {
		return Sample{}, false
	}

	if alt <= p[0].Altitude {
		s := p[0]
		if s.HasComponents && s.Altitude > 0 && alt < s.Altitude {
			scale := max(alt, 0) / s.Altitude
			s.Speed *= scale
			s.U *= scale
			s.V *= scale
		}
		s.Altitude = alt
		return s, true
	}
	if alt >= p[len(p)-1].Altitude {
		s := p[len(p)-1]
		s.Altitude = alt
		return s, true
	}

	i := 1
	for alt > p[i].Altitude {
		i++
	}
	s0, s1 := p[i-1], p[i]
	t := (alt - s0.Altitude) / (s1.Altitude - s0.Altitude)

	s := Sample{Altitude: alt}
	if s0.HasComponents && s1.HasComponents {
		s.U = math.Lerp(t, s0.U, s1.U)
		s.V = math.Lerp(t, s0.V, s1.V)
		s.HasComponents = true
		s.Direction, s.Speed = DirectionSpeedFromUV(s.U, s.V)
	} else {
		s.Speed = math.Lerp(t, s0.Speed, s1.Speed)
		s.Direction = math.LerpHeading(t, s0.Direction, s1.Direction)
	}
	if s0.Temperature != nil && s1.Temperature != nil {
		temp := math.Lerp(t, *s0.Temperature, *s1.Temperature)
		s.Temperature = &temp
	}
	return s, true
}

// AltitudeForPressure converts a pressure level in millibars to the
// corresponding standard-atmosphere pressure altitude in feet.
func AltitudeForPressure(mb float32) float32 {
	return 145366.45 * (1 - math.Pow(mb/1013.25, 0.190284))
}
