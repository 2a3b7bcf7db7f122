// math/heading.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// headings and directions

// NormalizeHeading reduces a heading to [0,360).
func NormalizeHeading(h float32) float32 {
	if h < 0 {
		return 360 - NormalizeHeading(-h)
	}
	return Mod(h, 360)
}

func OppositeHeading(h float32) float32 {
	return NormalizeHeading(h + 180)
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float32, b float32) float32 {
	var d float32
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// HeadingSignedTurn returns the signed degrees of turn from heading a to
// heading b, taking the shorter way around; the result is in (-180,180].
func HeadingSignedTurn(a, b float32) float32 {
	d := NormalizeHeading(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}

// LerpHeading interpolates between two headings taking the shorter arc
// around the circle, so that e.g. interpolating halfway between 350 and
// 010 gives 0, not 180.
func LerpHeading(x, a, b float32) float32 {
	return NormalizeHeading(a + x*HeadingSignedTurn(a, b))
}
