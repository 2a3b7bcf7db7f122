// wx/gridded_test.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"testing"

	"github.com/mmp/navlog/math"
)

const testPointResponse = `ugrdprs, [1][5]
[0], -10.0, -7.5, 9.999e+20, 0.0, 12.0
vgrdprs, [1][5]
[0], 0.0, -7.5, 9.999e+20, -5.0, 0.0
tmpprs, [1][5]
[0], 288.15, 279.0, 9.999e+20, 250.0, 230.0
lev, [5]
1000, 850, 700, 500, 250
`

func TestDecodeGridded(t *testing.T) {
	p, err := DecodeGridded(testPointResponse)
	if err != nil {
		t.Fatalf("decoding point response: %v", err)
	}

	// The 700 mb level is all fill values and must be skipped.
	if len(p) != 4 {
		t.Fatalf("decoded %d levels, want 4", len(p))
	}

	// Altitudes increase with decreasing pressure.
	for i := 1; i < len(p); i++ {
		if p[i].Altitude <= p[i-1].Altitude {
			t.Errorf("altitudes not increasing: %f then %f", p[i-1].Altitude, p[i].Altitude)
		}
	}

	// 1000 mb: u=-10, v=0 is a pure east wind: direction 090 at about 19.4 kt.
	if math.Abs(p[0].Direction-90) > 0.1 {
		t.Errorf("east wind direction: got %f, want 90", p[0].Direction)
	}
	if math.Abs(p[0].Speed-10*MetersPerSecondToKnots) > 0.01 {
		t.Errorf("east wind speed: got %f", p[0].Speed)
	}
	if !p[0].HasComponents || p[0].U != -10 || p[0].V != 0 {
		t.Errorf("components not preserved: %+v", p[0])
	}

	// 850 mb: u=v=-7.5 is a northeast wind: direction 045.
	if math.Abs(p[1].Direction-45) > 0.1 {
		t.Errorf("northeast wind direction: got %f, want 45", p[1].Direction)
	}

	// 500 mb: u=0, v=-5 is a pure north wind: direction 0 (or 360).
	d := p[2].Direction
	if d > 180 {
		d -= 360
	}
	if math.Abs(d) > 0.1 {
		t.Errorf("north wind direction: got %f, want 0", p[2].Direction)
	}

	// Temperatures converted from Kelvin.
	if p[0].Temperature == nil || math.Abs(*p[0].Temperature-15) > 0.01 {
		t.Errorf("1000 mb temperature: got %v, want 15 C", p[0].Temperature)
	}

	// Standard-atmosphere altitude for 500 mb is about 18300 ft.
	if a := p[2].Altitude; a < 17800 || a > 18800 {
		t.Errorf("500 mb altitude: got %f", a)
	}
}

func TestDecodeGriddedErrors(t *testing.T) {
	if _, err := DecodeGridded(""); err == nil {
		t.Error("empty response should fail")
	}

	// Mismatched level/component counts.
	if _, err := DecodeGridded("ugrdprs, [1][2]\n[0], 1.0, 2.0\nvgrdprs, [1][2]\n[0], 1.0, 2.0\nlev, [3]\n1000, 850, 700\n"); err == nil {
		t.Error("mismatched counts should fail")
	}

	if _, err := DecodeGridded("ugrdprs, [1][1]\n[0], bogus\n"); err == nil {
		t.Error("unparseable value should fail")
	}
}

func TestAltitudeForPressure(t *testing.T) {
	// Sea level and the tropopause, roughly.
	if a := AltitudeForPressure(1013.25); math.Abs(a) > 1 {
		t.Errorf("1013.25 mb: got %f, want 0", a)
	}
	if a := AltitudeForPressure(250); a < 33000 || a > 35500 {
		t.Errorf("250 mb: got %f, want about 34000", a)
	}
}
