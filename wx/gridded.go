// wx/gridded.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// The gridded model's missing-data marker.
const griddedFillValue = 9.999e20

// DecodeGridded decodes a gridded-model point-query response into a wind
// profile. The response is the model server's ASCII form: one block per
// variable, a header line naming the variable and its dimensions and then
// rows of comma-separated values, with the coordinate variables (we only
// need "lev", the pressure levels in millibars) at the end:
//
//	ugrdprs, [1][21]
//	[0], -2.51, -4.38, ...
//	vgrdprs, [1][21]
//	[0], 3.05, 2.96, ...
//	tmpprs, [1][21]
//	[0], 288.1, 285.4, ...
//	lev, [21]
//	1000, 975, 950, ...
//
// Levels where either wind component is the fill value are skipped; the
// model reports fill below ground at high-elevation grid cells.
func DecodeGridded(text string) (Profile, error) {
	vars := make(map[string][]float32)

	var current string
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			// SplitAfter yields a trailing empty element that a line
			// iterator would not.
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			current = ""
			continue
		}

		if name, ok := parseVarHeader(line); ok {
			current = name
			continue
		}
		if current == "" {
			continue
		}

		// A data row, optionally prefixed with an index like "[0],".
		rest := line
		if strings.HasPrefix(rest, "[") {
			if i := strings.Index(rest, ","); i >= 0 {
				rest = rest[i+1:]
			}
		}
		for _, f := range strings.Split(rest, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("%s: unparseable value %q in point response", current, f)
			}
			vars[current] = append(vars[current], float32(v))
		}
	}

	lev, u, v := vars["lev"], vars["ugrdprs"], vars["vgrdprs"]
	if len(lev) == 0 || len(u) != len(lev) || len(v) != len(lev) {
		return nil, fmt.Errorf("point response missing wind levels: %d lev, %d u, %d v",
			len(lev), len(u), len(v))
	}
	temp := vars["tmpprs"] // optional

	var p Profile
	for i := range lev {
		if u[i] >= griddedFillValue || v[i] >= griddedFillValue {
			continue
		}

		s := Sample{
			Altitude:      AltitudeForPressure(lev[i]),
			U:             u[i],
			V:             v[i],
			HasComponents: true,
		}
		s.Direction, s.Speed = DirectionSpeedFromUV(s.U, s.V)

		if i < len(temp) && temp[i] < griddedFillValue {
			c := temp[i] - 273.15 // Kelvin to Celsius
			s.Temperature = &c
		}

		p = append(p, s)
	}

	slices.SortFunc(p, func(a, b Sample) int {
		if a.Altitude < b.Altitude {
			return -1
		} else if a.Altitude > b.Altitude {
			return 1
		}
		return 0
	})

	return p, nil
}

// parseVarHeader matches lines like "ugrdprs, [1][21]" or "lev, [21]".
func parseVarHeader(line string) (string, bool) {
	name, dims, ok := strings.Cut(line, ",")
	if !ok {
		return "", false
	}
	dims = strings.TrimSpace(dims)
	if !strings.HasPrefix(dims, "[") || !strings.HasSuffix(dims, "]") {
		return "", false
	}
	for _, ch := range dims {
		if ch != '[' && ch != ']' && (ch < '0' || ch > '9') {
			return "", false
		}
	}
	name = strings.TrimSpace(name)
	if name == "" || !isIdentifier(name) {
		return "", false
	}
	return name, true
}

func isIdentifier(s string) bool {
	for _, ch := range s {
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') && ch != '_' {
			return false
		}
	}
	return true
}
