// wx/bulletin.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"strconv"
	"strings"

	"github.com/mmp/navlog/math"
	"github.com/mmp/navlog/util"
)

// Bulletin is a decoded winds-aloft bulletin: a wind profile per
// 3-letter station id.
type Bulletin struct {
	Stations map[string]Profile
}

// How far (in characters) a data token's center may sit from a header
// label's center and still be assigned to that column. Bulletins from
// some sources drift a character or two out of alignment.
const columnSlop = 4

// DecodeBulletin decodes a NOAA-style fixed-column winds-aloft bulletin:
// a header row of altitude labels and one data row per station. Tokens
// are assigned to altitude columns by nearest character position, which
// handles both well-aligned bulletins and ones whose columns have
// drifted; tokens too far from any label are rejected. Decoding problems
// are reported to e and the offending cell skipped; a partly-decodable
// bulletin is still useful.
func DecodeBulletin(text string, e *util.ErrorLogger) *Bulletin {
	b := &Bulletin{Stations: make(map[string]Profile)}

	type column struct {
		altitude float32
		center   int
	}
	var columns []column

	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			// SplitAfter yields a trailing empty element that a line
			// iterator would not.
			continue
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		toks := tokenizeWithPositions(line)
		if len(toks) == 0 {
			continue
		}

		if toks[0].text == "FT" {
			// Header row: the remaining tokens are altitude labels.
			columns = nil
			for _, t := range toks[1:] {
				alt, err := strconv.Atoi(t.text)
				if err != nil {
					e.ErrorString("%q: unparseable altitude label in bulletin header", t.text)
					continue
				}
				columns = append(columns, column{altitude: float32(alt), center: t.center()})
			}
			continue
		}

		if columns == nil {
			// Preamble before the header (product id, valid times).
			continue
		}

		station := toks[0].text
		if len(station) != 3 {
			continue
		}

		e.Push(station)
		var profile Profile
		for _, t := range toks[1:] {
			ci := -1
			for i, c := range columns {
				d := math.Abs(t.center() - c.center)
				if d <= columnSlop && (ci == -1 || d < math.Abs(t.center()-columns[ci].center)) {
					ci = i
				}
			}
			if ci == -1 {
				e.ErrorString("%q at position %d: not near any altitude column", t.text, t.start)
				continue
			}

			s, err := decodeWindCell(t.text, columns[ci].altitude)
			if err != nil {
				e.Error(err)
				continue
			}
			profile = append(profile, s)
		}
		e.Pop()

		if len(profile) > 0 {
			b.Stations[station] = profile
		}
	}

	return b
}

type token struct {
	text  string
	start int
}

func (t token) center() int { return t.start + len(t.text)/2 }

func tokenizeWithPositions(line string) []token {
	var toks []token
	i := 0
	for i < len(line) {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		start := i
		for i < len(line) && line[i] != ' ' {
			i++
		}
		if i > start {
			toks = append(toks, token{text: line[start:i], start: start})
		}
	}
	return toks
}

// decodeWindCell decodes one bulletin cell for the given altitude.
// The first four digits encode direction (tens of degrees) and speed;
// "9900" is light and variable. A direction pair of 51 or more means the
// high-speed encoding: subtract 50 from the direction pair and add 100 kt
// to the speed. An optional temperature follows, signed below 24000 ft;
// above that it is encoded unsigned and is always negative.
func decodeWindCell(cell string, altitude float32) (Sample, error) {
	s := Sample{Altitude: altitude}

	if len(cell) < 4 || !allDigits(cell[:4]) {
		return s, &cellError{cell, "malformed wind group"}
	}

	dd, _ := strconv.Atoi(cell[:2])
	ss, _ := strconv.Atoi(cell[2:4])

	if dd == 99 && ss == 0 {
		// Light and variable.
		s.Direction, s.Speed = 0, 0
	} else {
		if dd >= 51 {
			dd -= 50
			ss += 100
		}
		if dd > 36 {
			return s, &cellError{cell, "direction out of range"}
		}
		s.Direction = math.NormalizeHeading(float32(dd) * 10)
		s.Speed = float32(ss)
	}

	if rest := cell[4:]; rest != "" {
		var temp int
		var err error
		switch {
		case rest[0] == '+' || rest[0] == '-':
			temp, err = strconv.Atoi(rest)
		case allDigits(rest):
			// Unsigned temperature: implicitly negative (the 6-digit
			// high-altitude form).
			temp, err = strconv.Atoi(rest)
			temp = -temp
		default:
			err = &cellError{cell, "malformed temperature"}
		}
		if err != nil {
			return s, &cellError{cell, "malformed temperature"}
		}
		if altitude > 24000 && temp > 0 {
			temp = -temp
		}
		t := float32(temp)
		s.Temperature = &t
	}

	return s, nil
}

func allDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return len(s) > 0
}

type cellError struct {
	cell string
	msg  string
}

func (e *cellError) Error() string {
	return e.cell + ": " + e.msg
}
