// wx/metar.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// This is as much of the METAR as the briefing output needs; surface
// conditions at the endpoints are informational only and the planner
// works fine without them.
type METAR struct {
	ICAO        string  `json:"icaoId"`
	ReportTime  string  `json:"reportTime"`
	Temperature float32 `json:"temp"` // Celsius
	Dewpoint    float32 `json:"dewp"` // Celsius
	WindSpeed   int     `json:"wspd"` // knots
	Altimeter   float32 `json:"altim"` // hPa
	RawText     string  `json:"rawOb"`

	WindDir *int `json:"-"` // nil for variable winds

	// The JSON comes back sort of wonky; we decode into this and then
	// clean it up into WindDir.
	WindDirRaw any `json:"wdir"` // number, or "VRB" for variable winds
}

func (m METAR) Altimeter_inHg() float32 {
	// Conversion formula (hectoPascal to Inch of Mercury): 29.92 * (hpa / 1013.2)
	return 0.02953 * m.Altimeter
}

func (m METAR) ShortString() string {
	// Try to peel off the ICAO code at the start and then all of the
	// remarks. A truncated observation can put "RMK" right after the
	// first token, leaving nothing in between.
	s := strings.IndexByte(m.RawText, ' ')
	e := strings.Index(m.RawText, "RMK")
	if s != -1 && e > s+1 {
		return strings.TrimSpace(m.RawText[s+1 : e])
	}
	return m.RawText
}

const metarAPI = `https://aviationweather.gov/api/data/metar?ids=%s&format=json`

// FetchMETARs returns current METARs for the given airports, keyed by
// ICAO id. Airports with no current observation are simply absent from
// the result.
func FetchMETARs(ctx context.Context, icao []string) (map[string]*METAR, error) {
	query := url.QueryEscape(strings.Join(icao, ","))
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf(metarAPI, query), nil)
	if err != nil {
		return nil, err
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	metars := make([]METAR, 0, len(icao))
	if err = json.NewDecoder(res.Body).Decode(&metars); err != nil {
		return nil, err
	}

	m := make(map[string]*METAR)
	for _, met := range metars {
		if d, ok := met.WindDirRaw.(float64); ok {
			dir := int(d)
			met.WindDir = &dir
		}
		m[met.ICAO] = &met
	}

	return m, nil
}
