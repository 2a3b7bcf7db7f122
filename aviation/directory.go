// aviation/directory.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mmp/navlog/log"
	"github.com/mmp/navlog/math"

	"github.com/klauspost/compress/zstd"
)

// CSVDirectory is a Directory backed by an OurAirports-style airports
// table, stored zstd-compressed. All lookups after loading are in-memory;
// spatial scans go through a kd-tree over the airport locations.
type CSVDirectory struct {
	airports []Airport
	byCode   map[string]int
	tree     *math.KDNode
}

// LoadCSVDirectory reads a zstd-compressed airports CSV from r. Rows with
// missing or unparseable coordinates are skipped with a warning; a
// missing elevation is common for small fields and is taken as zero.
func LoadCSVDirectory(r io.Reader, lg *log.Logger) (*CSVDirectory, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening zstd reader: %w", err)
	}
	defer zr.Close()

	cr := csv.NewReader(zr)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	// Find the index of each field we need.
	fields := []string{"ident", "type", "name", "latitude_deg", "longitude_deg",
		"elevation_ft", "iso_region", "municipality", "gps_code", "iata_code", "local_code"}
	idx := make(map[string]int)
	for _, f := range fields {
		found := false
		for hi, h := range header {
			if f == strings.TrimSpace(h) {
				idx[f] = hi
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%s: field missing from airports CSV header", f)
		}
	}

	d := &CSVDirectory{byCode: make(map[string]int)}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("reading airports CSV: %w", err)
		}

		get := func(f string) string { return strings.TrimSpace(record[idx[f]]) }

		lat, err0 := strconv.ParseFloat(get("latitude_deg"), 32)
		lon, err1 := strconv.ParseFloat(get("longitude_deg"), 32)
		if err0 != nil || err1 != nil {
			lg.Warnf("%s: skipping airport with bad coordinates", get("ident"))
			continue
		}

		var elev float64
		if e := get("elevation_ft"); e != "" {
			if elev, err = strconv.ParseFloat(e, 32); err != nil {
				lg.Warnf("%s: bad elevation %q", get("ident"), e)
				elev = 0
			}
		}

		ap := Airport{
			Ident:        get("ident"),
			ICAO:         get("gps_code"),
			IATA:         get("iata_code"),
			Name:         get("name"),
			Municipality: get("municipality"),
			Region:       get("iso_region"),
			Type:         get("type"),
			Location:     math.Point2LL{float32(lon), float32(lat)},
			Elevation:    float32(elev),
		}

		i := len(d.airports)
		d.airports = append(d.airports, ap)

		// Index every alias; first writer wins so idents take priority
		// over IATA codes that happen to collide.
		for _, code := range []string{ap.Ident, ap.ICAO, ap.IATA, get("local_code")} {
			if code == "" {
				continue
			}
			code = strings.ToUpper(code)
			if _, ok := d.byCode[code]; !ok {
				d.byCode[code] = i
			}
		}
	}

	locs := make([]math.Point2LL, len(d.airports))
	for i, ap := range d.airports {
		locs[i] = ap.Location
	}
	d.tree = math.BuildKDTree(locs)

	lg.Infof("loaded %d airports from directory", len(d.airports))

	return d, nil
}

func (d *CSVDirectory) Lookup(code string) (Airport, error) {
	if i, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return d.airports[i], nil
	}
	return Airport{}, fmt.Errorf("%s: %w", code, ErrUnknownAirport)
}

func (d *CSVDirectory) ScanBox(lo, hi math.Point2LL) []Airport {
	var aps []Airport
	if d.tree != nil {
		d.tree.SearchBox(lo, hi, func(id int) {
			aps = append(aps, d.airports[id])
		})
	}
	return aps
}
