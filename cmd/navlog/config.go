// cmd/navlog/config.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mmp/navlog/log"
)

// Config holds the settings that rarely change between runs; the config
// file saves retyping the data-file paths on every invocation.
// Command-line flags override it field by field.
type Config struct {
	AirportsFile   string `json:"airports"`
	FuelPricesFile string `json:"fuel_prices"`
	GriddedURL     string `json:"gridded_url"`
	BulletinURL    string `json:"bulletin_url"`
	WindSource     string `json:"wind_source"`
	Horizon        int    `json:"horizon"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "navlog", "config.json")
}

// LoadConfig reads the config file if present; a missing file just means
// defaults. A malformed file is reported and otherwise ignored.
func LoadConfig(lg *log.Logger) Config {
	c := Config{
		GriddedURL:  "https://nomads.ncep.noaa.gov/dods/gfs_0p25",
		BulletinURL: "https://aviationweather.gov/api/data/windtemp",
		WindSource:  "gridded",
		Horizon:     6,
	}

	p := configPath()
	if p == "" {
		return c
	}
	f, err := os.Open(p)
	if err != nil {
		return c
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&c); err != nil {
		lg.Warnf("%s: %v", p, err)
	}
	return c
}
