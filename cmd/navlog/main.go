// cmd/navlog/main.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// navlog plans a flight between two airports: ranked cruise altitudes
// with wind-corrected times, and fuel stops when the route is beyond
// safe nonstop range.

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	av "github.com/mmp/navlog/aviation"
	"github.com/mmp/navlog/log"
	"github.com/mmp/navlog/plan"
	"github.com/mmp/navlog/util"
	"github.com/mmp/navlog/wx"
)

var (
	logLevel   = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir     = flag.String("logdir", "", "log file directory")
	airports   = flag.String("airports", "", "path to zstd-compressed OurAirports airports.csv")
	fuelPrices = flag.String("fuelprices", "", "path to JSON fuel price table")
	windSource = flag.String("winds", "", "wind source: gridded, bulletin, or none")
	horizon    = flag.Int("horizon", 0, "winds-aloft forecast horizon: 6, 12, or 24 hours")
	showMETAR  = flag.Bool("metar", false, "show current METARs for departure and destination")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: navlog [flags] <departure> <destination>\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
	}

	lg := log.New(*logLevel, *logDir)
	cfg := LoadConfig(lg)
	if *airports != "" {
		cfg.AirportsFile = *airports
	}
	if *fuelPrices != "" {
		cfg.FuelPricesFile = *fuelPrices
	}
	if *windSource != "" {
		cfg.WindSource = *windSource
	}
	if *horizon != 0 {
		cfg.Horizon = *horizon
	}

	if cfg.AirportsFile == "" {
		fmt.Fprintf(os.Stderr, "navlog: no airports file; pass -airports or set it in the config file\n")
		os.Exit(1)
	}
	f, err := os.Open(cfg.AirportsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "navlog: %v\n", err)
		os.Exit(1)
	}
	dir, err := av.LoadCSVDirectory(f, lg)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "navlog: %s: %v\n", cfg.AirportsFile, err)
		os.Exit(1)
	}

	var fuel av.FuelSource
	if cfg.FuelPricesFile != "" {
		pf, err := os.Open(cfg.FuelPricesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "navlog: %v\n", err)
			os.Exit(1)
		}
		sfs, err := av.LoadStaticFuelSource(pf)
		pf.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "navlog: %s: %v\n", cfg.FuelPricesFile, err)
			os.Exit(1)
		}
		fuel = sfs
	}

	var winds plan.WindSource
	switch cfg.WindSource {
	case "gridded":
		winds = wx.NewGriddedClient(cfg.GriddedURL, lg)
	case "bulletin":
		winds = wx.NewBulletinSource(cfg.BulletinURL, cfg.Horizon, dir, lg)
	case "none":
	default:
		fmt.Fprintf(os.Stderr, "navlog: %s: wind source must be gridded, bulletin, or none\n", cfg.WindSource)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	session := plan.NewSession(ctx, dir, winds, fuel, lg)
	p, err := session.Plan(flag.Arg(0), flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "navlog: %v\n", err)
		os.Exit(1)
	}

	printPlan(os.Stdout, p)

	if *showMETAR {
		printMETARs(ctx, p.Departure, p.Destination)
	}
}

func formatHM(minutes float32) string {
	m := int(minutes + 0.5)
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}

func formatWind(ws plan.WindSummary) string {
	if !ws.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%03.0f@%.0f", ws.Direction, ws.Speed)
}

func printPlan(w *os.File, p *plan.Plan) {
	fmt.Fprintf(w, "%s (%s) -> %s (%s): %.0f nm, course %03.0f\n\n",
		p.Departure.Ident, p.Departure.Name, p.Destination.Ident, p.Destination.Name,
		p.DistanceNM, p.Course)

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "Altitude\tGS\tWind\tTime\tFuel\n")
	for _, o := range p.Options {
		fmt.Fprintf(tw, "%.0f\t%.0f kt\t%s\t%s\t%.1f gal\n",
			o.Altitude, o.Leg.GroundSpeed, formatWind(o.Leg.Wind),
			formatHM(o.Leg.TimeMinutes()), o.Leg.FuelGallons())
	}
	tw.Flush()

	if p.NoSafeFuelPlan {
		fmt.Fprintf(w, "\nNo safe fuel plan: no stop combination keeps every leg within the landing reserve.\n")
		return
	}
	if p.FuelPlans == nil {
		return
	}

	fmt.Fprintf(w, "\nA fuel stop is required (nonstop exceeds %.1f hours).\n", float32(plan.TriggerHours))
	if p.FuelPlans.TwoStopRequired {
		fmt.Fprintf(w, "No single stop is safe; two stops are required.\n")
	}

	printOption(w, "Fastest 1-stop", plan.Fastest(p.FuelPlans.OneStop))
	printOption(w, "Cheapest 1-stop", plan.Cheapest(p.FuelPlans.OneStop))
	printOption(w, "Fastest 2-stop", plan.Fastest(p.FuelPlans.TwoStop))
	printOption(w, "Cheapest 2-stop", plan.Cheapest(p.FuelPlans.TwoStop))
}

func printOption(w *os.File, label string, opt *plan.FuelPlanOption) {
	if opt == nil {
		return
	}

	stops := util.MapSlice(opt.Stops, func(s plan.StopCandidate) string {
		d := s.Airport.Ident
		if q := s.Quote; q != nil {
			d += fmt.Sprintf(" ($%.2f/gal %s)", q.Price(), q.FBO)
		}
		return d
	})
	cost := "cost n/a"
	if opt.CostKnown {
		cost = fmt.Sprintf("$%.0f", opt.CostUSD)
	}
	fmt.Fprintf(w, "\n%s via %s at %.0f: %s, %.1f gal, %s\n",
		label, strings.Join(stops, ", "), opt.Altitude,
		formatHM(opt.TotalTimeMinutes), opt.TotalFuelGallons, cost)

	for _, leg := range opt.Legs {
		fmt.Fprintf(w, "  %s -> %s: %.0f nm, GS %.0f, %s, %.1f gal\n",
			leg.From.Ident, leg.To.Ident, leg.DistanceNM, leg.GroundSpeed,
			formatHM(leg.TimeMinutes()), leg.FuelGallons())
	}
}

func printMETARs(ctx context.Context, dep, dest av.Airport) {
	codes := []string{dep.ICAO, dest.ICAO}
	metars, err := wx.FetchMETARs(ctx, codes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "navlog: METARs: %v\n", err)
		return
	}

	fmt.Printf("\n")
	for _, code := range codes {
		if m, ok := metars[code]; ok {
			fmt.Printf("%s: %s\n", code, m.ShortString())
		}
	}
}
