// plan/fuelstop.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"errors"
	"slices"

	av "github.com/mmp/navlog/aviation"
	"github.com/mmp/navlog/math"
	"github.com/mmp/navlog/perf"
	"github.com/mmp/navlog/util"
	"github.com/mmp/navlog/wx"
)

const (
	// TriggerHours is the nonstop flight time at or above which fuel-stop
	// planning kicks in.
	TriggerHours = 3.5

	// Corridor half-widths: how far off the great-circle route a stop may
	// lie. Fuel-program member airports get the wider corridor since the
	// discount can be worth a longer detour.
	CorridorNM       = 40
	MemberCorridorNM = 60

	// Along-track bounds: no stop in the initial climb-out region or
	// inside the descent profile into the destination.
	MinStopFromDepNM = 150
	MinDestBufferNM  = 100

	// Minimum along-track spacing between the two stops of a 2-stop plan.
	MinStopSpacingNM = 150
)

// maxStopCandidates caps the corridor search, keeping the candidates
// closest to the route; 2-stop scoring is quadratic in this.
const maxStopCandidates = 30

// ErrNoSafePlan means no combination of stops keeps every leg within the
// fuel reserve; the route cannot be flown under the safety model.
var ErrNoSafePlan = errors.New("no fuel plan satisfies the landing reserve")

// StopCandidate is an airport in the fuel-stop corridor.
type StopCandidate struct {
	Airport      av.Airport
	AlongTrackNM float32
	CrossTrackNM float32 // unsigned
	Member       bool
	Quote        *av.FuelQuote // nil until fetched, or when no data exists
}

// FindStopCandidates scans the directory for medium- and large-class
// airports inside the fuel-stop corridor of the dep-dest great circle.
// Quotes are left unfilled. fuel may be nil, in which case no airport is
// treated as a program member.
func FindStopCandidates(dir av.Directory, fuel av.FuelSource, dep, dest av.Airport) []StopCandidate {
	total := math.NMDistance2LL(dep.Location, dest.Location)
	if total <= MinStopFromDepNM+MinDestBufferNM {
		return nil
	}

	// Pad the endpoint bounding box by the corridor width plus slack for
	// the great circle bowing outside the box at mid-route. The min/max
	// box inverts for routes crossing the antimeridian and finds no
	// candidates there; the directory data and the bulletin stations are
	// CONUS, so that's out of scope here.
	padLat := float32(MemberCorridorNM+60) / 60
	midLat := (dep.Location.Latitude() + dest.Location.Latitude()) / 2
	padLon := padLat / max(math.Cos(math.Radians(midLat)), 0.01)

	lo := math.Point2LL{
		min(dep.Location[0], dest.Location[0]) - padLon,
		min(dep.Location[1], dest.Location[1]) - padLat,
	}
	hi := math.Point2LL{
		max(dep.Location[0], dest.Location[0]) + padLon,
		max(dep.Location[1], dest.Location[1]) + padLat,
	}

	airports := util.FilterSlice(dir.ScanBox(lo, hi), func(ap av.Airport) bool {
		return (ap.Type == av.TypeMediumAirport || ap.Type == av.TypeLargeAirport) &&
			ap.Ident != dep.Ident && ap.Ident != dest.Ident
	})

	var cands []StopCandidate
	for _, ap := range airports {
		xt := math.Abs(math.CrossTrackDistance2LL(ap.Location, dep.Location, dest.Location))
		member := fuel != nil && fuel.ProgramMember(ap.Ident)
		if xt > util.Select(member, float32(MemberCorridorNM), CorridorNM) {
			continue
		}

		at := math.AlongTrackDistance2LL(ap.Location, dep.Location, dest.Location)
		if at < MinStopFromDepNM || at > total-MinDestBufferNM {
			continue
		}

		cands = append(cands, StopCandidate{
			Airport:      ap,
			AlongTrackNM: at,
			CrossTrackNM: xt,
			Member:       member,
		})
	}

	slices.SortFunc(cands, func(a, b StopCandidate) int {
		if a.CrossTrackNM < b.CrossTrackNM {
			return -1
		} else if a.CrossTrackNM > b.CrossTrackNM {
			return 1
		}
		return 0
	})
	if len(cands) > maxStopCandidates {
		cands = cands[:maxStopCandidates]
	}
	return cands
}

// FuelPlanOption is one scored plan: the stops in route order, the cruise
// altitude, and the legs between them. CostUSD covers the fuel purchased
// at the stops (the burn of each following leg at that stop's price);
// CostKnown is false when any stop lacks a quote.
type FuelPlanOption struct {
	Stops    []StopCandidate
	Altitude float32
	Legs     []Leg

	TotalTimeMinutes float32
	TotalFuelGallons float32
	CostUSD          float32
	CostKnown        bool
}

// FuelPlans is the fuel-stop planner's output: safe 1-stop and 2-stop
// options, each sorted by total time. TwoStopRequired is set when no safe
// 1-stop plan exists so the 2-stop list is mandatory rather than an
// alternative.
type FuelPlans struct {
	OneStop         []FuelPlanOption
	TwoStop         []FuelPlanOption
	TwoStopRequired bool
}

// Fastest returns the fastest option of the slice, or nil if it's empty.
func Fastest(opts []FuelPlanOption) *FuelPlanOption {
	if len(opts) == 0 {
		return nil
	}
	return &opts[0]
}

// Cheapest returns the lowest-cost option among those with known prices,
// or nil if none have a known cost.
func Cheapest(opts []FuelPlanOption) *FuelPlanOption {
	var best *FuelPlanOption
	for i := range opts {
		if !opts[i].CostKnown {
			continue
		}
		if best == nil || opts[i].CostUSD < best.CostUSD {
			best = &opts[i]
		}
	}
	return best
}

// BuildFuelPlans scores every (stops, legal altitude) combination for the
// route and returns the safe ones. Candidates should already carry their
// quotes. Returns ErrNoSafePlan when no combination keeps every leg
// within the landing reserve.
func BuildFuelPlans(dep, dest av.Airport, cands []StopCandidate, winds []wx.PointWinds) (*FuelPlans, error) {
	total := math.NMDistance2LL(dep.Location, dest.Location)
	course := math.Bearing2LL(dep.Location, dest.Location)
	alts := LegalAltitudes(course)

	plans := &FuelPlans{}
	for i := range cands {
		for _, alt := range alts {
			if opt := scoreStops(dep, dest, total, course, alt, winds, cands[i:i+1]); opt != nil {
				plans.OneStop = append(plans.OneStop, *opt)
			}
		}
	}
	for i := range cands {
		for j := range cands {
			if cands[j].AlongTrackNM-cands[i].AlongTrackNM < MinStopSpacingNM {
				continue
			}
			for _, alt := range alts {
				pair := []StopCandidate{cands[i], cands[j]}
				if opt := scoreStops(dep, dest, total, course, alt, winds, pair); opt != nil {
					plans.TwoStop = append(plans.TwoStop, *opt)
				}
			}
		}
	}

	byTime := func(a, b FuelPlanOption) int {
		if a.TotalTimeMinutes < b.TotalTimeMinutes {
			return -1
		} else if a.TotalTimeMinutes > b.TotalTimeMinutes {
			return 1
		}
		return 0
	}
	slices.SortFunc(plans.OneStop, byTime)
	slices.SortFunc(plans.TwoStop, byTime)

	if len(plans.OneStop) == 0 {
		if len(plans.TwoStop) == 0 {
			return nil, ErrNoSafePlan
		}
		plans.TwoStopRequired = true
	}
	return plans, nil
}

// scoreStops builds the legs for one ordered set of stops at one cruise
// altitude and returns the plan, or nil if any leg busts the fuel
// reserve. Each leg's distance is its share of the route plus the
// cross-track distance of the stop at each end, approximating the
// off-route detour.
func scoreStops(dep, dest av.Airport, total, course, alt float32, winds []wx.PointWinds, stops []StopCandidate) *FuelPlanOption {
	tas := perf.CruiseTAS(alt)
	opt := &FuelPlanOption{Stops: stops, Altitude: alt, CostKnown: true}

	from := dep
	prevAT := float32(0)
	for i := 0; i <= len(stops); i++ {
		var to av.Airport
		var at, dist float32
		if i < len(stops) {
			to = stops[i].Airport
			at = stops[i].AlongTrackNM
			dist = (at - prevAT) + stops[i].CrossTrackNM
		} else {
			to = dest
			at = total
			dist = total - prevAT
		}
		if i > 0 {
			dist += stops[i-1].CrossTrackNM
		}

		gs, ws := EffectiveGS(SliceSpan(winds, prevAT/total, at/total), alt, tas, course, dist)
		leg := ComputeLeg(from, to, dist, course, alt, gs)
		leg.Wind = ws
		if !perf.LegSafe(leg.Hours()) {
			return nil
		}

		opt.Legs = append(opt.Legs, leg)
		opt.TotalTimeMinutes += leg.TimeMinutes()
		opt.TotalFuelGallons += leg.FuelGallons()
		if i > 0 {
			// fuel for this leg is bought at the preceding stop
			if q := stops[i-1].Quote; q != nil {
				opt.CostUSD += q.Price() * leg.FuelGallons()
			} else {
				opt.CostKnown = false
			}
		}

		from, prevAT = to, at
	}
	return opt
}
