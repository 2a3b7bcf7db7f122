// plan/session.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package plan is the flight-planning engine: wind-corrected ground
// speed, leg computation from the performance model, IFR altitude
// ranking, and fuel-stop planning for legs beyond safe nonstop range.
package plan

import (
	"context"
	"errors"
	"fmt"

	av "github.com/mmp/navlog/aviation"
	"github.com/mmp/navlog/log"
	"github.com/mmp/navlog/math"
	"github.com/mmp/navlog/wx"
	"golang.org/x/sync/errgroup"
)

// WindSource provides route winds; both the gridded-model client and the
// station-bulletin source in wx satisfy it.
type WindSource interface {
	RouteWinds(ctx context.Context, dep, dest av.Airport) ([]wx.PointWinds, error)
}

// Session runs flight plans against a fixed set of collaborators,
// caching wind and fuel-price lookups for its lifetime. Winds and prices
// are fetched at most once per route and airport; entries are never
// invalidated since a session is one planning sitting. Cancel the
// session's context to abandon in-flight fetches when the user moves on.
//
// A Session is not safe for concurrent use.
type Session struct {
	ctx   context.Context
	dir   av.Directory
	winds WindSource    // may be nil: still-air planning
	fuel  av.FuelSource // may be nil: no prices, no member corridors
	lg    *log.Logger

	windCache  map[string][]wx.PointWinds
	quoteCache map[string]*av.FuelQuote
}

func NewSession(ctx context.Context, dir av.Directory, winds WindSource, fuel av.FuelSource, lg *log.Logger) *Session {
	return &Session{
		ctx:        ctx,
		dir:        dir,
		winds:      winds,
		fuel:       fuel,
		lg:         lg,
		windCache:  make(map[string][]wx.PointWinds),
		quoteCache: make(map[string]*av.FuelQuote),
	}
}

// Plan is the engine's output for one route.
type Plan struct {
	Departure, Destination av.Airport
	DistanceNM             float32
	Course                 float32

	// Options are the ranked cruise altitudes, fastest first.
	Options []AltitudeOption

	// FuelPlans is set when the fastest option exceeds the nonstop
	// trigger time; NoSafeFuelPlan is set instead when a stop is needed
	// but no combination satisfies the landing reserve.
	FuelPlans      *FuelPlans
	NoSafeFuelPlan bool
}

// Plan generates the flight plan between two airport codes. Unknown
// codes abort; wind or fuel-price trouble degrades and logs.
func (s *Session) Plan(depCode, destCode string) (*Plan, error) {
	dep, err := s.dir.Lookup(depCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", depCode, err)
	}
	dest, err := s.dir.Lookup(destCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", destCode, err)
	}

	winds := s.routeWinds(dep, dest)

	p := &Plan{
		Departure:   dep,
		Destination: dest,
		DistanceNM:  math.NMDistance2LL(dep.Location, dest.Location),
		Course:      math.Bearing2LL(dep.Location, dest.Location),
		Options:     RankAltitudes(dep, dest, winds),
	}

	if len(p.Options) == 0 || p.Options[0].Leg.Hours() < TriggerHours {
		return p, nil
	}

	cands := FindStopCandidates(s.dir, s.fuel, dep, dest)
	s.fetchQuotes(cands)

	fp, err := BuildFuelPlans(dep, dest, cands, winds)
	if errors.Is(err, ErrNoSafePlan) {
		p.NoSafeFuelPlan = true
		return p, nil
	} else if err != nil {
		return nil, err
	}
	p.FuelPlans = fp
	return p, nil
}

// routeWinds fetches (or recalls) the winds along the route. Failure is
// logged and degrades to still air.
func (s *Session) routeWinds(dep, dest av.Airport) []wx.PointWinds {
	if s.winds == nil {
		return nil
	}
	key := dep.Ident + "-" + dest.Ident
	if w, ok := s.windCache[key]; ok {
		return w
	}

	w, err := s.winds.RouteWinds(s.ctx, dep, dest)
	if err != nil {
		s.lg.Warnf("%s: route winds unavailable, planning still-air: %v", key, err)
		w = nil
	}
	s.windCache[key] = w
	return w
}

// fetchQuotes fills in fuel quotes for the candidates, concurrently;
// each goroutine writes only its own candidate's slot. Missing or failed
// quotes leave the slot nil and the candidate priceless, not excluded.
func (s *Session) fetchQuotes(cands []StopCandidate) {
	if s.fuel == nil {
		return
	}

	eg, ctx := errgroup.WithContext(s.ctx)
	for i := range cands {
		i := i
		code := cands[i].Airport.Ident
		if q, ok := s.quoteCache[code]; ok {
			cands[i].Quote = q
			continue
		}
		eg.Go(func() error {
			q, err := s.fuel.Quote(ctx, code)
			if err != nil {
				s.lg.Warnf("%s: fuel quote: %v", code, err)
				return nil
			}
			cands[i].Quote = q
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		s.lg.Errorf("fuel quotes: %v", err)
	}

	for i := range cands {
		if cands[i].Quote != nil {
			s.quoteCache[cands[i].Airport.Ident] = cands[i].Quote
		}
	}
}
