// plan/session_test.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"context"
	"errors"
	"testing"

	av "github.com/mmp/navlog/aviation"
	"github.com/mmp/navlog/wx"
)

type testWindSource struct {
	points []wx.PointWinds
	err    error
	calls  int
}

func (s *testWindSource) RouteWinds(ctx context.Context, dep, dest av.Airport) ([]wx.PointWinds, error) {
	s.calls++
	return s.points, s.err
}

func TestSessionUnknownAirport(t *testing.T) {
	dir, fuel, _, _ := testRoute()
	s := NewSession(context.Background(), dir, nil, fuel, nil)

	if _, err := s.Plan("KDEP", "KXXX"); !errors.Is(err, av.ErrUnknownAirport) {
		t.Errorf("got %v, expected ErrUnknownAirport", err)
	}
	if _, err := s.Plan("KXXX", "KDST"); !errors.Is(err, av.ErrUnknownAirport) {
		t.Errorf("got %v, expected ErrUnknownAirport", err)
	}
}

func TestSessionShortRouteNoFuelStop(t *testing.T) {
	// ~800 NM stays under the nonstop trigger; a failing wind source
	// degrades to still air rather than failing the plan.
	dir := &testDirectory{airports: []av.Airport{
		equatorAirport("KDEP", av.TypeLargeAirport, 0, 0),
		equatorAirport("KDST", av.TypeLargeAirport, 800.0/60, 0),
	}}
	winds := &testWindSource{err: errors.New("service unavailable")}
	s := NewSession(context.Background(), dir, winds, nil, nil)

	p, err := s.Plan("KDEP", "KDST")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(p.Options) != 3 {
		t.Fatalf("got %d altitude options, expected 3", len(p.Options))
	}
	if best := p.Options[0].Leg.Hours(); best >= TriggerHours {
		t.Errorf("fastest option %.2f hr should be under the fuel-stop trigger", best)
	}
	if p.FuelPlans != nil || p.NoSafeFuelPlan {
		t.Error("fuel planning ran on an under-trigger route")
	}

	// The failed wind fetch is cached; replanning must not retry it.
	if _, err := s.Plan("KDEP", "KDST"); err != nil {
		t.Fatalf("replan: %v", err)
	}
	if winds.calls != 1 {
		t.Errorf("wind source called %d times, expected 1", winds.calls)
	}
}

func TestSessionLongRouteFuelStop(t *testing.T) {
	dir, fuel, _, _ := testRoute()
	s := NewSession(context.Background(), dir, &testWindSource{}, fuel, nil)

	p, err := s.Plan("KDEP", "KDST")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if best := p.Options[0].Leg.Hours(); best < TriggerHours {
		t.Fatalf("fastest option %.2f hr should trigger fuel planning", best)
	}
	if p.FuelPlans == nil {
		t.Fatal("no fuel plans on an over-trigger route")
	}
	if len(p.FuelPlans.OneStop) == 0 {
		t.Fatal("no safe 1-stop options")
	}

	// Quotes were fetched into the scored candidates.
	var sawQuote bool
	for _, opt := range p.FuelPlans.OneStop {
		if opt.Stops[0].Quote != nil {
			sawQuote = true
		}
	}
	if !sawQuote {
		t.Error("no scored option carries a fuel quote")
	}
	if Cheapest(p.FuelPlans.OneStop) == nil {
		t.Error("no cheapest option despite available quotes")
	}
}

func TestSessionNoSafePlan(t *testing.T) {
	// One mid-route stop on a 2600 NM route: a stop is required but no
	// combination is safe, which the plan reports explicitly.
	dir := &testDirectory{airports: []av.Airport{
		equatorAirport("KDEP", av.TypeLargeAirport, 0, 0),
		equatorAirport("KDST", av.TypeLargeAirport, 2600.0/60, 0),
		equatorAirport("KMID", av.TypeMediumAirport, 1300.0/60, 0),
	}}
	s := NewSession(context.Background(), dir, nil, nil, nil)

	p, err := s.Plan("KDEP", "KDST")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !p.NoSafeFuelPlan {
		t.Error("2600 NM single-stop route should have no safe plan")
	}
	if p.FuelPlans != nil {
		t.Error("fuel plans returned alongside NoSafeFuelPlan")
	}
}
