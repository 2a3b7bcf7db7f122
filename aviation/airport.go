// aviation/airport.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package aviation holds the airport data model and the contracts for the
// external data collaborators: the airport directory and the fuel-price
// source. The planning engine consumes these; it does not own the data.
package aviation

import (
	"context"
	"errors"

	"github.com/mmp/navlog/math"
)

// Airport classes, as found in the directory data.
const (
	TypeLargeAirport  = "large_airport"
	TypeMediumAirport = "medium_airport"
	TypeSmallAirport  = "small_airport"
)

type Airport struct {
	Ident        string // canonical code from the directory
	ICAO         string
	IATA         string
	Name         string
	Municipality string
	Region       string
	Type         string
	Location     math.Point2LL
	Elevation    float32 // ft MSL
}

// ErrUnknownAirport is returned when a code doesn't resolve to any
// airport in the directory; plan generation aborts rather than guessing.
var ErrUnknownAirport = errors.New("no such airport")

// Directory is the airport-directory collaborator. The engine needs only
// code lookup and a bounding-box scan for the fuel-stop corridor search.
type Directory interface {
	// Lookup resolves any of an airport's code aliases (ident, ICAO,
	// IATA, local) to its record.
	Lookup(code string) (Airport, error)

	// ScanBox returns all airports whose location lies inside the
	// given lat-long box (lo and hi are the southwest and northeast
	// corners).
	ScanBox(lo, hi math.Point2LL) []Airport
}

// FuelQuote is what the fuel-price collaborator knows about an airport.
// Member is nil when the FBO doesn't post a member program price.
type FuelQuote struct {
	FBO    string
	Retail float32  // $/gal
	Member *float32 // $/gal
}

// Price returns the effective per-gallon price, preferring the member
// price when present.
func (q FuelQuote) Price() float32 {
	if q.Member != nil {
		return *q.Member
	}
	return q.Retail
}

// FuelSource is the fuel-price collaborator. Quote returns nil with a nil
// error when no price data exists for the airport.
type FuelSource interface {
	Quote(ctx context.Context, code string) (*FuelQuote, error)

	// ProgramMember reports whether the airport participates in the
	// member fuel-purchase program; member airports are allowed a wider
	// fuel-stop corridor.
	ProgramMember(code string) bool
}
