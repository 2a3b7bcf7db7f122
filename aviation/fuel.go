// aviation/fuel.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// StaticFuelSource is a FuelSource backed by a JSON price table, for use
// when no live price collaborator is configured (and in tests). The
// expected form is a map from airport code to quote:
//
//	{"KABQ": {"fbo": "Cutter", "retail": 7.89, "member": 5.99}, ...}
type StaticFuelSource struct {
	quotes  map[string]*FuelQuote
	members map[string]bool
}

type staticQuote struct {
	FBO    string   `json:"fbo"`
	Retail float32  `json:"retail"`
	Member *float32 `json:"member,omitempty"`
}

func LoadStaticFuelSource(r io.Reader) (*StaticFuelSource, error) {
	var raw map[string]staticQuote
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding fuel price table: %w", err)
	}

	s := &StaticFuelSource{
		quotes:  make(map[string]*FuelQuote),
		members: make(map[string]bool),
	}
	for code, q := range raw {
		code = strings.ToUpper(code)
		s.quotes[code] = &FuelQuote{FBO: q.FBO, Retail: q.Retail, Member: q.Member}
		if q.Member != nil {
			s.members[code] = true
		}
	}
	return s, nil
}

func (s *StaticFuelSource) Quote(ctx context.Context, code string) (*FuelQuote, error) {
	return s.quotes[strings.ToUpper(code)], nil
}

func (s *StaticFuelSource) ProgramMember(code string) bool {
	return s.members[strings.ToUpper(code)]
}
