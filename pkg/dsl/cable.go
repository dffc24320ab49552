package dsl

import (
	"encoding/json"
	"fmt"
)

// Cable variant tags.
const (
	CableRibbon = "ribbon"
	CableRound  = "round"
)

// Cable shield kinds for round cables.
const (
	ShieldNone      = "none"
	ShieldFoil      = "foil"
	ShieldBraid     = "braid"
	ShieldFoilBraid = "foil_braid"
)

// Cable is a tagged variant: exactly one of Ribbon or Round is set.
type Cable struct {
	Ribbon *RibbonCable
	Round  *RoundCable
}

// RibbonCable is a flat cable with evenly pitched conductors.
type RibbonCable struct {
	Ways      int     `json:"ways"`
	PitchIn   float64 `json:"pitch_in"`
	RedStripe *bool   `json:"red_stripe,omitempty"`
}

// HasRedStripe reports whether the pin-1 stripe is drawn. It defaults to true.
func (r *RibbonCable) HasRedStripe() bool {
	return r.RedStripe == nil || *r.RedStripe
}

// RoundCable is a bundle of discrete conductors.
type RoundCable struct {
	Conductors int    `json:"conductors"`
	AWG        int    `json:"awg,omitempty"`
	Shield     string `json:"shield,omitempty"`
}

// Type returns the variant tag, or "" when no variant is set.
func (c Cable) Type() string {
	switch {
	case c.Ribbon != nil:
		return CableRibbon
	case c.Round != nil:
		return CableRound
	}
	return ""
}

type ribbonWire struct {
	Type string `json:"type"`
	RibbonCable
}

type roundWire struct {
	Type string `json:"type"`
	RoundCable
}

// MarshalJSON flattens the active variant and adds its "type" tag.
func (c Cable) MarshalJSON() ([]byte, error) {
	switch {
	case c.Ribbon != nil && c.Round != nil:
		return nil, fmt.Errorf("cable has both ribbon and round variants")
	case c.Ribbon != nil:
		return json.Marshal(ribbonWire{Type: CableRibbon, RibbonCable: *c.Ribbon})
	case c.Round != nil:
		return json.Marshal(roundWire{Type: CableRound, RoundCable: *c.Round})
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes the variant selected by the "type" tag.
func (c *Cable) UnmarshalJSON(data []byte) error {
	*c = Cable{}
	if string(data) == "null" {
		return nil
	}
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag.Type {
	case CableRibbon:
		var w ribbonWire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		c.Ribbon = &w.RibbonCable
	case CableRound:
		var w roundWire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		c.Round = &w.RoundCable
	default:
		return fmt.Errorf("unknown cable type %q", tag.Type)
	}
	return nil
}
