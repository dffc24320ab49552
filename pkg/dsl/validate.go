package dsl

import (
	"github.com/matzehuels/cabledraw/pkg/errors"
)

var (
	terminations = set(TermIDC, TermCrimp, TermSolder, TermRingLug)
	orientations = set("", Horizontal, Vertical)
	numberings   = set("", PinsSequential, PinsDualRow)
	cableShields = set("", ShieldNone, ShieldFoil, ShieldBraid, ShieldFoilBraid)
	netShields   = set("", NetShieldNone, NetShieldFoldBack, NetShieldIsolated, NetShieldPigtail)
	anchors      = set(AnchorEndA, AnchorEndB, AnchorCable, AnchorDimension)
)

func set(values ...string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidSchema, format, args...)
}

// Validate checks the structural invariants every layout pass relies on.
// It runs before any geometry is computed.
func (d *RenderDSL) Validate() error {
	if d.Meta.AssemblyID == "" {
		return invalid("meta.assembly_id is required")
	}
	if d.Dimensions.OALMM <= 0 {
		return invalid("dimensions.oal_mm must be positive, got %g", d.Dimensions.OALMM)
	}
	if d.Dimensions.ToleranceMM < 0 {
		return invalid("dimensions.tolerance_mm must not be negative, got %g", d.Dimensions.ToleranceMM)
	}
	if err := d.Cable.validate(); err != nil {
		return err
	}
	if err := d.EndA.validate("endA"); err != nil {
		return err
	}
	if err := d.EndB.validate("endB"); err != nil {
		return err
	}
	if n := len(d.Nets); n > d.EndA.Positions || n > d.EndB.Positions {
		return invalid("%d nets exceed connector positions (endA %d, endB %d)", n, d.EndA.Positions, d.EndB.Positions)
	}
	for i, n := range d.Nets {
		if !netShields[n.Shield] {
			return invalid("nets[%d].shield %q is not a known shield treatment", i, n.Shield)
		}
	}
	for i, l := range d.Labels {
		if !anchors[l.Anchor] {
			return invalid("labels[%d].anchor %q is not a known anchor", i, l.Anchor)
		}
	}
	return nil
}

func (c Cable) validate() error {
	switch {
	case c.Ribbon != nil && c.Round != nil:
		return invalid("cable must be either ribbon or round, not both")
	case c.Ribbon != nil:
		if c.Ribbon.Ways <= 0 {
			return invalid("ribbon ways must be positive, got %d", c.Ribbon.Ways)
		}
		if c.Ribbon.PitchIn <= 0 {
			return invalid("ribbon pitch_in must be positive, got %g", c.Ribbon.PitchIn)
		}
	case c.Round != nil:
		if c.Round.Conductors <= 0 {
			return invalid("round cable conductors must be positive, got %d", c.Round.Conductors)
		}
		if !cableShields[c.Round.Shield] {
			return invalid("cable shield %q is not a known shield type", c.Round.Shield)
		}
	default:
		return invalid("cable variant is required")
	}
	return nil
}

func (e Endpoint) validate(end string) error {
	if !terminations[e.Type] {
		return invalid("%s.type %q is not a known termination", end, e.Type)
	}
	if e.Positions <= 0 {
		return invalid("%s.positions must be positive, got %d", end, e.Positions)
	}
	if !orientations[e.Orientation] {
		return invalid("%s.orientation %q is not a known orientation", end, e.Orientation)
	}
	if !numberings[e.PinNumbering] {
		return invalid("%s.pin_numbering %q is not a known numbering", end, e.PinNumbering)
	}
	return nil
}
