// Package dsltest provides assembly and DSL fixtures for tests of the drawing
// pipeline.
package dsltest

import (
	"fmt"

	"github.com/matzehuels/cabledraw/pkg/dsl"
	"github.com/matzehuels/cabledraw/pkg/schema"
)

// RibbonAssembly returns a ways-conductor IDC ribbon assembly of the given
// length. redStripe nil leaves the stripe at its default.
func RibbonAssembly(id string, ways int, lengthMM float64, redStripe *bool) *schema.Assembly {
	wires := make([]schema.WireRow, ways)
	for i := range wires {
		wires[i] = schema.WireRow{Circuit: fmt.Sprintf("W%d", i+1)}
	}
	conn := &schema.Connector{MPN: fmt.Sprintf("IDC-%d", ways), Positions: ways}
	return &schema.Assembly{
		AssemblyID: id,
		Cable:      schema.Cable{Type: schema.CableRibbon, LengthMM: lengthMM, ToleranceMM: 15},
		Conductors: schema.Conductors{
			Count:  ways,
			Ribbon: &schema.Ribbon{Ways: ways, PitchIn: 0.05, RedStripe: redStripe},
		},
		Endpoints: schema.Endpoints{
			EndA: schema.Endpoint{Connector: conn, Termination: dsl.TermIDC, Label: "J1"},
			EndB: schema.Endpoint{Connector: conn, Termination: dsl.TermIDC, Label: "J2"},
		},
		Wirelist: wires,
		Labels: &schema.Labels{Callouts: []schema.Callout{
			{Text: "ASSEMBLY " + id, Anchor: dsl.AnchorCable},
			{Text: "OAL", Anchor: dsl.AnchorDimension},
		}},
	}
}

// PowerAssembly returns a two-conductor power cable with +48V and RTN
// circuits in the given locale.
func PowerAssembly(id, locale string) *schema.Assembly {
	conn := &schema.Connector{MPN: "PWR-2", Positions: 2}
	return &schema.Assembly{
		AssemblyID: id,
		Cable:      schema.Cable{Type: schema.CablePower, Locale: locale, LengthMM: 800, ToleranceMM: 10},
		Conductors: schema.Conductors{Count: 2, AWG: 14},
		Shield:     schema.Shield{Type: dsl.ShieldBraid},
		Endpoints: schema.Endpoints{
			EndA: schema.Endpoint{Connector: conn, Termination: dsl.TermRingLug},
			EndB: schema.Endpoint{Connector: conn, Termination: dsl.TermCrimp},
		},
		Wirelist: []schema.WireRow{
			{Circuit: "+48V", EndAPin: "1", EndBPin: "1"},
			{Circuit: "RTN", EndAPin: "2", EndBPin: "2"},
		},
	}
}

// Map maps a fixture assembly with the default mapper, panicking on error.
func Map(s *schema.Assembly) *dsl.RenderDSL {
	d, err := dsl.Mapper{}.Map(s, "basic-a3")
	if err != nil {
		panic(err)
	}
	return d
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }
