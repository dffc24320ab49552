package dsl

import (
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/schema"
)

// Mapping defaults.
const (
	DefaultPitchIn     = 0.05
	DefaultLengthMM    = 1000
	DefaultToleranceMM = 5
	DefaultNotesPack   = "STANDARD"
	DefaultMPN         = "UNKNOWN"
	DefaultQRBaseURL   = "https://cable.example.com/a/"

	// BrokenDimThresholdMM is the length above which the overall dimension is
	// drawn broken.
	BrokenDimThresholdMM = 2000

	mmPerInch = 25.4

	// endpointLabelOffsetMM places endpoint labels above their connector.
	endpointLabelOffsetMM = -5
)

// Mapper converts assembly schemas to RenderDSL.
type Mapper struct {
	// QRBaseURL prefixes the assembly id in the QR payload. Empty means
	// DefaultQRBaseURL.
	QRBaseURL string
	// Clock stamps meta.created_at when set.
	Clock func() time.Time
	// Logger receives debug output. Nil discards.
	Logger *log.Logger
}

// Map normalizes s into a RenderDSL. templatePackID is used for logging only:
// the DSL is always millimetre-denominated and independent of the template.
func (m Mapper) Map(s *schema.Assembly, templatePackID string) (*RenderDSL, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "schema is required")
	}
	if s.AssemblyID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "schema.assembly_id is required")
	}

	fallbackCount := firstPositive(s.Conductors.Count, len(s.Wirelist))

	d := &RenderDSL{
		Meta: Meta{
			AssemblyID: s.AssemblyID,
			SchemaHash: s.ContentHash(),
		},
		Cable:     mapCable(s, fallbackCount),
		EndA:      mapEndpoint(s.Endpoints.EndA, fallbackCount),
		EndB:      mapEndpoint(s.Endpoints.EndB, fallbackCount),
		Nets:      mapNets(s),
		Labels:    mapLabels(s),
		NotesPack: notesPack(s),
		QR:        m.qrBase() + s.AssemblyID,
	}

	length := s.Cable.LengthMM
	if length <= 0 {
		length = DefaultLengthMM
	}
	tolerance := s.Cable.ToleranceMM
	if tolerance <= 0 {
		tolerance = DefaultToleranceMM
	}
	d.Dimensions = Dimensions{
		OALMM:       length,
		ToleranceMM: tolerance,
		BrokenDim:   length > BrokenDimThresholdMM,
	}

	if m.Clock != nil {
		d.Meta.CreatedAt = m.Clock().UTC().Format(time.RFC3339)
	}

	if m.Logger != nil {
		m.Logger.Debug("mapped assembly",
			"assembly", s.AssemblyID,
			"template", templatePackID,
			"cable", d.Cable.Type(),
			"nets", len(d.Nets),
			"labels", len(d.Labels))
	}
	return d, nil
}

func (m Mapper) qrBase() string {
	if m.QRBaseURL != "" {
		return m.QRBaseURL
	}
	return DefaultQRBaseURL
}

func mapCable(s *schema.Assembly, fallbackCount int) Cable {
	if s.IsRibbon() {
		r := s.Conductors.Ribbon
		if r == nil {
			r = &schema.Ribbon{}
		}
		pitch := r.PitchIn
		if pitch <= 0 {
			pitch = DefaultPitchIn
		}
		stripe := r.RedStripe == nil || *r.RedStripe
		return Cable{Ribbon: &RibbonCable{
			Ways:      firstPositive(r.Ways, fallbackCount),
			PitchIn:   pitch,
			RedStripe: &stripe,
		}}
	}
	shield := s.Shield.Type
	if shield == "" {
		shield = ShieldNone
	}
	return Cable{Round: &RoundCable{
		Conductors: fallbackCount,
		AWG:        s.Conductors.AWG,
		Shield:     shield,
	}}
}

func mapEndpoint(e schema.Endpoint, fallbackCount int) Endpoint {
	out := Endpoint{
		ConnectorMPN: DefaultMPN,
		Type:         TermCrimp,
		Positions:    fallbackCount,
		Orientation:  Horizontal,
	}
	if e.Connector != nil {
		if e.Connector.MPN != "" {
			out.ConnectorMPN = e.Connector.MPN
		}
		out.Positions = firstPositive(e.Connector.Positions, fallbackCount)
	}
	if e.Termination != "" {
		out.Type = e.Termination
	}
	return out
}

func mapNets(s *schema.Assembly) []Net {
	nets := make([]Net, 0, len(s.Wirelist))
	var colors PowerColors
	if s.IsPower() {
		locale := s.Cable.Locale
		if locale == "" {
			locale = LocaleNA
		}
		colors = PowerColorsFor(locale)
	}

	for i, row := range s.Wirelist {
		n := Net{
			Circuit: row.Circuit,
			EndAPin: row.EndAPin,
			EndBPin: row.EndBPin,
			Color:   row.Color,
			Shield:  row.Shield,
		}
		ordinal := strconv.Itoa(i + 1)
		if n.Circuit == "" {
			n.Circuit = "Net" + ordinal
		}
		if n.EndAPin == "" {
			n.EndAPin = ordinal
		}
		if n.EndBPin == "" {
			n.EndBPin = ordinal
		}
		if n.Shield == "" {
			n.Shield = NetShieldNone
		}
		if n.Color == "" {
			if s.IsPower() {
				n.Color = colors.Color(ClassifyCircuit(row.Circuit))
			}
			if n.Color == "" {
				n.Color = PaletteColor(i)
			}
		}
		nets = append(nets, n)
	}
	return nets
}

func mapLabels(s *schema.Assembly) []Label {
	labels := []Label{}
	if s.Labels != nil {
		for _, c := range s.Labels.Callouts {
			anchor := c.Anchor
			if anchor == "" {
				anchor = AnchorCable
			}
			labels = append(labels, Label{
				Text:    c.Text,
				Anchor:  anchor,
				OffsetX: c.OffsetX * mmPerInch,
				OffsetY: c.OffsetY * mmPerInch,
			})
		}
	}
	if text := s.Endpoints.EndA.Label; text != "" {
		labels = append(labels, Label{Text: text, Anchor: AnchorEndA, OffsetY: endpointLabelOffsetMM})
	}
	if text := s.Endpoints.EndB.Label; text != "" {
		labels = append(labels, Label{Text: text, Anchor: AnchorEndB, OffsetY: endpointLabelOffsetMM})
	}
	return labels
}

func notesPack(s *schema.Assembly) string {
	if s.Cable.NotesPackID != "" {
		return s.Cable.NotesPackID
	}
	if s.Labels != nil && s.Labels.NotesPack != "" {
		return s.Labels.NotesPack
	}
	return DefaultNotesPack
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
