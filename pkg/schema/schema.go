// Package schema defines the assembly schema consumed by the drawing pipeline.
//
// An [Assembly] is the loosely-structured design record produced upstream by the
// design portal and synthesis services: cable kind, conductor metadata, endpoints,
// a raw wire list and optional label callouts. It is the input of the DSL mapper
// in package dsl and the unit of content hashing for the render cache.
//
// Field names follow the upstream wire format (snake_case JSON). The same struct
// tags are used for YAML schema files read by the CLI and for BSON documents in
// the MongoDB assembly store.
package schema

// Assembly is an abstract cable-assembly design.
type Assembly struct {
	AssemblyID string     `json:"assembly_id" yaml:"assembly_id" bson:"assembly_id"`
	SchemaHash string     `json:"schema_hash,omitempty" yaml:"schema_hash,omitempty" bson:"schema_hash,omitempty"`
	Cable      Cable      `json:"cable" yaml:"cable" bson:"cable"`
	Conductors Conductors `json:"conductors" yaml:"conductors" bson:"conductors"`
	Shield     Shield     `json:"shield" yaml:"shield" bson:"shield"`
	Endpoints  Endpoints  `json:"endpoints" yaml:"endpoints" bson:"endpoints"`
	Wirelist   []WireRow  `json:"wirelist,omitempty" yaml:"wirelist,omitempty" bson:"wirelist,omitempty"`
	Labels     *Labels    `json:"labels,omitempty" yaml:"labels,omitempty" bson:"labels,omitempty"`
}

// Cable kinds recognised by the mapper.
const (
	CableRibbon = "ribbon"
	CablePower  = "power_cable"
)

// Cable carries the cable-level attributes.
type Cable struct {
	Type        string  `json:"type,omitempty" yaml:"type,omitempty" bson:"type,omitempty"`
	Locale      string  `json:"locale,omitempty" yaml:"locale,omitempty" bson:"locale,omitempty"`
	LengthMM    float64 `json:"length_mm,omitempty" yaml:"length_mm,omitempty" bson:"length_mm,omitempty"`
	ToleranceMM float64 `json:"tolerance_mm,omitempty" yaml:"tolerance_mm,omitempty" bson:"tolerance_mm,omitempty"`
	NotesPackID string  `json:"notes_pack_id,omitempty" yaml:"notes_pack_id,omitempty" bson:"notes_pack_id,omitempty"`
}

// Conductors describes the conductor set; Ribbon is present for flat cable.
type Conductors struct {
	Count  int     `json:"count,omitempty" yaml:"count,omitempty" bson:"count,omitempty"`
	AWG    int     `json:"awg,omitempty" yaml:"awg,omitempty" bson:"awg,omitempty"`
	Ribbon *Ribbon `json:"ribbon,omitempty" yaml:"ribbon,omitempty" bson:"ribbon,omitempty"`
}

// Ribbon is the flat-cable record. RedStripe defaults to true when unset.
type Ribbon struct {
	Ways      int     `json:"ways,omitempty" yaml:"ways,omitempty" bson:"ways,omitempty"`
	PitchIn   float64 `json:"pitch_in,omitempty" yaml:"pitch_in,omitempty" bson:"pitch_in,omitempty"`
	RedStripe *bool   `json:"red_stripe,omitempty" yaml:"red_stripe,omitempty" bson:"red_stripe,omitempty"`
}

// Shield describes the overall cable shield.
type Shield struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty" bson:"type,omitempty"`
}

// Endpoints holds both cable ends.
type Endpoints struct {
	EndA Endpoint `json:"endA" yaml:"endA" bson:"endA"`
	EndB Endpoint `json:"endB" yaml:"endB" bson:"endB"`
}

// Endpoint is one termination of the cable.
type Endpoint struct {
	Connector   *Connector `json:"connector,omitempty" yaml:"connector,omitempty" bson:"connector,omitempty"`
	Termination string     `json:"termination,omitempty" yaml:"termination,omitempty" bson:"termination,omitempty"`
	Label       string     `json:"label,omitempty" yaml:"label,omitempty" bson:"label,omitempty"`
}

// Connector identifies the mating part.
type Connector struct {
	MPN       string `json:"mpn,omitempty" yaml:"mpn,omitempty" bson:"mpn,omitempty"`
	Positions int    `json:"positions,omitempty" yaml:"positions,omitempty" bson:"positions,omitempty"`
}

// WireRow is one line of the raw wire list.
type WireRow struct {
	Circuit string `json:"circuit,omitempty" yaml:"circuit,omitempty" bson:"circuit,omitempty"`
	EndAPin string `json:"endA_pin,omitempty" yaml:"endA_pin,omitempty" bson:"endA_pin,omitempty"`
	EndBPin string `json:"endB_pin,omitempty" yaml:"endB_pin,omitempty" bson:"endB_pin,omitempty"`
	Color   string `json:"color,omitempty" yaml:"color,omitempty" bson:"color,omitempty"`
	Shield  string `json:"shield,omitempty" yaml:"shield,omitempty" bson:"shield,omitempty"`
}

// Labels carries drawing callouts. Offsets are in inches.
type Labels struct {
	Callouts  []Callout `json:"callouts,omitempty" yaml:"callouts,omitempty" bson:"callouts,omitempty"`
	NotesPack string    `json:"notes_pack,omitempty" yaml:"notes_pack,omitempty" bson:"notes_pack,omitempty"`
}

// Callout is a free-text label anchored to a drawing feature.
type Callout struct {
	Text    string  `json:"text" yaml:"text" bson:"text"`
	Anchor  string  `json:"anchor,omitempty" yaml:"anchor,omitempty" bson:"anchor,omitempty"`
	OffsetX float64 `json:"offset_x,omitempty" yaml:"offset_x,omitempty" bson:"offset_x,omitempty"`
	OffsetY float64 `json:"offset_y,omitempty" yaml:"offset_y,omitempty" bson:"offset_y,omitempty"`
}

// IsRibbon reports whether the assembly describes a flat ribbon cable: an
// explicit ribbon record with a positive way count, or a ribbon cable type.
func (a *Assembly) IsRibbon() bool {
	if a.Conductors.Ribbon != nil && a.Conductors.Ribbon.Ways > 0 {
		return true
	}
	return a.Cable.Type == CableRibbon
}

// IsPower reports whether the cable is a power cable subject to the locale
// color policy.
func (a *Assembly) IsPower() bool {
	return a.Cable.Type == CablePower
}
