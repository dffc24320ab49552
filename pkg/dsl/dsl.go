package dsl

// RenderDSL is the canonical drawing description.
type RenderDSL struct {
	Meta       Meta       `json:"meta"`
	Dimensions Dimensions `json:"dimensions"`
	Cable      Cable      `json:"cable"`
	EndA       Endpoint   `json:"endA"`
	EndB       Endpoint   `json:"endB"`
	Nets       []Net      `json:"nets"`
	Labels     []Label    `json:"labels"`
	NotesPack  string     `json:"notesPack"`
	QR         string     `json:"qr,omitempty"`
}

// Meta identifies the assembly the drawing belongs to.
type Meta struct {
	AssemblyID string `json:"assembly_id"`
	SchemaHash string `json:"schema_hash"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Dimensions holds the overall length and tolerance in millimetres.
type Dimensions struct {
	OALMM       float64 `json:"oal_mm"`
	ToleranceMM float64 `json:"tolerance_mm"`
	BrokenDim   bool    `json:"broken_dim,omitempty"`
}

// Termination types.
const (
	TermIDC     = "idc"
	TermCrimp   = "crimp"
	TermSolder  = "solder"
	TermRingLug = "ring_lug"
)

// Connector orientations.
const (
	Horizontal = "horizontal"
	Vertical   = "vertical"
)

// Pin numbering schemes.
const (
	PinsSequential = "sequential"
	PinsDualRow    = "dual_row"
)

// Endpoint is a connector footprint at one end of the cable.
type Endpoint struct {
	ConnectorMPN string `json:"connector_mpn"`
	Type         string `json:"type"`
	Positions    int    `json:"positions"`
	Orientation  string `json:"orientation,omitempty"`
	PinNumbering string `json:"pin_numbering,omitempty"`
}

// IsVertical reports whether the connector is drawn standing up.
func (e Endpoint) IsVertical() bool {
	return e.Orientation == Vertical
}

// Net shield treatments.
const (
	NetShieldNone     = "none"
	NetShieldFoldBack = "fold_back"
	NetShieldIsolated = "isolated"
	NetShieldPigtail  = "pigtail"
)

// Net is one conductor run between the two ends.
type Net struct {
	Circuit string `json:"circuit"`
	EndAPin string `json:"endA_pin"`
	EndBPin string `json:"endB_pin"`
	Color   string `json:"color,omitempty"`
	Shield  string `json:"shield,omitempty"`
}

// Label anchors.
const (
	AnchorEndA      = "endA"
	AnchorEndB      = "endB"
	AnchorCable     = "cable"
	AnchorDimension = "dimension"
)

// Label is a free-text callout. Offsets are millimetres from the anchor point.
type Label struct {
	Text    string  `json:"text"`
	Anchor  string  `json:"anchor"`
	OffsetX float64 `json:"offset_x,omitempty"`
	OffsetY float64 `json:"offset_y,omitempty"`
}
