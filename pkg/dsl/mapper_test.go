package dsl

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/schema"
)

func TestMapRibbonDefaults(t *testing.T) {
	s := &schema.Assembly{
		AssemblyID: "asm-1",
		Conductors: schema.Conductors{Count: 10, Ribbon: &schema.Ribbon{Ways: 10}},
		Endpoints: schema.Endpoints{
			EndA: schema.Endpoint{Connector: &schema.Connector{MPN: "IDC-10", Positions: 10}, Termination: "idc"},
		},
	}
	d, err := Mapper{}.Map(s, "basic-a3")
	if err != nil {
		t.Fatalf("Map: %v", err)
	}

	r := d.Cable.Ribbon
	if r == nil || d.Cable.Round != nil {
		t.Fatalf("Cable = %+v, want ribbon variant", d.Cable)
	}
	if r.Ways != 10 || r.PitchIn != DefaultPitchIn || !r.HasRedStripe() {
		t.Errorf("ribbon = %+v, want 10 ways at 0.05in with stripe", r)
	}

	wantA := Endpoint{ConnectorMPN: "IDC-10", Type: TermIDC, Positions: 10, Orientation: Horizontal}
	wantB := Endpoint{ConnectorMPN: DefaultMPN, Type: TermCrimp, Positions: 10, Orientation: Horizontal}
	if diff := cmp.Diff(wantA, d.EndA); diff != "" {
		t.Errorf("endA mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantB, d.EndB); diff != "" {
		t.Errorf("endB mismatch (-want +got):\n%s", diff)
	}

	if d.Dimensions.OALMM != DefaultLengthMM || d.Dimensions.ToleranceMM != DefaultToleranceMM || d.Dimensions.BrokenDim {
		t.Errorf("Dimensions = %+v, want default 1000 ±5 unbroken", d.Dimensions)
	}
	if d.NotesPack != DefaultNotesPack {
		t.Errorf("NotesPack = %q, want %q", d.NotesPack, DefaultNotesPack)
	}
	if d.QR != DefaultQRBaseURL+"asm-1" {
		t.Errorf("QR = %q", d.QR)
	}
	if d.Meta.CreatedAt != "" {
		t.Errorf("CreatedAt = %q, want empty without a clock", d.Meta.CreatedAt)
	}
	if d.Meta.SchemaHash != s.ContentHash() {
		t.Errorf("SchemaHash = %q, want %q", d.Meta.SchemaHash, s.ContentHash())
	}
	if err := d.Validate(); err != nil {
		t.Errorf("mapped DSL should validate: %v", err)
	}
}

func TestMapRedStripeExplicitFalse(t *testing.T) {
	off := false
	s := &schema.Assembly{
		AssemblyID: "asm-1",
		Conductors: schema.Conductors{Ribbon: &schema.Ribbon{Ways: 4, RedStripe: &off}},
	}
	d, err := Mapper{}.Map(s, "basic-a3")
	if err != nil {
		t.Fatal(err)
	}
	if d.Cable.Ribbon.HasRedStripe() {
		t.Error("explicit red_stripe=false should disable the stripe")
	}
}

func TestMapRoundCable(t *testing.T) {
	s := &schema.Assembly{
		AssemblyID: "asm-2",
		Conductors: schema.Conductors{AWG: 22},
		Wirelist:   []schema.WireRow{{}, {Circuit: "SIG", Color: "purple", Shield: "pigtail"}, {}},
	}
	d, err := Mapper{}.Map(s, "basic-a3")
	if err != nil {
		t.Fatal(err)
	}
	want := RoundCable{Conductors: 3, AWG: 22, Shield: ShieldNone}
	if diff := cmp.Diff(&want, d.Cable.Round); diff != "" {
		t.Errorf("round cable mismatch (-want +got):\n%s", diff)
	}

	wantNets := []Net{
		{Circuit: "Net1", EndAPin: "1", EndBPin: "1", Color: "brown", Shield: NetShieldNone},
		{Circuit: "SIG", EndAPin: "2", EndBPin: "2", Color: "purple", Shield: NetShieldPigtail},
		{Circuit: "Net3", EndAPin: "3", EndBPin: "3", Color: "orange", Shield: NetShieldNone},
	}
	if diff := cmp.Diff(wantNets, d.Nets); diff != "" {
		t.Errorf("nets mismatch (-want +got):\n%s", diff)
	}
}

func TestMapPowerColors(t *testing.T) {
	tests := []struct {
		locale string
		want   []string
	}{
		{"NA", []string{"red", "black"}},
		{"EU", []string{"brown", "blue"}},
		{"JP", []string{"red", "white"}},
		{"Other", []string{"red", "black"}},
		{"XX", []string{"red", "black"}},
		{"", []string{"red", "black"}},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			s := &schema.Assembly{
				AssemblyID: "pwr",
				Cable:      schema.Cable{Type: schema.CablePower, Locale: tt.locale},
				Wirelist:   []schema.WireRow{{Circuit: "+48V"}, {Circuit: "RTN"}},
			}
			d, err := Mapper{}.Map(s, "basic-a3")
			if err != nil {
				t.Fatal(err)
			}
			for i, want := range tt.want {
				if got := d.Nets[i].Color; got != want {
					t.Errorf("net %s color = %q, want %q", d.Nets[i].Circuit, got, want)
				}
			}
		})
	}
}

func TestClassifyCircuit(t *testing.T) {
	tests := []struct {
		circuit string
		want    Polarity
	}{
		{"+48V", PolarityPositive},
		{"VCC", PolarityPositive},
		{"POS", PolarityPositive},
		{"GND", PolarityGround},
		{"Chassis Ground", PolarityGround},
		{"PE", PolarityGround},
		{"PEN", PolarityUnknown},
		{"-12V", PolarityNegative},
		{"NEG", PolarityNegative},
		{"Return", PolarityNegative},
		{"RTN", PolarityNegative},
		{"DATA", PolarityUnknown},
	}
	for _, tt := range tests {
		if got := ClassifyCircuit(tt.circuit); got != tt.want {
			t.Errorf("ClassifyCircuit(%q) = %v, want %v", tt.circuit, got, tt.want)
		}
	}
}

func TestMapNonPowerUsesPalette(t *testing.T) {
	rows := make([]schema.WireRow, 12)
	rows[0].Circuit = "+5V"
	s := &schema.Assembly{AssemblyID: "a", Wirelist: rows}
	d, err := Mapper{}.Map(s, "basic-a3")
	if err != nil {
		t.Fatal(err)
	}
	if d.Nets[0].Color != "brown" {
		t.Errorf("non-power +5V color = %q, want palette brown", d.Nets[0].Color)
	}
	if d.Nets[10].Color != "brown" || d.Nets[11].Color != "red" {
		t.Errorf("palette should wrap at 10, got %q %q", d.Nets[10].Color, d.Nets[11].Color)
	}
}

func TestMapLabels(t *testing.T) {
	s := &schema.Assembly{
		AssemblyID: "a",
		Endpoints: schema.Endpoints{
			EndA: schema.Endpoint{Label: "P1"},
			EndB: schema.Endpoint{Label: "P2"},
		},
		Labels: &schema.Labels{
			Callouts:  []schema.Callout{{Text: "HEAT SHRINK", OffsetX: 1, OffsetY: -0.5}, {Text: "OAL", Anchor: AnchorDimension}},
			NotesPack: "IPC-620-C",
		},
	}
	d, err := Mapper{}.Map(s, "basic-a3")
	if err != nil {
		t.Fatal(err)
	}
	want := []Label{
		{Text: "HEAT SHRINK", Anchor: AnchorCable, OffsetX: 25.4, OffsetY: -12.7},
		{Text: "OAL", Anchor: AnchorDimension},
		{Text: "P1", Anchor: AnchorEndA, OffsetY: -5},
		{Text: "P2", Anchor: AnchorEndB, OffsetY: -5},
	}
	if diff := cmp.Diff(want, d.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if d.NotesPack != "IPC-620-C" {
		t.Errorf("NotesPack = %q, want labels.notes_pack", d.NotesPack)
	}
}

func TestMapDimensions(t *testing.T) {
	tests := []struct {
		length float64
		broken bool
	}{
		{800, false},
		{2000, false},
		{2000.5, true},
		{2500, true},
	}
	for _, tt := range tests {
		s := &schema.Assembly{AssemblyID: "a", Cable: schema.Cable{LengthMM: tt.length, ToleranceMM: 15}}
		d, err := Mapper{}.Map(s, "basic-a3")
		if err != nil {
			t.Fatal(err)
		}
		if d.Dimensions.BrokenDim != tt.broken {
			t.Errorf("length %g: BrokenDim = %v, want %v", tt.length, d.Dimensions.BrokenDim, tt.broken)
		}
	}
}

func TestMapOptions(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	m := Mapper{QRBaseURL: "https://qr.test/", Clock: clock}
	d, err := m.Map(&schema.Assembly{AssemblyID: "a9"}, "basic-a3")
	if err != nil {
		t.Fatal(err)
	}
	if d.QR != "https://qr.test/a9" {
		t.Errorf("QR = %q", d.QR)
	}
	if d.Meta.CreatedAt != "2024-05-01T12:00:00Z" {
		t.Errorf("CreatedAt = %q", d.Meta.CreatedAt)
	}
}

func TestMapRejectsMissingInput(t *testing.T) {
	tests := []struct {
		name string
		s    *schema.Assembly
	}{
		{"nil schema", nil},
		{"missing id", &schema.Assembly{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Mapper{}.Map(tt.s, "basic-a3")
			if errors.KindOf(err) != errors.KindBadRequest {
				t.Errorf("Map error = %v, want bad_request", err)
			}
		})
	}
}

func TestMapIsDeterministic(t *testing.T) {
	s := &schema.Assembly{
		AssemblyID: "a",
		Cable:      schema.Cable{Type: schema.CablePower},
		Wirelist:   []schema.WireRow{{Circuit: "+24V"}, {Circuit: "GND"}},
	}
	first, _ := Mapper{}.Map(s, "basic-a3")
	for i := 0; i < 3; i++ {
		next, _ := Mapper{}.Map(s, "basic-a3")
		if diff := cmp.Diff(first, next); diff != "" {
			t.Fatalf("run %d differs:\n%s", i, diff)
		}
	}
}
