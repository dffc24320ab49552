package templatepack

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/cabledraw/pkg/errors"
)

// Page defaults apply when a manifest gives no dimensions (A3 landscape).
const (
	DefaultWidthMM  = 420
	DefaultHeightMM = 297
)

// Style defaults.
const (
	DefaultLineWidth = 0.6
	DefaultFontSize  = 10
	DefaultFont      = "Inter"
)

// DefaultColors are the named colors used when a manifest omits them.
var DefaultColors = Colors{Primary: "#000000", Secondary: "#666666", Accent: "#0066cc"}

// Manifest is the normalized description of a template pack.
type Manifest struct {
	ID         string     `json:"id"`
	Version    string     `json:"version"`
	Name       string     `json:"name,omitempty"`
	Paper      string     `json:"paper"`
	Dimensions Dimensions `json:"dimensions"`
	Margins    Margins    `json:"margins"`
	Styles     Styles     `json:"styles"`
}

// Dimensions is the page size in millimetres.
type Dimensions struct {
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
}

// Margins are per-side page margins in millimetres.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Styles are the drawing style tokens.
type Styles struct {
	LineWidth float64 `json:"lineWidth"`
	FontSize  float64 `json:"fontSize"`
	Font      string  `json:"font"`
	Colors    Colors  `json:"colors"`
}

// Colors are the named style colors.
type Colors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// LabelFontSize is the font size of callout labels.
func (s Styles) LabelFontSize() float64 {
	return s.FontSize * 0.8
}

// manifestFile is the on-disk manifest, accepting both dimension formats and
// the legacy fonts/strokes style fields.
type manifestFile struct {
	ID         string `json:"id"`
	Version    string `json:"version"`
	Name       string `json:"name"`
	Paper      string `json:"paper"`
	Dimensions struct {
		WidthMM  float64 `json:"width_mm"`
		HeightMM float64 `json:"height_mm"`
		Width    float64 `json:"width"`
		Height   float64 `json:"height"`
		Unit     string  `json:"unit"`
	} `json:"dimensions"`
	Margins Margins  `json:"margins"`
	Styles  *Styles  `json:"styles"`
	Fonts   []string `json:"fonts"`
	Strokes *struct {
		Thin   float64 `json:"thin"`
		Medium float64 `json:"medium"`
		Thick  float64 `json:"thick"`
	} `json:"strokes"`
}

// ParseManifest decodes and normalizes a manifest. It fails with
// TEMPLATE_NOT_FOUND when a required field (id, version, paper) is missing.
func ParseManifest(data []byte) (*Manifest, error) {
	var f manifestFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTemplateNotFound, err, "invalid manifest")
	}
	var missing []string
	if f.ID == "" {
		missing = append(missing, "id")
	}
	if f.Version == "" {
		missing = append(missing, "version")
	}
	if f.Paper == "" {
		missing = append(missing, "paper")
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeTemplateNotFound, "manifest missing required fields: %s", strings.Join(missing, ", "))
	}

	m := &Manifest{
		ID:      f.ID,
		Version: f.Version,
		Name:    f.Name,
		Paper:   f.Paper,
		Margins: f.Margins,
	}
	if m.Name == "" {
		m.Name = f.ID
	}

	scale := unitScale(f.Dimensions.Unit)
	m.Dimensions.WidthMM = firstPositive(f.Dimensions.WidthMM, f.Dimensions.Width*scale, DefaultWidthMM)
	m.Dimensions.HeightMM = firstPositive(f.Dimensions.HeightMM, f.Dimensions.Height*scale, DefaultHeightMM)

	m.Styles = DefaultStyles()
	if f.Strokes != nil && f.Strokes.Medium > 0 {
		m.Styles.LineWidth = f.Strokes.Medium
	}
	if len(f.Fonts) > 0 && f.Fonts[0] != "" {
		m.Styles.Font = f.Fonts[0]
	}
	if s := f.Styles; s != nil {
		if s.LineWidth > 0 {
			m.Styles.LineWidth = s.LineWidth
		}
		if s.FontSize > 0 {
			m.Styles.FontSize = s.FontSize
		}
		if s.Font != "" {
			m.Styles.Font = s.Font
		}
		if s.Colors.Primary != "" {
			m.Styles.Colors.Primary = s.Colors.Primary
		}
		if s.Colors.Secondary != "" {
			m.Styles.Colors.Secondary = s.Colors.Secondary
		}
		if s.Colors.Accent != "" {
			m.Styles.Colors.Accent = s.Colors.Accent
		}
	}

	if m.Margins.Left+m.Margins.Right >= m.Dimensions.WidthMM || m.Margins.Top+m.Margins.Bottom >= m.Dimensions.HeightMM {
		return nil, errors.New(errors.ErrCodeTemplateNotFound, "manifest %s: margins leave no content area", f.ID)
	}
	return m, nil
}

// DefaultStyles returns the default style tokens.
func DefaultStyles() Styles {
	return Styles{
		LineWidth: DefaultLineWidth,
		FontSize:  DefaultFontSize,
		Font:      DefaultFont,
		Colors:    DefaultColors,
	}
}

func unitScale(unit string) float64 {
	switch strings.ToLower(unit) {
	case "in", "inch", "inches":
		return 25.4
	case "cm":
		return 10
	default:
		return 1
	}
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
