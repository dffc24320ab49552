package dsl

import "strings"

// Locales with a power-conductor color convention.
const (
	LocaleNA    = "NA"
	LocaleEU    = "EU"
	LocaleJP    = "JP"
	LocaleOther = "Other"
)

// PowerColors is the conductor color convention of a locale.
type PowerColors struct {
	Positive string
	Negative string
	Ground   string
}

var powerColors = map[string]PowerColors{
	LocaleNA:    {Positive: "red", Negative: "black", Ground: "green"},
	LocaleEU:    {Positive: "brown", Negative: "blue", Ground: "green-yellow"},
	LocaleJP:    {Positive: "red", Negative: "white", Ground: "green"},
	LocaleOther: {Positive: "red", Negative: "black", Ground: "green"},
}

// Palette is the fallback conductor color sequence, indexed by net position.
var Palette = []string{"brown", "red", "orange", "yellow", "green", "blue", "violet", "gray", "white", "black"}

// PowerColorsFor returns the convention for locale. Unknown locales use NA.
func PowerColorsFor(locale string) PowerColors {
	if c, ok := powerColors[locale]; ok {
		return c
	}
	return powerColors[LocaleNA]
}

// Polarity is the role a circuit plays on a power cable.
type Polarity int

// Polarities, in match priority order.
const (
	PolarityUnknown Polarity = iota
	PolarityPositive
	PolarityGround
	PolarityNegative
)

// ClassifyCircuit infers the polarity of a power circuit from its name.
// Matching is case-insensitive; positive markers are checked first so "+5V"
// never reads as negative.
func ClassifyCircuit(circuit string) Polarity {
	c := strings.ToLower(circuit)
	switch {
	case strings.Contains(c, "+"), strings.Contains(c, "pos"), strings.Contains(c, "vcc"):
		return PolarityPositive
	case strings.Contains(c, "gnd"), strings.Contains(c, "ground"), c == "pe":
		return PolarityGround
	case strings.Contains(c, "-"), strings.Contains(c, "neg"), strings.Contains(c, "return"), strings.Contains(c, "rtn"):
		return PolarityNegative
	}
	return PolarityUnknown
}

// Color returns the color for a polarity, or "" for PolarityUnknown.
func (p PowerColors) Color(pol Polarity) string {
	switch pol {
	case PolarityPositive:
		return p.Positive
	case PolarityGround:
		return p.Ground
	case PolarityNegative:
		return p.Negative
	}
	return ""
}

// PaletteColor returns the fallback color for the net at index i.
func PaletteColor(i int) string {
	return Palette[i%len(Palette)]
}
