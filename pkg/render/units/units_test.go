package units

import "testing"

func TestCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{-0.001, "0.00"},
		{1, "1.00"},
		{333.333333, "333.33"},
		{2.777777, "2.78"},
		{-12.346, "-12.35"},
		{0.1 + 0.2, "0.30"},
	}
	for _, tt := range tests {
		if got := Coord(tt.in); got != tt.want {
			t.Errorf("Coord(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{420, "420"},
		{279.4, "279.4"},
		{11 * 25.4, "279.4"},
		{215.9, "215.9"},
		{2500, "2500"},
		{333.333333, "333.33"},
		{2.777777, "2.78"},
		{-0.001, "0"},
	}
	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInchesToMM(t *testing.T) {
	if got := InchesToMM(2); got != 50.8 {
		t.Errorf("InchesToMM(2) = %v, want 50.8", got)
	}
}
