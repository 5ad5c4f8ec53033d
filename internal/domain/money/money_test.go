package money

import "testing"

func TestFromDecimalRounding(t *testing.T) {
	cases := []struct {
		in   float64
		want Money
	}{
		{0, 0},
		{80, 8000},
		{150.5, 15050},
		{0.005, 1},
		{99.999, 10000},
	}
	for _, tc := range cases {
		if got := FromDecimal(tc.in); got != tc.want {
			t.Errorf("FromDecimal(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	m := FromCents(25500)
	if m.Decimal() != 255.0 {
		t.Fatalf("Decimal() = %v, want 255.0", m.Decimal())
	}
	if m.String() != "255.00" {
		t.Fatalf("String() = %q, want %q", m.String(), "255.00")
	}
}

func TestMin(t *testing.T) {
	if got := Min(FromCents(8000), FromCents(10000)); got != FromCents(8000) {
		t.Fatalf("Min = %d, want 8000", got)
	}
	if got := Min(FromCents(10000), FromCents(8000)); got != FromCents(8000) {
		t.Fatalf("Min = %d, want 8000", got)
	}
}
