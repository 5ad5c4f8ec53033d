package calendar

import (
	"testing"
	"time"

	"masseria/internal/domain/money"
)

func date(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2025-06-10" {
		t.Fatalf("String() = %q", d.String())
	}
	if _, err := ParseDate("10/06/2025"); err == nil {
		t.Fatal("expected error for non-ISO input")
	}
}

func TestDateOfTruncates(t *testing.T) {
	instant := time.Date(2025, time.June, 10, 23, 15, 0, 0, time.UTC)
	if got := DateOf(instant); !got.Equal(date("2025-06-10")) {
		t.Fatalf("DateOf = %s", got)
	}
}

func TestRangeNights(t *testing.T) {
	cases := []struct {
		name   string
		from   string
		to     string
		nights int
	}{
		{"two nights", "2025-06-09", "2025-06-11", 2},
		{"one night", "2025-06-09", "2025-06-10", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRange(date(tc.from), date(tc.to))
			if err != nil {
				t.Fatalf("NewRange: %v", err)
			}
			if r.Nights() != tc.nights {
				t.Fatalf("Nights() = %d, want %d", r.Nights(), tc.nights)
			}
			if len(r.Dates()) != tc.nights {
				t.Fatalf("len(Dates()) = %d, want %d", len(r.Dates()), tc.nights)
			}
		})
	}
}

func TestRangeRejectsInvertedOrEqual(t *testing.T) {
	if _, err := NewRange(date("2025-06-11"), date("2025-06-09")); err == nil {
		t.Fatal("expected error for inverted range")
	}
	if _, err := NewRange(date("2025-06-09"), date("2025-06-09")); err == nil {
		t.Fatal("expected error for zero-length range")
	}
	var zero DateRange
	if zero.Nights() != 0 {
		t.Fatalf("zero range nights = %d", zero.Nights())
	}
}

func TestBlockedIncludesPastDates(t *testing.T) {
	today := date("2025-06-10")
	cal := New([]Date{date("2025-06-15")}, nil)

	if !cal.Blocked(date("2025-06-09"), today) {
		t.Error("yesterday should be blocked")
	}
	if cal.Blocked(date("2025-06-10"), today) {
		t.Error("today should be bookable")
	}
	if !cal.Blocked(date("2025-06-15"), today) {
		t.Error("explicitly blocked date should be blocked")
	}
	if cal.Blocked(date("2025-06-16"), today) {
		t.Error("free future date should not be blocked")
	}
}

func TestNilCalendarIsPermissive(t *testing.T) {
	var cal *Calendar
	today := date("2025-06-10")
	if cal.Blocked(date("2025-06-12"), today) {
		t.Error("nil calendar must not block future dates")
	}
	if !cal.Blocked(date("2025-06-01"), today) {
		t.Error("nil calendar must still block past dates")
	}
	if got := cal.PriceFor(date("2025-06-12"), money.FromCents(8000)); got != money.FromCents(8000) {
		t.Errorf("PriceFor = %d, want base price", got)
	}
}

func TestRangeFree(t *testing.T) {
	today := date("2025-06-01")
	cal := New([]Date{date("2025-06-10")}, nil)

	free, _ := NewRange(date("2025-06-05"), date("2025-06-08"))
	if !cal.RangeFree(free, today) {
		t.Error("unblocked range should be free")
	}

	// The checkout date is not a charged night.
	checkoutOnBlock, _ := NewRange(date("2025-06-08"), date("2025-06-10"))
	if !cal.RangeFree(checkoutOnBlock, today) {
		t.Error("checkout date is not charged and may be blocked")
	}

	overlapping, _ := NewRange(date("2025-06-09"), date("2025-06-12"))
	if cal.RangeFree(overlapping, today) {
		t.Error("range covering a blocked night must not be free")
	}
}

func TestPriceForOverride(t *testing.T) {
	cal := New(nil, map[Date]money.Money{date("2025-06-10"): money.FromCents(15000)})
	base := money.FromCents(10000)
	if got := cal.PriceFor(date("2025-06-10"), base); got != money.FromCents(15000) {
		t.Fatalf("override price = %d", got)
	}
	if got := cal.PriceFor(date("2025-06-11"), base); got != base {
		t.Fatalf("base price = %d", got)
	}
}
